// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package website

type File struct {
	Name    string `json:"name"`
	Content string `json:"content"`
}

type Example struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	Files       []File `json:"files,omitempty"`
}

type exampleSet struct {
	ID          string    `json:"id"`
	DisplayName string    `json:"display_name"`
	Description string    `json:"description"`
	Examples    []Example `json:"examples"`
}

var Files = map[string]File{
	"templates/index.html": {
		Name: "templates/index.html",
		Content: `<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <title>stpl playground</title>
  <script src="/js/playground.js"></script>
</head>
<body>
  <h1>stpl playground</h1>
  <select id="examples"></select>
  <h2>Template</h2>
  <textarea id="template" rows="12" cols="80"></textarea>
  <h2>Values (JSON)</h2>
  <textarea id="values" rows="6" cols="80">{}</textarea>
  <p><button id="render">Render</button></p>
  <h2>Output</h2>
  <pre id="output"></pre>
</body>
</html>
`,
	},
	"js/playground.js": {
		Name: "js/playground.js",
		Content: `window.addEventListener("load", function() {
  var byId = function(id) { return document.getElementById(id); };

  byId("render").addEventListener("click", function() {
    var values;
    try {
      values = JSON.parse(byId("values").value || "{}");
    } catch (e) {
      byId("output").textContent = "Invalid values: " + e;
      return;
    }
    fetch("/render", {
      method: "POST",
      body: JSON.stringify({template: byId("template").value, values: values})
    }).then(function(resp) { return resp.json(); }).then(function(result) {
      byId("output").textContent = result.errors ? "Error: " + result.errors : result.output;
    });
  });

  fetch("/examples").then(function(resp) { return resp.json(); }).then(function(sets) {
    sets.forEach(function(set) {
      set.examples.forEach(function(example) {
        var opt = document.createElement("option");
        opt.value = example.id;
        opt.textContent = set.display_name + ": " + example.display_name;
        byId("examples").appendChild(opt);
      });
    });
  });

  byId("examples").addEventListener("change", function(e) {
    fetch("/examples/" + e.target.value).then(function(resp) { return resp.json(); }).then(function(example) {
      example.files.forEach(function(file) {
        if (file.name === "template.txt") { byId("template").value = file.content; }
        if (file.name === "values.json") { byId("values").value = file.content; }
      });
    });
  });
});
`,
	},
}

var exampleSets = []exampleSet{
	{
		ID:          "basics",
		DisplayName: "Basics",
		Description: "Variables, conditions and loops",
		Examples: []Example{
			{
				ID:          "example-var",
				DisplayName: "Variable",
				Files: []File{
					{Name: "template.txt", Content: "Hello %% {{name}} %%!"},
					{Name: "values.json", Content: `{"name": "world"}`},
				},
			},
			{
				ID:          "example-if",
				DisplayName: "Condition",
				Files: []File{
					{Name: "template.txt", Content: "%% if count 10 < %%few%% endif %%%% if count 10 >= %%many%% endif %%"},
					{Name: "values.json", Content: `{"count": 3}`},
				},
			},
			{
				ID:          "example-for",
				DisplayName: "Loop",
				Files: []File{
					{Name: "template.txt", Content: "%% for item in items %%%% {{loopidx}} %%: %% {{item}} %%\n%% endfor %%"},
					{Name: "values.json", Content: `{"items": ["a", "b", "c"]}`},
				},
			},
			{
				ID:          "example-for-if",
				DisplayName: "Loop with condition",
				Files: []File{
					{Name: "template.txt", Content: "%% for n in ns %%%% if n 2 % 0 == %%%% {{n}} %% is even\n%% endif %%%% endfor %%"},
					{Name: "values.json", Content: `{"ns": [1, 2, 3, 4]}`},
				},
			},
		},
	},
}
