// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"

	"carvel.dev/stpl/pkg/cmd/render"
	"carvel.dev/stpl/pkg/cmd/ui"
	"carvel.dev/stpl/pkg/files"
	"carvel.dev/stpl/pkg/orderedmap"
	"carvel.dev/stpl/pkg/texttemplate"
	"carvel.dev/stpl/pkg/website"
	"github.com/spf13/cobra"
)

type WebsiteOptions struct {
	ListenAddr         string
	RedirectToHTTPS    bool
	MissingPlaceholder string
}

func NewWebsiteOptions() *WebsiteOptions {
	return &WebsiteOptions{
		MissingPlaceholder: texttemplate.DefaultMissingValue,
	}
}

func NewWebsiteCmd(o *WebsiteOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "website",
		Short: "Starts website HTTP server",
		RunE:  func(_ *cobra.Command, _ []string) error { return o.Run() },
	}
	cmd.Flags().StringVar(&o.ListenAddr, "listen-addr", "localhost:8080", "Listen address")
	cmd.Flags().BoolVar(&o.RedirectToHTTPS, "redirect-to-https", true, "Redirect to HTTPs address")
	cmd.Flags().StringVar(&o.MissingPlaceholder, "missing-placeholder", o.MissingPlaceholder, "Text rendered in place of undefined variables")
	return cmd
}

func (o *WebsiteOptions) Server() *website.Server {
	opts := website.ServerOpts{
		ListenAddr:      o.ListenAddr,
		RedirectToHTTPS: o.RedirectToHTTPS,
		TemplateFunc:    o.renderBulk,
		RenderFunc:      o.render,
		ErrorFunc:       o.bulkOutErr,
	}
	return website.NewServer(opts)
}

func (o *WebsiteOptions) Run() error {
	return o.Server().Run()
}

// renderBulk behaves like "stpl render --bulk-in DATA --bulk-out".
func (o *WebsiteOptions) renderBulk(data []byte) ([]byte, error) {
	var out, stderr bytes.Buffer

	renderOpts := render.NewOptions()
	renderOpts.MissingPlaceholder = o.MissingPlaceholder
	renderOpts.BulkFilesSourceOpts = render.BulkFilesSourceOpts{
		BulkIn:  string(data),
		BulkOut: true,
	}

	err := renderOpts.RunWithUI(ui.NewCustomWriterTTY(false, &out, &stderr))
	if err != nil {
		return nil, fmt.Errorf("error: %s", err)
	}

	return out.Bytes(), nil
}

func (o *WebsiteOptions) render(req website.RenderRequest) (string, error) {
	values := orderedmap.NewMap()

	if len(req.Values) > 0 {
		decodedVal, err := render.DecodeValues(files.TypeJSON, req.Values)
		if err != nil {
			return "", err
		}

		switch typedVal := decodedVal.(type) {
		case nil:
		case *orderedmap.Map:
			values = typedVal
		default:
			return "", fmt.Errorf("Expected values to be a map, but was %T", decodedVal)
		}
	}

	tpl := texttemplate.NewTemplate("template", texttemplate.RenderOpts{
		MissingValue: o.MissingPlaceholder,
	})

	rootNode, err := tpl.Parse([]byte(req.Template))
	if err != nil {
		return "", err
	}

	ctx := orderedmap.Conversion{Object: values}.AsUnorderedStringMaps().(map[string]interface{})

	return tpl.Render(rootNode, texttemplate.NewScope(ctx))
}

func (*WebsiteOptions) bulkOutErr(err error) ([]byte, error) {
	return json.Marshal(render.BulkFiles{Errors: err.Error()})
}
