// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package texttemplate

import (
	"strings"
	"unicode"
)

type directiveKind int

const (
	directiveUnknown directiveKind = iota
	directiveVar
	directiveIf
	directiveFor
	directiveEndIf
	directiveEndFor
)

const (
	varOpen  = "{{"
	varClose = "}}"

	keywordIf     = "if"
	keywordFor    = "for"
	keywordIn     = "in"
	keywordEndIf  = "endif"
	keywordEndFor = "endfor"
)

var directiveKeywords = map[string]directiveKind{
	keywordIf:     directiveIf,
	keywordFor:    directiveFor,
	keywordEndIf:  directiveEndIf,
	keywordEndFor: directiveEndFor,
}

// directiveMeta classifies a directive from the text following its opening marker.
type directiveMeta struct {
	lookahead string
}

func (m directiveMeta) Kind() directiveKind {
	if strings.HasPrefix(m.lookahead, varOpen) {
		return directiveVar
	}
	if kind, found := directiveKeywords[m.Word()]; found {
		return kind
	}
	return directiveUnknown
}

// Word is the leading keyword-like part of the lookahead, ending at
// whitespace or at the start of a marker.
func (m directiveMeta) Word() string {
	end := strings.IndexFunc(m.lookahead, func(r rune) bool {
		return unicode.IsSpace(r) || r == '%'
	})
	if end < 0 {
		return m.lookahead
	}
	return m.lookahead[:end]
}

func (m directiveMeta) Keywords() []string {
	var result []string
	for keyword := range directiveKeywords {
		result = append(result, keyword)
	}
	return result
}
