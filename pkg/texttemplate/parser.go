// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package texttemplate

import (
	"errors"
	"fmt"
	"strings"

	"carvel.dev/stpl/pkg/filepos"
	"carvel.dev/stpl/pkg/reader"
	"carvel.dev/stpl/pkg/spell"
)

// Marker opens and closes every directive.
const Marker = "%%"

// lookaheadWindow must fit the longest keyword plus one character.
const lookaheadWindow = 8

type Parser struct {
	associatedName string
	src            string
}

func NewParser() *Parser {
	return &Parser{}
}

// openBlock describes an `if` or `for` whose closing directive is pending.
type openBlock struct {
	keyword string
	closer  string
	offset  int
}

func (p *Parser) Parse(dataBs []byte, associatedName string) (*NodeRoot, error) {
	p.associatedName = associatedName
	p.src = string(dataBs)

	r := reader.NewReader(p.src)

	items, err := p.parseItems(r, nil)
	if err != nil {
		return nil, err
	}

	return &NodeRoot{Position: p.newPosition(0), Items: items}, nil
}

// parseItems parses nodes until input is exhausted or, when block is
// given, until the block's closing directive has been consumed.
func (p *Parser) parseItems(r *reader.Reader, block *openBlock) ([]Node, error) {
	var items []Node

	for {
		if r.Index(Marker) < 0 {
			if block != nil {
				return nil, p.newError(ErrDelimiterNotFound, block.offset, block.keyword,
					"missing '%s %s %s' for '%s'", Marker, block.closer, Marker, block.keyword)
			}
			if !r.Done() {
				items = append(items, &NodeText{Position: p.newPosition(r.Offset()), Content: r.Rest()})
				if err := r.Consume(r.Rest()); err != nil {
					return nil, p.wrapReaderErr(err, "")
				}
			}
			return items, nil
		}

		textOffset := r.Offset()
		text, err := r.ReadUntil(Marker)
		if err != nil {
			return nil, p.wrapReaderErr(err, "")
		}
		if len(text) > 0 {
			items = append(items, &NodeText{Position: p.newPosition(textOffset), Content: text})
		}

		markerOffset := r.Offset()
		if err := r.Consume(Marker); err != nil {
			return nil, p.wrapReaderErr(err, "")
		}
		r.SkipSpace()

		meta := directiveMeta{r.Peek(lookaheadWindow)}

		var node Node

		switch meta.Kind() {
		case directiveVar:
			node, err = p.parseVar(r, markerOffset)
		case directiveIf:
			node, err = p.parseIf(r, markerOffset)
		case directiveFor:
			node, err = p.parseFor(r, markerOffset)
		case directiveEndIf, directiveEndFor:
			return items, p.parseClose(r, block, meta.Word(), markerOffset)
		default:
			err = p.unknownDirectiveErr(meta, markerOffset)
		}
		if err != nil {
			return nil, err
		}

		items = append(items, node)
	}
}

func (p *Parser) parseVar(r *reader.Reader, markerOffset int) (Node, error) {
	if err := r.Consume(varOpen); err != nil {
		return nil, p.wrapReaderErr(err, "")
	}

	nameOffset := r.Offset()
	rawName, err := r.ReadUntil(varClose)
	if err != nil {
		return nil, p.newError(ErrDelimiterNotFound, markerOffset, "",
			"missing '%s' closing variable reference", varClose)
	}

	name := strings.TrimSpace(rawName)
	if !reader.IsIdentifier(name) {
		return nil, p.newError(ErrUnexpectedToken, nameOffset, rawName,
			"invalid variable name '%s'", name)
	}

	if err := r.Consume(varClose); err != nil {
		return nil, p.wrapReaderErr(err, "")
	}
	if err := p.consumeMarker(r, "after variable reference"); err != nil {
		return nil, err
	}

	return &NodeVar{Position: p.newPosition(markerOffset), Name: name}, nil
}

func (p *Parser) parseIf(r *reader.Reader, markerOffset int) (Node, error) {
	if err := r.Consume(keywordIf); err != nil {
		return nil, p.wrapReaderErr(err, "")
	}

	condOffset := r.Offset()
	rawCond, err := r.ReadUntil(Marker)
	if err != nil {
		return nil, p.newError(ErrDelimiterNotFound, markerOffset, "",
			"missing '%s' closing 'if' condition", Marker)
	}

	cond := strings.TrimSpace(rawCond)
	if len(cond) == 0 {
		return nil, p.newError(ErrUnexpectedToken, condOffset, "", "missing 'if' condition")
	}

	if err := r.Consume(Marker); err != nil {
		return nil, p.wrapReaderErr(err, "")
	}

	body, err := p.parseBody(r, &openBlock{keyword: keywordIf, closer: keywordEndIf, offset: markerOffset})
	if err != nil {
		return nil, err
	}

	return &NodeIf{Position: p.newPosition(markerOffset), Condition: cond, Body: body}, nil
}

func (p *Parser) parseFor(r *reader.Reader, markerOffset int) (Node, error) {
	if err := r.Consume(keywordFor); err != nil {
		return nil, p.wrapReaderErr(err, "")
	}

	headerOffset := r.Offset()
	header, err := r.ReadUntil(Marker)
	if err != nil {
		return nil, p.newError(ErrDelimiterNotFound, markerOffset, "",
			"missing '%s' closing 'for' header", Marker)
	}

	pieces := strings.Fields(header)
	if len(pieces) != 3 || pieces[1] != keywordIn {
		return nil, p.newError(ErrUnexpectedToken, headerOffset, header,
			"expected 'for <var> in <list>' but found 'for %s'", strings.TrimSpace(header))
	}

	if !reader.IsIdentifier(pieces[0]) {
		return nil, p.newError(ErrUnexpectedToken, headerOffset+strings.Index(header, pieces[0]), header,
			"invalid variable name '%s' in 'for' header", pieces[0])
	}
	if !reader.IsIdentifier(pieces[2]) {
		return nil, p.newError(ErrUnexpectedToken, headerOffset+strings.LastIndex(header, pieces[2]), header,
			"invalid variable name '%s' in 'for' header", pieces[2])
	}

	if err := r.Consume(Marker); err != nil {
		return nil, p.wrapReaderErr(err, "")
	}

	body, err := p.parseBody(r, &openBlock{keyword: keywordFor, closer: keywordEndFor, offset: markerOffset})
	if err != nil {
		return nil, err
	}

	return &NodeFor{
		Position: p.newPosition(markerOffset),
		LoopVar:  pieces[0],
		ListName: pieces[2],
		Body:     body,
	}, nil
}

// parseBody parses the body of an `if` or `for` into its own container.
func (p *Parser) parseBody(r *reader.Reader, block *openBlock) (*NodeRoot, error) {
	bodyOffset := r.Offset()

	items, err := p.parseItems(r, block)
	if err != nil {
		return nil, err
	}

	return &NodeRoot{Position: p.newPosition(bodyOffset), Items: items}, nil
}

func (p *Parser) parseClose(r *reader.Reader, block *openBlock, keyword string, markerOffset int) error {
	if block == nil {
		return p.newError(ErrUnexpectedToken, markerOffset, keyword,
			"unexpected '%s' without matching '%s'", keyword, strings.TrimPrefix(keyword, "end"))
	}
	if block.closer != keyword {
		return p.newError(ErrUnexpectedToken, markerOffset, keyword,
			"unexpected '%s' (expected '%s' for '%s' at %s)",
			keyword, block.closer, block.keyword, p.newPosition(block.offset).AsString())
	}

	if err := r.Consume(keyword); err != nil {
		return p.wrapReaderErr(err, "")
	}
	return p.consumeMarker(r, fmt.Sprintf("after '%s'", keyword))
}

func (p *Parser) consumeMarker(r *reader.Reader, desc string) error {
	r.SkipSpace()
	if err := r.Consume(Marker); err != nil {
		return p.wrapReaderErr(err, desc)
	}
	return nil
}

func (p *Parser) unknownDirectiveErr(meta directiveMeta, markerOffset int) error {
	word := meta.Word()
	if len(word) == 0 {
		return p.newError(ErrUnknownDirective, markerOffset, "", "empty directive")
	}

	msg := fmt.Sprintf("'%s'", word)
	if suggestion, found := spell.Suggest(word, meta.Keywords()); found {
		msg += fmt.Sprintf(" (did you mean '%s'?)", suggestion)
	}
	return p.newError(ErrUnknownDirective, markerOffset, word, "%s", msg)
}

func (p *Parser) newError(kind error, offset int, fragment string, format string, args ...interface{}) error {
	return &Error{
		Kind:     kind,
		Position: p.newPosition(offset),
		Fragment: fragment,
		Msg:      fmt.Sprintf(format, args...),
	}
}

func (p *Parser) wrapReaderErr(err error, desc string) error {
	var readerErr *reader.Error
	if !errors.As(err, &readerErr) {
		return err
	}

	var msg string
	switch {
	case len(readerErr.Found) == 0:
		msg = fmt.Sprintf("expected '%s' but reached end of template", readerErr.Expected)
	case readerErr.Kind == ErrUnexpectedToken:
		msg = fmt.Sprintf("expected '%s' but found '%s'", readerErr.Expected, readerErr.Found)
	default:
		msg = fmt.Sprintf("expected '%s'", readerErr.Expected)
	}
	if len(desc) > 0 {
		msg += " " + desc
	}

	return &Error{
		Kind:     readerErr.Kind,
		Position: p.newPosition(readerErr.Offset),
		Fragment: readerErr.Found,
		Msg:      msg,
		Err:      err,
	}
}

func (p *Parser) newPosition(offset int) *filepos.Position {
	return filepos.NewPositionFromOffset(p.src, offset, p.associatedName)
}
