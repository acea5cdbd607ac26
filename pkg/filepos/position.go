// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package filepos

import (
	"fmt"
	"strings"
)

type Position struct {
	lineNum int // 1 based
	colNum  int // 1 based, counted in runes
	file    string
	known   bool
}

func NewPosition(lineNum, colNum int) *Position {
	if lineNum <= 0 || colNum <= 0 {
		panic("Lines and columns are 1 based")
	}
	return &Position{lineNum: lineNum, colNum: colNum, known: true}
}

// NewPositionInFile returns the Position of line "lineNum", column "colNum" within the file "file"
func NewPositionInFile(lineNum, colNum int, file string) *Position {
	p := NewPosition(lineNum, colNum)
	p.file = file
	return p
}

// NewPositionFromOffset computes the Position of byte offset "offset" within "src".
func NewPositionFromOffset(src string, offset int, file string) *Position {
	if offset < 0 || offset > len(src) {
		return NewUnknownPositionInFile(file)
	}
	before := src[:offset]
	line := strings.Count(before, "\n") + 1
	lastNL := strings.LastIndexByte(before, '\n')
	col := len([]rune(before[lastNL+1:])) + 1
	return NewPositionInFile(line, col, file)
}

// NewUnknownPosition is equivalent of zero value *Position
func NewUnknownPosition() *Position {
	return &Position{}
}

// NewUnknownPositionInFile produces a Position of a known file at an unknown line.
func NewUnknownPositionInFile(file string) *Position {
	return &Position{file: file}
}

func (p *Position) SetFile(file string) { p.file = file }

func (p *Position) IsKnown() bool { return p != nil && p.known }

func (p *Position) LineNum() int {
	if !p.IsKnown() {
		panic("Position is unknown")
	}
	return p.lineNum
}

func (p *Position) ColNum() int {
	if !p.IsKnown() {
		panic("Position is unknown")
	}
	return p.colNum
}

func (p *Position) GetFile() string {
	if p == nil {
		return ""
	}
	return p.file
}

// AsString reports the position for humans (e.g. "line 3 col 7 in 'tpl.txt'").
func (p *Position) AsString() string {
	var result string
	if p.IsKnown() {
		result = fmt.Sprintf("line %d col %d", p.lineNum, p.colNum)
	} else {
		result = "unknown position"
	}
	if file := p.GetFile(); len(file) > 0 {
		result += fmt.Sprintf(" in '%s'", file)
	}
	return result
}

func (p *Position) AsCompactString() string {
	filePrefix := p.GetFile()
	if len(filePrefix) > 0 {
		filePrefix += ":"
	}
	if p.IsKnown() {
		return fmt.Sprintf("%s%d:%d", filePrefix, p.lineNum, p.colNum)
	}
	return fmt.Sprintf("%s?", filePrefix)
}

func (p *Position) DeepCopy() *Position {
	if p == nil {
		return nil
	}
	newPos := *p
	return &newPos
}
