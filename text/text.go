// Copyright © 2025 The Lantern authors

// Package text provides position and range value types shared by the
// diagnostics store, the range tracker, and the buffer layer. Positions
// are zero-based with byte-counted columns, matching LSP's coordinate
// orientation.
package text

import "fmt"

// Position identifies a point in a document.
type Position struct {
	Line      int `json:"line"`
	Character int `json:"character"`
}

// Compare returns -1, 0, or 1 as a sorts before, equal to, or after b.
func Compare(a, b Position) int {
	if a.Line != b.Line {
		if a.Line < b.Line {
			return -1
		}
		return 1
	}
	if a.Character != b.Character {
		if a.Character < b.Character {
			return -1
		}
		return 1
	}
	return 0
}

// Before reports whether p sorts strictly before q.
func (p Position) Before(q Position) bool {
	return Compare(p, q) < 0
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Character)
}

// Range is a half-open [Start, End) region of a document.
type Range struct {
	Start Position `json:"start"`
	End   Position `json:"end"`
}

// NewRange builds a range from start line/character and end line/character.
func NewRange(startLine, startChar, endLine, endChar int) Range {
	return Range{
		Start: Position{Line: startLine, Character: startChar},
		End:   Position{Line: endLine, Character: endChar},
	}
}

// IsEmpty reports whether the range spans no text.
func (r Range) IsEmpty() bool {
	return Compare(r.Start, r.End) >= 0
}

// Contains reports whether p falls within the half-open range.
func (r Range) Contains(p Position) bool {
	return Compare(r.Start, p) <= 0 && Compare(p, r.End) < 0
}

// Overlaps reports whether two ranges share any position. Empty ranges
// overlap a range that contains their start point.
func (r Range) Overlaps(q Range) bool {
	if r.IsEmpty() && q.IsEmpty() {
		return Compare(r.Start, q.Start) == 0
	}
	if r.IsEmpty() {
		return q.Contains(r.Start)
	}
	if q.IsEmpty() {
		return r.Contains(q.Start)
	}
	return Compare(r.Start, q.End) < 0 && Compare(q.Start, r.End) < 0
}

func (r Range) String() string {
	return fmt.Sprintf("%s-%s", r.Start, r.End)
}

// Offset maps a position to a byte offset in content. The position may
// point one past the final character of a line (the insertion point at
// end of line). Returns false when the position lies outside content.
func Offset(content string, p Position) (int, bool) {
	if p.Line < 0 || p.Character < 0 {
		return 0, false
	}
	offset := 0
	line := 0
	for line < p.Line {
		next := indexNewline(content, offset)
		if next < 0 {
			return 0, false
		}
		offset = next + 1
		line++
	}
	end := indexNewline(content, offset)
	if end < 0 {
		end = len(content)
	}
	if offset+p.Character > end {
		return 0, false
	}
	return offset + p.Character, true
}

// indexNewline returns the index of the first '\n' at or after from, or -1.
func indexNewline(content string, from int) int {
	for i := from; i < len(content); i++ {
		if content[i] == '\n' {
			return i
		}
	}
	return -1
}

// Advance returns the position reached by appending s after start.
func Advance(start Position, s string) Position {
	p := start
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			p.Line++
			p.Character = 0
		} else {
			p.Character++
		}
	}
	return p
}

// Replace substitutes the text at r in content with newText. Returns
// false when the range does not resolve to valid offsets.
func Replace(content string, r Range, newText string) (string, bool) {
	start, ok := Offset(content, r.Start)
	if !ok {
		return "", false
	}
	end, ok := Offset(content, r.End)
	if !ok || end < start {
		return "", false
	}
	return content[:start] + newText + content[end:], true
}

// AdjustPosition maps a position through an edit that replaced the text
// at edit with newText. Positions before the edit are unchanged,
// positions at or after the edit's end are shifted by the edit's delta,
// and positions inside the edited region collapse to the edit's start.
func AdjustPosition(p Position, edit Range, newText string) Position {
	if Compare(p, edit.Start) <= 0 {
		return p
	}
	newEnd := Advance(edit.Start, newText)
	if Compare(p, edit.End) >= 0 {
		if p.Line == edit.End.Line {
			return Position{
				Line:      newEnd.Line,
				Character: newEnd.Character + (p.Character - edit.End.Character),
			}
		}
		return Position{
			Line:      p.Line + (newEnd.Line - edit.End.Line),
			Character: p.Character,
		}
	}
	return edit.Start
}

// AdjustRange maps both endpoints of r through an edit. A range whose
// interior was edited shrinks rather than going stale; a range entirely
// inside the edit collapses to the edit's start.
func AdjustRange(r Range, edit Range, newText string) Range {
	out := Range{
		Start: AdjustPosition(r.Start, edit, newText),
		End:   AdjustPosition(r.End, edit, newText),
	}
	if Compare(out.End, out.Start) < 0 {
		out.End = out.Start
	}
	return out
}
