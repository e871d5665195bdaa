// Copyright © 2025 The Lantern authors

package text

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComparePositions(t *testing.T) {
	assert.Equal(t, -1, Compare(Position{0, 5}, Position{1, 0}))
	assert.Equal(t, 1, Compare(Position{1, 0}, Position{0, 5}))
	assert.Equal(t, -1, Compare(Position{2, 3}, Position{2, 4}))
	assert.Equal(t, 0, Compare(Position{2, 3}, Position{2, 3}))
	assert.True(t, Position{0, 0}.Before(Position{0, 1}))
	assert.False(t, Position{0, 1}.Before(Position{0, 1}))
}

func TestRangeContains(t *testing.T) {
	r := NewRange(1, 2, 1, 6)
	assert.True(t, r.Contains(Position{1, 2}))
	assert.True(t, r.Contains(Position{1, 5}))
	assert.False(t, r.Contains(Position{1, 6}), "end is exclusive")
	assert.False(t, r.Contains(Position{0, 3}))
}

func TestRangeOverlaps(t *testing.T) {
	a := NewRange(0, 0, 0, 4)
	b := NewRange(0, 3, 0, 8)
	c := NewRange(0, 4, 0, 8)
	assert.True(t, a.Overlaps(b))
	assert.True(t, b.Overlaps(a))
	assert.False(t, a.Overlaps(c), "touching half-open ranges do not overlap")

	empty := NewRange(0, 2, 0, 2)
	assert.True(t, empty.Overlaps(a), "empty range inside a span")
	assert.False(t, empty.Overlaps(c))
}

func TestOffset(t *testing.T) {
	content := "abc\ndef\n"

	off, ok := Offset(content, Position{0, 0})
	require.True(t, ok)
	assert.Equal(t, 0, off)

	off, ok = Offset(content, Position{1, 2})
	require.True(t, ok)
	assert.Equal(t, 6, off)

	// End of line is a valid insertion point.
	off, ok = Offset(content, Position{0, 3})
	require.True(t, ok)
	assert.Equal(t, 3, off)

	_, ok = Offset(content, Position{0, 4})
	assert.False(t, ok, "past end of line")
	_, ok = Offset(content, Position{5, 0})
	assert.False(t, ok, "past last line")
	_, ok = Offset(content, Position{-1, 0})
	assert.False(t, ok)
}

func TestAdvance(t *testing.T) {
	assert.Equal(t, Position{0, 7}, Advance(Position{0, 4}, "foo"))
	assert.Equal(t, Position{2, 2}, Advance(Position{0, 4}, "a\nbc\nxy"))
}

func TestReplace(t *testing.T) {
	out, ok := Replace("hello world", NewRange(0, 6, 0, 11), "there")
	require.True(t, ok)
	assert.Equal(t, "hello there", out)

	out, ok = Replace("a\nb\nc", NewRange(1, 0, 2, 1), "X")
	require.True(t, ok)
	assert.Equal(t, "a\nX", out)

	// Insertion at an empty range.
	out, ok = Replace("ab", NewRange(0, 1, 0, 1), "-")
	require.True(t, ok)
	assert.Equal(t, "a-b", out)

	_, ok = Replace("ab", NewRange(0, 1, 0, 9), "x")
	assert.False(t, ok)
}

func TestAdjustPositionBeforeEdit(t *testing.T) {
	edit := NewRange(2, 4, 2, 8)
	p := AdjustPosition(Position{1, 9}, edit, "xy")
	assert.Equal(t, Position{1, 9}, p)

	// Exactly at the edit start stays put.
	p = AdjustPosition(Position{2, 4}, edit, "xy")
	assert.Equal(t, Position{2, 4}, p)
}

func TestAdjustPositionAfterEdit(t *testing.T) {
	// Same-line positions shift by the character delta.
	edit := NewRange(0, 2, 0, 6)
	p := AdjustPosition(Position{0, 10}, edit, "#")
	assert.Equal(t, Position{0, 7}, p)

	// Later lines shift by the line delta only.
	edit = NewRange(1, 0, 3, 0)
	p = AdjustPosition(Position{5, 2}, edit, "one line\n")
	assert.Equal(t, Position{4, 2}, p)

	// Inserting newlines pushes later lines down.
	edit = NewRange(1, 0, 1, 0)
	p = AdjustPosition(Position{2, 7}, edit, "a\nb\n")
	assert.Equal(t, Position{4, 7}, p)
}

func TestAdjustPositionInsideEdit(t *testing.T) {
	edit := NewRange(0, 2, 0, 8)
	p := AdjustPosition(Position{0, 5}, edit, "zz")
	assert.Equal(t, Position{0, 2}, p, "interior positions collapse to the edit start")
}

func TestAdjustRange(t *testing.T) {
	// Edit strictly before the range shifts it.
	r := AdjustRange(NewRange(0, 10, 0, 14), NewRange(0, 0, 0, 4), "xx")
	assert.Equal(t, NewRange(0, 8, 0, 12), r)

	// Edit covering the range collapses it to a point.
	r = AdjustRange(NewRange(0, 4, 0, 6), NewRange(0, 2, 0, 8), "y")
	assert.Equal(t, NewRange(0, 2, 0, 2), r)
	assert.True(t, r.IsEmpty())

	// Edit overlapping the tail shrinks the range.
	r = AdjustRange(NewRange(0, 0, 0, 6), NewRange(0, 4, 0, 9), "")
	assert.Equal(t, NewRange(0, 0, 0, 4), r)
}
