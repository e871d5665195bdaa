// Copyright © 2025 The Lantern authors

package buffer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lanternhq/lantern/text"
)

func TestOpenGetClose(t *testing.T) {
	s := NewStore()
	s.Open("a.go", 1, "package main\n")

	doc := s.Get("a.go")
	require.NotNil(t, doc)
	content, version := doc.Snapshot()
	assert.Equal(t, "package main\n", content)
	assert.Equal(t, int32(1), version)

	var closed []string
	s.OnClose(func(path string) { closed = append(closed, path) })

	s.Close("a.go")
	assert.Nil(t, s.Get("a.go"))
	assert.Equal(t, []string{"a.go"}, closed)

	// Closing an unopened path fires no listener.
	s.Close("a.go")
	assert.Len(t, closed, 1)
}

func TestChangeReplacesContent(t *testing.T) {
	s := NewStore()
	s.Open("a.go", 1, "old")

	var edits []Edit
	s.OnEdit(func(e Edit) { edits = append(edits, e) })

	s.Change("a.go", 2, "new")

	content, version := s.Get("a.go").Snapshot()
	assert.Equal(t, "new", content)
	assert.Equal(t, int32(2), version)
	assert.Empty(t, edits, "wholesale replacement is not a range edit")
}

func TestReplaceRange(t *testing.T) {
	s := NewStore()
	s.Open("a.go", 1, "hello world\n")

	var edits []Edit
	s.OnEdit(func(e Edit) { edits = append(edits, e) })

	r := text.NewRange(0, 6, 0, 11)
	require.NoError(t, s.ReplaceRange("a.go", r, "there"))

	content, version := s.Get("a.go").Snapshot()
	assert.Equal(t, "hello there\n", content)
	assert.Equal(t, int32(2), version)

	require.Len(t, edits, 1)
	assert.Equal(t, Edit{Path: "a.go", OldRange: r, NewText: "there"}, edits[0])
}

func TestReplaceRangeErrors(t *testing.T) {
	s := NewStore()
	s.Open("a.go", 1, "short\n")

	err := s.ReplaceRange("missing.go", text.NewRange(0, 0, 0, 1), "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not open")

	err = s.ReplaceRange("a.go", text.NewRange(0, 0, 9, 9), "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "out of bounds")

	// Failed edits leave the document untouched.
	content, version := s.Get("a.go").Snapshot()
	assert.Equal(t, "short\n", content)
	assert.Equal(t, int32(1), version)
}

func TestAll(t *testing.T) {
	s := NewStore()
	s.Open("a.go", 1, "a")
	s.Open("b.go", 1, "b")

	assert.Len(t, s.All(), 2)
}
