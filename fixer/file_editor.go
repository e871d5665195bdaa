// Copyright © 2025 The Lantern authors

package fixer

import (
	"fmt"
	"os"

	"github.com/lanternhq/lantern/text"
)

// FileEditor applies range edits directly to files on disk. It is used
// by the CLI; editor-hosted sessions edit through the buffer store
// instead.
type FileEditor struct{}

// ReplaceRange rewrites the file at path with the text at r replaced by
// newText. The file's permissions are preserved.
func (FileEditor) ReplaceRange(path string, r text.Range, newText string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("fix target: %w", err)
	}
	data, err := os.ReadFile(path) //nolint:gosec // edits user-specified files
	if err != nil {
		return fmt.Errorf("fix target: %w", err)
	}
	replaced, ok := text.Replace(string(data), r, newText)
	if !ok {
		return fmt.Errorf("fix target: range %s out of bounds in %s", r, path)
	}
	if err := os.WriteFile(path, []byte(replaced), info.Mode().Perm()); err != nil {
		return fmt.Errorf("fix target: %w", err)
	}
	return nil
}
