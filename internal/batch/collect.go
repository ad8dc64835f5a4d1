// Package batch walks an input tree and runs the analyzer over every matching file.
package batch

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

var (
	ErrInputMissing = errors.New("input folder does not exist or is not a directory")
	ErrNoAudioFiles = errors.New("no audio files found")
)

// DefaultExtensions is used when Collect is given no extensions.
//
//nolint:gochecknoglobals // effectively const
var DefaultExtensions = []string{".mp3"}

// Collect returns the files under root whose suffix matches one of extensions,
// compared case-insensitively, in lexical order.
func Collect(root string, extensions []string) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%q: %w", root, ErrInputMissing)
	}

	wanted := normalizeExtensions(extensions)

	var files []string

	err = filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if entry.IsDir() {
			return nil
		}

		if slices.Contains(wanted, strings.ToLower(filepath.Ext(path))) {
			files = append(files, path)
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scanning %q: %w", root, err)
	}

	if len(files) == 0 {
		return nil, fmt.Errorf("%q (%s): %w", root, strings.Join(wanted, ", "), ErrNoAudioFiles)
	}

	slices.Sort(files)

	return files, nil
}

// normalizeExtensions lowercases and dot-prefixes, so "MP3" and ".mp3" are the same filter.
func normalizeExtensions(extensions []string) []string {
	if len(extensions) == 0 {
		extensions = DefaultExtensions
	}

	normalized := make([]string, 0, len(extensions))

	for _, ext := range extensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}

		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}

		if !slices.Contains(normalized, ext) {
			normalized = append(normalized, ext)
		}
	}

	if len(normalized) == 0 {
		return DefaultExtensions
	}

	return normalized
}
