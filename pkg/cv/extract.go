// Package cv turns uploaded candidate documents into indexable plain text.
package cv

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// maxUploadBytes caps how much of an upload is read. Anything past this is
// silently ignored rather than rejected.
const maxUploadBytes = 2 << 20

// ExtractText reads an uploaded document and returns its plain-text
// content. Only text-like formats are accepted; binary formats need an
// upstream converter.
func ExtractText(r io.Reader, filename string) (string, error) {
	switch ext := strings.ToLower(filepath.Ext(filename)); ext {
	case ".txt", ".md", "":
	default:
		return "", fmt.Errorf("unsupported document format %q, upload plain text", ext)
	}

	raw, err := io.ReadAll(io.LimitReader(r, maxUploadBytes))
	if err != nil {
		return "", fmt.Errorf("read upload: %w", err)
	}

	text := strings.TrimSpace(string(raw))
	if text == "" {
		return "", fmt.Errorf("uploaded document is empty")
	}
	if !utf8.ValidString(text) {
		return "", fmt.Errorf("uploaded document is not valid UTF-8 text")
	}
	return text, nil
}
