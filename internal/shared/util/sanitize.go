package util

import (
	"path/filepath"
	"strings"
)

// SanitizeFileName strips path components and unsafe characters from an
// uploaded file name. Falls back to "upload.pdf" if nothing survives.
func SanitizeFileName(name string) string {
	name = filepath.Base(strings.TrimSpace(name))
	name = strings.ReplaceAll(name, "\\", "_")

	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.', r == '-', r == '_', r == ' ':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}

	cleaned := strings.Trim(b.String(), ". ")
	if cleaned == "" || cleaned == "_" {
		return "upload.pdf"
	}
	return cleaned
}
