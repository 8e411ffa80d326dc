package i18n

import (
	"context"
	"path"
	"strings"
)

// Parser turns locale file content into translations keyed by language code.
type Parser interface {
	Parse(ctx context.Context, content string) (map[string]map[string]any, error)

	// SupportsFileExtension reports whether ext (with or without the leading dot) is handled.
	SupportsFileExtension(ext string) bool
}

// NewParserForFile returns a parser matching the file extension, or nil.
func NewParserForFile(filename string) Parser {
	switch strings.ToLower(strings.TrimPrefix(path.Ext(filename), ".")) {
	case "json":
		return NewJSONParser()
	case "yaml", "yml":
		return NewYAMLParser()
	default:
		return nil
	}
}
