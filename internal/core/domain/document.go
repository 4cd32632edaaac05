package domain

import (
	"path/filepath"
	"strings"
)

// DocumentType tags a Document with the kind of extraction it needs.
type DocumentType string

// Supported document types.
const (
	// DocumentTypePDF is a PDF file with a text layer or scanned pages.
	DocumentTypePDF DocumentType = "pdf"

	// DocumentTypeImage is a raster image that must be OCRed.
	DocumentTypeImage DocumentType = "image"
)

// extensionTypes is the fixed allow-list of input file extensions.
var extensionTypes = map[string]DocumentType{
	".pdf": DocumentTypePDF,
	".png": DocumentTypeImage,
}

// DocumentTypeForPath returns the type tag for a file path based on its extension.
// The second return value is false when the extension is not on the allow-list.
func DocumentTypeForPath(path string) (DocumentType, bool) {
	t, ok := extensionTypes[strings.ToLower(filepath.Ext(path))]
	return t, ok
}

// SupportedExtensions returns the allow-listed extensions.
func SupportedExtensions() []string {
	return []string{".pdf", ".png"}
}

// IsValid returns true if the document type is recognised.
func (t DocumentType) IsValid() bool {
	return t == DocumentTypePDF || t == DocumentTypeImage
}

// String returns the string representation.
func (t DocumentType) String() string {
	return string(t)
}

// Document is a discovered input file. It is never mutated after discovery.
type Document struct {
	// Path is the file location and the document's identity.
	Path string

	// Type selects the extractor.
	Type DocumentType
}

// NewDocument builds a Document from a path, tagging it by extension.
func NewDocument(path string) (Document, bool) {
	t, ok := DocumentTypeForPath(path)
	if !ok {
		return Document{}, false
	}
	return Document{Path: path, Type: t}, true
}

// Name returns the display name used in the result sink.
func (d Document) Name() string {
	return filepath.Base(d.Path)
}
