package sectionize

import "errors"

var (
	// ErrDocumentNotFound is returned when a document ID or path does
	// not exist.
	ErrDocumentNotFound = errors.New("sectionize: document not found")

	// ErrUnsupportedFormat is returned for unrecognized file formats.
	ErrUnsupportedFormat = errors.New("sectionize: unsupported document format")

	// ErrParsingFailed is returned when document parsing fails.
	ErrParsingFailed = errors.New("sectionize: parsing failed")

	// ErrNoResults is returned when a search yields no matching chunks.
	ErrNoResults = errors.New("sectionize: no results found")

	// ErrInvalidConfig is returned for invalid configuration values.
	ErrInvalidConfig = errors.New("sectionize: invalid configuration")
)
