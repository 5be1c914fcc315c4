package errors

import (
	"path/filepath"
	"strings"
	"unicode"
)

// maxUnitIDLength bounds unit identifiers read from data files and requests.
const maxUnitIDLength = 256

// ValidateUnitID validates an organizational unit identifier.
//
// Identifiers are opaque to the layout engine, so the rules only reject
// values that cannot be rendered or stored safely:
//   - No empty ids
//   - No leading or trailing whitespace
//   - No control characters
//   - Maximum length of 256 characters
func ValidateUnitID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidUnitID, "unit id cannot be empty")
	}

	if len(id) > maxUnitIDLength {
		return New(ErrCodeInvalidUnitID, "unit id too long (max %d characters)", maxUnitIDLength)
	}

	if strings.TrimSpace(id) != id {
		return New(ErrCodeInvalidUnitID, "unit id %q has surrounding whitespace", id)
	}

	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidUnitID, "unit id contains invalid control characters")
		}
	}

	return nil
}

// dataExtensions lists the file extensions orgchart can import units from.
var dataExtensions = map[string]bool{
	".csv":  true,
	".tsv":  true,
	".json": true,
	".yaml": true,
	".yml":  true,
}

// ValidateDataFilename validates an uploaded or referenced data file name.
// It ensures the name is a simple basename with a supported extension.
func ValidateDataFilename(filename string) error {
	if filename == "" {
		return New(ErrCodeInvalidInput, "data filename cannot be empty")
	}

	if strings.ContainsAny(filename, "/\\") {
		return New(ErrCodeInvalidInput, "data filename cannot contain path separators")
	}

	if strings.HasPrefix(filename, ".") {
		return New(ErrCodeInvalidInput, "data filename cannot be a hidden file")
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if !dataExtensions[ext] {
		return New(ErrCodeUnsupported, "unsupported data file type %q", ext)
	}

	return nil
}

// ValidatePath validates a relative output path for safety.
// It prevents path traversal and ensures reasonable path length.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - No absolute paths (must be relative)
//   - No path traversal sequences (..)
//   - No backslashes (Windows-style paths)
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	if strings.HasPrefix(path, "/") {
		return New(ErrCodeInvalidPath, "path must be relative (cannot start with /)")
	}

	if strings.Contains(path, "..") {
		return New(ErrCodeInvalidPath, "path cannot contain path traversal sequences (..)")
	}

	if strings.Contains(path, "\\") {
		return New(ErrCodeInvalidPath, "path cannot contain backslashes")
	}

	return nil
}
