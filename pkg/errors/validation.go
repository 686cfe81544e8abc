package errors

import (
	"math"
	"strings"
	"unicode"
)

// maxItemIDLength bounds item identifiers so they stay usable as SVG ids and cache key parts.
const maxItemIDLength = 256

// ValidateItemID validates an item identifier.
//
// The validation rules are intentionally conservative:
//   - No empty ids
//   - No control characters
//   - No whitespace-only ids
//   - Maximum length of 256 characters
func ValidateItemID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidItem, "item id cannot be empty")
	}

	if len(id) > maxItemIDLength {
		return New(ErrCodeInvalidItem, "item id too long (max %d characters)", maxItemIDLength)
	}

	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidItem, "item id contains invalid control characters")
		}
	}

	if strings.TrimSpace(id) == "" {
		return New(ErrCodeInvalidItem, "item id cannot be blank")
	}

	return nil
}

// ValidateDimension checks that an intrinsic item dimension is a finite positive number.
func ValidateDimension(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return New(ErrCodeInvalidItem, "%s must be finite, got %v", name, v)
	}
	if v <= 0 {
		return New(ErrCodeInvalidItem, "%s must be positive, got %v", name, v)
	}
	return nil
}

// ValidateManifestFilename validates an album manifest filename for safety.
// It ensures the filename is a simple basename without path components.
func ValidateManifestFilename(filename string) error {
	if filename == "" {
		return New(ErrCodeInvalidManifest, "manifest filename cannot be empty")
	}

	// Must be a simple filename, not a path
	if strings.ContainsAny(filename, "/\\") {
		return New(ErrCodeInvalidManifest, "manifest filename cannot contain path separators")
	}

	if strings.HasPrefix(filename, ".") {
		return New(ErrCodeInvalidManifest, "manifest filename cannot be a hidden file")
	}

	return nil
}

// ValidatePath validates a relative file path referenced from a manifest.
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
