package errors

import (
	"math"
	"strings"
	"unicode"
)

// ValidateViewport checks the width and height of a viewport requested by a
// client. Negative or zero dimensions, NaN and infinities are rejected; the
// origin may be anywhere on the plane.
func ValidateViewport(x, y, w, h float64) error {
	for _, v := range []float64{x, y, w, h} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return New(ErrCodeInvalidViewport, "viewport values must be finite numbers")
		}
	}
	if w <= 0 || h <= 0 {
		return New(ErrCodeInvalidViewport, "width and height should be > 0 (got %g x %g)", w, h)
	}
	return nil
}

// ValidateZoom checks that both zoom factors are finite and strictly positive.
func ValidateZoom(zx, zy float64) error {
	if math.IsNaN(zx) || math.IsNaN(zy) || math.IsInf(zx, 0) || math.IsInf(zy, 0) {
		return New(ErrCodeInvalidZoom, "zoom must be a finite number")
	}
	if zx <= 0 || zy <= 0 {
		return New(ErrCodeInvalidZoom, "zoom should be > 0 (got %g, %g)", zx, zy)
	}
	return nil
}

// ValidateTreeName validates the name under which a tree is stored.
//
// The rules mirror what the store and the /id lookup accept:
//   - No empty names
//   - No control characters
//   - No slashes (names appear as a single path segment)
//   - Maximum length of 256 characters
func ValidateTreeName(name string) error {
	if strings.TrimSpace(name) == "" {
		return New(ErrCodeInvalidInput, "tree name cannot be empty")
	}

	if len(name) > 256 {
		return New(ErrCodeInvalidInput, "tree name too long (max 256 characters)")
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "tree name contains invalid control characters")
		}
	}

	if strings.ContainsAny(name, "/\\") {
		return New(ErrCodeInvalidInput, "tree name cannot contain slashes")
	}

	return nil
}

// ValidatePath validates a local file path given on the command line.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 4096 characters
//   - No null bytes or control characters
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 4096
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	return nil
}

// ValidateURL validates a URL string for safety.
// It ensures the URL has a safe scheme (http or https).
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}

	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return New(ErrCodeInvalidInput, "URL must use http or https scheme")
	}

	return nil
}

// IsURL reports whether s looks like an http(s) URL rather than a local path.
func IsURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}
