package errors

import (
	"strings"
	"unicode"
)

// ValidateCacheKey checks that key can be used as a single file name inside
// the cache directory. Keys are fixed names chosen by collectors, so this
// mainly guards against path traversal through a misconfigured key.
func ValidateCacheKey(key string) error {
	if key == "" {
		return New(ErrCodeInvalidInput, "cache key cannot be empty")
	}
	if len(key) > 255 {
		return New(ErrCodeInvalidInput, "cache key too long (max 255 characters)")
	}
	for _, r := range key {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "cache key contains invalid control characters")
		}
	}
	if strings.ContainsAny(key, "/\\") {
		return New(ErrCodeInvalidInput, "cache key cannot contain path separators")
	}
	if key == "." || key == ".." || strings.HasPrefix(key, ".") {
		return New(ErrCodeInvalidInput, "cache key cannot be a hidden or relative name")
	}
	return nil
}
