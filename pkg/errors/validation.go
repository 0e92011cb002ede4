package errors

import (
	"strings"
	"unicode"
)

// maxNameLength bounds xform and port names.
const maxNameLength = 128

// ValidateXformName validates an xform name before it enters a graph.
//
// The validation rules:
//   - No empty names
//   - Maximum length of 128 characters
//   - No control characters or whitespace
//   - No ':' (reserved as the separator in "xform:port" references)
func ValidateXformName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidName, "xform name cannot be empty")
	}
	if len(name) > maxNameLength {
		return New(ErrCodeInvalidName, "xform name too long (max %d characters)", maxNameLength)
	}
	for _, r := range name {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			return New(ErrCodeInvalidName, "xform name %q contains whitespace or control characters", name)
		}
	}
	if strings.Contains(name, ":") {
		return New(ErrCodeInvalidName, "xform name %q cannot contain ':'", name)
	}
	return nil
}

// ValidatePortRef splits a port reference of the form "xform:port".
// Both halves must be non-empty and the xform half must be a valid name.
func ValidatePortRef(ref string) (xformName, portName string, err error) {
	i := strings.LastIndex(ref, ":")
	if i <= 0 || i == len(ref)-1 {
		return "", "", New(ErrCodeInvalidPortRef, "port reference %q must have the form xform:port", ref)
	}
	xformName, portName = ref[:i], ref[i+1:]
	if err := ValidateXformName(xformName); err != nil {
		return "", "", Wrap(ErrCodeInvalidPortRef, err, "port reference %q", ref)
	}
	return xformName, portName, nil
}

// ValidateStoreKey validates a graph library key for safety.
// It rejects keys that could escape the store directory.
//
// Validation rules:
//   - Key cannot be empty
//   - Maximum length of 256 characters
//   - No control characters
//   - No path traversal sequences (..) or separators
func ValidateStoreKey(key string) error {
	if key == "" {
		return New(ErrCodeInvalidKey, "key cannot be empty")
	}
	if len(key) > 256 {
		return New(ErrCodeInvalidKey, "key too long (max 256 characters)")
	}
	for _, r := range key {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidKey, "key contains invalid control characters")
		}
	}
	for _, pattern := range []string{"..", "/", "\\"} {
		if strings.Contains(key, pattern) {
			return New(ErrCodeInvalidKey, "key contains invalid characters: %q", pattern)
		}
	}
	return nil
}
