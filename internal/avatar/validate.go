package avatar

import (
	"errors"
	"strings"
)

var (
	ErrNoFile          = errors.New("no file uploaded")
	ErrUnsupportedType = errors.New("only .png allowed")
	ErrTooLarge        = errors.New("file too large")
)

// ValidateFilename enforces the upload type policy before any byte is
// written: exactly one extension, matched case-insensitively. The size
// ceiling is enforced separately, on the stream itself, during staging.
func ValidateFilename(name string) error {
	if name == "" {
		return ErrNoFile
	}
	if !strings.HasSuffix(strings.ToLower(name), keyExt) {
		return ErrUnsupportedType
	}
	return nil
}
