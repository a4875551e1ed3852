package validation

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

const (
	MsgNoFile       = "Please select a file to upload"
	MsgBadExtension = "Only CSV and Excel files are supported"
	MsgEmptyQuery   = "Please enter a query"
	MsgFileTooLarge = "File is too large (%s, limit %s)"
)

// AllowedExtensions lists the accepted upload extensions, lower-case and without the dot.
var AllowedExtensions = []string{"csv", "xlsx", "xls"}

// Error is a failure detected locally, before any request is sent.
type Error struct {
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func newError(format string, args ...interface{}) *Error {
	return &Error{Message: fmt.Sprintf(format, args...)}
}

// IsValidationError reports whether err is (or wraps) a validation Error.
func IsValidationError(err error) bool {
	var ve *Error
	return errors.As(err, &ve)
}

// FileExtension returns the lower-cased extension of name without the leading dot.
// A name with no dot has no extension.
func FileExtension(name string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
}

// IsAllowedFile checks the extension of name case-insensitively.
func IsAllowedFile(name string) bool {
	ext := FileExtension(name)
	for _, allowed := range AllowedExtensions {
		if ext == allowed {
			return true
		}
	}
	return false
}

// ValidateUploadFile checks a selected file before upload. maxSize <= 0 disables the size check.
func ValidateUploadFile(name string, size int64, maxSize int64) error {
	if strings.TrimSpace(name) == "" {
		return &Error{Message: MsgNoFile}
	}
	if !IsAllowedFile(name) {
		return &Error{Message: MsgBadExtension}
	}
	if maxSize > 0 && size > maxSize {
		return newError(MsgFileTooLarge, FormatSize(size), FormatSize(maxSize))
	}
	return nil
}

// ValidateQuery rejects empty and whitespace-only questions.
func ValidateQuery(query string) error {
	if strings.TrimSpace(query) == "" {
		return &Error{Message: MsgEmptyQuery}
	}
	return nil
}

// FormatSize renders a byte count as megabytes with two decimals, e.g. "1.50 MB".
func FormatSize(size int64) string {
	return fmt.Sprintf("%.2f MB", float64(size)/1024/1024)
}
