package services

import "errors"

// ValidationError is a client-side check that failed before any request was
// sent. Its text is shown to the user as is.
type ValidationError string

func (e ValidationError) Error() string { return string(e) }

const (
	ErrPasswordMismatch    ValidationError = "Passwords don't match"
	ErrPasswordTooShort    ValidationError = "Password must be at least 6 characters"
	ErrNoDocumentsSelected ValidationError = "Please select at least one document"
	ErrNoFilesSelected     ValidationError = "Please select files"
	ErrNoFileSelected      ValidationError = "Please select a file"
	ErrNoDataFile          ValidationError = "Please upload a file first"
	ErrInvalidResetLink    ValidationError = "Invalid reset link"
)

// MinPasswordLength applies to signup only.
const MinPasswordLength = 6

var (
	// ErrEmptyQuestion makes ask a no-op.
	ErrEmptyQuestion = errors.New("empty question")
	ErrNoAnswer      = errors.New("no answer returned")
)

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var v ValidationError
	return errors.As(err, &v)
}
