package reporterr

// ErrorClass tells the caller whether an error aborts the report or only the
// entry it concerns.
type ErrorClass string

const (
	// ClassFatal errors abort construction of the enclosing record and the report.
	ClassFatal ErrorClass = "fatal"

	// ClassRecoverable errors are collected alongside an otherwise complete result.
	ClassRecoverable ErrorClass = "recoverable"
)

// String returns the string representation of the class.
func (c ErrorClass) String() string {
	return string(c)
}

// DefaultClassForCode returns the default error class for a given error code.
func DefaultClassForCode(code string) ErrorClass {
	switch code {
	case CodeUnresolvedReference:
		return ClassRecoverable
	default:
		return ClassFatal
	}
}
