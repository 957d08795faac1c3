package repository

import (
	"strings"
)

// ErrorType buckets a database error for logging and mapping decisions
type ErrorType string

const (
	DuplicateKeyError ErrorType = "duplicate_key"
	TransientError    ErrorType = "transient"
	ConnectionError   ErrorType = "connection"
	ConstraintError   ErrorType = "constraint"
)

// markers maps each bucket to the driver message fragments that identify it.
// Order matters: duplicate-key is a constraint violation too, so it is
// checked first.
var markers = []struct {
	errType ErrorType
	needles []string
}{
	{DuplicateKeyError, []string{"duplicate key", "UNIQUE constraint", "Duplicate entry"}},
	{TransientError, []string{"connection reset", "connection refused", "timeout", "EOF", "server closed", "broken pipe"}},
	{ConnectionError, []string{"connection", "dial", "network"}},
	{ConstraintError, []string{"constraint", "violates"}},
}

// ErrorClassifier buckets raw driver errors by message content. GORM with
// the postgres driver surfaces most failures as strings, so matching on
// fragments is the practical option.
type ErrorClassifier struct{}

// NewErrorClassifier creates a new ErrorClassifier
func NewErrorClassifier() *ErrorClassifier {
	return &ErrorClassifier{}
}

// Classify returns the error's bucket, or "" when it fits none
func (c *ErrorClassifier) Classify(err error) ErrorType {
	if err == nil {
		return ""
	}
	msg := err.Error()
	for _, m := range markers {
		for _, needle := range m.needles {
			if strings.Contains(msg, needle) {
				return m.errType
			}
		}
	}
	return ""
}

// IsDuplicateKeyError reports whether err is a unique-constraint violation
func (c *ErrorClassifier) IsDuplicateKeyError(err error) bool {
	return c.Classify(err) == DuplicateKeyError
}

// IsTransientError reports whether err is worth retrying
func (c *ErrorClassifier) IsTransientError(err error) bool {
	return c.Classify(err) == TransientError
}
