package employee

import "errors"

var (
	ErrNotFound     = errors.New("employee not found")
	ErrNameRequired = errors.New("full name is required")
	ErrNegativeRate = errors.New("hourly rate must not be negative")
)
