package domain

import "errors"

// Domain errors (no external dependencies).
var (
	ErrNotFound        = errors.New("document not found")
	ErrInvalidInput    = errors.New("invalid input")
	ErrInvalidFileName = errors.New("invalid file name")
	ErrHashDerivation  = errors.New("error generating hash for PDF data")
	ErrRender          = errors.New("error rendering PDF")
	ErrStorage         = errors.New("storage failure")
)
