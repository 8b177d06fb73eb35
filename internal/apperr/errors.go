package apperr

import "errors"

var (
	ErrSourceNotRecognised = errors.New("not recognised")
	ErrMissingKeysColumn   = errors.New("missing \"keys\" column")
	ErrEmptySource         = errors.New("source has no commands")
)
