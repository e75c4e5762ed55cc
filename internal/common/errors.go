package common

import "errors"

var (
	// Credential errors.
	ErrEmptyToken        = errors.New("empty token")
	ErrCorruptCredential = errors.New("stored credential is corrupt")
)
