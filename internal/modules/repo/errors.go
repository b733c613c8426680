package repo

import "errors"

// ErrAlreadyConverted is returned when a promotion finds the idea already flagged.
var ErrAlreadyConverted = errors.New("idea already converted")
