package errors

import "errors"

var ErrNotFound = errors.New("offer not found")
