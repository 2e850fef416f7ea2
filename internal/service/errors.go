package service

import "errors"

// ErrNothingToExport is informational: the store holds no entries.
var ErrNothingToExport = errors.New("no entries recorded")
