package repo

import "errors"

// ErrReorderMismatch is returned when a reorder request does not name
// exactly the current entries of the run list.
var ErrReorderMismatch = errors.New("entry ids do not match the run list's entries")
