package symbols

import "errors"

// ErrConfigNotFound is returned by BuildProgram when no project configuration
// exists in the start directory or any of its parents. Symbol resolution is
// meaningless without it, so callers should stop and tell the user how to
// create one.
var ErrConfigNotFound = errors.New("project configuration not found")
