package shortestpath

import "errors"

// ErrInvalidSource is returned when the source vertex is outside [0, V).
var ErrInvalidSource = errors.New("invalid source vertex")
