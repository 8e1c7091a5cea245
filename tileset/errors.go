package tileset

import "errors"

// ErrPatternSizeMismatch is returned when the supplied pattern does not
// contain pw*ph elements.
var ErrPatternSizeMismatch = errors.New("tileset: pattern length does not match pw*ph")

// ErrWindowTooLarge is returned when the tile window does not fit inside
// the pattern in at least one dimension.
var ErrWindowTooLarge = errors.New("tileset: tile window larger than pattern")
