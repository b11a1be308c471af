package rubix

import (
	"errors"
)

var (
	ErrInvalidID = errors.New("invalid identifier")
)
