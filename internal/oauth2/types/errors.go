package types

import (
	"errors"
)

var ErrInvalidAttributeType = errors.New("invalid attribute type")
