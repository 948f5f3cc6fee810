package savings

import "errors"

var ErrInvalidInput = errors.New("invalid input")
