package settings

import "errors"

var ErrInvalidValue = errors.New("boolean settings accept only \"0\" or \"1\"")
