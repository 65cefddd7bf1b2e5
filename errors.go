package lineart

import "errors"

// ErrParamRange is wrapped by Params.Validate when a caller-supplied value
// falls outside its documented bounds.
var ErrParamRange = errors.New("lineart: parameter out of range")
