package settings

import "errors"

var (
	ErrInvalidSettings = errors.New("invalid email settings")
	ErrUnknownProvider = errors.New("unknown email provider")
	ErrUnknownKey      = errors.New("unknown settings key")
)
