package cards

import "errors"

var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrEmptyDeck       = errors.New("deck is empty")
	ErrInvalidState    = errors.New("invalid state")
)
