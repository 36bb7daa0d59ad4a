package client

import "errors"

var (
	ErrUnknownCommand  = errors.New("unknown command")
	ErrMissingArgument = errors.New("missing argument")
	ErrInvalidEntryID  = errors.New("invalid entry id")
	ErrNothingToUpdate = errors.New("nothing to update")
)
