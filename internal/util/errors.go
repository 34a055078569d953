package util

import "errors"

var (
	ErrRunNotFound         = errors.New("assessment run not found")
	ErrUnknownSection      = errors.New("unknown section")
	ErrSectionNotActive    = errors.New("no active section")
	ErrOutOfOrderSection   = errors.New("sections must be taken in order")
	ErrSectionFinalized    = errors.New("section already finalized")
	ErrSectionIncomplete   = errors.New("section has unanswered questions")
	ErrUnknownQuestion     = errors.New("question does not belong to the active section")
	ErrInvalidResponse     = errors.New("value is not among the question's options")
	ErrIndexOutOfRange     = errors.New("question index out of range")
	ErrPrematureCompletion = errors.New("recommendation requires all sections to be complete")
)
