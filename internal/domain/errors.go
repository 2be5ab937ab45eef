package domain

import "errors"

var (
	ErrInvalidRecipient           = errors.New("invalid recipient")
	ErrTicketNotFound             = errors.New("ticket not found")
	ErrEventNotFound              = errors.New("event not found")
	ErrUnauthorized               = errors.New("unauthorized")
	ErrTicketFrozen               = errors.New("ticket frozen")
	ErrAlreadyFrozen              = errors.New("ticket already frozen")
	ErrIndexOutOfRange            = errors.New("index out of range")
	ErrAlreadyCanceled            = errors.New("event already canceled")
	ErrEventCanceled              = errors.New("event canceled")
	ErrEventNotCanceled           = errors.New("event not canceled")
	ErrEventStarted               = errors.New("event already started")
	ErrEventEnded                 = errors.New("event already ended")
	ErrEventNotEnded              = errors.New("event not ended yet")
	ErrAlreadyClosed              = errors.New("event already closed")
	ErrSoldOut                    = errors.New("no tickets remaining")
	ErrInsufficientPayment        = errors.New("payment below ticket price")
	ErrOrganizerCannotParticipate = errors.New("organizer cannot participate")
	ErrAlreadyParticipated        = errors.New("already participated")
	ErrCommitmentMismatch         = errors.New("revealed data does not match commitment")
	ErrInvalidSchedule            = errors.New("invalid schedule")
	ErrInvalidCapacity            = errors.New("invalid ticket count")
	ErrInvalidSpeakers            = errors.New("speaker list must not be empty")
	ErrInvalidSplit               = errors.New("owner and speaker percents exceed 100")
	ErrTransferFailed             = errors.New("value transfer failed")
)
