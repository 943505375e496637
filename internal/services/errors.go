package services

import "github.com/pkg/errors"

// Failure taxonomy surfaced to the HTTP layer. Handlers translate these
// with errors.Is; anything else is an internal error and the transaction
// that produced it has been rolled back in full.
var (
	ErrInvalidAmount      = errors.New("amount must be greater than zero")
	ErrAmountTooLarge     = errors.New("amount exceeds the pledge's outstanding balance")
	ErrInvalidFrequency   = errors.New("unsupported frequency")
	ErrInvalidContributor = errors.New("contributor id is not a valid user id")
	ErrNotMember          = errors.New("user is not a member of the group")
	ErrNotAdmin           = errors.New("only group admins may perform this action")
	ErrNotOwner           = errors.New("pledge does not belong to the requesting user")
	ErrGroupNotFound      = errors.New("group not found")
	ErrPledgeNotFound     = errors.New("pledge not found")
	ErrAlreadyPaid        = errors.New("pledge has already been paid")
)
