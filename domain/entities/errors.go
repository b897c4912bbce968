package entities

import "errors"

// Domain errors returned by the booking core. All are caller-recoverable;
// the transport layer maps them to responses with errors.Is.
var (
	ErrInvalidInterval     = errors.New("appointment end time must be after start time")
	ErrMentorNotFound      = errors.New("mentor not found")
	ErrSlotUnavailable     = errors.New("mentor is not available for this time slot")
	ErrInsufficientBalance = errors.New("insufficient points in wallet")
	ErrAppointmentNotFound = errors.New("appointment not found")
	ErrWalletNotFound      = errors.New("wallet not found")
	ErrUnauthorized        = errors.New("only the student or the mentor may perform this action")
)
