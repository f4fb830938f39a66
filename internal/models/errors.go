package models

import "errors"

// Error constants for form session and submission operations
var (
	ErrSessionNotFound      = errors.New("form session not found")
	ErrApplicantNotFound    = errors.New("applicant not found")
	ErrUnknownField         = errors.New("unknown applicant field")
	ErrInvalidFieldValue    = errors.New("invalid value for applicant field")
	ErrInvalidStep          = errors.New("step must be between 1 and 6")
	ErrGuarantorOpen        = errors.New("a guarantor form is already open")
	ErrGuarantorNotOpen     = errors.New("no guarantor form is open")
	ErrGuarantorNotRequired = errors.New("applicant does not require a guarantor")
	ErrSubmissionInFlight   = errors.New("submission already in progress")
	ErrAlreadySubmitted     = errors.New("application already submitted")
	ErrPersistenceFailed    = errors.New("failed to store application")
	ErrApplicationNotFound  = errors.New("application not found")
	ErrInvalidStatus        = errors.New("invalid application status")
)
