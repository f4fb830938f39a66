package form

import (
	"time"

	"github.com/google/uuid"
	"github.com/lettingshub/app-tenancy/internal/models"
)

// TotalSteps is the number of sequential form sections.
const TotalSteps = 6

// Submission states for a form session.
const (
	SubmissionIdle       = "idle"
	SubmissionSubmitting = "submitting"
	SubmissionSubmitted  = "submitted"
)

// GuarantorDraft holds in-progress guarantor sub-form edits for one
// applicant. Edits stay here until saved; canceling throws them away without
// touching the applicant.
type GuarantorDraft struct {
	ApplicantID string           `json:"applicant_id"`
	Fields      models.Guarantor `json:"fields"`
}

// Session is the working state of one form session: the application being
// assembled, the navigation position, and the guarantor sub-flow. A session
// has a single writer; it is serialized to the session store between
// requests.
type Session struct {
	ID          string                      `json:"id"`
	CurrentStep int                         `json:"current_step"`
	Preferences models.PropertyPreferences  `json:"preferences"`
	Applicants  []models.Applicant          `json:"applicants"`
	// Details is nil until the household section has been answered, so the
	// validator can tell "not answered" apart from "answered false".
	Details       *models.AdditionalDetails `json:"details,omitempty"`
	Sharing       models.DataSharing        `json:"sharing"`
	Signature     string                    `json:"signature"`
	TermsAccepted bool                      `json:"terms_accepted"`
	Guarantor     *GuarantorDraft           `json:"guarantor,omitempty"`
	Submission    string                    `json:"submission"`
	ApplicationID string                    `json:"application_id,omitempty"`
	CreatedAt     time.Time                 `json:"created_at"`
	UpdatedAt     time.Time                 `json:"updated_at"`
}

// NewSession creates a fresh session at step 1 with a single empty applicant.
func NewSession() *Session {
	now := time.Now().UTC()
	return &Session{
		ID:          uuid.NewString(),
		CurrentStep: 1,
		Applicants:  []models.Applicant{NewApplicant()},
		Submission:  SubmissionIdle,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// Snapshot assembles an immutable Application from the session's current
// state. The copy is deep: later session edits never reach a snapshot that
// is already in flight.
func (s *Session) Snapshot() *models.Application {
	applicants := make([]models.Applicant, len(s.Applicants))
	copy(applicants, s.Applicants)
	for i := range applicants {
		if applicants[i].Guarantor != nil {
			g := *applicants[i].Guarantor
			applicants[i].Guarantor = &g
		}
	}

	var details models.AdditionalDetails
	if s.Details != nil {
		details = *s.Details
	}

	return &models.Application{
		Preferences:       s.Preferences,
		Applicants:        applicants,
		AdditionalDetails: details,
		DataSharing:       s.Sharing,
		Signature:         s.Signature,
		Status:            models.StatusPending,
		SubmittedAt:       time.Now().UTC(),
	}
}

// Validate runs the step validator against the session's current state.
func (s *Session) Validate(step int) bool {
	return ValidateStep(step, s.Applicants, s.Preferences, s.Details, s.Signature, s.TermsAccepted)
}

// Errors returns the validation messages for a step against the session's
// current state.
func (s *Session) Errors(step int) []string {
	return StepErrors(step, s.Applicants, s.Preferences, s.Details, s.Signature, s.TermsAccepted)
}

// Touch updates the session's modification time.
func (s *Session) Touch() {
	s.UpdatedAt = time.Now().UTC()
}
