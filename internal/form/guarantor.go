package form

import (
	"github.com/lettingshub/app-tenancy/internal/models"
)

// OpenGuarantor opens the guarantor sub-form for one applicant. Only one
// sub-form can be open at a time, and only for an applicant whose
// requires-guarantor flag is set. An existing guarantor record pre-fills the
// draft.
func (s *Session) OpenGuarantor(applicantID string) error {
	if s.Guarantor != nil {
		return models.ErrGuarantorOpen
	}

	var applicant *models.Applicant
	for i := range s.Applicants {
		if s.Applicants[i].ID == applicantID {
			applicant = &s.Applicants[i]
			break
		}
	}
	if applicant == nil {
		return models.ErrApplicantNotFound
	}
	if !applicant.RequiresGuarantor {
		return models.ErrGuarantorNotRequired
	}

	draft := GuarantorDraft{ApplicantID: applicantID}
	if applicant.Guarantor != nil {
		draft.Fields = *applicant.Guarantor
	}
	s.Guarantor = &draft
	return nil
}

// UpdateGuarantor replaces the draft's fields. The owning applicant is not
// touched until the draft is saved.
func (s *Session) UpdateGuarantor(fields models.Guarantor) error {
	if s.Guarantor == nil {
		return models.ErrGuarantorNotOpen
	}
	s.Guarantor.Fields = fields
	return nil
}

// SaveGuarantor merges the draft onto the applicant it was opened for and
// closes the sub-form. The guarantor record belongs to exactly that
// applicant.
func (s *Session) SaveGuarantor() error {
	if s.Guarantor == nil {
		return models.ErrGuarantorNotOpen
	}

	fields := s.Guarantor.Fields
	updated, err := replaceGuarantor(s.Applicants, s.Guarantor.ApplicantID, &fields)
	if err != nil {
		return err
	}
	s.Applicants = updated
	s.Guarantor = nil
	return nil
}

// CancelGuarantor discards the draft without mutating any applicant. It is
// safe to call with no sub-form open.
func (s *Session) CancelGuarantor() {
	s.Guarantor = nil
}

// dropOrphanedGuarantorDraft discards an open draft whose owning applicant
// is no longer in the list.
func (s *Session) dropOrphanedGuarantorDraft() {
	if s.Guarantor == nil {
		return
	}
	for _, a := range s.Applicants {
		if a.ID == s.Guarantor.ApplicantID {
			return
		}
	}
	s.Guarantor = nil
}

func replaceGuarantor(applicants []models.Applicant, id string, g *models.Guarantor) ([]models.Applicant, error) {
	idx := -1
	for i := range applicants {
		if applicants[i].ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil, models.ErrApplicantNotFound
	}

	out := make([]models.Applicant, len(applicants))
	copy(out, applicants)
	out[idx].Guarantor = g
	return out, nil
}
