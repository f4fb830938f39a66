package form

import (
	"strconv"

	"github.com/google/uuid"
	"github.com/lettingshub/app-tenancy/internal/models"
)

// Applicant list bounds: an application always names at least one and at
// most five co-tenants.
const (
	MinApplicants = 1
	MaxApplicants = 5
)

// NewApplicant creates an empty applicant with a fresh opaque id. IDs are
// never reused within a session.
func NewApplicant() models.Applicant {
	return models.Applicant{ID: uuid.NewString()}
}

// AddApplicant appends a new empty applicant. At the cap the list is
// returned unchanged, not an error.
func AddApplicant(applicants []models.Applicant) []models.Applicant {
	if len(applicants) >= MaxApplicants {
		return applicants
	}
	out := make([]models.Applicant, len(applicants), len(applicants)+1)
	copy(out, applicants)
	return append(out, NewApplicant())
}

// RemoveApplicant removes the applicant with the given id. Removing the last
// remaining applicant is a no-op, as is an unknown id.
func RemoveApplicant(applicants []models.Applicant, id string) []models.Applicant {
	if len(applicants) <= MinApplicants {
		return applicants
	}
	idx := -1
	for i, a := range applicants {
		if a.ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return applicants
	}
	out := make([]models.Applicant, 0, len(applicants)-1)
	out = append(out, applicants[:idx]...)
	out = append(out, applicants[idx+1:]...)
	return out
}

// SetApplicantCount reconciles the list to exactly n entries: fresh empty
// applicants are appended, or the tail is truncated in order. n is clamped
// to the [1, 5] bounds.
func SetApplicantCount(applicants []models.Applicant, n int) []models.Applicant {
	if n < MinApplicants {
		n = MinApplicants
	}
	if n > MaxApplicants {
		n = MaxApplicants
	}

	if n == len(applicants) {
		return applicants
	}

	out := make([]models.Applicant, 0, n)
	if n < len(applicants) {
		out = append(out, applicants[:n]...)
		return out
	}

	out = append(out, applicants...)
	for len(out) < n {
		out = append(out, NewApplicant())
	}
	return out
}

// AddApplicant appends a new empty applicant to the session.
func (s *Session) AddApplicant() {
	s.Applicants = AddApplicant(s.Applicants)
}

// RemoveApplicant removes the applicant with the given id from the session.
// A guarantor draft opened for that applicant is discarded with it.
func (s *Session) RemoveApplicant(id string) {
	s.Applicants = RemoveApplicant(s.Applicants, id)
	s.dropOrphanedGuarantorDraft()
}

// SetApplicantCount reconciles the session's applicant list to exactly n
// entries. A guarantor draft whose applicant was truncated is discarded.
func (s *Session) SetApplicantCount(n int) {
	s.Applicants = SetApplicantCount(s.Applicants, n)
	s.dropOrphanedGuarantorDraft()
}

// UpdateApplicantField replaces a single keyed field on the applicant with
// the given id and returns a new list; other applicants are shared, the
// edited one is copied.
func UpdateApplicantField(applicants []models.Applicant, id, field, value string) ([]models.Applicant, error) {
	idx := -1
	for i, a := range applicants {
		if a.ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil, models.ErrApplicantNotFound
	}

	updated := applicants[idx]
	if updated.Guarantor != nil {
		g := *updated.Guarantor
		updated.Guarantor = &g
	}
	if err := setApplicantField(&updated, field, value); err != nil {
		return nil, err
	}

	out := make([]models.Applicant, len(applicants))
	copy(out, applicants)
	out[idx] = updated
	return out, nil
}

func setApplicantField(a *models.Applicant, field, value string) error {
	switch field {
	case "first_name":
		a.FirstName = value
	case "last_name":
		a.LastName = value
	case "email":
		a.Email = value
	case "phone":
		a.Phone = value
	case "date_of_birth":
		a.DateOfBirth = value
	case "employment_status":
		a.EmploymentStatus = value
	case "company":
		a.Company = value
	case "job_title":
		a.JobTitle = value
	case "annual_income":
		a.AnnualIncome = value
	case "length_of_service":
		a.LengthOfService = value
	case "current_address":
		a.CurrentAddress = value
	case "current_postcode":
		a.CurrentPostcode = value
	case "current_move_in_date":
		a.CurrentMoveInDate = value
	case "current_vacate_date":
		a.CurrentVacateDate = value
	case "current_property_status":
		a.CurrentPropertyStatus = value
	case "current_rental_amount":
		a.CurrentRentalAmount = value
	case "adverse_credit_details":
		a.AdverseCreditDetails = value
	case "uk_roi_passport":
		return setBoolField(&a.UKROIPassport, value)
	case "adverse_credit":
		return setBoolField(&a.AdverseCredit, value)
	case "requires_guarantor":
		return setBoolField(&a.RequiresGuarantor, value)
	default:
		return models.ErrUnknownField
	}
	return nil
}

func setBoolField(dst *bool, value string) error {
	b, err := strconv.ParseBool(value)
	if err != nil {
		return models.ErrInvalidFieldValue
	}
	*dst = b
	return nil
}
