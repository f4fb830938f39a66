package form

import (
	"fmt"
	"strings"

	"github.com/lettingshub/app-tenancy/internal/models"
)

// ValidateStep reports whether a form step can be advanced from. It is a
// pure function of its arguments and never produces side effects; callers
// gate navigation and submission on it.
func ValidateStep(step int, applicants []models.Applicant, prefs models.PropertyPreferences, details *models.AdditionalDetails, signature string, termsAccepted bool) bool {
	return len(StepErrors(step, applicants, prefs, details, signature, termsAccepted)) == 0
}

// StepErrors enumerates the human-readable reasons a step fails validation.
// An unknown step is treated as invalid.
func StepErrors(step int, applicants []models.Applicant, prefs models.PropertyPreferences, details *models.AdditionalDetails, signature string, termsAccepted bool) []string {
	switch step {
	case 1:
		return propertyErrors(prefs)
	case 2:
		return personalErrors(applicants)
	case 3:
		return employmentErrors(applicants)
	case 4:
		return currentAddressErrors(applicants)
	case 5:
		return additionalDetailsErrors(details)
	case 6:
		return termsErrors(signature, termsAccepted)
	default:
		return []string{models.ErrInvalidStep.Error()}
	}
}

func propertyErrors(prefs models.PropertyPreferences) []string {
	var errs []string
	if blank(prefs.Address) {
		errs = append(errs, "property address is required")
	}
	if blank(prefs.Postcode) {
		errs = append(errs, "property postcode is required")
	}
	if blank(prefs.MaxRent) {
		errs = append(errs, "maximum rent is required")
	}
	if blank(prefs.MoveInDate) {
		errs = append(errs, "preferred move-in date is required")
	}
	if blank(prefs.LatestMoveInDate) {
		errs = append(errs, "latest move-in date is required")
	}
	if blank(prefs.TenancyTerm) {
		errs = append(errs, "tenancy term is required")
	}
	return errs
}

func personalErrors(applicants []models.Applicant) []string {
	if len(applicants) == 0 {
		return []string{"at least one applicant is required"}
	}
	var errs []string
	for i, a := range applicants {
		prefix := applicantPrefix(i)
		if blank(a.FirstName) {
			errs = append(errs, prefix+"first name is required")
		}
		if blank(a.LastName) {
			errs = append(errs, prefix+"last name is required")
		}
		if blank(a.DateOfBirth) {
			errs = append(errs, prefix+"date of birth is required")
		}
		if blank(a.Email) {
			errs = append(errs, prefix+"email is required")
		}
		if blank(a.Phone) {
			errs = append(errs, prefix+"phone is required")
		}
	}
	return errs
}

func employmentErrors(applicants []models.Applicant) []string {
	if len(applicants) == 0 {
		return []string{"at least one applicant is required"}
	}
	var errs []string
	for i, a := range applicants {
		prefix := applicantPrefix(i)
		if blank(a.EmploymentStatus) {
			errs = append(errs, prefix+"employment status is required")
		}
		if blank(a.Company) {
			errs = append(errs, prefix+"company name is required")
		}
		if blank(a.JobTitle) {
			errs = append(errs, prefix+"job title is required")
		}
		if blank(a.AnnualIncome) {
			errs = append(errs, prefix+"annual income is required")
		}
		if blank(a.LengthOfService) {
			errs = append(errs, prefix+"length of service is required")
		}
	}
	return errs
}

func currentAddressErrors(applicants []models.Applicant) []string {
	if len(applicants) == 0 {
		return []string{"at least one applicant is required"}
	}
	var errs []string
	for i, a := range applicants {
		prefix := applicantPrefix(i)
		if blank(a.CurrentAddress) {
			errs = append(errs, prefix+"current address is required")
		}
		if blank(a.CurrentPostcode) {
			errs = append(errs, prefix+"current postcode is required")
		}
		if blank(a.CurrentMoveInDate) {
			errs = append(errs, prefix+"move-in date is required")
		}
		if blank(a.CurrentVacateDate) {
			errs = append(errs, prefix+"vacate date is required")
		}
		if blank(a.CurrentPropertyStatus) {
			errs = append(errs, prefix+"property status is required")
		}
		if rentedStatus(a.CurrentPropertyStatus) && blank(a.CurrentRentalAmount) {
			errs = append(errs, prefix+"rental amount is required")
		}
	}
	return errs
}

func additionalDetailsErrors(details *models.AdditionalDetails) []string {
	if details == nil {
		return []string{"household details must be answered"}
	}
	var errs []string
	if details.HasPets && blank(details.PetDetails) {
		errs = append(errs, "pet details are required")
	}
	if details.HasChildren && blank(details.ChildrenDetails) {
		errs = append(errs, "children details are required")
	}
	return errs
}

func termsErrors(signature string, termsAccepted bool) []string {
	var errs []string
	if !termsAccepted {
		errs = append(errs, "terms and conditions must be accepted")
	}
	if blank(signature) {
		errs = append(errs, "signature is required")
	}
	return errs
}

// rentedStatus reports whether a property status means the applicant pays
// rent, which makes the rental amount mandatory.
func rentedStatus(status string) bool {
	return status == models.PropertyStatusRentedPrivately || status == models.PropertyStatusRentedAgent
}

func applicantPrefix(i int) string {
	return fmt.Sprintf("applicant %d: ", i+1)
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}
