package form

import (
	"testing"

	"github.com/lettingshub/app-tenancy/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validPreferences() models.PropertyPreferences {
	return models.PropertyPreferences{
		Address:          "14 Croft Road, Guildford",
		Postcode:         "GU1 4QT",
		MaxRent:          "1450",
		MoveInDate:       "2026-10-01",
		LatestMoveInDate: "2026-11-01",
		TenancyTerm:      "12-months",
	}
}

func validApplicant() models.Applicant {
	a := NewApplicant()
	a.FirstName = "Jane"
	a.LastName = "Doe"
	a.Email = "jane.doe@example.co.uk"
	a.Phone = "+447911123456"
	a.DateOfBirth = "1992-03-14"
	a.EmploymentStatus = "employed-full-time"
	a.Company = "Acme Ltd"
	a.JobTitle = "Analyst"
	a.AnnualIncome = "32000"
	a.LengthOfService = "3 years"
	a.CurrentAddress = "2 Mill Lane, Woking"
	a.CurrentPostcode = "GU21 6AA"
	a.CurrentMoveInDate = "2022-05-01"
	a.CurrentVacateDate = "2026-09-30"
	a.CurrentPropertyStatus = models.PropertyStatusOwnerOccupied
	return a
}

func validDetails() *models.AdditionalDetails {
	return &models.AdditionalDetails{}
}

func TestValidateStep_IsPure(t *testing.T) {
	applicants := []models.Applicant{validApplicant()}
	prefs := validPreferences()
	details := validDetails()

	first := ValidateStep(2, applicants, prefs, details, "Jane Doe", true)
	second := ValidateStep(2, applicants, prefs, details, "Jane Doe", true)

	assert.Equal(t, first, second)
	assert.Equal(t,
		StepErrors(2, applicants, prefs, details, "Jane Doe", true),
		StepErrors(2, applicants, prefs, details, "Jane Doe", true))
}

func TestStepErrors_Step1(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*models.PropertyPreferences)
		wantError string
	}{
		{"missing address", func(p *models.PropertyPreferences) { p.Address = "" }, "property address is required"},
		{"missing postcode", func(p *models.PropertyPreferences) { p.Postcode = "" }, "property postcode is required"},
		{"missing max rent", func(p *models.PropertyPreferences) { p.MaxRent = "" }, "maximum rent is required"},
		{"missing move-in date", func(p *models.PropertyPreferences) { p.MoveInDate = "" }, "preferred move-in date is required"},
		{"missing latest move-in date", func(p *models.PropertyPreferences) { p.LatestMoveInDate = "" }, "latest move-in date is required"},
		{"missing tenancy term", func(p *models.PropertyPreferences) { p.TenancyTerm = "" }, "tenancy term is required"},
		{"whitespace only address", func(p *models.PropertyPreferences) { p.Address = "   " }, "property address is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prefs := validPreferences()
			tt.mutate(&prefs)

			errs := StepErrors(1, nil, prefs, nil, "", false)

			assert.Contains(t, errs, tt.wantError)
			assert.False(t, ValidateStep(1, nil, prefs, nil, "", false))
		})
	}

	assert.True(t, ValidateStep(1, nil, validPreferences(), nil, "", false))
}

func TestStepErrors_Step2_FailsClosedOnEmptyList(t *testing.T) {
	errs := StepErrors(2, nil, validPreferences(), nil, "", false)

	require.Len(t, errs, 1)
	assert.Equal(t, "at least one applicant is required", errs[0])
}

func TestStepErrors_Step2_EveryApplicantChecked(t *testing.T) {
	first := validApplicant()
	second := validApplicant()
	second.Email = ""

	errs := StepErrors(2, []models.Applicant{first, second}, validPreferences(), nil, "", false)

	require.Len(t, errs, 1)
	assert.Equal(t, "applicant 2: email is required", errs[0])
}

func TestStepErrors_Step3(t *testing.T) {
	a := validApplicant()
	a.EmploymentStatus = ""
	a.JobTitle = ""

	errs := StepErrors(3, []models.Applicant{a}, validPreferences(), nil, "", false)

	assert.Contains(t, errs, "applicant 1: employment status is required")
	assert.Contains(t, errs, "applicant 1: job title is required")
	assert.True(t, ValidateStep(3, []models.Applicant{validApplicant()}, validPreferences(), nil, "", false))
}

func TestStepErrors_Step4_ConditionalRentalAmount(t *testing.T) {
	tests := []struct {
		name         string
		status       string
		rentalAmount string
		wantValid    bool
	}{
		{"rented privately without amount", models.PropertyStatusRentedPrivately, "", false},
		{"rented through agent without amount", models.PropertyStatusRentedAgent, "", false},
		{"rented privately with amount", models.PropertyStatusRentedPrivately, "950", true},
		{"owner occupied without amount", models.PropertyStatusOwnerOccupied, "", true},
		{"living with family without amount", models.PropertyStatusLivingWithFamily, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := validApplicant()
			a.CurrentPropertyStatus = tt.status
			a.CurrentRentalAmount = tt.rentalAmount

			valid := ValidateStep(4, []models.Applicant{a}, validPreferences(), nil, "", false)

			assert.Equal(t, tt.wantValid, valid)
			if !tt.wantValid {
				errs := StepErrors(4, []models.Applicant{a}, validPreferences(), nil, "", false)
				assert.Contains(t, errs, "applicant 1: rental amount is required")
			}
		})
	}
}

func TestStepErrors_Step5(t *testing.T) {
	t.Run("unanswered details fail", func(t *testing.T) {
		errs := StepErrors(5, nil, validPreferences(), nil, "", false)

		require.Len(t, errs, 1)
		assert.Equal(t, "household details must be answered", errs[0])
	})

	t.Run("pets require details", func(t *testing.T) {
		details := &models.AdditionalDetails{HasPets: true}

		errs := StepErrors(5, nil, validPreferences(), details, "", false)

		assert.Contains(t, errs, "pet details are required")
	})

	t.Run("children require details", func(t *testing.T) {
		details := &models.AdditionalDetails{HasChildren: true}

		errs := StepErrors(5, nil, validPreferences(), details, "", false)

		assert.Contains(t, errs, "children details are required")
	})

	t.Run("flags with details pass", func(t *testing.T) {
		details := &models.AdditionalDetails{
			HasPets:         true,
			PetDetails:      "one cat",
			HasChildren:     true,
			ChildrenDetails: "two children, 4 and 7",
		}

		assert.True(t, ValidateStep(5, nil, validPreferences(), details, "", false))
	})

	t.Run("all flags false pass", func(t *testing.T) {
		assert.True(t, ValidateStep(5, nil, validPreferences(), validDetails(), "", false))
	})
}

func TestStepErrors_Step6(t *testing.T) {
	assert.True(t, ValidateStep(6, nil, validPreferences(), nil, "Jane Doe", true))

	errs := StepErrors(6, nil, validPreferences(), nil, "", false)
	assert.Contains(t, errs, "terms and conditions must be accepted")
	assert.Contains(t, errs, "signature is required")

	errs = StepErrors(6, nil, validPreferences(), nil, "Jane Doe", false)
	require.Len(t, errs, 1)
	assert.Equal(t, "terms and conditions must be accepted", errs[0])
}

func TestStepErrors_UnknownStep(t *testing.T) {
	assert.False(t, ValidateStep(0, nil, validPreferences(), nil, "", false))
	assert.False(t, ValidateStep(7, nil, validPreferences(), nil, "", false))
}
