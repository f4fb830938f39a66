package models

import (
	"time"
)

// Application status values, admin-side only. The form never mutates a
// persisted application.
const (
	StatusPending   = "pending"
	StatusReviewing = "reviewing"
	StatusApproved  = "approved"
	StatusRejected  = "rejected"
)

// Property status values for an applicant's current address. Rental amount
// is required only for the paid-tenancy statuses.
const (
	PropertyStatusRentedPrivately  = "rented-privately"
	PropertyStatusRentedAgent      = "rented-agent"
	PropertyStatusOwnerOccupied    = "owner-occupied"
	PropertyStatusLivingWithFamily = "living-with-family"
)

// Guarantor backs the tenancy for exactly one applicant.
type Guarantor struct {
	FirstName        string `bson:"first_name" json:"first_name"`
	LastName         string `bson:"last_name" json:"last_name"`
	Email            string `bson:"email" json:"email"`
	Phone            string `bson:"phone" json:"phone"`
	Relationship     string `bson:"relationship" json:"relationship"`
	Address          string `bson:"address" json:"address"`
	Postcode         string `bson:"postcode" json:"postcode"`
	EmploymentStatus string `bson:"employment_status" json:"employment_status"`
	AnnualIncome     string `bson:"annual_income" json:"annual_income"`
}

// Applicant is one individual co-tenant within an application. IDs are opaque
// strings, unique within the applicant list and stable across edits.
type Applicant struct {
	ID string `bson:"id" json:"id"`

	// Identity
	FirstName   string `bson:"first_name" json:"first_name"`
	LastName    string `bson:"last_name" json:"last_name"`
	Email       string `bson:"email" json:"email"`
	Phone       string `bson:"phone" json:"phone"`
	DateOfBirth string `bson:"date_of_birth" json:"date_of_birth"`

	// Employment
	EmploymentStatus string `bson:"employment_status" json:"employment_status"`
	Company          string `bson:"company" json:"company"`
	JobTitle         string `bson:"job_title" json:"job_title"`
	AnnualIncome     string `bson:"annual_income" json:"annual_income"`
	LengthOfService  string `bson:"length_of_service" json:"length_of_service"`

	// Current address
	CurrentAddress        string `bson:"current_address" json:"current_address"`
	CurrentPostcode       string `bson:"current_postcode" json:"current_postcode"`
	CurrentMoveInDate     string `bson:"current_move_in_date" json:"current_move_in_date"`
	CurrentVacateDate     string `bson:"current_vacate_date" json:"current_vacate_date"`
	CurrentPropertyStatus string `bson:"current_property_status" json:"current_property_status"`
	CurrentRentalAmount   string `bson:"current_rental_amount" json:"current_rental_amount"`

	// Risk flags
	UKROIPassport        bool   `bson:"uk_roi_passport" json:"uk_roi_passport"`
	AdverseCredit        bool   `bson:"adverse_credit" json:"adverse_credit"`
	AdverseCreditDetails string `bson:"adverse_credit_details,omitempty" json:"adverse_credit_details,omitempty"`

	// Guarantor sub-flow. RequiresGuarantor lives on the applicant itself, so
	// removing an applicant removes the flag with it.
	RequiresGuarantor bool       `bson:"requires_guarantor" json:"requires_guarantor"`
	Guarantor         *Guarantor `bson:"guarantor,omitempty" json:"guarantor,omitempty"`
}

// PropertyPreferences holds the target property details, one per application.
type PropertyPreferences struct {
	Address            string `bson:"address" json:"address"`
	Postcode           string `bson:"postcode" json:"postcode"`
	MaxRent            string `bson:"max_rent" json:"max_rent"`
	MoveInDate         string `bson:"move_in_date" json:"move_in_date"`
	LatestMoveInDate   string `bson:"latest_move_in_date" json:"latest_move_in_date"`
	TenancyTerm        string `bson:"tenancy_term" json:"tenancy_term"`
	DepositType        string `bson:"deposit_type" json:"deposit_type"`
	AdditionalRequests string `bson:"additional_requests,omitempty" json:"additional_requests,omitempty"`
}

// AdditionalDetails holds household flags. Each details field is required by
// step validation whenever its flag is true; the model itself does not
// enforce that.
type AdditionalDetails struct {
	HasPets         bool   `bson:"has_pets" json:"has_pets"`
	PetDetails      string `bson:"pet_details,omitempty" json:"pet_details,omitempty"`
	Smoker          bool   `bson:"smoker" json:"smoker"`
	SmokingDetails  string `bson:"smoking_details,omitempty" json:"smoking_details,omitempty"`
	NeedsParking    bool   `bson:"needs_parking" json:"needs_parking"`
	ParkingDetails  string `bson:"parking_details,omitempty" json:"parking_details,omitempty"`
	HasChildren     bool   `bson:"has_children" json:"has_children"`
	ChildrenDetails string `bson:"children_details,omitempty" json:"children_details,omitempty"`
}

// DataSharing holds the two independent marketing consents.
type DataSharing struct {
	UtilitiesConsent bool `bson:"utilities_consent" json:"utilities_consent"`
	InsuranceConsent bool `bson:"insurance_consent" json:"insurance_consent"`
}

// Application is the complete tenant submission. It is immutable once
// persisted; only Status changes afterwards, via admin endpoints.
type Application struct {
	ID                string              `bson:"_id,omitempty" json:"id"`
	Preferences       PropertyPreferences `bson:"preferences" json:"preferences"`
	Applicants        []Applicant         `bson:"applicants" json:"applicants"`
	AdditionalDetails AdditionalDetails   `bson:"additional_details" json:"additional_details"`
	DataSharing       DataSharing         `bson:"data_sharing" json:"data_sharing"`
	Signature         string              `bson:"signature" json:"signature"`
	Status            string              `bson:"status" json:"status"`
	SubmittedAt       time.Time           `bson:"submitted_at" json:"submitted_at"`
}

// PrimaryApplicant returns the first applicant in display order, or nil for
// an empty list.
func (a *Application) PrimaryApplicant() *Applicant {
	if len(a.Applicants) == 0 {
		return nil
	}
	return &a.Applicants[0]
}

// PaginatedApplications is a paginated admin listing of applications.
type PaginatedApplications struct {
	Data       []Application `json:"data"`
	Pagination struct {
		Page       int `json:"page"`
		PerPage    int `json:"per_page"`
		Total      int `json:"total"`
		TotalPages int `json:"total_pages"`
	} `json:"pagination"`
}

// ApplicationFilter narrows admin listings and exports.
type ApplicationFilter struct {
	Status        string
	Postcode      string
	SubmittedFrom *time.Time
	SubmittedTo   *time.Time
	Search        string
}
