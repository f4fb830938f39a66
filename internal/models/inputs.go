package models

// Input types for the form session API. Boolean flags bind as *bool so a
// missing flag is distinguishable from false; they are normalized to plain
// booleans here and nowhere else.

// PropertyPreferencesInput updates the property preferences section.
type PropertyPreferencesInput struct {
	Address            string `json:"address"`
	Postcode           string `json:"postcode"`
	MaxRent            string `json:"max_rent"`
	MoveInDate         string `json:"move_in_date"`
	LatestMoveInDate   string `json:"latest_move_in_date"`
	TenancyTerm        string `json:"tenancy_term"`
	DepositType        string `json:"deposit_type"`
	AdditionalRequests string `json:"additional_requests"`
}

// ToPreferences converts the input to the domain record.
func (in *PropertyPreferencesInput) ToPreferences() PropertyPreferences {
	return PropertyPreferences{
		Address:            in.Address,
		Postcode:           in.Postcode,
		MaxRent:            in.MaxRent,
		MoveInDate:         in.MoveInDate,
		LatestMoveInDate:   in.LatestMoveInDate,
		TenancyTerm:        in.TenancyTerm,
		DepositType:        in.DepositType,
		AdditionalRequests: in.AdditionalRequests,
	}
}

// AdditionalDetailsInput updates the household details section. Pets and
// children flags are required so "not answered" never reaches the validator
// as a silent false.
type AdditionalDetailsInput struct {
	HasPets         *bool  `json:"has_pets" binding:"required"`
	PetDetails      string `json:"pet_details"`
	Smoker          *bool  `json:"smoker"`
	SmokingDetails  string `json:"smoking_details"`
	NeedsParking    *bool  `json:"needs_parking"`
	ParkingDetails  string `json:"parking_details"`
	HasChildren     *bool  `json:"has_children" binding:"required"`
	ChildrenDetails string `json:"children_details"`
}

// ToDetails converts the input to the domain record with canonical booleans.
func (in *AdditionalDetailsInput) ToDetails() AdditionalDetails {
	return AdditionalDetails{
		HasPets:         derefBool(in.HasPets),
		PetDetails:      in.PetDetails,
		Smoker:          derefBool(in.Smoker),
		SmokingDetails:  in.SmokingDetails,
		NeedsParking:    derefBool(in.NeedsParking),
		ParkingDetails:  in.ParkingDetails,
		HasChildren:     derefBool(in.HasChildren),
		ChildrenDetails: in.ChildrenDetails,
	}
}

// DataSharingInput updates the consent section.
type DataSharingInput struct {
	UtilitiesConsent *bool `json:"utilities_consent"`
	InsuranceConsent *bool `json:"insurance_consent"`
}

// ToDataSharing converts the input to the domain record.
func (in *DataSharingInput) ToDataSharing() DataSharing {
	return DataSharing{
		UtilitiesConsent: derefBool(in.UtilitiesConsent),
		InsuranceConsent: derefBool(in.InsuranceConsent),
	}
}

// SignatureInput updates the terms and signature section.
type SignatureInput struct {
	Signature     string `json:"signature"`
	TermsAccepted bool   `json:"terms_accepted"`
}

// ApplicantFieldInput sets a single field on one applicant.
type ApplicantFieldInput struct {
	Field string `json:"field" binding:"required"`
	Value string `json:"value"`
}

// ApplicantCountInput reconciles the applicant list to an exact length.
type ApplicantCountInput struct {
	Count int `json:"count" binding:"required"`
}

// GuarantorInput carries the guarantor sub-form fields.
type GuarantorInput struct {
	FirstName        string `json:"first_name"`
	LastName         string `json:"last_name"`
	Email            string `json:"email"`
	Phone            string `json:"phone"`
	Relationship     string `json:"relationship"`
	Address          string `json:"address"`
	Postcode         string `json:"postcode"`
	EmploymentStatus string `json:"employment_status"`
	AnnualIncome     string `json:"annual_income"`
}

// ToGuarantor converts the input to the domain record.
func (in *GuarantorInput) ToGuarantor() Guarantor {
	return Guarantor{
		FirstName:        in.FirstName,
		LastName:         in.LastName,
		Email:            in.Email,
		Phone:            in.Phone,
		Relationship:     in.Relationship,
		Address:          in.Address,
		Postcode:         in.Postcode,
		EmploymentStatus: in.EmploymentStatus,
		AnnualIncome:     in.AnnualIncome,
	}
}

// StatusUpdateInput changes a stored application's review status.
type StatusUpdateInput struct {
	Status string `json:"status" binding:"required"`
}

// GuarantorOpenInput selects which applicant the guarantor sub-form is for.
type GuarantorOpenInput struct {
	ApplicantID string `json:"applicant_id" binding:"required"`
}

func derefBool(b *bool) bool {
	if b == nil {
		return false
	}
	return *b
}
