package form

// FieldKind tags a field descriptor with its input variant.
type FieldKind string

const (
	FieldText     FieldKind = "text"
	FieldSelect   FieldKind = "select"
	FieldDate     FieldKind = "date"
	FieldCheckbox FieldKind = "checkbox"
	FieldNumber   FieldKind = "number"
	FieldTextarea FieldKind = "textarea"
)

// FieldDescriptor describes one form field for a renderer: the kind decides
// the input variant, Options only applies to selects. The validator never
// reads these; they exist so renderers stay decoupled from validation rules.
type FieldDescriptor struct {
	Kind     FieldKind `json:"kind"`
	Name     string    `json:"name"`
	Label    string    `json:"label"`
	Required bool      `json:"required"`
	Options  []string  `json:"options,omitempty"`
	// PerApplicant marks fields repeated for every applicant in the list.
	PerApplicant bool `json:"per_applicant,omitempty"`
}

var propertyStatusOptions = []string{
	"rented-privately",
	"rented-agent",
	"owner-occupied",
	"living-with-family",
}

var employmentStatusOptions = []string{
	"employed-full-time",
	"employed-part-time",
	"self-employed",
	"student",
	"retired",
	"unemployed",
}

var stepSchemas = map[int][]FieldDescriptor{
	1: {
		{Kind: FieldText, Name: "address", Label: "Property address", Required: true},
		{Kind: FieldText, Name: "postcode", Label: "Property postcode", Required: true},
		{Kind: FieldNumber, Name: "max_rent", Label: "Maximum monthly rent", Required: true},
		{Kind: FieldDate, Name: "move_in_date", Label: "Preferred move-in date", Required: true},
		{Kind: FieldDate, Name: "latest_move_in_date", Label: "Latest move-in date", Required: true},
		{Kind: FieldSelect, Name: "tenancy_term", Label: "Tenancy term", Required: true, Options: []string{"6-months", "12-months", "18-months", "24-months"}},
		{Kind: FieldSelect, Name: "deposit_type", Label: "Deposit type", Options: []string{"traditional", "zero-deposit"}},
		{Kind: FieldTextarea, Name: "additional_requests", Label: "Additional requests"},
	},
	2: {
		{Kind: FieldText, Name: "first_name", Label: "First name", Required: true, PerApplicant: true},
		{Kind: FieldText, Name: "last_name", Label: "Last name", Required: true, PerApplicant: true},
		{Kind: FieldDate, Name: "date_of_birth", Label: "Date of birth", Required: true, PerApplicant: true},
		{Kind: FieldText, Name: "email", Label: "Email address", Required: true, PerApplicant: true},
		{Kind: FieldText, Name: "phone", Label: "Phone number", Required: true, PerApplicant: true},
		{Kind: FieldCheckbox, Name: "uk_roi_passport", Label: "UK or ROI passport holder", PerApplicant: true},
		{Kind: FieldCheckbox, Name: "adverse_credit", Label: "History of adverse credit", PerApplicant: true},
		{Kind: FieldTextarea, Name: "adverse_credit_details", Label: "Adverse credit details", PerApplicant: true},
		{Kind: FieldCheckbox, Name: "requires_guarantor", Label: "Guarantor required", PerApplicant: true},
	},
	3: {
		{Kind: FieldSelect, Name: "employment_status", Label: "Employment status", Required: true, Options: employmentStatusOptions, PerApplicant: true},
		{Kind: FieldText, Name: "company", Label: "Company name", Required: true, PerApplicant: true},
		{Kind: FieldText, Name: "job_title", Label: "Job title", Required: true, PerApplicant: true},
		{Kind: FieldNumber, Name: "annual_income", Label: "Annual income", Required: true, PerApplicant: true},
		{Kind: FieldText, Name: "length_of_service", Label: "Length of service", Required: true, PerApplicant: true},
	},
	4: {
		{Kind: FieldText, Name: "current_address", Label: "Current address", Required: true, PerApplicant: true},
		{Kind: FieldText, Name: "current_postcode", Label: "Current postcode", Required: true, PerApplicant: true},
		{Kind: FieldDate, Name: "current_move_in_date", Label: "Move-in date", Required: true, PerApplicant: true},
		{Kind: FieldDate, Name: "current_vacate_date", Label: "Vacate date", Required: true, PerApplicant: true},
		{Kind: FieldSelect, Name: "current_property_status", Label: "Property status", Required: true, Options: propertyStatusOptions, PerApplicant: true},
		{Kind: FieldNumber, Name: "current_rental_amount", Label: "Monthly rental amount", PerApplicant: true},
	},
	5: {
		{Kind: FieldCheckbox, Name: "has_pets", Label: "Do you have pets?", Required: true},
		{Kind: FieldTextarea, Name: "pet_details", Label: "Pet details"},
		{Kind: FieldCheckbox, Name: "smoker", Label: "Does anyone smoke?"},
		{Kind: FieldTextarea, Name: "smoking_details", Label: "Smoking details"},
		{Kind: FieldCheckbox, Name: "needs_parking", Label: "Is parking required?"},
		{Kind: FieldTextarea, Name: "parking_details", Label: "Parking details"},
		{Kind: FieldCheckbox, Name: "has_children", Label: "Any children in the household?", Required: true},
		{Kind: FieldTextarea, Name: "children_details", Label: "Children details"},
	},
	6: {
		{Kind: FieldCheckbox, Name: "utilities_consent", Label: "Share details with utility providers"},
		{Kind: FieldCheckbox, Name: "insurance_consent", Label: "Share details with insurance providers"},
		{Kind: FieldCheckbox, Name: "terms_accepted", Label: "I accept the terms and conditions", Required: true},
		{Kind: FieldText, Name: "signature", Label: "Signature", Required: true},
	},
}

// StepSchema returns the field descriptors for one step, or nil for an
// unknown step.
func StepSchema(step int) []FieldDescriptor {
	return stepSchemas[step]
}

// Schema returns the field descriptors for all steps keyed by step number.
func Schema() map[int][]FieldDescriptor {
	return stepSchemas
}
