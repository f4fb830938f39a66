package services

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
	"github.com/lettingshub/app-tenancy/internal/models"
)

// PDFRenderer renders an application to a PDF document. Render failures are
// treated as "attachment unavailable" by callers, never as fatal.
type PDFRenderer interface {
	Render(app *models.Application) ([]byte, error)
}

// PDFService renders tenancy application reports. Output is deterministic
// for identical application data.
type PDFService struct{}

// NewPDFService creates a new PDF service instance
func NewPDFService() *PDFService {
	return &PDFService{}
}

// Render produces the application report PDF.
func (s *PDFService) Render(app *models.Application) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	// Keyed to the submission time so identical application data renders
	// byte-identical output.
	pdf.SetCreationDate(app.SubmittedAt)
	pdf.SetTitle("Tenancy Application", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, "Tenancy Application")
	pdf.Ln(12)

	s.section(pdf, "Property")
	s.row(pdf, "Address", app.Preferences.Address)
	s.row(pdf, "Postcode", app.Preferences.Postcode)
	s.row(pdf, "Maximum rent", app.Preferences.MaxRent)
	s.row(pdf, "Preferred move-in", app.Preferences.MoveInDate)
	s.row(pdf, "Latest move-in", app.Preferences.LatestMoveInDate)
	s.row(pdf, "Tenancy term", app.Preferences.TenancyTerm)
	s.row(pdf, "Deposit type", app.Preferences.DepositType)

	for i, a := range app.Applicants {
		s.section(pdf, fmt.Sprintf("Applicant %d", i+1))
		s.row(pdf, "Name", a.FirstName+" "+a.LastName)
		s.row(pdf, "Email", a.Email)
		s.row(pdf, "Phone", a.Phone)
		s.row(pdf, "Date of birth", a.DateOfBirth)
		s.row(pdf, "Employment", a.EmploymentStatus)
		s.row(pdf, "Company", a.Company)
		s.row(pdf, "Job title", a.JobTitle)
		s.row(pdf, "Annual income", a.AnnualIncome)
		s.row(pdf, "Current address", a.CurrentAddress+", "+a.CurrentPostcode)
		s.row(pdf, "Property status", a.CurrentPropertyStatus)
		if a.CurrentRentalAmount != "" {
			s.row(pdf, "Monthly rent", a.CurrentRentalAmount)
		}
		s.row(pdf, "Adverse credit", yesNo(a.AdverseCredit))
		if a.AdverseCredit {
			s.row(pdf, "Adverse credit details", a.AdverseCreditDetails)
		}
		if a.Guarantor != nil {
			g := a.Guarantor
			s.row(pdf, "Guarantor", g.FirstName+" "+g.LastName+" ("+g.Relationship+")")
			s.row(pdf, "Guarantor address", g.Address+", "+g.Postcode)
			s.row(pdf, "Guarantor income", g.AnnualIncome)
		}
	}

	s.section(pdf, "Household")
	s.row(pdf, "Pets", detail(app.AdditionalDetails.HasPets, app.AdditionalDetails.PetDetails))
	s.row(pdf, "Smoking", detail(app.AdditionalDetails.Smoker, app.AdditionalDetails.SmokingDetails))
	s.row(pdf, "Parking", detail(app.AdditionalDetails.NeedsParking, app.AdditionalDetails.ParkingDetails))
	s.row(pdf, "Children", detail(app.AdditionalDetails.HasChildren, app.AdditionalDetails.ChildrenDetails))

	s.section(pdf, "Consents & Signature")
	s.row(pdf, "Utilities consent", yesNo(app.DataSharing.UtilitiesConsent))
	s.row(pdf, "Insurance consent", yesNo(app.DataSharing.InsuranceConsent))
	s.row(pdf, "Signature", app.Signature)
	s.row(pdf, "Submitted", app.SubmittedAt.UTC().Format("2006-01-02 15:04:05"))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render application pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func (s *PDFService) section(pdf *gofpdf.Fpdf, title string) {
	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, title)
	pdf.Ln(9)
	pdf.SetFont("Helvetica", "", 10)
}

func (s *PDFService) row(pdf *gofpdf.Fpdf, label, value string) {
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(55, 6, label, "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.MultiCell(0, 6, value, "", "L", false)
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

func detail(flag bool, text string) string {
	if !flag {
		return "No"
	}
	if text == "" {
		return "Yes"
	}
	return "Yes - " + text
}
