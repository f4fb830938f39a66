package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/lettingshub/app-tenancy/internal/config"
	"github.com/lettingshub/app-tenancy/internal/logging"
	"github.com/lettingshub/app-tenancy/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SeedApplications contains sample submitted applications for local admin
// dashboard development.
var SeedApplications = []models.Application{
	{
		Preferences: models.PropertyPreferences{
			Address:          "14 Croft Road, Guildford",
			Postcode:         "GU1 4QT",
			MaxRent:          "1450",
			MoveInDate:       "2026-05-01",
			LatestMoveInDate: "2026-06-01",
			TenancyTerm:      "12 months",
			DepositType:      "standard",
		},
		Applicants: []models.Applicant{
			{
				ID:                    "seed-applicant-1",
				FirstName:             "Jane",
				LastName:              "Doe",
				Email:                 "jane.doe@example.co.uk",
				Phone:                 "+447911123456",
				DateOfBirth:           "1990-06-15",
				EmploymentStatus:      "employed",
				Company:               "Acme Ltd",
				JobTitle:              "Engineer",
				AnnualIncome:          "52000",
				LengthOfService:       "3 years",
				CurrentAddress:        "3 Elm Street, Woking",
				CurrentPostcode:       "GU22 7AA",
				CurrentMoveInDate:     "2022-01-01",
				CurrentVacateDate:     "2026-04-30",
				CurrentPropertyStatus: models.PropertyStatusRentedAgent,
				CurrentRentalAmount:   "1200",
				UKROIPassport:         true,
			},
		},
		AdditionalDetails: models.AdditionalDetails{HasPets: true, PetDetails: "One cat"},
		DataSharing:       models.DataSharing{UtilitiesConsent: true},
		Signature:         "Jane Doe",
		Status:            models.StatusPending,
		SubmittedAt:       time.Now().UTC().Add(-48 * time.Hour),
	},
	{
		Preferences: models.PropertyPreferences{
			Address:          "7 Mill Lane, Godalming",
			Postcode:         "GU7 1EY",
			MaxRent:          "1900",
			MoveInDate:       "2026-04-15",
			LatestMoveInDate: "2026-05-15",
			TenancyTerm:      "24 months",
			DepositType:      "replacement",
		},
		Applicants: []models.Applicant{
			{
				ID:                    "seed-applicant-2",
				FirstName:             "Sam",
				LastName:              "Okafor",
				Email:                 "sam.okafor@example.co.uk",
				Phone:                 "+447700900123",
				DateOfBirth:           "1994-11-02",
				EmploymentStatus:      "self-employed",
				Company:               "Okafor Design",
				JobTitle:              "Director",
				AnnualIncome:          "38000",
				LengthOfService:       "5 years",
				CurrentAddress:        "22 Station Approach, Farnham",
				CurrentPostcode:       "GU9 7QX",
				CurrentMoveInDate:     "2020-08-01",
				CurrentVacateDate:     "2026-03-31",
				CurrentPropertyStatus: models.PropertyStatusLivingWithFamily,
				RequiresGuarantor:     true,
				Guarantor: &models.Guarantor{
					FirstName:        "Ada",
					LastName:         "Okafor",
					Email:            "ada.okafor@example.co.uk",
					Phone:            "+447700900456",
					Relationship:     "parent",
					Address:          "9 The Green, Aldershot",
					Postcode:         "GU11 1AA",
					EmploymentStatus: "employed",
					AnnualIncome:     "61000",
				},
			},
		},
		AdditionalDetails: models.AdditionalDetails{NeedsParking: true, ParkingDetails: "One car"},
		Signature:         "Sam Okafor",
		Status:            models.StatusReviewing,
		SubmittedAt:       time.Now().UTC().Add(-24 * time.Hour),
	},
}

func main() {
	if err := logging.InitLogger(); err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	if err := config.LoadConfig(); err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	config.InitMongoDB()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	collection := config.MongoDB.Collection(config.AppConfig.ApplicationCollection)

	seeded := 0
	for _, app := range SeedApplications {
		// Keyed on the primary applicant's email so reruns are idempotent.
		filter := bson.M{"applicants.0.email": app.Applicants[0].Email}
		count, err := collection.CountDocuments(ctx, filter)
		if err != nil {
			log.Fatalf("failed to check existing seed data: %v", err)
		}
		if count > 0 {
			continue
		}

		app.ID = primitive.NewObjectID().Hex()
		if _, err := collection.InsertOne(ctx, app); err != nil {
			log.Fatalf("failed to insert seed application: %v", err)
		}
		seeded++
	}

	fmt.Printf("seeded %d application(s) into %s.%s\n",
		seeded, config.AppConfig.MongoDatabase, config.AppConfig.ApplicationCollection)
}
