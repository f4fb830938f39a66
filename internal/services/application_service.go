package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/lettingshub/app-tenancy/internal/config"
	"github.com/lettingshub/app-tenancy/internal/models"
	"github.com/lettingshub/app-tenancy/internal/utils"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// ApplicationService handles stored tenancy applications: persistence at
// submission time and the admin review surface.
type ApplicationService struct {
	database *mongo.Database
	logger   *zap.Logger
}

// NewApplicationService creates a new application service instance
func NewApplicationService(database *mongo.Database, logger *zap.Logger) *ApplicationService {
	return &ApplicationService{
		database: database,
		logger:   logger,
	}
}

// Global application service instance
var ApplicationServiceInstance *ApplicationService

// InitApplicationService initializes the global application service instance
func InitApplicationService() {
	logger := zap.L().Named("application_service")

	ApplicationServiceInstance = NewApplicationService(config.MongoDB, logger)

	logger.Info("application service initialized")
}

// Persist stores a submitted application and returns its identifier. Stored
// applications are never updated by the form; only Status changes later,
// through UpdateStatus.
func (s *ApplicationService) Persist(ctx context.Context, app *models.Application) (string, error) {
	collection := s.database.Collection(config.AppConfig.ApplicationCollection)

	app.ID = primitive.NewObjectID().Hex()

	_, err := collection.InsertOne(ctx, app)
	if err != nil {
		return "", fmt.Errorf("failed to insert application: %w", err)
	}

	s.logger.Info("application persisted",
		zap.String("application_id", app.ID),
		zap.Int("applicants", len(app.Applicants)),
		zap.String("postcode", app.Preferences.Postcode))

	return app.ID, nil
}

// GetByID retrieves one stored application.
func (s *ApplicationService) GetByID(ctx context.Context, id string) (*models.Application, error) {
	collection := s.database.Collection(config.AppConfig.ApplicationCollection)

	var app models.Application
	err := collection.FindOne(ctx, bson.M{"_id": id}).Decode(&app)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, models.ErrApplicationNotFound
		}
		return nil, fmt.Errorf("failed to find application: %w", err)
	}
	return &app, nil
}

// List returns a paginated, filtered admin listing, newest first.
func (s *ApplicationService) List(ctx context.Context, filter models.ApplicationFilter, page, perPage int) (*models.PaginatedApplications, error) {
	collection := s.database.Collection(config.AppConfig.ApplicationCollection)

	query := buildFilterQuery(filter)

	total, err := collection.CountDocuments(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to count applications: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "submitted_at", Value: -1}}).
		SetSkip(int64((page - 1) * perPage)).
		SetLimit(int64(perPage))

	cursor, err := collection.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find applications: %w", err)
	}
	defer cursor.Close(ctx)

	var apps []models.Application
	if err = cursor.All(ctx, &apps); err != nil {
		return nil, fmt.Errorf("failed to decode applications: %w", err)
	}

	response := &models.PaginatedApplications{Data: apps}
	response.Pagination.Page = page
	response.Pagination.PerPage = perPage
	response.Pagination.Total = int(total)
	response.Pagination.TotalPages = int(math.Ceil(float64(total) / float64(perPage)))

	s.logger.Debug("listed applications",
		zap.Int("page", page),
		zap.Int("per_page", perPage),
		zap.Int64("total", total),
		zap.Int("returned", len(apps)))

	return response, nil
}

// UpdateStatus changes the review status of a stored application.
func (s *ApplicationService) UpdateStatus(ctx context.Context, id, status string) (*models.Application, error) {
	if !validStatus(status) {
		return nil, models.ErrInvalidStatus
	}

	collection := s.database.Collection(config.AppConfig.ApplicationCollection)

	result := collection.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"status": status}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)

	var app models.Application
	if err := result.Decode(&app); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, models.ErrApplicationNotFound
		}
		return nil, fmt.Errorf("failed to update application status: %w", err)
	}

	s.logger.Info("application status updated",
		zap.String("application_id", id),
		zap.String("status", status))

	return &app, nil
}

// ExportCSV renders the filtered application set as CSV, one row per
// application keyed on the primary applicant.
func (s *ApplicationService) ExportCSV(ctx context.Context, filter models.ApplicationFilter) ([]byte, error) {
	collection := s.database.Collection(config.AppConfig.ApplicationCollection)

	opts := options.Find().SetSort(bson.D{{Key: "submitted_at", Value: -1}})
	cursor, err := collection.Find(ctx, buildFilterQuery(filter), opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find applications for export: %w", err)
	}
	defer cursor.Close(ctx)

	var apps []models.Application
	if err = cursor.All(ctx, &apps); err != nil {
		return nil, fmt.Errorf("failed to decode applications for export: %w", err)
	}

	return RenderApplicationsCSV(apps)
}

// RenderApplicationsCSV writes the admin export rows for a set of
// applications.
func RenderApplicationsCSV(apps []models.Application) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{
		"id", "status", "submitted_at", "property_address", "property_postcode",
		"max_rent", "move_in_date", "tenancy_term", "applicant_count",
		"primary_first_name", "primary_last_name", "primary_email", "primary_phone",
	}
	if err := w.Write(header); err != nil {
		return nil, fmt.Errorf("failed to write export header: %w", err)
	}

	for _, app := range apps {
		row := []string{
			app.ID,
			app.Status,
			app.SubmittedAt.UTC().Format("2006-01-02 15:04:05"),
			app.Preferences.Address,
			app.Preferences.Postcode,
			app.Preferences.MaxRent,
			app.Preferences.MoveInDate,
			app.Preferences.TenancyTerm,
			strconv.Itoa(len(app.Applicants)),
		}
		if primary := app.PrimaryApplicant(); primary != nil {
			row = append(row, primary.FirstName, primary.LastName, primary.Email, primary.Phone)
		} else {
			row = append(row, "", "", "", "")
		}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("failed to write export row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush export: %w", err)
	}
	return buf.Bytes(), nil
}

// ListActivity returns the activity log entries for one application, newest
// first.
func (s *ApplicationService) ListActivity(ctx context.Context, applicationID string) ([]utils.ActivityLog, error) {
	collection := s.database.Collection(config.AppConfig.ActivityLogCollection)

	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}}).SetLimit(200)
	cursor, err := collection.Find(ctx, bson.M{"application_id": applicationID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find activity logs: %w", err)
	}
	defer cursor.Close(ctx)

	var entries []utils.ActivityLog
	if err = cursor.All(ctx, &entries); err != nil {
		return nil, fmt.Errorf("failed to decode activity logs: %w", err)
	}
	return entries, nil
}

func buildFilterQuery(filter models.ApplicationFilter) bson.M {
	query := bson.M{}

	if filter.Status != "" {
		query["status"] = filter.Status
	}
	if filter.Postcode != "" {
		query["preferences.postcode"] = utils.NormalizePostcode(filter.Postcode)
	}
	if filter.SubmittedFrom != nil || filter.SubmittedTo != nil {
		window := bson.M{}
		if filter.SubmittedFrom != nil {
			window["$gte"] = *filter.SubmittedFrom
		}
		if filter.SubmittedTo != nil {
			window["$lte"] = *filter.SubmittedTo
		}
		query["submitted_at"] = window
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		pattern := primitive.Regex{Pattern: regexQuoteMeta(search), Options: "i"}
		query["$or"] = bson.A{
			bson.M{"applicants.first_name": pattern},
			bson.M{"applicants.last_name": pattern},
			bson.M{"applicants.email": pattern},
		}
	}

	return query
}

func validStatus(status string) bool {
	switch status {
	case models.StatusPending, models.StatusReviewing, models.StatusApproved, models.StatusRejected:
		return true
	}
	return false
}

// regexQuoteMeta escapes regex metacharacters so free-text search terms are
// matched literally.
func regexQuoteMeta(s string) string {
	const special = `\.+*?()|[]{}^$`
	var b strings.Builder
	for _, r := range s {
		if strings.ContainsRune(special, r) {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
