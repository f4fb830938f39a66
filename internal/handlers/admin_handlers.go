package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lettingshub/app-tenancy/internal/models"
	"github.com/lettingshub/app-tenancy/internal/observability"
	"github.com/lettingshub/app-tenancy/internal/services"
	"github.com/lettingshub/app-tenancy/internal/utils"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
)

// parseApplicationFilter reads the admin listing filters from the query
// string. Date bounds accept RFC 3339 timestamps or plain dates; a plain "to"
// date is inclusive of its whole day.
func parseApplicationFilter(c *gin.Context) (models.ApplicationFilter, error) {
	filter := models.ApplicationFilter{
		Status:   c.Query("status"),
		Postcode: c.Query("postcode"),
		Search:   c.Query("search"),
	}

	if raw := c.Query("from"); raw != "" {
		from, err := parseFilterTime(raw, false)
		if err != nil {
			return filter, fmt.Errorf("invalid from parameter: %w", err)
		}
		filter.SubmittedFrom = &from
	}
	if raw := c.Query("to"); raw != "" {
		to, err := parseFilterTime(raw, true)
		if err != nil {
			return filter, fmt.Errorf("invalid to parameter: %w", err)
		}
		filter.SubmittedTo = &to
	}
	return filter, nil
}

func parseFilterTime(raw string, endOfDay bool) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, err
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return t, nil
}

// ListApplications godoc
// @Summary List submitted applications
// @Description Returns a paginated listing, newest first, filtered by status, postcode, submission date range, and free-text applicant name/email search.
// @Tags admin
// @Produce json
// @Param status query string false "Review status" Enums(pending, reviewing, approved, rejected)
// @Param postcode query string false "Property postcode"
// @Param from query string false "Submitted on or after (RFC 3339 or YYYY-MM-DD)"
// @Param to query string false "Submitted on or before (RFC 3339 or YYYY-MM-DD)"
// @Param search query string false "Applicant name or email"
// @Param page query int false "Page number (default: 1)" minimum(1)
// @Param per_page query int false "Items per page (default: 10, maximum: 100)" minimum(1) maximum(100)
// @Success 200 {object} models.PaginatedApplications "Paginated applications"
// @Failure 400 {object} ErrorResponse "Invalid filter or pagination parameters"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /admin/applications [get]
func ListApplications(c *gin.Context) {
	ctx, span := otel.Tracer("").Start(c.Request.Context(), "ListApplications")
	defer span.End()

	logger := observability.Logger()

	filter, err := parseApplicationFilter(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	page, perPage, err := services.ValidatePaginationParams(c.Query("page"), c.Query("per_page"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	if services.ApplicationServiceInstance == nil {
		logger.Error("application service not initialized")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Application service unavailable"})
		return
	}

	findCtx, findSpan := utils.TraceDatabaseFind(ctx, "applications", "filter")
	apps, err := services.ApplicationServiceInstance.List(findCtx, filter, page, perPage)
	if err != nil {
		utils.RecordErrorInSpan(findSpan, err, map[string]interface{}{"page": page})
		findSpan.End()
		logger.Error("failed to list applications", zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list applications"})
		return
	}
	findSpan.End()

	observability.DatabaseOperations.WithLabelValues("find", "success").Inc()
	c.JSON(http.StatusOK, apps)
}

// GetApplication godoc
// @Summary Get one application
// @Tags admin
// @Produce json
// @Param id path string true "Application ID"
// @Success 200 {object} models.Application "Application"
// @Failure 404 {object} ErrorResponse "Application not found"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /admin/applications/{id} [get]
func GetApplication(c *gin.Context) {
	ctx, span := otel.Tracer("").Start(c.Request.Context(), "GetApplication")
	defer span.End()

	id := c.Param("id")
	logger := observability.Logger().With(zap.String("application_id", id))

	if services.ApplicationServiceInstance == nil {
		logger.Error("application service not initialized")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Application service unavailable"})
		return
	}

	app, err := services.ApplicationServiceInstance.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, models.ErrApplicationNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Application not found"})
			return
		}
		logger.Error("failed to get application", zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to get application"})
		return
	}

	c.JSON(http.StatusOK, app)
}

// UpdateApplicationStatus godoc
// @Summary Change an application's review status
// @Tags admin
// @Accept json
// @Produce json
// @Param id path string true "Application ID"
// @Param status body models.StatusUpdateInput true "New status"
// @Success 200 {object} models.Application "Updated application"
// @Failure 400 {object} ErrorResponse "Invalid status value"
// @Failure 404 {object} ErrorResponse "Application not found"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /admin/applications/{id}/status [patch]
func UpdateApplicationStatus(c *gin.Context) {
	ctx, span := otel.Tracer("").Start(c.Request.Context(), "UpdateApplicationStatus")
	defer span.End()

	id := c.Param("id")
	logger := observability.Logger().With(zap.String("application_id", id))

	var input models.StatusUpdateInput
	if !bindInput(c, ctx, "status_update", &input) {
		return
	}

	if services.ApplicationServiceInstance == nil {
		logger.Error("application service not initialized")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Application service unavailable"})
		return
	}

	updateCtx, updateSpan := utils.TraceDatabaseUpdate(ctx, "applications", "_id")
	app, err := services.ApplicationServiceInstance.UpdateStatus(updateCtx, id, input.Status)
	updateSpan.End()
	if err != nil {
		switch {
		case errors.Is(err, models.ErrInvalidStatus):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid status value: " + input.Status})
		case errors.Is(err, models.ErrApplicationNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Application not found"})
		default:
			logger.Error("failed to update application status", zap.Error(err))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to update application status"})
		}
		return
	}

	observability.DatabaseOperations.WithLabelValues("update", "success").Inc()

	if err := utils.LogActivity(ctx, utils.GetActivityContextFromGin(c, "admin"), id,
		utils.ActivityActionStatusChange, "status set to "+input.Status); err != nil {
		logger.Warn("failed to log status change activity", zap.Error(err))
	}

	c.JSON(http.StatusOK, app)
}

// DownloadApplicationPDF godoc
// @Summary Download the application report PDF
// @Tags admin
// @Produce application/pdf
// @Param id path string true "Application ID"
// @Success 200 {file} binary "PDF report"
// @Failure 404 {object} ErrorResponse "Application not found"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /admin/applications/{id}/pdf [get]
func DownloadApplicationPDF(c *gin.Context) {
	ctx, span := otel.Tracer("").Start(c.Request.Context(), "DownloadApplicationPDF")
	defer span.End()

	id := c.Param("id")
	logger := observability.Logger().With(zap.String("application_id", id))

	if services.ApplicationServiceInstance == nil {
		logger.Error("application service not initialized")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Application service unavailable"})
		return
	}

	app, err := services.ApplicationServiceInstance.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, models.ErrApplicationNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Application not found"})
			return
		}
		logger.Error("failed to get application for pdf", zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to get application"})
		return
	}

	report, err := services.NewPDFService().Render(app)
	if err != nil {
		logger.Error("failed to render application pdf", zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to render PDF"})
		return
	}

	if err := utils.LogActivity(ctx, utils.GetActivityContextFromGin(c, "admin"), id,
		utils.ActivityActionPDFDownload, ""); err != nil {
		logger.Warn("failed to log pdf download activity", zap.Error(err))
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "tenancy-application-"+id+".pdf"))
	c.Data(http.StatusOK, "application/pdf", report)
}

// ExportApplicationsCSV godoc
// @Summary Export applications as CSV
// @Description Exports the filtered application set, one row per application keyed on the primary applicant. Accepts the same filters as the listing.
// @Tags admin
// @Produce text/csv
// @Param status query string false "Review status" Enums(pending, reviewing, approved, rejected)
// @Param postcode query string false "Property postcode"
// @Param from query string false "Submitted on or after (RFC 3339 or YYYY-MM-DD)"
// @Param to query string false "Submitted on or before (RFC 3339 or YYYY-MM-DD)"
// @Param search query string false "Applicant name or email"
// @Success 200 {file} binary "CSV export"
// @Failure 400 {object} ErrorResponse "Invalid filter parameters"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /admin/applications/export [get]
func ExportApplicationsCSV(c *gin.Context) {
	ctx, span := otel.Tracer("").Start(c.Request.Context(), "ExportApplicationsCSV")
	defer span.End()

	logger := observability.Logger()

	filter, err := parseApplicationFilter(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	if services.ApplicationServiceInstance == nil {
		logger.Error("application service not initialized")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Application service unavailable"})
		return
	}

	exportCtx, exportSpan := utils.TraceResponseSerialization(ctx, "csv")
	out, err := services.ApplicationServiceInstance.ExportCSV(exportCtx, filter)
	exportSpan.End()
	if err != nil {
		logger.Error("failed to export applications", zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to export applications"})
		return
	}

	if err := utils.LogActivity(ctx, utils.GetActivityContextFromGin(c, "admin"), "",
		utils.ActivityActionExport, "csv export"); err != nil {
		logger.Warn("failed to log export activity", zap.Error(err))
	}

	c.Header("Content-Disposition", `attachment; filename="applications.csv"`)
	c.Data(http.StatusOK, "text/csv", out)
}

// GetApplicationActivity godoc
// @Summary List activity log entries for an application
// @Tags admin
// @Produce json
// @Param id path string true "Application ID"
// @Success 200 {array} utils.ActivityLog "Activity entries, newest first"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /admin/applications/{id}/activity [get]
func GetApplicationActivity(c *gin.Context) {
	ctx, span := otel.Tracer("").Start(c.Request.Context(), "GetApplicationActivity")
	defer span.End()

	id := c.Param("id")
	logger := observability.Logger().With(zap.String("application_id", id))

	if services.ApplicationServiceInstance == nil {
		logger.Error("application service not initialized")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Application service unavailable"})
		return
	}

	entries, err := services.ApplicationServiceInstance.ListActivity(ctx, id)
	if err != nil {
		logger.Error("failed to list activity", zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list activity"})
		return
	}

	c.JSON(http.StatusOK, entries)
}
