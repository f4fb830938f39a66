package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lettingshub/app-tenancy/internal/form"
	"github.com/lettingshub/app-tenancy/internal/models"
	"github.com/lettingshub/app-tenancy/internal/observability"
	"github.com/lettingshub/app-tenancy/internal/utils"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
)

// AddApplicant godoc
// @Summary Add an applicant to the session
// @Description Appends a fresh applicant. At the cap of 5 the request is a no-op, not an error.
// @Tags applicants
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} SessionResponse "Updated session"
// @Failure 404 {object} ErrorResponse "Session not found or expired"
// @Failure 409 {object} ErrorResponse "Session is no longer editable"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /applications/sessions/{id}/applicants [post]
func AddApplicant(c *gin.Context) {
	ctx, span := otel.Tracer("").Start(c.Request.Context(), "AddApplicant")
	defer span.End()

	logger := observability.Logger().With(zap.String("session_id", c.Param("id")))

	session, ok := loadSession(c, ctx, logger)
	if !ok {
		return
	}
	if !guardMutable(c, session) {
		return
	}

	session.AddApplicant()

	if !saveSession(c, ctx, logger, session) {
		return
	}
	c.JSON(http.StatusOK, sessionResponse(session))
}

// RemoveApplicant godoc
// @Summary Remove an applicant from the session
// @Description Removes the applicant with the given ID. With one applicant left, or for an unknown ID, the request is a no-op.
// @Tags applicants
// @Produce json
// @Param id path string true "Session ID"
// @Param applicantId path string true "Applicant ID"
// @Success 200 {object} SessionResponse "Updated session"
// @Failure 404 {object} ErrorResponse "Session not found or expired"
// @Failure 409 {object} ErrorResponse "Session is no longer editable"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /applications/sessions/{id}/applicants/{applicantId} [delete]
func RemoveApplicant(c *gin.Context) {
	ctx, span := otel.Tracer("").Start(c.Request.Context(), "RemoveApplicant")
	defer span.End()

	logger := observability.Logger().With(zap.String("session_id", c.Param("id")))

	session, ok := loadSession(c, ctx, logger)
	if !ok {
		return
	}
	if !guardMutable(c, session) {
		return
	}

	session.RemoveApplicant(c.Param("applicantId"))

	if !saveSession(c, ctx, logger, session) {
		return
	}
	c.JSON(http.StatusOK, sessionResponse(session))
}

// SetApplicantCount godoc
// @Summary Reconcile the applicant list to an exact count
// @Description Appends fresh applicants or truncates the tail; requested counts are clamped to [1, 5]. Surviving applicants keep their data and order.
// @Tags applicants
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param count body models.ApplicantCountInput true "Target applicant count"
// @Success 200 {object} SessionResponse "Updated session"
// @Failure 400 {object} ErrorResponse "Invalid request body"
// @Failure 404 {object} ErrorResponse "Session not found or expired"
// @Failure 409 {object} ErrorResponse "Session is no longer editable"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /applications/sessions/{id}/applicants/count [put]
func SetApplicantCount(c *gin.Context) {
	ctx, span := otel.Tracer("").Start(c.Request.Context(), "SetApplicantCount")
	defer span.End()

	logger := observability.Logger().With(zap.String("session_id", c.Param("id")))

	var input models.ApplicantCountInput
	if !bindInput(c, ctx, "applicant_count", &input) {
		return
	}

	session, ok := loadSession(c, ctx, logger)
	if !ok {
		return
	}
	if !guardMutable(c, session) {
		return
	}

	session.SetApplicantCount(input.Count)

	if !saveSession(c, ctx, logger, session) {
		return
	}
	c.JSON(http.StatusOK, sessionResponse(session))
}

// UpdateApplicantField godoc
// @Summary Update a single applicant field
// @Description Sets one field on one applicant by field name. Phone numbers are normalized to E.164 when parseable.
// @Tags applicants
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param applicantId path string true "Applicant ID"
// @Param field body models.ApplicantFieldInput true "Field name and value"
// @Success 200 {object} SessionResponse "Updated session"
// @Failure 400 {object} ErrorResponse "Unknown field or invalid value"
// @Failure 404 {object} ErrorResponse "Session or applicant not found"
// @Failure 409 {object} ErrorResponse "Session is no longer editable"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /applications/sessions/{id}/applicants/{applicantId} [patch]
func UpdateApplicantField(c *gin.Context) {
	ctx, span := otel.Tracer("").Start(c.Request.Context(), "UpdateApplicantField")
	defer span.End()

	logger := observability.Logger().With(zap.String("session_id", c.Param("id")))

	var input models.ApplicantFieldInput
	if !bindInput(c, ctx, "applicant_field", &input) {
		return
	}

	session, ok := loadSession(c, ctx, logger)
	if !ok {
		return
	}
	if !guardMutable(c, session) {
		return
	}

	value := input.Value
	if input.Field == "phone" {
		value = utils.NormalizePhone(value)
	}

	applicants, err := form.UpdateApplicantField(session.Applicants, c.Param("applicantId"), input.Field, value)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrApplicantNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Applicant not found"})
		case errors.Is(err, models.ErrUnknownField):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Unknown applicant field: " + input.Field})
		case errors.Is(err, models.ErrInvalidFieldValue):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid value for field: " + input.Field})
		default:
			logger.Error("failed to update applicant field", zap.Error(err))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to update applicant"})
		}
		return
	}
	session.Applicants = applicants

	if !saveSession(c, ctx, logger, session) {
		return
	}
	c.JSON(http.StatusOK, sessionResponse(session))
}

// OpenGuarantor godoc
// @Summary Open the guarantor sub-form for an applicant
// @Description Starts a guarantor draft for the given applicant. Only one draft can be open per session, and the applicant must require a guarantor.
// @Tags guarantor
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param applicant body models.GuarantorOpenInput true "Owning applicant"
// @Success 200 {object} SessionResponse "Updated session"
// @Failure 400 {object} ErrorResponse "Applicant does not require a guarantor"
// @Failure 404 {object} ErrorResponse "Session or applicant not found"
// @Failure 409 {object} ErrorResponse "A guarantor sub-form is already open"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /applications/sessions/{id}/guarantor/open [post]
func OpenGuarantor(c *gin.Context) {
	ctx, span := otel.Tracer("").Start(c.Request.Context(), "OpenGuarantor")
	defer span.End()

	logger := observability.Logger().With(zap.String("session_id", c.Param("id")))

	var input models.GuarantorOpenInput
	if !bindInput(c, ctx, "guarantor_open", &input) {
		return
	}

	session, ok := loadSession(c, ctx, logger)
	if !ok {
		return
	}
	if !guardMutable(c, session) {
		return
	}

	if err := session.OpenGuarantor(input.ApplicantID); err != nil {
		switch {
		case errors.Is(err, models.ErrGuarantorOpen):
			c.JSON(http.StatusConflict, ErrorResponse{Error: "A guarantor sub-form is already open"})
		case errors.Is(err, models.ErrApplicantNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Applicant not found"})
		case errors.Is(err, models.ErrGuarantorNotRequired):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Applicant does not require a guarantor"})
		default:
			logger.Error("failed to open guarantor sub-form", zap.Error(err))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to open guarantor sub-form"})
		}
		return
	}

	if !saveSession(c, ctx, logger, session) {
		return
	}
	c.JSON(http.StatusOK, sessionResponse(session))
}

// UpdateGuarantor godoc
// @Summary Update the open guarantor draft
// @Description Edits stay on the draft until saved; the owning applicant is untouched.
// @Tags guarantor
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param guarantor body models.GuarantorInput true "Guarantor fields"
// @Success 200 {object} SessionResponse "Updated session"
// @Failure 400 {object} ErrorResponse "Invalid request body"
// @Failure 404 {object} ErrorResponse "Session not found or expired"
// @Failure 409 {object} ErrorResponse "No guarantor sub-form is open"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /applications/sessions/{id}/guarantor [put]
func UpdateGuarantor(c *gin.Context) {
	ctx, span := otel.Tracer("").Start(c.Request.Context(), "UpdateGuarantor")
	defer span.End()

	logger := observability.Logger().With(zap.String("session_id", c.Param("id")))

	var input models.GuarantorInput
	if !bindInput(c, ctx, "guarantor_fields", &input) {
		return
	}

	session, ok := loadSession(c, ctx, logger)
	if !ok {
		return
	}
	if !guardMutable(c, session) {
		return
	}

	if err := session.UpdateGuarantor(input.ToGuarantor()); err != nil {
		c.JSON(http.StatusConflict, ErrorResponse{Error: "No guarantor sub-form is open"})
		return
	}

	if !saveSession(c, ctx, logger, session) {
		return
	}
	c.JSON(http.StatusOK, sessionResponse(session))
}

// SaveGuarantor godoc
// @Summary Save the open guarantor draft onto its applicant
// @Description Merges the draft onto exactly the applicant it was opened for and closes the sub-form.
// @Tags guarantor
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} SessionResponse "Updated session"
// @Failure 404 {object} ErrorResponse "Session expired, or the owning applicant no longer exists"
// @Failure 409 {object} ErrorResponse "No guarantor sub-form is open"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /applications/sessions/{id}/guarantor/save [post]
func SaveGuarantor(c *gin.Context) {
	ctx, span := otel.Tracer("").Start(c.Request.Context(), "SaveGuarantor")
	defer span.End()

	logger := observability.Logger().With(zap.String("session_id", c.Param("id")))

	session, ok := loadSession(c, ctx, logger)
	if !ok {
		return
	}
	if !guardMutable(c, session) {
		return
	}

	if err := session.SaveGuarantor(); err != nil {
		if errors.Is(err, models.ErrApplicantNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "The applicant this guarantor form was opened for no longer exists"})
			return
		}
		c.JSON(http.StatusConflict, ErrorResponse{Error: "No guarantor sub-form is open"})
		return
	}

	if !saveSession(c, ctx, logger, session) {
		return
	}
	c.JSON(http.StatusOK, sessionResponse(session))
}

// CancelGuarantor godoc
// @Summary Discard the open guarantor draft
// @Description Closes the sub-form without touching the applicant. A no-op when nothing is open.
// @Tags guarantor
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} SessionResponse "Updated session"
// @Failure 404 {object} ErrorResponse "Session not found or expired"
// @Failure 409 {object} ErrorResponse "Session is no longer editable"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /applications/sessions/{id}/guarantor [delete]
func CancelGuarantor(c *gin.Context) {
	ctx, span := otel.Tracer("").Start(c.Request.Context(), "CancelGuarantor")
	defer span.End()

	logger := observability.Logger().With(zap.String("session_id", c.Param("id")))

	session, ok := loadSession(c, ctx, logger)
	if !ok {
		return
	}
	if !guardMutable(c, session) {
		return
	}

	session.CancelGuarantor()

	if !saveSession(c, ctx, logger, session) {
		return
	}
	c.JSON(http.StatusOK, sessionResponse(session))
}
