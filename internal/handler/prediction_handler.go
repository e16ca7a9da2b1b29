package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/jengzang/heart-risk-backend-go/internal/features"
	"github.com/jengzang/heart-risk-backend-go/internal/middleware"
	"github.com/jengzang/heart-risk-backend-go/internal/models"
	"github.com/jengzang/heart-risk-backend-go/internal/service"
	"github.com/jengzang/heart-risk-backend-go/pkg/response"
)

// PredictionHandler handles HTTP requests for heart disease predictions
type PredictionHandler struct {
	service *service.PredictionService
}

// NewPredictionHandler creates a new prediction handler
func NewPredictionHandler(service *service.PredictionService) *PredictionHandler {
	return &PredictionHandler{service: service}
}

// Predict handles POST /api/v1/predictions
func (h *PredictionHandler) Predict(c *gin.Context) {
	in, ok := bindInput(c)
	if !ok {
		return
	}

	result, err := h.service.Predict(c.Request.Context(), in, c.GetString(middleware.SubjectKey))
	if err != nil {
		writeEncodeError(c, "Failed to predict", err)
		return
	}

	if result.ID != "" {
		response.Created(c, result)
		return
	}
	response.Success(c, result)
}

// Encode handles POST /api/v1/features/encode
func (h *PredictionHandler) Encode(c *gin.Context) {
	in, ok := bindInput(c)
	if !ok {
		return
	}

	result, err := h.service.EncodeOnly(in)
	if err != nil {
		writeEncodeError(c, "Failed to encode features", err)
		return
	}
	response.Success(c, result)
}

// Health handles GET /health
func (h *PredictionHandler) Health(c *gin.Context) {
	schema := h.service.Schema()
	c.JSON(http.StatusOK, gin.H{
		"status":         "ok",
		"message":        "Heart Risk Backend API is running",
		"schemaVersion":  schema.SchemaVersion,
		"modelVersion":   schema.ModelVersion,
		"historyEnabled": h.service.HistoryEnabled(),
	})
}

// GetSchema handles GET /api/v1/schema
func (h *PredictionHandler) GetSchema(c *gin.Context) {
	response.Success(c, h.service.Schema())
}

// GetPredictions handles GET /api/v1/predictions
func (h *PredictionHandler) GetPredictions(c *gin.Context) {
	var filter models.PredictionFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters", err)
		return
	}

	resp, err := h.service.GetPredictions(c.Request.Context(), filter)
	if err != nil {
		writeHistoryError(c, "Failed to get predictions", err)
		return
	}
	response.Success(c, resp)
}

// GetPredictionByID handles GET /api/v1/predictions/:id
func (h *PredictionHandler) GetPredictionByID(c *gin.Context) {
	id := c.Param("id")

	prediction, err := h.service.GetPredictionByID(c.Request.Context(), id)
	if err != nil {
		writeHistoryError(c, "Failed to get prediction", err)
		return
	}
	if prediction == nil {
		response.NotFound(c, "Prediction not found")
		return
	}
	response.Success(c, prediction)
}

// GetStats handles GET /api/v1/predictions/stats
func (h *PredictionHandler) GetStats(c *gin.Context) {
	var filter models.PredictionFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters", err)
		return
	}

	st, err := h.service.GetStats(c.Request.Context(), filter)
	if err != nil {
		writeHistoryError(c, "Failed to get prediction stats", err)
		return
	}
	response.Success(c, st)
}

// bindInput decodes the request body. Validation failures are left to the
// encoder so they surface as typed category or range errors.
func bindInput(c *gin.Context) (features.RawInput, bool) {
	var in features.RawInput
	if err := c.ShouldBindJSON(&in); err != nil {
		var verrs validator.ValidationErrors
		switch {
		case errors.Is(err, features.ErrMissingField):
			response.BadRequest(c, "Missing required field", err)
			return in, false
		case !errors.As(err, &verrs):
			response.BadRequest(c, "Invalid request body", err)
			return in, false
		}
	}
	return in, true
}

func writeEncodeError(c *gin.Context, message string, err error) {
	switch {
	case errors.Is(err, features.ErrOutOfRangeNumeric):
		response.BadRequest(c, "Numeric value out of range", err)
	case errors.Is(err, features.ErrOutOfDomainCategory):
		response.Error(c, http.StatusUnprocessableEntity, "Unknown category label", err)
	case errors.Is(err, features.ErrSchemaMismatch):
		response.InternalError(c, "Model artifacts do not match the feature schema", err)
	default:
		response.InternalError(c, message, err)
	}
}

func writeHistoryError(c *gin.Context, message string, err error) {
	if errors.Is(err, service.ErrHistoryDisabled) {
		response.Error(c, http.StatusNotFound, "Prediction history is disabled", nil)
		return
	}
	response.InternalError(c, message, err)
}
