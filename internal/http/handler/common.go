package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/straye-as/crm-portal/internal/backend"
	"github.com/straye-as/crm-portal/internal/domain"
	applog "github.com/straye-as/crm-portal/internal/logger"
	"github.com/straye-as/crm-portal/internal/repository"
	"github.com/straye-as/crm-portal/internal/service"
	"go.uber.org/zap"
)

var validate = newValidator()

// newValidator reports JSON field names so error maps match the request body
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

// respondValidationError sends a standardized validation error response with specific field messages
func respondValidationError(w http.ResponseWriter, err error) {
	fields := make(map[string]string)
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		for _, fe := range ve {
			fields[toJSONFieldName(fe.Field())] = formatValidationError(fe)
		}
	}

	respondJSON(w, http.StatusBadRequest, domain.APIError{
		Type:   domain.ErrorTypeValidation,
		Title:  "Validation Error",
		Status: http.StatusBadRequest,
		Detail: "One or more fields failed validation",
		Errors: fields,
	})
}

// formatValidationError creates a human-readable validation error message
func formatValidationError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", toJSONFieldName(fe.Field()))
	case "max":
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("Must contain at most %s items", fe.Param())
		}
		return fmt.Sprintf("Must be at most %s characters", fe.Param())
	case "min":
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("Must contain at least %s items", fe.Param())
		}
		return fmt.Sprintf("Must be at least %s characters", fe.Param())
	case "gte":
		return fmt.Sprintf("Must be greater than or equal to %s", fe.Param())
	case "lte":
		return fmt.Sprintf("Must be less than or equal to %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("Must be one of: %s", fe.Param())
	case "datetime":
		return fmt.Sprintf("Must be a date in the format %s", fe.Param())
	default:
		return domain.GetValidationMessage(fe.Tag())
	}
}

// toJSONFieldName lower-cases the first letter of a struct field name
func toJSONFieldName(field string) string {
	if len(field) == 0 {
		return field
	}
	return strings.ToLower(field[:1]) + field[1:]
}

// respondWithError sends a standardized JSON error response
func respondWithError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, domain.APIError{
		Type:   getErrorType(status),
		Title:  http.StatusText(status),
		Status: status,
		Detail: message,
	})
}

// getErrorType returns the appropriate error type for an HTTP status code
func getErrorType(status int) string {
	switch status {
	case http.StatusBadRequest:
		return domain.ErrorTypeBadRequest
	case http.StatusUnauthorized:
		return domain.ErrorTypeUnauthorized
	case http.StatusForbidden:
		return domain.ErrorTypeForbidden
	case http.StatusNotFound:
		return domain.ErrorTypeNotFound
	case http.StatusConflict:
		return domain.ErrorTypeConflict
	case http.StatusUnprocessableEntity:
		return domain.ErrorTypeUnprocessable
	case http.StatusBadGateway, http.StatusServiceUnavailable:
		return domain.ErrorTypeUpstream
	default:
		return domain.ErrorTypeInternal
	}
}

// requestLogger returns the logger tagged with request id and user, falling back to the handler's
func requestLogger(r *http.Request, fallback *zap.Logger) *zap.Logger {
	return applog.FromContext(r.Context(), fallback)
}

// handleServiceError maps service and backend errors onto problem responses.
// Anything unrecognized is logged and reported as a 500.
func handleServiceError(w http.ResponseWriter, logger *zap.Logger, op string, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound), errors.Is(err, repository.ErrNotFound):
		respondWithError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrInvalidInput), errors.Is(err, service.ErrInvalidOwner):
		respondWithError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrConflict), errors.Is(err, service.ErrAlreadyConverted):
		respondWithError(w, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrNoNextStage), errors.Is(err, service.ErrInvalidTransition):
		respondWithError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, service.ErrHistoryUnavailable):
		respondWithError(w, http.StatusServiceUnavailable, err.Error())
	default:
		var be *backend.Error
		if errors.As(err, &be) {
			logger.Warn("backend rejected request", zap.String("op", op), zap.Int("backend_status", be.StatusCode), zap.Error(err))
			if be.StatusCode == http.StatusBadRequest {
				respondWithError(w, http.StatusBadRequest, be.Message)
				return
			}
			respondWithError(w, http.StatusBadGateway, "Content backend request failed")
			return
		}
		logger.Error("request failed", zap.String("op", op), zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to "+op)
	}
}

// decodeAndValidate reads a JSON body into dst and validates it, writing the error response itself
func decodeAndValidate(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body: malformed JSON")
		return false
	}
	if err := validate.StructCtx(r.Context(), dst); err != nil {
		respondValidationError(w, err)
		return false
	}
	return true
}

// parseListParams reads page, pageSize, sortBy, sortOrder and q from the query string
func parseListParams(r *http.Request) repository.ListParams {
	q := r.URL.Query()
	return repository.ListParams{
		Page:      parseIntQuery(r, "page", 1),
		PageSize:  parseIntQuery(r, "pageSize", repository.DefaultPageSize),
		SortBy:    q.Get("sortBy"),
		SortOrder: repository.ParseSortOrder(q.Get("sortOrder")),
		Search:    q.Get("q"),
	}.Normalized()
}

// parseIntQuery parses an integer query parameter with a default value
func parseIntQuery(r *http.Request, key string, defaultVal int) int {
	if v, err := strconv.Atoi(r.URL.Query().Get(key)); err == nil {
		return v
	}
	return defaultVal
}

// parseDateQuery accepts YYYY-MM-DD or RFC 3339; missing values return ok=false without error
func parseDateQuery(r *http.Request, key string) (time.Time, bool, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return time.Time{}, false, nil
	}
	d, err := domain.ParseDate(raw)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d.Time, true, nil
}

func urlID(r *http.Request) string {
	return chi.URLParam(r, "id")
}

func paginated[T any](res *domain.ListResult[T]) domain.PaginatedResponse {
	return domain.PaginatedResponse{Data: res.Data, Pagination: res.Pagination}
}
