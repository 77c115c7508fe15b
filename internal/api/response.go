package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/render"

	"github.com/piwi3910/ShelfSort/internal/engine"
	"github.com/piwi3910/ShelfSort/internal/model"
)

// Error codes returned in the response envelope.
const (
	CodeGameDoesNotFit             = "GAME_DOES_NOT_FIT"
	CodeGameDoesNotFitVertically   = "GAME_DOES_NOT_FIT_VERTICALLY"
	CodeGameDoesNotFitHorizontally = "GAME_DOES_NOT_FIT_HORIZONTALLY"
	CodeNotEnoughSpace             = "NOT_ENOUGH_SPACE"
	CodeInvalidSettings            = "INVALID_SETTINGS"
	CodeInvalidRequest             = "INVALID_REQUEST"
	CodeValidation                 = "VALIDATION_ERROR"
	CodeNotFound                   = "NOT_FOUND"
	CodeMethodNotAllowed           = "METHOD_NOT_ALLOWED"
	CodeInternal                   = "INTERNAL_ERROR"
)

// APIResponse is the envelope every endpoint answers with.
type APIResponse struct {
	Success bool      `json:"success"`
	Data    any       `json:"data,omitempty"`
	Error   *APIError `json:"error,omitempty"`
}

// APIError represents error details in an API response.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`

	// Game names the game that aborted a sort.
	Game string `json:"game,omitempty"`

	ValidationErrors []ValidationError `json:"validation_errors,omitempty"`
}

// ValidationError represents a field validation error.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func writeSuccess(w http.ResponseWriter, r *http.Request, data any) {
	render.Status(r, http.StatusOK)
	render.JSON(w, r, APIResponse{Success: true, Data: data})
}

func writeError(w http.ResponseWriter, r *http.Request, status int, apiErr *APIError) {
	render.Status(r, status)
	render.JSON(w, r, APIResponse{Success: false, Error: apiErr})
}

// sortErrorStatus maps a sorting error to its HTTP status and envelope.
func sortErrorStatus(err error) (int, *APIError) {
	apiErr := &APIError{Message: err.Error(), Game: engine.GameName(err)}
	switch {
	case errors.Is(err, engine.ErrGameDoesNotFitVertically):
		apiErr.Code = CodeGameDoesNotFitVertically
	case errors.Is(err, engine.ErrGameDoesNotFitHorizontally):
		apiErr.Code = CodeGameDoesNotFitHorizontally
	case errors.Is(err, engine.ErrGameDoesNotFit):
		apiErr.Code = CodeGameDoesNotFit
	case errors.Is(err, engine.ErrNotEnoughSpace):
		apiErr.Code = CodeNotEnoughSpace
	case errors.Is(err, model.ErrInvalidSettings):
		apiErr.Code = CodeInvalidSettings
		return http.StatusBadRequest, apiErr
	default:
		apiErr.Code = CodeInternal
		return http.StatusInternalServerError, apiErr
	}
	return http.StatusUnprocessableEntity, apiErr
}

// errorBody is the envelope error for a failed sort, without the status.
func errorBody(err error) *APIError {
	_, apiErr := sortErrorStatus(err)
	return apiErr
}

func notFoundHandler(w http.ResponseWriter, r *http.Request) {
	writeError(w, r, http.StatusNotFound, &APIError{
		Code:    CodeNotFound,
		Message: "The requested resource was not found",
	})
}

func methodNotAllowedHandler(w http.ResponseWriter, r *http.Request) {
	writeError(w, r, http.StatusMethodNotAllowed, &APIError{
		Code:    CodeMethodNotAllowed,
		Message: "The requested method is not allowed for this resource",
	})
}
