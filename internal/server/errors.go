package server

import (
	"errors"
	"net/http"

	"github.com/go-chi/render"

	"github.com/tsawler/cantine"
	"github.com/tsawler/cantine/catalogue"
	"github.com/tsawler/cantine/ocr"
	mrender "github.com/tsawler/cantine/render"
)

// APIError is an error answered to the client. Message is the stable
// English form used in JSON bodies, Text the French sentence shown to
// people.
type APIError struct {
	StatusCode int    `json:"-"`
	ErrorCode  string `json:"-"`
	Message    string `json:"error"`
	Text       string `json:"-"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	return e.Message
}

// Render implements the render.Renderer interface for chi/render
func (e *APIError) Render(w http.ResponseWriter, r *http.Request) error {
	render.Status(r, e.StatusCode)
	return nil
}

// PlainText returns the French message.
func (e *APIError) PlainText(bool) string {
	if e.Text == "" {
		return e.Message
	}
	return e.Text
}

// HTML wraps the French message in an error block.
func (e *APIError) HTML() string {
	return `<div class="error">` + e.PlainText(false) + `</div>`
}

func newError(status int, code, message, text string) *APIError {
	return &APIError{StatusCode: status, ErrorCode: code, Message: message, Text: text}
}

var (
	// 400 Bad Request
	ErrInvalidBody  = newError(http.StatusBadRequest, "INVALID_BODY", "invalid body", "")
	ErrInvalidPDF   = newError(http.StatusBadRequest, "INVALID_PDF", "invalid pdf", "")
	ErrInvalidWeek  = newError(http.StatusBadRequest, "INVALID_WEEK", "invalid week", "Format de semaine incorrect.")
	ErrInvalidDay   = newError(http.StatusBadRequest, "INVALID_DAY", "invalid day", "Format de date incorrect.")
	ErrMissingQuery = newError(http.StatusBadRequest, "MISSING_QUERY", "missing query", "Aucun plat à rechercher.")

	// 404 Not Found
	ErrNoMealToday  = newError(http.StatusNotFound, "NO_MEAL_TODAY", "no meal found for today", "Aucun repas de prévu pour aujourd'hui.")
	ErrNoNextMeal   = newError(http.StatusNotFound, "NO_NEXT_MEAL", "no next meal found", "Aucun repas de prévu pour bientôt.")
	ErrItemNotFound = newError(http.StatusNotFound, "ITEM_NOT_FOUND", "no meal found with this item", "Aucun repas de prévu avec ce plat.")
	ErrWeekNotFound = newError(http.StatusNotFound, "WEEK_NOT_FOUND", "week not found", "Aucun menu trouvé pour cette semaine.")
	ErrDayNotFound  = newError(http.StatusNotFound, "DAY_NOT_FOUND", "day not found", "Aucun menu trouvé pour ce jour.")
	ErrNotFound     = newError(http.StatusNotFound, "NOT_FOUND", "not found", "Page introuvable.")

	// 405, 413, 429
	ErrMethodNotAllowed = newError(http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "method not allowed", "")
	ErrTooLarge         = newError(http.StatusRequestEntityTooLarge, "PAYLOAD_TOO_LARGE", "document too large", "")
	ErrRateLimited      = newError(http.StatusTooManyRequests, "RATE_LIMIT_EXCEEDED", "too many requests", "")

	// 500, 501
	ErrInternal       = newError(http.StatusInternalServerError, "INTERNAL_ERROR", "internal error", "")
	ErrOCRUnavailable = newError(http.StatusNotImplemented, "OCR_UNAVAILABLE", "ocr not enabled", "")
)

// errorFor maps an error to the answer given to the client.
func errorFor(err error) *APIError {
	var apiErr *APIError
	var tooLarge *http.MaxBytesError

	switch {
	case errors.As(err, &apiErr):
		return apiErr
	case errors.As(err, &tooLarge):
		return ErrTooLarge
	case errors.Is(err, ocr.ErrOCRNotEnabled):
		return ErrOCRUnavailable
	case errors.Is(err, mrender.ErrInvalidDocument), errors.Is(err, cantine.ErrUnparsableLayout):
		return ErrInvalidPDF
	case errors.Is(err, catalogue.ErrInvalidWeek):
		return ErrInvalidWeek
	case errors.Is(err, catalogue.ErrWeekNotFound):
		return ErrWeekNotFound
	case errors.Is(err, catalogue.ErrDayNotFound):
		return ErrDayNotFound
	default:
		return ErrInternal
	}
}

// ErrorResponse is the JSON body of an error.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}
