package api

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/xraph/syllabus"
	"github.com/xraph/syllabus/consistency"
	"github.com/xraph/syllabus/id"
	"github.com/xraph/syllabus/validate"
)

// Response is the success envelope.
type Response struct {
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
	Data       any    `json:"data"`
}

// ErrorResponse is the failure envelope.
type ErrorResponse struct {
	StatusCode int       `json:"statusCode"`
	Message    string    `json:"message"`
	Errors     any       `json:"errors,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}

func writeData(w http.ResponseWriter, status int, message string, data any) {
	writeJSON(w, status, Response{StatusCode: status, Message: message, Data: data})
}

func writeError(w http.ResponseWriter, status int, message string, details any) {
	writeJSON(w, status, ErrorResponse{
		StatusCode: status,
		Message:    message,
		Errors:     details,
		Timestamp:  time.Now().UTC(),
	})
}

// statusFor maps Syllabus errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, syllabus.ErrValidation),
		errors.Is(err, syllabus.ErrDuplicateName),
		errors.Is(err, syllabus.ErrSubCategoryCategoryMismatch):
		return http.StatusBadRequest
	case syllabus.IsNotFound(err):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// details extracts per-field or per-id detail for the errors member.
func details(err error) any {
	var ve *validate.Error
	if errors.As(err, &ve) {
		return ve.Messages()
	}
	var mm *consistency.MismatchError
	if errors.As(err, &mm) {
		return map[string][]string{"subCategoryIds": id.Strings(mm.SubCategoryIDs)}
	}
	return nil
}

// fail writes err in the failure envelope. Internal errors are logged and
// their text withheld.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		h.logger.ErrorContext(r.Context(), "request failed",
			slog.String("path", r.URL.Path),
			slog.Any("error", err),
		)
		writeError(w, status, "internal server error", nil)
		return
	}
	writeError(w, status, err.Error(), details(err))
}

// pathID parses a path value as an id of the given kind, writing a 400 on
// failure.
func pathID(w http.ResponseWriter, r *http.Request, name string, prefix id.Prefix) (id.ID, bool) {
	v, err := id.ParseWithPrefix(r.PathValue(name), prefix)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid "+name, map[string]string{name: err.Error()})
		return id.Nil, false
	}
	return v, true
}
