package chi

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/kailas-cloud/docq/internal/domain"
	logpkg "github.com/kailas-cloud/docq/internal/logger"
)

// ErrorCode is the machine-readable code of an error response.
type ErrorCode string

// Error codes returned by the API.
const (
	CodeBadRequest           ErrorCode = "bad_request"
	CodeUnauthorized         ErrorCode = "unauthorized"
	CodeNotFound             ErrorCode = "not_found"
	CodeInvalidNumber        ErrorCode = "invalid_number"
	CodeInvalidQuery         ErrorCode = "invalid_query"
	CodeSearchNotConfigured  ErrorCode = "search_not_configured"
	CodeUnsupportedPredicate ErrorCode = "unsupported_predicate"
	CodeInternalError        ErrorCode = "internal_error"
	CodeServiceUnavailable   ErrorCode = "service_unavailable"
)

// ErrorResponse is the JSON body of every error.
type ErrorResponse struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error) bool

var errorHandlers = []errorHandler{
	invalidNumberHandler,
	sentinelHandler(domain.ErrNotFound, http.StatusNotFound, CodeNotFound),
	sentinelHandler(domain.ErrInvalidQuery, http.StatusBadRequest, CodeInvalidQuery),
	sentinelHandler(domain.ErrMisconfiguredSearch, http.StatusBadRequest, CodeSearchNotConfigured),
	sentinelHandler(domain.ErrUnsupportedPredicate, http.StatusBadRequest, CodeUnsupportedPredicate),
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
// The client sees the sentinel message only.
func sentinelHandler(sentinel error, status int, code ErrorCode) errorHandler {
	return func(w http.ResponseWriter, err error) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, sentinel.Error())
		return true
	}
}

// invalidNumberHandler echoes the offending argument back to the client.
func invalidNumberHandler(w http.ResponseWriter, err error) bool {
	if !errors.Is(err, domain.ErrInvalidNumber) {
		return false
	}
	msg := domain.ErrInvalidNumber.Error()
	var ine *domain.InvalidNumberError
	if errors.As(err, &ine) {
		msg = ine.Error()
	}
	writeError(w, http.StatusBadRequest, CodeInvalidNumber, msg)
	return true
}

func handleDomainError(w http.ResponseWriter, r *http.Request, err error) {
	log := logpkg.FromContext(r.Context())
	for _, h := range errorHandlers {
		if h(w, err) {
			log.Debug("domain error", zap.Error(err))
			return
		}
	}
	log.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, CodeInternalError, "internal error")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code ErrorCode, message string) {
	writeJSON(w, status, ErrorResponse{Code: code, Message: message})
}
