package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/custodia-labs/kgingest/internal/core/domain"
)

// Error codes returned in error bodies.
const (
	codeBadRequest      = "bad_request"
	codeNotFound        = "not_found"
	codeUnsupportedType = "unsupported_type"
	codeReadFailed      = "read_failed"
	codeFetchFailed     = "fetch_failed"
	codeRegistration    = "registration_failed"
	codeNotImplemented  = "not_implemented"
	codeInternal        = "internal_error"
)

// errorResponse is the body of every non-2xx response.
type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error) bool

func defaultErrorHandlers() []errorHandler {
	return []errorHandler{
		sentinelHandler(domain.ErrNotFound, http.StatusNotFound, codeNotFound),
		sentinelHandler(domain.ErrInvalidInput, http.StatusBadRequest, codeBadRequest),
		sentinelHandler(domain.ErrUnsupportedType, http.StatusUnsupportedMediaType, codeUnsupportedType),
		sentinelHandler(domain.ErrReadFailed, http.StatusBadRequest, codeReadFailed),
		sentinelHandler(domain.ErrFetchFailed, http.StatusBadGateway, codeFetchFailed),
		sentinelHandler(domain.ErrRegistrationFailed, http.StatusInternalServerError, codeRegistration),
		sentinelHandler(domain.ErrNotImplemented, http.StatusNotImplemented, codeNotImplemented),
	}
}

// sentinelHandler maps one sentinel to a status. The message is the full
// error text, which carries the failing URL or filename.
func sentinelHandler(sentinel error, status int, code string) errorHandler {
	return func(w http.ResponseWriter, err error) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, err.Error())
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	s.logger.Warn("domain error", zap.Error(err))
	for _, h := range s.errorHandlers {
		if h(w, err) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, codeInternal, "internal error")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Code: code, Message: message})
}
