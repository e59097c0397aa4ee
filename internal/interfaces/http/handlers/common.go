// Package handlers contains the HTTP handlers for the CarePath-Insight API.
package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/turtacn/CarePath-Insight/pkg/errors"
	"github.com/turtacn/CarePath-Insight/pkg/types/common"
)

// parsePagination extracts page and page_size from query parameters.
func parsePagination(r *http.Request) common.Pagination {
	page := 1
	pageSize := 20

	if v := r.URL.Query().Get("page"); v != "" {
		if p, err := strconv.Atoi(v); err == nil && p > 0 {
			page = p
		}
	}
	if v := r.URL.Query().Get("page_size"); v != "" {
		if ps, err := strconv.Atoi(v); err == nil && ps > 0 && ps <= 100 {
			pageSize = ps
		}
	}
	return common.Pagination{Page: page, PageSize: pageSize}
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

// ErrorResponse is the standard error response body.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// writeAppError maps application-level errors to HTTP responses using the
// platform error-code table.  Server-side codes are masked so internals never
// leak to clients.
func writeAppError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	status := errors.HTTPStatusForCode(code)

	message := err.Error()
	if errors.IsServerError(code) || code == errors.CodeUnknown {
		status = http.StatusInternalServerError
		message = errors.DefaultMessageForCode(errors.ErrCodeInternal)
		code = errors.ErrCodeInternal
	}

	writeJSON(w, status, ErrorResponse{Code: code.String(), Message: message})
}
