package httpclient

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	apperrors "github.com/greatochuko/fobeworkLMS/pkg/errors"
)

// serverErrorResponse mirrors the httputil.ErrorResponse structure returned by
// the API. It is used to parse structured error bodies from HTTP calls.
type serverErrorResponse struct {
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// ParseResponseError reads the body of a non-2xx HTTP response and translates
// it into an appropriate AppError. If the response body matches the standard
// ErrorResponse format, the code and message are preserved. Otherwise a generic
// error is returned with the status code and raw body.
//
// The caller should only invoke this when resp.StatusCode indicates an error
// (i.e., not 2xx). The response body is fully consumed and closed.
func ParseResponseError(resp *http.Response) error {
	defer func() { _ = resp.Body.Close() }()

	bodyBytes, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20)) // 1 MB limit
	if err != nil {
		return fmt.Errorf("server returned status %d (failed to read body: %w)", resp.StatusCode, err)
	}

	var server serverErrorResponse
	if json.Unmarshal(bodyBytes, &server) == nil && server.Error != nil {
		return mapServerError(resp.StatusCode, server.Error.Code, server.Error.Message)
	}

	return fmt.Errorf("server returned status %d: %s", resp.StatusCode, string(bodyBytes))
}

// mapServerError translates the API's HTTP status code and error code into an
// AppError that preserves the error semantics.
func mapServerError(status int, code, message string) error {
	switch {
	case status == http.StatusNotFound:
		return &apperrors.AppError{Code: code, Message: message, Status: status, Err: apperrors.ErrNotFound}
	case status == http.StatusBadRequest:
		return apperrors.InvalidInput(message)
	case status == http.StatusConflict:
		return &apperrors.AppError{Code: code, Message: message, Status: status, Err: apperrors.ErrAlreadyExists}
	case status == http.StatusUnauthorized:
		return apperrors.Unauthorized(message)
	case status == http.StatusForbidden:
		return apperrors.Forbidden(message)
	case status >= 500:
		return fmt.Errorf("server error (%d/%s): %s", status, code, message)
	default:
		return &apperrors.AppError{Code: code, Message: message, Status: status}
	}
}
