package web

// errors.go writes error responses. Technical details are logged with the
// request id; clients get the mapped message, action and code.

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/JonMunkholm/migfix/internal/apply"
	"github.com/JonMunkholm/migfix/internal/logging"
)

// ErrorResponse represents the JSON structure for API error responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Action  string `json:"action,omitempty"`
	Code    string `json:"code"`
}

var msgBodyTooLarge = apply.UserMessage{
	Message: "Request body is too large",
	Action:  "Send a smaller script or raise SERVER_MAX_BODY_SIZE",
	Code:    "REQ001",
}

// statusFor picks the HTTP status for err.
func statusFor(err error) int {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return http.StatusRequestEntityTooLarge
	}
	return http.StatusBadRequest
}

// userMessage maps err, handling transport errors before the shared catalogue.
func userMessage(err error) apply.UserMessage {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return msgBodyTooLarge
	}
	return apply.MapError(err)
}

// respondError logs err and writes a JSON or plain-text error response.
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error, statusCode int) {
	msg := userMessage(err)

	logging.FromContext(r.Context()).Error("request error",
		"path", r.URL.Path,
		"method", r.Method,
		"status", statusCode,
		"error", err.Error(),
		"code", msg.Code,
	)

	if !wantsJSON(r) {
		http.Error(w, msg.Message+" ("+msg.Code+")", statusCode)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(ErrorResponse{
		Error:   msg.Message,
		Message: msg.Message,
		Action:  msg.Action,
		Code:    msg.Code,
	})
}

// wantsJSON checks if the client prefers a JSON response.
func wantsJSON(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}
