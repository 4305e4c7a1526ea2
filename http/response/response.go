// Package response writes JSON responses the way every handler expects
// them: a payload on success, {"error": ...} on failure.
package response

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/seowoojae/shelfd/log"
	"github.com/seowoojae/shelfd/model"
)

type errorBody struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if body == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Error("Failed to encode response body", zap.Error(err))
	}
}

func OK(w http.ResponseWriter, r *http.Request, body any) {
	writeJSON(w, http.StatusOK, body)
}

func Created(w http.ResponseWriter, r *http.Request, body any) {
	writeJSON(w, http.StatusCreated, body)
}

func NoContent(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}

func BadRequest(w http.ResponseWriter, r *http.Request, err error) {
	writeJSON(w, http.StatusBadRequest, errorBody{Error: err.Error()})
}

func Unauthorized(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusUnauthorized, errorBody{Error: "unauthorized"})
}

func Forbidden(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusForbidden, errorBody{Error: "forbidden"})
}

func Conflict(w http.ResponseWriter, r *http.Request, err error) {
	writeJSON(w, http.StatusConflict, errorBody{Error: err.Error()})
}

func NotFound(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusNotFound, errorBody{Error: "not found"})
}

func ServerError(w http.ResponseWriter, r *http.Request, err error) {
	log.Error("Internal server error", zap.String("path", r.URL.Path), zap.Error(err))
	writeJSON(w, http.StatusInternalServerError, errorBody{Error: err.Error()})
}

// UserResponse strips fields that must never leave the server.
func UserResponse(user *model.User) *model.User {
	clean := *user
	clean.PasswordHash = ""
	return &clean
}
