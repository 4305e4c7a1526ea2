package request

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
)

// RouteIntParam returns an URL route parameter as int.
func RouteIntParam(r *http.Request, param string) int {
	vars := mux.Vars(r)
	value, err := strconv.Atoi(vars[param])
	if err != nil {
		return 0
	}

	if value < 0 {
		return 0
	}

	return value
}

// QueryStringParam returns a query string parameter, or the fallback when
// absent.
func QueryStringParam(r *http.Request, param, fallback string) string {
	value := r.URL.Query().Get(param)
	if value == "" {
		return fallback
	}
	return value
}

// QueryIntParam returns a query string parameter as int, or the fallback
// when absent or malformed.
func QueryIntParam(r *http.Request, param string, fallback int) int {
	value := r.URL.Query().Get(param)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil || parsed < 0 {
		return fallback
	}
	return parsed
}
