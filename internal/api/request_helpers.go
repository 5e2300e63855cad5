package api

import (
	"net/http"
	"strconv"
)

// intParam parses an integer request parameter, returning def when the
// parameter is absent or malformed.
func intParam(r *http.Request, name string, def int) int {
	raw := r.FormValue(name)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return n
}

// requiredIntParam parses an integer request parameter that must be present.
func requiredIntParam(r *http.Request, name string) (int, bool) {
	n, err := strconv.Atoi(r.FormValue(name))
	if err != nil {
		return 0, false
	}
	return n, true
}

// floatParam parses a floating-point request parameter that must be present.
func floatParam(r *http.Request, name string) (float64, bool) {
	f, err := strconv.ParseFloat(r.FormValue(name), 64)
	if err != nil {
		return 0, false
	}
	return f, true
}
