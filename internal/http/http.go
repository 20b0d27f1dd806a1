package http

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"time"
)

// JSONResponse writes a JSON body with the given status code
func JSONResponse(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Error: could not encode response: %v", err)
	}
}

// ErrorResponse sends a JSON error response
func ErrorResponse(w http.ResponseWriter, message string, statusCode int) {
	log.Printf("Error: %s (status %d)", message, statusCode)
	JSONResponse(w, statusCode, map[string]string{"error": message})
}

// DecodeJSON reads a JSON request body into v, rejecting unknown fields
func DecodeJSON(r *http.Request, v interface{}) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

// ParseMonthQuery parses optional "year" and "month" query parameters.
// The month parameter is 0-based to match the stored data format; when
// either parameter is absent or malformed the current month is used.
func ParseMonthQuery(r *http.Request, now time.Time) time.Time {
	yearStr := r.URL.Query().Get("year")
	monthStr := r.URL.Query().Get("month")
	if yearStr == "" || monthStr == "" {
		return now
	}

	year, err := strconv.Atoi(yearStr)
	if err != nil || year < 2000 || year > 2200 {
		return now
	}
	month, err := strconv.Atoi(monthStr)
	if err != nil || month < 0 || month > 11 {
		return now
	}

	return time.Date(year, time.Month(month+1), 1, 0, 0, 0, 0, now.Location())
}
