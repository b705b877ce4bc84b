package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"gascalc/backend/services/calculator-service/internal/form"
	"gascalc/backend/services/calculator-service/internal/view"
)

const maxBodyBytes = 64 << 10

var errBadBody = errors.New("invalid request body")

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// writeNoResult answers a calculation that produced nothing.
func writeNoResult(w http.ResponseWriter, err error, logger *zap.Logger) {
	body, status := view.NewNoResult(err)
	if status >= http.StatusInternalServerError {
		logger.Error("calculation failed", zap.Error(err))
	}
	writeJSON(w, status, body)
}

// isForm reports whether the request carries url-encoded form fields.
func isForm(r *http.Request) bool {
	mt, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && mt == "application/x-www-form-urlencoded"
}

// formFields flattens posted form values, keeping the first of each.
func formFields(w http.ResponseWriter, r *http.Request) (map[string]string, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := r.ParseForm(); err != nil {
		return nil, errBadBody
	}
	fields := make(map[string]string, len(r.PostForm))
	for k, v := range r.PostForm {
		if len(v) > 0 {
			fields[k] = v[0]
		}
	}
	return fields, nil
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		return errBadBody
	}
	return nil
}

// required collects JSON fields that were left out. An absent number is
// incomplete input, not zero.
type required struct {
	missing []string
}

func (r *required) float(name string, v *float64) float64 {
	if v == nil {
		r.missing = append(r.missing, name)
		return 0
	}
	return *v
}

func (r *required) int(name string, v *int) int {
	if v == nil {
		r.missing = append(r.missing, name)
		return 0
	}
	return *v
}

func (r *required) err() error {
	if len(r.missing) == 0 {
		return nil
	}
	return fmt.Errorf("%w: missing %s", form.ErrIncomplete, strings.Join(r.missing, ", "))
}
