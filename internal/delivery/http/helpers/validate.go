package helpers

import (
	"encoding/json"
	"net/http"
	"strings"
)

// maxBodyBytes caps request bodies read by DecodeAndValidate.
const maxBodyBytes = 1 << 20

// Validator is implemented by request DTOs that support validation.
// Validate returns a slice of error messages; nil or empty means valid.
type Validator interface {
	Validate() []string
}

type decodeConfig struct {
	allowUnknownFields bool
}

// DecodeOption adjusts how DecodeAndValidate reads a body.
type DecodeOption func(*decodeConfig)

// AllowUnknownFields makes DecodeAndValidate ignore fields dest does not declare.
func AllowUnknownFields() DecodeOption {
	return func(c *decodeConfig) { c.allowUnknownFields = true }
}

// DecodeAndValidate decodes the request body into dest (with DisallowUnknownFields
// unless AllowUnknownFields is given) and, if dest implements Validator, runs
// Validate(). On decode or validation failure it writes a 400 JSON error and
// returns false; otherwise returns true.
// Callers should return immediately when DecodeAndValidate returns false.
func DecodeAndValidate(w http.ResponseWriter, r *http.Request, dest any, opts ...DecodeOption) bool {
	var cfg decodeConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if !cfg.allowUnknownFields {
		dec.DisallowUnknownFields()
	}
	dec.UseNumber()
	if err := dec.Decode(dest); err != nil {
		WriteJSONError(w, http.StatusBadRequest, ErrCodeBadRequest, "JSON inválido: "+err.Error())
		return false
	}
	if v, ok := dest.(Validator); ok {
		if errs := v.Validate(); len(errs) > 0 {
			WriteJSONError(w, http.StatusBadRequest, ErrCodeBadRequest, strings.Join(errs, "; "))
			return false
		}
	}
	return true
}
