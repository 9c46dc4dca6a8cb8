package controller

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	domainErrors "github.com/cassiomorais/sumup-bridge/internal/domain/errors"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report fields by their json names so validation messages match the wire.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError is the single place mapping errors to HTTP responses.
// Validation failures become 400s with field-specific messages; token and
// provider failures become 500s carrying the upstream detail; anything else
// becomes a generic 500 with the full error logged server-side only.
func writeError(w http.ResponseWriter, err error) {
	var validationErr *domainErrors.ValidationError
	if errors.As(err, &validationErr) {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: validationErr.Message})
		return
	}

	var authErr *domainErrors.AuthError
	if errors.As(err, &authErr) {
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}

	var upstreamErr *domainErrors.UpstreamError
	if errors.As(err, &upstreamErr) {
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}

	log.Error().Err(err).Msg("unhandled error in handler")
	writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "Internal server error"})
}

func decodeAndValidate(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field != "" {
			return domainErrors.NewValidationError(typeErr.Field, invalidFieldMessage(typeErr.Field))
		}
		return domainErrors.NewValidationError("body", "invalid JSON: "+err.Error())
	}
	if err := validate.Struct(dst); err != nil {
		if ve, ok := err.(validator.ValidationErrors); ok && len(ve) > 0 {
			field := ve[0].Field()
			return domainErrors.NewValidationError(field, validationMessage(field, ve[0].Tag()))
		}
		return domainErrors.NewValidationError("body", err.Error())
	}
	return nil
}

func validationMessage(field, tag string) string {
	switch {
	case field == "amount" && tag == "required":
		return "Missing required field: amount (in cents)"
	case field == "amount":
		return invalidFieldMessage(field)
	case tag == "required":
		return fmt.Sprintf("Missing required field: %s", field)
	default:
		return fmt.Sprintf("Invalid field: %s", field)
	}
}

func invalidFieldMessage(field string) string {
	if field == "amount" {
		return "Invalid amount: must be a positive number (in cents)"
	}
	return fmt.Sprintf("Invalid field: %s", field)
}
