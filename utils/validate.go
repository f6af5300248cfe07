package utils

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// DecodeAndValidate decodes a JSON request body into dst and runs its validate tags
func DecodeAndValidate(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return fmt.Errorf("invalid input: %w", err)
	}
	if err := validate.Struct(dst); err != nil {
		return fmt.Errorf("invalid input: %w", err)
	}
	return nil
}
