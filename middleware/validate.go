package middleware

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/bkbadhon/fulus-backend/utils"
)

var validate = validator.New()

// ValidateJSON decodes the JSON payload into dst and runs struct validation.
// On failure it writes the error response and returns a non-nil error so the
// handler can simply return.
func ValidateJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid JSON body"})
		return err
	}
	if err := validate.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		msg := "Missing required fields"
		if errors.As(err, &verrs) && len(verrs) > 0 {
			msg = "Invalid field: " + verrs[0].Field()
		}
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: msg})
		return err
	}
	return nil
}
