package types

import (
	"errors"
	"fmt"

	"github.com/gin-gonic/gin/binding"

	"github.com/pageza/nutrilog/backend/internal/models"
)

// ValidateUserData checks an imported document. The profile input is
// revalidated with the same rules as the form; derived fields are ignored
// because they are recomputed on import.
func ValidateUserData(d models.UserData) error {
	var errs ValidationErrors

	if d.Profile != nil {
		if _, err := ProfileRequestFrom(d.Profile.ProfileInput).Build(); err != nil {
			for _, fe := range err.(ValidationErrors) {
				errs.add("profile."+fe.Field, "%s", fe.Message)
			}
		}
	}

	seen := make(map[string]bool, len(d.FoodLog))
	for i, e := range d.FoodLog {
		field := fmt.Sprintf("foodLog[%d]", i)
		if err := FromValidator(binding.Validator.ValidateStruct(e), field); err != nil {
			var fields ValidationErrors
			if !errors.As(err, &fields) {
				return err
			}
			errs = append(errs, fields...)
		}
		if e.ID != "" && seen[e.ID] {
			errs.add(field+".id", "duplicates an earlier entry")
		}
		seen[e.ID] = true
	}

	return errs.Err()
}
