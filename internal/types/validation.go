package types

import (
	"errors"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/pageza/nutrilog/backend/internal/models"
)

// MealTypeRule is the binding rule for a meal type value.
const MealTypeRule = "oneof=breakfast lunch dinner snack"

// Rules registered on gin's binding engine, so request binding and the
// service layer report the same field errors.
func init() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	v.RegisterTagNameFunc(jsonName)
	if err := v.RegisterValidation("activitylevel", activityLevel); err != nil {
		panic(err)
	}
}

func jsonName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	if name == "-" {
		return ""
	}
	if name == "" {
		return f.Name
	}
	return name
}

func activityLevel(fl validator.FieldLevel) bool {
	f := fl.Field()
	switch f.Kind() {
	case reflect.Float32, reflect.Float64:
		return models.IsActivityLevel(f.Float())
	}
	return false
}

// ValidateStruct runs the binding rules of obj and returns ValidationErrors
// on failure.
func ValidateStruct(obj any) error {
	return FromValidator(binding.Validator.ValidateStruct(obj), "")
}

// ValidateVar checks a single value against rule and reports failures under
// field.
func ValidateVar(field string, value any, rule string) error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	return FromValidator(v.Var(value, rule), field)
}

// FromValidator converts validator errors into ValidationErrors. Field names
// are the JSON paths below the validated value, joined to prefix. Other
// errors are returned unchanged.
func FromValidator(err error, prefix string) error {
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	out := make(ValidationErrors, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldError{Field: fieldPath(prefix, fe.Namespace()), Message: ruleMessage(fe)})
	}
	return out
}

// fieldPath drops the root type name validator puts in front of every
// namespace.
func fieldPath(prefix, namespace string) string {
	_, path, found := strings.Cut(namespace, ".")
	switch {
	case !found:
		return prefix
	case prefix == "":
		return path
	}
	return prefix + "." + path
}

func ruleMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "gt":
		return "must be greater than " + fe.Param()
	case "oneof":
		return "must be one of " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "activitylevel":
		return "must be one of 1.2, 1.375, 1.55, 1.725, 1.9"
	case "datetime":
		return "must be an RFC 3339 timestamp"
	}
	return "failed the " + fe.Tag() + " rule"
}
