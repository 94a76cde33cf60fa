// Package validation checks request payloads before they reach a service.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strconv"
	"strings"

	"terranova/internal/models"

	"github.com/go-playground/validator/v10"
)

var coordinatePattern = regexp.MustCompile(`^-?\d+(\.\d+)?,\s*-?\d+(\.\d+)?$`)

// Validator wraps validator.Validate with the project-specific tags
// "latlon", "project_status" and "skill_level" registered.
type Validator struct {
	validate *validator.Validate
}

// New creates a Validator. Field names in error maps use the json tag.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	// Registration only fails on an empty tag or nil func.
	_ = v.RegisterValidation("latlon", func(fl validator.FieldLevel) bool {
		return ValidLocation(fl.Field().String())
	})
	_ = v.RegisterValidation("project_status", func(fl validator.FieldLevel) bool {
		return ValidStatus(models.ProjectStatus(fl.Field().String()))
	})
	_ = v.RegisterValidation("skill_level", func(fl validator.FieldLevel) bool {
		return ValidSkillLevel(models.SkillLevel(fl.Field().String()))
	})
	return &Validator{validate: v}
}

// Struct validates s and returns a map of field path to message, or nil when
// the payload is valid.
func (v *Validator) Struct(s interface{}) map[string]string {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return map[string]string{"_": err.Error()}
	}
	errorMessages := make(map[string]string, len(validationErrors))
	for _, e := range validationErrors {
		errorMessages[fieldPath(e)] = message(e)
	}
	return errorMessages
}

// ValidLocation reports whether s is a "lat,lon" pair with latitude in
// [-90, 90] and longitude in [-180, 180].
func ValidLocation(s string) bool {
	if !coordinatePattern.MatchString(s) {
		return false
	}
	parts := strings.SplitN(s, ",", 2)
	lat, err := strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return false
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return false
	}
	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}

// ValidStatus reports whether s is one of the project statuses.
func ValidStatus(s models.ProjectStatus) bool {
	for _, status := range models.ProjectStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// ValidSkillLevel reports whether s is one of the skill levels.
func ValidSkillLevel(s models.SkillLevel) bool {
	for _, level := range models.SkillLevels {
		if s == level {
			return true
		}
	}
	return false
}

// fieldPath drops the top-level struct name from the namespace, so
// "CreateProjectRequest.milestones[0].name" becomes "milestones[0].name".
func fieldPath(e validator.FieldError) string {
	ns := e.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return e.Field()
}

func message(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", e.Field())
	case "latlon":
		return "Invalid lat,lon format"
	case "project_status":
		return "status must be one of Planning, Active, Completed, On Hold"
	case "skill_level":
		return "skillLevel must be one of Beginner, Intermediate, Advanced, Expert, Master"
	case "email":
		return "email must be a valid email address"
	case "min", "max":
		return fmt.Sprintf("%s must satisfy %s=%s", e.Field(), e.Tag(), e.Param())
	}
	return fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
}

// Error is returned by Validate when a payload fails one or more rules.
type Error struct {
	Fields map[string]string
}

func (e *Error) Error() string {
	return fmt.Sprintf("validation failed on %d field(s)", len(e.Fields))
}

// Validate is Struct in error form: nil when valid, *Error otherwise.
func (v *Validator) Validate(s interface{}) error {
	if errs := v.Struct(s); errs != nil {
		return &Error{Fields: errs}
	}
	return nil
}
