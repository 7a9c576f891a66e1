// Package validation sanitizes and checks comic payloads before they reach
// the service layer.
//
// Rules run in a fixed order and only the first failure is reported, so a
// client fixing one problem at a time gets a stable message.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"comicvault/internal/microservices/http-api/dto"
	"comicvault/internal/microservices/http-api/models"
)

// Error names the first field that failed and why.
type Error struct {
	Field   string `json:"field"`
	Message string `json:"error"`
}

func (e *Error) Error() string {
	return e.Message
}

// validator.Validate caches struct metadata and is safe for concurrent use.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	if err := v.RegisterValidation("condition", func(fl validator.FieldLevel) bool {
		return models.Condition(fl.Field().String()).Valid()
	}); err != nil {
		panic(fmt.Sprintf("register condition validation: %v", err))
	}
	return v
}

// Comic sanitizes in and validates it. A nil return means the comic is valid.
func Comic(in *dto.ComicInput) error {
	if in == nil {
		return &Error{Field: "body", Message: "comic body is required"}
	}
	SanitizeComic(in)
	return check(in)
}

// ComicUpdate applies the same rules to the fields a partial update supplies.
func ComicUpdate(in *dto.UpdateComicInput) error {
	if in == nil {
		return &Error{Field: "body", Message: "update body is required"}
	}
	SanitizeUpdate(in)
	return check(in)
}

// Batch validates every comic of a bulk import. The first failure is
// returned with its index in the batch.
func Batch(in []dto.ComicInput) error {
	if len(in) == 0 {
		return &Error{Field: "body", Message: "import requires a non-empty array of comics"}
	}
	for i := range in {
		if err := Comic(&in[i]); err != nil {
			var verr *Error
			if errors.As(err, &verr) {
				return &Error{Field: verr.Field, Message: fmt.Sprintf("comic at index %d: %s", i, verr.Message)}
			}
			return fmt.Errorf("comic at index %d: %w", i, err)
		}
	}
	return nil
}

func check(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		return fromFieldError(fieldErrs[0])
	}
	return &Error{Field: "body", Message: err.Error()}
}

func fromFieldError(fe validator.FieldError) *Error {
	field := fe.Field()
	msg := field + " is invalid"

	switch {
	case field == "rating":
		msg = "rating must be between 0 and 10"
	case fe.Tag() == "required":
		msg = field + " is required"
	case fe.Tag() == "min" && fe.Kind() == reflect.String:
		msg = field + " must not be empty"
	case fe.Tag() == "gte" && fe.Kind() == reflect.Int:
		msg = field + " must be a non-negative integer"
	case fe.Tag() == "gte":
		msg = field + " must not be negative"
	case fe.Tag() == "condition":
		msg = fmt.Sprintf("condition must be one of: %s", models.ConditionNames())
	case fe.Tag() == "datetime":
		msg = field + " must be a date in YYYY-MM-DD format"
	}
	return &Error{Field: field, Message: msg}
}
