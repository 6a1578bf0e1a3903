package catalog

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validator checks write inputs before they reach storage.
type Validator struct {
	v            *validator.Validate
	strictGenres bool
}

// NewValidator creates a validator. With strictGenres, every genre must be part
// of the vocabulary and books need at least one genre.
func NewValidator(strictGenres bool) *Validator {
	v := validator.New()

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})

	// Registration only fails for an empty tag or a nil func.
	_ = v.RegisterValidation("genre", func(fl validator.FieldLevel) bool {
		return !strictGenres || IsKnownGenre(fl.Field().String())
	})

	return &Validator{v: v, strictGenres: strictGenres}
}

// StrictGenres reports whether the genre vocabulary is enforced.
func (v *Validator) StrictGenres() bool {
	return v.strictGenres
}

// ValidateCreate normalizes the input in place and validates it.
func (v *Validator) ValidateCreate(in *CreateInput) error {
	in.normalize()
	return v.check(in, in.Genres)
}

// ValidateUpdate normalizes the input in place and validates it.
func (v *Validator) ValidateUpdate(in *UpdateInput) error {
	in.ID = strings.TrimSpace(in.ID)
	in.normalize()
	return v.check(in, in.Genres)
}

// ValidateFields normalizes and validates a full set of book fields, typically
// the result of applying a BookPatch to a stored book.
func (v *Validator) ValidateFields(f *BookFields) error {
	f.normalize()
	return v.check(f, f.Genres)
}

func (v *Validator) check(s any, genres []string) error {
	fields := make(map[string]string)

	if err := v.v.Struct(s); err != nil {
		var validationErrs validator.ValidationErrors
		if !errors.As(err, &validationErrs) {
			return err
		}
		for _, e := range validationErrs {
			fields[e.Field()] = friendlyMessage(e)
		}
	}

	if v.strictGenres && len(genres) == 0 {
		fields["genres"] = "must contain at least one genre"
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

func friendlyMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "is required"
	case "max":
		return fmt.Sprintf("must not exceed %s characters", e.Param())
	case "genre":
		return fmt.Sprintf("%q is not a known genre", e.Value())
	default:
		return "is invalid"
	}
}
