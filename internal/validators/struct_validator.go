// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldsError lists the request fields that failed validation, by their
// JSON names. It wraps [ErrValidation].
type FieldsError struct {
	Fields []string
}

func (e *FieldsError) Error() string {
	return fmt.Sprintf("%s: %s", ErrValidation, strings.Join(e.Fields, ", "))
}

func (e *FieldsError) Unwrap() error {
	return ErrValidation
}

// StructValidator validates request models through their `validate` struct
// tags.
type StructValidator struct {
	validate *validator.Validate
}

// NewStructValidator returns a [Validator] backed by go-playground/validator.
// Reported field names come from the `json` tag when present.
func NewStructValidator() Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		switch name {
		case "-":
			return ""
		case "":
			return strings.ToLower(field.Name)
		default:
			return name
		}
	})

	return &StructValidator{validate: v}
}

// Validate implements [Validator]. When fields is non-empty, only the named
// Go struct fields are checked.
func (v *StructValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	var err error
	if len(fields) > 0 {
		err = v.validate.StructPartialCtx(ctx, obj, fields...)
	} else {
		err = v.validate.StructCtx(ctx, obj)
	}
	if err == nil {
		return nil
	}

	var invalid *validator.InvalidValidationError
	if errors.As(err, &invalid) {
		return fmt.Errorf("%w: %T", ErrUnsupportedType, obj)
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return fmt.Errorf("error validating %T: %w", obj, err)
	}

	failed := make([]string, 0, len(validationErrors))
	for _, fe := range validationErrors {
		failed = append(failed, fe.Field())
	}

	return &FieldsError{Fields: failed}
}
