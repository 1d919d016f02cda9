// Package validate holds the field-shape constraints applied to every
// Syllabus input before any store is touched.
//
// Input types declare their own field tables with ozzo-validation and run
// them through Struct, which folds ozzo's per-field errors into a single
// *Error wrapping syllabus.ErrValidation.
package validate

import (
	"errors"
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/xraph/syllabus/id"
	"github.com/xraph/syllabus/internal/errs"
	"github.com/xraph/syllabus/query"
)

// Field length bounds.
const (
	NameMinLength        = 2
	NameMaxLength        = 100
	DescriptionMaxLength = 500
)

// Name is the rule set for a required catalog name. Values are trimmed by
// the services before validation.
var Name = []validation.Rule{
	validation.Required,
	validation.RuneLength(NameMinLength, NameMaxLength),
}

// OptionalName is Name for update inputs, where nil means unchanged.
var OptionalName = []validation.Rule{
	validation.NilOrNotEmpty,
	validation.RuneLength(NameMinLength, NameMaxLength),
}

// Description is the rule set for a free-text description.
var Description = []validation.Rule{
	validation.RuneLength(0, DescriptionMaxLength),
}

// Duration is the rule set for a course duration in hours.
var Duration = []validation.Rule{
	validation.Required,
	validation.Min(0.0).Exclusive(),
}

// OptionalDuration is Duration for update inputs.
var OptionalDuration = []validation.Rule{
	validation.NilOrNotEmpty,
	validation.Min(0.0).Exclusive(),
}

// Ref requires a well-formed id carrying prefix.
func Ref(prefix id.Prefix) []validation.Rule {
	return []validation.Rule{validation.Required, prefixed(prefix)}
}

// OptionalRef is Ref for update inputs, where a nil *id.ID means unchanged.
func OptionalRef(prefix id.Prefix) []validation.Rule {
	return []validation.Rule{prefixed(prefix)}
}

// Refs requires a non-empty list of well-formed ids carrying prefix.
func Refs(prefix id.Prefix) []validation.Rule {
	return []validation.Rule{
		validation.Required,
		validation.Each(validation.Required, prefixed(prefix)),
	}
}

// OptionalRefs is Refs for update inputs, where nil means unchanged.
func OptionalRefs(prefix id.Prefix) []validation.Rule {
	return []validation.Rule{
		validation.NilOrNotEmpty,
		validation.Each(validation.Required, prefixed(prefix)),
	}
}

func prefixed(prefix id.Prefix) validation.Rule {
	return validation.By(func(value any) error {
		var v id.ID
		switch x := value.(type) {
		case id.ID:
			v = x
		case *id.ID:
			if x == nil {
				return nil
			}
			if x.IsNil() {
				return errors.New("must be an id")
			}
			v = *x
		default:
			return errors.New("must be an id")
		}
		if v.IsNil() {
			return nil
		}
		if v.Prefix() != prefix {
			return fmt.Errorf("must be a %s id", prefix)
		}
		return nil
	})
}

// Pagination checks list parameters. Limit must be positive when given and
// SortOrder must be asc or desc. Skip is deliberately left unchecked.
func Pagination(p query.Params) error {
	return Struct(&p,
		validation.Field(&p.Limit, validation.NilOrNotEmpty, validation.Min(1)),
		validation.Field(&p.SortOrder, validation.In(query.Asc, query.Desc)),
	)
}

// Struct runs ozzo's ValidateStruct and converts field failures into *Error.
func Struct(structPtr any, fields ...*validation.FieldRules) error {
	err := validation.ValidateStruct(structPtr, fields...)
	if err == nil {
		return nil
	}
	var fe validation.Errors
	if errors.As(err, &fe) {
		return &Error{Fields: fe}
	}
	return fmt.Errorf("%w: %w", errs.ErrValidation, err)
}

// Error reports one or more invalid fields. It unwraps to
// syllabus.ErrValidation.
type Error struct {
	Fields validation.Errors
}

func (e *Error) Error() string {
	return errs.ErrValidation.Error() + ": " + e.Fields.Error()
}

func (e *Error) Unwrap() error { return errs.ErrValidation }

// Messages flattens Fields into field -> message, for response bodies.
func (e *Error) Messages() map[string]string {
	out := make(map[string]string, len(e.Fields))
	for field, err := range e.Fields {
		out[field] = err.Error()
	}
	return out
}

// Invalid builds an *Error for a single field outside an ozzo table.
func Invalid(field, message string) *Error {
	return &Error{Fields: validation.Errors{field: errors.New(message)}}
}
