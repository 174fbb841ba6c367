package catalog

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks the required fields of a catalog record.
func Validate(record any) error {
	switch r := record.(type) {
	case Subject:
		if r.Color != "" && !ValidColor(r.Color) {
			return fmt.Errorf("%w: subject %d: %w", ErrInvalidRecord, r.ID, ErrInvalidColor)
		}
		return check(r.ID, validate.Var(r.Name, "required"))
	case *Subject:
		return Validate(*r)
	case Teacher:
		if err := check(r.ID, validate.Var(r.LastName, "required")); err != nil {
			return err
		}
		if r.Email != "" {
			return check(r.ID, validate.Var(r.Email, "email"))
		}
		return nil
	case *Teacher:
		return Validate(*r)
	case Class:
		return check(r.ID, validate.Var(r.Name, "required"))
	case *Class:
		return Validate(*r)
	case Room:
		if err := validate.Var(r.Code, "required,max=32"); err != nil {
			return fmt.Errorf("%w: room code %q", ErrInvalidRecord, r.Code)
		}
		return nil
	case *Room:
		return Validate(*r)
	case Student:
		if err := check(r.ID, validate.Var(r.ClassID, "gt=0")); err != nil {
			return err
		}
		return check(r.ID, validate.Var(r.LastName, "required"))
	case *Student:
		return Validate(*r)
	case Parent:
		return check(r.ID, validate.Var(r.LastName, "required"))
	case *Parent:
		return Validate(*r)
	}
	return fmt.Errorf("%w: unsupported type %T", ErrInvalidRecord, record)
}

func check(id int64, err error) error {
	if id <= 0 {
		return fmt.Errorf("%w: id must be positive", ErrInvalidRecord)
	}
	var ve validator.ValidationErrors
	if errors.As(err, &ve) && len(ve) > 0 {
		return fmt.Errorf("%w: record %d failed %q", ErrInvalidRecord, id, ve[0].Tag())
	}
	return err
}
