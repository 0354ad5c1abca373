package model

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrInvalidInput is matched by every request-shape error.
var ErrInvalidInput = errors.New("invalid input")

// FieldError describes one problem with a request.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError collects all problems found in a request.
type ValidationError struct {
	Fields []FieldError `json:"fields"`
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		msgs[i] = f.Field + ": " + f.Message
	}
	return fmt.Sprintf("invalid input: %s", strings.Join(msgs, "; "))
}

// Is lets errors.Is(err, ErrInvalidInput) match.
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

func (e *ValidationError) add(field, format string, args ...any) {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: fmt.Sprintf(format, args...)})
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report the wire name (students, fixedSeats[0].row) instead of the Go name.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks the request shape and its constraints. Fixed seats must be
// in bounds, name a student of the roster, and not share a cell or a student;
// forbidden pairs must name two distinct positive ids. Pairs may reference
// students outside the roster; such pairs are trivially satisfied.
func (r Request) Validate() error {
	verr := &ValidationError{}

	if err := validate.Struct(r); err != nil {
		var ves validator.ValidationErrors
		if !errors.As(err, &ves) {
			return fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		for _, fe := range ves {
			verr.add(fieldPath(fe), "must satisfy %s", tagDescription(fe))
		}
		// Bounds checks below are meaningless on a malformed shape.
		return verr
	}

	for i, p := range r.ForbiddenPairs {
		field := fmt.Sprintf("forbiddenPairs[%d]", i)
		if p[0] <= 0 || p[1] <= 0 {
			verr.add(field, "student ids must be positive, got %v", p)
			continue
		}
		if p[0] == p[1] {
			verr.add(field, "a student cannot be forbidden from sitting next to itself (%d)", p[0])
		}
	}

	seenStudent := make(map[int]int)
	seenCell := make(map[[2]int]int)
	for i, fs := range r.FixedSeats {
		field := fmt.Sprintf("fixedSeats[%d]", i)
		if fs.Student > r.Students {
			verr.add(field, "student %d is not on the roster of %d", fs.Student, r.Students)
		}
		if fs.Row >= r.Rows || fs.Col >= r.Cols {
			verr.add(field, "seat (%d, %d) is outside the %dx%d grid", fs.Row, fs.Col, r.Rows, r.Cols)
		}
		if j, dup := seenStudent[fs.Student]; dup {
			verr.add(field, "student %d is already fixed by fixedSeats[%d]", fs.Student, j)
		} else {
			seenStudent[fs.Student] = i
		}
		cell := [2]int{fs.Row, fs.Col}
		if j, dup := seenCell[cell]; dup {
			verr.add(field, "seat (%d, %d) is already taken by fixedSeats[%d]", fs.Row, fs.Col, j)
		} else {
			seenCell[cell] = i
		}
	}

	if len(verr.Fields) > 0 {
		return verr
	}
	return nil
}

// fieldPath strips the struct name from the validator namespace.
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func tagDescription(fe validator.FieldError) string {
	if fe.Param() == "" {
		return fe.Tag()
	}
	return fmt.Sprintf("%s=%s (got %v)", fe.Tag(), fe.Param(), fe.Value())
}
