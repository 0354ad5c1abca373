package model

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fieldsOf(t *testing.T, err error) []FieldError {
	t.Helper()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidInput), "error should match ErrInvalidInput: %v", err)
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	return verr.Fields
}

func TestValidate_AcceptsValidRequest(t *testing.T) {
	req := Request{
		Students:       32,
		Rows:           4,
		Cols:           8,
		ForbiddenPairs: []Pair{{1, 2}, {40, 41}},
		FixedSeats:     []FixedSeat{{Student: 5, Row: 3, Col: 7}},
	}
	assert.NoError(t, req.Validate())
}

func TestValidate_ZeroStudentsIsValid(t *testing.T) {
	assert.NoError(t, Request{Students: 0, Rows: 1, Cols: 1}.Validate())
}

func TestValidate_Shape(t *testing.T) {
	tests := []struct {
		name  string
		req   Request
		field string
	}{
		{"negative students", Request{Students: -1, Rows: 1, Cols: 1}, "students"},
		{"zero rows", Request{Students: 1, Rows: 0, Cols: 1}, "rows"},
		{"zero cols", Request{Students: 1, Rows: 1, Cols: 0}, "cols"},
		{"negative retries", Request{Students: 1, Rows: 1, Cols: 1, MaxRetries: -5}, "maxRetries"},
		{"negative fixed row", Request{Students: 1, Rows: 1, Cols: 1, FixedSeats: []FixedSeat{{Student: 1, Row: -1}}}, "fixedSeats[0].row"},
		{"zero fixed student", Request{Students: 1, Rows: 1, Cols: 1, FixedSeats: []FixedSeat{{Student: 0}}}, "fixedSeats[0].student"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fields := fieldsOf(t, tt.req.Validate())
			require.NotEmpty(t, fields)
			assert.Equal(t, tt.field, fields[0].Field)
		})
	}
}

func TestValidate_ForbiddenPairs(t *testing.T) {
	fields := fieldsOf(t, Request{
		Students:       4,
		Rows:           2,
		Cols:           2,
		ForbiddenPairs: []Pair{{3, 3}, {0, 2}, {1, 2}},
	}.Validate())

	require.Len(t, fields, 2)
	assert.Equal(t, "forbiddenPairs[0]", fields[0].Field)
	assert.Contains(t, fields[0].Message, "itself")
	assert.Equal(t, "forbiddenPairs[1]", fields[1].Field)
	assert.Contains(t, fields[1].Message, "positive")
}

func TestValidate_FixedSeatBounds(t *testing.T) {
	fields := fieldsOf(t, Request{
		Students: 4,
		Rows:     2,
		Cols:     2,
		FixedSeats: []FixedSeat{
			{Student: 9, Row: 0, Col: 0},
			{Student: 1, Row: 2, Col: 0},
			{Student: 2, Row: 0, Col: 2},
		},
	}.Validate())

	require.Len(t, fields, 3)
	assert.Contains(t, fields[0].Message, "not on the roster")
	assert.Contains(t, fields[1].Message, "outside")
	assert.Contains(t, fields[2].Message, "outside")
}

func TestValidate_DuplicateFixedSeats(t *testing.T) {
	t.Run("same cell", func(t *testing.T) {
		fields := fieldsOf(t, Request{
			Students: 4, Rows: 2, Cols: 2,
			FixedSeats: []FixedSeat{{Student: 1, Row: 1, Col: 1}, {Student: 2, Row: 1, Col: 1}},
		}.Validate())
		require.Len(t, fields, 1)
		assert.Equal(t, "fixedSeats[1]", fields[0].Field)
		assert.Contains(t, fields[0].Message, "already taken")
	})

	t.Run("same student", func(t *testing.T) {
		fields := fieldsOf(t, Request{
			Students: 4, Rows: 2, Cols: 2,
			FixedSeats: []FixedSeat{{Student: 3, Row: 0, Col: 0}, {Student: 3, Row: 1, Col: 1}},
		}.Validate())
		require.Len(t, fields, 1)
		assert.Contains(t, fields[0].Message, "already fixed")
	})
}

func TestValidationErrorMessage(t *testing.T) {
	err := &ValidationError{Fields: []FieldError{{Field: "rows", Message: "bad"}, {Field: "cols", Message: "worse"}}}
	assert.Equal(t, "invalid input: rows: bad; cols: worse", err.Error())
}
