package model

import (
	"time"

	"github.com/google/uuid"
)

// ClassTemplate is a reusable class setup: room dimensions, roster size and
// standing constraints. It never carries a seating result.
type ClassTemplate struct {
	ID             string      `json:"id"`
	Name           string      `json:"name"`
	Description    string      `json:"description"`
	CreatedAt      string      `json:"created_at"`
	UpdatedAt      string      `json:"updated_at"`
	Students       int         `json:"students"`
	Rows           int         `json:"rows"`
	Cols           int         `json:"cols"`
	ForbiddenPairs []Pair      `json:"forbidden_pairs"`
	FixedSeats     []FixedSeat `json:"fixed_seats"`
}

// NewClassTemplate captures the shape and constraints of a request.
func NewClassTemplate(name, description string, req Request) ClassTemplate {
	now := time.Now().UTC().Format(time.RFC3339)
	return ClassTemplate{
		ID:             uuid.New().String()[:8],
		Name:           name,
		Description:    description,
		CreatedAt:      now,
		UpdatedAt:      now,
		Students:       req.Students,
		Rows:           req.Rows,
		Cols:           req.Cols,
		ForbiddenPairs: copyPairs(req.ForbiddenPairs),
		FixedSeats:     copyFixedSeats(req.FixedSeats),
	}
}

// ToRequest builds an independent request from this template.
func (t ClassTemplate) ToRequest() Request {
	return Request{
		Students:       t.Students,
		Rows:           t.Rows,
		Cols:           t.Cols,
		ForbiddenPairs: copyPairs(t.ForbiddenPairs),
		FixedSeats:     copyFixedSeats(t.FixedSeats),
	}
}

// TemplateStore holds a collection of class templates.
type TemplateStore struct {
	Templates []ClassTemplate `json:"templates"`
}

// NewTemplateStore creates an empty template store.
func NewTemplateStore() TemplateStore {
	return TemplateStore{
		Templates: []ClassTemplate{},
	}
}

// Add adds a template to the store, replacing any template with the same name.
func (ts *TemplateStore) Add(t ClassTemplate) {
	for i := range ts.Templates {
		if ts.Templates[i].Name == t.Name {
			t.ID = ts.Templates[i].ID
			t.CreatedAt = ts.Templates[i].CreatedAt
			ts.Templates[i] = t
			return
		}
	}
	ts.Templates = append(ts.Templates, t)
}

// Remove removes a template by ID or name. Returns true if found and removed.
func (ts *TemplateStore) Remove(idOrName string) bool {
	for i, t := range ts.Templates {
		if t.ID == idOrName || t.Name == idOrName {
			ts.Templates = append(ts.Templates[:i], ts.Templates[i+1:]...)
			return true
		}
	}
	return false
}

// FindByID returns a pointer to the template with the given ID, or nil.
func (ts *TemplateStore) FindByID(id string) *ClassTemplate {
	for i := range ts.Templates {
		if ts.Templates[i].ID == id {
			return &ts.Templates[i]
		}
	}
	return nil
}

// FindByName returns a pointer to the first template with the given name, or nil.
func (ts *TemplateStore) FindByName(name string) *ClassTemplate {
	for i := range ts.Templates {
		if ts.Templates[i].Name == name {
			return &ts.Templates[i]
		}
	}
	return nil
}

// Names returns the template names in store order.
func (ts *TemplateStore) Names() []string {
	names := make([]string, len(ts.Templates))
	for i, t := range ts.Templates {
		names[i] = t.Name
	}
	return names
}

func copyPairs(pairs []Pair) []Pair {
	if pairs == nil {
		return []Pair{}
	}
	cp := make([]Pair, len(pairs))
	copy(cp, pairs)
	return cp
}

func copyFixedSeats(seats []FixedSeat) []FixedSeat {
	if seats == nil {
		return []FixedSeat{}
	}
	cp := make([]FixedSeat, len(seats))
	copy(cp, seats)
	return cp
}
