// Package intake owns the in-memory state of one team submission: thirty
// participant rows plus the selected house. The form is mutated only by
// user-driven handlers, validated as a whole, and committed through the
// dual-write submitter. Nothing here touches a store directly.
package intake

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/onamfest/house-registration/internal/model"
)

// Field names accepted by SetField.
const (
	FieldName      = "name"
	FieldCollegeID = "college_id"
	FieldClass     = "class"
)

// collegeIDPattern matches IDs made of letters and digits only.
var collegeIDPattern = regexp.MustCompile(`^[A-Za-z0-9]+$`)

// HouseStatusView is the read side of the house status snapshot the form
// validates against. Implemented by status.Reader.
type HouseStatusView interface {
	IsComplete(house string) bool
}

// Form holds one in-progress team submission. Rows stay editable until a
// commit succeeds, at which point Reset returns the form to thirty blank
// rows. A failed commit leaves every row untouched for correction.
type Form struct {
	house  string
	rows   [model.TeamSize]model.Participant
	errors []string // last validation errors shown to the user
}

// NewForm returns a form with thirty blank rows. The class column defaults
// to the first known class name, matching the select control it backs.
func NewForm() *Form {
	f := &Form{}
	for i := range f.rows {
		f.rows[i].Class = model.ClassNames[0]
	}
	return f
}

// House returns the currently selected house, empty when none is chosen.
func (f *Form) House() string { return f.house }

// Rows returns a copy of the current participant rows.
func (f *Form) Rows() []model.Participant {
	out := make([]model.Participant, model.TeamSize)
	copy(out, f.rows[:])
	return out
}

// Errors returns the validation errors recorded by the last Validate call.
func (f *Form) Errors() []string { return f.errors }

// SetHouse selects a house. Any of the five known values or the empty
// string is accepted; gating against completed houses happens in Validate,
// not here. Displayed errors stay as they are; only field edits clear them.
func (f *Form) SetHouse(house string) {
	f.house = house
}

// SetField mutates a single cell of the form and clears any previously
// displayed validation errors. The row index must be within the thirty
// rows and field must be one of the Field* constants.
func (f *Form) SetField(row int, field, value string) error {
	if row < 0 || row >= model.TeamSize {
		return fmt.Errorf("row index %d out of range", row)
	}
	switch field {
	case FieldName:
		f.rows[row].Name = value
	case FieldCollegeID:
		f.rows[row].CollegeID = value
	case FieldClass:
		f.rows[row].Class = value
	default:
		return fmt.Errorf("unknown field %q", field)
	}
	f.errors = nil
	return nil
}

// Progress counts rows where both name and college ID are non-blank after
// trimming. The submit control stays disabled until it reaches thirty.
func (f *Form) Progress() int {
	filled := 0
	for _, p := range f.rows {
		if strings.TrimSpace(p.Name) != "" && strings.TrimSpace(p.CollegeID) != "" {
			filled++
		}
	}
	return filled
}

// Validate checks the whole form and returns every violated rule, never
// stopping at the first. The order is fixed: house selection, house
// completion, per-row field checks in row order, duplicate IDs, then ID
// format. An empty result means the form may be submitted. The returned
// slice is also recorded for Errors.
func (f *Form) Validate(status HouseStatusView) []string {
	var errs []string

	if f.house == "" {
		errs = append(errs, "Please select a house before proceeding")
	}
	if f.house != "" && status != nil && status.IsComplete(f.house) {
		errs = append(errs, fmt.Sprintf("%s has already completed their registration (30/30 participants)", f.house))
	}

	for i, p := range f.rows {
		name := strings.TrimSpace(p.Name)
		if name == "" {
			errs = append(errs, fmt.Sprintf("Row %d: Participant name is required", i+1))
		}
		if strings.TrimSpace(p.CollegeID) == "" {
			errs = append(errs, fmt.Sprintf("Row %d: College ID is required", i+1))
		}
		if utf8.RuneCountInString(name) < 2 {
			errs = append(errs, fmt.Sprintf("Row %d: Name must be at least 2 characters long", i+1))
		}
	}

	// Duplicate IDs are compared case-insensitively after trimming; blank
	// cells are ignored since the presence checks above already cover them.
	seen := make(map[string]int)
	var dups []string
	for _, p := range f.rows {
		id := strings.ToUpper(strings.TrimSpace(p.CollegeID))
		if id == "" {
			continue
		}
		seen[id]++
		if seen[id] == 2 {
			dups = append(dups, id)
		}
	}
	if len(dups) > 0 {
		errs = append(errs, fmt.Sprintf("Duplicate College IDs found: %s", strings.Join(dups, ", ")))
	}

	for _, p := range f.rows {
		id := strings.TrimSpace(p.CollegeID)
		if id != "" && !collegeIDPattern.MatchString(id) {
			errs = append(errs, "College IDs should contain only letters and numbers")
			break
		}
	}

	f.errors = errs
	return errs
}

// BuildBatch normalizes every row and stamps it with the selected house and
// the given registration batch token, producing the records handed to the
// dual-write submitter. Names are trimmed, college IDs trimmed and
// upper-cased. The form itself is left unmodified.
func (f *Form) BuildBatch(batchID string) []model.Registration {
	regs := make([]model.Registration, 0, model.TeamSize)
	for _, p := range f.rows {
		regs = append(regs, model.Registration{
			Name:              strings.TrimSpace(p.Name),
			CollegeID:         strings.ToUpper(strings.TrimSpace(p.CollegeID)),
			House:             f.house,
			Class:             p.Class,
			RegistrationBatch: batchID,
		})
	}
	return regs
}

// Reset returns the form to its initial state: thirty blank rows with the
// default class and no selected house.
func (f *Form) Reset() {
	f.house = ""
	f.errors = nil
	for i := range f.rows {
		f.rows[i] = model.Participant{Class: model.ClassNames[0]}
	}
}
