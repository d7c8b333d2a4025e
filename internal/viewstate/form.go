package viewstate

import (
	"maps"
	"strconv"
	"strings"

	"github.com/five82/takedown/internal/athlete"
)

// GenderOptions are the choices of the gender select.
var GenderOptions = []string{"Male", "Female"}

// FormField identifies an editable profile field.
type FormField int

const (
	FieldFirstName FormField = iota
	FieldLastName
	FieldNickname
	FieldGender
	FieldDOB
	FieldGradYear
	FieldWeightClass
	FieldTeam
	FieldLocation
)

// Label is the field's form label.
func (f FormField) Label() string {
	switch f {
	case FieldFirstName:
		return "First Name"
	case FieldLastName:
		return "Last Name"
	case FieldNickname:
		return "Nickname"
	case FieldGender:
		return "Gender"
	case FieldDOB:
		return "Date of Birth"
	case FieldGradYear:
		return "HS Grad Year"
	case FieldWeightClass:
		return "Weight Class"
	case FieldTeam:
		return "Team"
	case FieldLocation:
		return "Location"
	default:
		return ""
	}
}

// Fields lists the form fields in display order.
func Fields() []FormField {
	return []FormField{
		FieldFirstName, FieldLastName, FieldNickname, FieldGender, FieldDOB,
		FieldGradYear, FieldWeightClass, FieldTeam, FieldLocation,
	}
}

// EditForm holds local, never-persisted edits of a profile.
type EditForm struct {
	values map[FormField]string
}

// NewEditForm seeds a form from p. The display name is split on its first
// space into first and last name.
func NewEditForm(p athlete.Profile) EditForm {
	first, last, _ := strings.Cut(strings.TrimSpace(p.Name), " ")
	grad := ""
	if p.HSGradYear != 0 {
		grad = strconv.Itoa(p.HSGradYear)
	}
	gender := p.Gender
	if gender == "" {
		gender = GenderOptions[0]
	}
	return EditForm{values: map[FormField]string{
		FieldFirstName:   first,
		FieldLastName:    strings.TrimSpace(last),
		FieldNickname:    p.Nickname,
		FieldGender:      gender,
		FieldDOB:         p.DOB,
		FieldGradYear:    grad,
		FieldWeightClass: p.WeightClass,
		FieldTeam:        p.Team,
		FieldLocation:    p.Location,
	}}
}

// Value returns the current text of f.
func (f EditForm) Value(field FormField) string {
	return f.values[field]
}

// Set returns a copy of the form with field changed.
func (f EditForm) Set(field FormField, value string) EditForm {
	next := maps.Clone(f.values)
	if next == nil {
		next = map[FormField]string{}
	}
	next[field] = value
	return EditForm{values: next}
}

// CycleGender advances the gender select to the next option.
func (f EditForm) CycleGender() EditForm {
	current := f.Value(FieldGender)
	for i, opt := range GenderOptions {
		if opt == current {
			return f.Set(FieldGender, GenderOptions[(i+1)%len(GenderOptions)])
		}
	}
	return f.Set(FieldGender, GenderOptions[0])
}
