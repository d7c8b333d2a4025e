package viewstate

import (
	"strconv"

	"github.com/five82/takedown/internal/athlete"
)

// Row sections.
const (
	SectionIdentity = ""
	SectionAge      = "Age"
	SectionLocation = "Location"
)

// FieldRow is one labelled value of a card.
type FieldRow struct {
	Section   string `json:"section,omitempty"`
	Label     string `json:"label"`
	Value     string `json:"value"`
	Sensitive bool   `json:"sensitive,omitempty"`
}

// Card is one side of a comparison.
type Card struct {
	Title   string     `json:"title"`
	Name    string     `json:"name"`
	ID      string     `json:"id"`
	Rows    []FieldRow `json:"rows"`
	JSONKey string     `json:"jsonKey,omitempty"`
	RawJSON string     `json:"rawJson,omitempty"`
}

// Row returns the row with label, if rendered.
func (c Card) Row(label string) (FieldRow, bool) {
	for _, r := range c.Rows {
		if r.Label == label {
			return r, true
		}
	}
	return FieldRow{}, false
}

// Comparison is a side-by-side view of the primary and one candidate.
type Comparison struct {
	Left  Card `json:"left"`
	Right Card `json:"right"`
}

// ProfileCard renders the primary profile. DOB, age and coordinates appear only
// in internal mode, as does the raw JSON affordance.
func ProfileCard(p athlete.Profile, mode ViewMode, jsonKey string) Card {
	rows := []FieldRow{
		{Section: SectionIdentity, Label: "Nickname", Value: orDash(p.Nickname)},
		{Section: SectionIdentity, Label: "Gender", Value: p.Gender},
		{Section: SectionAge, Label: "DOB", Value: p.DOB, Sensitive: true},
		{Section: SectionAge, Label: "Age", Value: p.AgeLabel, Sensitive: true},
		{Section: SectionAge, Label: "HS Grad", Value: gradValue(p.HSGradYear, p.GradLabel)},
		{Section: SectionIdentity, Label: "Team", Value: p.Team},
		{Section: SectionIdentity, Label: "Weight Class", Value: p.WeightClass},
		{Section: SectionLocation, Label: "Location", Value: p.Location},
		{Section: SectionLocation, Label: "Lat/Lng", Value: p.LatLng, Sensitive: true},
	}
	card := Card{
		Title: "Current Profile",
		Name:  p.Name,
		ID:    p.ID,
		Rows:  filterRows(rows, mode),
	}
	if mode != ViewExternal && jsonKey != "" {
		card.JSONKey = jsonKey
		card.RawJSON = p.RecordJSON()
	}
	return card
}

// CandidateCard renders a merged or prospective profile.
func CandidateCard(c athlete.MergeCandidate, mode ViewMode, jsonKey string) Card {
	rows := []FieldRow{
		{Section: SectionIdentity, Label: "Nickname", Value: c.DisplayNickname()},
		{Section: SectionIdentity, Label: "Gender", Value: c.Gender},
		{Section: SectionAge, Label: "DOB", Value: c.DOB, Sensitive: true},
		{Section: SectionAge, Label: "Age", Value: c.AgeLabel, Sensitive: true},
		{Section: SectionAge, Label: "HS Grad", Value: gradValue(c.HSGradYear, c.GradLabel)},
		{Section: SectionIdentity, Label: "Team", Value: c.Team},
		{Section: SectionIdentity, Label: "Weight Class", Value: c.WeightClass},
		{Section: SectionLocation, Label: "Location", Value: c.CityLine()},
		{Section: SectionLocation, Label: "Lat/Lng", Value: c.Coordinates(), Sensitive: true},
	}
	card := Card{
		Title: "Merged Profile",
		Name:  c.Name,
		ID:    c.ID,
		Rows:  filterRows(rows, mode),
	}
	if raw := c.RecordJSON(); mode != ViewExternal && jsonKey != "" && raw != "" {
		card.JSONKey = jsonKey
		card.RawJSON = raw
	}
	return card
}

// Compare builds the comparison for merge row rowKey (e.g. "row0"). Raw JSON
// keys are rowKey+"-jb" and rowKey+"-merged".
func Compare(primary athlete.Profile, candidate athlete.MergeCandidate, mode ViewMode, rowKey string) Comparison {
	leftKey, rightKey := "", ""
	if rowKey != "" {
		leftKey = rowKey + "-jb"
		rightKey = rowKey + "-merged"
	}
	return Comparison{
		Left:  ProfileCard(primary, mode, leftKey),
		Right: CandidateCard(candidate, mode, rightKey),
	}
}

// CompareProspect builds the add-merge comparison. The prospect has no
// internal record, so only the left card can offer raw JSON.
func CompareProspect(primary athlete.Profile, prospect athlete.MergeCandidate, mode ViewMode) Comparison {
	out := Compare(primary, prospect, mode, "prospect")
	out.Right.Title = "Profile to Merge"
	return out
}

// RowKey is the disclosure key prefix for merge row i.
func RowKey(i int) string {
	return "row" + strconv.Itoa(i)
}

func filterRows(rows []FieldRow, mode ViewMode) []FieldRow {
	if mode != ViewExternal {
		return rows
	}
	out := rows[:0:0]
	for _, r := range rows {
		if !r.Sensitive {
			out = append(out, r)
		}
	}
	return out
}

func gradValue(year int, label string) string {
	if year == 0 {
		return label
	}
	if label == "" {
		return strconv.Itoa(year)
	}
	return strconv.Itoa(year) + " (" + label + ")"
}

func orDash(s string) string {
	if s == "" {
		return "—"
	}
	return s
}
