package athlete

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Profile is the primary athlete record under administration.
type Profile struct {
	ID          string `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	Nickname    string `json:"nickname" yaml:"nickname"`
	Gender      string `json:"gender" yaml:"gender"`
	DOB         string `json:"dob" yaml:"dob"`
	AgeLabel    string `json:"ageLabel" yaml:"age_label"`
	HSGradYear  int    `json:"hsGradYear" yaml:"hs_grad_year"`
	GradLabel   string `json:"gradLabel" yaml:"grad_label"`
	Team        string `json:"team" yaml:"team"`
	WeightClass string `json:"weightClass" yaml:"weight_class"`
	Location    string `json:"location" yaml:"location"`
	LatLng      string `json:"latLng" yaml:"lat_lng"`
	URL         string `json:"url,omitempty" yaml:"url,omitempty"`
}

// Summary is the one-line "team · weight · location" description.
func (p Profile) Summary() string {
	return joinNonEmpty(" · ", p.Team, p.WeightClass, p.Location)
}

// Initials returns the avatar text, preferring the nickname.
func (p Profile) Initials() string {
	if nick := strings.TrimSpace(p.Nickname); nick != "" && len([]rune(nick)) <= 3 {
		return strings.ToUpper(nick)
	}
	var b strings.Builder
	for _, part := range strings.Fields(p.Name) {
		r := []rune(part)
		b.WriteString(strings.ToUpper(string(r[0])))
		if b.Len() >= 2 {
			break
		}
	}
	return b.String()
}

// profileRecord is the shape shown in the raw JSON disclosure for the primary profile.
type profileRecord struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Nickname    string `json:"nickname"`
	Gender      string `json:"gender"`
	DOB         string `json:"dob"`
	HSGradYear  int    `json:"hsGradYear"`
	Team        string `json:"team"`
	WeightClass string `json:"weightClass"`
	Location    string `json:"location"`
	LatLng      string `json:"latLng"`
}

// RecordJSON renders the profile's record as indented JSON.
func (p Profile) RecordJSON() string {
	rec := profileRecord{
		ID:          p.ID,
		Name:        p.Name,
		Nickname:    p.Nickname,
		Gender:      p.Gender,
		DOB:         p.DOB,
		HSGradYear:  p.HSGradYear,
		Team:        p.Team,
		WeightClass: p.WeightClass,
		Location:    p.Location,
		LatLng:      p.LatLng,
	}
	return mustIndent(rec)
}

// Place is a structured location with coordinates.
type Place struct {
	City  string  `json:"city" yaml:"city"`
	State string  `json:"state" yaml:"state"`
	Zip   string  `json:"zip" yaml:"zip"`
	Lat   float64 `json:"lat" yaml:"lat"`
	Lng   float64 `json:"lng" yaml:"lng"`
}

// MergeCandidate is a secondary profile linked, or proposed to be linked, to the primary.
type MergeCandidate struct {
	ID            string          `json:"id" yaml:"id"`
	Name          string          `json:"name" yaml:"name"`
	Nickname      string          `json:"nickname" yaml:"nickname"`
	Gender        string          `json:"gender" yaml:"gender"`
	DOB           string          `json:"dob" yaml:"dob"`
	AgeLabel      string          `json:"ageLabel" yaml:"age_label"`
	HSGradYear    int             `json:"hsGradYear" yaml:"hs_grad_year"`
	GradLabel     string          `json:"gradLabel" yaml:"grad_label"`
	Team          string          `json:"team" yaml:"team"`
	WeightClass   string          `json:"weightClass" yaml:"weight_class"`
	Place         Place           `json:"place" yaml:"place"`
	DistanceLabel string          `json:"distanceLabel" yaml:"distance_label"`
	Record        *InternalRecord `json:"record,omitempty" yaml:"record,omitempty"`
}

// CityLine renders "City, ST zip".
func (c MergeCandidate) CityLine() string {
	line := c.Place.City
	if c.Place.State != "" {
		line += ", " + c.Place.State
	}
	if c.Place.Zip != "" {
		line += " " + c.Place.Zip
	}
	return line
}

// Coordinates renders the lat/lng pair with the fixture's distance label.
func (c MergeCandidate) Coordinates() string {
	coords := formatCoord(c.Place.Lat) + ", " + formatCoord(c.Place.Lng)
	if c.DistanceLabel != "" {
		coords += " (" + c.DistanceLabel + ")"
	}
	return coords
}

// DisplayNickname returns the nickname or an em dash when absent.
func (c MergeCandidate) DisplayNickname() string {
	if strings.TrimSpace(c.Nickname) == "" {
		return "—"
	}
	return c.Nickname
}

// RecordJSON renders the internal record, or "" when the candidate has none.
func (c MergeCandidate) RecordJSON() string {
	if c.Record == nil {
		return ""
	}
	return mustIndent(c.Record)
}

// InternalRecord is the candidate as stored by the upstream profile service.
type InternalRecord struct {
	ID            string         `json:"id" yaml:"id"`
	FirstName     string         `json:"firstName" yaml:"first_name"`
	MiddleInitial string         `json:"middleInitial,omitempty" yaml:"middle_initial,omitempty"`
	LastName      string         `json:"lastName" yaml:"last_name"`
	Nickname      *string        `json:"nickname" yaml:"nickname"`
	Gender        string         `json:"gender" yaml:"gender"`
	DOB           string         `json:"dob" yaml:"dob"`
	HSGradYear    int            `json:"hsGradYear" yaml:"hs_grad_year"`
	Team          string         `json:"team" yaml:"team"`
	WeightClass   string         `json:"weightClass" yaml:"weight_class"`
	Location      RecordLocation `json:"location" yaml:"location"`
}

// RecordLocation mirrors Place with the upstream field names.
type RecordLocation struct {
	City  string  `json:"city" yaml:"city"`
	State string  `json:"state" yaml:"state"`
	Zip   string  `json:"zip" yaml:"zip"`
	Lat   float64 `json:"lat" yaml:"lat"`
	Lng   float64 `json:"lng" yaml:"lng"`
}

// Event is a single competition result.
type Event struct {
	ID          string `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	Date        string `json:"date" yaml:"date"`
	Result      string `json:"result" yaml:"result"`
	WeightClass string `json:"weightClass" yaml:"weight_class"`
}

// Detail renders "date · result · weight".
func (e Event) Detail() string {
	return joinNonEmpty(" · ", e.Date, e.Result, e.WeightClass)
}

// EventSource groups events by the profile record they were attributed to.
type EventSource struct {
	ProfileID   string  `json:"profileId" yaml:"profile_id"`
	ProfileName string  `json:"profileName" yaml:"profile_name"`
	IsCurrent   bool    `json:"isCurrent" yaml:"is_current"`
	Events      []Event `json:"events" yaml:"events"`
}

// Participant is an entrant of a loaded event.
type Participant struct {
	ID          string `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	WeightClass string `json:"weightClass" yaml:"weight_class"`
	Placement   string `json:"placement" yaml:"placement"`
}

// LoadedEvent is the event shown on the add-events panel.
type LoadedEvent struct {
	Name         string        `json:"name" yaml:"name"`
	Detail       string        `json:"detail" yaml:"detail"`
	Participants []Participant `json:"participants" yaml:"participants"`
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func joinNonEmpty(sep string, values ...string) string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			out = append(out, v)
		}
	}
	return strings.Join(out, sep)
}

func mustIndent(v any) string {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Sprintf("{\"error\": %q}", err.Error())
	}
	return string(data)
}
