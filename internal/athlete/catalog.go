package athlete

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound reports a reference that does not resolve to any record.
var ErrNotFound = errors.New("not found")

// Catalog is the complete read-only data set behind the tool.
type Catalog struct {
	Primary      Profile          `json:"primary" yaml:"primary"`
	Merged       []MergeCandidate `json:"merged" yaml:"merged"`
	Prospect     MergeCandidate   `json:"prospect" yaml:"prospect"`
	EventSources []EventSource    `json:"eventSources" yaml:"event_sources"`
	LoadedEvent  LoadedEvent      `json:"loadedEvent" yaml:"loaded_event"`
}

// Searchable lists the profiles eligible for name search.
func (c Catalog) Searchable() []Profile {
	if c.Primary.ID == "" && c.Primary.Name == "" {
		return nil
	}
	return []Profile{c.Primary}
}

// MergedByID returns the merged record with the given id.
func (c Catalog) MergedByID(id string) (MergeCandidate, bool) {
	for _, m := range c.Merged {
		if m.ID == id {
			return m, true
		}
	}
	return MergeCandidate{}, false
}

// EventCount totals events across all sources.
func (c Catalog) EventCount() int {
	total := 0
	for _, src := range c.EventSources {
		total += len(src.Events)
	}
	return total
}

// Validate checks the invariants a hand-edited catalog can break.
func (c Catalog) Validate() error {
	var problems []string
	if strings.TrimSpace(c.Primary.ID) == "" {
		problems = append(problems, "primary profile id is empty")
	}
	if strings.TrimSpace(c.Primary.Name) == "" {
		problems = append(problems, "primary profile name is empty")
	}
	current := 0
	for _, src := range c.EventSources {
		if src.IsCurrent {
			current++
		}
	}
	if len(c.EventSources) > 0 && current != 1 {
		problems = append(problems, fmt.Sprintf("expected exactly one current event source, found %d", current))
	}
	seen := make(map[string]struct{}, len(c.Merged))
	for _, m := range c.Merged {
		if _, dup := seen[m.ID]; dup {
			problems = append(problems, fmt.Sprintf("duplicate merged profile id %q", m.ID))
		}
		seen[m.ID] = struct{}{}
	}
	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

// Clone returns a deep copy.
func (c Catalog) Clone() Catalog {
	dup := c
	if c.Merged != nil {
		dup.Merged = make([]MergeCandidate, len(c.Merged))
		for i, m := range c.Merged {
			dup.Merged[i] = m.clone()
		}
	}
	dup.Prospect = c.Prospect.clone()
	if c.EventSources != nil {
		dup.EventSources = make([]EventSource, len(c.EventSources))
		for i, src := range c.EventSources {
			dup.EventSources[i] = src
			if src.Events != nil {
				dup.EventSources[i].Events = append([]Event(nil), src.Events...)
			}
		}
	}
	if c.LoadedEvent.Participants != nil {
		dup.LoadedEvent.Participants = append([]Participant(nil), c.LoadedEvent.Participants...)
	}
	return dup
}

func (m MergeCandidate) clone() MergeCandidate {
	if m.Record == nil {
		return m
	}
	rec := *m.Record
	if m.Record.Nickname != nil {
		nick := *m.Record.Nickname
		rec.Nickname = &nick
	}
	m.Record = &rec
	return m
}
