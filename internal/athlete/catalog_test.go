package athlete

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestFixture_Shape(t *testing.T) {
	cat := Fixture()
	if err := cat.Validate(); err != nil {
		t.Fatalf("fixture invalid: %v", err)
	}
	if got := cat.EventCount(); got != 8 {
		t.Fatalf("EventCount = %d, want 8", got)
	}
	if len(cat.LoadedEvent.Participants) != 6 {
		t.Fatalf("participants = %d, want 6", len(cat.LoadedEvent.Participants))
	}
	if cat.Prospect.Record != nil {
		t.Fatal("prospect should carry no internal record")
	}
	if _, ok := cat.MergedByID("7HnTqW4pL9sRvXm2"); !ok {
		t.Fatal("MergedByID missed Jordan E Burroughs")
	}
	if _, ok := cat.MergedByID("nope"); ok {
		t.Fatal("MergedByID matched unknown id")
	}
}

func TestCatalog_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Catalog)
		want   string
	}{
		{"empty primary id", func(c *Catalog) { c.Primary.ID = " " }, "primary profile id is empty"},
		{"no current source", func(c *Catalog) { c.EventSources[0].IsCurrent = false }, "found 0"},
		{"two current sources", func(c *Catalog) { c.EventSources[1].IsCurrent = true }, "found 2"},
		{"duplicate merged", func(c *Catalog) { c.Merged[1].ID = c.Merged[0].ID }, "duplicate merged profile id"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cat := Fixture()
			tt.mutate(&cat)
			err := cat.Validate()
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("Validate() = %v, want %q", err, tt.want)
			}
		})
	}
}

func TestCatalog_CloneIsDeep(t *testing.T) {
	orig := Fixture()
	dup := orig.Clone()
	if diff := cmp.Diff(orig, dup); diff != "" {
		t.Fatalf("clone differs (-orig +dup):\n%s", diff)
	}

	dup.Merged[0].Name = "changed"
	dup.EventSources[0].Events[0].Name = "changed"
	dup.LoadedEvent.Participants[0].Name = "changed"
	*dup.Merged[1].Record.Nickname = "changed"

	if orig.Merged[0].Name == "changed" ||
		orig.EventSources[0].Events[0].Name == "changed" ||
		orig.LoadedEvent.Participants[0].Name == "changed" ||
		*orig.Merged[1].Record.Nickname == "changed" {
		t.Fatal("mutating clone leaked into original")
	}
}

func TestProfileHelpers(t *testing.T) {
	p := Fixture().Primary
	if got, want := p.Summary(), "Sunkist Kids Wrestling Club · 74 kg · Philadelphia, PA"; got != want {
		t.Fatalf("Summary = %q, want %q", got, want)
	}
	if got := p.Initials(); got != "JB" {
		t.Fatalf("Initials = %q, want JB", got)
	}
	p.Nickname = "J-Will"
	p.Name = "jordan williams"
	if got := p.Initials(); got != "JW" {
		t.Fatalf("Initials = %q, want JW", got)
	}
	if !strings.Contains(Fixture().Primary.RecordJSON(), `"latLng": "41.2033216, -77.1945247"`) {
		t.Fatal("RecordJSON missing latLng")
	}
}

func TestMergeCandidateHelpers(t *testing.T) {
	cat := Fixture()
	jb := cat.Merged[0]
	if got := jb.CityLine(); got != "Lincoln, NE 68508" {
		t.Fatalf("CityLine = %q", got)
	}
	if got := jb.Coordinates(); got != "40.8258, -96.6852 (1.2 miles away)" {
		t.Fatalf("Coordinates = %q", got)
	}
	if got := jb.DisplayNickname(); got != "—" {
		t.Fatalf("DisplayNickname = %q, want em dash", got)
	}
	raw := jb.RecordJSON()
	if !strings.Contains(raw, `"nickname": null`) || strings.Contains(raw, "middleInitial") {
		t.Fatalf("unexpected record JSON:\n%s", raw)
	}
	if !strings.Contains(cat.Merged[1].RecordJSON(), `"middleInitial": "E"`) {
		t.Fatal("middle initial missing from record JSON")
	}
	if cat.Prospect.RecordJSON() != "" {
		t.Fatal("prospect RecordJSON should be empty")
	}
}

func TestStatic_ReplaceAndLookup(t *testing.T) {
	src := NewStatic(Fixture())
	ctx := context.Background()

	p, err := src.LookupProfile(ctx, "https://example.com/anything")
	if err != nil || p.ID != "0Y4KrP3a43fZbBiL" {
		t.Fatalf("LookupProfile = %v, %v", p, err)
	}

	cat, err := src.FetchCatalog(ctx)
	if err != nil {
		t.Fatalf("FetchCatalog: %v", err)
	}
	cat.Primary.Name = "mutated"
	again, _ := src.FetchCatalog(ctx)
	if again.Primary.Name != "Jordan Burroughs" {
		t.Fatal("FetchCatalog returned shared state")
	}

	src.Replace(Catalog{})
	if _, err := src.LookupProfile(ctx, "x"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}

	cctx, cancel := context.WithCancel(ctx)
	cancel()
	if _, err := src.FetchCatalog(cctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}
