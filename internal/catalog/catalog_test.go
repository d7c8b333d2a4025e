package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/five82/takedown/internal/athlete"
)

func TestWriteLoad_RoundTripsFixture(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "catalog.yaml")
	want := athlete.Fixture()

	if err := Write(path, want); err != nil {
		t.Fatalf("Write returned error: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("round trip changed catalog (-want +got):\n%s", diff)
	}

	data, _ := os.ReadFile(path)
	text := string(data)
	if !strings.HasPrefix(text, fileHeader) {
		t.Fatalf("file missing header:\n%s", text)
	}
	for _, want := range []string{"event_sources:", "hs_grad_year: 2006", "nickname: null", "middle_initial: E"} {
		if !strings.Contains(text, want) {
			t.Fatalf("file missing %q", want)
		}
	}
}

func TestParse_RejectsInvalid(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		want    string
		invalid bool
	}{
		{
			name: "unknown key",
			yaml: "primary:\n  id: abc\n  name: X\n  shoe_size: 11\n",
			want: "parse catalog",
		},
		{
			name:    "missing primary id",
			yaml:    "primary:\n  name: Jordan Burroughs\n",
			want:    "primary profile id is empty",
			invalid: true,
		},
		{
			name: "two current sources",
			yaml: `primary: {id: abc, name: X}
event_sources:
  - {profile_id: abc, is_current: true}
  - {profile_id: def, is_current: true}
`,
			want:    "found 2",
			invalid: true,
		},
		{
			name: "malformed",
			yaml: "primary: [",
			want: "parse catalog",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("Parse error = %v, want %q", err, tt.want)
			}
			if errors.Is(err, ErrInvalidCatalog) != tt.invalid {
				t.Fatalf("errors.Is(ErrInvalidCatalog) = %v, want %v", !tt.invalid, tt.invalid)
			}
		})
	}
}

func TestParse_MinimalCatalog(t *testing.T) {
	cat, err := Parse([]byte("primary:\n  id: abc\n  name: Kyle Dake\n"))
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if cat.Primary.Name != "Kyle Dake" || len(cat.Merged) != 0 {
		t.Fatalf("unexpected catalog: %+v", cat.Primary)
	}
}

func TestWrite_RejectsInvalidCatalog(t *testing.T) {
	err := Write(filepath.Join(t.TempDir(), "c.yaml"), athlete.Catalog{})
	if !errors.Is(err, ErrInvalidCatalog) {
		t.Fatalf("Write error = %v, want ErrInvalidCatalog", err)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("Load error = %v, want os.ErrNotExist", err)
	}
}
