package catalog

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/five82/takedown/internal/athlete"
)

// ErrInvalidCatalog reports a catalog file that parses but breaks an invariant.
var ErrInvalidCatalog = errors.New("invalid catalog")

const fileHeader = "# takedown athlete catalog\n"

// Load parses and validates the YAML catalog at path.
func Load(path string) (athlete.Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return athlete.Catalog{}, fmt.Errorf("read catalog: %w", err)
	}
	return Parse(data)
}

// Parse decodes a YAML catalog. Unknown keys are rejected so typos surface.
func Parse(data []byte) (athlete.Catalog, error) {
	var cat athlete.Catalog
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cat); err != nil {
		return athlete.Catalog{}, fmt.Errorf("parse catalog: %w", err)
	}
	if err := cat.Validate(); err != nil {
		return athlete.Catalog{}, fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
	}
	return cat, nil
}

// Write stores cat as YAML at path, replacing the file atomically.
func Write(path string, cat athlete.Catalog) error {
	if err := cat.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
	}

	var buf bytes.Buffer
	buf.WriteString(fileHeader)
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(cat); err != nil {
		return fmt.Errorf("encode catalog: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("encode catalog: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create catalog dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".catalog-*.yaml")
	if err != nil {
		return fmt.Errorf("create temp catalog: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write catalog: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write catalog: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replace catalog: %w", err)
	}
	return nil
}
