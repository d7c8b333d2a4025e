// Package athlete defines the athlete catalog and the sources it is read from.
//
// A Catalog holds the primary profile, the profiles already merged into it, a
// prospective merge, events grouped by source profile, and the event loaded on
// the add-events panel. All display labels ("36 years", "463 miles away") are
// stored as literal strings.
//
// Three Source implementations exist:
//
//   - Fixture: the built-in Jordan Burroughs catalog.
//   - Static: an in-memory catalog, seeded from Fixture or a YAML file and
//     swapped with Replace when the file changes.
//   - Client: reads a remote takedown server over HTTP.
//
// Sources are read-only. Nothing in this package mutates upstream records.
package athlete
