// Package catalog reads, writes and watches YAML athlete catalogs.
//
// A catalog file has the same shape as athlete.Catalog with snake_case keys.
// `takedown export-catalog` writes the built-in fixture as a starting point.
package catalog
