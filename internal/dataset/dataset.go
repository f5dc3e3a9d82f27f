// Package dataset loads the immutable record collection served by the API.
//
// Fixtures are JSON or YAML documents holding a single array of flat objects.
// Field order is taken from the order in which fields first appear, so column
// listings follow the fixture rather than map iteration order.
package dataset

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"datalist/internal/domain"
)

//go:embed fixture.json
var defaultFixture []byte

// Format identifies a fixture encoding.
type Format string

// Supported fixture encodings.
const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromPath infers the fixture format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unsupported fixture extension %q: use .json, .yaml or .yml", filepath.Ext(path))
	}
}

// Default returns the dataset built into the binary.
func Default() (domain.Dataset, error) {
	ds, err := Parse(defaultFixture, FormatJSON)
	if err != nil {
		return domain.Dataset{}, fmt.Errorf("parse embedded fixture: %w", err)
	}
	return ds, nil
}

// Load reads a fixture file. An empty path loads the embedded default.
func Load(path string) (domain.Dataset, error) {
	if path == "" {
		return Default()
	}
	format, err := FormatFromPath(path)
	if err != nil {
		return domain.Dataset{}, err
	}
	data, err := os.ReadFile(path) //nolint:gosec // path comes from operator configuration
	if err != nil {
		if os.IsNotExist(err) {
			return domain.Dataset{}, domain.ErrNotFound("dataset fixture %q not found", path)
		}
		return domain.Dataset{}, fmt.Errorf("read %s: %w", path, err)
	}
	ds, err := Parse(data, format)
	if err != nil {
		return domain.Dataset{}, fmt.Errorf("parse %s: %w", path, err)
	}
	return ds, nil
}

// Parse decodes fixture data in the given format.
func Parse(data []byte, format Format) (domain.Dataset, error) {
	var (
		fields  []string
		records []domain.Record
		err     error
	)
	switch format {
	case FormatJSON:
		fields, records, err = parseJSON(data)
	case FormatYAML:
		fields, records, err = parseYAML(data)
	default:
		return domain.Dataset{}, fmt.Errorf("unsupported fixture format %q", format)
	}
	if err != nil {
		return domain.Dataset{}, err
	}
	return domain.NewDataset(fields, records), nil
}

// fieldOrder accumulates field names in order of first appearance.
type fieldOrder struct {
	names []string
	seen  map[string]bool
}

func (f *fieldOrder) add(name string) {
	if f.seen == nil {
		f.seen = map[string]bool{}
	}
	if !f.seen[name] {
		f.seen[name] = true
		f.names = append(f.names, name)
	}
}

// Columns derives column definitions from the dataset. The column type is
// the kind of the first defined value of each field; every column is
// sortable and filterable.
func Columns(ds domain.Dataset) []domain.ColumnDef {
	title := cases.Title(language.English)
	records := ds.Records()

	fields := ds.Fields()
	cols := make([]domain.ColumnDef, 0, len(fields))
	for _, f := range fields {
		kind := domain.KindString
		for _, r := range records {
			if v := r.Get(f); !v.IsUndefined() {
				kind = v.Kind()
				break
			}
		}
		cols = append(cols, domain.ColumnDef{
			ID:         f,
			Title:      title.String(strings.ReplaceAll(f, "_", " ")),
			Type:       kind.String(),
			Sortable:   true,
			Filterable: true,
		})
	}
	return cols
}
