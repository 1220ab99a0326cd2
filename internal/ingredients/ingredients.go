// Package ingredients imports the ingredient catalogue from CSV or JSON
// documents stored on disk or served over HTTP.
package ingredients

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"strings"

	"github.com/matt-dz/foodgram/internal/database"
	"github.com/matt-dz/foodgram/internal/http"
)

type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
)

var (
	ErrUnknownFormat = errors.New("unknown ingredient file format")
	ErrMalformedRow  = errors.New("malformed ingredient row")
)

type Ingredient struct {
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
}

// Result summarizes a Load.
type Result struct {
	Read     int
	Inserted int
	Skipped  int
	Deleted  int64
}

// FormatFromSource guesses the document format from the file extension of
// a path or URL.
func FormatFromSource(source string) (Format, error) {
	if i := strings.IndexAny(source, "?#"); i >= 0 {
		source = source[:i]
	}
	switch strings.ToLower(path.Ext(source)) {
	case ".csv":
		return FormatCSV, nil
	case ".json":
		return FormatJSON, nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnknownFormat, source)
}

func isRemote(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}

// Read returns the raw document at source, fetching it with client when
// source is an http(s) URL.
func Read(ctx context.Context, source string, client *http.HTTP) ([]byte, error) {
	if isRemote(source) {
		if client == nil {
			return nil, errors.New("remote source requires an http client")
		}
		return client.Fetch(ctx, source)
	}

	data, err := os.ReadFile(source)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", source, err)
	}
	return data, nil
}

// Parse decodes data in the given format. CSV rows are
// name,measurement_unit with no header.
func Parse(data []byte, format Format) ([]Ingredient, error) {
	switch format {
	case FormatCSV:
		return parseCSV(bytes.NewReader(data))
	case FormatJSON:
		var items []Ingredient
		if err := json.Unmarshal(data, &items); err != nil {
			return nil, fmt.Errorf("decoding json: %w", err)
		}
		return items, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, format)
}

func parseCSV(r io.Reader) ([]Ingredient, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	var items []Ingredient
	for line := 1; ; line++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading csv: %w", err)
		}
		if len(record) != 2 {
			return nil, fmt.Errorf("%w: line %d has %d fields", ErrMalformedRow, line, len(record))
		}
		items = append(items, Ingredient{Name: record[0], MeasurementUnit: record[1]})
	}
	return items, nil
}

// Load writes items into the catalogue inside one transaction. When clean is
// set the existing catalogue is removed first. Blank rows and rows already
// present are skipped.
func Load(ctx context.Context, store database.Store, items []Ingredient, clean bool) (Result, error) {
	result := Result{Read: len(items)}

	err := store.InTx(ctx, func(q database.Querier) error {
		if clean {
			deleted, err := q.DeleteIngredients(ctx)
			if err != nil {
				return fmt.Errorf("deleting ingredients: %w", err)
			}
			result.Deleted = deleted
		}

		for _, item := range items {
			name := strings.TrimSpace(item.Name)
			unit := strings.TrimSpace(item.MeasurementUnit)
			if name == "" || unit == "" {
				result.Skipped++
				continue
			}

			inserted, err := q.UpsertIngredient(ctx, database.UpsertIngredientParams{
				Name:            name,
				MeasurementUnit: unit,
			})
			if err != nil {
				return fmt.Errorf("inserting ingredient %q: %w", name, err)
			}
			if inserted == 0 {
				result.Skipped++
				continue
			}
			result.Inserted++
		}
		return nil
	})
	if err != nil {
		return Result{}, err
	}

	return result, nil
}
