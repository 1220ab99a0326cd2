// Package shoppinglist renders the aggregated contents of a shopping cart
// as a downloadable text file.
package shoppinglist

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

const (
	Filename    = "shopping_list.txt"
	ContentType = "text/plain; charset=utf-8"
	Header      = "Name Amount Unit"

	separator = "    "
)

// Item is one ingredient with its amount summed over every recipe in the cart.
type Item struct {
	Name            string
	Total           int64
	MeasurementUnit string
}

// Render writes the header line followed by one line per item.
func Render(w io.Writer, items []Item) error {
	bw := bufio.NewWriter(w)
	if _, err := bw.WriteString(Header + "\n"); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for _, item := range items {
		line := strings.Join([]string{
			item.Name,
			strconv.FormatInt(item.Total, 10),
			item.MeasurementUnit,
		}, separator)
		if _, err := bw.WriteString(line + "\n"); err != nil {
			return fmt.Errorf("writing item %q: %w", item.Name, err)
		}
	}

	return bw.Flush()
}

// String renders items into a string.
func String(items []Item) string {
	var sb strings.Builder
	_ = Render(&sb, items)
	return sb.String()
}
