package shoppinglist

import (
	"errors"
	"testing"
)

func TestString(t *testing.T) {
	tests := []struct {
		name  string
		items []Item
		want  string
	}{
		{
			name:  "empty cart",
			items: nil,
			want:  "Name Amount Unit\n",
		},
		{
			name: "several items",
			items: []Item{
				{Name: "flour", Total: 500, MeasurementUnit: "g"},
				{Name: "milk", Total: 2, MeasurementUnit: "cup"},
			},
			want: "Name Amount Unit\nflour    500    g\nmilk    2    cup\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := String(tt.items); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("disk full")
}

func TestRenderWriteError(t *testing.T) {
	err := Render(failingWriter{}, []Item{{Name: "salt", Total: 1, MeasurementUnit: "pinch"}})
	if err == nil {
		t.Fatal("expected error, got nil")
	}
}
