package metrics

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordAPIRequest(t *testing.T) {
	tests := []struct {
		name      string
		method    string
		route     string
		status    int
		wantRoute string
	}{
		{name: "matched route", method: http.MethodGet, route: "/api/recipes/{id}", status: 200, wantRoute: "/api/recipes/{id}"},
		{name: "unmatched route", method: http.MethodPost, route: "", status: 404, wantRoute: "unmatched"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			counter := APIRequestsTotal.WithLabelValues(tt.method, tt.wantRoute, strconv.Itoa(tt.status))
			before := testutil.ToFloat64(counter)

			RecordAPIRequest(tt.method, tt.route, tt.status, 15*time.Millisecond)

			if got := testutil.ToFloat64(counter); got != before+1 {
				t.Errorf("expected counter %v, got %v", before+1, got)
			}
		})
	}
}

func TestDomainCounters(t *testing.T) {
	tests := []struct {
		name   string
		record func()
		value  func() float64
	}{
		{name: "recipes created", record: RecordRecipeCreated, value: func() float64 { return testutil.ToFloat64(RecipesCreated) }},
		{name: "shopping lists", record: RecordShoppingListDownloaded, value: func() float64 { return testutil.ToFloat64(ShoppingListsDownloaded) }},
		{name: "users registered", record: RecordUserRegistered, value: func() float64 { return testutil.ToFloat64(UsersRegistered) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := tt.value()
			tt.record()
			if got := tt.value(); got != before+1 {
				t.Errorf("expected %v, got %v", before+1, got)
			}
		})
	}
}

func TestHandler(t *testing.T) {
	RecordRecipeCreated()

	w := httptest.NewRecorder()
	Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "foodgram_recipes_created_total") {
		t.Errorf("expected exposition to contain recipes counter")
	}
}
