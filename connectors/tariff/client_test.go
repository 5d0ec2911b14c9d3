package tariff

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/kilianp07/hems/auth"
)

func testProvider(t *testing.T, prices []float64) (*httptest.Server, Config) {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"tok","token_type":"bearer","expires_in":3600}`))
	})
	mux.HandleFunc("/tariff", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer tok" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		if r.URL.Query().Get("date") == "" {
			http.Error(w, "missing date", http.StatusBadRequest)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"prices": prices})
	})
	srv := httptest.NewServer(mux)
	cfg := Config{
		URL: srv.URL + "/tariff",
		Auth: auth.Conf{
			ClientID:     "id",
			ClientSecret: "secret",
			AuthURL:      srv.URL + "/token",
		},
	}
	return srv, cfg
}

func TestDayAhead(t *testing.T) {
	prices := make([]float64, 24)
	for i := range prices {
		prices[i] = 0.10 + 0.01*float64(i)
	}
	srv, cfg := testProvider(t, prices)
	defer srv.Close()

	got, err := New(cfg).DayAhead(context.Background(), time.Date(2026, 8, 26, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("day ahead: %v", err)
	}
	if got.Horizon() != 24 {
		t.Fatalf("horizon = %d, want 24", got.Horizon())
	}
	if got.At(5) != 0.15 {
		t.Fatalf("price at 5 = %v, want 0.15", got.At(5))
	}
}

func TestDayAheadRejectsBadSeries(t *testing.T) {
	srv, cfg := testProvider(t, []float64{0.1, -0.2})
	defer srv.Close()

	if _, err := New(cfg).DayAhead(context.Background(), time.Now()); err == nil {
		t.Fatal("expected validation error for a negative price")
	}
}

func TestDayAheadProviderDown(t *testing.T) {
	srv, cfg := testProvider(t, nil)
	srv.Close()

	if _, err := New(cfg).DayAhead(context.Background(), time.Now()); err == nil {
		t.Fatal("expected error when the provider is unreachable")
	}
}
