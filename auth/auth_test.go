package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func tokenServer(t *testing.T) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"token123","token_type":"bearer","expires_in":3600}`))
	}))
}

func TestGetTokenAndSetAuthHeader(t *testing.T) {
	server := tokenServer(t)
	defer server.Close()

	client := NewClientCred(Conf{ClientID: "id", ClientSecret: "secret", AuthURL: server.URL})

	token, err := client.GetToken(context.Background())
	if err != nil {
		t.Fatalf("get token: %v", err)
	}
	if token != "token123" {
		t.Fatalf("token = %q, want token123", token)
	}

	req, err := http.NewRequest(http.MethodGet, "http://example.com", nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := client.SetAuthHeader(context.Background(), req); err != nil {
		t.Fatalf("set header: %v", err)
	}
	if got := req.Header.Get("Authorization"); got != "Bearer token123" {
		t.Fatalf("authorization header = %q", got)
	}
}

func TestGetTokenCachesUntilExpiry(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"token123","token_type":"bearer","expires_in":3600}`))
	}))
	defer server.Close()

	client := NewClientCred(Conf{ClientID: "id", ClientSecret: "secret", AuthURL: server.URL})
	for i := 0; i < 3; i++ {
		if _, err := client.GetToken(context.Background()); err != nil {
			t.Fatalf("get token: %v", err)
		}
	}
	if calls != 1 {
		t.Fatalf("token endpoint called %d times, want 1", calls)
	}
}

func TestGetTokenError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClientCred(Conf{ClientID: "id", ClientSecret: "secret", AuthURL: server.URL})
	if _, err := client.GetToken(context.Background()); err == nil {
		t.Fatal("expected error from failing token endpoint")
	}
}
