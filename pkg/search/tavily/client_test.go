package tavily

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newTestClient(handler http.HandlerFunc) (*Client, *httptest.Server) {
	srv := httptest.NewServer(handler)
	c := NewClient("test-key", nil)
	c.BaseURL = srv.URL
	return c, srv
}

func TestSearchExtractsSnippets(t *testing.T) {
	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search" {
			t.Errorf("path = %s, want /search", r.URL.Path)
		}
		var req map[string]interface{}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req["query"] != "golang concurrency" {
			t.Errorf("query = %v", req["query"])
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"results": [
			{"snippet": "from snippet field"},
			{"content": "from content field"},
			{"title": "from title field"},
			{"snippet": "", "content": "", "title": ""}
		]}`))
	})
	defer srv.Close()

	got, err := c.Search(context.Background(), "golang concurrency", 5)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}

	want := []string{"from snippet field", "from content field", "from title field"}
	if len(got) != len(want) {
		t.Fatalf("got %d snippets, want %d: %v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("snippet[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestSearchTopKTruncation(t *testing.T) {
	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"results": [
			{"snippet": "one"}, {"snippet": "two"}, {"snippet": "three"}
		]}`))
	})
	defer srv.Close()

	got, err := c.Search(context.Background(), "q", 2)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(got) != 2 {
		t.Errorf("got %d snippets, want 2", len(got))
	}
}

func TestSearchServerErrorDegradesToEmpty(t *testing.T) {
	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	defer srv.Close()

	got, err := c.Search(context.Background(), "q", 3)
	if err != nil {
		t.Fatalf("Search() error = %v, want nil on server error", err)
	}
	if len(got) != 0 {
		t.Errorf("got %v, want empty", got)
	}
}

func TestSearchWithoutApiKeySkips(t *testing.T) {
	called := false
	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		called = true
	})
	defer srv.Close()
	c.ApiKey = ""

	got, err := c.Search(context.Background(), "q", 3)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(got) != 0 || called {
		t.Error("search without api key must skip the request and return empty")
	}
}
