package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dipeshtilara/NotesHub/internal/domain"
)

func TestFetchJSONSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"topic": "Algebra", "theory": [{"section_title": "s", "text": "t"}]}`))
	}))
	defer srv.Close()

	doc := FetchJSON[domain.NotesDocument](context.Background(), srv.Client(), srv.URL)
	if doc == nil {
		t.Fatalf("expected document, got nil")
	}
	if doc.Topic != "Algebra" || len(doc.Theory) != 1 {
		t.Errorf("unexpected document: %+v", doc)
	}
}

func TestFetchJSONNon200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	if doc := FetchJSON[domain.NotesDocument](context.Background(), srv.Client(), srv.URL); doc != nil {
		t.Errorf("expected nil for 404, got %+v", doc)
	}
}

func TestFetchJSONMalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html>not json</html>"))
	}))
	defer srv.Close()

	if doc := FetchJSON[domain.NotesDocument](context.Background(), srv.Client(), srv.URL); doc != nil {
		t.Errorf("expected nil for malformed body, got %+v", doc)
	}
}

func TestFetchJSONTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	client := &http.Client{Timeout: 20 * time.Millisecond}
	if doc := FetchJSON[domain.NotesDocument](context.Background(), client, srv.URL); doc != nil {
		t.Errorf("expected nil on timeout, got %+v", doc)
	}
}

func TestFetchJSONEmptyURL(t *testing.T) {
	if doc := FetchJSON[domain.NotesDocument](context.Background(), http.DefaultClient, ""); doc != nil {
		t.Errorf("expected nil for empty url")
	}
}
