package services

import (
	"net/url"
	"testing"

	"github.com/dipeshtilara/NotesHub/internal/config"
)

func TestViewerLink(t *testing.T) {
	s := NewShareService(config.Config{BaseURL: "https://hub.example.com"})

	link := s.ViewerLink("Sine Rule", 2, "https://x/notes/X/Math/Sine_1.json")
	parsed, err := url.Parse(link)
	if err != nil {
		t.Fatalf("link not parseable: %v", err)
	}

	q := parsed.Query()
	if q.Get("topic") != "Sine Rule" {
		t.Errorf("topic param = %q", q.Get("topic"))
	}
	if q.Get("page") != "2" {
		t.Errorf("page param = %q", q.Get("page"))
	}
	if q.Get("notes") != "https://x/notes/X/Math/Sine_1.json" {
		t.Errorf("notes param = %q", q.Get("notes"))
	}
}

func TestViewerLinkOmitsDefaults(t *testing.T) {
	s := NewShareService(config.Config{BaseURL: "https://hub.example.com"})

	link := s.ViewerLink("Algebra", 1, "")
	parsed, err := url.Parse(link)
	if err != nil {
		t.Fatalf("link not parseable: %v", err)
	}

	q := parsed.Query()
	if q.Has("page") || q.Has("notes") {
		t.Errorf("first-page link should carry only the topic: %s", link)
	}
}
