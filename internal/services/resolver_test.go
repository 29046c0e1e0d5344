package services

import (
	"errors"
	"testing"

	"github.com/dipeshtilara/NotesHub/internal/domain"
	"github.com/dipeshtilara/NotesHub/internal/logger"
)

type fakeURLStore struct {
	prefix string
	err    error
	calls  int
}

func (f *fakeURLStore) PublicURL(path string) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.prefix + path, nil
}

func TestResolveAbsoluteURLUnchanged(t *testing.T) {
	store := &fakeURLStore{prefix: "https://cdn.example.com/"}
	r := NewResolver(store, logger.NewNop())

	rec := domain.TopicRecord{
		"pdf_url":       "https://x/pdfs/IX/Math/Algebra_20240101.pdf",
		"notes_url":     "https://x/notes/IX/Math/Algebra_20240101.json",
		"segments_url":  "https://x/audio/IX/Math/Algebra_20240101_segments.json",
		"thumbnail_url": "https://x/thumbs/algebra.png",
	}

	cases := map[domain.ResourceKind]string{
		domain.ResourceDocument:  "https://x/pdfs/IX/Math/Algebra_20240101.pdf",
		domain.ResourceNotes:     "https://x/notes/IX/Math/Algebra_20240101.json",
		domain.ResourceSegments:  "https://x/audio/IX/Math/Algebra_20240101_segments.json",
		domain.ResourceThumbnail: "https://x/thumbs/algebra.png",
	}
	for kind, want := range cases {
		if got := r.Resolve(rec, kind); got != want {
			t.Errorf("Resolve(%s) = %q, want %q", kind, got, want)
		}
	}

	if store.calls != 0 {
		t.Errorf("expected no store lookups for absolute URLs, got %d", store.calls)
	}
}

func TestResolveAlternateFieldPrecedence(t *testing.T) {
	r := NewResolver(&fakeURLStore{}, logger.NewNop())

	rec := domain.TopicRecord{
		"file_url": "https://x/pdfs/X/AI/Perceptron_1.pdf",
	}
	if got := r.Resolve(rec, domain.ResourceDocument); got != "https://x/pdfs/X/AI/Perceptron_1.pdf" {
		t.Errorf("legacy field not honoured, got %q", got)
	}

	// primary wins over a populated alternate
	rec["pdf_url"] = "https://x/pdfs/X/AI/Perceptron_2.pdf"
	if got := r.Resolve(rec, domain.ResourceDocument); got != "https://x/pdfs/X/AI/Perceptron_2.pdf" {
		t.Errorf("primary field not preferred, got %q", got)
	}

	rec2 := domain.TopicRecord{"notes_json": "https://x/notes/a.json"}
	if got := r.Resolve(rec2, domain.ResourceNotes); got != "https://x/notes/a.json" {
		t.Errorf("notes_json alternate not honoured, got %q", got)
	}
}

func TestResolveRelativePathUsesStore(t *testing.T) {
	store := &fakeURLStore{prefix: "https://proj.supabase.co/storage/v1/object/public/cbse-resources/"}
	r := NewResolver(store, logger.NewNop())

	rec := domain.TopicRecord{"pdf_url": "pdfs/IX/Math/Algebra_20240101.pdf"}
	want := "https://proj.supabase.co/storage/v1/object/public/cbse-resources/pdfs/IX/Math/Algebra_20240101.pdf"
	if got := r.Resolve(rec, domain.ResourceDocument); got != want {
		t.Errorf("Resolve = %q, want %q", got, want)
	}
}

func TestResolveStoreFailureFallsBackToRawPath(t *testing.T) {
	store := &fakeURLStore{err: errors.New("storage unreachable")}
	r := NewResolver(store, logger.NewNop())

	rec := domain.TopicRecord{"pdf_url": "pdfs/IX/Math/Algebra.pdf"}
	if got := r.Resolve(rec, domain.ResourceDocument); got != "pdfs/IX/Math/Algebra.pdf" {
		t.Errorf("expected raw path fallback, got %q", got)
	}
}

func TestResolveMissingFieldReturnsEmpty(t *testing.T) {
	r := NewResolver(&fakeURLStore{}, logger.NewNop())

	rec := domain.TopicRecord{"class": "IX", "topic": "Algebra"}
	for _, kind := range []domain.ResourceKind{domain.ResourceDocument, domain.ResourceNotes, domain.ResourceSegments, domain.ResourceThumbnail} {
		if got := r.Resolve(rec, kind); got != "" {
			t.Errorf("Resolve(%s) = %q, want empty", kind, got)
		}
	}
}

func TestResolveTopic(t *testing.T) {
	r := NewResolver(&fakeURLStore{prefix: "https://cdn/"}, logger.NewNop())

	rec := domain.TopicRecord{
		"class":      "XI",
		"subject":    "Artificial Intelligence",
		"chapter":    "Introduction to Machine Learning",
		"topic":      "Perceptron",
		"created_at": "2024-01-01T00:00:00Z",
		"pdf_url":    "pdfs/XI/AI/Perceptron_1.pdf",
	}

	topic := r.ResolveTopic(rec)
	if topic.Class != "XI" || topic.Topic != "Perceptron" {
		t.Fatalf("metadata not carried over: %+v", topic)
	}
	if topic.PDFURL != "https://cdn/pdfs/XI/AI/Perceptron_1.pdf" {
		t.Errorf("pdf url not resolved: %q", topic.PDFURL)
	}
	if topic.NotesURL != "" || topic.SegmentsURL != "" {
		t.Errorf("absent companions should stay empty: %+v", topic)
	}
}

func TestInferCompanionURL(t *testing.T) {
	doc := "https://x/pdfs/IX/Math/Algebra_20240101.pdf"

	if got := InferCompanionURL(doc, domain.ResourceNotes); got != "https://x/notes/IX/Math/Algebra_20240101.json" {
		t.Errorf("notes inference = %q", got)
	}
	if got := InferCompanionURL(doc, domain.ResourceSegments); got != "https://x/audio/IX/Math/Algebra_20240101_segments.json" {
		t.Errorf("segments inference = %q", got)
	}

	// a plain .pdf without the /pdfs/ segment still maps by extension
	if got := InferCompanionURL("https://x/files/Algebra.pdf", domain.ResourceNotes); got != "https://x/files/Algebra.json" {
		t.Errorf("extension-only inference = %q", got)
	}

	// nothing to substitute on
	if got := InferCompanionURL("https://x/files/Algebra.docx", domain.ResourceNotes); got != "" {
		t.Errorf("expected empty for non-pdf URL, got %q", got)
	}
	if got := InferCompanionURL("", domain.ResourceSegments); got != "" {
		t.Errorf("expected empty for empty URL, got %q", got)
	}
	if got := InferCompanionURL(doc, domain.ResourceThumbnail); got != "" {
		t.Errorf("expected empty for kinds without a rule, got %q", got)
	}
}
