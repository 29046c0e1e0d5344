package services

import (
	"net/url"
	"strings"

	"github.com/dipeshtilara/NotesHub/internal/domain"
	"github.com/dipeshtilara/NotesHub/internal/logger"
)

// PublicURLStore resolves a storage-relative path to a public URL.
type PublicURLStore interface {
	PublicURL(path string) (string, error)
}

// resourceFields lists, per resource kind, the record fields that may carry
// its value. Primary name first, then legacy alternates from earlier schema
// revisions; the first present non-empty value wins.
var resourceFields = map[domain.ResourceKind][]string{
	domain.ResourceDocument:  {"pdf_url", "file_url", "document_url", "url"},
	domain.ResourceNotes:     {"notes_url", "notes_json", "notes_path"},
	domain.ResourceSegments:  {"segments_url", "segments_json", "audio_manifest"},
	domain.ResourceThumbnail: {"thumbnail_url", "thumb_url", "cover_url"},
}

// Resolver normalizes the heterogeneous resource fields of raw topic rows
// into public URLs. Resolution happens once per record per kind at catalog
// load; the resulting Topic values are what gets cached, so the store
// lookup is not repeated per render.
type Resolver struct {
	store PublicURLStore
	log   *logger.Logger
}

func NewResolver(store PublicURLStore, log *logger.Logger) *Resolver {
	return &Resolver{store: store, log: log}
}

// Resolve returns the public URL for one resource kind of a raw record, or
// "" when no field of that kind is present. A storage-relative value whose
// store lookup fails is returned raw: a possibly non-functional link beats
// no link.
func (r *Resolver) Resolve(rec domain.TopicRecord, kind domain.ResourceKind) string {
	var raw string
	for _, field := range resourceFields[kind] {
		if v := rec.Field(field); v != "" {
			raw = v
			break
		}
	}
	if raw == "" {
		return ""
	}

	if isAbsoluteURL(raw) {
		return raw
	}

	resolved, err := r.store.PublicURL(raw)
	if err != nil || resolved == "" {
		r.log.Warn("public url lookup failed, keeping raw path", "path", raw, "kind", string(kind), "error", err)
		return raw
	}
	return resolved
}

// ResolveTopic builds the resolved catalog view of one raw record.
func (r *Resolver) ResolveTopic(rec domain.TopicRecord) domain.Topic {
	return domain.Topic{
		Class:        rec.Field("class"),
		Subject:      rec.Field("subject"),
		Chapter:      rec.Field("chapter"),
		Topic:        rec.Field("topic"),
		CreatedAt:    rec.Field("created_at"),
		Summary:      rec.Field("summary"),
		PDFURL:       r.Resolve(rec, domain.ResourceDocument),
		NotesURL:     r.Resolve(rec, domain.ResourceNotes),
		SegmentsURL:  r.Resolve(rec, domain.ResourceSegments),
		ThumbnailURL: r.Resolve(rec, domain.ResourceThumbnail),
	}
}

// InferCompanionURL derives a companion resource URL from a document URL by
// the published path convention: notes live under /notes/ as .json, segment
// manifests under /audio/ as _segments.json. Pure string substitution; the
// result is a best-effort guess that is only validated when fetched.
func InferCompanionURL(documentURL string, kind domain.ResourceKind) string {
	idx := strings.LastIndex(documentURL, ".pdf")
	if idx < 0 {
		return ""
	}

	switch kind {
	case domain.ResourceNotes:
		u := strings.Replace(documentURL, "/pdfs/", "/notes/", 1)
		return u[:strings.LastIndex(u, ".pdf")] + ".json"
	case domain.ResourceSegments:
		u := strings.Replace(documentURL, "/pdfs/", "/audio/", 1)
		return u[:strings.LastIndex(u, ".pdf")] + "_segments.json"
	}
	return ""
}

func isAbsoluteURL(s string) bool {
	u, err := url.Parse(s)
	return err == nil && u.Scheme != ""
}
