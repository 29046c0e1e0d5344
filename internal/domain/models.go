package domain

import "strings"

// ResourceKind names the artifact kinds attached to a topic.
type ResourceKind string

const (
	ResourceDocument  ResourceKind = "document"
	ResourceNotes     ResourceKind = "notes"
	ResourceSegments  ResourceKind = "segments"
	ResourceThumbnail ResourceKind = "thumbnail"
)

// Classes are the CBSE class levels accepted at upload.
var Classes = []string{"IX", "X", "XI", "XII"}

func ValidClass(class string) bool {
	for _, c := range Classes {
		if strings.EqualFold(c, class) {
			return true
		}
	}
	return false
}

// TopicRecord is a raw row from the topics table. The table is schema-less
// from the application's point of view: resource fields may be absolute
// URLs, storage-relative paths, or carried under legacy field names.
type TopicRecord map[string]any

// Field returns the record value under key as a trimmed string, or "" when
// the key is absent or not string-shaped.
func (r TopicRecord) Field(key string) string {
	if v, ok := r[key]; ok {
		if s, ok := v.(string); ok {
			return strings.TrimSpace(s)
		}
	}
	return ""
}

// Topic is the resolved catalog view of one published unit of study
// material. Class, subject, chapter and topic are set at creation and never
// mutated; URL fields hold whatever each upload step managed to produce.
type Topic struct {
	Class        string `json:"class"`
	Subject      string `json:"subject"`
	Chapter      string `json:"chapter"`
	Topic        string `json:"topic"`
	CreatedAt    string `json:"created_at,omitempty"`
	PDFURL       string `json:"pdf_url,omitempty"`
	NotesURL     string `json:"notes_url,omitempty"`
	SegmentsURL  string `json:"segments_url,omitempty"`
	ThumbnailURL string `json:"thumbnail_url,omitempty"`
	Summary      string `json:"summary,omitempty"`
}

// NotesDocument is the structured study-notes JSON stored alongside a
// topic's PDF. SourcePDF and UploadedAt are provenance fields stamped after
// generation.
type NotesDocument struct {
	Title              string           `json:"title,omitempty"`
	Topic              string           `json:"topic"`
	LearningObjectives []string         `json:"learning_objectives"`
	Theory             []TheorySection  `json:"theory"`
	QuickRevision      []string         `json:"quick_revision"`
	SampleQuestions    []SampleQuestion `json:"sample_questions"`
	SourcePDF          string           `json:"source_pdf,omitempty"`
	UploadedAt         string           `json:"uploaded_at,omitempty"`
}

type TheorySection struct {
	SectionTitle string `json:"section_title"`
	Text         string `json:"text"`
}

type SampleQuestion struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// NarrationSegment is one unit of audio narration derived from a notes
// document. The ordered slice of segments is persisted as the segments
// manifest; URL is filled in per entry once the segment's audio upload
// succeeds and stays empty for entries whose upload failed.
type NarrationSegment struct {
	SegmentID             string `json:"segment_id"`
	Text                  string `json:"text"`
	ApproxDurationSeconds int    `json:"approx_duration_seconds"`
	URL                   string `json:"url,omitempty"`
}
