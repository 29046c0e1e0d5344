package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dipeshtilara/NotesHub/internal/domain"
	"github.com/dipeshtilara/NotesHub/internal/logger"
)

// BlobPublisher persists bytes under a logical path and returns the public
// URL, or "" when the object stored but its URL could not be retrieved.
type BlobPublisher interface {
	Publish(ctx context.Context, path string, data []byte, contentType string) (string, error)
}

// TopicInserter appends one row to the topic catalog.
type TopicInserter interface {
	InsertTopic(ctx context.Context, rec domain.TopicRecord) error
}

// UploadInput is the teacher-supplied metadata for one resource upload.
type UploadInput struct {
	Class   string
	Subject string
	Chapter string
	Topic   string
}

// PublishResult reports what the pipeline managed to produce. Warnings
// collect per-artifact failures; they never abort the run.
type PublishResult struct {
	Topic          domain.Topic              `json:"topic"`
	Notes          domain.NotesDocument      `json:"notes"`
	Segments       []domain.NarrationSegment `json:"segments"`
	NotesGenerated bool                      `json:"notes_generated"`
	Warnings       []string                  `json:"warnings,omitempty"`
}

// Pipeline runs the teacher-side artifact flow: extract text, publish the
// PDF, generate notes, publish notes JSON, synthesize and publish one audio
// clip per narration segment, publish the segments manifest, insert the
// catalog row. Every step is independent: a failed step is logged, recorded
// as a warning, and the pipeline carries on with the value absent. A topic
// with a document but no notes is still useful to students.
type Pipeline struct {
	blobs  BlobPublisher
	topics TopicInserter
	notes  *NotesService
	log    *logger.Logger
	now    func() time.Time
}

func NewPipeline(blobs BlobPublisher, topics TopicInserter, notes *NotesService, log *logger.Logger) *Pipeline {
	return &Pipeline{
		blobs:  blobs,
		topics: topics,
		notes:  notes,
		log:    log,
		now:    time.Now,
	}
}

func (p *Pipeline) Publish(ctx context.Context, in UploadInput, pdfBytes []byte) (PublishResult, error) {
	if len(pdfBytes) == 0 {
		return PublishResult{}, errors.New("empty pdf upload")
	}

	result := PublishResult{}
	warn := func(step string, err error) {
		p.log.Warn("pipeline step failed", "step", step, "topic", in.Topic, "error", err)
		result.Warnings = append(result.Warnings, fmt.Sprintf("%s: %v", step, err))
	}

	text, err := ExtractPDFText(pdfBytes)
	if err != nil {
		warn("extract text", err)
		text = ""
	}

	stamp := p.now().UTC()
	ts := stamp.Format("20060102150405")

	pdfPath := fmt.Sprintf("pdfs/%s/%s/%s_%s.pdf", in.Class, in.Subject, in.Topic, ts)
	pdfURL, err := p.blobs.Publish(ctx, pdfPath, pdfBytes, "application/pdf")
	if err != nil {
		warn("publish pdf", err)
	}

	notesDoc, generated := p.generateNotes(ctx, in, text, warn)
	notesDoc.SourcePDF = pdfURL
	notesDoc.UploadedAt = ts

	var notesURL string
	if notesBytes, err := json.MarshalIndent(notesDoc, "", "  "); err != nil {
		warn("encode notes", err)
	} else {
		notesPath := fmt.Sprintf("notes/%s/%s/%s_%s.json", in.Class, in.Subject, in.Topic, ts)
		notesURL, err = p.blobs.Publish(ctx, notesPath, notesBytes, "application/json")
		if err != nil {
			warn("publish notes", err)
		}
	}

	segments := SegmentNotes(notesDoc)
	for i := range segments {
		clip := SynthesizeSegmentAudio(segments[i].Text)
		audioPath := fmt.Sprintf("audio/%s/%s/%s.mp3", in.Class, in.Subject, segments[i].SegmentID)
		audioURL, err := p.blobs.Publish(ctx, audioPath, clip, "audio/mpeg")
		if err != nil {
			warn("publish audio "+segments[i].SegmentID, err)
			continue
		}
		segments[i].URL = audioURL
	}

	var segmentsURL string
	if manifestBytes, err := json.MarshalIndent(segments, "", "  "); err != nil {
		warn("encode segments manifest", err)
	} else {
		segmentsPath := fmt.Sprintf("audio/%s/%s/%s_%s_segments.json", in.Class, in.Subject, in.Topic, ts)
		segmentsURL, err = p.blobs.Publish(ctx, segmentsPath, manifestBytes, "application/json")
		if err != nil {
			warn("publish segments manifest", err)
		}
	}

	topic := domain.Topic{
		Class:       in.Class,
		Subject:     in.Subject,
		Chapter:     in.Chapter,
		Topic:       in.Topic,
		CreatedAt:   stamp.Format(time.RFC3339),
		PDFURL:      pdfURL,
		NotesURL:    notesURL,
		SegmentsURL: segmentsURL,
	}

	rec := domain.TopicRecord{
		"class":      topic.Class,
		"subject":    topic.Subject,
		"chapter":    topic.Chapter,
		"topic":      topic.Topic,
		"created_at": topic.CreatedAt,
	}
	if pdfURL != "" {
		rec["pdf_url"] = pdfURL
	}
	if notesURL != "" {
		rec["notes_url"] = notesURL
	}
	if segmentsURL != "" {
		rec["segments_url"] = segmentsURL
	}
	if err := p.topics.InsertTopic(ctx, rec); err != nil {
		warn("insert catalog row", err)
	}

	result.Topic = topic
	result.Notes = notesDoc
	result.Segments = segments
	result.NotesGenerated = generated

	p.log.Info("resource published",
		"topic", in.Topic,
		"class", in.Class,
		"subject", in.Subject,
		"segments", len(segments),
		"warnings", len(result.Warnings),
	)
	return result, nil
}

func (p *Pipeline) generateNotes(ctx context.Context, in UploadInput, text string, warn func(string, error)) (domain.NotesDocument, bool) {
	if p.notes != nil && p.notes.Configured() {
		doc, err := p.notes.Generate(ctx, in.Class, in.Subject, in.Chapter, in.Topic, text)
		if err == nil {
			return doc, true
		}
		warn("generate notes", err)
	}
	return FallbackNotes(), false
}
