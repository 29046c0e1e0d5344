package services

import (
	"fmt"

	"github.com/dipeshtilara/NotesHub/internal/domain"
)

const (
	// segmentTextBudget bounds how much of a theory section is narrated.
	segmentTextBudget = 600
	// charsPerSecond is a crude spoken-rate estimate for duration.
	charsPerSecond    = 5
	minSegmentSeconds = 20
	maxSegmentSeconds = 90
	// maxRevisionSegments caps how many quick-revision items become audio.
	maxRevisionSegments = 3
	revisionSeconds     = 20
)

// SegmentNotes splits a notes document into the ordered narration sequence:
// one segment per theory section, then up to three quick-revision items.
// Segment ids are positional within the document ({topic}_sec1, _sec2, …,
// with quick-revision ids continuing the count), so ordering is part of the
// contract. An empty document yields an empty sequence.
func SegmentNotes(doc domain.NotesDocument) []domain.NarrationSegment {
	topic := doc.Topic
	if topic == "" {
		topic = "topic"
	}

	segments := make([]domain.NarrationSegment, 0, len(doc.Theory)+maxRevisionSegments)

	for i, section := range doc.Theory {
		text := []rune(section.Text)
		truncated := text
		if len(truncated) > segmentTextBudget {
			truncated = truncated[:segmentTextBudget]
		}

		duration := len(text) / charsPerSecond
		if duration < minSegmentSeconds {
			duration = minSegmentSeconds
		}
		if duration > maxSegmentSeconds {
			duration = maxSegmentSeconds
		}

		segments = append(segments, domain.NarrationSegment{
			SegmentID:             fmt.Sprintf("%s_sec%d", topic, i+1),
			Text:                  string(truncated) + " ...",
			ApproxDurationSeconds: duration,
		})
	}

	for i, item := range doc.QuickRevision {
		if i >= maxRevisionSegments {
			break
		}
		segments = append(segments, domain.NarrationSegment{
			SegmentID:             fmt.Sprintf("%s_qr%d", topic, len(doc.Theory)+i+1),
			Text:                  item,
			ApproxDurationSeconds: revisionSeconds,
		})
	}

	return segments
}
