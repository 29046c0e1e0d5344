package catalog

import (
	"strings"

	"github.com/dipeshtilara/NotesHub/internal/domain"
)

// Filter is the student-side catalog filter: class exact match, subject
// substring, free-text substring over topic+chapter+subject. All three are
// conjunctive; empty (or "All" for class) skips the predicate.
type Filter struct {
	Class   string
	Subject string
	Query   string
}

// Page is one page of the filtered catalog.
type Page struct {
	Items      []domain.Topic `json:"topics"`
	Page       int            `json:"page"`
	TotalPages int            `json:"total_pages"`
	Total      int            `json:"total"`
}

// Matches reports whether a topic passes every predicate of the filter.
func Matches(t domain.Topic, f Filter) bool {
	if f.Class != "" && !strings.EqualFold(f.Class, "All") && !strings.EqualFold(t.Class, f.Class) {
		return false
	}
	if f.Subject != "" && !strings.Contains(strings.ToLower(t.Subject), strings.ToLower(f.Subject)) {
		return false
	}
	if f.Query != "" {
		haystack := strings.ToLower(t.Topic + " " + t.Chapter + " " + t.Subject)
		if !strings.Contains(haystack, strings.ToLower(f.Query)) {
			return false
		}
	}
	return true
}

// Query filters topics and slices out the requested page. Input order is
// preserved (created_at descending, inherited from catalog load); there is
// no re-sort. The page number is clamped to [1, totalPages], so a stale
// shareable link past the end lands on the last page rather than an empty
// one.
func Query(topics []domain.Topic, f Filter, page, pageSize int) Page {
	if pageSize < 1 {
		pageSize = 1
	}

	filtered := make([]domain.Topic, 0, len(topics))
	for _, t := range topics {
		if Matches(t, f) {
			filtered = append(filtered, t)
		}
	}

	totalPages := (len(filtered) + pageSize - 1) / pageSize
	if totalPages < 1 {
		totalPages = 1
	}

	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	start := (page - 1) * pageSize
	end := start + pageSize
	if start > len(filtered) {
		start = len(filtered)
	}
	if end > len(filtered) {
		end = len(filtered)
	}

	return Page{
		Items:      filtered[start:end],
		Page:       page,
		TotalPages: totalPages,
		Total:      len(filtered),
	}
}
