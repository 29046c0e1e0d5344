package services

import (
	"net/url"
	"strconv"

	"github.com/dipeshtilara/NotesHub/internal/config"
)

// ShareService builds shareable student-viewer links. The catalog is
// public, so links carry plain query parameters: the topic name, the list
// page it was found on, and optionally a directly-opened notes URL.
type ShareService struct {
	baseURL string
}

func NewShareService(cfg config.Config) *ShareService {
	return &ShareService{baseURL: cfg.BaseURL}
}

func (s *ShareService) ViewerLink(topic string, page int, notesURL string) string {
	params := url.Values{}
	params.Set("topic", topic)
	if page > 1 {
		params.Set("page", strconv.Itoa(page))
	}
	if notesURL != "" {
		params.Set("notes", notesURL)
	}
	return s.baseURL + "/?" + params.Encode()
}
