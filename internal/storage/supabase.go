package storage

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/supabase-community/postgrest-go"
	storage_go "github.com/supabase-community/storage-go"
	supabase "github.com/supabase-community/supabase-go"

	"github.com/dipeshtilara/NotesHub/internal/config"
	"github.com/dipeshtilara/NotesHub/internal/domain"
	"github.com/dipeshtilara/NotesHub/internal/logger"
)

// Client wraps the Supabase SDK as the two collaborators the pipeline
// needs: a blob store addressed by bucket+path and a row store holding the
// topics table.
type Client struct {
	sb     *supabase.Client
	bucket string
	table  string
	log    *logger.Logger
}

func NewClient(cfg config.Config, log *logger.Logger) (*Client, error) {
	sb, err := supabase.NewClient(cfg.SupabaseURL, cfg.SupabaseKey, &supabase.ClientOptions{})
	if err != nil {
		return nil, fmt.Errorf("initialize supabase client: %w", err)
	}

	return &Client{
		sb:     sb,
		bucket: cfg.StorageBucket,
		table:  cfg.TopicsTable,
		log:    log,
	}, nil
}

// EnsureBucket creates the storage bucket if it does not exist yet. An
// "already exists" outcome counts as success.
func (c *Client) EnsureBucket() error {
	_, err := c.sb.Storage.CreateBucket(c.bucket, storage_go.BucketOptions{Public: true})
	if err != nil && !isAlreadyExists(err) {
		return fmt.Errorf("create bucket %s: %w", c.bucket, err)
	}
	return nil
}

// Publish writes data to path inside the bucket and returns the path's
// public URL. Paths are timestamp-qualified by callers, so overwrites are
// harmless. A stored object whose public URL cannot be retrieved yields ""
// with no error.
func (c *Client) Publish(ctx context.Context, path string, data []byte, contentType string) (string, error) {
	if err := c.EnsureBucket(); err != nil {
		return "", err
	}

	upsert := true
	_, err := c.sb.Storage.UploadFile(c.bucket, path, bytes.NewReader(data), storage_go.FileOptions{
		ContentType: &contentType,
		Upsert:      &upsert,
	})
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", path, err)
	}

	url, err := c.PublicURL(path)
	if err != nil {
		c.log.Warn("public url retrieval failed", "path", path, "error", err)
		return "", nil
	}
	return url, nil
}

// PublicURL resolves a storage-relative path to its public URL.
func (c *Client) PublicURL(path string) (string, error) {
	resp := c.sb.Storage.GetPublicUrl(c.bucket, path)
	url := PublicURLFrom(resp)
	if url == "" {
		return "", fmt.Errorf("no public url for %s", path)
	}
	return url, nil
}

// PublicURLFrom normalizes the shapes the storage API has returned public
// URLs in across revisions: a typed response carrying a URL field, a JSON
// mapping keyed by a URL field, or a bare string.
func PublicURLFrom(v any) string {
	switch u := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(u)
	case storage_go.SignedUrlResponse:
		return strings.TrimSpace(u.SignedURL)
	case map[string]any:
		for _, key := range []string{"publicURL", "publicUrl", "signedURL", "url"} {
			if s, ok := u[key].(string); ok && strings.TrimSpace(s) != "" {
				return strings.TrimSpace(s)
			}
		}
	}
	return ""
}

// InsertTopic appends one row to the topics table. A missing table is
// tolerated so a fresh project bootstraps without migrations; the row is
// simply dropped and the condition logged.
func (c *Client) InsertTopic(ctx context.Context, rec domain.TopicRecord) error {
	_, _, err := c.sb.From(c.table).Insert(rec, false, "", "minimal", "").Execute()
	if err != nil {
		if isMissingTable(err) {
			c.log.Warn("topics table missing, row dropped", "table", c.table)
			return nil
		}
		return fmt.Errorf("insert topic row: %w", err)
	}
	return nil
}

// ListTopics returns all catalog rows ordered by created_at descending. A
// missing table reads as an empty catalog.
func (c *Client) ListTopics(ctx context.Context) ([]domain.TopicRecord, error) {
	var rows []domain.TopicRecord
	_, err := c.sb.From(c.table).
		Select("*", "", false).
		Order("created_at", &postgrest.OrderOpts{Ascending: false}).
		ExecuteTo(&rows)
	if err != nil {
		if isMissingTable(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("list topic rows: %w", err)
	}
	return rows, nil
}

func isAlreadyExists(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "already exists") ||
		strings.Contains(msg, "duplicate") ||
		strings.Contains(msg, "409")
}

func isMissingTable(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "does not exist") ||
		strings.Contains(msg, "could not find the table") ||
		strings.Contains(msg, "42p01") ||
		strings.Contains(msg, "pgrst205")
}
