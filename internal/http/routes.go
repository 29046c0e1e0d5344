package http

import (
	"context"
	"io"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/dipeshtilara/NotesHub/internal/catalog"
	"github.com/dipeshtilara/NotesHub/internal/config"
	"github.com/dipeshtilara/NotesHub/internal/domain"
	"github.com/dipeshtilara/NotesHub/internal/logger"
	"github.com/dipeshtilara/NotesHub/internal/services"
)

const topicListCacheKey = "topics"

// TopicLister reads the raw catalog rows, newest first.
type TopicLister interface {
	ListTopics(ctx context.Context) ([]domain.TopicRecord, error)
}

type API struct {
	cfg        config.Config
	store      TopicLister
	pipeline   *services.Pipeline
	resolver   *services.Resolver
	share      *services.ShareService
	log        *logger.Logger
	fetcher    *http.Client
	topicCache *catalog.TTLCache[[]domain.Topic]
	notesCache *catalog.TTLCache[*domain.NotesDocument]
	segsCache  *catalog.TTLCache[[]domain.NarrationSegment]
}

func NewAPI(cfg config.Config, store TopicLister, pipeline *services.Pipeline, resolver *services.Resolver, share *services.ShareService, log *logger.Logger) *API {
	return &API{
		cfg:        cfg,
		store:      store,
		pipeline:   pipeline,
		resolver:   resolver,
		share:      share,
		log:        log,
		fetcher:    &http.Client{Timeout: cfg.FetchTimeout},
		topicCache: catalog.NewTTLCache[[]domain.Topic](cfg.CacheTTL),
		notesCache: catalog.NewTTLCache[*domain.NotesDocument](cfg.CacheTTL),
		segsCache:  catalog.NewTTLCache[[]domain.NarrationSegment](cfg.CacheTTL),
	}
}

func registerRoutes(r *gin.Engine, api *API) {
	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/health", api.handleHealth)
		apiGroup.GET("/classes", api.handleListClasses)

		apiGroup.GET("/topics", api.handleListTopics)
		apiGroup.POST("/topics", api.handleUploadTopic)
		apiGroup.GET("/topics/:topic", api.handleGetTopic)
		apiGroup.GET("/topics/:topic/share", api.handleShareTopic)
	}
}

func (a *API) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (a *API) handleListClasses(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"classes": domain.Classes})
}

// handleListTopics serves the student catalog: filter, then paginate.
func (a *API) handleListTopics(c *gin.Context) {
	filter := catalog.Filter{
		Class:   strings.TrimSpace(c.Query("class")),
		Subject: strings.TrimSpace(c.Query("subject")),
		Query:   strings.TrimSpace(c.Query("q")),
	}

	page := 1
	if raw := c.Query("page"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			respondMessage(c, http.StatusBadRequest, "invalid page number")
			return
		}
		page = parsed
	}

	topics := a.loadTopics(c.Request.Context())
	c.JSON(http.StatusOK, catalog.Query(topics, filter, page, a.cfg.PageSize))
}

type topicView struct {
	Topic             domain.Topic              `json:"topic"`
	Notes             *domain.NotesDocument     `json:"notes,omitempty"`
	Segments          []domain.NarrationSegment `json:"segments,omitempty"`
	NotesAvailable    bool                      `json:"notes_available"`
	SegmentsAvailable bool                      `json:"segments_available"`
}

// handleGetTopic serves the detail view: the resolved record plus fetched
// companion JSON. Missing companions are reported as unavailable, never as
// an error; the viewer shows a placeholder.
func (a *API) handleGetTopic(c *gin.Context) {
	ctx := c.Request.Context()

	topic, ok := a.findTopic(ctx, c.Param("topic"))
	if !ok {
		respondMessage(c, http.StatusNotFound, "topic not found")
		return
	}

	if topic.NotesURL == "" {
		topic.NotesURL = services.InferCompanionURL(topic.PDFURL, domain.ResourceNotes)
	}
	if topic.SegmentsURL == "" {
		topic.SegmentsURL = services.InferCompanionURL(topic.PDFURL, domain.ResourceSegments)
	}

	notes := a.fetchNotes(ctx, topic.NotesURL)
	segments := a.fetchSegments(ctx, topic.SegmentsURL)

	c.JSON(http.StatusOK, topicView{
		Topic:             topic,
		Notes:             notes,
		Segments:          segments,
		NotesAvailable:    notes != nil,
		SegmentsAvailable: len(segments) > 0,
	})
}

func (a *API) handleShareTopic(c *gin.Context) {
	ctx := c.Request.Context()

	topic, ok := a.findTopic(ctx, c.Param("topic"))
	if !ok {
		respondMessage(c, http.StatusNotFound, "topic not found")
		return
	}

	page := 1
	if raw := c.Query("page"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			page = parsed
		}
	}

	notesURL := topic.NotesURL
	if notesURL == "" {
		notesURL = services.InferCompanionURL(topic.PDFURL, domain.ResourceNotes)
	}

	c.JSON(http.StatusOK, gin.H{"url": a.share.ViewerLink(topic.Topic, page, notesURL)})
}

// handleUploadTopic runs the teacher-side pipeline for one PDF.
func (a *API) handleUploadTopic(c *gin.Context) {
	class := strings.ToUpper(strings.TrimSpace(c.PostForm("class")))
	subject := strings.TrimSpace(c.PostForm("subject"))
	chapter := strings.TrimSpace(c.PostForm("chapter"))
	topic := strings.TrimSpace(c.PostForm("topic"))

	if !domain.ValidClass(class) {
		respondMessage(c, http.StatusBadRequest, "class must be one of IX, X, XI, XII")
		return
	}
	if subject == "" || topic == "" {
		respondMessage(c, http.StatusBadRequest, "subject and topic are required")
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		respondMessage(c, http.StatusBadRequest, "missing pdf file")
		return
	}

	upload, err := fileHeader.Open()
	if err != nil {
		a.log.Error("open upload failed", "error", err)
		respondMessage(c, http.StatusInternalServerError, "unable to read uploaded file")
		return
	}
	defer upload.Close()

	data, err := io.ReadAll(upload)
	if err != nil {
		a.log.Error("read upload failed", "error", err)
		respondMessage(c, http.StatusBadRequest, "unable to read uploaded file")
		return
	}

	if !looksLikePDF(fileHeader.Filename, data) {
		respondMessage(c, http.StatusBadRequest, "only pdf uploads are supported")
		return
	}

	input := services.UploadInput{
		Class:   class,
		Subject: subject,
		Chapter: chapter,
		Topic:   topic,
	}

	result, err := a.pipeline.Publish(c.Request.Context(), input, data)
	if err != nil {
		a.log.Error("publish failed", "topic", topic, "error", err)
		respondError(c, http.StatusInternalServerError, err)
		return
	}

	a.topicCache.Remove(topicListCacheKey)

	c.JSON(http.StatusCreated, result)
}

// loadTopics reads and resolves the catalog, caching the resolved view so
// the per-record public-URL lookups run once per cache window, not per
// render. Read failures degrade to an empty catalog.
func (a *API) loadTopics(ctx context.Context) []domain.Topic {
	if cached, ok := a.topicCache.Get(topicListCacheKey); ok {
		return cached
	}

	recs, err := a.store.ListTopics(ctx)
	if err != nil {
		a.log.Warn("list topics failed", "error", err)
		return nil
	}

	topics := make([]domain.Topic, 0, len(recs))
	for _, rec := range recs {
		topics = append(topics, a.resolver.ResolveTopic(rec))
	}

	a.topicCache.Set(topicListCacheKey, topics)
	return topics
}

// findTopic returns the newest record with the given topic name.
func (a *API) findTopic(ctx context.Context, name string) (domain.Topic, bool) {
	for _, t := range a.loadTopics(ctx) {
		if strings.EqualFold(t.Topic, name) {
			return t, true
		}
	}
	return domain.Topic{}, false
}

func (a *API) fetchNotes(ctx context.Context, url string) *domain.NotesDocument {
	if url == "" {
		return nil
	}
	if cached, ok := a.notesCache.Get(url); ok {
		return cached
	}

	notes := services.FetchJSON[domain.NotesDocument](ctx, a.fetcher, url)
	a.notesCache.Set(url, notes)
	return notes
}

func (a *API) fetchSegments(ctx context.Context, url string) []domain.NarrationSegment {
	if url == "" {
		return nil
	}
	if cached, ok := a.segsCache.Get(url); ok {
		return cached
	}

	var segments []domain.NarrationSegment
	if fetched := services.FetchJSON[[]domain.NarrationSegment](ctx, a.fetcher, url); fetched != nil {
		segments = *fetched
	}
	a.segsCache.Set(url, segments)
	return segments
}

func looksLikePDF(filename string, data []byte) bool {
	if strings.EqualFold(filepath.Ext(filename), ".pdf") {
		return true
	}
	return http.DetectContentType(data) == "application/pdf"
}

func respondError(c *gin.Context, status int, err error) {
	respondMessage(c, status, err.Error())
}

func respondMessage(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}
