package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/secondbrain-labs/secondbrain/app/database"
	"github.com/secondbrain-labs/secondbrain/app/events"
	"github.com/secondbrain-labs/secondbrain/app/pipeline"
	"github.com/secondbrain-labs/secondbrain/app/search"
)

// previewLength caps the flattened text returned by the page listing.
const previewLength = 200

func NewHandler(pageRepo database.PageRepository, poller PipelineRunnerInterface,
	fallback FallbackExtractorInterface, extractor *search.Extractor,
	searcher *search.Searcher, chat *search.Chat, mailer MailerInterface) *Handler {
	return &Handler{
		pageRepo:  pageRepo,
		poller:    poller,
		fallback:  fallback,
		extractor: extractor,
		searcher:  searcher,
		chat:      chat,
		mailer:    mailer,
	}
}

type savePageRequest struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// SavePage runs the extraction pipeline for the submitted URL and persists
// the result. A row is written even when extraction fails, so the bookmark
// itself is never lost.
func (h *Handler) SavePage(c *gin.Context) {
	var req savePageRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Title == "" || req.URL == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "Missing required fields: title and url",
			"status":  "error",
		})
		return
	}

	runID, payload := h.runExtraction(c.Request.Context(), req.URL)

	page, err := h.pageRepo.CreatePage(req.Title, req.URL, runID, payload)
	if err != nil {
		slog.Error("Database error", "operation", "create_page", "url", req.URL, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": fmt.Sprintf("Error saving page: %s", err),
			"status":  "error",
		})
		return
	}

	slog.Info("Saved page", "id", page.ID, "title", page.Title, "run_id", page.ExternalRunID)

	c.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf("Successfully saved page: %s", req.Title),
		"status":  "success",
		"id":      page.ID,
		"run_id":  page.ExternalRunID,
	})
}

// runExtraction drives the pipeline and shapes the payload to store. Failures
// produce an error payload, enriched with locally extracted content when the
// page itself is still reachable.
func (h *Handler) runExtraction(ctx context.Context, pageURL string) (string, []byte) {
	result, err := h.poller.Run(ctx, pageURL)

	runID := ""
	if result != nil {
		runID = result.RunID
	}
	if runID == "" {
		runID = "local-" + uuid.NewString()
	}

	if err == nil && result != nil && result.State == pipeline.StateDone {
		if h.extractor.RunRaw(result.Payload) != "" {
			return runID, result.Payload
		}
	}

	failure := map[string]string{}
	switch {
	case err != nil:
		slog.Error("Pipeline start failed", "url", pageURL, "error", err)
		failure["error"] = err.Error()
	case result.State == pipeline.StateDone:
		failure["error"] = "extraction returned no usable content"
	case result.State == pipeline.StateUnknown:
		failure["error"] = "extraction did not complete within the polling budget"
	default:
		failure["error"] = fmt.Sprintf("extraction finished in state %s", result.State)
	}

	if text, ferr := h.fallback.Run(ctx, pageURL); ferr == nil && text != "" {
		failure["content"] = text
	} else if ferr != nil {
		slog.Warn("Local extraction fallback failed", "url", pageURL, "error", ferr)
	}

	payload, _ := json.Marshal(failure)
	return runID, payload
}

func (h *Handler) ListPages(c *gin.Context) {
	pages, err := h.pageRepo.GetAllPages()
	if err != nil {
		slog.Error("Database error", "operation", "list_pages", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load pages"})
		return
	}

	items := make([]map[string]interface{}, 0, len(pages))
	for _, page := range pages {
		preview := h.extractor.RunRaw(page.ExtractionPayload)
		if len(preview) > previewLength {
			preview = preview[:previewLength]
		}
		items = append(items, map[string]interface{}{
			"id":              page.ID,
			"title":           page.Title,
			"url":             page.URL,
			"saved_at":        page.SavedAt.Format("2006-01-02 15:04:05"),
			"content_preview": preview,
			"has_content":     preview != "",
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"count": len(items),
		"pages": items,
	})
}

func (h *Handler) GetPageByID(c *gin.Context) {
	page, ok := h.lookupPage(c)
	if !ok {
		return
	}

	var payload json.RawMessage
	if len(page.ExtractionPayload) > 0 {
		payload = json.RawMessage(page.ExtractionPayload)
	}

	c.JSON(http.StatusOK, gin.H{
		"id":                 page.ID,
		"title":              page.Title,
		"url":                page.URL,
		"saved_at":           page.SavedAt.Format("2006-01-02 15:04:05"),
		"external_run_id":    page.ExternalRunID,
		"content":            h.extractor.RunRaw(page.ExtractionPayload),
		"extraction_payload": payload,
	})
}

func (h *Handler) GetPageDatesByID(c *gin.Context) {
	page, ok := h.lookupPage(c)
	if !ok {
		return
	}

	text := h.extractor.RunRaw(page.ExtractionPayload)
	dates := events.ExtractDates(text)
	if dates == nil {
		dates = []events.ExtractedDate{}
	}

	c.JSON(http.StatusOK, gin.H{
		"page_id": page.ID,
		"count":   len(dates),
		"dates":   dates,
	})
}

// lookupPage resolves the :id route parameter to a stored page, writing the
// error response itself when resolution fails.
func (h *Handler) lookupPage(c *gin.Context) (*database.SavedPage, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid page id"})
		return nil, false
	}

	page, err := h.pageRepo.GetPage(id)
	if err != nil {
		slog.Error("Database error", "operation", "get_page", "id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load page"})
		return nil, false
	}
	if page == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Page not found"})
		return nil, false
	}

	return page, true
}

func (h *Handler) Search(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing query parameter 'q'"})
		return
	}

	resp, err := h.searcher.Basic(query)
	if err != nil {
		slog.Error("Search failed", "query", query, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Search failed"})
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *Handler) SearchAdvanced(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing query parameter 'q'"})
		return
	}

	useLLM, _ := strconv.ParseBool(c.DefaultQuery("llm", "false"))

	resp, err := h.searcher.Advanced(c.Request.Context(), query, useLLM)
	if err != nil {
		slog.Error("Advanced search failed", "query", query, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Search failed"})
		return
	}

	c.JSON(http.StatusOK, resp)
}

type chatRequest struct {
	Query string `json:"query"`
}

func (h *Handler) Chat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required field: query"})
		return
	}

	pages, err := h.pageRepo.GetAllPages()
	if err != nil {
		slog.Error("Database error", "operation", "chat_load_pages", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load pages"})
		return
	}

	answer := h.chat.Run(c.Request.Context(), req.Query, pages)

	c.JSON(http.StatusOK, gin.H{"response": answer})
}

type createEventRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Recipient   string `json:"recipient"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
}

// CreateEvent sends an email invitation for an event. Calendar integration is
// out of scope, email is the only delivery channel.
func (h *Handler) CreateEvent(c *gin.Context) {
	var req createEventRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.StartTime == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required field: start_time"})
		return
	}

	startTime, err := time.Parse(time.RFC3339, req.StartTime)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid start_time, expected RFC3339"})
		return
	}

	endTime := startTime.Add(time.Hour)
	if req.EndTime != "" {
		endTime, err = time.Parse(time.RFC3339, req.EndTime)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid end_time, expected RFC3339"})
			return
		}
	}

	recipient, err := h.mailer.SendInvitation(events.Invitation{
		Title:       req.Title,
		Description: req.Description,
		Recipient:   req.Recipient,
		StartTime:   startTime,
		EndTime:     endTime,
	})
	if err != nil {
		if errors.Is(err, events.ErrNotConfigured) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"success": false, "error": err.Error()})
			return
		}
		slog.Error("Invitation delivery failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": fmt.Sprintf("Invitation sent to %s", recipient),
	})
}

func (h *Handler) GetHealth(c *gin.Context) {
	health := map[string]interface{}{
		"timestamp": time.Now().In(time.Local).Format(time.RFC3339),
	}

	if pageCount, err := h.pageRepo.GetPageCount(); err == nil {
		health["pages"] = pageCount
	}

	c.JSON(http.StatusOK, health)
}
