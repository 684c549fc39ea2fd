package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/codetone-labs/codetone-api/internal/analyzer"
	"github.com/codetone-labs/codetone-api/internal/api/middleware"
	"github.com/codetone-labs/codetone-api/internal/config"
	"github.com/codetone-labs/codetone-api/internal/logger"
	"github.com/codetone-labs/codetone-api/internal/metrics"
	"github.com/codetone-labs/codetone-api/internal/midi"
	"github.com/codetone-labs/codetone-api/internal/models"
	"github.com/codetone-labs/codetone-api/internal/sonifier"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Global Sentry metrics instance; spans are dropped when Sentry is off.
var sentryMetrics = metrics.NewSentryMetrics()

type SonifyHandler struct {
	cfg *config.Config
	db  *gorm.DB // nil when history storage is disabled
	cw  *metrics.Client
}

func NewSonifyHandler(cfg *config.Config, db *gorm.DB, cw *metrics.Client) *SonifyHandler {
	return &SonifyHandler{cfg: cfg, db: db, cw: cw}
}

type AnalyzeRequest struct {
	Source   string `json:"source" binding:"required"`
	Language string `json:"language"`
}

type SonifyRequest struct {
	Source   string `json:"source" binding:"required"`
	Language string `json:"language"`
	Style    string `json:"style"`
}

type SonifyDiffRequest struct {
	Diff  string `json:"diff" binding:"required"`
	Style string `json:"style"`
}

type SonifyVersionsRequest struct {
	OldSource string `json:"old_source" binding:"required"`
	NewSource string `json:"new_source" binding:"required"`
	Style     string `json:"style"`
}

type SonifyResponse struct {
	Composition models.Composition  `json:"composition"`
	Analysis    models.CodeAnalysis `json:"analysis"`
}

type DiffResponse struct {
	Composition models.Composition `json:"composition"`
	Stats       models.DiffStats   `json:"stats"`
	Summary     string             `json:"summary"`
}

// Analyze runs lexical analysis without any music mapping.
func (h *SonifyHandler) Analyze(c *gin.Context) {
	var req AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !h.checkSourceSize(c, len(req.Source)) {
		return
	}

	analysis := analyzer.Analyze(req.Source, req.Language)
	c.JSON(http.StatusOK, analysis)
}

// Sonify runs the full pipeline on one source text and returns the
// composition plus the analysis it was derived from.
func (h *SonifyHandler) Sonify(c *gin.Context) {
	var req SonifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !h.checkSourceSize(c, len(req.Source)) {
		return
	}

	start := time.Now()
	style := h.styleName(req.Style)

	analysis := analyzer.Analyze(req.Source, req.Language)
	comp := sonifier.SonifyAnalysis(req.Source, analysis, style)

	h.recordRun(c, "code", style, comp, len(req.Source), time.Since(start))
	c.JSON(http.StatusOK, SonifyResponse{Composition: comp, Analysis: analysis})
}

// SonifyDiff converts a unified diff into a composition.
func (h *SonifyHandler) SonifyDiff(c *gin.Context) {
	var req SonifyDiffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !h.checkSourceSize(c, len(req.Diff)) {
		return
	}

	start := time.Now()
	style := h.styleName(req.Style)

	comp, stats, summary := sonifier.SonifyDiffText(req.Diff, style)

	h.recordRun(c, "diff", style, comp, len(req.Diff), time.Since(start))
	c.JSON(http.StatusOK, DiffResponse{Composition: comp, Stats: stats, Summary: summary})
}

// SonifyVersions sonifies the change between two versions of a file.
func (h *SonifyHandler) SonifyVersions(c *gin.Context) {
	var req SonifyVersionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !h.checkSourceSize(c, len(req.OldSource)+len(req.NewSource)) {
		return
	}

	start := time.Now()
	style := h.styleName(req.Style)

	comp, stats, summary := sonifier.SonifyVersionPair(req.OldSource, req.NewSource, style)

	h.recordRun(c, "versions", style, comp, len(req.OldSource)+len(req.NewSource), time.Since(start))
	c.JSON(http.StatusOK, DiffResponse{Composition: comp, Stats: stats, Summary: summary})
}

// MIDI runs the pipeline and returns a Standard MIDI File. With
// ?format=base64 the bytes come wrapped in JSON for browser clients.
func (h *SonifyHandler) MIDI(c *gin.Context) {
	var req SonifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !h.checkSourceSize(c, len(req.Source)) {
		return
	}

	start := time.Now()
	style := h.styleName(req.Style)

	comp := sonifier.SonifyCode(req.Source, req.Language, style)

	encodeStart := time.Now()
	data := midi.Encode(comp)
	sentryMetrics.RecordMIDIEncoding(c.Request.Context(), len(comp.Tracks), len(data), time.Since(encodeStart))
	if h.cw != nil {
		h.cw.RecordMIDIEncoding(len(data), time.Since(encodeStart))
	}

	h.recordRun(c, "code", style, comp, len(req.Source), time.Since(start))

	if c.Query("format") == "base64" {
		c.JSON(http.StatusOK, gin.H{
			"midi_base64": midi.EncodeToBase64(comp),
			"title":       comp.Title,
			"tempo":       comp.Tempo,
			"track_count": len(comp.Tracks),
		})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="composition.mid"`)
	c.Data(http.StatusOK, "audio/midi", data)
}

// Styles lists the available style presets.
func (h *SonifyHandler) Styles(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"styles":  sonifier.StyleNames(),
		"default": h.styleName(""),
	})
}

func (h *SonifyHandler) styleName(requested string) string {
	if requested != "" {
		return requested
	}
	if h.cfg != nil && h.cfg.DefaultStyle != "" {
		return h.cfg.DefaultStyle
	}
	return sonifier.DefaultStyleName
}

func (h *SonifyHandler) checkSourceSize(c *gin.Context, size int) bool {
	limit := 0
	if h.cfg != nil {
		limit = h.cfg.MaxSourceBytes
	}
	if limit > 0 && size > limit {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{
			"error": fmt.Sprintf("source exceeds the %d byte limit", limit),
		})
		return false
	}
	return true
}

// recordRun emits metrics and, when storage is enabled, persists a history
// row. Persistence failures are logged but never fail the request.
func (h *SonifyHandler) recordRun(c *gin.Context, kind, style string, comp models.Composition, sourceBytes int, duration time.Duration) {
	noteCount := comp.NoteCount()

	logger.LogSonification(c, style, sourceBytes, noteCount, duration, logger.Fields{"kind": kind})

	sentryMetrics.RecordSonification(c.Request.Context(), style, sourceBytes, noteCount, comp.Metadata.Complexity)
	if h.cw != nil {
		h.cw.RecordSonification(style, sourceBytes, noteCount, comp.Metadata.Complexity)
	}

	if h.db == nil {
		return
	}

	userID, _ := middleware.GetUserID(c)
	record := models.SonificationRecord{
		RequestID:   c.GetString("request_id"),
		UserID:      userID,
		Kind:        kind,
		Style:       style,
		Language:    comp.Metadata.SourceLanguage,
		ContentHash: comp.Metadata.ContentHash,
		SourceBytes: sourceBytes,
		Complexity:  comp.Metadata.Complexity,
		Tempo:       comp.Tempo,
		NoteCount:   noteCount,
		Title:       comp.Title,
	}
	if err := h.db.Create(&record).Error; err != nil {
		logger.Error("Failed to persist sonification record", err, logger.WithContext(c))
	}
}
