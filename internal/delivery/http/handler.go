package http

import (
	"bytes"
	"errors"
	"fmt"
	"maps"
	"net/http"
	"path/filepath"
	"slices"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ecoyoung/packform/internal/domain"
	"github.com/ecoyoung/packform/internal/infrastructure/spreadsheet"
	"github.com/ecoyoung/packform/internal/logger"
	"github.com/ecoyoung/packform/internal/taxonomy"
	"github.com/ecoyoung/packform/internal/usecase"
)

const (
	// ServiceName is reported by the health check
	ServiceName = "packform"
	// Version is reported by the health check
	Version = "1.0.0"

	// BatchIDHeader carries the batch id of a labeled workbook
	BatchIDHeader = "X-Batch-Id"

	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	yamlContentType = "application/yaml; charset=utf-8"

	defaultMaxUploadBytes = 20 << 20
)

// HandlerConfig holds request limits for the handlers
type HandlerConfig struct {
	MaxUploadBytes int64
	Sheet          string // default worksheet of uploaded workbooks, "" = first
}

// Handler holds dependencies for HTTP handlers
type Handler struct {
	service   *usecase.LabelingService
	tax       *taxonomy.Taxonomy
	log       logger.Logger
	maxUpload int64
	sheet     string
}

// NewHandler creates a new HTTP handler. A nil service makes the labeling
// endpoints answer 503; a nil taxonomy means the built-in one.
func NewHandler(service *usecase.LabelingService, tax *taxonomy.Taxonomy, log logger.Logger, cfg HandlerConfig) *Handler {
	if tax == nil {
		tax = taxonomy.Default()
	}
	if log == nil {
		log = logger.NewNop()
	}
	maxUpload := cfg.MaxUploadBytes
	if maxUpload <= 0 {
		maxUpload = defaultMaxUploadBytes
	}
	return &Handler{
		service:   service,
		tax:       tax,
		log:       log,
		maxUpload: maxUpload,
		sheet:     cfg.Sheet,
	}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": ServiceName,
		"version": Version,
	})
}

// ListCategories returns every canonical category with its table sizes
func (h *Handler) ListCategories(c *gin.Context) {
	infos := make([]CategoryInfo, 0, len(domain.Categories))
	for _, cat := range domain.Categories {
		infos = append(infos, CategoryInfo{
			Name:        cat,
			Description: cat.Description(),
			Synthetic:   cat.Synthetic(),
			Rules:       h.tax.RuleCount(cat),
			Aliases:     h.tax.AliasCount(cat),
		})
	}
	c.JSON(http.StatusOK, gin.H{"categories": infos})
}

// ExportTaxonomy returns the effective taxonomy as YAML
func (h *Handler) ExportTaxonomy(c *gin.Context) {
	var buf bytes.Buffer
	if err := taxonomy.Export(&buf, h.tax); err != nil {
		h.respondError(c, err)
		return
	}
	c.Data(http.StatusOK, yamlContentType, buf.Bytes())
}

// Standardize maps one raw label onto the canonical vocabulary
func (h *Handler) Standardize(c *gin.Context) {
	if !h.ready(c) {
		return
	}

	var req StandardizeRequest
	if !h.bindJSON(c, &req) {
		return
	}

	label := h.service.Standardize(req.Label)
	c.JSON(http.StatusOK, StandardizeResponse{
		Input: req.Label,
		Label: label.String(),
		Kind:  label.Kind().String(),
	})
}

// Classify detects pack form signals in one text and reduces them to a category
func (h *Handler) Classify(c *gin.Context) {
	if !h.ready(c) {
		return
	}

	var req ClassifyRequest
	if !h.bindJSON(c, &req) {
		return
	}

	inf := h.service.Infer(c.Request.Context(), req.Text)
	resp := ClassifyResponse{
		Text:       req.Text,
		Categories: inf.Detection.Categories,
		Evidence:   inf.Detection.Evidence,
		Category:   inf.Category,
		Confidence: inf.Confidence,
	}
	if resp.Categories == nil {
		resp.Categories = []domain.Category{}
	}
	if resp.Evidence == nil {
		resp.Evidence = []string{}
	}
	c.JSON(http.StatusOK, resp)
}

// LabelRows labels a JSON table and returns it with the provenance columns and the report
func (h *Handler) LabelRows(c *gin.Context) {
	if !h.ready(c) {
		return
	}

	var req LabelRequest
	if !h.bindJSON(c, &req) {
		return
	}

	out, batch, err := h.service.LabelDataset(
		c.Request.Context(),
		datasetFromRows(req.Columns, req.Rows),
		domain.Fields{Label: req.LabelField, Text: req.TextField},
	)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, LabelResponse{
		Columns: out.Columns,
		Rows:    rowsToMaps(out),
		Report:  h.service.Report(batch),
	})
}

// LabelWorkbook labels an uploaded .xlsx file and returns the labeled workbook
// with a report sheet
func (h *Handler) LabelWorkbook(c *gin.Context) {
	if !h.ready(c) {
		return
	}

	h.limitBody(c)
	header, err := c.FormFile("file")
	if err != nil {
		if isTooLarge(err) {
			h.respondError(c, err)
			return
		}
		h.respondError(c, fmt.Errorf("%w: multipart field 'file' is required", domain.ErrInvalidRequest))
		return
	}
	if !strings.EqualFold(filepath.Ext(header.Filename), ".xlsx") {
		h.respondError(c, fmt.Errorf("%w: %s is not an .xlsx workbook", domain.ErrUnsupportedFile, header.Filename))
		return
	}

	file, err := header.Open()
	if err != nil {
		h.respondError(c, err)
		return
	}
	defer file.Close()

	ds, sheet, err := spreadsheet.Read(file, c.DefaultPostForm("sheet", h.sheet))
	if err != nil {
		h.respondError(c, err)
		return
	}

	out, batch, err := h.service.LabelDataset(c.Request.Context(), ds, domain.Fields{
		Label: c.PostForm("label_field"),
		Text:  c.PostForm("text_field"),
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	report := h.service.Report(batch)
	var buf bytes.Buffer
	if err := spreadsheet.Write(&buf, sheet, out, &report); err != nil {
		h.respondError(c, err)
		return
	}

	c.Header(BatchIDHeader, batch.ID)
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, labeledFilename(header.Filename)))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

func (h *Handler) ready(c *gin.Context) bool {
	if h.service != nil {
		return true
	}
	c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "labeling service not configured"})
	return false
}

func (h *Handler) limitBody(c *gin.Context) {
	if c.Request.Body != nil {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUpload)
	}
}

func (h *Handler) bindJSON(c *gin.Context, dst any) bool {
	h.limitBody(c)
	if err := c.ShouldBindJSON(dst); err != nil {
		if isTooLarge(err) {
			h.respondError(c, err)
			return false
		}
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body", Details: err.Error()})
		return false
	}
	return true
}

// respondError maps domain errors onto status codes
func (h *Handler) respondError(c *gin.Context, err error) {
	switch {
	case isTooLarge(err):
		c.JSON(http.StatusRequestEntityTooLarge, ErrorResponse{
			Error: fmt.Sprintf("request body exceeds %d bytes", h.maxUpload),
		})
	case errors.Is(err, domain.ErrMissingColumns),
		errors.Is(err, domain.ErrInvalidRequest),
		errors.Is(err, domain.ErrEmptyDataset),
		errors.Is(err, domain.ErrUnsupportedFile):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	default:
		_ = c.Error(err)
		h.log.Error("request failed", logger.String("path", c.Request.URL.Path), logger.Err(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
	}
}

func isTooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	return errors.As(err, &maxErr)
}

// datasetFromRows lays JSON objects out as a table. Keys absent from a row become nil cells.
func datasetFromRows(columns []string, rows []map[string]any) *domain.Dataset {
	if len(columns) == 0 {
		seen := make(map[string]struct{})
		for _, row := range rows {
			for key := range row {
				seen[key] = struct{}{}
			}
		}
		columns = slices.Sorted(maps.Keys(seen))
	}

	ds := &domain.Dataset{Columns: columns, Rows: make([][]any, len(rows))}
	for i, row := range rows {
		cells := make([]any, len(columns))
		for j, col := range columns {
			cells[j] = row[col]
		}
		ds.Rows[i] = cells
	}
	return ds
}

func rowsToMaps(ds *domain.Dataset) []map[string]any {
	rows := make([]map[string]any, len(ds.Rows))
	for i := range ds.Rows {
		row := make(map[string]any, len(ds.Columns))
		for j, col := range ds.Columns {
			row[col] = ds.Cell(i, j)
		}
		rows[i] = row
	}
	return rows
}

func labeledFilename(name string) string {
	base := filepath.Base(name)
	return strings.TrimSuffix(base, filepath.Ext(base)) + "_labeled.xlsx"
}
