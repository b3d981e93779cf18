package documents

import (
	"errors"
	"io"
	"mime"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"querium-backend/internal/extract"
	"querium-backend/internal/shared/server/middleware"
	"querium-backend/internal/shared/server/respond"
)

const defaultMaxUploadSize = 10 << 20 // 10MB

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc            *Service
	MaxUploadBytes int64
}

// NewHandler constructs a Handler. maxUploadBytes <= 0 uses 10MB.
func NewHandler(svc *Service, maxUploadBytes int64) *Handler {
	if maxUploadBytes <= 0 {
		maxUploadBytes = defaultMaxUploadSize
	}
	return &Handler{Svc: svc, MaxUploadBytes: maxUploadBytes}
}

// RegisterRoutes attaches document routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/documents/upload", h.upload)
	rg.GET("/documents", h.list)
	rg.GET("/documents/:id", h.get)
	rg.GET("/documents/:id/file", h.download)
	rg.DELETE("/documents/:id", h.delete)
	rg.GET("/search", h.search)
}

func (h *Handler) upload(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.MaxUploadBytes)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) || strings.Contains(err.Error(), "request body too large") {
			respond.Error(c, http.StatusRequestEntityTooLarge, "file_too_large", "file exceeds upload limit", gin.H{"limitBytes": h.MaxUploadBytes})
			return
		}
		respond.Error(c, http.StatusBadRequest, "validation_error", "file is required", nil)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read file", nil)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read file", nil)
		return
	}

	contentType := strings.TrimSpace(fileHeader.Header.Get("Content-Type"))
	if contentType == "" {
		contentType = mime.TypeByExtension(strings.ToLower(filepath.Ext(fileHeader.Filename)))
	}

	doc, err := h.Svc.Upload(c.Request.Context(), fileHeader.Filename, contentType, data)
	if err != nil {
		var unsupported *extract.UnsupportedTypeError
		var extractionErr *extract.ExtractionError
		switch {
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		case errors.As(err, &unsupported):
			respond.Error(c, http.StatusBadRequest, "unsupported_type", "Unsupported file type: "+unsupported.ContentType, gin.H{"contentType": unsupported.ContentType})
		case errors.As(err, &extractionErr):
			respond.Error(c, http.StatusUnprocessableEntity, "extraction_failed", "Error processing document", err.Error())
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "Error processing document", err.Error())
		}
		return
	}

	c.Set(middleware.DocumentIDKey, doc.ID)
	respond.JSON(c, http.StatusCreated, toResponse(doc.Summary()))
}

func (h *Handler) list(c *gin.Context) {
	docs := h.Svc.List(c.Request.Context())

	resp := make([]DocumentResponse, 0, len(docs))
	for _, doc := range docs {
		resp = append(resp, toResponse(doc))
	}
	respond.OK(c, resp)
}

func (h *Handler) get(c *gin.Context) {
	id := c.Param("id")
	c.Set(middleware.DocumentIDKey, id)

	doc, err := h.Svc.Get(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "document not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch document", err.Error())
		}
		return
	}

	respond.OK(c, DocumentDetailResponse{
		DocumentResponse: toResponse(doc.Summary()),
		Content:          doc.Content,
	})
}

func (h *Handler) download(c *gin.Context) {
	id := c.Param("id")
	c.Set(middleware.DocumentIDKey, id)

	doc, rc, err := h.Svc.Original(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "document not found", nil)
		case errors.Is(err, ErrNotArchived):
			respond.Error(c, http.StatusNotFound, "not_archived", "original file is not available", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to open document", err.Error())
		}
		return
	}
	defer rc.Close()

	disposition := mime.FormatMediaType("attachment", map[string]string{"filename": doc.Metadata.FileName})
	c.DataFromReader(http.StatusOK, doc.Metadata.Size, doc.Metadata.ContentType, rc, map[string]string{
		"Content-Disposition": disposition,
	})
}

func (h *Handler) delete(c *gin.Context) {
	id := c.Param("id")
	c.Set(middleware.DocumentIDKey, id)

	h.Svc.Delete(c.Request.Context(), id)
	respond.Message(c, "Document deleted successfully")
}

func (h *Handler) search(c *gin.Context) {
	opts := SearchOptions{ScopeID: strings.TrimSpace(c.Query("document_id"))}
	if v := c.Query("limit"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			respond.Error(c, http.StatusBadRequest, "validation_error", "limit must be an integer", nil)
			return
		}
		opts.Limit = parsed
	}
	if opts.ScopeID != "" {
		c.Set(middleware.DocumentIDKey, opts.ScopeID)
	}

	result := h.Svc.Search(c.Request.Context(), c.Query("q"), opts)
	respond.OK(c, toSearchResponse(result.Matches))
}
