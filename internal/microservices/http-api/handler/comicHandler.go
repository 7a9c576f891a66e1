package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"comicvault/internal/microservices/http-api/dto"
	"comicvault/internal/microservices/http-api/export"
	"comicvault/internal/microservices/http-api/middleware"
	"comicvault/internal/microservices/http-api/models"
	"comicvault/internal/microservices/http-api/service"
	"comicvault/internal/microservices/http-api/validation"
)

const (
	msgInvalidID      = "invalid comic id"
	msgNotFound       = "comic not found"
	msgNoFilterMatch  = "no comics match the filter"
	msgInternalError  = "internal server error"
	defaultReqTimeout = 5 * time.Second
)

var errMissingInput = errors.New("validated comic input missing from context")

type ComicHandler struct {
	svc       service.ComicService
	logger    *slog.Logger
	timeout   time.Duration
	exportDir string
	now       func() time.Time
}

func NewComicHandler(svc service.ComicService, logger *slog.Logger, timeout time.Duration, exportDir string) *ComicHandler {
	if timeout <= 0 {
		timeout = defaultReqTimeout
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ComicHandler{
		svc:       svc,
		logger:    logger,
		timeout:   timeout,
		exportDir: exportDir,
		now:       time.Now,
	}
}

// RegisterRoutes mounts the comic routes. Mutating routes go through
// writeGuard, e.g. a token check.
func (h *ComicHandler) RegisterRoutes(rg *gin.RouterGroup, writeGuard ...gin.HandlerFunc) {
	rg.GET("", h.List)
	rg.GET("/export", h.Export)
	rg.GET("/filter", h.Filter)
	rg.GET("/:id", h.Get)

	create := append(append([]gin.HandlerFunc{}, writeGuard...), middleware.ValidateComic(), h.Create)
	rg.POST("", create...)
	rg.POST("/import", append(append([]gin.HandlerFunc{}, writeGuard...), h.Import)...)
	rg.PUT("/:id", append(append([]gin.HandlerFunc{}, writeGuard...), h.Update)...)
	rg.DELETE("/:id", append(append([]gin.HandlerFunc{}, writeGuard...), h.Delete)...)
}

func (h *ComicHandler) List(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	list, err := h.svc.GetAll(ctx)
	if err != nil {
		h.internalError(c, "list comics", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"data":  dto.FromModelsToResponse(list),
		"total": len(list),
	})
}

// Filter handles GET /comics/filter. Zero matches is a 404, not an empty list.
func (h *ComicHandler) Filter(c *gin.Context) {
	filter, err := dto.ParseComicFilter(c.Request.URL.Query())
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	list, err := h.svc.Filter(ctx, filter)
	if err != nil {
		h.internalError(c, "filter comics", err)
		return
	}
	if len(list) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": msgNoFilterMatch})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"data":  dto.FromModelsToResponse(list),
		"total": len(list),
	})
}

func (h *ComicHandler) Get(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	m, err := h.svc.GetByID(ctx, id)
	if err != nil {
		h.lookupError(c, "get comic", err)
		return
	}
	c.JSON(http.StatusOK, dto.FromModelToResponse(*m))
}

// Create expects middleware.ValidateComic to have run.
func (h *ComicHandler) Create(c *gin.Context) {
	in, ok := middleware.ComicInput(c)
	if !ok {
		h.internalError(c, "create comic", errMissingInput)
		return
	}

	model := in.ToModel()
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	if err := h.svc.Create(ctx, &model); err != nil {
		h.internalError(c, "create comic", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message": "comic created",
		"comic":   dto.FromModelToResponse(model),
	})
}

// Import handles POST /comics/import. Every entry is validated before any
// write; one bad entry rejects the whole batch.
func (h *ComicHandler) Import(c *gin.Context) {
	var raw []json.RawMessage
	if err := c.ShouldBindJSON(&raw); err != nil {
		verr := validation.BodyError(err)
		msg := verr.Message
		if verr.Field == "body" {
			msg = "request body must be a JSON array of comics"
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}
	in, err := validation.DecodeBatch(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := validation.Batch(in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	comics := make([]models.Comic, 0, len(in))
	for _, item := range in {
		comics = append(comics, item.ToModel())
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	n, err := h.svc.Import(ctx, comics)
	if err != nil {
		h.logger.Error("import_partial_failure", "inserted", n, "requested", len(comics), "request_id", middleware.GetRequestID(c))
		h.internalError(c, "import comics", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message":  "comics imported",
		"inserted": n,
	})
}

// Update applies only the fields present in the body.
func (h *ComicHandler) Update(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	var in dto.UpdateComicInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validation.BodyError(err).Message})
		return
	}
	if err := validation.ComicUpdate(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	updated, err := h.svc.Update(ctx, id, in.ToUpdate())
	if err != nil {
		h.lookupError(c, "update comic", err)
		return
	}
	c.JSON(http.StatusOK, dto.FromModelToResponse(*updated))
}

// Delete echoes the removed comic back.
func (h *ComicHandler) Delete(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	deleted, err := h.svc.Delete(ctx, id)
	if err != nil {
		h.lookupError(c, "delete comic", err)
		return
	}
	c.JSON(http.StatusOK, dto.FromModelToResponse(*deleted))
}

// Export handles GET /comics/export?format=json|csv. The whole collection is
// written to a transient file which is streamed as an attachment and removed
// once the response is written.
func (h *ComicHandler) Export(c *gin.Context) {
	format, err := export.ParseFormat(c.Query("format"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	list, err := h.svc.GetAll(ctx)
	if err != nil {
		h.internalError(c, "export comics", err)
		return
	}

	path, err := h.writeExportFile(format, list)
	if err != nil {
		h.internalError(c, "write export file", err)
		return
	}
	defer func() {
		if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			h.logger.Warn("export_cleanup_failed", "path", path, "error", err.Error())
		}
	}()

	c.Header("Content-Type", format.ContentType())
	c.FileAttachment(path, export.Filename(format, h.now()))
}

func (h *ComicHandler) writeExportFile(format export.Format, list []models.Comic) (string, error) {
	dir := h.exportDir
	if dir == "" {
		dir = os.TempDir()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	f, err := os.CreateTemp(dir, "comics-export-*."+format.Extension())
	if err != nil {
		return "", err
	}
	if err := export.Write(f, format, list); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", err
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", err
	}
	return f.Name(), nil
}

// pathID rejects ids that do not have the identity-token shape before any
// store access. Stored ids are lowercase hex.
func (h *ComicHandler) pathID(c *gin.Context) (string, bool) {
	id := strings.ToLower(c.Param("id"))
	if !models.IsValidID(id) {
		c.JSON(http.StatusBadRequest, gin.H{"error": msgInvalidID})
		return "", false
	}
	return id, true
}

func (h *ComicHandler) lookupError(c *gin.Context, op string, err error) {
	if errors.Is(err, service.ErrComicNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": msgNotFound})
		return
	}
	h.internalError(c, op, err)
}

// internalError logs the real cause and returns a generic 500.
func (h *ComicHandler) internalError(c *gin.Context, op string, err error) {
	h.logger.Error("request_failed",
		"op", op,
		"error", err.Error(),
		"request_id", middleware.GetRequestID(c),
	)
	c.JSON(http.StatusInternalServerError, gin.H{"error": msgInternalError})
}
