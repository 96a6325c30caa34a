package server

import (
	"errors"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/tordrt/crudgen"
	"github.com/tordrt/crudgen/internal/responses"
	"github.com/tordrt/crudgen/internal/schema"
)

// Handler serves the generation endpoints. Each request runs its own
// pipeline over a copy of the base options.
type Handler struct {
	opts   crudgen.Options
	roots  []string
	logger *slog.Logger
}

// NewHandler creates a handler over the base options and the output roots
// generate may write under (any root when empty)
func NewHandler(opts crudgen.Options, allowedRoots []string) *Handler {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	roots := make([]string, 0, len(allowedRoots))
	for _, root := range allowedRoots {
		if abs, err := filepath.Abs(root); err == nil {
			roots = append(roots, abs)
		}
	}
	return &Handler{opts: opts, roots: roots, logger: logger}
}

// rootAllowed reports whether outputRoot lies inside one of the allowed roots
func (h *Handler) rootAllowed(outputRoot string) bool {
	if len(h.roots) == 0 {
		return true
	}
	target, err := filepath.Abs(outputRoot)
	if err != nil {
		return false
	}
	for _, root := range h.roots {
		rel, err := filepath.Rel(root, target)
		if err != nil {
			continue
		}
		if rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			return true
		}
	}
	return false
}

func (h *Handler) options() *crudgen.Options {
	opts := h.opts
	return &opts
}

// Health handles GET /
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

type previewData struct {
	Table     string            `json:"table"`
	Plural    string            `json:"plural"`
	Artifacts []schema.Artifact `json:"artifacts"`
	Fragments []schema.Artifact `json:"fragments,omitempty"`
}

// Preview handles POST /api/v1/preview
func (h *Handler) Preview(c *gin.Context) {
	var req crudgen.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.Fail(c, http.StatusBadRequest, err, "Invalid request body", nil)
		return
	}

	result, err := crudgen.Render(req, h.options())
	if err != nil {
		h.fail(c, err, nil)
		return
	}

	responses.Success(c, http.StatusOK, previewData{
		Table:     result.Table.Name,
		Plural:    result.Table.Plural,
		Artifacts: result.Artifacts,
		Fragments: result.Fragments,
	}, "Artifacts rendered successfully")
}

type generateData struct {
	Written []string `json:"written"`
}

// Generate handles POST /api/v1/generate
func (h *Handler) Generate(c *gin.Context) {
	var req crudgen.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.Fail(c, http.StatusBadRequest, err, "Invalid request body", nil)
		return
	}

	if root := strings.TrimSpace(req.OutputRoot); root != "" && !h.rootAllowed(root) {
		h.logger.Warn("rejected output root", "output_root", root)
		responses.Fail(c, http.StatusForbidden, nil, "Output root not allowed", nil)
		return
	}

	result, err := crudgen.Generate(req, h.options())
	if err != nil {
		var data any
		if result != nil {
			data = generateData{Written: result.Written}
		}
		h.fail(c, err, data)
		return
	}

	h.logger.Info("generated scaffolding",
		"table", result.Table.Name,
		"output_root", req.OutputRoot,
		"files", len(result.Written))
	responses.Success(c, http.StatusOK, generateData{Written: result.Written}, "Files generated successfully")
}

func (h *Handler) fail(c *gin.Context, err error, data any) {
	if errors.Is(err, crudgen.ErrInvalidRequest) {
		responses.Fail(c, http.StatusBadRequest, err, "Invalid request", data)
		return
	}
	h.logger.Error("generation failed", "error", err)
	responses.Fail(c, http.StatusInternalServerError, err, "Failed to generate files", data)
}
