package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/yourusername/promemo/ai"
	"github.com/yourusername/promemo/config"
	"github.com/yourusername/promemo/memo"
	"github.com/yourusername/promemo/models"
	"github.com/yourusername/promemo/pdf"
	"github.com/yourusername/promemo/store"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type MemoHandler struct {
	store    *store.RecordStore
	repo     *store.MemoRepository
	builder  *memo.Builder
	refiner  ai.RefinerInterface
	renderer *pdf.Renderer
	logger   *zap.Logger
}

func NewMemoHandler(db *gorm.DB, cfg *config.Config, logger *zap.Logger) *MemoHandler {
	recordStore := store.NewRecordStore(db)
	repo := store.NewMemoRepository(recordStore)
	builder := memo.NewBuilder()
	builder.Exists = repo.Exists

	return &MemoHandler{
		store:    recordStore,
		repo:     repo,
		builder:  builder,
		refiner:  ai.NewAnthropicRefiner(cfg.AnthropicAPIKey, cfg.AnthropicModel),
		renderer: pdf.NewRenderer(),
		logger:   logger,
	}
}

type LineItemRequest struct {
	ID          string  `json:"id"`
	Description string  `json:"description"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unitPrice"`
}

type CreateMemoRequest struct {
	Customer      models.Customer   `json:"customer" binding:"required"`
	Items         []LineItemRequest `json:"items" binding:"required,min=1"`
	PaymentMethod string            `json:"paymentMethod"`
	Signature     string            `json:"signature"`
}

func (req CreateMemoRequest) toDraft() memo.Draft {
	items := make([]models.LineItem, 0, len(req.Items))
	for _, item := range req.Items {
		id := item.ID
		if id == "" {
			id = uuid.NewString()
		}
		items = append(items, models.LineItem{
			ID:          id,
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
		})
	}

	paymentMethod := req.PaymentMethod
	if paymentMethod == "" {
		paymentMethod = "Cash"
	}

	return memo.Draft{
		Customer:      req.Customer,
		Items:         items,
		PaymentMethod: paymentMethod,
		Signature:     req.Signature,
	}
}

// buildFromRequest binds and validates the draft, returning the finalized
// memo or writing the error response itself.
func (h *MemoHandler) buildFromRequest(c *gin.Context) *models.CashMemo {
	var req CreateMemoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return nil
	}

	profile := h.store.ReadProfile()
	if profile == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Company profile is not set up"})
		return nil
	}

	built, err := h.builder.Build(req.toDraft(), *profile)
	if err != nil {
		switch {
		case errors.Is(err, memo.ErrEmptyMemo):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Please add at least one valid item"})
		case errors.Is(err, memo.ErrNoCustomer):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Customer name is required"})
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		}
		return nil
	}
	return built
}

// PreviewMemo builds a memo from the draft without persisting it.
func (h *MemoHandler) PreviewMemo(c *gin.Context) {
	built := h.buildFromRequest(c)
	if built == nil {
		return
	}
	c.JSON(http.StatusOK, built)
}

// CreateMemo builds a memo from the draft and saves it to history.
func (h *MemoHandler) CreateMemo(c *gin.Context) {
	built := h.buildFromRequest(c)
	if built == nil {
		return
	}

	if err := h.repo.Save(*built); err != nil {
		h.logger.Error("failed to save memo", zap.String("memo_id", built.ID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save memo"})
		return
	}

	h.logger.Info("memo saved", zap.String("memo_id", built.ID), zap.Float64("grand_total", built.GrandTotal))
	c.JSON(http.StatusCreated, built)
}

// ListMemos returns the full history, newest first.
func (h *MemoHandler) ListMemos(c *gin.Context) {
	c.JSON(http.StatusOK, h.repo.List())
}

// GetMemo returns a single memo by id.
func (h *MemoHandler) GetMemo(c *gin.Context) {
	m, err := h.repo.Get(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Memo not found"})
		return
	}

	c.JSON(http.StatusOK, m)
}

// DeleteMemo permanently removes a memo. Deleting an unknown id is a no-op.
func (h *MemoHandler) DeleteMemo(c *gin.Context) {
	if err := h.repo.Delete(c.Param("id")); err != nil {
		h.logger.Error("failed to delete memo", zap.String("memo_id", c.Param("id")), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete memo"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Memo deleted"})
}

// Dashboard returns the aggregate summary over the full history.
func (h *MemoHandler) Dashboard(c *gin.Context) {
	c.JSON(http.StatusOK, h.repo.Summarize())
}

type RefineRequest struct {
	Text string `json:"text" binding:"required"`
}

// RefineDescription rewrites a brief item name into a professional line-item
// description. Failures fall back to the original text; the caller only sees
// a refined=false flag, never an error.
func (h *MemoHandler) RefineDescription(c *gin.Context) {
	var req RefineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	refined, err := h.refiner.Refine(c.Request.Context(), req.Text)
	if err != nil {
		h.logger.Warn("description refinement failed", zap.Error(err))
		c.JSON(http.StatusOK, gin.H{"description": req.Text, "refined": false})
		return
	}

	c.JSON(http.StatusOK, gin.H{"description": refined, "refined": true})
}

// DownloadPDF renders a memo as an A4 PDF and serves it as an attachment.
func (h *MemoHandler) DownloadPDF(c *gin.Context) {
	m, err := h.repo.Get(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Memo not found"})
		return
	}

	profile := h.store.ReadProfile()
	if profile == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Company profile is not set up"})
		return
	}

	data, err := h.renderer.Render(*m, *profile)
	if err != nil {
		h.logger.Error("pdf export failed", zap.String("memo_id", m.ID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate PDF. Try printing the memo instead."})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+pdf.Filename(*m)+`"`)
	c.Header("Content-Length", strconv.Itoa(len(data)))
	c.Data(http.StatusOK, "application/pdf", data)
}
