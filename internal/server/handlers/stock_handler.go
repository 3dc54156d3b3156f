package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"gestock/internal/domain/models"
	"gestock/internal/service/inventory"
)

// StockHandler exposes the stock, sale, alert and history endpoints.
type StockHandler struct {
	svc    *inventory.Service
	logger *zap.Logger
}

// NewStockHandler constructs the HTTP handler adapter.
func NewStockHandler(svc *inventory.Service, logger *zap.Logger) *StockHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StockHandler{svc: svc, logger: logger}
}

// List returns every article.
func (h *StockHandler) List(c *gin.Context) {
	articles, err := h.svc.ListArticles(c.Request.Context())
	if err != nil {
		h.logger.Error("failed listing articles", zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.APIResult{Success: false, Message: "Erreur lors du chargement des données"})
		return
	}
	c.JSON(http.StatusOK, articles)
}

// Create adds a new article; the server assigns the id.
func (h *StockHandler) Create(c *gin.Context) {
	var article models.Article
	if err := c.ShouldBindJSON(&article); err != nil {
		h.logger.Warn("invalid article payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, models.APIResult{Success: false, Message: "Données invalides"})
		return
	}

	if _, err := h.svc.CreateArticle(c.Request.Context(), article); err != nil {
		h.respondError(c, err, "Erreur lors de l'ajout")
		return
	}

	c.JSON(http.StatusOK, models.APIResult{Success: true, Message: "Article ajouté avec succès"})
}

// Update replaces the fields of an existing article.
func (h *StockHandler) Update(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.APIResult{Success: false, Message: "Identifiant invalide"})
		return
	}

	var article models.Article
	if err := c.ShouldBindJSON(&article); err != nil {
		h.logger.Warn("invalid article payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, models.APIResult{Success: false, Message: "Données invalides"})
		return
	}

	if err := h.svc.UpdateArticle(c.Request.Context(), id, article); err != nil {
		h.respondError(c, err, "Erreur lors de la modification")
		return
	}

	c.JSON(http.StatusOK, models.APIResult{Success: true, Message: "Article modifié avec succès"})
}

// Delete removes an article.
func (h *StockHandler) Delete(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.APIResult{Success: false, Message: "Identifiant invalide"})
		return
	}

	if err := h.svc.DeleteArticle(c.Request.Context(), id); err != nil {
		h.respondError(c, err, "Erreur lors de la suppression")
		return
	}

	c.JSON(http.StatusOK, models.APIResult{Success: true, Message: "Article supprimé avec succès"})
}

// Sell processes a sale transaction.
func (h *StockHandler) Sell(c *gin.Context) {
	var req models.SaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid sale payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, models.APIResult{Success: false, Message: "Données invalides"})
		return
	}

	record, err := h.svc.ProcessSale(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, err, "Erreur lors de la vente")
		return
	}

	c.JSON(http.StatusOK, models.SaleResult{
		APIResult: models.APIResult{
			Success: true,
			Message: fmt.Sprintf("Vente effectuée avec succès! Total: %s DA", record.TotalPrice.StringFixed(2)),
		},
		TotalPrice: record.TotalPrice,
	})
}

// Alerts lists articles at or below their reorder threshold.
func (h *StockHandler) Alerts(c *gin.Context) {
	alerts, err := h.svc.Alerts(c.Request.Context())
	if err != nil {
		h.logger.Error("failed listing alerts", zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.APIResult{Success: false, Message: "Erreur lors du chargement des alertes"})
		return
	}
	c.JSON(http.StatusOK, alerts)
}

// History returns the filtered sales history with its totals.
func (h *StockHandler) History(c *gin.Context) {
	page, err := h.svc.History(c.Request.Context(), c.Query("start_date"), c.Query("end_date"))
	if err != nil {
		if errors.Is(err, inventory.ErrInvalidArticle) || isDateError(err) {
			c.JSON(http.StatusBadRequest, models.APIResult{Success: false, Message: "Dates invalides"})
			return
		}
		h.logger.Error("failed loading history", zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.APIResult{Success: false, Message: "Erreur lors du chargement de l'historique"})
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *StockHandler) respondError(c *gin.Context, err error, fallback string) {
	var insufficient *inventory.InsufficientStockError
	switch {
	case errors.Is(err, inventory.ErrArticleNotFound):
		c.JSON(http.StatusNotFound, models.APIResult{Success: false, Message: "Article non trouvé"})
	case errors.As(err, &insufficient):
		c.JSON(http.StatusBadRequest, models.APIResult{Success: false, Message: insufficient.Error()})
	case errors.Is(err, inventory.ErrInvalidArticle):
		c.JSON(http.StatusBadRequest, models.APIResult{Success: false, Message: err.Error()})
	default:
		h.logger.Error("inventory operation failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.APIResult{Success: false, Message: fallback})
	}
}

func isDateError(err error) bool {
	var parseErr *time.ParseError
	return errors.As(err, &parseErr)
}
