package handlers

import (
	"net/http"

	"github.com/alligatorO15/fin-mentor/internal/models"
	"github.com/alligatorO15/fin-mentor/internal/service"
	"github.com/gin-gonic/gin"
)

type PurchaseHandler struct {
	purchaseService service.PurchaseService
}

func NewPurchaseHandler(purchaseService service.PurchaseService) *PurchaseHandler {
	return &PurchaseHandler{purchaseService: purchaseService}
}

// Simulate ничего не записывает, только вердикт и объяснение
func (h *PurchaseHandler) Simulate(c *gin.Context) {
	var input models.PurchaseRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		bindError(c, err)
		return
	}

	advice, err := h.purchaseService.Simulate(c.Request.Context(), &input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, advice)
}

func (h *PurchaseHandler) Confirm(c *gin.Context) {
	var input models.PurchaseRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		bindError(c, err)
		return
	}

	confirmation, err := h.purchaseService.Confirm(c.Request.Context(), &input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, confirmation)
}
