package handlers

import (
	"net/http"

	"github.com/alligatorO15/fin-mentor/internal/service"
	"github.com/gin-gonic/gin"
)

type AnalyticsHandler struct {
	budgetService     service.BudgetService
	reflectionService service.ReflectionService
}

func NewAnalyticsHandler(budgetService service.BudgetService, reflectionService service.ReflectionService) *AnalyticsHandler {
	return &AnalyticsHandler{
		budgetService:     budgetService,
		reflectionService: reflectionService,
	}
}

func (h *AnalyticsHandler) GetSummary(c *gin.Context) {
	summary, err := h.budgetService.GetSummary(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

// GetReview паттерны по всей истории транзакций
func (h *AnalyticsHandler) GetReview(c *gin.Context) {
	review, err := h.reflectionService.Review(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, review)
}
