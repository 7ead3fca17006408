package handlers

import (
	"net/http"

	"github.com/alligatorO15/fin-mentor/internal/models"
	"github.com/alligatorO15/fin-mentor/internal/service"
	"github.com/gin-gonic/gin"
)

type BudgetHandler struct {
	budgetService service.BudgetService
}

func NewBudgetHandler(budgetService service.BudgetService) *BudgetHandler {
	return &BudgetHandler{
		budgetService: budgetService,
	}
}

func (h *BudgetHandler) GetIncome(c *gin.Context) {
	income, err := h.budgetService.GetIncome(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, income)
}

// SetIncome задает доход и возвращает пересчитанный план
func (h *BudgetHandler) SetIncome(c *gin.Context) {
	var input models.IncomeUpdate
	if err := c.ShouldBindJSON(&input); err != nil {
		bindError(c, err)
		return
	}

	plan, err := h.budgetService.SetIncome(c.Request.Context(), &input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, plan)
}

func (h *BudgetHandler) GetRatios(c *gin.Context) {
	ratios, err := h.budgetService.GetRatios(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, ratios)
}

func (h *BudgetHandler) SetRatios(c *gin.Context) {
	var input models.Ratios
	if err := c.ShouldBindJSON(&input); err != nil {
		bindError(c, err)
		return
	}

	plan, err := h.budgetService.SetRatios(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}

	// без дохода плана еще нет, но доли уже сохранены
	if plan == nil {
		c.JSON(http.StatusOK, gin.H{"ratios": input})
		return
	}
	c.JSON(http.StatusOK, plan)
}

func (h *BudgetHandler) GetPlan(c *gin.Context) {
	plan, err := h.budgetService.GetPlan(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, plan)
}

func (h *BudgetHandler) GetBalances(c *gin.Context) {
	balances, err := h.budgetService.GetBalances(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, balances)
}

func (h *BudgetHandler) GetAlerts(c *gin.Context) {
	alerts, err := h.budgetService.GetAlerts(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, alerts)
}
