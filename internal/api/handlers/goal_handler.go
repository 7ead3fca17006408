package handlers

import (
	"net/http"

	"github.com/alligatorO15/fin-mentor/internal/models"
	"github.com/alligatorO15/fin-mentor/internal/service"
	"github.com/gin-gonic/gin"
)

type GoalHandler struct {
	goalService service.GoalService
}

func NewGoalHandler(goalService service.GoalService) *GoalHandler {
	return &GoalHandler{goalService: goalService}
}

func (h *GoalHandler) Get(c *gin.Context) {
	goal, err := h.goalService.Get(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, goal)
}

// Set создает цель или заменяет текущую, прогресс сохраняется если current_amount не передан
func (h *GoalHandler) Set(c *gin.Context) {
	var input models.GoalUpdate
	if err := c.ShouldBindJSON(&input); err != nil {
		bindError(c, err)
		return
	}

	goal, err := h.goalService.Set(c.Request.Context(), &input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, goal)
}
