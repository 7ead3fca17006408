package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/alligatorO15/fin-mentor/internal/models"
	"github.com/alligatorO15/fin-mentor/internal/service"
	"github.com/gin-gonic/gin"
)

type TransactionHandler struct {
	transactionService service.TransactionService
}

func NewTransactionHandler(transactionService service.TransactionService) *TransactionHandler {
	return &TransactionHandler{
		transactionService: transactionService,
	}
}

func (h *TransactionHandler) Create(c *gin.Context) {
	var input models.TransactionCreate
	if err := c.ShouldBindJSON(&input); err != nil {
		bindError(c, err)
		return
	}

	transaction, err := h.transactionService.Record(c.Request.Context(), &input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, transaction)
}

// получаем историю транзакций с фильтрацией, в порядке записи
func (h *TransactionHandler) List(c *gin.Context) {
	filter := &models.TransactionFilter{}

	// парсим query параметры
	if category := c.Query("category"); category != "" {
		cat, err := models.ParseCategory(category)
		if err != nil {
			respondError(c, err)
			return
		}
		filter.Category = &cat
	}

	if dateFrom := c.Query("date_from"); dateFrom != "" {
		if t, err := time.Parse("2006-01-02", dateFrom); err == nil {
			filter.DateFrom = &t
		}
	}

	if dateTo := c.Query("date_to"); dateTo != "" {
		if t, err := time.Parse("2006-01-02", dateTo); err == nil {
			filter.DateTo = &t
		}
	}

	filter.Search = c.Query("search")

	if limit := c.Query("limit"); limit != "" {
		if l, err := strconv.Atoi(limit); err == nil {
			filter.Limit = l
		}
	}

	history, err := h.transactionService.History(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, history)
}

func (h *TransactionHandler) AddExpense(c *gin.Context) {
	var input models.ExpenseCreate
	if err := c.ShouldBindJSON(&input); err != nil {
		bindError(c, err)
		return
	}

	expense, err := h.transactionService.AddExpense(c.Request.Context(), &input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, expense)
}

func (h *TransactionHandler) ListExpenses(c *gin.Context) {
	expenses, err := h.transactionService.ListExpenses(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, expenses)
}
