package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"expensetracker/internal/models"
	"expensetracker/internal/pagination"
	"expensetracker/internal/report"
)

// ExpenseHandler handles expense-related requests
type ExpenseHandler struct {
	stores StoreProvider
}

// NewExpenseHandler creates a new ExpenseHandler
func NewExpenseHandler(stores StoreProvider) *ExpenseHandler {
	return &ExpenseHandler{stores: stores}
}

// CreateExpenseRequest represents the request payload for adding an expense
type CreateExpenseRequest struct {
	Description string          `json:"description" binding:"required,max=255"`
	Amount      decimal.Decimal `json:"amount" binding:"required,positive_decimal" swaggertype:"number"`
	Category    string          `json:"category" binding:"required,max=64"`
	Date        time.Time       `json:"date" binding:"required"`
	Notes       string          `json:"notes" binding:"max=1000"`
}

// UpdateExpenseRequest carries the fields to change; omitted fields are kept.
type UpdateExpenseRequest struct {
	Description *string          `json:"description" binding:"omitempty,min=1,max=255"`
	Amount      *decimal.Decimal `json:"amount" binding:"omitempty,positive_decimal" swaggertype:"number"`
	Category    *string          `json:"category" binding:"omitempty,min=1,max=64"`
	Date        *time.Time       `json:"date"`
	Notes       *string          `json:"notes" binding:"omitempty,max=1000"`
}

// ListExpensesQuery holds the list filters.
type ListExpensesQuery struct {
	pagination.PageRequest
	Search   string `form:"q" binding:"max=255"`
	Category string `form:"category" binding:"max=64"`
}

// ExpenseResponse wraps a single expense
type ExpenseResponse struct {
	Expense models.Expense `json:"expense"`
}

// CreateExpense handles adding an expense
// @Summary     Add an expense
// @Tags        expenses
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateExpenseRequest true "Expense details"
// @Success     201 {object} ExpenseResponse "Expense created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /expenses [post]
func (h *ExpenseHandler) CreateExpense(c *gin.Context) {
	id, err := getIdentity(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	store, err := h.stores.Expenses(id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	expense, err := store.Add(c.Request.Context(), models.NewExpense{
		Description: req.Description,
		Amount:      req.Amount,
		Category:    req.Category,
		Date:        req.Date,
		Notes:       req.Notes,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, ExpenseResponse{Expense: *expense})
}

// GetExpenses lists expenses, newest first
// @Summary     List expenses
// @Description Search by description and filter by category; results are newest first
// @Tags        expenses
// @Produce     json
// @Security    BearerAuth
// @Param       q         query string false "Case-insensitive description search"
// @Param       category  query string false "Category id, or all"
// @Param       page      query int    false "Page number"
// @Param       page_size query int    false "Page size (max 100)"
// @Success     200 {object} pagination.PageResponse[models.Expense]
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /expenses [get]
func (h *ExpenseHandler) GetExpenses(c *gin.Context) {
	id, err := getIdentity(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var query ListExpensesQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	store, err := h.stores.Expenses(id)
	if err != nil {
		respondWithError(c, err)
		return
	}
	expenses, err := store.List(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}

	matched := report.Search(expenses, query.Search, query.Category)
	c.JSON(http.StatusOK, pagination.Slice(matched, query.PageRequest))
}

// GetExpense returns one expense for the edit view
// @Summary     Get an expense
// @Tags        expenses
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Expense ID"
// @Success     200 {object} ExpenseResponse
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Expense not found"
// @Router      /expenses/{id} [get]
func (h *ExpenseHandler) GetExpense(c *gin.Context) {
	id, err := getIdentity(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	store, err := h.stores.Expenses(id)
	if err != nil {
		respondWithError(c, err)
		return
	}
	expense, err := store.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, ExpenseResponse{Expense: *expense})
}

// UpdateExpense merges the given fields into an expense
// @Summary     Update an expense
// @Tags        expenses
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string               true "Expense ID"
// @Param       request body UpdateExpenseRequest true "Fields to change"
// @Success     200 {object} ExpenseResponse
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Expense not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /expenses/{id} [put]
func (h *ExpenseHandler) UpdateExpense(c *gin.Context) {
	id, err := getIdentity(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	store, err := h.stores.Expenses(id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	ctx := c.Request.Context()
	expenseID := c.Param("id")
	patch := models.ExpensePatch{
		Description: req.Description,
		Amount:      req.Amount,
		Category:    req.Category,
		Date:        req.Date,
		Notes:       req.Notes,
	}
	if err := store.Update(ctx, expenseID, patch); err != nil {
		respondWithError(c, err)
		return
	}

	// Update ignores unknown ids, so the lookup reports the 404.
	expense, err := store.Get(ctx, expenseID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, ExpenseResponse{Expense: *expense})
}

// DeleteExpense removes an expense
// @Summary     Delete an expense
// @Description Deleting an unknown id succeeds
// @Tags        expenses
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Expense ID"
// @Success     200 {object} MessageResponse
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /expenses/{id} [delete]
func (h *ExpenseHandler) DeleteExpense(c *gin.Context) {
	id, err := getIdentity(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	store, err := h.stores.Expenses(id)
	if err != nil {
		respondWithError(c, err)
		return
	}
	if err := store.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "Expense deleted successfully"})
}
