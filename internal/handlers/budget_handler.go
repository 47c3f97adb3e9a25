package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "spendwise/internal/errors"
	"spendwise/internal/services"
)

// BudgetHandler handles monthly and category budget requests.
type BudgetHandler struct {
	budgetService services.BudgetServicer
}

// NewBudgetHandler creates a new BudgetHandler.
func NewBudgetHandler(budgetService services.BudgetServicer) *BudgetHandler {
	return &BudgetHandler{budgetService: budgetService}
}

// SetMonthlyBudgetRequest represents the payload for setting a monthly budget.
// Amount is in minor currency units (cents).
type SetMonthlyBudgetRequest struct {
	Year   int   `json:"year" binding:"required,min=1"`
	Month  int   `json:"month" binding:"required,min=1,max=12"`
	Amount int64 `json:"amount" binding:"required,gt=0"`
}

// SetCategoryBudgetRequest represents the payload for setting a category budget.
type SetCategoryBudgetRequest struct {
	CategoryID string `json:"category_id" binding:"required,uuid"`
	Year       int    `json:"year" binding:"required,min=1"`
	Month      int    `json:"month" binding:"required,min=1,max=12"`
	Amount     int64  `json:"amount" binding:"required,gt=0"`
}

// SetMonthlyBudget creates or replaces the month's overall budget.
// @Summary     Set monthly budget
// @Description Create or replace the overall budget for a month
// @Tags        budgets
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body SetMonthlyBudgetRequest true "Budget details"
// @Success     200 {object} models.MonthlyBudget "Budget set"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /budgets/monthly [put]
func (h *BudgetHandler) SetMonthlyBudget(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req SetMonthlyBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	budget, err := h.budgetService.SetMonthlyBudget(userID, req.Year, req.Month, req.Amount)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"budget": budget})
}

// GetMonthlyBudget returns the month's overall budget.
// @Summary     Get monthly budget
// @Description Get the overall budget for a month
// @Tags        budgets
// @Produce     json
// @Security    BearerAuth
// @Param       year  query int true "Year"
// @Param       month query int true "Month 1-12"
// @Success     200 {object} models.MonthlyBudget "Budget"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "No budget for month"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /budgets/monthly [get]
func (h *BudgetHandler) GetMonthlyBudget(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	year, month, err := parseYearMonth(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	budget, err := h.budgetService.GetMonthlyBudget(userID, year, month)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"budget": budget})
}

// SetCategoryBudget creates or replaces a category's budget for a month.
// @Summary     Set category budget
// @Description Create or replace a category's budget for a month
// @Tags        budgets
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body SetCategoryBudgetRequest true "Budget details"
// @Success     200 {object} models.CategoryBudget "Budget set"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Category not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /budgets/categories [put]
func (h *BudgetHandler) SetCategoryBudget(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req SetCategoryBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	budget, err := h.budgetService.SetCategoryBudget(userID, req.CategoryID, req.Year, req.Month, req.Amount)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"budget": budget})
}

// GetCategoryBudgets returns all category budgets for a month.
// @Summary     Get category budgets
// @Description Get all category budgets for a month
// @Tags        budgets
// @Produce     json
// @Security    BearerAuth
// @Param       year  query int true "Year"
// @Param       month query int true "Month 1-12"
// @Success     200 {array} models.CategoryBudget "Budgets"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /budgets/categories [get]
func (h *BudgetHandler) GetCategoryBudgets(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	year, month, err := parseYearMonth(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	budgets, err := h.budgetService.GetCategoryBudgets(userID, year, month)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"budgets": budgets})
}
