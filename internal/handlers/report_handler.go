package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "expensetracker/internal/errors"
	"expensetracker/internal/models"
	"expensetracker/internal/report"
	"expensetracker/internal/session"
)

// ReportHandler serves the dashboard and report views
type ReportHandler struct {
	stores StoreProvider
	now    Clock
}

// NewReportHandler creates a new ReportHandler. A nil clock means time.Now.
func NewReportHandler(stores StoreProvider, now Clock) *ReportHandler {
	if now == nil {
		now = time.Now
	}
	return &ReportHandler{stores: stores, now: now}
}

// FormattedDashboard holds the dashboard cards rendered with the user's settings.
type FormattedDashboard struct {
	TotalSpent    string `json:"totalSpent"`
	MonthlySpent  string `json:"monthlySpent"`
	WeeklySpent   string `json:"weeklySpent"`
	MonthlyBudget string `json:"monthlyBudget"`
}

// DashboardResponse is the dashboard view model
type DashboardResponse struct {
	Summary   report.DashboardSummary `json:"summary"`
	Formatted FormattedDashboard      `json:"formatted"`
	Recent    []models.Expense        `json:"recent"`
}

// TrendsResponse lists month-over-month changes of one year
type TrendsResponse struct {
	Year   int                `json:"year"`
	Trends []report.MonthTrend `json:"trends"`
}

// ChartResponse is the category breakdown of a lookback window
type ChartResponse struct {
	Lookback report.Lookback       `json:"lookback"`
	Data     []report.CategoryTotal `json:"data"`
}

// ExpensesResponse lists expenses
type ExpensesResponse struct {
	Expenses []models.Expense `json:"expenses"`
}

const recentLimit = 5

func (h *ReportHandler) expenses(c *gin.Context, id session.Identity) ([]models.Expense, error) {
	store, err := h.stores.Expenses(id)
	if err != nil {
		return nil, err
	}
	return store.List(c.Request.Context())
}

func (h *ReportHandler) expensesAndCategories(c *gin.Context, id session.Identity) ([]models.Expense, []models.Category, error) {
	expenses, err := h.expenses(c, id)
	if err != nil {
		return nil, nil, err
	}
	store, err := h.stores.Categories(id)
	if err != nil {
		return nil, nil, err
	}
	categories, err := store.List(c.Request.Context())
	if err != nil {
		return nil, nil, err
	}
	return expenses, categories, nil
}

// yearParam reads ?year=, defaulting to the current year.
func (h *ReportHandler) yearParam(c *gin.Context) (int, error) {
	year, err := queryInt(c, "year", h.now().Year())
	if err != nil {
		return 0, err
	}
	if year < 1 || year > 9999 {
		return 0, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid year")
	}
	return year, nil
}

// GetDashboard returns the headline cards and the latest expenses
// @Summary     Dashboard
// @Tags        reports
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} DashboardResponse
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /reports/dashboard [get]
func (h *ReportHandler) GetDashboard(c *gin.Context) {
	id, err := getIdentity(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	expenses, err := h.expenses(c, id)
	if err != nil {
		respondWithError(c, err)
		return
	}
	settingsStore, err := h.stores.Settings(id)
	if err != nil {
		respondWithError(c, err)
		return
	}
	settings, err := settingsStore.Get(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}

	summary := report.Dashboard(expenses, settings, h.now())
	c.JSON(http.StatusOK, DashboardResponse{
		Summary: summary,
		Formatted: FormattedDashboard{
			TotalSpent:    settingsStore.FormatCurrency(summary.TotalSpent),
			MonthlySpent:  settingsStore.FormatCurrency(summary.MonthlySpent),
			WeeklySpent:   settingsStore.FormatCurrency(summary.WeeklySpent),
			MonthlyBudget: settingsStore.FormatCurrency(summary.MonthlyBudget),
		},
		Recent: report.Recent(expenses, recentLimit),
	})
}

// GetRecent returns the newest expenses
// @Summary     Recent expenses
// @Tags        reports
// @Produce     json
// @Security    BearerAuth
// @Param       limit query int false "Number of expenses (default 5)"
// @Success     200 {object} ExpensesResponse
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /reports/recent [get]
func (h *ReportHandler) GetRecent(c *gin.Context) {
	id, err := getIdentity(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	limit, err := queryInt(c, "limit", recentLimit)
	if err != nil {
		respondWithError(c, err)
		return
	}
	if limit < 1 || limit > 100 {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "limit must be between 1 and 100"))
		return
	}

	expenses, err := h.expenses(c, id)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, ExpensesResponse{Expenses: report.Recent(expenses, limit)})
}

// GetSummary compares the current period with the previous one
// @Summary     Period summary
// @Tags        reports
// @Produce     json
// @Security    BearerAuth
// @Param       period query string false "week, month or year (default month)"
// @Success     200 {object} report.PeriodSummary
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /reports/summary [get]
func (h *ReportHandler) GetSummary(c *gin.Context) {
	id, err := getIdentity(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	period, err := report.ParsePeriod(c.Query("period"))
	if err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	expenses, categories, err := h.expensesAndCategories(c, id)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, report.Summary(expenses, categories, period, h.now()))
}

// GetChart returns the category breakdown of a lookback window
// @Summary     Category chart
// @Tags        reports
// @Produce     json
// @Security    BearerAuth
// @Param       lookback query string false "week, month, quarter, calendar-month or calendar-year (default week)"
// @Success     200 {object} ChartResponse
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /reports/chart [get]
func (h *ReportHandler) GetChart(c *gin.Context) {
	id, err := getIdentity(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	lookback, err := report.ParseLookback(c.Query("lookback"))
	if err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	expenses, categories, err := h.expensesAndCategories(c, id)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, ChartResponse{
		Lookback: lookback,
		Data:     report.ChartData(expenses, categories, lookback, h.now()),
	})
}

// GetMonthly lists one calendar month
// @Summary     Monthly report
// @Tags        reports
// @Produce     json
// @Security    BearerAuth
// @Param       year  query int false "Year (default current)"
// @Param       month query int false "Month 1-12 (default current)"
// @Success     200 {object} report.MonthlyReport
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /reports/monthly [get]
func (h *ReportHandler) GetMonthly(c *gin.Context) {
	id, err := getIdentity(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	year, err := h.yearParam(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	month, err := queryInt(c, "month", int(h.now().Month()))
	if err != nil {
		respondWithError(c, err)
		return
	}
	if month < 1 || month > 12 {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "month must be between 1 and 12"))
		return
	}

	expenses, categories, err := h.expensesAndCategories(c, id)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, report.Monthly(expenses, categories, year, time.Month(month)))
}

// GetCategoryReport returns the category breakdown of a year
// @Summary     Yearly category report
// @Tags        reports
// @Produce     json
// @Security    BearerAuth
// @Param       year query int false "Year (default current)"
// @Success     200 {object} report.CategoryReport
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /reports/categories [get]
func (h *ReportHandler) GetCategoryReport(c *gin.Context) {
	id, err := getIdentity(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	year, err := h.yearParam(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	expenses, categories, err := h.expensesAndCategories(c, id)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, report.Yearly(expenses, categories, year))
}

// GetTrends returns month-over-month changes
// @Summary     Monthly trends
// @Tags        reports
// @Produce     json
// @Security    BearerAuth
// @Param       year query int false "Year (default current)"
// @Success     200 {object} TrendsResponse
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /reports/trends [get]
func (h *ReportHandler) GetTrends(c *gin.Context) {
	id, err := getIdentity(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	year, err := h.yearParam(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	expenses, err := h.expenses(c, id)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, TrendsResponse{Year: year, Trends: report.Trends(expenses, year)})
}
