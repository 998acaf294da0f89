package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	appexpense "github.com/clinic/backend/internal/application/expense"
	"github.com/clinic/backend/internal/domain/expense"
	"github.com/clinic/backend/internal/domain/shared"
	"github.com/clinic/backend/internal/interfaces/http/dto"
	"github.com/clinic/backend/internal/interfaces/http/middleware"
)

// ExpenseHandler handles clinic expense HTTP requests.
type ExpenseHandler struct {
	BaseHandler
	expenseService *appexpense.Service
}

// NewExpenseHandler creates a new expense handler.
func NewExpenseHandler(expenseService *appexpense.Service) *ExpenseHandler {
	return &ExpenseHandler{expenseService: expenseService}
}

// RegisterRoutes registers the expense endpoints.
func (h *ExpenseHandler) RegisterRoutes(rg *gin.RouterGroup) {
	expenses := rg.Group("/expenses")
	{
		expenses.POST("", h.Create)
		expenses.GET("", h.List)
		expenses.GET("/:id", h.Get)
		expenses.PUT("/:id", h.Update)
		expenses.DELETE("/:id", h.Delete)
	}
}

// ExpenseRequest is the create/update request body for an expense.
type ExpenseRequest struct {
	IncurredAt  string          `json:"incurred_at" binding:"required"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Category    string          `json:"category" binding:"required,min=1,max=100"`
	Description string          `json:"description" binding:"omitempty,max=500"`
}

// ExpenseResponse is the expense representation returned by the API.
type ExpenseResponse struct {
	ID          uuid.UUID       `json:"id"`
	IncurredAt  string          `json:"incurred_at"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category"`
	Description string          `json:"description,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

func toExpenseResponse(e *expense.Expense) ExpenseResponse {
	return ExpenseResponse{
		ID:          e.ID,
		IncurredAt:  e.IncurredAt.Format(dateLayout),
		Amount:      e.Amount,
		Category:    e.Category,
		Description: e.Description,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

func (h *ExpenseHandler) parseIncurredAt(c *gin.Context, raw string) (time.Time, bool) {
	t, err := time.Parse(dateLayout, raw)
	if err != nil {
		h.BadRequest(c, "incurred_at must be in YYYY-MM-DD format")
		return time.Time{}, false
	}
	return t, true
}

// Create records a new expense.
func (h *ExpenseHandler) Create(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}

	var req ExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	incurredAt, ok := h.parseIncurredAt(c, req.IncurredAt)
	if !ok {
		return
	}

	e, err := h.expenseService.Create(c.Request.Context(), appexpense.CreateInput{
		TenantID:    tenantID,
		IncurredAt:  incurredAt,
		Amount:      req.Amount,
		Category:    req.Category,
		Description: req.Description,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, toExpenseResponse(e))
}

// Get returns one expense.
func (h *ExpenseHandler) Get(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	expenseID, ok := h.pathID(c)
	if !ok {
		return
	}

	e, err := h.expenseService.Get(c.Request.Context(), tenantID, expenseID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toExpenseResponse(e))
}

// List returns the clinic's expenses with pagination.
func (h *ExpenseHandler) List(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}

	req := dto.DefaultListRequest()
	if err := c.ShouldBindQuery(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	expenses, total, err := h.expenseService.List(c.Request.Context(), tenantID, shared.Filter{
		Page:     req.Page,
		PageSize: req.PageSize,
		OrderBy:  req.SortBy,
		OrderDir: req.SortOrder,
		Search:   req.Search,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	responses := make([]ExpenseResponse, len(expenses))
	for i := range expenses {
		responses[i] = toExpenseResponse(&expenses[i])
	}

	h.SuccessWithMeta(c, responses, dto.Meta{
		Page:     req.Page,
		PageSize: req.PageSize,
		Total:    total,
	})
}

// Update modifies an expense.
func (h *ExpenseHandler) Update(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	expenseID, ok := h.pathID(c)
	if !ok {
		return
	}

	var req ExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	incurredAt, ok := h.parseIncurredAt(c, req.IncurredAt)
	if !ok {
		return
	}

	e, err := h.expenseService.Update(c.Request.Context(), appexpense.UpdateInput{
		TenantID:    tenantID,
		ExpenseID:   expenseID,
		IncurredAt:  incurredAt,
		Amount:      req.Amount,
		Category:    req.Category,
		Description: req.Description,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toExpenseResponse(e))
}

// Delete removes an expense.
func (h *ExpenseHandler) Delete(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	expenseID, ok := h.pathID(c)
	if !ok {
		return
	}

	if err := h.expenseService.Delete(c.Request.Context(), tenantID, expenseID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
