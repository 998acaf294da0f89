package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	apppatient "github.com/clinic/backend/internal/application/patient"
	"github.com/clinic/backend/internal/domain/patient"
	"github.com/clinic/backend/internal/domain/shared"
	"github.com/clinic/backend/internal/interfaces/http/dto"
	"github.com/clinic/backend/internal/interfaces/http/middleware"
)

const dateLayout = "2006-01-02"

// PatientHandler handles patient, ledger and visit HTTP requests.
type PatientHandler struct {
	BaseHandler
	patientService *apppatient.Service
	visitService   *apppatient.VisitService
	importService  *apppatient.ImportService
}

// NewPatientHandler creates a new patient handler.
func NewPatientHandler(
	patientService *apppatient.Service,
	visitService *apppatient.VisitService,
	importService *apppatient.ImportService,
) *PatientHandler {
	return &PatientHandler{
		patientService: patientService,
		visitService:   visitService,
		importService:  importService,
	}
}

// RegisterRoutes registers the patient endpoints.
func (h *PatientHandler) RegisterRoutes(rg *gin.RouterGroup) {
	imports := rg.Group("/import")
	{
		imports.POST("/patients", h.Import)
	}

	patients := rg.Group("/patients")
	{
		patients.POST("", h.Create)
		patients.GET("", h.List)
		patients.GET("/:id", h.Get)
		patients.PUT("/:id", h.Update)
		patients.DELETE("/:id", h.Delete)

		patients.GET("/:id/payments", h.ListPayments)
		patients.POST("/:id/payments", h.AddPayment)

		patients.GET("/:id/visits", h.ListVisits)
		patients.POST("/:id/visits", h.RecordVisit)
		patients.PUT("/:id/visits/:visitId", h.UpdateVisit)
		patients.DELETE("/:id/visits/:visitId", h.DeleteVisit)
	}
}

// PatientRequest is the create/update request body for a patient.
type PatientRequest struct {
	Name         string `json:"name" binding:"required,min=1,max=255"`
	Phone        string `json:"phone" binding:"omitempty,max=50"`
	Email        string `json:"email" binding:"omitempty,email"`
	Gender       string `json:"gender" binding:"omitempty,oneof=male female other"`
	DateOfBirth  string `json:"date_of_birth" binding:"omitempty"`
	Address      string `json:"address" binding:"omitempty,max=500"`
	MedicalNotes string `json:"medical_notes" binding:"omitempty,max=2000"`
}

// PatientResponse is the patient representation returned by the API.
type PatientResponse struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Phone        string    `json:"phone,omitempty"`
	Email        string    `json:"email,omitempty"`
	Gender       string    `json:"gender,omitempty"`
	DateOfBirth  string    `json:"date_of_birth,omitempty"`
	Address      string    `json:"address,omitempty"`
	MedicalNotes string    `json:"medical_notes,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func toPatientResponse(p *patient.Patient) PatientResponse {
	resp := PatientResponse{
		ID:           p.ID,
		Name:         p.Name,
		Phone:        p.Phone,
		Email:        p.Email,
		Gender:       p.Gender,
		Address:      p.Address,
		MedicalNotes: p.MedicalNotes,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
	if p.DateOfBirth != nil {
		resp.DateOfBirth = p.DateOfBirth.Format(dateLayout)
	}
	return resp
}

func parseDateOfBirth(h *BaseHandler, c *gin.Context, raw string) (*time.Time, bool) {
	if raw == "" {
		return nil, true
	}
	t, err := time.Parse(dateLayout, raw)
	if err != nil {
		h.BadRequest(c, "date_of_birth must be in YYYY-MM-DD format")
		return nil, false
	}
	return &t, true
}

// Create registers a new patient.
func (h *PatientHandler) Create(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}

	var req PatientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	dob, ok := parseDateOfBirth(&h.BaseHandler, c, req.DateOfBirth)
	if !ok {
		return
	}

	p, err := h.patientService.Create(c.Request.Context(), apppatient.CreateInput{
		TenantID:     tenantID,
		Name:         req.Name,
		Phone:        req.Phone,
		Email:        req.Email,
		Gender:       req.Gender,
		DateOfBirth:  dob,
		Address:      req.Address,
		MedicalNotes: req.MedicalNotes,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, toPatientResponse(p))
}

// Get returns one patient.
func (h *PatientHandler) Get(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	patientID, ok := h.pathID(c)
	if !ok {
		return
	}

	p, err := h.patientService.Get(c.Request.Context(), tenantID, patientID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toPatientResponse(p))
}

// List returns the clinic's patients with pagination.
func (h *PatientHandler) List(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}

	req := dto.DefaultListRequest()
	if err := c.ShouldBindQuery(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	patients, total, err := h.patientService.List(c.Request.Context(), tenantID, shared.Filter{
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

	responses := make([]PatientResponse, len(patients))
	for i := range patients {
		responses[i] = toPatientResponse(&patients[i])
	}

	h.SuccessWithMeta(c, responses, dto.Meta{
		Page:     req.Page,
		PageSize: req.PageSize,
		Total:    total,
	})
}

// Update modifies a patient's demographic fields.
func (h *PatientHandler) Update(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	patientID, ok := h.pathID(c)
	if !ok {
		return
	}

	var req PatientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	dob, ok := parseDateOfBirth(&h.BaseHandler, c, req.DateOfBirth)
	if !ok {
		return
	}

	p, err := h.patientService.Update(c.Request.Context(), apppatient.UpdateInput{
		TenantID:     tenantID,
		PatientID:    patientID,
		Name:         req.Name,
		Phone:        req.Phone,
		Email:        req.Email,
		Gender:       req.Gender,
		DateOfBirth:  dob,
		Address:      req.Address,
		MedicalNotes: req.MedicalNotes,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toPatientResponse(p))
}

// Delete removes a patient and their payment ledger.
func (h *PatientHandler) Delete(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	patientID, ok := h.pathID(c)
	if !ok {
		return
	}

	if err := h.patientService.Delete(c.Request.Context(), tenantID, patientID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// AddPaymentRequest is the request body for recording a payment.
type AddPaymentRequest struct {
	Amount  decimal.Decimal `json:"amount" binding:"required"`
	Date    string          `json:"date" binding:"omitempty"`
	Purpose string          `json:"purpose" binding:"omitempty,max=500"`
	Mode    string          `json:"mode" binding:"omitempty,max=50"`
}

// AddPayment appends a payment record to the patient's ledger.
func (h *PatientHandler) AddPayment(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	patientID, ok := h.pathID(c)
	if !ok {
		return
	}

	var req AddPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	record, err := h.patientService.AddPayment(c.Request.Context(), apppatient.AddPaymentInput{
		TenantID:  tenantID,
		PatientID: patientID,
		Amount:    req.Amount,
		Date:      req.Date,
		Purpose:   req.Purpose,
		Mode:      req.Mode,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, record)
}

// ListPayments returns the patient's payment history.
func (h *PatientHandler) ListPayments(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	patientID, ok := h.pathID(c)
	if !ok {
		return
	}

	records, err := h.patientService.Ledger(c.Request.Context(), tenantID, patientID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, records)
}

// VisitRequest is the request body for recording or updating a visit.
type VisitRequest struct {
	VisitedAt time.Time `json:"visited_at" binding:"required"`
	Procedure string    `json:"procedure" binding:"required,min=1,max=255"`
	Notes     string    `json:"notes" binding:"omitempty,max=2000"`
}

// VisitResponse is the visit representation returned by the API.
type VisitResponse struct {
	ID        uuid.UUID `json:"id"`
	PatientID uuid.UUID `json:"patient_id"`
	VisitedAt time.Time `json:"visited_at"`
	Procedure string    `json:"procedure"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toVisitResponse(v *patient.Visit) VisitResponse {
	return VisitResponse{
		ID:        v.ID,
		PatientID: v.PatientID,
		VisitedAt: v.VisitedAt,
		Procedure: v.Procedure,
		Notes:     v.Notes,
		CreatedAt: v.CreatedAt,
		UpdatedAt: v.UpdatedAt,
	}
}

// RecordVisit records a treatment visit for a patient.
func (h *PatientHandler) RecordVisit(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	patientID, ok := h.pathID(c)
	if !ok {
		return
	}

	var req VisitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	v, err := h.visitService.Record(c.Request.Context(), apppatient.VisitInput{
		TenantID:  tenantID,
		PatientID: patientID,
		VisitedAt: req.VisitedAt,
		Procedure: req.Procedure,
		Notes:     req.Notes,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, toVisitResponse(v))
}

// ListVisits returns the patient's visit history, most recent first.
func (h *PatientHandler) ListVisits(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	patientID, ok := h.pathID(c)
	if !ok {
		return
	}

	visits, err := h.visitService.ListForPatient(c.Request.Context(), tenantID, patientID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	responses := make([]VisitResponse, len(visits))
	for i := range visits {
		responses[i] = toVisitResponse(&visits[i])
	}
	h.Success(c, responses)
}

func (h *PatientHandler) visitPathID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("visitId"))
	if err != nil {
		h.BadRequest(c, "Invalid visit ID")
		return uuid.Nil, false
	}
	return id, true
}

// UpdateVisit modifies a recorded visit.
func (h *PatientHandler) UpdateVisit(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	patientID, ok := h.pathID(c)
	if !ok {
		return
	}
	visitID, ok := h.visitPathID(c)
	if !ok {
		return
	}

	var req VisitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	v, err := h.visitService.Update(c.Request.Context(), apppatient.VisitInput{
		TenantID:  tenantID,
		PatientID: patientID,
		VisitID:   visitID,
		VisitedAt: req.VisitedAt,
		Procedure: req.Procedure,
		Notes:     req.Notes,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toVisitResponse(v))
}

// DeleteVisit removes a recorded visit.
func (h *PatientHandler) DeleteVisit(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	if _, ok := h.pathID(c); !ok {
		return
	}
	visitID, ok := h.visitPathID(c)
	if !ok {
		return
	}

	if err := h.visitService.Delete(c.Request.Context(), tenantID, visitID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// ImportResponse summarizes a CSV import run.
type ImportResponse struct {
	Imported int                   `json:"imported"`
	Skipped  int                   `json:"skipped"`
	Errors   []apppatient.RowError `json:"errors,omitempty"`
}

// Import ingests patients from an uploaded CSV file.
func (h *PatientHandler) Import(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		h.BadRequest(c, "A CSV file is required in the 'file' form field")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.BadRequest(c, "Could not read the uploaded file")
		return
	}
	defer file.Close()

	result, err := h.importService.ImportPatients(c.Request.Context(), tenantID, file)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, ImportResponse{
		Imported: result.Imported,
		Skipped:  result.Skipped,
		Errors:   result.Errors,
	})
}
