package payrollhandler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"payday/internal/domain/company"
	"payday/internal/domain/payrun"
	"payday/internal/domain/reports"
	"payday/internal/domain/tax"
	"payday/internal/platform/email"
	"payday/internal/platform/pdf"
	"payday/internal/transport/http/api"
	"payday/internal/transport/http/middleware"
	"payday/internal/transport/http/shared"
)

type Handler struct {
	Runs    *payrun.Service
	Tax     *tax.Service
	Reports *reports.Service
	Company *company.Service
}

func NewHandler(runs *payrun.Service, taxSvc *tax.Service, reportsSvc *reports.Service, companySvc *company.Service) *Handler {
	return &Handler{Runs: runs, Tax: taxSvc, Reports: reportsSvc, Company: companySvc}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/payroll", func(r chi.Router) {
		r.Get("/runs", h.handleListRuns)
		r.Post("/runs", h.handleCreateRun)
		r.Post("/runs/{runID}/add-missing", h.handleAddMissing)
		r.Patch("/runs/{runID}", h.handleUpdateRunDates)
		r.Delete("/runs/{runID}", h.handleDeleteRun)

		r.Get("/lines/{runID}", h.handleListLines)
		r.Put("/lines/{lineID}", h.handleUpdateLineHours)
		r.Get("/lines/{lineID}/payslip", h.handlePayslipData)
		r.Post("/lines/{lineID}/email", h.handleEmailPayslip)

		r.Post("/deductions", h.handleAddDeduction)
		r.Delete("/deductions/{deductionID}", h.handleDeleteDeduction)

		r.Get("/monthly-summary/{year}", h.handleMonthlySummary)
		r.Get("/ytd-summary/{year}", h.handleYTDSummary)
		r.Get("/sars-summary/{year}", h.handleSARSSummary)

		r.Get("/tax-years", h.handleListTaxYears)
		r.Post("/tax-years", h.handleCreateTaxYear)
		r.Post("/tax-years/{yearID}/lock", h.handleLockTaxYear)
		r.Get("/tax-year/active", h.handleActiveTaxYear)
		r.Get("/tax-brackets/{yearID}", h.handleListBrackets)
	})

	r.Get("/ytd/{year}", h.handleEmployeeYTD)
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	reqID := middleware.GetRequestID(r.Context())
	switch {
	case errors.Is(err, payrun.ErrRunNotFound),
		errors.Is(err, payrun.ErrLineNotFound),
		errors.Is(err, payrun.ErrDeductionNotFound),
		errors.Is(err, tax.ErrYearNotFound):
		api.Fail(w, http.StatusNotFound, "not_found", err.Error(), reqID)
	case errors.Is(err, payrun.ErrNoTaxYearConfigured):
		api.Fail(w, http.StatusConflict, "no_tax_year", err.Error(), reqID)
	case errors.Is(err, tax.ErrNoBracket):
		// Data-integrity fault in the bracket table; never silently zero.
		api.Fail(w, http.StatusConflict, "no_tax_bracket", err.Error(), reqID)
	case errors.Is(err, tax.ErrLockedOverlap):
		api.Fail(w, http.StatusConflict, "locked_year_overlap", err.Error(), reqID)
	case errors.Is(err, payrun.ErrInvalidPeriod),
		errors.Is(err, payrun.ErrDescriptionRequired),
		errors.Is(err, tax.ErrBadBracketSet):
		api.Fail(w, http.StatusBadRequest, "validation_error", err.Error(), reqID)
	default:
		api.Fail(w, http.StatusInternalServerError, "operation_failed", "operation failed", reqID)
	}
}

func pathID(r *http.Request, name string) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, name), 10, 64)
}

func pathYear(r *http.Request) (int, error) {
	return strconv.Atoi(chi.URLParam(r, "year"))
}

func (h *Handler) handleListRuns(w http.ResponseWriter, r *http.Request) {
	year := 0
	if raw := r.URL.Query().Get("year"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			api.Fail(w, http.StatusBadRequest, "invalid_year", "year must be a number", middleware.GetRequestID(r.Context()))
			return
		}
		year = parsed
	}

	runs, err := h.Runs.ListRuns(r.Context(), year)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	api.Success(w, runs, middleware.GetRequestID(r.Context()))
}

type createRunPayload struct {
	PeriodStart string `json:"periodStart"`
	PeriodEnd   string `json:"periodEnd"`
	PayDate     string `json:"payDate"`
}

func (h *Handler) handleCreateRun(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	var payload createRunPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid JSON payload", reqID)
		return
	}

	periodStart, err1 := shared.ParseDate(payload.PeriodStart)
	periodEnd, err2 := shared.ParseDate(payload.PeriodEnd)
	payDate, err3 := shared.ParseDate(payload.PayDate)
	if err1 != nil || err2 != nil || err3 != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "dates must be YYYY-MM-DD", reqID)
		return
	}

	runID, seeded, err := h.Runs.CreateRun(r.Context(), periodStart, periodEnd, payDate)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	api.Created(w, map[string]any{"id": runID, "linesSeeded": seeded}, reqID)
}

func (h *Handler) handleAddMissing(w http.ResponseWriter, r *http.Request) {
	runID, err := pathID(r, "runID")
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_id", "run id must be a number", middleware.GetRequestID(r.Context()))
		return
	}

	added, err := h.Runs.AddMissingEmployees(r.Context(), runID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	api.Success(w, map[string]int{"added": added}, middleware.GetRequestID(r.Context()))
}

type runDatesPayload struct {
	PeriodStart *string `json:"periodStart"`
	PeriodEnd   *string `json:"periodEnd"`
	PayDate     *string `json:"payDate"`
}

func (h *Handler) handleUpdateRunDates(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	runID, err := pathID(r, "runID")
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_id", "run id must be a number", reqID)
		return
	}

	var payload runDatesPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid JSON payload", reqID)
		return
	}

	var patch payrun.RunPatch
	for _, field := range []struct {
		raw  *string
		dest **time.Time
	}{
		{payload.PeriodStart, &patch.PeriodStart},
		{payload.PeriodEnd, &patch.PeriodEnd},
		{payload.PayDate, &patch.PayDate},
	} {
		if field.raw == nil {
			continue
		}
		parsed, err := shared.ParseDate(*field.raw)
		if err != nil || parsed.IsZero() {
			api.Fail(w, http.StatusBadRequest, "invalid_payload", "dates must be YYYY-MM-DD", reqID)
			return
		}
		*field.dest = &parsed
	}

	if err := h.Runs.UpdateRunDates(r.Context(), runID, patch); err != nil {
		h.fail(w, r, err)
		return
	}
	api.Success(w, map[string]bool{"updated": true}, reqID)
}

func (h *Handler) handleDeleteRun(w http.ResponseWriter, r *http.Request) {
	runID, err := pathID(r, "runID")
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_id", "run id must be a number", middleware.GetRequestID(r.Context()))
		return
	}

	if err := h.Runs.DeleteRun(r.Context(), runID); err != nil {
		h.fail(w, r, err)
		return
	}
	api.Success(w, map[string]bool{"deleted": true}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleListLines(w http.ResponseWriter, r *http.Request) {
	runID, err := pathID(r, "runID")
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_id", "run id must be a number", middleware.GetRequestID(r.Context()))
		return
	}

	lines, err := h.Runs.ListLines(r.Context(), runID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	api.Success(w, lines, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleUpdateLineHours(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	lineID, err := pathID(r, "lineID")
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_id", "line id must be a number", reqID)
		return
	}

	var hours payrun.Hours
	if err := json.NewDecoder(r.Body).Decode(&hours); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid JSON payload", reqID)
		return
	}

	figures, err := h.Runs.UpdateLineHours(r.Context(), lineID, hours)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	api.Success(w, figures, reqID)
}

func (h *Handler) handlePayslipData(w http.ResponseWriter, r *http.Request) {
	lineID, err := pathID(r, "lineID")
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_id", "line id must be a number", middleware.GetRequestID(r.Context()))
		return
	}

	data, err := h.Runs.PayslipData(r.Context(), lineID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	api.Success(w, data, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleEmailPayslip(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	lineID, err := pathID(r, "lineID")
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_id", "line id must be a number", reqID)
		return
	}

	data, err := h.Runs.PayslipData(r.Context(), lineID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if data.Email == "" {
		api.Fail(w, http.StatusBadRequest, "no_email", "employee has no email address", reqID)
		return
	}

	profile, err := h.Company.Get(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}

	document, err := pdf.RenderPayslip(profile, data)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	mailer := email.New(email.SMTPConfig{
		Host:     profile.SMTPHost,
		Port:     profile.SMTPPort,
		User:     profile.SMTPUser,
		Password: profile.SMTPPass,
		From:     profile.SMTPFrom,
		UseTLS:   profile.SMTPSecure,
	})
	err = mailer.Send(r.Context(), email.Message{
		To:             data.Email,
		Subject:        fmt.Sprintf("Payslip - %s", data.Line.FullName),
		Body:           "Please find your payslip attached.",
		AttachmentName: fmt.Sprintf("Payslip_%s.pdf", data.Line.FullName),
		Attachment:     document,
	})
	if errors.Is(err, email.ErrNotConfigured) {
		api.Fail(w, http.StatusBadRequest, "smtp_not_configured", "company SMTP settings are not configured", reqID)
		return
	}
	if err != nil {
		api.Fail(w, http.StatusBadGateway, "email_failed", "payslip email could not be sent", reqID)
		return
	}
	api.Success(w, map[string]bool{"sent": true}, reqID)
}

type deductionPayload struct {
	PayrollLineID int64    `json:"payrollLineId"`
	Description   string   `json:"description"`
	Amount        *float64 `json:"amount"`
}

func (h *Handler) handleAddDeduction(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	var payload deductionPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid JSON payload", reqID)
		return
	}
	if payload.Amount == nil {
		api.Fail(w, http.StatusBadRequest, "validation_error", "amount is required", reqID)
		return
	}

	id, err := h.Runs.AddDeduction(r.Context(), payload.PayrollLineID, payload.Description, *payload.Amount)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	api.Created(w, map[string]int64{"id": id}, reqID)
}

func (h *Handler) handleDeleteDeduction(w http.ResponseWriter, r *http.Request) {
	deductionID, err := pathID(r, "deductionID")
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_id", "deduction id must be a number", middleware.GetRequestID(r.Context()))
		return
	}

	if err := h.Runs.DeleteDeduction(r.Context(), deductionID); err != nil {
		h.fail(w, r, err)
		return
	}
	api.Success(w, map[string]bool{"deleted": true}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleMonthlySummary(w http.ResponseWriter, r *http.Request) {
	year, err := pathYear(r)
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_year", "year must be a number", middleware.GetRequestID(r.Context()))
		return
	}

	summaries, err := h.Reports.Monthly(r.Context(), year)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	api.Success(w, summaries, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleYTDSummary(w http.ResponseWriter, r *http.Request) {
	year, err := pathYear(r)
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_year", "year must be a number", middleware.GetRequestID(r.Context()))
		return
	}

	summary, err := h.Reports.YTD(r.Context(), year)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	api.Success(w, map[string]any{
		"totalGross": summary.TotalGross,
		"totalUif":   summary.TotalUIF,
		"totalTax":   summary.TotalTax,
		"totalNet":   summary.TotalNet,
	}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleEmployeeYTD(w http.ResponseWriter, r *http.Request) {
	year, err := pathYear(r)
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_year", "year must be a number", middleware.GetRequestID(r.Context()))
		return
	}

	summary, err := h.Reports.YTD(r.Context(), year)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	api.Success(w, summary.Employees, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleSARSSummary(w http.ResponseWriter, r *http.Request) {
	year, err := pathYear(r)
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_year", "year must be a number", middleware.GetRequestID(r.Context()))
		return
	}

	months, err := h.Reports.SARS(r.Context(), year)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	api.Success(w, months, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleListTaxYears(w http.ResponseWriter, r *http.Request) {
	years, err := h.Tax.ListYears(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	api.Success(w, years, middleware.GetRequestID(r.Context()))
}

type taxYearPayload struct {
	Label           string  `json:"label"`
	Frequency       string  `json:"frequency"`
	StartDate       string  `json:"startDate"`
	EndDate         string  `json:"endDate"`
	PrimaryRebate   float64 `json:"primaryRebate"`
	SecondaryRebate float64 `json:"secondaryRebate"`
	TertiaryRebate  float64 `json:"tertiaryRebate"`
	Locked          bool    `json:"locked"`
	Brackets        []struct {
		MinIncome    float64  `json:"minIncome"`
		MaxIncome    *float64 `json:"maxIncome"`
		BaseTax      float64  `json:"baseTax"`
		MarginalRate float64  `json:"marginalRate"`
	} `json:"brackets"`
}

func (h *Handler) handleCreateTaxYear(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	var payload taxYearPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid JSON payload", reqID)
		return
	}

	startDate, err1 := shared.ParseDate(payload.StartDate)
	endDate, err2 := shared.ParseDate(payload.EndDate)
	if err1 != nil || err2 != nil || startDate.IsZero() || endDate.IsZero() || endDate.Before(startDate) {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "startDate and endDate must be YYYY-MM-DD and in order", reqID)
		return
	}

	year := tax.Year{
		Label:           payload.Label,
		Frequency:       payload.Frequency,
		StartDate:       startDate,
		EndDate:         endDate,
		PrimaryRebate:   payload.PrimaryRebate,
		SecondaryRebate: payload.SecondaryRebate,
		TertiaryRebate:  payload.TertiaryRebate,
		Locked:          payload.Locked,
	}
	brackets := make([]tax.Bracket, 0, len(payload.Brackets))
	for _, b := range payload.Brackets {
		brackets = append(brackets, tax.Bracket{
			MinIncome:    b.MinIncome,
			MaxIncome:    b.MaxIncome,
			BaseTax:      b.BaseTax,
			MarginalRate: b.MarginalRate,
		})
	}

	yearID, err := h.Tax.CreateYear(r.Context(), year, brackets)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	api.Created(w, map[string]int64{"id": yearID}, reqID)
}

func (h *Handler) handleLockTaxYear(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	yearID, err := pathID(r, "yearID")
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_id", "tax year id must be a number", reqID)
		return
	}

	var payload struct {
		Locked bool `json:"locked"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid JSON payload", reqID)
		return
	}

	if err := h.Tax.SetLocked(r.Context(), yearID, payload.Locked); err != nil {
		h.fail(w, r, err)
		return
	}
	api.Success(w, map[string]bool{"locked": payload.Locked}, reqID)
}

func (h *Handler) handleActiveTaxYear(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	date := time.Now()
	if raw := r.URL.Query().Get("date"); raw != "" {
		parsed, err := shared.ParseDate(raw)
		if err != nil || parsed.IsZero() {
			api.Fail(w, http.StatusBadRequest, "invalid_payload", "date must be YYYY-MM-DD", reqID)
			return
		}
		date = parsed
	}

	year, err := h.Tax.LockedYearForDate(r.Context(), date)
	if errors.Is(err, tax.ErrNoTaxYear) {
		api.Fail(w, http.StatusNotFound, "no_tax_year", err.Error(), reqID)
		return
	}
	if err != nil {
		h.fail(w, r, err)
		return
	}
	api.Success(w, year, reqID)
}

func (h *Handler) handleListBrackets(w http.ResponseWriter, r *http.Request) {
	yearID, err := pathID(r, "yearID")
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_id", "tax year id must be a number", middleware.GetRequestID(r.Context()))
		return
	}

	brackets, err := h.Tax.BracketsForYear(r.Context(), yearID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	api.Success(w, brackets, middleware.GetRequestID(r.Context()))
}
