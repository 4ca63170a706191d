package companyhandler

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"payday/internal/domain/company"
	"payday/internal/transport/http/api"
	"payday/internal/transport/http/middleware"
)

// maxImageBytes caps logo and signature uploads. Payslip headers do not need
// anything bigger.
const maxImageBytes = 5 << 20

type Handler struct {
	Company    *company.Service
	UploadsDir string
}

func NewHandler(svc *company.Service, uploadsDir string) *Handler {
	return &Handler{Company: svc, UploadsDir: uploadsDir}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/company", func(r chi.Router) {
		r.Get("/", h.handleGet)
		r.Put("/", h.handleSave)
		r.Post("/logo", h.handleUploadLogo)
		r.Post("/signature", h.handleUploadSignature)
	})
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	profile, err := h.Company.Get(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "operation_failed", "operation failed", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, profile, middleware.GetRequestID(r.Context()))
}

type profilePayload struct {
	Name               string `json:"name"`
	RegistrationNumber string `json:"registrationNumber"`
	Address            string `json:"address"`
	ContactEmail       string `json:"contactEmail"`
	ContactNumber      string `json:"contactNumber"`

	SMTPHost   string  `json:"smtpHost"`
	SMTPPort   int     `json:"smtpPort"`
	SMTPUser   string  `json:"smtpUser"`
	SMTPPass   *string `json:"smtpPass"`
	SMTPFrom   string  `json:"smtpFrom"`
	SMTPSecure bool    `json:"smtpSecure"`
}

func (h *Handler) handleSave(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	var payload profilePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid JSON payload", reqID)
		return
	}

	current, err := h.Company.Get(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "operation_failed", "operation failed", reqID)
		return
	}

	profile := current
	profile.Name = payload.Name
	profile.RegistrationNumber = payload.RegistrationNumber
	profile.Address = payload.Address
	profile.ContactEmail = payload.ContactEmail
	profile.ContactNumber = payload.ContactNumber
	profile.SMTPHost = payload.SMTPHost
	profile.SMTPPort = payload.SMTPPort
	profile.SMTPUser = payload.SMTPUser
	profile.SMTPFrom = payload.SMTPFrom
	profile.SMTPSecure = payload.SMTPSecure
	// Password is write-only over the API; an omitted field keeps the stored one.
	if payload.SMTPPass != nil {
		profile.SMTPPass = *payload.SMTPPass
	}

	if err := h.Company.Save(r.Context(), profile); err != nil {
		api.Fail(w, http.StatusInternalServerError, "operation_failed", "operation failed", reqID)
		return
	}
	api.Success(w, map[string]bool{"saved": true}, reqID)
}

func (h *Handler) handleUploadLogo(w http.ResponseWriter, r *http.Request) {
	h.handleUploadImage(w, r, h.Company.SetLogoPath)
}

func (h *Handler) handleUploadSignature(w http.ResponseWriter, r *http.Request) {
	h.handleUploadImage(w, r, h.Company.SetSignaturePath)
}

func (h *Handler) handleUploadImage(w http.ResponseWriter, r *http.Request, save func(ctx context.Context, path string) error) {
	reqID := middleware.GetRequestID(r.Context())

	if err := r.ParseMultipartForm(maxImageBytes); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "expected a multipart upload", reqID)
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "missing file field", reqID)
		return
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	switch ext {
	case ".png", ".jpg", ".jpeg":
	default:
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "image must be png or jpeg", reqID)
		return
	}

	if err := os.MkdirAll(h.UploadsDir, 0o755); err != nil {
		api.Fail(w, http.StatusInternalServerError, "operation_failed", "operation failed", reqID)
		return
	}
	name := uuid.NewString() + ext
	dest, err := os.Create(filepath.Join(h.UploadsDir, name))
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "operation_failed", "operation failed", reqID)
		return
	}
	defer dest.Close()

	if _, err := io.Copy(dest, file); err != nil {
		api.Fail(w, http.StatusInternalServerError, "operation_failed", "operation failed", reqID)
		return
	}

	publicPath := "/uploads/" + name
	if err := save(r.Context(), publicPath); err != nil {
		api.Fail(w, http.StatusInternalServerError, "operation_failed", "operation failed", reqID)
		return
	}
	api.Success(w, map[string]string{"path": publicPath}, reqID)
}
