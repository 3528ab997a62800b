package handler

import (
	"context"  // provides context with cancellation for DB calls
	"errors"   // for errors.Is comparisons
	"fmt"      // formatting download headers
	"net/http" // HTTP status codes
	"strings"  // credential normalization
	"time"     // timeouts for DB calls

	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/onamfest/house-registration/internal/config"
	"github.com/onamfest/house-registration/internal/export"
	"github.com/onamfest/house-registration/internal/model"
	"github.com/onamfest/house-registration/internal/repository"
	"github.com/onamfest/house-registration/internal/session"
	"github.com/onamfest/house-registration/internal/utils"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// AdminHandler serves the admin surface: login/logout against the session
// guard and the export endpoints behind it. Registrations are only ever
// read here; nothing on this surface mutates the dataset.
type AdminHandler struct {
	Cfg           config.Config
	Guard         *session.Guard
	Registrations *repository.RegistrationRepo
	Statuses      *repository.StatusRepo
}

// NewAdminHandler constructs an AdminHandler with the provided
// dependencies. All must be non-nil.
func NewAdminHandler(cfg config.Config, guard *session.Guard, regs *repository.RegistrationRepo, statuses *repository.StatusRepo) *AdminHandler {
	if guard == nil || regs == nil || statuses == nil {
		panic("nil dependency passed to NewAdminHandler")
	}
	return &AdminHandler{Cfg: cfg, Guard: guard, Registrations: regs, Statuses: statuses}
}

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login handles POST /v1/admin/login. On valid credentials it begins a
// fresh guarded session and returns a signed token; the session itself
// lives in local state and expires 24 hours after this moment, checked
// lazily on each admin request.
func (h *AdminHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email/password required"})
	}
	if email != strings.ToLower(h.Cfg.AdminEmail) || !utils.VerifyPassword(h.Cfg.AdminPasswordHash, req.Password) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}

	if err := h.Guard.Begin(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "start session failed"})
	}
	token, err := utils.NewAdminToken(h.Cfg.JWTSecret, email, h.Cfg.SessionTTLHours)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue token failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"token":   token.Token,
		"expires": token.Exp,
	})
}

// Logout handles POST /v1/admin/logout and clears the session state
// unconditionally.
func (h *AdminHandler) Logout(c echo.Context) error {
	if err := h.Guard.Logout(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "logout failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

// ListRegistrations handles GET /v1/admin/registrations. It returns the
// full dataset ordered by house and creation time for the dashboard.
func (h *AdminHandler) ListRegistrations(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	regs, err := h.Registrations.ListAll(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to fetch registration data. Please try again."})
	}
	statuses, err := h.Statuses.FetchAllOrdered(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to fetch registration data. Please try again."})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"registrations": regs,
		"total":         len(regs),
		"houses":        statuses,
	})
}

// ExportPDF handles GET /v1/admin/export/pdf and streams the report with
// a date-stamped filename. An empty dataset yields a no-data message and
// no file.
func (h *AdminHandler) ExportPDF(c echo.Context) error {
	return h.export(c, "application/pdf", export.PDFFilename, export.RenderPDF)
}

// ExportExcel handles GET /v1/admin/export/excel, same contract as
// ExportPDF but for the workbook.
func (h *AdminHandler) ExportExcel(c echo.Context) error {
	return h.export(c, xlsxContentType, export.WorkbookFilename, export.RenderWorkbook)
}

type renderFunc func([]model.Registration, []model.HouseStatus, time.Time) ([]byte, error)

// export reads the dataset and renders it through the given renderer.
func (h *AdminHandler) export(c echo.Context, contentType string, filename func(time.Time) string, render renderFunc) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	regs, err := h.Registrations.ListAll(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to fetch registration data. Please try again."})
	}
	statuses, err := h.Statuses.FetchAllOrdered(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to fetch registration data. Please try again."})
	}

	now := time.Now().UTC()
	body, err := render(regs, statuses, now)
	if err != nil {
		if errors.Is(err, export.ErrNoData) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "No data available for export"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "export failed"})
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename(now)))
	return c.Blob(http.StatusOK, contentType, body)
}
