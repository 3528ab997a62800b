package handler

import (
	"context"  // provides context with cancellation for DB calls
	"errors"   // for errors.Is comparisons
	"net/http" // HTTP status codes
	"time"     // timeouts for DB calls

	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/onamfest/house-registration/internal/intake"
	"github.com/onamfest/house-registration/internal/model"
	"github.com/onamfest/house-registration/internal/repository"
	"github.com/onamfest/house-registration/internal/status"
)

// RegistrationHandler serves the public intake endpoints: the house
// status dashboard and the team submission itself. Each submission is
// driven through a fresh intake controller so partial form state never
// leaks between requests.
type RegistrationHandler struct {
	Status    *status.Reader
	Submitter *intake.DualWriteSubmitter
}

// NewRegistrationHandler constructs a RegistrationHandler. Both
// dependencies must be non-nil.
func NewRegistrationHandler(reader *status.Reader, submitter *intake.DualWriteSubmitter) *RegistrationHandler {
	if reader == nil || submitter == nil {
		panic("nil dependency passed to NewRegistrationHandler")
	}
	return &RegistrationHandler{Status: reader, Submitter: submitter}
}

// submitReq is the full 30-row payload of one team submission.
type submitReq struct {
	House        string              `json:"house"`
	Participants []model.Participant `json:"participants"`
}

// HouseStatus handles GET /v1/houses/status. It serves the reader's last
// known snapshot; the broker subscription keeps that snapshot fresh, so
// no database read happens on this path.
func (h *RegistrationHandler) HouseStatus(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"houses": h.Status.Snapshot()})
}

// SubmitTeam handles POST /v1/registrations. The whole form is validated
// at once and every violation is returned, never just the first. A valid
// form is committed as one batch: a single primary insert followed by the
// best-effort mirror and commit event. Validation failures and commit
// failures both leave resubmission entirely to the client; nothing is
// retried server-side.
func (h *RegistrationHandler) SubmitTeam(c echo.Context) error {
	var req submitReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if req.House != "" && !model.IsValidHouse(req.House) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown house"})
	}

	form := intake.NewForm()
	form.SetHouse(req.House)
	for i, p := range req.Participants {
		if i >= model.TeamSize {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "a team has exactly 30 participants"})
		}
		_ = form.SetField(i, intake.FieldName, p.Name)
		_ = form.SetField(i, intake.FieldCollegeID, p.CollegeID)
		if p.Class != "" {
			if !model.IsValidClass(p.Class) {
				return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown class"})
			}
			_ = form.SetField(i, intake.FieldClass, p.Class)
		}
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	ctrl := intake.NewController(form, h.Status, h.Submitter)
	res, msgs, err := ctrl.Submit(ctx)
	switch {
	case err == nil && len(msgs) > 0:
		return c.JSON(http.StatusBadRequest, echo.Map{"errors": msgs})
	case errors.Is(err, repository.ErrAlreadyRegistered):
		return c.JSON(http.StatusConflict, echo.Map{"error": msgs[0]})
	case err != nil:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": msgs[0]})
	}

	return c.JSON(http.StatusCreated, res)
}
