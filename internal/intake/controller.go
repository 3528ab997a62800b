package intake

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/onamfest/house-registration/internal/repository"
)

// Result describes a successful submission: how many rows were committed,
// for which house, and under which batch token.
type Result struct {
	Registered        int    `json:"registered"`
	House             string `json:"house"`
	RegistrationBatch string `json:"registration_batch"`
}

// Controller drives one form through validation and submission. It holds
// the form, the status view used for gating, and the submitter. A simple
// in-flight flag prevents double submission from the same form instance;
// across clients the database unique constraint is the real backstop.
type Controller struct {
	Form      *Form
	Status    HouseStatusView
	Submitter *DualWriteSubmitter

	submitting bool
}

// NewController wires a controller around an existing form.
func NewController(form *Form, status HouseStatusView, submitter *DualWriteSubmitter) *Controller {
	return &Controller{Form: form, Status: status, Submitter: submitter}
}

// Submit validates the form and, when clean, commits it as one batch.
//
// Returns, in order: the success result (nil on any failure), the list of
// messages to show the user (the full validation list, or the single
// commit-failure message), and the underlying commit error when the
// primary store rejected the batch (nil for pure validation failures).
// On success the form is reset; on any failure its contents are preserved.
func (c *Controller) Submit(ctx context.Context) (*Result, []string, error) {
	if c.submitting {
		return nil, []string{"A submission is already in progress"}, nil
	}
	if errs := c.Form.Validate(c.Status); len(errs) > 0 {
		return nil, errs, nil
	}

	c.submitting = true
	defer func() { c.submitting = false }()

	house := c.Form.House()
	batch := uuid.NewString()
	regs := c.Form.BuildBatch(batch)

	if err := c.Submitter.Commit(ctx, regs); err != nil {
		msg := commitMessage(err)
		c.Form.errors = []string{msg}
		return nil, []string{msg}, err
	}

	c.Form.Reset()
	return &Result{Registered: len(regs), House: house, RegistrationBatch: batch}, nil, nil
}

// commitMessage translates a primary-store error into the message shown
// to the user. Unique-constraint collisions get an actionable message;
// anything else carries the store-reported detail.
func commitMessage(err error) string {
	if errors.Is(err, repository.ErrAlreadyRegistered) {
		return "One or more College IDs are already registered. Please check and try again."
	}
	return fmt.Sprintf("Registration failed: %v", err)
}
