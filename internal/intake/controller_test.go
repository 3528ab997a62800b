package intake_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/onamfest/house-registration/internal/intake"
	"github.com/onamfest/house-registration/internal/model"
	"github.com/onamfest/house-registration/internal/repository"
)

// callLog records the order in which the submitter touches its
// collaborators.
type callLog struct {
	calls []string
}

type fakePrimary struct {
	log     *callLog
	err     error
	batches [][]model.Registration
}

func (p *fakePrimary) InsertBatch(_ context.Context, regs []model.Registration) error {
	p.log.calls = append(p.log.calls, "primary")
	if p.err != nil {
		return p.err
	}
	p.batches = append(p.batches, regs)
	return nil
}

type fakeBackup struct {
	log     *callLog
	err     error
	batches [][]model.Registration
}

func (b *fakeBackup) MirrorBatch(_ context.Context, regs []model.Registration) error {
	b.log.calls = append(b.log.calls, "backup")
	if b.err != nil {
		return b.err
	}
	b.batches = append(b.batches, regs)
	return nil
}

type fakeEvents struct {
	log    *callLog
	err    error
	houses []string
}

func (e *fakeEvents) PublishCommitted(_ context.Context, house, _ string, _ int) error {
	e.log.calls = append(e.log.calls, "publish")
	if e.err != nil {
		return e.err
	}
	e.houses = append(e.houses, house)
	return nil
}

func setupController(t *testing.T, house string) (*intake.Controller, *fakePrimary, *fakeBackup, *fakeEvents) {
	t.Helper()
	log := &callLog{}
	primary := &fakePrimary{log: log}
	backup := &fakeBackup{log: log}
	events := &fakeEvents{log: log}
	form := filledForm(t, house)
	ctrl := intake.NewController(form, openStatus, intake.NewDualWriteSubmitter(primary, backup, events))
	return ctrl, primary, backup, events
}

func TestSubmit_Success(t *testing.T) {
	ctrl, primary, _, events := setupController(t, model.HouseSpartans)

	res, msgs, err := ctrl.Submit(context.Background())
	require.NoError(t, err)
	require.Empty(t, msgs)
	require.NotNil(t, res)

	assert.Equal(t, model.TeamSize, res.Registered)
	assert.Equal(t, model.HouseSpartans, res.House)
	_, parseErr := uuid.Parse(res.RegistrationBatch)
	assert.NoError(t, parseErr, "batch token should be a UUID")

	require.Len(t, primary.batches, 1)
	batch := primary.batches[0]
	require.Len(t, batch, model.TeamSize)
	for _, reg := range batch {
		assert.Equal(t, model.HouseSpartans, reg.House)
		assert.Equal(t, res.RegistrationBatch, reg.RegistrationBatch)
	}
	assert.Equal(t, []string{model.HouseSpartans}, events.houses)

	// Successful commit resets the form.
	assert.Equal(t, "", ctrl.Form.House())
	assert.Equal(t, 0, ctrl.Form.Progress())
}

func TestSubmit_PrimaryBeforeBackupBeforePublish(t *testing.T) {
	ctrl, primary, _, _ := setupController(t, model.HouseVikings)

	_, _, err := ctrl.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"primary", "backup", "publish"}, primary.log.calls)
}

func TestSubmit_PrimaryFailureSkipsBackup(t *testing.T) {
	ctrl, primary, backup, _ := setupController(t, model.HouseRajputs)
	primary.err = errors.New("connection reset")

	res, msgs, err := ctrl.Submit(context.Background())
	assert.Nil(t, res)
	require.Error(t, err)
	require.Len(t, msgs, 1)
	assert.Equal(t, "Registration failed: connection reset", msgs[0])

	assert.Empty(t, backup.batches)
	assert.Equal(t, []string{"primary"}, primary.log.calls)

	// Form contents survive for correction.
	assert.Equal(t, model.HouseRajputs, ctrl.Form.House())
	assert.Equal(t, model.TeamSize, ctrl.Form.Progress())
}

func TestSubmit_DuplicateTranslated(t *testing.T) {
	ctrl, primary, _, _ := setupController(t, model.HouseMughals)
	primary.err = repository.ErrAlreadyRegistered

	res, msgs, err := ctrl.Submit(context.Background())
	assert.Nil(t, res)
	require.ErrorIs(t, err, repository.ErrAlreadyRegistered)
	require.Len(t, msgs, 1)
	assert.Equal(t, "One or more College IDs are already registered. Please check and try again.", msgs[0])
}

func TestSubmit_BackupFailureDoesNotChangeOutcome(t *testing.T) {
	ctrl, _, backup, _ := setupController(t, model.HouseAryans)
	backup.err = errors.New("mirror unreachable")

	res, msgs, err := ctrl.Submit(context.Background())
	require.NoError(t, err)
	assert.Empty(t, msgs)
	require.NotNil(t, res)
	assert.Equal(t, model.TeamSize, res.Registered)
}

func TestSubmit_PublishFailureDoesNotChangeOutcome(t *testing.T) {
	ctrl, _, _, events := setupController(t, model.HouseSpartans)
	events.err = errors.New("broker down")

	res, _, err := ctrl.Submit(context.Background())
	require.NoError(t, err)
	require.NotNil(t, res)
}

func TestSubmit_ValidationFailureNeverTouchesStores(t *testing.T) {
	log := &callLog{}
	primary := &fakePrimary{log: log}
	form := intake.NewForm() // blank: no house, no rows
	ctrl := intake.NewController(form, openStatus, intake.NewDualWriteSubmitter(primary, &fakeBackup{log: log}, &fakeEvents{log: log}))

	res, msgs, err := ctrl.Submit(context.Background())
	assert.Nil(t, res)
	assert.NoError(t, err)
	assert.NotEmpty(t, msgs)
	assert.Empty(t, log.calls)
}

func TestSubmit_CompletedHouseBlockedRegardlessOfRows(t *testing.T) {
	log := &callLog{}
	primary := &fakePrimary{log: log}
	st := fakeStatus{complete: map[string]bool{model.HouseMughals: true}}
	form := filledForm(t, model.HouseMughals)
	ctrl := intake.NewController(form, st, intake.NewDualWriteSubmitter(primary, nil, nil))

	res, msgs, err := ctrl.Submit(context.Background())
	assert.Nil(t, res)
	assert.NoError(t, err)
	assert.Contains(t, msgs, "MUGHALS has already completed their registration (30/30 participants)")
	assert.Empty(t, log.calls)
}

func TestSubmit_FreshBatchPerSubmission(t *testing.T) {
	ctrl, primary, _, _ := setupController(t, model.HouseSpartans)

	res1, _, err := ctrl.Submit(context.Background())
	require.NoError(t, err)

	// Refill and submit again; a new token must be generated.
	refill := filledForm(t, model.HouseVikings)
	ctrl2 := intake.NewController(refill, openStatus, intake.NewDualWriteSubmitter(primary, nil, nil))
	res2, _, err := ctrl2.Submit(context.Background())
	require.NoError(t, err)

	assert.NotEqual(t, res1.RegistrationBatch, res2.RegistrationBatch)
}
