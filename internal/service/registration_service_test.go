package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"apartment-be-svc/internal/models"
)

func absenceInput(residentID uint) RegistrationInput {
	start := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 2, 0)
	return RegistrationInput{
		ResidentID: residentID,
		Type:       models.RegistrationAbsence,
		StartDate:  start,
		EndDate:    &end,
		Reason:     "Work trip",
	}
}

func newRegistrationFixture() (RegistrationService, *fakeRegistrationRepo, *fakeHouseholdRepo) {
	households := newFakeHouseholdRepo()
	regs := newFakeRegistrationRepo()
	regs.households = households
	return NewRegistrationService(regs, households, testLogger), regs, households
}

func TestRegistrationService_ResidentCreatesPending(t *testing.T) {
	svc, _, households := newRegistrationFixture()

	reg, err := svc.Create(context.Background(), resident, absenceInput(10))
	require.NoError(t, err)
	assert.Equal(t, models.RegistrationPending, reg.Status)
	assert.Equal(t, uint(1), reg.ApartmentID)
	assert.Equal(t, models.ResidentPermanent, households.residents[10].State)
}

func TestRegistrationService_ResidentCannotRegisterOtherHousehold(t *testing.T) {
	svc := NewRegistrationService(newFakeRegistrationRepo(), newFakeHouseholdRepo(), testLogger)

	_, err := svc.Create(context.Background(), resident, absenceInput(20))
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = svc.Create(context.Background(), admin, absenceInput(30))
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Create(context.Background(), admin, absenceInput(99))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRegistrationService_AdminCreateIsApproved(t *testing.T) {
	svc, _, households := newRegistrationFixture()

	reg, err := svc.Create(context.Background(), admin, absenceInput(20))
	require.NoError(t, err)
	assert.Equal(t, models.RegistrationApproved, reg.Status)
	assert.Equal(t, adminCreatedNote, reg.Note)
	assert.Equal(t, models.ResidentTemporaryAbsence, households.residents[20].State)
}

func TestRegistrationService_Validation(t *testing.T) {
	svc := NewRegistrationService(newFakeRegistrationRepo(), newFakeHouseholdRepo(), testLogger)

	in := absenceInput(10)
	before := in.StartDate.AddDate(0, 0, -1)
	in.EndDate = &before
	_, err := svc.Create(context.Background(), resident, in)
	assert.ErrorIs(t, err, ErrInvalidInput)

	in = absenceInput(10)
	in.Type = "VISIT"
	_, err = svc.Create(context.Background(), resident, in)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestRegistrationService_ReviewAndResidentEdits(t *testing.T) {
	svc, _, households := newRegistrationFixture()
	ctx := context.Background()

	reg, err := svc.Create(ctx, resident, absenceInput(10))
	require.NoError(t, err)

	_, err = svc.Review(ctx, resident, reg.ID, true, "")
	assert.ErrorIs(t, err, ErrForbidden)

	reviewed, err := svc.Review(ctx, admin, reg.ID, true, "Approved at front desk")
	require.NoError(t, err)
	assert.Equal(t, models.RegistrationApproved, reviewed.Status)
	assert.Equal(t, models.ResidentTemporaryAbsence, households.residents[10].State)

	_, err = svc.Review(ctx, admin, reg.ID, false, "")
	assert.ErrorIs(t, err, ErrConflict)

	_, err = svc.Update(ctx, resident, reg.ID, absenceInput(10))
	assert.ErrorIs(t, err, ErrConflict)

	err = svc.Delete(ctx, resident, reg.ID)
	assert.ErrorIs(t, err, ErrConflict)

	require.NoError(t, svc.Delete(ctx, admin, reg.ID))
}

func TestRegistrationService_ListScopedToHousehold(t *testing.T) {
	svc := NewRegistrationService(newFakeRegistrationRepo(), newFakeHouseholdRepo(), testLogger)
	ctx := context.Background()

	_, err := svc.Create(ctx, admin, absenceInput(10))
	require.NoError(t, err)
	_, err = svc.Create(ctx, admin, absenceInput(20))
	require.NoError(t, err)

	own, total, err := svc.List(ctx, resident, RegistrationQuery{Size: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, uint(10), own[0].ResidentID)

	all, _, err := svc.List(ctx, admin, RegistrationQuery{Size: 10})
	require.NoError(t, err)
	assert.Len(t, all, 2)
	assert.Greater(t, all[0].ID, all[1].ID)
}

func TestRegistrationService_FailedResidentUpdateLeavesRequestPending(t *testing.T) {
	svc, regs, households := newRegistrationFixture()
	ctx := context.Background()

	reg, err := svc.Create(ctx, resident, absenceInput(10))
	require.NoError(t, err)

	regs.residentStateErr = errors.New("connection reset")
	_, err = svc.Review(ctx, admin, reg.ID, true, "")
	require.Error(t, err)

	stored, err := regs.GetByID(ctx, reg.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RegistrationPending, stored.Status)
	assert.Equal(t, models.ResidentPermanent, households.residents[10].State)

	regs.residentStateErr = nil
	reviewed, err := svc.Review(ctx, admin, reg.ID, true, "")
	require.NoError(t, err)
	assert.Equal(t, models.RegistrationApproved, reviewed.Status)
	assert.Equal(t, models.ResidentTemporaryAbsence, households.residents[10].State)
}

func TestRegistrationService_FailedAdminCreateStoresNothing(t *testing.T) {
	svc, regs, households := newRegistrationFixture()
	ctx := context.Background()

	regs.residentStateErr = errors.New("connection reset")
	_, err := svc.Create(ctx, admin, absenceInput(20))
	require.Error(t, err)

	count, err := regs.CountByStatus(ctx, models.RegistrationApproved)
	require.NoError(t, err)
	assert.Zero(t, count)
	assert.Equal(t, models.ResidentPermanent, households.residents[20].State)
}
