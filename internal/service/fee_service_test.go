package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"apartment-be-svc/internal/models"
)

func TestFeeService_CreateNormalizes(t *testing.T) {
	svc := NewFeeService(&fakeFeeRepo{}, testLogger)

	fee, err := svc.Create(context.Background(), FeeInput{
		FeeName:      "  Management fee ",
		UnitPrice:    7000,
		Unit:         "M2",
		BillingCycle: "monthly",
		IsMandatory:  true,
	})
	require.NoError(t, err)
	assert.Equal(t, "Management fee", fee.FeeName)
	assert.Equal(t, models.FeeUnitSquareMeter, fee.Unit)
	assert.Equal(t, models.BillingCycleMonthly, fee.BillingCycle)
}

func TestFeeService_Validation(t *testing.T) {
	svc := NewFeeService(&fakeFeeRepo{}, testLogger)
	ctx := context.Background()

	cases := []FeeInput{
		{FeeName: "", Unit: "m2", BillingCycle: "MONTHLY"},
		{FeeName: "x", UnitPrice: -1, Unit: "m2", BillingCycle: "MONTHLY"},
		{FeeName: "x", Unit: "litre", BillingCycle: "MONTHLY"},
		{FeeName: "x", Unit: "m2", BillingCycle: "WEEKLY"},
	}
	for _, in := range cases {
		_, err := svc.Create(ctx, in)
		assert.ErrorIs(t, err, ErrInvalidInput)
	}
}

func TestFeeService_UpdateAndDelete(t *testing.T) {
	repo := &fakeFeeRepo{fees: []*models.FeeDefinition{{ID: 1, FeeName: "Parking", UnitPrice: 100000, Unit: "apartment", BillingCycle: "MONTHLY"}}}
	svc := NewFeeService(repo, testLogger)
	ctx := context.Background()

	fee, err := svc.Update(ctx, 1, FeeInput{FeeName: "Parking", UnitPrice: 120000, Unit: "apartment", BillingCycle: "MONTHLY"})
	require.NoError(t, err)
	assert.Equal(t, int64(120000), fee.UnitPrice)

	_, err = svc.Update(ctx, 9, FeeInput{FeeName: "x", Unit: "m2", BillingCycle: "MONTHLY"})
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, svc.Delete(ctx, 1))
	assert.ErrorIs(t, svc.Delete(ctx, 1), ErrNotFound)
}
