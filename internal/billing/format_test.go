package billing

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatCurrency(t *testing.T) {
	assert.Equal(t, "500.000 ₫", FormatCurrency(500000))
	assert.Equal(t, "1.250.000 ₫", FormatCurrency(1250000))
	assert.Equal(t, "0 ₫", FormatCurrency(0))
}

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "05/03/2024", FormatDate(time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC)))
	assert.Empty(t, FormatDate(time.Time{}))
}

func TestInvoiceStatus_Unmarshal(t *testing.T) {
	var inv Invoice
	require.NoError(t, json.Unmarshal([]byte(`{"id":1,"status":"paid"}`), &inv))
	assert.Equal(t, StatusPaid, inv.Status)

	err := json.Unmarshal([]byte(`{"id":1,"status":"overdue"}`), &inv)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownInvoiceStatus))
}

func TestParseRole(t *testing.T) {
	role, err := ParseRole("admin")
	require.NoError(t, err)
	assert.Equal(t, RoleAdmin, role)

	_, err = ParseRole("janitor")
	assert.Error(t, err)
}
