package portal

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"apartment-be-svc/internal/billing"
	"apartment-be-svc/internal/models"
	"apartment-be-svc/internal/models/response"
	"apartment-be-svc/pkg/utils"
)

type fakeBackend struct {
	server     *httptest.Server
	lastAuth   string
	lastQuery  map[string]string
	settleHits int
	feeBody    map[string]interface{}
	deletedFee string
}

func newFakeBackend(t *testing.T) *fakeBackend {
	t.Helper()
	gin.SetMode(gin.TestMode)

	b := &fakeBackend{}
	r := gin.New()
	v1 := r.Group("/api/v1")

	v1.POST("/auth/login", func(c *gin.Context) {
		var body map[string]string
		_ = c.ShouldBindJSON(&body)
		if body["password"] != "secret" {
			utils.UnauthorizedResponse(c, "wrong email or password")
			return
		}
		utils.SuccessResponse(c, "Login successful", response.LoginResponse{
			AccessToken: "token-1",
			TokenType:   "Bearer",
			User:        billing.User{ID: 7, Email: body["email"], Role: billing.RoleResident},
		})
	})
	v1.GET("/invoices", func(c *gin.Context) {
		b.lastAuth = c.GetHeader("Authorization")
		b.lastQuery = map[string]string{
			"page":   c.Query("page"),
			"size":   c.Query("size"),
			"status": c.Query("status"),
			"search": c.Query("search"),
		}
		utils.SuccessResponse(c, "ok", billing.InvoicePage{
			Content: []billing.Invoice{{ID: 1, Status: billing.StatusUnpaid, TotalAmount: 300000, Month: 3, Year: 2024}},
			Size:    1, TotalElements: 1, TotalPages: 1,
		})
	})
	v1.GET("/invoices/:id", func(c *gin.Context) {
		if c.Param("id") == "13" {
			c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{"id": 13, "status": "overdue"}})
			return
		}
		utils.NotFoundResponse(c, "invoice 99 not found")
	})
	v1.POST("/invoices/:id/settle", func(c *gin.Context) {
		b.settleHits++
		if c.Param("id") == "6" {
			utils.ErrorResponse(c, http.StatusPaymentRequired, "insufficient funds", nil)
			return
		}
		utils.SuccessResponse(c, "Payment successful! Transaction ID: tx-"+c.Param("id"), nil)
	})
	v1.GET("/registrations", func(c *gin.Context) {
		utils.PaginatedSuccessResponse(c, "ok", []interface{}{}, 0, 1, 4)
	})

	v1.GET("/households", func(c *gin.Context) {
		utils.SuccessResponse(c, "ok", []billing.Household{
			{ID: 1, Building: "A", RoomNumber: "A-101", OwnerName: "Nguyễn Văn An", Area: 50.5, MemberCount: 3},
			{ID: 2, Building: "B", RoomNumber: "B-202", OwnerName: "Trần Thị Bình", Area: 80, MemberCount: 2},
		})
	})
	v1.GET("/households/:id", func(c *gin.Context) {
		if c.Param("id") != "1" {
			utils.NotFoundResponse(c, "household "+c.Param("id")+" not found")
			return
		}
		utils.SuccessResponse(c, "ok", billing.Household{ID: 1, Building: "A", RoomNumber: "A-101", Area: 50.5, MemberCount: 3})
	})
	v1.GET("/fees", func(c *gin.Context) {
		utils.SuccessResponse(c, "ok", []gin.H{
			{"id": 1, "feeName": "Phí quản lý", "unitPrice": 7000, "unit": "m2", "billingCycle": "MONTHLY", "isMandatory": true},
		})
	})
	v1.POST("/fees", func(c *gin.Context) {
		b.feeBody = map[string]interface{}{}
		_ = c.ShouldBindJSON(&b.feeBody)
		b.feeBody["id"] = 9
		utils.CreatedResponse(c, "Fee created", b.feeBody)
	})
	v1.PUT("/fees/:id", func(c *gin.Context) {
		if c.Param("id") != "9" {
			utils.NotFoundResponse(c, "fee "+c.Param("id")+" not found")
			return
		}
		b.feeBody = map[string]interface{}{}
		_ = c.ShouldBindJSON(&b.feeBody)
		b.feeBody["id"] = 9
		utils.SuccessResponse(c, "Fee updated", b.feeBody)
	})
	v1.DELETE("/fees/:id", func(c *gin.Context) {
		if c.Param("id") != "9" {
			utils.ConflictResponse(c, "fee is used by existing invoices", nil)
			return
		}
		b.deletedFee = c.Param("id")
		utils.SuccessResponse(c, "Fee deleted", nil)
	})

	b.server = httptest.NewServer(r)
	t.Cleanup(b.server.Close)
	return b
}

func (b *fakeBackend) client() *Client {
	return NewClient(b.server.URL+"/api/v1", 5*time.Second)
}

func TestClient_AuthenticateKeepsToken(t *testing.T) {
	backend := newFakeBackend(t)
	client := backend.client()

	user, err := client.Authenticate(context.Background(), "resident@bluemoon.vn", "secret")
	require.NoError(t, err)
	assert.Equal(t, uint(7), user.ID)
	assert.Equal(t, "token-1", client.Token())

	_, err = client.ListInvoices(context.Background(), InvoiceQuery{Page: 0, Size: 100, Status: billing.StatusUnpaid})
	require.NoError(t, err)
	assert.Equal(t, "Bearer token-1", backend.lastAuth)
	assert.Equal(t, map[string]string{"page": "0", "size": "100", "status": "unpaid", "search": ""}, backend.lastQuery)
}

func TestClient_AuthenticateRejected(t *testing.T) {
	client := newFakeBackend(t).client()

	_, err := client.Authenticate(context.Background(), "resident@bluemoon.vn", "wrong")
	require.Error(t, err)

	var apiErr *billing.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, billing.ServerRejection, apiErr.Kind)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.Equal(t, "wrong email or password", err.Error())
	assert.Empty(t, client.Token())
}

func TestClient_ValidationHappensBeforeRequest(t *testing.T) {
	backend := newFakeBackend(t)
	client := backend.client()

	for _, q := range []InvoiceQuery{
		{Page: 0, Size: 0},
		{Page: -1, Size: 10},
		{Page: 0, Size: MaxPageSize + 1},
		{Page: 0, Size: 10, Status: "overdue"},
	} {
		_, err := client.ListInvoices(context.Background(), q)
		kind, ok := billing.KindOf(err)
		require.True(t, ok)
		assert.Equal(t, billing.ValidationFailure, kind)
	}
	assert.Nil(t, backend.lastQuery)

	_, err := client.Authenticate(context.Background(), "", "")
	kind, _ := billing.KindOf(err)
	assert.Equal(t, billing.ValidationFailure, kind)
}

func TestClient_NetworkFailure(t *testing.T) {
	backend := newFakeBackend(t)
	client := backend.client()
	backend.server.Close()

	_, err := client.ListHouseholds(context.Background())
	kind, ok := billing.KindOf(err)
	require.True(t, ok)
	assert.Equal(t, billing.NetworkFailure, kind)
}

func TestClient_GetInvoiceByID(t *testing.T) {
	client := newFakeBackend(t).client()

	_, err := client.GetInvoiceByID(context.Background(), 99)
	kind, _ := billing.KindOf(err)
	assert.Equal(t, billing.ServerRejection, kind)
	assert.Equal(t, "invoice 99 not found", err.Error())

	_, err = client.GetInvoiceByID(context.Background(), 13)
	require.Error(t, err)
	assert.ErrorIs(t, err, billing.ErrUnknownInvoiceStatus)
}

func TestClient_SettleInvoiceFeedsBatchExecutor(t *testing.T) {
	backend := newFakeBackend(t)
	client := backend.client()

	msg, err := client.SettleInvoice(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, "Payment successful! Transaction ID: tx-5", msg)

	result, err := billing.NewBatchExecutor(client).SettleBatch(context.Background(), []uint{5, 6, 7})
	require.NoError(t, err)
	assert.False(t, result.Succeeded)
	assert.Equal(t, "insufficient funds", result.FailureMessage)
	assert.Equal(t, uint(6), result.FailedID)
	assert.Equal(t, 3, backend.settleHits)
}

func TestClient_CountPendingRegistrations(t *testing.T) {
	client := newFakeBackend(t).client()

	count, err := client.CountPendingRegistrations(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(4), count)
}

func TestClient_ListHouseholds(t *testing.T) {
	client := newFakeBackend(t).client()

	households, err := client.ListHouseholds(context.Background())
	require.NoError(t, err)
	require.Len(t, households, 2)
	assert.Equal(t, "A-101", households[0].RoomNumber)
	assert.Equal(t, 50.5, households[0].Area)
	assert.Equal(t, "Trần Thị Bình", households[1].OwnerName)
}

func TestClient_GetHouseholdByID(t *testing.T) {
	client := newFakeBackend(t).client()

	household, err := client.GetHouseholdByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, uint(1), household.ID)
	assert.Equal(t, 3, household.MemberCount)

	_, err = client.GetHouseholdByID(context.Background(), 42)
	var apiErr *billing.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, billing.ServerRejection, apiErr.Kind)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Equal(t, "household 42 not found", err.Error())
}

func TestClient_ListFees(t *testing.T) {
	client := newFakeBackend(t).client()

	fees, err := client.ListFees(context.Background())
	require.NoError(t, err)
	require.Len(t, fees, 1)
	assert.Equal(t, "Phí quản lý", fees[0].FeeName)
	assert.Equal(t, int64(7000), fees[0].UnitPrice)
	assert.Equal(t, models.FeeUnitSquareMeter, fees[0].Unit)
	assert.True(t, fees[0].IsMandatory)
}

func TestClient_FeeLifecycle(t *testing.T) {
	backend := newFakeBackend(t)
	client := backend.client()
	ctx := context.Background()

	created, err := client.CreateFee(ctx, models.FeeDefinition{
		FeeName:      "Phí gửi xe",
		UnitPrice:    120000,
		Unit:         models.FeeUnitFixed,
		BillingCycle: models.BillingCycleMonthly,
	})
	require.NoError(t, err)
	assert.Equal(t, uint(9), created.ID)
	assert.Equal(t, "Phí gửi xe", created.FeeName)
	assert.Equal(t, "Phí gửi xe", backend.feeBody["feeName"])
	assert.Equal(t, float64(120000), backend.feeBody["unitPrice"])
	assert.Equal(t, "MONTHLY", backend.feeBody["billingCycle"])

	updated, err := client.UpdateFee(ctx, 9, models.FeeDefinition{
		FeeName:      "Phí gửi xe",
		UnitPrice:    150000,
		Unit:         models.FeeUnitFixed,
		BillingCycle: models.BillingCycleMonthly,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(150000), updated.UnitPrice)

	_, err = client.UpdateFee(ctx, 3, models.FeeDefinition{FeeName: "x"})
	kind, _ := billing.KindOf(err)
	assert.Equal(t, billing.ServerRejection, kind)

	require.NoError(t, client.DeleteFee(ctx, 9))
	assert.Equal(t, "9", backend.deletedFee)

	err = client.DeleteFee(ctx, 1)
	var apiErr *billing.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusConflict, apiErr.StatusCode)
	assert.Equal(t, "fee is used by existing invoices", apiErr.Message)
}
