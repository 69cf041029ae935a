package service

import (
	"context"
	"sort"
	"sync"

	"gorm.io/gorm"

	"apartment-be-svc/internal/billing"
	"apartment-be-svc/internal/models"
	"apartment-be-svc/internal/repository"
	"apartment-be-svc/pkg/logger"
)

var testLogger = logger.NewNopLogger()

func uintPtr(v uint) *uint { return &v }

type fakeHouseholdRepo struct {
	mu         sync.Mutex
	households map[uint]*models.HouseholdRow
	residents  map[uint]*models.Resident
}

func newFakeHouseholdRepo() *fakeHouseholdRepo {
	return &fakeHouseholdRepo{
		households: map[uint]*models.HouseholdRow{
			1: {ID: 1, Building: "A", RoomNumber: "A-101", Area: 50.5, OwnerName: "Nguyễn Văn An", MemberCount: 3},
			2: {ID: 2, Building: "B", RoomNumber: "B-202", Area: 80, OwnerName: "Trần Thị Bình", MemberCount: 2},
		},
		residents: map[uint]*models.Resident{
			10: {ID: 10, ApartmentID: uintPtr(1), Name: "Nguyễn Văn An", State: models.ResidentPermanent},
			20: {ID: 20, ApartmentID: uintPtr(2), Name: "Trần Thị Bình", State: models.ResidentPermanent},
			30: {ID: 30, Name: "Lê Văn Cường"},
		},
	}
}

func (f *fakeHouseholdRepo) ListHouseholds(_ context.Context, _ string) ([]*models.HouseholdRow, error) {
	return f.ListHouseholdsForBilling(context.Background())
}

func (f *fakeHouseholdRepo) GetHouseholdByID(_ context.Context, id uint) (*models.HouseholdRow, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	h, ok := f.households[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return h, nil
}

func (f *fakeHouseholdRepo) CountHouseholds(_ context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.households)), nil
}

func (f *fakeHouseholdRepo) ListHouseholdsForBilling(_ context.Context) ([]*models.HouseholdRow, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*models.HouseholdRow, 0, len(f.households))
	for _, h := range f.households {
		out = append(out, h)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeHouseholdRepo) GetResidentByID(_ context.Context, id uint) (*models.Resident, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.residents[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return r, nil
}

type fakeInvoiceRepo struct {
	mu       sync.Mutex
	invoices map[uint]*models.Invoice
	payments []*models.Payment
	nextID   uint
	lastList repository.InvoiceFilter
}

func newFakeInvoiceRepo(invoices ...*models.Invoice) *fakeInvoiceRepo {
	f := &fakeInvoiceRepo{invoices: map[uint]*models.Invoice{}, nextID: 100}
	for _, inv := range invoices {
		f.invoices[inv.ID] = inv
	}
	return f
}

func (f *fakeInvoiceRepo) List(_ context.Context, filter repository.InvoiceFilter) ([]*models.Invoice, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastList = filter

	var out []*models.Invoice
	for _, inv := range f.invoices {
		if filter.ApartmentID != nil && inv.ApartmentID != *filter.ApartmentID {
			continue
		}
		if filter.Status != "" && inv.Status != filter.Status {
			continue
		}
		out = append(out, inv)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, int64(len(out)), nil
}

func (f *fakeInvoiceRepo) ListForExport(ctx context.Context, filter repository.InvoiceFilter) ([]*models.Invoice, error) {
	out, _, err := f.List(ctx, filter)
	return out, err
}

func (f *fakeInvoiceRepo) GetByID(_ context.Context, id uint) (*models.Invoice, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	inv, ok := f.invoices[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *inv
	return &cp, nil
}

func (f *fakeInvoiceRepo) ExistsForPeriod(_ context.Context, apartmentID uint, month, year int) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, inv := range f.invoices {
		if inv.ApartmentID == apartmentID && inv.Month == month && inv.Year == year {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeInvoiceRepo) Create(_ context.Context, invoice *models.Invoice) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	invoice.ID = f.nextID
	f.invoices[invoice.ID] = invoice
	return nil
}

func (f *fakeInvoiceRepo) Settle(_ context.Context, id uint, payment *models.Payment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	inv, ok := f.invoices[id]
	if !ok || inv.Status != string(billing.StatusUnpaid) {
		return repository.ErrInvoiceNotUnpaid
	}
	inv.Status = string(billing.StatusPaid)
	paidAt := payment.PaidAt
	inv.PaidAt = &paidAt
	payment.InvoiceID = id
	f.payments = append(f.payments, payment)
	return nil
}

func (f *fakeInvoiceRepo) SumUnpaidByApartment(_ context.Context, apartmentID uint) (int64, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var total, count int64
	for _, inv := range f.invoices {
		if inv.ApartmentID == apartmentID && inv.Status == string(billing.StatusUnpaid) {
			total += inv.TotalAmount
			count++
		}
	}
	return total, count, nil
}

type fakeFeeRepo struct {
	fees []*models.FeeDefinition
}

func (f *fakeFeeRepo) List(_ context.Context) ([]*models.FeeDefinition, error) { return f.fees, nil }

func (f *fakeFeeRepo) ListMandatoryMonthly(_ context.Context) ([]*models.FeeDefinition, error) {
	var out []*models.FeeDefinition
	for _, fee := range f.fees {
		if fee.IsMandatory && fee.BillingCycle == models.BillingCycleMonthly {
			out = append(out, fee)
		}
	}
	return out, nil
}

func (f *fakeFeeRepo) GetByID(_ context.Context, id uint) (*models.FeeDefinition, error) {
	for _, fee := range f.fees {
		if fee.ID == id {
			return fee, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeFeeRepo) Create(_ context.Context, fee *models.FeeDefinition) error {
	fee.ID = uint(len(f.fees) + 1)
	f.fees = append(f.fees, fee)
	return nil
}

func (f *fakeFeeRepo) Update(_ context.Context, _ *models.FeeDefinition) error { return nil }

func (f *fakeFeeRepo) Delete(_ context.Context, id uint) error {
	for i, fee := range f.fees {
		if fee.ID == id {
			f.fees = append(f.fees[:i], f.fees[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

type fakeUserRepo struct {
	users map[uint]*models.UserAccount
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*models.UserAccount, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) GetByID(_ context.Context, id uint) (*models.UserAccount, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

type fakeRegistrationRepo struct {
	mu      sync.Mutex
	regs    map[uint]*models.TemporaryRegistration
	nextID  uint
	pending int64

	// households receives resident state changes of approved registrations
	households       *fakeHouseholdRepo
	residentStateErr error
}

func newFakeRegistrationRepo() *fakeRegistrationRepo {
	return &fakeRegistrationRepo{regs: map[uint]*models.TemporaryRegistration{}}
}

func (f *fakeRegistrationRepo) List(_ context.Context, filter repository.RegistrationFilter) ([]*models.TemporaryRegistration, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*models.TemporaryRegistration
	for _, r := range f.regs {
		if filter.ApartmentID != nil && r.ApartmentID != *filter.ApartmentID {
			continue
		}
		cp := *r
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, int64(len(out)), nil
}

func (f *fakeRegistrationRepo) GetByID(_ context.Context, id uint) (*models.TemporaryRegistration, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.regs[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *r
	return &cp, nil
}

func (f *fakeRegistrationRepo) Create(_ context.Context, reg *models.TemporaryRegistration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	reg.ID = f.nextID
	cp := *reg
	f.regs[reg.ID] = &cp
	return nil
}

func (f *fakeRegistrationRepo) Update(_ context.Context, reg *models.TemporaryRegistration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *reg
	f.regs[reg.ID] = &cp
	return nil
}

// SaveApproved writes nothing when the resident update fails, like the rolled back transaction
func (f *fakeRegistrationRepo) SaveApproved(_ context.Context, reg *models.TemporaryRegistration, state models.ResidentState) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if reg.ID != 0 {
		stored, ok := f.regs[reg.ID]
		if !ok || stored.Status != models.RegistrationPending {
			return repository.ErrRegistrationNotPending
		}
	}
	if f.residentStateErr != nil {
		return f.residentStateErr
	}

	if reg.ID == 0 {
		f.nextID++
		reg.ID = f.nextID
	}
	cp := *reg
	f.regs[reg.ID] = &cp

	if f.households != nil {
		f.households.mu.Lock()
		if r, ok := f.households.residents[reg.ResidentID]; ok {
			r.State = state
		}
		f.households.mu.Unlock()
	}
	return nil
}

func (f *fakeRegistrationRepo) Delete(_ context.Context, id uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.regs, id)
	return nil
}

func (f *fakeRegistrationRepo) CountByStatus(_ context.Context, status models.RegistrationStatus) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.pending > 0 && status == models.RegistrationPending {
		return f.pending, nil
	}
	var n int64
	for _, r := range f.regs {
		if r.Status == status {
			n++
		}
	}
	return n, nil
}

type fakePaymentRepo struct {
	rows []*models.PaymentHistoryRow
}

func (f *fakePaymentRepo) ListRecentByApartment(_ context.Context, _ uint, limit int) ([]*models.PaymentHistoryRow, error) {
	if len(f.rows) > limit {
		return f.rows[:limit], nil
	}
	return f.rows, nil
}
