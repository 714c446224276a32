package repository

import (
	"context"
	"testing"
	"time"

	"carwash-backend/config"
	"carwash-backend/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := config.ConnectDB(&config.Config{
		DBDriver: "sqlite",
		DBURL:    "file:" + uuid.NewString() + "?mode=memory&cache=shared",
	})
	require.NoError(t, err)
	require.NoError(t, config.Migrate(db, false))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func TestRepositoryCRUD(t *testing.T) {
	ctx := context.Background()
	repo := New[models.Service](newTestDB(t))

	svc := &models.Service{Name: "Rửa xe", BasePrice: 100000, Duration: 30}
	require.NoError(t, repo.Create(ctx, svc))
	require.NotZero(t, svc.ID)

	got, err := repo.Get(ctx, svc.ID)
	require.NoError(t, err)
	assert.Equal(t, "Rửa xe", got.Name)

	got.BasePrice = 120000
	require.NoError(t, repo.Save(ctx, got))

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, 120000.0, list[0].BasePrice)

	require.NoError(t, repo.Delete(ctx, svc.ID))
	assert.ErrorIs(t, repo.Delete(ctx, svc.ID), ErrNotFound)

	_, err = repo.Get(ctx, svc.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCustomerRepository(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewCustomerRepository(db)

	c := &models.Customer{Name: "An", Phone: "0901234567"}
	require.NoError(t, repo.Create(ctx, c))
	require.NoError(t, repo.AddVehicle(ctx, &models.CustomerVehicle{CustomerID: c.ID, LicensePlate: "51A-12345"}))

	found, err := repo.FindByPhone(ctx, "0901234567")
	require.NoError(t, err)
	assert.Equal(t, c.ID, found.ID)

	taken, err := repo.PhoneTaken(ctx, "0901234567", 0)
	require.NoError(t, err)
	assert.True(t, taken)
	taken, err = repo.PhoneTaken(ctx, "0901234567", c.ID)
	require.NoError(t, err)
	assert.False(t, taken)

	require.NoError(t, repo.RecordVisit(ctx, c.ID, 250000, "2024-06-15"))
	require.NoError(t, repo.RecordVisit(ctx, c.ID, 100000, "2024-06-16"))
	require.NoError(t, repo.ReverseVisit(ctx, c.ID, 100000))

	withVehicles, err := repo.GetWithVehicles(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, withVehicles.TotalVisits)
	assert.Equal(t, 250000.0, withVehicles.TotalSpent)
	assert.Equal(t, "2024-06-16", withVehicles.LastVisit)
	require.Len(t, withVehicles.Vehicles, 1)

	require.NoError(t, repo.Delete(ctx, c.ID))
	vehicles, err := repo.Vehicles(ctx, c.ID)
	require.NoError(t, err)
	assert.Empty(t, vehicles)
	assert.ErrorIs(t, repo.Delete(ctx, c.ID), ErrNotFound)
}

func TestInventoryRepository(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewInventoryRepository(db)

	catID, err := repo.CategoryID(ctx, " Hóa chất ")
	require.NoError(t, err)
	require.NotNil(t, catID)
	again, err := repo.CategoryID(ctx, "Hóa chất")
	require.NoError(t, err)
	assert.Equal(t, *catID, *again, "existing category is reused")

	none, err := repo.CategoryID(ctx, "")
	require.NoError(t, err)
	assert.Nil(t, none)

	batch := &models.Batch{BatchCode: "LO-1", ImportDate: "2024-01-15"}
	require.NoError(t, New[models.Batch](db).Create(ctx, batch))

	item := &models.InventoryItem{Name: "Nước rửa", CategoryID: catID, BatchID: &batch.ID, Quantity: 10, ReorderPoint: 3}
	require.NoError(t, repo.Create(ctx, item))

	rows, err := repo.ListJoined(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Hóa chất", rows[0].CategoryName)
	assert.Equal(t, "LO-1", rows[0].BatchCode)

	require.NoError(t, repo.TakeStock(ctx, item.ID, 8))
	assert.ErrorIs(t, repo.TakeStock(ctx, item.ID, 5), ErrConflict)

	low, err := repo.LowStock(ctx)
	require.NoError(t, err)
	require.Len(t, low, 1)
	assert.Equal(t, 2.0, low[0].Quantity)

	require.NoError(t, repo.ReturnStock(ctx, item.ID, 5))
	row, err := repo.GetJoined(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, 7.0, row.Quantity)

	_, err = repo.GetJoined(ctx, 999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestVoucherRedeemIsOneWay(t *testing.T) {
	ctx := context.Background()
	repo := NewVoucherRepository(newTestDB(t))

	v := &models.Voucher{Code: "ONCE", DiscountType: "fixed", DiscountValue: 10000}
	require.NoError(t, repo.Create(ctx, v))

	now := time.Date(2024, 6, 15, 9, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Redeem(ctx, v.ID, 42, now))
	assert.ErrorIs(t, repo.Redeem(ctx, v.ID, 43, now), ErrConflict)

	got, err := repo.FindByCode(ctx, "ONCE")
	require.NoError(t, err)
	assert.True(t, got.IsUsed)
	require.NotNil(t, got.UsedInvoiceID)
	assert.Equal(t, uint(42), *got.UsedInvoiceID)
	require.NotNil(t, got.UsedDate)
	assert.Equal(t, "2024-06-15", *got.UsedDate)
	assert.Equal(t, "USED", string(got.Status))
}

func TestVoucherUpdateLosesToRedeem(t *testing.T) {
	ctx := context.Background()
	repo := NewVoucherRepository(newTestDB(t))

	v := &models.Voucher{Code: "EDIT", DiscountType: "fixed", DiscountValue: 10000}
	require.NoError(t, repo.Create(ctx, v))

	// an edit of an unused voucher goes through and keeps redemption columns
	edit, err := repo.Get(ctx, v.ID)
	require.NoError(t, err)
	edit.DiscountValue = 15000
	require.NoError(t, repo.UpdateUnused(ctx, edit))

	// the edit was read before the voucher got redeemed
	stale, err := repo.Get(ctx, v.ID)
	require.NoError(t, err)
	require.NoError(t, repo.Redeem(ctx, v.ID, 42, time.Date(2024, 6, 15, 9, 0, 0, 0, time.UTC)))

	stale.DiscountValue = 50000
	assert.ErrorIs(t, repo.UpdateUnused(ctx, stale), ErrConflict)

	got, err := repo.Get(ctx, v.ID)
	require.NoError(t, err)
	assert.True(t, got.IsUsed)
	require.NotNil(t, got.UsedInvoiceID)
	assert.Equal(t, uint(42), *got.UsedInvoiceID)
	require.NotNil(t, got.UsedDate)
	assert.Equal(t, 15000.0, got.DiscountValue)
}

func TestPromotionUpdateKeepsUsage(t *testing.T) {
	ctx := context.Background()
	repo := NewPromotionRepository(newTestDB(t))

	limit := 1
	p := &models.Promotion{
		Name: "Hè", DiscountType: "percentage", DiscountValue: 10,
		StartDate: "2024-01-01", EndDate: "2099-12-31", IsActive: true, UsageLimit: &limit,
	}
	require.NoError(t, repo.Create(ctx, p))

	stale, err := repo.Get(ctx, p.ID)
	require.NoError(t, err)
	require.NoError(t, repo.IncrementUsage(ctx, p.ID))

	stale.Name = "Hè rực rỡ"
	stale.IsActive = false
	require.NoError(t, repo.UpdateTerms(ctx, stale))

	got, err := repo.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Hè rực rỡ", got.Name)
	assert.False(t, got.IsActive)
	assert.Equal(t, 1, got.UsedCount)
	assert.ErrorIs(t, repo.IncrementUsage(ctx, p.ID), ErrConflict)

	missing := &models.Promotion{Name: "x", DiscountType: "fixed", DiscountValue: 1}
	missing.ID = 999
	assert.ErrorIs(t, repo.UpdateTerms(ctx, missing), ErrNotFound)
}

func TestPromotionUsage(t *testing.T) {
	ctx := context.Background()
	repo := NewPromotionRepository(newTestDB(t))

	limit := 1
	p := &models.Promotion{
		Name: "Hè", DiscountType: "percentage", DiscountValue: 10,
		StartDate: "2024-01-01", EndDate: "2099-12-31", IsActive: true, UsageLimit: &limit,
	}
	require.NoError(t, repo.Create(ctx, p))

	require.NoError(t, repo.IncrementUsage(ctx, p.ID))
	assert.ErrorIs(t, repo.IncrementUsage(ctx, p.ID), ErrConflict)
	require.NoError(t, repo.ReleaseUsage(ctx, p.ID))

	active, err := repo.Active(ctx, time.Now())
	require.NoError(t, err)
	assert.Len(t, active, 1)

	toggled, err := repo.Toggle(ctx, p.ID)
	require.NoError(t, err)
	assert.False(t, toggled.IsActive)
	assert.Equal(t, "PAUSED", string(toggled.Status))

	active, err = repo.Active(ctx, time.Now())
	require.NoError(t, err)
	assert.Empty(t, active)

	_, err = repo.Toggle(ctx, 999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGroupMembers(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	groups := NewGroupRepository(db)
	customers := NewCustomerRepository(db)

	g := &models.CustomerGroup{Name: "VIP"}
	require.NoError(t, groups.Create(ctx, g))
	c := &models.Customer{Name: "Bình", Phone: "0912345678"}
	require.NoError(t, customers.Create(ctx, c))

	require.NoError(t, groups.AddMember(ctx, g.ID, c.ID))
	require.NoError(t, groups.AddMember(ctx, g.ID, c.ID), "adding twice is a no-op")

	members, err := groups.Members(ctx, g.ID)
	require.NoError(t, err)
	require.Len(t, members, 1)
	assert.Equal(t, "Bình", members[0].Name)

	ok, err := IsMember(ctx, db, g.ID, c.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, groups.RemoveMember(ctx, g.ID, c.ID))
	assert.ErrorIs(t, groups.RemoveMember(ctx, g.ID, c.ID), ErrNotFound)
}

func TestAttendanceAndReports(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	att := NewAttendanceRepository(db)

	card := "CARD1"
	e := &models.Employee{Name: "Đức", CardID: &card}
	require.NoError(t, New[models.Employee](db).Create(ctx, e))

	found, err := att.EmployeeByCard(ctx, "CARD1")
	require.NoError(t, err)
	assert.Equal(t, e.ID, found.ID)

	require.NoError(t, att.Create(ctx, &models.Attendance{EmployeeID: e.ID, Date: "2024-06-03", CheckIn: "08:00:00", CheckOut: "17:00:00", HoursWorked: 9}))
	require.NoError(t, att.Create(ctx, &models.Attendance{EmployeeID: e.ID, Date: "2024-06-04", CheckIn: "08:00:00"}))

	open, err := att.OpenRecord(ctx, e.ID, "2024-06-04")
	require.NoError(t, err)
	assert.Equal(t, "08:00:00", open.CheckIn)
	_, err = att.OpenRecord(ctx, e.ID, "2024-06-03")
	assert.ErrorIs(t, err, ErrNotFound)

	checkedIn, err := att.CheckedIn(ctx, "2024-06-04")
	require.NoError(t, err)
	assert.Equal(t, int64(1), checkedIn)

	stats, err := att.Stats(ctx, "2024-06-01", "2024-06-30")
	require.NoError(t, err)
	require.Len(t, stats, 1)
	assert.Equal(t, 2, stats[0].DaysPresent)
	assert.Equal(t, 9.0, stats[0].TotalHours)

	rows, err := att.ForDate(ctx, "2024-06-03")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Đức", rows[0].EmployeeName)

	invoices := NewInvoiceRepository(db)
	require.NoError(t, invoices.Create(ctx, &models.Invoice{
		InvoiceNumber: "HD-1", InvoiceDate: "2024-06-03", Subtotal: 200000, Total: 200000,
		Services: []models.InvoiceService{{ServiceID: 1, ServiceName: "Rửa xe", Quantity: 2, UnitPrice: 100000, TotalPrice: 200000}},
	}))
	require.NoError(t, invoices.Create(ctx, &models.Invoice{
		InvoiceNumber: "HD-2", InvoiceDate: "2024-07-01", Subtotal: 50000, Total: 50000,
	}))

	reports := NewReportRepository(db)
	revenue, err := reports.Revenue(ctx, "2024-06-01", "2024-06-30")
	require.NoError(t, err)
	assert.Equal(t, 200000.0, revenue)

	top, err := reports.TopServices(ctx, "2024-06-01", "2024-06-30", 5)
	require.NoError(t, err)
	require.Len(t, top, 1)
	assert.Equal(t, 2, top[0].Quantity)

	daily, err := reports.Daily(ctx, "2024-01-01", "2024-12-31")
	require.NoError(t, err)
	require.Len(t, daily, 2)
	assert.Equal(t, "2024-06-03", daily[0].Date)

	list, err := invoices.ListJoined(ctx, InvoiceFilter{From: "2024-07-01"})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "HD-2", list[0].InvoiceNumber)
}

func TestOilChangesDue(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewOilChangeRepository(db)

	c := &models.Customer{Name: "Cường", Phone: "0987654321"}
	require.NoError(t, NewCustomerRepository(db).Create(ctx, c))

	due := &models.OilChange{CustomerID: c.ID, ChangeDate: "2024-03-01", NextChangeDate: "2024-06-10"}
	later := &models.OilChange{CustomerID: c.ID, ChangeDate: "2024-05-01", NextChangeDate: "2024-09-01"}
	require.NoError(t, repo.Create(ctx, due))
	require.NoError(t, repo.Create(ctx, later))

	rows, err := repo.Due(ctx, "2024-06-12")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "0987654321", rows[0].CustomerPhone)

	require.NoError(t, repo.MarkReminded(ctx, due.ID))
	rows, err = repo.Due(ctx, "2024-06-12")
	require.NoError(t, err)
	assert.Empty(t, rows)
}
