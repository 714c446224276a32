package services

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"carwash-backend/config"
	"carwash-backend/models"
	"carwash-backend/pricing"
	"carwash-backend/repository"
	"carwash-backend/utils"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx"
	"gorm.io/gorm"
)

var fixedNow = time.Date(2025, 6, 15, 10, 0, 0, 0, time.Local)

func clockAt(t time.Time) Clock {
	return func() time.Time { return t }
}

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

func create[T any](t *testing.T, db *gorm.DB, item *T) *T {
	t.Helper()
	require.NoError(t, db.Create(item).Error)
	return item
}

func statusOf(err error) int {
	var appErr *utils.AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return 0
}

func ptr[T any](v T) *T { return &v }

func TestInvoicePricingScenario(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	svc := create(t, db, &models.Service{Name: "Rửa xe", BasePrice: 100000})
	cat := create(t, db, &models.CarCategory{Name: "Xe 7 chỗ", ServiceMultiplier: 1.3})

	in := &InvoiceInput{
		CustomerName:    "Nguyễn Văn An",
		CustomerPhone:   "0901234567",
		CarCategoryID:   &cat.ID,
		VehiclePlate:    "51A-12345",
		Services:        []ServiceLineInput{{ServiceID: svc.ID, Quantity: 2}},
		IncludeVAT:      true,
		DiscountPercent: ptr(pricing.Number(10)),
	}
	invoices := NewInvoiceService(db, clockAt(fixedNow))

	q, err := invoices.Preview(ctx, in)
	require.NoError(t, err)
	assert.True(t, q.Subtotal.Equal(decimal.NewFromInt(260000)))
	assert.True(t, q.VATAmount.Equal(decimal.NewFromInt(26000)))
	assert.True(t, q.DiscountAmount.Equal(decimal.NewFromInt(28600)))
	assert.True(t, q.Total.Equal(decimal.NewFromInt(257400)))
	require.Len(t, q.Services, 1)
	assert.Equal(t, 130000.0, q.Services[0].UnitPrice)

	// preview never creates the customer
	_, err = repository.NewCustomerRepository(db).FindByPhone(ctx, "0901234567")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	inv, err := invoices.Create(ctx, in)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(inv.InvoiceNumber, "HD-20250615-"))
	assert.Equal(t, 257400.0, inv.Total)
	assert.Equal(t, "2025-06-15", inv.InvoiceDate)
	assert.Equal(t, "cash", inv.PaymentMethod)
	require.NotNil(t, inv.CustomerID)

	customer, err := repository.NewCustomerRepository(db).Get(ctx, *inv.CustomerID)
	require.NoError(t, err)
	assert.Equal(t, 1, customer.TotalVisits)
	assert.Equal(t, 257400.0, customer.TotalSpent)
	assert.Equal(t, "2025-06-15", customer.LastVisit)

	stored, err := repository.NewInvoiceRepository(db).GetWithLines(ctx, inv.ID)
	require.NoError(t, err)
	require.Len(t, stored.Services, 1)
	assert.Equal(t, 260000.0, stored.Services[0].TotalPrice)
}

func TestInvoiceCustomerRateAppliesWithoutExplicitPercent(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	svc := create(t, db, &models.Service{Name: "Rửa xe", BasePrice: 200000})
	customer := create(t, db, &models.Customer{Name: "VIP", Phone: "0912345678", DiscountRate: 5})

	q, err := NewInvoiceService(db, clockAt(fixedNow)).Preview(ctx, &InvoiceInput{
		CustomerID: &customer.ID,
		Services:   []ServiceLineInput{{ServiceID: svc.ID, Quantity: 1}},
	})
	require.NoError(t, err)
	assert.True(t, q.DiscountPercent.Equal(decimal.NewFromInt(5)))
	assert.True(t, q.Total.Equal(decimal.NewFromInt(190000)))
}

func TestInvoiceRejectsEmptyDraft(t *testing.T) {
	db := newTestDB(t)
	svc := create(t, db, &models.Service{Name: "Rửa xe", BasePrice: 100000})

	_, err := NewInvoiceService(db, clockAt(fixedNow)).Create(context.Background(), &InvoiceInput{
		Services: []ServiceLineInput{{ServiceID: svc.ID, Quantity: 1, Selected: ptr(false)}},
	})
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, statusOf(err))
}

func TestInvoiceStockAndDelete(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	item := create(t, db, &models.InventoryItem{Name: "Dầu 5W-30", Quantity: 3, UnitPrice: 320000})
	invoices := NewInvoiceService(db, clockAt(fixedNow))

	_, err := invoices.Create(ctx, &InvoiceInput{
		Products: []ProductLineInput{{InventoryID: item.ID, Quantity: 5}},
	})
	require.Error(t, err)
	assert.Equal(t, http.StatusConflict, statusOf(err))

	inv, err := invoices.Create(ctx, &InvoiceInput{
		CustomerPhone: "0987654321",
		Products:      []ProductLineInput{{InventoryID: item.ID, Quantity: 2}},
	})
	require.NoError(t, err)
	assert.Equal(t, 640000.0, inv.Total)

	inventory := repository.NewInventoryRepository(db)
	got, err := inventory.Get(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, 1.0, got.Quantity)

	require.NoError(t, invoices.Delete(ctx, inv.ID))
	got, err = inventory.Get(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, 3.0, got.Quantity)

	customer, err := repository.NewCustomerRepository(db).Get(ctx, *inv.CustomerID)
	require.NoError(t, err)
	assert.Equal(t, 0, customer.TotalVisits)
	assert.Equal(t, 0.0, customer.TotalSpent)

	err = invoices.Delete(ctx, inv.ID)
	assert.Equal(t, http.StatusNotFound, statusOf(err))
}

func TestInvoiceRedeemsVoucherOnce(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	svc := create(t, db, &models.Service{Name: "Vệ sinh nội thất", BasePrice: 450000})
	create(t, db, &models.Voucher{
		Code:              "WELCOME50",
		DiscountType:      string(pricing.Fixed),
		DiscountValue:     50000,
		MinPurchaseAmount: 100000,
		ValidFrom:         "2025-01-01",
		ValidUntil:        "2025-12-31",
	})

	in := &InvoiceInput{
		Services:    []ServiceLineInput{{ServiceID: svc.ID, Quantity: 1}},
		VoucherCode: "welcome50",
	}
	invoices := NewInvoiceService(db, clockAt(fixedNow))
	inv, err := invoices.Create(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, 400000.0, inv.Total)
	require.NotNil(t, inv.VoucherID)

	vouchers := NewVoucherService(db, clockAt(fixedNow))
	res, _, err := vouchers.Validate(ctx, "WELCOME50", decimal.NewFromInt(450000), nil)
	require.NoError(t, err)
	assert.False(t, res.Valid)
	assert.Equal(t, pricing.ReasonNotFound, res.Reason)

	_, err = invoices.Create(ctx, in)
	assert.Equal(t, http.StatusBadRequest, statusOf(err))

	// deleting the invoice leaves the voucher used
	require.NoError(t, invoices.Delete(ctx, inv.ID))
	v, err := repository.NewVoucherRepository(db).FindByCode(ctx, "WELCOME50")
	require.NoError(t, err)
	assert.True(t, v.IsUsed)
}

func TestInvoicePromotionUsage(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	svc := create(t, db, &models.Service{Name: "Đánh bóng", BasePrice: 500000})
	promo := create(t, db, &models.Promotion{
		Name:              "Hè",
		DiscountType:      string(pricing.Percentage),
		DiscountValue:     20,
		MaxDiscountAmount: ptr(30000.0),
		StartDate:         "2025-06-01",
		EndDate:           "2025-06-30",
		IsActive:          true,
		UsageLimit:        ptr(1),
	})

	in := &InvoiceInput{
		Services:    []ServiceLineInput{{ServiceID: svc.ID, Quantity: 1}},
		PromotionID: &promo.ID,
	}
	invoices := NewInvoiceService(db, clockAt(fixedNow))
	inv, err := invoices.Create(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, 470000.0, inv.Total)

	_, err = invoices.Create(ctx, in)
	assert.Equal(t, http.StatusBadRequest, statusOf(err))

	require.NoError(t, invoices.Delete(ctx, inv.ID))
	got, err := repository.NewPromotionRepository(db).Get(ctx, promo.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.UsedCount)
}

func TestVoucherRestrictions(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	member := create(t, db, &models.Customer{Name: "A", Phone: "0900000001"})
	other := create(t, db, &models.Customer{Name: "B", Phone: "0900000002"})
	group := create(t, db, &models.CustomerGroup{Name: "VIP"})
	require.NoError(t, repository.NewGroupRepository(db).AddMember(ctx, group.ID, member.ID))

	create(t, db, &models.Voucher{
		Code:            "VIPONLY",
		CustomerGroupID: &group.ID,
		DiscountType:    string(pricing.Percentage),
		DiscountValue:   10,
		ValidFrom:       "2025-01-01",
		ValidUntil:      "2025-12-31",
	})
	paused := create(t, db, &models.Promotion{
		Name: "Tạm dừng", DiscountType: "fixed", DiscountValue: 1,
		StartDate: "2025-01-01", EndDate: "2025-12-31", IsActive: false,
	})
	create(t, db, &models.Voucher{
		Code:          "LINKED",
		PromotionID:   &paused.ID,
		DiscountType:  string(pricing.Fixed),
		DiscountValue: 10000,
		ValidFrom:     "2025-01-01",
		ValidUntil:    "2025-12-31",
	})

	vouchers := NewVoucherService(db, clockAt(fixedNow))
	purchase := decimal.NewFromInt(200000)

	res, _, err := vouchers.Validate(ctx, "viponly", purchase, &member.ID)
	require.NoError(t, err)
	assert.True(t, res.Valid)
	assert.True(t, res.DiscountAmount.Equal(decimal.NewFromInt(20000)))

	res, _, err = vouchers.Validate(ctx, "VIPONLY", purchase, &other.ID)
	require.NoError(t, err)
	assert.Equal(t, pricing.ReasonNotApplicable, res.Reason)

	res, _, err = vouchers.Validate(ctx, "LINKED", purchase, nil)
	require.NoError(t, err)
	assert.Equal(t, pricing.ReasonNotApplicable, res.Reason)

	res, v, err := vouchers.Validate(ctx, "MISSING", purchase, nil)
	require.NoError(t, err)
	assert.Nil(t, v)
	assert.Equal(t, pricing.ReasonNotFound, res.Reason)
}

func TestVoucherUse(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	inv := create(t, db, &models.Invoice{InvoiceNumber: "HD-1", InvoiceDate: "2025-06-15"})
	v := create(t, db, &models.Voucher{
		Code: "ONCE", DiscountType: "fixed", DiscountValue: 10000,
		ValidFrom: "2025-01-01", ValidUntil: "2025-12-31",
	})
	future := create(t, db, &models.Voucher{
		Code: "LATER", DiscountType: "fixed", DiscountValue: 10000,
		ValidFrom: "2025-07-01", ValidUntil: "2025-12-31",
	})

	vouchers := NewVoucherService(db, clockAt(fixedNow))

	_, err := vouchers.Use(ctx, v.ID, 9999)
	assert.Equal(t, http.StatusNotFound, statusOf(err))

	used, err := vouchers.Use(ctx, v.ID, inv.ID)
	require.NoError(t, err)
	assert.True(t, used.IsUsed)
	require.NotNil(t, used.UsedDate)
	assert.Equal(t, "2025-06-15", *used.UsedDate)
	assert.Equal(t, &inv.ID, used.UsedInvoiceID)

	_, err = vouchers.Use(ctx, v.ID, inv.ID)
	assert.Equal(t, http.StatusConflict, statusOf(err))

	_, err = vouchers.Use(ctx, future.ID, inv.ID)
	assert.Equal(t, http.StatusBadRequest, statusOf(err))
}

func TestVoucherPrepareCode(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	create(t, db, &models.Voucher{Code: "TAKEN", DiscountType: "fixed", DiscountValue: 1})
	vouchers := NewVoucherService(db, clockAt(fixedNow))

	v := &models.Voucher{Code: " taken "}
	err := vouchers.PrepareCode(ctx, v)
	assert.Equal(t, http.StatusConflict, statusOf(err))
	assert.Equal(t, "TAKEN", v.Code)

	generated := &models.Voucher{}
	require.NoError(t, vouchers.PrepareCode(ctx, generated))
	assert.True(t, strings.HasPrefix(generated.Code, "VC-"))
}

func TestAttendanceSwipe(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	emp := create(t, db, &models.Employee{Name: "Đức", CardID: ptr("CARD001"), Status: "active"})
	create(t, db, &models.Employee{Name: "Em", CardID: ptr("CARD002"), Status: "inactive"})

	now := time.Date(2025, 6, 15, 8, 0, 0, 0, time.Local)
	svc := NewAttendanceService(db, func() time.Time { return now })

	in, err := svc.Swipe(ctx, "CARD001")
	require.NoError(t, err)
	assert.Equal(t, SwipeCheckIn, in.Action)
	assert.Equal(t, emp.ID, in.Employee.ID)
	assert.Equal(t, "08:00:00", in.Attendance.CheckIn)

	now = now.Add(8*time.Hour + 30*time.Minute)
	out, err := svc.Swipe(ctx, "CARD001")
	require.NoError(t, err)
	assert.Equal(t, SwipeCheckOut, out.Action)
	assert.Equal(t, "16:30:00", out.Attendance.CheckOut)
	assert.Equal(t, 8.5, out.Attendance.HoursWorked)

	again, err := svc.Swipe(ctx, "CARD001")
	require.NoError(t, err)
	assert.Equal(t, SwipeCheckIn, again.Action)

	_, err = svc.Swipe(ctx, "CARD002")
	assert.Equal(t, http.StatusBadRequest, statusOf(err))
	_, err = svc.Swipe(ctx, "NOPE")
	assert.Equal(t, http.StatusNotFound, statusOf(err))
	_, err = svc.Swipe(ctx, "  ")
	assert.Equal(t, http.StatusBadRequest, statusOf(err))

	stats, err := svc.Stats(ctx, "2025-06")
	require.NoError(t, err)
	require.NotEmpty(t, stats)

	_, err = svc.Stats(ctx, "June")
	assert.Equal(t, http.StatusBadRequest, statusOf(err))
}

func TestHoursBetween(t *testing.T) {
	assert.Equal(t, 1.5, hoursBetween("08:00:00", "09:30:00"))
	assert.Equal(t, 0.0, hoursBetween("09:00:00", "08:00:00"))
	assert.Equal(t, 0.0, hoursBetween("bad", "08:00:00"))
}

type fakeSender struct {
	sent []string
	fail bool
}

func (f *fakeSender) Send(_ context.Context, to, body string) error {
	if f.fail {
		return errors.New("gateway down")
	}
	f.sent = append(f.sent, to+"|"+body)
	return nil
}

func TestSendDueReminders(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	customer := create(t, db, &models.Customer{Name: "An", Phone: "0901234567"})
	create(t, db, &models.OilChange{CustomerID: customer.ID, VehiclePlate: "51A-12345", ChangeDate: "2025-03-15", NextChangeDate: "2025-06-17"})
	create(t, db, &models.OilChange{CustomerID: customer.ID, VehiclePlate: "51A-99999", ChangeDate: "2025-03-15", NextChangeDate: "2025-09-15"})

	sender := &fakeSender{fail: true}
	svc := NewReminderService(db, sender, 3, config.Shop{Name: "Car Wash"}, clockAt(fixedNow))

	run, err := svc.SendDueReminders(ctx)
	require.NoError(t, err)
	assert.Equal(t, ReminderRun{Failed: 1}, run)

	// a failed reminder is retried on the next run
	sender.fail = false
	run, err = svc.SendDueReminders(ctx)
	require.NoError(t, err)
	assert.Equal(t, ReminderRun{Sent: 1}, run)
	require.Len(t, sender.sent, 1)
	assert.Equal(t, "+84901234567|Chào An, xe 51A-12345 đến hạn thay dầu vào ngày 17/06/2025. Hẹn gặp lại quý khách tại Car Wash!", sender.sent[0])

	run, err = svc.SendDueReminders(ctx)
	require.NoError(t, err)
	assert.Equal(t, ReminderRun{}, run)

	logs, err := repository.NewOilChangeRepository(db).ReminderLogs(ctx, 10)
	require.NoError(t, err)
	require.Len(t, logs, 2)
}

func TestToE164(t *testing.T) {
	assert.Equal(t, "+84901234567", toE164("090 123 4567"))
	assert.Equal(t, "+84901234567", toE164("84901234567"))
	assert.Equal(t, "+14155550100", toE164("+1 415-555-0100"))
}

func TestImageStore(t *testing.T) {
	store, err := NewImageStore(filepath.Join(t.TempDir(), "uploads"))
	require.NoError(t, err)

	img := image.NewRGBA(image.Rect(0, 0, 2000, 10))
	for x := 0; x < 2000; x++ {
		img.Set(x, 5, color.RGBA{R: 255, A: 255})
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	dataURL := "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())

	name, err := store.SaveDataURL(dataURL)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(name, ".jpg"))

	f, err := os.Open(filepath.Join(store.Dir(), name))
	require.NoError(t, err)
	cfg, _, err := image.DecodeConfig(f)
	f.Close()
	require.NoError(t, err)
	assert.Equal(t, maxImageWidth, cfg.Width)

	require.NoError(t, store.Remove(name))
	require.NoError(t, store.Remove(name))
	_, err = os.Stat(filepath.Join(store.Dir(), name))
	assert.True(t, os.IsNotExist(err))

	_, err = store.SaveDataURL("data:image/png;base64,!!!")
	assert.ErrorIs(t, err, ErrInvalidImage)
	_, err = store.SaveDataURL("https://example.com/a.png")
	assert.ErrorIs(t, err, ErrInvalidImage)
}

func TestRenderInvoicePDF(t *testing.T) {
	inv := &models.Invoice{
		InvoiceNumber: "HD-20250615-ABC123",
		InvoiceDate:   "2025-06-15",
		VehiclePlate:  "51A-12345",
		PaymentMethod: "cash",
		Subtotal:      260000,
		IncludeVAT:    true,
		VATAmount:     26000,
		Total:         286000,
		Note:          "Khách hẹn lấy xe lúc 17h",
		Services: []models.InvoiceService{
			{ServiceName: "Rửa xe cao cấp", Quantity: 2, UnitPrice: 130000, TotalPrice: 260000},
		},
	}
	out, err := RenderInvoicePDF(inv, &models.Customer{Name: "Nguyễn Văn An", Phone: "0901234567"}, config.Shop{Name: "Car Wash Đà Nẵng"})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestASCII(t *testing.T) {
	assert.Equal(t, "Nguyen Van An", ascii("Nguyễn Văn An"))
	assert.Equal(t, "Da Nang", ascii("Đà Nẵng"))
	assert.Equal(t, "1.250.000 VND", vnd(1250000))
}

func TestReports(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	svc := create(t, db, &models.Service{Name: "Rửa xe", BasePrice: 100000})
	invoices := NewInvoiceService(db, clockAt(fixedNow))
	for i := 0; i < 3; i++ {
		_, err := invoices.Create(ctx, &InvoiceInput{
			CustomerPhone: "0901234567",
			Services:      []ServiceLineInput{{ServiceID: svc.ID, Quantity: 1}},
		})
		require.NoError(t, err)
	}
	create(t, db, &models.Expense{Category: "Điện", Amount: 50000, ExpenseDate: "2025-06-10"})

	reports := NewReportService(db, clockAt(fixedNow))
	r, err := reports.Range(ctx, "", "")
	require.NoError(t, err)
	assert.Equal(t, "2025-06-01", r.From)
	assert.Equal(t, "2025-06-15", r.To)
	assert.Equal(t, 300000.0, r.Revenue)
	assert.Equal(t, int64(3), r.Invoices)
	assert.Equal(t, 250000.0, r.Profit)
	require.Len(t, r.TopServices, 1)
	assert.Equal(t, 3, r.TopServices[0].Quantity)
	require.Len(t, r.TopCustomers, 1)
	assert.Equal(t, 3, r.TopCustomers[0].Visits)

	_, err = reports.Range(ctx, "2025-06-30", "2025-06-01")
	assert.Equal(t, http.StatusBadRequest, statusOf(err))

	a, err := reports.Analytics(ctx, "", "")
	require.NoError(t, err)
	assert.Equal(t, 300000.0, a.MonthRevenue)
	assert.Equal(t, 100.0, a.MonthGrowth)

	d, err := reports.Dashboard(ctx)
	require.NoError(t, err)
	assert.Equal(t, 300000.0, d.TodayRevenue)
	assert.Equal(t, int64(3), d.TodayInvoices)
	assert.Len(t, d.RecentInvoices, 3)

	var buf bytes.Buffer
	require.NoError(t, WriteReportWorkbook(&buf, r, config.Shop{Name: "Car Wash"}))
	book, err := xlsx.OpenBinary(buf.Bytes())
	require.NoError(t, err)
	require.Len(t, book.Sheets, 4)
	assert.Equal(t, "Rửa xe", book.Sheets[2].Rows[1].Cells[0].Value)
}

func TestQuarterHelpers(t *testing.T) {
	d := time.Date(2025, 8, 20, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "2025-07-01", utils.FormatDate(QuarterStart(d)))
	assert.Equal(t, "2025-09-30", utils.FormatDate(QuarterEnd(d)))

	assert.Equal(t, 0.0, GrowthPercentage(0, 0))
	assert.Equal(t, 100.0, GrowthPercentage(10, 0))
	assert.Equal(t, 50.0, GrowthPercentage(150, 100))
	assert.Equal(t, -33.33, GrowthPercentage(200, 300))
}

func TestLowStockSweep(t *testing.T) {
	db := newTestDB(t)
	create(t, db, &models.InventoryItem{Name: "Dầu", Quantity: 2, ReorderPoint: 5})
	create(t, db, &models.InventoryItem{Name: "Nước rửa", Quantity: 20, ReorderPoint: 5})

	rows, err := LowStockSweep(context.Background(), db)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Dầu", rows[0].Name)
}

func TestNewSchedulerRejectsBadSpec(t *testing.T) {
	db := newTestDB(t)
	reminders := NewReminderService(db, LogSender{}, 3, config.Shop{}, nil)

	_, err := NewScheduler(db, reminders, "not a cron")
	assert.Error(t, err)

	s, err := NewScheduler(db, reminders, "0 8 * * *")
	require.NoError(t, err)
	s.Start()
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	s.Stop(ctx)
}
