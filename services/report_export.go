package services

import (
	"io"

	"carwash-backend/config"

	"github.com/tealeg/xlsx"
)

func boldStyle() *xlsx.Style {
	style := xlsx.NewStyle()
	font := xlsx.DefaultFont()
	font.Bold = true
	style.Font = *font
	style.ApplyFont = true
	return style
}

func headerRow(sheet *xlsx.Sheet, titles ...string) {
	row := sheet.AddRow()
	style := boldStyle()
	for _, t := range titles {
		cell := row.AddCell()
		cell.SetString(t)
		cell.SetStyle(style)
	}
}

// WriteReportWorkbook renders a range report as an xlsx workbook with a
// summary sheet plus daily, service and customer breakdowns.
func WriteReportWorkbook(w io.Writer, r *RangeReport, shop config.Shop) error {
	file := xlsx.NewFile()

	summary, err := file.AddSheet("Tong quan")
	if err != nil {
		return err
	}
	title := summary.AddRow().AddCell()
	title.SetString(shop.Name + " - Báo cáo doanh thu")
	title.SetStyle(boldStyle())
	summary.AddRow().AddCell().SetString("Từ " + r.From + " đến " + r.To)
	summary.AddRow()

	for _, kv := range []struct {
		label string
		value float64
	}{
		{"Doanh thu", r.Revenue},
		{"Số hóa đơn", float64(r.Invoices)},
		{"Chi phí", r.Expenses},
		{"Lợi nhuận", r.Profit},
		{"Khách hàng mới", float64(r.NewCustomers)},
	} {
		row := summary.AddRow()
		row.AddCell().SetString(kv.label)
		row.AddCell().SetFloat(kv.value)
	}

	daily, err := file.AddSheet("Theo ngay")
	if err != nil {
		return err
	}
	headerRow(daily, "Ngày", "Số hóa đơn", "Doanh thu")
	for _, d := range r.Daily {
		row := daily.AddRow()
		row.AddCell().SetString(d.Date)
		row.AddCell().SetInt(d.Invoices)
		row.AddCell().SetFloat(d.Revenue)
	}

	services, err := file.AddSheet("Dich vu")
	if err != nil {
		return err
	}
	headerRow(services, "Dịch vụ", "Số lượng", "Doanh thu")
	for _, s := range r.TopServices {
		row := services.AddRow()
		row.AddCell().SetString(s.ServiceName)
		row.AddCell().SetInt(s.Quantity)
		row.AddCell().SetFloat(s.Revenue)
	}

	customers, err := file.AddSheet("Khach hang")
	if err != nil {
		return err
	}
	headerRow(customers, "Khách hàng", "Điện thoại", "Số lần", "Chi tiêu")
	for _, c := range r.TopCustomers {
		row := customers.AddRow()
		row.AddCell().SetString(c.Name)
		row.AddCell().SetString(c.Phone)
		row.AddCell().SetInt(c.Visits)
		row.AddCell().SetFloat(c.Spent)
	}

	return file.Write(w)
}
