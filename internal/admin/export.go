package admin

import (
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/flicky/haiti-storefront/internal/model"
	"github.com/flicky/haiti-storefront/internal/pricing"
)

const sheetName = "Orders"

var exportHeader = []any{
	"Order Number", "Created", "Customer", "Email", "Phone", "Delivery Method", "Department",
	"Subtotal", "Delivery Fee", "Total", "Upfront", "On Delivery",
	"Payment Status", "Order Status",
	"First Payment", "Final Payment", "Confirmed", "Ready", "Delivered", "Admin Notes",
}

// ExportXLSX writes one row per order to w as an Excel workbook.
func ExportXLSX(w io.Writer, orders []model.Order) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	if err := f.SetSheetRow(sheetName, "A1", &exportHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for i, o := range orders {
		up, down := pricing.Split(o.Total)
		department := ""
		if o.DeliveryAddress != nil {
			department = string(o.DeliveryAddress.Department)
		}
		row := []any{
			o.OrderNumber, o.CreatedAt.Format(time.RFC3339), o.Customer.Name, o.Customer.Email, o.Customer.Phone,
			string(o.DeliveryMethod), department,
			o.Subtotal.InexactFloat64(), o.DeliveryFee.InexactFloat64(), o.Total.InexactFloat64(),
			up.InexactFloat64(), down.InexactFloat64(),
			string(o.PaymentStatus), string(o.OrderStatus),
			formatTime(o.FirstPaymentDate), formatTime(o.FinalPaymentDate),
			formatTime(o.ConfirmedAt), formatTime(o.ReadyAt), formatTime(o.DeliveredAt),
			o.AdminNotes,
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("cell name: %w", err)
		}
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func formatTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(time.RFC3339)
}
