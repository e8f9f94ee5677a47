package history

import (
	"fmt"
	"strings"

	"github.com/garagelab/modstudio-backend/pkg/db/models"
)

const (
	billWidth  = 70
	studioName = "CUSTOM CAR MODIFICATION STUDIO"
)

// RenderBill formats a finalized bill as the printable 70-column receipt
// handed to customers.
func RenderBill(bill *models.Bill, customer *models.Customer, carLabel string) string {
	heavy := strings.Repeat("=", billWidth)
	light := strings.Repeat("-", billWidth)
	if carLabel == "" {
		carLabel = "N/A"
	}

	var b strings.Builder
	b.WriteString(heavy + "\n")
	b.WriteString(center(studioName) + "\n")
	b.WriteString(heavy + "\n")
	fmt.Fprintf(&b, "%-15s %s\n", "Bill No:", bill.BillNumber)
	fmt.Fprintf(&b, "%-15s %s\n", "Date:", bill.CreatedAt.Format("2006-01-02 15:04:05"))
	b.WriteString(heavy + "\n")
	fmt.Fprintf(&b, "%-15s %s\n", "Customer:", customer.Name)
	fmt.Fprintf(&b, "%-15s %s\n", "Email:", customer.Email)
	fmt.Fprintf(&b, "%-15s %s\n", "Car:", carLabel)
	fmt.Fprintf(&b, "%-15s %s\n", "Payment:", bill.PaymentMethod)
	b.WriteString(heavy + "\n")
	b.WriteString(center("MODIFICATIONS") + "\n")
	b.WriteString(light + "\n")

	for i, item := range bill.Items {
		price := item.UnitPrice.StringFixed(2)
		fmt.Fprintf(&b, "%-5d %-40s $%8s $%8s\n", i+1, item.Name, price, price)
	}

	b.WriteString("\n" + light + "\n")
	fmt.Fprintf(&b, "%-55s $%10s\n", "Subtotal:", bill.Subtotal.StringFixed(2))
	fmt.Fprintf(&b, "%-55s -$%10s\n", "Discount:", bill.DiscountAmount.StringFixed(2))
	fmt.Fprintf(&b, "%-55s $%10s\n", "GST (18%):", bill.GSTAmount.StringFixed(2))
	b.WriteString(heavy + "\n")
	fmt.Fprintf(&b, "%-55s $%10s\n", "TOTAL AMOUNT:", bill.Total.StringFixed(2))
	b.WriteString(heavy + "\n")
	b.WriteString("Thank you for your business!\n")
	b.WriteString("Visit again for more modifications!\n")
	return b.String()
}

func center(s string) string {
	if len(s) >= billWidth {
		return s
	}
	pad := (billWidth - len(s)) / 2
	return strings.Repeat(" ", pad) + s
}
