package renderer

import (
	"fmt"

	"github.com/go-pdf/fpdf"
	"github.com/openfolio/rebalance"
)

// column widths (mm) for the per-account trade table on Letter portrait.
var tradeColumns = []struct {
	header string
	width  float64
	align  string
}{
	{"Identifier", 32, "L"},
	{"Sleeve", 24, "L"},
	{"Action", 14, "C"},
	{"Shares", 20, "R"},
	{"Price", 20, "R"},
	{"AvgCost", 20, "R"},
	{"Delta $", 24, "R"},
	{"CapGain $", 24, "R"},
}

// TradesPDF writes the trade plan as a PDF file: one block per account with
// its trades and totals, then a tax status summary table. It uses the
// built-in Helvetica core font, so no font provisioning is required.
func TradesPDF(plan *rebalance.Plan, outfile string) error {
	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.SetAutoPageBreak(true, 12)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "", 12)
	pdf.CellFormat(0, 8, fmt.Sprintf("Transaction List - Target %d%% Vol", plan.Band), "", 1, "L", false, 0, "")

	kv := func(label, value string) {
		pdf.SetFont("Helvetica", "", 10)
		pdf.CellFormat(65, 6, label, "", 0, "L", false, 0, "")
		pdf.CellFormat(40, 6, value, "", 1, "R", false, 0, "")
	}

	for _, s := range Summarize(plan.Transactions) {
		pdf.Ln(2)
		pdf.SetFont("Helvetica", "", 11)
		pdf.CellFormat(0, 7, "Account: "+s.Account, "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		pdf.CellFormat(0, 6, "Tax Status: "+s.TaxStatus, "", 1, "L", false, 0, "")

		pdf.SetFont("Helvetica", "", 10)
		for _, col := range tradeColumns {
			pdf.CellFormat(col.width, 7, col.header, "1", 0, col.align, false, 0, "")
		}
		pdf.Ln(7)

		pdf.SetFont("Helvetica", "", 9)
		for _, tx := range plan.Transactions {
			if tx.Account != s.Account {
				continue
			}
			values := []string{
				tx.Identifier, tx.Sleeve, string(tx.Action),
				fmt.Sprintf("%.1f", tx.Shares.Float64()),
				currency(tx.Price), currency(tx.AverageCost),
				currency(tx.Delta), currency(tx.CapitalGain),
			}
			for i, col := range tradeColumns {
				pdf.CellFormat(col.width, 7, values[i], "1", 0, col.align, false, 0, "")
			}
			pdf.Ln(7)
		}

		pdf.Ln(2)
		kv("Total Buys", currency(s.Buys))
		kv("Total Sells", currency(s.Sells))
		kv("Net Realized Capital Gain", currency(s.NetGain))
		kv("Est Cap Gains Tax", currency(s.EstTax))
		pdf.Ln(2)
	}

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, 7, "Tax Status Summary", "", 1, "L", false, 0, "")

	statusColumns := []struct {
		header string
		width  float64
		align  string
	}{
		{"Tax Status", 40, "L"},
		{"Total Buys", 35, "R"},
		{"Total Sells", 35, "R"},
		{"Net CapGain", 35, "R"},
		{"Est Tax", 35, "R"},
	}
	pdf.SetFont("Helvetica", "", 10)
	for _, col := range statusColumns {
		pdf.CellFormat(col.width, 7, col.header, "1", 0, col.align, false, 0, "")
	}
	pdf.Ln(7)
	pdf.SetFont("Helvetica", "", 9)
	for _, s := range SummarizeByStatus(plan.Transactions) {
		values := []string{
			s.TaxStatus, currency(s.Buys), currency(s.Sells),
			currency(s.NetGain), currency(s.EstTax),
		}
		for i, col := range statusColumns {
			pdf.CellFormat(col.width, 7, values[i], "1", 0, col.align, false, 0, "")
		}
		pdf.Ln(7)
	}

	return pdf.OutputFileAndClose(outfile)
}
