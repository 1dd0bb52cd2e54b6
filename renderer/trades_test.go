package renderer

import (
	"strings"
	"testing"

	"github.com/openfolio/rebalance"
)

func testPlan() *rebalance.Plan {
	return &rebalance.Plan{
		Band: 8,
		Transactions: []rebalance.Transaction{
			{
				Account: "IRA1", TaxStatus: "ROTH IRA", Identifier: "BND", Sleeve: "Bonds",
				Action: rebalance.Buy, Shares: rebalance.Q(80), Price: rebalance.M(100),
				Delta: rebalance.M(8000),
			},
			{
				Account: "IRA1", TaxStatus: "ROTH IRA", Identifier: "VTI", Sleeve: "US Equity",
				Action: rebalance.Sell, Shares: rebalance.Q(40), Price: rebalance.M(200),
				AverageCost: rebalance.M(150), Delta: rebalance.M(-8000),
				CapitalGain: rebalance.M(2000),
			},
			{
				Account: "TRUST1", TaxStatus: "Trust", Identifier: "VTI", Sleeve: "US Equity",
				Action: rebalance.Sell, Shares: rebalance.Q(10), Price: rebalance.M(200),
				AverageCost: rebalance.M(100), Delta: rebalance.M(-2000),
				CapitalGain: rebalance.M(1000),
			},
		},
	}
}

func TestTaxRate(t *testing.T) {
	testCases := []struct {
		status string
		want   rebalance.Weight
	}{
		{status: "HSA", want: rebalance.W(0)},
		{status: "ROTH IRA", want: rebalance.W(0)},
		{status: "Trust", want: rebalance.W(0.20)},
		{status: "Taxable", want: rebalance.W(0.15)},
		{status: "Joint", want: rebalance.W(0.15)},
	}
	for _, tc := range testCases {
		if got := TaxRate(tc.status); !got.Equal(tc.want) {
			t.Errorf("TaxRate(%q) = %s, want %s", tc.status, got, tc.want)
		}
	}
}

func TestEstimatedTax(t *testing.T) {
	if got := EstimatedTax("ROTH IRA", rebalance.M(2000)); !got.IsZero() {
		t.Errorf("EstimatedTax(ROTH IRA, $2,000) = %s, want zero", got)
	}
	if got := EstimatedTax("Trust", rebalance.M(1000)); !got.Equal(rebalance.M(200)) {
		t.Errorf("EstimatedTax(Trust, $1,000) = %s, want $200.00", got)
	}
	if got := EstimatedTax("Taxable", rebalance.M(1000)); !got.Equal(rebalance.M(150)) {
		t.Errorf("EstimatedTax(Taxable, $1,000) = %s, want $150.00", got)
	}
}

func TestSummarize(t *testing.T) {
	summaries := Summarize(testPlan().Transactions)
	if len(summaries) != 2 {
		t.Fatalf("Summarize() returned %d summaries, want 2", len(summaries))
	}
	ira := summaries[0]
	if ira.Account != "IRA1" {
		t.Fatalf("summaries[0] = %q, want IRA1 first", ira.Account)
	}
	if !ira.Buys.Equal(rebalance.M(8000)) || !ira.Sells.Equal(rebalance.M(8000)) {
		t.Errorf("IRA1 buys = %s sells = %s, want $8,000.00 each", ira.Buys, ira.Sells)
	}
	if !ira.NetGain.Equal(rebalance.M(2000)) || !ira.EstTax.IsZero() {
		t.Errorf("IRA1 gain = %s tax = %s, want $2,000.00 gain and no tax", ira.NetGain, ira.EstTax)
	}
	trust := summaries[1]
	if !trust.NetGain.Equal(rebalance.M(1000)) || !trust.EstTax.Equal(rebalance.M(200)) {
		t.Errorf("TRUST1 gain = %s tax = %s, want $1,000.00 and $200.00", trust.NetGain, trust.EstTax)
	}
}

func TestSummarizeByStatus(t *testing.T) {
	summaries := SummarizeByStatus(testPlan().Transactions)
	if len(summaries) != 2 {
		t.Fatalf("SummarizeByStatus() returned %d summaries, want 2", len(summaries))
	}
	// Sorted by status: ROTH IRA before Trust.
	if summaries[0].TaxStatus != "ROTH IRA" || summaries[1].TaxStatus != "Trust" {
		t.Fatalf("statuses = %q, %q", summaries[0].TaxStatus, summaries[1].TaxStatus)
	}
	if !summaries[1].Sells.Equal(rebalance.M(2000)) || !summaries[1].EstTax.Equal(rebalance.M(200)) {
		t.Errorf("Trust sells = %s tax = %s, want $2,000.00 and $200.00", summaries[1].Sells, summaries[1].EstTax)
	}
}

func TestTradesMarkdown(t *testing.T) {
	md := TradesMarkdown(testPlan())
	for _, want := range []string{
		"# Transaction List - Target 8% Vol",
		"## Account: IRA1",
		"Tax Status: ROTH IRA",
		"| VTI | US Equity | SELL | 40 | $200.00 | $150.00 | ($8,000.00) | $2,000.00 |",
		"| BND | Bonds | BUY | 80 | $100.00 |",
		"- Total Buys: $8,000.00",
		"- Net Realized Capital Gain: $2,000.00",
		"## Tax Status Summary",
		"| Trust | $0.00 | $2,000.00 | $1,000.00 | $200.00 |",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown is missing %q:\n%s", want, md)
		}
	}
}

func TestTradesMarkdown_Empty(t *testing.T) {
	md := TradesMarkdown(&rebalance.Plan{Band: 12})
	if !strings.Contains(md, "Target 12% Vol") {
		t.Errorf("markdown is missing the band title:\n%s", md)
	}
	if !strings.Contains(md, "No trades") {
		t.Errorf("markdown is missing the no-trades message:\n%s", md)
	}
	if strings.Contains(md, "## Account") {
		t.Errorf("empty plan rendered account sections:\n%s", md)
	}
}

func TestResidualsMarkdown(t *testing.T) {
	md := ResidualsMarkdown(rebalance.Residuals{})
	if !strings.Contains(md, "All accounts reconcile") {
		t.Errorf("empty residuals did not render the all-clear line:\n%s", md)
	}
	md = ResidualsMarkdown(rebalance.Residuals{
		"IRA1":   rebalance.M(-231.40),
		"TRUST1": rebalance.M(150),
	})
	if !strings.Contains(md, "- IRA1: -$231.40") {
		t.Errorf("markdown is missing the IRA1 residual:\n%s", md)
	}
	if !strings.Contains(md, "- TRUST1: +$150.00") {
		t.Errorf("markdown is missing the TRUST1 residual:\n%s", md)
	}
	// Sorted by account.
	if strings.Index(md, "IRA1") > strings.Index(md, "TRUST1") {
		t.Errorf("residual accounts out of order:\n%s", md)
	}
}

func TestCurrency(t *testing.T) {
	if got := currency(rebalance.M(-1234.5)); got != "($1,234.50)" {
		t.Errorf("currency(-1234.5) = %q, want accounting parens", got)
	}
	if got := currency(rebalance.M(0)); got != "$0.00" {
		t.Errorf("currency(0) = %q, want $0.00", got)
	}
}
