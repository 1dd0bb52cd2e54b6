package rebalance

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/shopspring/decimal"
)

// this file contains functions to handle the CSV exchange formats.
// They should remain human readable and loadable in a spreadsheet.

var holdingsHeader = []string{"Account", "TaxStatus", "Identifier", "Sleeve", "Shares", "Price", "AverageCost"}

// DecodeHoldings reads holdings from 'r' in the holdings CSV format.
//
// The format is a CSV file with header
// Account,TaxStatus,Identifier,Sleeve,Shares,Price,AverageCost where Shares,
// Price and AverageCost are decimal numbers. Any invalid row fails the whole
// read with a DataError: ingestion is all-or-nothing.
func DecodeHoldings(r io.Reader) ([]Holding, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, &DataError{Reason: fmt.Sprintf("cannot read holdings header: %v", err)}
	}
	if err := checkHeader(header, holdingsHeader); err != nil {
		return nil, err
	}

	var holdings []Holding
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &DataError{Reason: fmt.Sprintf("cannot read holdings row: %v", err)}
		}
		shares, err := parseDecimal(record[4], "Shares", record)
		if err != nil {
			return nil, err
		}
		price, err := parseDecimal(record[5], "Price", record)
		if err != nil {
			return nil, err
		}
		cost, err := parseDecimal(record[6], "AverageCost", record)
		if err != nil {
			return nil, err
		}
		h := Holding{
			Account:     record[0],
			TaxStatus:   record[1],
			Identifier:  record[2],
			Sleeve:      record[3],
			Shares:      Q(shares),
			Price:       M(price),
			AverageCost: M(cost),
		}
		if err := h.Validate(); err != nil {
			return nil, err
		}
		holdings = append(holdings, h)
	}
	return holdings, nil
}

// EncodeHoldings writes holdings to 'w' in the holdings CSV format, the same
// schema DecodeHoldings reads. It is used for the holdings-after snapshot.
func EncodeHoldings(w io.Writer, holdings []Holding) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(holdingsHeader); err != nil {
		return err
	}
	for _, h := range holdings {
		record := []string{
			h.Account,
			h.TaxStatus,
			h.Identifier,
			h.Sleeve,
			h.Shares.value.String(),
			h.Price.value.String(),
			h.AverageCost.value.Round(4).String(),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

var targetsHeader = []string{"Band", "Sleeve", "Weight", "Proxy", "ProxyPrice"}

// DecodeTargetTable reads the per-band target weights from 'r'.
//
// The format is a CSV file with header Band,Sleeve,Weight,Proxy,ProxyPrice:
// one row per (band, sleeve), Weight a fraction, Proxy the identifier to buy
// when an account holds nothing in the sleeve, ProxyPrice its price. Proxy
// and ProxyPrice may be empty. Weight sums are checked at Resolve time, not
// here, so a table may carry bands that are never requested.
func DecodeTargetTable(r io.Reader) (*TargetTable, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, &ConfigurationError{Reason: fmt.Sprintf("cannot read targets header: %v", err)}
	}
	if err := checkTargetsHeader(header); err != nil {
		return nil, err
	}

	bands := make(map[int][]SleeveTarget)
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &ConfigurationError{Reason: fmt.Sprintf("cannot read targets row: %v", err)}
		}
		band, err := strconv.Atoi(record[0])
		if err != nil {
			return nil, &ConfigurationError{Reason: fmt.Sprintf("invalid band %q", record[0])}
		}
		weight, err := decimal.NewFromString(record[2])
		if err != nil {
			return nil, &ConfigurationError{Band: band, Reason: fmt.Sprintf("invalid weight %q for sleeve %q", record[2], record[1])}
		}
		st := SleeveTarget{
			Sleeve: record[1],
			Weight: W(weight),
			Proxy:  record[3],
		}
		if record[4] != "" {
			price, err := decimal.NewFromString(record[4])
			if err != nil {
				return nil, &ConfigurationError{Band: band, Reason: fmt.Sprintf("invalid proxy price %q for sleeve %q", record[4], record[1])}
			}
			st.ProxyPrice = M(price)
		}
		bands[band] = append(bands[band], st)
	}
	return NewTargetTable(bands), nil
}

var tradesHeader = []string{"Account", "TaxStatus", "Identifier", "Sleeve", "Action", "Shares_Delta", "Price", "AverageCost", "Delta_$", "CapGain_$"}

// EncodeTransactions writes the trade list to 'w' in the trades CSV format:
// Account,TaxStatus,Identifier,Sleeve,Action,Shares_Delta,Price,AverageCost,Delta_$,CapGain_$.
func EncodeTransactions(w io.Writer, txs []Transaction) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(tradesHeader); err != nil {
		return err
	}
	for _, tx := range txs {
		record := []string{
			tx.Account,
			tx.TaxStatus,
			tx.Identifier,
			tx.Sleeve,
			string(tx.Action),
			tx.Shares.value.String(),
			tx.Price.value.StringFixed(2),
			tx.AverageCost.value.StringFixed(2),
			tx.Delta.value.StringFixed(2),
			tx.CapitalGain.value.StringFixed(2),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func checkHeader(got, want []string) error {
	if len(got) != len(want) {
		return &DataError{Reason: fmt.Sprintf("unexpected header %v, want %v", got, want)}
	}
	for i := range want {
		if got[i] != want[i] {
			return &DataError{Reason: fmt.Sprintf("unexpected header column %q, want %q", got[i], want[i])}
		}
	}
	return nil
}

func checkTargetsHeader(got []string) error {
	if len(got) != len(targetsHeader) {
		return &ConfigurationError{Reason: fmt.Sprintf("unexpected header %v, want %v", got, targetsHeader)}
	}
	for i := range targetsHeader {
		if got[i] != targetsHeader[i] {
			return &ConfigurationError{Reason: fmt.Sprintf("unexpected header column %q, want %q", got[i], targetsHeader[i])}
		}
	}
	return nil
}

func parseDecimal(field, column string, record []string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(field)
	if err != nil {
		return decimal.Decimal{}, &DataError{
			Account:    record[0],
			Identifier: record[2],
			Reason:     fmt.Sprintf("invalid %s %q", column, field),
		}
	}
	return d, nil
}
