// Package upi builds `upi://pay` deep links for mobile payment apps. The
// builder is pure: same inputs, same URI, no I/O.
package upi

import (
	"fmt"
	"net/url"
	"strings"
)

// Params are the fields carried in a pay deep link. AmountCents must be
// non-negative; it is expected to come from the pricing engine, which already
// clamps at zero.
type Params struct {
	PayeeVPA    string
	PayeeName   string
	AmountCents int64
	Currency    string
}

// FormatAmount renders an integer paise amount as a two-decimal rupee string
// ("150050" → "1500.50") using integer division only, so no value in range
// ever picks up floating drift.
func FormatAmount(amountCents int64) string {
	return fmt.Sprintf("%d.%02d", amountCents/100, amountCents%100)
}

// queryEscape percent-encodes a query value. Spaces become %20, not "+";
// payment apps do not reliably decode form encoding.
func queryEscape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

// BuildPayURI assembles the deep link. Parameter order (pa, pn, am, cu) is
// part of the artifact, so the query string is built by hand instead of
// through url.Values, which sorts keys. A negative amount indicates a bug
// upstream of the builder and is rejected.
func BuildPayURI(p Params) (string, error) {

	if p.AmountCents < 0 {
		return "", fmt.Errorf("upi: negative amount %d", p.AmountCents)
	}

	return fmt.Sprintf("upi://pay?pa=%s&pn=%s&am=%s&cu=%s",
		queryEscape(p.PayeeVPA),
		queryEscape(p.PayeeName),
		FormatAmount(p.AmountCents),
		queryEscape(p.Currency)), nil
}

// Builder binds the fixed merchant identity from configuration, leaving only
// the amount to supply per payment.
type Builder struct {
	payeeVPA  string
	payeeName string
	currency  string
}

func NewBuilder(payeeVPA, payeeName, currency string) *Builder {
	return &Builder{
		payeeVPA:  payeeVPA,
		payeeName: payeeName,
		currency:  currency,
	}
}

// PayURI builds a deep link for the merchant with the given payable amount.
func (b *Builder) PayURI(amountCents int64) (string, error) {
	return BuildPayURI(Params{
		PayeeVPA:    b.payeeVPA,
		PayeeName:   b.payeeName,
		AmountCents: amountCents,
		Currency:    b.currency,
	})
}
