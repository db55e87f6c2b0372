// Package export turns a layout into a priced quote: plain text, a PDF
// document with a QR-coded summary, and an Excel bill of materials.
package export

import (
	"strconv"
	"strings"

	"github.com/piwi3910/ContainerPlan/internal/model"
)

// Line kinds, in quote order.
const (
	LineWall   = "Wall"
	LineWindow = "Window"
	LineItem   = "Item"
)

// QuoteLine is one priced entry of a quote.
type QuoteLine struct {
	Kind  string  `json:"kind"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// Quote is the priced content of a layout.
type Quote struct {
	Title      string           `json:"title"`
	Currency   string           `json:"currency"`
	Container  model.Container  `json:"container"`
	Insulation model.Insulation `json:"insulation"`
	Lines      []QuoteLine      `json:"lines"`
	Totals     model.Totals     `json:"totals"`
	Counts     model.Counts     `json:"counts"`
}

// DefaultCurrency is used when no currency is configured.
const DefaultCurrency = "EUR"

// BuildQuote lists walls, then windows, then items, each in layout order.
func BuildQuote(l model.Layout, currency string) Quote {
	if currency == "" {
		currency = DefaultCurrency
	}
	q := Quote{
		Title:      "Prototype quote",
		Currency:   currency,
		Container:  l.Container,
		Insulation: l.Insulation,
		Totals:     l.Totals(),
		Counts:     l.Counts(),
	}
	for _, w := range l.Walls {
		q.Lines = append(q.Lines, QuoteLine{Kind: LineWall, Name: w.Name, Price: w.Price})
	}
	for _, w := range l.Windows {
		q.Lines = append(q.Lines, QuoteLine{Kind: LineWindow, Name: w.Name, Price: w.Price})
	}
	for _, it := range l.Items {
		q.Lines = append(q.Lines, QuoteLine{Kind: LineItem, Name: it.Name, Price: it.Price})
	}
	return q
}

// FormatPrice renders an amount without trailing zeros followed by the
// currency code.
func FormatPrice(v float64, currency string) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + " " + currency
}

// Text renders the quote as plain text: title, blank line, one line per
// entry, blank line, total.
func (q Quote) Text() string {
	lines := []string{q.Title, ""}
	for _, l := range q.Lines {
		label := l.Name
		if l.Kind != LineItem {
			label = l.Kind + ": " + l.Name
		}
		lines = append(lines, label+" ("+FormatPrice(l.Price, q.Currency)+")")
	}
	lines = append(lines, "", "Total: "+FormatPrice(q.Totals.Total, q.Currency))
	return strings.Join(lines, "\n")
}

// QuoteText is shorthand for BuildQuote(l, currency).Text().
func QuoteText(l model.Layout, currency string) string {
	return BuildQuote(l, currency).Text()
}

// QuoteSummary is the compact payload encoded into the PDF QR code.
type QuoteSummary struct {
	Container  string  `json:"container"`
	Insulation string  `json:"insulation"`
	Items      int     `json:"items"`
	Walls      int     `json:"walls"`
	Windows    int     `json:"windows"`
	Total      float64 `json:"total"`
	Currency   string  `json:"currency"`
}

// Summary returns the QR payload for the quote.
func (q Quote) Summary() QuoteSummary {
	return QuoteSummary{
		Container:  q.Container.SizeID,
		Insulation: q.Insulation.ID,
		Items:      q.Counts.Items,
		Walls:      q.Counts.Walls,
		Windows:    q.Counts.Windows,
		Total:      q.Totals.Total,
		Currency:   q.Currency,
	}
}
