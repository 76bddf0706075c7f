// Package report renders a valuation as a standalone HTML page.
package report

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/a-h/templ"
	"github.com/shopspring/decimal"

	"github.com/donaldgifford/vehicle-valuator/internal/explain"
	domain "github.com/donaldgifford/vehicle-valuator/pkg/types"
)

const style = `body{font-family:system-ui,sans-serif;max-width:760px;margin:2rem auto;color:#222}` +
	`h1{font-size:1.4rem}table{border-collapse:collapse;width:100%;margin:1rem 0}` +
	`th,td{text-align:left;padding:.35rem .5rem;border-bottom:1px solid #ddd}` +
	`td.num{text-align:right;font-variant-numeric:tabular-nums}.neg{color:#b03a2e}.pos{color:#1e8449}` +
	`.value{font-size:2rem;font-weight:600}.muted{color:#777;font-size:.85rem}`

// Render writes the HTML report for r to w.
func Render(ctx context.Context, w io.Writer, v domain.Vehicle, r *domain.ValuationResult) error {
	return Page(v, r).Render(ctx, w)
}

// Page is the full report document.
func Page(v domain.Vehicle, r *domain.ValuationResult) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		title := "Valuation: " + vehicleTitle(v)
		if _, err := fmt.Fprintf(w,
			`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8"><title>%s</title><style>%s</style></head><body>`,
			templ.EscapeString(title), style,
		); err != nil {
			return err
		}

		for _, c := range []templ.Component{
			summary(v, r),
			adjustments(r),
			confidence(r.Confidence),
			statistics(r.Statistics),
			footer(r),
		} {
			if err := c.Render(ctx, w); err != nil {
				return err
			}
		}

		_, err := io.WriteString(w, `</body></html>`)
		return err
	})
}

func summary(v domain.Vehicle, r *domain.ValuationResult) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		var b strings.Builder
		fmt.Fprintf(&b, `<h1>%s</h1>`, templ.EscapeString(vehicleTitle(v)))
		if v.VIN != "" {
			fmt.Fprintf(&b, `<p class="muted">VIN %s</p>`, templ.EscapeString(v.VIN))
		}
		fmt.Fprintf(&b, `<p class="value">%s</p>`, explain.Dollars(r.FinalValue))
		fmt.Fprintf(&b, `<p>Range %s to %s`, explain.Dollars(r.PriceRange.Low), explain.Dollars(r.PriceRange.High))
		if r.ZIP != "" {
			fmt.Fprintf(&b, ` in ZIP %s`, templ.EscapeString(r.ZIP))
		}
		b.WriteString(`</p>`)
		if r.Explanation != "" {
			fmt.Fprintf(&b, `<p>%s</p>`, templ.EscapeString(r.Explanation))
		}
		_, err := io.WriteString(w, b.String())
		return err
	})
}

func adjustments(r *domain.ValuationResult) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		var b strings.Builder
		b.WriteString(`<h2>Breakdown</h2><table><thead><tr><th>Factor</th><th>Reason</th><th>Amount</th></tr></thead><tbody>`)
		fmt.Fprintf(&b, `<tr><td>Base (%s)</td><td></td><td class="num">%s</td></tr>`,
			templ.EscapeString(string(r.BaseMethod)), explain.Dollars(r.BaseValue))
		for _, a := range r.Adjustments {
			fmt.Fprintf(&b, `<tr><td>%s</td><td>%s</td><td class="num %s">%s%s</td></tr>`,
				templ.EscapeString(a.Factor),
				templ.EscapeString(a.Reason),
				signClass(a.Amount),
				signedDollars(a.Amount),
				percentSuffix(a.Percent),
			)
		}
		fmt.Fprintf(&b, `<tr><th>Final</th><th></th><th class="num">%s</th></tr>`, explain.Dollars(r.FinalValue))
		b.WriteString(`</tbody></table>`)
		_, err := io.WriteString(w, b.String())
		return err
	})
}

func confidence(c domain.ConfidenceExplanation) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		var b strings.Builder
		fmt.Fprintf(&b, `<h2>Confidence: %d/100 (%s)</h2>`, c.Score, templ.EscapeString(string(c.Level)))
		writeList(&b, c.Reasons)
		if len(c.Suggestions) > 0 {
			b.WriteString(`<h3>To improve this estimate</h3>`)
			writeList(&b, c.Suggestions)
		}
		_, err := io.WriteString(w, b.String())
		return err
	})
}

func statistics(s *domain.ListingStatistics) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		if s == nil {
			_, err := io.WriteString(w, `<h2>Market</h2><p>No comparable listings were found.</p>`)
			return err
		}
		var b strings.Builder
		b.WriteString(`<h2>Market</h2><table><tbody>`)
		rows := []struct {
			label string
			value string
		}{
			{"Comparable listings", fmt.Sprint(s.Count)},
			{"Median price", explain.Dollars(s.Median)},
			{"Middle 50%", explain.Dollars(s.P25) + " to " + explain.Dollars(s.P75)},
			{"Lowest / highest", explain.Dollars(s.Min) + " / " + explain.Dollars(s.Max)},
			{"Median mileage", decimal.NewFromFloat(s.MedianMileage).Round(0).String() + " mi"},
		}
		for _, row := range rows {
			fmt.Fprintf(&b, `<tr><td>%s</td><td class="num">%s</td></tr>`, row.label, row.value)
		}
		b.WriteString(`</tbody></table>`)
		_, err := io.WriteString(w, b.String())
		return err
	})
}

func footer(r *domain.ValuationResult) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		var b strings.Builder
		fmt.Fprintf(&b, `<p class="muted">Valuation %s, %s. Sources: %s.`,
			templ.EscapeString(r.ID),
			r.CreatedAt.UTC().Format("Jan 2, 2006 15:04 MST"),
			templ.EscapeString(strings.Join(r.SourcesUsed, ", ")),
		)
		if r.FallbackUsed {
			b.WriteString(` Computed locally because the remote service was unavailable.`)
		}
		b.WriteString(`</p>`)
		_, err := io.WriteString(w, b.String())
		return err
	})
}

func writeList(b *strings.Builder, items []string) {
	if len(items) == 0 {
		return
	}
	b.WriteString(`<ul>`)
	for _, s := range items {
		fmt.Fprintf(b, `<li>%s</li>`, templ.EscapeString(s))
	}
	b.WriteString(`</ul>`)
}

func vehicleTitle(v domain.Vehicle) string {
	parts := []string{}
	if v.Year > 0 {
		parts = append(parts, fmt.Sprint(v.Year))
	}
	for _, s := range []string{v.Make, v.Model, v.Trim} {
		if s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, " ")
}

func signClass(v float64) string {
	switch {
	case v < 0:
		return "neg"
	case v > 0:
		return "pos"
	default:
		return ""
	}
}

func signedDollars(v float64) string {
	switch {
	case v < 0:
		return "-" + explain.Dollars(-v)
	case v > 0:
		return "+" + explain.Dollars(v)
	default:
		return explain.Dollars(0)
	}
}

func percentSuffix(p float64) string {
	if p == 0 {
		return ""
	}
	return " (" + decimal.NewFromFloat(p).Shift(2).StringFixed(1) + "%)"
}
