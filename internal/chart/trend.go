package chart

import (
	"errors"
	"fmt"
	"html/template"
	"math"
	"strings"

	"github.com/dailymart/admin-dashboard/internal/shared"
)

// ErrNoPoints is returned for an empty series.
var ErrNoPoints = errors.New("chart: points required")

// DailyTrend renders total sales against the left axis, as a filled line,
// and the transaction count against the right axis.
func DailyTrend(width, height int, points []Point, opts Options) (template.HTML, error) {
	if len(points) == 0 {
		return "", ErrNoPoints
	}
	if width <= 0 {
		width = DefaultWidth
	}
	if height <= 0 {
		height = DefaultHeight
	}
	padding := opts.Padding
	if padding <= 0 {
		padding = DefaultPadding
	}
	tickCount := opts.TickCount
	if tickCount <= 0 {
		tickCount = DefaultTicks
	}
	salesColor := fallback(opts.SalesColor, "rgb(59,130,246)")
	salesFill := fallback(opts.SalesFill, "rgba(59,130,246,0.1)")
	countColor := fallback(opts.CountColor, "rgb(16,185,129)")
	axisColor := fallback(opts.AxisColor, "#475569")
	gridColor := fallback(opts.GridColor, "#cbd5f5")

	chartWidth := float64(width) - 2*padding
	chartHeight := float64(height) - 2*padding
	if chartWidth <= 0 || chartHeight <= 0 {
		return "", fmt.Errorf("chart: viewport too small")
	}

	sales := make([]float64, len(points))
	counts := make([]float64, len(points))
	for i, p := range points {
		sales[i] = p.Sales
		counts[i] = p.Count
	}
	salesAxis := newAxis(sales)
	countAxis := newAxis(counts)

	xAt := func(i int) float64 {
		if len(points) == 1 {
			return padding + chartWidth/2
		}
		return padding + float64(i)*chartWidth/float64(len(points)-1)
	}
	yAt := func(a axis, v float64) float64 {
		return padding + chartHeight - (v-a.min)*chartHeight/(a.max-a.min)
	}
	linePath := func(a axis, series []float64) string {
		var path strings.Builder
		for i, v := range series {
			if i == 0 {
				fmt.Fprintf(&path, "M%.2f %.2f", xAt(i), yAt(a, v))
			} else {
				fmt.Fprintf(&path, " L%.2f %.2f", xAt(i), yAt(a, v))
			}
		}
		return path.String()
	}

	titleID := makeID(opts.Title, "trend-title")
	descID := makeID(opts.Title, "trend-desc")

	var b strings.Builder
	fmt.Fprintf(&b, "<svg xmlns=\"http://www.w3.org/2000/svg\" viewBox=\"0 0 %d %d\" role=\"img\" aria-labelledby=\"%s %s\">", width, height, titleID, descID)
	fmt.Fprintf(&b, "<title id=\"%s\">%s</title>", titleID, template.HTMLEscapeString(fallback(opts.Title, "Trend Penjualan Harian")))
	fmt.Fprintf(&b, "<desc id=\"%s\">%s</desc>", descID, template.HTMLEscapeString(fallback(opts.Description, describe(points))))

	for i := 0; i <= tickCount; i++ {
		ratio := float64(i) / float64(tickCount)
		y := padding + chartHeight - ratio*chartHeight
		fmt.Fprintf(&b, "<line x1=\"%.2f\" y1=\"%.2f\" x2=\"%.2f\" y2=\"%.2f\" stroke=\"%s\" stroke-width=\"0.5\" stroke-dasharray=\"2,4\" aria-hidden=\"true\"></line>", padding, y, padding+chartWidth, y, gridColor)
		fmt.Fprintf(&b, "<text x=\"%.2f\" y=\"%.2f\" fill=\"%s\" font-size=\"10\" text-anchor=\"end\">%s</text>", padding-6, y+4, axisColor, template.HTMLEscapeString(formatTick(salesAxis.at(ratio))))
		fmt.Fprintf(&b, "<text x=\"%.2f\" y=\"%.2f\" fill=\"%s\" font-size=\"10\" text-anchor=\"start\">%s</text>", padding+chartWidth+6, y+4, axisColor, template.HTMLEscapeString(formatTick(countAxis.at(ratio))))
	}

	fmt.Fprintf(&b, "<g stroke=\"%s\" aria-label=\"Sumbu\">", axisColor)
	fmt.Fprintf(&b, "<line x1=\"%.2f\" y1=\"%.2f\" x2=\"%.2f\" y2=\"%.2f\" stroke-width=\"1\"></line>", padding, padding, padding, padding+chartHeight)
	fmt.Fprintf(&b, "<line x1=\"%.2f\" y1=\"%.2f\" x2=\"%.2f\" y2=\"%.2f\" stroke-width=\"1\"></line>", padding+chartWidth, padding, padding+chartWidth, padding+chartHeight)
	fmt.Fprintf(&b, "<line x1=\"%.2f\" y1=\"%.2f\" x2=\"%.2f\" y2=\"%.2f\" stroke-width=\"1\"></line>", padding, padding+chartHeight, padding+chartWidth, padding+chartHeight)
	b.WriteString("</g>")

	salesPath := linePath(salesAxis, sales)
	base := padding + chartHeight
	fmt.Fprintf(&b, "<path d=\"%s L%.2f %.2f L%.2f %.2f Z\" fill=\"%s\" stroke=\"none\" aria-hidden=\"true\"></path>", salesPath, xAt(len(points)-1), base, xAt(0), base, salesFill)
	fmt.Fprintf(&b, "<path class=\"series-sales\" d=\"%s\" fill=\"none\" stroke=\"%s\" stroke-width=\"2\" stroke-linejoin=\"round\" stroke-linecap=\"round\"></path>", salesPath, salesColor)
	fmt.Fprintf(&b, "<path class=\"series-count\" d=\"%s\" fill=\"none\" stroke=\"%s\" stroke-width=\"2\" stroke-linejoin=\"round\" stroke-linecap=\"round\"></path>", linePath(countAxis, counts), countColor)

	if opts.ShowDots {
		for i := range points {
			fmt.Fprintf(&b, "<circle cx=\"%.2f\" cy=\"%.2f\" r=\"3\" fill=\"%s\"><title>%s</title></circle>", xAt(i), yAt(salesAxis, sales[i]), salesColor,
				template.HTMLEscapeString(points[i].Label+": "+shared.FormatRupiah(sales[i])))
			fmt.Fprintf(&b, "<circle cx=\"%.2f\" cy=\"%.2f\" r=\"3\" fill=\"%s\"><title>%s</title></circle>", xAt(i), yAt(countAxis, counts[i]), countColor,
				template.HTMLEscapeString(points[i].Label+": "+shared.FormatNumber(counts[i])+" transaksi"))
		}
	}

	for i, p := range points {
		fmt.Fprintf(&b, "<text x=\"%.2f\" y=\"%.2f\" fill=\"%s\" font-size=\"10\" text-anchor=\"middle\">%s</text>", xAt(i), padding+chartHeight+14, axisColor, template.HTMLEscapeString(p.Label))
	}

	legendY := padding / 2
	fmt.Fprintf(&b, "<g font-size=\"11\" fill=\"%s\">", axisColor)
	fmt.Fprintf(&b, "<rect x=\"%.2f\" y=\"%.2f\" width=\"10\" height=\"10\" fill=\"%s\"></rect><text x=\"%.2f\" y=\"%.2f\">%s</text>", padding, legendY-9, salesColor, padding+14, legendY, template.HTMLEscapeString(fallback(opts.SalesLabel, "Total Penjualan (Rp)")))
	fmt.Fprintf(&b, "<rect x=\"%.2f\" y=\"%.2f\" width=\"10\" height=\"10\" fill=\"%s\"></rect><text x=\"%.2f\" y=\"%.2f\">%s</text>", padding+180, legendY-9, countColor, padding+194, legendY, template.HTMLEscapeString(fallback(opts.CountLabel, "Jumlah Transaksi")))
	b.WriteString("</g>")

	b.WriteString("</svg>")
	return template.HTML(b.String()), nil
}

// axis is a value range anchored at zero.
type axis struct {
	min, max float64
}

func newAxis(series []float64) axis {
	minVal, maxVal := bounds(series)
	if minVal > 0 {
		minVal = 0
	}
	if maxVal < 0 {
		maxVal = 0
	}
	if almostEqual(maxVal, minVal) {
		maxVal = minVal + 1
	}
	return axis{min: minVal, max: maxVal}
}

func (a axis) at(ratio float64) float64 {
	return a.min + (a.max-a.min)*ratio
}

func describe(points []Point) string {
	var total, count float64
	for _, p := range points {
		total += p.Sales
		count += p.Count
	}
	return fmt.Sprintf("%d hari, total penjualan %s dari %s transaksi", len(points), shared.FormatRupiah(total), shared.FormatNumber(count))
}

func fallback(value, defaultValue string) string {
	if strings.TrimSpace(value) == "" {
		return defaultValue
	}
	return value
}

func bounds(series []float64) (float64, float64) {
	minVal := series[0]
	maxVal := series[0]
	for _, v := range series[1:] {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}
	return minVal, maxVal
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func makeID(base, suffix string) string {
	cleaned := strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-' || r == '_' {
			return r
		}
		return '-'
	}, strings.ToLower(strings.TrimSpace(base)))
	cleaned = strings.Trim(cleaned, "-")
	if cleaned == "" {
		cleaned = "chart"
	}
	return cleaned + "-" + suffix
}

func formatTick(v float64) string {
	abs := math.Abs(v)
	switch {
	case abs >= 1_000_000_000:
		return fmt.Sprintf("%.1fM", v/1_000_000_000)
	case abs >= 1_000_000:
		return fmt.Sprintf("%.1fjt", v/1_000_000)
	case abs >= 1_000:
		return fmt.Sprintf("%.1frb", v/1_000)
	default:
		if almostEqual(v, math.Round(v)) {
			return fmt.Sprintf("%.0f", v)
		}
		return fmt.Sprintf("%.2f", v)
	}
}
