// Package chart renders server-side SVG charts for the report pages.
package chart

// Point is one day of the sales trend.
type Point struct {
	Label string
	Sales float64
	Count float64
}

// Options customises the trend renderer.
type Options struct {
	Title       string
	Description string
	SalesLabel  string
	CountLabel  string
	SalesColor  string
	SalesFill   string
	CountColor  string
	AxisColor   string
	GridColor   string
	Padding     float64
	TickCount   int
	ShowDots    bool
}

// Defaults for the trend chart.
const (
	DefaultWidth   = 720
	DefaultHeight  = 280
	DefaultPadding = 56.0
	DefaultTicks   = 5
)
