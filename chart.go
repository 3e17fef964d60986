package slidescene

// ChartKind names the plot family of a chart part.
type ChartKind int

const (
	ChartBar ChartKind = iota
	ChartLine
	ChartPie
	ChartArea
	ChartScatter
	ChartDoughnut
	ChartUnknown
)

// String returns the chart kind name.
func (k ChartKind) String() string {
	switch k {
	case ChartBar:
		return "bar"
	case ChartLine:
		return "line"
	case ChartPie:
		return "pie"
	case ChartArea:
		return "area"
	case ChartScatter:
		return "scatter"
	case ChartDoughnut:
		return "doughnut"
	}
	return "unknown"
}

// ChartSeries is one data series of a chart.
type ChartSeries struct {
	Name   string
	Values []float64
}

// ChartData carries a chart part's data payload. Composition does not plot
// charts; the frame is emitted with the data attached for a renderer to
// consume.
type ChartData struct {
	Kind       ChartKind
	Title      string
	Categories []string
	Series     []ChartSeries
}
