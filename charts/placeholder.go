// Package charts renders placeholder chart images for slides. The charts
// carry deterministic sample data: their job is to occupy the slide layout
// until the user swaps in a real visual, so the shape matters and the
// numbers do not.
package charts

import (
	"bytes"
	"fmt"

	"github.com/wcharczuk/go-chart/v2"
)

// ChartType selects the placeholder's visual shape.
type ChartType string

const (
	ChartTypeBar  ChartType = "bar"
	ChartTypeLine ChartType = "line"
	ChartTypePie  ChartType = "pie"
)

const (
	chartWidth  = 1280
	chartHeight = 720
)

var sampleValues = []float64{42, 68, 55, 81, 63, 74}

// RenderPlaceholder renders a PNG placeholder chart of the given type with
// the given title. Unknown types are an error surfaced to the user, unlike
// outline generation there is no silent fallback for charts.
func RenderPlaceholder(chartType ChartType, title string) ([]byte, error) {
	var buf bytes.Buffer
	var err error

	switch chartType {
	case ChartTypeBar:
		err = renderBar(title, &buf)
	case ChartTypeLine:
		err = renderLine(title, &buf)
	case ChartTypePie:
		err = renderPie(title, &buf)
	default:
		return nil, fmt.Errorf("unsupported chart type: %s", chartType)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to render %s chart: %w", chartType, err)
	}
	return buf.Bytes(), nil
}

func renderBar(title string, buf *bytes.Buffer) error {
	bars := make([]chart.Value, len(sampleValues))
	for i, v := range sampleValues {
		bars[i] = chart.Value{
			Value: v,
			Label: fmt.Sprintf("Series %c", 'A'+i),
		}
	}
	bc := chart.BarChart{
		Title:    title,
		Width:    chartWidth,
		Height:   chartHeight,
		BarWidth: 80,
		Bars:     bars,
	}
	return bc.Render(chart.PNG, buf)
}

func renderLine(title string, buf *bytes.Buffer) error {
	xs := make([]float64, len(sampleValues))
	for i := range sampleValues {
		xs[i] = float64(i + 1)
	}
	c := chart.Chart{
		Title:  title,
		Width:  chartWidth,
		Height: chartHeight,
		Series: []chart.Series{
			chart.ContinuousSeries{
				XValues: xs,
				YValues: sampleValues,
			},
		},
	}
	return c.Render(chart.PNG, buf)
}

func renderPie(title string, buf *bytes.Buffer) error {
	values := make([]chart.Value, len(sampleValues))
	for i, v := range sampleValues {
		values[i] = chart.Value{
			Value: v,
			Label: fmt.Sprintf("Part %c", 'A'+i),
		}
	}
	pc := chart.PieChart{
		Title:  title,
		Width:  chartHeight, // square canvas keeps the pie round
		Height: chartHeight,
		Values: values,
	}
	return pc.Render(chart.PNG, buf)
}
