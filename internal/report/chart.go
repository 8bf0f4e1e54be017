package report

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/abhisek/soulsupport/internal/diagnosis"
)

// ChartTitle is printed above the bars.
const ChartTitle = "Depression Level Analysis"

// Each bar owns a slot of barWidth+barSpacing pixels and its axis label
// is wrapped into that slot, so the slot must fit the longest category.
const (
	chartWidth   = 800
	chartHeight  = 360
	barWidth     = 70
	barSpacing   = 50
	axisFontSize = 9.0
)

// Chart renders a PNG bar chart with one bar per answered question.
func Chart(in Input) ([]byte, error) {
	if len(in.Entries) == 0 {
		return nil, ErrNoData
	}

	bars := make([]chart.Value, 0, len(in.Entries))
	for _, e := range in.Entries {
		c := drawing.ColorFromHex(strings.TrimPrefix(e.Color, "#"))
		bars = append(bars, chart.Value{
			Label: string(e.Category),
			Value: float64(e.Answer),
			Style: chart.Style{FillColor: c, StrokeColor: c},
		})
	}

	graph := chart.BarChart{
		Title:      ChartTitle,
		Background: chart.Style{Padding: chart.Box{Top: 40}},
		Width:      chartWidth,
		Height:     chartHeight,
		BarWidth:   barWidth,
		BarSpacing: barSpacing,
		XAxis:      chart.Style{FontSize: axisFontSize},
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{Min: 0, Max: float64(diagnosis.MaxAnswer)},
		},
		Bars: bars,
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("render chart: %w", err)
	}
	return buf.Bytes(), nil
}
