package util

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"propalyze/models"
)

const priceSeriesName = "Price (₹ lakh)"

// PlotPriceHistory renders the monthly price history as a standalone echarts HTML page.
func PlotPriceHistory(w io.Writer, title string, history []models.PricePoint) error {
	months := make([]string, len(history))
	points := make([]opts.LineData, len(history))
	for i, p := range history {
		months[i] = p.Month
		points[i] = opts.LineData{Value: p.Price}
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: title,
			Width:     "100%",
			Height:    "300px",
		}),
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithYAxisOpts(opts.YAxis{Name: priceSeriesName}),
	)

	line.SetXAxis(months).
		AddSeries(priceSeriesName, points).
		SetSeriesOptions(
			charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(true)}),
			charts.WithLineStyleOpts(opts.LineStyle{Color: "#007BFF", Width: 2}),
		)

	if err := line.Render(w); err != nil {
		return fmt.Errorf("failed to render price history chart: %w", err)
	}
	return nil
}
