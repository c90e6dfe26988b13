package rover

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/florisys/field.report/internal/units"
)

// WriteReport renders a telemetry history as a standalone HTML page with
// speed and battery line charts. speedUnits selects the display unit for
// the speed axis; samples always carry m/s.
func WriteReport(w io.Writer, samples []Sample, speedUnits string) error {
	if len(samples) == 0 {
		_, err := io.WriteString(w, "<html><body><p>no telemetry recorded</p></body></html>")
		return err
	}

	axis := make([]string, 0, len(samples))
	speed := make([]opts.LineData, 0, len(samples))
	battery := make([]opts.LineData, 0, len(samples))
	for _, s := range samples {
		axis = append(axis, s.Timestamp.Format("15:04:05"))
		speed = append(speed, opts.LineData{Value: units.ConvertSpeed(s.SpeedMS, speedUnits)})
		battery = append(battery, opts.LineData{Value: s.BatteryPct})
	}
	runID := samples[0].RunID

	speedChart := charts.NewLine()
	speedChart.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "Rover Telemetry", Theme: "dark", Width: "900px", Height: "400px"}),
		charts.WithTitleOpts(opts.Title{Title: "Rover Speed", Subtitle: fmt.Sprintf("run=%s samples=%d", runID, len(samples))}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "time"}),
		charts.WithYAxisOpts(opts.YAxis{Name: units.Label(speedUnits)}),
	)
	speedChart.SetXAxis(axis)
	speedChart.AddSeries("speed", speed, charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(true)}))

	batteryChart := charts.NewLine()
	batteryChart.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Theme: "dark", Width: "900px", Height: "400px"}),
		charts.WithTitleOpts(opts.Title{Title: "Rover Battery"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "time"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "%", Min: 0, Max: 100}),
	)
	batteryChart.SetXAxis(axis)
	batteryChart.AddSeries("battery", battery, charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(true)}))

	page := components.NewPage()
	page.AddCharts(speedChart, batteryChart)
	return page.Render(w)
}
