package report

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/Sumatoshi-tech/chatfang/pkg/processors/basic"
)

const (
	chartWidth  = "1100px"
	chartHeight = "450px"

	hoursPerDay = 24
)

// heatmapPalette is the green ramp used for the activity heatmap.
var heatmapPalette = []string{"#ebedf0", "#9be9a8", "#40c463", "#30a14e", "#216e39"}

// WritePlots renders the HTML chart page for a basic stats result: hourly
// activity bar, per-participant pie and a date-by-hour activity heatmap.
func WritePlots(w io.Writer, stats basic.Stats) error {
	page := components.NewPage()
	page.PageTitle = "Chat analysis"

	page.AddCharts(
		hourlyBarChart(stats),
		participantPieChart(stats),
		activityHeatmap(stats),
	)

	if err := page.Render(w); err != nil {
		return fmt.Errorf("render chart page: %w", err)
	}

	return nil
}

func hourlyBarChart(stats basic.Stats) *charts.Bar {
	counts := make([]int, hoursPerDay)
	for _, bucket := range stats.TimeDistribution {
		counts[bucket.Hour] = bucket.Count
	}

	labels := make([]string, hoursPerDay)
	data := make([]opts.BarData, hoursPerDay)

	for hour := range hoursPerDay {
		labels[hour] = fmt.Sprintf("%02d:00", hour)
		data[hour] = opts.BarData{Value: counts[hour]}
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Messages by hour", Left: "center"}),
		charts.WithInitializationOpts(opts.Initialization{Width: chartWidth, Height: chartHeight}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
	)
	bar.SetXAxis(labels)
	bar.AddSeries("Messages", data)

	return bar
}

func participantPieChart(stats basic.Stats) *charts.Pie {
	data := make([]opts.PieData, 0, len(stats.Participants))
	for _, name := range stats.Participants {
		data = append(data, opts.PieData{
			Name:  name,
			Value: stats.MessagesByParticipant[name],
		})
	}

	pie := charts.NewPie()
	pie.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Messages by participant", Left: "center"}),
		charts.WithInitializationOpts(opts.Initialization{Width: chartWidth, Height: chartHeight}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "item"}),
	)
	pie.AddSeries("Participants", data)

	return pie
}

func activityHeatmap(stats basic.Stats) *charts.HeatMap {
	dates := make([]string, 0, len(stats.MessagesByDate))
	dateIndex := make(map[string]int, len(stats.MessagesByDate))

	for _, bucket := range stats.MessagesByDate {
		dateIndex[bucket.Date] = len(dates)
		dates = append(dates, bucket.Date)
	}

	hours := make([]string, hoursPerDay)
	for hour := range hoursPerDay {
		hours[hour] = fmt.Sprintf("%02d", hour)
	}

	maxCount := 0
	data := make([]opts.HeatMapData, 0, len(stats.ActivityHeatmap))

	for _, cell := range stats.ActivityHeatmap {
		if cell.Count > maxCount {
			maxCount = cell.Count
		}

		data = append(data, opts.HeatMapData{
			Value: [3]any{dateIndex[cell.Date], cell.Hour, cell.Count},
		})
	}

	hm := charts.NewHeatMap()
	hm.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Activity heatmap", Left: "center"}),
		charts.WithInitializationOpts(opts.Initialization{Width: chartWidth, Height: chartHeight}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "item"}),
		charts.WithXAxisOpts(opts.XAxis{
			Type: "category", Data: dates,
			SplitArea: &opts.SplitArea{Show: opts.Bool(true)},
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Type: "category", Data: hours,
			SplitArea: &opts.SplitArea{Show: opts.Bool(true)},
		}),
		charts.WithVisualMapOpts(opts.VisualMap{
			Calculable: opts.Bool(true), Min: 0, Max: float32(maxCount),
			InRange: &opts.VisualMapInRange{Color: heatmapPalette},
			Orient:  "horizontal", Left: "center", Bottom: "2%",
		}),
	)
	hm.AddSeries("Activity", data)

	return hm
}
