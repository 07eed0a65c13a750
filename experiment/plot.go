package experiment

import (
	"fmt"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// plotConvergence draws one best-scalar-per-iteration line per run.
func plotConvergence(report *Report, path string) error {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title: fmt.Sprintf("%s convergence", report.Name),
		}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{
			Name: "iteration",
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name: "best scalar",
			SplitLine: &opts.SplitLine{
				Show: opts.Bool(true),
			},
		}),
	)

	iterations := 0
	for _, run := range report.Runs {
		if len(run.History) > iterations {
			iterations = len(run.History)
		}
	}

	labels := make([]string, iterations)
	for k := range labels {
		labels[k] = fmt.Sprintf("%d", k)
	}
	line.SetXAxis(labels)

	for _, run := range report.Runs {
		series := make([]opts.LineData, len(run.History))
		for k, scalar := range run.History {
			series[k] = opts.LineData{Value: scalar}
		}
		line.AddSeries(run.Id[:8], series)
	}

	line.SetSeriesOptions(
		charts.WithLabelOpts(opts.Label{
			Show: opts.Bool(false),
		}),
	)

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return line.Render(f)
}

// plotFronts draws the final cost/latency fronts of all runs on one
// scatter chart.
func plotFronts(report *Report, path string) error {
	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title: fmt.Sprintf("%s final fronts", report.Name),
		}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{
			Name: "cost",
			SplitLine: &opts.SplitLine{
				Show: opts.Bool(true),
			},
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name: "latency",
			SplitLine: &opts.SplitLine{
				Show: opts.Bool(true),
			},
		}),
	)

	for _, run := range report.Runs {
		series := make([]opts.ScatterData, len(run.Front))
		for i, fitness := range run.Front {
			series[i] = opts.ScatterData{
				Value:      []float64{fitness.Cost, fitness.Latency},
				Symbol:     "circle",
				SymbolSize: 8,
			}
		}
		scatter.AddSeries(run.Id[:8], series)
	}

	scatter.SetSeriesOptions(
		charts.WithLabelOpts(opts.Label{
			Show: opts.Bool(false),
		}),
	)

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return scatter.Render(f)
}
