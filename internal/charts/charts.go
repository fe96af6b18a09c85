// Package charts renders deck distributions as interactive pie-chart HTML.
package charts

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/ramonehamilton/MD-Companion/internal/models"
	"github.com/ramonehamilton/MD-Companion/internal/stats"
)

// ChartConfig holds configuration for charts.
type ChartConfig struct {
	Width      string // e.g. "900px"
	Height     string
	Theme      string
	ShowLegend bool
	Colors     []string
}

// DefaultChartConfig returns default chart configuration.
func DefaultChartConfig() ChartConfig {
	return ChartConfig{
		Width:      "900px",
		Height:     "600px",
		Theme:      "light",
		ShowLegend: true,
		Colors:     []string{"#5470C6", "#91CC75", "#FAC858", "#EE6666", "#73C0DE", "#3BA272", "#FC8452", "#9A60B4", "#EA7CCC"},
	}
}

func newPie(config ChartConfig, title, subtitle string) *charts.Pie {
	pie := charts.NewPie()
	pie.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: title,
			Width:     config.Width,
			Height:    config.Height,
			Theme:     config.Theme,
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    title,
			Subtitle: subtitle,
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show:      opts.Bool(true),
			Trigger:   "item",
			Formatter: "{b}<br/>{c} games ({d}%)",
		}),
		charts.WithLegendOpts(opts.Legend{
			Show:   opts.Bool(config.ShowLegend),
			Type:   "scroll",
			Orient: "vertical",
			Left:   "left",
			Top:    "middle",
		}),
		charts.WithColorsOpts(opts.Colors(config.Colors)),
	)
	return pie
}

// OpponentPie builds the opponent-deck chart. The title carries the game
// count and overall win rate of the filtered records.
func OpponentPie(dist stats.Distribution, season, rankFilter string, config ChartConfig) *charts.Pie {
	if rankFilter == "" {
		rankFilter = models.AllFilter
	}
	title := fmt.Sprintf("Opponent decks %s (%d games, win rate %.1f%%)", season, dist.Total, dist.WinRate)
	subtitle := "Rank: " + rankFilter
	if dist.Total == 0 {
		subtitle += " | no records"
	}

	data := make([]opts.PieData, 0, len(dist.Slices))
	for _, s := range dist.Slices {
		data = append(data, opts.PieData{Name: s.Deck, Value: s.Count})
	}

	pie := newPie(config, title, subtitle)
	pie.AddSeries("Opponent decks", data).
		SetSeriesOptions(
			charts.WithLabelOpts(opts.Label{
				Show:      opts.Bool(true),
				Formatter: "{b}: {c}",
			}),
			charts.WithPieChartOpts(opts.PieChart{
				Radius: []string{"35%", "70%"},
			}),
		)
	return pie
}

// OwnPie builds the own-deck chart. Slices are labelled with their share
// of games and each name carries the deck's win rate for the tooltip.
func OwnPie(dist stats.Distribution, season string, config ChartConfig) *charts.Pie {
	title := fmt.Sprintf("My decks %s (%d games)", season, dist.Total)
	subtitle := ""
	if dist.Total == 0 {
		subtitle = "no records"
	}

	data := make([]opts.PieData, 0, len(dist.Slices))
	for _, s := range dist.Slices {
		data = append(data, opts.PieData{
			Name:  fmt.Sprintf("%s (win rate %.1f%%)", s.Deck, s.WinRate),
			Value: s.Count,
		})
	}

	pie := newPie(config, title, subtitle)
	pie.AddSeries("My decks", data).
		SetSeriesOptions(
			charts.WithLabelOpts(opts.Label{
				Show:      opts.Bool(true),
				Formatter: "{d}%",
			}),
			charts.WithPieChartOpts(opts.PieChart{
				Radius: "70%",
			}),
		)
	return pie
}

// Render writes the chart page to w.
func Render(w io.Writer, pie *charts.Pie) error {
	if err := pie.Render(w); err != nil {
		return fmt.Errorf("failed to render chart: %w", err)
	}
	return nil
}

// RenderFile writes the chart page to outputPath, creating its directory.
func RenderFile(pie *charts.Pie, outputPath string) error {
	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return fmt.Errorf("failed to create chart directory: %w", err)
	}
	f, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create chart file: %w", err)
	}
	defer f.Close()

	return Render(f, pie)
}

// OpenInBrowser opens the given file path in the default web browser.
func OpenInBrowser(filePath string) error {
	absPath, err := filepath.Abs(filePath)
	if err != nil {
		return fmt.Errorf("failed to get absolute path: %w", err)
	}

	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", absPath)
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", absPath)
	case "linux":
		cmd = exec.Command("xdg-open", absPath)
	default:
		return fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}

	return cmd.Start()
}
