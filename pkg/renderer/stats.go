package renderer

import (
	"fmt"
	"io"
	"time"

	"github.com/olekukonko/tablewriter"
)

// RenderStats aggregates statistics over a progressive render
type RenderStats struct {
	Width, Height int
	Frames        int
	TotalSamples  int64
	Elapsed       time.Duration
}

// RecordFrame folds one completed frame into the statistics
func (rs *RenderStats) RecordFrame(samples int, elapsed time.Duration) {
	rs.Frames++
	rs.TotalSamples += int64(samples)
	rs.Elapsed += elapsed
}

// SamplesPerPixel returns the mean number of paths traced per pixel
func (rs RenderStats) SamplesPerPixel() float64 {
	pixels := rs.Width * rs.Height
	if pixels == 0 {
		return 0
	}
	return float64(rs.TotalSamples) / float64(pixels)
}

// SamplesPerSecond returns the mean path throughput
func (rs RenderStats) SamplesPerSecond() float64 {
	if rs.Elapsed <= 0 {
		return 0
	}
	return float64(rs.TotalSamples) / rs.Elapsed.Seconds()
}

// WriteSummary renders the statistics as a table
func (rs RenderStats) WriteSummary(w io.Writer) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Metric", "Value"})
	table.SetBorder(false)
	table.AppendBulk([][]string{
		{"Resolution", fmt.Sprintf("%dx%d", rs.Width, rs.Height)},
		{"Frames", fmt.Sprintf("%d", rs.Frames)},
		{"Total samples", fmt.Sprintf("%d", rs.TotalSamples)},
		{"Samples/pixel", fmt.Sprintf("%.1f", rs.SamplesPerPixel())},
		{"Samples/second", fmt.Sprintf("%.0f", rs.SamplesPerSecond())},
		{"Render time", rs.Elapsed.Round(time.Millisecond).String()},
	})
	table.Render()
}
