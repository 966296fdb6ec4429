package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-solar/internal/report"
)

// SparklineWidth is the default number of cells in the elevation sparkline.
const SparklineWidth = 48

// sparklineBlocks are the Unicode block characters for sparkline (0 = lowest, 7 = highest).
var sparklineBlocks = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// nightColor is used for cells where the Sun is below the horizon.
var nightColor = [3]uint8{0x1b, 0x2b, 0x4b}

// elevColorLow is the color for a low Sun (deep orange).
var elevColorLow = [3]uint8{0xc2, 0x41, 0x0c}

// elevColorMid is the color for a mid-height Sun (amber).
var elevColorMid = [3]uint8{0xf5, 0x9e, 0x0b}

// elevColorHigh is the color for a high Sun (pale yellow).
var elevColorHigh = [3]uint8{0xfe, 0xf0, 0x8a}

// renderSparkline renders a day's elevation trace, scaled so the highest
// cell reaches the top block, with a marker for the current sample.
func renderSparkline(trace *report.ElevationTrace, now time.Time, width int) string {
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	if trace == nil || len(trace.Samples) == 0 {
		return dimStyle.Render("No elevation data")
	}

	samples := resampleElevation(trace.Samples, width)
	if len(samples) == 0 {
		return dimStyle.Render("No elevation data")
	}

	peak := 1.0
	for _, v := range samples {
		if v > peak {
			peak = v
		}
	}

	nowIdx := -1
	if now.After(trace.WindowStart) && now.Before(trace.WindowEnd) {
		span := trace.WindowEnd.Sub(trace.WindowStart)
		nowIdx = int(float64(now.Sub(trace.WindowStart)) / float64(span) * float64(len(samples)))
	}

	var sb strings.Builder
	for i, elev := range samples {
		blockChar := sparklineBlocks[0]
		r, g, b := nightColor[0], nightColor[1], nightColor[2]

		if elev > 0 {
			t := elev / peak
			if t > 1 {
				t = 1
			}
			blockIdx := int(t * 7.0)
			if blockIdx > 7 {
				blockIdx = 7
			}
			blockChar = sparklineBlocks[blockIdx]
			r, g, b = interpolateElevColor(t)
		}

		style := lipgloss.NewStyle().Foreground(lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", r, g, b)))
		if i == nowIdx {
			style = style.Background(lipgloss.Color("238"))
		}
		sb.WriteString(style.Render(string(blockChar)))
	}

	if current := trace.CurrentSample(now); current != nil {
		nowStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("250"))
		sb.WriteString(nowStyle.Render(fmt.Sprintf(" now: %.0f°", current.Apparent)))
	}

	return sb.String()
}

// interpolateElevColor returns RGB color for elevation value t in [0, 1].
// Gradient: low (deep orange) → mid (amber) → high (pale yellow).
func interpolateElevColor(t float64) (uint8, uint8, uint8) {
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}

	var r, g, b uint8
	if t < 0.5 {
		s := t * 2
		r = uint8(float64(elevColorLow[0])*(1-s) + float64(elevColorMid[0])*s)
		g = uint8(float64(elevColorLow[1])*(1-s) + float64(elevColorMid[1])*s)
		b = uint8(float64(elevColorLow[2])*(1-s) + float64(elevColorMid[2])*s)
	} else {
		s := (t - 0.5) * 2
		r = uint8(float64(elevColorMid[0])*(1-s) + float64(elevColorHigh[0])*s)
		g = uint8(float64(elevColorMid[1])*(1-s) + float64(elevColorHigh[1])*s)
		b = uint8(float64(elevColorMid[2])*(1-s) + float64(elevColorHigh[2])*s)
	}

	return r, g, b
}

// resampleElevation averages apparent elevation samples into width buckets.
func resampleElevation(samples []report.ElevationSample, width int) []float64 {
	if len(samples) == 0 || width <= 0 {
		return nil
	}

	result := make([]float64, width)
	samplesPerBucket := float64(len(samples)) / float64(width)

	for i := 0; i < width; i++ {
		startIdx := min(int(float64(i)*samplesPerBucket), len(samples)-1)
		endIdx := min(max(int(float64(i+1)*samplesPerBucket), startIdx+1), len(samples))

		sum := 0.0
		count := 0
		for j := startIdx; j < endIdx; j++ {
			sum += samples[j].Apparent
			count++
		}
		if count > 0 {
			result[i] = sum / float64(count)
		}
	}

	return result
}
