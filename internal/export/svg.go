// Package export renders saved trajectories as standalone SVG documents.
package export

import (
	"fmt"
	"strings"

	"github.com/san-kum/neurosim/internal/dynamo"
)

// TraceToSVG renders a time series as an SVG polyline.
func TraceToSVG(times, values []float64, width, height int, strokeColor string) string {
	if len(values) < 2 || len(times) != len(values) {
		return ""
	}

	minV, maxV := values[0], values[0]
	for _, v := range values {
		if v < minV {
			minV = v
		}
		if v > maxV {
			maxV = v
		}
	}
	if maxV == minV {
		maxV = minV + 1
	}
	t0, t1 := times[0], times[len(times)-1]
	if t1 == t0 {
		t1 = t0 + 1
	}

	var sb strings.Builder
	header(&sb, width, height)

	sb.WriteString(fmt.Sprintf(`<polyline fill="none" stroke="%s" stroke-width="1.5" points="`, strokeColor))
	for i := range values {
		px := float64(width) * (times[i] - t0) / (t1 - t0)
		py := float64(height) * (1 - (values[i]-minV)/(maxV-minV))
		sb.WriteString(fmt.Sprintf("%.1f,%.1f ", px, py))
	}
	sb.WriteString("\"/>\n</svg>")

	return sb.String()
}

// PhaseToSVG renders one state variable against another, e.g. the membrane
// potential versus the slow adaptation variable.
func PhaseToSVG(states []dynamo.State, xi, yi, width, height int, strokeColor string) string {
	if len(states) < 2 || xi < 0 || xi >= dynamo.Dim || yi < 0 || yi >= dynamo.Dim {
		return ""
	}

	minX, maxX := states[0][xi], states[0][xi]
	minY, maxY := states[0][yi], states[0][yi]
	for _, s := range states {
		if s[xi] < minX {
			minX = s[xi]
		}
		if s[xi] > maxX {
			maxX = s[xi]
		}
		if s[yi] < minY {
			minY = s[yi]
		}
		if s[yi] > maxY {
			maxY = s[yi]
		}
	}
	if maxX == minX {
		maxX = minX + 1
	}
	if maxY == minY {
		maxY = minY + 1
	}

	var sb strings.Builder
	header(&sb, width, height)

	sb.WriteString(fmt.Sprintf(`<polyline fill="none" stroke="%s" stroke-width="1" points="`, strokeColor))
	for _, s := range states {
		px := float64(width) * (s[xi] - minX) / (maxX - minX)
		py := float64(height) * (1 - (s[yi]-minY)/(maxY-minY))
		sb.WriteString(fmt.Sprintf("%.1f,%.1f ", px, py))
	}
	sb.WriteString("\"/>\n</svg>")

	return sb.String()
}

func header(sb *strings.Builder, width, height int) {
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height))
}
