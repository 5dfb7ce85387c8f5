package ui

import (
	"regexp"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
)

func init() {
	// Force ANSI output in tests so color codes are emitted deterministically
	lipgloss.SetColorProfile(termenv.ANSI)
}

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*m`)

func stripANSI(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}

func containsBlockChar(s string) bool {
	return strings.ContainsAny(s, sparklineBlocks)
}

func TestRenderSparkline_EmptyData(t *testing.T) {
	assert.Empty(t, RenderSparkline([]float64{}, 10))
	assert.Empty(t, RenderSparkline(nil, 10))
}

func TestRenderSparkline_ZeroOrNegativeWidth(t *testing.T) {
	assert.Empty(t, RenderSparkline([]float64{50, 60, 70}, 0))
	assert.Empty(t, RenderSparkline([]float64{50, 60, 70}, -5))
}

func TestRenderSparkline_SingleValue(t *testing.T) {
	result := RenderSparkline([]float64{50}, 10)
	assert.True(t, containsBlockChar(result), "should contain a block character")
	assert.Equal(t, 1, len([]rune(stripANSI(result))))
}

func TestRenderSparkline_OneBlockPerPoint(t *testing.T) {
	data := []float64{0, 25, 50, 75, 100}
	result := RenderSparkline(data, 10)
	assert.Equal(t, 5, len([]rune(stripANSI(result))), "should have one block per data point")
}

func TestRenderSparkline_TruncatesToWidth(t *testing.T) {
	data := []float64{1, 2, 3, 4, 5, 6, 7, 8}
	result := RenderSparkline(data, 3)
	assert.Equal(t, 3, len([]rune(stripANSI(result))), "should keep only the most recent points")
}

func TestRenderSparkline_ExtremesMapToExtremes(t *testing.T) {
	data := []float64{0, 100}
	stripped := []rune(stripANSI(RenderSparkline(data, 10)))
	assert.Equal(t, sparklineBlockRunes[0], stripped[0])
	assert.Equal(t, sparklineBlockRunes[len(sparklineBlockRunes)-1], stripped[1])
}

func TestRenderSparkline_ColorsByLastValue(t *testing.T) {
	result := RenderSparkline([]float64{10, 95}, 10)
	assert.True(t, ansiPattern.MatchString(result), "high last value should render with color codes")
}
