package ui

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderSimpleTable(t *testing.T) {
	columns := []TableColumn{{Title: "PID", Width: 8}, {Title: "NAME", Width: 16}}
	rows := [][]string{{"100", "chrome"}, {"200", "redis"}}

	out := RenderSimpleTable(columns, rows)
	assert.Contains(t, out, "PID")
	assert.Contains(t, out, "chrome")
	assert.Contains(t, out, "redis")
}

func TestRenderSimpleTableEmpty(t *testing.T) {
	assert.Empty(t, RenderSimpleTable([]TableColumn{{Title: "PID", Width: 8}}, nil))
}

func TestPadRight(t *testing.T) {
	assert.Equal(t, "ab   ", PadRight("ab", 5))
	assert.Equal(t, "abcdef", PadRight("abcdef", 3))
	assert.True(t, strings.HasSuffix(PadRight("x", 4), "   "))
}

func TestDefaultTableStyle(t *testing.T) {
	style := DefaultTableStyle()
	assert.True(t, style.Header.GetBold())
	assert.Equal(t, string(ColorPrimary), fmt.Sprint(style.Cell.GetForeground()))
	assert.Equal(t, string(ColorMuted), fmt.Sprint(style.Selected.GetBackground()))
}
