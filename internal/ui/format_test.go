package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseUnit(t *testing.T) {
	assert.Equal(t, UnitKB, ParseUnit("kb"))
	assert.Equal(t, UnitKB, ParseUnit(""))
	assert.Equal(t, UnitKB, ParseUnit("bogus"))
	assert.Equal(t, UnitMB, ParseUnit("MB"))
	assert.Equal(t, UnitMB, ParseUnit("m"))
	assert.Equal(t, UnitGB, ParseUnit(" GiB "))
}

func TestUnitConvert(t *testing.T) {
	assert.Equal(t, float64(2048), UnitKB.Convert(2048))
	assert.Equal(t, float64(2), UnitMB.Convert(2048))
	assert.Equal(t, float64(1), UnitGB.Convert(1024*1024))
}

func TestUnitFormat(t *testing.T) {
	assert.Equal(t, "2048", UnitKB.Format(2048))
	assert.Equal(t, "2.0", UnitMB.Format(2048))
	assert.Equal(t, "1.50", UnitGB.Format(1024*1024+512*1024))
	assert.Equal(t, "2.0 MB", UnitMB.FormatWithLabel(2048))
}
