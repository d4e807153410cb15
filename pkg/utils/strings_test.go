package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatUintHex(t *testing.T) {
	assert.Equal(t, "0x3", FormatUintHex(0x3, 2))
	assert.Equal(t, "0x003", FormatUintHex(0x3, 12))
	assert.Equal(t, "0xFFFFFFFC", FormatUintHex(0xfffffffc, 32))
	assert.Equal(t, "0x0000000000001800", FormatUintHex(0x1800, 64))
}

func TestFormatSlice(t *testing.T) {
	assert.Equal(t, "", FormatSlice([]int{}, ", "))
	assert.Equal(t, "1", FormatSlice([]int{1}, ", "))
	assert.Equal(t, "a, b, c", FormatSlice([]string{"a", "b", "c"}, ", "))
}

func TestCamelCase(t *testing.T) {
	cases := map[string]string{
		"mstatus":          "Mstatus",
		"platform_defined": "PlatformDefined",
		"exception_code":   "ExceptionCode",
		"hpmcounter3":      "Hpmcounter3",
		"_leading__double": "LeadingDouble",
		"MIE":              "Mie",
	}

	for input, expected := range cases {
		assert.Equal(t, expected, CamelCase(input), input)
	}
}
