package utils

import (
	"regexp"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
)

var ansiEscape = regexp.MustCompile(`\x1b\[[0-9;]*m`)

const cSample = `/* mstatus */
#define MSTATUS_MIE_BIT_MASK 0x8
static inline uint_xlen_t csr_read_mstatus(void) {
    uint_xlen_t value;
    __asm__ volatile ("csrr    %0, mstatus" : "=r" (value));
    return value; // done
}
`

func withColors(t *testing.T) {
	previous := color.NoColor
	color.NoColor = false
	t.Cleanup(func() { color.NoColor = previous })
}

func TestHighlightCCode_KeepsText(t *testing.T) {
	withColors(t)

	highlighted := HighlightCCode(cSample)

	assert.NotEqual(t, cSample, highlighted)
	assert.Equal(t, cSample, ansiEscape.ReplaceAllString(highlighted, ""))
}

func TestHighlightCCode_Tokens(t *testing.T) {
	withColors(t)

	highlighted := HighlightCCode(cSample)

	assert.Contains(t, highlighted, cCommentColor.Sprint("/* mstatus */"))
	assert.Contains(t, highlighted, cStringColor.Sprint(`"csrr    %0, mstatus"`))
	assert.Contains(t, highlighted, cCommentColor.Sprint("// done"))
	assert.Contains(t, highlighted, cKeywordColor.Sprint("static"))
	assert.Contains(t, highlighted, cTypeColor.Sprint("uint_xlen_t"))
}

func TestHighlightCCode_Empty(t *testing.T) {
	assert.Equal(t, "", HighlightCCode(""))
}
