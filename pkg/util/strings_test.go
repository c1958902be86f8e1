package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseIntDefault(t *testing.T) {
	assert.Equal(t, 5, ParseIntDefault("", 5))
	assert.Equal(t, 5, ParseIntDefault("x", 5))
	assert.Equal(t, 12, ParseIntDefault("12", 5))
}

func TestSplitCSV(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, SplitCSV(" a ,,b, "))
	assert.Empty(t, SplitCSV(""))
}

func TestUpperTrim(t *testing.T) {
	assert.Equal(t, "AAPL", UpperTrim(" aapl\n"))
}
