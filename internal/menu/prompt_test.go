package menu

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntRepromptsUntilValid(t *testing.T) {
	var out bytes.Buffer
	p := NewPrompter(strings.NewReader("abc\n-5\n7\n"), &out)

	v, err := p.Int("Enter: ")
	require.NoError(t, err)
	assert.Equal(t, int64(7), v)
	assert.Contains(t, out.String(), "Invalid input. Please enter a valid integer.")
	assert.Contains(t, out.String(), "Please enter a non-negative integer.")
}

func TestPriceRepromptsUntilValid(t *testing.T) {
	var out bytes.Buffer
	p := NewPrompter(strings.NewReader("oops\n-2\n5.999\n5.25\n"), &out)

	v, err := p.Price("Enter price: ")
	require.NoError(t, err)
	assert.Equal(t, int64(525), v)
	assert.Equal(t, 3, strings.Count(out.String(), "Invalid input. Please enter a non-negative number."))
}

func TestYesNo(t *testing.T) {
	var out bytes.Buffer
	p := NewPrompter(strings.NewReader("Y\nyes\nn\nwhatever\n"), &out)

	for _, want := range []bool{true, true, false, false} {
		got, err := p.YesNo("More? ")
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}

func TestExhaustedInputReturnsEOF(t *testing.T) {
	var out bytes.Buffer
	p := NewPrompter(strings.NewReader(""), &out)

	_, err := p.Int("Enter: ")
	assert.ErrorIs(t, err, io.EOF)
}
