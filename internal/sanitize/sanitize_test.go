package sanitize

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnswerPassesCleanInput(t *testing.T) {
	got, err := Answer("hello world\nwith newline\tand tab")
	require.NoError(t, err)
	assert.Equal(t, "hello world\nwith newline\tand tab", got)
}

func TestAnswerStripsControlCharacters(t *testing.T) {
	got, err := Answer("hi\x1b[31mred\x07bell\x00null")
	require.NoError(t, err)
	assert.Equal(t, "hi[31mredbellnull", got)
}

func TestAnswerRejectsOversized(t *testing.T) {
	_, err := Answer(strings.Repeat("a", DefaultMaxAnswerSize+1))
	assert.ErrorIs(t, err, ErrAnswerTooLarge)
}

func TestAnswerRejectsInvalidUTF8(t *testing.T) {
	_, err := Answer(string([]byte{0xff, 0xfe}))
	assert.ErrorIs(t, err, ErrInvalidUTF8)
}

func TestAnswerSizeOverride(t *testing.T) {
	t.Setenv(EnvMaxAnswerSize, "8")
	_, err := Answer("123456789")
	assert.ErrorIs(t, err, ErrAnswerTooLarge)

	got, err := Answer("12345678")
	require.NoError(t, err)
	assert.Equal(t, "12345678", got)
}
