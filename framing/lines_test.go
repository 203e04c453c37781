package framing

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readAll(t *testing.T, r io.Reader, window int) []string {
	t.Helper()
	frames := Lines(window)(r)
	var out []string
	for {
		frame, err := frames.ReadFrame()
		if len(frame) > 0 {
			out = append(out, string(frame))
		}
		if err == io.EOF {
			return out
		}
		require.NoError(t, err)
	}
}

func TestLines_KeepsTrailingNewline(t *testing.T) {
	actual := readAll(t, strings.NewReader("Hello\nGoodbye\n"), 1024)
	assert.Equal(t, []string{"Hello\n", "Goodbye\n"}, actual)
}

func TestLines_LastLineWithoutNewline(t *testing.T) {
	actual := readAll(t, strings.NewReader("Hello\nGoodbye"), 1024)
	assert.Equal(t, []string{"Hello\n", "Goodbye"}, actual)
}

func TestLines_SplitsAtWindowSize(t *testing.T) {
	actual := readAll(t, strings.NewReader("abcdefgh\nxy\n"), 4)
	assert.Equal(t, []string{"abcd", "efgh", "\n", "xy\n"}, actual)
}

func TestLines_WindowLargerThanAnyFixedBuffer(t *testing.T) {
	long := strings.Repeat("x", 64*1024) + "\n"
	actual := readAll(t, strings.NewReader(long), 128*1024)
	require.Len(t, actual, 1)
	assert.Equal(t, long, actual[0])
}

func TestLines_EmptyInput(t *testing.T) {
	assert.Empty(t, readAll(t, strings.NewReader(""), 1024))
}

func TestLines_BlankLineIsAFrame(t *testing.T) {
	actual := readAll(t, strings.NewReader("\n\n"), 1024)
	assert.Equal(t, []string{"\n", "\n"}, actual)
}

// silentReader returns no data and no error a fixed number of times.
type silentReader struct {
	silences int
	data     io.Reader
}

func (r *silentReader) Read(p []byte) (int, error) {
	if r.silences > 0 {
		r.silences--
		return 0, nil
	}
	return r.data.Read(p)
}

func TestLines_SilentProducerYieldsEmptyFrame(t *testing.T) {
	r := &silentReader{silences: 1000, data: strings.NewReader("late\n")}
	frames := Lines(1024)(r)

	frame, err := frames.ReadFrame()
	require.NoError(t, err)
	assert.Empty(t, frame)

	empties := 1
	for len(frame) == 0 && empties < 100 {
		frame, err = frames.ReadFrame()
		require.NoError(t, err)
		if len(frame) == 0 {
			empties++
		}
	}
	assert.Equal(t, "late\n", string(frame))
	assert.Greater(t, empties, 1)
}

// stallingReader hands out its chunks in order, with empty reads in between.
type stallingReader struct {
	chunks   []string
	silences int
	left     int
}

func (r *stallingReader) Read(p []byte) (int, error) {
	if len(r.chunks) == 0 {
		return 0, io.EOF
	}
	if r.left > 0 {
		r.left--
		return 0, nil
	}
	n := copy(p, r.chunks[0])
	r.chunks = r.chunks[1:]
	r.left = r.silences
	return n, nil
}

func TestLines_StallMidLineKeepsOneFrame(t *testing.T) {
	r := &stallingReader{chunks: []string{"hel", "lo\n", "next\n"}, silences: 150}
	assert.Equal(t, []string{"hello\n", "next\n"}, readAll(t, r, 1024))
}
