package output

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nicwaller/fleece"
)

func TestWriter_OneLinePerEvent(t *testing.T) {
	var buf bytes.Buffer
	out := Writer(&buf, StdoutOptions{})

	for _, msg := range []string{"a", "b"} {
		evt := fleece.NewEvent()
		evt.Set("message", msg)
		require.NoError(t, out.Run(context.Background(), evt))
	}

	assert.Equal(t, "{\"message\":\"a\"}\n{\"message\":\"b\"}\n", buf.String())
}
