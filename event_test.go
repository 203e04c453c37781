package fleece

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestField_SetAndGet(t *testing.T) {
	evt := NewEvent()
	evt.Field("message").SetString("hello")
	assert.Equal(t, "hello", evt.Field("message").GetString())
	assert.Equal(t, "hello", evt.Get("message"))
}

func TestField_Nested(t *testing.T) {
	evt := NewEvent()
	evt.Field("client", "ip").SetString("10.0.0.1")
	assert.Equal(t, map[string]any{"client": map[string]any{"ip": "10.0.0.1"}}, evt.Fields)

	v, err := evt.Field("client", "ip").Get()
	require.NoError(t, err)
	assert.Equal(t, "10.0.0.1", v)
}

func TestField_DottedKeyIsNotSplit(t *testing.T) {
	evt := NewEvent()
	evt.Set("client.ip", "10.0.0.1")
	assert.Contains(t, evt.Fields, "client.ip")
}

func TestField_GetMissing(t *testing.T) {
	evt := NewEvent()
	_, err := evt.Field("nope").Get()
	assert.Error(t, err)
	assert.Equal(t, "", evt.Field("nope").GetString())
}

func TestField_Delete(t *testing.T) {
	evt := NewEvent()
	evt.Set("a", "1")
	evt.Field("a").Delete()
	assert.Empty(t, evt.Fields)
}

func TestEvent_CopyIsIndependent(t *testing.T) {
	evt := NewEvent()
	evt.Set("a", "1")
	cp := evt.Copy()
	cp.Set("a", "2")
	assert.Equal(t, "1", evt.Get("a"))
}
