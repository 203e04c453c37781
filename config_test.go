package fleece

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStaticField(t *testing.T) {
	f, err := ParseStaticField("env=prod")
	require.NoError(t, err)
	assert.Equal(t, StaticField{Key: "env", Value: "prod"}, f)
}

func TestParseStaticField_ValueMayContainEquals(t *testing.T) {
	f, err := ParseStaticField("query=a=b=c")
	require.NoError(t, err)
	assert.Equal(t, StaticField{Key: "query", Value: "a=b=c"}, f)
}

func TestParseStaticField_EmptyValue(t *testing.T) {
	f, err := ParseStaticField("empty=")
	require.NoError(t, err)
	assert.Equal(t, StaticField{Key: "empty", Value: ""}, f)
}

func TestParseStaticField_MissingEquals(t *testing.T) {
	_, err := ParseStaticField("nope")
	require.ErrorIs(t, err, ErrInvalidField)
	assert.Contains(t, err.Error(), "didn't find '=' in 'nope'")
}

func TestConfigValidate(t *testing.T) {
	ok := Config{Destination: Endpoint{Host: "127.0.0.1", Port: 5140}, WindowSize: DefaultWindowSize}
	assert.NoError(t, ok.Validate())

	err := Config{}.Validate()
	assert.ErrorIs(t, err, ErrMissingHost)
	assert.ErrorIs(t, err, ErrMissingPort)
	assert.ErrorIs(t, err, ErrInvalidWindowSize)
}

func TestEndpointString(t *testing.T) {
	assert.Equal(t, "10.0.0.1:5140", Endpoint{Host: "10.0.0.1", Port: 5140}.String())
}
