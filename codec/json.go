package codec

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/nicwaller/fleece"
)

var ErrNotObject = errors.New("not a JSON object")

func Json() fleece.CodecPlugin {
	return &jsonCodec{}
}

type jsonCodec struct{}

// Encode writes compact JSON; map keys come out sorted.
func (p *jsonCodec) Encode(event fleece.Event) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(event.Fields); err != nil {
		return nil, err
	}
	// Encoder always terminates with a newline
	return bytes.TrimSuffix(buf.Bytes(), []byte{'\n'}), nil
}

// Decode accepts exactly one JSON object, optionally surrounded by whitespace.
func (p *jsonCodec) Decode(dat []byte) (fleece.Event, error) {
	evt := fleece.NewEvent()
	if !utf8.Valid(dat) {
		return evt, fmt.Errorf("invalid UTF-8")
	}

	dec := json.NewDecoder(bytes.NewReader(dat))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return evt, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return evt, fmt.Errorf("trailing data after JSON value")
	}

	obj, ok := v.(map[string]any)
	if !ok {
		return evt, fmt.Errorf("%w: got %T", ErrNotObject, v)
	}
	evt.Fields = obj
	return evt, nil
}
