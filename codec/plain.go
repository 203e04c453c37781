package codec

import (
	"fmt"

	"github.com/nicwaller/fleece"
)

// Plain puts the whole frame, untouched, into a single string field.
func Plain(fieldName string) fleece.CodecPlugin {
	return &plainCodec{fieldName: fieldName}
}

type plainCodec struct {
	fieldName string
}

func (p *plainCodec) Encode(event fleece.Event) ([]byte, error) {
	v, err := event.Field(p.fieldName).Get()
	if err != nil {
		return nil, err
	}
	s, ok := v.(string)
	if !ok {
		return nil, fmt.Errorf("field %s is %T, not a string", p.fieldName, v)
	}
	return []byte(s), nil
}

func (p *plainCodec) Decode(dat []byte) (fleece.Event, error) {
	evt := fleece.NewEvent()
	evt.Field(p.fieldName).SetString(string(dat))
	return evt, nil
}
