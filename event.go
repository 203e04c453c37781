package fleece

// Event is one normalized input line on its way to the output.
type Event struct {
	Fields map[string]any
}

func NewEvent() Event {
	var newEvt Event
	newEvt.Fields = make(map[string]any)
	return newEvt
}

func (evt *Event) Field(path ...string) *Field {
	// don't split the path on "." here; keys containing a "." must stay addressable
	return &Field{
		Path:     path,
		original: evt,
	}
}

func (evt *Event) Set(field string, value any) {
	evt.Field(field).Set(value)
}

func (evt *Event) Get(field string) any {
	return evt.Field(field).MustGet()
}

// Copy is shallow below the top level; nested objects are shared.
func (evt *Event) Copy() Event {
	newEvt := NewEvent()
	for k, v := range evt.Fields {
		newEvt.Fields[k] = v
	}
	return newEvt
}
