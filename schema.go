package fleece

// Field names every event carries or may carry.
const (
	FieldMessage = "message"
	FieldFile    = "file"
	FieldHost    = "host"
)

// StdinFile is the value of the file field; stdin is the only input there is.
const StdinFile = "-"
