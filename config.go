package fleece

import (
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"
)

// DefaultWindowSize is the default maximum number of bytes read per line.
const DefaultWindowSize = 1024

var (
	ErrMissingHost       = errors.New("Missing --host flag")
	ErrMissingPort       = errors.New("Missing --port flag")
	ErrInvalidField      = errors.New("Invalid --field")
	ErrInvalidWindowSize = errors.New("Invalid --window_size")
)

// Endpoint is where every datagram goes.
type Endpoint struct {
	Host string
	Port uint16
}

func (e Endpoint) String() string {
	return net.JoinHostPort(e.Host, strconv.Itoa(int(e.Port)))
}

// StaticField is a key/value pair added to every event.
type StaticField struct {
	Key   string
	Value string
}

// ParseStaticField splits "key=value" on the first '='.
func ParseStaticField(s string) (StaticField, error) {
	key, value, found := strings.Cut(s, "=")
	if !found {
		return StaticField{}, fmt.Errorf("%w : expected 'foo=bar' form didn't find '=' in '%s'", ErrInvalidField, s)
	}
	return StaticField{Key: key, Value: value}, nil
}

// Config is resolved once at startup and never modified afterwards.
type Config struct {
	Destination  Endpoint
	WindowSize   int
	StaticFields []StaticField
	Hostname     string
}

func (c Config) Validate() error {
	var errs []error
	if c.Destination.Host == "" {
		errs = append(errs, ErrMissingHost)
	}
	if c.Destination.Port == 0 {
		errs = append(errs, ErrMissingPort)
	}
	if c.WindowSize <= 0 {
		errs = append(errs, fmt.Errorf("%w: must be positive, got %d", ErrInvalidWindowSize, c.WindowSize))
	}
	return errors.Join(errs...)
}
