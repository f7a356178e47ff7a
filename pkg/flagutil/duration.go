package flagutil

import (
	"time"

	"github.com/jessevdk/go-flags"
)

// Duration is a time.Duration that parses from flags and config text.
type Duration time.Duration

var _ flags.Unmarshaler = (*Duration)(nil)

func (d Duration) String() string {
	return time.Duration(d).String()
}

func (d *Duration) UnmarshalText(text []byte) error {
	duration, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(duration)
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// UnmarshalFlag calls UnmarshalText for go-flags compatibility.
func (d *Duration) UnmarshalFlag(value string) error {
	return d.UnmarshalText([]byte(value))
}
