package flagutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jessevdk/go-flags"
)

// Path is a filesystem path. A leading "~" or "~/" is replaced with the
// home directory; "~user" forms are left alone.
type Path string

var _ flags.Unmarshaler = (*Path)(nil)

func (p *Path) UnmarshalText(text []byte) error {
	path := string(text)
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("cannot expand %q: %w", path, err)
		}
		path = filepath.Join(home, path[1:])
	}
	*p = Path(path)
	return nil
}

func (p *Path) UnmarshalFlag(value string) error {
	return p.UnmarshalText([]byte(value))
}

// Dir is a Path that names an existing directory at the time it is parsed.
type Dir Path

var _ flags.Unmarshaler = (*Dir)(nil)

func (d *Dir) UnmarshalText(text []byte) error {
	var p Path
	if err := p.UnmarshalText(text); err != nil {
		return err
	}
	info, err := os.Stat(string(p))
	if err != nil {
		return fmt.Errorf("invalid directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("invalid directory: %s is not a directory", p)
	}
	*d = Dir(p)
	return nil
}

func (d *Dir) UnmarshalFlag(value string) error {
	return d.UnmarshalText([]byte(value))
}
