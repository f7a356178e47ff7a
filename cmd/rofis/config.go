package main

import (
	"fmt"
	"os"

	"github.com/jessevdk/go-flags"
	"sigs.k8s.io/yaml"

	"github.com/gilliginsisland/rofis/pkg/flagutil"
)

// Config mirrors the serve options that may be set from a file. Unset keys
// leave the flag values alone.
type Config struct {
	Root            *flagutil.Dir      `json:"root,omitempty"`
	Listen          *flagutil.HostPort `json:"listen,omitempty"`
	WatchInterval   *flagutil.Duration `json:"watch_interval,omitempty"`
	RebuildInterval *flagutil.Duration `json:"rebuild_interval,omitempty"`
	MaxConns        *int               `json:"max_conns,omitempty"`
	MetricsListen   *flagutil.HostPort `json:"metrics_listen,omitempty"`
}

func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	var c Config
	if err := yaml.UnmarshalStrict(data, &c); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return &c, nil
}

func (c *Config) applyServe(cmd *flags.Command, s *ServeCommand) {
	override(cmd, "root", &s.Root, c.Root)
	override(cmd, "listen", &s.Listen, c.Listen)
	override(cmd, "watch-interval", &s.WatchInterval, c.WatchInterval)
	override(cmd, "rebuild-interval", &s.RebuildInterval, c.RebuildInterval)
	override(cmd, "max-conns", &s.MaxConns, c.MaxConns)
	override(cmd, "metrics-listen", &s.MetricsListen, c.MetricsListen)
}

func (c *Config) applyFind(cmd *flags.Command, f *FindCommand) {
	override(cmd, "root", &f.Root, c.Root)
}

// override copies src into dst unless the option was given on the command
// line.
func override[T any](cmd *flags.Command, long string, dst, src *T) {
	if src == nil {
		return
	}
	if cmd != nil {
		if opt := cmd.FindOptionByLongName(long); opt != nil && opt.IsSet() && !opt.IsSetDefault() {
			return
		}
	}
	*dst = *src
}
