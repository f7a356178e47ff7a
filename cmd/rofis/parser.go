package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/jessevdk/go-flags"

	"github.com/gilliginsisland/rofis/pkg/flagutil"
)

var opts struct {
	ConfigPath flagutil.Path     `short:"c" long:"config" description:"Path to a YAML config file"`
	LogLevel   flagutil.LogLevel `short:"v" long:"verbosity" description:"Verbosity level"`
}

// config is loaded from opts.ConfigPath before a command runs. Nil when no
// file was given.
var config *Config

// Global parser instance
var parser = flags.NewParser(&opts, flags.Default)

func init() {
	parser.CommandHandler = handleCommand
}

func handleCommand(cmd flags.Commander, args []string) error {
	// stdout may be carrying HTTP in stdio mode
	slog.SetDefault(opts.LogLevel.Logger(os.Stderr))

	slog.Debug(fmt.Sprintf("Running command: %#v", cmd))

	if opts.ConfigPath != "" {
		cfg, err := LoadConfig(string(opts.ConfigPath))
		if err != nil {
			return err
		}
		config = cfg
	}

	return cmd.Execute(args)
}

// ParseArgs runs the command named by args, defaulting to serve.
func ParseArgs(args []string) ([]string, error) {
	if len(args) == 0 {
		args = []string{"serve"}
	}
	return parser.ParseArgs(args)
}
