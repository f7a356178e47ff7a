package main

import (
	"os"

	"github.com/jessevdk/go-flags"
)

func main() {
	if _, err := ParseArgs(os.Args[1:]); err != nil {
		if flags.WroteHelp(err) {
			return
		}
		os.Exit(1)
	}
}
