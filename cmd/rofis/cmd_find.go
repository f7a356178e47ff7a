package main

import (
	"context"
	"fmt"
	"slices"

	"github.com/jessevdk/go-flags"

	"github.com/gilliginsisland/rofis/pkg/dirindex"
	"github.com/gilliginsisland/rofis/pkg/flagutil"
)

func init() {
	parser.AddCommand("find", "Find directories by suffix", "Indexes the root and prints every directory ending with the suffix", &FindCommand{})
}

var _ flags.Commander = (*FindCommand)(nil)

type FindCommand struct {
	Root flagutil.Dir `short:"r" long:"root" default:"." description:"Directory to index"`
	Args struct {
		Suffix string `positional-arg-name:"suffix" description:"Directory path suffix, e.g. a/b"`
	} `positional-args:"yes" required:"yes"`
}

func (c *FindCommand) Execute(args []string) error {
	if config != nil {
		config.applyFind(parser.Find("find"), c)
	}

	idx, err := dirindex.Build(context.Background(), string(c.Root))
	if err != nil {
		return err
	}

	matches := idx.FindBySuffix(c.Args.Suffix)
	slices.Sort(matches)
	for _, m := range matches {
		fmt.Println(m)
	}
	fmt.Printf("%d of %d directories matched\n", len(matches), idx.Len())
	return nil
}
