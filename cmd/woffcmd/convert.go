package main

import (
	"fmt"
	"os"

	"github.com/tdewolff/woff"
)

type Convert struct {
	Verbose bool   `short:"v" desc:"Print parsed header and table directory"`
	Output  string `short:"o" desc:"Output filename"`
	Input   string `index:"0" desc:"Input WOFF file"`
}

func (cmd *Convert) Run() error {
	opts := &woff.Options{}
	if cmd.Verbose {
		opts.Debug = os.Stderr
	}
	n, err := woff.Convert(cmd.Input, cmd.Output, opts)
	if err != nil {
		return err
	}
	fmt.Printf("wrote %d bytes\n", n)
	return nil
}
