package main

import (
	"fmt"
	"os"

	"github.com/tdewolff/woff"
)

type Info struct {
	Input string `index:"0" desc:"Input WOFF file"`
}

func (cmd *Info) Run() error {
	b, err := os.ReadFile(cmd.Input)
	if err != nil {
		return err
	}
	font, err := woff.Parse(b)
	if err != nil {
		return err
	}

	fmt.Printf("File: %s\n\n", cmd.Input)
	font.Dump(os.Stdout)
	return nil
}
