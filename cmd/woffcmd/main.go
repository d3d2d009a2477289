package main

import (
	"github.com/tdewolff/argp"
)

func main() {
	cmd := argp.New("Convert WOFF files to TTF or OTF")
	cmd.AddCmd(&Convert{}, "convert", "Convert a WOFF file to TTF/OTF")
	cmd.AddCmd(&Info{}, "info", "Show the WOFF header and table directory")
	cmd.Parse()
}
