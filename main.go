package main

import (
	"fmt"
	"os"

	"github.com/dtnitsch/wordfreq/internal/analyze"
	"github.com/urfave/cli/v2"
)

func newApp() *cli.App {
	return &cli.App{
		Name:  "wordfreq",
		Usage: "Count word frequencies of a web text with a parallel map-reduce and chart the top words",
		Commands: []*cli.Command{
			analyze.Command(),
		},
	}
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
