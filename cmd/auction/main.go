package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
)

func main() {
	app := cli.NewApp()

	app.Version = "0.1.0"
	app.Name = "auction CLI"
	app.Usage = "command line interface for the auctiond daemon"
	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "addr",
			Usage:   "address of the auctiond HTTP interface",
			Value:   "http://localhost:7070",
			EnvVars: []string{"AUCTION_CLI_ADDR"},
		},
		&cli.StringFlag{
			Name:    "token",
			Usage:   "bearer token carrying the caller identity",
			EnvVars: []string{"AUCTION_CLI_TOKEN"},
		},
	}
	app.Commands = append(
		app.Commands,
		&createauction,
		&placebid,
		&settleauction,
		&cancelauction,
		&getauction,
		&listauctions,
		&mintasset,
		&creditfunds,
	)

	if err := app.Run(os.Args); err != nil {
		fatal(err)
	}
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "[auction] %v\n", err)
	os.Exit(1)
}
