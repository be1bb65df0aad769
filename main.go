package main

import (
	"fmt"
	"log"
	"os"

	"github.com/urfave/cli/v2"
)

const version = "0.1.0"

var commands []*cli.Command

func init() {
	commands = append(commands, &cli.Command{
		Name:  "version",
		Usage: "Print the compiler version",
		Action: func(c *cli.Context) error {
			fmt.Println("tisane", version)
			return nil
		},
	})
}

func main() {
	app := &cli.App{
		Name:                   "tisane",
		Usage:                  "A minimal imperative language that compiles to native code",
		Version:                version,
		EnableBashCompletion:   true,
		UseShortOptionHandling: true,
		Commands:               commands,
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
