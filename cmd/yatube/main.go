// Command yatube runs the blog server and its administrative commands.
//
//	yatube serve
//	yatube migrate
//	yatube groups create --title "Leo Tolstoy" --description "..."
//	yatube groups list
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "yatube",
		Usage: "a small blogging platform",
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:  "env-file",
				Usage: "dotenv files to load before reading the environment",
				Value: cli.NewStringSlice(".env"),
			},
		},
		Commands: []*cli.Command{
			serveCommand(),
			migrateCommand(),
			groupsCommand(),
		},
	}

	if err := app.RunContext(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "yatube:", err)
		os.Exit(1)
	}
}
