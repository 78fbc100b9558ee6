/*
Command bountyd runs the bounty marketplace ledger on a local store.

Transactions are read as JSON lines, signed with locally stored keys and
executed against an iavl store kept in the home directory. Every
invocation of exec commits a new version of the state.
*/
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/iov-one/bountyd"
	"github.com/urfave/cli/v2"
)

func main() {
	if err := newApp(os.Stdout, os.Stderr).Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newApp(out, errOut io.Writer) *cli.App {
	return &cli.App{
		Name:      "bountyd",
		Usage:     "bounty marketplace ledger",
		Version:   bountyd.Version(),
		Writer:    out,
		ErrWriter: errOut,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "home",
				Value:   filepath.Join(os.Getenv("HOME"), ".bountyd"),
				Usage:   "directory holding the keys and the state",
				EnvVars: []string{"BOUNTYD_HOME"},
			},
			&cli.StringFlag{
				Name:  "log-level",
				Value: "info",
				Usage: "one of debug, info, error or none",
			},
		},
		Commands: []*cli.Command{
			keysCommand(),
			initCommand(),
			execCommand(),
			queryCommand(),
		},
	}
}
