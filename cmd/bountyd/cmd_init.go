package main

import (
	"fmt"

	"github.com/iov-one/bountyd/app"
	"github.com/iov-one/bountyd/errors"
	"github.com/urfave/cli/v2"
)

func initCommand() *cli.Command {
	return &cli.Command{
		Name:      "init",
		Usage:     "initialize the state from a genesis file",
		ArgsUsage: "<genesis.json>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "chain-id",
				Usage: "override the chain id declared in the genesis file",
			},
		},
		Action: cmdInit,
	}
}

func cmdInit(c *cli.Context) error {
	if c.NArg() != 1 {
		return errors.Wrap(errors.ErrInput, "genesis file path required")
	}
	gen, err := app.LoadGenesis(c.Args().First())
	if err != nil {
		return err
	}
	if id := c.String("chain-id"); id != "" {
		gen.ChainID = id
	}

	n, err := openNode(c)
	if err != nil {
		return err
	}
	defer n.Close()

	if err := n.app.InitChain(gen); err != nil {
		return err
	}
	commit, err := n.app.Commit()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(c.App.Writer, "%s\t%d\t%X\n", gen.ChainID, commit.Version, commit.Hash)
	return err
}
