package main

import (
	"fmt"
	"strconv"

	"github.com/iov-one/bountyd"
	"github.com/iov-one/bountyd/codec"
	"github.com/iov-one/bountyd/errors"
	"github.com/iov-one/bountyd/orm"
	"github.com/urfave/cli/v2"
)

func queryCommand() *cli.Command {
	return &cli.Command{
		Name:  "query",
		Usage: "print the current state",
		Subcommands: []*cli.Command{
			{
				Name:      "bounty",
				Usage:     "print a bounty",
				ArgsUsage: "<id>",
				Action:    cmdQueryBounty,
			},
			{
				Name:      "profile",
				Usage:     "print the profile of an address",
				ArgsUsage: "<address|key name>",
				Action:    cmdQueryProfile,
			},
			{
				Name:      "balance",
				Usage:     "print the coins owned by an address",
				ArgsUsage: "<address|key name>",
				Action:    cmdQueryBalance,
			},
			{
				Name:   "treasury",
				Usage:  "print the collected platform fees",
				Action: cmdQueryTreasury,
			},
			{
				Name:   "config",
				Usage:  "print the marketplace configuration",
				Action: cmdQueryConfig,
			},
		},
	}
}

// query opens the state and calls fn with read only access to it.
func query(c *cli.Context, fn func(n *node, db bountyd.ReadOnlyKVStore) (interface{}, error)) error {
	n, err := openNode(c)
	if err != nil {
		return err
	}
	defer n.Close()

	var res interface{}
	err = n.app.View(func(db bountyd.ReadOnlyKVStore) error {
		res, err = fn(n, db)
		return err
	})
	if err != nil {
		return err
	}
	raw, err := codec.MarshalJSON(res)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(c.App.Writer, string(raw))
	return err
}

// addressArg accepts an address in any format bountyd.ParseAddress
// understands or the name of a local key.
func addressArg(c *cli.Context) (bountyd.Address, error) {
	arg := c.Args().First()
	if arg == "" {
		return nil, errors.Wrap(errors.ErrEmpty, "address")
	}
	if key, err := loadKey(c, arg); err == nil {
		return key.PublicKey().Address(), nil
	}
	return bountyd.ParseAddress(arg)
}

func cmdQueryBounty(c *cli.Context) error {
	id, err := strconv.ParseInt(c.Args().First(), 10, 64)
	if err != nil || id <= 0 {
		return errors.Wrapf(errors.ErrInput, "invalid bounty id %q", c.Args().First())
	}
	return query(c, func(n *node, db bountyd.ReadOnlyKVStore) (interface{}, error) {
		return n.modules.Ledger.Bounty(db, orm.EncodeSequence(id))
	})
}

func cmdQueryProfile(c *cli.Context) error {
	addr, err := addressArg(c)
	if err != nil {
		return err
	}
	return query(c, func(n *node, db bountyd.ReadOnlyKVStore) (interface{}, error) {
		return n.modules.Ledger.Profile(db, addr)
	})
}

func cmdQueryBalance(c *cli.Context) error {
	addr, err := addressArg(c)
	if err != nil {
		return err
	}
	return query(c, func(n *node, db bountyd.ReadOnlyKVStore) (interface{}, error) {
		return n.modules.Wallets.Balance(db, addr)
	})
}

func cmdQueryTreasury(c *cli.Context) error {
	return query(c, func(n *node, db bountyd.ReadOnlyKVStore) (interface{}, error) {
		return n.modules.Ledger.TreasuryBalance(db)
	})
}

func cmdQueryConfig(c *cli.Context) error {
	return query(c, func(n *node, db bountyd.ReadOnlyKVStore) (interface{}, error) {
		return n.modules.Ledger.Configuration(db)
	})
}
