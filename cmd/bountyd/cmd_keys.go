package main

import (
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"github.com/iov-one/bountyd/crypto"
	"github.com/iov-one/bountyd/errors"
	"github.com/stellar/go/exp/crypto/derivation"
	"github.com/urfave/cli/v2"
)

func keysCommand() *cli.Command {
	return &cli.Command{
		Name:  "keys",
		Usage: "manage the private keys used to sign transactions",
		Subcommands: []*cli.Command{
			{
				Name:      "add",
				Usage:     "create a new private key",
				ArgsUsage: "<name>",
				Description: `A random key is created unless a master seed is given. With a seed,
the key is derived using given bip44 path.

The command fails if a key with the same name already exists.`,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "seed",
						Usage: "hex encoded master seed",
					},
					&cli.StringFlag{
						Name:  "path",
						Value: "m/44'/234'/0'",
						Usage: "bip44 derivation path, used only with a seed",
					},
				},
				Action: cmdKeysAdd,
			},
			{
				Name:      "show",
				Usage:     "print the address of a private key",
				ArgsUsage: "<name>",
				Action:    cmdKeysShow,
			},
		},
	}
}

func cmdKeysAdd(c *cli.Context) error {
	name := c.Args().First()
	if !isKeyName(name) {
		return errors.Wrapf(errors.ErrInput, "invalid key name %q", name)
	}
	path := keyPath(c, name)
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		// Never overwrite a key. It must be removed by hand.
		return errors.Wrapf(errors.ErrDuplicate, "key file %q already exists", path)
	}

	var key *crypto.PrivateKey
	if seed := c.String("seed"); seed != "" {
		raw, err := hex.DecodeString(seed)
		if err != nil {
			return errors.Wrapf(errors.ErrInput, "seed: %s", err)
		}
		derived, err := derivation.DeriveForPath(c.String("path"), raw)
		if err != nil {
			return errors.Wrapf(errors.ErrInput, "derive %q: %s", c.String("path"), err)
		}
		if key, err = crypto.PrivKeyEd25519FromSeed(derived.Key); err != nil {
			return err
		}
	} else {
		key = crypto.GenPrivKeyEd25519()
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return errors.Wrapf(errors.ErrInput, "create keys directory: %s", err)
	}
	fd, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0600)
	if err != nil {
		return errors.Wrapf(errors.ErrInput, "create key file: %s", err)
	}
	defer fd.Close()
	if _, err := fmt.Fprintln(fd, hex.EncodeToString(key.Ed25519)); err != nil {
		return errors.Wrapf(errors.ErrInput, "write key: %s", err)
	}
	if err := fd.Close(); err != nil {
		return errors.Wrapf(errors.ErrInput, "close key file: %s", err)
	}
	return printAddress(c, key)
}

func cmdKeysShow(c *cli.Context) error {
	key, err := loadKey(c, c.Args().First())
	if err != nil {
		return err
	}
	return printAddress(c, key)
}

func printAddress(c *cli.Context, key *crypto.PrivateKey) error {
	addr := key.PublicKey().Address()
	_, err := fmt.Fprintf(c.App.Writer, "%s\t%s\n", addr, addr.Bech32())
	return err
}
