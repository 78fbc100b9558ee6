package main

import (
	"encoding/hex"
	"io/ioutil"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/iov-one/bountyd/app"
	bountyapp "github.com/iov-one/bountyd/cmd/bountyd/app"
	"github.com/iov-one/bountyd/crypto"
	"github.com/iov-one/bountyd/errors"
	"github.com/iov-one/bountyd/store/iavl"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/tendermint/tendermint/libs/log"
	"github.com/urfave/cli/v2"
	"golang.org/x/crypto/ed25519"
)

func newLogger(c *cli.Context) (log.Logger, error) {
	logger := log.NewTMLogger(log.NewSyncWriter(c.App.ErrWriter))
	opt, err := log.AllowLevel(c.String("log-level"))
	if err != nil {
		return nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	return log.NewFilter(logger, opt), nil
}

func keyPath(c *cli.Context, name string) string {
	return filepath.Join(c.String("home"), "keys", name+".key")
}

var isKeyName = regexp.MustCompile(`^[a-zA-Z0-9_\-]{1,32}$`).MatchString

// loadKey reads a private key stored by the keys add command.
func loadKey(c *cli.Context, name string) (*crypto.PrivateKey, error) {
	if !isKeyName(name) {
		return nil, errors.Wrapf(errors.ErrInput, "invalid key name %q", name)
	}
	raw, err := ioutil.ReadFile(keyPath(c, name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrapf(errors.ErrNotFound, "key %q", name)
		}
		return nil, errors.Wrapf(errors.ErrInput, "read key %q: %s", name, err)
	}
	priv, err := hex.DecodeString(strings.TrimSpace(string(raw)))
	if err != nil || len(priv) != ed25519.PrivateKeySize {
		return nil, errors.Wrapf(errors.ErrInput, "key %q is malformed", name)
	}
	return &crypto.PrivateKey{Ed25519: priv}, nil
}

// node is an application opened on the state kept in the home directory.
type node struct {
	store   *iavl.CommitStore
	app     *app.Application
	modules *bountyapp.Modules
}

func openNode(c *cli.Context, opts ...app.Option) (*node, error) {
	logger, err := newLogger(c)
	if err != nil {
		return nil, err
	}
	dir := filepath.Join(c.String("home"), "data")
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, errors.Wrapf(errors.ErrDatabase, "create %s: %s", dir, err)
	}
	kv, err := bountyapp.CommitKVStore(filepath.Join(dir, "state.db"))
	if err != nil {
		return nil, err
	}
	opts = append([]app.Option{
		app.WithLogger(logger),
		app.WithEventSink(bountyapp.LogSink{Logger: logger.With("module", "events")}),
	}, opts...)
	a, m, err := bountyapp.Application(kv, prometheus.NewRegistry(), opts...)
	if err != nil {
		kv.Close()
		return nil, err
	}
	return &node{store: kv, app: a, modules: m}, nil
}

func (n *node) Close() {
	n.store.Close()
}
