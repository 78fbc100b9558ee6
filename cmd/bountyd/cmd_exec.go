package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/iov-one/bountyd"
	"github.com/iov-one/bountyd/app"
	bountyapp "github.com/iov-one/bountyd/cmd/bountyd/app"
	"github.com/iov-one/bountyd/errors"
	"github.com/iov-one/bountyd/x/sigs"
	"github.com/urfave/cli/v2"
)

func execCommand() *cli.Command {
	return &cli.Command{
		Name:      "exec",
		Usage:     "sign and execute transactions",
		ArgsUsage: "[file]",
		Description: `Transactions are read from given file or the standard input, one JSON
object per line:

  {"signer": "alice", "path": "bounty/apply", "msg": {"BountyID": "AAAAAAAAAAE="}}

The message is signed with the named key and executed. An optional "time"
field sets the block time of that transaction. For each transaction a JSON
result line is printed. The state is committed once all lines are
processed, even if some of the transactions failed.`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "check",
				Usage: "only check the transactions, never change the state",
			},
		},
		Action: cmdExec,
	}
}

// execRequest is a single line of the exec input.
type execRequest struct {
	Signer string            `json:"signer"`
	Path   string            `json:"path"`
	Msg    json.RawMessage   `json:"msg"`
	Time   *bountyd.UnixTime `json:"time,omitempty"`
}

// execResult is printed for every processed transaction.
type execResult struct {
	Line   int      `json:"line"`
	Path   string   `json:"path,omitempty"`
	Data   []byte   `json:"data,omitempty"`
	Log    string   `json:"log,omitempty"`
	Events []string `json:"events,omitempty"`
	Error  string   `json:"error,omitempty"`
	Code   uint32   `json:"code,omitempty"`
}

func cmdExec(c *cli.Context) error {
	var input io.Reader = os.Stdin
	if c.NArg() > 0 {
		fd, err := os.Open(c.Args().First())
		if err != nil {
			return errors.Wrapf(errors.ErrInput, "open input: %s", err)
		}
		defer fd.Close()
		input = fd
	}

	blockTime := time.Now()
	n, err := openNode(c, app.WithClock(func() time.Time { return blockTime }))
	if err != nil {
		return err
	}
	defer n.Close()
	if n.app.ChainID() == "" {
		return errors.Wrap(errors.ErrState, "state not initialized, run init first")
	}

	enc := json.NewEncoder(c.App.Writer)
	var failed int
	scanner := bufio.NewScanner(input)
	for line := 1; scanner.Scan(); line++ {
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		res := execLine(c, n, text, c.Bool("check"), &blockTime)
		res.Line = line
		if res.Error != "" {
			failed++
		}
		if err := enc.Encode(res); err != nil {
			return errors.Wrapf(errors.ErrHuman, "write result: %s", err)
		}
	}
	if err := scanner.Err(); err != nil {
		return errors.Wrapf(errors.ErrInput, "read input: %s", err)
	}

	if !c.Bool("check") {
		commit, err := n.app.Commit()
		if err != nil {
			return err
		}
		fmt.Fprintf(c.App.ErrWriter, "committed version %d %X\n", commit.Version, commit.Hash)
	}
	if failed > 0 {
		return errors.Wrapf(errors.ErrState, "%d transactions failed", failed)
	}
	return nil
}

// execLine signs and processes a single request.
func execLine(c *cli.Context, n *node, text string, checkOnly bool, blockTime *time.Time) execResult {
	var res execResult
	fail := func(err error) execResult {
		res.Error = err.Error()
		res.Code = errors.Code(err)
		return res
	}

	var req execRequest
	if err := json.Unmarshal([]byte(text), &req); err != nil {
		return fail(errors.Wrapf(errors.ErrInput, "decode request: %s", err))
	}
	res.Path = req.Path
	if req.Time != nil {
		*blockTime = req.Time.Time()
	}
	msg, err := bountyapp.DecodeJSONMsg(req.Path, req.Msg)
	if err != nil {
		return fail(err)
	}
	key, err := loadKey(c, req.Signer)
	if err != nil {
		return fail(err)
	}
	tx, err := bountyapp.NewTx(msg)
	if err != nil {
		return fail(err)
	}

	var nonce int64
	err = n.app.View(func(db bountyd.ReadOnlyKVStore) error {
		nonce, err = sigs.NextNonce(db, key.PublicKey().Address())
		return err
	})
	if err != nil {
		return fail(err)
	}
	sig, err := sigs.SignTx(key, tx, n.app.ChainID(), nonce)
	if err != nil {
		return fail(err)
	}
	tx.Signatures = []*sigs.StdSignature{sig}
	raw, err := tx.Marshal()
	if err != nil {
		return fail(err)
	}

	if checkOnly {
		cres, err := n.app.CheckTx(raw)
		if err != nil {
			return fail(err)
		}
		res.Data, res.Log = cres.Data, cres.Log
		return res
	}
	dres, err := n.app.DeliverTx(raw)
	if err != nil {
		return fail(err)
	}
	res.Data, res.Log = dres.Data, dres.Log
	for _, e := range dres.Events {
		res.Events = append(res.Events, e.Type)
	}
	return res
}
