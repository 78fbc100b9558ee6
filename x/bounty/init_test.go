package bounty

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/iov-one/bountyd"
	"github.com/iov-one/bountyd/errors"
	"github.com/iov-one/bountyd/store"
	"github.com/iov-one/bountyd/weavetest/assert"
)

func TestGenesis(t *testing.T) {
	admin := strings.Repeat("AB", bountyd.AddressLength)
	user := strings.Repeat("CD", bountyd.AddressLength)
	conf := `"conf": {"bounty": {"admin": "` + admin + `", "fee_bps": 250, "min_reputation": 10,
		"starting_reputation": 100, "ticker": "BNT", "max_participants": 5, "max_category": 8}}`

	cases := map[string]struct {
		genesis        string
		wantErr        *errors.Error
		wantReputation uint64
	}{
		"configuration only": {
			genesis: `{` + conf + `}`,
		},
		"missing configuration": {
			genesis: `{}`,
			wantErr: errors.ErrNotFound,
		},
		"fee above limit": {
			genesis: `{"conf": {"bounty": {"admin": "` + admin + `", "fee_bps": 1001, "ticker": "BNT", "max_participants": 1}}}`,
			wantErr: errors.ErrInput,
		},
		"profile with starting reputation": {
			genesis:        `{` + conf + `, "bounty": {"profiles": [{"address": "` + user + `", "display_name": "carol"}]}}`,
			wantReputation: 100,
		},
		"profile with reputation": {
			genesis:        `{` + conf + `, "bounty": {"profiles": [{"address": "` + user + `", "reputation": 7}]}}`,
			wantReputation: 7,
		},
		"duplicated profile": {
			genesis: `{` + conf + `, "bounty": {"profiles": [{"address": "` + user + `"}, {"address": "` + user + `"}]}}`,
			wantErr: errors.ErrDuplicate,
		},
		"invalid profile address": {
			genesis: `{` + conf + `, "bounty": {"profiles": [{"address": "ABCD"}]}}`,
			wantErr: errors.ErrInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var opts bountyd.Options
			if err := json.Unmarshal([]byte(tc.genesis), &opts); err != nil {
				t.Fatalf("cannot decode genesis: %s", err)
			}
			db := store.MemStore()
			err := Initializer{}.FromGenesis(opts, db)
			assert.IsErr(t, tc.wantErr, err)
			if tc.wantErr != nil {
				return
			}
			c, err := loadConf(db)
			assert.Nil(t, err)
			assert.Equal(t, "BNT", c.Ticker)
			if tc.wantReputation == 0 {
				return
			}
			addr, _ := bountyd.ParseAddress(user)
			var p UserProfile
			assert.Nil(t, NewProfileBucket().One(db, addr, &p))
			assert.Equal(t, tc.wantReputation, p.Reputation)
		})
	}
}
