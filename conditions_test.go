package bountyd_test

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
	"testing"

	"github.com/iov-one/bountyd"
	"github.com/iov-one/bountyd/errors"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddressPrinting(t *testing.T) {
	Convey("test hexademical address printing", t, func() {
		b := []byte("ABCD123456LHB")
		addr := bountyd.Address(b)

		So(addr.String(), ShouldNotEqual, fmt.Sprintf("%X", addr))
		So(strings.ToUpper(addr.String()), ShouldEqual, addr.String())
	})

	Convey("test hexademical condition printing", t, func() {
		cond := bountyd.NewCondition("12", "32", []byte("ABCD123456LHB"))

		So(cond.String(), ShouldNotEqual, fmt.Sprintf("%X", cond))
	})

	Convey("test bech32 rendering", t, func() {
		addr := bountyd.NewCondition("bounty", "custody", []byte{1}).Address()

		So(addr.Bech32(), ShouldStartWith, "bnty1")
		back, err := bountyd.ParseAddress("bech32:" + addr.Bech32())
		So(err, ShouldBeNil)
		So(back.Equals(addr), ShouldBeTrue)
	})
}

func TestAddressUnmarshalJSON(t *testing.T) {
	cond := bountyd.NewCondition("foo", "bar", []byte("conditiondata"))
	hexAddr := strings.Repeat("01", bountyd.AddressLength)

	cases := map[string]struct {
		json     string
		wantErr  *errors.Error
		wantAddr bountyd.Address
	}{
		"default decoding": {
			json:     `"` + hexAddr + `"`,
			wantAddr: bountyd.Address([]byte(strings.Repeat("\x01", bountyd.AddressLength))),
		},
		"hex decoding": {
			json:     `"hex:` + hexAddr + `"`,
			wantAddr: bountyd.Address([]byte(strings.Repeat("\x01", bountyd.AddressLength))),
		},
		"cond decoding": {
			json:     `"cond:foo/bar/636f6e646974696f6e64617461"`,
			wantAddr: cond.Address(),
		},
		"bech32 decoding": {
			json:     `"bech32:` + cond.Address().Bech32() + `"`,
			wantAddr: cond.Address(),
		},
		"hex address of a wrong length": {
			json:    `"6865782d61646472"`,
			wantErr: errors.ErrInput,
		},
		"invalid condition format": {
			json:    `"cond:foo/636f6e646974696f6e64617461"`,
			wantErr: errors.ErrInput,
		},
		"invalid condition data": {
			json:    `"cond:foo/bar/zzzzz"`,
			wantErr: errors.ErrInput,
		},
		"unknown format": {
			json:    `"foobar:xxx"`,
			wantErr: errors.ErrInvalidType,
		},
		"zero address": {
			json:     `""`,
			wantAddr: nil,
		},
		"zero hex address": {
			json:     `"hex:"`,
			wantAddr: nil,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var a bountyd.Address
			err := json.Unmarshal([]byte(tc.json), &a)
			if !tc.wantErr.Is(err) {
				t.Fatalf("got error: %+v", err)
			}
			if err == nil && !reflect.DeepEqual(a, tc.wantAddr) {
				t.Fatalf("got address: %q", a)
			}
		})
	}
}

func TestAddressMarshalJSON(t *testing.T) {
	addr := bountyd.Address([]byte(strings.Repeat("\xab", bountyd.AddressLength)))
	raw, err := json.Marshal(addr)
	require.NoError(t, err)
	assert.Equal(t, `"`+strings.Repeat("AB", bountyd.AddressLength)+`"`, string(raw))

	var back bountyd.Address
	require.NoError(t, json.Unmarshal(raw, &back))
	assert.True(t, addr.Equals(back))
}

func TestConditionUnmarshalJSON(t *testing.T) {
	cases := map[string]struct {
		json          string
		wantErr       *errors.Error
		wantCondition bountyd.Condition
	}{
		"default decoding": {
			json:          `"foo/bar/636f6e646974696f6e64617461"`,
			wantCondition: bountyd.NewCondition("foo", "bar", []byte("conditiondata")),
		},
		"invalid condition format": {
			json:    `"foo/636f6e646974696f6e64617461"`,
			wantErr: errors.ErrInput,
		},
		"invalid condition data": {
			json:    `"foo/bar/zzzzz"`,
			wantErr: errors.ErrInput,
		},
		"zero address": {
			json:          `""`,
			wantCondition: nil,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var got bountyd.Condition
			err := json.Unmarshal([]byte(tc.json), &got)
			if !tc.wantErr.Is(err) {
				t.Fatalf("got error: %+v", err)
			}
			if err == nil && !got.Equals(tc.wantCondition) {
				t.Fatalf("expected %q but got condition: %q", tc.wantCondition, got)
			}
		})
	}
}

func TestConditionMarshalJSON(t *testing.T) {
	cases := map[string]struct {
		source   bountyd.Condition
		wantJson string
	}{
		"cond encoding": {
			source:   bountyd.NewCondition("foo", "bar", []byte("conditiondata")),
			wantJson: `"foo/bar/636F6E646974696F6E64617461"`,
		},
		"nil encoding": {
			source:   nil,
			wantJson: `""`,
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			got, err := json.Marshal(tc.source)
			require.NoError(t, err)
			assert.Equal(t, tc.wantJson, string(got))
		})
	}
}

func TestConditionValidate(t *testing.T) {
	Convey("conditions are validated by format", t, func() {
		So(bountyd.NewCondition("sigs", "ed25519", []byte{1, 2}).Validate(), ShouldBeNil)
		So(errors.ErrInput.Is(bountyd.Condition("no slashes").Validate()), ShouldBeTrue)
		So(errors.ErrInput.Is(bountyd.NewCondition("x", "ed25519", []byte{1}).Validate()), ShouldBeTrue)
	})
}
