package state_test

import (
	"testing"

	"github.com/fortuna-dev/ftapt/internal/testserdes"
	"github.com/fortuna-dev/ftapt/pkg/core/state"
	"github.com/fortuna-dev/ftapt/pkg/util"
	"github.com/stretchr/testify/assert"
)

func TestAssetStateEncodeDecode(t *testing.T) {
	expected := &state.AssetState{
		Hash:       util.Uint160FromSeed([]byte("asset")),
		Owner:      util.Uint160FromSeed([]byte("owner")),
		Name:       "Fortuna",
		Symbol:     "FTAPT",
		Decimals:   8,
		IconURL:    "https://ftapt.dev/icon.svg",
		ProjectURL: "https://ftapt.dev",
		Supply:     util.Fixed8FromInt64(1000),
	}
	testserdes.EncodeDecodeBinary(t, expected, new(state.AssetState))
}

func TestAccountStateEncodeDecode(t *testing.T) {
	expected := &state.AccountState{
		Address: util.Uint160FromSeed([]byte("alice")),
		Balance: util.Fixed8FromInt64(42),
		Frozen:  true,
	}
	testserdes.EncodeDecodeBinary(t, expected, new(state.AccountState))
}

func TestNewAccountState(t *testing.T) {
	addr := util.Uint160FromSeed([]byte("alice"))
	acc := state.NewAccountState(addr)
	assert.Equal(t, addr, acc.Address)
	assert.Equal(t, util.Fixed8(0), acc.Balance)
	assert.False(t, acc.Frozen)
}
