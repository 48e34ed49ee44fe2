package ledger_test

import (
	"testing"

	"github.com/fortuna-dev/ftapt/pkg/core/ledger"
	"github.com/fortuna-dev/ftapt/pkg/core/storage"
	"github.com/fortuna-dev/ftapt/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	owner = util.Uint160FromSeed([]byte("owner"))
	alice = util.Uint160FromSeed([]byte("alice"))
	bob   = util.Uint160FromSeed([]byte("bob"))
)

var testMeta = ledger.AssetMetadata{
	Name:     "Fortuna",
	Symbol:   "FTAPT",
	Decimals: 8,
}

func newTestLedger(t *testing.T) (*ledger.Ledger, util.Uint160, *ledger.Capabilities) {
	l := ledger.NewLedger(storage.NewMemoryStore(), nil)
	asset, caps, err := l.CreateAsset([]byte("test asset"), testMeta, owner)
	require.NoError(t, err)
	require.NotNil(t, caps)
	return l, asset, caps
}

func TestCreateAsset(t *testing.T) {
	l, asset, caps := newTestLedger(t)
	assert.Equal(t, asset, caps.Asset())

	a, err := l.AssetState(asset)
	require.NoError(t, err)
	assert.Equal(t, owner, a.Owner)
	assert.Equal(t, "FTAPT", a.Symbol)
	assert.Equal(t, util.Fixed8(0), a.Supply)

	// The handle is fixed, creation is inherently singular.
	_, _, err = l.CreateAsset([]byte("test asset"), testMeta, owner)
	assert.ErrorIs(t, err, ledger.ErrAssetExists)
}

func TestCapabilitiesRetrieval(t *testing.T) {
	l, asset, caps := newTestLedger(t)

	// Same bundle comes back within one process.
	caps2, err := l.Capabilities(asset)
	require.NoError(t, err)
	assert.Same(t, caps, caps2)

	_, err = l.Capabilities(util.Uint160FromSeed([]byte("no such asset")))
	assert.ErrorIs(t, err, ledger.ErrAssetNotFound)
}

func TestMintAndDeposit(t *testing.T) {
	l, asset, caps := newTestLedger(t)

	unit, err := l.Mint(caps.Mint, util.Fixed8FromInt64(1000))
	require.NoError(t, err)
	assert.Equal(t, util.Fixed8FromInt64(1000), unit.Amount())
	assert.Equal(t, asset, unit.Asset())

	supply, err := l.TotalSupply(asset)
	require.NoError(t, err)
	assert.Equal(t, util.Fixed8FromInt64(1000), supply)

	require.NoError(t, l.Deposit(alice, unit))
	b, err := l.BalanceOf(alice, asset)
	require.NoError(t, err)
	assert.Equal(t, util.Fixed8FromInt64(1000), b)

	// The unit is consumed, crediting it twice is impossible.
	assert.ErrorIs(t, l.Deposit(alice, unit), ledger.ErrUnitConsumed)

	// A zero-value capability is bound to no asset.
	_, err = l.Mint(&ledger.MintCapability{}, util.Fixed8FromInt64(1))
	assert.Error(t, err)
}

func TestBurn(t *testing.T) {
	l, asset, caps := newTestLedger(t)
	mintTo(t, l, caps, alice, 1000)

	require.NoError(t, l.Burn(caps.Burn, alice, util.Fixed8FromInt64(400)))

	b, _ := l.BalanceOf(alice, asset)
	assert.Equal(t, util.Fixed8FromInt64(600), b)
	supply, _ := l.TotalSupply(asset)
	assert.Equal(t, util.Fixed8FromInt64(600), supply)

	assert.ErrorIs(t, l.Burn(caps.Burn, alice, util.Fixed8FromInt64(601)), ledger.ErrInsufficientFunds)
}

func TestDebitCredit(t *testing.T) {
	l, asset, caps := newTestLedger(t)
	mintTo(t, l, caps, alice, 10)

	require.NoError(t, l.Debit(alice, asset, util.Fixed8FromInt64(4)))
	require.NoError(t, l.Credit(bob, asset, util.Fixed8FromInt64(4)))

	b, _ := l.BalanceOf(alice, asset)
	assert.Equal(t, util.Fixed8FromInt64(6), b)
	b, _ = l.BalanceOf(bob, asset)
	assert.Equal(t, util.Fixed8FromInt64(4), b)

	assert.ErrorIs(t, l.Debit(alice, asset, util.Fixed8FromInt64(7)), ledger.ErrInsufficientFunds)
}

func TestWithdrawDeposit(t *testing.T) {
	l, asset, caps := newTestLedger(t)
	mintTo(t, l, caps, alice, 100)

	unit, err := l.Withdraw(alice, asset, util.Fixed8FromInt64(30))
	require.NoError(t, err)
	b, _ := l.BalanceOf(alice, asset)
	assert.Equal(t, util.Fixed8FromInt64(70), b)

	// Withdrawn funds still count towards supply.
	supply, _ := l.TotalSupply(asset)
	assert.Equal(t, util.Fixed8FromInt64(100), supply)

	require.NoError(t, l.Deposit(bob, unit))
	b, _ = l.BalanceOf(bob, asset)
	assert.Equal(t, util.Fixed8FromInt64(30), b)

	_, err = l.Withdraw(alice, asset, util.Fixed8FromInt64(71))
	assert.ErrorIs(t, err, ledger.ErrInsufficientFunds)
}

func TestPrivilegedTransferIgnoresFrozen(t *testing.T) {
	l, asset, caps := newTestLedger(t)
	mintTo(t, l, caps, alice, 1000)

	require.NoError(t, l.SetFrozen(alice, asset, true))
	frozen, err := l.IsFrozen(alice, asset)
	require.NoError(t, err)
	assert.True(t, frozen)

	// The holder path rejects frozen accounts...
	err = l.HolderTransfer(alice, bob, asset, util.Fixed8FromInt64(100))
	assert.ErrorIs(t, err, ledger.ErrAccountFrozen)
	b, _ := l.BalanceOf(alice, asset)
	assert.Equal(t, util.Fixed8FromInt64(1000), b)

	// ...the privileged path doesn't look at the flag.
	require.NoError(t, l.PrivilegedTransfer(caps.Transfer, alice, bob, util.Fixed8FromInt64(100)))
	b, _ = l.BalanceOf(alice, asset)
	assert.Equal(t, util.Fixed8FromInt64(900), b)
	b, _ = l.BalanceOf(bob, asset)
	assert.Equal(t, util.Fixed8FromInt64(100), b)

	// Unfreezing restores the holder path.
	require.NoError(t, l.SetFrozen(alice, asset, false))
	require.NoError(t, l.HolderTransfer(alice, bob, asset, util.Fixed8FromInt64(100)))
	b, _ = l.BalanceOf(bob, asset)
	assert.Equal(t, util.Fixed8FromInt64(200), b)
}

func TestTransferFailsAtomically(t *testing.T) {
	l, asset, caps := newTestLedger(t)
	mintTo(t, l, caps, alice, 10)

	err := l.PrivilegedTransfer(caps.Transfer, alice, bob, util.Fixed8FromInt64(11))
	assert.ErrorIs(t, err, ledger.ErrInsufficientFunds)

	// Neither account changed.
	b, _ := l.BalanceOf(alice, asset)
	assert.Equal(t, util.Fixed8FromInt64(10), b)
	b, _ = l.BalanceOf(bob, asset)
	assert.Equal(t, util.Fixed8(0), b)
}

func TestSetOwner(t *testing.T) {
	l, asset, _ := newTestLedger(t)

	require.NoError(t, l.SetOwner(asset, alice))
	a, err := l.AssetState(asset)
	require.NoError(t, err)
	assert.Equal(t, alice, a.Owner)
}

func TestAccountForIdempotent(t *testing.T) {
	l, asset, caps := newTestLedger(t)

	acc, err := l.AccountFor(alice, asset)
	require.NoError(t, err)
	assert.Equal(t, util.Fixed8(0), acc.Balance)

	mintTo(t, l, caps, alice, 5)

	// Ensuring an existing account is a no-op besides returning it.
	acc, err = l.AccountFor(alice, asset)
	require.NoError(t, err)
	assert.Equal(t, util.Fixed8FromInt64(5), acc.Balance)
}

func TestHolders(t *testing.T) {
	l, asset, caps := newTestLedger(t)
	mintTo(t, l, caps, alice, 1)
	mintTo(t, l, caps, bob, 2)

	accs, err := l.Holders(asset)
	require.NoError(t, err)
	assert.Len(t, accs, 2)
}

func TestNegativeAmounts(t *testing.T) {
	l, _, caps := newTestLedger(t)
	mintTo(t, l, caps, alice, 10)

	_, err := l.Mint(caps.Mint, util.Fixed8FromInt64(-1))
	assert.ErrorIs(t, err, ledger.ErrNegativeAmount)

	err = l.PrivilegedTransfer(caps.Transfer, alice, bob, util.Fixed8FromInt64(-1))
	assert.ErrorIs(t, err, ledger.ErrNegativeAmount)

	err = l.Burn(caps.Burn, alice, util.Fixed8FromInt64(-1))
	assert.ErrorIs(t, err, ledger.ErrNegativeAmount)

	_, err = l.Withdraw(alice, caps.Asset(), util.Fixed8FromInt64(-1))
	assert.ErrorIs(t, err, ledger.ErrNegativeAmount)

	b, err := l.BalanceOf(alice, caps.Asset())
	require.NoError(t, err)
	assert.Equal(t, util.Fixed8FromInt64(10), b)
}

func mintTo(t *testing.T, l *ledger.Ledger, caps *ledger.Capabilities, to util.Uint160, amount int64) {
	unit, err := l.Mint(caps.Mint, util.Fixed8FromInt64(amount))
	require.NoError(t, err)
	require.NoError(t, l.Deposit(to, unit))
}
