// Package ledger implements the asset ledger service: per-holder balance
// accounts with low-level credit/debit/freeze primitives and the
// capability-gated mint/burn/privileged-transfer operations on top of
// them. Every exported mutation is a single atomic transaction against
// the backing store.
package ledger

import (
	"errors"
	"fmt"
	"sync"

	"github.com/fortuna-dev/ftapt/pkg/core/dao"
	"github.com/fortuna-dev/ftapt/pkg/core/state"
	"github.com/fortuna-dev/ftapt/pkg/core/storage"
	"github.com/fortuna-dev/ftapt/pkg/util"
	lru "github.com/hashicorp/golang-lru"
	"go.uber.org/zap"
)

// accountCacheSize is the capacity of the holder account read cache.
const accountCacheSize = 1000

var (
	// ErrAssetExists is returned by CreateAsset when an asset was
	// already created at the derived handle.
	ErrAssetExists = errors.New("asset already exists")
	// ErrAssetNotFound is returned when the asset was never created.
	ErrAssetNotFound = errors.New("asset not found")
	// ErrInsufficientFunds is returned when a debit exceeds the holder's
	// current balance.
	ErrInsufficientFunds = errors.New("insufficient funds")
	// ErrAccountFrozen is returned by the holder transfer path when one
	// of the accounts involved is frozen.
	ErrAccountFrozen = errors.New("account is frozen")
	// ErrCapabilityMismatch is returned when a capability is not bound
	// to the asset it is used against.
	ErrCapabilityMismatch = errors.New("capability is not bound to this asset")
	// ErrUnitConsumed is returned on an attempt to deposit an already
	// spent detached unit.
	ErrUnitConsumed = errors.New("detached unit already consumed")
	// ErrNegativeAmount is returned when the amount given is negative.
	ErrNegativeAmount = errors.New("negative amount")
)

// AssetMetadata is the fixed descriptive metadata registered with an
// asset at creation time.
type AssetMetadata struct {
	Name       string
	Symbol     string
	Decimals   uint8
	IconURL    string
	ProjectURL string
}

// Ledger provides balance accounting for assets kept in a Store. It
// serializes conflicting mutations internally, no two operations ever
// race on the same account.
type Ledger struct {
	mut   sync.Mutex
	store storage.Store
	caps  map[util.Uint160]*Capabilities

	// accounts caches decoded holder accounts for reads, entries are
	// refreshed on every committed mutation.
	accounts *lru.Cache

	log *zap.Logger
}

// NewLedger creates a Ledger on top of the given store.
func NewLedger(backend storage.Store, log *zap.Logger) *Ledger {
	if log == nil {
		log = zap.NewNop()
	}
	cache, _ := lru.New(accountCacheSize)
	return &Ledger{
		store:    backend,
		caps:     make(map[util.Uint160]*Capabilities),
		accounts: cache,
		log:      log,
	}
}

// CreateAsset creates a new asset at the handle derived from the given
// identity seed, registers its metadata and mints the control capability
// bundle for it. The bundle is created exactly once, together with the
// asset, a second call for the same seed fails with ErrAssetExists.
func (l *Ledger) CreateAsset(identitySeed []byte, meta AssetMetadata, owner util.Uint160) (util.Uint160, *Capabilities, error) {
	l.mut.Lock()
	defer l.mut.Unlock()

	hash := util.Uint160FromSeed(identitySeed)
	d := dao.NewSimple(l.store)
	if _, err := d.GetAssetState(hash); err == nil {
		return hash, nil, ErrAssetExists
	} else if err != storage.ErrKeyNotFound {
		return hash, nil, err
	}
	a := &state.AssetState{
		Hash:       hash,
		Owner:      owner,
		Name:       meta.Name,
		Symbol:     meta.Symbol,
		Decimals:   meta.Decimals,
		IconURL:    meta.IconURL,
		ProjectURL: meta.ProjectURL,
	}
	if err := d.PutAssetState(a); err != nil {
		return hash, nil, err
	}
	d.PutCapabilitiesRecord(hash)
	if err := d.Persist(); err != nil {
		return hash, nil, err
	}
	caps := newCapabilities(hash)
	l.caps[hash] = caps
	l.log.Info("asset created",
		zap.Stringer("asset", hash),
		zap.String("symbol", meta.Symbol),
		zap.Stringer("owner", owner))
	return hash, caps, nil
}

// Capabilities returns the control bundle of the given asset. The bundle
// is kept under the asset's own storage scope, so it is reachable through
// the derived handle alone, there is no need to know who deployed it.
func (l *Ledger) Capabilities(asset util.Uint160) (*Capabilities, error) {
	l.mut.Lock()
	defer l.mut.Unlock()
	if caps, ok := l.caps[asset]; ok {
		return caps, nil
	}
	d := dao.NewSimple(l.store)
	if !d.HasCapabilitiesRecord(asset) {
		return nil, ErrAssetNotFound
	}
	caps := newCapabilities(asset)
	l.caps[asset] = caps
	return caps, nil
}

// AssetState returns the current state of the given asset.
func (l *Ledger) AssetState(asset util.Uint160) (*state.AssetState, error) {
	d := dao.NewSimple(l.store)
	a, err := d.GetAssetState(asset)
	if err == storage.ErrKeyNotFound {
		return nil, ErrAssetNotFound
	}
	return a, err
}

// SetOwner records a new administrative owner for the asset. The change
// is visible to the very next authorization check.
func (l *Ledger) SetOwner(asset, newOwner util.Uint160) error {
	l.mut.Lock()
	defer l.mut.Unlock()

	d := dao.NewSimple(l.store)
	a, err := d.GetAssetState(asset)
	if err != nil {
		if err == storage.ErrKeyNotFound {
			return ErrAssetNotFound
		}
		return err
	}
	a.Owner = newOwner
	if err := d.PutAssetState(a); err != nil {
		return err
	}
	if err := d.Persist(); err != nil {
		return err
	}
	l.log.Info("asset owner changed",
		zap.Stringer("asset", asset),
		zap.Stringer("owner", newOwner))
	return nil
}

// AccountFor ensures a holder account exists for the given asset and
// returns its current state. Creating an already existing account is a
// no-op besides returning it.
func (l *Ledger) AccountFor(holder, asset util.Uint160) (*state.AccountState, error) {
	l.mut.Lock()
	defer l.mut.Unlock()

	d := dao.NewSimple(l.store)
	if err := l.checkAsset(d, asset); err != nil {
		return nil, err
	}
	acc, err := d.GetAccountStateOrNew(asset, holder)
	if err != nil {
		return nil, err
	}
	if err := d.PutAccountState(asset, acc); err != nil {
		return nil, err
	}
	if err := d.Persist(); err != nil {
		return nil, err
	}
	l.cacheAccount(asset, acc)
	res := *acc
	return &res, nil
}

// BalanceOf returns the balance of the given holder. Missing accounts
// have a zero balance.
func (l *Ledger) BalanceOf(holder, asset util.Uint160) (util.Fixed8, error) {
	l.mut.Lock()
	defer l.mut.Unlock()
	acc, err := l.getCachedAccount(asset, holder)
	if err == storage.ErrKeyNotFound {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return acc.Balance, nil
}

// IsFrozen returns the frozen flag of the given holder account. Missing
// accounts are not frozen.
func (l *Ledger) IsFrozen(holder, asset util.Uint160) (bool, error) {
	l.mut.Lock()
	defer l.mut.Unlock()
	acc, err := l.getCachedAccount(asset, holder)
	if err == storage.ErrKeyNotFound {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return acc.Frozen, nil
}

// TotalSupply returns the circulating supply of the asset, detached
// units included.
func (l *Ledger) TotalSupply(asset util.Uint160) (util.Fixed8, error) {
	a, err := l.AssetState(asset)
	if err != nil {
		return 0, err
	}
	return a.Supply, nil
}

// Credit adds the given amount to the holder's account, creating it if
// absent. Supply is not affected.
func (l *Ledger) Credit(holder, asset util.Uint160, amount util.Fixed8) error {
	if amount < 0 {
		return ErrNegativeAmount
	}
	l.mut.Lock()
	defer l.mut.Unlock()
	return l.update(asset, func(d *dao.Simple) error {
		return l.addBalance(d, asset, holder, amount)
	})
}

// Debit removes the given amount from the holder's account. Fails with
// ErrInsufficientFunds when the balance is too low. Supply is not
// affected.
func (l *Ledger) Debit(holder, asset util.Uint160, amount util.Fixed8) error {
	if amount < 0 {
		return ErrNegativeAmount
	}
	l.mut.Lock()
	defer l.mut.Unlock()
	return l.update(asset, func(d *dao.Simple) error {
		return l.addBalance(d, asset, holder, -amount)
	})
}

// SetFrozen sets or clears the frozen flag on the holder's account,
// creating the account if absent. Frozen accounts reject holder-initiated
// transfers, the privileged paths don't look at the flag at all.
func (l *Ledger) SetFrozen(holder, asset util.Uint160, frozen bool) error {
	l.mut.Lock()
	defer l.mut.Unlock()
	err := l.update(asset, func(d *dao.Simple) error {
		acc, err := d.GetAccountStateOrNew(asset, holder)
		if err != nil {
			return err
		}
		acc.Frozen = frozen
		return d.PutAccountState(asset, acc)
	})
	if err == nil {
		l.log.Info("frozen flag updated",
			zap.Stringer("asset", asset),
			zap.Stringer("holder", holder),
			zap.Bool("frozen", frozen))
	}
	return err
}

// PrivilegedTransfer moves the amount between two holder accounts
// ignoring frozen flags on either of them. This is the administrative
// override path, it requires the transfer capability of the asset.
func (l *Ledger) PrivilegedTransfer(c *TransferCapability, from, to util.Uint160, amount util.Fixed8) error {
	if c == nil {
		return ErrCapabilityMismatch
	}
	l.mut.Lock()
	defer l.mut.Unlock()
	asset := c.asset
	return l.update(asset, func(d *dao.Simple) error {
		return l.transfer(d, asset, from, to, amount)
	})
}

// HolderTransfer moves the amount between two holder accounts on behalf
// of the sending holder. Unlike the privileged path it fails with
// ErrAccountFrozen when either account is frozen.
func (l *Ledger) HolderTransfer(from, to, asset util.Uint160, amount util.Fixed8) error {
	l.mut.Lock()
	defer l.mut.Unlock()
	return l.update(asset, func(d *dao.Simple) error {
		accFrom, err := d.GetAccountStateOrNew(asset, from)
		if err != nil {
			return err
		}
		accTo, err := d.GetAccountStateOrNew(asset, to)
		if err != nil {
			return err
		}
		if accFrom.Frozen || accTo.Frozen {
			return ErrAccountFrozen
		}
		return l.transfer(d, asset, from, to, amount)
	})
}

// Mint creates the given amount of new supply and returns it as a
// detached unit. It requires the mint capability of the asset.
func (l *Ledger) Mint(c *MintCapability, amount util.Fixed8) (*DetachedUnit, error) {
	if c == nil {
		return nil, ErrCapabilityMismatch
	}
	l.mut.Lock()
	defer l.mut.Unlock()
	asset := c.asset
	err := l.update(asset, func(d *dao.Simple) error {
		a, err := d.GetAssetState(asset)
		if err != nil {
			return err
		}
		if amount < 0 {
			return ErrNegativeAmount
		}
		a.Supply += amount
		return d.PutAssetState(a)
	})
	if err != nil {
		return nil, err
	}
	return newDetachedUnit(asset, amount), nil
}

// Burn removes the given amount from the holder's account and decreases
// the circulating supply by it. It requires the burn capability of the
// asset.
func (l *Ledger) Burn(c *BurnCapability, holder util.Uint160, amount util.Fixed8) error {
	if c == nil {
		return ErrCapabilityMismatch
	}
	if amount < 0 {
		return ErrNegativeAmount
	}
	l.mut.Lock()
	defer l.mut.Unlock()
	asset := c.asset
	return l.update(asset, func(d *dao.Simple) error {
		if err := l.addBalance(d, asset, holder, -amount); err != nil {
			return err
		}
		a, err := d.GetAssetState(asset)
		if err != nil {
			return err
		}
		a.Supply -= amount
		return d.PutAssetState(a)
	})
}

// Withdraw removes the amount from the holder's account and returns it as
// a detached unit for programmatic composition. Supply is not affected,
// the unit still counts towards it until burned.
func (l *Ledger) Withdraw(holder, asset util.Uint160, amount util.Fixed8) (*DetachedUnit, error) {
	if amount < 0 {
		return nil, ErrNegativeAmount
	}
	l.mut.Lock()
	defer l.mut.Unlock()
	err := l.update(asset, func(d *dao.Simple) error {
		return l.addBalance(d, asset, holder, -amount)
	})
	if err != nil {
		return nil, err
	}
	return newDetachedUnit(asset, amount), nil
}

// Deposit credits the unit's amount to the holder's account, creating it
// if absent, and consumes the unit. A consumed unit can't be deposited
// again.
func (l *Ledger) Deposit(holder util.Uint160, unit *DetachedUnit) error {
	l.mut.Lock()
	defer l.mut.Unlock()
	if unit.spent {
		return ErrUnitConsumed
	}
	err := l.update(unit.asset, func(d *dao.Simple) error {
		return l.addBalance(d, unit.asset, holder, unit.amount)
	})
	if err == nil {
		unit.spent = true
	}
	return err
}

// Holders returns all existing holder accounts of the asset in ascending
// address order.
func (l *Ledger) Holders(asset util.Uint160) ([]*state.AccountState, error) {
	l.mut.Lock()
	defer l.mut.Unlock()
	var accs []*state.AccountState
	d := dao.NewSimple(l.store)
	err := d.SeekAccounts(asset, func(acc *state.AccountState) bool {
		accs = append(accs, acc)
		return true
	})
	if err != nil {
		return nil, err
	}
	return accs, nil
}

// Close releases the resources of the backing store.
func (l *Ledger) Close() error {
	return l.store.Close()
}

// update runs f over a fresh DAO and commits the produced change set
// atomically. It's supposed to be called with the ledger mutex held.
func (l *Ledger) update(asset util.Uint160, f func(d *dao.Simple) error) error {
	d := dao.NewSimple(l.store)
	if err := l.checkAsset(d, asset); err != nil {
		return err
	}
	if err := f(d); err != nil {
		return err
	}
	if err := d.Persist(); err != nil {
		return err
	}
	// Cached reads must not outlive the states they were decoded from.
	l.accounts.Purge()
	return nil
}

func (l *Ledger) checkAsset(d *dao.Simple, asset util.Uint160) error {
	_, err := d.GetAssetState(asset)
	if err == storage.ErrKeyNotFound {
		return ErrAssetNotFound
	}
	return err
}

// transfer debits from and credits to in one change set, so both effects
// always commit together. Frozen flags are not checked here.
func (l *Ledger) transfer(d *dao.Simple, asset, from, to util.Uint160, amount util.Fixed8) error {
	if amount < 0 {
		return ErrNegativeAmount
	}
	if from.Equals(to) || amount == 0 {
		// Ensure both accounts exist, nothing moves.
		for _, h := range []util.Uint160{from, to} {
			acc, err := d.GetAccountStateOrNew(asset, h)
			if err != nil {
				return err
			}
			if err := d.PutAccountState(asset, acc); err != nil {
				return err
			}
		}
		return nil
	}
	if err := l.addBalance(d, asset, from, -amount); err != nil {
		return err
	}
	return l.addBalance(d, asset, to, amount)
}

func (l *Ledger) addBalance(d *dao.Simple, asset, holder util.Uint160, amount util.Fixed8) error {
	acc, err := d.GetAccountStateOrNew(asset, holder)
	if err != nil {
		return err
	}
	if amount < 0 && acc.Balance < -amount {
		return fmt.Errorf("%w: balance %s, debit %s", ErrInsufficientFunds, acc.Balance, -amount)
	}
	acc.Balance += amount
	return d.PutAccountState(asset, acc)
}

func accountCacheKey(asset, holder util.Uint160) string {
	return string(asset.BytesBE()) + string(holder.BytesBE())
}

func (l *Ledger) cacheAccount(asset util.Uint160, acc *state.AccountState) {
	cp := *acc
	l.accounts.Add(accountCacheKey(asset, cp.Address), &cp)
}

func (l *Ledger) getCachedAccount(asset, holder util.Uint160) (*state.AccountState, error) {
	if acc, ok := l.accounts.Get(accountCacheKey(asset, holder)); ok {
		return acc.(*state.AccountState), nil
	}
	d := dao.NewSimple(l.store)
	acc, err := d.GetAccountState(asset, holder)
	if err != nil {
		return nil, err
	}
	l.cacheAccount(asset, acc)
	return acc, nil
}

