package token

import (
	"github.com/fortuna-dev/ftapt/pkg/core/ledger"
	"github.com/fortuna-dev/ftapt/pkg/core/state"
	"github.com/fortuna-dev/ftapt/pkg/util"
	"go.uber.org/zap"
)

// Mint creates amount of new supply and credits it to the recipient's
// account, creating the account if absent.
func (s *Service) Mint(admin, to util.Uint160, amount util.Fixed8) error {
	caps, err := s.borrowCapabilities(admin, AssetHandle())
	if err != nil {
		return err
	}
	unit, err := s.ledger.Mint(caps.Mint, amount)
	if err != nil {
		return err
	}
	if err := s.ledger.Deposit(to, unit); err != nil {
		return err
	}
	operations.WithLabelValues("mint").Inc()
	s.log.Info("minted",
		zap.Stringer("to", to),
		zap.Stringer("amount", amount))
	return nil
}

// Transfer moves amount between two holder accounts through the
// privileged path, frozen flags on either account are ignored. Holders
// moving their own funds go through the ledger directly and don't get
// this override.
func (s *Service) Transfer(admin, from, to util.Uint160, amount util.Fixed8) error {
	caps, err := s.borrowCapabilities(admin, AssetHandle())
	if err != nil {
		return err
	}
	if err := s.ledger.PrivilegedTransfer(caps.Transfer, from, to, amount); err != nil {
		return err
	}
	operations.WithLabelValues("transfer").Inc()
	s.log.Info("transferred",
		zap.Stringer("from", from),
		zap.Stringer("to", to),
		zap.Stringer("amount", amount))
	return nil
}

// Burn removes amount from the holder's account and decreases the
// circulating supply by it.
func (s *Service) Burn(admin, from util.Uint160, amount util.Fixed8) error {
	caps, err := s.borrowCapabilities(admin, AssetHandle())
	if err != nil {
		return err
	}
	if err := s.ledger.Burn(caps.Burn, from, amount); err != nil {
		return err
	}
	operations.WithLabelValues("burn").Inc()
	s.log.Info("burned",
		zap.Stringer("from", from),
		zap.Stringer("amount", amount))
	return nil
}

// Withdraw removes amount from the holder's account and returns it as a
// detached unit for programmatic composition by other collaborators.
func (s *Service) Withdraw(admin util.Uint160, amount util.Fixed8, from util.Uint160) (*ledger.DetachedUnit, error) {
	if _, err := s.borrowCapabilities(admin, AssetHandle()); err != nil {
		return nil, err
	}
	unit, err := s.ledger.Withdraw(from, AssetHandle(), amount)
	if err != nil {
		return nil, err
	}
	operations.WithLabelValues("withdraw").Inc()
	return unit, nil
}

// Deposit credits the detached unit to the recipient's account, creating
// the account if absent, and consumes the unit.
func (s *Service) Deposit(admin, to util.Uint160, unit *ledger.DetachedUnit) error {
	if _, err := s.borrowCapabilities(admin, AssetHandle()); err != nil {
		return err
	}
	if err := s.ledger.Deposit(to, unit); err != nil {
		return err
	}
	operations.WithLabelValues("deposit").Inc()
	return nil
}

// FreezeAccount sets the frozen flag on the holder's account, creating
// the account if absent. Frozen accounts reject holder-initiated
// transfers but not the admin-privileged transfer, burn or mint.
func (s *Service) FreezeAccount(admin, holder util.Uint160) error {
	return s.setFrozen(admin, holder, true)
}

// UnfreezeAccount clears the frozen flag on the holder's account,
// restoring the transfer permissions it had before freezing.
func (s *Service) UnfreezeAccount(admin, holder util.Uint160) error {
	return s.setFrozen(admin, holder, false)
}

func (s *Service) setFrozen(admin, holder util.Uint160, frozen bool) error {
	if _, err := s.borrowCapabilities(admin, AssetHandle()); err != nil {
		return err
	}
	if err := s.ledger.SetFrozen(holder, AssetHandle(), frozen); err != nil {
		return err
	}
	operations.WithLabelValues("set_frozen").Inc()
	return nil
}

// TransferOwnership hands administrative control of the asset over to a
// new owner. The change takes effect on the next authorization check,
// nothing is cached.
func (s *Service) TransferOwnership(admin, newOwner util.Uint160) error {
	if _, err := s.borrowCapabilities(admin, AssetHandle()); err != nil {
		return err
	}
	if err := s.ledger.SetOwner(AssetHandle(), newOwner); err != nil {
		return err
	}
	operations.WithLabelValues("transfer_ownership").Inc()
	s.log.Info("ownership transferred", zap.Stringer("owner", newOwner))
	return nil
}

// Metadata returns the asset state: the handle, the fixed metadata, the
// current owner and the circulating supply. It is read-only and needs no
// authorization.
func (s *Service) Metadata() (*state.AssetState, error) {
	a, err := s.ledger.AssetState(AssetHandle())
	if err == ledger.ErrAssetNotFound {
		return nil, ErrNotInitialized
	}
	return a, err
}

// BalanceOf returns the balance of the given holder, zero for accounts
// that were never touched.
func (s *Service) BalanceOf(holder util.Uint160) (util.Fixed8, error) {
	return s.ledger.BalanceOf(holder, AssetHandle())
}

// TotalSupply returns the circulating supply of the asset.
func (s *Service) TotalSupply() (util.Fixed8, error) {
	supply, err := s.ledger.TotalSupply(AssetHandle())
	if err == ledger.ErrAssetNotFound {
		return 0, ErrNotInitialized
	}
	return supply, err
}
