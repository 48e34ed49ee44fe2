package token

import (
	"errors"

	"github.com/fortuna-dev/ftapt/pkg/core/ledger"
	"github.com/fortuna-dev/ftapt/pkg/util"
)

// borrowCapabilities is the single authorization gate. It succeeds iff
// the caller is the current owner of the asset and returns a borrowed
// reference to the control bundle, scoped to the operation that asked
// for it. Ownership is read from the ledger on every call, transferring
// the asset to a new owner takes effect on the very next check.
func (s *Service) borrowCapabilities(caller, asset util.Uint160) (*ledger.Capabilities, error) {
	a, err := s.ledger.AssetState(asset)
	if err != nil {
		if errors.Is(err, ledger.ErrAssetNotFound) {
			return nil, ErrNotInitialized
		}
		return nil, err
	}
	if !caller.Equals(a.Owner) {
		permissionDenials.Inc()
		return nil, ErrPermissionDenied
	}
	return s.ledger.Capabilities(asset)
}
