// Package token implements the capability-gated control layer for the
// FTAPT asset. It owns the asset identity derived from the fixed deployer
// and symbol constants, the control capability bundle created together
// with it and the authorization check gating every privileged operation.
package token

import (
	"errors"

	"github.com/fortuna-dev/ftapt/pkg/core/ledger"
	"github.com/fortuna-dev/ftapt/pkg/util"
	"go.uber.org/zap"
)

// Fixed parameters of the managed asset. The handle of the asset is a
// pure function of DeployerAddress and Symbol, anyone can recompute it.
const (
	Name       = "Fortuna"
	Symbol     = "FTAPT"
	Decimals   = 8
	IconURL    = "https://ftapt.dev/icon.svg"
	ProjectURL = "https://ftapt.dev"
)

// DeployerAddress is the fixed identity the asset is deployed under. Only
// this identity can run Initialize, ownership can be handed over
// afterwards with TransferOwnership.
var DeployerAddress = util.Uint160FromSeed([]byte("ftapt.dev/deployer"))

var (
	// ErrPermissionDenied is returned when the caller of a privileged
	// operation is not the current owner of the asset.
	ErrPermissionDenied = errors.New("permission denied")
	// ErrAlreadyInitialized is returned by Initialize when the asset
	// was created before.
	ErrAlreadyInitialized = errors.New("already initialized")
	// ErrNotInitialized is returned when the asset was never created.
	// The handle still resolves, there is just no state behind it yet.
	ErrNotInitialized = errors.New("not initialized")
)

// AssetHandle recomputes and returns the handle of the managed asset. It
// is pure and deterministic, callable by anyone at any time, whether the
// system is initialized or not.
func AssetHandle() util.Uint160 {
	return util.Uint160FromSeed(assetSeed())
}

func assetSeed() []byte {
	return append(DeployerAddress.BytesBE(), []byte(Symbol)...)
}

// Service is the public operation surface of the managed asset. Every
// privileged entry point takes the asserted administrative identity as
// its first argument and re-checks it against the current asset owner,
// nothing about the authorization is cached between calls.
type Service struct {
	ledger *ledger.Ledger
	log    *zap.Logger
}

// NewService creates a Service on top of the given ledger.
func NewService(l *ledger.Ledger, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		ledger: l,
		log:    log,
	}
}

// Initialize creates the asset identity bound to the fixed deployer and
// symbol, registers its metadata with the ledger and creates the control
// capability bundle under the asset's own storage scope. It can only
// succeed once, the asset handle is fixed and object creation at it is
// inherently singular.
func (s *Service) Initialize(deployer util.Uint160) error {
	if !deployer.Equals(DeployerAddress) {
		return ErrPermissionDenied
	}
	meta := ledger.AssetMetadata{
		Name:       Name,
		Symbol:     Symbol,
		Decimals:   Decimals,
		IconURL:    IconURL,
		ProjectURL: ProjectURL,
	}
	hash, _, err := s.ledger.CreateAsset(assetSeed(), meta, deployer)
	if err != nil {
		if errors.Is(err, ledger.ErrAssetExists) {
			return ErrAlreadyInitialized
		}
		return err
	}
	s.log.Info("token initialized",
		zap.Stringer("asset", hash),
		zap.String("symbol", Symbol))
	return nil
}
