package ledger

import "github.com/fortuna-dev/ftapt/pkg/util"

// Control capabilities authorize the three classes of privileged mutation
// on an asset. They carry the handle of the asset they're bound to in an
// unexported field, so a bundle can only come out of the ledger that
// created the asset, a zero-value capability matches no asset. There is no
// public constructor and no way to rebind one.
type (
	// MintCapability authorizes supply creation.
	MintCapability struct {
		asset util.Uint160
	}

	// TransferCapability authorizes the privileged transfer path that
	// ignores frozen flags.
	TransferCapability struct {
		asset util.Uint160
	}

	// BurnCapability authorizes supply destruction.
	BurnCapability struct {
		asset util.Uint160
	}

	// Capabilities is the control bundle for one asset. Exactly one
	// bundle exists per asset, it is created together with the asset
	// and only ever handed out as a borrowed reference.
	Capabilities struct {
		Mint     *MintCapability
		Transfer *TransferCapability
		Burn     *BurnCapability
	}
)

func newCapabilities(asset util.Uint160) *Capabilities {
	return &Capabilities{
		Mint:     &MintCapability{asset: asset},
		Transfer: &TransferCapability{asset: asset},
		Burn:     &BurnCapability{asset: asset},
	}
}

// Asset returns the handle of the asset the bundle is bound to.
func (c *Capabilities) Asset() util.Uint160 {
	return c.Mint.asset
}
