package ledger

import (
	"github.com/fortuna-dev/ftapt/pkg/util"
	"github.com/google/uuid"
)

// DetachedUnit is a quantity of the asset held outside of any account,
// produced by Mint or Withdraw and consumed by Deposit. Units only come
// out of the ledger, crediting one back marks it as spent so the same
// unit can't be deposited twice.
type DetachedUnit struct {
	id     uuid.UUID
	asset  util.Uint160
	amount util.Fixed8
	spent  bool
}

func newDetachedUnit(asset util.Uint160, amount util.Fixed8) *DetachedUnit {
	return &DetachedUnit{
		id:     uuid.New(),
		asset:  asset,
		amount: amount,
	}
}

// ID returns the unique identifier of the unit.
func (u *DetachedUnit) ID() uuid.UUID {
	return u.id
}

// Asset returns the handle of the asset the unit belongs to.
func (u *DetachedUnit) Asset() util.Uint160 {
	return u.asset
}

// Amount returns the quantity the unit carries.
func (u *DetachedUnit) Amount() util.Fixed8 {
	return u.amount
}
