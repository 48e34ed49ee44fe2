package state

import (
	"github.com/fortuna-dev/ftapt/pkg/io"
	"github.com/fortuna-dev/ftapt/pkg/util"
)

// AccountState represents the state of a holder account for one asset:
// its balance and the frozen flag. Accounts are created lazily on first
// reference with a zero balance.
type AccountState struct {
	Version uint8
	Address util.Uint160
	Balance util.Fixed8
	Frozen  bool
}

// NewAccountState returns a new AccountState object for the given address.
func NewAccountState(address util.Uint160) *AccountState {
	return &AccountState{
		Version: 0,
		Address: address,
	}
}

// DecodeBinary implements the io.Serializable interface.
func (s *AccountState) DecodeBinary(br *io.BinReader) {
	s.Version = br.ReadB()
	br.ReadBytes(s.Address[:])
	s.Balance = util.Fixed8(br.ReadU64LE())
	s.Frozen = br.ReadBool()
}

// EncodeBinary implements the io.Serializable interface.
func (s *AccountState) EncodeBinary(bw *io.BinWriter) {
	bw.WriteB(s.Version)
	bw.WriteBytes(s.Address[:])
	bw.WriteU64LE(uint64(s.Balance))
	bw.WriteBool(s.Frozen)
}
