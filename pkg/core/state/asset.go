// Package state holds the objects kept in the ledger store.
package state

import (
	"github.com/fortuna-dev/ftapt/pkg/io"
	"github.com/fortuna-dev/ftapt/pkg/util"
)

// AssetState represents the managed asset: its fixed metadata, the current
// administrative owner and the circulating supply.
type AssetState struct {
	Version    uint8
	Hash       util.Uint160
	Owner      util.Uint160
	Name       string
	Symbol     string
	Decimals   uint8
	IconURL    string
	ProjectURL string
	Supply     util.Fixed8
}

// DecodeBinary implements the io.Serializable interface.
func (a *AssetState) DecodeBinary(br *io.BinReader) {
	a.Version = br.ReadB()
	br.ReadBytes(a.Hash[:])
	br.ReadBytes(a.Owner[:])
	a.Name = br.ReadString()
	a.Symbol = br.ReadString()
	a.Decimals = br.ReadB()
	a.IconURL = br.ReadString()
	a.ProjectURL = br.ReadString()
	a.Supply = util.Fixed8(br.ReadU64LE())
}

// EncodeBinary implements the io.Serializable interface.
func (a *AssetState) EncodeBinary(bw *io.BinWriter) {
	bw.WriteB(a.Version)
	bw.WriteBytes(a.Hash[:])
	bw.WriteBytes(a.Owner[:])
	bw.WriteString(a.Name)
	bw.WriteString(a.Symbol)
	bw.WriteB(a.Decimals)
	bw.WriteString(a.IconURL)
	bw.WriteString(a.ProjectURL)
	bw.WriteU64LE(uint64(a.Supply))
}
