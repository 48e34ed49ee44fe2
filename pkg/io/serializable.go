package io

// Serializable defines the binary encoding/decoding interface. It is
// implemented by every state object kept in the store.
type Serializable interface {
	DecodeBinary(*BinReader)
	EncodeBinary(*BinWriter)
}
