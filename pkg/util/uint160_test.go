package util_test

import (
	"encoding/hex"
	"testing"

	"github.com/fortuna-dev/ftapt/internal/testserdes"
	"github.com/fortuna-dev/ftapt/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUint160UnmarshalJSON(t *testing.T) {
	str := "0263c1de100292813b5e075e585acc1bae963b2d"
	expected, err := util.Uint160DecodeStringBE(str)
	assert.NoError(t, err)

	// UnmarshalJSON decodes hex-strings
	var u1, u2 util.Uint160

	assert.NoError(t, u1.UnmarshalJSON([]byte(`"`+str+`"`)))
	assert.True(t, expected.Equals(u1))

	testserdes.MarshalUnmarshalJSON(t, &expected, &u2)

	assert.Error(t, u2.UnmarshalJSON([]byte(`123`)))
}

func TestUint160DecodeString(t *testing.T) {
	hexStr := "2d3b96ae1bcc5a585e075e3b81920210dec16302"
	val, err := util.Uint160DecodeStringBE(hexStr)
	assert.NoError(t, err)
	assert.Equal(t, hexStr, val.String())

	_, err = util.Uint160DecodeStringBE(hexStr[1:])
	assert.Error(t, err)

	hexStr = "zz3b96ae1bcc5a585e075e3b81920210dec16302"
	_, err = util.Uint160DecodeStringBE(hexStr)
	assert.Error(t, err)
}

func TestUint160DecodeBytes(t *testing.T) {
	hexStr := "2d3b96ae1bcc5a585e075e3b81920210dec16302"
	b, err := hex.DecodeString(hexStr)
	require.NoError(t, err)

	val, err := util.Uint160DecodeBytesBE(b)
	assert.NoError(t, err)
	assert.Equal(t, hexStr, val.String())

	_, err = util.Uint160DecodeBytesBE(b[1:])
	assert.Error(t, err)
}

func TestUint160FromSeed(t *testing.T) {
	seed := []byte("some identity seed")
	u1 := util.Uint160FromSeed(seed)
	u2 := util.Uint160FromSeed(seed)
	assert.True(t, u1.Equals(u2))

	u3 := util.Uint160FromSeed([]byte("another seed"))
	assert.False(t, u1.Equals(u3))
}

func TestUint160Sort(t *testing.T) {
	var u1, u2 util.Uint160
	u2[0] = 1
	assert.True(t, u1.Less(u2))
	assert.False(t, u2.Less(u1))
	assert.False(t, u1.Less(u1))
}
