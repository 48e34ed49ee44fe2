package util

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

const (
	precision = 8
	decimals  = 100000000
)

// Fixed8 represents a fixed-point number with precision 10^-8. All asset
// amounts and balances are Fixed8 values.
type Fixed8 int64

var errInvalidString = errors.New("fixed8 must satisfy following regex \\d+(\\.\\d{1,8})?")

// String implements the fmt.Stringer interface.
func (f Fixed8) String() string {
	buf := new(strings.Builder)
	val := int64(f)
	if val < 0 {
		buf.WriteRune('-')
		val = -val
	}
	str := strconv.FormatInt(val/decimals, 10)
	buf.WriteString(str)
	val %= decimals
	if val > 0 {
		buf.WriteRune('.')
		str = strconv.FormatInt(val, 10)
		for i := len(str); i < precision; i++ {
			buf.WriteRune('0')
		}
		buf.WriteString(strings.TrimRight(str, "0"))
	}
	return buf.String()
}

// IntegralValue returns the whole number part of the Fixed8, shifted by 8
// decimal places.
func (f Fixed8) IntegralValue() int64 {
	return int64(f) / decimals
}

// FractionalValue returns the decimal part of the Fixed8.
func (f Fixed8) FractionalValue() int32 {
	return int32(int64(f) % decimals)
}

// Fixed8FromInt64 returns a Fixed8 representation of the int64 value.
func Fixed8FromInt64(val int64) Fixed8 {
	return Fixed8(decimals * val)
}

// Fixed8FromString parses a string of the form "123.456" into a Fixed8.
func Fixed8FromString(s string) (Fixed8, error) {
	parts := strings.SplitN(s, ".", 2)
	ip, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return 0, errInvalidString
	}
	if len(parts) == 1 {
		return Fixed8(ip * decimals), nil
	}
	fp, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil || fp < 0 {
		return 0, errInvalidString
	}
	trail := precision - len(parts[1])
	if trail < 0 {
		return 0, errInvalidString
	}
	for i := 0; i < trail; i++ {
		fp *= 10
	}
	if ip < 0 || strings.HasPrefix(parts[0], "-") {
		fp = -fp
	}
	return Fixed8(ip*decimals + fp), nil
}

// MarshalJSON implements the json.Marshaler interface.
func (f Fixed8) MarshalJSON() ([]byte, error) {
	return []byte(`"` + f.String() + `"`), nil
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (f *Fixed8) UnmarshalJSON(data []byte) error {
	if len(data) > 2 && data[0] == '"' && data[len(data)-1] == '"' {
		data = data[1 : len(data)-1]
	}
	v, err := Fixed8FromString(string(data))
	if err != nil {
		return fmt.Errorf("error parsing Fixed8: %w", err)
	}
	*f = v
	return nil
}

var _ json.Marshaler = Fixed8(0)
