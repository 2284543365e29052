package codec

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/codectable/pkg/types"
)

func TestEncode(t *testing.T) {
	tests := []struct {
		code uint64
		want string
	}{
		{0, "0x00"},
		{0x01, "0x01"},
		{0x7f, "0x7f"},
		{0x80, "0x0080"},
		{0x01a5, "0x01a5"},
		{0x3fff, "0x3fff"},
		{0x4000, "0x004000"},
		{0x1fffff, "0x1fffff"},
		{0x200000, "0x00200000"},
		{0x230006, "0x00230006"},
		{0x300000, "0x00300000"},
		{math.MaxUint64, "0x0000ffffffffffffffff"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, Encode(tt.code))
		})
	}
}

func TestLen(t *testing.T) {
	assert.Equal(t, 1, Len(0))
	assert.Equal(t, 1, Len(0x7f))
	assert.Equal(t, 2, Len(0x80))
	assert.Equal(t, 3, Len(0x1fffff))
	assert.Equal(t, 4, Len(0x200000))
	assert.Equal(t, 10, Len(math.MaxUint64))
}

func TestDecode_Valid(t *testing.T) {
	v, err := Decode("0x01a5")
	require.NoError(t, err)
	assert.Equal(t, uint64(0x01a5), v)

	v, err = Decode("0x00")
	require.NoError(t, err)
	assert.Equal(t, uint64(0), v)

	// Non-canonical widths still decode.
	v, err = Decode("0x000001")
	require.NoError(t, err)
	assert.Equal(t, uint64(1), v)
}

func TestDecode_Invalid(t *testing.T) {
	for _, s := range []string{
		"",
		"0x",
		"0x1",
		"0x123",
		"01",
		"0X01",
		"0x0G",
		"0xAB",
		" 0x01",
		"0x01 ",
		"0x" + "00112233445566778899", // 80 bits
	} {
		t.Run(s, func(t *testing.T) {
			_, err := Decode(s)
			require.Error(t, err)
			assert.True(t, errors.Is(err, types.ErrInvalidCodeFormat))

			var target *types.InvalidCodeFormatError
			require.ErrorAs(t, err, &target)
			assert.Equal(t, s, target.Code)
		})
	}
}

func TestRoundTrip(t *testing.T) {
	values := []uint64{0, 1, 0x7e, 0x7f, 0x80, 0xff, 0x100, 0x3fff, 0x4000, 0xffff,
		0x1fffff, 0x200000, 0x28ffff, 0xffffffff, 1 << 56, math.MaxUint64}
	for shift := 0; shift < 64; shift++ {
		values = append(values, 1<<shift, (1<<shift)-1)
	}

	for _, c := range values {
		got, err := Decode(Encode(c))
		require.NoError(t, err, "code 0x%x", c)
		require.Equal(t, c, got, "code 0x%x", c)
		require.True(t, Canonical(Encode(c)))
	}
}

func TestCanonical(t *testing.T) {
	assert.True(t, Canonical("0x0080"))
	assert.False(t, Canonical("0x80"))
	assert.False(t, Canonical("0x0001"))
	assert.False(t, Canonical("nope"))
}
