package regfile_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"mipspipe/regfile"
)

func TestReadWriteRoundTrip(t *testing.T) {
	r := regfile.New()
	ok := r.Write(5, 0xdeadbeef)
	assert.True(t, ok)
	assert.Equal(t, uint32(0xdeadbeef), r.Read(5))
}

func TestRegisterZeroIsHardWired(t *testing.T) {
	r := regfile.New()
	ok := r.Write(0, 0x12345)
	assert.False(t, ok)
	assert.Equal(t, uint32(0), r.Read(0))
}

func TestWriteOutOfRangeRejected(t *testing.T) {
	r := regfile.New()
	assert.False(t, r.Write(32, 1))
	assert.False(t, r.Write(-1, 1))
}

func TestNameToNumberAliases(t *testing.T) {
	cases := map[string]int{
		"$zero": 0, "$at": 1, "$v0": 2, "$v1": 3,
		"$a0": 4, "$a3": 7, "$t0": 8, "$t9": 25,
		"$s0": 16, "$s7": 23, "$k0": 26, "$k1": 27,
		"$gp": 28, "$sp": 29, "$fp": 30, "$ra": 31,
		"$T0": 8, "  $t0  ": 8,
	}
	for in, want := range cases {
		got, ok := regfile.NameToNumber(in)
		assert.True(t, ok, in)
		assert.Equal(t, want, got, in)
	}
}

func TestNameToNumberNumericForm(t *testing.T) {
	got, ok := regfile.NameToNumber("$17")
	assert.True(t, ok)
	assert.Equal(t, 17, got)

	_, ok = regfile.NameToNumber("$32")
	assert.False(t, ok)
}

func TestNameToNumberRejectsMalformed(t *testing.T) {
	for _, in := range []string{"t0", "$", "$notareg", "$-1"} {
		_, ok := regfile.NameToNumber(in)
		assert.False(t, ok, in)
	}
}
