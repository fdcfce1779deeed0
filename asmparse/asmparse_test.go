package asmparse_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mipspipe/asmparse"
	"mipspipe/instr"
)

func TestParseAdd(t *testing.T) {
	recs, err := asmparse.ParseAdd("add $t2, $t0, $t1")
	require.NoError(t, err)
	require.Len(t, recs, 1)
	r := recs[0]
	assert.Equal(t, instr.R, r.Kind)
	assert.Equal(t, 0, r.Opcode)
	assert.Equal(t, 32, r.Funct)
	assert.Equal(t, 10, r.Rd) // $t2
	assert.Equal(t, 8, r.Rs)  // $t0
	assert.Equal(t, 9, r.Rt)  // $t1
}

func TestParseAddRejectsRdZero(t *testing.T) {
	_, err := asmparse.ParseAdd("add $0, $t0, $t1")
	assert.Error(t, err)
}

func TestParseAddiBoundsCheck(t *testing.T) {
	_, err := asmparse.ParseAddi("addi $t0, $t1, 40000")
	assert.Error(t, err)

	recs, err := asmparse.ParseAddi("addi $t0, $t1, -5")
	require.NoError(t, err)
	assert.Equal(t, 0xFFFB, recs[0].Imm)
}

func TestParseBeqCarriesUnresolvedLabel(t *testing.T) {
	recs, err := asmparse.ParseBeq("beq $t0, $zero, loop")
	require.NoError(t, err)
	assert.Equal(t, "loop", recs[0].Label)
	assert.Equal(t, 0, recs[0].Imm)
}

func TestParseLbOffsetForm(t *testing.T) {
	recs, err := asmparse.ParseLb("lb $t0, 4($sp)")
	require.NoError(t, err)
	assert.Equal(t, 16, recs[0].Opcode)
	assert.Equal(t, 4, recs[0].Imm)
}

func TestParseLbBareRegisterForm(t *testing.T) {
	recs, err := asmparse.ParseLb("lb $t0, $s0")
	require.NoError(t, err)
	assert.Equal(t, 0, recs[0].Imm)
}

func TestParseLaProducesTwoLabeledRecords(t *testing.T) {
	recs, err := asmparse.ParseLa("la $a0, msg")
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, "msg", recs[0].Label)
	assert.Equal(t, "msg", recs[1].Label)
	assert.Equal(t, 15, recs[0].Opcode) // lui
	assert.Equal(t, 13, recs[1].Opcode) // ori
}

func TestParseLiExpandsToOri(t *testing.T) {
	recs, err := asmparse.ParseLi("li $v0, 10")
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, 13, recs[0].Opcode)
	assert.Equal(t, 0, recs[0].Rs)
	assert.Equal(t, 10, recs[0].Imm)
}

func TestParseBgeExpandsToTwoInstructions(t *testing.T) {
	recs, err := asmparse.ParseBge("bge $t0, $t1, done")
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, instr.R, recs[0].Kind)
	assert.Equal(t, 42, recs[0].Funct)
	assert.Equal(t, 1, recs[0].Rd) // $at
	assert.Equal(t, "done", recs[1].Label)
}

func TestParseNopExpandsToSll(t *testing.T) {
	recs, err := asmparse.ParseNop("nop")
	require.NoError(t, err)
	assert.Equal(t, 0, recs[0].Opcode)
	assert.Equal(t, 0, recs[0].Funct)
	assert.Equal(t, 0, recs[0].Rd)
}

func TestParseSubiNegatesImmediate(t *testing.T) {
	recs, err := asmparse.ParseSubi("subi $t0, $t0, 1")
	require.NoError(t, err)
	assert.Equal(t, 0xFFFF, recs[0].Imm) // -1 as 16-bit pattern
}

func TestParseNumberForms(t *testing.T) {
	cases := map[string]int64{
		"0x1F": 31, "0b101": 5, "010": 8, "0": 0, "42": 42, "-7": -7,
	}
	for in, want := range cases {
		got, err := asmparse.ParseNumber(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
}

func TestSyntaxErrorCarriesLine(t *testing.T) {
	_, err := asmparse.ParseAdd("add $t0, $t1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "add $t0, $t1")
}
