package handler_test

import (
	"bufio"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mipspipe/handler"
	"mipspipe/instr"
	"mipspipe/mem"
	"mipspipe/regfile"
)

func TestAddWraparound(t *testing.T) {
	h := handler.Add{}
	db := instr.DecodeBuffer{Rs1Val: 0xFFFFFFFF, Rs2Val: 2}
	out := h.OnExecute(db)
	assert.Equal(t, uint32(1), out)
}

func TestSltSignedCompare(t *testing.T) {
	h := handler.Slt{}
	db := instr.DecodeBuffer{Rs1Val: 0xFFFFFFFF, Rs2Val: 1} // -1 < 1
	assert.Equal(t, uint32(1), h.OnExecute(db))

	db2 := instr.DecodeBuffer{Rs1Val: 5, Rs2Val: 1}
	assert.Equal(t, uint32(0), h.OnExecute(db2))
}

func TestSllUsesImmSlotAsShamt(t *testing.T) {
	h := handler.Sll{}
	db := instr.DecodeBuffer{Rs2Val: 1, Imm: 4}
	assert.Equal(t, uint32(16), h.OnExecute(db))
}

func TestAddiWriteBackUsesALUOutput(t *testing.T) {
	h := handler.Addi{}
	db := instr.DecodeBuffer{Rs1Val: 5, Imm: 0xFFFD} // -3
	out := h.OnExecute(db)
	assert.Equal(t, uint32(2), out)

	eb := instr.ExecuteBuffer{Output: out}
	wb, err := h.OnMemory(eb, nil)
	require.NoError(t, err)
	assert.Equal(t, uint32(2), wb, "addi write-back must forward the ALU output, not 0")
}

func TestLuiShiftsImmIntoUpperHalf(t *testing.T) {
	h := handler.Lui{}
	db := instr.DecodeBuffer{Imm: 0x1234}
	assert.Equal(t, uint32(0x12340000), h.OnExecute(db))
}

func TestOriZeroExtends(t *testing.T) {
	h := handler.Ori{}
	db := instr.DecodeBuffer{Rs1Val: 0xFFFF0000, Imm: 0x00FF}
	assert.Equal(t, uint32(0xFFFF00FF), h.OnExecute(db))
}

func TestLbLoadsByteZeroExtended(t *testing.T) {
	m := mem.NewDefault()
	addr := mem.Base + m.TextSize
	require.NoError(t, m.WriteByte(addr, 0xAB))

	h := handler.Lb{}
	db := instr.DecodeBuffer{Rs1Val: addr, Imm: 0}
	eb := instr.ExecuteBuffer{Output: h.OnExecute(db)}
	out, err := h.OnMemory(eb, m)
	require.NoError(t, err)
	assert.Equal(t, uint32(0xAB), out)
}

func TestBeqTakenAdjustsPC(t *testing.T) {
	h := handler.Beq{}
	regs := regfile.New()
	regs.Write(9, 7)
	pc := uint32(0x1008)
	db := instr.DecodeBuffer{Rs1Val: 7, Rd: 9, Imm: 0xFFF8} // offset -8
	out, err := h.OnDecode(db, regs, nil, &pc)
	require.NoError(t, err)
	assert.Equal(t, instr.Zero(), out)
	assert.Equal(t, uint32(0x1000), pc)
}

func TestBneNotTakenLeavesPC(t *testing.T) {
	h := handler.Bne{}
	regs := regfile.New()
	regs.Write(9, 7)
	pc := uint32(0x1008)
	db := instr.DecodeBuffer{Rs1Val: 7, Rd: 9} // equal -> bne not taken
	_, err := h.OnDecode(db, regs, nil, &pc)
	require.NoError(t, err)
	assert.Equal(t, uint32(0x1008), pc)
}

func TestSyscallPrintString(t *testing.T) {
	m := mem.NewDefault()
	addr := mem.Base + m.TextSize
	require.NoError(t, m.WriteString(addr, "hi"))

	regs := regfile.New()
	regs.Write(2, 4) // v0 = print_string
	regs.Write(4, addr)

	var out strings.Builder
	s := &handler.Syscall{Out: &out, In: bufio.NewReader(strings.NewReader(""))}
	pc := uint32(0)
	db, err := s.OnDecode(instr.DecodeBuffer{}, regs, m, &pc)
	require.NoError(t, err)
	assert.Equal(t, instr.Zero(), db)
	assert.Equal(t, "hi", out.String())
}

func TestSyscallExitSetsFlag(t *testing.T) {
	regs := regfile.New()
	regs.Write(2, 10)
	s := &handler.Syscall{Out: &strings.Builder{}, In: bufio.NewReader(strings.NewReader(""))}
	pc := uint32(0)
	db, err := s.OnDecode(instr.DecodeBuffer{}, regs, mem.NewDefault(), &pc)
	require.NoError(t, err)
	assert.True(t, db.Exit)
}

func TestSyscallUnknownIsFatal(t *testing.T) {
	regs := regfile.New()
	regs.Write(2, 99)
	s := &handler.Syscall{Out: &strings.Builder{}, In: bufio.NewReader(strings.NewReader(""))}
	pc := uint32(0)
	_, err := s.OnDecode(instr.DecodeBuffer{}, regs, mem.NewDefault(), &pc)
	assert.Error(t, err)
}

func TestSyscallReadStringTruncatesToMax(t *testing.T) {
	m := mem.NewDefault()
	addr := mem.Base + m.TextSize

	regs := regfile.New()
	regs.Write(2, 8)
	regs.Write(4, addr)
	regs.Write(5, 4) // max 4 bytes incl. NUL

	s := &handler.Syscall{Out: &strings.Builder{}, In: bufio.NewReader(strings.NewReader("hello\n"))}
	pc := uint32(0)
	_, err := s.OnDecode(instr.DecodeBuffer{}, regs, m, &pc)
	require.NoError(t, err)

	got, err := m.ReadString(addr)
	require.NoError(t, err)
	assert.Equal(t, "hel", got)
}
