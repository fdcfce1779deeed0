package assemble_test

import (
	"bufio"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mipspipe/assemble"
	"mipspipe/isa"
	"mipspipe/mem"
)

func TestAssembleMinimalExit(t *testing.T) {
	sc := isa.NewSyscallHandler(io.Discard, bufio.NewReader(strings.NewReader("")), 0)
	reg, err := isa.Build(sc)
	require.NoError(t, err)

	memory := mem.New(0x40, 0x40)
	src := ".text\nmain: li $v0, 10\nsyscall\n"
	require.NoError(t, assemble.Assemble(src, reg, memory))

	w0, err := memory.ReadWord(mem.Base)
	require.NoError(t, err)
	w1, err := memory.ReadWord(mem.Base + 4)
	require.NoError(t, err)
	assert.NotZero(t, w0)
	assert.NotZero(t, w1)
}

func TestAssembleDataAndLabelResolution(t *testing.T) {
	sc := isa.NewSyscallHandler(io.Discard, bufio.NewReader(strings.NewReader("")), 0)
	reg, err := isa.Build(sc)
	require.NoError(t, err)

	memory := mem.New(0x40, 0x40)
	src := ".data\nmsg: .ascii \"hi\"\n.text\nmain: li $v0, 4\n la $a0, msg\n syscall\n li $v0, 10\n syscall\n"
	require.NoError(t, assemble.Assemble(src, reg, memory))

	s, err := memory.ReadString(mem.Base + 0x40)
	require.NoError(t, err)
	assert.Equal(t, "hi", s)
}

func TestAssembleDuplicateLabelFails(t *testing.T) {
	sc := isa.NewSyscallHandler(io.Discard, bufio.NewReader(strings.NewReader("")), 0)
	reg, err := isa.Build(sc)
	require.NoError(t, err)

	memory := mem.New(0x40, 0x40)
	src := ".text\nloop: nop\nloop: nop\n"
	err = assemble.Assemble(src, reg, memory)
	require.Error(t, err)
	assert.IsType(t, &assemble.DuplicateLabelError{}, err)
}

func TestAssembleUnknownMnemonicFails(t *testing.T) {
	sc := isa.NewSyscallHandler(io.Discard, bufio.NewReader(strings.NewReader("")), 0)
	reg, err := isa.Build(sc)
	require.NoError(t, err)

	memory := mem.New(0x40, 0x40)
	err = assemble.Assemble(".text\nfrobnicate $t0\n", reg, memory)
	require.Error(t, err)
	assert.IsType(t, &assemble.UnknownMnemonicError{}, err)
}

func TestAssembleBackwardBranchLoop(t *testing.T) {
	sc := isa.NewSyscallHandler(io.Discard, bufio.NewReader(strings.NewReader("")), 0)
	reg, err := isa.Build(sc)
	require.NoError(t, err)

	memory := mem.New(0x40, 0x40)
	src := ".text\nmain: addi $t0,$0,3\nloop: subi $t0,$t0,1\n bne $t0,$0,loop\n li $v0,10\n syscall\n"
	require.NoError(t, assemble.Assemble(src, reg, memory))
}

func TestAssembleUnresolvedLabelFails(t *testing.T) {
	sc := isa.NewSyscallHandler(io.Discard, bufio.NewReader(strings.NewReader("")), 0)
	reg, err := isa.Build(sc)
	require.NoError(t, err)

	memory := mem.New(0x40, 0x40)
	err = assemble.Assemble(".text\nb nowhere\n", reg, memory)
	require.Error(t, err)
	assert.IsType(t, &assemble.UnknownLabelError{}, err)
}

func TestAssembleUnknownDirectiveFails(t *testing.T) {
	sc := isa.NewSyscallHandler(io.Discard, bufio.NewReader(strings.NewReader("")), 0)
	reg, err := isa.Build(sc)
	require.NoError(t, err)

	memory := mem.New(0x40, 0x40)
	err = assemble.Assemble(".data\n.float 1.0\n", reg, memory)
	require.Error(t, err)
	assert.IsType(t, &assemble.UnknownDirectiveError{}, err)
}
