// Package isa wires the mnemonic/handler implementations in asmparse and
// handler into a single registry.Registry, giving the assembler and the
// pipeline engine a shared, fully-populated instruction set (spec §4.4's
// registration contract applied to every mnemonic in §4.5/§4.6).
package isa

import (
	"bufio"
	"fmt"
	"io"

	"mipspipe/asmparse"
	"mipspipe/handler"
	"mipspipe/registry"
)

// Build registers every real and pseudo mnemonic enumerated in spec.md
// §4.5 and returns the populated registry. sc is the syscall handler
// shared with the caller so its I/O destinations can be configured
// (stdout/stdin in production, buffers in tests).
func Build(sc *handler.Syscall) (*registry.Registry, error) {
	r := registry.New()

	type realR struct {
		mnemonic     string
		opcode, fn   int
		parse        registry.ParseFunc
		handle       registry.Handler
	}
	reals := []realR{
		{"add", 0, 32, asmparse.ParseAdd, handler.Add{}},
		{"sll", 0, 0, asmparse.ParseSll, handler.Sll{}},
		{"slt", 0, 42, asmparse.ParseSlt, handler.Slt{}},
		{"syscall", 0, 12, asmparse.ParseSyscall, sc},
	}
	for _, e := range reals {
		if err := r.RegisterR(e.mnemonic, e.opcode, e.fn, e.parse, e.handle); err != nil {
			return nil, fmt.Errorf("isa: registering %s: %w", e.mnemonic, err)
		}
	}

	type realI struct {
		mnemonic string
		opcode   int
		parse    registry.ParseFunc
		handle   registry.Handler
	}
	immediates := []realI{
		{"addi", 8, asmparse.ParseAddi, handler.Addi{}},
		{"beq", 4, asmparse.ParseBeq, handler.Beq{}},
		{"bne", 5, asmparse.ParseBne, handler.Bne{}},
		{"lb", 16, asmparse.ParseLb, handler.Lb{}},
		{"lui", 15, asmparse.ParseLui, handler.Lui{}},
		{"ori", 13, asmparse.ParseOri, handler.Ori{}},
	}
	for _, e := range immediates {
		if err := r.RegisterI(e.mnemonic, e.opcode, e.parse, e.handle); err != nil {
			return nil, fmt.Errorf("isa: registering %s: %w", e.mnemonic, err)
		}
	}

	type pseudo struct {
		mnemonic string
		parse    registry.ParseFunc
	}
	pseudos := []pseudo{
		{"b", asmparse.ParseB},
		{"beqz", asmparse.ParseBeqz},
		{"bge", asmparse.ParseBge},
		{"la", asmparse.ParseLa},
		{"li", asmparse.ParseLi},
		{"nop", asmparse.ParseNop},
		{"subi", asmparse.ParseSubi},
	}
	for _, e := range pseudos {
		if err := r.RegisterPseudo(e.mnemonic, e.parse); err != nil {
			return nil, fmt.Errorf("isa: registering %s: %w", e.mnemonic, err)
		}
	}

	return r, nil
}

// NewSyscallHandler builds the default Syscall handler wired to the given
// console I/O, capped at maxReadCap bytes for read_string (0 disables the
// cap).
func NewSyscallHandler(out io.Writer, in *bufio.Reader, maxReadCap int) *handler.Syscall {
	return &handler.Syscall{Out: out, In: in, MaxReadCap: maxReadCap}
}
