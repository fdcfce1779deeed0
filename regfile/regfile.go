// Package regfile implements the 32-entry integer register file: register
// 0 is hard-wired to zero, and register names resolve through a fixed ABI
// alias table.
package regfile

import (
	"fmt"
	"strconv"
	"strings"
)

// NumRegisters is the number of general-purpose integer registers.
const NumRegisters = 32

// aliases maps ABI register names (without the leading '$') to their
// numeric index.
var aliases = map[string]int{
	"zero": 0,
	"at":   1,
	"v0":   2, "v1": 3,
	"a0": 4, "a1": 5, "a2": 6, "a3": 7,
	"t0": 8, "t1": 9, "t2": 10, "t3": 11, "t4": 12, "t5": 13, "t6": 14, "t7": 15,
	"s0": 16, "s1": 17, "s2": 18, "s3": 19, "s4": 20, "s5": 21, "s6": 22, "s7": 23,
	"t8": 24, "t9": 25,
	"k0": 26, "k1": 27,
	"gp": 28,
	"sp": 29,
	"fp": 30,
	"ra": 31,
}

// Reader is satisfied by anything that can answer a register read the way
// the architectural file does (register 0 and out-of-range reads are
// zero). The pipeline's decode stage passes a forwarding-aware Reader to
// handlers instead of the raw file, so a handler's own register reads
// (e.g. a branch's second operand, or a syscall dispatching on $v0) see
// values not yet committed by Write-Back (spec §4.8 step 3's forwarding
// rule, extended one stage earlier; see DESIGN.md).
type Reader interface {
	Read(n int) uint32
}

// RegisterFile holds the 32 integer registers. The zero value is a valid,
// zeroed register file.
type RegisterFile struct {
	regs [NumRegisters]uint32
}

// New creates a zeroed register file.
func New() *RegisterFile {
	return &RegisterFile{}
}

// Read returns the value of register n. Register 0 always reads as zero;
// out-of-range indices also read as zero (the pipeline never constructs
// one, but Read is kept total for convenience).
func (r *RegisterFile) Read(n int) uint32 {
	if n <= 0 || n >= NumRegisters {
		return 0
	}
	return r.regs[n]
}

// Write stores v into register n. Writing register 0, or an index outside
// 0..31, is rejected and leaves the register file unchanged; every other
// write succeeds.
func (r *RegisterFile) Write(n int, v uint32) bool {
	if n <= 0 || n >= NumRegisters {
		return false
	}
	r.regs[n] = v
	return true
}

// NameToNumber resolves a register token of the form "$zero", "$t0" or
// "$17" to its numeric index. The input is trimmed and lower-cased before
// matching; anything without a leading '$', or that matches neither a
// numeric suffix in 0..31 nor a known alias, returns ok=false.
func NameToNumber(s string) (n int, ok bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if !strings.HasPrefix(s, "$") {
		return 0, false
	}
	s = s[1:]
	if s == "" {
		return 0, false
	}
	if num, err := strconv.Atoi(s); err == nil {
		if num < 0 || num >= NumRegisters {
			return 0, false
		}
		return num, true
	}
	if idx, found := aliases[s]; found {
		return idx, true
	}
	return 0, false
}

// MustNameToNumber is a test/tooling helper that panics on an unresolved
// register name.
func MustNameToNumber(s string) int {
	n, ok := NameToNumber(s)
	if !ok {
		panic(fmt.Sprintf("regfile: unknown register %q", s))
	}
	return n
}
