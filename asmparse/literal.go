// Package asmparse implements one parser per mnemonic — real and pseudo —
// each turning one already-stripped source line into an ordered sequence
// of instr.Record values (spec §4.5).
package asmparse

import (
	"fmt"
	"strconv"
	"strings"

	"mipspipe/regfile"
)

// ParseNumber parses a numeric literal: "0x..." hex, "0b..." binary, a
// leading-zero run (more than just "0") octal, else decimal, with an
// optional leading '-'. A bare "0" is decimal zero, not octal (spec
// SUPPLEMENTED FEATURES, following the original implementation).
func ParseNumber(tok string) (int64, error) {
	neg := false
	s := strings.TrimSpace(tok)
	if strings.HasPrefix(s, "-") {
		neg = true
		s = s[1:]
	}
	if s == "" {
		return 0, fmt.Errorf("empty numeric literal")
	}
	v, err := strconv.ParseInt(s, 0, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid numeric literal %q: %w", tok, err)
	}
	if neg {
		v = -v
	}
	return v, nil
}

// ParseRegister resolves a register token (e.g. "$t0") to its number,
// returning an error that names the offending token on failure.
func ParseRegister(tok string) (int, error) {
	n, ok := regfile.NameToNumber(tok)
	if !ok {
		return 0, fmt.Errorf("invalid register %q", tok)
	}
	return n, nil
}
