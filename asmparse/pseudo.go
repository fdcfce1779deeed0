package asmparse

import (
	"regexp"

	"mipspipe/instr"
)

const (
	regZero = 0
	regAt   = 1
)

var bRe = regexp.MustCompile(`(?i)^b\s+([a-z_][a-z0-9_]*)$`)

// ParseB expands `b label` into `beq $0, $0, label`.
func ParseB(line string) ([]instr.Record, error) {
	m := bRe.FindStringSubmatch(line)
	if m == nil {
		return nil, syntaxErr(line, "malformed b")
	}
	rec, err := instr.NewI(4, regZero, regZero, 0)
	if err != nil {
		return nil, syntaxErr(line, err.Error())
	}
	rec.Label = m[1]
	return []instr.Record{rec}, nil
}

var beqzRe = regexp.MustCompile(`(?i)^beqz\s+(\$\w+)\s*,\s*([a-z_][a-z0-9_]*)$`)

// ParseBeqz expands `beqz $rs, label` into `beq $0, $rs, label`.
func ParseBeqz(line string) ([]instr.Record, error) {
	m := beqzRe.FindStringSubmatch(line)
	if m == nil {
		return nil, syntaxErr(line, "malformed beqz")
	}
	rs, err := ParseRegister(m[1])
	if err != nil {
		return nil, syntaxErr(line, err.Error())
	}
	rec, err := instr.NewI(4, regZero, rs, 0)
	if err != nil {
		return nil, syntaxErr(line, err.Error())
	}
	rec.Label = m[2]
	return []instr.Record{rec}, nil
}

var bgeRe = regexp.MustCompile(`(?i)^bge\s+(\$\w+)\s*,\s*(\$\w+)\s*,\s*([a-z_][a-z0-9_]*)$`)

// ParseBge expands `bge $rs, $rt, label` into `slt $at, $rs, $rt` followed
// by `beq $0, $at, label`.
func ParseBge(line string) ([]instr.Record, error) {
	m := bgeRe.FindStringSubmatch(line)
	if m == nil {
		return nil, syntaxErr(line, "malformed bge")
	}
	rs, err := ParseRegister(m[1])
	if err != nil {
		return nil, syntaxErr(line, err.Error())
	}
	rt, err := ParseRegister(m[2])
	if err != nil {
		return nil, syntaxErr(line, err.Error())
	}
	slt, err := instr.NewR(0, 42, rs, rt, regAt, 0)
	if err != nil {
		return nil, syntaxErr(line, err.Error())
	}
	beq, err := instr.NewI(4, regZero, regAt, 0)
	if err != nil {
		return nil, syntaxErr(line, err.Error())
	}
	beq.Label = m[3]
	return []instr.Record{slt, beq}, nil
}

var laRe = regexp.MustCompile(`(?i)^la\s+(\$\w+)\s*,\s*([a-z_][a-z0-9_]*)$`)

// ParseLa expands `la $rt, label` into `lui $rt, upper(label)` followed by
// `ori $rt, $rt, lower(label)`. Both records carry the label; resolution
// fills in the immediate of each at assembly finalisation — per spec §9,
// the ORI's immediate is only patched when its own label is set, so both
// instructions must carry it for the second rewrite to fire.
func ParseLa(line string) ([]instr.Record, error) {
	m := laRe.FindStringSubmatch(line)
	if m == nil {
		return nil, syntaxErr(line, "malformed la")
	}
	rt, err := ParseRegister(m[1])
	if err != nil {
		return nil, syntaxErr(line, err.Error())
	}
	lui, err := instr.NewI(15, 0, rt, 0)
	if err != nil {
		return nil, syntaxErr(line, err.Error())
	}
	lui.Label = m[2]
	ori, err := instr.NewI(13, rt, rt, 0)
	if err != nil {
		return nil, syntaxErr(line, err.Error())
	}
	ori.Label = m[2]
	return []instr.Record{lui, ori}, nil
}

var liRe = regexp.MustCompile(`(?i)^li\s+(\$\w+)\s*,\s*(-?\w+)$`)

// ParseLi expands `li $rt, imm` into `ori $rt, $0, imm & 0xFFFF`.
func ParseLi(line string) ([]instr.Record, error) {
	m := liRe.FindStringSubmatch(line)
	if m == nil {
		return nil, syntaxErr(line, "malformed li")
	}
	rt, err := ParseRegister(m[1])
	if err != nil {
		return nil, syntaxErr(line, err.Error())
	}
	imm, err := ParseNumber(m[2])
	if err != nil {
		return nil, syntaxErr(line, err.Error())
	}
	rec, err := instr.NewI(13, regZero, rt, int(imm)&0xFFFF)
	if err != nil {
		return nil, syntaxErr(line, err.Error())
	}
	return []instr.Record{rec}, nil
}

var nopRe = regexp.MustCompile(`(?i)^nop$`)

// ParseNop expands the bare `nop` mnemonic into `sll $0, $0, 0`.
func ParseNop(line string) ([]instr.Record, error) {
	if !nopRe.MatchString(line) {
		return nil, syntaxErr(line, "malformed nop")
	}
	rec, err := instr.NewR(0, 0, 0, regZero, regZero, 0)
	if err != nil {
		return nil, syntaxErr(line, err.Error())
	}
	return []instr.Record{rec}, nil
}

var subiRe = regexp.MustCompile(`(?i)^subi\s+(\$\w+)\s*,\s*(\$\w+)\s*,\s*(-?\w+)$`)

// ParseSubi expands `subi $rt, $rs, imm` into `addi $rt, $rs, -imm`.
func ParseSubi(line string) ([]instr.Record, error) {
	m := subiRe.FindStringSubmatch(line)
	if m == nil {
		return nil, syntaxErr(line, "malformed subi")
	}
	rt, err := ParseRegister(m[1])
	if err != nil {
		return nil, syntaxErr(line, err.Error())
	}
	rs, err := ParseRegister(m[2])
	if err != nil {
		return nil, syntaxErr(line, err.Error())
	}
	imm, err := ParseNumber(m[3])
	if err != nil {
		return nil, syntaxErr(line, err.Error())
	}
	neg := -imm
	if neg < -32768 || neg > 32767 {
		return nil, syntaxErr(line, "subi immediate out of signed 16-bit range")
	}
	rec, err := instr.NewI(8, rs, rt, int(int16(neg)))
	if err != nil {
		return nil, syntaxErr(line, err.Error())
	}
	return []instr.Record{rec}, nil
}
