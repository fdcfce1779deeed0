package asmparse

import (
	"regexp"

	"mipspipe/instr"
	"mipspipe/registry"
)

func syntaxErr(line, msg string) error {
	return &registry.SyntaxError{Line: line, Message: msg}
}

var addRe = regexp.MustCompile(`(?i)^add\s+(\$\w+)\s*,\s*(\$\w+)\s*,\s*(\$\w+)$`)

// ParseAdd handles `add $rd, $rs, $rt`.
func ParseAdd(line string) ([]instr.Record, error) {
	m := addRe.FindStringSubmatch(line)
	if m == nil {
		return nil, syntaxErr(line, "malformed add")
	}
	rd, err := ParseRegister(m[1])
	if err != nil {
		return nil, syntaxErr(line, err.Error())
	}
	rs, err := ParseRegister(m[2])
	if err != nil {
		return nil, syntaxErr(line, err.Error())
	}
	rt, err := ParseRegister(m[3])
	if err != nil {
		return nil, syntaxErr(line, err.Error())
	}
	if rd == 0 {
		return nil, syntaxErr(line, "add may not write to $0")
	}
	rec, err := instr.NewR(0, 32, rs, rt, rd, 0)
	if err != nil {
		return nil, syntaxErr(line, err.Error())
	}
	return []instr.Record{rec}, nil
}

var sllRe = regexp.MustCompile(`(?i)^sll\s+(\$\w+)\s*,\s*(\$\w+)\s*,\s*(\S+)$`)

// ParseSll handles `sll $rd, $rt, shamt`.
func ParseSll(line string) ([]instr.Record, error) {
	m := sllRe.FindStringSubmatch(line)
	if m == nil {
		return nil, syntaxErr(line, "malformed sll")
	}
	rd, err := ParseRegister(m[1])
	if err != nil {
		return nil, syntaxErr(line, err.Error())
	}
	rt, err := ParseRegister(m[2])
	if err != nil {
		return nil, syntaxErr(line, err.Error())
	}
	shamt, err := ParseNumber(m[3])
	if err != nil {
		return nil, syntaxErr(line, err.Error())
	}
	rec, err := instr.NewR(0, 0, 0, rt, rd, int(shamt))
	if err != nil {
		return nil, syntaxErr(line, err.Error())
	}
	return []instr.Record{rec}, nil
}

var sltRe = regexp.MustCompile(`(?i)^slt\s+(\$\w+)\s*,\s*(\$\w+)\s*,\s*(\$\w+)$`)

// ParseSlt handles `slt $rd, $rs, $rt`.
func ParseSlt(line string) ([]instr.Record, error) {
	m := sltRe.FindStringSubmatch(line)
	if m == nil {
		return nil, syntaxErr(line, "malformed slt")
	}
	rd, err := ParseRegister(m[1])
	if err != nil {
		return nil, syntaxErr(line, err.Error())
	}
	rs, err := ParseRegister(m[2])
	if err != nil {
		return nil, syntaxErr(line, err.Error())
	}
	rt, err := ParseRegister(m[3])
	if err != nil {
		return nil, syntaxErr(line, err.Error())
	}
	rec, err := instr.NewR(0, 42, rs, rt, rd, 0)
	if err != nil {
		return nil, syntaxErr(line, err.Error())
	}
	return []instr.Record{rec}, nil
}

var syscallRe = regexp.MustCompile(`(?i)^syscall$`)

// ParseSyscall handles the bare `syscall` mnemonic.
func ParseSyscall(line string) ([]instr.Record, error) {
	if !syscallRe.MatchString(line) {
		return nil, syntaxErr(line, "malformed syscall")
	}
	rec, err := instr.NewR(0, 12, 0, 0, 0, 0)
	if err != nil {
		return nil, syntaxErr(line, err.Error())
	}
	return []instr.Record{rec}, nil
}

var addiRe = regexp.MustCompile(`(?i)^addi\s+(\$\w+)\s*,\s*(\$\w+)\s*,\s*(-?\w+)$`)

// ParseAddi handles `addi $rt, $rs, imm` with a signed 16-bit bounds check.
func ParseAddi(line string) ([]instr.Record, error) {
	m := addiRe.FindStringSubmatch(line)
	if m == nil {
		return nil, syntaxErr(line, "malformed addi")
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
	if imm < -32768 || imm > 32767 {
		return nil, syntaxErr(line, "addi immediate out of signed 16-bit range")
	}
	rec, err := instr.NewI(8, rs, rt, int(int16(imm)))
	if err != nil {
		return nil, syntaxErr(line, err.Error())
	}
	return []instr.Record{rec}, nil
}

var beqRe = regexp.MustCompile(`(?i)^beq\s+(\$\w+)\s*,\s*(\$\w+)\s*,\s*([a-z_][a-z0-9_]*)$`)

// ParseBeq handles `beq $rs, $rt, label`. The immediate is left at 0 and
// the record carries an unresolved Label, fixed up at assembly
// finalisation (spec §4.7).
func ParseBeq(line string) ([]instr.Record, error) {
	m := beqRe.FindStringSubmatch(line)
	if m == nil {
		return nil, syntaxErr(line, "malformed beq")
	}
	rs, err := ParseRegister(m[1])
	if err != nil {
		return nil, syntaxErr(line, err.Error())
	}
	rt, err := ParseRegister(m[2])
	if err != nil {
		return nil, syntaxErr(line, err.Error())
	}
	rec, err := instr.NewI(4, rs, rt, 0)
	if err != nil {
		return nil, syntaxErr(line, err.Error())
	}
	rec.Label = m[3]
	return []instr.Record{rec}, nil
}

var bneRe = regexp.MustCompile(`(?i)^bne\s+(\$\w+)\s*,\s*(\$\w+)\s*,\s*([a-z_][a-z0-9_]*)$`)

// ParseBne handles `bne $rs, $rt, label`.
func ParseBne(line string) ([]instr.Record, error) {
	m := bneRe.FindStringSubmatch(line)
	if m == nil {
		return nil, syntaxErr(line, "malformed bne")
	}
	rs, err := ParseRegister(m[1])
	if err != nil {
		return nil, syntaxErr(line, err.Error())
	}
	rt, err := ParseRegister(m[2])
	if err != nil {
		return nil, syntaxErr(line, err.Error())
	}
	rec, err := instr.NewI(5, rs, rt, 0)
	if err != nil {
		return nil, syntaxErr(line, err.Error())
	}
	rec.Label = m[3]
	return []instr.Record{rec}, nil
}

var (
	lbOffsetRe = regexp.MustCompile(`(?i)^lb\s+(\$\w+)\s*,\s*(-?\w*)\((\$\w+)\)$`)
	lbPlainRe  = regexp.MustCompile(`(?i)^lb\s+(\$\w+)\s*,\s*(\$\w+)$`)
)

// ParseLb handles `lb $rt, offset($rs)` or the bare-register shorthand
// `lb $rt, $rs` (offset 0).
func ParseLb(line string) ([]instr.Record, error) {
	if m := lbOffsetRe.FindStringSubmatch(line); m != nil {
		rt, err := ParseRegister(m[1])
		if err != nil {
			return nil, syntaxErr(line, err.Error())
		}
		offTok := m[2]
		var off int64
		if offTok != "" {
			off, err = ParseNumber(offTok)
			if err != nil {
				return nil, syntaxErr(line, err.Error())
			}
		}
		rs, err := ParseRegister(m[3])
		if err != nil {
			return nil, syntaxErr(line, err.Error())
		}
		if off < -32768 || off > 32767 {
			return nil, syntaxErr(line, "lb offset out of signed 16-bit range")
		}
		rec, err := instr.NewI(16, rs, rt, int(int16(off)))
		if err != nil {
			return nil, syntaxErr(line, err.Error())
		}
		return []instr.Record{rec}, nil
	}
	if m := lbPlainRe.FindStringSubmatch(line); m != nil {
		rt, err := ParseRegister(m[1])
		if err != nil {
			return nil, syntaxErr(line, err.Error())
		}
		rs, err := ParseRegister(m[2])
		if err != nil {
			return nil, syntaxErr(line, err.Error())
		}
		rec, err := instr.NewI(16, rs, rt, 0)
		if err != nil {
			return nil, syntaxErr(line, err.Error())
		}
		return []instr.Record{rec}, nil
	}
	return nil, syntaxErr(line, "malformed lb")
}

var luiRe = regexp.MustCompile(`(?i)^lui\s+(\$\w+)\s*,\s*(\S+)$`)

// ParseLui handles `lui $rt, imm`.
func ParseLui(line string) ([]instr.Record, error) {
	m := luiRe.FindStringSubmatch(line)
	if m == nil {
		return nil, syntaxErr(line, "malformed lui")
	}
	rt, err := ParseRegister(m[1])
	if err != nil {
		return nil, syntaxErr(line, err.Error())
	}
	imm, err := ParseNumber(m[2])
	if err != nil {
		return nil, syntaxErr(line, err.Error())
	}
	rec, err := instr.NewI(15, 0, rt, int(imm)&0xFFFF)
	if err != nil {
		return nil, syntaxErr(line, err.Error())
	}
	return []instr.Record{rec}, nil
}

var oriRe = regexp.MustCompile(`(?i)^ori\s+(\$\w+)\s*,\s*(\$\w+)\s*,\s*(\S+)$`)

// ParseOri handles `ori $rt, $rs, imm`.
func ParseOri(line string) ([]instr.Record, error) {
	m := oriRe.FindStringSubmatch(line)
	if m == nil {
		return nil, syntaxErr(line, "malformed ori")
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
	rec, err := instr.NewI(13, rs, rt, int(imm)&0xFFFF)
	if err != nil {
		return nil, syntaxErr(line, err.Error())
	}
	return []instr.Record{rec}, nil
}
