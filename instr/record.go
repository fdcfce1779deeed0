// Package instr defines the structured, pre-encoding view of a single
// instruction (Record) and the per-cycle pipeline buffers that carry
// values between pipeline stages.
package instr

import "fmt"

// Kind identifies the shape of an instruction record.
type Kind int

const (
	// R is a register-register form (opcode/rs/rt/rd/shamt/funct).
	R Kind = iota
	// I is a register-immediate form (opcode/rs/rt/imm).
	I
	// J is a jump form (opcode/addr). Unused by the enumerated ISA subset
	// but kept as a first-class kind per spec §3.
	J
	// Pseudo is the registry kind of a pseudo-instruction mnemonic. Its
	// parser expands it directly into real R/I records; a Pseudo-kind
	// record is not encodable.
	Pseudo
	// Nop marks a no-op record. It is not encodable; the `nop` pseudo-
	// instruction expands to the R-form `sll $0, $0, 0` instead.
	Nop
	// Unknown marks a record that could not be classified; encoding one
	// is always an error.
	Unknown
)

func (k Kind) String() string {
	switch k {
	case R:
		return "R"
	case I:
		return "I"
	case J:
		return "J"
	case Pseudo:
		return "PSEUDO"
	case Nop:
		return "NOP"
	default:
		return "UNKNOWN"
	}
}

// FieldRangeError reports that a field was set to a value exceeding its
// bit width.
type FieldRangeError struct {
	Field string
	Value int64
	Max   int64
}

func (e *FieldRangeError) Error() string {
	return fmt.Sprintf("instr: field %s value %d exceeds maximum %d", e.Field, e.Value, e.Max)
}

// Record is the structured, pre-encoding representation of one
// instruction. Only the fields relevant to Kind are meaningful; the
// encoder reads exactly those.
type Record struct {
	Kind   Kind
	Opcode int // 0..63
	Funct  int // 0..63, R-form only; 0 otherwise
	Rs     int // 0..31
	Rt     int // 0..31 (also the I-form destination)
	Rd     int // 0..31, R-form only
	Shamt  int // 0..31, R-form only
	Imm    int // 0..65535, I-form only
	Addr   int // 0..67108863, J-form only

	// Label is an optional forward reference resolved during assembly
	// finalisation; records that carry one have their Imm or Addr field
	// overwritten once the label's address is known (spec §4.7).
	Label string
}

// NewR constructs a validated R-form record.
func NewR(opcode, funct, rs, rt, rd, shamt int) (Record, error) {
	rec := Record{Kind: R, Opcode: opcode, Funct: funct, Rs: rs, Rt: rt, Rd: rd, Shamt: shamt}
	if err := rec.Validate(); err != nil {
		return Record{}, err
	}
	return rec, nil
}

// NewI constructs a validated I-form record. imm is reduced to its low 16
// bits, so negative values are stored as their 16-bit two's-complement
// pattern; bits above the low 16 are discarded rather than rejected.
func NewI(opcode, rs, rt, imm int) (Record, error) {
	rec := Record{Kind: I, Opcode: opcode, Rs: rs, Rt: rt, Imm: imm & 0xFFFF}
	if err := rec.Validate(); err != nil {
		return Record{}, err
	}
	return rec, nil
}

// NewJ constructs a validated J-form record.
func NewJ(opcode, addr int) (Record, error) {
	rec := Record{Kind: J, Opcode: opcode, Addr: addr}
	if err := rec.Validate(); err != nil {
		return Record{}, err
	}
	return rec, nil
}

// Validate checks the opcode and every field the record's kind uses
// against its bit width. Records of any other kind than R/I/J have only
// their opcode checked.
func (r Record) Validate() error {
	if r.Opcode < 0 || r.Opcode > 63 {
		return &FieldRangeError{"opcode", int64(r.Opcode), 63}
	}
	switch r.Kind {
	case R:
		if r.Funct < 0 || r.Funct > 63 {
			return &FieldRangeError{"funct", int64(r.Funct), 63}
		}
		if r.Rs < 0 || r.Rs > 31 {
			return &FieldRangeError{"rs", int64(r.Rs), 31}
		}
		if r.Rt < 0 || r.Rt > 31 {
			return &FieldRangeError{"rt", int64(r.Rt), 31}
		}
		if r.Rd < 0 || r.Rd > 31 {
			return &FieldRangeError{"rd", int64(r.Rd), 31}
		}
		if r.Shamt < 0 || r.Shamt > 31 {
			return &FieldRangeError{"shamt", int64(r.Shamt), 31}
		}
	case I:
		if r.Rs < 0 || r.Rs > 31 {
			return &FieldRangeError{"rs", int64(r.Rs), 31}
		}
		if r.Rt < 0 || r.Rt > 31 {
			return &FieldRangeError{"rt", int64(r.Rt), 31}
		}
		if r.Imm < 0 || r.Imm > 65535 {
			return &FieldRangeError{"imm", int64(r.Imm), 65535}
		}
	case J:
		if r.Addr < 0 || r.Addr > 67108863 {
			return &FieldRangeError{"addr", int64(r.Addr), 67108863}
		}
	}
	return nil
}

// Encodable reports whether this record's kind can be passed to the
// encoder (spec §3: only R/I/J records are encodable).
func (r Record) Encodable() bool {
	return r.Kind == R || r.Kind == I || r.Kind == J
}
