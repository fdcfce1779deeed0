// Package encode implements the bit-exact conversion between an
// instr.Record and its 32-bit encoded word, for the R/I/J instruction
// forms (spec §3, §4.3).
package encode

import (
	"fmt"

	"mipspipe/instr"
)

// IllegalEncodeError reports an attempt to encode or decode a
// non-encodable kind (instr.Pseudo, instr.Nop, instr.Unknown).
type IllegalEncodeError struct {
	Kind instr.Kind
	Op   string // "encode" or "decode"
}

func (e *IllegalEncodeError) Error() string {
	return fmt.Sprintf("encode: cannot %s a %s-kind record", e.Op, e.Kind)
}

// Encode packs rec into its 32-bit word per the layout:
//
//	bits 0-5:   opcode
//	R: 6-10 rs, 11-15 rt, 16-20 rd, 21-25 shamt, 26-31 funct
//	I: 6-10 rs, 11-15 rt, 16-31 immediate
//	J: 6-31 address
func Encode(rec instr.Record) (uint32, error) {
	if !rec.Encodable() {
		return 0, &IllegalEncodeError{Kind: rec.Kind, Op: "encode"}
	}
	word := uint32(rec.Opcode) & 0x3F
	switch rec.Kind {
	case instr.R:
		word |= (uint32(rec.Rs) & 0x1F) << 6
		word |= (uint32(rec.Rt) & 0x1F) << 11
		word |= (uint32(rec.Rd) & 0x1F) << 16
		word |= (uint32(rec.Shamt) & 0x1F) << 21
		word |= (uint32(rec.Funct) & 0x3F) << 26
	case instr.I:
		word |= (uint32(rec.Rs) & 0x1F) << 6
		word |= (uint32(rec.Rt) & 0x1F) << 11
		word |= (uint32(rec.Imm) & 0xFFFF) << 16
	case instr.J:
		word |= (uint32(rec.Addr) & 0x3FFFFFF) << 6
	}
	return word, nil
}

// Decode extracts the fields of kind from word, building an instr.Record.
// The caller supplies kind (the pipeline decode stage resolves it from the
// registry); Decode does not reinfer it from the opcode bits.
func Decode(word uint32, kind instr.Kind) (instr.Record, error) {
	opcode := int(word & 0x3F)
	switch kind {
	case instr.R:
		return instr.Record{
			Kind:   instr.R,
			Opcode: opcode,
			Rs:     int((word >> 6) & 0x1F),
			Rt:     int((word >> 11) & 0x1F),
			Rd:     int((word >> 16) & 0x1F),
			Shamt:  int((word >> 21) & 0x1F),
			Funct:  int((word >> 26) & 0x3F),
		}, nil
	case instr.I:
		return instr.Record{
			Kind:   instr.I,
			Opcode: opcode,
			Rs:     int((word >> 6) & 0x1F),
			Rt:     int((word >> 11) & 0x1F),
			Imm:    int((word >> 16) & 0xFFFF),
		}, nil
	case instr.J:
		return instr.Record{
			Kind:   instr.J,
			Opcode: opcode,
			Addr:   int((word >> 6) & 0x3FFFFFF),
		}, nil
	default:
		return instr.Record{}, &IllegalEncodeError{Kind: kind, Op: "decode"}
	}
}
