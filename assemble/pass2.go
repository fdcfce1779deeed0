package assemble

import (
	"mipspipe/encode"
	"mipspipe/instr"
	"mipspipe/mem"
)

// resolveAndEmit performs assembler Pass 2 (spec §4.7): walks the ordered
// record list from Base, patches each labelled record's immediate, encodes
// it, and stores the word to memory.
func resolveAndEmit(res *scanResult, memory *mem.Memory) error {
	cursor := mem.Base
	for _, rec := range res.records {
		if rec.Label != "" {
			addr, ok := res.symbols[rec.Label]
			if !ok {
				return &UnknownLabelError{Label: rec.Label}
			}
			switch {
			case rec.Kind == instr.I && rec.Opcode == opcodeLui:
				rec.Imm = int((addr >> 16) & 0xFFFF)
			case rec.Kind == instr.I && rec.Opcode == opcodeOri:
				rec.Imm = int(addr & 0xFFFF)
			default:
				offset := int64(addr) - int64(cursor+4)
				if offset < -32768 || offset > 32767 {
					return &BranchRangeError{Label: rec.Label, Offset: int(offset)}
				}
				rec.Imm = int(offset) & 0xFFFF
			}
		}

		word, err := encode.Encode(rec)
		if err != nil {
			return err
		}
		if err := memory.WriteWord(cursor, word); err != nil {
			return err
		}
		cursor += 4
	}
	return nil
}

// Opcodes for the two mnemonics that receive special label-resolution
// treatment instead of the default branch-offset rule (spec §4.7).
const (
	opcodeLui = 15
	opcodeOri = 13
)
