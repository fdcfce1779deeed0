package handler

import (
	"mipspipe/instr"
	"mipspipe/mem"
	"mipspipe/regfile"
)

// branchDecode resolves a branch in the decode stage: the second operand
// is read through regs (in the pipeline, a forwarding-aware view of the
// register file) using the register number the
// generic I-form population stashed in Rd (spec §4.8 step 2 sets rd=rt
// for I-form; decode never populates rs2 for I-form records), then taken
// branches adjust pc (already advanced past the branch by Fetch) by the
// signed 16-bit immediate. Every branch rewrites its own buffer to a NOP
// regardless of outcome (spec §4.6).
func branchDecode(db instr.DecodeBuffer, regs regfile.Reader, pc *uint32, taken func(a, b uint32) bool) (instr.DecodeBuffer, error) {
	rtVal := regs.Read(db.Rd)
	if taken(db.Rs1Val, rtVal) {
		*pc += signExtend16(db.Imm)
	}
	return instr.Zero(), nil
}

// Beq implements `beq $rs, $rt, label`.
type Beq struct{}

func (Beq) OnDecode(db instr.DecodeBuffer, regs regfile.Reader, m *mem.Memory, pc *uint32) (instr.DecodeBuffer, error) {
	return branchDecode(db, regs, pc, func(a, b uint32) bool { return a == b })
}
func (Beq) OnExecute(db instr.DecodeBuffer) uint32 { return 0 }
func (Beq) OnMemory(eb instr.ExecuteBuffer, m *mem.Memory) (uint32, error) {
	return 0, nil
}

// Bne implements `bne $rs, $rt, label`.
type Bne struct{}

func (Bne) OnDecode(db instr.DecodeBuffer, regs regfile.Reader, m *mem.Memory, pc *uint32) (instr.DecodeBuffer, error) {
	return branchDecode(db, regs, pc, func(a, b uint32) bool { return a != b })
}
func (Bne) OnExecute(db instr.DecodeBuffer) uint32 { return 0 }
func (Bne) OnMemory(eb instr.ExecuteBuffer, m *mem.Memory) (uint32, error) {
	return 0, nil
}
