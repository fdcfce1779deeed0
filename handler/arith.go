// Package handler implements the per-opcode decode/execute/memory side
// effects dispatched by the instruction registry (spec §4.6).
package handler

import (
	"mipspipe/instr"
	"mipspipe/mem"
	"mipspipe/regfile"
)

// passthrough is shared by every arithmetic/logical handler whose
// memory-stage output is simply its execute-stage output unchanged.
func passthrough(eb instr.ExecuteBuffer, _ *mem.Memory) (uint32, error) {
	return eb.Output, nil
}

func noDecode(db instr.DecodeBuffer, _ regfile.Reader, _ *mem.Memory, _ *uint32) (instr.DecodeBuffer, error) {
	return db, nil
}

// Add implements `add $rd, $rs, $rt`: two's-complement wraparound sum.
type Add struct{}

func (Add) OnDecode(db instr.DecodeBuffer, r regfile.Reader, m *mem.Memory, pc *uint32) (instr.DecodeBuffer, error) {
	return noDecode(db, r, m, pc)
}
func (Add) OnExecute(db instr.DecodeBuffer) uint32 { return db.Rs1Val + db.Rs2Val }
func (Add) OnMemory(eb instr.ExecuteBuffer, m *mem.Memory) (uint32, error) {
	return passthrough(eb, m)
}

// Sll implements `sll $rd, $rt, shamt`. The decode stage populates the
// immediate slot with shamt for R-form records (spec §4.8 step 2).
type Sll struct{}

func (Sll) OnDecode(db instr.DecodeBuffer, r regfile.Reader, m *mem.Memory, pc *uint32) (instr.DecodeBuffer, error) {
	return noDecode(db, r, m, pc)
}
func (Sll) OnExecute(db instr.DecodeBuffer) uint32 {
	return db.Rs2Val << uint(db.Imm&0x1F)
}
func (Sll) OnMemory(eb instr.ExecuteBuffer, m *mem.Memory) (uint32, error) {
	return passthrough(eb, m)
}

// Slt implements `slt $rd, $rs, $rt`: signed comparison.
type Slt struct{}

func (Slt) OnDecode(db instr.DecodeBuffer, r regfile.Reader, m *mem.Memory, pc *uint32) (instr.DecodeBuffer, error) {
	return noDecode(db, r, m, pc)
}
func (Slt) OnExecute(db instr.DecodeBuffer) uint32 {
	if int32(db.Rs1Val) < int32(db.Rs2Val) {
		return 1
	}
	return 0
}
func (Slt) OnMemory(eb instr.ExecuteBuffer, m *mem.Memory) (uint32, error) {
	return passthrough(eb, m)
}

// signExtend16 sign-extends the low 16 bits of imm (stored 0..65535 in
// the buffer) to a full 32-bit two's-complement value.
func signExtend16(imm int) uint32 {
	return uint32(int32(int16(uint16(imm))))
}

// Addi implements `addi $rt, $rs, imm`.
//
// Open question (spec §9): the source material's on_memory returns 0 for
// addi, discarding the ALU result on write-back. This spec resolves the
// ambiguity in favour of option (a): the write-back value is the ALU
// output forwarded through MEM, matching add/ori/lui/slt/sll. See
// DESIGN.md for the deviation note.
type Addi struct{}

func (Addi) OnDecode(db instr.DecodeBuffer, r regfile.Reader, m *mem.Memory, pc *uint32) (instr.DecodeBuffer, error) {
	return noDecode(db, r, m, pc)
}
func (Addi) OnExecute(db instr.DecodeBuffer) uint32 {
	return db.Rs1Val + signExtend16(db.Imm)
}
func (Addi) OnMemory(eb instr.ExecuteBuffer, m *mem.Memory) (uint32, error) {
	return passthrough(eb, m)
}

// Lui implements `lui $rt, imm`.
type Lui struct{}

func (Lui) OnDecode(db instr.DecodeBuffer, r regfile.Reader, m *mem.Memory, pc *uint32) (instr.DecodeBuffer, error) {
	return noDecode(db, r, m, pc)
}
func (Lui) OnExecute(db instr.DecodeBuffer) uint32 {
	return uint32(db.Imm&0xFFFF) << 16
}
func (Lui) OnMemory(eb instr.ExecuteBuffer, m *mem.Memory) (uint32, error) {
	return passthrough(eb, m)
}

// Ori implements `ori $rt, $rs, imm`: zero-extended immediate OR.
type Ori struct{}

func (Ori) OnDecode(db instr.DecodeBuffer, r regfile.Reader, m *mem.Memory, pc *uint32) (instr.DecodeBuffer, error) {
	return noDecode(db, r, m, pc)
}
func (Ori) OnExecute(db instr.DecodeBuffer) uint32 {
	return db.Rs1Val | uint32(db.Imm&0xFFFF)
}
func (Ori) OnMemory(eb instr.ExecuteBuffer, m *mem.Memory) (uint32, error) {
	return passthrough(eb, m)
}
