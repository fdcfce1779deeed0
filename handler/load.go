package handler

import (
	"mipspipe/instr"
	"mipspipe/mem"
	"mipspipe/regfile"
)

// Lb implements `lb $rt, offset($rs)`: loads one byte, zero-extended.
type Lb struct{}

func (Lb) OnDecode(db instr.DecodeBuffer, r regfile.Reader, m *mem.Memory, pc *uint32) (instr.DecodeBuffer, error) {
	return noDecode(db, r, m, pc)
}
func (Lb) OnExecute(db instr.DecodeBuffer) uint32 {
	return db.Rs1Val + signExtend16(db.Imm)
}
func (Lb) OnMemory(eb instr.ExecuteBuffer, m *mem.Memory) (uint32, error) {
	b, err := m.ReadByte(eb.Output)
	if err != nil {
		return 0, err
	}
	return uint32(b), nil
}
