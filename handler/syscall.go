package handler

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"mipspipe/instr"
	"mipspipe/mem"
	"mipspipe/regfile"
)

// FatalSyscallError reports a syscall number not in the enumerated set
// (spec §6, §7: unknown syscall numbers are fatal).
type FatalSyscallError struct {
	Number uint32
}

func (e *FatalSyscallError) Error() string {
	return fmt.Sprintf("FatalSyscall: unknown syscall number %d in $v0", e.Number)
}

// Syscall implements the three enumerated syscalls, dispatched on $v0
// (register 2). It owns the VM's console I/O, matching the teacher's
// pattern of routing program output through a configurable writer
// (vm/executor.go's OutputWriter) rather than writing os.Stdout directly,
// so tests can capture it.
type Syscall struct {
	Out        io.Writer
	In         *bufio.Reader
	MaxReadCap int // 0 disables the cap; otherwise clamps $a1
}

func (s *Syscall) OnDecode(db instr.DecodeBuffer, regs regfile.Reader, memory *mem.Memory, pc *uint32) (instr.DecodeBuffer, error) {
	v0 := regs.Read(2)
	switch v0 {
	case 4: // print_string
		addr := regs.Read(4)
		str, err := memory.ReadString(addr)
		if err != nil {
			return instr.Zero(), err
		}
		if _, err := io.WriteString(s.Out, str); err != nil {
			return instr.Zero(), err
		}
	case 8: // read_string
		addr := regs.Read(4)
		maxBytes := regs.Read(5)
		if s.MaxReadCap > 0 && maxBytes > uint32(s.MaxReadCap) {
			maxBytes = uint32(s.MaxReadCap)
		}
		if maxBytes == 0 {
			break
		}
		line, _ := s.In.ReadString('\n')
		line = strings.TrimRight(line, "\r\n")
		if uint32(len(line)) > maxBytes-1 {
			line = line[:maxBytes-1]
		}
		for i := uint32(0); i < uint32(len(line)); i++ {
			if err := memory.WriteByte(addr+i, line[i]); err != nil {
				return instr.Zero(), err
			}
		}
		if err := memory.WriteByte(addr+uint32(len(line)), 0); err != nil {
			return instr.Zero(), err
		}
	case 10: // exit
		db.Exit = true
		return instr.DecodeBuffer{Exit: true}, nil
	default:
		return instr.Zero(), &FatalSyscallError{Number: v0}
	}
	return instr.Zero(), nil
}

func (s *Syscall) OnExecute(db instr.DecodeBuffer) uint32 { return 0 }

func (s *Syscall) OnMemory(eb instr.ExecuteBuffer, memory *mem.Memory) (uint32, error) {
	return 0, nil
}
