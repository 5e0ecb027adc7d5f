package rubima

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
)

// Dump writes the VM's program counter and stack, followed by a listing of
// its last evaluated program.
func (vm *VM) Dump(w io.Writer) error {
	bw := bufio.NewWriter(w)
	vmDumper{
		out:    bw,
		vm:     vm,
		prog:   vm.prog,
		labels: vm.prog.Labels(),
	}.dump()
	return bw.Flush()
}

// Dump writes every label seen so far, followed by a listing of the program
// parsed so far.
func (p *Parser) Dump(w io.Writer) error {
	bw := bufio.NewWriter(w)
	vmDumper{
		out:    bw,
		prog:   p.prog,
		labels: p.labels,
	}.dump()
	return bw.Flush()
}

type vmDumper struct {
	out    io.Writer
	vm     *VM
	prog   Program
	labels []*Label

	addrWidth int
}

func (dump vmDumper) dump() {
	if dump.vm != nil {
		fmt.Fprintf(dump.out, "# VM Dump\n")
		fmt.Fprintf(dump.out, "  pc: %v\n", dump.vm.pc)
		fmt.Fprintf(dump.out, "  stack: %v\n", dump.vm.stack)
	}
	if dump.addrWidth == 0 {
		dump.addrWidth = len(strconv.Itoa(len(dump.prog)))
	}
	dump.dumpLabels()
	dump.dumpProg()
}

func (dump *vmDumper) dumpLabels() {
	if len(dump.labels) == 0 {
		return
	}
	fmt.Fprintf(dump.out, "# Labels\n")
	for _, label := range dump.labels {
		if label.Resolved() {
			fmt.Fprintf(dump.out, "  %v :%v @%v\n", label.ID, label.Name, label.pos)
		} else {
			fmt.Fprintf(dump.out, "  %v :%v UNRESOLVED\n", label.ID, label.Name)
		}
	}
}

func (dump *vmDumper) dumpProg() {
	fmt.Fprintf(dump.out, "# Program\n")

	// label definitions are listed in source order, ahead of the instruction
	// that they point at
	at := make(map[int32][]*Label, len(dump.labels))
	for _, label := range dump.labels {
		if label.Resolved() {
			at[label.pos] = append(at[label.pos], label)
		}
	}

	end := int32(len(dump.prog))
	for pc := int32(0); pc <= end; pc++ {
		for _, label := range at[pc] {
			fmt.Fprintf(dump.out, "  :%v\n", label.Name)
		}
		delete(at, pc)
		if pc == end {
			break
		}
		fmt.Fprintf(dump.out, "  @%*v %v", dump.addrWidth, pc, dump.prog[pc])
		if dump.vm != nil && dump.vm.pc == pc {
			fmt.Fprintf(dump.out, "  <-- pc")
		}
		fmt.Fprintf(dump.out, "\n")
	}

	// labels past the end of the program
	for pos := end + 1; len(at) > 0; pos++ {
		for _, label := range at[pos] {
			fmt.Fprintf(dump.out, "  :%v @%v\n", label.Name, pos)
		}
		delete(at, pos)
	}
}
