// This file is part of RaychelScript - https://github.com/Weckyy702/RaychelScript-sub000
//
// Copyright 2016 Denis Bernard <db047h@gmail.com>
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package rsbf

import (
	"bufio"
	"encoding/binary"
	"io"
	"math"
	"os"

	"github.com/pkg/errors"

	"github.com/Weckyy702/RaychelScript-sub000/vm"
)

const (
	magic   uint32 = 0x000F00D4
	version uint32 = 1
)

// File is a whole RSBF image: the assembled program plus the declared
// input/output names that vm.Program itself doesn't carry.
type File struct {
	Inputs, Outputs []string
	Program         vm.Program
}

// Write creates fileName and encodes f to it, removing the partial file on
// a failed write (mirrors db47h-ngaro/vm/mem.go's Save).
func Write(fileName string, f File) (err error) {
	out, err := os.Create(fileName)
	if err != nil {
		return errors.Wrap(err, "rsbf: create")
	}
	defer func() {
		out.Close()
		if err != nil {
			os.Remove(fileName)
		}
	}()
	if err = Encode(out, f); err != nil {
		return err
	}
	return nil
}

// Read opens fileName and decodes it as an RSBF image.
func Read(fileName string) (File, error) {
	in, err := os.Open(fileName)
	if err != nil {
		return File{}, errors.Wrap(err, "rsbf: open")
	}
	defer in.Close()
	f, err := Decode(bufio.NewReader(in))
	if err != nil {
		return File{}, err
	}
	return f, nil
}

// Encode writes f's RSBF encoding to w.
func Encode(w io.Writer, f File) error {
	bw := bufio.NewWriter(w)
	if err := writeUint32(bw, magic); err != nil {
		return errors.Wrap(err, "rsbf: write magic")
	}
	if err := writeUint32(bw, version); err != nil {
		return errors.Wrap(err, "rsbf: write version")
	}
	if err := writeStrings(bw, f.Inputs); err != nil {
		return errors.Wrap(err, "rsbf: write inputs")
	}
	if err := writeStrings(bw, f.Outputs); err != nil {
		return errors.Wrap(err, "rsbf: write outputs")
	}
	if err := writeImmediates(bw, f.Program.Immediates); err != nil {
		return errors.Wrap(err, "rsbf: write immediates")
	}
	if err := writeUint32(bw, uint32(len(f.Program.Frames))); err != nil {
		return errors.Wrap(err, "rsbf: write frame count")
	}
	for i, frm := range f.Program.Frames {
		if err := writeFrame(bw, frm); err != nil {
			return errors.Wrapf(err, "rsbf: write frame %d", i)
		}
	}
	return errors.Wrap(bw.Flush(), "rsbf: flush")
}

// Decode reads an RSBF image from r.
func Decode(r io.Reader) (File, error) {
	m, err := readUint32(r)
	if err != nil {
		return File{}, errors.Wrap(err, "rsbf: read magic")
	}
	if m != magic {
		return File{}, errors.Errorf("rsbf: not an rsbf file (bad magic %#x)", m)
	}
	v, err := readUint32(r)
	if err != nil {
		return File{}, errors.Wrap(err, "rsbf: read version")
	}
	if v != version {
		return File{}, errors.Errorf("rsbf: unsupported version %d", v)
	}
	inputs, err := readStrings(r)
	if err != nil {
		return File{}, errors.Wrap(err, "rsbf: read inputs")
	}
	outputs, err := readStrings(r)
	if err != nil {
		return File{}, errors.Wrap(err, "rsbf: read outputs")
	}
	imms, err := readImmediates(r)
	if err != nil {
		return File{}, errors.Wrap(err, "rsbf: read immediates")
	}
	nFrames, err := readUint32(r)
	if err != nil {
		return File{}, errors.Wrap(err, "rsbf: read frame count")
	}
	frames := make([]vm.FrameDescriptor, nFrames)
	for i := range frames {
		frm, err := readFrame(r)
		if err != nil {
			return File{}, errors.Wrapf(err, "rsbf: read frame %d", i)
		}
		frames[i] = frm
	}
	return File{
		Inputs:  inputs,
		Outputs: outputs,
		Program: vm.Program{
			NumInputs:  len(inputs),
			NumOutputs: len(outputs),
			Immediates: imms,
			Frames:     frames,
		},
	}, nil
}

func writeUint32(w io.Writer, v uint32) error {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	_, err := w.Write(b[:])
	return err
}

func readUint32(r io.Reader) (uint32, error) {
	var b [4]byte
	if _, err := io.ReadFull(r, b[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b[:]), nil
}

// writeStrings writes a leading count, each string as a length-prefixed
// byte run, then a trailing copy of the count.
func writeStrings(w io.Writer, names []string) error {
	if err := writeUint32(w, uint32(len(names))); err != nil {
		return err
	}
	for _, n := range names {
		if err := writeUint32(w, uint32(len(n))); err != nil {
			return err
		}
		if _, err := io.WriteString(w, n); err != nil {
			return err
		}
	}
	return writeUint32(w, uint32(len(names)))
}

func readStrings(r io.Reader) ([]string, error) {
	n, err := readUint32(r)
	if err != nil {
		return nil, err
	}
	names := make([]string, n)
	for i := range names {
		l, err := readUint32(r)
		if err != nil {
			return nil, err
		}
		buf := make([]byte, l)
		if _, err := io.ReadFull(r, buf); err != nil {
			return nil, err
		}
		names[i] = string(buf)
	}
	trailer, err := readUint32(r)
	if err != nil {
		return nil, err
	}
	if trailer != n {
		return nil, errors.Errorf("identifier vector: leading count %d does not match trailing index %d", n, trailer)
	}
	return names, nil
}

func writeImmediates(w io.Writer, vals []float64) error {
	if err := writeUint32(w, uint32(len(vals))); err != nil {
		return err
	}
	var b [8]byte
	for _, v := range vals {
		binary.LittleEndian.PutUint64(b[:], math.Float64bits(v))
		if _, err := w.Write(b[:]); err != nil {
			return err
		}
	}
	return writeUint32(w, uint32(len(vals)))
}

func readImmediates(r io.Reader) ([]float64, error) {
	n, err := readUint32(r)
	if err != nil {
		return nil, err
	}
	vals := make([]float64, n)
	var b [8]byte
	for i := range vals {
		if _, err := io.ReadFull(r, b[:]); err != nil {
			return nil, err
		}
		vals[i] = math.Float64frombits(binary.LittleEndian.Uint64(b[:]))
	}
	trailer, err := readUint32(r)
	if err != nil {
		return nil, err
	}
	if trailer != n {
		return nil, errors.Errorf("immediate pool: leading count %d does not match trailing index %d", n, trailer)
	}
	return vals, nil
}

// writeFrame writes a frame's cell count followed by its instructions, each
// packed as (opcode<<24)|(A<<16)|(B<<8).
func writeFrame(w io.Writer, frm vm.FrameDescriptor) error {
	if err := writeUint32(w, uint32(frm.FrameSize)); err != nil {
		return err
	}
	if err := writeUint32(w, uint32(len(frm.Instructions))); err != nil {
		return err
	}
	var b [4]byte
	for _, instr := range frm.Instructions {
		enc := uint32(instr.Op)<<24 | uint32(instr.A)<<16 | uint32(instr.B)<<8
		binary.LittleEndian.PutUint32(b[:], enc)
		if _, err := w.Write(b[:]); err != nil {
			return err
		}
	}
	return nil
}

func readFrame(r io.Reader) (vm.FrameDescriptor, error) {
	size, err := readUint32(r)
	if err != nil {
		return vm.FrameDescriptor{}, err
	}
	n, err := readUint32(r)
	if err != nil {
		return vm.FrameDescriptor{}, err
	}
	instrs := make([]vm.Instruction, n)
	var b [4]byte
	for i := range instrs {
		if _, err := io.ReadFull(r, b[:]); err != nil {
			return vm.FrameDescriptor{}, err
		}
		enc := binary.LittleEndian.Uint32(b[:])
		instrs[i] = vm.Instruction{
			Op: vm.OpCode(enc >> 24),
			A:  uint8(enc >> 16),
			B:  uint8(enc >> 8),
		}
	}
	return vm.FrameDescriptor{FrameSize: int(size), Instructions: instrs}, nil
}
