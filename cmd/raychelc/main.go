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

// raychelc compiles a RaychelScript source file to RASM bytecode, optionally
// persists it as an .rsbf image, and runs it against numeric arguments
// supplied on the command line.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/Weckyy702/RaychelScript-sub000/asm"
	"github.com/Weckyy702/RaychelScript-sub000/internal/rsbf"
	"github.com/Weckyy702/RaychelScript-sub000/lang/optimizer"
	"github.com/Weckyy702/RaychelScript-sub000/lang/parser"
	"github.com/Weckyy702/RaychelScript-sub000/vm"
)

// optLevel is a flag.Value wrapping optimizer.Level so -O accepts the
// level's name rather than its raw integer.
type optLevel optimizer.Level

func (l *optLevel) String() string {
	switch optimizer.Level(*l) {
	case optimizer.LevelNone:
		return "none"
	case optimizer.LevelLight:
		return "light"
	case optimizer.LevelHard:
		return "hard"
	case optimizer.LevelAll:
		return "all"
	default:
		return "?"
	}
}

func (l *optLevel) Set(s string) error {
	switch strings.ToLower(s) {
	case "none":
		*l = optLevel(optimizer.LevelNone)
	case "light":
		*l = optLevel(optimizer.LevelLight)
	case "hard":
		*l = optLevel(optimizer.LevelHard)
	case "all":
		*l = optLevel(optimizer.LevelAll)
	default:
		return errors.Errorf("unknown optimization level %q", s)
	}
	return nil
}

var (
	debug       bool
	disasm      bool
	outFileName string
	level       = optLevel(optimizer.LevelAll)
)

func atExit(err error) {
	if err == nil {
		return
	}
	if !debug {
		fmt.Fprintf(os.Stderr, "raychelc: %v\n", err)
	} else {
		fmt.Fprintf(os.Stderr, "raychelc: %+v\n", err)
	}
	os.Exit(1)
}

// load compiles or reads the program at fileName, returning it wrapped with
// its declared variable names. Source files (anything not ending in .rsbf)
// run the full lex/parse/optimize/assemble pipeline; .rsbf images are read
// back directly.
func load(fileName string) (rsbf.File, error) {
	if filepath.Ext(fileName) == ".rsbf" {
		f, err := rsbf.Read(fileName)
		return f, errors.Wrap(err, "load")
	}

	src, err := os.ReadFile(fileName)
	if err != nil {
		return rsbf.File{}, errors.Wrap(err, "read source")
	}
	prog, err := parser.Parse(string(src))
	if err != nil {
		return rsbf.File{}, errors.Wrap(err, "parse")
	}
	prog = optimizer.Optimize(prog, optimizer.Level(level))
	p, err := asm.Assemble(prog)
	if err != nil {
		return rsbf.File{}, errors.Wrap(err, "assemble")
	}
	return rsbf.File{
		Inputs:  prog.Config.Inputs,
		Outputs: prog.Config.Outputs,
		Program: p,
	}, nil
}

func run() error {
	flag.BoolVar(&debug, "debug", false, "print full error chains instead of a one-line summary")
	flag.BoolVar(&disasm, "disasm", false, "print disassembled RASM instead of running the program")
	flag.StringVar(&outFileName, "o", "", "write the assembled program to `file` as an .rsbf image")
	flag.Var(&level, "O", "optimization level: none, light, hard, or all")
	flag.Parse()

	args := flag.Args()
	if len(args) < 1 {
		return errors.New("usage: raychelc [flags] <source.rss|program.rsbf> [input...]")
	}

	f, err := load(args[0])
	if err != nil {
		return err
	}

	if outFileName != "" {
		if err := rsbf.Write(outFileName, f); err != nil {
			return errors.Wrap(err, "write rsbf image")
		}
	}

	if disasm {
		fmt.Print(asm.Disassemble(f.Program))
		return nil
	}

	inputArgs := args[1:]
	if len(inputArgs) != len(f.Inputs) {
		return errors.Errorf("expected %d input(s) (%s), got %d", len(f.Inputs), strings.Join(f.Inputs, ", "), len(inputArgs))
	}
	inputs := make([]float64, len(inputArgs))
	for i, a := range inputArgs {
		v, err := strconv.ParseFloat(a, 64)
		if err != nil {
			return errors.Wrapf(err, "input %d (%s)", i, f.Inputs[i])
		}
		inputs[i] = v
	}

	inst, err := vm.New(f.Program)
	if err != nil {
		return errors.Wrap(err, "load program")
	}
	outputs := make([]float64, len(f.Outputs))
	if err := inst.Run(inputs, outputs); err != nil {
		return errors.Wrap(err, "run")
	}
	for i, name := range f.Outputs {
		fmt.Printf("%s = %g\n", name, outputs[i])
	}
	return nil
}

func main() {
	atExit(run())
}
