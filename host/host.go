// Copyright 2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package host provides an interactive shell around the 6809
// cross-assembler. Within the host it is possible to assemble source
// files, inspect the resulting listing and exported symbols, and adjust
// assembler settings.
package host

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/beevik/cmd"
	"github.com/beevik/go6809/asm"
)

// A selection represents the result of looking up a command: the command
// found and its whitespace-delimited arguments.
type selection struct {
	command *cmd.Command
	args    []string
}

// A Host wraps the assembler with an interactive command processor.
type Host struct {
	input       *bufio.Scanner
	output      *bufio.Writer
	interactive bool
	lastCmd     *selection
	settings    *settings
	assembly    *asm.Assembly
}

// New creates a new assembler host environment.
func New() *Host {
	return &Host{
		settings: newSettings(),
	}
}

// RunCommands accepts host commands from a reader and outputs the results
// to a writer. If the commands are interactive, a prompt is displayed
// while the host waits for the next command to be entered.
func (h *Host) RunCommands(r io.Reader, w io.Writer, interactive bool) {
	h.input = bufio.NewScanner(r)
	h.output = bufio.NewWriter(w)
	h.interactive = interactive

	if interactive {
		h.println()
	}

	for {
		h.prompt()

		line, err := h.getLine()
		if err != nil {
			break
		}

		var c selection
		if line != "" {
			var n cmd.Node
			var args []string
			n, args, err = cmds.Lookup(line)
			switch {
			case err == cmd.ErrNotFound:
				h.println("Command not found.")
				continue
			case err == cmd.ErrAmbiguous:
				h.println("Command is ambiguous.")
				continue
			case err != nil:
				h.printf("ERROR: %v.\n", err)
				continue
			}
			if command, ok := n.(*cmd.Command); ok {
				c = selection{command, args}
			}
		} else if h.lastCmd != nil {
			c = *h.lastCmd
		}

		if c.command == nil {
			continue
		}
		h.lastCmd = &c

		handler := c.command.Data.(func(*Host, selection) error)
		err = handler(h, c)
		if err != nil {
			break
		}
	}

	h.flush()
}

// Break interrupts command processing, reprinting the prompt.
func (h *Host) Break() {
	h.println()
	h.prompt()
}

func (h *Host) print(args ...interface{}) {
	fmt.Fprint(h.output, args...)
}

func (h *Host) printf(format string, args ...interface{}) {
	fmt.Fprintf(h.output, format, args...)
	h.flush()
}

func (h *Host) println(args ...interface{}) {
	fmt.Fprintln(h.output, args...)
	h.flush()
}

func (h *Host) flush() {
	h.output.Flush()
}

func (h *Host) getLine() (string, error) {
	if h.input.Scan() {
		return h.input.Text(), nil
	}
	if h.input.Err() != nil {
		return "", h.input.Err()
	}
	return "", io.EOF
}

func (h *Host) prompt() {
	if h.interactive {
		h.printf("* ")
		h.flush()
	}
}

func (h *Host) cmdHelp(c selection) error {
	h.println("go6809 commands:")
	for _, l := range helpLines {
		h.printf("    %-15s  %s\n", l.name, l.brief)
	}
	return nil
}

func (h *Host) cmdAssemble(c selection) error {
	if len(c.args) < 1 {
		h.println("Syntax: assemble <filename>")
		return nil
	}

	filename := c.args[0]
	if filepath.Ext(filename) == "" {
		filename += ".asm"
	}

	var options asm.Option
	if h.settings.Verbose {
		options |= asm.Verbose
	}
	cfg := asm.Config{Format: h.format()}

	file, err := os.Open(filename)
	if err != nil {
		h.printf("Failed to open '%s': %v\n", filepath.Base(filename), err)
		return nil
	}
	assembly, err := asm.AssembleWithConfig(file, filename, h.output, options, cfg)
	file.Close()
	h.assembly = assembly
	if err != nil {
		h.printf("Failed to assemble: %s\n", filepath.Base(filename))
		for _, e := range assembly.Errors {
			h.println(e)
		}
		return nil
	}

	ext := filepath.Ext(filename)
	binFilename := filename[:len(filename)-len(ext)] + ".bin"
	out, err := os.OpenFile(binFilename, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		h.printf("Failed to create '%s': %v\n", filepath.Base(binFilename), err)
		return nil
	}
	_, err = assembly.WriteTo(out)
	out.Close()
	if err != nil {
		h.printf("Failed to save '%s': %v\n", filepath.Base(binFilename), err)
		return nil
	}

	h.printf("Assembled '%s' to '%s' ($%04X..$%04X).\n",
		filepath.Base(filename), filepath.Base(binFilename),
		assembly.Origin, assembly.Origin+len(assembly.Code)-1)
	return nil
}

func (h *Host) cmdExports(c selection) error {
	if h.assembly == nil {
		h.println("Nothing assembled yet.")
		return nil
	}
	if len(h.assembly.Exports) == 0 {
		h.println("No exported symbols.")
		return nil
	}
	for _, e := range h.assembly.Exports {
		h.printf("    %-15s $%04X\n", e.Name, e.Addr)
	}
	return nil
}

func (h *Host) cmdListing(c selection) error {
	if h.assembly == nil || h.assembly.Listing == nil {
		h.println("Nothing assembled yet.")
		return nil
	}

	lines := h.settings.ListLines
	if len(c.args) > 0 {
		if v, err := strconv.Atoi(c.args[0]); err == nil && v > 0 {
			lines = v
		}
	}

	all := h.assembly.Listing.Lines
	if lines > len(all) {
		lines = len(all)
	}
	show := asm.Listing{Lines: all[:lines]}
	show.WriteTo(h.output)
	h.flush()
	return nil
}

func (h *Host) cmdSet(c selection) error {
	switch len(c.args) {
	case 0:
		h.println("Variables:")
		h.settings.display(h.output)
		h.flush()
	case 2:
		if err := h.settings.set(c.args[0], c.args[1]); err != nil {
			h.printf("%v\n", err)
		}
	default:
		h.println("Syntax: set [<var> <value>]")
	}
	return nil
}

func (h *Host) cmdQuit(c selection) error {
	return errors.New("Exiting program")
}

func (h *Host) format() asm.Format {
	switch h.settings.Format {
	case "dragondos":
		return asm.DragonDOS
	case "coco":
		return asm.CoCo
	default:
		return asm.Raw
	}
}
