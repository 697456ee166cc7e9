// Copyright 2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/beevik/go6809/asm"
	"github.com/beevik/go6809/host"
	"github.com/beevik/term"
)

var (
	assemble string
	format   string
	verbose  bool
)

func init() {
	flag.StringVar(&assemble, "a", "", "assemble file")
	flag.StringVar(&format, "f", "raw", "output format (raw, dragondos, coco)")
	flag.BoolVar(&verbose, "v", false, "verbose assembly output")
	flag.CommandLine.Usage = func() {
		fmt.Println("Usage: go6809 [script] ..\nOptions:")
		flag.PrintDefaults()
	}
}

func main() {
	flag.Parse()

	// Do command-line assemble if requested.
	if assemble != "" {
		var options asm.Option
		if verbose {
			options |= asm.Verbose
		}
		cfg := asm.Config{Format: outputFormat()}
		err := asm.AssembleFileWithConfig(assemble, options, os.Stdout, cfg)
		if err != nil {
			fmt.Printf("Failed to assemble file '%s'.\n", assemble)
			os.Exit(1)
		}
		os.Exit(0)
	}

	h := host.New()

	// Run commands contained in command-line files.
	args := flag.Args()
	if len(args) > 0 {
		for _, filename := range args {
			file, err := os.Open(filename)
			if err != nil {
				exitOnError(err)
			}
			h.RunCommands(file, os.Stdout, false)
			file.Close()
		}
	}

	// Break on Ctrl-C.
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt)
	go handleInterrupt(h, c)

	// Run commands interactively when attached to a terminal.
	interactive := term.IsTerminal(int(os.Stdin.Fd()))
	h.RunCommands(os.Stdin, os.Stdout, interactive)
}

func outputFormat() asm.Format {
	switch format {
	case "dragondos":
		return asm.DragonDOS
	case "coco":
		return asm.CoCo
	default:
		return asm.Raw
	}
}

func handleInterrupt(h *host.Host, c chan os.Signal) {
	for {
		<-c
		h.Break()
	}
}

func exitOnError(err error) {
	fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
	os.Exit(1)
}
