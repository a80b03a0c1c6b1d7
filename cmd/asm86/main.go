package main

import (
	"fmt"
	"os"

	"github.com/grimdork/climate/arg"
	"github.com/sirupsen/logrus"

	"github.com/Urethramancer/i8086/assembler"
)

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})

	opt := arg.New("asm86")
	opt.SetDefaultHelp(true)
	opt.SetOption(arg.GroupDefault, "o", "output", "Output file. Hex is printed when empty.", "", false, arg.VarString, nil)
	opt.SetPositional("SOURCE", "Assembly source file.", "", true, arg.VarString)
	if err := opt.Parse(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		opt.PrintHelp()
		os.Exit(1)
	}
	if opt.GetBool("help") {
		opt.PrintHelp()
		return
	}

	// Load the .s or .asm file named on the command line.
	data, err := os.ReadFile(opt.GetPosString("SOURCE"))
	if err != nil {
		log.WithError(err).Fatal("reading source")
	}

	asm := assembler.New()
	code, err := asm.Assemble(string(data), 0)
	if err != nil {
		log.WithError(err).Fatal("assembly failed")
	}

	out := opt.GetString("output")
	if out == "" {
		for i, b := range code {
			if i > 0 {
				fmt.Print(" ")
			}
			fmt.Printf("%02x", b)
		}
		fmt.Println()
		return
	}

	if err := os.WriteFile(out, code, 0644); err != nil {
		log.WithError(err).Fatal("writing output")
	}
	log.WithFields(logrus.Fields{"file": out, "bytes": len(code)}).Info("assembled")
}
