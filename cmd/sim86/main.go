package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/grimdork/climate/arg"
	"github.com/sirupsen/logrus"

	"github.com/Urethramancer/i8086/disassembler"
	"github.com/Urethramancer/i8086/vm"
)

// Exit codes.
const (
	exitOK = iota
	exitUsage
	exitDecode
	exitHalt
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	log := logrus.New()
	log.SetOutput(stderr)
	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})

	opt := arg.New("sim86")
	opt.SetDefaultHelp(true)
	opt.SetOption(arg.GroupDefault, "t", "time", "Estimate cycles and annotate the output.", false, false, arg.VarBool, nil)
	opt.SetOption(arg.GroupDefault, "d", "dump", "Write the memory image after simulating.", false, false, arg.VarBool, nil)
	opt.SetOption(arg.GroupDefault, "o", "output", "Memory image file.", "memory.data", false, arg.VarString, nil)
	opt.SetOption(arg.GroupDefault, "s", "steps", "Halt after this many instructions (0 = no limit).", 0, false, arg.VarInt, nil)
	opt.SetOption(arg.GroupDefault, "v", "verbose", "Log debug diagnostics.", false, false, arg.VarBool, nil)
	opt.SetPositional("OPERATION", "decode or simulate.", "", true, arg.VarString)
	opt.SetPositional("FILE", "Flat binary to load.", "", true, arg.VarString)

	if err := opt.Parse(normalizeArgs(args, log)); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		opt.PrintHelp()
		return exitUsage
	}
	if opt.GetBool("help") {
		opt.PrintHelp()
		return exitOK
	}
	if opt.GetBool("verbose") {
		log.SetLevel(logrus.DebugLevel)
	}

	operation := strings.ToLower(opt.GetPosString("OPERATION"))
	inputFile := opt.GetPosString("FILE")
	timing := opt.GetBool("time")

	code, err := os.ReadFile(inputFile)
	if err != nil {
		log.WithError(err).Error("reading input file")
		return exitUsage
	}

	switch operation {
	case "decode":
		return decode(code, timing, stdout, log)
	case "simulate":
		steps := opt.GetInt("steps")
		if steps < 0 {
			steps = 0
		}
		cfg := vm.Config{
			Timing:    timing,
			Trace:     stdout,
			StepLimit: uint64(steps),
			Log:       log,
		}
		var dumpTo string
		if opt.GetBool("dump") {
			dumpTo = opt.GetString("output")
		}
		return simulate(code, cfg, dumpTo, stdout, log)
	}

	log.WithField("operation", operation).Error("unknown operation; use decode or simulate")
	return exitUsage
}

// decode prints the listing, including everything decoded before a failure.
func decode(code []byte, timing bool, w io.Writer, log logrus.FieldLogger) int {
	text, err := disassembler.DisassembleText(code, disassembler.Options{Timing: timing})
	fmt.Fprint(w, text)
	if err != nil {
		log.WithError(err).Error("decoding stopped")
		return exitDecode
	}
	return exitOK
}

// simulate runs the program, prints the final state and optionally writes the memory image.
func simulate(code []byte, cfg vm.Config, dumpTo string, w io.Writer, log logrus.FieldLogger) int {
	v := vm.New(cfg)
	status := exitOK
	if err := v.LoadCode(code); err != nil {
		// The decoded prefix still runs; it halts where decoding stopped.
		status = exitDecode
	}

	fmt.Fprintln(w, "--- simulation ---")
	runErr := v.Run()
	fmt.Fprintln(w)
	if runErr != nil {
		fmt.Fprintf(w, "Halted (%s): %v\n", vm.Classify(runErr), runErr)
		if status == exitOK {
			status = exitHalt
		}
	}
	v.DumpRegisters(w)

	if dumpTo != "" {
		if err := writeSnapshot(v, dumpTo); err != nil {
			log.WithError(err).Error("writing memory image")
			return exitUsage
		}
		log.WithField("file", dumpTo).Info("memory image written")
	}
	return status
}

func writeSnapshot(v *vm.VM, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err := v.DumpMemory(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
