package main

import (
	"strings"

	"github.com/sirupsen/logrus"
)

// Bare words the tool has always accepted as options.
var bareOptions = map[string]string{
	"dump": "--dump",
	"time": "--time",
}

// Flags understood by the parser, and whether they take a value.
var knownFlags = map[string]bool{
	"-t": false, "--time": false,
	"-d": false, "--dump": false,
	"-v": false, "--verbose": false,
	"-h": false, "--help": false,
	"-o": true, "--output": true,
	"-s": true, "--steps": true,
}

// normalizeArgs turns bare option words into flags and drops anything the
// parser would reject. The first two remaining words are the operation and
// the file; extra words are reported and ignored.
func normalizeArgs(args []string, log logrus.FieldLogger) []string {
	var out []string
	positionals := 0
	for i := 0; i < len(args); i++ {
		a := args[i]
		if flag, ok := bareOptions[strings.ToLower(a)]; ok {
			out = append(out, flag)
			continue
		}

		if strings.HasPrefix(a, "-") && len(a) > 1 {
			name, _, hasValue := strings.Cut(a, "=")
			takesValue, ok := knownFlags[name]
			if !ok {
				log.WithField("option", a).Warn("unknown option ignored")
				continue
			}
			out = append(out, a)
			if takesValue && !hasValue && i+1 < len(args) {
				i++
				out = append(out, args[i])
			}
			continue
		}

		if positionals == 2 {
			log.WithField("option", a).Warn("unknown option ignored")
			continue
		}
		positionals++
		out = append(out, a)
	}
	return out
}
