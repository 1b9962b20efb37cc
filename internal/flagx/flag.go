// Package flagx lets several flag parsers share os.Args: each layer picks
// out only the flags it owns.
package flagx

import (
	"flag"
	"os"
	"strings"
)

// name returns the flag name of arg without dashes and value, or "" when
// arg is not a flag. The flag package accepts both -x and --x.
func name(arg string) string {
	if len(arg) < 2 || arg[0] != '-' {
		return ""
	}
	n := strings.TrimPrefix(strings.TrimPrefix(arg, "-"), "-")
	if i := strings.IndexByte(n, '='); i >= 0 {
		n = n[:i]
	}
	return n
}

// FilterArgs keeps the allowed flags of args together with their values,
// given either as "-f value" or "-f=value". Allowed names may be written
// with or without leading dashes. Parsing stops at "--".
func FilterArgs(args []string, allowed ...string) []string {
	keep := make(map[string]bool, len(allowed))
	for _, f := range allowed {
		keep[name("-"+strings.TrimLeft(f, "-"))] = true
	}

	filtered := make([]string, 0, len(args))

	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			break
		}

		n := name(arg)
		if n == "" || !keep[n] {
			continue
		}
		filtered = append(filtered, arg)

		if strings.Contains(arg, "=") {
			continue
		}
		// separate value
		if i+1 < len(args) && name(args[i+1]) == "" {
			filtered = append(filtered, args[i+1])
			i++
		}
	}

	return filtered
}

// ConfigPath returns the JSON config file named by -c or -config in args,
// falling back to the envVar environment variable.
func ConfigPath(args []string, envVar string) string {
	var config string

	fs := flag.NewFlagSet("config", flag.ContinueOnError)
	fs.SetOutput(nopWriter{})
	fs.StringVar(&config, "config", "", "Path to config file")
	fs.StringVar(&config, "c", "", "Path to config file (short)")
	_ = fs.Parse(FilterArgs(args, "c", "config"))

	if config == "" && envVar != "" {
		config = os.Getenv(envVar)
	}
	return config
}

type nopWriter struct{}

func (nopWriter) Write(p []byte) (int, error) { return len(p), nil }
