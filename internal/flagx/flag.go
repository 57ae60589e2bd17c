// Package flagx contains helpers for components that share os.Args but
// each parse only their own flags.
package flagx

import (
	"flag"
	"io"
	"strings"
)

// FilterArgs keeps only the allowed flags from args, together with their
// values. Both "-f value" and "-f=value" forms are recognised; a token that
// starts with "-" is never consumed as a value. The result is never nil.
func FilterArgs(args []string, allowedFlags []string) []string {
	allowed := make(map[string]struct{}, len(allowedFlags))
	for _, f := range allowedFlags {
		allowed[f] = struct{}{}
	}

	filtered := make([]string, 0, len(args))

	for i := 0; i < len(args); i++ {
		arg := args[i]

		if name, _, ok := strings.Cut(arg, "="); ok && strings.HasPrefix(arg, "-") {
			if _, ok := allowed[name]; ok {
				filtered = append(filtered, arg)
			}
			continue
		}

		if _, ok := allowed[arg]; !ok {
			continue
		}
		filtered = append(filtered, arg)
		if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
			filtered = append(filtered, args[i+1])
			i++
		}
	}

	return filtered
}

// StringFlag extracts a single string flag, accepted under any of names,
// from args. Unrelated flags are ignored; def is returned when none of
// the names is present or the value is missing.
func StringFlag(args []string, def string, names ...string) string {
	allowed := make([]string, 0, len(names))
	for _, n := range names {
		allowed = append(allowed, "-"+n)
	}

	value := def

	fs := flag.NewFlagSet("flagx", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	for _, n := range names {
		fs.StringVar(&value, n, def, "")
	}
	if err := fs.Parse(FilterArgs(args, allowed)); err != nil {
		return def
	}

	return value
}

// ConfigFilePath returns the JSON config path given via -c or -config,
// or "" when none was given.
func ConfigFilePath(args []string) string {
	return StringFlag(args, "", "c", "config")
}

// EnvFilePath returns the dotenv file given via -env, defaulting to ".env".
func EnvFilePath(args []string) string {
	return StringFlag(args, ".env", "env")
}
