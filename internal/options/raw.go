package options

import "github.com/spf13/pflag"

// RawOptions maps a long option name to the value the user supplied.
// A key is present only when the option appeared on the command line;
// options that take no value map to "" or "true".
type RawOptions map[string]string

// Has reports whether name was supplied.
func (r RawOptions) Has(name string) bool {
	_, ok := r[name]
	return ok
}

// Value returns the supplied value of name and whether it was supplied.
func (r RawOptions) Value(name string) (string, bool) {
	v, ok := r[name]
	return v, ok
}

// Capture collects the schema options that were set on fs. A bool flag
// explicitly set to false counts as absent.
func Capture(s *Schema, fs *pflag.FlagSet) RawOptions {
	raw := make(RawOptions)
	fs.Visit(func(f *pflag.Flag) {
		opt, ok := s.Lookup(f.Name)
		if !ok {
			return
		}
		if !opt.HasArg && f.Value.String() != "true" {
			return
		}
		raw[f.Name] = f.Value.String()
	})
	return raw
}
