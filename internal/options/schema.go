// Package options declares the command-line options recognized by
// import-mainframe and captures the values a user supplied for them.
package options

import (
	"fmt"

	om "github.com/cevaris/ordered_map"
	"github.com/spf13/pflag"
)

// Option is a single recognized command-line option.
type Option struct {
	Name        string // long name, without leading dashes
	Short       string // optional single character alias
	ArgName     string // placeholder shown in help, only for options taking a value
	HasArg      bool
	Description string
	Group       string
}

// Schema is an ordered registry of options keyed by long name.
type Schema struct {
	options *om.OrderedMap
	shorts  map[string]string
}

func NewSchema() *Schema {
	return &Schema{
		options: om.NewOrderedMap(),
		shorts:  make(map[string]string),
	}
}

// Add registers opt. Registering a long or short name twice is an error.
func (s *Schema) Add(opt Option) error {
	if opt.Name == "" {
		return fmt.Errorf("option name cannot be empty")
	}
	if _, ok := s.options.Get(opt.Name); ok {
		return fmt.Errorf("option --%s registered twice", opt.Name)
	}
	if opt.Short != "" {
		if len(opt.Short) != 1 {
			return fmt.Errorf("option --%s: short alias %q must be a single character", opt.Name, opt.Short)
		}
		if other, ok := s.shorts[opt.Short]; ok {
			return fmt.Errorf("option --%s: short alias -%s already used by --%s", opt.Name, opt.Short, other)
		}
		s.shorts[opt.Short] = opt.Name
	}
	s.options.Set(opt.Name, opt)
	return nil
}

// Lookup returns the option registered under name.
func (s *Schema) Lookup(name string) (Option, bool) {
	v, ok := s.options.Get(name)
	if !ok {
		return Option{}, false
	}
	return v.(Option), true
}

// Options returns every registered option in registration order.
func (s *Schema) Options() []Option {
	opts := make([]Option, 0, s.options.Len())
	iter := s.options.IterFunc()
	for kv, ok := iter(); ok; kv, ok = iter() {
		opts = append(opts, kv.Value.(Option))
	}
	return opts
}

func (s *Schema) Len() int {
	return s.options.Len()
}

// Bind registers every option on fs. Options taking a value become string
// flags, the rest become bool flags. The option group is kept as a flag
// annotation.
func (s *Schema) Bind(fs *pflag.FlagSet) {
	for _, opt := range s.Options() {
		desc := opt.Description
		if opt.HasArg {
			if opt.ArgName != "" {
				desc = fmt.Sprintf("%s (<%s>)", desc, opt.ArgName)
			}
			fs.StringP(opt.Name, opt.Short, "", desc)
		} else {
			fs.BoolP(opt.Name, opt.Short, false, desc)
		}
		if opt.Group != "" {
			_ = fs.SetAnnotation(opt.Name, GroupAnnotation, []string{opt.Group})
		}
	}
}

// GroupAnnotation is the pflag annotation key holding an option's group.
const GroupAnnotation = "zmimport_group"
