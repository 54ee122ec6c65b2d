package mainframe

import (
	"strconv"
	"strings"

	"zmimport/internal/options"
)

var schema = options.MustImportSchema()

// Resolve fills every field of an ImportConfiguration from raw, applying
// defaults for absent options. Only malformed boolean or integer literals
// fail here; everything else is left for Validate.
func Resolve(raw options.RawOptions) (*ImportConfiguration, error) {
	if v, ok := raw.Value(options.NumMappers); ok {
		if _, err := strconv.Atoi(v); err != nil {
			return nil, malformed(options.NumMappers, v, err)
		}
	}

	base, err := decodeBase(raw)
	if err != nil {
		return nil, err
	}

	cfg := &ImportConfiguration{
		ConnManager: base.ConnManager,
		DatasetType: DefaultDatasetType,
		Base:        base,
	}

	if !raw.Has(options.ConnManager) {
		cfg.ConnManager = DefaultConnManager
	}

	if v, ok := raw.Value(options.Dataset); ok {
		cfg.DatasetName = v
	}

	if v, ok := raw.Value(options.DatasetType); ok {
		cfg.DatasetType = ParseDatasetType(v)
	}

	if v, ok := raw.Value(options.Tape); ok {
		tape, err := parseTape(v)
		if err != nil {
			return nil, err
		}
		cfg.DatasetOnTape = tape
	}

	// transfer mode and file layout always move together
	if raw.Has(options.AsBinaryFile) {
		cfg.TransferMode = Binary
		cfg.FileLayout = BinaryFile
	} else {
		cfg.TransferMode = Ascii
		cfg.FileLayout = TextFile
	}

	cfg.BufferSize = DefaultBufferSize
	if v, ok := raw.Value(options.BufferSize); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, malformed(options.BufferSize, v, err)
		}
		// non-positive sizes fall back to the default instead of failing
		if n > 0 {
			cfg.BufferSize = n
		}
	}

	if v, ok := raw.Value(options.FTPCommands); ok {
		cfg.FTPCommands = strings.Split(v, ",")
	}

	return cfg, nil
}

func parseTape(v string) (bool, error) {
	switch {
	case strings.EqualFold(v, "true"):
		return true, nil
	case strings.EqualFold(v, "false"):
		return false, nil
	}
	return false, optionError(MalformedPrimitive, options.Tape, "specified is invalid (%q is not true or false)", v)
}

func malformed(option, value string, err error) *OptionError {
	e := optionError(MalformedPrimitive, option, "specified is invalid (%q is not a number)", value)
	e.Err = err
	return e
}
