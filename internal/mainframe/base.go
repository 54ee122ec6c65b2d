package mainframe

import (
	"fmt"

	"github.com/mitchellh/mapstructure"

	"zmimport/internal/codec"
	"zmimport/internal/options"
)

// BaseOptions are the generic import options. They are copied from the raw
// option set without interpretation and validated by Validate.
type BaseOptions struct {
	Connect          string `mapstructure:"connect"`
	Username         string `mapstructure:"username"`
	Password         string `mapstructure:"password"`
	ConnManager      string `mapstructure:"connection-manager"`
	DeleteTargetDir  bool   `mapstructure:"delete-target-dir"`
	TargetDir        string `mapstructure:"target-dir"`
	WarehouseDir     string `mapstructure:"warehouse-dir"`
	AsTextFile       bool   `mapstructure:"as-textfile"`
	AsBinaryFile     bool   `mapstructure:"as-binaryfile"`
	ValidateCopy     bool   `mapstructure:"validate"`
	NumMappers       int    `mapstructure:"num-mappers"`
	JobName          string `mapstructure:"mapreduce-job-name"`
	Compress         bool   `mapstructure:"compress"`
	CompressionCodec string `mapstructure:"compression-codec"`
	JarFile          string `mapstructure:"jar-file"`
}

// mainframe options are resolved by Resolve, not copied into BaseOptions.
var ownedOptions = map[string]bool{
	options.Dataset:     true,
	options.DatasetType: true,
	options.Tape:        true,
	options.BufferSize:  true,
	options.FTPCommands: true,
}

func decodeBase(raw options.RawOptions) (BaseOptions, error) {
	input := make(map[string]interface{}, len(raw))
	for name, value := range raw {
		if ownedOptions[name] {
			continue
		}
		opt, ok := schema.Lookup(name)
		if !ok {
			continue
		}
		if opt.HasArg {
			input[name] = value
		} else {
			input[name] = true
		}
	}

	var base BaseOptions
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           &base,
	})
	if err != nil {
		return BaseOptions{}, err
	}
	if err := dec.Decode(input); err != nil {
		return BaseOptions{}, fmt.Errorf("cannot decode import options: %w", err)
	}
	return base, nil
}

// CompressionEnabled reports whether output files are compressed.
func (b BaseOptions) CompressionEnabled() bool {
	return b.Compress || b.CompressionCodec != ""
}

// Codec returns the compression codec, or false when compression is off.
func (b BaseOptions) Codec() (codec.Codec, bool, error) {
	if !b.CompressionEnabled() {
		return codec.Codec{}, false, nil
	}
	name := b.CompressionCodec
	if name == "" {
		name = codec.Default
	}
	c, err := codec.Lookup(name)
	if err != nil {
		return codec.Codec{}, false, err
	}
	return c, true, nil
}

// Validate checks the generic import options.
func (b BaseOptions) Validate() error {
	if b.TargetDir != "" && b.WarehouseDir != "" {
		return optionError(IncompatibleOptionCombination, options.TargetDir,
			"with --%s are incompatible options", options.WarehouseDir)
	}
	if b.AsTextFile && b.AsBinaryFile {
		return optionError(IncompatibleOptionCombination, options.AsTextFile,
			"with --%s are incompatible options", options.AsBinaryFile)
	}
	if _, _, err := b.Codec(); err != nil {
		e := optionError(InvalidEnumValue, options.CompressionCodec, "specified is invalid (%s)", b.CompressionCodec)
		e.Err = err
		return e
	}
	return nil
}
