package mainframe

import (
	"zmimport/internal/options"
)

// Validate checks the rules spanning several fields of cfg. The first
// failing rule is reported; cfg is never modified.
//
// A separate "binary layout needs a dataset name" rule is not checked: the
// unconditional dataset rule below already covers it. The tape flag needs no
// check either since Resolve rejects anything but true or false.
func Validate(cfg *ImportConfiguration) error {
	if cfg.DatasetName == "" {
		return optionError(MissingRequiredOption, options.Dataset, "is required for mainframe import")
	}

	if !cfg.DatasetType.Valid() {
		return optionError(InvalidEnumValue, options.DatasetType, "specified is invalid (%q)", string(cfg.DatasetType))
	}

	if cfg.BufferSize != DefaultBufferSize && cfg.FileLayout != BinaryFile {
		return optionError(IncompatibleOptionCombination, options.BufferSize,
			"should only be used with --%s parameter", options.AsBinaryFile)
	}

	return cfg.Base.Validate()
}

// Build resolves and validates raw in one step.
func Build(raw options.RawOptions) (*ImportConfiguration, error) {
	cfg, err := Resolve(raw)
	if err != nil {
		return nil, err
	}
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
