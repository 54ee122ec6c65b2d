// Package mainframe turns the raw options of an import-mainframe invocation
// into a validated ImportConfiguration.
package mainframe

import (
	"fmt"
	"strings"
)

const (
	// DefaultBufferSize is the binary transfer buffer size in bytes.
	DefaultBufferSize = 32768

	// DefaultDatasetType applies when --datasettype is absent.
	DefaultDatasetType = Partitioned

	// DefaultConnManager identifies the built-in mainframe connection manager.
	DefaultConnManager = "zmimport.MainframeManager"

	// HelpStr is appended to every option error.
	HelpStr = "Try --help for usage instructions."
)

// DatasetType is the organization of the dataset being imported.
type DatasetType string

const (
	Partitioned DatasetType = "p"
	Sequential  DatasetType = "s"
	GDG         DatasetType = "g"
)

// ParseDatasetType canonicalizes the long and short spellings of a dataset
// type. Unrecognized input is returned unchanged so that Validate can report it.
func ParseDatasetType(s string) DatasetType {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "p", "partitioned", "pds":
		return Partitioned
	case "s", "sequential", "seq":
		return Sequential
	case "g", "gdg":
		return GDG
	}
	return DatasetType(s)
}

func (t DatasetType) Valid() bool {
	switch t {
	case Partitioned, Sequential, GDG:
		return true
	}
	return false
}

func (t DatasetType) String() string {
	switch t {
	case Partitioned:
		return "partitioned"
	case Sequential:
		return "sequential"
	case GDG:
		return "gdg"
	}
	return fmt.Sprintf("unknown(%s)", string(t))
}

// TransferMode is the FTP transfer type.
type TransferMode int

const (
	Ascii TransferMode = iota
	Binary
)

func (m TransferMode) String() string {
	if m == Binary {
		return "binary"
	}
	return "ascii"
}

// FileLayout is the representation written to the target directory.
type FileLayout int

const (
	TextFile FileLayout = iota
	BinaryFile
)

func (l FileLayout) String() string {
	if l == BinaryFile {
		return "binaryfile"
	}
	return "textfile"
}

// ImportConfiguration is the resolved import-mainframe configuration handed
// to the transfer engine. It must not be modified after Validate succeeds.
type ImportConfiguration struct {
	ConnManager   string
	DatasetName   string
	DatasetType   DatasetType
	DatasetOnTape bool
	TransferMode  TransferMode
	FileLayout    FileLayout
	BufferSize    int
	FTPCommands   []string

	Base BaseOptions
}
