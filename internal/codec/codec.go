// Package codec maps compression codec names to writers.
package codec

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/s2"
	"github.com/klauspost/compress/zlib"
	"github.com/klauspost/compress/zstd"
)

// Default is used when compression is enabled without naming a codec.
const Default = "gzip"

type Codec struct {
	Name      string
	Extension string
	NewWriter func(w io.Writer) (io.WriteCloser, error)
}

var codecs = map[string]Codec{
	"gzip": {
		Name:      "gzip",
		Extension: ".gz",
		NewWriter: func(w io.Writer) (io.WriteCloser, error) {
			return gzip.NewWriter(w), nil
		},
	},
	"zstd": {
		Name:      "zstd",
		Extension: ".zst",
		NewWriter: func(w io.Writer) (io.WriteCloser, error) {
			return zstd.NewWriter(w)
		},
	},
	"snappy": {
		Name:      "snappy",
		Extension: ".snappy",
		NewWriter: func(w io.Writer) (io.WriteCloser, error) {
			return s2.NewWriter(w, s2.WriterSnappyCompat()), nil
		},
	},
	"deflate": {
		Name:      "deflate",
		Extension: ".deflate",
		NewWriter: func(w io.Writer) (io.WriteCloser, error) {
			return zlib.NewWriter(w), nil
		},
	},
}

// Hadoop codec class names accepted for compatibility with existing job scripts.
var aliases = map[string]string{
	"org.apache.hadoop.io.compress.gzipcodec":      "gzip",
	"org.apache.hadoop.io.compress.zstandardcodec": "zstd",
	"org.apache.hadoop.io.compress.snappycodec":    "snappy",
	"org.apache.hadoop.io.compress.defaultcodec":   "deflate",
	"org.apache.hadoop.io.compress.deflatecodec":   "deflate",
	"zstandard":                                    "zstd",
	"zlib":                                         "deflate",
}

// Lookup resolves a codec by short name or Hadoop class name, ignoring case.
func Lookup(name string) (Codec, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if alias, ok := aliases[key]; ok {
		key = alias
	}
	c, ok := codecs[key]
	if !ok {
		return Codec{}, fmt.Errorf("unknown compression codec: %s (supported: %s)", name, strings.Join(Names(), ", "))
	}
	return c, nil
}

// Names returns the short names of all codecs, sorted.
func Names() []string {
	names := make([]string, 0, len(codecs))
	for n := range codecs {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
