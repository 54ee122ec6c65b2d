package mainframe

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zmimport/internal/options"
)

func TestResolveDefaults(t *testing.T) {
	cfg, err := Resolve(options.RawOptions{options.Dataset: "MY.PDS"})
	require.NoError(t, err)

	want := &ImportConfiguration{
		ConnManager:   DefaultConnManager,
		DatasetName:   "MY.PDS",
		DatasetType:   Partitioned,
		DatasetOnTape: false,
		TransferMode:  Ascii,
		FileLayout:    TextFile,
		BufferSize:    DefaultBufferSize,
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("Resolve() mismatch (-want +got):\n%s", diff)
	}
}

func TestResolveConnManager(t *testing.T) {
	cfg, err := Resolve(options.RawOptions{options.ConnManager: "com.example.CustomManager"})
	require.NoError(t, err)
	assert.Equal(t, "com.example.CustomManager", cfg.ConnManager)
	assert.Equal(t, "com.example.CustomManager", cfg.Base.ConnManager)
}

func TestResolveDatasetType(t *testing.T) {
	tests := []struct {
		raw  string
		want DatasetType
	}{
		{"p", Partitioned},
		{"s", Sequential},
		{"g", GDG},
		{"G", GDG},
		{"sequential", Sequential},
		{"PDS", Partitioned},
		{"x", DatasetType("x")},
		{"", DatasetType("")},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			cfg, err := Resolve(options.RawOptions{options.DatasetType: tt.raw})
			require.NoError(t, err)
			assert.Equal(t, tt.want, cfg.DatasetType)
		})
	}
}

func TestResolveTape(t *testing.T) {
	tests := []struct {
		value   string
		want    bool
		wantErr bool
	}{
		{value: "true", want: true},
		{value: "TRUE", want: true},
		{value: "True", want: true},
		{value: "false"},
		{value: "FALSE"},
		{value: "maybe", wantErr: true},
		{value: "1", wantErr: true},
		{value: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			cfg, err := Resolve(options.RawOptions{options.Dataset: "MY.SEQ", options.Tape: tt.value})
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrMalformedPrimitive), "got %v", err)
				assert.Contains(t, err.Error(), "--tape")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, cfg.DatasetOnTape)
		})
	}
}

func TestResolveTransferModeFollowsBinaryFlag(t *testing.T) {
	cfg, err := Resolve(options.RawOptions{options.AsBinaryFile: ""})
	require.NoError(t, err)
	assert.Equal(t, Binary, cfg.TransferMode)
	assert.Equal(t, BinaryFile, cfg.FileLayout)
	assert.True(t, cfg.Base.AsBinaryFile)

	cfg, err = Resolve(options.RawOptions{})
	require.NoError(t, err)
	assert.Equal(t, Ascii, cfg.TransferMode)
	assert.Equal(t, TextFile, cfg.FileLayout)
}

func TestResolveBufferSize(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		present bool
		want    int
		wantErr bool
	}{
		{name: "absent", want: DefaultBufferSize},
		{name: "positive", value: "1024", present: true, want: 1024},
		{name: "large", value: "1048576", present: true, want: 1048576},
		{name: "zero falls back", value: "0", present: true, want: DefaultBufferSize},
		{name: "negative falls back", value: "-5", present: true, want: DefaultBufferSize},
		{name: "not a number", value: "32k", present: true, wantErr: true},
		{name: "empty", value: "", present: true, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := options.RawOptions{options.AsBinaryFile: "true"}
			if tt.present {
				raw[options.BufferSize] = tt.value
			}
			cfg, err := Resolve(raw)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrMalformedPrimitive), "got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, cfg.BufferSize)
		})
	}
}

func TestResolveFTPCommands(t *testing.T) {
	tests := []struct {
		value string
		want  []string
	}{
		{"SITE FTP,QUOTE SITE", []string{"SITE FTP", "QUOTE SITE"}},
		{"SITE RDW", []string{"SITE RDW"}},
		{"SITE A,,SITE A", []string{"SITE A", "", "SITE A"}},
		{"SITE B,", []string{"SITE B", ""}},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			cfg, err := Resolve(options.RawOptions{options.FTPCommands: tt.value})
			require.NoError(t, err)
			assert.Equal(t, tt.want, cfg.FTPCommands)
		})
	}

	cfg, err := Resolve(options.RawOptions{})
	require.NoError(t, err)
	assert.Empty(t, cfg.FTPCommands)
}

func TestResolvePassThrough(t *testing.T) {
	raw := options.RawOptions{
		options.Dataset:          "MY.PDS",
		options.Connect:          "zos.example.com:2121",
		options.TargetDir:        "/data/import",
		options.DeleteTargetDir:  "",
		options.NumMappers:       "8",
		options.JobName:          "nightly",
		options.Compress:         "true",
		options.CompressionCodec: "zstd",
		options.JarFile:          "records.jar",
	}
	cfg, err := Resolve(raw)
	require.NoError(t, err)

	want := BaseOptions{
		Connect:          "zos.example.com:2121",
		TargetDir:        "/data/import",
		DeleteTargetDir:  true,
		NumMappers:       8,
		JobName:          "nightly",
		Compress:         true,
		CompressionCodec: "zstd",
		JarFile:          "records.jar",
	}
	if diff := cmp.Diff(want, cfg.Base); diff != "" {
		t.Errorf("Base mismatch (-want +got):\n%s", diff)
	}
}

func TestResolveMalformedNumMappers(t *testing.T) {
	_, err := Resolve(options.RawOptions{options.NumMappers: "four"})
	require.Error(t, err)

	var optErr *OptionError
	require.True(t, errors.As(err, &optErr))
	assert.Equal(t, MalformedPrimitive, optErr.Kind)
	assert.Equal(t, options.NumMappers, optErr.Option)
}
