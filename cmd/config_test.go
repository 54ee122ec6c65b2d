package cmd

import (
	"bufio"
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zmimport/internal/config"
)

func newPrompter(input string) (*prompter, *bytes.Buffer) {
	var out bytes.Buffer
	return &prompter{r: bufio.NewReader(strings.NewReader(input)), w: &out}, &out
}

func TestSetupProfileNew(t *testing.T) {
	p, out := newPrompter("prod\nzos.example.com:2121\nibmuser\nsecret\n\n/data/zos\n")
	c := &config.Config{Profiles: map[string]*config.Profile{}}

	name, prof, makeDefault, err := setupProfile(p, c, nil)
	require.NoError(t, err)

	assert.Equal(t, "prod", name)
	assert.True(t, makeDefault)
	assert.Equal(t, &config.Profile{
		Host:         "zos.example.com",
		Port:         2121,
		User:         "ibmuser",
		Password:     "secret",
		HLQ:          "IBMUSER",
		WarehouseDir: "/data/zos",
	}, prof)
	assert.Contains(t, out.String(), "High level qualifier for ls [IBMUSER]")
}

func TestSetupProfileUpdateKeepsStoredValues(t *testing.T) {
	c := &config.Config{
		DefaultProfile: "prod",
		Profiles: map[string]*config.Profile{
			"prod": {Host: "prod.example.com", Port: 21, User: "U1", Password: "p1", HLQ: "U1"},
			"dev":  {Host: "dev.example.com", Port: 1021, User: "U2", Password: "p2", HLQ: "TEAM", WarehouseDir: "/w"},
		},
	}
	// every prompt answered with an empty line, then "y" for the default
	p, out := newPrompter("\n\n\n\n\ny\n")

	name, prof, makeDefault, err := setupProfile(p, c, []string{"dev"})
	require.NoError(t, err)

	assert.Equal(t, "dev", name)
	assert.True(t, makeDefault)
	assert.Equal(t, c.Profiles["dev"], prof)
	assert.Contains(t, out.String(), "[dev.example.com:1021]")
}

func TestSetupProfileRejectsIncompleteProfile(t *testing.T) {
	p, _ := newPrompter("zos.example.com\n\n\n")
	c := &config.Config{Profiles: map[string]*config.Profile{}}

	_, _, _, err := setupProfile(p, c, []string{"x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "user is required")
}

func TestPrintProfiles(t *testing.T) {
	c := &config.Config{
		DefaultProfile: "prod",
		Profiles: map[string]*config.Profile{
			"prod": {Host: "prod.example.com", Port: 21, User: "U1", Password: "hidden", HLQ: "U1"},
			"dev":  {Host: "dev.example.com", Port: 1021, User: "U2", Password: "hidden", WarehouseDir: "/w"},
		},
	}

	var out bytes.Buffer
	require.NoError(t, printProfiles(&out, c))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[1], "dev "))
	assert.Contains(t, lines[1], "dev.example.com:1021")
	assert.True(t, strings.HasPrefix(lines[2], "prod*"))
	assert.NotContains(t, out.String(), "hidden")
}
