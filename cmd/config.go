package cmd

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"zmimport/internal/config"
	"zmimport/internal/connection"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage zmimport connection profiles",
}

var configSetupCmd = &cobra.Command{
	Use:   "setup [profile]",
	Short: "Create or update a profile",
	Long: `Interactive setup of a connection profile. Running it for an existing
profile offers the stored values as defaults; an empty password keeps the
stored one.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runConfigSetup,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "List profiles",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configSetupCmd)
	configCmd.AddCommand(configShowCmd)
}

func runConfigSetup(cmd *cobra.Command, args []string) error {
	existing, err := config.Load(cfgFile)
	if err != nil {
		log.Debugf("starting a new config: %v", err)
		existing = &config.Config{Profiles: make(map[string]*config.Profile)}
	}

	p := &prompter{r: bufio.NewReader(cmd.InOrStdin()), w: cmd.OutOrStdout()}
	name, prof, makeDefault, err := setupProfile(p, existing, args)
	if err != nil {
		return err
	}

	existing.Profiles[name] = prof
	if makeDefault {
		existing.DefaultProfile = name
	}
	if err := existing.Save(cfgFile); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	path, _ := config.Path(cfgFile)
	fmt.Fprintf(cmd.OutOrStdout(), "\nSaved profile %s to %s (default: %s)\n", name, path, existing.DefaultProfile)
	return nil
}

// setupProfile asks for every profile field. Values of an existing profile
// with the same name are offered as defaults.
func setupProfile(p *prompter, c *config.Config, args []string) (string, *config.Profile, bool, error) {
	name := "default"
	if len(args) > 0 {
		name = args[0]
	} else {
		name = p.ask("Profile name", name)
	}

	old, ok := c.Profiles[name]
	if !ok {
		old = &config.Profile{Port: config.DefaultPort}
	}
	prof := &config.Profile{}

	server := old.Host
	if server != "" && old.Port != config.DefaultPort {
		server = connection.JoinAddress(old.Host, old.Port)
	}
	host, port, err := connection.ParseAddress(p.ask("Mainframe host[:port]", server), config.DefaultPort)
	if err != nil {
		return "", nil, false, err
	}
	prof.Host, prof.Port = host, port

	prof.User = p.ask("Username", old.User)
	prof.Password = p.ask("Password (blank keeps the stored one)", "")
	if prof.Password == "" {
		prof.Password = old.Password
	}

	hlq := old.HLQ
	if hlq == "" {
		hlq = strings.ToUpper(prof.User)
	}
	prof.HLQ = strings.ToUpper(p.ask("High level qualifier for ls", hlq))
	prof.WarehouseDir = p.ask("Default warehouse dir for imports (optional)", old.WarehouseDir)

	if err := prof.Validate(); err != nil {
		return "", nil, false, err
	}

	makeDefault := c.DefaultProfile == "" || c.DefaultProfile == name
	if !makeDefault {
		answer := p.ask(fmt.Sprintf("Make '%s' the default profile instead of '%s'? (y/n)", name, c.DefaultProfile), "n")
		makeDefault = strings.EqualFold(answer, "y")
	}
	return name, prof, makeDefault, nil
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	c, err := GetConfig()
	if err != nil {
		return err
	}
	return printProfiles(cmd.OutOrStdout(), c)
}

func printProfiles(out io.Writer, c *config.Config) error {
	names := make([]string, 0, len(c.Profiles))
	for n := range c.Profiles {
		names = append(names, n)
	}
	sort.Strings(names)

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PROFILE\tSERVER\tUSER\tHLQ\tWAREHOUSE")
	for _, n := range names {
		p := c.Profiles[n]
		marker := ""
		if n == c.DefaultProfile {
			marker = "*"
		}
		fmt.Fprintf(w, "%s%s\t%s\t%s\t%s\t%s\n", n, marker, connection.JoinAddress(p.Host, p.Port), p.User, p.HLQ, p.WarehouseDir)
	}
	return w.Flush()
}

type prompter struct {
	r *bufio.Reader
	w io.Writer
}

// ask prints label and returns the trimmed answer, or def on an empty line.
// The password is read like any other answer, so it echoes.
func (p *prompter) ask(label, def string) string {
	if def != "" {
		fmt.Fprintf(p.w, "%s [%s]: ", label, def)
	} else {
		fmt.Fprintf(p.w, "%s: ", label)
	}

	input, _ := p.r.ReadString('\n')
	if input = strings.TrimSpace(input); input == "" {
		return def
	}
	return input
}
