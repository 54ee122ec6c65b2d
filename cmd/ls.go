package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"zmimport/internal/connection"
)

var lsHLQ string

var lsCmd = &cobra.Command{
	Use:   "ls [dataset]",
	Short: "List datasets or members",
	Long: `List datasets matching a pattern, or members of a PDS.

Examples:
  zmimport ls                    # list datasets matching HLQ.*
  zmimport ls --hlq SYS1         # list datasets matching SYS1.*
  zmimport ls 'USERNAME.SOURCE'  # list members in PDS`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLs,
}

func init() {
	rootCmd.AddCommand(lsCmd)
	lsCmd.Flags().StringVar(&lsHLQ, "hlq", "", "high level qualifier to list (default: profile hlq)")
}

func runLs(cmd *cobra.Command, args []string) error {
	profile, err := GetCurrentProfile()
	if err != nil {
		return err
	}

	conn := connection.NewFTPConnection(profile.Host, profile.Port, profile.User, profile.Password)
	if err := conn.Connect(cmd.Context()); err != nil {
		return err
	}
	defer conn.Close()

	if len(args) == 0 {
		hlq := lsHLQ
		if hlq == "" {
			hlq = profile.HLQ
		}
		if hlq == "" {
			return fmt.Errorf("no high level qualifier: use --hlq or set hlq in the profile")
		}
		log.Debugf("listing datasets under %s", hlq)
		return listDatasets(cmd, conn, hlq)
	}

	return listMembers(cmd, conn, trimQuotes(args[0]))
}

func listDatasets(cmd *cobra.Command, c connection.Catalog, hlq string) error {
	datasets, err := c.ListDatasets(hlq)
	if err != nil {
		return err
	}
	for _, ds := range datasets {
		fmt.Fprintln(cmd.OutOrStdout(), ds)
	}
	return nil
}

func listMembers(cmd *cobra.Command, c connection.Catalog, dataset string) error {
	members, err := c.ListMembers(dataset)
	if err != nil {
		return err
	}
	if len(members) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No members found")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tVV.MM\tCHANGED\tSIZE\tID")
	for _, m := range members {
		fmt.Fprintf(w, "%s\t%02d.%02d\t%s\t%d\t%s\n", m.Name, m.VV, m.MM, m.Changed, m.Size, m.User)
	}
	return w.Flush()
}

func trimQuotes(s string) string {
	if len(s) >= 2 && s[0] == '\'' && s[len(s)-1] == '\'' {
		return s[1 : len(s)-1]
	}
	return s
}
