package cmd

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"zmimport/internal/config"
	"zmimport/internal/connection"
	"zmimport/internal/mainframe"
	"zmimport/internal/options"
	"zmimport/internal/transfer"
)

var importSchema = options.MustImportSchema()

var importCmd = &cobra.Command{
	Use:   "import-mainframe",
	Short: "Import datasets from a mainframe server",
	Long: `Import a partitioned, sequential or GDG dataset from a mainframe
server into local files.

At minimum, you must specify --connect and --dataset. Without --connect the
host and credentials of the selected profile are used.

Examples:
  zmimport import-mainframe --dataset USERNAME.SOURCE
  zmimport import-mainframe --connect zos.example.com --username USER \
      --password PASS --dataset USER.DAILY --datasettype g -z
  zmimport import-mainframe --dataset USER.LOAD --as-binaryfile \
      --buffersize 1024 --ftp-commands "SITE RDW"`,
	Args: cobra.NoArgs,
	RunE: runImport,
}

func init() {
	importSchema.Bind(importCmd.Flags())
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	raw := options.Capture(importSchema, cmd.Flags())

	cfg, err := mainframe.Build(raw)
	if err != nil {
		return err
	}
	applyProfileDefaults(cfg, GetCurrentProfile)
	logConfiguration(cfg)

	t, err := resolveTarget(cfg.Base, GetCurrentProfile)
	if err != nil {
		return err
	}
	log.Infof("connecting to %s as %s", t.addr(), t.user)

	summary, err := transfer.New(afero.NewOsFs(), t.dialer(), log).Run(cmd.Context(), cfg)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Imported %d unit(s) of %s into %s (%d bytes, run %s)\n",
		len(summary.Units), cfg.DatasetName, summary.OutputDir, summary.Bytes, summary.RunID)
	for _, f := range summary.Files {
		fmt.Fprintln(out, f)
	}
	return nil
}

func logConfiguration(cfg *mainframe.ImportConfiguration) {
	log.WithFields(logrus.Fields{
		"manager": cfg.ConnManager,
		"tape":    cfg.DatasetOnTape,
		"mode":    cfg.TransferMode,
		"layout":  cfg.FileLayout,
	}).Debugf("Dataset type: %s", cfg.DatasetType)
	if cfg.Base.JobName != "" {
		log.Debugf("job name: %s", cfg.Base.JobName)
	}
	if cfg.Base.ValidateCopy {
		log.Debug("copied files will be validated")
	}
	if cfg.Base.JarFile != "" {
		log.Warnf("--jar-file %s has no effect on a mainframe import", cfg.Base.JarFile)
	}
}

// applyProfileDefaults fills the warehouse dir from the profile when no
// output location was given. A missing profile is not an error here.
func applyProfileDefaults(cfg *mainframe.ImportConfiguration, currentProfile func() (*config.Profile, error)) {
	if cfg.Base.TargetDir != "" || cfg.Base.WarehouseDir != "" {
		return
	}
	p, err := currentProfile()
	if err != nil || p.WarehouseDir == "" {
		return
	}
	log.Debugf("using warehouse dir %s from profile", p.WarehouseDir)
	cfg.Base.WarehouseDir = p.WarehouseDir
}

// target is the FTP server an import connects to.
type target struct {
	host     string
	port     int
	user     string
	password string
}

func (t target) addr() string {
	return connection.JoinAddress(t.host, t.port)
}

func (t target) dialer() transfer.Dialer {
	return func(ctx context.Context) (transfer.Session, error) {
		s, err := connection.DialSession(ctx, t.addr(), t.user, t.password)
		if err != nil {
			return nil, err
		}
		return s, nil
	}
}

// resolveTarget takes the server from --connect and the credentials from
// --username and --password, filling whatever is missing from the profile.
func resolveTarget(base mainframe.BaseOptions, currentProfile func() (*config.Profile, error)) (target, error) {
	var t target

	if base.Connect != "" {
		host, port, err := connection.ParseAddress(base.Connect, connection.DefaultPort)
		if err != nil {
			return t, fmt.Errorf("--connect: %w", err)
		}
		t.host, t.port = host, port
	}
	t.user = base.Username
	t.password = base.Password

	if t.host != "" && t.user != "" && t.password != "" {
		return t, nil
	}

	p, err := currentProfile()
	if err != nil {
		if t.host == "" {
			return t, fmt.Errorf("no --connect given and no profile available: %w", err)
		}
		return t, fmt.Errorf("--username and --password are required without a profile: %w", err)
	}

	if t.host == "" {
		t.host, t.port = p.Host, p.Port
		if t.port == 0 {
			t.port = config.DefaultPort
		}
	}
	if t.user == "" {
		t.user = p.User
	}
	if t.password == "" {
		t.password = p.Password
	}

	if t.host == "" {
		return t, fmt.Errorf("no mainframe host: use --connect or set host in the profile")
	}
	if t.user == "" || t.password == "" {
		return t, fmt.Errorf("no credentials: use --username and --password or set them in the profile")
	}
	return t, nil
}
