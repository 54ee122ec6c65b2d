// Package transfer copies mainframe datasets described by a validated
// ImportConfiguration into a target directory.
package transfer

import (
	"bufio"
	"context"
	"crypto/rand"
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"

	"zmimport/internal/mainframe"
)

// DefaultNumMappers is the worker count used when --num-mappers is absent.
const DefaultNumMappers = 4

// maxRecordLength bounds a single text record.
const maxRecordLength = 1 << 20

// Session is an FTP control session able to send raw commands.
type Session interface {
	Quote(command string) (string, error)
	SetBinary(binary bool) error
	ChangeDir(dir string) error
	NameList(ctx context.Context, arg string) ([]string, error)
	Retrieve(ctx context.Context, path string, fn func(io.Reader) error) error
	Close() error
}

// Dialer opens a new logged-in session.
type Dialer func(ctx context.Context) (Session, error)

type Engine struct {
	fs   afero.Fs
	dial Dialer
	log  *logrus.Entry
	now  func() time.Time
}

func New(fs afero.Fs, dial Dialer, log *logrus.Entry) *Engine {
	return &Engine{
		fs:   fs,
		dial: dial,
		log:  log,
		now:  time.Now,
	}
}

// Summary describes a finished import.
type Summary struct {
	RunID     string
	OutputDir string
	Units     []string
	Files     []string
	Bytes     int64
}

// unit is one retrievable piece of a dataset: a PDS member, a sequential
// dataset or a GDG generation.
type unit struct {
	name string
	path string
}

// Run imports the dataset described by cfg.
func (e *Engine) Run(ctx context.Context, cfg *mainframe.ImportConfiguration) (*Summary, error) {
	runID := ulid.MustNew(ulid.Timestamp(e.now()), rand.Reader).String()
	log := e.log.WithFields(logrus.Fields{
		"run":     runID,
		"dataset": cfg.DatasetName,
	})

	c, compress, err := cfg.Base.Codec()
	if err != nil {
		return nil, err
	}

	outDir := OutputDir(cfg)
	if err := e.prepareOutput(outDir, cfg.Base.DeleteTargetDir, log); err != nil {
		return nil, err
	}

	log.WithFields(logrus.Fields{
		"type":   cfg.DatasetType,
		"tape":   cfg.DatasetOnTape,
		"mode":   cfg.TransferMode,
		"layout": cfg.FileLayout,
	}).Info("discovering dataset")

	units, err := e.discover(ctx, cfg, log)
	if err != nil {
		return nil, err
	}

	summary := &Summary{RunID: runID, OutputDir: outDir}
	for _, u := range units {
		summary.Units = append(summary.Units, u.name)
	}
	if len(units) == 0 {
		log.Warn("dataset has nothing to import")
		return summary, nil
	}

	chunks := split(units, workerCount(cfg, len(units)))
	log.WithField("workers", len(chunks)).Infof("importing %d unit(s)", len(units))

	parts := make([]part, len(chunks))
	g, gctx := errgroup.WithContext(ctx)
	for i, chunk := range chunks {
		i, chunk := i, chunk
		g.Go(func() error {
			w := worker{
				engine: e,
				cfg:    cfg,
				index:  i,
				units:  chunk,
				outDir: outDir,
				runID:  runID,
				log:    log.WithField("worker", i),
			}
			if compress {
				w.codec = &c
			}
			p, err := w.run(gctx)
			if err != nil {
				return fmt.Errorf("worker %d: %w", i, err)
			}
			parts[i] = p
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		e.discard(parts, log)
		return nil, err
	}
	if err := e.publish(parts, log); err != nil {
		return nil, err
	}
	if cfg.Base.ValidateCopy {
		if err := e.verify(parts); err != nil {
			return nil, err
		}
		log.Info("validated copied files")
	}

	for _, p := range parts {
		summary.Files = append(summary.Files, p.file)
		summary.Bytes += p.bytes
	}
	log.WithField("bytes", summary.Bytes).Infof("import finished into %s", outDir)
	return summary, nil
}

// discard removes the temporary files of a failed run, so a retry finds the
// output directory as it was.
func (e *Engine) discard(parts []part, log *logrus.Entry) {
	for _, p := range parts {
		if p.tmp == "" {
			continue
		}
		if err := e.fs.Remove(p.tmp); err != nil {
			log.WithError(err).Warnf("cannot remove %s", p.tmp)
		}
	}
}

// publish renames every part to its final name. If one rename fails the
// parts already published are removed again.
func (e *Engine) publish(parts []part, log *logrus.Entry) error {
	for i, p := range parts {
		if err := e.fs.Rename(p.tmp, p.file); err != nil {
			for _, done := range parts[:i] {
				e.fs.Remove(done.file)
			}
			e.discard(parts[i:], log)
			return fmt.Errorf("cannot move %s into place: %w", p.file, err)
		}
	}
	return nil
}

// verify checks that every published file holds exactly the bytes its
// worker wrote.
func (e *Engine) verify(parts []part) error {
	for _, p := range parts {
		fi, err := e.fs.Stat(p.file)
		if err != nil {
			return fmt.Errorf("validation failed: %w", err)
		}
		if fi.Size() != p.stored {
			return fmt.Errorf("validation failed: %s has %d bytes, expected %d", p.file, fi.Size(), p.stored)
		}
	}
	return nil
}

// OutputDir is the directory an import writes to: --target-dir, else the
// dataset name under --warehouse-dir, else the dataset name.
func OutputDir(cfg *mainframe.ImportConfiguration) string {
	if cfg.Base.TargetDir != "" {
		return cfg.Base.TargetDir
	}
	name := datasetName(cfg)
	if cfg.Base.WarehouseDir != "" {
		return filepath.Join(cfg.Base.WarehouseDir, name)
	}
	return name
}

func (e *Engine) prepareOutput(dir string, deleteExisting bool, log *logrus.Entry) error {
	exists, err := afero.DirExists(e.fs, dir)
	if err != nil {
		return fmt.Errorf("cannot stat output directory %s: %w", dir, err)
	}
	if exists {
		if deleteExisting {
			log.Infof("deleting existing output directory %s", dir)
			if err := e.fs.RemoveAll(dir); err != nil {
				return fmt.Errorf("cannot delete output directory %s: %w", dir, err)
			}
		} else {
			empty, err := afero.IsEmpty(e.fs, dir)
			if err != nil {
				return fmt.Errorf("cannot read output directory %s: %w", dir, err)
			}
			if !empty {
				return fmt.Errorf("output directory %s already exists", dir)
			}
		}
	}
	if err := e.fs.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("cannot create output directory %s: %w", dir, err)
	}
	return nil
}

func (e *Engine) discover(ctx context.Context, cfg *mainframe.ImportConfiguration, log *logrus.Entry) ([]unit, error) {
	s, err := e.dial(ctx)
	if err != nil {
		return nil, err
	}
	defer s.Close()

	if err := applyCommands(s, cfg.FTPCommands, log); err != nil {
		return nil, err
	}

	dsn := datasetName(cfg)
	switch cfg.DatasetType {
	case mainframe.Partitioned:
		if err := s.ChangeDir(quote(dsn)); err != nil {
			return nil, err
		}
		members, err := s.NameList(ctx, "")
		if err != nil {
			return nil, fmt.Errorf("failed to list members of %s: %w", dsn, err)
		}
		units := make([]unit, 0, len(members))
		for _, m := range members {
			units = append(units, unit{name: m, path: quote(fmt.Sprintf("%s(%s)", dsn, m))})
		}
		return units, nil

	case mainframe.Sequential:
		return []unit{{name: dsn, path: quote(dsn)}}, nil

	case mainframe.GDG:
		if err := s.ChangeDir(quote(dsn)); err != nil {
			return nil, err
		}
		names, err := s.NameList(ctx, "")
		if err != nil {
			return nil, fmt.Errorf("failed to list generations of %s: %w", dsn, err)
		}
		if len(names) == 0 {
			return nil, fmt.Errorf("no generations found for GDG %s", dsn)
		}
		gens := make([]string, 0, len(names))
		for _, n := range names {
			gens = append(gens, strings.TrimPrefix(strings.Trim(n, "'"), dsn+"."))
		}
		sort.Strings(gens)
		latest := gens[len(gens)-1]
		log.Debugf("latest generation of %s is %s", dsn, latest)
		return []unit{{name: dsn + "." + latest, path: quote(dsn + "." + latest)}}, nil
	}

	return nil, fmt.Errorf("unsupported dataset type %s", cfg.DatasetType)
}

func workerCount(cfg *mainframe.ImportConfiguration, units int) int {
	n := cfg.Base.NumMappers
	if n <= 0 {
		n = DefaultNumMappers
	}
	// a tape volume can only be mounted by one session at a time
	if cfg.DatasetOnTape {
		n = 1
	}
	if n > units {
		n = units
	}
	return n
}

// split divides units into n contiguous chunks of near equal size.
func split(units []unit, n int) [][]unit {
	chunks := make([][]unit, 0, n)
	for i := 0; i < n; i++ {
		start := i * len(units) / n
		end := (i + 1) * len(units) / n
		chunks = append(chunks, units[start:end])
	}
	return chunks
}

func applyCommands(s Session, commands []string, log *logrus.Entry) error {
	for _, c := range commands {
		if strings.TrimSpace(c) == "" {
			log.Debug("skipping empty FTP command")
			continue
		}
		resp, err := s.Quote(c)
		if err != nil {
			return fmt.Errorf("ftp command %q failed: %w", c, err)
		}
		log.WithField("command", c).Debug(resp)
	}
	return nil
}

func datasetName(cfg *mainframe.ImportConfiguration) string {
	return strings.Trim(strings.TrimSpace(cfg.DatasetName), "'")
}

func quote(dsn string) string {
	return "'" + dsn + "'"
}

// copyRecords writes r to w as newline terminated text records, or as raw
// bytes through a bufferSize buffer for binary layouts.
func copyRecords(w io.Writer, r io.Reader, layout mainframe.FileLayout, bufferSize int) error {
	if layout == mainframe.BinaryFile {
		buf := make([]byte, bufferSize)
		_, err := io.CopyBuffer(w, struct{ io.Reader }{r}, buf)
		return err
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxRecordLength)
	for scanner.Scan() {
		if _, err := io.WriteString(w, scanner.Text()+"\n"); err != nil {
			return err
		}
	}
	return scanner.Err()
}
