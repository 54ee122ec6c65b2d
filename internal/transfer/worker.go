package transfer

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"zmimport/internal/codec"
	"zmimport/internal/mainframe"
)

// part is the file one worker produced. It stays under its temporary name
// until every worker has finished.
type part struct {
	tmp    string
	file   string
	bytes  int64 // record bytes before compression
	stored int64 // bytes written to disk
}

type worker struct {
	engine *Engine
	cfg    *mainframe.ImportConfiguration
	index  int
	units  []unit
	outDir string
	runID  string
	codec  *codec.Codec
	log    *logrus.Entry
}

// run retrieves every unit over a dedicated session into a single part
// file, left under a temporary name for the engine to publish.
func (w *worker) run(ctx context.Context) (part, error) {
	s, err := w.engine.dial(ctx)
	if err != nil {
		return part{}, err
	}
	defer s.Close()

	if err := applyCommands(s, w.cfg.FTPCommands, w.log); err != nil {
		return part{}, err
	}
	if err := s.SetBinary(w.cfg.TransferMode == mainframe.Binary); err != nil {
		return part{}, err
	}

	name := fmt.Sprintf("part-m-%05d", w.index)
	if w.codec != nil {
		name += w.codec.Extension
	}
	p := part{file: filepath.Join(w.outDir, name)}
	p.tmp = fmt.Sprintf("%s.%s.tmp", p.file, w.runID)

	if err := w.write(ctx, s, &p); err != nil {
		w.engine.fs.Remove(p.tmp)
		return part{}, err
	}

	w.log.WithField("bytes", p.bytes).Debugf("wrote %s", p.tmp)
	return p, nil
}

func (w *worker) write(ctx context.Context, s Session, p *part) error {
	path := p.tmp
	f, err := w.engine.fs.Create(path)
	if err != nil {
		return fmt.Errorf("cannot create %s: %w", path, err)
	}
	defer f.Close()

	disk := &countingWriter{w: f}
	var sink io.Writer = disk
	var zw io.WriteCloser
	if w.codec != nil {
		zw, err = w.codec.NewWriter(disk)
		if err != nil {
			return fmt.Errorf("cannot start %s compression: %w", w.codec.Name, err)
		}
		sink = zw
	}
	cw := &countingWriter{w: sink}

	for _, u := range w.units {
		if err := ctx.Err(); err != nil {
			return err
		}
		w.log.WithField("unit", u.name).Debug("retrieving")
		err := s.Retrieve(ctx, u.path, func(r io.Reader) error {
			return copyRecords(cw, r, w.cfg.FileLayout, w.cfg.BufferSize)
		})
		if err != nil {
			return fmt.Errorf("failed to retrieve %s: %w", u.path, err)
		}
	}

	if zw != nil {
		if err := zw.Close(); err != nil {
			return fmt.Errorf("cannot finish compression of %s: %w", path, err)
		}
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("cannot close %s: %w", path, err)
	}
	p.bytes, p.stored = cw.n, disk.n
	return nil
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
