// Package exporter drives one export invocation end to end: load raw rows,
// reconstruct events, group by day, render each requested format, and write
// artifacts atomically.
package exporter

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/matheus3301/sxport/internal/chatdb"
	"github.com/matheus3301/sxport/internal/export"
	"github.com/matheus3301/sxport/internal/history"
	"github.com/matheus3301/sxport/internal/paths"
	"github.com/matheus3301/sxport/internal/render"
	"go.uber.org/zap"
)

// Exporter runs exports against one opened chat database.
type Exporter struct {
	chat   *chatdb.DB
	hist   *history.DB
	rec    *export.Reconstructor
	logger *zap.Logger
}

// New creates an exporter. hist may be nil to skip bookkeeping.
func New(chat *chatdb.DB, hist *history.DB, logger *zap.Logger) *Exporter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Exporter{
		chat:   chat,
		hist:   hist,
		rec:    export.NewReconstructor(logger),
		logger: logger,
	}
}

// Request describes one export invocation.
type Request struct {
	Conversation chatdb.Conversation
	Formats      []render.Format
	OutputDir    string
}

// Artifact describes one written output file.
type Artifact struct {
	Format     render.Format
	Path       string
	EventCount int
	SizeBytes  int64
}

// Export runs the pipeline once and writes one artifact per requested
// format. Formats fail independently: a render or write error for one does
// not stop the others. The returned error joins all per-format failures;
// loader failures abort before anything is written.
func (e *Exporter) Export(req Request) ([]Artifact, error) {
	rows, err := e.chat.MessageRows(req.Conversation)
	if err != nil {
		return nil, err
	}

	events := e.rec.Reconstruct(rows)
	days := export.GroupByDay(events)
	meta := export.ConversationMeta{
		Name:       req.Conversation.Name,
		EventCount: len(events),
		ExportedAt: time.Now(),
	}

	e.logger.Info("reconstructed conversation",
		zap.String("chat", meta.Name),
		zap.Int("raw_rows", len(rows)),
		zap.Int("events", len(events)),
		zap.Int("days", len(days)))

	var (
		artifacts []Artifact
		errs      []error
	)
	for _, format := range req.Formats {
		art, err := e.renderOne(format, meta, days, req.OutputDir)
		if err != nil {
			e.logger.Error("format failed", zap.String("format", string(format)), zap.Error(err))
			errs = append(errs, err)
			continue
		}
		artifacts = append(artifacts, *art)
		e.recordHistory(req.Conversation, art)
	}
	return artifacts, errors.Join(errs...)
}

func (e *Exporter) renderOne(format render.Format, meta export.ConversationMeta, days []export.DayGroup, outDir string) (*Artifact, error) {
	renderer, err := render.For(format)
	if err != nil {
		return nil, err
	}
	data, err := renderer.Render(meta, days)
	if err != nil {
		var re *render.RenderError
		if !errors.As(err, &re) {
			err = &render.RenderError{Format: format, Err: err}
		}
		return nil, err
	}

	path := paths.ExportFilename(outDir, meta.Name, format.Ext(), meta.ExportedAt)
	if err := writeAtomic(path, data); err != nil {
		return nil, fmt.Errorf("write %s artifact: %w", format, err)
	}
	return &Artifact{
		Format:     format,
		Path:       path,
		EventCount: meta.EventCount,
		SizeBytes:  int64(len(data)),
	}, nil
}

func (e *Exporter) recordHistory(conv chatdb.Conversation, art *Artifact) {
	if e.hist == nil {
		return
	}
	err := e.hist.Record(&history.Export{
		ChatName:   conv.Name,
		IsGroup:    conv.IsGroup,
		Format:     string(art.Format),
		Path:       art.Path,
		EventCount: art.EventCount,
		SizeBytes:  art.SizeBytes,
	})
	if err != nil {
		// The artifact already exists; bookkeeping failure is not fatal.
		e.logger.Warn("failed to record export", zap.String("path", art.Path), zap.Error(err))
	}
}

// writeAtomic writes data to path via a temp file and rename, so a failed
// export never leaves a partial artifact behind.
func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, ".sxport-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	return nil
}
