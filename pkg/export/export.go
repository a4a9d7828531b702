// Package export writes a projected extension tree into a zip archive.
package export

import (
	"archive/zip"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/pyrx/pyrx-cli/internal/telemetry"
	"github.com/pyrx/pyrx-cli/pkg/assets"
	"github.com/pyrx/pyrx-cli/pkg/models"
)

// ErrExportInProgress is returned when an export is started while another
// one on the same Exporter is still running
var ErrExportInProgress = errors.New("export already in progress")

// ErrUnsafeEntry is returned for a tree node whose name would leave its
// parent folder inside the archive
var ErrUnsafeEntry = errors.New("unsafe archive entry name")

// ArchiveSuffix is appended to the root folder name to name the archive
const ArchiveSuffix = ".zip"

var tracer = telemetry.Tracer("github.com/pyrx/pyrx-cli/pkg/export")

// Summary describes a finished export
type Summary struct {
	Folders int `json:"folders" yaml:"folders"`
	Files   int `json:"files" yaml:"files"`
	// Placeholders counts icon files written as the transparent pixel
	Placeholders int   `json:"placeholders" yaml:"placeholders"`
	Bytes        int64 `json:"bytes" yaml:"bytes"`
}

// Exporter serialises extension trees into zip archives. Only one export
// runs at a time; a concurrent call fails fast with ErrExportInProgress.
type Exporter struct {
	loader  assets.Loader
	logger  *slog.Logger
	running atomic.Bool
}

// New creates an exporter. A nil loader means no shared icons; a nil logger
// discards diagnostics.
func New(loader assets.Loader, logger *slog.Logger) *Exporter {
	if loader == nil {
		loader = assets.NoLoader{}
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Exporter{loader: loader, logger: logger}
}

// Running reports whether an export is in flight
func (x *Exporter) Running() bool {
	return x.running.Load()
}

func (x *Exporter) acquire() error {
	if !x.running.CompareAndSwap(false, true) {
		return ErrExportInProgress
	}
	return nil
}

// Export writes the archive for root to w
func (x *Exporter) Export(ctx context.Context, w io.Writer, root *models.Node) (Summary, error) {
	if err := x.acquire(); err != nil {
		return Summary{}, err
	}
	defer x.running.Store(false)
	return x.export(ctx, w, root)
}

// ExportFile writes "{root}.zip" into dir and returns its path. The archive
// appears under its final name only once it is complete.
func (x *Exporter) ExportFile(ctx context.Context, dir string, root *models.Node) (string, Summary, error) {
	if err := x.acquire(); err != nil {
		return "", Summary{}, err
	}
	defer x.running.Store(false)

	if root == nil {
		return "", Summary{}, fmt.Errorf("cannot export: nil tree")
	}
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", Summary{}, fmt.Errorf("failed to create export directory: %w", err)
	}

	if !safeEntryName(root.Name) {
		return "", Summary{}, fmt.Errorf("%w: %q", ErrUnsafeEntry, root.Name)
	}
	final := filepath.Join(dir, filepath.Base(ArchiveName(root)))
	tmp, err := os.CreateTemp(dir, ".pyrx-export-*"+ArchiveSuffix)
	if err != nil {
		return "", Summary{}, fmt.Errorf("failed to create temp archive: %w", err)
	}
	tmpName := tmp.Name()
	cleanup := func() {
		tmp.Close()
		os.Remove(tmpName)
	}

	summary, err := x.export(ctx, tmp, root)
	if err != nil {
		cleanup()
		return "", Summary{}, err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return "", Summary{}, fmt.Errorf("failed to write archive: %w", err)
	}
	if err := os.Rename(tmpName, final); err != nil {
		os.Remove(tmpName)
		return "", Summary{}, fmt.Errorf("failed to move archive into place: %w", err)
	}

	x.logger.Info("archive written", "path", final, "files", summary.Files, "bytes", summary.Bytes)
	return final, summary, nil
}

// ArchiveName returns the file name of the archive for root
func ArchiveName(root *models.Node) string {
	return root.Name + ArchiveSuffix
}

// safeEntryName reports whether name is a single path element
func safeEntryName(name string) bool {
	return name != "" && name != "." && name != ".." && !strings.ContainsAny(name, `/\`)
}

func (x *Exporter) export(ctx context.Context, w io.Writer, root *models.Node) (summary Summary, err error) {
	if root == nil {
		return Summary{}, fmt.Errorf("cannot export: nil tree")
	}

	ctx, span := tracer.Start(ctx, "export.archive")
	span.SetAttributes(attribute.String("pyrx.extension", root.Name))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.SetAttributes(
			attribute.Int("pyrx.files", summary.Files),
			attribute.Int("pyrx.placeholders", summary.Placeholders),
		)
		span.End()
	}()

	shared := x.loadSharedIcons(ctx)

	cw := &countingWriter{w: w}
	zw := zip.NewWriter(cw)
	wr := &treeWriter{
		ctx:      ctx,
		zw:       zw,
		shared:   shared,
		logger:   x.logger,
		modified: time.Now(),
	}
	if err := wr.writeNode(root, ""); err != nil {
		zw.Close()
		return Summary{}, err
	}
	if err := zw.Close(); err != nil {
		return Summary{}, fmt.Errorf("failed to finish archive: %w", err)
	}

	wr.summary.Bytes = cw.n
	x.logger.Debug("archive built", "root", root.Name, "folders", wr.summary.Folders, "files", wr.summary.Files)
	return wr.summary, nil
}

// loadSharedIcons fetches the default icons once per export. Missing ones
// are logged and left nil.
func (x *Exporter) loadSharedIcons(ctx context.Context) map[string][]byte {
	shared := make(map[string][]byte, 2)
	for _, name := range []string{models.IconFile, models.DarkIconFile} {
		data, err := x.loader.Load(ctx, name)
		if err != nil {
			x.logger.Warn("default icon unavailable, using placeholder", "icon", name, "error", err)
			continue
		}
		shared[name] = data
	}
	return shared
}

type treeWriter struct {
	ctx      context.Context
	zw       *zip.Writer
	shared   map[string][]byte
	logger   *slog.Logger
	modified time.Time
	summary  Summary
}

func (t *treeWriter) writeNode(n *models.Node, parent string) error {
	if err := t.ctx.Err(); err != nil {
		return err
	}

	if !safeEntryName(n.Name) {
		return fmt.Errorf("%w: %q", ErrUnsafeEntry, n.Name)
	}
	name := path.Join(parent, n.Name)
	if n.IsFolder() {
		if _, err := t.zw.CreateHeader(&zip.FileHeader{
			Name:     name + "/",
			Method:   zip.Store,
			Modified: t.modified,
		}); err != nil {
			return fmt.Errorf("failed to add folder %s: %w", name, err)
		}
		t.summary.Folders++
		for _, child := range n.Children {
			if err := t.writeNode(child, name); err != nil {
				return err
			}
		}
		return nil
	}

	data := []byte(n.Content)
	if n.Icon != nil {
		data = t.iconBytes(name, n.Icon)
	}
	fw, err := t.zw.CreateHeader(&zip.FileHeader{
		Name:     name,
		Method:   zip.Deflate,
		Modified: t.modified,
	})
	if err != nil {
		return fmt.Errorf("failed to add file %s: %w", name, err)
	}
	if _, err := fw.Write(data); err != nil {
		return fmt.Errorf("failed to write file %s: %w", name, err)
	}
	t.summary.Files++
	return nil
}

// iconBytes resolves an icon: uploaded data first, then the shared default,
// then the transparent pixel
func (t *treeWriter) iconBytes(name string, icon *models.IconSource) []byte {
	if icon.DataURI != "" {
		data, err := assets.DecodeDataURI(icon.DataURI)
		if err == nil {
			return data
		}
		t.logger.Warn("uploaded icon is unreadable, using default", "file", name, "error", err)
	}
	if data, ok := t.shared[icon.Asset]; ok {
		return data
	}
	t.summary.Placeholders++
	return assets.TransparentPixel()
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
