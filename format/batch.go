package format

import (
	"archive/zip"
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime/debug"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/maruel/natural"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"lfmt/archive"
	"lfmt/state"
)

// documents larger than that are most likely not syntax trees
const maxDocumentSize = 64 << 20

type document struct {
	// name is source path relative to processed directory or archive
	// (just base name when single file was requested), it drives output
	// path.
	name string
	// key identifies source for logs and cache.
	key   string
	index int
	data  []byte
}

type handler func(ctx context.Context, doc *document) error

// batch runs handler over documents with bounded parallelism. Failure of a
// single document never stops the batch, all failures are collected.
type batch struct {
	ctx    context.Context
	g      *errgroup.Group
	log    *zap.Logger
	exts   []string
	handle handler

	// count is only touched by submitting goroutine
	count int

	mu   sync.Mutex
	errs error
}

func newBatch(ctx context.Context, env *state.LocalEnv, log *zap.Logger, handle handler) *batch {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(env.Cfg.Processing.Jobs)
	return &batch{
		ctx:    gctx,
		g:      g,
		log:    log,
		exts:   env.Cfg.Processing.Extensions,
		handle: handle,
	}
}

func (b *batch) fail(key string, err error) {
	b.log.Error("Unable to process file", zap.String("file", key), zap.Error(err))
	b.mu.Lock()
	defer b.mu.Unlock()
	b.errs = multierr.Append(b.errs, fmt.Errorf("%s: %w", key, err))
}

// submit schedules document for processing, it blocks when all workers are
// busy.
func (b *batch) submit(name, key string, load func() ([]byte, error)) {
	b.count++
	doc := &document{name: name, key: key, index: b.count}
	b.g.Go(func() error {
		if err := b.run(doc, load); err != nil {
			b.fail(key, err)
		}
		return nil
	})
}

func (b *batch) run(doc *document, load func() ([]byte, error)) (rerr error) {
	defer func(start time.Time) {
		// we do not want to stop whole batch because of a single bad tree
		if r := recover(); r != nil {
			b.log.Error("Processing ended with panic",
				zap.String("file", doc.key), zap.Any("panic", r), zap.Duration("elapsed", time.Since(start)), zap.ByteString("stack", debug.Stack()))
			rerr = fmt.Errorf("processing panic: %v", r)
		}
	}(time.Now())

	if err := b.ctx.Err(); err != nil {
		return err
	}
	data, err := load()
	if err != nil {
		return err
	}
	doc.data = data
	return b.handle(b.ctx, doc)
}

// wait waits for all submitted documents and combines their failures with
// err.
func (b *batch) wait(err error) error {
	_ = b.g.Wait()
	b.mu.Lock()
	defer b.mu.Unlock()
	return multierr.Append(err, b.errs)
}

func readDocument(path string) ([]byte, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if fi.Size() > maxDocumentSize {
		return nil, fmt.Errorf("file is too large (%d bytes)", fi.Size())
	}
	return os.ReadFile(path)
}

// process determines the input type (directory, archive, or single file)
// and submits documents to the batch accordingly.
func process(ctx context.Context, src string, b *batch) error {
	var head, tail string
	for head = src; len(head) != 0; head, tail = filepath.Split(head) {
		if err := ctx.Err(); err != nil {
			return err
		}

		head = strings.TrimSuffix(head, string(filepath.Separator))

		fi, err := os.Stat(head)
		if err != nil {
			// does not exists - probably path in archive
			continue
		}

		if fi.Mode().IsDir() {
			if len(tail) != 0 {
				// directory cannot have tail - it would be simple file
				return fmt.Errorf("input source was not found (%s) => (%s)", head, strings.TrimPrefix(src, head))
			}
			if err := processDir(ctx, head, b); err != nil {
				return fmt.Errorf("unable to process directory: %w", err)
			}
			break
		}

		if !fi.Mode().IsRegular() {
			return fmt.Errorf("unexpected path mode for (%s) => (%s)", head, strings.TrimPrefix(src, head))
		}

		isArchive, err := isArchiveFile(head)
		if err != nil {
			// checking format - but cannot open target file
			return fmt.Errorf("unable to check archive type: %w", err)
		}
		if isArchive {
			// we need to look inside to see if path makes sense
			tail = filepath.ToSlash(strings.TrimPrefix(strings.TrimPrefix(src, head), string(filepath.Separator)))
			if err := processArchive(ctx, head, tail, "", b); err != nil {
				return fmt.Errorf("unable to process archive: %w", err)
			}
			break
		}

		if len(tail) != 0 {
			return fmt.Errorf("input source was not found (%s) => (%s)", head, strings.TrimPrefix(src, head))
		}
		// explicitly requested file is accepted regardless of extension
		file := head
		b.submit(filepath.Base(file), file, func() ([]byte, error) { return readDocument(file) })
		break
	}
	if len(head) == 0 {
		return fmt.Errorf("input source was not found (%s)", src)
	}
	return nil
}

// processDir walks directory tree and submits documents and archives in
// natural order of their paths.
func processDir(ctx context.Context, dir string, b *batch) error {
	var paths []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err != nil {
			b.log.Warn("Skipping path", zap.String("path", path), zap.Error(err))
			return nil
		}
		if d.Type().IsRegular() {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return err
	}
	slices.SortStableFunc(paths, func(x, y string) int {
		switch {
		case natural.Less(x, y):
			return -1
		case natural.Less(y, x):
			return 1
		}
		return 0
	})

	count := b.count
	defer func() {
		if b.count == count {
			b.log.Debug("Nothing to process", zap.String("dir", dir))
		}
	}()

	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return err
		}
		rel := strings.TrimPrefix(strings.TrimPrefix(path, dir), string(filepath.Separator))

		if hasExtension(path, b.exts) {
			b.submit(rel, path, func() ([]byte, error) { return readDocument(path) })
			continue
		}

		isArchive, err := isArchiveFile(path)
		if err != nil {
			b.log.Warn("Skipping file", zap.String("file", path), zap.Error(err))
			continue
		}
		if !isArchive {
			b.log.Debug("Skipping file, not recognized as tree or archive", zap.String("file", path))
			continue
		}
		if err := processArchive(ctx, path, "", filepath.Dir(rel), b); err != nil {
			b.fail(path, err)
		}
	}
	return nil
}

// processArchive walks all files inside archive, finds documents under
// "pathIn" and submits them. Entries are read here as archive is closed as
// soon as walk is finished.
func processArchive(ctx context.Context, path, pathIn, pathOut string, b *batch) error {
	count := b.count
	defer func() {
		if b.count == count {
			b.log.Debug("Nothing to process", zap.String("archive", path))
		}
	}()

	match := func(name string) bool { return hasExtension(name, b.exts) }
	if len(pathIn) > 0 {
		// explicitly requested entry is accepted regardless of extension
		match = func(name string) bool { return name == pathIn || hasExtension(name, b.exts) }
	}

	return archive.Walk(ctx, path, pathIn, match, func(archivePath string, f *zip.File) error {
		key := archivePath + "/" + f.Name
		data, err := archive.ReadFile(f, maxDocumentSize)
		if err != nil {
			b.fail(key, err)
			return nil
		}
		b.submit(filepath.Join(pathOut, filepath.FromSlash(f.Name)), key, func() ([]byte, error) { return data, nil })
		return nil
	})
}
