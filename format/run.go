// Package format drives processing of serialized syntax trees: files,
// directories and zip archives are formatted, checked or dumped.
package format

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"lfmt/cache"
	"lfmt/common"
	"lfmt/config"
	"lfmt/mdast"
	"lfmt/spacing"
	"lfmt/state"
)

// Run is the "format" command: every recognized document under SOURCE is
// formatted and written under DESTINATION.
func Run(ctx context.Context, cmd *cli.Command) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("format")

	src, err := sourceArg(cmd)
	if err != nil {
		return err
	}

	dst := cmd.Args().Get(1)
	if len(dst) == 0 {
		if dst, err = os.Getwd(); err != nil {
			return fmt.Errorf("unable to get working directory: %w", err)
		}
	}
	if dst, err = filepath.Abs(dst); err != nil {
		return err
	}
	if cmd.Args().Len() > 2 {
		log.Warn("Malformed command line, too many destinations", zap.Strings("ignoring", cmd.Args().Slice()[2:]))
	}

	format := env.Cfg.Processing.OutputFormat
	if to := cmd.String("to"); len(to) > 0 {
		if format, err = common.ParseOutputFmt(to); err != nil {
			log.Warn("Unknown output format requested, keeping configured one", zap.Error(err))
			format = env.Cfg.Processing.OutputFormat
		}
	}

	env.NoDirs, env.Overwrite = cmd.Bool("nodirs"), cmd.Bool("overwrite")

	if err := env.OpenCache(); err != nil {
		return fmt.Errorf("unable to open cache: %w", err)
	}

	w := &writer{env: env, dst: dst, format: format, formatter: env.Formatter(), log: log}
	b := newBatch(ctx, env, log, w.handle)

	log.Info("Processing starting", zap.String("source", src), zap.String("destination", dst), zap.Stringer("format", format))
	defer func(start time.Time) {
		log.Info("Processing completed", zap.Duration("elapsed", time.Since(start)), zap.Int("documents", b.count))
	}(time.Now())

	return b.wait(process(ctx, src, b))
}

func sourceArg(cmd *cli.Command) (string, error) {
	src := cmd.Args().Get(0)
	if len(src) == 0 {
		return "", errors.New("no input source has been specified")
	}
	return filepath.Abs(src)
}

type writer struct {
	env       *state.LocalEnv
	dst       string
	format    common.OutputFmt
	formatter *spacing.Formatter
	log       *zap.Logger

	// output path -> key of the document producing it
	claimed sync.Map
}

// handle formats single document. Cache is consulted with digest of the
// source: when it matches recorded digest of earlier output produced with
// the same settings, document is already formatted and is copied as is.
func (w *writer) handle(_ context.Context, doc *document) (rerr error) {
	srcFmt := detectTreeFmt(doc.name, doc.data)
	outFmt := w.format.Tree(srcFmt)
	outputName := buildOutputPath(doc.name, w.dst, doc.index, outFmt, w.env)
	rules := w.env.Cfg.Spacing.Fingerprint() + "," + outFmt.String()

	if prev, loaded := w.claimed.LoadOrStore(outputName, doc.key); loaded {
		return fmt.Errorf("output %s is already produced from %s, use output name template to keep names apart", outputName, prev)
	}

	var stats spacing.Stats
	log := w.log.With(zap.String("from", doc.key))
	log.Info("Formatting starting")
	defer func(start time.Time) {
		if rerr == nil {
			log.Info("Formatting completed", zap.Duration("elapsed", time.Since(start)), zap.String("to", outputName),
				zap.Int("inserted", stats.Inserted), zap.Int("changed", stats.Changed))
		}
	}(time.Now())

	fresh, err := w.env.Cache.Fresh(doc.key, cache.Digest(doc.data), rules)
	if err != nil {
		log.Warn("Unable to consult cache, formatting", zap.Error(err))
	}

	out := doc.data
	if fresh && srcFmt == outFmt {
		if outputName == doc.key {
			log.Info("Document is already formatted")
			return nil
		}
		log.Debug("Document is already formatted, copying")
	} else {
		storeSource(w.env.Rpt, doc, log)

		tree, err := mdast.Decode(bytes.NewReader(doc.data), srcFmt)
		if err != nil {
			return fmt.Errorf("unable to parse source (%s): %w", doc.name, err)
		}
		w.env.Rpt.StoreData(dumpName(doc, "before"), []byte(tree.String()))

		if stats, err = w.formatter.Format(tree); err != nil {
			return fmt.Errorf("unable to format (%s): %w", doc.name, err)
		}
		w.env.Rpt.StoreData(dumpName(doc, "after"), []byte(tree.String()))

		buf := new(bytes.Buffer)
		if err := mdast.Encode(buf, tree, outFmt); err != nil {
			return fmt.Errorf("unable to serialize (%s): %w", doc.name, err)
		}
		out = buf.Bytes()
	}

	if err := prepareOutput(outputName, w.env.Overwrite, log); err != nil {
		return err
	}
	if err := os.WriteFile(outputName, out, 0644); err != nil {
		return fmt.Errorf("unable to write output: %w", err)
	}
	if err := w.env.Cache.Record(outputName, cache.Digest(out), rules); err != nil {
		log.Warn("Unable to update cache", zap.Error(err))
	}
	return nil
}

// prepareOutput makes sure output file could be created.
func prepareOutput(outputName string, overwrite bool, log *zap.Logger) error {
	if _, err := os.Stat(outputName); err == nil {
		if !overwrite {
			return fmt.Errorf("output file already exists: %s", outputName)
		}
		log.Warn("Overwriting existing file", zap.String("file", outputName))
		return nil
	} else if !os.IsNotExist(err) {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(outputName), 0755); err != nil {
		return fmt.Errorf("unable to create output directory: %w", err)
	}
	return nil
}

// storeSource puts source document into the report. Files are copied as
// output may replace them.
func storeSource(rpt *config.Report, doc *document, log *zap.Logger) {
	if rpt == nil {
		return
	}
	name := fmt.Sprintf("sources/%04d-%s", doc.index, filepath.Base(doc.name))
	if fi, err := os.Stat(doc.key); err == nil && fi.Mode().IsRegular() {
		if err := rpt.StoreCopy(name, doc.key); err != nil {
			log.Warn("Unable to store source in report", zap.Error(err))
		}
		return
	}
	// archive entry
	rpt.StoreData(name, doc.data)
}

func dumpName(doc *document, stage string) string {
	return fmt.Sprintf("dumps/%04d-%s.%s.txt", doc.index, filepath.Base(doc.name), stage)
}
