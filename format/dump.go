package format

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"time"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"lfmt/mdast"
	"lfmt/spacing"
	"lfmt/state"
)

// Dump is the "dump" command: prints debug view of every tree under SOURCE,
// optionally after formatting.
func Dump(ctx context.Context, cmd *cli.Command) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("dump")

	src, err := sourceArg(cmd)
	if err != nil {
		return err
	}

	d := &dumper{}
	if cmd.Bool("formatted") {
		d.formatter = env.Formatter()
	}
	b := newBatch(ctx, env, log, d.handle)

	defer func(start time.Time) {
		log.Debug("Dump completed", zap.Duration("elapsed", time.Since(start)), zap.Int("documents", b.count))
	}(time.Now())

	err = b.wait(process(ctx, src, b))
	if er := d.out.flush(os.Stdout); er != nil {
		err = multierr.Append(err, er)
	}
	return err
}

type dumper struct {
	// nil formatter means dump as is
	formatter *spacing.Formatter
	out       collector
}

func (d *dumper) handle(_ context.Context, doc *document) error {
	tree, err := mdast.Decode(bytes.NewReader(doc.data), detectTreeFmt(doc.name, doc.data))
	if err != nil {
		return fmt.Errorf("unable to parse source (%s): %w", doc.name, err)
	}

	buf := new(bytes.Buffer)
	fmt.Fprintf(buf, "# %s (%d leaves)\n", doc.name, tree.Leaves())
	if d.formatter != nil {
		stats, err := d.formatter.Format(tree)
		if err != nil {
			return fmt.Errorf("unable to format (%s): %w", doc.name, err)
		}
		fmt.Fprintf(buf, "# formatted: %d spaces inserted, %d values changed\n", stats.Inserted, stats.Changed)
	}
	buf.WriteString(tree.String())
	d.out.add(doc.index, buf.String())
	return nil
}
