package format

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
	"github.com/sergi/go-diff/diffmatchpatch"
	cli "github.com/urfave/cli/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"lfmt/config"
	"lfmt/mdast"
	"lfmt/spacing"
	"lfmt/state"
)

// ErrWouldChange is returned by check when some documents are not formatted.
var ErrWouldChange = errors.New("documents are not formatted")

// Check is the "check" command: documents under SOURCE are formatted in
// memory and every changed piece of text is reported as a diff.
func Check(ctx context.Context, cmd *cli.Command) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("check")

	src, err := sourceArg(cmd)
	if err != nil {
		return err
	}
	if cmd.Args().Len() > 1 {
		log.Warn("Malformed command line, too many sources", zap.Strings("ignoring", cmd.Args().Slice()[1:]))
	}

	c := &checker{
		formatter: env.Formatter(),
		paint:     newPainter(config.EnableColorOutput(os.Stdout) && !cmd.Bool("no-color")),
		width:     config.TerminalWidth(os.Stdout, 80),
	}
	b := newBatch(ctx, env, log, c.handle)

	log.Info("Checking starting", zap.String("source", src))
	defer func(start time.Time) {
		log.Info("Checking completed", zap.Duration("elapsed", time.Since(start)), zap.Int("documents", b.count), zap.Int("changed", c.out.len()))
	}(time.Now())

	err = b.wait(process(ctx, src, b))
	if er := c.out.flush(os.Stdout); er != nil {
		err = multierr.Append(err, er)
	}
	if err == nil && c.out.len() > 0 {
		return fmt.Errorf("%w: %d of %d", ErrWouldChange, c.out.len(), b.count)
	}
	return err
}

type checker struct {
	formatter *spacing.Formatter
	paint     painter
	width     int
	out       collector
}

func (c *checker) handle(_ context.Context, doc *document) error {
	tree, err := mdast.Decode(bytes.NewReader(doc.data), detectTreeFmt(doc.name, doc.data))
	if err != nil {
		return fmt.Errorf("unable to parse source (%s): %w", doc.name, err)
	}
	before := tree.Clone()
	stats, err := c.formatter.Format(tree)
	if err != nil {
		return fmt.Errorf("unable to format (%s): %w", doc.name, err)
	}
	if stats.Inserted == 0 && stats.Changed == 0 {
		return nil
	}

	buf := new(bytes.Buffer)
	fmt.Fprintf(buf, "%s: %d spaces inserted, %d values changed\n", c.paint.file.Sprint(doc.name), stats.Inserted, stats.Changed)
	c.describe(buf, before, tree)
	c.out.add(doc.index, buf.String())
	return nil
}

// describe writes a line for every inline container or standalone leaf
// which text differs between trees. Node ids of before are valid in after as
// formatting only appends nodes.
func (c *checker) describe(w io.Writer, before, after *mdast.Tree) {
	after.Walk(func(id mdast.NodeID, _ int) bool {
		if int(id) >= len(before.Nodes) {
			return false
		}
		kind := after.Nodes[id].Kind
		switch {
		case kind.Class() == mdast.ClassInline:
			old, cur := flatten(before, id), flatten(after, id)
			if old != cur {
				c.line(w, after.Describe(id), old, cur)
			}
			return false
		case !kind.IsContainer():
			if old, cur := before.Nodes[id].Value, after.Nodes[id].Value; old != cur {
				c.line(w, after.Describe(id), old, cur)
			}
			return false
		}
		return true
	})
}

func (c *checker) line(w io.Writer, label, old, cur string) {
	label = "  " + label + ": "
	// room for unchanged text around every difference
	room := max(8, (c.width-runewidth.StringWidth(label))/4)
	fmt.Fprintln(w, label+c.paint.diff(old, cur, room))
}

// flatten renders text of the subtree the way it is seen by reader.
func flatten(t *mdast.Tree, id mdast.NodeID) string {
	var sb strings.Builder
	t.WalkFrom(id, func(id mdast.NodeID, _ int) bool {
		n := &t.Nodes[id]
		switch n.Kind {
		case mdast.KindText:
			sb.WriteString(n.Value)
		case mdast.KindInlineMath:
			sb.WriteString("$" + n.Value + "$")
		case mdast.KindInlineCode:
			sb.WriteString("`" + n.Value + "`")
		default:
			if n.Kind.IsContainer() {
				return true
			}
			sb.WriteString("[" + n.Type + "]")
		}
		return false
	})
	return sb.String()
}

type painter struct {
	file, ins, del *color.Color
}

func newPainter(colored bool) painter {
	p := painter{
		file: color.New(color.Bold),
		ins:  color.New(color.FgGreen),
		del:  color.New(color.FgRed),
	}
	for _, c := range []*color.Color{p.file, p.ins, p.del} {
		if colored {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

// diff renders word-diff style difference, unchanged text longer than room
// cells is elided.
func (p painter) diff(old, cur string, room int) string {
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(old, cur, false)

	var sb strings.Builder
	for i, d := range diffs {
		text := visible(d.Text)
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			sb.WriteString(p.ins.Sprint("{+" + text + "+}"))
		case diffmatchpatch.DiffDelete:
			sb.WriteString(p.del.Sprint("[-" + text + "-]"))
		case diffmatchpatch.DiffEqual:
			switch {
			case i == 0:
				sb.WriteString(tail(text, room))
			case i == len(diffs)-1:
				sb.WriteString(runewidth.Truncate(text, room, "…"))
			case runewidth.StringWidth(text) > 2*room:
				sb.WriteString(runewidth.Truncate(text, room, "…") + tail(text, room-1))
			default:
				sb.WriteString(text)
			}
		}
	}
	return sb.String()
}

func visible(s string) string {
	return strings.NewReplacer("\n", "⏎", "\t", "→").Replace(s)
}

// tail keeps the end of s fitting into width cells.
func tail(s string, width int) string {
	if runewidth.StringWidth(s) <= width {
		return s
	}
	runes := []rune(s)
	w := runewidth.RuneWidth('…')
	i := len(runes)
	for i > 0 && w+runewidth.RuneWidth(runes[i-1]) <= width {
		i--
		w += runewidth.RuneWidth(runes[i])
	}
	return "…" + string(runes[i:])
}

// collector keeps outputs of parallel workers to print them in document
// order.
type collector struct {
	mu      sync.Mutex
	outputs map[int]string
}

func (c *collector) add(index int, s string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.outputs == nil {
		c.outputs = make(map[int]string)
	}
	c.outputs[index] = s
}

func (c *collector) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.outputs)
}

func (c *collector) flush(w io.Writer) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	keys := make([]int, 0, len(c.outputs))
	for k := range c.outputs {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		if _, err := io.WriteString(w, c.outputs[k]); err != nil {
			return err
		}
	}
	return nil
}
