package cli

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/go-theft-auto/grid"
	"github.com/go-theft-auto/grid/backend/raster"
)

// settleFrames bounds the frames run before a snapshot is taken.
const settleFrames = 16

type snapshotFlags struct {
	out   string
	dpr   float64
	start int
	query []string
}

func newSnapshotCmd(a *app) *cobra.Command {
	var f snapshotFlags
	cmd := &cobra.Command{
		Use:   "snapshot FILE.csv",
		Short: "Render one window of a CSV file to PNG",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.snapshot(args[0], f)
		},
	}
	cmd.Flags().StringVarP(&f.out, "output", "o", "grid.png", "output PNG file")
	cmd.Flags().Float64Var(&f.dpr, "dpr", 0, "device pixel ratio (0 = config)")
	cmd.Flags().IntVar(&f.start, "start", 0, "first row of the window")
	cmd.Flags().StringArrayVar(&f.query, "search", nil, "column search as COL=TEXT, repeatable")
	return cmd
}

func (a *app) snapshot(path string, f snapshotFlags) error {
	t, err := a.readTable(path)
	if err != nil {
		return err
	}

	dpr := f.dpr
	if dpr <= 0 {
		dpr = a.cfg.Snapshot.PixelRatio
	}
	s, err := raster.New(a.cfg.StyleValue(), dpr)
	if err != nil {
		return err
	}
	host := raster.NewHeadless(s)

	g, err := grid.New(host, t.Columns, a.cfg.ViewportConfig(), a.cfg.Options(a.log)...)
	if err != nil {
		return err
	}
	defer g.Destroy()
	g.LoadData(t.Rows)

	for _, q := range f.query {
		col, text, err := parseSearch(q, t.Columns)
		if err != nil {
			return err
		}
		g.OnSearch(col, text)
	}
	// Search edits are debounced; apply them now.
	if len(f.query) > 0 {
		g.ApplySearch()
	}

	g.ScrollTo(f.start)
	host.Settle(settleFrames)

	out, err := os.Create(f.out)
	if err != nil {
		return fmt.Errorf("creating %s: %w", f.out, err)
	}
	if err := s.WritePNG(out); err != nil {
		out.Close()
		return fmt.Errorf("writing %s: %w", f.out, err)
	}
	if err := out.Close(); err != nil {
		return err
	}

	w := g.Window()
	a.log.Info().
		Str("output", f.out).
		Int("start", w.Start).
		Int("end", w.End).
		Int("active", g.ActiveLen()).
		Float64("dpr", s.PixelRatio()).
		Msg("snapshot written")
	return nil
}

// parseSearch splits COL=TEXT where COL is a column ID or a 1-based index.
func parseSearch(q string, cols []grid.Column) (int, string, error) {
	name, text, ok := strings.Cut(q, "=")
	if !ok {
		return 0, "", fmt.Errorf("search %q: want COL=TEXT", q)
	}
	for c, col := range cols {
		if col.ID == name || strconv.Itoa(c+1) == name {
			return c, text, nil
		}
	}
	return 0, "", fmt.Errorf("search %q: unknown column %q", q, name)
}
