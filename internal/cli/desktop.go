package cli

import (
	"fyne.io/fyne/v2"
	fyneapp "fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"github.com/jonboulle/clockwork"
	"github.com/spf13/cobra"

	"github.com/go-theft-auto/grid"
	"github.com/go-theft-auto/grid/backend/fynegrid"
)

func newDesktopCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "desktop FILE.csv",
		Short: "Browse a CSV file in a desktop window",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			t, err := a.readTable(args[0])
			if err != nil {
				return err
			}

			fa := fyneapp.New()
			w := fa.NewWindow("gridview - " + args[0])

			v := fynegrid.NewView(a.cfg.StyleValue())
			g, err := grid.New(v, t.Columns, a.cfg.ViewportConfig(), a.cfg.Options(a.log)...)
			if err != nil {
				return err
			}
			defer g.Destroy()
			v.OnResize(g.Resize)
			g.LoadData(t.Rows)

			cfg := g.Viewport()
			w.SetContent(container.NewBorder(fynegrid.SearchBar(v, t.Columns), nil, nil, nil, v))
			w.Resize(fyne.NewSize(float32(cfg.ViewWidth), float32(cfg.ViewHeight)+40))
			w.Canvas().Focus(v)

			stop := v.Start(clockwork.NewRealClock())
			w.ShowAndRun()
			// The deferred Destroy must not race a queued frame.
			stop()
			return nil
		},
	}
}
