// Command flowbox lays out a scene of text chips as a flow row or column.
//
// Without output flags it opens the interactive UI. --print, --report,
// --html, --png and --intrinsics write the layout once and exit; they can be
// combined. --configure saves the effective settings as the new defaults.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/treykane/flowbox/internal/app"
	"github.com/treykane/flowbox/internal/config"
	"github.com/treykane/flowbox/internal/export"
	"github.com/treykane/flowbox/internal/flow"
	"github.com/treykane/flowbox/internal/logging"
	"github.com/treykane/flowbox/internal/report"
	"github.com/treykane/flowbox/internal/scene"
	"github.com/treykane/flowbox/internal/term"
)

var log = logging.New("main")

// errUsage marks flag errors; the flag package has already printed them.
var errUsage = errors.New("usage")

type options struct {
	scenePath    string
	row, column  bool
	maxItems     int
	main, cross  string
	spacing      float64
	crossSpacing float64
	rtl          bool
	width        int
	height       int

	print      bool
	report     bool
	html       string
	png        string
	intrinsics bool
	configure  bool

	// set records which flags were given explicitly.
	set map[string]bool
}

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if !errors.Is(err, errUsage) {
			fmt.Fprintln(os.Stderr, "error:", err)
		}
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}

	cfg, err := config.LoadOrDefault()
	if err != nil {
		return err
	}
	if opts.set["scene"] {
		cfg.ScenePath = opts.scenePath
	}
	sc, err := loadScene(cfg.ScenePath)
	if err != nil {
		return err
	}
	cfg = opts.apply(sc.Layout.Apply(cfg))
	if err := cfg.Normalize(); err != nil {
		return err
	}

	if opts.configure {
		if err := config.Save(cfg); err != nil {
			return err
		}
		path, _ := config.ConfigPath()
		fmt.Fprintln(stdout, "Saved defaults to", path)
		return nil
	}

	if !opts.once() {
		m, err := app.New(cfg, sc)
		if err != nil {
			return err
		}
		_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
		return err
	}
	return writeOnce(opts, cfg, sc, stdout)
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var opts options
	fs := flag.NewFlagSet("flowbox", flag.ContinueOnError)
	fs.SetOutput(stderr)

	fs.StringVar(&opts.scenePath, "scene", "", "scene file (.toml or .json); the built-in scene when empty")
	fs.BoolVar(&opts.row, "row", false, "lay out as a flow row")
	fs.BoolVar(&opts.column, "column", false, "lay out as a flow column")
	fs.IntVar(&opts.maxItems, "max-items", 0, "items per line; 0 means unbounded")
	fs.StringVar(&opts.main, "main", "", "main-axis arrangement: start, center, end, space-between, space-around, space-evenly")
	fs.StringVar(&opts.cross, "cross", "", "cross-axis arrangement of the lines")
	fs.Float64Var(&opts.spacing, "spacing", 0, "gap between items in a line")
	fs.Float64Var(&opts.crossSpacing, "cross-spacing", 0, "gap between lines")
	fs.BoolVar(&opts.rtl, "rtl", false, "lay out right to left")
	fs.IntVar(&opts.width, "width", 80, "available width in cells for one-shot output")
	fs.IntVar(&opts.height, "height", 0, "available height in cells for one-shot output; 0 means unbounded")
	fs.BoolVar(&opts.print, "print", false, "print the laid-out scene and exit")
	fs.BoolVar(&opts.report, "report", false, "print the layout report and exit")
	fs.StringVar(&opts.html, "html", "", "write the layout report as HTML to `file`")
	fs.StringVar(&opts.png, "png", "", "draw the layout as a PNG to `file`")
	fs.BoolVar(&opts.intrinsics, "intrinsics", false, "print the intrinsic sizes and exit")
	fs.BoolVar(&opts.configure, "configure", false, "save the effective settings as defaults")

	if err := fs.Parse(args); err != nil {
		return options{}, errUsage
	}
	if fs.NArg() > 0 {
		fmt.Fprintf(stderr, "unexpected arguments: %v\n", fs.Args())
		return options{}, errUsage
	}
	if opts.row && opts.column {
		fmt.Fprintln(stderr, "--row and --column are mutually exclusive")
		return options{}, errUsage
	}
	if opts.width < 0 || opts.height < 0 {
		fmt.Fprintln(stderr, "--width and --height must not be negative")
		return options{}, errUsage
	}

	opts.set = map[string]bool{}
	fs.Visit(func(f *flag.Flag) { opts.set[f.Name] = true })
	return opts, nil
}

// apply overrides cfg with the layout flags that were given.
func (o options) apply(cfg config.Config) config.Config {
	switch {
	case o.row:
		cfg.Orientation = flow.Horizontal.String()
	case o.column:
		cfg.Orientation = flow.Vertical.String()
	}
	if o.set["max-items"] {
		cfg.MaxItems = o.maxItems
	}
	if o.set["main"] {
		cfg.MainArrangement = o.main
	}
	if o.set["cross"] {
		cfg.CrossArrangement = o.cross
	}
	if o.set["spacing"] {
		cfg.Spacing = o.spacing
	}
	if o.set["cross-spacing"] {
		cfg.CrossSpacing = o.crossSpacing
	}
	if o.rtl {
		cfg.Direction = flow.RTL.String()
	}
	return cfg
}

func (o options) once() bool {
	return o.print || o.report || o.html != "" || o.png != "" || o.intrinsics
}

func loadScene(path string) (scene.Scene, error) {
	if path == "" {
		return scene.Default(), nil
	}
	resolved, err := config.NormalizePath(path)
	if err != nil {
		return scene.Scene{}, err
	}
	return scene.Load(resolved)
}

// oneShot is a layout computed for non-interactive output.
type oneShot struct {
	policy      flow.Policy
	chips       []*term.Chip
	constraints flow.Constraints
	result      flow.Result
}

func layoutOnce(cfg config.Config, sc scene.Scene, width, height int) (oneShot, error) {
	if err := sc.Validate(); err != nil {
		return oneShot{}, fmt.Errorf("invalid scene: %w", err)
	}
	policy, err := cfg.Policy()
	if err != nil {
		return oneShot{}, err
	}
	if height == 0 {
		height = flow.Infinity
	}
	shot := oneShot{
		policy:      policy,
		chips:       term.NewChips(sc),
		constraints: flow.Loose(width, height),
	}
	shot.result, err = policy.Measure(term.Measurables(shot.chips), shot.constraints)
	if err != nil {
		return oneShot{}, fmt.Errorf("layout: %w", err)
	}
	log.Debug("one-shot layout", "width", shot.result.Width, "height", shot.result.Height)
	return shot, nil
}

func writeOnce(opts options, cfg config.Config, sc scene.Scene, stdout io.Writer) error {
	shot, err := layoutOnce(cfg, sc, opts.width, opts.height)
	if err != nil {
		return err
	}
	boxes := term.Measurables(shot.chips)

	if opts.print {
		fmt.Fprintln(stdout, term.Render(shot.chips, shot.result.Width, shot.result.Height))
	}

	var in report.Input
	if opts.report || opts.html != "" || opts.intrinsics {
		intrinsics, err := report.ComputeIntrinsics(shot.policy, boxes, shot.constraints.MaxWidth, shot.constraints.MaxHeight)
		if err != nil {
			return err
		}
		in = report.Input{
			Title:       sceneTitle(sc),
			Policy:      shot.policy,
			Constraints: shot.constraints,
			Result:      shot.result,
			Intrinsics:  &intrinsics,
			Scene:       &sc,
		}
	}

	if opts.intrinsics {
		is := in.Intrinsics
		fmt.Fprintf(stdout, "min width:  %d (height %s)\n", is.MinWidth, bound(is.HeightHint))
		fmt.Fprintf(stdout, "max width:  %d (height %s)\n", is.MaxWidth, bound(is.HeightHint))
		fmt.Fprintf(stdout, "min height: %d (width %s)\n", is.MinHeight, bound(is.WidthHint))
		fmt.Fprintf(stdout, "max height: %d (width %s)\n", is.MaxHeight, bound(is.WidthHint))
	}
	if opts.report {
		renderer := report.NewRenderer(cfg.GlamourStyle, 1)
		fmt.Fprint(stdout, renderer.Render(report.Markdown(in), opts.width))
	}
	if opts.html != "" {
		if err := report.WriteHTML(opts.html, in); err != nil {
			return err
		}
	}
	if opts.png != "" {
		labels := func(i int) string { return shot.chips[i].Text() }
		weighted := func(i int) bool { return sc.Chips[i].Weight > 0 }
		placed := export.Boxes(shot.result, labels, weighted)
		if err := export.WritePNG(opts.png, shot.result.Width, shot.result.Height, placed, export.DefaultOptions()); err != nil {
			return err
		}
	}
	return nil
}

func sceneTitle(sc scene.Scene) string {
	if sc.Title != "" {
		return sc.Title
	}
	return "flowbox"
}

func bound(v int) string {
	if v == flow.Infinity {
		return "unbounded"
	}
	return fmt.Sprint(v)
}
