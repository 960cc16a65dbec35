// Package report describes a finished layout as markdown, for the terminal
// report pane and for HTML export.
package report

import (
	"bytes"
	"fmt"
	"html"
	"os"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/treykane/flowbox/internal/flow"
	"github.com/treykane/flowbox/internal/scene"
)

// Intrinsics are the four intrinsic sizes of a flow.
type Intrinsics struct {
	// HeightHint is the height given to the width queries.
	HeightHint int
	// WidthHint is the width given to the height queries.
	WidthHint int

	MinWidth, MaxWidth   int
	MinHeight, MaxHeight int
}

// ComputeIntrinsics asks p for all four intrinsic sizes of boxes.
func ComputeIntrinsics(p flow.Policy, boxes []flow.Measurable, width, height int) (Intrinsics, error) {
	in := Intrinsics{HeightHint: height, WidthHint: width}
	var err error
	if in.MinWidth, err = p.MinIntrinsicWidth(boxes, height); err != nil {
		return Intrinsics{}, fmt.Errorf("min intrinsic width: %w", err)
	}
	if in.MaxWidth, err = p.MaxIntrinsicWidth(boxes, height); err != nil {
		return Intrinsics{}, fmt.Errorf("max intrinsic width: %w", err)
	}
	if in.MinHeight, err = p.MinIntrinsicHeight(boxes, width); err != nil {
		return Intrinsics{}, fmt.Errorf("min intrinsic height: %w", err)
	}
	if in.MaxHeight, err = p.MaxIntrinsicHeight(boxes, width); err != nil {
		return Intrinsics{}, fmt.Errorf("max intrinsic height: %w", err)
	}
	return in, nil
}

// Input is everything a report shows.
type Input struct {
	Title       string
	Policy      flow.Policy
	Constraints flow.Constraints
	Result      flow.Result
	Intrinsics  *Intrinsics
	// Scene, when it has chips, is appended as TOML.
	Scene *scene.Scene
}

// Markdown renders in as a markdown document.
func Markdown(in Input) string {
	var b strings.Builder

	title := in.Title
	if title == "" {
		title = "Flow layout"
	}
	fmt.Fprintf(&b, "# %s\n\n", title)

	p := in.Policy
	b.WriteString("| Setting | Value |\n|---|---|\n")
	fmt.Fprintf(&b, "| Orientation | %s |\n", p.Orientation)
	fmt.Fprintf(&b, "| Main arrangement | %s |\n", arrangementName(p.MainArrangement))
	fmt.Fprintf(&b, "| Cross arrangement | %s |\n", arrangementName(p.CrossArrangement))
	fmt.Fprintf(&b, "| Max items per line | %s |\n", maxItemsLabel(p.MaxItemsInMainAxis))
	fmt.Fprintf(&b, "| Direction | %s |\n", p.Direction)
	fmt.Fprintf(&b, "| Constraints | `%s` |\n", in.Constraints)
	fmt.Fprintf(&b, "| Size | %d x %d |\n", in.Result.Width, in.Result.Height)
	fmt.Fprintf(&b, "| Lines | %d |\n\n", in.Result.Flow.LineCount())

	if lines := in.Result.Flow.Lines; len(lines) > 0 {
		b.WriteString("## Lines\n\n")
		b.WriteString("| Line | Boxes | Main | Cross |\n|---:|---|---:|---:|\n")
		for i, line := range lines {
			fmt.Fprintf(&b, "| %d | %s | %d | %d |\n", i+1, boxRange(line), line.MainAxisSize, line.CrossAxisSize)
		}
		b.WriteString("\n")
	}

	if placements := in.Result.Placements; len(placements) > 0 {
		b.WriteString("## Placements\n\n")
		b.WriteString("| # | Key | Line | X | Y | Width | Height |\n|---:|---|---:|---:|---:|---:|---:|\n")
		for _, pl := range placements {
			fmt.Fprintf(&b, "| %d | %s | %d | %d | %d | %d | %d |\n",
				pl.Index+1, escapeCell(pl.Key), pl.Line+1, pl.X, pl.Y, pl.Width, pl.Height)
		}
		b.WriteString("\n")
	}

	if in.Intrinsics != nil {
		is := in.Intrinsics
		b.WriteString("## Intrinsic sizes\n\n")
		b.WriteString("| Query | Hint | Size |\n|---|---|---:|\n")
		fmt.Fprintf(&b, "| Min width | height %s | %d |\n", bound(is.HeightHint), is.MinWidth)
		fmt.Fprintf(&b, "| Max width | height %s | %d |\n", bound(is.HeightHint), is.MaxWidth)
		fmt.Fprintf(&b, "| Min height | width %s | %d |\n", bound(is.WidthHint), is.MinHeight)
		fmt.Fprintf(&b, "| Max height | width %s | %d |\n\n", bound(is.WidthHint), is.MaxHeight)
	}

	if in.Scene != nil && len(in.Scene.Chips) > 0 {
		source, err := scene.Encode(*in.Scene, scene.FormatTOML)
		if err != nil {
			log.Warn("encode scene for report", "error", err)
		} else {
			b.WriteString("## Scene\n\n```toml\n")
			b.Write(bytes.TrimRight(source, "\n"))
			b.WriteString("\n```\n")
		}
	}
	return b.String()
}

// HTML converts report markdown to a standalone HTML document.
func HTML(markdown, title string) ([]byte, error) {
	md := goldmark.New(goldmark.WithExtensions(extension.GFM))
	var body bytes.Buffer
	if err := md.Convert([]byte(markdown), &body); err != nil {
		return nil, fmt.Errorf("convert report: %w", err)
	}

	var out bytes.Buffer
	out.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n")
	fmt.Fprintf(&out, "<title>%s</title>\n", html.EscapeString(title))
	out.WriteString("<style>body{font-family:sans-serif;max-width:60em;margin:2em auto}" +
		"table{border-collapse:collapse}td,th{border:1px solid #ccc;padding:2px 8px}</style>\n")
	out.WriteString("</head>\n<body>\n")
	out.Write(body.Bytes())
	out.WriteString("</body>\n</html>\n")
	return out.Bytes(), nil
}

// WriteHTML writes the report for in to path.
func WriteHTML(path string, in Input) error {
	data, err := HTML(Markdown(in), in.Title)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write report %s: %w", path, err)
	}
	log.Info("wrote html report", "path", path)
	return nil
}

func arrangementName(a flow.Arrangement) string {
	if a == nil {
		return flow.Start.String()
	}
	return a.String()
}

func maxItemsLabel(n int) string {
	if n == flow.Unbounded {
		return "unbounded"
	}
	return fmt.Sprint(n)
}

func bound(v int) string {
	if v == flow.Infinity {
		return "unbounded"
	}
	return fmt.Sprint(v)
}

func boxRange(line flow.LineResult) string {
	if line.Len() == 1 {
		return fmt.Sprint(line.Start + 1)
	}
	return fmt.Sprintf("%d-%d", line.Start+1, line.End)
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
