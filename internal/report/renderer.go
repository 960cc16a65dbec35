// renderer.go keeps Glamour renderers per width bucket.
//
// Creating a TermRenderer parses style JSON and allocates buffers, so the
// report pane reuses one renderer per width bucket. Buckets are evicted in
// LRU order once the cache is full. The style comes from configuration, then
// FLOWBOX_GLAMOUR_STYLE, then GLAMOUR_STYLE, and defaults to "dark".
package report

import (
	"container/list"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"

	"github.com/treykane/flowbox/internal/logging"
)

const (
	// DefaultRendererCacheEntries bounds the number of retained renderers.
	DefaultRendererCacheEntries = 8
	// WidthBucket is the granularity of renderer widths.
	WidthBucket = 20
)

var log = logging.New("report")

// Renderer renders markdown for the terminal. It is safe for concurrent use.
type Renderer struct {
	style    string
	capacity int

	mu    sync.Mutex
	cache map[int]*glamour.TermRenderer
	order *list.List // front = least recent
	nodes map[int]*list.Element
}

// NewRenderer returns a renderer cache. An empty style falls back to the
// environment; capacity below 1 uses DefaultRendererCacheEntries.
func NewRenderer(style string, capacity int) *Renderer {
	if capacity < 1 {
		capacity = DefaultRendererCacheEntries
	}
	return &Renderer{
		style:    resolveStyle(style),
		capacity: capacity,
		cache:    map[int]*glamour.TermRenderer{},
		order:    list.New(),
		nodes:    map[int]*list.Element{},
	}
}

// Style returns the resolved Glamour style name.
func (r *Renderer) Style() string { return r.style }

// Render converts markdown to ANSI text wrapped at width. If Glamour fails,
// the raw markdown is returned so the caller still has something to show.
func (r *Renderer) Render(markdown string, width int) string {
	bucket := widthBucket(width)
	renderer, err := r.get(bucket)
	if err != nil {
		log.Error("create markdown renderer", "width", bucket, "error", err)
		return markdown
	}
	out, err := renderer.Render(markdown)
	if err != nil {
		log.Error("render markdown", "width", bucket, "error", err)
		return markdown
	}
	return out
}

// Len reports how many renderers are cached.
func (r *Renderer) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.cache)
}

func (r *Renderer) get(width int) (*glamour.TermRenderer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if renderer, ok := r.cache[width]; ok {
		r.order.MoveToBack(r.nodes[width])
		return renderer, nil
	}
	renderer, err := glamour.NewTermRenderer(
		styleOption(r.style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, err
	}
	r.cache[width] = renderer
	r.nodes[width] = r.order.PushBack(width)
	r.evict()
	return renderer, nil
}

func (r *Renderer) evict() {
	for len(r.cache) > r.capacity && r.order.Len() > 0 {
		oldest := r.order.Front()
		width, _ := oldest.Value.(int)
		r.order.Remove(oldest)
		delete(r.cache, width)
		delete(r.nodes, width)
	}
}

// widthBucket rounds width down to a multiple of WidthBucket so small resizes
// reuse a renderer.
func widthBucket(width int) int {
	if width <= 0 {
		return 80
	}
	if width < WidthBucket {
		return width
	}
	return (width / WidthBucket) * WidthBucket
}

func resolveStyle(style string) string {
	for _, candidate := range []string{style, os.Getenv("FLOWBOX_GLAMOUR_STYLE"), os.Getenv("GLAMOUR_STYLE")} {
		candidate = strings.ToLower(strings.TrimSpace(candidate))
		switch candidate {
		case "auto", "dark", "light", "notty":
			return candidate
		}
	}
	return "dark"
}

// styleOption maps a resolved style to a renderer option. "auto" queries the
// terminal background.
func styleOption(style string) glamour.TermRendererOption {
	if style == "auto" {
		return glamour.WithAutoStyle()
	}
	return glamour.WithStandardStyle(style)
}
