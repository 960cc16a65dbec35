package canvas

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestCompose(t *testing.T) {
	tests := []struct {
		name   string
		width  int
		height int
		blocks []Block
		want   []string
	}{
		{
			name:   "two blocks on a row",
			width:  8,
			height: 2,
			blocks: []Block{{X: 0, Y: 0, View: "ab"}, {X: 4, Y: 0, View: "cd\nef"}},
			want:   []string{"ab  cd  ", "    ef  "},
		},
		{
			name:   "input order does not matter",
			width:  6,
			height: 1,
			blocks: []Block{{X: 3, Y: 0, View: "z"}, {X: 0, Y: 0, View: "a"}},
			want:   []string{"a  z  "},
		},
		{
			name:   "cut at the right edge",
			width:  4,
			height: 1,
			blocks: []Block{{X: 2, Y: 0, View: "long"}},
			want:   []string{"  lo"},
		},
		{
			name:   "rows past the bottom are dropped",
			width:  2,
			height: 1,
			blocks: []Block{{X: 0, Y: 0, View: "a\nb\nc"}},
			want:   []string{"a "},
		},
		{
			name:   "empty frame is blank",
			width:  3,
			height: 2,
			want:   []string{"   ", "   "},
		},
		{
			name:   "overlap pushes the later block right",
			width:  6,
			height: 1,
			blocks: []Block{{X: 0, Y: 0, View: "abc"}, {X: 1, Y: 0, View: "de"}},
			want:   []string{"abcde "},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Compose(tt.width, tt.height, tt.blocks)
			if want := strings.Join(tt.want, "\n"); got != want {
				t.Fatalf("got\n%q\nwant\n%q", got, want)
			}
		})
	}
}

func TestComposeZeroSize(t *testing.T) {
	if got := Compose(0, 5, []Block{{View: "x"}}); got != "" {
		t.Fatalf("expected empty frame, got %q", got)
	}
}

func TestComposeKeepsWideRunesAligned(t *testing.T) {
	got := Compose(6, 1, []Block{{X: 0, Y: 0, View: "日本"}, {X: 5, Y: 0, View: "x"}})
	if lipgloss.Width(got) != 6 || !strings.HasSuffix(got, "x") {
		t.Fatalf("unexpected row %q", got)
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{in: "hello", width: 10, want: "hello"},
		{in: "hello", width: 4, want: "hel…"},
		{in: "hello", width: 1, want: "…"},
		{in: "hello", width: 0, want: ""},
	}
	for _, tt := range tests {
		if got := Truncate(tt.in, tt.width); got != tt.want {
			t.Fatalf("Truncate(%q, %d): got %q, want %q", tt.in, tt.width, got, tt.want)
		}
	}
}
