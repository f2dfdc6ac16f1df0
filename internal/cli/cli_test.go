package cli

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/matzehuels/smartview/pkg/draw"
	"github.com/matzehuels/smartview/pkg/errors"
	treeio "github.com/matzehuels/smartview/pkg/io"
	"github.com/matzehuels/smartview/pkg/newick"
	"github.com/matzehuels/smartview/pkg/pipeline"
	"github.com/matzehuels/smartview/pkg/store"
	"github.com/matzehuels/smartview/pkg/tree"
)

func testCLI(t *testing.T) *CLI {
	t.Helper()
	return New(os.Stderr, log.InfoLevel)
}

func mustRead(t *testing.T, text string) *tree.Node {
	t.Helper()
	root, err := newick.Read(text)
	if err != nil {
		t.Fatalf("newick.Read(%q): %v", text, err)
	}
	return root
}

func TestOptionsConfigDefaults(t *testing.T) {
	c := testCLI(t)
	c.Config.Draw.Drawer = "Align"
	c.Config.Draw.AnnotationLimit = 50

	flags := viewFlags{limit: -1, format: "json"}
	opts, err := c.options(&flags, []string{"tree.nw"})
	if err != nil {
		t.Fatalf("options() error: %v", err)
	}
	if opts.Drawer != "Align" {
		t.Errorf("Drawer = %q, want config default", opts.Drawer)
	}
	if opts.AnnotationLimit != 50 {
		t.Errorf("AnnotationLimit = %d, want config default", opts.AnnotationLimit)
	}
	if opts.Title != "tree.nw" {
		t.Errorf("Title = %q, want source name", opts.Title)
	}
	if opts.ZoomX != 1 || opts.ZoomY != 1 {
		t.Errorf("zoom = %v,%v, want 1,1", opts.ZoomX, opts.ZoomY)
	}
}

func TestOptionsFlagsOverrideConfig(t *testing.T) {
	c := testCLI(t)
	c.Config.Draw.AnnotationLimit = 50

	flags := viewFlags{newick: "(A,B);", drawer: "Simple", limit: 0, zx: 2, zy: 0.5, format: "svg"}
	opts, err := c.options(&flags, nil)
	if err != nil {
		t.Fatalf("options() error: %v", err)
	}
	if opts.Drawer != "Simple" || opts.AnnotationLimit != 0 {
		t.Errorf("opts = %+v, want flag values", opts)
	}
	if opts.Title != "" {
		t.Errorf("Title = %q, want empty for inline newick", opts.Title)
	}
}

func TestOptionsInvalid(t *testing.T) {
	tests := []struct {
		name  string
		flags viewFlags
		args  []string
		code  errors.Code
	}{
		{"no source", viewFlags{format: "json"}, nil, errors.ErrCodeInvalidInput},
		{"unknown drawer", viewFlags{drawer: "Fancy", format: "json"}, []string{"t.nw"}, errors.ErrCodeInvalidDrawer},
		{"bad viewport", viewFlags{viewport: []float64{0, 0, 1}, format: "json"}, []string{"t.nw"}, errors.ErrCodeInvalidViewport},
		{"bad format", viewFlags{format: "png"}, []string{"t.nw"}, errors.ErrCodeInvalidFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := testCLI(t).options(&tt.flags, tt.args)
			if got := errors.GetCode(err); got != tt.code {
				t.Errorf("code = %q, want %q (err: %v)", got, tt.code, err)
			}
		})
	}
}

func TestConvertApply(t *testing.T) {
	tests := []struct {
		name string
		opts convertOpts
		in   string
		want string
	}{
		{"no edits", convertOpts{}, "((A,B)C,D);", "((A,B)C,D);"},
		{"sort by leaves", convertOpts{sort: "leaves"}, "((A,B)C,D);", "(D,(A,B)C);"},
		{"sort reversed", convertOpts{sort: "name", reverse: true}, "(A,C,B);", "(C,B,A);"},
		{"prune", convertOpts{prune: []string{"0,1"}}, "((A,B)C,D);", "((A)C,D);"},
		{"move", convertOpts{move: []string{"1=1"}}, "(A,B,C);", "(A,C,B);"},
		{"standardize", convertOpts{standardize: true}, "((A,B)95,C);", "((A,B)[&&NHX:support=95],C);"},
		{"root at", convertOpts{rootAt: "1"}, "((A:1,B:1)C:2,D:2);", "(D:1,(A:1,B:1)C:3);"},
		{"unroot", convertOpts{unroot: true}, "((A,B)C:1,D:2);", "(A,B,D:3);"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root, err := tt.opts.apply(mustRead(t, tt.in))
			if err != nil {
				t.Fatalf("apply() error: %v", err)
			}
			if got := newick.Write(root); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestConvertApplyErrors(t *testing.T) {
	tests := []struct {
		name string
		opts convertOpts
		code errors.Code
	}{
		{"bad sort", convertOpts{sort: "size"}, errors.ErrCodeInvalidInput},
		{"bad prune path", convertOpts{prune: []string{"x"}}, errors.ErrCodeInvalidPath},
		{"prune root", convertOpts{prune: []string{""}}, errors.ErrCodeInvalidPath},
		{"move without shift", convertOpts{move: []string{"0"}}, errors.ErrCodeInvalidInput},
		{"move bad shift", convertOpts{move: []string{"0=up"}}, errors.ErrCodeInvalidInput},
		{"move missing node", convertOpts{move: []string{"5=1"}}, errors.ErrCodeInvalidPath},
		{"root at bad path", convertOpts{rootAt: "a"}, errors.ErrCodeInvalidPath},
		{"root at missing node", convertOpts{rootAt: "0,0"}, errors.ErrCodeInvalidPath},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.opts.apply(mustRead(t, "(A,B);"))
			if got := errors.GetCode(err); got != tt.code {
				t.Errorf("code = %q, want %q (err: %v)", got, tt.code, err)
			}
		})
	}
}

func TestWriteTree(t *testing.T) {
	dir := t.TempDir()
	root := mustRead(t, "(A:1,B:2)C;")

	t.Run("newick by default", func(t *testing.T) {
		path := filepath.Join(dir, "out.nw")
		if err := writeTree(root, path, ""); err != nil {
			t.Fatalf("writeTree() error: %v", err)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatal(err)
		}
		if got := strings.TrimSpace(string(data)); got != "(A:1,B:2)C;" {
			t.Errorf("wrote %q", got)
		}
	})

	t.Run("json from extension", func(t *testing.T) {
		path := filepath.Join(dir, "out.json")
		if err := writeTree(root, path, ""); err != nil {
			t.Fatalf("writeTree() error: %v", err)
		}
		back, err := treeio.ImportJSON(path)
		if err != nil {
			t.Fatalf("ImportJSON() error: %v", err)
		}
		if got := newick.Write(back); got != "(A:1,B:2)C;" {
			t.Errorf("round trip = %q", got)
		}
	})

	t.Run("unknown format", func(t *testing.T) {
		err := writeTree(root, filepath.Join(dir, "out.txt"), "phylip")
		if !errors.Is(err, errors.ErrCodeInvalidFormat) {
			t.Errorf("err = %v, want INVALID_FORMAT", err)
		}
	})
}

func TestDrawersTable(t *testing.T) {
	out := drawersTable(draw.Drawers(), "Full")

	for _, name := range draw.Names() {
		if !strings.Contains(out, name) {
			t.Errorf("table missing drawer %q", name)
		}
	}
	if !strings.Contains(out, "Full *") {
		t.Error("current drawer should be marked")
	}
}

func TestHookCell(t *testing.T) {
	if got := hookCell(nil); got != "—" {
		t.Errorf("hookCell(nil) = %q", got)
	}
	if got := hookCell(draw.Full.Inline); got != strings.Join(draw.Full.Inline.Names(), ", ") {
		t.Errorf("hookCell(Full.Inline) = %q", got)
	}
}

func TestStatsLine(t *testing.T) {
	stats := pipeline.Stats{NodeCount: 3, LeafCount: 2, Primitives: 7}

	fresh := statsLine(stats, false)
	for _, want := range []string{"3 nodes", "2 leaves", "7 primitives", iconFresh} {
		if !strings.Contains(fresh, want) {
			t.Errorf("statsLine missing %q: %q", want, fresh)
		}
	}
	if !strings.Contains(statsLine(pipeline.Stats{}, true), iconCached) {
		t.Error("cached stats should say so")
	}
}

func testRecords() []store.Record {
	now := time.Now()
	return []store.Record{
		{ID: "0123456789abcdef", Name: "primates", UpdatedAt: now},
		{ID: "fedcba9876543210", Name: "birds", Description: "aves", UpdatedAt: now.Add(-2 * time.Hour)},
		{ID: "short", Name: "fungi", UpdatedAt: now.Add(-72 * time.Hour)},
	}
}

func key(s string) tea.KeyMsg {
	switch s {
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestTreeListModel(t *testing.T) {
	var m tea.Model = NewTreeListModel(testRecords())

	for _, k := range []string{"down", "j", "j", "up", "enter"} {
		m, _ = m.Update(key(k))
	}

	got := m.(TreeListModel)
	if got.Cursor != 1 {
		t.Errorf("Cursor = %d, want 1", got.Cursor)
	}
	if got.Selected == nil || got.Selected.Name != "birds" {
		t.Errorf("Selected = %+v, want birds", got.Selected)
	}
}

func TestTreeListModelQuit(t *testing.T) {
	m := NewTreeListModel(testRecords())
	next, cmd := m.Update(key("q"))
	if cmd == nil {
		t.Fatal("q should quit")
	}
	if next.(TreeListModel).Selected != nil {
		t.Error("quitting should not select")
	}
}

func TestTreeListModelScrolls(t *testing.T) {
	m := NewTreeListModel(testRecords())
	m.Height = 2

	var model tea.Model = m
	for range 2 {
		model, _ = model.Update(key("down"))
	}
	if got := model.(TreeListModel).Offset; got != 1 {
		t.Errorf("Offset = %d, want 1", got)
	}
	if view := model.View(); !strings.Contains(view, "[3/3]") {
		t.Errorf("view missing position: %q", view)
	}
}

func TestTreesTable(t *testing.T) {
	out := treesTable(testRecords(), 0)
	for _, want := range []string{"primates", "01234567", "aves", "short", "2h ago", "3d ago"} {
		if !strings.Contains(out, want) {
			t.Errorf("table missing %q", want)
		}
	}
	if strings.Contains(out, "0123456789abcdef") {
		t.Error("IDs should be shortened")
	}
}

func TestFormatRelativeTime(t *testing.T) {
	now := time.Now()
	tests := []struct {
		t    time.Time
		want string
	}{
		{now.Add(-5 * time.Minute), "5m ago"},
		{now.Add(-3 * time.Hour), "3h ago"},
		{now.Add(-49 * time.Hour), "2d ago"},
		{time.Date(2020, 3, 4, 0, 0, 0, 0, time.UTC), "Mar 4, 2020"},
	}
	for _, tt := range tests {
		if got := formatRelativeTime(tt.t); got != tt.want {
			t.Errorf("formatRelativeTime(%v) = %q, want %q", tt.t, got, tt.want)
		}
	}
}

func TestLookupTree(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()
	rec := &store.Record{Name: "primates", Newick: "(A,B);"}
	if err := st.Create(ctx, rec); err != nil {
		t.Fatal(err)
	}

	for _, ref := range []string{rec.ID, "primates"} {
		got, err := lookupTree(ctx, st, ref)
		if err != nil {
			t.Fatalf("lookupTree(%q) error: %v", ref, err)
		}
		if got.ID != rec.ID {
			t.Errorf("lookupTree(%q) = %s, want %s", ref, got.ID, rec.ID)
		}
	}

	if _, err := lookupTree(ctx, st, "birds"); !errors.Is(err, errors.ErrCodeTreeNotFound) {
		t.Errorf("missing tree err = %v, want TREE_NOT_FOUND", err)
	}
}
