package cli

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/idilsaglam/shoplist/internal/model"
	"github.com/idilsaglam/shoplist/internal/store"
	"github.com/idilsaglam/shoplist/internal/store/jsonstore"
	"github.com/idilsaglam/shoplist/internal/store/memstore"
	"github.com/idilsaglam/shoplist/internal/ui"
)

// capture routes ui output into a buffer for the duration of the test.
func capture(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	ui.SetOutput(&buf, &buf)
	t.Cleanup(func() { ui.SetOutput(os.Stdout, os.Stderr) })
	return &buf
}

func run(t *testing.T, s store.Store, args ...string) int {
	t.Helper()
	return Run(args, Options{Store: s})
}

func lists(t *testing.T, s store.Store) model.Collection {
	t.Helper()
	got, err := s.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	return got
}

func TestRun_Usage(t *testing.T) {
	capture(t)
	s := memstore.New()
	tests := []struct {
		args []string
		want int
	}{
		{nil, 2},
		{[]string{"help"}, 0},
		{[]string{"bogus"}, 2},
		{[]string{"new"}, 2},
		{[]string{"add", "1"}, 2},
		{[]string{"done", "1", "x"}, 2},
		{[]string{"rm", "1"}, 2},
		{[]string{"edit", "1", "one"}, 2},
		{[]string{"rename", "1"}, 2},
		{[]string{"ls"}, 2},
	}
	for _, tt := range tests {
		if got := Run(tt.args, Options{Store: s}); got != tt.want {
			t.Errorf("Run(%q) = %d, want %d", tt.args, got, tt.want)
		}
	}
	if s.Saves() != 0 {
		t.Errorf("usage errors saved %d times", s.Saves())
	}
}

func TestRun_ListLifecycle(t *testing.T) {
	out := capture(t)
	s := memstore.New()

	steps := [][]string{
		{"new", "Groceries"},
		{"new", "Hardware", "store"},
		{"add", "groceries", "Oat", "milk"},
		{"add", "1", "Bread"},
		{"add", "1", "Oat milk"},
		{"done", "Groceries", "2"},
		{"edit", "1", "3", "Butter"},
		{"rename", "2", "DIY"},
	}
	for _, args := range steps {
		if code := run(t, s, args...); code != 0 {
			t.Fatalf("Run(%q) = %d, output:\n%s", args, code, out)
		}
	}

	got := lists(t, s)
	want := model.Collection{
		{ID: 1, Name: "Groceries", Items: []model.Item{
			{ID: 1, Text: "Oat milk"},
			{ID: 2, Text: "Bread", Done: true},
			{ID: 3, Text: "Butter"},
		}},
		{ID: 2, Name: "DIY", Items: []model.Item{}},
	}
	if len(got) != len(want) {
		t.Fatalf("lists = %+v, want %+v", got, want)
	}
	for i := range want {
		if got[i].ID != want[i].ID || got[i].Name != want[i].Name || len(got[i].Items) != len(want[i].Items) {
			t.Fatalf("list %d = %+v, want %+v", i, got[i], want[i])
		}
		for j := range want[i].Items {
			if got[i].Items[j] != want[i].Items[j] {
				t.Errorf("item %d/%d = %+v, want %+v", i, j, got[i].Items[j], want[i].Items[j])
			}
		}
	}

	if code := run(t, s, "clear", "1"); code != 0 {
		t.Fatalf("clear = %d", code)
	}
	if code := run(t, s, "rm", "1", "1"); code != 0 {
		t.Fatalf("rm = %d", code)
	}
	if items := lists(t, s)[0].Items; len(items) != 1 || items[0].Text != "Butter" {
		t.Errorf("items = %+v, want only Butter", items)
	}

	if code := run(t, s, "drop", "diy"); code != 0 {
		t.Fatalf("drop = %d", code)
	}
	if got := lists(t, s); len(got) != 1 {
		t.Errorf("lists after drop = %+v", got)
	}
}

func TestRun_BadReferences(t *testing.T) {
	out := capture(t)
	s := memstore.Seed(model.Collection{{ID: 1, Name: "Groceries", Items: []model.Item{{ID: 1, Text: "Milk"}}}})

	tests := [][]string{
		{"add", "3", "x"},
		{"add", "Pharmacy", "x"},
		{"done", "1", "2"},
		{"rm", "1", "0"},
		{"new", "   "},
		{"add", "1", " "},
		{"ls", "9"},
	}
	for _, args := range tests {
		if code := run(t, s, args...); code != 2 {
			t.Errorf("Run(%q) = %d, want 2", args, code)
		}
	}
	if s.Saves() != 0 {
		t.Errorf("bad references saved %d times", s.Saves())
	}
	if !strings.Contains(out.String(), `no list named "Pharmacy"`) {
		t.Errorf("output missing list-name error:\n%s", out)
	}
}

func TestRun_CorruptDataBlocksWrites(t *testing.T) {
	out := capture(t)
	dir := t.TempDir()
	s := jsonstore.New(dir)
	if err := os.WriteFile(s.Path(), []byte(`[{ id: 1,`), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	if code := run(t, s, "new", "Groceries"); code != 1 {
		t.Fatalf("new over corrupt file = %d, want 1", code)
	}
	b, err := os.ReadFile(s.Path())
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(b) != `[{ id: 1,` {
		t.Errorf("corrupt file was overwritten with %q", b)
	}
	if !strings.Contains(out.String(), "Hint: fix or move") {
		t.Errorf("output missing hint:\n%s", out)
	}
	if code := run(t, s, "lists"); code != 1 {
		t.Errorf("lists over corrupt file = %d, want 1", code)
	}
}

func TestRun_SaveFailure(t *testing.T) {
	out := capture(t)
	s := memstore.New()
	s.FailSave(errors.New("disk full"))
	if code := run(t, s, "new", "Groceries"); code != 1 {
		t.Errorf("new with failing save = %d, want 1", code)
	}
	if !strings.Contains(out.String(), "save: disk full") {
		t.Errorf("output = %q", out)
	}
}

func TestRun_FirstRunWithJSONStore(t *testing.T) {
	capture(t)
	dir := filepath.Join(t.TempDir(), "data")
	s := jsonstore.New(dir)

	if code := run(t, s, "lists"); code != 0 {
		t.Fatalf("lists on first run = %d, want 0", code)
	}
	if _, err := os.Stat(s.Path()); !os.IsNotExist(err) {
		t.Error("reading lists created the backing file")
	}
	if code := run(t, s, "new", "Épicerie 🧀"); code != 0 {
		t.Fatalf("new = %d", code)
	}
	if got := lists(t, s); got[0].Name != "Épicerie 🧀" {
		t.Errorf("name = %q", got[0].Name)
	}
}

func TestRun_Rendering(t *testing.T) {
	ui.SetTheme("mono")
	t.Cleanup(func() { ui.SetTheme("classic") })
	out := capture(t)
	s := memstore.Seed(model.Collection{{ID: 1, Name: "Groceries", Items: []model.Item{
		{ID: 1, Text: "Milk", Done: true},
		{ID: 2, Text: "Eggs"},
	}}})

	if code := run(t, s, "lists"); code != 0 {
		t.Fatalf("lists = %d", code)
	}
	if !strings.Contains(out.String(), "Groceries") || !strings.Contains(out.String(), "1/2") {
		t.Errorf("lists output:\n%s", out)
	}

	out.Reset()
	if code := Run([]string{"ls", "1"}, Options{Store: s, Group: true}); code != 0 {
		t.Fatalf("ls = %d", code)
	}
	got := out.String()
	// grouped output keeps each item's position in the list
	if !strings.Contains(got, " 2. [ ] Eggs") || !strings.Contains(got, " 1. [x] Milk") {
		t.Errorf("grouped ls output:\n%s", got)
	}
	if strings.Index(got, "Pending") > strings.Index(got, "Done") {
		t.Errorf("Pending section should come before Done:\n%s", got)
	}
}

func TestResolveList(t *testing.T) {
	c := model.Collection{{ID: 5, Name: "Groceries"}, {ID: 6, Name: "Hardware"}}
	tests := []struct {
		ref     string
		want    int
		wantErr bool
	}{
		{"1", 0, false},
		{"2", 1, false},
		{"hardware", 1, false},
		{"0", 0, true},
		{"3", 0, true},
		{"Pharmacy", 0, true},
	}
	for _, tt := range tests {
		got, err := resolveList(c, tt.ref)
		if (err != nil) != tt.wantErr || (!tt.wantErr && got != tt.want) {
			t.Errorf("resolveList(%q) = (%d, %v), want (%d, err=%v)", tt.ref, got, err, tt.want, tt.wantErr)
		}
	}
}
