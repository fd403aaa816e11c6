package model

import (
	"reflect"
	"testing"
)

func TestNextIDsStartAtOneAndSkipGaps(t *testing.T) {
	var c Collection
	if got := c.NextListID(); got != 1 {
		t.Fatalf("NextListID() on empty = %d, want 1", got)
	}
	c = Collection{{ID: 4}, {ID: 2}}
	if got := c.NextListID(); got != 5 {
		t.Errorf("NextListID() = %d, want 5", got)
	}

	l := List{Items: []Item{{ID: 7}, {ID: 3}}}
	if got := l.NextItemID(); got != 8 {
		t.Errorf("NextItemID() = %d, want 8", got)
	}
}

func TestAddToggleRemove(t *testing.T) {
	var c Collection
	l := c.AddList("Groceries")
	l.AddItem("Milk")
	l.AddItem("Eggs")
	l.AddItem("Bread")

	if !c[0].Toggle(1) {
		t.Fatal("Toggle(1) = false, want true")
	}
	done, pending := c[0].Stats()
	if done != 1 || pending != 2 {
		t.Errorf("Stats() = (%d, %d), want (1, 2)", done, pending)
	}

	removed := c[0].RemoveItem(0)
	if removed.Text != "Milk" {
		t.Errorf("RemoveItem(0) = %q, want Milk", removed.Text)
	}
	want := []Item{{ID: 2, Text: "Eggs", Done: true}, {ID: 3, Text: "Bread"}}
	if !reflect.DeepEqual(c[0].Items, want) {
		t.Errorf("Items = %+v, want %+v", c[0].Items, want)
	}

	// ids are never reused while a higher one exists
	if it := c[0].AddItem("Jam"); it.ID != 4 {
		t.Errorf("AddItem id = %d, want 4", it.ID)
	}
}

func TestClearDoneKeepsOrder(t *testing.T) {
	l := List{Items: []Item{
		{ID: 1, Text: "a", Done: true},
		{ID: 2, Text: "b"},
		{ID: 3, Text: "c", Done: true},
		{ID: 4, Text: "d"},
	}}
	if n := l.ClearDone(); n != 2 {
		t.Fatalf("ClearDone() = %d, want 2", n)
	}
	want := []Item{{ID: 2, Text: "b"}, {ID: 4, Text: "d"}}
	if !reflect.DeepEqual(l.Items, want) {
		t.Errorf("Items = %+v, want %+v", l.Items, want)
	}
}

func TestRemoveList(t *testing.T) {
	c := Collection{{ID: 1, Name: "a"}, {ID: 2, Name: "b"}, {ID: 3, Name: "c"}}
	if got := c.RemoveList(1); got.Name != "b" {
		t.Errorf("RemoveList(1) = %q, want b", got.Name)
	}
	if len(c) != 2 || c[0].Name != "a" || c[1].Name != "c" {
		t.Errorf("collection after remove = %+v", c)
	}
}

func TestCloneIsDeep(t *testing.T) {
	orig := Collection{{ID: 1, Name: "a", Items: []Item{{ID: 1, Text: "x"}}}, {ID: 2, Name: "b", Items: []Item{}}}
	cp := orig.Clone()
	if !reflect.DeepEqual(orig, cp) {
		t.Fatalf("Clone() = %+v, want %+v", cp, orig)
	}
	cp[0].Items[0].Text = "changed"
	cp[0].Name = "changed"
	if orig[0].Items[0].Text != "x" || orig[0].Name != "a" {
		t.Error("mutating the clone changed the original")
	}
	if (Collection)(nil).Clone() != nil {
		t.Error("Clone() of nil should stay nil")
	}
}

func TestNormalize(t *testing.T) {
	if got := (Collection)(nil).Normalize(); got == nil || len(got) != 0 {
		t.Errorf("Normalize(nil) = %#v, want empty non-nil", got)
	}
	c := Collection{{ID: 1, Name: "a"}}.Normalize()
	if c[0].Items == nil {
		t.Error("Normalize left a nil item slice")
	}
}
