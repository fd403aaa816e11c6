package cli

import (
	"fmt"

	"github.com/idilsaglam/shoplist/internal/model"
	"github.com/idilsaglam/shoplist/internal/store"
	"github.com/idilsaglam/shoplist/internal/ui"
)

const maxTextWidth = 80

// load reads the lists for display; only a missing file counts as empty.
func load(opt Options) (model.Collection, bool) {
	lists, err := store.LoadForUpdate(opt.Store)
	if err != nil {
		ui.Fail("load: " + err.Error())
		return nil, false
	}
	return lists, true
}

func doLists() command {
	return func(opt Options) int {
		lists, ok := load(opt)
		if !ok {
			return 1
		}
		t := ui.Current()

		var done, pending int
		for _, l := range lists {
			d, p := l.Stats()
			done += d
			pending += p
		}
		lines := []string{
			fmt.Sprintf("%s  %s %d  %s %d  %s %d",
				t.Title.Render("Shopping lists"),
				t.Success.Render(t.SymDone), done,
				t.Pending.Render(t.SymPending), pending,
				t.Accent.Render("Lists"), len(lists),
			),
			"",
		}
		if len(lists) == 0 {
			lines = append(lines, t.Muted.Render("no lists"))
		}
		for i, l := range lists {
			d, p := l.Stats()
			lines = append(lines, fmt.Sprintf("%s %s  %s  %s",
				t.Muted.Render(fmt.Sprintf("%2d.", i+1)),
				truncate(l.Name),
				t.Muted.Render(fmt.Sprintf("%d/%d", d, d+p)),
				t.Muted.Render(ui.ProgressBar(d, d+p, 12)),
			))
		}
		lines = append(lines, "", t.Muted.Render("Tip: create one with `shoplist new Groceries`"))
		ui.Panel(lines)
		return 0
	}
}

func doShow(ref string) command {
	return func(opt Options) int {
		lists, ok := load(opt)
		if !ok {
			return 1
		}
		i, err := resolveList(lists, ref)
		if err != nil {
			ui.Fail(err.Error())
			ui.Hint("Hint: run `shoplist lists` to see valid lists")
			return 2
		}
		l := lists[i]
		t := ui.Current()

		d, p := l.Stats()
		lines := []string{
			fmt.Sprintf("%s  %s %d  %s %d  %s %d",
				t.Title.Render(l.Name),
				t.Success.Render(t.SymDone), d,
				t.Pending.Render(t.SymPending), p,
				t.Accent.Render("Total"), len(l.Items),
			),
			t.Muted.Render(ui.ProgressBar(d, d+p, 28)),
			"",
		}
		if opt.Group {
			lines = append(lines, groupLines(l.Items)...)
		} else {
			lines = append(lines, flatLines(l.Items, allIndexes(len(l.Items)))...)
		}
		lines = append(lines, "", t.Muted.Render(fmt.Sprintf("Tip: add with `shoplist add %d \"Oat milk\"`", i+1)))
		ui.Panel(lines)
		return 0
	}
}

// -------------- rendering helpers --------------

func truncate(s string) string {
	r := []rune(s)
	if len(r) > maxTextWidth {
		return string(r[:maxTextWidth-3]) + "..."
	}
	return s
}

func allIndexes(n int) []int {
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	return idx
}

// flatLines renders items; positions holds each item's index in the list so
// grouped output still shows the numbers `done` and `rm` expect.
func flatLines(items []model.Item, positions []int) []string {
	t := ui.Current()
	if len(items) == 0 {
		return []string{t.Muted.Render("no items")}
	}
	out := make([]string, 0, len(items))
	for i, it := range items {
		box, text := t.Muted.Render(t.BoxUnchecked), truncate(it.Text)
		if it.Done {
			box, text = t.Success.Render(t.BoxChecked), t.DoneText.Render(text)
		}
		out = append(out, fmt.Sprintf("%s %s %s",
			t.Muted.Render(fmt.Sprintf("%2d.", positions[i]+1)), box, text))
	}
	return out
}

func groupLines(items []model.Item) []string {
	var pend, done []model.Item
	var pendPos, donePos []int
	for i, it := range items {
		if it.Done {
			done = append(done, it)
			donePos = append(donePos, i)
		} else {
			pend = append(pend, it)
			pendPos = append(pendPos, i)
		}
	}
	t := ui.Current()
	var lines []string
	lines = append(lines, t.Accent.Render("Pending"))
	if len(pend) == 0 {
		lines = append(lines, t.Muted.Render("(none)"))
	} else {
		lines = append(lines, flatLines(pend, pendPos)...)
	}
	lines = append(lines, "")
	lines = append(lines, t.Accent.Render("Done"))
	if len(done) == 0 {
		lines = append(lines, t.Muted.Render("(none)"))
	} else {
		lines = append(lines, flatLines(done, donePos)...)
	}
	return lines
}
