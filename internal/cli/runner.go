package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/idilsaglam/shoplist/internal/model"
	"github.com/idilsaglam/shoplist/internal/store"
	"github.com/idilsaglam/shoplist/internal/tui"
	"github.com/idilsaglam/shoplist/internal/ui"
)

// Options tune behavior from root flags.
type Options struct {
	Group bool        // ls grouped by pending/done
	Addr  string      // listen address for serve
	Store store.Store // where the lists live
}

// Run dispatches subcommands and returns an exit code (0 ok, 1 error, 2 usage).
func Run(args []string, opt Options) int {
	if len(args) == 0 {
		PrintHelp()
		return 2
	}
	cmd, a := args[0], args[1:]

	switch cmd {
	case "help", "-h", "--help":
		PrintHelp()
		return 0

	case "lists":
		return doLists()(opt)

	case "new":
		if len(a) == 0 {
			ui.Fail("usage: shoplist new <name...>")
			return 2
		}
		return doNew(strings.Join(a, " "))(opt)

	case "rename":
		if len(a) < 2 {
			ui.Fail("usage: shoplist rename <list> <name...>")
			return 2
		}
		return doRename(a[0], strings.Join(a[1:], " "))(opt)

	case "drop":
		if len(a) != 1 {
			ui.Fail("usage: shoplist drop <list>")
			return 2
		}
		return doDrop(a[0])(opt)

	case "ls":
		if len(a) != 1 {
			ui.Fail("usage: shoplist ls <list>")
			return 2
		}
		return doShow(a[0])(opt)

	case "add":
		if len(a) < 2 {
			ui.Fail("usage: shoplist add <list> <text...>")
			return 2
		}
		return doAdd(a[0], strings.Join(a[1:], " "))(opt)

	case "done", "rm":
		if len(a) != 2 {
			ui.Fail("usage: shoplist " + cmd + " <list> <index>")
			return 2
		}
		n, err := strconv.Atoi(a[1])
		if err != nil {
			ui.Fail(cmd + ": not a number: " + a[1])
			return 2
		}
		if cmd == "done" {
			return doToggle(a[0], n)(opt)
		}
		return doRemove(a[0], n)(opt)

	case "edit":
		if len(a) < 3 {
			ui.Fail("usage: shoplist edit <list> <index> <text...>")
			return 2
		}
		n, err := strconv.Atoi(a[1])
		if err != nil {
			ui.Fail("edit: not a number: " + a[1])
			return 2
		}
		return doEdit(a[0], n, strings.Join(a[2:], " "))(opt)

	case "clear":
		if len(a) != 1 {
			ui.Fail("usage: shoplist clear <list>")
			return 2
		}
		return doClear(a[0])(opt)

	case "tui":
		if err := tui.Run(opt.Store); err != nil {
			ui.Fail("tui: " + err.Error())
			return 1
		}
		return 0

	case "serve":
		return doServe(opt)
	}

	ui.Fail("unknown subcommand: " + cmd)
	PrintHelp()
	return 2
}

func PrintHelp() {
	ui.Println(`shoplist - shopping lists in your terminal

Usage:
  shoplist [flags] <subcommand> [args]

Subcommands:
  lists                          Show every list with its progress
  new <name...>                  Create a list
  rename <list> <name...>        Rename a list
  drop <list>                    Delete a list and its items
  ls <list>                      Show the items of a list
  add <list> <text...>           Add an item
  done <list> <index>            Toggle done for the item at 1-based index
  edit <list> <index> <text...>  Replace the text of an item
  rm <list> <index>              Remove the item at 1-based index
  clear <list>                   Remove completed items
  tui                            Interactive editor
  serve                          Serve the list page over HTTP

<list> is a 1-based list number or a list name.

Examples:
  shoplist new Groceries
  shoplist add Groceries "Oat milk"
  shoplist done groceries 1
  shoplist ls 1`)
}

// usageError marks failures caused by bad arguments (exit code 2).
type usageError struct{ msg string }

func (e usageError) Error() string { return e.msg }

func usagef(format string, args ...any) error {
	return usageError{msg: fmt.Sprintf(format, args...)}
}

// command is a subcommand bound to its arguments.
type command func(opt Options) int

// mutate loads the lists, applies fn and saves the result. fn returns the
// success message.
func mutate(fn func(lists *model.Collection) (string, error)) command {
	return func(opt Options) int {
		lists, err := store.LoadForUpdate(opt.Store)
		if err != nil {
			ui.Fail("load: " + err.Error())
			if store.IsCorrupt(err) {
				ui.Hint("Hint: fix or move " + opt.Store.Path() + " before changing lists")
			}
			return 1
		}
		msg, err := fn(&lists)
		if err != nil {
			ui.Fail(err.Error())
			var ue usageError
			if errors.As(err, &ue) {
				return 2
			}
			return 1
		}
		if err := opt.Store.Save(lists); err != nil {
			ui.Fail("save: " + err.Error())
			return 1
		}
		ui.OK(msg)
		return 0
	}
}

// resolveList finds a list by 1-based position or case-insensitive name.
func resolveList(lists model.Collection, ref string) (int, error) {
	if n, err := strconv.Atoi(ref); err == nil {
		if n < 1 || n > len(lists) {
			return 0, usagef("list out of range: have %d, got %d", len(lists), n)
		}
		return n - 1, nil
	}
	for i, l := range lists {
		if strings.EqualFold(l.Name, ref) {
			return i, nil
		}
	}
	return 0, usagef("no list named %q", ref)
}

func itemIndex(l model.List, userIndex int) (int, error) {
	if userIndex < 1 || userIndex > len(l.Items) {
		return 0, usagef("index out of range: have %d, got %d", len(l.Items), userIndex)
	}
	return userIndex - 1, nil
}

func cleanText(what, s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", usagef("empty %s", what)
	}
	return s, nil
}

// -------------- subcommand impls ----------------

func doNew(name string) command {
	return mutate(func(lists *model.Collection) (string, error) {
		name, err := cleanText("name", name)
		if err != nil {
			return "", err
		}
		l := lists.AddList(name)
		return fmt.Sprintf("created list %d %q", len(*lists), l.Name), nil
	})
}

func doRename(ref, name string) command {
	return mutate(func(lists *model.Collection) (string, error) {
		name, err := cleanText("name", name)
		if err != nil {
			return "", err
		}
		i, err := resolveList(*lists, ref)
		if err != nil {
			return "", err
		}
		(*lists)[i].Name = name
		return "renamed", nil
	})
}

func doDrop(ref string) command {
	return mutate(func(lists *model.Collection) (string, error) {
		i, err := resolveList(*lists, ref)
		if err != nil {
			return "", err
		}
		l := lists.RemoveList(i)
		return fmt.Sprintf("dropped %q (%d items)", l.Name, len(l.Items)), nil
	})
}

func doAdd(ref, text string) command {
	return mutate(func(lists *model.Collection) (string, error) {
		text, err := cleanText("text", text)
		if err != nil {
			return "", err
		}
		i, err := resolveList(*lists, ref)
		if err != nil {
			return "", err
		}
		(*lists)[i].AddItem(text)
		return "added", nil
	})
}

func doToggle(ref string, userIndex int) command {
	return mutate(func(lists *model.Collection) (string, error) {
		i, err := resolveList(*lists, ref)
		if err != nil {
			return "", err
		}
		idx, err := itemIndex((*lists)[i], userIndex)
		if err != nil {
			return "", err
		}
		if (*lists)[i].Toggle(idx) {
			return "done", nil
		}
		return "reopened", nil
	})
}

func doEdit(ref string, userIndex int, text string) command {
	return mutate(func(lists *model.Collection) (string, error) {
		text, err := cleanText("text", text)
		if err != nil {
			return "", err
		}
		i, err := resolveList(*lists, ref)
		if err != nil {
			return "", err
		}
		idx, err := itemIndex((*lists)[i], userIndex)
		if err != nil {
			return "", err
		}
		(*lists)[i].Items[idx].Text = text
		return "updated", nil
	})
}

func doRemove(ref string, userIndex int) command {
	return mutate(func(lists *model.Collection) (string, error) {
		i, err := resolveList(*lists, ref)
		if err != nil {
			return "", err
		}
		idx, err := itemIndex((*lists)[i], userIndex)
		if err != nil {
			return "", err
		}
		(*lists)[i].RemoveItem(idx)
		return "removed", nil
	})
}

func doClear(ref string) command {
	return mutate(func(lists *model.Collection) (string, error) {
		i, err := resolveList(*lists, ref)
		if err != nil {
			return "", err
		}
		n := (*lists)[i].ClearDone()
		return fmt.Sprintf("cleared %d done items", n), nil
	})
}
