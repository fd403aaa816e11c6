package model

// Item is a single checkable entry of a shopping list.
// ID is unique within its parent list.
type Item struct {
	ID   int    `json:"id"`
	Text string `json:"text"`
	Done bool   `json:"done"`
}

// List is a named, ordered sequence of items.
// ID is unique among all lists of a Collection; item order is display order.
type List struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Items []Item `json:"items"`
}

// Collection is every list the user has, in display order.
// It is the unit of persistence: always saved and loaded as a whole.
type Collection []List

// NextItemID returns one past the largest item id in the list.
func (l *List) NextItemID() int {
	next := 1
	for _, it := range l.Items {
		if it.ID >= next {
			next = it.ID + 1
		}
	}
	return next
}

// AddItem appends a new pending item and returns it.
func (l *List) AddItem(text string) Item {
	it := Item{ID: l.NextItemID(), Text: text}
	l.Items = append(l.Items, it)
	return it
}

// Toggle flips the done flag of the item at idx and reports the new value.
func (l *List) Toggle(idx int) bool {
	l.Items[idx].Done = !l.Items[idx].Done
	return l.Items[idx].Done
}

// RemoveItem deletes the item at idx, keeping the order of the rest.
func (l *List) RemoveItem(idx int) Item {
	it := l.Items[idx]
	l.Items = append(l.Items[:idx], l.Items[idx+1:]...)
	return it
}

// ClearDone drops completed items and returns how many were removed.
func (l *List) ClearDone() int {
	kept := l.Items[:0]
	for _, it := range l.Items {
		if !it.Done {
			kept = append(kept, it)
		}
	}
	n := len(l.Items) - len(kept)
	l.Items = kept
	return n
}

// Stats counts done and pending items.
func (l List) Stats() (done, pending int) {
	for _, it := range l.Items {
		if it.Done {
			done++
		} else {
			pending++
		}
	}
	return
}

// NextListID returns one past the largest list id in the collection.
func (c Collection) NextListID() int {
	next := 1
	for _, l := range c {
		if l.ID >= next {
			next = l.ID + 1
		}
	}
	return next
}

// AddList appends an empty list and returns a pointer into the collection.
func (c *Collection) AddList(name string) *List {
	*c = append(*c, List{ID: c.NextListID(), Name: name, Items: []Item{}})
	return &(*c)[len(*c)-1]
}

// RemoveList deletes the list at idx, keeping the order of the rest.
func (c *Collection) RemoveList(idx int) List {
	l := (*c)[idx]
	*c = append((*c)[:idx], (*c)[idx+1:]...)
	return l
}

// Clone returns a deep copy; mutating it never affects c.
func (c Collection) Clone() Collection {
	if c == nil {
		return nil
	}
	out := make(Collection, len(c))
	for i, l := range c {
		out[i] = l
		if l.Items != nil {
			out[i].Items = make([]Item, len(l.Items))
			copy(out[i].Items, l.Items)
		}
	}
	return out
}

// Normalize replaces nil item slices with empty ones so every list
// serializes its items as a JSON array.
func (c Collection) Normalize() Collection {
	if c == nil {
		return Collection{}
	}
	for i := range c {
		if c[i].Items == nil {
			c[i].Items = []Item{}
		}
	}
	return c
}
