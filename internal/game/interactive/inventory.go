package interactive

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/udisondev/openworld/internal/serialize"
)

// Item is a stack of one item kind.
type Item struct {
	Name  string
	Count uint32
}

// Inventory is the payload of a container. Stacks keep insertion order.
type Inventory struct {
	items []Item
}

// Add merges count items into the stack with that name.
func (inv *Inventory) Add(name string, count uint32) {
	if name == "" || count == 0 {
		return
	}
	for i := range inv.items {
		if inv.items[i].Name == name {
			inv.items[i].Count += count
			return
		}
	}
	inv.items = append(inv.items, Item{Name: name, Count: count})
}

// Remove takes count items away. Returns false if not enough are present.
func (inv *Inventory) Remove(name string, count uint32) bool {
	for i := range inv.items {
		if inv.items[i].Name != name {
			continue
		}
		if inv.items[i].Count < count {
			return false
		}
		inv.items[i].Count -= count
		if inv.items[i].Count == 0 {
			inv.items = append(inv.items[:i], inv.items[i+1:]...)
		}
		return true
	}
	return false
}

// Count returns how many items with that name are stored.
func (inv *Inventory) Count(name string) uint32 {
	for _, it := range inv.items {
		if it.Name == name {
			return it.Count
		}
	}
	return 0
}

// Items returns a copy of all stacks.
func (inv *Inventory) Items() []Item {
	out := make([]Item, len(inv.items))
	copy(out, inv.items)
	return out
}

// Len returns the number of stacks.
func (inv *Inventory) Len() int { return len(inv.items) }

// ParseContents parses "ItFo_Apple:3,ItMi_Gold" into stacks. Entries without a
// count hold one item; non-positive counts are skipped.
func ParseContents(s string) []Item {
	var out []Item
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		name, cnt, hasCount := strings.Cut(part, ":")
		name = strings.TrimSpace(name)
		if !hasCount {
			out = append(out, Item{Name: name, Count: 1})
			continue
		}
		n, err := strconv.ParseInt(strings.TrimSpace(cnt), 10, 64)
		if err != nil || n <= 0 {
			continue
		}
		out = append(out, Item{Name: name, Count: uint32(n)})
	}
	return out
}

func (inv *Inventory) save(w *serialize.Writer) {
	w.WriteUint(uint32(len(inv.items)))
	for _, it := range inv.items {
		w.WriteString(it.Name)
		w.WriteUint(it.Count)
	}
}

func (inv *Inventory) load(r *serialize.Reader) error {
	n, err := r.ReadUint()
	if err != nil {
		return fmt.Errorf("reading inventory size: %w", err)
	}
	inv.items = inv.items[:0]
	for i := uint32(0); i < n; i++ {
		name, err := r.ReadString()
		if err != nil {
			return fmt.Errorf("reading item %d name: %w", i, err)
		}
		cnt, err := r.ReadUint()
		if err != nil {
			return fmt.Errorf("reading item %d count: %w", i, err)
		}
		inv.Add(name, cnt)
	}
	return nil
}
