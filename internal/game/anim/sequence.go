// Package anim resolves symbolic animation keys against skeleton catalogs
// and synthesizes the keys interactive objects and characters ask for.
package anim

import "time"

// Sequence is a named animation clip of a skeleton.
type Sequence struct {
	Name     string
	Duration time.Duration
	Loop     bool
}

// Catalog is a named set of sequences (a skeleton or an overlay).
// Lookups must be pure: same name, same answer.
type Catalog interface {
	Name() string
	Sequence(name string) (*Sequence, bool)
}

// MemCatalog is an in-memory Catalog.
type MemCatalog struct {
	name string
	seqs map[string]*Sequence
}

// NewMemCatalog creates a catalog from a list of sequences.
func NewMemCatalog(name string, seqs ...Sequence) *MemCatalog {
	c := &MemCatalog{
		name: name,
		seqs: make(map[string]*Sequence, len(seqs)),
	}
	for i := range seqs {
		s := seqs[i]
		c.seqs[s.Name] = &s
	}
	return c
}

// Name returns the catalog (skeleton) name.
func (c *MemCatalog) Name() string { return c.name }

// Sequence looks up a clip by name.
func (c *MemCatalog) Sequence(name string) (*Sequence, bool) {
	s, ok := c.seqs[name]
	return s, ok
}

// Len returns the number of clips.
func (c *MemCatalog) Len() int { return len(c.seqs) }
