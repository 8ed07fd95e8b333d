package catalog

import (
	"dunearchive/internal/record"
)

// Catalog is the in-memory set of type schemas. It remembers insertion
// order so that every save writes the file deterministically.
type Catalog struct {
	names []string
	types map[string]record.Schema
}

func New() *Catalog {
	return &Catalog{types: make(map[string]record.Schema)}
}

func (c *Catalog) Len() int { return len(c.names) }

func (c *Catalog) Has(name string) bool {
	_, ok := c.types[name]
	return ok
}

func (c *Catalog) Lookup(name string) (record.Schema, bool) {
	s, ok := c.types[name]
	return s, ok
}

// Insert adds a schema under its type name. Duplicate names are the
// caller's problem; an existing entry is left untouched.
func (c *Catalog) Insert(s record.Schema) {
	if c.Has(s.Name) {
		return
	}
	c.names = append(c.names, s.Name)
	c.types[s.Name] = s
}

// Types returns all schemas in insertion order.
func (c *Catalog) Types() []record.Schema {
	out := make([]record.Schema, 0, len(c.names))
	for _, name := range c.names {
		out = append(out, c.types[name])
	}
	return out
}
