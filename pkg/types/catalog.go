package types

import (
	"fmt"
	"sort"
	"strings"
)

// Section is a MIME top-level category owning SectionSpan codes from Base.
type Section struct {
	Name string
	Base uint64
}

// Contains reports whether code lies in the section's range.
func (s Section) Contains(code uint64) bool {
	return code&^(SectionSpan-1) == s.Base
}

// Last returns the highest code the section may assign.
func (s Section) Last() uint64 {
	return s.Base + SectionSpan - 1
}

// DefaultSections returns the MIME sections in code order.
func DefaultSections() []Section {
	return []Section{
		{Name: "application", Base: 0x200000},
		{Name: "audio", Base: 0x210000},
		{Name: "font", Base: 0x220000},
		{Name: "image", Base: 0x230000},
		{Name: "message", Base: 0x240000},
		{Name: "model", Base: 0x250000},
		{Name: "multipart", Base: 0x260000},
		{Name: "text", Base: 0x270000},
		{Name: "video", Base: 0x280000},
	}
}

// DefaultAliases returns the alias groups: names allowed to share one code.
func DefaultAliases() [][]string {
	return [][]string{
		{"ipfs", "p2p"},
	}
}

// Catalog is the immutable configuration shared by the validator and the
// synchronizer. Build it once with NewCatalog or DefaultCatalog.
type Catalog struct {
	sections []Section
	byName   map[string]Section
	aliases  map[string]int
}

// DefaultCatalog returns the catalog with the default sections and aliases.
func DefaultCatalog() *Catalog {
	c, err := NewCatalog(DefaultSections(), DefaultAliases())
	if err != nil {
		panic(err) // defaults are static
	}
	return c
}

// NewCatalog validates and indexes sections and alias groups. Sections must
// have distinct names and bases, each base aligned to SectionSpan inside the
// MIME range. A name may belong to at most one alias group.
func NewCatalog(sections []Section, aliases [][]string) (*Catalog, error) {
	c := &Catalog{
		sections: append([]Section(nil), sections...),
		byName:   make(map[string]Section, len(sections)),
		aliases:  make(map[string]int),
	}
	bases := make(map[uint64]string, len(sections))
	for _, s := range c.sections {
		if s.Name == "" || strings.Contains(s.Name, "/") {
			return nil, fmt.Errorf("invalid section name %q", s.Name)
		}
		if _, dup := c.byName[s.Name]; dup {
			return nil, fmt.Errorf("duplicate section %q", s.Name)
		}
		if s.Base%SectionSpan != 0 || !InMimeRange(s.Base) {
			return nil, fmt.Errorf("section %q base 0x%x is not a 0x%x-aligned code in the MIME range", s.Name, s.Base, SectionSpan)
		}
		if other, dup := bases[s.Base]; dup {
			return nil, fmt.Errorf("sections %q and %q share base 0x%x", other, s.Name, s.Base)
		}
		bases[s.Base] = s.Name
		c.byName[s.Name] = s
	}
	sort.Slice(c.sections, func(i, j int) bool { return c.sections[i].Base < c.sections[j].Base })

	for gi, group := range aliases {
		for _, name := range group {
			if prev, dup := c.aliases[name]; dup && prev != gi {
				return nil, fmt.Errorf("name %q appears in more than one alias group", name)
			}
			c.aliases[name] = gi
		}
	}
	return c, nil
}

// Sections returns a copy of the sections in code order.
func (c *Catalog) Sections() []Section {
	return append([]Section(nil), c.sections...)
}

// Section looks up a section by name.
func (c *Catalog) Section(name string) (Section, bool) {
	s, ok := c.byName[name]
	return s, ok
}

// Aliased reports whether a and b are distinct members of the same alias
// group.
func (c *Catalog) Aliased(a, b string) bool {
	if a == b {
		return false
	}
	ga, ok := c.aliases[a]
	if !ok {
		return false
	}
	gb, ok := c.aliases[b]
	return ok && ga == gb
}

// SplitMediaType splits "section/subtype" into its parts. A name without a
// slash yields an empty subtype.
func SplitMediaType(name string) (section, subtype string, hasSubtype bool) {
	section, subtype, hasSubtype = strings.Cut(name, "/")
	return section, subtype, hasSubtype
}
