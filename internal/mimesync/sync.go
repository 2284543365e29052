// Package mimesync reconciles the table's mimetype block with an external
// enumeration of media type names.
//
// Codes inside a MIME section are handed out sequentially from the section
// base in registration order and are never renumbered. The synchronizer
// replays the existing block to recover each section's last assigned code,
// refuses to continue if the block does not replay cleanly, assigns the next
// codes to names it has not seen, and splices the sorted block back in place.
// Rows outside the block are never touched.
package mimesync

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/joshuapare/codectable/internal/codec"
	"github.com/joshuapare/codectable/pkg/types"
)

// Options configures a synchronization run.
type Options struct {
	// Schema is the table generation; it must have a tag column.
	Schema types.Schema

	// Catalog supplies the MIME sections. Nil uses the default.
	Catalog *types.Catalog

	// Logger receives per-assignment debug records. The zero value
	// discards them.
	Logger zerolog.Logger
}

// Assignment is a code handed to a previously unseen media type.
type Assignment struct {
	Name string `json:"name"`
	Code uint64 `json:"code"`
}

// Result is the outcome of a successful run.
type Result struct {
	// Table is the updated table. The input table is not modified.
	Table *types.Table

	// Added lists new assignments in source order.
	Added []Assignment

	// Existing is the number of mimetype rows found in the table.
	Existing int

	// BlockStart and BlockEnd delimit the rewritten block as data row
	// positions, half-open.
	BlockStart int
	BlockEnd   int
}

// Changed reports whether the run assigned any new code.
func (r *Result) Changed() bool {
	return len(r.Added) > 0
}

// entry is one mimetype row of the rebuilt block.
type entry struct {
	name string
	code uint64
	row  *types.Row // existing row, nil for new assignments
}

// state is the replayed view of the block.
type state struct {
	cat     *types.Catalog
	schema  types.Schema
	last    map[string]uint64 // section -> last assigned code
	entries []entry
	known   map[string]struct{}
}

func newState(cat *types.Catalog, schema types.Schema) *state {
	s := &state{
		cat:    cat,
		schema: schema,
		last:   make(map[string]uint64),
		known:  make(map[string]struct{}),
	}
	for _, sec := range cat.Sections() {
		s.last[sec.Name] = sec.Base
	}
	return s
}

// Sync merges names into the mimetype block of t. Every precondition is
// checked before anything is built, so an error means no change.
func Sync(t *types.Table, names []string, opts Options) (*Result, error) {
	schema := opts.Schema
	if !schema.HasTag() {
		return nil, fmt.Errorf("%w: %s", types.ErrNoTagColumn, schema.Name)
	}
	cat := opts.Catalog
	if cat == nil {
		cat = types.DefaultCatalog()
	}
	log := opts.Logger

	b, err := locate(t.Rows, schema)
	if err != nil {
		return nil, err
	}
	log.Debug().
		Int("start", types.RowNumber(b.start)).
		Int("rows", b.end-b.start).
		Msg("located mimetype block")

	s := newState(cat, schema)
	if err := s.replay(t.Rows[b.start:b.end], b.start); err != nil {
		return nil, err
	}
	existing := len(s.entries)

	added, err := s.assign(names)
	if err != nil {
		return nil, err
	}
	for _, a := range added {
		log.Debug().Str("name", a.Name).Str("code", codec.Encode(a.Code)).Msg("assigned media type code")
	}

	out := t.Clone()
	rendered := s.render()
	rows := make([]types.Row, 0, len(out.Rows)-(b.end-b.start)+len(rendered))
	rows = append(rows, out.Rows[:b.start]...)
	rows = append(rows, rendered...)
	rows = append(rows, out.Rows[b.end:]...)
	out.Rows = rows

	log.Debug().
		Int("existing", existing).
		Int("added", len(added)).
		Msg("mimetype block synchronized")

	return &Result{
		Table:      out,
		Added:      added,
		Existing:   existing,
		BlockStart: b.start,
		BlockEnd:   b.start + len(rendered),
	}, nil
}

// replay walks the existing block in order, checking that every code is the
// one sequential assignment would have produced.
func (s *state) replay(rows []types.Row, offset int) error {
	for i := range rows {
		r := &rows[i]
		idx := types.RowNumber(offset + i)
		name := s.schema.RowName(*r)

		if len(r.Cells) != s.schema.Arity() {
			return &types.ConsistencyError{Row: idx, Name: name,
				Message: fmt.Sprintf("expected %d items, got %d", s.schema.Arity(), len(r.Cells))}
		}
		code, err := codec.Decode(s.schema.RowCode(*r))
		if err != nil {
			return &types.ConsistencyError{Row: idx, Name: name, Message: "unreadable code", Cause: err}
		}
		if _, dup := s.known[name]; dup {
			return &types.ConsistencyError{Row: idx, Name: name, Message: "duplicate mimetype"}
		}

		section, subtype, hasSubtype := types.SplitMediaType(name)
		sec, ok := s.cat.Section(section)
		if !ok {
			return &types.UnknownSectionError{Section: section, MimeType: name}
		}

		if !hasSubtype {
			if code != sec.Base {
				return &types.ConsistencyError{Row: idx, Name: name,
					Message: fmt.Sprintf("expected section code 0x%x, got 0x%x", sec.Base, code)}
			}
		} else {
			if subtype == "" || strings.Contains(subtype, "/") {
				return &types.ConsistencyError{Row: idx, Name: name, Message: "invalid mimetype"}
			}
			if !sec.Contains(code) {
				return &types.ConsistencyError{Row: idx, Name: name,
					Message: fmt.Sprintf("wrong section for type: expected 0x%x-0x%x, got 0x%x", sec.Base, sec.Last(), code)}
			}
			want := s.last[section] + 1
			if code != want {
				return &types.ConsistencyError{Row: idx, Name: name,
					Message: fmt.Sprintf("expected code 0x%x, got 0x%x", want, code)}
			}
			s.last[section] = code
		}

		s.known[name] = struct{}{}
		s.entries = append(s.entries, entry{name: name, code: code, row: r})
	}
	return nil
}

// assign hands the next code of its section to every unseen name, in the
// order the source lists them.
func (s *state) assign(names []string) ([]Assignment, error) {
	var added []Assignment
	for _, name := range names {
		if _, ok := s.known[name]; ok {
			continue
		}

		section, subtype, hasSubtype := types.SplitMediaType(name)
		if !hasSubtype || subtype == "" || strings.Contains(subtype, "/") {
			return nil, fmt.Errorf("%w: %q", types.ErrInvalidMediaType, name)
		}
		sec, ok := s.cat.Section(section)
		if !ok {
			return nil, &types.UnknownSectionError{Section: section, MimeType: name}
		}

		code := s.last[section] + 1
		if code > sec.Last() {
			return nil, &types.ConsistencyError{Name: name,
				Message: fmt.Sprintf("section %s has no codes left after 0x%x", section, sec.Last())}
		}
		s.last[section] = code

		s.known[name] = struct{}{}
		s.entries = append(s.entries, entry{name: name, code: code})
		added = append(added, Assignment{Name: name, Code: code})
	}
	return added, nil
}

// render sorts the block by code and produces its rows. Existing rows keep
// their other cells; only the code is re-rendered in canonical form.
func (s *state) render() []types.Row {
	sort.SliceStable(s.entries, func(i, j int) bool {
		return s.entries[i].code < s.entries[j].code
	})

	rows := make([]types.Row, 0, len(s.entries))
	for _, e := range s.entries {
		if e.row == nil {
			rows = append(rows, s.schema.NewRow(e.name, types.TagMimetype, codec.Encode(e.code), ""))
			continue
		}
		r := e.row.Clone()
		r.Cells[s.schema.CodeCol] = codec.Encode(e.code)
		rows = append(rows, r)
	}
	return rows
}
