package mimesync

import (
	"github.com/joshuapare/codectable/internal/codec"
	"github.com/joshuapare/codectable/pkg/types"
)

// block is the half-open span [start, end) of data rows tagged mimetype.
// An empty block (start == end) marks where new mimetype rows go.
type block struct {
	start int
	end   int
}

// locate finds the contiguous mimetype block. Any mimetype row after the
// first run of them is a layout error. Without a block, the insertion point
// is the first row whose code is at or above the MIME range, so the block
// lands in code order.
func locate(rows []types.Row, schema types.Schema) (block, error) {
	start := -1
	for i, r := range rows {
		if schema.RowTag(r) == types.TagMimetype {
			start = i
			break
		}
	}
	if start < 0 {
		at := insertionPoint(rows, schema)
		return block{start: at, end: at}, nil
	}

	end := start
	for end < len(rows) && schema.RowTag(rows[end]) == types.TagMimetype {
		end++
	}

	for i := end; i < len(rows); i++ {
		if schema.RowTag(rows[i]) == types.TagMimetype {
			return block{}, &types.LayoutError{
				Row:        types.RowNumber(i),
				Name:       schema.RowName(rows[i]),
				BlockStart: types.RowNumber(start),
				BlockEnd:   types.RowNumber(end - 1),
			}
		}
	}
	return block{start: start, end: end}, nil
}

func insertionPoint(rows []types.Row, schema types.Schema) int {
	for i, r := range rows {
		code, err := codec.Decode(schema.RowCode(r))
		if err != nil {
			continue
		}
		if code >= types.MimeRangeStart {
			return i
		}
	}
	return len(rows)
}
