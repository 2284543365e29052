package types

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchemaByName(t *testing.T) {
	for _, tt := range []struct {
		in    string
		want  string
		arity int
	}{
		{"", SchemaStrict, 5},
		{"strict", SchemaStrict, 5},
		{"TAGGED", SchemaTagged, 4},
		{" legacy ", SchemaLegacy, 3},
	} {
		s, err := SchemaByName(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, s.Name)
		assert.Equal(t, tt.arity, s.Arity())
	}

	_, err := SchemaByName("v9")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownSchema))
}

func TestSchemaChecks(t *testing.T) {
	strict := StrictSchema()
	assert.True(t, strict.CheckAlignment)
	assert.True(t, strict.CheckOrder)
	assert.True(t, strict.CheckReserved)
	require.NotNil(t, strict.NamePattern)
	assert.True(t, strict.HasTag())

	tagged := TaggedSchema()
	assert.False(t, tagged.CheckAlignment || tagged.CheckOrder || tagged.CheckReserved)
	assert.Nil(t, tagged.NamePattern)
	assert.True(t, tagged.HasTag())

	assert.False(t, LegacySchema().HasTag())
}

func TestSchemaNewRow(t *testing.T) {
	r := StrictSchema().NewRow("image/png", TagMimetype, "0x00230001", "")
	assert.Equal(t, []string{"image/png", TagMimetype, "0x00230001", DefaultStatus, ""}, r.Cells)

	r = TaggedSchema().NewRow("image/png", TagMimetype, "0x00230001", "desc")
	assert.Equal(t, []string{"image/png", TagMimetype, "0x00230001", "desc"}, r.Cells)

	r = LegacySchema().NewRow("identity", "ignored", "0x00", "raw")
	assert.Equal(t, []string{"identity", "0x00", "raw"}, r.Cells)

	s := TaggedSchema()
	assert.Equal(t, "identity", s.RowName(r.Clone()))
	assert.Equal(t, "", LegacySchema().RowTag(r))
}

func TestRanges(t *testing.T) {
	assert.False(t, InMimeRange(0x1fffff))
	assert.True(t, InMimeRange(0x200000))
	assert.True(t, InMimeRange(0x2fffff))
	assert.False(t, InMimeRange(0x300000))

	assert.False(t, InPrivateUse(0x2fffff))
	assert.True(t, InPrivateUse(0x300000))
	assert.True(t, InPrivateUse(0x3fffff))
	assert.False(t, InPrivateUse(0x400000))
}

func TestRowSeparator(t *testing.T) {
	assert.True(t, NewRow("", "", "").Separator())
	assert.True(t, NewRow("# hashes", "", "").Separator())
	assert.True(t, NewRow().Separator())
	assert.False(t, NewRow("# hashes", "x", "").Separator())
	assert.False(t, NewRow("identity", "", "").Separator())
	assert.False(t, NewRow("", "", "0x00").Separator())
}
