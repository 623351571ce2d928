package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSectionBlockArrayOps(t *testing.T) {
	db := testDB(t)

	// first add creates the row
	section, err := AddSectionBlock(db, "BSIT", 1, "A")
	require.NoError(t, err)
	assert.Equal(t, []string{"A"}, section.SectionBlocks)

	// further adds append, duplicates are ignored
	section, err = AddSectionBlock(db, "BSIT", 1, "B")
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B"}, section.SectionBlocks)

	section, err = AddSectionBlock(db, "BSIT", 1, "A")
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B"}, section.SectionBlocks)

	section, err = RemoveSectionBlock(db, "BSIT", 1, "A")
	require.NoError(t, err)
	assert.Equal(t, []string{"B"}, section.SectionBlocks)

	// removing an absent block is a no-op, not an error
	section, err = RemoveSectionBlock(db, "BSIT", 1, "Z")
	require.NoError(t, err)
	assert.Equal(t, []string{"B"}, section.SectionBlocks)

	sections, err := GetCourseSections(db, "BSIT", 1)
	require.NoError(t, err)
	require.Len(t, sections, 1)
	assert.Equal(t, []string{"B"}, sections[0].SectionBlocks)
}
