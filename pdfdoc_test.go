package covdoc_test

import (
	"strings"
	"testing"

	"github.com/covdoc/covdoc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildPDFSections(t *testing.T) {
	t.Parallel()

	t.Run("returns nothing for no pages", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, covdoc.BuildPDFSections(nil))
	})

	t.Run("infers page ranges from section offsets", func(t *testing.T) {
		t.Parallel()

		pages := []covdoc.PDFPage{
			{Number: 12, Text: "Section 3.1 " + strings.Repeat("Fences shall be painted Highlands Ranch Brown. ", 4)},
			{Number: 13, Text: strings.Repeat("Gates shall match the fencing they adjoin in both height and finish. ", 3)},
			{Number: 14, Text: "Section 3.2 " + strings.Repeat("Decks require ARC approval before construction begins. ", 4)},
		}

		sections := covdoc.BuildPDFSections(pages)

		require.Len(t, sections, 2)
		assert.Equal(t, "Section 3.1", sections[0].Title)
		assert.Equal(t, "12-13", sections[0].PageRange)
		assert.Equal(t, "Section 3.2", sections[1].Title)
		assert.Equal(t, "14", sections[1].PageRange)
	})

	t.Run("falls back to a single section spanning the document", func(t *testing.T) {
		t.Parallel()

		pages := []covdoc.PDFPage{
			{Number: 1, Text: "nothing resembling a heading"},
			{Number: 2, Text: "still nothing resembling a heading"},
		}

		sections := covdoc.BuildPDFSections(pages)

		require.Len(t, sections, 1)
		assert.Equal(t, "General Content", sections[0].Title)
		assert.Equal(t, "1-2", sections[0].PageRange)
	})

	t.Run("attaches tags from section text and title", func(t *testing.T) {
		t.Parallel()

		pages := []covdoc.PDFPage{
			{Number: 5, Text: "Section 9.1 " + strings.Repeat("Every fence must be painted an approved brown color. ", 3)},
		}

		sections := covdoc.BuildPDFSections(pages)

		require.Len(t, sections, 1)
		assert.Contains(t, sections[0].Tags, "fence")
		assert.Contains(t, sections[0].Tags, "brown")
	})
}
