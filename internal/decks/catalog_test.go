package decks

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ramonehamilton/MD-Companion/internal/errs"
)

func TestNewCatalog_DropsBlanksAndDuplicates(t *testing.T) {
	c := NewCatalog([]string{"A", " ", "B", "A", " C "})
	assert.Equal(t, []string{"A", "B", "C"}, c.Names())
}

func TestCatalog_Add(t *testing.T) {
	c := NewCatalog([]string{"A"})

	require.NoError(t, c.Add("  B  "))
	assert.Equal(t, []string{"A", "B"}, c.Names())

	assert.ErrorIs(t, c.Add(""), errs.ErrValidation)
	assert.ErrorIs(t, c.Add("A"), errs.ErrValidation)

	// Case-sensitive match: "a" is a different deck.
	require.NoError(t, c.Add("a"))
	assert.Equal(t, 3, c.Len())
}

func TestCatalog_Rename(t *testing.T) {
	c := NewCatalog([]string{"A", "B", "C"})

	require.NoError(t, c.Rename("B", "D"))
	assert.Equal(t, []string{"A", "D", "C"}, c.Names())

	assert.ErrorIs(t, c.Rename("missing", "E"), errs.ErrNotFound)
	assert.ErrorIs(t, c.Rename("A", "  "), errs.ErrValidation)
	assert.ErrorIs(t, c.Rename("A", "C"), errs.ErrValidation)
	assert.Equal(t, []string{"A", "D", "C"}, c.Names())
}

func TestCatalog_Delete(t *testing.T) {
	c := NewCatalog([]string{"A", "B"})

	require.NoError(t, c.Delete("A"))
	assert.Equal(t, []string{"B"}, c.Names())
	assert.ErrorIs(t, c.Delete("A"), errs.ErrNotFound)
}

func TestParseKind(t *testing.T) {
	k, err := ParseKind("Opp")
	require.NoError(t, err)
	assert.Equal(t, KindOpponent, k)

	k, err = ParseKind("mine")
	require.NoError(t, err)
	assert.Equal(t, KindMine, k)

	_, err = ParseKind("theirs")
	assert.ErrorIs(t, err, errs.ErrValidation)
}

func TestDefaultsHaveNoDuplicates(t *testing.T) {
	assert.Len(t, NewCatalog(DefaultMyDecks()).Names(), len(DefaultMyDecks()))
	assert.Len(t, NewCatalog(DefaultOppDecks()).Names(), len(DefaultOppDecks()))
}
