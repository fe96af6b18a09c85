package season

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ramonehamilton/MD-Companion/internal/errs"
	"github.com/ramonehamilton/MD-Companion/internal/models"
	"github.com/ramonehamilton/MD-Companion/internal/records"
)

func newStore(seasons ...string) *records.Store {
	recs := make([]models.MatchRecord, len(seasons))
	for i, s := range seasons {
		recs[i] = models.MatchRecord{
			ID:      i,
			MyDeck:  "A",
			OppDeck: "X",
			Result:  models.ResultWin,
			Turn:    models.TurnFirst,
			Coin:    models.CoinHeads,
			Season:  s,
		}
	}
	return records.NewStore(recs)
}

func TestPartition_List(t *testing.T) {
	p := NewPartition(newStore("S37", "S36", "S37"), "S38")
	assert.Equal(t, []string{"S36", "S37", "S38"}, p.List())

	p.Activate("S36")
	assert.Equal(t, []string{"S36", "S37"}, p.List())
}

func TestPartition_ActivateUnseen(t *testing.T) {
	p := NewPartition(newStore("S37"), "S37")
	p.Activate("S40")

	assert.Equal(t, "S40", p.Active())
	assert.Equal(t, []string{"S37", "S40"}, p.List())
}

func TestPartition_Create(t *testing.T) {
	store := newStore("S37")
	p := NewPartition(store, "S38")

	err := p.Create("S37")
	assert.ErrorIs(t, err, errs.ErrDuplicate)
	assert.Equal(t, "S38", p.Active())

	err = p.Create("S38")
	assert.ErrorIs(t, err, errs.ErrDuplicate, "the active season counts as existing")

	assert.ErrorIs(t, p.Create("   "), errs.ErrValidation)

	require.NoError(t, p.Create(" S39 "))
	assert.Equal(t, "S39", p.Active())
	assert.Equal(t, 1, store.Len())
}

func TestPartition_Delete(t *testing.T) {
	store := newStore("S37", "S38", "S37")
	p := NewPartition(store, "S38")

	_, err := p.Delete("S38")
	assert.ErrorIs(t, err, errs.ErrInvalidOperation)
	assert.Equal(t, 3, store.Len(), "refused delete must leave the store unchanged")

	n, err := p.Delete("S37")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, []string{"S38"}, p.List())
}
