package session

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zucenko/arena/input"
)

func TestNew(t *testing.T) {
	s, err := New(3)
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, s.ID)
	assert.Equal(t, []input.Slot{0, 1, 2}, s.Eligible())
	assert.False(t, s.Over())

	_, err = New(0)
	assert.ErrorIs(t, err, ErrPlayers)
	_, err = New(5)
	assert.ErrorIs(t, err, ErrPlayers)
}

func TestRecordScoresAndCarriesEliminations(t *testing.T) {
	s, err := New(4)
	require.NoError(t, err)

	s.Record(Result{
		Round:      1,
		Players:    4,
		Kills:      [][]input.Slot{{}, {}, {0, 3}, {}},
		Eliminated: []input.Slot{0, 3},
	})

	assert.Equal(t, []int{0, 0, 2, 0}, s.Scores)
	assert.True(t, s.IsEliminated(0))
	assert.True(t, s.IsEliminated(3))
	assert.Equal(t, []input.Slot{1, 2}, s.Eligible())
	assert.Equal(t, 1, s.Round)
	assert.False(t, s.Over())

	s.Record(Result{Round: 2, Players: 4, Kills: [][]input.Slot{{}, {}, {1}, {}}, Eliminated: []input.Slot{1}})
	assert.True(t, s.Over())
	assert.Equal(t, 3, s.Scores[2])
}

func TestRecordSelfKillScoresNothing(t *testing.T) {
	s, err := New(2)
	require.NoError(t, err)
	s.Record(Result{Round: 1, Kills: [][]input.Slot{{0}, {}}, Eliminated: []input.Slot{0}})
	assert.Equal(t, []int{0, 0}, s.Scores)
}

func TestScoreBoost(t *testing.T) {
	s, err := New(2)
	require.NoError(t, err)
	_, err = s.Upgrade(1, ScoreBoost)
	require.NoError(t, err)
	_, err = s.Upgrade(1, ScoreBoost)
	require.NoError(t, err)

	s.Record(Result{Round: 1, Kills: [][]input.Slot{{}, {0}}, Eliminated: []input.Slot{0}})
	assert.Equal(t, 3, s.Scores[1])
}

func TestUpgradeLimits(t *testing.T) {
	s, err := New(2)
	require.NoError(t, err)

	lvl, err := s.Upgrade(0, AutoBlaster)
	require.NoError(t, err)
	assert.Equal(t, 1, lvl)

	_, err = s.Upgrade(0, AutoBlaster)
	assert.ErrorIs(t, err, ErrMaxLevel)
	_, err = s.Upgrade(0, Mod("LASER"))
	assert.ErrorIs(t, err, ErrUnknownMod)
	_, err = s.Upgrade(2, Shield)
	assert.ErrorIs(t, err, input.ErrInvalidSlot)

	assert.Equal(t, 1, s.Levels(0).Of(AutoBlaster))
	assert.Equal(t, 0, s.Levels(1).Of(AutoBlaster))
}

func TestCatalogLevels(t *testing.T) {
	assert.Len(t, Catalog, 10)
	for m, info := range Catalog {
		assert.NotEmpty(t, info.Name, m)
		assert.True(t, info.MaxLevel == 1 || info.MaxLevel == 3, m)
	}
}
