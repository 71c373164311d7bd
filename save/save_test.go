package save

import (
	"errors"
	"io"
	"log"
	"testing"

	"github.com/milk9111/kzzzt/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietManager(store Store) *Manager {
	return NewManager(store, WithLogger(log.New(io.Discard, "", 0)))
}

func TestProgressRoundTripThroughSlots(t *testing.T) {
	store := NewMemoryStore()
	m := quietManager(store)

	p := m.Progress()
	require.NoError(t, p.CollectGem(1, 2))
	require.NoError(t, p.CollectLetter(1, 2, 1))
	require.NoError(t, p.CompleteLevel(1, 1))
	p.RecordCheckpoint(3)

	require.NoError(t, m.SaveProgress(2))

	other := quietManager(store)
	loaded, err := other.LoadProgress(2)
	require.NoError(t, err)
	assert.Equal(t, 3, loaded.Checkpoint)
	assert.True(t, loaded.IsUnlocked(1, 2))
	assert.False(t, loaded.IsUnlocked(1, 3))
	assert.Equal(t, 1, loaded.GemCount())
	assert.True(t, loaded.Levels[0][1].Letters[1])
	assert.Equal(t, loaded, *other.Progress())
}

func TestSlotBounds(t *testing.T) {
	m := quietManager(NewMemoryStore())
	for _, slot := range []int{-1, SlotCount} {
		err := m.SaveProgress(slot)
		assert.ErrorIs(t, err, ErrInvalidSlot)
		assert.ErrorIs(t, err, common.ErrInvalidArgument)

		_, err = m.LoadProgress(slot)
		assert.ErrorIs(t, err, ErrInvalidSlot)
		assert.ErrorIs(t, m.EraseProgress(slot), ErrInvalidSlot)
	}
}

func TestSlotsAndErase(t *testing.T) {
	m := quietManager(NewMemoryStore())
	require.NoError(t, m.SaveProgress(AutosaveSlot))
	require.NoError(t, m.SaveProgress(3))

	slots := m.Slots()
	require.Len(t, slots, SlotCount)
	used := []bool{slots[0].Used, slots[1].Used, slots[2].Used, slots[3].Used}
	assert.Equal(t, []bool{true, false, false, true}, used)

	require.NoError(t, m.EraseProgress(3))
	assert.False(t, m.Slots()[3].Used)

	_, err := m.LoadProgress(3)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestWriteFailureIsWrapped(t *testing.T) {
	store := NewMemoryStore()
	boom := errors.New("disk full")
	store.SaveErr = boom
	m := quietManager(store)

	assert.ErrorIs(t, m.SaveProgress(1), boom)
	assert.ErrorIs(t, m.SaveSettings(), boom)
}

func TestSettingsPersistAndClamp(t *testing.T) {
	store := NewMemoryStore()
	m := quietManager(store)
	assert.Equal(t, DefaultSettings(), *m.Settings())

	s := m.Settings()
	s.MusicVolume = 150
	s.EffectsVolume = -4
	delete(s.Keys, "pause")
	require.NoError(t, m.SaveSettings())

	reloaded := quietManager(store).Settings()
	assert.Equal(t, MaxVolume, reloaded.MusicVolume)
	assert.Equal(t, MinVolume, reloaded.EffectsVolume)
	assert.Equal(t, "Escape", reloaded.Keys["pause"])
}

func TestCorruptSettingsFallBackToDefaults(t *testing.T) {
	store := NewMemoryStore()
	require.NoError(t, store.Save(settingsObject, settingsProp, []byte("music_volume: [")))

	m := quietManager(store)
	assert.Equal(t, DefaultSettings(), *m.Settings())
}

func TestNilStoreIsMemoryOnly(t *testing.T) {
	m := quietManager(nil)
	require.NoError(t, m.SaveProgress(1))
	require.NoError(t, m.SaveSettings())
	require.NoError(t, m.EraseProgress(1))

	_, err := m.LoadProgress(1)
	assert.ErrorIs(t, err, ErrNotFound)
	for _, info := range m.Slots() {
		assert.False(t, info.Used)
	}
}

func TestProgressRejectsBadIndices(t *testing.T) {
	p := NewProgress()
	assert.True(t, p.IsUnlocked(1, 1))
	assert.False(t, p.IsUnlocked(0, 1))

	assert.ErrorIs(t, p.Unlock(Worlds+1, 1), ErrInvalidLevel)
	assert.ErrorIs(t, p.CollectGem(1, 0), ErrInvalidLevel)
	assert.ErrorIs(t, p.CollectLetter(1, 4, 0), ErrInvalidLevel)
	assert.ErrorIs(t, p.CollectLetter(1, 1, LettersPerLevel), ErrInvalidLevel)
}

func TestCompleteLevelAdvancesWorld(t *testing.T) {
	p := NewProgress()
	p.RecordCheckpoint(2)
	require.NoError(t, p.CompleteLevel(1, LevelsPerWorld))
	assert.True(t, p.IsUnlocked(2, 1))
	assert.Equal(t, 0, p.Checkpoint)
	require.NoError(t, p.CompleteLevel(Worlds, LevelsPerWorld))
}
