package save

import (
	"errors"
	"fmt"
	"log"

	"github.com/milk9111/kzzzt/common"
	"gopkg.in/yaml.v3"
)

const (
	// AutosaveSlot is written by the game itself; slots 1 to 3 are the
	// player's.
	AutosaveSlot = 0
	SlotCount    = 4

	progressObject = "progress"
	settingsObject = "settings"
	settingsProp   = "global"
)

var ErrInvalidSlot = fmt.Errorf("%w: save slot out of range", common.ErrInvalidArgument)

type SlotInfo struct {
	Slot     int
	Used     bool
	Progress Progress
}

// Manager owns the current progress and settings and writes them to a
// Store. A nil store keeps everything in memory only.
type Manager struct {
	store    Store
	progress Progress
	settings Settings
	logger   *log.Logger
}

type Option func(*Manager)

func WithLogger(logger *log.Logger) Option {
	return func(m *Manager) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// NewManager loads settings from store. A failed load is logged and the
// defaults are used.
func NewManager(store Store, opts ...Option) *Manager {
	m := &Manager{
		store:    store,
		progress: NewProgress(),
		settings: DefaultSettings(),
		logger:   log.Default(),
	}
	for _, opt := range opts {
		opt(m)
	}
	if _, err := m.LoadSettings(); err != nil {
		m.logger.Printf("save: load settings: %v (using defaults)", err)
	}
	return m
}

// Progress returns the live progress. Gameplay mutates it in place.
func (m *Manager) Progress() *Progress {
	return &m.progress
}

func (m *Manager) Settings() *Settings {
	return &m.settings
}

func slotProp(slot int) (string, error) {
	if slot < AutosaveSlot || slot >= SlotCount {
		return "", fmt.Errorf("%w (%d)", ErrInvalidSlot, slot)
	}
	return fmt.Sprintf("slot%d", slot), nil
}

// SaveProgress writes the current progress to slot.
func (m *Manager) SaveProgress(slot int) error {
	prop, err := slotProp(slot)
	if err != nil {
		return err
	}
	if m.store == nil {
		return nil
	}
	data, err := yaml.Marshal(m.progress)
	if err != nil {
		return fmt.Errorf("save: marshal progress: %w", err)
	}
	if err := m.store.Save(progressObject, prop, data); err != nil {
		return fmt.Errorf("save: write slot %d: %w", slot, err)
	}
	m.logger.Printf("save: progress written to slot %d", slot)
	return nil
}

func (m *Manager) readSlot(slot int) (Progress, error) {
	prop, err := slotProp(slot)
	if err != nil {
		return Progress{}, err
	}
	if m.store == nil {
		return Progress{}, fmt.Errorf("save: slot %d: %w", slot, ErrNotFound)
	}
	data, err := m.store.Load(progressObject, prop)
	if err != nil {
		return Progress{}, fmt.Errorf("save: slot %d: %w", slot, err)
	}
	var p Progress
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Progress{}, fmt.Errorf("save: unmarshal slot %d: %w", slot, err)
	}
	p.normalize()
	return p, nil
}

// LoadProgress replaces the current progress with the one in slot.
func (m *Manager) LoadProgress(slot int) (Progress, error) {
	p, err := m.readSlot(slot)
	if err != nil {
		return Progress{}, err
	}
	m.progress = p
	return p, nil
}

func (m *Manager) EraseProgress(slot int) error {
	prop, err := slotProp(slot)
	if err != nil {
		return err
	}
	if m.store == nil {
		return nil
	}
	if err := m.store.Delete(progressObject, prop); err != nil {
		return fmt.Errorf("save: erase slot %d: %w", slot, err)
	}
	return nil
}

// Slots describes every slot, autosave first. Unreadable slots are reported
// as unused.
func (m *Manager) Slots() []SlotInfo {
	out := make([]SlotInfo, 0, SlotCount)
	for slot := AutosaveSlot; slot < SlotCount; slot++ {
		info := SlotInfo{Slot: slot}
		p, err := m.readSlot(slot)
		switch {
		case err == nil:
			info.Used = true
			info.Progress = p
		case !errors.Is(err, ErrNotFound):
			m.logger.Printf("save: %v", err)
		}
		out = append(out, info)
	}
	return out
}

func (m *Manager) SaveSettings() error {
	m.settings.Clamp()
	if m.store == nil {
		return nil
	}
	data, err := yaml.Marshal(m.settings)
	if err != nil {
		return fmt.Errorf("save: marshal settings: %w", err)
	}
	if err := m.store.Save(settingsObject, settingsProp, data); err != nil {
		return fmt.Errorf("save: write settings: %w", err)
	}
	return nil
}

// LoadSettings reads persisted settings. Missing settings are not an error.
func (m *Manager) LoadSettings() (Settings, error) {
	m.settings = DefaultSettings()
	if m.store == nil || !m.store.Exists(settingsObject, settingsProp) {
		return m.settings, nil
	}
	data, err := m.store.Load(settingsObject, settingsProp)
	if err != nil {
		return m.settings, fmt.Errorf("save: read settings: %w", err)
	}
	var s Settings
	if err := yaml.Unmarshal(data, &s); err != nil {
		return m.settings, fmt.Errorf("save: unmarshal settings: %w", err)
	}
	s.Clamp()
	m.settings = s
	return s, nil
}
