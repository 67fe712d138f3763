package config

import (
	"os"
	"strconv"
	"sync"

	"gopkg.in/yaml.v3"

	"worktime-control/internal/errors"
)

// Settings is the hot-reloadable control-settings blob. An evaluation works
// against one immutable snapshot of it; reload timing is the caller's concern.
//
// Office and user ids are kept as strings, mirroring how the settlement system
// delivers them.
type Settings struct {
	Enabled               bool             `yaml:"enabled"`
	ControlledOfficeIDs   []string         `yaml:"controlled_offices"`
	ExclusiveUserIDs      []string         `yaml:"exclusive_users"`
	OfficeTimeZones       map[int64]string `yaml:"office_time_zones"`
	ProjectsPreventNew    []int64          `yaml:"projects_prevent_new"`
	ProjectsPreventClosed []int64          `yaml:"projects_prevent_closed"`
	LastEmployeesHash     string           `yaml:"last_employees_hash"`
}

// OfficeControlled reports whether the given office is subject to track control.
func (s *Settings) OfficeControlled(officeID int64) bool {
	id := strconv.FormatInt(officeID, 10)
	for _, controlled := range s.ControlledOfficeIDs {
		if controlled == id {
			return true
		}
	}
	return false
}

// UserExclusive reports whether the given user is in the exclusive list.
func (s *Settings) UserExclusive(userID int64) bool {
	id := strconv.FormatInt(userID, 10)
	for _, exclusive := range s.ExclusiveUserIDs {
		if exclusive == id {
			return true
		}
	}
	return false
}

// TimeZoneForOffice returns the IANA zone mapped to an office, or empty string.
func (s *Settings) TimeZoneForOffice(officeID int64) string {
	if s.OfficeTimeZones == nil {
		return ""
	}
	return s.OfficeTimeZones[officeID]
}

// ProjectPreventsNew reports whether tracking against new-status issues is
// blocked for the given project.
func (s *Settings) ProjectPreventsNew(projectID int64) bool {
	return containsID(s.ProjectsPreventNew, projectID)
}

// ProjectPreventsClosed reports whether tracking against closed issues is
// blocked for the given project.
func (s *Settings) ProjectPreventsClosed(projectID int64) bool {
	return containsID(s.ProjectsPreventClosed, projectID)
}

func containsID(ids []int64, id int64) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}

// Clone returns a deep copy of the settings.
func (s *Settings) Clone() *Settings {
	clone := *s
	clone.ControlledOfficeIDs = append([]string(nil), s.ControlledOfficeIDs...)
	clone.ExclusiveUserIDs = append([]string(nil), s.ExclusiveUserIDs...)
	clone.ProjectsPreventNew = append([]int64(nil), s.ProjectsPreventNew...)
	clone.ProjectsPreventClosed = append([]int64(nil), s.ProjectsPreventClosed...)
	if s.OfficeTimeZones != nil {
		clone.OfficeTimeZones = make(map[int64]string, len(s.OfficeTimeZones))
		for office, zone := range s.OfficeTimeZones {
			clone.OfficeTimeZones[office] = zone
		}
	}
	return &clone
}

// SettingsStore holds the current control settings and hands out immutable
// snapshots. Replacing the settings never disturbs an evaluation already
// holding a snapshot.
type SettingsStore struct {
	mu      sync.RWMutex
	current *Settings
}

// NewSettingsStore creates a store seeded with the given settings.
func NewSettingsStore(settings *Settings) *SettingsStore {
	if settings == nil {
		settings = &Settings{}
	}
	return &SettingsStore{current: settings.Clone()}
}

// Snapshot returns a copy of the current settings.
func (st *SettingsStore) Snapshot() *Settings {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return st.current.Clone()
}

// Replace swaps in new settings.
func (st *SettingsStore) Replace(settings *Settings) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.current = settings.Clone()
}

// LoadSettingsFile reads control settings from a YAML file.
func LoadSettingsFile(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.NewConfigurationError("settings file", err)
	}
	var settings Settings
	if err := yaml.Unmarshal(data, &settings); err != nil {
		return nil, errors.NewConfigurationError("settings file", err)
	}
	return &settings, nil
}

// SaveSettingsFile writes control settings to a YAML file.
func SaveSettingsFile(path string, settings *Settings) error {
	data, err := yaml.Marshal(settings)
	if err != nil {
		return errors.NewConfigurationError("settings file", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.NewConfigurationError("settings file", err)
	}
	return nil
}
