package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"swapCore/internal/model"
)

// State is the full durable state: every pool record plus the custody
// ledger's balance and supply rows.
type State struct {
	Pools     []model.Pool          `json:"pools"`
	Balances  []model.BalanceRecord `json:"balances"`
	Supplies  []model.SupplyRecord  `json:"supplies"`
	UpdatedAt string                `json:"updated_at"`
}

// StateFile persists State in a local JSON file, written atomically via
// tmp+rename so a crash never leaves a torn file.
type StateFile struct {
	Path string
}

func (s *StateFile) Load() (State, bool, error) {
	if s == nil || s.Path == "" {
		return State{}, false, nil
	}
	data, err := os.ReadFile(s.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return State{}, false, nil
		}
		return State{}, false, fmt.Errorf("read state: %w", err)
	}

	var st State
	if err := json.Unmarshal(data, &st); err != nil {
		return State{}, false, fmt.Errorf("parse state: %w", err)
	}
	return st, true, nil
}

func (s *StateFile) Save(st State) error {
	if s == nil || s.Path == "" {
		return nil
	}
	dir := filepath.Dir(s.Path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create state dir: %w", err)
		}
	}

	st.UpdatedAt = time.Now().UTC().Format(time.RFC3339Nano)
	data, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("marshal state: %w", err)
	}

	tmp := s.Path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write state tmp: %w", err)
	}
	if err := os.Rename(tmp, s.Path); err != nil {
		return fmt.Errorf("rename state: %w", err)
	}
	return nil
}
