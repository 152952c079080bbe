package storage

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/ethereum/go-ethereum/common"

	"swapCore/internal/model"
)

func TestJsonlJournalAppend(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.jsonl")
	journal := NewJsonlJournal(path)

	recs := []model.TransitionRecord{
		{Kind: model.TransitionCreate, PoolID: common.HexToHash("0x01"), FeeBps: 30, AppliedAt: "2026-01-01T00:00:00Z"},
		{Kind: model.TransitionSwap, PoolID: common.HexToHash("0x01"), AmountIn: 10, AmountOut: 9, AppliedAt: "2026-01-01T00:00:01Z"},
	}
	for _, rec := range recs {
		if err := journal.Append(rec); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	file, err := os.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	var got []model.TransitionRecord
	for scanner.Scan() {
		var rec model.TransitionRecord
		if err := json.Unmarshal(scanner.Bytes(), &rec); err != nil {
			t.Fatalf("unmarshal line: %v", err)
		}
		got = append(got, rec)
	}
	if err := scanner.Err(); err != nil {
		t.Fatalf("scan: %v", err)
	}

	if len(got) != 2 {
		t.Fatalf("journal has %d lines, want 2", len(got))
	}
	if got[0].Kind != model.TransitionCreate || got[1].AmountOut != 9 {
		t.Fatalf("round-trip mismatch: %+v", got)
	}
}

func TestStateFileRoundTrip(t *testing.T) {
	sf := &StateFile{Path: filepath.Join(t.TempDir(), "state.json")}

	if _, ok, err := sf.Load(); err != nil || ok {
		t.Fatalf("fresh state file: ok=%v err=%v", ok, err)
	}

	st := State{
		Pools:    []model.Pool{{ID: common.HexToHash("0x01"), Seed: 7, FeeBps: 30}},
		Balances: []model.BalanceRecord{{Asset: common.HexToHash("0xaa"), Holder: common.HexToAddress("0x01"), Amount: 100}},
		Supplies: []model.SupplyRecord{{Asset: common.HexToHash("0xaa"), Amount: 100}},
	}
	if err := sf.Save(st); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, ok, err := sf.Load()
	if err != nil || !ok {
		t.Fatalf("load: ok=%v err=%v", ok, err)
	}
	if len(loaded.Pools) != 1 || loaded.Pools[0].Seed != 7 {
		t.Fatalf("pools mismatch: %+v", loaded.Pools)
	}
	if len(loaded.Balances) != 1 || loaded.Balances[0].Amount != 100 {
		t.Fatalf("balances mismatch: %+v", loaded.Balances)
	}
	if loaded.UpdatedAt == "" {
		t.Fatalf("updated_at not stamped")
	}
}

func TestStateFileNilSafe(t *testing.T) {
	var sf *StateFile
	if _, ok, err := sf.Load(); err != nil || ok {
		t.Fatalf("nil state file load: ok=%v err=%v", ok, err)
	}
	if err := sf.Save(State{}); err != nil {
		t.Fatalf("nil state file save: %v", err)
	}
}
