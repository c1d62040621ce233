package storage

import (
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "promotions.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func sampleRows() []Row {
	return []Row{
		{Name: "Maslo Tatra 125 g", CurrentPrice: "2.49", RegularPrice: "2.99", Discount: "2.19", ValidityDate: "24.09.", Source: "tesco"},
		{Name: "Mlieko 1 l", CurrentPrice: "1.19", RegularPrice: "-", Discount: "-", ValidityDate: "-", Source: "tesco"},
		{Name: "Rožok", CurrentPrice: "0.09", RegularPrice: "-", Discount: "-", ValidityDate: "-", Source: "billa"},
	}
}

func TestInsertAndFetchAll(t *testing.T) {
	store := openTestStore(t)
	if err := store.InsertRows(sampleRows()); err != nil {
		t.Fatalf("InsertRows: %v", err)
	}

	rows, err := store.FetchAll()
	if err != nil {
		t.Fatalf("FetchAll: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("rows = %d, want 3", len(rows))
	}
	// Newest first.
	if rows[0].Name != "Rožok" {
		t.Errorf("first row = %q, want most recent insert", rows[0].Name)
	}
	if rows[0].ID == 0 {
		t.Error("row id not assigned")
	}
	if rows[0].ScrapedAt.IsZero() {
		t.Error("scraped_at not populated")
	}
}

func TestCountBySource(t *testing.T) {
	store := openTestStore(t)
	if err := store.InsertRows(sampleRows()); err != nil {
		t.Fatalf("InsertRows: %v", err)
	}

	n, err := store.CountBySource("tesco")
	if err != nil {
		t.Fatalf("CountBySource: %v", err)
	}
	if n != 2 {
		t.Errorf("tesco count = %d, want 2", n)
	}
	n, err = store.CountBySource("unknown")
	if err != nil {
		t.Fatalf("CountBySource: %v", err)
	}
	if n != 0 {
		t.Errorf("unknown count = %d, want 0", n)
	}
}

func TestDeleteSource(t *testing.T) {
	store := openTestStore(t)
	if err := store.InsertRows(sampleRows()); err != nil {
		t.Fatalf("InsertRows: %v", err)
	}

	if err := store.DeleteSource("tesco"); err != nil {
		t.Fatalf("DeleteSource: %v", err)
	}
	rows, err := store.FetchAll()
	if err != nil {
		t.Fatalf("FetchAll: %v", err)
	}
	if len(rows) != 1 || rows[0].Source != "billa" {
		t.Errorf("rows after delete = %+v", rows)
	}
}

func TestInsertRowsEmpty(t *testing.T) {
	store := openTestStore(t)
	if err := store.InsertRows(nil); err != nil {
		t.Fatalf("InsertRows(nil): %v", err)
	}
	rows, err := store.FetchAll()
	if err != nil {
		t.Fatalf("FetchAll: %v", err)
	}
	if len(rows) != 0 {
		t.Errorf("rows = %d, want 0", len(rows))
	}
}
