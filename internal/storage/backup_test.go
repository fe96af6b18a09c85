package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/ramonehamilton/MD-Companion/internal/errs"
)

func writeSample(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "records.json")
	if err := NewJSONGateway(path, "S38").Save(context.Background(), sampleDocument()); err != nil {
		t.Fatalf("failed to write sample data: %v", err)
	}
	return path
}

func TestBackupManager_BackupAndRestore(t *testing.T) {
	dir := t.TempDir()
	dataPath := writeSample(t, dir)
	bm := NewBackupManager(dataPath, "", VerifyJSONFile)

	info, err := bm.Backup(BackupConfig{Name: "first"})
	if err != nil {
		t.Fatalf("Backup() error = %v", err)
	}
	if info.Name != "first.json" {
		t.Errorf("Name = %q, want first.json", info.Name)
	}
	if info.Encrypted {
		t.Error("backup without password should not be encrypted")
	}
	if len(info.Checksum) != 64 {
		t.Errorf("Checksum = %q, want hex sha256", info.Checksum)
	}
	if filepath.Dir(info.Path) != filepath.Join(dir, "backups") {
		t.Errorf("backup written to %s, want %s", filepath.Dir(info.Path), filepath.Join(dir, "backups"))
	}

	if err := os.WriteFile(dataPath, []byte(`{"records": []}`), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := bm.Restore("first.json", ""); err != nil {
		t.Fatalf("Restore() error = %v", err)
	}

	doc, err := NewJSONGateway(dataPath, "S38").Load(context.Background())
	if err != nil {
		t.Fatalf("Load() after restore error = %v", err)
	}
	if len(doc.Records) != 2 {
		t.Errorf("restored %d records, want 2", len(doc.Records))
	}

	matches, _ := filepath.Glob(dataPath + ".old.*")
	if len(matches) != 1 {
		t.Errorf("expected the replaced data file to be kept, found %v", matches)
	}
}

func TestBackupManager_Encrypted(t *testing.T) {
	dir := t.TempDir()
	dataPath := writeSample(t, dir)
	bm := NewBackupManager(dataPath, filepath.Join(dir, "vault"), nil)

	info, err := bm.Backup(BackupConfig{Name: "secret", Password: "pw"})
	if err != nil {
		t.Fatalf("Backup() error = %v", err)
	}
	if !info.Encrypted || filepath.Ext(info.Name) != ".enc" {
		t.Errorf("expected encrypted .enc backup, got %+v", info)
	}

	if err := bm.Restore(info.Path, ""); !errors.Is(err, errs.ErrValidation) {
		t.Errorf("Restore() without password error = %v, want ErrValidation", err)
	}
	if err := bm.Restore(info.Path, "wrong"); !errors.Is(err, errs.ErrIO) {
		t.Errorf("Restore() with wrong password error = %v, want ErrIO", err)
	}
	if err := bm.Restore(info.Path, "pw"); err != nil {
		t.Errorf("Restore() error = %v", err)
	}
}

func TestBackupManager_RefusesCorruptData(t *testing.T) {
	dir := t.TempDir()
	dataPath := filepath.Join(dir, "records.json")
	if err := os.WriteFile(dataPath, []byte("not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	bm := NewBackupManager(dataPath, "", VerifyJSONFile)
	if _, err := bm.Backup(BackupConfig{}); !errors.Is(err, errs.ErrIO) {
		t.Errorf("Backup() error = %v, want ErrIO", err)
	}
}

func TestBackupManager_RestoreRejectsInvalidBackup(t *testing.T) {
	dir := t.TempDir()
	dataPath := writeSample(t, dir)
	bm := NewBackupManager(dataPath, "", VerifyJSONFile)

	if err := os.MkdirAll(bm.BackupDir(), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(bm.BackupDir(), "bad.json"), []byte("{"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := bm.Restore("bad.json", ""); !errors.Is(err, errs.ErrIO) {
		t.Errorf("Restore() error = %v, want ErrIO", err)
	}
	if err := bm.Restore("missing.json", ""); !errors.Is(err, errs.ErrNotFound) {
		t.Errorf("Restore() of missing backup error = %v, want ErrNotFound", err)
	}
	if _, err := os.Stat(dataPath + ".restore.tmp"); !os.IsNotExist(err) {
		t.Error("temporary restore file should be removed")
	}
}

func TestBackupManager_ListBackups(t *testing.T) {
	dir := t.TempDir()
	dataPath := writeSample(t, dir)
	bm := NewBackupManager(dataPath, "", VerifyJSONFile)

	backups, err := bm.ListBackups()
	if err != nil {
		t.Fatalf("ListBackups() error = %v", err)
	}
	if len(backups) != 0 {
		t.Errorf("expected no backups, got %d", len(backups))
	}

	for _, name := range []string{"one", "two"} {
		if _, err := bm.Backup(BackupConfig{Name: name}); err != nil {
			t.Fatalf("Backup(%s) error = %v", name, err)
		}
	}

	backups, err = bm.ListBackups()
	if err != nil {
		t.Fatalf("ListBackups() error = %v", err)
	}
	if len(backups) != 2 {
		t.Errorf("expected 2 backups, got %d", len(backups))
	}
}
