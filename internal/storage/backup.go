package storage

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/ramonehamilton/MD-Companion/internal/errs"
)

// Verifier checks that the file at path holds a loadable data file.
type Verifier func(path string) error

// VerifyJSONFile checks that path decodes as a document.
func VerifyJSONFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	_, err = DecodeDocument(data)
	return err
}

// VerifySQLiteFile checks that path is a SQLite database with a records table.
func VerifySQLiteFile(path string) error {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("failed to open backup as database: %w", err)
	}
	defer func() { _ = db.Close() }()

	var n int
	if err := db.QueryRow("SELECT COUNT(*) FROM records").Scan(&n); err != nil {
		return fmt.Errorf("failed to query backup database: %w", err)
	}
	return nil
}

// VerifierFor returns the verifier matching a storage backend.
func VerifierFor(backend string) Verifier {
	if backend == BackendSQLite {
		return VerifySQLiteFile
	}
	return VerifyJSONFile
}

// BackupManager copies the data file into a backup directory and restores it.
type BackupManager struct {
	dataPath  string
	backupDir string
	verify    Verifier
}

// NewBackupManager creates a backup manager for dataPath. An empty backupDir
// means a "backups" directory next to the data file.
func NewBackupManager(dataPath, backupDir string, verify Verifier) *BackupManager {
	if backupDir == "" {
		backupDir = filepath.Join(filepath.Dir(dataPath), "backups")
	}
	if verify == nil {
		verify = VerifyJSONFile
	}
	return &BackupManager{dataPath: dataPath, backupDir: backupDir, verify: verify}
}

// BackupDir returns the backup directory.
func (bm *BackupManager) BackupDir() string {
	return bm.backupDir
}

// BackupConfig holds options for one backup.
type BackupConfig struct {
	// Name is the backup file name without extension. Default: timestamp based.
	Name string

	// Password enables encryption when non-empty.
	Password string
}

// BackupInfo contains information about a backup file.
type BackupInfo struct {
	Path      string    `json:"path"`
	Name      string    `json:"name"`
	Size      int64     `json:"size"`
	ModTime   time.Time `json:"mod_time"`
	Checksum  string    `json:"checksum"`
	Encrypted bool      `json:"encrypted"`
}

// Backup copies the data file into the backup directory and returns its info.
func (bm *BackupManager) Backup(config BackupConfig) (*BackupInfo, error) {
	data, err := os.ReadFile(bm.dataPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read data file: %v: %w", err, errs.ErrIO)
	}
	if err := bm.verify(bm.dataPath); err != nil {
		return nil, fmt.Errorf("data file is not valid, backup refused: %v: %w", err, errs.ErrIO)
	}

	name := config.Name
	if name == "" {
		name = "backup_" + time.Now().Format("20060102_150405")
	}
	name += filepath.Ext(bm.dataPath)

	if config.Password != "" {
		data, err = Encrypt(data, DefaultEncryptionConfig(config.Password))
		if err != nil {
			return nil, fmt.Errorf("failed to encrypt backup: %w", err)
		}
		name += ".enc"
	}

	if err := os.MkdirAll(bm.backupDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create backup directory: %v: %w", err, errs.ErrIO)
	}
	path := filepath.Join(bm.backupDir, name)
	if err := writeFileAtomic(path, data); err != nil {
		return nil, fmt.Errorf("%v: %w", err, errs.ErrIO)
	}

	return stat(path, data)
}

// ListBackups returns the backups, newest first.
func (bm *BackupManager) ListBackups() ([]BackupInfo, error) {
	entries, err := os.ReadDir(bm.backupDir)
	if errors.Is(err, os.ErrNotExist) {
		return []BackupInfo{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read backup directory: %v: %w", err, errs.ErrIO)
	}

	backups := []BackupInfo{}
	for _, entry := range entries {
		if entry.IsDir() || strings.HasSuffix(entry.Name(), ".tmp") {
			continue
		}
		path := filepath.Join(bm.backupDir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		info, err := stat(path, data)
		if err != nil {
			continue
		}
		backups = append(backups, *info)
	}

	sort.Slice(backups, func(i, j int) bool {
		return backups[i].ModTime.After(backups[j].ModTime)
	})
	return backups, nil
}

// Restore replaces the data file with a backup. A name without a directory
// is looked up in the backup directory. The previous data file is kept
// next to it with an ".old.<timestamp>" suffix.
func (bm *BackupManager) Restore(backup, password string) error {
	path := backup
	if filepath.Base(backup) == backup {
		path = filepath.Join(bm.backupDir, backup)
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("backup %s: %w", backup, errs.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to read backup: %v: %w", err, errs.ErrIO)
	}

	if IsEncrypted(data) {
		if password == "" {
			return fmt.Errorf("backup %s is encrypted and no password was given: %w", backup, errs.ErrValidation)
		}
		data, err = Decrypt(data, DefaultEncryptionConfig(password))
		if err != nil {
			return fmt.Errorf("%v: %w", err, errs.ErrIO)
		}
	}

	tempPath := bm.dataPath + ".restore.tmp"
	if err := os.WriteFile(tempPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write temporary restore file: %v: %w", err, errs.ErrIO)
	}
	if err := bm.verify(tempPath); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("restored data verification failed: %v: %w", err, errs.ErrIO)
	}

	if _, err := os.Stat(bm.dataPath); err == nil {
		oldPath := bm.dataPath + ".old." + time.Now().Format("20060102_150405")
		if err := os.Rename(bm.dataPath, oldPath); err != nil {
			_ = os.Remove(tempPath)
			return fmt.Errorf("failed to keep current data file: %v: %w", err, errs.ErrIO)
		}
	}

	if err := os.Rename(tempPath, bm.dataPath); err != nil {
		return fmt.Errorf("failed to replace data file with backup: %v: %w", err, errs.ErrIO)
	}
	return nil
}

func stat(path string, data []byte) (*BackupInfo, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	return &BackupInfo{
		Path:      path,
		Name:      fi.Name(),
		Size:      fi.Size(),
		ModTime:   fi.ModTime(),
		Checksum:  checksum(data),
		Encrypted: IsEncrypted(data),
	}, nil
}

// checksum returns the hex SHA-256 of data.
func checksum(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
