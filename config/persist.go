package config

import (
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/teranos/resgen/errors"
	"github.com/teranos/resgen/logger"
)

// maxBackups is how many rotated copies Save keeps (.back1 newest)
const maxBackups = 3

// Save writes cfg to path as TOML, rotating up to three backups of the
// file it replaces
func Save(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), DefaultDirPermissions); err != nil {
		return errors.Wrap(err, "failed to create config directory")
	}
	if err := createBackup(path); err != nil {
		return errors.Wrap(err, "failed to create backup")
	}

	data, err := toml.Marshal(cfg)
	if err != nil {
		return errors.Wrap(err, "failed to marshal config")
	}

	if err := os.WriteFile(path, data, DefaultFilePermissions); err != nil {
		return errors.Wrapf(err, "failed to write %s", path)
	}
	return nil
}

// createBackup rotates .back1 -> .back2 -> .back3 and copies path to .back1
func createBackup(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}

	oldest := backupName(path, maxBackups)
	if err := os.Remove(oldest); err != nil && !os.IsNotExist(err) {
		// A stale backup must not block saving
		logger.Warnw("Failed to delete old config backup",
			logger.FieldFile, oldest,
			logger.FieldError, err.Error())
	}

	for n := maxBackups - 1; n >= 1; n-- {
		from := backupName(path, n)
		if _, err := os.Stat(from); err != nil {
			continue
		}
		if err := os.Rename(from, backupName(path, n+1)); err != nil {
			return errors.Wrapf(err, "failed to rotate %s", filepath.Base(from))
		}
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrap(err, "failed to read config for backup")
	}
	if err := os.WriteFile(backupName(path, 1), content, DefaultFilePermissions); err != nil {
		return errors.Wrap(err, "failed to create .back1")
	}
	return nil
}

func backupName(path string, n int) string {
	return path + ".back" + string(rune('0'+n))
}

// IsBackupFile reports whether path is a rotated config backup
func IsBackupFile(path string) bool {
	base := filepath.Base(path)
	for n := 1; n <= maxBackups; n++ {
		if filepath.Ext(base) == ".back"+string(rune('0'+n)) {
			return true
		}
	}
	return false
}
