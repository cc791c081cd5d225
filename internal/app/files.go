package app

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"gopkg.in/yaml.v3"

	"github.com/balkashynov/taskflow/internal/notify"
)

// Format is a snapshot file encoding
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat accepts json, yaml or yml
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("invalid format '%s'. Use: json, yaml", s)
	}
}

// FormatForPath picks the format from a file extension, defaulting to JSON
func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// BackupName is the default export file name for the current day
func (m *Manager) BackupName(format Format) string {
	ext := "json"
	if format == FormatYAML {
		ext = "yaml"
	}
	return fmt.Sprintf("taskflow_backup_%s.%s", m.now().Format("2006-01-02"), ext)
}

// EncodeSnapshot serializes the task list in the requested format
func (m *Manager) EncodeSnapshot(format Format) ([]byte, error) {
	if format != FormatYAML {
		return m.store.ExportSnapshot()
	}
	data, err := yaml.Marshal(m.store.All())
	if err != nil {
		return nil, fmt.Errorf("failed to encode tasks as yaml: %w", err)
	}
	return data, nil
}

// Export writes a snapshot to path, or to the default backup name inside
// dir when path is a directory or empty. It returns the written path.
func (m *Manager) Export(path string, format Format) (string, bool) {
	target, err := m.exportPath(path, format)
	if err == nil {
		var data []byte
		data, err = m.EncodeSnapshot(format)
		if err == nil {
			err = os.WriteFile(target, data, 0o644)
		}
		if err == nil {
			m.logger.Info("exported tasks", "path", target, "bytes", len(data))
			m.notifier.Notify(fmt.Sprintf("%s (%s)", MsgExported, humanize.Bytes(uint64(len(data)))), notify.KindSuccess)
			return target, true
		}
	}
	m.logger.Error("export failed", "path", path, "error", err)
	m.notifier.Notify(MsgExportFailed, notify.KindError)
	return "", false
}

func (m *Manager) exportPath(path string, format Format) (string, error) {
	if path == "" {
		return m.BackupName(format), nil
	}
	info, err := os.Stat(path)
	if err == nil && info.IsDir() {
		return filepath.Join(path, m.BackupName(format)), nil
	}
	if err != nil && !os.IsNotExist(err) {
		return "", err
	}
	return path, nil
}

// ImportFile reads a snapshot file and replaces the task list with it
func (m *Manager) ImportFile(path string) bool {
	data, err := os.ReadFile(path)
	if err != nil {
		m.logger.Error("import failed", "path", path, "error", err)
		m.notifier.Notify(MsgImportFailed, notify.KindError)
		return false
	}
	return m.Import(FormatForPath(path), data)
}

// Import replaces the task list with a decoded snapshot.
// On any decoding or validation failure the list is left unchanged.
func (m *Manager) Import(format Format, data []byte) bool {
	payload := data
	if format == FormatYAML {
		var err error
		if payload, err = yamlToJSON(data); err != nil {
			m.logger.Error("import failed", "format", format, "error", err)
			m.notifier.Notify(MsgImportFailed, notify.KindError)
			return false
		}
	}

	if err := m.store.ImportSnapshot(payload); err != nil {
		m.logger.Error("import failed", "format", format, "error", err)
		m.notifier.Notify(MsgImportFailed, notify.KindError)
		return false
	}
	m.notifier.Notify(MsgImported, notify.KindSuccess)
	m.checkSaved()
	return true
}

// yamlToJSON re-encodes a yaml document so the store's JSON validation
// applies to both formats
func yamlToJSON(data []byte) ([]byte, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("invalid yaml: %w", err)
	}
	out, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("yaml is not representable as json: %w", err)
	}
	return out, nil
}
