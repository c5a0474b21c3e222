package vault

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/longkey1/notion-presence/internal/logger"
)

// Record is the persisted configuration. NotionToken and ClientID are
// sealed on disk; SelectedPageID never is.
type Record struct {
	NotionToken    string `json:"notion_token"`
	SelectedPageID string `json:"id"`
	ClientID       string `json:"client_id"`
}

// DefaultRecord returns a record with every field empty.
func DefaultRecord() Record {
	return Record{}
}

// HasCredentials reports whether both secrets are set.
func (r Record) HasCredentials() bool {
	return r.NotionToken != "" && r.ClientID != ""
}

type sensitiveField struct {
	name  string
	value func(*Record) *string
}

var sensitiveFields = []sensitiveField{
	{name: "notion_token", value: func(r *Record) *string { return &r.NotionToken }},
	{name: "client_id", value: func(r *Record) *string { return &r.ClientID }},
}

// EncryptConfig returns a copy of rec with every non-empty sensitive field
// sealed. rec itself is not modified.
func (v *Vault) EncryptConfig(rec Record) (Record, error) {
	out := rec
	for _, f := range sensitiveFields {
		field := f.value(&out)
		if *field == "" {
			continue
		}
		sealed, err := v.EncryptValue(*field)
		if err != nil {
			return Record{}, fmt.Errorf("failed to encrypt %s: %w", f.name, err)
		}
		*field = sealed
	}
	return out, nil
}

// DecryptConfig returns a copy of rec with sensitive fields opened. A field
// that fails to decrypt keeps its stored value, so legacy plaintext files
// keep working.
func (v *Vault) DecryptConfig(rec Record) Record {
	out := rec
	for _, f := range sensitiveFields {
		field := f.value(&out)
		if *field == "" {
			continue
		}
		opened, err := v.DecryptValue(*field)
		if err != nil {
			logger.Debug("keeping stored value", map[string]interface{}{
				"field":  f.name,
				"reason": err.Error(),
			})
			continue
		}
		*field = opened
	}
	return out
}

// Save seals rec and rewrites path with two-space indented JSON.
// The file is replaced atomically so readers never see a partial write.
func (v *Vault) Save(rec Record, path string) error {
	sealed, err := v.EncryptConfig(rec)
	if err != nil {
		logger.Error("Failed to encrypt config", err, map[string]interface{}{"path": path})
		return err
	}

	if err := writeRecord(path, sealed); err != nil {
		logger.Error("Failed to save config", err, map[string]interface{}{"path": path})
		return err
	}

	return nil
}

// Read parses and decrypts path without touching the file. Every failure
// is a *ConfigReadError.
func (v *Vault) Read(path string) (Record, error) {
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Record{}, &ConfigReadError{Path: path, Reason: ReasonMissing, Err: err}
	}
	if err != nil {
		return Record{}, &ConfigReadError{Path: path, Reason: ReasonUnreadable, Err: err}
	}
	if info.Size() == 0 {
		return Record{}, &ConfigReadError{Path: path, Reason: ReasonEmpty}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Record{}, &ConfigReadError{Path: path, Reason: ReasonUnreadable, Err: err}
	}

	content := bytes.TrimSpace(data)
	if len(content) == 0 {
		return Record{}, &ConfigReadError{Path: path, Reason: ReasonEmpty}
	}

	// A bare JSON null decodes into a struct without error.
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(content, &fields); err != nil {
		return Record{}, &ConfigReadError{Path: path, Reason: ReasonCorrupt, Err: err}
	}
	if fields == nil {
		return Record{}, &ConfigReadError{Path: path, Reason: ReasonCorrupt, Err: errors.New("not a JSON object")}
	}

	var rec Record
	if err := json.Unmarshal(content, &rec); err != nil {
		return Record{}, &ConfigReadError{Path: path, Reason: ReasonCorrupt, Err: err}
	}

	return v.DecryptConfig(rec), nil
}

// Load returns the decrypted record stored at path. When the file is
// missing, empty, or corrupt, a default record is written to path and
// returned together with the *ConfigReadError describing why. The
// returned record is always usable.
func (v *Vault) Load(path string) (Record, error) {
	rec, err := v.Read(path)
	if err == nil {
		return rec, nil
	}

	logger.Debug("Creating default config", map[string]interface{}{
		"path":   path,
		"reason": err.Error(),
	})

	def := DefaultRecord()
	if werr := writeRecord(path, def); werr != nil {
		logger.Error("Failed to create default config", werr, map[string]interface{}{"path": path})
	}

	return def, err
}

func writeRecord(path string, rec Record) error {
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write config: %w", err)
	}
	if err := tmp.Chmod(0600); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to set config permissions: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close config: %w", err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("failed to replace config: %w", err)
	}

	return nil
}
