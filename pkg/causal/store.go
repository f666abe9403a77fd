package causal

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Load reads an ontology from a JSON file. Malformed JSON surfaces as an
// error; nothing is repaired on read.
func Load(path string) (*Ontology, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read ontology: %w", err)
	}

	ontology := new(Ontology)
	if err := json.Unmarshal(raw, ontology); err != nil {
		return nil, fmt.Errorf("failed to parse ontology %s: %w", path, err)
	}

	return ontology, nil
}

// Save writes the ontology back as indented JSON.
func Save(path string, ontology *Ontology) error {
	raw, err := json.MarshalIndent(ontology, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode ontology: %w", err)
	}

	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return fmt.Errorf("failed to write ontology: %w", err)
	}

	return nil
}

// Backup copies the ontology file next to itself with a timestamp suffix and
// returns the backup path. The original is left untouched.
func Backup(path string, now time.Time) (string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read ontology for backup: %w", err)
	}

	ext := filepath.Ext(path)
	base := strings.TrimSuffix(path, ext)
	backupPath := fmt.Sprintf("%s_backup_%s%s", base, now.Format("20060102_150405"), ext)

	if err := os.WriteFile(backupPath, raw, 0o644); err != nil {
		return "", fmt.Errorf("failed to write backup: %w", err)
	}

	return backupPath, nil
}
