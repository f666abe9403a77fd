package causal

import (
	"fmt"
	"time"

	"github.com/yppgo/patentgraph/pkg/logger"
)

// RemovedPath describes one path dropped by the cleaner and why.
type RemovedPath struct {
	Source  string   `json:"source"`
	Target  string   `json:"target"`
	Reasons []string `json:"reasons"`
}

// CleanResult summarizes a cleaning pass.
type CleanResult struct {
	Kept       int           `json:"kept"`
	Removed    int           `json:"removed"`
	BackupPath string        `json:"backup_path,omitempty"`
	Dropped    []RemovedPath `json:"dropped,omitempty"`
}

// Clean removes every causal path whose source or target does not reference
// an existing variable id. Violating paths are deleted, never repaired. The
// meta counts are rewritten and a timestamped cleaning record is appended;
// Meta.Version is preserved verbatim.
func Clean(ontology *Ontology, now time.Time) CleanResult {
	valid := make(map[string]struct{}, len(ontology.Variables))
	for _, v := range ontology.Variables {
		valid[v.ID] = struct{}{}
	}

	original := len(ontology.CausalPaths)
	kept := make([]CausalPath, 0, original)
	var dropped []RemovedPath

	for _, path := range ontology.CausalPaths {
		_, sourceOK := valid[path.Source]
		_, targetOK := valid[path.Target]
		if sourceOK && targetOK {
			kept = append(kept, path)
			continue
		}

		removed := RemovedPath{Source: path.Source, Target: path.Target}
		if !sourceOK {
			removed.Reasons = append(removed.Reasons, fmt.Sprintf("source=%s", path.Source))
		}
		if !targetOK {
			removed.Reasons = append(removed.Reasons, fmt.Sprintf("target=%s", path.Target))
		}
		dropped = append(dropped, removed)
	}

	ontology.CausalPaths = kept
	ontology.Meta.TotalVariables = len(ontology.Variables)
	ontology.Meta.TotalPaths = len(kept)
	ontology.Meta.LastUpdated = now.Format("2006-01-02")
	ontology.Meta.CleaningHistory = append(ontology.Meta.CleaningHistory, CleaningRecord{
		Date:          now.Format("2006-01-02 15:04:05"),
		Action:        "remove_unmapped_paths",
		OriginalPaths: original,
		CleanedPaths:  len(kept),
		RemovedPaths:  len(dropped),
	})

	return CleanResult{
		Kept:    len(kept),
		Removed: len(dropped),
		Dropped: dropped,
	}
}

// CleanFile loads the ontology at path, backs up the original file, runs
// Clean and writes the result back in place.
func CleanFile(path string) (CleanResult, error) {
	ontology, err := Load(path)
	if err != nil {
		return CleanResult{}, err
	}

	now := time.Now()
	backupPath, err := Backup(path, now)
	if err != nil {
		return CleanResult{}, err
	}
	logger.Info("[Causal] Ontology backed up", "backup", backupPath)

	result := Clean(ontology, now)
	result.BackupPath = backupPath

	if err := Save(path, ontology); err != nil {
		return CleanResult{}, err
	}

	logger.Info(
		"[Causal] Ontology cleaned",
		"kept", result.Kept,
		"removed", result.Removed,
	)

	return result, nil
}
