package history

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/abdidvp/keyalign/internal/atomicfile"
	"github.com/abdidvp/keyalign/internal/domain"
)

const historyFile = ".keyalign/history/runs.json"

// maxEntries bounds the file; older runs are dropped first.
const maxEntries = 200

// FileHistory implements domain.RunHistory using JSON file storage.
type FileHistory struct{}

var _ domain.RunHistory = (*FileHistory)(nil)

func New() *FileHistory {
	return &FileHistory{}
}

func (h *FileHistory) Save(projectPath string, entry domain.RunSummary) error {
	entries, err := h.Load(projectPath)
	if err != nil {
		return err
	}

	entries = append(entries, entry)
	if len(entries) > maxEntries {
		entries = entries[len(entries)-maxEntries:]
	}

	return atomicfile.WriteJSON(filepath.Join(projectPath, historyFile), entries)
}

func (h *FileHistory) Load(projectPath string) ([]domain.RunSummary, error) {
	fp := filepath.Join(projectPath, historyFile)

	data, err := os.ReadFile(fp)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var entries []domain.RunSummary
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, err
	}

	return entries, nil
}
