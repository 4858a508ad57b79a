package objectstore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/2beens/coachportal/pkg"

	log "github.com/sirupsen/logrus"
)

// json file holding the index of stored objects, kept in the root path
const indexJsonFileName = "objects-index.json"

type Object struct {
	// Path is the storage key, e.g. profiles/<uid>/me.jpg
	Path        string    `json:"path"`
	Name        string    `json:"name"`
	OwnerID     string    `json:"owner_id"`
	ContentType string    `json:"content_type"`
	Size        int64     `json:"size"`
	CreatedAt   time.Time `json:"created_at"`
	// URL is the public link, derived, never persisted
	URL string `json:"-"`
}

func rootPathExists(rootPath string) error {
	exists, err := pkg.PathExists(rootPath, true)
	if err != nil {
		return fmt.Errorf("check root path %s: %w", rootPath, err)
	}
	if !exists {
		return fmt.Errorf("root path [%s] does not exist", rootPath)
	}
	return nil
}

func loadIndex(rootPath string) (map[string]*Object, error) {
	if err := rootPathExists(rootPath); err != nil {
		return nil, err
	}

	indexPath := filepath.Join(rootPath, indexJsonFileName)
	exists, err := pkg.PathExists(indexPath, false)
	if err != nil {
		return nil, fmt.Errorf("check objects index [%s]: %w", indexPath, err)
	}
	if !exists {
		log.Debugln("objects index does not exist, creating a fresh one ...")
		index := map[string]*Object{}
		if err := saveIndex(rootPath, index); err != nil {
			return nil, fmt.Errorf("save fresh objects index: %w", err)
		}
		return index, nil
	}

	indexJson, err := os.ReadFile(indexPath)
	if err != nil {
		return nil, err
	}
	index := map[string]*Object{}
	if err := json.Unmarshal(indexJson, &index); err != nil {
		return nil, fmt.Errorf("unmarshal objects index: %w", err)
	}
	return index, nil
}

// saveIndex writes the index next to the objects; a temp file plus rename
// keeps the previous index intact if the write fails.
func saveIndex(rootPath string, index map[string]*Object) error {
	indexJson, err := json.Marshal(index)
	if err != nil {
		return err
	}

	indexPath := filepath.Join(rootPath, indexJsonFileName)
	tmpPath := indexPath + ".tmp"
	if err := os.WriteFile(tmpPath, indexJson, 0o640); err != nil {
		return fmt.Errorf("write objects index: %w", err)
	}
	if err := os.Rename(tmpPath, indexPath); err != nil {
		return fmt.Errorf("replace objects index: %w", err)
	}

	log.Tracef("objects index saved [%d objects]", len(index))
	return nil
}
