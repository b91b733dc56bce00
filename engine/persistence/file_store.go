package persistence

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/gjson"
)

// blobKey is the top-level field holding the part->material mapping.
const blobKey = "partMaterials"

type blob struct {
	PartMaterials map[string]string `json:"partMaterials"`
}

type fileStore struct {
	dir string
}

// FileStore keeps one JSON blob per file id in a data directory.
type FileStore interface {
	Persistence

	// Dir returns the data directory.
	//
	// Returns:
	//   - string: the directory blobs are written to
	Dir() string

	// Path returns where the blob of a file id is stored.
	//
	// Parameters:
	//   - fileID: the file id
	//
	// Returns:
	//   - string: the blob path
	//   - error: ErrInvalidFileID if the id cannot be used as a file name
	Path(fileID string) (string, error)
}

var _ FileStore = &fileStore{}

// NewFileStore creates the data directory if needed and returns a store writing into it.
//
// Parameters:
//   - dir: the data directory
//
// Returns:
//   - FileStore: the store
//   - error: error if the directory could not be created
func NewFileStore(dir string) (FileStore, error) {
	if dir == "" {
		return nil, fmt.Errorf("persistence: empty data directory")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("persistence: create %s: %w", dir, err)
	}
	return &fileStore{dir: dir}, nil
}

func (fs *fileStore) Dir() string {
	return fs.dir
}

func (fs *fileStore) Path(fileID string) (string, error) {
	if fileID == "" || fileID == "." || fileID == ".." || strings.ContainsAny(fileID, `/\`) {
		return "", fmt.Errorf("persistence: %q: %w", fileID, ErrInvalidFileID)
	}
	return filepath.Join(fs.dir, fileID+".json"), nil
}

func (fs *fileStore) LoadSavedMaterials(ctx context.Context, fileID string) (map[string]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path, err := fs.Path(fileID)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("persistence: read %s: %w", path, err)
	}
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("persistence: %s: %w", path, ErrCorruptBlob)
	}

	res := gjson.GetBytes(data, blobKey)
	if !res.Exists() || res.Type == gjson.Null {
		return nil, nil
	}
	if !res.IsObject() {
		return nil, fmt.Errorf("persistence: %s: %s is not an object: %w", path, blobKey, ErrCorruptBlob)
	}

	out := make(map[string]string)
	var bad string
	res.ForEach(func(key, value gjson.Result) bool {
		if value.Type != gjson.String {
			bad = key.String()
			return false
		}
		out[key.String()] = value.String()
		return true
	})
	if bad != "" {
		return nil, fmt.Errorf("persistence: %s: material of %q is not a string: %w", path, bad, ErrCorruptBlob)
	}
	return out, nil
}

func (fs *fileStore) SaveMaterials(ctx context.Context, fileID string, partMaterials map[string]string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	path, err := fs.Path(fileID)
	if err != nil {
		return err
	}

	if partMaterials == nil {
		partMaterials = map[string]string{}
	}
	data, err := json.Marshal(blob{PartMaterials: partMaterials})
	if err != nil {
		return fmt.Errorf("persistence: encode %s: %w", fileID, err)
	}

	// Write next to the target and rename so readers never see a partial blob.
	tmp, err := os.CreateTemp(fs.dir, fileID+".*.tmp")
	if err != nil {
		return fmt.Errorf("persistence: write %s: %w", path, err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("persistence: write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("persistence: write %s: %w", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("persistence: write %s: %w", path, err)
	}
	return nil
}
