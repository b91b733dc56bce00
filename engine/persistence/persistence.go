package persistence

import (
	"context"
	"errors"
)

var (
	// ErrInvalidFileID is returned for file ids that are empty or would escape the data directory.
	ErrInvalidFileID = errors.New("invalid file id")

	// ErrCorruptBlob is returned when a saved blob is not a JSON object of part id to material id.
	ErrCorruptBlob = errors.New("corrupt material blob")
)

// Persistence loads and stores the per-part material choices of a file.
type Persistence interface {
	// LoadSavedMaterials retrieves the saved part->material mapping of a file.
	// A file that was never saved yields a nil map and a nil error.
	//
	// Parameters:
	//   - ctx: cancels the load
	//   - fileID: the file the mapping belongs to
	//
	// Returns:
	//   - map[string]string: the saved mapping, or nil
	//   - error: error if the blob could not be read or parsed
	LoadSavedMaterials(ctx context.Context, fileID string) (map[string]string, error)

	// SaveMaterials replaces the saved mapping of a file.
	//
	// Parameters:
	//   - ctx: cancels the save
	//   - fileID: the file the mapping belongs to
	//   - partMaterials: the complete part->material mapping
	//
	// Returns:
	//   - error: error if the mapping could not be written
	SaveMaterials(ctx context.Context, fileID string, partMaterials map[string]string) error
}

// Saver schedules a write of a file's mapping without waiting for it.
type Saver interface {
	Save(fileID string, partMaterials map[string]string)
}
