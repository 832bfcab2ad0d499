package storage

import (
	"encoding/json"
	"io"

	"github.com/san-kum/wobbly/internal/effect"
)

type ExportData struct {
	RunMetadata
	Trace []effect.Frame `json:"trace"`
}

// ExportJSON writes a stored run, metadata and every frame, as one JSON
// document.
func (s *Store) ExportJSON(runID string, out io.Writer) error {
	meta, err := s.Load(runID)
	if err != nil {
		return err
	}
	frames, err := s.LoadFrames(runID)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(ExportData{RunMetadata: *meta, Trace: frames})
}
