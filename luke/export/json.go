package export

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/balzaczyy/goluke/core/util"
	"github.com/balzaczyy/goluke/luke/models/commits"
	"github.com/klauspost/compress/zstd"
)

// Writes a snapshot of m as zstd-compressed JSON. Levels run from 1
// (fastest) to 4 (best compression).
func WriteJSON(w io.Writer, m commits.Commits, level int) (*Snapshot, error) {
	enc, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.EncoderLevel(level)))
	if err != nil {
		return nil, err
	}
	snap := TakeSnapshot(m)
	if err = json.NewEncoder(enc).Encode(snap); err != nil {
		enc.Close()
		return nil, err
	}
	if err = enc.Close(); err != nil {
		return nil, err
	}
	return snap, nil
}

func WriteJSONFile(path string, m commits.Commits, level int) (runID string, err error) {
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	snap, err := WriteJSON(f, m, level)
	if err = util.CloseWhileHandlingError(err, f); err != nil {
		return "", fmt.Errorf("export %v: %w", path, err)
	}
	log.Infof("Exported %v commits of %v to %v (run %v)", len(snap.Commits), snap.IndexPath, path, snap.RunID)
	return snap.RunID, nil
}

// Reads back a document written by WriteJSON().
func ReadJSON(r io.Reader) (*Snapshot, error) {
	dec, err := zstd.NewReader(r)
	if err != nil {
		return nil, err
	}
	defer dec.Close()
	snap := new(Snapshot)
	if err = json.NewDecoder(dec).Decode(snap); err != nil {
		return nil, err
	}
	return snap, nil
}
