// Package export writes the commit history of an index to a SQLite
// database or to a zstd-compressed JSON document.
package export

import (
	"math/rand"
	"sync"
	"time"

	"github.com/balzaczyy/goluke/luke/models/commits"
	"github.com/oklog/ulid/v2"
	"github.com/op/go-logging"
)

var log = logging.MustGetLogger("export")

// Everything the commits model knows about an index at one instant.
type Snapshot struct {
	RunID     string            `json:"run_id"`
	IndexPath string            `json:"index_path"`
	CreatedAt time.Time         `json:"created_at"`
	Commits   []*CommitSnapshot `json:"commits"`
	Warnings  []string          `json:"warnings,omitempty"`
}

type CommitSnapshot struct {
	Generation int64              `json:"generation"`
	IsDeleted  bool               `json:"deleted"`
	SegCount   int                `json:"seg_count"`
	UserData   map[string]string  `json:"user_data"`
	Files      []*FileSnapshot    `json:"files"`
	Segments   []*SegmentSnapshot `json:"segments"`
}

type FileSnapshot struct {
	Name string `json:"name"`
	Size int64  `json:"size"`
}

type SegmentSnapshot struct {
	Name           string            `json:"name"`
	MaxDoc         int               `json:"max_doc"`
	DelCount       int               `json:"del_count"`
	DelGen         int64             `json:"del_gen"`
	Codec          string            `json:"codec"`
	StorageVersion string            `json:"version"`
	IsCompound     bool              `json:"compound"`
	Size           int64             `json:"size"`
	Diagnostics    map[string]string `json:"diagnostics"`
	Attributes     map[string]string `json:"attributes"`
	Files          []string          `json:"files"`
	// implementation per format role; absent when the codec is unknown
	Formats map[string]string `json:"formats,omitempty"`
}

var (
	entropyLock sync.Mutex
	entropy     = rand.New(rand.NewSource(time.Now().UnixNano()))
)

func newRunID(now time.Time) string {
	entropyLock.Lock()
	defer entropyLock.Unlock()
	return ulid.MustNew(ulid.Timestamp(now), entropy).String()
}

// Decodes every commit of m. Commits that cannot be read are exported
// without files and segments.
func TakeSnapshot(m commits.Commits) *Snapshot {
	now := time.Now().UTC()
	snap := &Snapshot{
		RunID:     newRunID(now),
		IndexPath: m.IndexPath(),
		CreatedAt: now,
	}
	for _, c := range m.ListCommits() {
		cs := &CommitSnapshot{
			Generation: c.Generation,
			IsDeleted:  c.IsDeleted,
			SegCount:   c.SegCount,
			UserData:   c.UserData,
			Files:      []*FileSnapshot{},
			Segments:   []*SegmentSnapshot{},
		}
		for _, f := range m.GetFiles(c.Generation) {
			cs.Files = append(cs.Files, &FileSnapshot{f.FileName, f.Size})
		}
		for _, s := range m.GetSegments(c.Generation) {
			ss := &SegmentSnapshot{
				Name:           s.Name,
				MaxDoc:         s.MaxDoc,
				DelCount:       s.DelCount,
				DelGen:         s.DelGen,
				Codec:          s.CodecName,
				StorageVersion: s.StorageVersion,
				IsCompound:     s.IsCompound,
				Size:           s.Size,
				Diagnostics:    s.Diagnostics,
				Attributes:     s.Attributes,
				Files:          s.Files,
			}
			if desc, ok := m.GetSegmentCodec(c.Generation, s.Name); ok {
				ss.Formats = make(map[string]string, len(desc.Components))
				for role, impl := range desc.Components {
					ss.Formats[role.String()] = impl
				}
			}
			cs.Segments = append(cs.Segments, ss)
		}
		snap.Commits = append(snap.Commits, cs)
	}
	for _, w := range m.Warnings() {
		snap.Warnings = append(snap.Warnings, w.Error())
	}
	log.Debugf("Snapshot %v of %v: %v commits", snap.RunID, snap.IndexPath, len(snap.Commits))
	return snap
}
