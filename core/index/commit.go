package index

import (
	"fmt"

	"github.com/balzaczyy/goluke/core/store"
	"github.com/balzaczyy/goluke/core/util"
	"github.com/op/go-logging"
	"golang.org/x/exp/slices"
)

var log = logging.MustGetLogger("index")

// index/IndexCommit.java

/*
Expert: represents a single commit into an index as seen by the
IndexDeletionPolicy or IndexReader.

Changes to the content of an index are made visible only after the
writer who made that change commits by writing a new segments file
(segments_N). This point in time, when the action of writing of a new
segments file to the directory is completed, is an index commit.

Each index commit point has a unique segments file associated with it.
The segments file associated with a later index commit point would
have a larger N.
*/
type IndexCommit interface {
	// Get the segments file (segments_N) associated with the commit point.
	SegmentsFileName() string
	// Returns all index files referenced by this commit point.
	FileNames() (names []string, err error)
	// Returns the Directory for the index.
	Directory() store.Directory
	/*
		Delete this commit point.

		Decision that a commit-point should be deleted is taken by the
		IndexDeletionPolicy in effect and therefore this should only be
		called by its onInit() method. Nothing is removed
		from the directory: the commit is only flagged.
	*/
	Delete()
	// Returns true if the deletion policy flagged this commit.
	IsDeleted() bool
	// returns number of segments referenced by this commit.
	SegmentCount() int
	// Returns the generation (the _N in segments_N) for this IndexCommit
	Generation() int64
	// Returns userData, previously passed to SetCommitData(map) for this commit.
	UserData() map[string]string
}

// index/IndexFileDeleter.java

/*
Holds details for each commit point. Commit points are listed in
ascending generation order; the deletion policy decides which of them
are flagged as deleted.
*/
type CommitPoint struct {
	segmentsFileName string
	deleted          bool
	directory        store.Directory
	generation       int64
	userData         map[string]string
	segmentCount     int
}

func newCommitPoint(directory store.Directory, segmentInfos *SegmentInfos) *CommitPoint {
	userData := segmentInfos.UserData
	if userData == nil {
		userData = make(map[string]string)
	}
	return &CommitPoint{
		directory:        directory,
		userData:         userData,
		segmentsFileName: segmentInfos.SegmentsFileName(),
		generation:       segmentInfos.Generation,
		segmentCount:     len(segmentInfos.Segments),
	}
}

func (cp *CommitPoint) String() string {
	return fmt.Sprintf("IndexFileDeleter.CommitPoint(%v)", cp.segmentsFileName)
}

func (cp *CommitPoint) SegmentCount() int {
	return cp.segmentCount
}

func (cp *CommitPoint) SegmentsFileName() string {
	return cp.segmentsFileName
}

// Reads the files of this commit from the directory.
func (cp *CommitPoint) FileNames() ([]string, error) {
	entries, err := ReadFiles(cp.directory, cp.generation)
	if err != nil {
		return nil, err
	}
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name
	}
	return names, nil
}

func (cp *CommitPoint) Directory() store.Directory {
	return cp.directory
}

func (cp *CommitPoint) Generation() int64 {
	return cp.generation
}

func (cp *CommitPoint) UserData() map[string]string {
	return cp.userData
}

func (cp *CommitPoint) Delete() {
	cp.deleted = true
}

func (cp *CommitPoint) IsDeleted() bool {
	return cp.deleted
}

/*
Lists every commit point of the directory, ordered by ascending
generation, and lets the policy flag the deleted ones. Each call reads
the directory afresh.

A segments file that cannot be decoded is skipped and reported in
warnings as a *CorruptCommitError. A segments file that disappears
between the listing and the read is skipped silently. The returned
error is a *DirectoryUnreadableError when the directory cannot be
listed or contains no segments file.
*/
func ListCommits(directory store.Directory, policy IndexDeletionPolicy) (commits []*CommitPoint, warnings []error, err error) {
	if directory == nil {
		return nil, nil, &DirectoryUnreadableError{Dir: "<nil>"}
	}
	if policy == nil {
		policy = KEEP_ONLY_LAST_COMMIT_DELETION_POLICY
	}
	files, err := directory.ListAll()
	if err != nil {
		return nil, nil, &DirectoryUnreadableError{fmt.Sprintf("%v", directory), err}
	}
	if LastCommitGeneration(files) == -1 {
		return nil, nil, &DirectoryUnreadableError{fmt.Sprintf("%v", directory),
			fmt.Errorf("no segments* file found in %v: files: %v", directory, files)}
	}

	for _, filename := range files {
		if !util.IsSegmentsFileName(filename) {
			continue
		}
		log.Debugf("init: load commit '%v'", filename)
		sis, err := ReadSegmentInfos(directory, filename)
		if isNotExist(err) {
			// stale directory listing: the file is gone already
			log.Debugf("init: hit FileNotFound when loading commit '%v'; skipping this commit point", filename)
			continue
		} else if err != nil {
			gen, _ := util.GenerationFromSegmentsFileName(filename)
			log.Warningf("init: skipping corrupt commit '%v': %v", filename, err)
			warnings = append(warnings, &CorruptCommitError{gen, filename, err})
			continue
		}
		commits = append(commits, newCommitPoint(directory, sis))
	}

	// We keep commits list in sorted order (oldest to newest):
	slices.SortFunc(commits, func(a, b *CommitPoint) int {
		return compareGen(a.generation, b.generation)
	})
	slices.SortFunc(warnings, func(a, b error) int {
		return compareGen(a.(*CorruptCommitError).Generation, b.(*CorruptCommitError).Generation)
	})

	if len(commits) > 0 {
		ics := make([]IndexCommit, len(commits))
		for i, c := range commits {
			ics[i] = c
		}
		if err = policy.onInit(ics); err != nil {
			return nil, nil, err
		}
	}
	return commits, warnings, nil
}

func compareGen(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
