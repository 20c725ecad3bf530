package commits

import (
	"errors"
	"fmt"
	"sync"

	"github.com/balzaczyy/goluke/core/codec/spi"
	"github.com/balzaczyy/goluke/core/index"
	"github.com/balzaczyy/goluke/core/store"
	"github.com/op/go-logging"
)

var log = logging.MustGetLogger("commits")

/*
A read-only view on the commit history of an index directory.

All methods may be called concurrently. Files and segments of a
generation are decoded on first access, at most once per instance, and
kept for the lifetime of the instance; reopening means building a new
instance. Returned records are copies.
*/
type Commits interface {
	// Returns the path of the index directory.
	IndexPath() string
	// Returns the commits in ascending generation order.
	ListCommits() []*Commit
	// Returns the commit of the generation, if it is known.
	GetCommit(generation int64) (*Commit, bool)
	// Returns the files of the commit sorted by name; empty if the
	// generation is unknown or cannot be read.
	GetFiles(generation int64) []*File
	// Like GetFiles() but reports why no files were returned.
	GetFilesE(generation int64) ([]*File, error)
	// Returns the segments of the commit in commit order; empty if the
	// generation is unknown or cannot be read.
	GetSegments(generation int64) []*Segment
	// Like GetSegments() but reports why no segments were returned.
	GetSegmentsE(generation int64) ([]*Segment, error)
	// Returns the diagnostics of the segment; empty if not found.
	GetSegmentDiagnostics(generation int64, name string) map[string]string
	// Returns the attributes of the segment; empty if not found.
	GetSegmentAttributes(generation int64, name string) map[string]string
	// Returns the codec of the segment, if the segment exists and its
	// codec is known.
	GetSegmentCodec(generation int64, name string) (*CodecDescriptor, bool)
	// Returns the problems met so far: commits skipped when listing and
	// segments left out when decoding.
	Warnings() []error
}

// Returned by the E variants for a generation that was never listed.
type UnknownGenerationError struct {
	Generation int64
}

func (err *UnknownGenerationError) Error() string {
	return fmt.Sprintf("unknown commit generation: %v", err.Generation)
}

// An opened index; only its directory is used.
type IndexHandle interface {
	Directory() store.Directory
}

type Option func(*options)

type options struct {
	policy index.IndexDeletionPolicy
	logger *logging.Logger
}

// Selects the policy deciding which commits are flagged deleted.
func WithDeletionPolicy(policy index.IndexDeletionPolicy) Option {
	return func(o *options) { o.policy = policy }
}

func WithLogger(logger *logging.Logger) Option {
	return func(o *options) { o.logger = logger }
}

type commitsImpl struct {
	dir       store.Directory
	indexPath string
	logger    *logging.Logger

	commits []*Commit
	byGen   map[int64]*Commit

	sync.RWMutex // guards entries and warnings
	entries      map[int64]*entry
	warnings     []error
}

// Decoded content of one generation.
type entry struct {
	once     sync.Once
	files    []*File
	segments []*Segment
	err      error
}

/*
Lists the commits of dir. Only a directory that cannot be listed at
all fails; commits that cannot be decoded are skipped and reported by
Warnings().
*/
func NewCommits(dir store.Directory, indexPath string, opts ...Option) (Commits, error) {
	o := &options{policy: index.KEEP_ONLY_LAST_COMMIT_DELETION_POLICY, logger: log}
	for _, opt := range opts {
		opt(o)
	}

	cps, warnings, err := index.ListCommits(dir, o.policy)
	if err != nil {
		return nil, err
	}
	m := &commitsImpl{
		dir:       dir,
		indexPath: indexPath,
		logger:    o.logger,
		byGen:     make(map[int64]*Commit, len(cps)),
		entries:   make(map[int64]*entry),
		warnings:  warnings,
	}
	for _, cp := range cps {
		c := newCommit(cp)
		m.commits = append(m.commits, c)
		m.byGen[c.Generation] = c
	}
	m.logger.Infof("Opened %v: %v commits, %v skipped", indexPath, len(m.commits), len(warnings))
	return m, nil
}

// Lists the commits of the directory of an opened index.
func NewCommitsFromIndex(idx IndexHandle, indexPath string, opts ...Option) (Commits, error) {
	if idx == nil {
		return nil, &index.DirectoryUnreadableError{Dir: indexPath}
	}
	return NewCommits(idx.Directory(), indexPath, opts...)
}

func (m *commitsImpl) IndexPath() string {
	return m.indexPath
}

func (m *commitsImpl) ListCommits() []*Commit {
	ans := make([]*Commit, len(m.commits))
	for i, c := range m.commits {
		ans[i] = c.clone()
	}
	return ans
}

func (m *commitsImpl) GetCommit(generation int64) (*Commit, bool) {
	c, ok := m.byGen[generation]
	if !ok {
		return nil, false
	}
	return c.clone(), true
}

func (m *commitsImpl) GetFiles(generation int64) []*File {
	files, err := m.GetFilesE(generation)
	if err != nil {
		m.logger.Debugf("No files for commit %v: %v", generation, err)
		return []*File{}
	}
	return files
}

func (m *commitsImpl) GetFilesE(generation int64) ([]*File, error) {
	e, err := m.load(generation)
	if err != nil {
		return nil, err
	}
	ans := make([]*File, len(e.files))
	for i, f := range e.files {
		copied := *f
		ans[i] = &copied
	}
	return ans, nil
}

func (m *commitsImpl) GetSegments(generation int64) []*Segment {
	segments, err := m.GetSegmentsE(generation)
	if err != nil {
		m.logger.Debugf("No segments for commit %v: %v", generation, err)
		return []*Segment{}
	}
	return segments
}

func (m *commitsImpl) GetSegmentsE(generation int64) ([]*Segment, error) {
	e, err := m.load(generation)
	if err != nil {
		return nil, err
	}
	ans := make([]*Segment, len(e.segments))
	for i, s := range e.segments {
		ans[i] = s.clone()
	}
	return ans, nil
}

func (m *commitsImpl) segment(generation int64, name string) *Segment {
	e, err := m.load(generation)
	if err != nil {
		return nil
	}
	for _, s := range e.segments {
		if s.Name == name {
			return s
		}
	}
	return nil
}

func (m *commitsImpl) GetSegmentDiagnostics(generation int64, name string) map[string]string {
	if s := m.segment(generation, name); s != nil {
		return copyMap(s.Diagnostics)
	}
	return map[string]string{}
}

func (m *commitsImpl) GetSegmentAttributes(generation int64, name string) map[string]string {
	if s := m.segment(generation, name); s != nil {
		return copyMap(s.Attributes)
	}
	return map[string]string{}
}

func (m *commitsImpl) GetSegmentCodec(generation int64, name string) (*CodecDescriptor, bool) {
	s := m.segment(generation, name)
	if s == nil {
		return nil, false
	}
	desc, err := spi.Describe(s.CodecName)
	var uce *spi.UnknownCodecError
	if errors.As(err, &uce) {
		m.logger.Noticef("Segment %v of commit %v: %v", name, generation, err)
		return nil, false
	} else if err != nil {
		return nil, false
	}
	return desc, true
}

func (m *commitsImpl) Warnings() []error {
	m.RLock()
	defer m.RUnlock()
	return append([]error(nil), m.warnings...)
}

/*
Returns the decoded entry of a listed generation, decoding it on the
first call. Concurrent first calls wait for a single decode.
*/
func (m *commitsImpl) load(generation int64) (*entry, error) {
	c, ok := m.byGen[generation]
	if !ok {
		return nil, &UnknownGenerationError{generation}
	}

	m.RLock()
	e, ok := m.entries[generation]
	m.RUnlock()
	if !ok {
		m.Lock()
		if e, ok = m.entries[generation]; !ok {
			e = new(entry)
			m.entries[generation] = e
		}
		m.Unlock()
	}

	e.once.Do(func() { m.decode(generation, e) })
	if e.err != nil {
		return nil, e.err
	}
	// the commit may have been deleted since it was decoded
	if !m.dir.FileExists(c.SegmentsFileName) {
		return nil, &index.CommitVanishedError{Generation: generation, FileName: c.SegmentsFileName}
	}
	return e, nil
}

func (m *commitsImpl) decode(generation int64, e *entry) {
	m.logger.Debugf("Decoding commit %v of %v", generation, m.indexPath)
	c, err := index.ReadCommit(m.dir, generation)
	if err != nil {
		m.logger.Warningf("Cannot read commit %v: %v", generation, err)
		e.err = err
		return
	}
	e.files = make([]*File, len(c.Files))
	for i, f := range c.Files {
		e.files[i] = newFile(f)
	}
	e.segments = make([]*Segment, len(c.Segments))
	for i, sci := range c.Segments {
		e.segments[i] = newSegment(sci)
	}
	if len(c.Warnings) > 0 {
		m.Lock()
		m.warnings = append(m.warnings, c.Warnings...)
		m.Unlock()
	}
}
