package app

import (
	"sync"

	"github.com/balzaczyy/goluke/core/store"
	"github.com/balzaczyy/goluke/luke/models/commits"
	"github.com/op/go-logging"
	"golang.org/x/exp/slices"
)

var log = logging.MustGetLogger("app")

/*
Keeps the commits model of the directory or index currently open.

Every open builds a fresh model that replaces the previous one; every
close discards it. Subscribers are called after each transition with
the new model, or nil once nothing is open.
*/
type CommitsHolder struct {
	opts []commits.Option

	sync.Mutex // guards current and listeners
	current    commits.Commits
	listeners  []func(commits.Commits)
}

func NewCommitsHolder(opts ...commits.Option) *CommitsHolder {
	return &CommitsHolder{opts: opts}
}

// Registers fn to be called after every transition.
func (h *CommitsHolder) Subscribe(fn func(commits.Commits)) {
	h.Lock()
	defer h.Unlock()
	h.listeners = append(h.listeners, fn)
}

// Returns the model of what is currently open, or nil.
func (h *CommitsHolder) Current() commits.Commits {
	h.Lock()
	defer h.Unlock()
	return h.current
}

func (h *CommitsHolder) OnDirectoryOpened(dir store.Directory, indexPath string) error {
	m, err := commits.NewCommits(dir, indexPath, h.opts...)
	h.publish(m)
	return err
}

func (h *CommitsHolder) OnDirectoryClosed() {
	h.publish(nil)
}

/*
Builds the model from the directory of an opened index. A nil handle
stands for an index not backed by a single directory: it has no
commits to show, so the current model is kept.
*/
func (h *CommitsHolder) OnIndexOpened(idx commits.IndexHandle, indexPath string) error {
	if idx == nil {
		log.Infof("Index %v has no directory, commits unchanged", indexPath)
		return nil
	}
	m, err := commits.NewCommitsFromIndex(idx, indexPath, h.opts...)
	h.publish(m)
	return err
}

func (h *CommitsHolder) OnIndexClosed() {
	h.publish(nil)
}

// Listeners are called without holding the lock.
func (h *CommitsHolder) publish(m commits.Commits) {
	h.Lock()
	h.current = m
	listeners := slices.Clone(h.listeners)
	h.Unlock()

	if m == nil {
		log.Debug("Commits model discarded")
	} else {
		log.Debugf("Commits model replaced for %v", m.IndexPath())
	}
	for _, fn := range listeners {
		fn(m)
	}
}
