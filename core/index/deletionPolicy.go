package index

import (
	"fmt"
)

// index/IndexDeletionPolicy.java

/*
Expert: policy for deletion of stale index commits.

The default deletion policy is KeepOnlyLastCommitDeletionPolicy, which
always remove old commits as soon as a new commit is done. Commits
that are still on disk although the policy would delete them are only
reachable because something else, e.g. a snapshot, pins them.
*/
type IndexDeletionPolicy interface {
	/*
		This is called once when the commits are listed, to give the
		policy a chance to flag old commit points.

		The policy may choose to delete some of the commit points, doing
		so by calling method Delete() of IndexCommit.

		Note: the last CommitPoint is the most recent one, i.e. the "front
		index state".
	*/
	onInit(commits []IndexCommit) error
}

// index/NoDeletionPolicy.java

// An IndexDeletionPolicy which keeps all index commits around, never
// deleting them.
type NoDeletionPolicy bool

func (p NoDeletionPolicy) onInit(commits []IndexCommit) error { return nil }
func (p NoDeletionPolicy) String() string                     { return "NoDeletionPolicy" }

const NO_DELETION_POLICY = NoDeletionPolicy(true)

// index/KeepOnlyLastCommitDeletionPolicy.java

/*
This IndexDeletionPolicy implementation that keeps only the most
recent commit and immediately removes all prior commits after a new
commit is done. This is the default deletion policy.
*/
type KeepOnlyLastCommitDeletionPolicy bool

// Deletes all commits except the most recent one.
func (p KeepOnlyLastCommitDeletionPolicy) onInit(commits []IndexCommit) error {
	for i, limit := 0, len(commits); i < limit-1; i++ {
		commits[i].Delete()
	}
	return nil
}

func (p KeepOnlyLastCommitDeletionPolicy) String() string {
	return "KeepOnlyLastCommitDeletionPolicy"
}

const KEEP_ONLY_LAST_COMMIT_DELETION_POLICY = KeepOnlyLastCommitDeletionPolicy(true)

// Policy names accepted by DeletionPolicyByName().
const (
	POLICY_KEEP_LAST = "keep-last"
	POLICY_NONE      = "none"
)

// Resolves a policy name used in configuration. The empty name is the
// default policy.
func DeletionPolicyByName(name string) (IndexDeletionPolicy, error) {
	switch name {
	case "", POLICY_KEEP_LAST:
		return KEEP_ONLY_LAST_COMMIT_DELETION_POLICY, nil
	case POLICY_NONE:
		return NO_DELETION_POLICY, nil
	}
	return nil, fmt.Errorf("unknown deletion policy %q (expected %v or %v)", name, POLICY_KEEP_LAST, POLICY_NONE)
}
