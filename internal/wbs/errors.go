package wbs

import "errors"

var (
	// ErrNotFound indicates an unknown node or project ID.
	ErrNotFound = errors.New("not found")

	// ErrInvalidNode indicates an operation attempted on the wrong kind of
	// node, such as setting progress on a node that has children.
	ErrInvalidNode = errors.New("invalid node for operation")

	// ErrOutOfRange indicates a progress value outside 0..100.
	ErrOutOfRange = errors.New("progress out of range")

	// ErrBoundary indicates a promote or demote that would move a node or
	// one of its descendants outside levels L1..L4.
	ErrBoundary = errors.New("level boundary exceeded")

	// ErrNoTarget indicates a demote with no preceding sibling to attach to.
	ErrNoTarget = errors.New("no demote target")

	// ErrNoSchedule indicates schedule statistics were requested for a
	// project without start and end dates.
	ErrNoSchedule = errors.New("project has no schedule")

	// ErrInvalidPrefix indicates a code prefix that is not a recognized
	// entity kind.
	ErrInvalidPrefix = errors.New("invalid code prefix")

	// ErrAllocationFailed indicates the counter store was unavailable.
	// It is transient: callers may retry the whole allocation. Reserved but
	// unused ranges are never reclaimed; gaps are expected after failures.
	ErrAllocationFailed = errors.New("code allocation failed")
)
