package editor

import "errors"

// Reasons a command leaves the graph untouched.
// The session logs them and carries on; none of them reach the user.
var (
	// ErrEmptySelection: the command needs more selection entries than there are
	ErrEmptySelection = errors.New("not enough selected elements")

	// ErrInvalidArcEndpoint: an arc endpoint is itself an arc
	ErrInvalidArcEndpoint = errors.New("arc endpoint must be a node")

	// ErrSelfLoop: source and target are the same node
	ErrSelfLoop = errors.New("arc would connect a node to itself")

	// ErrDuplicateArc: an arc with the same source and target already exists
	ErrDuplicateArc = errors.New("arc already exists")

	// ErrMissingElement: a selected id no longer resolves to an element in the scene
	ErrMissingElement = errors.New("element not found")
)

// ErrNotFound is an alias of ErrMissingElement
var ErrNotFound = ErrMissingElement
