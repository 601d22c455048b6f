package inventory

import "errors"

var (
	// ErrRootNotFound indicates the scan root does not exist.
	ErrRootNotFound = errors.New("content root not found")

	// ErrRootNotDirectory indicates the scan root is a regular file or other non-directory.
	ErrRootNotDirectory = errors.New("content root is not a directory")

	// ErrWalkFailed indicates traversal of the content tree failed mid-walk.
	ErrWalkFailed = errors.New("content tree walk failed")

	// ErrListFailed indicates a single-level listing of a subfolder failed.
	ErrListFailed = errors.New("subfolder listing failed")

	// ErrOutsideReferenceRoot indicates a subfolder cannot be expressed relative to the reference root.
	ErrOutsideReferenceRoot = errors.New("subfolder outside reference root")
)
