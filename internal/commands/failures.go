package commands

import (
	"errors"
	"io/fs"
	"os"
)

const (
	accessDeniedAnnotation  = "(access denied)"
	errorReadingAnnotation  = "(error reading)"
	directoryErrorFormat    = "(error: %s)"
	fileNotFoundReason      = "File not found"
	permissionDeniedReason  = "Permission denied"
	accessDeniedReason      = "access denied"
	notFoundReason          = "not found"
	recursiveLinkAnnotation = "(recursive link)"
)

// entryFailureAnnotation describes why a single directory entry could not be inspected.
func entryFailureAnnotation(failure error) string {
	if errors.Is(failure, fs.ErrPermission) {
		return accessDeniedAnnotation
	}
	return errorReadingAnnotation
}

// directoryFailureReason names the category of a directory listing failure.
func directoryFailureReason(failure error) string {
	switch {
	case errors.Is(failure, fs.ErrPermission):
		return accessDeniedReason
	case errors.Is(failure, fs.ErrNotExist):
		return notFoundReason
	default:
		return underlyingMessage(failure)
	}
}

// fileFailureReason names the category of a file read failure.
func fileFailureReason(failure error) string {
	switch {
	case errors.Is(failure, fs.ErrNotExist):
		return fileNotFoundReason
	case errors.Is(failure, fs.ErrPermission):
		return permissionDeniedReason
	default:
		return underlyingMessage(failure)
	}
}

// underlyingMessage strips the absolute path that *fs.PathError carries.
func underlyingMessage(failure error) string {
	var pathError *fs.PathError
	if errors.As(failure, &pathError) && pathError.Err != nil {
		return pathError.Err.Error()
	}
	return failure.Error()
}

// isAncestor reports whether info identifies a directory already on the current traversal path.
func isAncestor(info os.FileInfo, ancestors []os.FileInfo) bool {
	for _, ancestor := range ancestors {
		if os.SameFile(info, ancestor) {
			return true
		}
	}
	return false
}

// withAncestor returns a new slice so sibling branches never share appended entries.
func withAncestor(ancestors []os.FileInfo, info os.FileInfo) []os.FileInfo {
	extended := make([]os.FileInfo, len(ancestors), len(ancestors)+1)
	copy(extended, ancestors)
	return append(extended, info)
}
