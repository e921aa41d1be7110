// path.go - Derivation path parsing for the hardened-only key tree.

package bip32

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ErrInvalidPath is returned for any path that is not of the form
// m/i0'/i1'/.../in' with non-negative integer indices. Non-hardened segments
// are rejected: the tree is hardened-only.
var ErrInvalidPath = errors.New("invalid derivation path")

var pathRegex = regexp.MustCompile(`^m(\/[0-9]+')+$`)

// IsValidPath reports whether path is a well-formed hardened derivation path.
func IsValidPath(path string) bool {
	return pathRegex.MatchString(path)
}

// PathSegments parses path into its ordered integer indices, dropping the
// leading "m".
func PathSegments(path string) ([]uint32, error) {
	if !IsValidPath(path) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPath, path)
	}
	parts := strings.Split(path, "/")[1:]
	segments := make([]uint32, len(parts))
	for i, part := range parts {
		n, err := strconv.ParseUint(strings.TrimSuffix(part, "'"), 10, 32)
		if err != nil {
			return nil, fmt.Errorf("%w: segment %q: %v", ErrInvalidPath, part, err)
		}
		segments[i] = uint32(n)
	}
	return segments, nil
}
