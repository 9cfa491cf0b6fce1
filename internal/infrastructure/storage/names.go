// Package storage implements document.Store on the local file system and on S3.
// Every backend keeps a flat namespace: the derived file name is the only key.
package storage

import (
	"fmt"
	"strings"

	"github.com/sushnag22/pdf-generator/internal/domain"
)

// CheckName accepts only a single, visible path element. Anything that could address
// a location outside the storage root, or a temporary file inside it, is rejected.
func CheckName(name string) error {
	switch {
	case name == "", name == ".", name == "..":
		return fmt.Errorf("%w: %q", domain.ErrInvalidFileName, name)
	case strings.ContainsAny(name, `/\`+"\x00"):
		return fmt.Errorf("%w: %q contains a path separator", domain.ErrInvalidFileName, name)
	case strings.HasPrefix(name, "."):
		return fmt.Errorf("%w: %q is a hidden name", domain.ErrInvalidFileName, name)
	}
	return nil
}
