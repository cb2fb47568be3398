package gallery

import (
	"slices"
	"strings"

	"github.com/damacus/iron-gallery/internal/services"
)

// NormalizeFolderName strips one trailing delimiter from a common prefix.
func NormalizeFolderName(rawPrefix string) string {
	return strings.TrimSuffix(rawPrefix, services.Delimiter)
}

// EnsureDefaultFolder prepends defaultName unless it is already a member.
// The input slice is never modified.
func EnsureDefaultFolder(folderNames []string, defaultName string) []string {
	if slices.Contains(folderNames, defaultName) {
		return folderNames
	}
	out := make([]string, 0, len(folderNames)+1)
	out = append(out, defaultName)
	return append(out, folderNames...)
}

// IsFolder reports whether name is exactly the special folder. An empty
// special folder never matches.
func IsFolder(name, special string) bool {
	return special != "" && name == special
}
