package slidescene

import "strings"

// PackageLoader gives the composer access to the parts of a presentation
// package. Parts are addressed by normalized slash-separated paths rooted
// at the package, e.g. "ppt/media/image1.png".
type PackageLoader interface {
	// ResolvePath resolves a relationship target against the directory of
	// the part carrying the relationship.
	ResolvePath(baseDir, relTarget string) string
	// Part returns the raw bytes of a part, and whether it exists.
	Part(path string) ([]byte, bool)
}

// ResolvePartPath normalizes a relationship target against a base
// directory. Absolute targets drop the leading slash; ".." segments pop
// the base. Targets that escape the package root are re-anchored under
// "ppt/".
func ResolvePartPath(baseDir, relTarget string) string {
	if strings.HasPrefix(relTarget, "/") {
		return strings.TrimPrefix(relTarget, "/")
	}

	baseParts := strings.Split(baseDir, "/")
	relParts := strings.Split(relTarget, "/")

	result := make([]string, 0, len(baseParts)+len(relParts))
	for _, part := range baseParts {
		if part != "" && part != "." {
			result = append(result, part)
		}
	}
	for _, part := range relParts {
		if part == ".." {
			if len(result) > 0 {
				result = result[:len(result)-1]
			}
		} else if part != "." && part != "" {
			result = append(result, part)
		}
	}

	resolved := strings.Join(result, "/")
	if !strings.HasPrefix(resolved, "ppt/") && !strings.HasPrefix(resolved, "docProps/") &&
		resolved != "[Content_Types].xml" && !strings.HasPrefix(resolved, "_rels/") {
		return "ppt/" + resolved
	}
	return resolved
}

// MapLoader is a PackageLoader over an in-memory part map, for embedded
// packages and tests.
type MapLoader struct {
	Parts map[string][]byte
}

func (l *MapLoader) ResolvePath(baseDir, relTarget string) string {
	return ResolvePartPath(baseDir, relTarget)
}

func (l *MapLoader) Part(path string) ([]byte, bool) {
	data, ok := l.Parts[path]
	return data, ok
}
