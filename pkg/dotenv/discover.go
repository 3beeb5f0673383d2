package dotenv

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rcarmo/envara/pkg/platform"
)

// File Discoverer, grounded in original envara's dotenv.py
// DotEnv.get_files: scan a directory, keep filenames every Filter
// accepts, and order the result deterministically instead of relying
// on directory-iteration order (which the original leaves
// unspecified).

// DiscoverOptions bundles the inputs to Discover.
type DiscoverOptions struct {
	// Dir is the directory to scan. Empty means the current directory.
	Dir string
	// Indicator is the token every filename must contain (default
	// "env").
	Indicator string
	// PlatformID feeds platform.Stack when FileFlags has AddPlatforms.
	// Empty means "no platform filter beyond what Filters already say".
	PlatformID    string
	PlatformFlags platform.Flags
	FileFlags     FileFlags
	// Filters are additional caller-supplied dimensions (build
	// environment, locale, ...), ANDed with the indicator/platform
	// filters.
	Filters []Filter
	// CustomPath, if non-empty, is appended to the result unconditionally
	// and last, bypassing every filter.
	CustomPath string
}

// Discover returns the paths of every file in o.Dir whose name satisfies
// every filter, ordered broader-platform-group first, dotted filenames
// before non-dotted within a group, alphabetical as a final tiebreak,
// with o.CustomPath appended last if set.
func Discover(o DiscoverOptions) ([]string, error) {
	dir := o.Dir
	if dir == "" {
		dir = "."
	}
	indicator := o.Indicator
	if indicator == "" {
		indicator = "env"
	}

	filters := make([]Filter, 0, len(o.Filters)+2)
	filters = append(filters, o.Filters...)

	var stack []string
	if o.FileFlags&AddPlatforms != 0 && o.PlatformID != "" {
		stack = platform.Stack(o.PlatformID, o.PlatformFlags)
		filters = append(filters, NewFilter(indicator, stack, platform.KnownTags()))
	}
	filters = append(filters, NewFilter(indicator, nil, nil))

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	type candidate struct {
		name  string
		group int
	}
	var candidates []candidate
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		matched := true
		for _, f := range filters {
			if !f.IsMatch(name) {
				matched = false
				break
			}
		}
		if !matched {
			continue
		}
		candidates = append(candidates, candidate{name: name, group: platformGroup(name, stack)})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if a.group != b.group {
			return a.group < b.group
		}
		aDotted, bDotted := strings.HasPrefix(a.name, "."), strings.HasPrefix(b.name, ".")
		if aDotted != bDotted {
			return aDotted
		}
		return a.name < b.name
	})

	result := make([]string, 0, len(candidates)+1)
	for _, c := range candidates {
		result = append(result, filepath.Join(dir, c.name))
	}
	if o.CustomPath != "" {
		result = append(result, o.CustomPath)
	}
	return result, nil
}

// platformGroup returns name's ordering group: 0 for a filename that
// names no platform tag at all (broadest — applies everywhere), or
// 1+index of the first (broadest) stack entry it names.
func platformGroup(name string, stack []string) int {
	tokens := tokenize(name)
	for i, tag := range stack {
		if tag == "" {
			continue
		}
		if _, ok := tokens[strings.ToLower(tag)]; ok {
			return i + 1
		}
	}
	return 0
}
