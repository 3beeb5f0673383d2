// Package platform classifies a raw platform identity string (such as
// Go's runtime.GOOS, or any other OS-identifying token a caller passes
// in) into an ordered stack of tags, broad to narrow, used by
// pkg/dotenv to pick which dot-env files apply to the running system.
//
// The classification table is carried over from the original envara
// implementation's Env.get_platform_stack / __platform_map (see
// DESIGN.md), re-expressed as an ordered slice of (matcher, tags) pairs
// instead of a dict of compiled regexes.
package platform

import "strings"

// Flags controls which entries Stack includes.
type Flags uint8

const (
	// None requests only the platform-derived tags.
	None Flags = 0
	// AddEmpty prepends an empty string tag, meaning "relevant to any
	// platform"; StackWithAffixes turns it into the undecorated name
	// (e.g. ".env"). The file discoverer accepts the bare ".env" with
	// or without it.
	AddEmpty Flags = 1 << 0
)

const (
	// Any is the tag meaning "relevant to any platform".
	Any = "any"
	// Posix is the tag for POSIX-family systems.
	Posix = "posix"
	// Windows is the tag for Windows-family systems.
	Windows = "windows"
)

// rule pairs a case-insensitive substring/prefix matcher against the
// lowercased platform identity with the tags to append when it matches.
type rule struct {
	match func(id string) bool
	tags  []string
}

func contains(sub string) func(string) bool {
	return func(id string) bool { return strings.Contains(id, sub) }
}

func hasPrefix(pre string) func(string) bool {
	return func(id string) bool { return strings.HasPrefix(id, pre) }
}

// table is the ordered classification rule set, broad families first.
// Order matters: Stack appends tags in this order and de-duplicates, so
// earlier rules produce the broader (leftmost) tags.
var table = []rule{
	{contains("aix"), []string{Posix, "aix"}},
	{contains("android"), []string{Posix, "linux", "android"}},
	{hasPrefix("atheos"), []string{"atheos"}},
	{func(id string) bool {
		return strings.HasPrefix(id, "beos") || strings.Contains(id, "haiku")
	}, []string{"beos", "haiku"}},
	{contains("bsd"), []string{Posix, "bsd"}},
	{contains("cygwin"), []string{Posix, "cygwin"}},
	{contains("hp-ux"), []string{Posix, "hp-ux"}},
	{func(id string) bool {
		return strings.Contains(id, "darwin") || strings.Contains(id, "macos")
	}, []string{Posix, "bsd", "darwin", "macos"}},
	{func(id string) bool {
		return strings.HasPrefix(id, "ios") || strings.Contains(id, "ipados")
	}, []string{Posix, "bsd", "darwin", "ios"}},
	{hasPrefix("linux"), []string{Posix, "linux"}},
	{hasPrefix("os2"), []string{"os2"}},
	{hasPrefix("msys"), []string{Posix, "msys"}},
	{hasPrefix("riscos"), []string{"riscos"}},
	{contains("sunos"), []string{Posix, "sunos"}},
	{contains("unix"), []string{Posix, "unix"}},
	{contains("vms"), []string{"vms"}},
	{hasPrefix("win"), []string{Windows}},
}

// KnownTags returns every symbolic tag the classification table can
// produce, plus Any/Posix/Windows — the closed universe a dot-env
// filter dimension needs for its value universe. It excludes raw
// platform identity strings (StackWithAffixes' narrowest, dynamic tag),
// since those aren't a fixed set this package can enumerate.
func KnownTags() []string {
	seen := map[string]struct{}{Any: {}, Posix: {}, Windows: {}}
	tags := []string{Any, Posix, Windows}
	for _, r := range table {
		for _, t := range r.tags {
			if _, ok := seen[t]; ok {
				continue
			}
			seen[t] = struct{}{}
			tags = append(tags, t)
		}
	}
	return tags
}

// isPosix/isWindows report whether a tag set, once classified, contains
// the broad posix/windows family tag — used for the "java" special case
// below, which depends on the *other* signals already resolved.
func isPosix(tags []string) bool {
	for _, t := range tags {
		if t == Posix {
			return true
		}
	}
	return false
}

func isWindows(tags []string) bool {
	for _, t := range tags {
		if t == Windows {
			return true
		}
	}
	return false
}

func appendUnique(tags []string, add ...string) []string {
	for _, a := range add {
		found := false
		for _, t := range tags {
			if t == a {
				found = true
				break
			}
		}
		if !found {
			tags = append(tags, a)
		}
	}
	return tags
}

// Stack returns the ordered platform tag stack derived from id, broader
// tags first and the identity itself last (if it is more specific than
// any tag already present). id is lowercased before classification.
func Stack(id string, flags Flags) []string {
	return StackWithAffixes(id, flags, "", "")
}

// StackWithAffixes behaves like Stack but decorates every tag (including
// the AddEmpty entry, if present) with prefix/suffix, the way
// "" + ".env" collapses to ".env" rather than "..env" when suffix begins
// with the same character prefix ends with.
func StackWithAffixes(id string, flags Flags, prefix, suffix string) []string {
	lower := strings.ToLower(id)

	var tags []string
	if flags&AddEmpty != 0 {
		tags = appendUnique(tags, "")
	}

	for _, r := range table {
		if r.match(lower) {
			tags = appendUnique(tags, r.tags...)
		}
	}

	// "java" is ambiguous: resolve to whichever family was already
	// detected from the rest of the identity string — only one will fit.
	if strings.Contains(lower, "java") {
		if isWindows(tags) {
			tags = appendUnique(tags, Windows)
		} else {
			tags = appendUnique(tags, Posix)
		}
	}

	// Append the raw identity as the narrowest tag, if it adds anything
	// not already present.
	tags = appendUnique(tags, lower)

	if prefix == "" && suffix == "" {
		return tags
	}

	decorated := make([]string, len(tags))
	for i, tag := range tags {
		if tag == "" && prefix != "" && suffix != "" && suffix[0] == prefix[len(prefix)-1] {
			decorated[i] = prefix + suffix[1:]
		} else {
			decorated[i] = prefix + tag + suffix
		}
	}
	return decorated
}
