package dotenv

// FileFlags controls dotenv.Discover/Load behavior.
type FileFlags uint8

const (
	// AddPlatforms appends a platform-stack Filter (derived from the
	// running platform identity) to whatever filters the caller
	// supplied, so OS-specific files (.env.linux, .env.windows) are
	// picked up without the caller having to build that filter by hand.
	AddPlatforms FileFlags = 1 << iota
	// ResetAccumulated clears the Accumulator before discovery, so
	// files loaded by a prior call become eligible again.
	ResetAccumulated
)

// DefaultFileFlags matches the original's default: add the platform
// filter, don't reset what's already been loaded.
const DefaultFileFlags = AddPlatforms
