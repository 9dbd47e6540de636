package wfreq

const (
	versionString = "1.0.0"

	// MaxTokenCeiling is the hard upper bound OpenWithConfig clamps
	// maxTokenLen to, and the size of Scan's per-call stack buffer when
	// Config.HeapScanBuffer is false.
	MaxTokenCeiling = 1024

	// MinInitCapacity is the floor tuneCapacity ever settles on,
	// regardless of how small a byte budget is requested.
	MinInitCapacity = 16

	// MinBlockSize is the floor tuneBlockSize ever settles on, before the
	// one-full-token floor is applied on top of it.
	MinBlockSize = 256
)

// Info is the static build/limits report returned by BuildInfo.
type Info struct {
	VersionNumber   string
	MaxTokenCeiling int
	MinInitCapacity int
	MinBlockSize    int
	StackScanBuffer bool
}

var buildInfo = Info{
	VersionNumber:   versionString,
	MaxTokenCeiling: MaxTokenCeiling,
	MinInitCapacity: MinInitCapacity,
	MinBlockSize:    MinBlockSize,
	StackScanBuffer: true,
}

// BuildInfo reports the compiled-in version string and tuning limits.
func BuildInfo() Info { return buildInfo }

// Version reports the library's semantic version string.
func Version() string { return versionString }
