package mdh

// RenderOption configures parsing and rendering behavior.
type RenderOption func(*renderConfig)

type renderConfig struct {
	maxDepth   int
	looseLists bool
	headingIDs bool
	tocLevel   int
}

const (
	defaultMaxDepth = 64
	defaultTOCLevel = 3
)

func (cfg *renderConfig) reset() {
	cfg.maxDepth = defaultMaxDepth
	cfg.looseLists = false
	cfg.headingIDs = false
	cfg.tocLevel = defaultTOCLevel
}

// WithMaxDepth caps how many blocks may be open at once. Constructs that
// would nest deeper render as paragraph text and the call reports
// ErrNestingTooDeep alongside the complete output. Values below 1 are
// ignored.
func WithMaxDepth(n int) RenderOption {
	return func(cfg *renderConfig) {
		if n >= 1 {
			cfg.maxDepth = n
		}
	}
}

// WithLooseLists wraps the text of list items in <p> tags when the list
// has blank lines between items. The default renders every item tight.
func WithLooseLists(enabled bool) RenderOption {
	return func(cfg *renderConfig) {
		cfg.looseLists = enabled
	}
}

// WithHeadingIDs adds an id attribute carrying the verbatim heading text
// to every heading. RenderWithTOC implies it.
func WithHeadingIDs(enabled bool) RenderOption {
	return func(cfg *renderConfig) {
		cfg.headingIDs = enabled
	}
}

// WithTOCLevel sets the deepest heading level included in a table of
// contents. Levels outside 1..6 are ignored. The default is 3.
func WithTOCLevel(level int) RenderOption {
	return func(cfg *renderConfig) {
		if level >= 1 && level <= 6 {
			cfg.tocLevel = level
		}
	}
}
