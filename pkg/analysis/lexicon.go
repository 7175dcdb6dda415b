package analysis

// Lexicons used by feature extraction. All matching is case-insensitive and
// word-boundary anchored: "etc" inside "etcetera" is not a hit.

// HedgingTokens are ambiguity markers counted toward the ambiguity score.
var HedgingTokens = []string{
	"maybe",
	"could you",
	"would you",
	"if possible",
	"try to",
	"etc",
	"might",
	"perhaps",
	"possibly",
	"somehow",
	"kind of",
	"sort of",
	"not sure",
	"or something",
	"ideally",
}

// ScopeLeakTokens suggest the request is unbounded.
var ScopeLeakTokens = []string{
	"entire",
	"everything",
	"in its entirety",
	"all of it",
	"whole project",
	"end to end",
	"complete overhaul",
	"exhaustively",
}

// ConstraintMarkers signal genuinely binding constraints.
var ConstraintMarkers = []string{
	"must",
	"never",
	"always",
	"only",
	"exactly",
	"required",
	"at most",
	"at least",
	"do not",
}

// ExampleTokens mark worked examples in the input.
var ExampleTokens = []string{
	"for example",
	"for instance",
	"e.g.",
	"example:",
	"such as",
}

// ContradictionKind labels one of the known conflicting-instruction pairs.
type ContradictionKind int

const (
	ContradictionConciseExhaustive ContradictionKind = iota
	ContradictionBrowsing
	ContradictionNoCodeImplement
)

// ContradictionPair holds the two sides of a known conflict. A contradiction
// is reported when at least one token from each side is present.
type ContradictionPair struct {
	Kind  ContradictionKind
	Label string
	SideA []string
	SideB []string
}

// ContradictionPairs are the conflicts the extractor knows how to detect and
// the repair transform knows how to resolve.
var ContradictionPairs = []ContradictionPair{
	{
		Kind:  ContradictionConciseExhaustive,
		Label: "asks for a concise answer and exhaustive coverage at the same time",
		SideA: []string{"concise", "brief", "short answer", "keep it short"},
		SideB: []string{"exhaustive", "in its entirety", "comprehensive", "cover everything"},
	},
	{
		Kind:  ContradictionBrowsing,
		Label: "forbids browsing but requests web research",
		SideA: []string{"no browsing", "without browsing", "offline only", "no internet"},
		SideB: []string{"web research", "search the web", "browse the web", "online sources"},
	},
	{
		Kind:  ContradictionNoCodeImplement,
		Label: "forbids code but asks for an implementation",
		SideA: []string{"no code", "without code", "without writing code", "don't write code"},
		SideB: []string{"implement", "write code", "write the code", "code it up"},
	},
}

// GenericContractPhrases are output-contract boilerplate that adds no real
// formatting constraint; a contract made only of these counts as generic.
var GenericContractPhrases = []string{
	"any format",
	"clear format",
	"well formatted",
	"nicely formatted",
	"markdown",
	"plain text",
	"as you see fit",
}
