package causal

// Ontology is the JSON-encoded causal knowledge base: research variables and
// the hypothesized cause-effect paths between them, extracted from literature.
//
// The structure is versioned through Meta.Version and maintained by the
// cleaner, which enforces the single structural invariant: every path's
// source and target must reference an existing variable id.
type Ontology struct {
	Variables   []Variable   `json:"variables"`
	CausalPaths []CausalPath `json:"causal_paths"`
	Meta        Meta         `json:"meta"`
}

// Variable is a node in the causal graph: a measurable research concept such
// as R&D investment or technological impact.
type Variable struct {
	ID          string      `json:"id"`
	Label       string      `json:"label"`
	Category    string      `json:"category"`
	Definition  string      `json:"definition"`
	Binding     Binding     `json:"binding"`
	Measurement Measurement `json:"measurement"`
	Theory      Theory      `json:"theory"`
}

// Variable categories.
const (
	CategoryInput     = "input"
	CategoryMediator  = "mediator"
	CategoryOutcome   = "outcome"
	CategoryModerator = "moderator"
)

// Binding ties a variable to the metrics function that computes it.
type Binding struct {
	Func string `json:"func"`
}

// Measurement describes how a variable is operationalized.
type Measurement struct {
	Metric string `json:"metric"`
}

// Theory names the theoretical frame a variable was drawn from.
type Theory struct {
	Name string `json:"name"`
}

// CausalPath is a directed edge between two variables.
type CausalPath struct {
	Source     string   `json:"source"`
	Target     string   `json:"target"`
	EffectType string   `json:"effect_type"`
	EffectSize string   `json:"effect_size,omitempty"`
	Mechanism  string   `json:"mechanism,omitempty"`
	Template   string   `json:"template,omitempty"`
	Evidence   Evidence `json:"evidence"`
}

// Effect types carried on causal paths.
const (
	EffectPositive  = "positive"
	EffectNegative  = "negative"
	EffectInvertedU = "inverted_u"
	EffectThreshold = "threshold"
)

// Evidence records literature support for a path.
type Evidence struct {
	Validated     bool `json:"validated"`
	EvidenceCount int  `json:"evidence_count"`
}

// Meta carries ontology bookkeeping. Version is preserved verbatim by all
// maintenance operations; only the counts, LastUpdated and CleaningHistory
// change.
type Meta struct {
	Version         string           `json:"version"`
	TotalVariables  int              `json:"total_variables"`
	TotalPaths      int              `json:"total_paths"`
	LastUpdated     string           `json:"last_updated"`
	CleaningHistory []CleaningRecord `json:"cleaning_history,omitempty"`
}

// CleaningRecord is one entry in the ontology's cleaning history.
type CleaningRecord struct {
	Date          string `json:"date"`
	Action        string `json:"action"`
	OriginalPaths int    `json:"original_paths"`
	CleanedPaths  int    `json:"cleaned_paths"`
	RemovedPaths  int    `json:"removed_paths"`
}
