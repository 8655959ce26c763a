package mcp

// ConverseInput defines the input for the neuron_converse tool.
type ConverseInput struct {
	Text  string `json:"text" jsonschema:"The utterance to send to the brain"`
	Trace bool   `json:"trace,omitempty" jsonschema:"Include the full thought trace in the output (default: false)"`
}

// ConverseOutput defines the output for the neuron_converse tool.
type ConverseOutput struct {
	Response string `json:"response" jsonschema:"The generated reply"`
	Goal     string `json:"goal" jsonschema:"The arbitrated goal that drove the reply"`
	Turn     int    `json:"turn" jsonschema:"Conversation turn number"`
	Trace    string `json:"trace,omitempty" jsonschema:"Full thought trace (only when requested)"`
}

// StatsInput defines the input for the neuron_stats tool.
type StatsInput struct{}

// StatsOutput defines the output for the neuron_stats tool.
type StatsOutput struct {
	Nodes          int                `json:"nodes" jsonschema:"Number of graph nodes"`
	Edges          int                `json:"edges" jsonschema:"Number of graph edges"`
	NodesByKind    map[string]int     `json:"nodes_by_kind" jsonschema:"Node counts per category"`
	Modulators     map[string]float64 `json:"modulators" jsonschema:"Current modulator levels"`
	Turns          int                `json:"turns" jsonschema:"Turns recorded this session"`
	Episodes       int                `json:"episodes" jsonschema:"Episodes currently in memory"`
	FiringNodes    []string           `json:"firing_nodes,omitempty" jsonschema:"Node ids above threshold right now"`
	GraphSummary   string             `json:"graph_summary" jsonschema:"One-line graph description"`
	ShortTermTurns int                `json:"short_term_turns" jsonschema:"Exchanges in the short-term window"`
}

// ValidateInput defines the input for the neuron_validate tool.
type ValidateInput struct{}

// ValidateOutput defines the output for the neuron_validate tool.
type ValidateOutput struct {
	Valid    bool     `json:"valid" jsonschema:"Whether the graph passed validation"`
	Problems []string `json:"problems,omitempty" jsonschema:"Validation problems found"`
	Message  string   `json:"message" jsonschema:"Human-readable summary"`
}
