package layers

// Link is one hop of a reported chain: an importer/imported pair with every
// line number recorded for that pair. A line number of 0 means unknown.
type Link struct {
	Importer    string `json:"importer"`
	Imported    string `json:"imported"`
	LineNumbers []int  `json:"lineNumbers"`
}

// DetailedChain is one reported violation. Chain always has at least one
// link. ExtraFirsts and ExtraLasts are only populated for collapsed indirect
// chains: alternative first-hop or last-hop edges that share the same middle
// segment.
type DetailedChain struct {
	Chain       []Link `json:"chain"`
	ExtraFirsts []Link `json:"extraFirsts,omitempty"`
	ExtraLasts  []Link `json:"extraLasts,omitempty"`
}

// LayerChainData holds every violation found for one (higher, lower) layer
// pair. The pair is in violation iff Chains is non-empty.
type LayerChainData struct {
	HigherLayer string          `json:"higherLayer"`
	LowerLayer  string          `json:"lowerLayer"`
	Chains      []DetailedChain `json:"chains"`
}

// Report is the outcome of checking one contract.
type Report struct {
	RunID        string           `json:"runId"`
	Contract     string           `json:"contract"`
	Kept         bool             `json:"kept"`
	InvalidChains []LayerChainData `json:"invalidChains,omitempty"`
	Warnings     []string         `json:"warnings,omitempty"`
	PairsChecked int              `json:"pairsChecked"`
	DurationMs   int64            `json:"durationMs"`
}
