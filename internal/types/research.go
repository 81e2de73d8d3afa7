package types

// CitationSource identifies which grounding record a citation came from
type CitationSource string

const (
	// CitationWeb is a web page returned by search grounding
	CitationWeb CitationSource = "web"
	// CitationRetrievedContext is a document returned by retrieval grounding
	CitationRetrievedContext CitationSource = "retrieved_context"
)

// Citation is a single grounding source consulted by the model
type Citation struct {
	Title  string         `json:"title"`
	URI    string         `json:"uri"`
	Source CitationSource `json:"source"`
}

// MarketResearch is the grounded research text and the sources behind it
type MarketResearch struct {
	Text      string     `json:"text"`
	Citations []Citation `json:"citations"`
}
