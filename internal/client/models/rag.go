package models

// DocumentFilter restricts which uploaded documents a question is answered from.
type DocumentFilter string

const (
	FilterAll      DocumentFilter = "all"
	FilterSelected DocumentFilter = "selected"
)

// Query is a question against the user's uploaded documents.
type Query struct {
	Question string
	TopK     int
	Filter   DocumentFilter
	Selected []string
}

// QueryRequest is the wire form of Query. SelectedDocuments is null unless
// the filter is "selected". Username is only sent by the legacy API.
type QueryRequest struct {
	Question          string   `json:"question"`
	TopK              int      `json:"top_k"`
	Username          string   `json:"username,omitempty"`
	SelectedDocuments []string `json:"selected_documents"`
}

// Answer is the backend's reply to a Query.
type Answer struct {
	Answer      string   `json:"answer"`
	Sources     []string `json:"sources"`
	Mode        string   `json:"mode,omitempty"`
	NumContexts int      `json:"num_contexts,omitempty"`
}

// ConversationEntry is one question/answer pair of the server-side history.
type ConversationEntry struct {
	Question  string   `json:"question"`
	Answer    string   `json:"answer"`
	Timestamp string   `json:"timestamp,omitempty"`
	Sources   []string `json:"sources,omitempty"`
}
