/*
Package server implements msgpack IPC for SQL completion services.

The server provides a minimal interface for context-aware SQL completion
using msgpack serialization over stdin/stdout.

Messages are processed synchronously with timing info included in responses.

# IPC

The server operates on a request response model where clients send
structured messages via stdin and receive responses through stdout.
Each message carries an ID, an op, and op-specific fields.

A completion request names the expected kind at the cursor plus the text
already typed there:

	{"id": "req_001", "op": "complete", "kind": "table", "text": "ord", "start": 14, "end": 17}

Column requests also scope the candidate pool:

	{"id": "req_002", "op": "complete", "kind": "column", "text": "cu",
	 "tables": [{"schema": "public", "name": "orders"}]}

The server responds with suggestions ranked best-first:

	{"id": "req_001", "s": [{"w": "orders", "m": "table", "r": 1}], "c": 1, "t": 0}

Other ops: "record_usage" feeds accepted completions back into the
prevalence ranker, "refresh" drops any cached catalog state, and
"status" reports keyword and cache counters.

msgpack encoding has ~30 to 50% smaller message sizes compared to JSON,
and the binary format keeps per-request latency low for editor clients.
*/
package server

// TableRef scopes a column request to one table.
type TableRef struct {
	Schema string `msgpack:"schema,omitempty"`
	Name   string `msgpack:"name"`
	Alias  string `msgpack:"alias,omitempty"`
}

// Request is any incoming message; fields beyond ID and Op are
// consulted per op.
type Request struct {
	ID string `msgpack:"id"`
	Op string `msgpack:"op"`

	// complete
	Kind         string     `msgpack:"kind,omitempty"`
	Text         string     `msgpack:"text,omitempty"`
	Start        int        `msgpack:"start,omitempty"`
	End          int        `msgpack:"end,omitempty"`
	Schema       string     `msgpack:"schema,omitempty"`
	Tables       []TableRef `msgpack:"tables,omitempty"`
	Aliases      []string   `msgpack:"aliases,omitempty"`
	UniqueOnly   bool       `msgpack:"unique_only,omitempty"`
	SetReturning bool       `msgpack:"set_returning,omitempty"`
	Limit        int        `msgpack:"l,omitempty"`

	// record_usage
	Keyword string `msgpack:"keyword,omitempty"`
	Name    string `msgpack:"name,omitempty"`
}

// MatchItem - one ranked suggestion
type MatchItem struct {
	Text  string `msgpack:"w"`
	Label string `msgpack:"m"`
	Start int    `msgpack:"start"`
	End   int    `msgpack:"end"`
	Rank  uint16 `msgpack:"r"`
}

// CompleteResponse - completion response
type CompleteResponse struct {
	ID        string      `msgpack:"id"`
	Matches   []MatchItem `msgpack:"s"`
	Count     int         `msgpack:"c"`
	TimeTaken int64       `msgpack:"t"`
}

// StatusResponse - status / ack response
type StatusResponse struct {
	ID       string         `msgpack:"id,omitempty"`
	Status   string         `msgpack:"status"`
	Keywords int            `msgpack:"keywords,omitempty"`
	Cache    map[string]int `msgpack:"cache,omitempty"`
}

// ErrorResponse holds basic error information for failed requests
type ErrorResponse struct {
	ID    string `msgpack:"id"`
	Error string `msgpack:"e"`
	Code  int    `msgpack:"c"`
}
