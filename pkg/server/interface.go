/*
Package server implements msgpack IPC for fuzzy dictionary lookups.

The server reads a stream of msgpack-encoded requests from its input and
writes one msgpack-encoded response per request to its output. Requests are
served one at a time, in arrival order, with timing info included in each
response.

# IPC

Lookup requests use this structure:

	{"id": "req_001", "w": "helo", "d": 1, "l": 10}

"d" is the maximum edit distance and falls back to the server default when
omitted. "l" caps the number of results. A request without an id is given a
generated one, which is echoed back.

The server responds with matches ranked by distance, then frequency:

	{"id": "req_001", "r": [{"w": "hello", "f": 50, "d": 1}, {"w": "help", "f": 7, "d": 1}], "c": 2, "t": 145}

"t" is the time taken in microseconds.

Failures are reported as:

	{"id": "req_001", "e": "word exceeds maximum length of 64 bytes", "c": 400}

A request that is not valid msgpack for a LookupRequest gets a 400 and the
stream continues with the next value. A corrupt dictionary region yields a 500
for that request only.
*/
package server

// LookupRequest - minimal lookup request
type LookupRequest struct {
	ID          string `msgpack:"id"`
	Word        string `msgpack:"w"`
	MaxDistance *int   `msgpack:"d,omitempty"`
	Limit       int    `msgpack:"l,omitempty"`
}

// LookupMatch - one ranked match
type LookupMatch struct {
	Word      string `msgpack:"w"`
	Frequency uint32 `msgpack:"f"`
	Distance  int    `msgpack:"d"`
}

// LookupResponse - lookup response
type LookupResponse struct {
	ID        string        `msgpack:"id"`
	Results   []LookupMatch `msgpack:"r"`
	Count     int           `msgpack:"c"`
	TimeTaken int64         `msgpack:"t"`
}

// LookupError holds basic error information for lookup requests
type LookupError struct {
	ID    string `msgpack:"id"`
	Error string `msgpack:"e"`
	Code  int    `msgpack:"c"`
}

const (
	CodeBadRequest = 400
	CodeInternal   = 500
)
