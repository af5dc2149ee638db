package request

// AccessRequest is the request body for submitting a name or code at the gate
type AccessRequest struct {
	Input string `json:"input"`
	// Seq is echoed back so clients can drop responses to superseded input
	Seq int64 `json:"seq,omitempty"`
}
