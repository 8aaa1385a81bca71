package pipeline

// ProgressEvent represents a progress update during pipeline execution.
type ProgressEvent struct {
	Stage     string `json:"stage"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
	Content   any    `json:"content,omitempty"`
}

// ProgressCallback is called when pipeline progress occurs.
type ProgressCallback func(event ProgressEvent)
