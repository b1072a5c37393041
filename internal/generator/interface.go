// Package generator sends rendered prompts to a hosted text-generation
// service and normalizes the answer into a Reply.
package generator

import "context"

// Generator issues one synchronous generation request per call.
type Generator interface {
	Generate(ctx context.Context, prompt string) (*Reply, error)
	Name() string
}

// SegmentText is the only segment type a note body can come from.
const SegmentText = "text"

// Segment is one typed unit of a reply's content.
type Segment struct {
	Type string `json:"type"`
	Text string `json:"text,omitempty"`
}

// Reply is the provider-neutral shape of a generation response.
type Reply struct {
	ID         string    `json:"id,omitempty"`
	Model      string    `json:"model,omitempty"`
	StopReason string    `json:"stop_reason,omitempty"`
	Content    []Segment `json:"content"`
}
