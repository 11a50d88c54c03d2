package types

// AgentMessage represents a message in the format expected by the generation
// backend: a role tag plus plain text content.
type AgentMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}
