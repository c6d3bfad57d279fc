package llm

import (
	"encoding/base64"
	"fmt"

	"github.com/google/uuid"
)

// Message represents a single turn in a conversation
type Message struct {
	ID        string            `json:"id"`
	Role      string            `json:"role"` // "user" or "assistant"
	Content   string            `json:"content"`
	Reasoning string            `json:"reasoning,omitempty"`
	Images    []ImageAttachment `json:"images,omitempty"`
}

// Message roles
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
)

// NewUserMessage creates a user message with a fresh identifier
func NewUserMessage(content string, images []ImageAttachment) *Message {
	return &Message{
		ID:      uuid.NewString(),
		Role:    RoleUser,
		Content: content,
		Images:  images,
	}
}

// NewAssistantPlaceholder creates an empty assistant message to be filled
// in-place while a response streams
func NewAssistantPlaceholder() *Message {
	return &Message{
		ID:   uuid.NewString(),
		Role: RoleAssistant,
	}
}

// ImageAttachment represents a pasted or attached image.
// Data is always PNG-encoded regardless of the source format; MimeType
// records the source type and is only used to label the data URL.
type ImageAttachment struct {
	ID       string `json:"id"`
	Data     []byte `json:"data"`
	MimeType string `json:"mime_type"`
}

// NewImageAttachment creates an attachment with a fresh identifier
func NewImageAttachment(data []byte, mimeType string) ImageAttachment {
	return ImageAttachment{
		ID:       uuid.NewString(),
		Data:     data,
		MimeType: mimeType,
	}
}

// DataURL returns the attachment as a base64 data URL for request serialization
func (a ImageAttachment) DataURL() string {
	b64 := base64.StdEncoding.EncodeToString(a.Data)
	return fmt.Sprintf("data:%s;base64,%s", a.MimeType, b64)
}

// ReasoningEffort controls how much reasoning computation the model performs.
// EffortNone omits the reasoning configuration from the request entirely.
type ReasoningEffort string

// Supported reasoning effort levels
const (
	EffortNone      ReasoningEffort = "none"
	EffortMinimal   ReasoningEffort = "minimal"
	EffortLow       ReasoningEffort = "low"
	EffortMedium    ReasoningEffort = "medium"
	EffortHigh      ReasoningEffort = "high"
	EffortExtraHigh ReasoningEffort = "extra-high"
)

// Efforts returns all effort levels in ascending order, for settings UIs
func Efforts() []ReasoningEffort {
	return []ReasoningEffort{
		EffortNone,
		EffortMinimal,
		EffortLow,
		EffortMedium,
		EffortHigh,
		EffortExtraHigh,
	}
}

// ParseEffort maps a stored string back to an effort level, defaulting to
// EffortNone for unknown values
func ParseEffort(s string) ReasoningEffort {
	for _, e := range Efforts() {
		if s == string(e) {
			return e
		}
	}
	return EffortNone
}

// Settings supplies the mutable configuration the client reads at the start
// of every Send call. Implementations must return current values, not
// cached ones, so changes take effect on the next call.
type Settings interface {
	// APIKey returns the bearer credential for the completion endpoint
	APIKey() string

	// SystemPrompt returns the system message text, empty to omit
	SystemPrompt() string
}

// ProgressFunc receives the cumulative decoded text after each streamed
// event that carried a delta. Values are cumulative, not incremental, so a
// caller may always overwrite previously displayed text.
type ProgressFunc func(content, reasoning string)
