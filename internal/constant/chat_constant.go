package constant

const (
	ChatMessageRoleUser      = "user"
	ChatMessageRoleAssistant = "assistant"

	// Titles applied when a client sends a blank one
	DefaultSessionTitle  = "New Chat"
	UntitledSessionTitle = "Untitled Chat"

	// Instruction line prepended to every model call
	ChatSystemPrompt = "You are a helpful AI assistant. Provide accurate, helpful, and engaging responses."

	// Substituted when the model returns an empty completion
	EmptyReplyFallback = "I apologize, but I couldn't generate a response."
)
