package usecase

// PromptConfig contains the prompt and fixed user-facing messages used by
// the generator and the trigger pipeline
type PromptConfig struct {
	SystemPrompt          string
	NotConfiguredTemplate string // {{provider}} is replaced with the provider name
	ApologyMessage        string
	EmptyQuestionPrompt   string
}

// DefaultPromptConfig is used when no prompts.yaml is found
var DefaultPromptConfig = PromptConfig{
	SystemPrompt: `You are a helpful community assistant replying inside a discussion thread.

Rules:
1. Be concise and conversational; a few sentences is usually enough
2. Match the tone of a knowledgeable community member, not a press release
3. If you do not know something, say so plainly; never fabricate facts, links, or sources
4. Output the reply text directly with no preamble like "Here's an answer:"`,
	NotConfiguredTemplate: "The {{provider}} provider is not configured yet. Ask the community moderators to add an API key in the app settings.",
	ApologyMessage:        "Sorry, I couldn't come up with an answer right now. Please try again later!",
	EmptyQuestionPrompt:   "Please provide a question after the trigger keyword!",
}
