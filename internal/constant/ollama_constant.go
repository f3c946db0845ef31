package constant

const (
	ChatMessageRoleUser      = "user"
	ChatMessageRoleAssistant = "assistant"
	ChatMessageRoleSystem    = "system"

	OllamaDefaultBaseURL = "http://localhost:11434"

	OllamaTagsEndpoint    = "/api/tags"
	OllamaChatEndpoint    = "/api/chat"
	OllamaPullEndpoint    = "/api/pull"
	OllamaDeleteEndpoint  = "/api/delete"
	OllamaShowEndpoint    = "/api/show"
	OllamaVersionEndpoint = "/api/version"

	// Fixed user-facing strings for the degraded paths. The chat turn must
	// always produce an answer, so transport failures map to these instead
	// of bubbling up to the client.
	OllamaConnectionErrorMessage = "Unable to connect to Ollama. Please ensure Ollama is running locally."
	OllamaNoModelsMessage        = "No models are available in Ollama. Please install a model first."
	OllamaGeneralErrorMessage    = "I apologize, but I encountered an error while processing your request."

	OllamaDefaultSystemPrompt = `You are a helpful AI assistant. You provide clear, accurate, and helpful responses to user questions.
You are running locally on Ollama and can help with various tasks including:
- Answering questions
- Writing and editing text
- Code generation and debugging
- Analysis and explanations
- Creative writing
- Problem solving

Always be helpful, accurate, and friendly in your responses.`
)
