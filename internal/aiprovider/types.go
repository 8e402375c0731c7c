package aiprovider

// Message — одно сообщение диалога chat-completion.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ResponseFormat указывает провайдеру формат ответа, например {"type":"json_object"}.
type ResponseFormat struct {
	Type string `json:"type"`
}

// CompletionRequest — запрос на генерацию ответа модели.
type CompletionRequest struct {
	Model          string          `json:"model"`
	Messages       []Message       `json:"messages"`
	Temperature    float64         `json:"temperature,omitempty"`
	MaxTokens      int             `json:"max_tokens,omitempty"`
	ResponseFormat *ResponseFormat `json:"response_format,omitempty"`
}

// CompletionResponse — ответ провайдера. Форма задаётся внешним контрактом
// OpenRouter и не контролируется этим сервисом.
type CompletionResponse struct {
	Choices []struct {
		Message Message `json:"message"`
	} `json:"choices"`
}
