package chat

// ChatRequest is the body of POST /chat.
type ChatRequest struct {
	Message    string `json:"message"`
	DocumentID string `json:"document_id"`
}

// ChatResponse is the composed answer returned to clients.
type ChatResponse struct {
	Response string   `json:"response"`
	Sources  []string `json:"sources"`
}
