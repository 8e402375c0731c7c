// Package aiprovider реализует HTTP-клиент для OpenRouter chat-completions API.
// Клиент не содержит ретраев и таймаутов сверх настроек http.Client:
// недоступность провайдера обрабатывается выше статическим fallback-контентом.
package aiprovider

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client — клиент OpenRouter API.
type Client struct {
	apiKey     string
	apiURL     string
	model      string
	httpClient *http.Client
}

// NewClient создаёт новый клиент OpenRouter.
func NewClient(apiKey, apiURL, model string) *Client {
	return &Client{
		apiKey:     apiKey,
		apiURL:     apiURL,
		model:      model,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// Model возвращает имя модели, с которой работает клиент.
func (c *Client) Model() string {
	return c.model
}

func (c *Client) newRequest(ctx context.Context, path string, body any) (*http.Request, error) {
	url := c.apiURL + path
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("HTTP-Referer", "https://mindspace.v0.dev")
	req.Header.Set("X-Title", "MindSpace AI Support")
	return req, nil
}

// CreateCompletion отправляет запрос chat-completions и возвращает первый
// вариант ответа модели.
func (c *Client) CreateCompletion(ctx context.Context, reqParams CompletionRequest) (string, error) {
	if reqParams.Model == "" {
		reqParams.Model = c.model
	}
	req, err := c.newRequest(ctx, "/chat/completions", reqParams)
	if err != nil {
		return "", err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("ai request failed: %s - %s", resp.Status, string(body))
	}

	var completion CompletionResponse
	if err := json.NewDecoder(resp.Body).Decode(&completion); err != nil {
		return "", err
	}
	if len(completion.Choices) == 0 {
		return "", errors.New("empty choices in completion response")
	}
	return completion.Choices[0].Message.Content, nil
}
