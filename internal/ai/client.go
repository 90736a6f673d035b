// Package ai calls the chat-completions gateway that formats raw notes into
// a numbered outline.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"sintesi/pkg/logger"
)

const (
	DefaultGatewayURL = "https://ai.gateway.lovable.dev/v1/chat/completions"
	DefaultModel      = "google/gemini-2.5-pro"
)

// Distinct provider failure modes, surfaced verbatim to the user.
var (
	ErrRateLimited      = errors.New("rate limit raggiunto, riprova tra poco")
	ErrQuotaExhausted   = errors.New("crediti esauriti, aggiungi crediti al tuo workspace")
	ErrEmptyResponse    = errors.New("nessun contenuto ricevuto dall'AI")
	ErrGenerationFailed = errors.New("errore nella risposta AI")
)

// systemPrompt pins the outline structure: numbered main sections, lettered
// subsections, rich paragraphs, same language as the input.
const systemPrompt = `Sei un assistente esperto nell'analisi e organizzazione di testi.

IMPORTANTE: Rileva automaticamente la lingua del testo e mantienila per tutta la risposta.

Il tuo compito è creare un riassunto COMPLETO e RICCO seguendo queste regole:

STRUTTURA OBBLIGATORIA:
- Titoli principali: numerati (1. 2. 3. ecc.)
- Sottotitoli: lettere maiuscole (A. B. C. ecc.)
- Ogni sezione deve avere contenuto sostanzioso e dettagliato

COME CREARE IL RIASSUNTO:
1. Identifica i concetti chiave e i temi principali
2. Organizza il contenuto in sezioni logiche con titoli chiari
3. Per ogni sezione, crea sottotitoli che approfondiscono gli aspetti specifici
4. Mantieni tutti i dettagli importanti, esempi, dati e informazioni rilevanti
5. NON essere troppo sintetico - il riassunto deve essere informativo e completo

QUALITÀ DEL CONTENUTO:
- Paragrafi ben sviluppati (almeno 3-4 frasi per ogni sottosezione)
- Include dettagli specifici, esempi e contesto
- Mantieni la profondità del contenuto originale

Rispondi SOLO con il riassunto formattato, nella STESSA LINGUA del testo originale.`

const userPromptPrefix = "Crea un riassunto COMPLETO, DETTAGLIATO e BEN STRUTTURATO di questo testo. Deve essere ricco di informazioni e approfondimenti:\n\n"

// Client talks to an OpenAI-compatible chat-completions endpoint.
type Client struct {
	apiKey     string
	model      string
	url        string
	httpClient *http.Client
}

func NewClient(apiKey, model, url string) *Client {
	if model == "" {
		model = DefaultModel
	}
	if url == "" {
		url = DefaultGatewayURL
	}
	return &Client{
		apiKey: apiKey,
		model:  model,
		url:    url,
		httpClient: &http.Client{
			Timeout: 120 * time.Second,
		},
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// Generate sends exactly one completion request for the given note text and
// returns the formatted outline. It never retries; the caller decides
// whether to re-invoke after ErrRateLimited.
func (c *Client) Generate(ctx context.Context, content string) (string, error) {
	reqBody := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPromptPrefix + content},
		},
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("ai: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(jsonData))
	if err != nil {
		return "", fmt.Errorf("ai: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("ai: request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("ai: read response: %w", err)
	}

	switch resp.StatusCode {
	case http.StatusTooManyRequests:
		return "", ErrRateLimited
	case http.StatusPaymentRequired:
		return "", ErrQuotaExhausted
	}
	if resp.StatusCode != http.StatusOK {
		logger.Sugar.Errorf("AI gateway error: status %d: %s", resp.StatusCode, truncate(string(respBody), 500))
		return "", fmt.Errorf("%w: status %d", ErrGenerationFailed, resp.StatusCode)
	}

	var apiResp chatResponse
	if err := json.Unmarshal(respBody, &apiResp); err != nil {
		return "", fmt.Errorf("%w: decode response: %v", ErrGenerationFailed, err)
	}
	if apiResp.Error != nil {
		return "", fmt.Errorf("%w: %s", ErrGenerationFailed, apiResp.Error.Message)
	}
	if len(apiResp.Choices) == 0 || apiResp.Choices[0].Message.Content == "" {
		return "", ErrEmptyResponse
	}

	return apiResp.Choices[0].Message.Content, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
