package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"

	"github.com/kyudan/motemovil/internal/pkg/logger"
	"github.com/kyudan/motemovil/internal/pkg/models"
)

const driverSchemaPrompt = `Extrae los datos del siguiente mensaje de un conductor y responde con un unico objeto JSON con las claves: "name", "origin", "destination", "stops", "hour", "seats", "fare", "vehicle". Usa "" para datos ausentes. Mensaje: %s`

const passengerSchemaPrompt = `Extrae los datos del siguiente mensaje de un pasajero y responde con un unico objeto JSON con las claves: "name", "origin", "destination", "deadline_hour". Usa "" para datos ausentes. Mensaje: %s`

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// MistralGateway implements bot.ExtractionGateway against a Mistral-compatible
// chat-completions API.
//
// Credential failover policy: persistent rotation. On a quota-class failure
// (HTTP 429) the active credential index advances and stays advanced for
// subsequent calls; the failing request itself gets one immediate retry on the
// next credential before the call degrades to nil.
type MistralGateway struct {
	cfg        models.ExtractionConfig
	httpClient *http.Client
	logger     *logger.ZapLogger

	mu     sync.Mutex
	active int
}

// NewMistralGateway creates a new extraction gateway. With no API keys
// configured the gateway degrades to always-nil instead of failing startup.
func NewMistralGateway(cfg models.ExtractionConfig, zapLogger *logger.ZapLogger) *MistralGateway {
	if len(cfg.APIKeys) == 0 {
		zapLogger.Warn("No extraction API keys configured, extraction disabled")
	}

	return &MistralGateway{
		cfg: cfg,
		httpClient: &http.Client{
			// The context deadline below is the authoritative bound; this is
			// a backstop in case a call is issued without one.
			Timeout: cfg.Timeout,
		},
		logger: zapLogger,
	}
}

// Extract sends the freeform text to the text-understanding service and
// parses the embedded JSON object from its reply. Every failure mode
// (transport error, deadline, quota exhaustion, unparseable output) yields
// nil: the caller proceeds in manual mode.
func (g *MistralGateway) Extract(ctx context.Context, freeText string, role models.Role) models.TripDetails {
	if len(g.cfg.APIKeys) == 0 {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, g.cfg.Timeout)
	defer cancel()

	prompt := driverSchemaPrompt
	if role == models.RolePassenger {
		prompt = passengerSchemaPrompt
	}
	content := fmt.Sprintf(prompt, freeText)

	// At most two attempts: the active credential, then its successor when
	// the first fails on quota.
	for attempt := 0; attempt < 2; attempt++ {
		key := g.activeKey()

		details, quotaExhausted, err := g.call(ctx, key, content)
		if err == nil {
			return details
		}

		if quotaExhausted && attempt == 0 && len(g.cfg.APIKeys) > 1 {
			g.rotate()
			g.logger.Warn("Extraction credential exhausted, rotating",
				logger.Int("next_index", g.activeIndex()))
			continue
		}

		g.logger.Warn("Extraction failed, proceeding in manual mode",
			logger.String("role", string(role)),
			logger.Err(err))
		return nil
	}

	return nil
}

func (g *MistralGateway) activeKey() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.cfg.APIKeys[g.active%len(g.cfg.APIKeys)]
}

func (g *MistralGateway) activeIndex() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.active
}

func (g *MistralGateway) rotate() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.active = (g.active + 1) % len(g.cfg.APIKeys)
}

// call performs one chat-completions request with one credential. The second
// return value reports a quota-class failure.
func (g *MistralGateway) call(ctx context.Context, apiKey, content string) (models.TripDetails, bool, error) {
	body, err := json.Marshal(chatRequest{
		Model: g.cfg.Model,
		Messages: []chatMessage{
			{Role: "user", Content: content},
		},
	})
	if err != nil {
		return nil, false, fmt.Errorf("failed to marshal extraction request: %w", err)
	}

	url := g.cfg.BaseURL + "/v1/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, false, fmt.Errorf("failed to build extraction request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+apiKey)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, false, fmt.Errorf("extraction request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, true, fmt.Errorf("extraction credential quota exhausted")
	}
	if resp.StatusCode != http.StatusOK {
		return nil, false, fmt.Errorf("extraction service returned status %d", resp.StatusCode)
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, false, fmt.Errorf("failed to read extraction response: %w", err)
	}

	var chat chatResponse
	if err := json.Unmarshal(raw, &chat); err != nil {
		return nil, false, fmt.Errorf("failed to decode extraction response: %w", err)
	}
	if len(chat.Choices) == 0 {
		return nil, false, fmt.Errorf("extraction response contained no choices")
	}

	details, err := ParseDetails(chat.Choices[0].Message.Content)
	if err != nil {
		return nil, false, err
	}

	return details, false, nil
}
