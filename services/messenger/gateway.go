package messenger

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// HTTPGateway delivers messages through the messaging gateway's REST API.
type HTTPGateway struct {
	BaseURL string
	Client  *http.Client
}

// NewHTTPGateway constructs an HTTPGateway for the given base URL.
func NewHTTPGateway(baseURL string) *HTTPGateway {
	return &HTTPGateway{
		BaseURL: baseURL,
		Client:  &http.Client{Timeout: 15 * time.Second},
	}
}

type sendRequest struct {
	Phone string `json:"phone"`
	Body  string `json:"body"`
}

// SendText posts one outbound message to the gateway.
func (g *HTTPGateway) SendText(ctx context.Context, phone, body string) error {
	payload, err := json.Marshal(sendRequest{Phone: phone, Body: body})
	if err != nil {
		return fmt.Errorf("messenger: encoding send request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.BaseURL+"/send", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("messenger: building send request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.Client.Do(req)
	if err != nil {
		return fmt.Errorf("messenger: sending to gateway: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("messenger: gateway returned status %d", resp.StatusCode)
	}
	return nil
}
