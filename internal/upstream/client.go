package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"
)

const (
	defaultActionURL = "https://api.dungeoncities.com/api/game/action"
	defaultAuthURL   = "https://api.dungeoncities.com/api/user/authenticate"

	maxAttempts      = 3
	baseRetryBackoff = 500 * time.Millisecond
)

// APIError is an application-level failure: the upstream answered but set
// success=false in the body. Never retried: the request reached the game
// and was rejected.
type APIError struct {
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return "upstream rejected the request"
	}
	return "upstream: " + e.Message
}

// API is the slice of the client the sync pipeline depends on. Tests
// substitute an in-memory implementation.
type API interface {
	FetchDex(ctx context.Context, token string) (*DexData, error)
	FetchMonsterDetail(ctx context.Context, token string, monsterID int) (*MonsterDetail, error)
}

// Client talks to the Dungeon Cities game API. Transport errors and HTTP
// 408/429/5xx on the read actions are retried with exponential backoff; any
// other failure surfaces immediately.
type Client struct {
	HTTP      *http.Client
	ActionURL string
	AuthURL   string
}

func NewClient(actionURL, authURL string) *Client {
	if actionURL == "" {
		actionURL = defaultActionURL
	}
	if authURL == "" {
		authURL = defaultAuthURL
	}
	return &Client{
		HTTP:      &http.Client{Timeout: 15 * time.Second},
		ActionURL: actionURL,
		AuthURL:   authURL,
	}
}

// FetchDex lists the player's discovered monsters and the game-wide totals.
func (c *Client) FetchDex(ctx context.Context, token string) (*DexData, error) {
	var resp dexResponse
	if err := c.postAction(ctx, token, dexDataPayload(), &resp); err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, &APIError{Message: resp.errorMessage()}
	}
	if resp.Data == nil {
		return nil, &APIError{Message: "dex response missing data"}
	}
	return resp.Data, nil
}

// FetchMonsterDetail fetches one monster's drops and personal counters.
func (c *Client) FetchMonsterDetail(ctx context.Context, token string, monsterID int) (*MonsterDetail, error) {
	var resp detailResponse
	if err := c.postAction(ctx, token, monsterDetailsPayload(monsterID), &resp); err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, &APIError{Message: resp.errorMessage()}
	}
	if resp.Data == nil {
		return nil, &APIError{Message: fmt.Sprintf("detail response for monster %d missing data", monsterID)}
	}
	return resp.Data, nil
}

// RequestChallenge asks for a login challenge message for the account.
func (c *Client) RequestChallenge(ctx context.Context, account string) (string, error) {
	var resp challengeResponse
	if err := c.postJSON(ctx, c.AuthURL, "", map[string]string{"account": account}, &resp); err != nil {
		return "", fmt.Errorf("request challenge: %w", err)
	}
	if resp.Message == "" {
		return "", &APIError{Message: "challenge response missing message"}
	}
	return resp.Message, nil
}

// SubmitSignature exchanges a signed challenge for a game API token.
func (c *Client) SubmitSignature(ctx context.Context, account, signature string) (string, error) {
	var resp tokenResponse
	body := map[string]string{"account": account, "result": signature}
	if err := c.postJSON(ctx, c.AuthURL, "", body, &resp); err != nil {
		return "", fmt.Errorf("submit signature: %w", err)
	}
	if resp.Token == "" {
		return "", &APIError{Message: "authentication response missing token"}
	}
	return resp.Token, nil
}

// postAction sends one game action with retry. The action endpoint is a POST
// but the dex reads are idempotent, so retrying on 408/429/5xx is safe.
func (c *Client) postAction(ctx context.Context, token string, payload Payload, out any) error {
	var lastErr error

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if attempt > 1 {
			backoff := baseRetryBackoff << (attempt - 2)
			log.Printf("[upstream] retrying %s in %s (attempt %d/%d)", payload.Params.SubAction, backoff, attempt, maxAttempts)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff):
			}
		}

		retryable, err := c.doPost(ctx, c.ActionURL, token, payload, out)
		if err == nil {
			return nil
		}
		lastErr = err
		if !retryable {
			return err
		}
	}

	return fmt.Errorf("after %d attempts: %w", maxAttempts, lastErr)
}

// postJSON is the single-shot variant used by the authenticate endpoint,
// which is not idempotent and therefore never retried.
func (c *Client) postJSON(ctx context.Context, url, token string, payload, out any) error {
	_, err := c.doPost(ctx, url, token, payload, out)
	return err
}

// doPost performs one HTTP round trip. The bool reports whether the failure
// is worth retrying.
func (c *Client) doPost(ctx context.Context, url, token string, payload, out any) (bool, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return false, fmt.Errorf("marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return false, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "*/*")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		// network-level failure
		return true, fmt.Errorf("request %s: %w", url, err)
	}

	raw, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return true, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		err := fmt.Errorf("request failed: %d %s", resp.StatusCode, http.StatusText(resp.StatusCode))
		return retryableStatus(resp.StatusCode), err
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return false, fmt.Errorf("decode response: %w", err)
	}
	return false, nil
}

func retryableStatus(code int) bool {
	return code == http.StatusRequestTimeout ||
		code == http.StatusTooManyRequests ||
		code >= 500
}

func (e envelope) errorMessage() string {
	if e.Error != "" {
		return e.Error
	}
	return e.Message
}
