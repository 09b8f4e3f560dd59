package anthias

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"time"
)

// OfflineSentinel is returned by FetchField when a player cannot be reached.
const OfflineSentinel = "Offline"

// uploadFieldName is the multipart form field the player's upload endpoint
// expects.
const uploadFieldName = "file_upload"

// maxResponseBody caps how much of a player response is read into memory.
// Player responses are small JSON documents; anything larger is suspect.
const maxResponseBody = 1 << 20 // 1MB

// Config contains the immutable settings shared by all player calls:
// fixed Basic-Auth credentials, URL scheme, and per-call timeouts.
// It is passed at construction so tests can point the client at doubles
// with different credentials and endpoints.
type Config struct {
	Username string
	Password string

	// Scheme is "http" or "https". Players are addressed as
	// scheme://address/api/...
	Scheme string

	// RequestTimeout bounds ordinary API calls.
	RequestTimeout time.Duration

	// UploadTimeout bounds multipart uploads, which may carry video files.
	UploadTimeout time.Duration

	// ProbeTimeout bounds the liveness probe (5s in practice).
	ProbeTimeout time.Duration
}

// Client performs authenticated REST calls against individual players.
//
// Thread Safety:
//   - All methods are safe for concurrent use from multiple goroutines;
//     the fleet executor calls them from one goroutine per player.
type Client struct {
	cfg Config

	// Separate http.Clients because timeouts differ per call class and
	// http.Client.Timeout is the simplest way to keep them finite.
	requestClient *http.Client
	uploadClient  *http.Client
	probeClient   *http.Client
}

// New creates a player client with the given configuration.
func New(cfg Config) *Client {
	if cfg.Scheme == "" {
		cfg.Scheme = "http"
	}
	return &Client{
		cfg:           cfg,
		requestClient: &http.Client{Timeout: cfg.RequestTimeout},
		uploadClient:  &http.Client{Timeout: cfg.UploadTimeout},
		probeClient:   &http.Client{Timeout: cfg.ProbeTimeout},
	}
}

// Endpoint builders. Address is the player's host (IP or hostname).

func (c *Client) currentAssetURL(address string) string {
	return fmt.Sprintf("%s://%s/api/v1/viewer_current_asset", c.cfg.Scheme, address)
}

func (c *Client) fileAssetURL(address string) string {
	return fmt.Sprintf("%s://%s/api/v2/file_asset", c.cfg.Scheme, address)
}

func (c *Client) assetsURL(address string) string {
	return fmt.Sprintf("%s://%s/api/v2/assets", c.cfg.Scheme, address)
}

func (c *Client) assetURL(address, assetID string) string {
	return fmt.Sprintf("%s://%s/api/v2/assets/%s", c.cfg.Scheme, address, url.PathEscape(assetID))
}

// do executes one authenticated request and normalises the outcome.
// A nil DeviceError means a 2xx response; body is the (bounded) response body.
func (c *Client) do(ctx context.Context, client *http.Client, method, rawURL string, body io.Reader, contentType string) ([]byte, *DeviceError) {
	req, err := http.NewRequestWithContext(ctx, method, rawURL, body)
	if err != nil {
		return nil, transportError(err)
	}
	req.SetBasicAuth(c.cfg.Username, c.cfg.Password)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, transportError(err)
	}
	defer resp.Body.Close() //nolint:errcheck // Best effort close after read

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		return nil, transportError(err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, httpError(resp.StatusCode, respBody)
	}

	return respBody, nil
}

// UploadFile uploads file bytes to a player's file-asset endpoint.
//
// The player responds with the stored file's uri and ext, which the caller
// feeds into the subsequent create-asset step. A 2xx response missing either
// field is itself a failure - the create step cannot proceed without them.
//
// Parameters:
//   - ctx: Context for cancellation
//   - address: Player address
//   - data: Raw file bytes
//   - filename: Original filename (players use the extension)
//   - contentType: Declared MIME type of the file
//
// Returns:
//   - Upload: uri and ext from the player
//   - *DeviceError: nil on success
func (c *Client) UploadFile(ctx context.Context, address string, data []byte, filename, contentType string) (Upload, *DeviceError) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition",
		fmt.Sprintf(`form-data; name=%q; filename=%q`, uploadFieldName, filename))
	header.Set("Content-Type", contentType)

	part, err := writer.CreatePart(header)
	if err != nil {
		return Upload{}, transportError(err)
	}
	if _, err := part.Write(data); err != nil {
		return Upload{}, transportError(err)
	}
	if err := writer.Close(); err != nil {
		return Upload{}, transportError(err)
	}

	body, devErr := c.do(ctx, c.uploadClient, http.MethodPost, c.fileAssetURL(address), &buf, writer.FormDataContentType())
	if devErr != nil {
		return Upload{}, devErr
	}

	var upload Upload
	if err := json.Unmarshal(body, &upload); err != nil {
		return Upload{}, &DeviceError{
			Message: "malformed upload response: " + err.Error(),
			Body:    string(body),
		}
	}
	if upload.URI == "" || upload.Ext == "" {
		return Upload{}, &DeviceError{
			Message: "missing uri or ext in upload response",
			Body:    string(body),
		}
	}

	return upload, nil
}

// CreateAsset registers an asset on a player.
//
// Returns the player's response body (the created asset object) verbatim.
func (c *Client) CreateAsset(ctx context.Context, address string, payload CreationPayload) (json.RawMessage, *DeviceError) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, transportError(err)
	}

	respBody, devErr := c.do(ctx, c.requestClient, http.MethodPost, c.assetsURL(address), bytes.NewReader(body), "application/json")
	if devErr != nil {
		return nil, devErr
	}

	return normaliseJSON(respBody), nil
}

// ListAssets fetches the full asset list from a player.
func (c *Client) ListAssets(ctx context.Context, address string) ([]Asset, *DeviceError) {
	body, devErr := c.do(ctx, c.requestClient, http.MethodGet, c.assetsURL(address), nil, "")
	if devErr != nil {
		return nil, devErr
	}

	var assets []Asset
	if err := json.Unmarshal(body, &assets); err != nil {
		return nil, &DeviceError{
			Message: "malformed asset list: " + err.Error(),
			Body:    string(body),
		}
	}

	return assets, nil
}

// DeleteAsset removes one asset from a player.
func (c *Client) DeleteAsset(ctx context.Context, address, assetID string) *DeviceError {
	_, devErr := c.do(ctx, c.requestClient, http.MethodDelete, c.assetURL(address, assetID), nil, "")
	return devErr
}

// SetAssetEnabled flips an asset's is_enabled flag on a player.
//
// The PATCH body writes is_enabled; note this is distinct from the
// is_active field the player reports on reads.
//
// Returns the player's response verbatim when it is JSON, or wrapped as
// {"text": ...} when the player answers with a plain-text body.
func (c *Client) SetAssetEnabled(ctx context.Context, address, assetID string, enabled bool) (json.RawMessage, *DeviceError) {
	body, err := json.Marshal(map[string]bool{"is_enabled": enabled})
	if err != nil {
		return nil, transportError(err)
	}

	respBody, devErr := c.do(ctx, c.requestClient, http.MethodPatch, c.assetURL(address, assetID), bytes.NewReader(body), "application/json")
	if devErr != nil {
		return nil, devErr
	}

	return normaliseJSON(respBody), nil
}

// FetchField reads one named field from a player's live-state endpoint.
//
// Unlike every other method this never fails: any transport or HTTP error
// yields the "Offline" sentinel, because the endpoint is used purely for
// liveness display and an unreachable player is itself the answer.
//
// Parameters:
//   - ctx: Context for cancellation
//   - address: Player address
//   - field: JSON field to extract (e.g. "name")
//
// Returns:
//   - string: The field's value, "<field> not found" if the response lacks
//     it, or "Offline" on any failure
func (c *Client) FetchField(ctx context.Context, address, field string) string {
	body, devErr := c.do(ctx, c.probeClient, http.MethodGet, c.currentAssetURL(address), nil, "")
	if devErr != nil {
		return OfflineSentinel
	}

	var state map[string]any
	if err := json.Unmarshal(body, &state); err != nil {
		return OfflineSentinel
	}

	value, ok := state[field]
	if !ok {
		return fmt.Sprintf("%s not found", field)
	}

	if s, isString := value.(string); isString {
		return s
	}
	return fmt.Sprint(value)
}

// normaliseJSON returns body verbatim when it is valid JSON, otherwise
// wraps it as {"text": body}. Players occasionally answer PATCH with
// plain text.
func normaliseJSON(body []byte) json.RawMessage {
	if json.Valid(body) && len(bytes.TrimSpace(body)) > 0 {
		return json.RawMessage(body)
	}
	wrapped, err := json.Marshal(map[string]string{"text": string(body)})
	if err != nil {
		return json.RawMessage(`{}`)
	}
	return json.RawMessage(wrapped)
}
