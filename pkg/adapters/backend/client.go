package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/ArthurB95/linklink/pkg/core/domain"
	"github.com/ArthurB95/linklink/pkg/ports"
)

// APIError is a non-2xx backend response. Message is the backend's
// structured "message" field when it sent one.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("backend: %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("backend: unexpected status %d", e.Status)
}

// UserMessage is the only part of the error ever shown to the user.
func (e *APIError) UserMessage() string { return e.Message }

func (e *APIError) Unwrap() error {
	if e.Status == http.StatusNotFound {
		return domain.ErrNotFound
	}
	return nil
}

// Client talks to the Link.Link REST backend. The token store is consulted
// before every authenticated call; public endpoints never attach a bearer.
type Client struct {
	baseURL string
	http    *http.Client
	tokens  ports.TokenStore
}

var _ ports.BackendClient = (*Client)(nil)

func New(baseURL string, tokens ports.TokenStore) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
		tokens:  tokens,
	}
}

// BaseURL is exposed for QR value derivation, which embeds the backend's
// public scan endpoint into generated images.
func (c *Client) BaseURL() string { return c.baseURL }

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}, authed bool) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if authed && c.tokens != nil {
		token, err := c.tokens.Token(ctx)
		if err != nil {
			return err
		}
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode}
		var envelope struct {
			Message string `json:"message"`
		}
		if json.NewDecoder(resp.Body).Decode(&envelope) == nil {
			apiErr.Message = envelope.Message
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// decodeItems accepts either a raw JSON array or a paginated envelope with a
// "content" array and normalizes to a slice. Unexpected shapes decode to nil.
func decodeItems(raw json.RawMessage, out interface{}) error {
	trimmed := bytes.TrimLeft(raw, " \t\r\n")
	if len(trimmed) > 0 && trimmed[0] == '[' {
		return json.Unmarshal(raw, out)
	}
	var envelope struct {
		Content json.RawMessage `json:"content"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return err
	}
	if envelope.Content == nil {
		return nil
	}
	return json.Unmarshal(envelope.Content, out)
}

func (c *Client) Me(ctx context.Context) (*domain.User, error) {
	var user domain.User
	if err := c.do(ctx, http.MethodGet, "/auth/me", nil, &user, true); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) MyBioPage(ctx context.Context) (*domain.BioPage, error) {
	var page domain.BioPage
	if err := c.do(ctx, http.MethodGet, "/bio-pages/my", nil, &page, true); err != nil {
		return nil, err
	}
	return &page, nil
}

func (c *Client) UpdateBioPage(ctx context.Context, patch domain.BioPagePatch) (*domain.BioPage, error) {
	var page domain.BioPage
	if err := c.do(ctx, http.MethodPut, "/bio-pages/my", patch, &page, true); err != nil {
		return nil, err
	}
	return &page, nil
}

func (c *Client) AddLink(ctx context.Context, title, url string) (*domain.BioLink, error) {
	payload := map[string]string{"title": title, "url": url}
	var link domain.BioLink
	if err := c.do(ctx, http.MethodPost, "/bio-pages/my/links", payload, &link, true); err != nil {
		return nil, err
	}
	return &link, nil
}

func (c *Client) UpdateLink(ctx context.Context, id int64, patch domain.BioLinkPatch) (*domain.BioLink, error) {
	var link domain.BioLink
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/bio-pages/my/links/%d", id), patch, &link, true); err != nil {
		return nil, err
	}
	return &link, nil
}

func (c *Client) DeleteLink(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/bio-pages/my/links/%d", id), nil, nil, true)
}

func (c *Client) ReorderLinks(ctx context.Context, ids []int64) error {
	// The body is the bare ordered id array, not an object.
	return c.do(ctx, http.MethodPut, "/bio-pages/my/links/reorder", ids, nil, true)
}

func (c *Client) ListQRCodes(ctx context.Context) ([]domain.QRCode, error) {
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodGet, "/qr-codes", nil, &raw, true); err != nil {
		return nil, err
	}
	var codes []domain.QRCode
	if err := decodeItems(raw, &codes); err != nil {
		return nil, err
	}
	return codes, nil
}

func (c *Client) CreateQRCode(ctx context.Context, req domain.QRCodeRequest) (*domain.QRCode, error) {
	var code domain.QRCode
	if err := c.do(ctx, http.MethodPost, "/qr-codes", req, &code, true); err != nil {
		return nil, err
	}
	return &code, nil
}

func (c *Client) GetQRCode(ctx context.Context, id int64) (*domain.QRCode, error) {
	var code domain.QRCode
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/qr-codes/%d", id), nil, &code, true); err != nil {
		return nil, err
	}
	return &code, nil
}

func (c *Client) DeleteQRCode(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/qr-codes/%d", id), nil, nil, true)
}

func (c *Client) BindQRCode(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodPut, fmt.Sprintf("/bio-pages/my/qrcode/%d", id), nil, nil, true)
}

func (c *Client) UnbindQRCode(ctx context.Context) error {
	return c.do(ctx, http.MethodDelete, "/bio-pages/my/qrcode", nil, nil, true)
}

func (c *Client) ListShortenedLinks(ctx context.Context) ([]domain.ShortenedLink, error) {
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodGet, "/links", nil, &raw, true); err != nil {
		return nil, err
	}
	var links []domain.ShortenedLink
	if err := decodeItems(raw, &links); err != nil {
		return nil, err
	}
	return links, nil
}

type createShortenedLinkRequest struct {
	OriginalURL string  `json:"originalUrl"`
	CustomSlug  *string `json:"customSlug,omitempty"`
}

func (c *Client) CreateShortenedLink(ctx context.Context, originalURL, customSlug string) (*domain.ShortenedLink, error) {
	req := createShortenedLinkRequest{OriginalURL: originalURL}
	// Blank means "no preference": the key is left out entirely so the
	// backend assigns a slug.
	if customSlug != "" {
		req.CustomSlug = &customSlug
	}
	var link domain.ShortenedLink
	if err := c.do(ctx, http.MethodPost, "/links", req, &link, true); err != nil {
		return nil, err
	}
	return &link, nil
}

func (c *Client) DeleteShortenedLink(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/links/%d", id), nil, nil, true)
}

func (c *Client) PublicBioPage(ctx context.Context, handle string) (*domain.BioPage, error) {
	var page domain.BioPage
	if err := c.do(ctx, http.MethodGet, "/public/bio-pages/"+handle, nil, &page, false); err != nil {
		return nil, err
	}
	return &page, nil
}

func (c *Client) RegisterLinkClick(ctx context.Context, handle string, linkID int64) error {
	path := fmt.Sprintf("/public/bio-pages/%s/links/%d/click", handle, linkID)
	return c.do(ctx, http.MethodPost, path, nil, nil, false)
}

func (c *Client) ResolveShortCode(ctx context.Context, code string) (*domain.ShortenedLink, error) {
	var link domain.ShortenedLink
	if err := c.do(ctx, http.MethodGet, "/public/links/"+code, nil, &link, false); err != nil {
		return nil, err
	}
	return &link, nil
}
