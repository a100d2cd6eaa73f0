package portal

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"time"
)

// APIError is a structured error response from the portal API.
type APIError struct {
	Status  int               `json:"-"`
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("portal api: %s (%d): %s", e.Code, e.Status, e.Message)
}

// UploadRecord mirrors the server's upload metadata record.
type UploadRecord struct {
	UploadID      string    `json:"uploadId"`
	Filename      string    `json:"filename"`
	ContentType   string    `json:"contentType"`
	Size          int64     `json:"size"`
	UploadedAt    time.Time `json:"uploadedAt"`
	PublicURL     string    `json:"publicUrl"`
	Role          string    `json:"role"`
	UploaderEmail string    `json:"uploaderEmail"`
}

// PresignResponse references a reserved upload target.
type PresignResponse struct {
	UploadID  string `json:"uploadId"`
	UploadURL string `json:"uploadUrl"`
	PublicURL string `json:"publicUrl"`
}

// LoginResponse is the server's login payload.
type LoginResponse struct {
	Token string `json:"token"`
	Role  string `json:"role"`
	Exp   int64  `json:"exp"`
}

// Client talks to the portal API. API calls carry the bearer token; the
// cookie jar additionally carries the token cookie so requests to the
// guarded page prefix behave like a browser session.
type Client struct {
	baseURL  *url.URL
	http     *http.Client
	sessions *SessionStore
}

// NewClient builds a client for the API at baseURL, restoring any
// persisted session from store.
func NewClient(baseURL string, store *SessionStore) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("create cookie jar: %w", err)
	}

	c := &Client{
		baseURL:  u,
		http:     &http.Client{Jar: jar},
		sessions: store,
	}

	store.Hydrate()
	if ses, ok := store.Current(); ok {
		c.setTokenCookie(ses)
	}
	return c, nil
}

// Session exposes the client's session store.
func (c *Client) Session() *SessionStore {
	return c.sessions
}

// Login authenticates and stores the resulting session, duplicating the
// token into the cookie jar with an expiry matching the token's.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResponse, error) {
	body, err := json.Marshal(map[string]string{"email": email, "password": password})
	if err != nil {
		return nil, fmt.Errorf("encode login request: %w", err)
	}

	var resp LoginResponse
	if err := c.doJSON(ctx, http.MethodPost, "/auth/login", bytes.NewReader(body), &resp); err != nil {
		return nil, err
	}

	ses := Session{Token: resp.Token, Email: email, Role: resp.Role, Exp: resp.Exp}
	if err := c.sessions.Login(ses); err != nil {
		return nil, err
	}
	c.setTokenCookie(ses)
	return &resp, nil
}

// Logout clears the session and the token cookie.
func (c *Client) Logout() error {
	c.http.Jar.SetCookies(c.baseURL, []*http.Cookie{{
		Name:   "token",
		Value:  "",
		Path:   "/",
		MaxAge: -1,
	}})
	return c.sessions.Logout()
}

// Presign reserves an upload slot for the declared file attributes.
func (c *Client) Presign(ctx context.Context, filename, contentType string, size int64) (*PresignResponse, error) {
	body, err := json.Marshal(map[string]any{
		"filename":    filename,
		"contentType": contentType,
		"size":        size,
	})
	if err != nil {
		return nil, fmt.Errorf("encode presign request: %w", err)
	}

	var resp PresignResponse
	if err := c.doJSON(ctx, http.MethodPost, "/uploads/presign", bytes.NewReader(body), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Upload streams body to the presigned upload URL.
func (c *Client) Upload(ctx context.Context, uploadURL, contentType string, body io.Reader) error {
	req, err := c.newRequest(ctx, http.MethodPut, uploadURL, body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("upload: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return c.apiError(resp)
	}
	return nil
}

// Recent lists the newest upload records. A limit of 0 uses the server
// default.
func (c *Client) Recent(ctx context.Context, limit int) ([]UploadRecord, error) {
	path := "/uploads/recent"
	if limit > 0 {
		path = fmt.Sprintf("%s?limit=%d", path, limit)
	}

	var records []UploadRecord
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// Fetch downloads a stored file, returning its bytes and content type.
func (c *Client) Fetch(ctx context.Context, publicURL string) ([]byte, string, error) {
	req, err := c.newRequest(ctx, http.MethodGet, publicURL, nil)
	if err != nil {
		return nil, "", err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("fetch file: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", c.apiError(resp)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("read file body: %w", err)
	}
	return data, resp.Header.Get("Content-Type"), nil
}

func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	ref, err := url.Parse(path)
	if err != nil {
		return nil, fmt.Errorf("parse request path: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL.ResolveReference(ref).String(), body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if ses, ok := c.sessions.Current(); ok {
		req.Header.Set("Authorization", "Bearer "+ses.Token)
	}
	return req, nil
}

func (c *Client) doJSON(ctx context.Context, method, path string, body io.Reader, dst any) error {
	req, err := c.newRequest(ctx, method, path, body)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return c.apiError(resp)
	}
	if dst == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}

func (c *Client) apiError(resp *http.Response) error {
	apiErr := &APIError{Status: resp.StatusCode}
	if err := json.NewDecoder(resp.Body).Decode(apiErr); err != nil || apiErr.Code == "" {
		apiErr.Code = "SERVER_ERROR"
		apiErr.Message = resp.Status
	}
	return apiErr
}

func (c *Client) setTokenCookie(ses Session) {
	c.http.Jar.SetCookies(c.baseURL, []*http.Cookie{{
		Name:    "token",
		Value:   ses.Token,
		Path:    "/",
		Expires: time.Unix(ses.Exp, 0),
	}})
}
