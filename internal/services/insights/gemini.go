package insights

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/bytedance/sonic"
)

// ErrEmptyCompletion is returned when the model answers but produces no text.
var ErrEmptyCompletion = errors.New("model returned an empty completion")

type ClientOptions struct {
	// https://generativelanguage.googleapis.com/v1beta
	BaseURL string
	ApiKey  string
	Model   string

	Transport *http.Client
}

// Client is a minimal Gemini generateContent caller. It only supports the
// single-turn text completion the summary feature needs.
type Client struct {
	opts *ClientOptions
}

func NewClient(opts *ClientOptions) *Client {
	if opts.Transport == nil {
		opts.Transport = http.DefaultClient
	}
	if opts.BaseURL == "" {
		opts.BaseURL = "https://generativelanguage.googleapis.com/v1beta"
	}
	if opts.Model == "" {
		opts.Model = "gemini-2.5-flash"
	}
	return &Client{opts: opts}
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
	Role  string       `json:"role,omitempty"`
}

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Status  string `json:"status"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
	Error *geminiError `json:"error,omitempty"`
}

// Generate sends a single text prompt and returns the first candidate's text.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	in := &geminiRequest{
		Contents: []geminiContent{
			{Role: "user", Parts: []geminiPart{{Text: prompt}}},
		},
	}

	endpoint := fmt.Sprintf("%s/models/%s:generateContent", c.opts.BaseURL, c.opts.Model)

	payload, err := sonic.Marshal(in)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewBuffer(payload))
	if err != nil {
		return "", err
	}

	req.Header.Set("Content-Type", "application/json")
	if c.opts.ApiKey != "" {
		// Gemini API uses a query parameter for the API key
		q := req.URL.Query()
		q.Set("key", c.opts.ApiKey)
		req.URL.RawQuery = q.Encode()
	}

	res, err := c.opts.Transport.Do(req)
	if err != nil {
		return "", err
	}
	defer res.Body.Close()

	var out geminiResponse
	if err := sonic.ConfigDefault.NewDecoder(res.Body).Decode(&out); err != nil {
		return "", err
	}

	if out.Error != nil {
		return "", fmt.Errorf("gemini API error: %s (code: %d, status: %s)", out.Error.Message, out.Error.Code, out.Error.Status)
	}

	if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 {
		return "", ErrEmptyCompletion
	}
	return out.Candidates[0].Content.Parts[0].Text, nil
}
