package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"

	"github.com/avast/retry-go/v4"
	"github.com/gabriel-vasile/mimetype"
)

// Client talks to the document server's upload and ask endpoints.
type Client struct {
	base      *url.URL
	http      *http.Client
	uploadURL *url.URL
	askURL    *url.URL
	retryOpts []retry.Option
}

// ClientConfig holds the server location and endpoint paths.
type ClientConfig struct {
	BaseURL    string
	UploadPath string
	AskPath    string
}

// NewClient creates a client with a configurable base URL and endpoints.
func NewClient(config ClientConfig, opts ...Option) (*Client, error) {
	baseURL, err := url.Parse(config.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if baseURL.Scheme == "" || baseURL.Host == "" {
		return nil, fmt.Errorf("base url must be absolute: %q", config.BaseURL)
	}

	cfg := defaultHTTPConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	return &Client{
		base:      baseURL,
		http:      newHTTPClient(cfg),
		uploadURL: baseURL.ResolveReference(&url.URL{Path: config.UploadPath}),
		askURL:    baseURL.ResolveReference(&url.URL{Path: config.AskPath}),
		retryOpts: []retry.Option{
			retry.Attempts(cfg.retryAttempts),
			retry.Delay(cfg.retryDelay),
			retry.LastErrorOnly(true),
			retry.RetryIf(isNetworkError),
		},
	}, nil
}

func (c *Client) GetUploadURL() string {
	return c.uploadURL.String()
}

func (c *Client) GetAskURL() string {
	return c.askURL.String()
}

// Upload sends content as the multipart field "file".
func (c *Client) Upload(ctx context.Context, filename string, content io.Reader) (*UploadResponse, error) {
	data, err := io.ReadAll(content)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", filename, err)
	}

	body, contentType, err := encodeMultipart(func(w *multipart.Writer) error {
		part, err := w.CreatePart(filePartHeader("file", filename, mimetype.Detect(data).String()))
		if err != nil {
			return fmt.Errorf("create form file: %w", err)
		}
		if _, err := part.Write(data); err != nil {
			return fmt.Errorf("write file content: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	var resp UploadResponse
	if err := c.post(ctx, c.uploadURL, body, contentType, &resp, resp.hasPayload); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Ask sends doc_id and question as multipart fields.
func (c *Client) Ask(ctx context.Context, docID, question string) (*AskResponse, error) {
	body, contentType, err := encodeMultipart(func(w *multipart.Writer) error {
		if err := w.WriteField("doc_id", docID); err != nil {
			return fmt.Errorf("write doc_id: %w", err)
		}
		if err := w.WriteField("question", question); err != nil {
			return fmt.Errorf("write question: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	var resp AskResponse
	if err := c.post(ctx, c.askURL, body, contentType, &resp, resp.hasPayload); err != nil {
		return nil, err
	}
	return &resp, nil
}

func encodeMultipart(prepare func(*multipart.Writer) error) ([]byte, string, error) {
	buf := &bytes.Buffer{}
	writer := multipart.NewWriter(buf)

	if err := prepare(writer); err != nil {
		return nil, "", fmt.Errorf("prepare multipart body: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, "", fmt.Errorf("close multipart writer: %w", err)
	}
	return buf.Bytes(), writer.FormDataContentType(), nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func filePartHeader(field, filename, contentType string) textproto.MIMEHeader {
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
		quoteEscaper.Replace(field), quoteEscaper.Replace(filename)))
	h.Set("Content-Type", contentType)
	return h
}

// post sends body and decodes the JSON reply into out. A non-2xx reply is
// accepted when it decodes into a record with a usable field, since the
// server reports application errors that way.
func (c *Client) post(ctx context.Context, target *url.URL, body []byte, contentType string, out any, hasPayload func() bool) error {
	requestID := newRequestID()

	opts := append([]retry.Option{retry.Context(ctx)}, c.retryOpts...)
	return retry.Do(func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, target.String(), bytes.NewReader(body))
		if err != nil {
			return fmt.Errorf("create request: %w", err)
		}
		req.Header.Set("Content-Type", contentType)
		req.Header.Set("Accept", "application/json")
		req.Header.Set(RequestIDHeader, requestID)

		resp, err := c.http.Do(req)
		if err != nil {
			return &NetworkError{Err: err}
		}
		defer resp.Body.Close()

		raw, err := io.ReadAll(resp.Body)
		if err != nil {
			return &NetworkError{Err: fmt.Errorf("read response body: %w", err)}
		}

		decodeErr := json.Unmarshal(raw, out)
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			if decodeErr == nil && hasPayload() {
				return nil
			}
			return &HTTPError{StatusCode: resp.StatusCode, Message: strings.TrimSpace(string(raw))}
		}
		if decodeErr != nil {
			return &DecodeError{StatusCode: resp.StatusCode, Err: decodeErr}
		}
		return nil
	}, opts...)
}

func isNetworkError(err error) bool {
	var netErr *NetworkError
	return errors.As(err, &netErr)
}
