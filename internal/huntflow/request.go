package huntflow

import (
	"bytes"
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/google/uuid"
	"github.com/mitchellh/mapstructure"
	"go.uber.org/zap"

	"github.com/spigell/hf-importer/internal/utils"
)

const (
	contentType     = "application/json"
	contentEncoding = "gzip"
	// Max length of a response body kept in errors and logs.
	maxBodyLength = 512
)

// ItemResponse is the list envelope of the Huntflow API. Pages are 1-based and
// Total is the number of pages; endpoints without paging leave both at zero.
type ItemResponse struct {
	Items []Item
	Page  int
	Count int
	Total int
}

type Item interface{}

// GetItems makes GET request to Huntflow API and return items from all pages.
func (c *Client) GetItems(ctx context.Context, url string, q url.Values) ([]Item, error) {
	var items []Item

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	req = c.setHeaders(req)
	req.Header.Set("Content-Type", contentType)
	if q != nil {
		req.URL.RawQuery = q.Encode()
	}

	var response *ItemResponse
	if err := c.do(req, &response); err != nil {
		return nil, err
	}

	if response == nil {
		return nil, nil
	}

	c.logger.Debug("got response from huntflow", zap.Int("pages", response.Total), zap.Int("items per page", response.Count))

	items = append(items, response.Items...)

	for page := response.Page; page < response.Total; page++ {
		c.logger.Debug("additional request needed", zap.String("reason", fmt.Sprintf(
			"current page (%d) < all page count (%d)", page, response.Total),
		))

		var next *ItemResponse
		if err := c.do(addPage(req, page+1), &next); err != nil {
			return nil, err
		}

		if next == nil {
			break
		}

		items = append(items, next.Items...)
	}

	return items, nil
}

func (c *Client) getJSON(ctx context.Context, url string, q url.Values, target any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}

	req = c.setHeaders(req)
	req.Header.Set("Content-Type", contentType)
	if q != nil {
		req.URL.RawQuery = q.Encode()
	}

	return c.do(req, target)
}

func (c *Client) postJSON(ctx context.Context, url string, payload any, target any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encoding request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return err
	}

	req = c.setHeaders(req)
	req.Header.Set("Content-Type", contentType)

	c.logger.Debug("request body", zap.String("url", url), zap.ByteString("body", data))

	return c.do(req, target)
}

// do sends the request and decodes a successful JSON answer into target.
// Every failure on the way, including an undecodable body, is a *NetworkError.
func (c *Client) do(req *http.Request, target any) error {
	resp, err := c.request(req)
	if err != nil {
		return &NetworkError{Method: req.Method, URL: req.URL.String(), Err: err}
	}
	defer resp.Body.Close()

	data, err := readBody(resp)
	if err != nil {
		return &NetworkError{Method: req.Method, URL: req.URL.String(), StatusCode: resp.StatusCode, Status: resp.Status, Err: err}
	}

	c.logger.Debug("got response",
		zap.String("url", req.URL.String()),
		zap.Int("status", resp.StatusCode),
		zap.String("body", utils.TruncateForLog(string(data), maxBodyLength)),
	)

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return &NetworkError{
			Method:     req.Method,
			URL:        req.URL.String(),
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       utils.TruncateForLog(string(data), maxBodyLength),
		}
	}

	if target == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}

	if err := json.Unmarshal(data, target); err != nil {
		return &NetworkError{
			Method:     req.Method,
			URL:        req.URL.String(),
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Err:        fmt.Errorf("decoding response: %w", err),
		}
	}

	return nil
}

func (c *Client) request(req *http.Request) (*http.Response, error) {
	c.logger.Debug("make request", zap.String("method", req.Method), zap.String("url", req.URL.String()))
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}

	return resp, nil
}

func (c *Client) setHeaders(req *http.Request) *http.Request {
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.cfg.Token))
	req.Header.Set("User-Agent", c.cfg.UserAgent)
	req.Header.Set("Accept-Encoding", contentEncoding)
	req.Header.Set("X-Request-Id", uuid.NewString())

	return req
}

func readBody(resp *http.Response) ([]byte, error) {
	var reader io.Reader = resp.Body
	if resp.Header.Get("Content-Encoding") == "gzip" {
		gzipReader, err := gzip.NewReader(resp.Body)
		if err != nil {
			return nil, err
		}
		defer gzipReader.Close()
		reader = gzipReader
	}

	return io.ReadAll(reader)
}

// decodeItems converts generic list items into typed values using their json tags.
func decodeItems(items []Item, target any) error {
	cfg := &mapstructure.DecoderConfig{
		Metadata: nil,
		Result:   target,
		TagName:  "json",
	}

	decoder, err := mapstructure.NewDecoder(cfg)
	if err != nil {
		return err
	}

	return decoder.Decode(items)
}

// addPage adds page parameter to request URL.
func addPage(req *http.Request, page int) *http.Request {
	q := req.URL.Query()
	q.Set("page", strconv.Itoa(page))
	req.URL.RawQuery = q.Encode()
	req.Header.Set("X-Request-Id", uuid.NewString())

	return req
}
