package api

import (
	"compress/gzip"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/eclogic/waybacktweets/internal/models"
)

const (
	cdxTimeout = 120 * time.Second // accounts with many captures can be slow
	cdxBase    = "https://web.archive.org/cdx/search/cdx"
)

// WaybackClient handles Wayback Machine CDX API requests
type WaybackClient struct {
	httpClient *http.Client
	logger     *log.Logger
}

// NewWaybackClient creates a new Wayback Machine API client.
// Pass a nil logger to silence it (e.g. inside a TUI).
func NewWaybackClient(logger *log.Logger) *WaybackClient {
	return &WaybackClient{
		httpClient: &http.Client{
			Timeout: cdxTimeout,
		},
		logger: logger,
	}
}

// ExtractHandle normalizes user input into a bare account handle.
// Accepts a handle, an @handle, or a profile URL.
// Examples:
//   - "elonmusk" -> "elonmusk"
//   - "@elonmusk" -> "elonmusk"
//   - "https://twitter.com/elonmusk" -> "elonmusk"
//   - "https://x.com/elonmusk/status/123" -> "elonmusk"
func ExtractHandle(input string) (string, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", fmt.Errorf("empty input")
	}

	// If it looks like a URL, take the first path segment
	if strings.Contains(input, "://") {
		parsed, err := url.Parse(input)
		if err != nil {
			return "", fmt.Errorf("invalid URL: %w", err)
		}
		segments := strings.Split(strings.Trim(parsed.Path, "/"), "/")
		if len(segments) == 0 || segments[0] == "" {
			return "", fmt.Errorf("no handle in URL path: %s", input)
		}
		input = segments[0]
	}

	input = strings.TrimPrefix(input, "@")
	if input == "" {
		return "", fmt.Errorf("empty handle")
	}
	return input, nil
}

// BuildCDXQuery constructs the raw query string for the CDX API.
// Returns the query string WITHOUT the leading '?'.
// The asterisk wildcard must NOT be URL-encoded for the CDX API, so the
// tweet URL pattern is embedded literally rather than via url.Values.
func BuildCDXQuery(handle string) string {
	// Clean handle: lowercase and trim whitespace
	handle = strings.ToLower(strings.TrimSpace(handle))

	// Match every archived status URL for the account.
	// collapse=urlkey deduplicates multiple captures of the same tweet URL.
	return fmt.Sprintf(
		"url=https://twitter.com/%s/status/*&output=json&fl=timestamp,original,statuscode,mimetype&collapse=urlkey",
		handle,
	)
}

// FetchCaptures fetches all CDX captures of a handle's tweet URLs.
// An unknown handle is not an error: the API returns zero records.
func (c *WaybackClient) FetchCaptures(handle string) ([]models.Capture, error) {
	// Build raw URL string with literal asterisk - DO NOT use url.URL as it encodes the asterisk
	rawURL := cdxBase + "?" + BuildCDXQuery(handle)

	req, err := http.NewRequest("GET", rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	// Set headers emulating a real browser
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")
	req.Header.Set("Referer", "https://web.archive.org/")
	req.Header.Set("Accept", "application/json, text/plain, */*")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	req.Header.Set("Accept-Encoding", "gzip, deflate")
	req.Header.Set("Connection", "keep-alive")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("CDX API returned status %d: %s", resp.StatusCode, string(body))
	}

	// Handle gzip-compressed responses
	// Use case-insensitive check and handle variations like "gzip", "x-gzip", etc.
	var reader io.Reader = resp.Body
	contentEncoding := strings.ToLower(resp.Header.Get("Content-Encoding"))
	if strings.Contains(contentEncoding, "gzip") {
		gzReader, err := gzip.NewReader(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to create gzip reader: %w", err)
		}
		defer gzReader.Close()
		reader = gzReader
	}

	body, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	captures, err := ParseCDXResponse(body)
	if err != nil {
		return nil, err
	}

	if c.logger != nil {
		c.logger.Info("CDX fetch complete", "handle", handle, "captures", len(captures))
	}

	return captures, nil
}

// ParseCDXResponse parses the CDX JSON response.
// Format: [[header], [record1], [record2], ...]
// Each record: [timestamp, original, statuscode, mimetype]
func ParseCDXResponse(body []byte) ([]models.Capture, error) {
	var rawRows [][]string
	if err := json.Unmarshal(body, &rawRows); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}

	captures := make([]models.Capture, 0)
	if len(rawRows) == 0 {
		return captures, nil
	}

	// Skip header row (index 0) - it contains field names
	for i := 1; i < len(rawRows); i++ {
		row := rawRows[i]

		// Skip empty rows
		if len(row) == 0 {
			continue
		}

		// Skip malformed rows (need at least 4 fields)
		if len(row) < 4 {
			continue
		}

		capture := models.Capture{
			Timestamp: row[0],
			URL:       row[1],
		}

		// Parse status code (may be empty or "-")
		if row[2] != "" && row[2] != "-" {
			if code, err := strconv.Atoi(row[2]); err == nil {
				capture.StatusCode = &code
			}
		}

		// Parse MIME type (may be empty or "-")
		if row[3] != "" && row[3] != "-" {
			mimeType := row[3]
			capture.MimeType = &mimeType
		}

		captures = append(captures, capture)
	}

	return captures, nil
}
