package executor

import (
	"bytes"
	"errors"
	"fmt"
	"mime"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html/charset"

	"github.com/raysh454/apiprobe/internal/webclient"
)

var errEmptyBody = errors.New("response body is empty, expected JSON")

// decodePayload parses the response body as JSON. When that fails on an HTML
// page, the page title is added to the error so the user sees what came back.
func decodePayload(resp *webclient.Response) (any, error) {
	if len(bytes.TrimSpace(resp.Body)) == 0 {
		return nil, errEmptyBody
	}

	payload, err := parseJSON(resp.Body)
	if err == nil {
		return payload, nil
	}

	contentType := resp.Headers.Get("Content-Type")
	if summary := summarizeHTML(resp.Body, contentType); summary != "" {
		return nil, fmt.Errorf("invalid JSON in response body (got HTML page %q): %w", summary, err)
	}
	return nil, fmt.Errorf("invalid JSON in response body: %w", err)
}

// summarizeHTML returns the <title> or first heading of an HTML body, or ""
// when the body is not HTML.
func summarizeHTML(body []byte, contentType string) string {
	if !isHTML(body, contentType) {
		return ""
	}

	r, err := charset.NewReader(bytes.NewReader(body), contentType)
	if err != nil {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return ""
	}

	for _, sel := range []string{"title", "h1", "h2"} {
		if text := strings.Join(strings.Fields(doc.Find(sel).First().Text()), " "); text != "" {
			return text
		}
	}
	return ""
}

func isHTML(body []byte, contentType string) bool {
	if mediaType, _, err := mime.ParseMediaType(contentType); err == nil {
		if mediaType == "text/html" || mediaType == "application/xhtml+xml" {
			return true
		}
	}
	head := strings.ToLower(string(bytes.TrimSpace(body[:min(len(body), 512)])))
	return strings.HasPrefix(head, "<!doctype html") || strings.HasPrefix(head, "<html")
}
