// Package ingest acquires job posting text from local files or URLs.
package ingest

import (
	"context"
	"fmt"
	"os"
	"regexp"
	"strings"
)

// FetchError represents an error acquiring a job posting.
type FetchError struct {
	Source  string
	Message string
	Cause   error
}

func (e *FetchError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("ingest error for %s: %s: %v", e.Source, e.Message, e.Cause)
	}
	return fmt.Sprintf("ingest error for %s: %s", e.Source, e.Message)
}

func (e *FetchError) Unwrap() error {
	return e.Cause
}

// Posting is an acquired job posting, cleaned and ready for signal extraction.
type Posting struct {
	Source string `json:"source"` // file path or URL
	Text   string `json:"text"`
	Bytes  int    `json:"bytes"` // size of the raw content before cleaning
}

// FromFile reads a job posting from a local text file.
func FromFile(path string) (*Posting, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, &FetchError{Source: path, Message: "failed to read file", Cause: err}
	}

	text := CleanText(string(content))
	if text == "" {
		return nil, &FetchError{Source: path, Message: "file contains no text"}
	}

	return &Posting{Source: path, Text: text, Bytes: len(content)}, nil
}

// FromURL fetches a job posting from a URL. Plain HTTP is tried first; when
// the extracted text is too short to be a real posting (a JavaScript-rendered
// page) and useBrowser is set, the page is re-rendered in a headless browser.
func FromURL(ctx context.Context, url string, useBrowser bool) (*Posting, error) {
	html, err := fetchHTML(ctx, url)
	if err != nil {
		return nil, err
	}

	text, err := extractPostingText(html)
	if err != nil {
		return nil, &FetchError{Source: url, Message: "failed to extract text", Cause: err}
	}

	if tooShortForPosting(text) && useBrowser {
		html, err = renderWithBrowser(ctx, url)
		if err != nil {
			return nil, &FetchError{Source: url, Message: "browser rendering failed", Cause: err}
		}
		text, err = extractPostingText(html)
		if err != nil {
			return nil, &FetchError{Source: url, Message: "failed to extract text from rendered page", Cause: err}
		}
	}

	text = CleanText(text)
	if text == "" {
		return nil, &FetchError{Source: url, Message: "page contains no extractable text"}
	}

	return &Posting{Source: url, Text: text, Bytes: len(html)}, nil
}

var multiSpace = regexp.MustCompile(`[ \t]+`)
var excessBlankLines = regexp.MustCompile(`\n\n\n+`)

// CleanText normalizes line endings and whitespace while preserving the
// posting's line structure, which the extraction prompt relies on.
func CleanText(content string) string {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")

	lines := strings.Split(content, "\n")
	cleaned := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		line = multiSpace.ReplaceAllString(line, " ")
		cleaned = append(cleaned, line)
	}

	result := strings.Join(cleaned, "\n")
	result = excessBlankLines.ReplaceAllString(result, "\n\n")
	return strings.TrimSpace(result)
}
