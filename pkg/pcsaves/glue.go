package pcsaves

import (
	"io"
	"net/http"
	"net/url"
)

// FumenURL builds the viewer link for a fumen code, matching
// make_fumen_url's "https://fumen.zui.jp/?<fumen>" form.
func FumenURL(fumen string) string {
	return "https://fumen.zui.jp/?" + fumen
}

// URLShortener turns a long URL into a short one, standing in for the
// tinyurl HTTP call original_source/lib/utils.py's make_tiny performs -
// spec.md's Non-goals assume this as an external collaborator.
type URLShortener interface {
	Shorten(longURL string) (string, error)
}

// TinyURLShortener calls the public tinyurl.com API, the same service the
// original shells out to.
type TinyURLShortener struct {
	Client *http.Client
}

func (t TinyURLShortener) Shorten(longURL string) (string, error) {
	client := t.Client
	if client == nil {
		client = http.DefaultClient
	}

	endpoint := "https://tinyurl.com/api-create.php?url=" + url.QueryEscape(longURL)
	resp, err := client.Get(endpoint)
	if err != nil {
		return "", genericConsistencyErrorf("tinyurl request failed: %v", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", genericConsistencyErrorf("reading tinyurl response: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", genericConsistencyErrorf("tinyurl returned status %d", resp.StatusCode)
	}
	return string(body), nil
}

// ShortenFumenURL builds a fumen viewer link and shortens it, falling back
// to a diagnostic string (never an error) when shortening fails - tinyurl
// rejects URLs past a length limit, and the original treats that as an
// expected, recoverable outcome rather than a hard failure.
func ShortenFumenURL(shortener URLShortener, fumen string) string {
	longURL := FumenURL(fumen)
	if shortener == nil {
		return longURL
	}
	short, err := shortener.Shorten(longURL)
	if err != nil {
		return "Tinyurl did not accept fumen due to url length"
	}
	return short
}
