package auth

import (
	"bytes"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/desertthunder/mlbv/internal/shared"
)

// Scraper extracts values the identity provider only exposes inside web assets.
type Scraper interface {
	// ClientID finds the production OAuth client id in the Okta JavaScript bundle.
	ClientID(script []byte) (string, error)
	// AuthorizationCode finds the code in an okta_post_message authorize response.
	AuthorizationCode(page []byte) (string, error)
}

var (
	clientIDPattern = regexp.MustCompile(`production:\{clientId:"([^"]+)",`)
	codePattern     = regexp.MustCompile(`data\.code\s*=\s*'((?:[^'\\]|\\.)+)'`)
)

// PatternScraper implements [Scraper] with fixed regular expressions.
type PatternScraper struct{}

var _ Scraper = PatternScraper{}

func (PatternScraper) ClientID(script []byte) (string, error) {
	m := clientIDPattern.FindSubmatch(script)
	if m == nil {
		return "", fmt.Errorf("%w in okta script", shared.ErrClientIDNotFound)
	}
	return string(m[1]), nil
}

// AuthorizationCode looks through the page's script elements first, then the raw body.
func (PatternScraper) AuthorizationCode(page []byte) (string, error) {
	var raw string

	if doc, err := goquery.NewDocumentFromReader(bytes.NewReader(page)); err == nil {
		doc.Find("script").EachWithBreak(func(_ int, s *goquery.Selection) bool {
			if m := codePattern.FindStringSubmatch(s.Text()); m != nil {
				raw = m[1]
				return false
			}
			return true
		})
	}

	if raw == "" {
		if m := codePattern.FindSubmatch(page); m != nil {
			raw = string(m[1])
		}
	}

	if raw == "" {
		return "", fmt.Errorf("%w in okta_post_message response", shared.ErrAuthorizationCodeNotFound)
	}

	code, err := unescapeJS(raw)
	if err != nil {
		return "", fmt.Errorf("%w: could not unescape code: %v", shared.ErrAuthorizationCodeNotFound, err)
	}
	return code, nil
}

// unescapeJS decodes the escapes allowed in a single-quoted JavaScript string, e.g. \x2D, \u002D and \/.
//
// Escapes Go shares with JavaScript are handed to [strconv.Unquote]. Any other escaped character stands for itself,
// except \0 which is NUL.
func unescapeJS(s string) (string, error) {
	if !strings.Contains(s, `\`) {
		return s, nil
	}

	var b strings.Builder
	b.WriteByte('"')
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '"':
			b.WriteString(`\"`)
		case c != '\\':
			b.WriteByte(c)
		case i+1 == len(s):
			return "", fmt.Errorf("trailing backslash in %q", s)
		default:
			i++
			switch e := s[i]; e {
			case 'b', 'f', 'n', 'r', 't', 'v', 'x', 'u', '\\':
				b.WriteByte('\\')
				b.WriteByte(e)
			case '0':
				b.WriteString(`\x00`)
			case '"':
				b.WriteString(`\"`)
			default:
				b.WriteByte(e)
			}
		}
	}
	b.WriteByte('"')
	return strconv.Unquote(b.String())
}
