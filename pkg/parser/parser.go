package parser

import (
	"bufio"
	"bytes"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-shiori/go-readability"
)

// blockSelector lists the content-bearing tags whose text is kept.
const blockSelector = "h1,h2,h3,h4,h5,h6,p,li,td,th,pre,blockquote"

// nestedSelector matches anything inside a block.
var nestedSelector = func() string {
	tags := strings.Split(blockSelector, ",")
	for i := range tags {
		tags[i] += " *"
	}
	return strings.Join(tags, ",")
}()

type Parser struct{}

// PlainText uses go-readability to find the main content of an HTML document
// and returns its visible text, one block per line. When readability finds
// nothing, the whole body is used with scripts and styles removed.
func (p *Parser) PlainText(rawURL string, html []byte) (string, error) {
	pageURL, err := url.Parse(rawURL)
	if err != nil {
		pageURL = &url.URL{}
	}

	readabilityParser := readability.NewParser()
	article, err := readabilityParser.Parse(bytes.NewReader(html), pageURL)
	if err == nil && strings.TrimSpace(article.Content) != "" {
		text, err := blocksText(article.Content)
		if err != nil {
			return "", err
		}
		if text != "" {
			title := normalizeText(article.Title)
			if title != "" {
				return title + "\n" + text, nil
			}
			return text, nil
		}
	}

	return bodyText(html)
}

// blocksText concatenates the text of every content block in html.
func blocksText(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	var lines []string
	// Nested blocks (a <p> inside an <li>) are reached through their parent.
	doc.Find(blockSelector).Not(nestedSelector).Each(func(i int, s *goquery.Selection) {
		if text := normalizeText(s.Text()); text != "" {
			lines = append(lines, text)
		}
	})
	if len(lines) == 0 {
		return normalizeText(doc.Text()), nil
	}
	return strings.Join(lines, "\n"), nil
}

// bodyText returns the text of the whole document without script and style.
func bodyText(html []byte) (string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}
	doc.Find("script,style,noscript,template").Remove()
	return normalizeText(doc.Find("body").Text()), nil
}

// normalizeText cleans up a string by trimming space and removing excess newlines.
func normalizeText(input string) string {
	var b strings.Builder
	b.Grow(len(input))
	scanner := bufio.NewScanner(strings.NewReader(input))
	scanner.Buffer(make([]byte, 0, 64*1024), len(input)+1)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			b.WriteString(line)
			b.WriteString(" ")
		}
	}
	return strings.TrimSpace(b.String())
}
