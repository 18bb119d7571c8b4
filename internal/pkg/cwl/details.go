package cwl

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

var ErrForeignLink = errors.New("details link is not on the draw notice host")

// Details is the content of a draw's details page.
type Details struct {
	URL        string       `json:"url"`
	Title      string       `json:"title"`
	Tables     [][][]string `json:"tables"`
	Paragraphs []string     `json:"paragraphs"`
}

// ResolveLink resolves a details link (usually site-relative) against the
// API host and rejects links that leave it.
func (c *Client) ResolveLink(link string) (*url.URL, error) {
	base, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, err
	}

	ref, err := url.Parse(strings.TrimSpace(link))
	if err != nil {
		return nil, fmt.Errorf("invalid details link: %w", err)
	}

	u := base.ResolveReference(ref)
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host != base.Host {
		return nil, fmt.Errorf("%w: %s", ErrForeignLink, u.String())
	}
	return u, nil
}

// FetchDetails downloads and parses the details page behind link.
func (c *Client) FetchDetails(ctx context.Context, link string) (*Details, error) {
	u, err := c.ResolveLink(link)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w %d", ErrUnexpectedStatus, resp.StatusCode)
	}

	root, err := html.Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("html parse failed: %w", err)
	}

	details := ParseDetails(goquery.NewDocumentFromNode(root))
	details.URL = u.String()
	return details, nil
}

func ParseDetails(doc *goquery.Document) *Details {
	details := &Details{
		Title:      strings.TrimSpace(doc.Find("title").First().Text()),
		Tables:     [][][]string{},
		Paragraphs: []string{},
	}

	doc.Find("table").Each(func(_ int, table *goquery.Selection) {
		rows := [][]string{}
		table.Find("tr").Each(func(_ int, row *goquery.Selection) {
			cells := []string{}
			row.Children().Each(func(_ int, s *goquery.Selection) {
				tag := goquery.NodeName(s)
				if tag == "td" || tag == "th" {
					cells = append(cells, strings.TrimSpace(s.Text()))
				}
			})
			rows = append(rows, cells)
		})
		details.Tables = append(details.Tables, rows)
	})

	doc.Find("p").Each(func(_ int, p *goquery.Selection) {
		if trimmed := strings.TrimSpace(p.Text()); trimmed != "" {
			details.Paragraphs = append(details.Paragraphs, trimmed)
		}
	})

	return details
}
