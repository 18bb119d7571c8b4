package cwl

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"lottodesk/internal/logger"

	"go.uber.org/zap"
)

const (
	DefaultBaseURL = "http://www.cwl.gov.cn/cwl_admin/front/cwlkj/search/kjxx/findDrawNotice"
	DefaultTimeout = 10 * time.Second

	// MaxPageSize is the largest page the endpoint serves.
	MaxPageSize = 100

	gameName   = "ssq" // 双色球
	systemType = "PC"
	userAgent  = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"
)

var ErrUnexpectedStatus = errors.New("unexpected http status")

// APIError is a response whose state field reports a failure, or a success
// without any results.
type APIError struct {
	State   *int
	Message string
}

func (e *APIError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = "unknown error"
	}
	if e.State == nil {
		return fmt.Sprintf("cwl api error (no state): %s", msg)
	}
	return fmt.Sprintf("cwl api error %d: %s", *e.State, msg)
}

type Client struct {
	baseURL string
	client  *http.Client
	logger  *zap.Logger
}

type Option func(*Client)

func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.client = hc }
}

func WithLogger(l *zap.Logger) Option {
	return func(c *Client) { c.logger = l }
}

func New(opts ...Option) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		client: &http.Client{
			Timeout: DefaultTimeout,
		},
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.logger == nil {
		l, err := logger.New("info", "console")
		if err != nil {
			l = zap.NewNop()
		}
		c.logger = l
	}
	return c
}

// PageQuery filters one page of draw notices. Empty strings disable a filter.
type PageQuery struct {
	PageNo     int
	PageSize   int    // not clamped; the API caps it at MaxPageSize
	IssueStart string // e.g. 2024001
	IssueEnd   string
	DayStart   string // YYYY-MM-DD
	DayEnd     string
}

type drawNoticeResponse struct {
	State   *int      `json:"state"`
	Message string    `json:"message"`
	Result  []RawDraw `json:"result"`
}

func (c *Client) getDrawNotice(ctx context.Context, pq PageQuery) ([]RawDraw, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, err
	}

	q := u.Query()
	q.Set("name", gameName)
	q.Set("issueCount", "")
	q.Set("issueStart", pq.IssueStart)
	q.Set("issueEnd", pq.IssueEnd)
	q.Set("dayStart", pq.DayStart)
	q.Set("dayEnd", pq.DayEnd)
	q.Set("pageNo", strconv.Itoa(pq.PageNo))
	q.Set("pageSize", strconv.Itoa(pq.PageSize))
	q.Set("week", "")
	q.Set("systemType", systemType)
	u.RawQuery = q.Encode()

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

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("%w %d: %s", ErrUnexpectedStatus, resp.StatusCode, string(b))
	}

	var out drawNoticeResponse
	dec := json.NewDecoder(resp.Body)
	dec.UseNumber()
	if err := dec.Decode(&out); err != nil {
		return nil, fmt.Errorf("json decode failed: %w", err)
	}

	if out.State == nil || *out.State != 0 || len(out.Result) == 0 {
		return nil, &APIError{State: out.State, Message: out.Message}
	}

	return out.Result, nil
}

// FetchPage requests one page and returns its raw records. Any failure is
// logged and yields an empty slice.
func (c *Client) FetchPage(ctx context.Context, pq PageQuery) []RawDraw {
	raws, err := c.getDrawNotice(ctx, pq)
	if err != nil {
		c.logger.Warn("failed to fetch draw notices",
			zap.Int("page_no", pq.PageNo),
			zap.Int("page_size", pq.PageSize),
			zap.Error(err),
		)
		return []RawDraw{}
	}
	return raws
}

// FetchRecent pages from the newest draw until count draws are collected or
// the API runs out. Only count bounds the loop when every page is full.
func (c *Client) FetchRecent(ctx context.Context, count int) []Draw {
	draws := []Draw{}
	if count <= 0 {
		return draws
	}

	pageSize := min(count, MaxPageSize)
	for pageNo := 1; len(draws) < count; pageNo++ {
		raws := c.FetchPage(ctx, PageQuery{PageNo: pageNo, PageSize: pageSize})
		if len(raws) == 0 {
			break
		}

		for _, raw := range raws {
			if len(draws) >= count {
				break
			}
			draws = append(draws, Normalize(raw))
		}

		// a short page is the last one
		if len(raws) < pageSize {
			break
		}
	}

	c.logger.Debug("fetched recent draws", zap.Int("requested", count), zap.Int("fetched", len(draws)))
	return draws
}

// FetchRange returns the draws between two dates (YYYY-MM-DD), one full page.
func (c *Client) FetchRange(ctx context.Context, dayStart, dayEnd string) []Draw {
	raws := c.FetchPage(ctx, PageQuery{
		PageNo:   1,
		PageSize: MaxPageSize,
		DayStart: dayStart,
		DayEnd:   dayEnd,
	})
	return NormalizeAll(raws)
}
