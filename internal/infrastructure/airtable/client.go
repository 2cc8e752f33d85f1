package airtable

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/goccy/go-json"
)

// Record is one raw Airtable row: an opaque id plus a loosely-typed field map.
// Field values arrive as string, float64, []interface{} (linked records) or
// are absent entirely.
type Record struct {
	ID          string                 `json:"id"`
	CreatedTime string                 `json:"createdTime"`
	Fields      map[string]interface{} `json:"fields"`
}

type recordList struct {
	Records []Record `json:"records"`
}

// Client is a thin REST client for one Airtable base.
type Client struct {
	http   *resty.Client
	baseID string
}

// NewClient configures a resty client with bearer auth and a global timeout.
func NewClient(baseURL, baseID, token string, timeout time.Duration) *Client {
	c := resty.New().
		SetBaseURL(baseURL).
		SetAuthToken(token).
		SetTimeout(timeout).
		SetHeader("User-Agent", "azm-catalog-backend/1.0")

	return &Client{http: c, baseID: baseID}
}

// Record fetches a single row by table and record id. Any non-2xx response,
// including 404, is returned as an error; callers decide whether that is a
// negative probe or a real failure.
func (c *Client) Record(ctx context.Context, table, recordID string) (*Record, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		Get(fmt.Sprintf("/%s/%s/%s", c.baseID, url.PathEscape(table), url.PathEscape(recordID)))
	if err != nil {
		return nil, fmt.Errorf("airtable: get %s/%s: %w", table, recordID, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("airtable: get %s/%s: status %d", table, recordID, resp.StatusCode())
	}

	var rec Record
	if err := json.Unmarshal(resp.Body(), &rec); err != nil {
		return nil, fmt.Errorf("airtable: decode %s/%s: %w", table, recordID, err)
	}
	return &rec, nil
}

// Select lists rows of a table matching an Airtable formula.
func (c *Client) Select(ctx context.Context, table, formula string, maxRecords int) ([]Record, error) {
	req := c.http.R().
		SetContext(ctx).
		SetQueryParam("filterByFormula", formula)
	if maxRecords > 0 {
		req.SetQueryParam("maxRecords", strconv.Itoa(maxRecords))
	}

	resp, err := req.Get(fmt.Sprintf("/%s/%s", c.baseID, url.PathEscape(table)))
	if err != nil {
		return nil, fmt.Errorf("airtable: select %s: %w", table, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("airtable: select %s: status %d", table, resp.StatusCode())
	}

	var list recordList
	if err := json.Unmarshal(resp.Body(), &list); err != nil {
		return nil, fmt.Errorf("airtable: decode select %s: %w", table, err)
	}
	return list.Records, nil
}

// CodeFormula builds a filterByFormula expression matching one family code.
// Single quotes in the code are doubled per Airtable's escaping rules.
func CodeFormula(code string) string {
	return fmt.Sprintf("{code} = '%s'", strings.ReplaceAll(code, "'", "''"))
}
