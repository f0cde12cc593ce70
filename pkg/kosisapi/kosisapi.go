package kosisapi

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultEndpoint is the KOSIS parameter-based statistics data endpoint
const DefaultEndpoint = "https://kosis.kr/openapi/Param/statisticsParameterData.do"

// PlaceholderAPIKey is sent when no key is configured. KOSIS answers it with an error object.
const PlaceholderAPIKey = "인증키없음"

const userAgent = "kosis-cpi/1.0"

// Params is the query string of a statisticsParameterData.do request.
// The yaml tags let a config file override single parameters.
type Params struct {
	Method       string `yaml:"method,omitempty"`
	APIKey       string `yaml:"apiKey,omitempty"`
	ItmID        string `yaml:"itmId,omitempty"`
	ObjL1        string `yaml:"objL1,omitempty"`
	Format       string `yaml:"format,omitempty"`
	JSONVD       string `yaml:"jsonVD,omitempty"`
	PrdSe        string `yaml:"prdSe,omitempty"`
	NewEstPrdCnt string `yaml:"newEstPrdCnt,omitempty"`
	OrgID        string `yaml:"orgId,omitempty"`
	TblID        string `yaml:"tblId,omitempty"`
}

// DefaultParams returns the consumer price index query: total item, every region,
// monthly periods, latest three periods of table DT_1J22003.
func DefaultParams() Params {
	return Params{
		Method:       "getList",
		APIKey:       PlaceholderAPIKey,
		ItmID:        "T+",
		ObjL1:        "T10+",
		Format:       "json",
		JSONVD:       "Y",
		PrdSe:        "M",
		NewEstPrdCnt: "3",
		OrgID:        "101",
		TblID:        "DT_1J22003",
	}
}

// Values converts the params to the KOSIS query parameter names
func (p Params) Values() url.Values {
	v := url.Values{}
	v.Set("method", p.Method)
	v.Set("apiKey", p.APIKey)
	v.Set("itmId", p.ItmID)
	v.Set("objL1", p.ObjL1)
	v.Set("format", p.Format)
	v.Set("jsonVD", p.JSONVD)
	v.Set("prdSe", p.PrdSe)
	v.Set("newEstPrdCnt", p.NewEstPrdCnt)
	v.Set("orgId", p.OrgID)
	v.Set("tblId", p.TblID)
	return v
}

// Redacted returns a copy with the API key masked, for logs and previews
func (p Params) Redacted() Params {
	p.APIKey = MaskKey(p.APIKey)
	return p
}

// MaskKey hides all but the last four characters of a key
func MaskKey(key string) string {
	r := []rune(key)
	if len(r) <= 4 {
		return strings.Repeat("*", len(r))
	}
	return strings.Repeat("*", len(r)-4) + string(r[len(r)-4:])
}

// Client issues requests against one KOSIS endpoint
type Client struct {
	Endpoint   string
	HTTPClient *http.Client
}

// NewClient creates a client. A zero timeout means the request may block
// until the server answers or the context is cancelled.
func NewClient(endpoint string, timeout time.Duration) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	return &Client{
		Endpoint:   endpoint,
		HTTPClient: &http.Client{Timeout: timeout},
	}
}

// RequestURL builds the full GET URL for params
func (c *Client) RequestURL(p Params) (string, error) {
	u, err := url.Parse(c.Endpoint)
	if err != nil {
		return "", fmt.Errorf("invalid endpoint %q: %w", c.Endpoint, err)
	}
	u.RawQuery = p.Values().Encode()
	return u.String(), nil
}

// Fetch performs the GET and returns the raw response body
func (c *Client) Fetch(ctx context.Context, p Params) ([]byte, error) {
	targetURL, err := c.RequestURL(p)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, targetURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		// url.Error repeats the URL, which carries the API key
		return nil, fmt.Errorf("failed to GET %s: %w", c.Endpoint, unwrapURLError(err))
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: excerpt(data)}
	}
	return data, nil
}

func unwrapURLError(err error) error {
	var ue *url.Error
	if errors.As(err, &ue) {
		return ue.Err
	}
	return err
}

func excerpt(b []byte) string {
	const maxLen = 200
	r := []rune(strings.TrimSpace(string(b)))
	if len(r) > maxLen {
		return string(r[:maxLen]) + "..."
	}
	return string(r)
}
