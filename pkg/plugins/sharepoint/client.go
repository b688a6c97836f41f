// Package sharepoint queries SharePoint style REST document libraries.
package sharepoint

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"path"
	"strings"

	"github.com/byxorna/doclib/pkg/db"
	v1 "github.com/byxorna/doclib/pkg/types/v1"
	"github.com/google/uuid"
)

var (
	// Version is reported in the User-Agent header
	Version = "dev"

	// acceptHeader asks for the lean JSON envelope {"value": [...]}
	acceptHeader = "application/json;odata=nometadata"

	// maxErrorBody bounds how much of an error response we read
	maxErrorBody int64 = 4 << 10

	ErrRelativeSite = fmt.Errorf("site must be an absolute http(s) URL")
)

// Client is the remote query adapter over one site.
type Client struct {
	http    *http.Client
	siteURL *url.URL

	// requestID generates the client-request-id of each request
	requestID func() string
}

// Library is a document library of the site.
type Library struct {
	Title                string `json:"Title"`
	ItemCount            int    `json:"ItemCount"`
	LastItemModifiedDate string `json:"LastItemModifiedDate"`
}

// New returns a client for site using httpClient, which is expected to carry
// whatever authorization the site needs.
func New(site string, httpClient *http.Client) (*Client, error) {
	u, err := url.Parse(strings.TrimSpace(site))
	if err != nil {
		return nil, fmt.Errorf("unable to parse site %q: %w", site, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("%q: %w", site, ErrRelativeSite)
	}
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	u.RawQuery = ""
	u.Fragment = ""

	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &Client{
		http:      httpClient,
		siteURL:   u,
		requestID: uuid.NewString,
	}, nil
}

// SiteURL is the absolute URL of the site, with a trailing slash.
func (c *Client) SiteURL() string { return c.siteURL.String() }

// ItemsURL is the full metadata query URL for collection.
func (c *Client) ItemsURL(collection v1.CollectionTarget) string {
	return c.endpoint(ItemsPath(collection), ItemsQuery())
}

func (c *Client) endpoint(apiPath string, q url.Values) string {
	u := *c.siteURL
	u.Path = path.Join(c.siteURL.Path, apiPath)
	u.RawPath = ""
	return u.String() + "?" + encodeQuery(q)
}

// FetchDocuments issues the metadata query for collection. Exactly one
// request is made; non-success statuses and transport failures come back as
// *db.NetworkError.
func (c *Client) FetchDocuments(ctx context.Context, collection v1.CollectionTarget) ([]v1.RawRecord, error) {
	body, err := c.get(ctx, c.ItemsURL(collection))
	if err != nil {
		return nil, err
	}
	defer body.Close()
	return db.DecodeRecords(body)
}

// Libraries lists the document libraries of the site.
func (c *Client) Libraries(ctx context.Context) ([]Library, error) {
	body, err := c.get(ctx, c.endpoint(LibrariesPath(), LibrariesQuery()))
	if err != nil {
		return nil, err
	}
	defer body.Close()

	var env struct {
		Value []Library `json:"value"`
	}
	if err := json.NewDecoder(body).Decode(&env); err != nil && err != io.EOF {
		return nil, &db.NetworkError{Err: fmt.Errorf("unable to decode response: %w", err)}
	}
	if env.Value == nil {
		return []Library{}, nil
	}
	return env.Value, nil
}

func (c *Client) get(ctx context.Context, endpoint string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, &db.NetworkError{Err: err}
	}
	reqID := c.requestID()
	req.Header.Set("Accept", acceptHeader)
	req.Header.Set("client-request-id", reqID)
	req.Header.Set("User-Agent", "doclib/"+Version)

	log.Printf("GET %s (client-request-id %s)", endpoint, reqID)
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &db.NetworkError{Err: err}
	}
	log.Printf("GET %s: %s", endpoint, resp.Status)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		defer resp.Body.Close()
		b, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		ne := db.NewStatusError(resp.StatusCode, errorDetail(b))
		if reason := reasonPhrase(resp.Status); reason != "" {
			ne.StatusText = reason
		}
		return nil, ne
	}
	return resp.Body, nil
}

// reasonPhrase strips the code from a "403 Forbidden" style status line.
func reasonPhrase(status string) string {
	if i := strings.IndexByte(status, ' '); i >= 0 {
		return strings.TrimSpace(status[i+1:])
	}
	return ""
}

// errorDetail extracts the message of an OData error body, in either the
// nometadata or the verbose shape.
func errorDetail(b []byte) string {
	var body struct {
		ODataError *struct {
			Message struct {
				Value string `json:"value"`
			} `json:"message"`
		} `json:"odata.error"`
		Error *struct {
			Message struct {
				Value string `json:"value"`
			} `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(b, &body); err != nil {
		return ""
	}
	switch {
	case body.ODataError != nil:
		return body.ODataError.Message.Value
	case body.Error != nil:
		return body.Error.Message.Value
	}
	return ""
}

// ResolveURL turns a server-relative path such as a FileRef into an absolute
// URL on the site origin. Absolute http(s) URLs are returned unchanged.
func (c *Client) ResolveURL(ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", fmt.Errorf("document has no path")
	}
	u, err := url.Parse(ref)
	if err != nil {
		return "", fmt.Errorf("invalid document path %q: %w", ref, err)
	}
	if u.IsAbs() {
		if u.Scheme != "http" && u.Scheme != "https" {
			return "", fmt.Errorf("unsupported URL scheme: %s", u.Scheme)
		}
		return u.String(), nil
	}
	if !strings.HasPrefix(u.Path, "/") {
		// relative to the site rather than the origin
		u.Path = path.Join(c.siteURL.Path, u.Path)
	}
	resolved := url.URL{Scheme: c.siteURL.Scheme, Host: c.siteURL.Host, Path: u.Path}
	return resolved.String(), nil
}
