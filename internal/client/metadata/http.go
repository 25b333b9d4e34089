package metadata

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/metastore/internal/auth"
	"github.com/dmitrijs2005/metastore/internal/common"
	"github.com/dmitrijs2005/metastore/internal/models"
)

const tokenValidity = 1 * time.Minute

// HTTPAccessor talks to the metadata server over HTTP/JSON. Every request
// carries a freshly minted short-lived bearer token signed with the shared
// secret.
type HTTPAccessor struct {
	baseURL string
	project string
	secret  []byte
	client  *http.Client
}

// NewHTTPAccessor creates an accessor for one project's metadata document.
// baseURL is the server root, e.g. "http://127.0.0.1:8080".
func NewHTTPAccessor(baseURL string, project string, secret []byte, timeout time.Duration) *HTTPAccessor {
	return &HTTPAccessor{
		baseURL: strings.TrimRight(baseURL, "/"),
		project: project,
		secret:  secret,
		client:  &http.Client{Timeout: timeout},
	}
}

func (a *HTTPAccessor) newRequest(ctx context.Context, method string, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, a.baseURL+path, body)
	if err != nil {
		return nil, err
	}

	token, err := auth.GenerateToken(a.project, a.secret, tokenValidity)
	if err != nil {
		return nil, fmt.Errorf("minting token: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return req, nil
}

func (a *HTTPAccessor) metadataPath() string {
	return "/v1/projects/" + url.PathEscape(a.project) + "/metadata"
}

// Fetch reads the current document and its fingerprint. A missing items
// field means an empty document.
func (a *HTTPAccessor) Fetch(ctx context.Context) (*models.Document, error) {
	req, err := a.newRequest(ctx, http.MethodGet, a.metadataPath(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, classifyResponse(resp)
	}

	var doc models.Document
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decoding metadata: %w", err)
	}
	return &doc, nil
}

// Commit submits the full document, presenting doc.Fingerprint as the
// expected current version.
func (a *HTTPAccessor) Commit(ctx context.Context, doc *models.Document) error {
	body, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encoding metadata: %w", err)
	}

	req, err := a.newRequest(ctx, http.MethodPut, a.metadataPath(), bytes.NewReader(body))
	if err != nil {
		return err
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return classifyResponse(resp)
	}
	return nil
}

// classifyResponse maps an error response onto the shared sentinels. The
// body message is checked in addition to the status code so the accessor
// still classifies correctly behind proxies that rewrite statuses.
func classifyResponse(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	msg := strings.TrimSpace(string(raw))

	switch {
	case resp.StatusCode == http.StatusPreconditionFailed,
		strings.Contains(msg, common.FingerprintMismatchMessage):
		return fmt.Errorf("%w: %s", common.ErrFingerprintMismatch, msg)
	case strings.Contains(msg, common.DuplicateKeyMessage):
		return fmt.Errorf("%w: %s", common.ErrDuplicateKey, msg)
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%w: %s", common.ErrNotFound, msg)
	case resp.StatusCode == http.StatusUnauthorized:
		return fmt.Errorf("%w: %s", common.ErrInvalidToken, msg)
	default:
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, msg)
	}
}

// Project is one entry of the project collection listing.
type Project struct {
	Name string `json:"name"`
}

// ProjectPage is a single page of the project listing.
type ProjectPage struct {
	Projects      []Project `json:"projects"`
	NextPageToken string    `json:"nextPageToken,omitempty"`
}

// ListProjects fetches one page of the project collection. maxResults <= 0
// leaves the page size to the server.
func (a *HTTPAccessor) ListProjects(ctx context.Context, pageToken string, maxResults int) (*ProjectPage, error) {
	q := url.Values{}
	if pageToken != "" {
		q.Set("pageToken", pageToken)
	}
	if maxResults > 0 {
		q.Set("maxResults", strconv.Itoa(maxResults))
	}
	path := "/v1/projects"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	req, err := a.newRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, classifyResponse(resp)
	}

	var page ProjectPage
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return nil, fmt.Errorf("decoding project list: %w", err)
	}
	return &page, nil
}

// EachProject walks the whole project collection page by page, calling fn
// for every entry. Iteration stops at the first error from fn.
func (a *HTTPAccessor) EachProject(ctx context.Context, pageSize int, fn func(Project) error) error {
	token := ""
	for {
		page, err := a.ListProjects(ctx, token, pageSize)
		if err != nil {
			return err
		}
		for _, p := range page.Projects {
			if err := fn(p); err != nil {
				return err
			}
		}
		if page.NextPageToken == "" {
			return nil
		}
		token = page.NextPageToken
	}
}
