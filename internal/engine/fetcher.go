package engine

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/lakisicaslt/lakisicaslt/internal/config"
)

// ContributionFetcher defines the contract for retrieving a contribution
// calendar. This interface allows for mocking in tests and decoupling from
// the network layer.
type ContributionFetcher interface {
	FetchCalendar(ctx context.Context, username, token string) (Calendar, error)
}

// GitHubFetcher implements ContributionFetcher against the GitHub GraphQL
// API using the standard net/http library.
type GitHubFetcher struct {
	Client *http.Client

	// Endpoint defaults to the public GitHub GraphQL endpoint; tests point
	// it at a local server.
	Endpoint string
}

// NewGitHubFetcher creates a new instance of GitHubFetcher with configured
// timeouts.
func NewGitHubFetcher() *GitHubFetcher {
	return &GitHubFetcher{
		Client: &http.Client{
			Timeout: config.HTTPTimeout,
		},
		Endpoint: config.GraphQLEndpoint,
	}
}

// FetchCalendar retrieves one year of contribution data for the given login.
// A non-success HTTP status or a GraphQL-level error list is a fetch failure;
// structurally incomplete day records are tolerated during mapping instead.
func (f *GitHubFetcher) FetchCalendar(ctx context.Context, username, token string) (Calendar, error) {
	u, err := url.Parse(f.Endpoint)
	if err != nil {
		return Calendar{}, fmt.Errorf("%s: %w", config.ErrInvalidURL, err)
	}
	if u.Scheme != config.SchemeHTTP && u.Scheme != config.SchemeHTTPS {
		return Calendar{}, fmt.Errorf("%s: %s", config.ErrProtocol, u.Scheme)
	}

	log := slog.With(
		slog.String(config.LogKeyComponent, config.CompFetcher),
		slog.String(config.LogKeyURL, u.Scheme+"://"+u.Host+u.Path),
		slog.String(config.LogKeyUser, username),
	)
	log.Debug(config.MsgFetchStart)

	payload, err := json.Marshal(graphQLRequest{
		Query:     config.GraphQLQuery,
		Variables: map[string]string{"login": username},
	})
	if err != nil {
		return Calendar{}, fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, f.Endpoint, bytes.NewReader(payload))
	if err != nil {
		return Calendar{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set(config.HeaderContentType, config.MimeJSON)
	req.Header.Set(config.HeaderUserAgent, config.UserAgent)
	req.Header.Set(config.HeaderAuthorization, config.AuthSchemeBearer+" "+token)

	resp, err := f.Client.Do(req)
	if err != nil {
		return Calendar{}, fmt.Errorf("network error during fetch: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		log.Warn(config.ErrFetchStatus,
			slog.Int(config.LogKeyStatus, resp.StatusCode),
		)
		return Calendar{}, fmt.Errorf("%s: %d %s", config.ErrFetchStatus, resp.StatusCode, resp.Status)
	}

	var out graphQLResponse
	limited := io.LimitReader(resp.Body, config.MaxHTTPResponseSize)
	if err := json.NewDecoder(limited).Decode(&out); err != nil {
		return Calendar{}, fmt.Errorf("%s: %w", config.ErrFetchDecode, err)
	}

	if len(out.Errors) > 0 {
		msgs := make([]string, 0, len(out.Errors))
		for _, e := range out.Errors {
			msgs = append(msgs, e.Message)
		}
		return Calendar{}, fmt.Errorf("%s: %s", config.ErrFetchGraphQL, strings.Join(msgs, "; "))
	}
	if out.Data.User == nil {
		return Calendar{}, errors.New(config.ErrUserNotFound)
	}

	cal := mapCalendar(&out)
	log.Info(config.MsgFetchDone,
		slog.Int(config.LogKeyWeeks, len(cal.Weeks)),
		slog.Int("total_contributions", cal.Total),
	)
	return cal, nil
}
