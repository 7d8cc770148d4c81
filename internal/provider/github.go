package provider

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"
	"unicode/utf8"

	"github.com/shurcooL/githubv4"
	"github.com/sony/gobreaker"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/time/rate"

	"github.com/agenthands/ghrank/internal/core/model"
	"github.com/agenthands/ghrank/internal/metrics"
)

const (
	DefaultEndpoint  = "https://api.github.com/graphql"
	DefaultAvatarURL = "https://avatars.githubusercontent.com/u/583231?v=4"
	DefaultTimeout   = 30 * time.Second

	maxErrorBody = 200
)

type GitHubProvider struct {
	Endpoint string
	Token    string
	Client   *http.Client              // base transport and timeout; auth and guards are layered on top
	Limiter  *rate.Limiter             // optional
	Breaker  *gobreaker.CircuitBreaker // optional
	Logger   *zap.Logger

	gql *githubv4.Client
}

type Option func(*GitHubProvider)

func WithEndpoint(endpoint string) Option {
	return func(p *GitHubProvider) {
		if endpoint != "" {
			p.Endpoint = endpoint
		}
	}
}

func WithHTTPClient(c *http.Client) Option {
	return func(p *GitHubProvider) { p.Client = c }
}

// WithRateLimit paces requests to rps per second. Zero or less disables pacing.
func WithRateLimit(rps float64) Option {
	return func(p *GitHubProvider) {
		if rps > 0 {
			p.Limiter = rate.NewLimiter(rate.Limit(rps), 1)
		}
	}
}

// WithCircuitBreaker stops calling GitHub after failures consecutive transport
// or HTTP status failures, until timeout has passed. Zero failures disables it.
func WithCircuitBreaker(failures uint32, timeout time.Duration) Option {
	return func(p *GitHubProvider) {
		if failures == 0 {
			return
		}
		p.Breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:    "github",
			Timeout: timeout,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= failures
			},
			OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
				p.Logger.Warn("circuit breaker state changed",
					zap.String("name", name),
					zap.String("from", from.String()),
					zap.String("to", to.String()),
				)
			},
		})
	}
}

func WithLogger(l *zap.Logger) Option {
	return func(p *GitHubProvider) {
		if l != nil {
			p.Logger = l
		}
	}
}

func NewGitHubProvider(token string, opts ...Option) *GitHubProvider {
	p := &GitHubProvider{
		Endpoint: DefaultEndpoint,
		Token:    token,
		Client:   &http.Client{Timeout: DefaultTimeout},
		Logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.gql = githubv4.NewEnterpriseClient(p.Endpoint, p.authClient())
	return p
}

// authClient stacks bearer auth over the guard transport over the base transport.
func (p *GitHubProvider) authClient() *http.Client {
	base := p.Client.Transport
	if base == nil {
		base = http.DefaultTransport
	}
	return &http.Client{
		Timeout: p.Client.Timeout,
		Transport: &oauth2.Transport{
			Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: p.Token}),
			Base:   &guardTransport{base: base, breaker: p.Breaker},
		},
	}
}

type loginNodes struct {
	Nodes []struct {
		Login githubv4.String `graphql:"login"`
	} `graphql:"nodes"`
}

// userQuery holds the whole fetch. Repositories are only requested with $withRepos.
type userQuery struct {
	User struct {
		Login        githubv4.String `graphql:"login"`
		AvatarURL    githubv4.String `graphql:"avatarUrl"`
		Followers    loginNodes      `graphql:"followers(first: $limit)"`
		Following    loginNodes      `graphql:"following(first: $limit)"`
		Repositories struct {
			Nodes []struct {
				Description githubv4.String `graphql:"description"`
			} `graphql:"nodes"`
		} `graphql:"repositories(first: $limit, ownerAffiliations: OWNER, orderBy: {field: STARGAZERS, direction: DESC}) @include(if: $withRepos)"`
	} `graphql:"user(login: $login)"`
}

func (p *GitHubProvider) Fetch(ctx context.Context, login string, limit int, withDescriptions bool) (model.NodeSnapshot, error) {
	done := metrics.TimeOp("github_fetch")
	success := false
	defer func() { done(success) }()

	if p.Limiter != nil {
		if err := p.Limiter.Wait(ctx); err != nil {
			return model.NodeSnapshot{}, &model.FetchError{Login: login, Message: err.Error(), Err: err}
		}
	}

	var q userQuery
	vars := map[string]interface{}{
		"login":     githubv4.String(login),
		"limit":     githubv4.Int(limit),
		"withRepos": githubv4.Boolean(withDescriptions),
	}
	if err := p.gql.Query(ctx, &q, vars); err != nil {
		return model.NodeSnapshot{}, fetchError(login, err)
	}
	// a null user decodes to the zero value
	if q.User.Login == "" {
		return model.NodeSnapshot{}, &model.FetchError{Login: login, Message: "user could not be resolved"}
	}

	snap := toSnapshot(login, &q)
	p.Logger.Debug("fetched user",
		zap.String("login", login),
		zap.Int("followers", len(snap.Followers)),
		zap.Int("following", len(snap.Following)),
		zap.Int("descriptions", len(snap.Descriptions)),
	)
	success = true
	return snap, nil
}

func fetchError(login string, err error) *model.FetchError {
	var se *statusError
	switch {
	case errors.As(err, &se):
		return &model.FetchError{
			Login:   login,
			Message: fmt.Sprintf("unexpected status %d: %s", se.Code, truncate(se.Body, maxErrorBody)),
			Err:     err,
		}
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		return &model.FetchError{Login: login, Message: "GitHub is unavailable: " + err.Error(), Err: err}
	default:
		// transport failures, undecodable bodies and the first GraphQL error message
		return &model.FetchError{Login: login, Message: err.Error(), Err: err}
	}
}

func toSnapshot(login string, q *userQuery) model.NodeSnapshot {
	u := q.User
	snap := model.NodeSnapshot{
		Login:     login,
		AvatarURL: DefaultAvatarURL,
		Followers: make([]string, 0, len(u.Followers.Nodes)),
		Following: make([]string, 0, len(u.Following.Nodes)),
	}
	if u.AvatarURL != "" {
		snap.AvatarURL = string(u.AvatarURL)
	}
	for _, n := range u.Followers.Nodes {
		snap.Followers = append(snap.Followers, string(n.Login))
	}
	for _, n := range u.Following.Nodes {
		snap.Following = append(snap.Following, string(n.Login))
	}
	for _, r := range u.Repositories.Nodes {
		if r.Description != "" {
			snap.Descriptions = append(snap.Descriptions, string(r.Description))
		}
	}
	return snap
}

// truncate cuts s to at most n bytes without splitting a rune.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n] + "..."
}
