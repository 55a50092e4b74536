package service

import (
	"bytes"
	"context"
	"io"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/goccy/go-json"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/tidwall/gjson"
	"gopkg.in/guregu/null.v3"

	"exusiai.dev/todoist-readme/internal/app/appconfig"
	"exusiai.dev/todoist-readme/internal/model"
	"exusiai.dev/todoist-readme/internal/pkg/bininfo"
	"exusiai.dev/todoist-readme/internal/pkg/observability"
	"exusiai.dev/todoist-readme/internal/pkg/runerr"
)

// Fetch failure kinds, stored under the "kind" extra of a REMOTE_FETCH_FAILURE.
const (
	FetchFailureAuth        = "auth"
	FetchFailureForbidden   = "forbidden"
	FetchFailureNotFound    = "not-found"
	FetchFailureRateLimited = "rate-limited"
	FetchFailureServer      = "server"
	FetchFailureTimeout     = "timeout"
	FetchFailureNetwork     = "network"
	FetchFailureOther       = "other"
)

// maxResponseSize bounds the sync response; a full sync of a large account is
// a few megabytes.
const maxResponseSize = 32 << 20

// StatsProvider supplies the stats payload of a run.
type StatsProvider interface {
	FetchStats(ctx context.Context) (*model.StatsPayload, error)
}

type Todoist struct {
	client   *http.Client
	endpoint string
	token    string

	attempts uint
	delay    time.Duration
	maxDelay time.Duration
}

func NewTodoist(conf *appconfig.Config, client *http.Client) (*Todoist, error) {
	if conf.TodoistAPIKey == "" {
		return nil, runerr.ErrInvalidConfig.Msg("TODOIST_API_KEY is required to fetch stats")
	}
	return &Todoist{
		client:   client,
		endpoint: conf.TodoistEndpoint,
		token:    conf.TodoistAPIKey,
		attempts: conf.RetryAttempts,
		delay:    conf.RetryDelay,
		maxDelay: conf.RetryMaxDelay,
	}, nil
}

type syncRequest struct {
	SyncToken     string `json:"sync_token"`
	ResourceTypes string `json:"resource_types"`
}

// statusError is a non-2xx response of the Todoist API.
type statusError struct {
	StatusCode int
	Message    string
	RetryAfter time.Duration
}

func (e *statusError) Error() string {
	return "todoist responded with " + strconv.Itoa(e.StatusCode) + ": " + e.Message
}

func (s *Todoist) FetchStats(ctx context.Context) (*model.StatsPayload, error) {
	start := time.Now()

	var body []byte
	err := retry.Do(
		func() error {
			b, err := s.sync(ctx)
			if err != nil {
				observability.FetchAttempts.WithLabelValues("error").Inc()
				return err
			}
			observability.FetchAttempts.WithLabelValues("ok").Inc()
			body = b
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(s.attempts),
		retry.Delay(s.delay),
		retry.MaxDelay(s.maxDelay),
		retry.DelayType(retryDelay),
		retry.RetryIf(retryable),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			log.Ctx(ctx).Warn().
				Err(err).
				Uint("attempt", n+1).
				Uint("attempts", s.attempts).
				Msg("todoist request failed")
		}),
	)
	observability.FetchDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		return nil, classify(err)
	}

	return ParseStats(body)
}

func (s *Todoist) sync(ctx context.Context) ([]byte, error) {
	payload, err := json.Marshal(syncRequest{
		SyncToken:     "*",
		ResourceTypes: `["all"]`,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode sync request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, errors.Wrap(err, "failed to create sync request")
	}
	req.Header.Set("Authorization", "Bearer "+s.token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", bininfo.UserAgent())

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, errors.Wrap(err, "failed to read sync response")
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &statusError{
			StatusCode: resp.StatusCode,
			Message:    errorMessage(body, resp.Status),
			RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After")),
		}
	}

	return body, nil
}

func errorMessage(body []byte, fallback string) string {
	for _, path := range []string{"message", "error"} {
		if v := gjson.GetBytes(body, path); v.Type == gjson.String && v.String() != "" {
			return v.String()
		}
	}
	return fallback
}

// parseRetryAfter accepts both forms of the header: delay-seconds and an HTTP date.
func parseRetryAfter(v string) time.Duration {
	v = strings.TrimSpace(v)
	if v == "" {
		return 0
	}
	if secs, err := strconv.Atoi(v); err == nil {
		if secs <= 0 {
			return 0
		}
		return time.Duration(secs) * time.Second
	}
	if t, err := http.ParseTime(v); err == nil {
		if d := time.Until(t); d > 0 {
			return d
		}
	}
	return 0
}

func retryable(err error) bool {
	if errors.Is(err, context.Canceled) {
		return false
	}
	var statusErr *statusError
	if errors.As(err, &statusErr) {
		return statusErr.StatusCode == http.StatusTooManyRequests || statusErr.StatusCode >= 500
	}
	// transport level failure: timeout, reset, DNS
	return true
}

// retryDelay honours a server-directed Retry-After and falls back to
// exponential backoff. retry-go caps either with MaxDelay.
func retryDelay(n uint, err error, config *retry.Config) time.Duration {
	var statusErr *statusError
	if errors.As(err, &statusErr) && statusErr.RetryAfter > 0 {
		return statusErr.RetryAfter
	}
	return retry.BackOffDelay(n, err, config)
}

func classify(err error) error {
	var statusErr *statusError
	if errors.As(err, &statusErr) {
		kind, message := describeStatus(statusErr)
		return runerr.ErrRemoteFetchFailure.
			Msg("%s", message).
			WithExtras(runerr.Extras{"kind": kind, "status": statusErr.StatusCode}).
			Wrap(err)
	}

	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return runerr.ErrRemoteFetchFailure.
			Msg("Request timed out. Todoist API may be slow or unreachable.").
			WithExtras(runerr.Extras{"kind": FetchFailureTimeout}).
			Wrap(err)
	}

	if errors.Is(err, context.Canceled) {
		return runerr.ErrRemoteFetchFailure.
			Msg("Request to Todoist API was canceled.").
			WithExtras(runerr.Extras{"kind": FetchFailureOther}).
			Wrap(err)
	}

	return runerr.ErrRemoteFetchFailure.
		Msg("No response from Todoist API. Check network connectivity.").
		WithExtras(runerr.Extras{"kind": FetchFailureNetwork}).
		Wrap(err)
}

func describeStatus(e *statusError) (kind string, message string) {
	switch {
	case e.StatusCode == http.StatusUnauthorized:
		return FetchFailureAuth, "Authentication failed. Check your TODOIST_API_KEY is valid."
	case e.StatusCode == http.StatusForbidden:
		return FetchFailureForbidden, "Access forbidden. Your API key may lack required permissions."
	case e.StatusCode == http.StatusNotFound:
		return FetchFailureNotFound, "Stats endpoint not found. Todoist API may have changed."
	case e.StatusCode == http.StatusTooManyRequests:
		return FetchFailureRateLimited, "Rate limited by Todoist API. Try again later."
	case e.StatusCode >= 500:
		return FetchFailureServer, "Todoist server error (" + strconv.Itoa(e.StatusCode) + "). Try again later."
	default:
		return FetchFailureOther, "Todoist API error (" + strconv.Itoa(e.StatusCode) + "): " + e.Message
	}
}

// ParseStats maps a sync response onto a StatsPayload. Fields missing from the
// response, or not numeric, are left absent.
func ParseStats(body []byte) (*model.StatsPayload, error) {
	if !gjson.ValidBytes(body) {
		return nil, runerr.ErrRemoteFetchFailure.
			Msg("Todoist API returned a malformed response").
			WithExtras(runerr.Extras{"kind": FetchFailureOther})
	}

	root := gjson.ParseBytes(body)
	if !root.Get("stats").IsObject() {
		keys := make([]string, 0)
		root.ForEach(func(key, _ gjson.Result) bool {
			keys = append(keys, key.String())
			return true
		})
		return nil, runerr.ErrNoStatsInResponse.
			Msg("Todoist API did not return stats data. Available keys: %s", strings.Join(keys, ", ")).
			WithExtras(runerr.Extras{"keys": keys})
	}

	return &model.StatsPayload{
		Karma:             intAt(root, "stats.karma", "user.karma"),
		CompletedCount:    intAt(root, "stats.completed_count"),
		DailyCompleted:    intAt(root, "stats.days_items.0.total_completed"),
		WeeklyCompleted:   intAt(root, "stats.week_items.0.total_completed"),
		CurrentStreakDays: intAt(root, "stats.goals.current_daily_streak.count"),
		LongestStreakDays: intAt(root, "stats.goals.max_daily_streak.count"),
	}, nil
}

// intAt returns the first numeric value found at paths, in order.
func intAt(root gjson.Result, paths ...string) null.Int {
	for _, path := range paths {
		if v := root.Get(path); v.Type == gjson.Number {
			return null.IntFrom(v.Int())
		}
	}
	return null.Int{}
}
