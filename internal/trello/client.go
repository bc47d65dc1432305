package trello

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"reflect"
	"time"

	"github.com/alexanderramin/chewy/internal/domain"
)

// Client provides read access to the Trello REST API.
type Client interface {
	Me(ctx context.Context) (*domain.Me, error)
	Board(ctx context.Context, boardID string) (*domain.Board, error)
	BoardLists(ctx context.Context, boardID string) ([]domain.List, error)
	BoardMembers(ctx context.Context, boardID string) ([]domain.Member, error)
	ListCards(ctx context.Context, listID string) ([]domain.Card, error)
	CardChecklists(ctx context.Context, cardID string) ([]domain.Checklist, error)
	Member(ctx context.Context, memberID string) (*domain.Member, error)
}

// restClient implements Client over HTTPS with key/token authentication.
type restClient struct {
	cfg      Config
	http     *http.Client
	cache    Cache
	observer Observer
}

// NewClient creates a Client. A nil cache disables response caching.
func NewClient(cfg Config, cache Cache, observer Observer) Client {
	if observer == nil {
		observer = NoopObserver{}
	}
	return &restClient{
		cfg: cfg,
		http: &http.Client{
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout: 5 * time.Second,
				}).DialContext,
			},
		},
		cache:    cache,
		observer: observer,
	}
}

func (c *restClient) Me(ctx context.Context) (*domain.Me, error) {
	var me domain.Me
	if err := c.get(ctx, "/members/me", true, &me); err != nil {
		return nil, err
	}
	if err := me.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	return &me, nil
}

func (c *restClient) Board(ctx context.Context, boardID string) (*domain.Board, error) {
	var b domain.Board
	if err := c.get(ctx, "/boards/"+url.PathEscape(boardID), true, &b); err != nil {
		return nil, err
	}
	if err := b.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	return &b, nil
}

func (c *restClient) BoardLists(ctx context.Context, boardID string) ([]domain.List, error) {
	var lists []domain.List
	if err := c.get(ctx, "/boards/"+url.PathEscape(boardID)+"/lists", false, &lists); err != nil {
		return nil, err
	}
	if err := validateAll(lists); err != nil {
		return nil, err
	}
	return lists, nil
}

func (c *restClient) BoardMembers(ctx context.Context, boardID string) ([]domain.Member, error) {
	var members []domain.Member
	if err := c.get(ctx, "/boards/"+url.PathEscape(boardID)+"/members", false, &members); err != nil {
		return nil, err
	}
	if err := validateAll(members); err != nil {
		return nil, err
	}
	return members, nil
}

func (c *restClient) ListCards(ctx context.Context, listID string) ([]domain.Card, error) {
	var cards []domain.Card
	if err := c.get(ctx, "/lists/"+url.PathEscape(listID)+"/cards", false, &cards); err != nil {
		return nil, err
	}
	if err := validateAll(cards); err != nil {
		return nil, err
	}
	return cards, nil
}

func (c *restClient) CardChecklists(ctx context.Context, cardID string) ([]domain.Checklist, error) {
	var checklists []domain.Checklist
	if err := c.get(ctx, "/cards/"+url.PathEscape(cardID)+"/checklists", false, &checklists); err != nil {
		return nil, err
	}
	if err := validateAll(checklists); err != nil {
		return nil, err
	}
	return checklists, nil
}

func (c *restClient) Member(ctx context.Context, memberID string) (*domain.Member, error) {
	var m domain.Member
	if err := c.get(ctx, "/members/"+url.PathEscape(memberID), false, &m); err != nil {
		return nil, err
	}
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	return &m, nil
}

// get fetches path and decodes the JSON body into out. Cacheable calls (or
// every call when CacheAll is set) are answered from the cache when possible.
func (c *restClient) get(ctx context.Context, path string, cacheable bool, out any) error {
	start := time.Now()
	event := CallEvent{Method: http.MethodGet, Path: path}

	useCache := c.cache != nil && (cacheable || c.cfg.CacheAll)
	key := CacheKey(http.MethodGet, path)

	if useCache {
		if body, ok, err := c.cache.Lookup(ctx, key); err == nil && ok {
			if err := json.Unmarshal(body, out); err == nil {
				event.Cached = true
				event.Success = true
				event.LatencyMs = time.Since(start).Milliseconds()
				c.observer.OnCallComplete(event)
				return nil
			}
			// A half-decoded cache entry must not leak into the fresh response.
			reflect.ValueOf(out).Elem().SetZero()
		}
	}

	body, status, err := c.doRequest(ctx, path)
	event.Status = status
	event.LatencyMs = time.Since(start).Milliseconds()
	if err == nil {
		if decodeErr := json.Unmarshal(body, out); decodeErr != nil {
			err = fmt.Errorf("%w: decoding %s: %v", ErrInvalidResponse, path, decodeErr)
		}
	}
	if err != nil {
		event.ErrorCode = errorCode(err)
		c.observer.OnCallComplete(event)
		return err
	}

	if useCache {
		// A cache write failure only costs a refetch next time.
		_ = c.cache.Store(ctx, key, body)
	}

	event.Success = true
	c.observer.OnCallComplete(event)
	return nil
}

func (c *restClient) doRequest(ctx context.Context, path string) ([]byte, int, error) {
	if c.cfg.Token == "" || c.cfg.Key == "" {
		return nil, 0, fmt.Errorf("%w: missing api key or token", ErrUnauthorized)
	}

	if c.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.cfg.Timeout)
		defer cancel()
	}

	q := url.Values{}
	q.Set("key", c.cfg.Key)
	q.Set("token", c.cfg.Token)
	target := c.cfg.Endpoint + path + "?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, 0, fmt.Errorf("%w: %s", ErrTimeout, path)
		}
		if ctx.Err() != nil {
			return nil, 0, ctx.Err()
		}
		return nil, 0, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("reading response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return nil, resp.StatusCode, fmt.Errorf("%w: %s", ErrUnauthorized, string(body))
	case resp.StatusCode == http.StatusNotFound:
		return nil, resp.StatusCode, fmt.Errorf("%w: %s", ErrNotFound, path)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return nil, resp.StatusCode, fmt.Errorf("%w: status %d: %s", ErrAPI, resp.StatusCode, string(body))
	}

	return body, resp.StatusCode, nil
}

type validatable interface {
	Validate() error
}

func validateAll[T validatable](items []T) error {
	for i, item := range items {
		if err := item.Validate(); err != nil {
			return fmt.Errorf("%w: item %d: %v", ErrInvalidResponse, i, err)
		}
	}
	return nil
}

func errorCode(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrUnauthorized):
		return "UNAUTHORIZED"
	case errors.Is(err, ErrNotFound):
		return "NOT_FOUND"
	case errors.Is(err, ErrTimeout):
		return "TIMEOUT"
	case errors.Is(err, ErrUnavailable):
		return "UNAVAILABLE"
	case errors.Is(err, ErrInvalidResponse):
		return "INVALID_RESPONSE"
	case errors.Is(err, ErrAPI):
		return "API_ERROR"
	default:
		return "UNKNOWN"
	}
}
