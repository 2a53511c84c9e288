package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/go-resty/resty/v2"
)

const (
	defaultOMDbBaseURL   = "http://www.omdbapi.com"
	defaultPosterTimeout = 5 * time.Second

	// posterNotAvailable is what OMDb puts in Poster when it has none.
	posterNotAvailable = "N/A"
)

var (
	// ErrPosterNotFound means the API answered but had no usable poster.
	ErrPosterNotFound = errors.New("poster not found")
	// ErrLookupDisabled means no API key is configured.
	ErrLookupDisabled = errors.New("poster lookup disabled: no API key")
)

// PosterService looks up movie posters through an OMDb-compatible API.
type PosterService struct {
	client *resty.Client
	apiKey string
}

// PosterConfig holds configuration for the poster service
type PosterConfig struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// NewPosterService creates a poster service with one reusable client.
func NewPosterService(cfg *PosterConfig) *PosterService {
	baseURL := strings.TrimSuffix(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = defaultOMDbBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultPosterTimeout
	}

	client := resty.New()
	client.SetBaseURL(baseURL)
	client.SetTimeout(timeout)
	client.SetHeader("Accept", "application/json")

	return &PosterService{
		client: client,
		apiKey: strings.TrimSpace(cfg.APIKey),
	}
}

// OMDb API response structure
type omdbResponse struct {
	Response string `json:"Response"`
	Error    string `json:"Error"`
	Title    string `json:"Title"`
	Year     string `json:"Year"`
	Poster   string `json:"Poster"`
}

// Lookup returns the poster URL OMDb has for title and year.
// Parameters:
//   - ctx: context for cancellation.
//   - title: movie title; punctuation is stripped before the request.
//   - year: release year.
// Returns:
//   - string: poster URL as returned by the API.
//   - error: ErrLookupDisabled, ErrPosterNotFound, or a transport/decoding error.
func (s *PosterService) Lookup(ctx context.Context, title string, year int) (string, error) {
	if s.apiKey == "" {
		return "", ErrLookupDisabled
	}

	var resp omdbResponse
	httpResp, err := s.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"t":      CleanTitle(title),
			"y":      strconv.Itoa(year),
			"apikey": s.apiKey,
		}).
		SetResult(&resp).
		Get("/")

	if err != nil {
		return "", fmt.Errorf("failed to call OMDb API: %w", err)
	}

	if httpResp.StatusCode() != http.StatusOK {
		return "", fmt.Errorf("OMDb API error: status %d", httpResp.StatusCode())
	}

	if resp.Response != "True" {
		if resp.Error != "" {
			return "", fmt.Errorf("%w: %s", ErrPosterNotFound, resp.Error)
		}
		return "", ErrPosterNotFound
	}

	poster := strings.TrimSpace(resp.Poster)
	if poster == "" || poster == posterNotAvailable {
		return "", ErrPosterNotFound
	}
	return poster, nil
}

// CleanTitle keeps letters, digits and spaces.
func CleanTitle(title string) string {
	var b strings.Builder
	b.Grow(len(title))
	for _, r := range title {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == ' ' {
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}

// WithUniqueToken appends the movie id as the uid query parameter, so two
// movies that resolve to the same poster still get distinct URLs.
func WithUniqueToken(poster string, id int) (string, error) {
	u, err := url.Parse(poster)
	if err != nil {
		return "", fmt.Errorf("invalid poster URL %q: %w", poster, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("invalid poster URL %q: not http(s)", poster)
	}
	q := u.Query()
	q.Set("uid", strconv.Itoa(id))
	u.RawQuery = q.Encode()
	return u.String(), nil
}
