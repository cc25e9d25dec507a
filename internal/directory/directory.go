package directory

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	userAgent = "spigell/vc-sourcer"

	DefaultTimeout           = 30 * time.Second
	DefaultRequestsPerMinute = 20
	// Largest page the directory serves.
	defaultPerPage = 50
	// Hard stop for runaway pagination.
	defaultMaxPages = 20
)

// Options configures a directory client. Zero values fall back to defaults.
type Options struct {
	BaseURL           string
	Token             string
	Timeout           time.Duration
	RequestsPerMinute int
	MaxPages          int
}

// Client talks to a remote startup and portfolio directory.
type Client struct {
	token      string
	logger     *zap.Logger
	limiter    *rate.Limiter
	maxPages   int
	HTTPClient *http.Client
	UserAgent  string
	BaseURL    string
}

func New(logger *zap.Logger, opts Options) (*Client, error) {
	base := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	if base == "" {
		return nil, errors.New("directory base url is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	rpm := opts.RequestsPerMinute
	if rpm <= 0 {
		rpm = DefaultRequestsPerMinute
	}
	maxPages := opts.MaxPages
	if maxPages <= 0 {
		maxPages = defaultMaxPages
	}

	return &Client{
		token:    opts.Token,
		logger:   logger,
		limiter:  rate.NewLimiter(rate.Limit(float64(rpm)/60), 1),
		maxPages: maxPages,
		HTTPClient: &http.Client{
			Timeout: timeout,
		},
		UserAgent: userAgent,
		BaseURL:   base,
	}, nil
}
