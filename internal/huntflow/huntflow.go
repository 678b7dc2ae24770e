package huntflow

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/spigell/hf-importer/internal/config"
)

const (
	userAgent = "spigell/hf-importer (spigelly@gmail.com)"
)

// ErrNoAccount is returned by account scoped calls on a client that was not bound to an account.
var ErrNoAccount = errors.New("huntflow client is not bound to an account")

// Config is the immutable connection setup of a Client.
type Config struct {
	APIURL    string
	Token     string
	AccountID int
	UserAgent string
	// Timeout of zero means no timeout.
	Timeout time.Duration
}

type Client struct {
	cfg        Config
	logger     *zap.Logger
	HTTPClient *http.Client
	// FS is used to read files for upload.
	FS afero.Fs
}

func New(cfg Config, logger *zap.Logger) *Client {
	if cfg.APIURL == "" {
		cfg.APIURL = config.DefaultAPIURL
	}

	if cfg.UserAgent == "" {
		cfg.UserAgent = userAgent
	}

	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{
		cfg:    cfg,
		logger: logger,
		HTTPClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		FS: afero.NewOsFs(),
	}
}

// Config returns a copy of the client configuration.
func (c *Client) Config() Config {
	return c.cfg
}

// WithAccount returns a copy of the client bound to the given account.
func (c *Client) WithAccount(id int) *Client {
	bound := *c
	bound.cfg.AccountID = id
	bound.logger = c.logger.With(zap.Int("account_id", id))

	return &bound
}

// Bind resolves the account of the token unless one is configured already
// and returns a client bound to it.
func (c *Client) Bind(ctx context.Context) (*Client, *Account, error) {
	if c.cfg.AccountID != 0 {
		return c, &Account{ID: c.cfg.AccountID}, nil
	}

	account, err := c.ResolveAccount(ctx)
	if err != nil {
		return nil, nil, err
	}

	return c.WithAccount(account.ID), account, nil
}

func (c *Client) accountURL(format string, args ...any) (string, error) {
	if c.cfg.AccountID == 0 {
		return "", ErrNoAccount
	}

	path := fmt.Sprintf(format, args...)

	return fmt.Sprintf("%s/account/%d%s", c.cfg.APIURL, c.cfg.AccountID, path), nil
}
