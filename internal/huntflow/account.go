package huntflow

import (
	"context"
	"fmt"

	"github.com/spigell/hf-importer/internal/config"
)

type Me struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Position string `json:"position"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Locale   string `json:"locale"`
}

type Account struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Nick string `json:"nick"`
}

func (c *Client) Me(ctx context.Context) (*Me, error) {
	var me Me
	if err := c.getJSON(ctx, fmt.Sprintf("%s/me", c.cfg.APIURL), nil, &me); err != nil {
		return nil, err
	}

	return &me, nil
}

func (c *Client) Accounts(ctx context.Context) ([]*Account, error) {
	items, err := c.GetItems(ctx, fmt.Sprintf("%s/accounts", c.cfg.APIURL), nil)
	if err != nil {
		return nil, err
	}

	var accounts []*Account
	if err := decodeItems(items, &accounts); err != nil {
		return nil, fmt.Errorf("decoding accounts: %w", err)
	}

	return accounts, nil
}

// ResolveAccount returns the first organization the token has access to.
func (c *Client) ResolveAccount(ctx context.Context) (*Account, error) {
	accounts, err := c.Accounts(ctx)
	if err != nil {
		return nil, err
	}

	if len(accounts) == 0 || accounts[0] == nil || accounts[0].ID == 0 {
		return nil, &config.ConfigurationError{
			Field:  "tkn",
			Reason: "no organizations are associated with the token (GET /accounts)",
		}
	}

	return accounts[0], nil
}
