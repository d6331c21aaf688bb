package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"zenfolio/internal/api"
	"zenfolio/internal/catalog"
	"zenfolio/internal/config"
	"zenfolio/internal/models"
	"zenfolio/internal/portfolio"
)

// TokenEnv names the environment variable holding the API token
const TokenEnv = "VERCEL_TOKEN"

// resolveToken picks the token from the flag, then the environment, then the token store
func resolveToken(flagToken string, store *models.TokenStore) (string, error) {
	if t := strings.TrimSpace(flagToken); t != "" {
		return t, nil
	}
	if t := strings.TrimSpace(os.Getenv(TokenEnv)); t != "" {
		return t, nil
	}
	if store == nil {
		return "", models.ErrNotLoggedIn
	}
	return store.GetToken()
}

func newTokenStore() (*models.TokenStore, error) {
	dir, err := config.GetGlobalConfigDir()
	if err != nil {
		return nil, err
	}
	return models.NewTokenStore(dir), nil
}

// newClient builds an API client from the global configuration. A missing
// token is not an error here; requests will fail with models.ErrNotLoggedIn.
func newClient() (*api.Client, error) {
	store, err := newTokenStore()
	if err != nil {
		return nil, err
	}

	opts := []api.Option{api.WithLogger(logger)}
	if token, err := resolveToken(tokenFlag, store); err == nil {
		opts = append(opts, api.WithToken(token))
	}
	if globalConfig.TimeoutSeconds > 0 {
		opts = append(opts, api.WithTimeout(time.Duration(globalConfig.TimeoutSeconds)*time.Second))
	}
	return api.NewClient(globalConfig.APIURL, store, opts...), nil
}

func listOptions() api.ListOptions {
	return api.ListOptions{
		Limit:  globalConfig.Limit,
		TeamID: globalConfig.TeamID,
	}
}

// fetchProjects lists and normalizes projects. With all set every page is
// followed, otherwise only the first page is read.
func fetchProjects(ctx context.Context, client *api.Client, all bool) ([]models.ProjectData, error) {
	var raws []models.RawProject
	if all {
		projects, err := client.ListAllProjects(ctx, listOptions())
		if err != nil {
			return nil, err
		}
		raws = projects
	} else {
		page, err := client.ListProjects(ctx, listOptions())
		if err != nil {
			return nil, err
		}
		raws = page.Projects
	}
	return portfolio.NormalizeAll(raws)
}

// curatedProjects returns the featured entries of the embedded catalog
func curatedProjects() ([]models.ProjectData, error) {
	entries, err := catalog.Load()
	if err != nil {
		return nil, err
	}
	return catalog.Featured(entries), nil
}

// loadProjects returns the curated portfolio or the live listing
func loadProjects(ctx context.Context, curated, all bool) ([]models.ProjectData, error) {
	if curated {
		return curatedProjects()
	}
	client, err := newClient()
	if err != nil {
		return nil, err
	}
	projects, err := fetchProjects(ctx, client, all)
	if err != nil {
		return nil, friendlyError(err)
	}
	return projects, nil
}

// friendlyError adds a hint for errors the user can fix
func friendlyError(err error) error {
	var authErr *models.AuthenticationError
	switch {
	case errors.As(err, &authErr):
		return fmt.Errorf("%w (run 'zenfolio login' to use another token)", err)
	case errors.Is(err, models.ErrNotLoggedIn):
		return fmt.Errorf("%w: set %s, pass --token or run 'zenfolio login'", err, TokenEnv)
	default:
		return err
	}
}
