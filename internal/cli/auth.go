package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/attio-tui/attio-tui/internal/api"
	"github.com/attio-tui/attio-tui/internal/authstore"
	"github.com/attio-tui/attio-tui/internal/config"
)

const verifyTimeout = 15 * time.Second

var errNoKey = errors.New("missing API key: run `attio-tui auth login` or set ATTIO_API_KEY")

func newAuthCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Manage stored API keys",
	}
	cmd.AddCommand(newAuthLoginCmd(app))
	cmd.AddCommand(newAuthLogoutCmd(app))
	cmd.AddCommand(newAuthStatusCmd(app))
	return cmd
}

func storePathOr(path string) (string, error) {
	if p := strings.TrimSpace(path); p != "" {
		return p, nil
	}
	return authstore.DefaultPath()
}

func apiClient(app *App, key string) api.Client {
	return api.Client{BaseURL: app.cfg.BaseURL, APIKey: key}
}

func newAuthLoginCmd(app *App) *cobra.Command {
	var (
		key       string
		keyStdin  bool
		noVerify  bool
		storePath string
	)
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Verify an API key and store it for the current API URL",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if keyStdin {
				line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				if err != nil && line == "" {
					return fmt.Errorf("reading key from stdin: %w", err)
				}
				key = line
			}
			key = strings.TrimSpace(key)
			if key == "" {
				return errors.New("missing API key: pass --key or --key-stdin")
			}

			workspace := ""
			if !noVerify {
				ctx, cancel := context.WithTimeout(cmd.Context(), verifyTimeout)
				defer cancel()
				self, err := apiClient(app, key).Self(ctx)
				if err != nil {
					return fmt.Errorf("verifying key: %w", err)
				}
				if !self.Active {
					return errors.New("API key is not active")
				}
				workspace = firstNonEmpty(self.WorkspaceName, self.WorkspaceSlug, self.WorkspaceID)
			}

			path, err := storePathOr(storePath)
			if err != nil {
				return err
			}
			st, err := authstore.LoadOrEmpty(path)
			if err != nil {
				return fmt.Errorf("reading %s: %w", path, err)
			}
			st.Set(app.cfg.BaseURL, key, workspace)
			if err := authstore.SaveAtomic(path, st); err != nil {
				return err
			}
			app.logger.Debug("stored api key", "base_url", app.cfg.BaseURL, "verified", !noVerify)

			return writeData(cmd, app, map[string]any{
				"baseUrl":   app.cfg.BaseURL,
				"workspace": workspace,
				"verified":  !noVerify,
				"store":     path,
			}, fieldGrid("logged in",
				[]string{"base url", app.cfg.BaseURL},
				[]string{"workspace", cmpOrNone(workspace)},
				[]string{"key", config.RedactKey(key)},
				[]string{"store", path},
			))
		},
	}
	cmd.Flags().StringVar(&key, "key", "", "API key (prefer --key-stdin to keep it out of shell history)")
	cmd.Flags().BoolVar(&keyStdin, "key-stdin", false, "Read the API key from stdin")
	cmd.Flags().BoolVar(&noVerify, "no-verify", false, "Store the key without calling the API")
	cmd.Flags().StringVar(&storePath, "store", "", "Path to credentials file (default: user config dir)")
	return cmd
}

func newAuthLogoutCmd(app *App) *cobra.Command {
	var (
		all       bool
		storePath string
	)
	cmd := &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored key for the current API URL",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := storePathOr(storePath)
			if err != nil {
				return err
			}
			st, err := authstore.LoadOrEmpty(path)
			if err != nil {
				return fmt.Errorf("reading %s: %w", path, err)
			}
			removed := 0
			if all {
				removed = len(st.Keys)
				st.Keys = map[string]authstore.Credential{}
			} else if st.Delete(app.cfg.BaseURL) {
				removed = 1
			}
			if removed > 0 {
				if err := authstore.SaveAtomic(path, st); err != nil {
					return err
				}
			}
			return writeData(cmd, app, map[string]any{
				"removed": removed,
				"store":   path,
			}, fieldGrid("logged out",
				[]string{"removed", humanize.Comma(int64(removed))},
				[]string{"store", path},
			))
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "Remove keys for every API URL")
	cmd.Flags().StringVar(&storePath, "store", "", "Path to credentials file (default: user config dir)")
	return cmd
}

func newAuthStatusCmd(app *App) *cobra.Command {
	var (
		storePath string
		offline   bool
	)
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show which key is in use and the workspace it belongs to",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := app.cfg
			key, source := cfg.APIKey, cfg.APIKeySource

			path, err := storePathOr(storePath)
			if err != nil {
				return err
			}
			var stored authstore.Credential
			var haveStored bool
			if st, err := authstore.LoadOrEmpty(path); err == nil {
				stored, haveStored = st.Get(cfg.BaseURL)
			}
			if key == "" && haveStored {
				key, source = stored.APIKey, config.KeyCredentials
			}
			if key == "" {
				return errNoKey
			}

			workspace := stored.Workspace
			if !offline {
				ctx, cancel := context.WithTimeout(cmd.Context(), verifyTimeout)
				defer cancel()
				self, err := apiClient(app, key).Self(ctx)
				if err != nil {
					return fmt.Errorf("verifying key: %w", err)
				}
				workspace = firstNonEmpty(self.WorkspaceName, self.WorkspaceSlug, self.WorkspaceID, workspace)
			}

			updated := ""
			if haveStored && source == config.KeyCredentials && !stored.UpdatedAt.IsZero() {
				updated = humanize.Time(stored.UpdatedAt)
			}
			return writeData(cmd, app, map[string]any{
				"baseUrl":   cfg.BaseURL,
				"source":    string(source),
				"key":       config.RedactKey(key),
				"workspace": workspace,
				"storedAt":  stored.UpdatedAt,
			}, fieldGrid("auth",
				[]string{"base url", cfg.BaseURL},
				[]string{"source", string(source)},
				[]string{"key", config.RedactKey(key)},
				[]string{"workspace", cmpOrNone(workspace)},
				[]string{"stored", cmpOrNone(updated)},
			))
		},
	}
	cmd.Flags().StringVar(&storePath, "store", "", "Path to credentials file (default: user config dir)")
	cmd.Flags().BoolVar(&offline, "offline", false, "Skip the API check")
	return cmd
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
