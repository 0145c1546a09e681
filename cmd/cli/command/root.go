package command

// root.go defines the root command and the global flags.

import (
	"fmt"
	"os"
	"time"

	"foodreview/cmd/cli/authentication"
	"foodreview/cmd/cli/command/client"

	"github.com/spf13/cobra"
)

var (
	apiURL string // API server URL
	token  string // jwt, falls back to the keyring
	userID string // sent as X-User-Id when there is no token
)

var rootCmd = &cobra.Command{
	Use:   "foodreview",
	Short: "foodreview - restaurant review command line client",
	Long: `foodreview talks to the foodreview API. Use it to:
- Browse and search restaurant reviews
- Like, dislike and report reviews
- Read and write comments
- File complaints about a restaurant

Use "foodreview [command] --help" to see all available commands.`,
	SilenceUsage: true,
}

// Execute runs the root command. Called once by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, failure(err.Error()))
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "api", envOr("FOODREVIEW_API", "http://localhost:8080"), "API server URL")
	rootCmd.PersistentFlags().StringVar(&token, "token", "", "access token (defaults to the one saved by 'auth login')")
	rootCmd.PersistentFlags().StringVar(&userID, "user", "", "user id sent as X-User-Id when not logged in")

	rootCmd.AddCommand(authCmd, reviewCmd, commentCmd, complaintCmd)
}

// GetClient builds a client carrying whatever identity is available.
func GetClient() *client.HTTPClient {
	c := client.NewHTTPClient(apiURL)
	if token == "" {
		if creds, err := authentication.GetTokens(); err == nil && creds != nil && !creds.Expired(time.Now()) {
			token = creds.AccessToken
		}
	}
	c.SetToken(token)
	c.SetUserID(userID)
	return c
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
