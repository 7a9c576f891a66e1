package command

// root.go defines the root command and the global flags.

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"comicvault/cmd/cli/command/client"
)

var (
	apiURL string // Global flag for API server URL
	token  string // bearer token for write routes
)

var rootCmd = &cobra.Command{
	Use:   "comicvault",
	Short: "comicvault - manage your comic collection from the terminal",
	Long: `comicvault talks to the comicvault HTTP API. Use it to:
- List, filter and inspect comics
- Bulk import comics from a JSON file
- Export the whole collection as JSON or CSV
- Delete comics

Use "comicvault [command] --help" to see command options.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err) // Print error to standard error
		os.Exit(1)
	}
}

func init() {
	defaultAPI := os.Getenv("COMICVAULT_API")
	if defaultAPI == "" {
		defaultAPI = "http://localhost:8080"
	}
	rootCmd.PersistentFlags().StringVar(&apiURL, "api", defaultAPI, "API server URL")
	rootCmd.PersistentFlags().StringVar(&token, "token", os.Getenv("COMICVAULT_TOKEN"), "bearer token for write operations")
}

func newClient() *client.HTTPClient {
	c := client.NewHTTPClient(apiURL)
	if token != "" {
		c.SetToken(token)
	}
	return c
}
