// Package commands implements the feira command line front end.
package commands

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"agrofeira/cmd/feira/output"
	"agrofeira/pkg/client"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// DefaultAPIURL is used when neither --api-url nor FEIRA_API_URL is set.
const DefaultAPIURL = "http://localhost:3000"

// Options injects collaborators, mainly for tests. Zero values select the
// real HTTP client and a FileStore under the state directory.
type Options struct {
	HTTPClient *http.Client
	Store      client.SecureStore
}

// app is the state shared by every command of one invocation.
type app struct {
	opts    Options
	v       *viper.Viper
	session *client.Session
}

func (a *app) client() *client.Client {
	return a.session.Client()
}

// requireSession fails unless a producer is signed in.
func (a *app) requireSession() (*client.SessionUser, error) {
	user := a.session.User()
	if user == nil {
		return nil, errors.New("not logged in, run 'feira login' first")
	}
	return user, nil
}

// setup builds the client and restores the persisted session.
func (a *app) setup() error {
	store := a.opts.Store
	if store == nil {
		fs, err := client.NewFileStore(a.v.GetString("state_dir"))
		if err != nil {
			return err
		}
		store = fs
	}

	var clientOpts []client.Option
	if a.opts.HTTPClient != nil {
		clientOpts = append(clientOpts, client.WithHTTPClient(a.opts.HTTPClient))
	}
	c := client.New(a.v.GetString("api_url"), clientOpts...)

	a.session = client.NewSession(c, store)
	return a.session.Load()
}

// NewRootCmd builds the command tree.
func NewRootCmd(opts Options) *cobra.Command {
	a := &app{opts: opts, v: viper.New()}

	rootCmd := &cobra.Command{
		Use:   "feira",
		Short: "feira - command line client for the producer marketplace",
		Long: `feira talks to the marketplace REST API.

Producers can register, log in, manage their profile, and publish
products under shared categories. The session token is kept in the
state directory between runs.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
	}

	rootCmd.PersistentFlags().String("api-url", DefaultAPIURL, "Base URL of the marketplace API")
	rootCmd.PersistentFlags().String("state-dir", defaultStateDir(), "Directory holding the session token")
	_ = a.v.BindPFlag("api_url", rootCmd.PersistentFlags().Lookup("api-url"))
	_ = a.v.BindPFlag("state_dir", rootCmd.PersistentFlags().Lookup("state-dir"))
	a.v.SetEnvPrefix("FEIRA")
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.v.AutomaticEnv()

	rootCmd.AddCommand(
		newRegisterCmd(a),
		newLoginCmd(a),
		newLogoutCmd(a),
		newWhoamiCmd(a),
		newProfileCmd(a),
		newCategoriesCmd(a),
		newProductsCmd(a),
	)
	return rootCmd
}

// Execute runs the command tree and renders the error, if any. It returns
// the process exit code.
func Execute(ctx context.Context, opts Options, args []string) int {
	rootCmd := NewRootCmd(opts)
	rootCmd.SetArgs(args)
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		output.Error(rootCmd.ErrOrStderr(), "%s", errorMessage(err))
		return 1
	}
	return 0
}

// errorMessage prefers the server's message for API errors and hides
// transport details behind a generic message.
func errorMessage(err error) string {
	var apiErr *client.APIError
	if errors.As(err, &apiErr) {
		msg := apiErr.Message
		fields := make([]string, 0, len(apiErr.Fields))
		for field := range apiErr.Fields {
			fields = append(fields, field)
		}
		sort.Strings(fields)
		for _, field := range fields {
			msg += "\n  " + field + ": " + apiErr.Fields[field]
		}
		return msg
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return client.Message(err)
	}
	return err.Error()
}

func defaultStateDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".feira"
	}
	return filepath.Join(dir, "feira")
}
