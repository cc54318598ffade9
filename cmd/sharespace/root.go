package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"sharespace/internal/client"
)

var errNotLoggedIn = errors.New("not logged in, run `sharespace login` first")

// cli carries the state shared by every subcommand. It is filled in by the
// root command's PersistentPreRunE.
type cli struct {
	apiURL      string
	storagePath string
	verbose     bool

	in    *bufio.Reader
	stdin io.Reader
	out   io.Writer
	log   *zap.Logger
	api   *client.Client
	local *client.LocalStorage
	sess  *client.Session
}

func newRootCmd(stdin io.Reader, stdout io.Writer) *cobra.Command {
	c := &cli{stdin: stdin, in: bufio.NewReader(stdin), out: stdout}

	root := &cobra.Command{
		Use:   "sharespace",
		Short: "ShareSpace terminal client",
		Long: `sharespace talks to the ShareSpace API.

Run without arguments to open the interactive client with the login page,
dashboard and mood tracker.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.init()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if c.log != nil {
				_ = c.log.Sync()
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runUI(false)
		},
	}
	root.SetOut(stdout)

	root.PersistentFlags().StringVar(&c.apiURL, "api", client.BaseURLFromEnv(), "API base URL (env "+client.BaseURLEnv+")")
	root.PersistentFlags().StringVar(&c.storagePath, "storage", "", "session storage file (default <config dir>/sharespace/storage.json)")
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(
		c.loginCmd(),
		c.signupCmd(),
		c.logoutCmd(),
		c.verifyCmd(),
		c.whoamiCmd(),
		c.profileCmd(),
		c.moodCmd(),
	)
	return root
}

func (c *cli) init() error {
	config := zap.NewDevelopmentConfig()
	config.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	if c.verbose {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	log, err := config.Build()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	c.log = log

	if c.storagePath == "" {
		path, err := client.DefaultStoragePath()
		if err != nil {
			return err
		}
		c.storagePath = path
	}

	c.api = client.New(c.apiURL)
	c.local = client.NewLocalStorage(c.storagePath)
	c.sess = client.NewSession(c.api, c.local, nil)
	c.log.Debug("client ready", zap.String("api", c.apiURL), zap.String("storage", c.storagePath))
	return nil
}

// token returns the stored session token or errNotLoggedIn.
func (c *cli) token() (string, error) {
	token, _, err := c.sess.Current()
	if err != nil {
		return "", err
	}
	if token == "" {
		return "", errNotLoggedIn
	}
	return token, nil
}

func (c *cli) printf(format string, args ...any) {
	fmt.Fprintf(c.out, format, args...)
}
