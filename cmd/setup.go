package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/longkey1/notion-presence/internal/autostart"
	"github.com/longkey1/notion-presence/internal/logger"
	"github.com/longkey1/notion-presence/internal/version"
)

type setupOptions struct {
	clientID    string
	token       string
	noAutostart bool
}

var setupOpts = &setupOptions{}

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Store the Discord application ID and Notion token",
	Long: `Store the Discord application ID and Notion integration token.

Both values are encrypted with a key bound to this machine and user before
they are written to the credentials file. Values not given as flags are
prompted for; the token is read without echo.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSetup(cmd, setupOpts)
	},
}

func init() {
	setupCmd.Flags().StringVar(&setupOpts.clientID, "client-id", "", "Discord application (client) ID")
	setupCmd.Flags().StringVar(&setupOpts.token, "token", "", "Notion integration token")
	setupCmd.Flags().BoolVar(&setupOpts.noAutostart, "no-autostart", false, "Do not start the daemon at login")

	rootCmd.AddCommand(setupCmd)
}

func runSetup(cmd *cobra.Command, opts *setupOptions) error {
	s, err := loadSettings()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	in := bufio.NewReader(cmd.InOrStdin())

	clientID := strings.TrimSpace(opts.clientID)
	if clientID == "" {
		fmt.Fprint(out, "Discord Client ID: ")
		if clientID, err = readLine(in); err != nil {
			return err
		}
	}

	token := strings.TrimSpace(opts.token)
	if token == "" {
		fmt.Fprint(out, "Notion Integration Token: ")
		if token, err = readSecret(in); err != nil {
			return err
		}
		fmt.Fprintln(out)
	}

	if clientID == "" || token == "" {
		return errors.New("both Discord Client ID and Notion Integration Token are required")
	}

	v := newVault()
	rec := loadRecord(v, s)
	rec.ClientID = clientID
	rec.NotionToken = token
	if err := v.Save(rec, s.CredentialsFile); err != nil {
		return fmt.Errorf("failed to save credentials: %w", err)
	}
	fmt.Fprintf(out, "Configuration saved to %s\n", s.CredentialsFile)

	if opts.noAutostart {
		return nil
	}
	if err := enableAutostart(); err != nil {
		logger.Warn("failed to register autostart", map[string]interface{}{
			"error": err.Error(),
		})
		fmt.Fprintf(out, "Autostart not registered: %v\n", err)
		return nil
	}
	fmt.Fprintln(out, "Registered to start at login")
	return nil
}

// enableAutostart registers the daemon unless it already is
func enableAutostart() error {
	m, err := autostart.NewManager(version.Get())
	if err != nil {
		return err
	}
	registered, err := m.IsRegistered()
	if err != nil {
		return err
	}
	if registered {
		return nil
	}
	if err := m.Register(); err != nil {
		return err
	}
	return m.CreateAppEntries()
}

func readLine(r *bufio.Reader) (string, error) {
	line, err := r.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// readSecret reads without echo from a terminal, or a plain line otherwise
func readSecret(r *bufio.Reader) (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return readLine(r)
	}
	b, err := term.ReadPassword(fd)
	if err != nil {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return strings.TrimSpace(string(b)), nil
}
