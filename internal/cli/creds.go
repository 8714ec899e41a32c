package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/lead-miners/prospect/internal/creds"
	"github.com/lead-miners/prospect/internal/ui"
)

var credsCmd = &cobra.Command{
	Use:   "creds",
	Short: "Manage stored login credentials",
	Long: `Creds manages the login credentials used by the scrape command.
Credentials live in the OS keyring; the PROSPECT_USERNAME and
PROSPECT_PASSWORD environment variables override them when set.`,
}

var credsSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Store credentials in the OS keyring",
	RunE:  runCredsSet,
}

var credsRmCmd = &cobra.Command{
	Use:   "rm",
	Short: "Remove stored credentials",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := creds.Delete(); err != nil {
			return err
		}
		fmt.Println(ui.Success("Credentials removed"))
		return nil
	},
}

func init() {
	credsCmd.AddCommand(credsSetCmd)
	credsCmd.AddCommand(credsRmCmd)
	rootCmd.AddCommand(credsCmd)
}

func runCredsSet(cmd *cobra.Command, args []string) error {
	reader := bufio.NewReader(os.Stdin)

	fmt.Print("Username: ")
	username, err := reader.ReadString('\n')
	if err != nil {
		return fmt.Errorf("failed to read username: %w", err)
	}
	username = strings.TrimSpace(username)

	fmt.Print("Password: ")
	password, err := readPassword()
	if err != nil {
		return fmt.Errorf("failed to read password: %w", err)
	}
	fmt.Println()

	if err := creds.Save(creds.Credentials{Username: username, Password: password}); err != nil {
		return err
	}

	fmt.Println(ui.Success("Credentials saved to keyring"))
	return nil
}

// readPassword reads without echo when stdin is a terminal, falling back to
// a plain line read otherwise (piped input in scripts and tests).
func readPassword() (string, error) {
	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		b, err := term.ReadPassword(fd)
		if err != nil {
			return "", err
		}
		return strings.TrimSpace(string(b)), nil
	}

	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
