package commands

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/x/term"
	"github.com/spf13/cobra"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Connect a Vercel API token",
	Long: `Prompt for a Vercel API token, verify it against the API and save it to
~/.zenfolio/.auth_token. The token is read from --token when given.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		token := tokenFlag
		if strings.TrimSpace(token) == "" {
			var err error
			token, err = promptToken(cmd.OutOrStdout())
			if err != nil {
				return fmt.Errorf("error reading token: %w", err)
			}
		}

		client, err := newClient()
		if err != nil {
			return err
		}
		if err := client.Login(cmd.Context(), token); err != nil {
			return fmt.Errorf("login failed: %w", err)
		}

		fmt.Fprintln(cmd.OutOrStdout(), "Token verified and saved")
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the saved token",
	Long:  "Remove the token saved by 'zenfolio login'",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}
		if err := client.Logout(); err != nil {
			return fmt.Errorf("error during logout: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "Successfully logged out")
		if strings.TrimSpace(tokenFlag) != "" || strings.TrimSpace(os.Getenv(TokenEnv)) != "" {
			fmt.Fprintf(out, "Note: a token from --token or %s is still in effect\n", TokenEnv)
		}
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the account behind the token",
	Long:  "Display the Vercel account the current token belongs to",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}

		user, err := client.GetUser(cmd.Context())
		if err != nil {
			return friendlyError(err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Logged in as: %s\n", user.Username)
		if user.Name != "" {
			fmt.Fprintf(out, "Name: %s\n", user.Name)
		}
		fmt.Fprintf(out, "Email: %s\n", user.Email)
		fmt.Fprintf(out, "User ID: %s\n", user.ID)
		fmt.Fprintf(out, "API: %s\n", globalConfig.APIURL)
		return nil
	},
}

// promptToken reads the token without echo on a terminal, or a line from piped stdin
func promptToken(out io.Writer) (string, error) {
	fd := os.Stdin.Fd()
	if !term.IsTerminal(fd) {
		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil && err != io.EOF {
			return "", err
		}
		return strings.TrimSpace(line), nil
	}

	fmt.Fprint(out, "Vercel token: ")
	tokenBytes, err := term.ReadPassword(fd)
	fmt.Fprintln(out) // newline after hidden input
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(tokenBytes)), nil
}

func init() {
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)
}
