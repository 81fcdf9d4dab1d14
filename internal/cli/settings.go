package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/massmail/pkg/settings"
)

// plaintextAuth reports whether SMTP would send credentials without TLS to a
// remote host. The SMTP client only allows that on loopback.
func plaintextAuth(s *settings.Settings) bool {
	if s.Active() != settings.ProviderSMTP || s.SMTP.UseTLS || s.SMTP.SenderPassword == "" {
		return false
	}
	switch s.SMTP.Server {
	case "localhost", "127.0.0.1", "::1":
		return false
	}
	return true
}

func newSettingsCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show and change provider settings",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "Print the effective settings with secrets masked",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				s, err := a.store().Load()
				if err != nil {
					return err
				}
				data, err := json.MarshalIndent(s.Redacted(), "", "  ")
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(data))
				return nil
			},
		},
		&cobra.Command{
			Use:       "set KEY VALUE",
			Short:     "Store a single setting",
			Long:      "Set stores one value in the settings file. Keys:\n  " + strings.Join(settings.Keys(), "\n  "),
			Args:      cobra.ExactArgs(2),
			ValidArgs: settings.Keys(),
			RunE: func(cmd *cobra.Command, args []string) error {
				if _, err := a.store().Set(args[0], args[1]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s updated\n", args[0])
				return nil
			},
		},
		&cobra.Command{
			Use:   "check",
			Short: "Validate the settings of the active provider",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				s, err := a.store().Load()
				if err != nil {
					return err
				}
				if err := s.Validate(); err != nil {
					return err
				}
				if plaintextAuth(s) {
					fmt.Fprintf(cmd.OutOrStdout(),
						"warning: smtp.use_tls is off; authentication to %s will be refused over an unencrypted connection\n",
						s.SMTP.Server)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s settings are valid\n", s.Active())
				return nil
			},
		},
		&cobra.Command{
			Use:   "path",
			Short: "Print the settings file location",
			Args:  cobra.NoArgs,
			Run: func(cmd *cobra.Command, _ []string) {
				fmt.Fprintln(cmd.OutOrStdout(), a.store().Path())
			},
		},
	)
	return cmd
}
