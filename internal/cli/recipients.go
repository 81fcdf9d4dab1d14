package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newRecipientsCommand(a *app) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "recipients FILE",
		Short: "Preview the recipients a send would use",
		Long: `Recipients loads a CSV file or s3:// object the same way send does and
prints the rows that would be mailed. Rows with a missing or malformed
email address are skipped.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.store().Load()
			if err != nil {
				return err
			}
			set, err := a.loadRecipients(cmd.Context(), args[0], s)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "EMAIL\tFIRST NAME\tLAST NAME")
			for i, r := range set {
				if limit > 0 && i >= limit {
					break
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\n", r.Email, r.FirstName, r.LastName)
			}
			if err := tw.Flush(); err != nil {
				return err
			}

			fmt.Fprintf(out, "%d recipients\n", len(set))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "rows to print, 0 for all")
	return cmd
}
