package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rafabene/usermanager/internal/analytics"
	"github.com/rafabene/usermanager/internal/dashboard"
	"github.com/rafabene/usermanager/internal/export"
)

func (a *app) exportCommand() *cobra.Command {
	var (
		filters filterFlags
		format  string
		out     string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the filtered users to CSV or PDF",
		Long: `Export every user matching the search and filters (all pages, not
just one) to a CSV or PDF file.

Without --out the file is named users_export_<date>.csv or
users_report_<date>.pdf in the current directory. Use --out - for stdout.

Examples:
  usersctl export --format csv
  usersctl export --format pdf --role admin --out admins.pdf`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, err := export.ParseFormat(format)
			if err != nil {
				return err
			}
			ctrl, err := a.loaded(cmd.Context(), dashboard.AlwaysConfirm)
			if err != nil {
				return err
			}
			if err := filters.apply(ctrl); err != nil {
				return err
			}

			now := a.opts.Now()
			users := ctrl.Visible()
			var buf bytes.Buffer
			if err := f.Write(&buf, users, now); err != nil {
				return fmt.Errorf("export %s: %w", f, err)
			}

			if out == "-" {
				_, err := cmd.OutOrStdout().Write(buf.Bytes())
				return err
			}
			if out == "" {
				out = f.Filename(now)
			}
			if err := os.WriteFile(out, buf.Bytes(), 0o644); err != nil {
				return fmt.Errorf("write %s: %w", out, err)
			}
			a.notify(notice(fmt.Sprintf("Exported %d users", len(users)), out))
			return nil
		},
	}

	filters.register(cmd, "")
	cmd.Flags().StringVarP(&format, "format", "f", string(export.FormatCSV), "export format (csv, pdf)")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file, - for stdout")
	return cmd
}

func (a *app) analyticsCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "analytics",
		Short: "Show totals, distributions and the sign-up trend",
		Long: `Show analytics over every user: totals, users per role, top
companies, top cities and daily sign-ups over the last 30 days.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctrl, err := a.loaded(cmd.Context(), dashboard.AlwaysConfirm)
			if err != nil {
				return err
			}

			report := analytics.Compute(ctrl.Canonical(), a.opts.Now())
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(report)
			}
			renderReport(cmd.OutOrStdout(), report)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the report as JSON")
	return cmd
}
