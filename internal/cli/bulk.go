package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/rafabene/usermanager/internal/dashboard"
)

// selectionFlags escolhem os alvos de um comando em lote: ids explícitos
// ou, com --all, todo o conjunto visível após busca e filtros
type selectionFlags struct {
	filterFlags
	all bool
}

func (s *selectionFlags) register(cmd *cobra.Command, prefix string) {
	s.filterFlags.register(cmd, prefix)
	cmd.Flags().BoolVar(&s.all, "all", false, "select every user matching the search and filters")
}

func (s *selectionFlags) selectTargets(w io.Writer, ctrl *dashboard.Controller, ids []string) error {
	if s.all {
		if len(ids) > 0 {
			return fmt.Errorf("--all cannot be combined with explicit ids")
		}
		if err := s.apply(ctrl); err != nil {
			return err
		}
		ctrl.OnSelectAll()
		return nil
	}

	for _, id := range ids {
		if !ctrl.OnToggleSelect(id, true) {
			fmt.Fprintf(w, "%s unknown user %s skipped\n", warningPrefix, id)
		}
	}
	return nil
}

// runBulk carrega o painel, seleciona os alvos e executa op
func (a *app) runBulk(
	ctx context.Context,
	cmd *cobra.Command,
	sel *selectionFlags,
	confirmer dashboard.Confirmer,
	ids []string,
	op func(*dashboard.Controller) (dashboard.Result, error),
) error {
	ctrl, err := a.loaded(ctx, confirmer)
	if err != nil {
		return err
	}
	if err := sel.selectTargets(cmd.ErrOrStderr(), ctrl, ids); err != nil {
		return err
	}

	res, err := op(ctrl)
	for _, f := range res.Failures {
		fmt.Fprintf(cmd.ErrOrStderr(), "  %s %s: %v\n", errorPrefix, f.ID, f.Err)
	}
	return err
}

func (a *app) bulkDeleteCommand() *cobra.Command {
	var (
		sel selectionFlags
		yes bool
	)

	cmd := &cobra.Command{
		Use:   "bulk-delete [id...]",
		Short: "Delete several users at once",
		Long: `Delete several users with one API call per user, all in parallel.

A failed call does not cancel the others and nothing is rolled back; the
users that could not be deleted are listed on stderr.

Examples:
  usersctl bulk-delete 3f2a... 9c1b...
  usersctl bulk-delete --all --company Initech --yes`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runBulk(cmd.Context(), cmd, &sel, a.confirmer(yes), args,
				func(ctrl *dashboard.Controller) (dashboard.Result, error) {
					return ctrl.OnBulkDelete(cmd.Context())
				})
		},
	}

	sel.register(cmd, "")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}

func (a *app) bulkUpdateCommand() *cobra.Command {
	var (
		sel        selectionFlags
		newRole    string
		newCompany string
	)

	cmd := &cobra.Command{
		Use:   "bulk-update [id...]",
		Short: "Change the role or company of several users",
		Long: `Set the role and/or the company of several users, one API call per
user, all in parallel. Other fields are left untouched.

Examples:
  usersctl bulk-update 3f2a... 9c1b... --role manager
  usersctl bulk-update --all --where-city Porto --company "Acme Porto"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			var patch dashboard.BulkPatch
			if newRole != "" {
				role, err := parseRole(newRole)
				if err != nil {
					return err
				}
				patch.Role = role
			}
			patch.Company = newCompany
			if patch.IsEmpty() {
				return dashboard.ErrEmptyPatch
			}

			return a.runBulk(cmd.Context(), cmd, &sel, dashboard.AlwaysConfirm, args,
				func(ctrl *dashboard.Controller) (dashboard.Result, error) {
					return ctrl.OnBulkUpdate(cmd.Context(), patch)
				})
		},
	}

	sel.register(cmd, "where-")
	cmd.Flags().StringVar(&newRole, "role", "", "new role for every selected user")
	cmd.Flags().StringVar(&newCompany, "company", "", "new company for every selected user")
	return cmd
}
