package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rafabene/usermanager/internal/dashboard"
	"github.com/rafabene/usermanager/internal/domain/entities"
)

func (a *app) listCommand() *cobra.Command {
	var (
		filters filterFlags
		page    int
	)

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List users with search, filters and pagination",
		Long: `List users one page at a time.

Search matches name, email, company and city (case-insensitive); filters are
combined with AND. Pages out of range are clamped to the nearest valid page.

Examples:
  usersctl list
  usersctl list --search acme --role admin --page 2
  usersctl list --city Lisbon --date-range month`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctrl, err := a.loaded(cmd.Context(), dashboard.AlwaysConfirm)
			if err != nil {
				return err
			}
			if err := filters.apply(ctrl); err != nil {
				return err
			}
			ctrl.OnPageChange(page)
			renderPage(cmd.OutOrStdout(), ctrl.View())
			return nil
		},
	}

	filters.register(cmd, "")
	cmd.Flags().IntVarP(&page, "page", "p", 1, "page number")
	return cmd
}

func (a *app) getCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show the details of a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl := a.controller(dashboard.AlwaysConfirm)
			user, err := ctrl.OnOpen(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			renderUser(cmd.OutOrStdout(), user)
			return nil
		},
	}
}

// userFlags são os campos editáveis de um usuário
type userFlags struct {
	name, email, phone, company, role string
	street, city, zipcode, lat, lng   string
	avatar                            string
}

func (f *userFlags) register(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVar(&f.name, "name", "", "full name")
	flags.StringVar(&f.email, "email", "", "email address")
	flags.StringVar(&f.phone, "phone", "", "international phone number")
	flags.StringVar(&f.company, "company", "", "company name")
	flags.StringVar(&f.role, "role", "", "role (Admin, Manager, User)")
	flags.StringVar(&f.street, "street", "", "street address")
	flags.StringVar(&f.city, "city", "", "city")
	flags.StringVar(&f.zipcode, "zipcode", "", "zip code")
	flags.StringVar(&f.lat, "lat", "", "latitude")
	flags.StringVar(&f.lng, "lng", "", "longitude")
	flags.StringVar(&f.avatar, "avatar", "", "avatar URL")
}

func (f *userFlags) draft() (entities.UserDraft, error) {
	d := entities.UserDraft{
		Name:    f.name,
		Email:   f.email,
		Phone:   f.phone,
		Company: f.company,
		Address: entities.Address{
			Street:  f.street,
			City:    f.city,
			Zipcode: f.zipcode,
			Geo:     entities.Geo{Lat: f.lat, Lng: f.lng},
		},
	}
	if f.role != "" {
		role, err := parseRole(f.role)
		if err != nil {
			return d, err
		}
		d.Role = role
	}
	if f.avatar != "" {
		avatar := f.avatar
		d.AvatarURL = &avatar
	}
	return d, nil
}

// patch inclui apenas as flags passadas explicitamente
func (f *userFlags) patch(cmd *cobra.Command) (entities.UserPatch, error) {
	var p entities.UserPatch
	changed := func(name string, dst **string, value string) {
		if cmd.Flags().Changed(name) {
			v := value
			*dst = &v
		}
	}
	changed("name", &p.Name, f.name)
	changed("email", &p.Email, f.email)
	changed("phone", &p.Phone, f.phone)
	changed("company", &p.Company, f.company)
	changed("street", &p.Street, f.street)
	changed("city", &p.City, f.city)
	changed("zipcode", &p.Zipcode, f.zipcode)
	changed("lat", &p.Lat, f.lat)
	changed("lng", &p.Lng, f.lng)
	changed("avatar", &p.AvatarURL, f.avatar)

	if cmd.Flags().Changed("role") {
		role, err := parseRole(f.role)
		if err != nil {
			return p, err
		}
		p.Role = &role
	}
	return p, nil
}

func (a *app) createCommand() *cobra.Command {
	var fields userFlags

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a user",
		Long: `Create a user. The server validates every field and reports all
invalid fields at once.

Examples:
  usersctl create --name "Ana Costa" --email ana@acme.io --phone +351912345678 --company Acme
  usersctl create --name Bob --email bob@globex.com --phone +15550100 --company Globex --role manager --city Porto`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			draft, err := fields.draft()
			if err != nil {
				return err
			}
			ctrl := a.controller(dashboard.AlwaysConfirm)
			user, err := ctrl.OnCreate(cmd.Context(), draft)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), user.ID)
			return nil
		},
	}

	fields.register(cmd)
	return cmd
}

func (a *app) updateCommand() *cobra.Command {
	var fields userFlags

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update fields of a user",
		Long: `Update a user. Only the flags given on the command line are sent;
every other field keeps its current value.

Examples:
  usersctl update 3f2a... --company Initech
  usersctl update 3f2a... --city Braga --zipcode 4700-000`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			patch, err := fields.patch(cmd)
			if err != nil {
				return err
			}
			ctrl := a.controller(dashboard.AlwaysConfirm)
			user, err := ctrl.OnUpdate(cmd.Context(), args[0], patch)
			if err != nil {
				return err
			}
			renderUser(cmd.OutOrStdout(), user)
			return nil
		},
	}

	fields.register(cmd)
	return cmd
}

func (a *app) deleteCommand() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a user",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl := a.controller(a.confirmer(yes))
			return ctrl.OnDelete(cmd.Context(), args[0])
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}
