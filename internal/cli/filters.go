package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rafabene/usermanager/internal/dashboard"
	"github.com/rafabene/usermanager/internal/domain/entities"
)

// filterFlags são as flags de busca e filtro compartilhadas por list,
// export e os comandos em lote
type filterFlags struct {
	search    string
	role      string
	company   string
	city      string
	dateRange string
}

// register adiciona as flags; prefix evita colisão com flags de valor
// do próprio comando (bulk-update usa --role para o novo valor)
func (f *filterFlags) register(cmd *cobra.Command, prefix string) {
	flags := cmd.Flags()
	flags.StringVarP(&f.search, "search", "s", "", "case-insensitive search over name, email, company and city")
	flags.StringVar(&f.role, prefix+"role", "", "filter by role (Admin, Manager, User)")
	flags.StringVar(&f.company, prefix+"company", "", "filter by exact company")
	flags.StringVar(&f.city, prefix+"city", "", "filter by exact city")
	flags.StringVar(&f.dateRange, prefix+"date-range", "", "filter by creation date (today, week, month, year)")
}

func (f *filterFlags) criteria() (dashboard.Criteria, error) {
	var c dashboard.Criteria
	if f.role != "" {
		role, err := parseRole(f.role)
		if err != nil {
			return c, err
		}
		c.Role = role
	}
	dr, err := dashboard.ParseDateRange(f.dateRange)
	if err != nil {
		return c, err
	}
	c.DateRange = dr
	c.Company = f.company
	c.City = f.city
	return c, nil
}

// apply envia busca e critérios ao controller
func (f *filterFlags) apply(ctrl *dashboard.Controller) error {
	c, err := f.criteria()
	if err != nil {
		return err
	}
	ctrl.OnSearch(f.search)
	ctrl.OnFilterChange(c)
	return nil
}

func parseRole(s string) (entities.Role, error) {
	role, ok := entities.ParseRole(s)
	if !ok {
		names := make([]string, len(entities.Roles))
		for i, r := range entities.Roles {
			names[i] = r.String()
		}
		return "", fmt.Errorf("unknown role %q (want %s)", s, strings.Join(names, ", "))
	}
	return role, nil
}
