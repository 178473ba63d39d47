package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/rafabene/usermanager/internal/analytics"
	"github.com/rafabene/usermanager/internal/dashboard"
	"github.com/rafabene/usermanager/internal/domain/entities"
)

const dateLayout = "2006-01-02"

var userColumns = []string{"", "ID", "NAME", "EMAIL", "COMPANY", "ROLE", "CITY", "CREATED"}

func userRow(u *entities.User, selected bool) []string {
	mark := " "
	if selected {
		mark = "●"
	}
	return []string{
		mark,
		u.ID,
		u.Name,
		u.Email.String(),
		u.Company,
		u.Role.String(),
		u.Address.City,
		u.CreatedAt.Format(dateLayout),
	}
}

// renderPage imprime a página atual como tabela seguida do rodapé de paginação
func renderPage(w io.Writer, v dashboard.View) {
	if v.Page.Total == 0 {
		fmt.Fprintln(w, dimStyle.Render("No users found"))
		return
	}

	selected := make(map[string]bool, len(v.Selected))
	for _, id := range v.Selected {
		selected[id] = true
	}

	rows := make([][]string, 0, len(v.Page.Items))
	for _, u := range v.Page.Items {
		rows = append(rows, userRow(u, selected[u.ID]))
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(dimStyle).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return boldStyle.Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		}).
		Headers(userColumns...).
		Rows(rows...)

	fmt.Fprintln(w, t.Render())
	fmt.Fprintln(w, pageFooter(v))
}

// pageFooter monta "Showing 11-20 of 23  ‹ 1 [2] 3 ›"
func pageFooter(v dashboard.View) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Showing %d-%d of %d", v.Page.RangeStart, v.Page.RangeEnd, v.Page.Total)
	if v.Page.Total != v.Canonical {
		fmt.Fprintf(&b, " (filtered from %d)", v.Canonical)
	}

	if v.Page.TotalPages > 1 {
		b.WriteString("  ")
		if v.Page.Number > 1 {
			b.WriteString("‹ ")
		}
		pages := make([]string, len(v.Window))
		for i, n := range v.Window {
			if n == v.Page.Number {
				pages[i] = currentPageStyle.Render("[" + strconv.Itoa(n) + "]")
			} else {
				pages[i] = strconv.Itoa(n)
			}
		}
		b.WriteString(strings.Join(pages, " "))
		if v.Page.Number < v.Page.TotalPages {
			b.WriteString(" ›")
		}
	}
	if len(v.Selected) > 0 {
		fmt.Fprintf(&b, "  %d selected", len(v.Selected))
	}
	return b.String()
}

// renderUser imprime os detalhes de um usuário
func renderUser(w io.Writer, u *entities.User) {
	field := func(label, value string) {
		if value == "" {
			value = dimStyle.Render("-")
		}
		fmt.Fprintf(w, "%s %s\n", boldStyle.Render(fmt.Sprintf("%-9s", label+":")), value)
	}

	field("ID", u.ID)
	field("Name", u.Name)
	field("Email", u.Email.String())
	field("Phone", u.Phone)
	field("Company", u.Company)
	field("Role", u.Role.String())
	field("Street", u.Address.Street)
	field("City", u.Address.City)
	field("Zipcode", u.Address.Zipcode)
	if u.Address.Geo.Lat != "" || u.Address.Geo.Lng != "" {
		field("Geo", u.Address.Geo.Lat+", "+u.Address.Geo.Lng)
	}
	if u.AvatarURL != nil {
		field("Avatar", *u.AvatarURL)
	}
	field("Created", u.CreatedAt.Format("2006-01-02 15:04"))
	field("Updated", u.UpdatedAt.Format("2006-01-02 15:04"))
}

// renderReport imprime o relatório de analytics com barras proporcionais
func renderReport(w io.Writer, r analytics.Report) {
	fmt.Fprintln(w, headerStyle.Render("User analytics"))
	fmt.Fprintf(w, "%s %d   %s %d   %s %d   %s %d\n",
		boldStyle.Render("Users:"), r.Totals.Users,
		boldStyle.Render("Active:"), r.Totals.Active,
		boldStyle.Render("Companies:"), r.Totals.Companies,
		boldStyle.Render("Cities:"), r.Totals.Cities,
	)

	section := func(title string, buckets []analytics.Bucket) {
		fmt.Fprintln(w)
		fmt.Fprintln(w, boldStyle.Render(title))
		if len(buckets) == 0 {
			fmt.Fprintln(w, dimStyle.Render("  no data"))
			return
		}
		peak := buckets[0].Count
		for _, b := range buckets {
			fmt.Fprintf(w, "  %-15s %s %d\n", b.Label, bar(b.Count, peak, 30), b.Count)
		}
	}
	section("Roles", r.Roles)
	section("Top companies", r.TopCompanies)
	section("Top cities", r.TopCities)

	fmt.Fprintln(w)
	fmt.Fprintln(w, boldStyle.Render(fmt.Sprintf("Sign-ups (last %d days)", analytics.TrendDays)))
	peak := 0
	for _, p := range r.Trend {
		peak = max(peak, p.Count)
	}
	for _, p := range r.Trend {
		if p.Count == 0 {
			continue
		}
		fmt.Fprintf(w, "  %-6s %s %d\n", p.Label, bar(p.Count, peak, 30), p.Count)
	}
}

func bar(count, peak, width int) string {
	if peak <= 0 || count <= 0 {
		return ""
	}
	n := max(1, count*width/peak)
	return infoStyle.Render(strings.Repeat("█", n))
}
