// Package export serializa o conjunto visível de usuários em CSV ou PDF.
package export

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rafabene/usermanager/internal/domain/entities"
)

// Format é o formato de exportação
type Format string

const (
	FormatCSV Format = "csv"
	FormatPDF Format = "pdf"
)

const dateLayout = "2006-01-02"

// ParseFormat aceita "csv" ou "pdf" sem diferenciar caixa
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatCSV, FormatPDF:
		return f, nil
	default:
		return "", fmt.Errorf("unsupported export format %q", s)
	}
}

// ContentType retorna o media type do formato
func (f Format) ContentType() string {
	if f == FormatPDF {
		return "application/pdf"
	}
	return "text/csv; charset=utf-8"
}

// Filename retorna o nome sugerido do arquivo para a data de now
func (f Format) Filename(now time.Time) string {
	if f == FormatPDF {
		return "users_report_" + now.Format(dateLayout) + ".pdf"
	}
	return "users_export_" + now.Format(dateLayout) + ".csv"
}

// Write serializa users no formato f
func (f Format) Write(w io.Writer, users []*entities.User, now time.Time) error {
	switch f {
	case FormatCSV:
		return WriteCSV(w, users)
	case FormatPDF:
		return WritePDF(w, users, now)
	default:
		return fmt.Errorf("unsupported export format %q", string(f))
	}
}

// row retorna as colunas comuns aos dois formatos
func row(u *entities.User) []string {
	return []string{
		u.Name,
		u.Email.String(),
		u.Phone,
		u.Company,
		string(u.Role),
		u.Address.City,
		u.CreatedAt.Format(dateLayout),
	}
}
