package export

import (
	"encoding/csv"
	"io"

	"github.com/rafabene/usermanager/internal/domain/entities"
)

var csvHeader = []string{"Name", "Email", "Phone", "Company", "Role", "City", "Created At"}

// WriteCSV escreve o cabeçalho e uma linha por usuário
func WriteCSV(w io.Writer, users []*entities.User) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(csvHeader); err != nil {
		return err
	}
	for _, u := range users {
		if err := writer.Write(row(u)); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}
