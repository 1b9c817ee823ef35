package catalog

import (
	"context"

	"github.com/jhoicas/inventory-tracker/internal/application/dto"
)

// ImportCSV crea cada fila con CreateItem. Los errores por fila se acumulan y no detienen la carga.
func (s *Service) ImportCSV(ctx context.Context, actor string, rows []dto.CreateItemRequest) dto.ImportResult {
	var res dto.ImportResult
	for i, row := range rows {
		if err := ctx.Err(); err != nil {
			res.Errors = append(res.Errors, dto.ImportRowError{Row: i + 1, Name: row.Name, Message: err.Error()})
			break
		}
		if _, err := s.CreateItem(ctx, actor, row); err != nil {
			s.log.Warn().Err(err).Int("row", i+1).Str("name", row.Name).Msg("fila de importación rechazada")
			res.Errors = append(res.Errors, dto.ImportRowError{Row: i + 1, Name: row.Name, Message: err.Error()})
			continue
		}
		res.Created++
	}
	return res
}
