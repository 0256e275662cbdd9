package reports

import (
	"fmt"
	"sort"

	"github.com/xuri/excelize/v2"
)

const hojaSubdiario = "Subdiario"

// ExportarSubdiario renders the unified monthly table as a spreadsheet:
// one row per day in presentation order, one column per merged field, and
// a totals row. Monetary cells carry the truncated values the dashboard
// shows.
func ExportarSubdiario(u Unificado) (*excelize.File, error) {
	f := excelize.NewFile()
	f.SetSheetName("Sheet1", hojaSubdiario)

	columnas := columnasUnificadas(u)

	if err := setCell(f, 1, 1, "Fecha"); err != nil {
		return nil, err
	}
	for i, campo := range columnas {
		if err := setCell(f, i+2, 1, campo); err != nil {
			return nil, err
		}
	}

	fila := 2
	for _, clave := range u.Orden {
		registro := u.Filas[clave]
		if err := setCell(f, 1, fila, registro.Clave); err != nil {
			return nil, err
		}
		for i, campo := range columnas {
			if valor, ok := registro.Campos[campo]; ok {
				if err := setCell(f, i+2, fila, Truncar2(valor)); err != nil {
					return nil, err
				}
			}
		}
		fila++
	}

	if err := setCell(f, 1, fila, "TOTAL"); err != nil {
		return nil, err
	}
	for i, campo := range columnas {
		if err := setCell(f, i+2, fila, Truncar2(u.Totales[campo])); err != nil {
			return nil, err
		}
	}

	return f, nil
}

// columnasUnificadas returns the merged field names in a stable order.
func columnasUnificadas(u Unificado) []string {
	columnas := make([]string, 0, len(u.Totales))
	for campo := range u.Totales {
		columnas = append(columnas, campo)
	}
	sort.Strings(columnas)
	return columnas
}

func setCell(f *excelize.File, col, fila int, valor any) error {
	celda, err := excelize.CoordinatesToCellName(col, fila)
	if err != nil {
		return fmt.Errorf("failed to resolve cell: %w", err)
	}
	return f.SetCellValue(hojaSubdiario, celda, valor)
}
