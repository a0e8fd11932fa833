// Package workbook lê a primeira planilha de arquivos .xlsx/.xls e devolve as
// linhas como mapas coluna -> valor, usando a primeira linha como cabeçalho.
package workbook

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/mlubs/IM-Intel/internal/domain"

	"github.com/shakinm/xlsReader/xls"
	"github.com/xuri/excelize/v2"
)

var (
	// ErrUnsupportedFormat indica extensão diferente de .xlsx/.xls ou conteúdo ilegível.
	ErrUnsupportedFormat = errors.New("formato de arquivo inválido. Use .xlsx ou .xls")
	// ErrEmptyWorkbook indica planilha sem linhas de dados.
	ErrEmptyWorkbook = errors.New("arquivo vazio ou sem dados válidos")
)

// Sheet é o conteúdo da primeira planilha já convertido em linhas.
type Sheet struct {
	Name    string
	Headers []string
	Rows    []domain.RawRow
}

// cell é o valor de uma célula antes de virar RawRow. nil significa célula vazia.
type cell = any

// CheckExtension aceita apenas .xlsx e .xls, sem diferenciar maiúsculas.
func CheckExtension(filename string) error {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext != ".xlsx" && ext != ".xls" {
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	return nil
}

// Read lê a primeira planilha do arquivo. Tenta .xlsx (excelize) e, se falhar, .xls.
func Read(file io.Reader) (*Sheet, error) {
	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("erro ao ler arquivo: %w", err)
	}

	name, grid, errX := readXLSX(bytes.NewReader(data))
	if errX != nil {
		var errL error
		name, grid, errL = readXLS(bytes.NewReader(data))
		if errL != nil {
			return nil, fmt.Errorf("%w: xlsx: %v; xls: %v", ErrUnsupportedFormat, errX, errL)
		}
	}

	sheet := toSheet(name, grid)
	if len(sheet.Rows) == 0 {
		return nil, ErrEmptyWorkbook
	}
	return sheet, nil
}

// readXLSX usa os valores crus das células para que datas cheguem como serial numérico.
func readXLSX(r io.Reader) (string, [][]cell, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return "", nil, err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return "", nil, fmt.Errorf("o arquivo .xlsx não contém planilhas")
	}
	name := sheets[0]

	rows, err := f.GetRows(name, excelize.Options{RawCellValue: true})
	if err != nil {
		return "", nil, fmt.Errorf("erro ao ler planilha %q: %w", name, err)
	}

	grid := make([][]cell, 0, len(rows))
	for r, row := range rows {
		out := make([]cell, len(row))
		for c, raw := range row {
			if raw == "" {
				continue
			}
			axis, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				return "", nil, err
			}
			typ, err := f.GetCellType(name, axis)
			if err != nil {
				return "", nil, err
			}
			out[c] = typedXLSXValue(typ, raw)
		}
		grid = append(grid, out)
	}
	return name, grid, nil
}

func typedXLSXValue(typ excelize.CellType, raw string) cell {
	switch typ {
	case excelize.CellTypeUnset, excelize.CellTypeNumber:
		if f, err := strconv.ParseFloat(raw, 64); err == nil {
			return f
		}
	case excelize.CellTypeBool:
		return raw == "1" || strings.EqualFold(raw, "true")
	}
	return raw
}

func readXLS(r io.ReadSeeker) (string, [][]cell, error) {
	workbook, err := xls.OpenReader(r)
	if err != nil {
		return "", nil, err
	}
	if len(workbook.GetSheets()) == 0 {
		return "", nil, fmt.Errorf("o arquivo .xls não contém planilhas")
	}
	sheet, err := workbook.GetSheet(0)
	if err != nil {
		return "", nil, fmt.Errorf("erro ao obter planilha do arquivo .xls: %w", err)
	}

	var grid [][]cell
	for _, row := range sheet.GetRows() {
		var out []cell
		for _, c := range row.GetCols() {
			typ := c.GetType()
			switch {
			case strings.Contains(typ, "Blank"):
				out = append(out, nil)
			case strings.Contains(typ, "Number"), strings.Contains(typ, "Rk"):
				out = append(out, c.GetFloat64())
			default:
				if s := c.GetString(); s != "" {
					out = append(out, s)
				} else {
					out = append(out, nil)
				}
			}
		}
		grid = append(grid, out)
	}
	return sheet.GetName(), grid, nil
}

// toSheet monta as linhas a partir da grade. Cabeçalhos vazios viram __EMPTY,
// __EMPTY_1, ...; repetidos recebem sufixo _1, _2, pulando nomes já usados. Células vazias não entram na
// linha e linhas totalmente vazias são ignoradas.
func toSheet(name string, grid [][]cell) *Sheet {
	sheet := &Sheet{Name: name}
	if len(grid) == 0 {
		return sheet
	}

	width := 0
	for _, row := range grid {
		if len(row) > width {
			width = len(row)
		}
	}

	seen := make(map[string]int, width)
	headers := make([]string, width)
	for i := 0; i < width; i++ {
		var h string
		if i < len(grid[0]) && grid[0][i] != nil {
			h = strings.TrimSpace(headerText(grid[0][i]))
		}
		if h == "" {
			h = "__EMPTY"
		}
		if n := seen[h]; n == 0 {
			seen[h] = 1
		} else {
			base := h
			for {
				h = fmt.Sprintf("%s_%d", base, n)
				n++
				if seen[h] == 0 {
					break
				}
			}
			seen[base] = n
			seen[h] = 1
		}
		headers[i] = h
	}
	sheet.Headers = headers

	for _, row := range grid[1:] {
		raw := make(domain.RawRow, len(row))
		for i, v := range row {
			if v == nil {
				continue
			}
			if s, ok := v.(string); ok && strings.TrimSpace(s) == "" {
				continue
			}
			raw[headers[i]] = v
		}
		if len(raw) == 0 {
			continue
		}
		sheet.Rows = append(sheet.Rows, raw)
	}
	return sheet
}

func headerText(v cell) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return fmt.Sprint(t)
	}
}
