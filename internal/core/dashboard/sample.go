package dashboard

import "github.com/mlubs/IM-Intel/internal/domain"

var sampleHeaders = []string{"Dólar", "Euro", "Soja", "Milho", "Boi Gordo"}

// sampleRows são cotações semanais de exemplo, no mesmo formato da planilha
// database, exibidas até que um arquivo real seja carregado.
func sampleRows(dateColumn string) []domain.RawRow {
	raw := []struct {
		date, dolar, euro, soja, milho, boi string
	}{
		{"06/01/2025", "6,1120", "6,3385", "127,40", "71,85", "318,50"},
		{"13/01/2025", "6,0984", "6,2790", "129,15", "72,40", "320,10"},
		{"20/01/2025", "6,0215", "6,2702", "130,80", "73,10", "321,75"},
		{"27/01/2025", "5,9060", "6,1632", "132,05", "74,25", "319,90"},
		{"03/02/2025", "5,8271", "6,0302", "131,60", "75,05", "322,40"},
		{"10/02/2025", "5,7700", "5,9512", "133,25", "76,30", "323,15"},
		{"17/02/2025", "5,7125", "5,9801", "134,90", "77,10", "324,80"},
		{"24/02/2025", "5,8640", "6,1257", "133,70", "76,55", "326,05"},
	}

	rows := make([]domain.RawRow, 0, len(raw))
	for _, r := range raw {
		rows = append(rows, domain.RawRow{
			dateColumn:  r.date,
			"Dólar":     r.dolar,
			"Euro":      r.euro,
			"Soja":      r.soja,
			"Milho":     r.milho,
			"Boi Gordo": r.boi,
		})
	}
	return rows
}
