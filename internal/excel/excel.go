package excel

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/courtmix/courtmix/internal/schedule"
)

// Generate creates an Excel workbook with the master round-by-court grid and
// one sheet per player.
func Generate(s *schedule.GameSchedule, roster []schedule.Player) (*excelize.File, error) {
	f := excelize.NewFile()
	f.SetDefaultFont("Arial")

	names := make(map[string]string, len(roster))
	for _, p := range roster {
		names[p.ID] = p.Name
	}

	if err := writeMasterSheet(f, s, names); err != nil {
		return nil, fmt.Errorf("writing master sheet: %w", err)
	}
	if err := writePlayerSheets(f, s, roster, names); err != nil {
		return nil, fmt.Errorf("writing player sheets: %w", err)
	}

	f.DeleteSheet("Sheet1")
	return f, nil
}

// courtCount returns the number of court columns the grid needs.
func courtCount(s *schedule.GameSchedule) int {
	max := 0
	for _, games := range s.Rounds {
		for _, g := range games {
			if g.Court > max {
				max = g.Court
			}
		}
	}
	return max
}

func teamCell(g schedule.Game, names map[string]string) string {
	name := func(id string) string {
		if n, ok := names[id]; ok {
			return n
		}
		return id
	}
	return fmt.Sprintf("%s & %s vs %s & %s",
		name(g.TeamA[0]), name(g.TeamA[1]), name(g.TeamB[0]), name(g.TeamB[1]))
}

func writeMasterSheet(f *excelize.File, s *schedule.GameSchedule, names map[string]string) error {
	sheet := "Schedule"
	f.NewSheet(sheet)

	courts := courtCount(s)
	headers := []string{"Round"}
	for c := 1; c <= courts; c++ {
		headers = append(headers, fmt.Sprintf("Court %d", c))
	}
	headers = append(headers, "Resting")
	for i, h := range headers {
		f.SetCellValue(sheet, cellRef(i+1, 1), h)
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF", Size: 16, Family: "Arial"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#4472C4"}},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if headerStyle != 0 {
		for i := range headers {
			f.SetCellStyle(sheet, cellRef(i+1, 1), cellRef(i+1, 1), headerStyle)
		}
	}

	cellStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Size: 16, Family: "Arial"},
	})
	gameStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Size: 16, Family: "Arial"},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})

	for r, games := range s.Rounds {
		row := r + 2
		f.SetCellValue(sheet, cellRef(1, row), r+1)

		byCourt := make(map[int]schedule.Game, len(games))
		for _, g := range games {
			byCourt[g.Court] = g
		}
		for c := 1; c <= courts; c++ {
			if g, ok := byCourt[c]; ok {
				f.SetCellValue(sheet, cellRef(c+1, row), teamCell(g, names))
			}
		}

		var resting []string
		if r < len(s.Resting) {
			for _, id := range s.Resting[r] {
				if n, ok := names[id]; ok {
					resting = append(resting, n)
				} else {
					resting = append(resting, id)
				}
			}
		}
		f.SetCellValue(sheet, cellRef(courts+2, row), strings.Join(resting, ", "))

		if cellStyle != 0 {
			f.SetCellStyle(sheet, cellRef(1, row), cellRef(1, row), cellStyle)
			f.SetCellStyle(sheet, cellRef(courts+2, row), cellRef(courts+2, row), cellStyle)
			for c := 1; c <= courts; c++ {
				f.SetCellStyle(sheet, cellRef(c+1, row), cellRef(c+1, row), gameStyle)
			}
		}
	}

	f.SetColWidth(sheet, "A", "A", 10)
	for c := 1; c <= courts; c++ {
		col := colLetter(c + 1)
		f.SetColWidth(sheet, col, col, 40)
	}
	restCol := colLetter(courts + 2)
	f.SetColWidth(sheet, restCol, restCol, 34)

	return nil
}

func writePlayerSheets(f *excelize.File, s *schedule.GameSchedule, roster []schedule.Player, names map[string]string) error {
	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF", Size: 16, Family: "Arial"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#4472C4"}},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	cellStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Size: 16, Family: "Arial"},
	})

	name := func(id string) string {
		if n, ok := names[id]; ok {
			return n
		}
		return id
	}

	for _, p := range roster {
		sheet := p.Name
		f.NewSheet(sheet)

		headers := []string{"Round", "Court", "Partner", "Opponents"}
		for i, h := range headers {
			f.SetCellValue(sheet, cellRef(i+1, 1), h)
		}
		if headerStyle != 0 {
			for i := range headers {
				f.SetCellStyle(sheet, cellRef(i+1, 1), cellRef(i+1, 1), headerStyle)
			}
		}

		for r, games := range s.Rounds {
			row := r + 2
			f.SetCellValue(sheet, cellRef(1, row), r+1)

			var played bool
			for _, g := range games {
				var partner string
				switch p.ID {
				case g.TeamA[0]:
					partner = g.TeamA[1]
				case g.TeamA[1]:
					partner = g.TeamA[0]
				case g.TeamB[0]:
					partner = g.TeamB[1]
				case g.TeamB[1]:
					partner = g.TeamB[0]
				default:
					continue
				}
				opps := g.TeamB
				if p.ID == g.TeamB[0] || p.ID == g.TeamB[1] {
					opps = g.TeamA
				}
				f.SetCellValue(sheet, cellRef(2, row), g.Court)
				f.SetCellValue(sheet, cellRef(3, row), name(partner))
				f.SetCellValue(sheet, cellRef(4, row), fmt.Sprintf("%s & %s", name(opps[0]), name(opps[1])))
				played = true
				break
			}
			if !played {
				f.SetCellValue(sheet, cellRef(2, row), "Rest")
			}

			if cellStyle != 0 {
				for col := 1; col <= len(headers); col++ {
					f.SetCellStyle(sheet, cellRef(col, row), cellRef(col, row), cellStyle)
				}
			}
		}

		widths := map[string]float64{"A": 10, "B": 10, "C": 20, "D": 34}
		for col, w := range widths {
			f.SetColWidth(sheet, col, col, w)
		}
	}

	return nil
}

func cellRef(col, row int) string {
	return fmt.Sprintf("%s%d", colLetter(col), row)
}

func colLetter(col int) string {
	result := ""
	for col > 0 {
		col--
		result = string(rune('A'+col%26)) + result
		col /= 26
	}
	return result
}
