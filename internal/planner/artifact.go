package planner

import (
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"
)

const artifactSheet = "Program"

// WriteArtifact renders the plan as an xlsx workbook with one row per
// prescribed exercise. Returns the path of the written file.
func WriteArtifact(plan Plan, dir, artifactID string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(artifactSheet)
	if err != nil {
		return "", err
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return "", err
	}

	widths := []struct {
		col   string
		width float64
	}{
		{"A", 20}, {"B", 32}, {"C", 9}, {"D", 12}, {"E", 12}, {"F", 40},
	}
	for _, w := range widths {
		if err := f.SetColWidth(artifactSheet, w.col, w.col, w.width); err != nil {
			return "", err
		}
	}

	header := []any{"Day", "Exercise", "Sets", "Reps", "Rest (sec)", "Notes"}
	if err := f.SetSheetRow(artifactSheet, "A1", &header); err != nil {
		return "", err
	}

	boldStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return "", err
	}
	if err := f.SetCellStyle(artifactSheet, "A1", "F1", boldStyle); err != nil {
		return "", err
	}

	row := 2
	for _, day := range plan.Days {
		for _, exercise := range day.Exercises {
			cell, err := excelize.CoordinatesToCellName(1, row)
			if err != nil {
				return "", err
			}
			values := []any{day.Day, exercise.Name, exercise.Sets, exercise.Reps, exercise.Rest, exercise.Notes}
			if err := f.SetSheetRow(artifactSheet, cell, &values); err != nil {
				return "", err
			}
			row++
		}
	}

	path := filepath.Join(dir, artifactID+".xlsx")
	if err := f.SaveAs(path); err != nil {
		return "", err
	}
	return path, nil
}
