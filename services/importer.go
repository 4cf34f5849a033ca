package services

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"

	"smartschool/logger"
	"smartschool/school"
)

// StudentImporter bulk-enrolls students from an uploaded CSV file. Rows go
// through the same validated create path as the dashboard form.
type StudentImporter struct {
	engine *school.Engine
	logger *logger.Logger
}

func NewStudentImporter(engine *school.Engine, log *logger.Logger) *StudentImporter {
	return &StudentImporter{engine: engine, logger: log}
}

// ImportFile validates the file structure and enrolls every data row,
// returning the number of students created. The import stops at the first
// bad row; rows already imported stay.
func (imp *StudentImporter) ImportFile(ctx context.Context, filePath string) (int, error) {
	if err := ValidateStudentsCSV(filePath); err != nil {
		return 0, err
	}

	records, err := readCSV(filePath)
	if err != nil {
		return 0, err
	}

	count := 0
	for i := 1; i < len(records); i++ {
		record := records[i]

		in := school.NewStudent{
			FullName:     record[0],
			Grade:        record[1],
			FatherName:   record[2],
			MotherName:   record[3],
			DNI:          record[4],
			BirthDate:    record[5],
			OriginSchool: record[6],
		}

		if _, err := imp.engine.AddStudent(ctx, in); err != nil {
			return count, &ValidationError{
				Message: fmt.Sprintf("Fila %d inválida: se requieren nombre y grado.", i+1),
			}
		}
		count++
	}

	imp.logger.Infof("imported %d students from %s", count, filePath)
	return count, nil
}

func readCSV(filePath string) ([][]string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	reader := csv.NewReader(file)
	return reader.ReadAll()
}
