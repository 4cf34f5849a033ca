package services

import (
	"encoding/csv"
	"fmt"
	"os"
)

// studentHeaders is the required CSV header row for a bulk student import,
// matching the enrollment form fields.
var studentHeaders = []string{"name", "grade", "fatherName", "motherName", "dni", "birthDate", "originSchool"}

type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// ValidateStudentsCSV checks that the file parses as CSV and carries the
// expected header row plus at least one data row. Errors are user-facing.
func ValidateStudentsCSV(filePath string) error {
	file, err := os.Open(filePath)
	if err != nil {
		return err
	}
	defer file.Close()

	reader := csv.NewReader(file)
	records, err := reader.ReadAll()
	if err != nil {
		return &ValidationError{Message: "No se pudo leer el archivo CSV. Verifica que tenga el formato correcto."}
	}

	if len(records) == 0 {
		return &ValidationError{Message: "El archivo está vacío. Envía un archivo con datos."}
	}

	if len(records) == 1 {
		return &ValidationError{Message: "El archivo solo contiene encabezados. Agrega los datos de los alumnos."}
	}

	if !validateHeaders(records[0], studentHeaders) {
		return &ValidationError{
			Message: fmt.Sprintf("Estructura incorrecta del archivo de alumnos.\n\nColumnas esperadas:\n%v\n\nColumnas recibidas:\n%v\n\nEnvía el archivo con la estructura correcta.",
				studentHeaders, records[0]),
		}
	}

	return nil
}

func validateHeaders(actual, expected []string) bool {
	if len(actual) != len(expected) {
		return false
	}

	for i, exp := range expected {
		if actual[i] != exp {
			return false
		}
	}

	return true
}
