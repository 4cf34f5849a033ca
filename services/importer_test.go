package services

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smartschool/logger"
	"smartschool/school"
	"smartschool/storage"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "alumnos.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func newTestImporter() (*StudentImporter, *school.Engine) {
	engine := school.NewEngine(storage.NewMemoryStore(), logger.GetInstance())
	return NewStudentImporter(engine, logger.GetInstance()), engine
}

const validCSV = `name,grade,fatherName,motherName,dni,birthDate,originSchool
Rosa Quispe,3ro Grado,Pedro Quispe,Luisa Mamani,70111222,2015-02-10,I.E. San Juan
Pablo Soto,3ro Grado,,,,,
`

func TestImportFile(t *testing.T) {
	imp, engine := newTestImporter()

	count, err := imp.ImportFile(context.Background(), writeCSV(t, validCSV))

	require.NoError(t, err)
	assert.Equal(t, 2, count)

	students := engine.Students()
	require.Len(t, students, 2)
	assert.Equal(t, "Rosa Quispe", students[0].FullName)
	assert.Equal(t, "Pedro Quispe", students[0].FatherName)
	assert.Equal(t, school.AttendanceNone, students[0].Attendance)
	assert.Equal(t, "Pablo Soto", students[1].FullName)
}

func TestImportFileBadStructure(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"wrong headers", "nombre,aula\nRosa,3ro\n"},
		{"empty file", ""},
		{"headers only", "name,grade,fatherName,motherName,dni,birthDate,originSchool\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			imp, engine := newTestImporter()

			count, err := imp.ImportFile(context.Background(), writeCSV(t, tt.content))

			assert.Equal(t, 0, count)
			var vErr *ValidationError
			assert.ErrorAs(t, err, &vErr)
			assert.Empty(t, engine.Students())
		})
	}
}

func TestImportFileStopsAtBadRow(t *testing.T) {
	content := `name,grade,fatherName,motherName,dni,birthDate,originSchool
Rosa Quispe,3ro Grado,,,,,
Sin Grado,,,,,,
Pablo Soto,3ro Grado,,,,,
`
	imp, engine := newTestImporter()

	count, err := imp.ImportFile(context.Background(), writeCSV(t, content))

	assert.Error(t, err)
	assert.Equal(t, 1, count, "rows before the bad one stay imported")
	assert.Len(t, engine.Students(), 1)
}

func TestImportFileMissing(t *testing.T) {
	imp, _ := newTestImporter()

	_, err := imp.ImportFile(context.Background(), filepath.Join(t.TempDir(), "no-existe.csv"))

	assert.Error(t, err)
}
