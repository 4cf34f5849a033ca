package school

// Built-in dataset used when the store has no snapshot for a collection,
// i.e. on a first start or after the store was wiped.

func seedAccounts() []Account {
	return []Account{
		{ID: "1", Username: "Joseadmin", Password: "123456789", DisplayName: "Jose Admin", Role: RoleAdmin},
		{ID: "2", Username: "TutorJuan", Password: "tutor123", DisplayName: "Juan Perez", Role: RoleTeacher, TeacherKind: KindTutor},
		{ID: "3", Username: "ProfPedro", Password: "curso123", DisplayName: "Pedro Castillo", Role: RoleTeacher, TeacherKind: KindCourse},
		{ID: "4", Username: "Mario", Password: "1234", DisplayName: "Mario Gomez", Role: RoleTeacher, TeacherKind: KindCourse},
	}
}

func seedStudents() []Student {
	return []Student{
		{
			ID:           "1",
			FullName:     "Carlos Alvarez",
			Grade:        "4to y 5to Grado",
			Attendance:   AttendanceNone,
			FatherName:   "Roberto Alvarez",
			MotherName:   "Elena Gutierrez",
			DNI:          "70451234",
			BirthDate:    "2014-05-12",
			OriginSchool: "I.E. San Juan",
		},
		{
			ID:           "2",
			FullName:     "Maria Lopez",
			Grade:        "4to y 5to Grado",
			Attendance:   AttendanceNone,
			FatherName:   "Juan Lopez",
			MotherName:   "Ana Maria Diaz",
			DNI:          "71239876",
			BirthDate:    "2014-08-22",
			OriginSchool: "I.E. Los Pinos",
		},
		{ID: "3", FullName: "Juan Perez", Grade: "4to y 5to Grado", Attendance: AttendanceNone},
		{ID: "4", FullName: "Luis Gomez", Grade: "1ro y 2do Grado", Attendance: AttendanceNone},
	}
}

func seedTeachers() []Teacher {
	return []Teacher{
		{ID: "1", DisplayName: "Mario Gomez", Specialty: "Matemáticas", Email: "mario@smartschool.edu.pe", AssignedGrade: "4to y 5to Grado", Kind: KindCourse},
		{ID: "2", DisplayName: "Ana Torres", Specialty: "Ciencias", Email: "ana@smartschool.edu.pe", AssignedGrade: "1ro y 2do Grado", Kind: KindCourse},
		{ID: "3", DisplayName: "Juan Perez", Specialty: "Tutoría", Email: "juan@smartschool.edu.pe", AssignedGrade: "3ro Grado", Kind: KindTutor},
		{ID: "4", DisplayName: "Pedro Castillo", Specialty: "Historia", Email: "pedro@smartschool.edu.pe", AssignedGrade: "6to Grado", Kind: KindCourse},
	}
}

func seedSchedules() []ScheduleItem {
	return []ScheduleItem{
		{ID: "1", Day: "Lunes", StartTime: "08:00", EndTime: "08:45", Subject: "Matemáticas", Grade: "4to y 5to Grado", TeacherName: "Mario Gomez"},
		{ID: "2", Day: "Lunes", StartTime: "08:45", EndTime: "09:30", Subject: "Comunicación", Grade: "4to y 5to Grado", TeacherName: "Mario Gomez"},
		{ID: "3", Day: "Martes", StartTime: "08:00", EndTime: "08:45", Subject: "Ciencias", Grade: "4to y 5to Grado", TeacherName: "Ana Torres"},
	}
}

func seedTeacherAttendance() []TeacherAttendance {
	return []TeacherAttendance{
		{ID: "1", TeacherName: "Mario Gomez", Date: Today(), EntryTime: "07:45", ExitTime: "14:00", Status: StatusOnTime},
	}
}

func seedMessages() []ChatMessage {
	return []ChatMessage{
		{ID: "1", Sender: "Jose Admin", Role: RoleAdmin, Content: "Bienvenidos al sistema SmartSchool 2025.", Timestamp: "08:00 AM"},
		{ID: "2", Sender: "Mario Gomez", Role: RoleTeacher, Content: "Gracias, listo para iniciar las clases.", Timestamp: "08:05 AM"},
	}
}
