package assistant

// canned outcomes for button action codes. ResolveAction is a plain lookup;
// unknown codes fall through to text classification with at most one
// indirection back into this table, and no canned outcome chains further, so
// resolution always terminates.

func ResolveAction(action string, ctx Context) Outcome {
	switch action {

	// Admin management sections.
	case ActionAdminStudents:
		return Outcome{
			Reply:    "Abriendo Gestión de Estudiantes. INSTRUCCIÓN: Usa el formulario izquierdo para matricular nuevos alumnos y asignar sus padres. Usa la tabla derecha para buscar o eliminar.",
			Navigate: NavManageStudents,
			Choices:  []Choice{{Label: "Entendido", Action: ActionCloseHelp}},
		}
	case ActionAdminTeachers:
		return Outcome{
			Reply:    "Mostrando Gestión de Docentes. INSTRUCCIÓN: Registra profesores aquí. IMPORTANTE: Elige 'Tutor' si el docente tendrá un aula a cargo para marcar asistencia.",
			Navigate: NavManageTeachers,
			Choices:  []Choice{{Label: "Entendido", Action: ActionCloseHelp}},
		}
	case ActionAdminAccounts:
		return Outcome{
			Reply:    "Accediendo a Gestión de Cuentas. INSTRUCCIÓN: Aquí creas los Usuarios y Contraseñas para que el personal pueda ingresar al sistema.",
			Navigate: NavManageAccounts,
			Choices:  []Choice{{Label: "Entendido", Action: ActionCloseHelp}},
		}
	case ActionAdminSchedules:
		return Outcome{
			Reply:    "Sección Control de Horarios. INSTRUCCIÓN: Define curso, día, hora y docente. Esto actualizará automáticamente la vista de horarios de los profesores.",
			Navigate: NavScheduleControl,
			Choices:  []Choice{{Label: "Entendido", Action: ActionCloseHelp}},
		}
	case ActionAdminAttend:
		return Outcome{
			Reply:    "Panel de Control de Asistencia Docente. INSTRUCCIÓN: Registra manualmente la hora de entrada/salida de los profesores y marca si llegaron tarde o faltaron.",
			Navigate: NavAttendanceControl,
			Choices:  []Choice{{Label: "Entendido", Action: ActionCloseHelp}},
		}

	// Teacher tool sections.
	case ActionTeacherSchedules:
		return Outcome{
			Reply:    "Mostrando tus Horarios. INSTRUCCIÓN: Aquí visualizas tu carga académica semanal por aula. Usa el filtro superior para cambiar de grado.",
			Navigate: NavViewSchedules,
			Choices:  []Choice{{Label: "Gracias", Action: ActionCloseHelp}},
		}
	case ActionTeacherMyAttendance:
		return Outcome{
			Reply:    "Sección 'Mi Asistencia'. INSTRUCCIÓN: Aquí puedes verificar tus registros de entrada y salida ingresados por la administración.",
			Navigate: NavMyAttendance,
			Choices:  []Choice{{Label: "Entendido", Action: ActionCloseHelp}},
		}
	case ActionTeacherStudentAttend:
		return Outcome{
			Reply:    "Abriendo Asistencia de Alumnos. INSTRUCCIÓN: Si eres Tutor, usa los botones (Verde=Presente, Amarillo=Tarde, Rojo=Falta) para registrar. Si eres docente de curso, solo puedes ver la lista.",
			Navigate: NavStudentAttendance,
			Choices:  []Choice{{Label: "Entendido", Action: ActionCloseHelp}},
		}
	case ActionTeacherProfiles:
		return Outcome{
			Reply:    "Cargando Perfiles Escolares. INSTRUCCIÓN: Usa el buscador para encontrar un alumno y ver su ficha biográfica (padres, DNI, etc).",
			Navigate: NavSchoolProfiles,
			Choices:  []Choice{{Label: "Entendido", Action: ActionCloseHelp}},
		}
	case ActionTeacherMessages:
		return Outcome{
			Reply:    "Abriendo Chat Global. INSTRUCCIÓN: Usa este espacio para comunicarte con la dirección y otros colegas en tiempo real.",
			Navigate: NavMessages,
			Choices:  []Choice{{Label: "Entendido", Action: ActionCloseHelp}},
		}
	case ActionTeacherProfile:
		return Outcome{
			Reply:    "Tu Perfil Personal. INSTRUCCIÓN: Aquí puedes actualizar tu nombre mostrado, cambiar tu contraseña y foto de perfil.",
			Navigate: NavProfile,
			Choices:  []Choice{{Label: "Entendido", Action: ActionCloseHelp}},
		}

	case ActionCloseHelp:
		return Outcome{Reply: "Perfecto. Si necesitas navegar a otra sección, solo dímelo."}
	case ActionDashboardHome:
		return Outcome{Reply: "Volviendo al inicio del panel.", Navigate: NavDashboard}

	// Public page actions.
	case ActionLoginInfo:
		return Outcome{
			Reply:   "He desplazado la pantalla hacia arriba. Haz clic en el botón 'Docentes' (icono de usuario) para ingresar.",
			Choices: []Choice{{Label: "Abrir Ahora", Action: ActionOpenLogin}},
		}
	case ActionOpenLogin:
		return Outcome{Reply: "Abriendo ventana de inicio de sesión...", OpenLogin: true}
	case ActionAbout:
		return Outcome{
			Reply:    "Aquí puede conocer nuestra historia, valores y compromiso educativo.",
			Navigate: NavAbout,
			Choices: []Choice{
				{Label: "Ver Servicios", Action: ActionServices},
				{Label: "Contactar", Action: ActionContact},
				{Label: "Volver al Inicio", Action: ActionHome},
			},
		}
	case ActionLocation:
		return Outcome{
			Reply:    "Aquí tienes nuestra ubicación en el pie de página.",
			Navigate: NavContact,
			Choices: []Choice{
				{Label: "Contactar", Action: ActionContact},
				{Label: "Horarios", Action: ActionHours},
				{Label: "Volver al Inicio", Action: ActionHome},
			},
		}
	case ActionServices:
		return Outcome{
			Reply:    "Explora nuestros servicios educativos e infraestructura aquí.",
			Navigate: NavServices,
			Choices: []Choice{
				{Label: "Ubicación", Action: ActionLocation},
				{Label: "Sobre Nosotros", Action: ActionAbout},
				{Label: "Contactar", Action: ActionContact},
			},
		}
	case ActionContact:
		return Outcome{
			Reply:    "Aquí tienes nuestros canales de atención.",
			Navigate: NavContact,
			Choices: []Choice{
				{Label: "Ubicación", Action: ActionLocation},
				{Label: "Horarios", Action: ActionHours},
				{Label: "Volver al Inicio", Action: ActionHome},
			},
		}
	case ActionRecoverPass:
		return Outcome{
			Reply: "Por favor, acércate a la dirección o secretaría para restablecer tu contraseña de forma segura.",
			Choices: []Choice{
				{Label: "Ver Contacto", Action: ActionContact},
				{Label: "Volver al Inicio", Action: ActionHome},
			},
		}
	case ActionHours:
		return Outcome{
			Reply: "Los horarios generales son de 8:00 AM a 2:00 PM.",
			Choices: []Choice{
				{Label: "Soy Docente", Action: ActionIAmTeacher},
				{Label: "Contactar", Action: ActionContact},
			},
		}
	case ActionHome:
		return Outcome{
			Reply:    "¿En qué más puedo ayudarte?",
			Navigate: NavHome,
			Choices: []Choice{
				{Label: "Soy Docente", Action: ActionIAmTeacher},
				{Label: "Soy Padre", Action: ActionIAmParent},
				{Label: "Soy Alumno", Action: ActionIAmStudent},
			},
		}
	}

	// Not a canned code: classify it as text. If that lands on a section
	// with a canned equivalent, hand out the canned outcome instead, so a
	// chained resolution stops after one hop.
	out := Resolve(action, ctx)
	if canned := actionForNav(out.Navigate); canned != "" && canned != action {
		return ResolveAction(canned, ctx)
	}
	return out
}

func actionForNav(nav NavTarget) string {
	switch nav {
	case NavViewSchedules:
		return ActionTeacherSchedules
	case NavMyAttendance:
		return ActionTeacherMyAttendance
	case NavStudentAttendance:
		return ActionTeacherStudentAttend
	case NavSchoolProfiles:
		return ActionTeacherProfiles
	case NavMessages:
		return ActionTeacherMessages
	case NavProfile:
		return ActionTeacherProfile
	case NavManageStudents:
		return ActionAdminStudents
	case NavManageTeachers:
		return ActionAdminTeachers
	case NavManageAccounts:
		return ActionAdminAccounts
	case NavScheduleControl:
		return ActionAdminSchedules
	case NavAttendanceControl:
		return ActionAdminAttend
	default:
		return ""
	}
}
