package assistant

import (
	"fmt"
	"strings"

	"smartschool/school"
)

// rule is one guarded entry of a decision list: keywords (pre-normalized)
// matched by substring containment, and the outcome builder to run on a hit.
// Tables are evaluated top to bottom and the first hit wins, so overlapping
// vocabularies ("horario" in a schedule request vs. a greeting) resolve by
// position, never by specificity.
type rule struct {
	keywords []string
	respond  func(Context) Outcome
}

func (r rule) matches(input string) bool {
	for _, kw := range r.keywords {
		if strings.Contains(input, kw) {
			return true
		}
	}
	return false
}

// Resolve classifies one free-text utterance. Input is normalized first; an
// utterance that matches nothing lands on the table's fallback, never an
// error.
func Resolve(input string, ctx Context) Outcome {
	normalized := Normalize(input)

	table := publicRules
	fallback := publicFallback
	if ctx.Authenticated {
		table = dashboardRules
		fallback = dashboardFallback
	}

	for _, r := range table {
		if r.matches(normalized) {
			return r.respond(ctx)
		}
	}
	return fallback(ctx)
}

// ---- authenticated (dashboard) table ----

var dashboardRules = []rule{
	{
		keywords: []string{"horario", "clase", "curso", "materia"},
		respond: func(Context) Outcome {
			return Outcome{
				Reply:    "Navegando a Horarios. Aquí verás tu carga académica.",
				Navigate: NavViewSchedules,
			}
		},
	},
	{
		// The teacher's own working-day records, checked before the generic
		// attendance vocabulary so "mi asistencia" does not open the student
		// list.
		keywords: []string{"mi asistencia", "marcar entrada", "marcar salida"},
		respond: func(Context) Outcome {
			return Outcome{
				Reply:    "Yendo a 'Mi Asistencia'. Aquí registras tus horas laborales.",
				Navigate: NavMyAttendance,
			}
		},
	},
	{
		keywords: []string{"asistencia", "falta", "tardanza", "lista"},
		respond: func(Context) Outcome {
			return Outcome{
				Reply:    "Abriendo Asistencia de Alumnos. Recuerda guardar los cambios.",
				Navigate: NavStudentAttendance,
			}
		},
	},
	{
		keywords: []string{"mensaje", "chat", "hablar", "conversar"},
		respond: func(Context) Outcome {
			return Outcome{
				Reply:    "Abriendo el Chat Global.",
				Navigate: NavMessages,
			}
		},
	},
	{
		// Student biography lookups, before the generic profile vocabulary.
		keywords: []string{"perfil escolar", "biografia", "datos alumno"},
		respond: func(Context) Outcome {
			return Outcome{
				Reply:    "Abriendo Perfiles Escolares. Aquí puedes ver la información de los estudiantes.",
				Navigate: NavSchoolProfiles,
			}
		},
	},
	{
		keywords: []string{"perfil", "clave", "foto", "usuario", "mi cuenta"},
		respond: func(Context) Outcome {
			return Outcome{
				Reply:    "Vamos a tu Perfil Personal.",
				Navigate: NavProfile,
			}
		},
	},
	{
		keywords: []string{"ayuda", "como", "guia"},
		respond:  helpOutcome,
	},
	{
		keywords: []string{"hola", "buenos", "buenas"},
		respond: func(ctx Context) Outcome {
			out := Outcome{
				Reply: fmt.Sprintf("¡Hola de nuevo %s! ¿En qué te ayudo hoy?", ctx.DisplayName),
			}
			if ctx.isAdmin() {
				out.Choices = []Choice{
					{Label: "Gestión Estudiantes", Action: ActionAdminStudents},
					{Label: "Control Asistencia", Action: ActionAdminAttend},
				}
			} else {
				out.Choices = []Choice{
					{Label: "Ver Horarios", Action: ActionTeacherSchedules},
					{Label: "Asistencia Alumnos", Action: ActionTeacherStudentAttend},
				}
			}
			return out
		},
	},
}

func helpOutcome(ctx Context) Outcome {
	var sb strings.Builder
	sb.WriteString("Puedo llevarte a cualquier sección del panel:\n")
	if ctx.isAdmin() {
		sb.WriteString("• Gestión de Estudiantes, Docentes y Cuentas\n")
		sb.WriteString("• Control de Horarios y de Asistencia Docente\n")
	}
	sb.WriteString("• Horarios por aula\n")
	sb.WriteString("• Asistencia de Alumnos y Mi Asistencia\n")
	sb.WriteString("• Perfiles Escolares, Chat Global y tu Perfil Personal\n")
	sb.WriteString("Escribe a dónde quieres ir, o usa un atajo:")

	out := Outcome{Reply: sb.String()}
	if ctx.isAdmin() {
		out.Choices = []Choice{
			{Label: "Gestión Estudiantes", Action: ActionAdminStudents},
			{Label: "Control Asistencia", Action: ActionAdminAttend},
		}
	} else {
		out.Choices = []Choice{
			{Label: "Ver Horarios", Action: ActionTeacherSchedules},
			{Label: "Mensajes", Action: ActionTeacherMessages},
		}
	}
	return out
}

func dashboardFallback(ctx Context) Outcome {
	out := Outcome{Reply: "Entendido. ¿Deseas ir a alguna sección específica?"}
	if ctx.isAdmin() {
		out.Choices = []Choice{{Label: "Ir a Inicio", Action: ActionDashboardHome}}
	} else {
		out.Choices = []Choice{
			{Label: "Ver Horarios", Action: ActionTeacherSchedules},
			{Label: "Mis Mensajes", Action: ActionTeacherMessages},
		}
	}
	return out
}

// ---- public (landing page) table ----

var publicRules = []rule{
	{
		keywords: []string{"ir al login", "ir a login", "abrir login", "iniciar sesion", "quiero entrar"},
		respond: func(Context) Outcome {
			return Outcome{
				Reply:     "Entendido. Abriendo la ventana de inicio de sesión...",
				OpenLogin: true,
			}
		},
	},
	{
		keywords: []string{"login", "entrar", "ingresar", "acceder", "sistema", "intranet", "plataforma"},
		respond: func(Context) Outcome {
			return Outcome{
				Reply:   "El acceso al sistema SmartBoard está reservado para personal autorizado. ¿Deseas abrir el login?",
				Choices: []Choice{{Label: "Sí, abrir Login", Action: ActionOpenLogin}},
			}
		},
	},
	{
		keywords: []string{"hola", "buenos", "buenas", "saludos", "hey", "que tal"},
		respond: func(Context) Outcome {
			return Outcome{
				Reply: "¡Hola! ¿En qué puedo orientarte hoy? Puedo ayudarte con accesos, ubicación o información general.",
				Choices: []Choice{
					{Label: "Soy Docente", Action: ActionIAmTeacher},
					{Label: "Soy Padre", Action: ActionIAmParent},
					{Label: "Ubicación", Action: ActionLocation},
				},
			}
		},
	},
	{
		keywords: []string{"docente", "profesor", "maestro", "tutor", "miss", "profe"},
		respond: func(Context) Outcome {
			return Outcome{
				Reply: "¡Bienvenido Colega! Para acceder a tu panel de control, calificaciones y asistencia, debes iniciar sesión en el botón superior derecho 'Docentes'.",
				Choices: []Choice{
					{Label: "Ir a Login", Action: ActionLoginInfo},
					{Label: "Olvidé mi clave", Action: ActionRecoverPass},
				},
			}
		},
	},
	{
		keywords: []string{"alumno", "estudiante", "escolar", "mis notas", "mis clases", "mis tareas"},
		respond: func(Context) Outcome {
			return Outcome{
				Reply: "Hola alumno. Si buscas tus horarios o materiales, estos suelen ser compartidos por tu tutor en clase. Si necesitas acceso al sistema, solicita tus credenciales a secretaría.",
				Choices: []Choice{
					{Label: "Ver Horarios", Action: ActionHours},
					{Label: "Servicios", Action: ActionServices},
				},
			}
		},
	},
	{
		keywords: []string{"padre", "madre", "mama", "papa", "apoderado", "familia", "mi hijo", "mi hija"},
		respond: func(Context) Outcome {
			return Outcome{
				Reply: "¡Bienvenido a la familia Smart School! Estoy encantado de recibirle. Le invito a dar un recorrido por nuestra propuesta educativa, infraestructura moderna y servicios. ¿Por dónde desea empezar?",
				Choices: []Choice{
					{Label: "Conócenos", Action: ActionAbout},
					{Label: "Servicios", Action: ActionServices},
					{Label: "Contacto", Action: ActionContact},
					{Label: "Ubicación", Action: ActionLocation},
				},
			}
		},
	},
	{
		keywords: []string{"olvide", "perdi", "recuperar", "clave", "contrasena", "password", "acceso"},
		respond: func(Context) Outcome {
			return Outcome{
				Reply: "Si olvidaste tu contraseña, por seguridad debes solicitar el restablecimiento en la secretaría del colegio o contactando a soporte técnico.",
				Choices: []Choice{
					{Label: "Ver Teléfono", Action: ActionContact},
					{Label: "Ir a Login", Action: ActionLoginInfo},
				},
			}
		},
	},
	{
		keywords: []string{"donde", "ubicacion", "direccion", "llegar", "calle", "mapa", "queda"},
		respond: func(Context) Outcome {
			return Outcome{
				Reply:    "Nos encontramos en Jr. Las Palmeras 427, San Ramón. ¡Te esperamos!",
				Navigate: NavContact,
				Choices: []Choice{
					{Label: "Contactar", Action: ActionContact},
					{Label: "Ver Servicios", Action: ActionServices},
				},
			}
		},
	},
	{
		keywords: []string{"telefono", "celular", "correo", "email", "llamar", "contacto", "numero"},
		respond: func(Context) Outcome {
			return Outcome{
				Reply:    "Puedes comunicarte al teléfono 48841234 o al correo informes@smartschool.edu.pe. Atendemos de Lunes a Viernes.",
				Navigate: NavContact,
				Choices: []Choice{
					{Label: "Ubicación", Action: ActionLocation},
					{Label: "Horarios", Action: ActionHours},
				},
			}
		},
	},
	{
		keywords: []string{"infraestructura", "moderna", "servicios", "ofrecen", "ensenan", "talleres", "metodologia", "laboratorio", "computo"},
		respond: func(Context) Outcome {
			return Outcome{
				Reply:    "Ofrecemos formación integral con infraestructura moderna, ambientes seguros, biblioteca virtual y talleres extracurriculares.",
				Navigate: NavServices,
				Choices: []Choice{
					{Label: "Conócenos", Action: ActionAbout},
					{Label: "Contactar", Action: ActionContact},
				},
			}
		},
	},
	{
		keywords: []string{"horario", "hora", "entrada", "salida", "turno"},
		respond: func(Context) Outcome {
			return Outcome{
				Reply: "El horario escolar regular es de 8:00 AM a 2:00 PM. Los horarios específicos por aula se ven en la Intranet.",
				Choices: []Choice{
					{Label: "Soy Docente", Action: ActionIAmTeacher},
					{Label: "Soy Alumno", Action: ActionIAmStudent},
				},
			}
		},
	},
	{
		keywords: []string{"matricula", "costo", "precio", "vacante", "inscripcion", "nuevo", "traslado"},
		respond: func(Context) Outcome {
			return Outcome{
				Reply: "Para información sobre vacantes y costos de matrícula 2025, por favor contáctanos directamente o visítanos en el colegio.",
				Choices: []Choice{
					{Label: "Ver Contacto", Action: ActionContact},
					{Label: "Ubicación", Action: ActionLocation},
				},
			}
		},
	},
}

func publicFallback(Context) Outcome {
	return Outcome{
		Reply: "Disculpa, no estoy seguro de haber entendido. ¿Eres docente, alumno o padre de familia?",
		Choices: []Choice{
			{Label: "Soy Docente", Action: ActionIAmTeacher},
			{Label: "Soy Padre", Action: ActionIAmParent},
			{Label: "Soy Alumno", Action: ActionIAmStudent},
		},
	}
}

// Greeting is the opening message of a conversation for the given context.
func Greeting(ctx Context) Outcome {
	if !ctx.Authenticated {
		return Outcome{
			Reply: "¡Hola! Soy Robi, tu asistente escolar virtual. ¿Necesitas ayuda?",
			Choices: []Choice{
				{Label: "Soy Docente", Action: ActionIAmTeacher},
				{Label: "Soy Padre", Action: ActionIAmParent},
				{Label: "Soy Alumno", Action: ActionIAmStudent},
				{Label: "Ubicación", Action: ActionLocation},
				{Label: "Servicios", Action: ActionServices},
			},
		}
	}

	if ctx.isAdmin() {
		return Outcome{
			Reply: fmt.Sprintf("Hola Administrador %s. Tienes acceso total al sistema. Selecciona una opción para recibir instrucciones:", ctx.DisplayName),
			Choices: []Choice{
				{Label: "Gestión Estudiantes", Action: ActionAdminStudents},
				{Label: "Gestión Docentes", Action: ActionAdminTeachers},
				{Label: "Gestión Cuentas", Action: ActionAdminAccounts},
				{Label: "Control Horarios", Action: ActionAdminSchedules},
				{Label: "Control Asistencia", Action: ActionAdminAttend},
			},
		}
	}

	return Outcome{
		Reply: fmt.Sprintf("Hola Colega %s. Aquí están tus herramientas docentes. Selecciona una para ir a la sección y ver instrucciones:", ctx.DisplayName),
		Choices: []Choice{
			{Label: "Ver Horarios", Action: ActionTeacherSchedules},
			{Label: "Mi Asistencia", Action: ActionTeacherMyAttendance},
			{Label: "Asistencia Alumnos", Action: ActionTeacherStudentAttend},
			{Label: "Perfiles Escolares", Action: ActionTeacherProfiles},
			{Label: "Mensajes", Action: ActionTeacherMessages},
			{Label: "Mi Perfil", Action: ActionTeacherProfile},
		},
	}
}

// SessionContext builds the classifier context from an authenticated session.
func SessionContext(sess school.Session) Context {
	return Context{
		Authenticated: true,
		Role:          sess.Role,
		TeacherKind:   sess.TeacherKind,
		DisplayName:   sess.DisplayName,
	}
}
