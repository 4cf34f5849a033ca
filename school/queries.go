package school

import (
	"context"
	"errors"
	"sort"
	"strconv"
	"strings"

	"smartschool/storage"
)

// Canonical weekday order used when grouping schedules.
var weekdayOrder = []string{"Lunes", "Martes", "Miércoles", "Jueves", "Viernes", "Sábado", "Domingo"}

// DaySchedule is one weekday's lessons for a grade, ordered by start time.
type DaySchedule struct {
	Day   string
	Items []ScheduleItem
}

func (e *Engine) Accounts() []Account {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]Account(nil), e.accounts...)
}

func (e *Engine) Students() []Student {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]Student(nil), e.students...)
}

func (e *Engine) Teachers() []Teacher {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]Teacher(nil), e.teachers...)
}

func (e *Engine) Schedules() []ScheduleItem {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]ScheduleItem(nil), e.schedules...)
}

func (e *Engine) Messages() []ChatMessage {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]ChatMessage(nil), e.messages...)
}

func (e *Engine) AccountByUsername(username string) (Account, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, acc := range e.accounts {
		if acc.Username == username {
			return acc, true
		}
	}
	return Account{}, false
}

func (e *Engine) TeacherByName(name string) (Teacher, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, t := range e.teachers {
		if t.DisplayName == name {
			return t, true
		}
	}
	return Teacher{}, false
}

// SearchStudents does a case-insensitive substring match on name and grade.
func (e *Engine) SearchStudents(query string) []Student {
	q := strings.ToLower(strings.TrimSpace(query))
	e.mu.Lock()
	defer e.mu.Unlock()

	if q == "" {
		return append([]Student(nil), e.students...)
	}

	var out []Student
	for _, s := range e.students {
		if strings.Contains(strings.ToLower(s.FullName), q) ||
			strings.Contains(strings.ToLower(s.Grade), q) {
			out = append(out, s)
		}
	}
	return out
}

// SearchTeachers matches name, specialty and assigned grade.
func (e *Engine) SearchTeachers(query string) []Teacher {
	q := strings.ToLower(strings.TrimSpace(query))
	e.mu.Lock()
	defer e.mu.Unlock()

	if q == "" {
		return append([]Teacher(nil), e.teachers...)
	}

	var out []Teacher
	for _, t := range e.teachers {
		if strings.Contains(strings.ToLower(t.DisplayName), q) ||
			strings.Contains(strings.ToLower(t.Specialty), q) ||
			strings.Contains(strings.ToLower(t.AssignedGrade), q) {
			out = append(out, t)
		}
	}
	return out
}

// StudentsInGrade returns the students of one grade, for attendance lists.
func (e *Engine) StudentsInGrade(grade string) []Student {
	e.mu.Lock()
	defer e.mu.Unlock()

	var out []Student
	for _, s := range e.students {
		if s.Grade == grade {
			out = append(out, s)
		}
	}
	return out
}

// Grades returns the distinct grade labels present in the student and
// schedule collections, sorted.
func (e *Engine) Grades() []string {
	e.mu.Lock()
	defer e.mu.Unlock()

	seen := make(map[string]bool)
	for _, s := range e.students {
		seen[s.Grade] = true
	}
	for _, item := range e.schedules {
		seen[item.Grade] = true
	}

	out := make([]string, 0, len(seen))
	for g := range seen {
		out = append(out, g)
	}
	sort.Strings(out)
	return out
}

// ScheduleForGrade groups a grade's schedule by weekday in calendar order.
// Items within a day are sorted by start time; zero-padded HH:MM strings sort
// correctly as text. Days without lessons are omitted.
func (e *Engine) ScheduleForGrade(grade string) []DaySchedule {
	e.mu.Lock()
	byDay := make(map[string][]ScheduleItem)
	for _, item := range e.schedules {
		if item.Grade == grade {
			byDay[item.Day] = append(byDay[item.Day], item)
		}
	}
	e.mu.Unlock()

	var out []DaySchedule
	for _, day := range weekdayOrder {
		items := byDay[day]
		if len(items) == 0 {
			continue
		}
		sort.SliceStable(items, func(i, j int) bool { return items[i].StartTime < items[j].StartTime })
		out = append(out, DaySchedule{Day: day, Items: items})
	}
	return out
}

// TeacherAttendanceFor returns a teacher's attendance history, newest first.
func (e *Engine) TeacherAttendanceFor(teacherName string) []TeacherAttendance {
	e.mu.Lock()
	defer e.mu.Unlock()

	var out []TeacherAttendance
	for _, r := range e.teacherAttendance {
		if r.TeacherName == teacherName {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date > out[j].Date })
	return out
}

// TeacherAttendanceOn returns every record for one calendar date.
func (e *Engine) TeacherAttendanceOn(date string) []TeacherAttendance {
	e.mu.Lock()
	defer e.mu.Unlock()

	var out []TeacherAttendance
	for _, r := range e.teacherAttendance {
		if r.Date == date {
			out = append(out, r)
		}
	}
	return out
}

// UnreadCount is the number of chat messages the account has not seen:
// total minus the persisted last-read counter, floored at zero.
func (e *Engine) UnreadCount(ctx context.Context, username string) int {
	e.mu.Lock()
	defer e.mu.Unlock()

	n := len(e.messages) - e.lastReadLocked(ctx, username)
	if n < 0 {
		return 0
	}
	return n
}

// MarkChatRead records that the account has seen the whole chat.
func (e *Engine) MarkChatRead(ctx context.Context, username string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	total := len(e.messages)
	e.lastRead[username] = total
	if err := e.store.Save(ctx, lastReadKeyPrefix+username, total); err != nil {
		e.logger.Errorf("failed to persist last-read counter for %s: %v", username, err)
	}
}

func (e *Engine) lastReadLocked(ctx context.Context, username string) int {
	if n, ok := e.lastRead[username]; ok {
		return n
	}

	var n int
	err := e.store.Load(ctx, lastReadKeyPrefix+username, &n)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			e.logger.Errorf("failed to load last-read counter for %s: %v", username, err)
		}
		n = 0
	}
	e.lastRead[username] = n
	return n
}

// Today returns the current calendar date in the ISO form used by the
// attendance collections.
func Today() string {
	return nowFunc().Format("2006-01-02")
}

// FormatGradeCount is a small helper for list headers ("3 alumnos").
func FormatGradeCount(n int) string {
	if n == 1 {
		return "1 alumno"
	}
	return strconv.Itoa(n) + " alumnos"
}
