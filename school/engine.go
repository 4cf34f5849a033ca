package school

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"smartschool/logger"
	"smartschool/storage"
)

// Snapshot keys, one per collection.
const (
	keyAccounts          = "accounts"
	keyStudents          = "students"
	keyTeachers          = "teachers"
	keySchedules         = "schedules"
	keyTeacherAttendance = "teacher_attendance"
	keyMessages          = "messages"

	lastReadKeyPrefix = "last_read:"
)

var (
	ErrValidation         = errors.New("invalid input")
	ErrPermissionDenied   = errors.New("permission denied")
	ErrInvalidCredentials = errors.New("incorrect username or password")
	ErrEmptyMessage       = errors.New("empty message content")
)

// nowFunc is swapped out in tests.
var nowFunc = time.Now

// Engine owns the six record collections and keeps the denormalized teacher
// display name consistent across them. All mutations run under a single lock
// and write their snapshot(s) before releasing it, so the store never
// observes a half-applied rename cascade.
type Engine struct {
	mu       sync.Mutex
	store    storage.Store
	logger   *logger.Logger
	validate *validator.Validate

	accounts          []Account
	students          []Student
	teachers          []Teacher
	schedules         []ScheduleItem
	teacherAttendance []TeacherAttendance
	messages          []ChatMessage

	lastRead map[string]int
}

func NewEngine(store storage.Store, log *logger.Logger) *Engine {
	return &Engine{
		store:    store,
		logger:   log,
		validate: validator.New(),
		lastRead: make(map[string]int),
	}
}

// LoadOrSeed restores every collection from the store. A collection without a
// snapshot falls back to the built-in seed dataset, matching a first start.
func (e *Engine) LoadOrSeed(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := loadCollection(ctx, e.store, keyAccounts, &e.accounts, seedAccounts); err != nil {
		return err
	}
	if err := loadCollection(ctx, e.store, keyStudents, &e.students, seedStudents); err != nil {
		return err
	}
	if err := loadCollection(ctx, e.store, keyTeachers, &e.teachers, seedTeachers); err != nil {
		return err
	}
	if err := loadCollection(ctx, e.store, keySchedules, &e.schedules, seedSchedules); err != nil {
		return err
	}
	if err := loadCollection(ctx, e.store, keyTeacherAttendance, &e.teacherAttendance, seedTeacherAttendance); err != nil {
		return err
	}
	if err := loadCollection(ctx, e.store, keyMessages, &e.messages, seedMessages); err != nil {
		return err
	}

	e.logger.Infof("collections loaded: %d accounts, %d students, %d teachers, %d schedule items, %d attendance records, %d messages",
		len(e.accounts), len(e.students), len(e.teachers), len(e.schedules), len(e.teacherAttendance), len(e.messages))
	return nil
}

func loadCollection[T any](ctx context.Context, store storage.Store, key string, dst *[]T, seed func() []T) error {
	err := store.Load(ctx, key, dst)
	if errors.Is(err, storage.ErrNotFound) {
		*dst = seed()
		return nil
	}
	if err != nil {
		return fmt.Errorf("load %s: %w", key, err)
	}
	return nil
}

// persist writes one collection snapshot. Persistence is fire-and-forget:
// a failed write is logged and the in-memory state stays authoritative.
func (e *Engine) persist(ctx context.Context, key string, v interface{}) {
	if err := e.store.Save(ctx, key, v); err != nil {
		e.logger.Errorf("failed to persist %s: %v", key, err)
	}
}

// ---- students ----

func (e *Engine) AddStudent(ctx context.Context, in NewStudent) (Student, error) {
	if err := e.validate.Struct(in); err != nil {
		return Student{}, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	st := Student{
		ID:           uuid.NewString(),
		FullName:     in.FullName,
		Grade:        in.Grade,
		Attendance:   AttendanceNone,
		FatherName:   in.FatherName,
		MotherName:   in.MotherName,
		DNI:          in.DNI,
		BirthDate:    in.BirthDate,
		OriginSchool: in.OriginSchool,
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.students = append(e.students, st)
	e.persist(ctx, keyStudents, e.students)
	return st, nil
}

func (e *Engine) DeleteStudent(ctx context.Context, id string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if filtered, changed := deleteByID(e.students, id, func(s Student) string { return s.ID }); changed {
		e.students = filtered
		e.persist(ctx, keyStudents, e.students)
	}
}

// MarkStudentAttendance sets a student's attendance state. Only admins and
// classroom tutors whose assigned grade matches the student may mark; course
// teachers have read-only access.
func (e *Engine) MarkStudentAttendance(ctx context.Context, sess Session, studentID string, state AttendanceState) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	idx := -1
	for i := range e.students {
		if e.students[i].ID == studentID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil
	}

	if !e.canMarkAttendance(sess, e.students[idx].Grade) {
		return ErrPermissionDenied
	}

	e.students[idx].Attendance = state
	e.persist(ctx, keyStudents, e.students)
	return nil
}

func (e *Engine) canMarkAttendance(sess Session, grade string) bool {
	if sess.IsAdmin() {
		return true
	}
	if sess.TeacherKind != KindTutor {
		return false
	}
	for _, t := range e.teachers {
		if t.DisplayName == sess.DisplayName {
			return t.AssignedGrade == grade
		}
	}
	return false
}

// ---- teachers ----

func (e *Engine) AddTeacher(ctx context.Context, in NewTeacher) (Teacher, error) {
	if err := e.validate.Struct(in); err != nil {
		return Teacher{}, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	t := Teacher{
		ID:            uuid.NewString(),
		DisplayName:   in.DisplayName,
		Specialty:     in.Specialty,
		Email:         in.Email,
		AssignedGrade: in.AssignedGrade,
		Kind:          in.Kind,
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.teachers = append(e.teachers, t)
	e.persist(ctx, keyTeachers, e.teachers)
	return t, nil
}

// DeleteTeacher removes only the teacher record. Schedule items and
// attendance history keep the old name on purpose: downstream views show it
// as an unassigned slot, and historical records stay intact.
func (e *Engine) DeleteTeacher(ctx context.Context, id string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if filtered, changed := deleteByID(e.teachers, id, func(t Teacher) string { return t.ID }); changed {
		e.teachers = filtered
		e.persist(ctx, keyTeachers, e.teachers)
	}
}

// RenameTeacher changes a teacher's display name and rewrites every
// denormalized copy of it: the matching account, schedule items, attendance
// records and chat messages. The whole cascade runs under one lock and all
// affected snapshots are written before it is released. An empty or unchanged
// new name is a no-op.
func (e *Engine) RenameTeacher(ctx context.Context, oldName, newName string) {
	newName = strings.TrimSpace(newName)
	if newName == "" || newName == oldName {
		return
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.renameLocked(ctx, oldName, newName)
}

func (e *Engine) renameLocked(ctx context.Context, oldName, newName string) {
	changedTeachers := false
	for i := range e.teachers {
		if e.teachers[i].DisplayName == oldName {
			e.teachers[i].DisplayName = newName
			changedTeachers = true
		}
	}

	changedAccounts := false
	for i := range e.accounts {
		if e.accounts[i].DisplayName == oldName {
			e.accounts[i].DisplayName = newName
			changedAccounts = true
		}
	}

	changedSchedules := false
	for i := range e.schedules {
		if e.schedules[i].TeacherName == oldName {
			e.schedules[i].TeacherName = newName
			changedSchedules = true
		}
	}

	changedAttendance := false
	for i := range e.teacherAttendance {
		if e.teacherAttendance[i].TeacherName == oldName {
			e.teacherAttendance[i].TeacherName = newName
			changedAttendance = true
		}
	}

	changedMessages := false
	for i := range e.messages {
		if e.messages[i].Sender == oldName {
			e.messages[i].Sender = newName
			changedMessages = true
		}
	}

	if changedTeachers {
		e.persist(ctx, keyTeachers, e.teachers)
	}
	if changedAccounts {
		e.persist(ctx, keyAccounts, e.accounts)
	}
	if changedSchedules {
		e.persist(ctx, keySchedules, e.schedules)
	}
	if changedAttendance {
		e.persist(ctx, keyTeacherAttendance, e.teacherAttendance)
	}
	if changedMessages {
		e.persist(ctx, keyMessages, e.messages)
	}

	if changedTeachers || changedAccounts {
		e.logger.Infof("teacher renamed: %q -> %q", oldName, newName)
	}
}

// ---- accounts ----

func (e *Engine) AddAccount(ctx context.Context, in NewAccount) (Account, error) {
	if err := e.validate.Struct(in); err != nil {
		return Account{}, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	acc := Account{
		ID:          uuid.NewString(),
		Username:    in.Username,
		Password:    in.Password,
		DisplayName: in.DisplayName,
		Role:        in.Role,
	}
	// Teacher kind only makes sense on teacher accounts.
	if in.Role == RoleTeacher {
		acc.TeacherKind = in.TeacherKind
		if acc.TeacherKind == "" {
			acc.TeacherKind = KindCourse
		}
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.accounts = append(e.accounts, acc)
	e.persist(ctx, keyAccounts, e.accounts)
	return acc, nil
}

func (e *Engine) DeleteAccount(ctx context.Context, sess Session, id string) error {
	if !sess.IsAdmin() {
		return ErrPermissionDenied
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if filtered, changed := deleteByID(e.accounts, id, func(a Account) string { return a.ID }); changed {
		e.accounts = filtered
		e.persist(ctx, keyAccounts, e.accounts)
	}
	return nil
}

// UpdateProfile applies a self-service account update. A display name change
// is a teacher rename and cascades through every collection.
func (e *Engine) UpdateProfile(ctx context.Context, username string, upd ProfileUpdate) (Account, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	idx := -1
	for i := range e.accounts {
		if e.accounts[i].Username == username {
			idx = i
			break
		}
	}
	if idx < 0 {
		return Account{}, fmt.Errorf("account %q: %w", username, storage.ErrNotFound)
	}

	if upd.Password != "" {
		e.accounts[idx].Password = upd.Password
	}
	if upd.PhotoURL != "" {
		e.accounts[idx].PhotoURL = upd.PhotoURL
	}

	oldName := e.accounts[idx].DisplayName
	newName := strings.TrimSpace(upd.DisplayName)
	if newName != "" && newName != oldName {
		e.renameLocked(ctx, oldName, newName)
	} else {
		e.persist(ctx, keyAccounts, e.accounts)
	}

	return e.accounts[idx], nil
}

// Authenticate compares plaintext credentials against the account collection.
// The returned error never says which of the two fields was wrong.
func (e *Engine) Authenticate(username, password string) (Session, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	for _, acc := range e.accounts {
		if acc.Username == username && acc.Password == password {
			return Session{
				Username:    acc.Username,
				DisplayName: acc.DisplayName,
				Role:        acc.Role,
				TeacherKind: acc.TeacherKind,
			}, nil
		}
	}
	return Session{}, ErrInvalidCredentials
}

// ---- schedule ----

func (e *Engine) AddScheduleItem(ctx context.Context, in NewScheduleItem) (ScheduleItem, error) {
	if err := e.validate.Struct(in); err != nil {
		return ScheduleItem{}, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	item := ScheduleItem{
		ID:          uuid.NewString(),
		Day:         in.Day,
		StartTime:   in.StartTime,
		EndTime:     in.EndTime,
		Subject:     in.Subject,
		Grade:       in.Grade,
		TeacherName: in.TeacherName,
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.schedules = append(e.schedules, item)
	e.persist(ctx, keySchedules, e.schedules)
	return item, nil
}

func (e *Engine) DeleteScheduleItem(ctx context.Context, id string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if filtered, changed := deleteByID(e.schedules, id, func(s ScheduleItem) string { return s.ID }); changed {
		e.schedules = filtered
		e.persist(ctx, keySchedules, e.schedules)
	}
}

// ---- teacher attendance ----

// UpsertTeacherAttendance records a teacher's working day. A second save for
// the same (teacher, date) replaces the prior record, so there is at most one
// authoritative record per teacher per day.
func (e *Engine) UpsertTeacherAttendance(ctx context.Context, teacherName, date, entry, exit string, status DayStatus) TeacherAttendance {
	rec := TeacherAttendance{
		ID:          uuid.NewString(),
		TeacherName: teacherName,
		Date:        date,
		EntryTime:   entry,
		ExitTime:    exit,
		Status:      status,
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	kept := e.teacherAttendance[:0]
	for _, r := range e.teacherAttendance {
		if r.TeacherName == teacherName && r.Date == date {
			continue
		}
		kept = append(kept, r)
	}
	e.teacherAttendance = append(kept, rec)
	e.persist(ctx, keyTeacherAttendance, e.teacherAttendance)
	return rec
}

// ---- chat ----

// SendChatMessage appends to the global staff chat. Whitespace-only content
// is rejected. The chat has no size cap.
func (e *Engine) SendChatMessage(ctx context.Context, sender string, role Role, content string) (ChatMessage, error) {
	if strings.TrimSpace(content) == "" {
		return ChatMessage{}, ErrEmptyMessage
	}

	msg := ChatMessage{
		ID:        uuid.NewString(),
		Sender:    sender,
		Role:      role,
		Content:   content,
		Timestamp: nowFunc().Format("03:04 PM"),
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.messages = append(e.messages, msg)
	e.persist(ctx, keyMessages, e.messages)
	return msg, nil
}

func (e *Engine) DeleteChatMessage(ctx context.Context, sess Session, id string) error {
	if !sess.IsAdmin() {
		return ErrPermissionDenied
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if filtered, changed := deleteByID(e.messages, id, func(m ChatMessage) string { return m.ID }); changed {
		e.messages = filtered
		e.persist(ctx, keyMessages, e.messages)
	}
	return nil
}

func deleteByID[T any](list []T, id string, idOf func(T) string) ([]T, bool) {
	kept := make([]T, 0, len(list))
	changed := false
	for _, item := range list {
		if idOf(item) == id {
			changed = true
			continue
		}
		kept = append(kept, item)
	}
	return kept, changed
}
