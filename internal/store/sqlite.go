package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(dataSourceName string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err = db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	// A single connection avoids SQLITE_BUSY on concurrent writes and keeps
	// ":memory:" databases from splitting across pooled connections.
	db.SetMaxOpenConns(1)

	store := &SQLiteStore{db: db}
	if err = store.initSchema(); err != nil {
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	if err = store.seedDirectories(); err != nil {
		return nil, fmt.Errorf("failed to seed directory data: %w", err)
	}
	return store, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) initSchema() error {
	schema := `
    CREATE TABLE IF NOT EXISTS users (
        id TEXT PRIMARY KEY, -- UUID
        email TEXT UNIQUE NOT NULL,
        name TEXT NOT NULL,
        phone TEXT,
        password_hash TEXT NOT NULL,
        created_at DATETIME DEFAULT CURRENT_TIMESTAMP
    );

    CREATE TABLE IF NOT EXISTS chats (
        id TEXT PRIMARY KEY, -- UUID
        user_id TEXT NOT NULL,
        title TEXT NOT NULL DEFAULT 'New Chat',
        created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
        updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
        FOREIGN KEY (user_id) REFERENCES users (id)
    );

    CREATE TABLE IF NOT EXISTS messages (
        id TEXT PRIMARY KEY, -- UUID
        chat_id TEXT NOT NULL,
        role TEXT NOT NULL CHECK (role IN ('user', 'assistant', 'system')),
        content TEXT NOT NULL,
        timestamp DATETIME DEFAULT CURRENT_TIMESTAMP,
        seq INTEGER NOT NULL DEFAULT 0,
        FOREIGN KEY (chat_id) REFERENCES chats (id)
    );

    CREATE TABLE IF NOT EXISTS appointments (
        id TEXT PRIMARY KEY, -- UUID
        user_id TEXT NOT NULL,
        doctor_id TEXT NOT NULL,
        doctor_name TEXT NOT NULL,
        specialization TEXT NOT NULL,
        hospital_name TEXT NOT NULL DEFAULT 'N/A',
        appointment_date TEXT NOT NULL, -- YYYY-MM-DD
        appointment_time TEXT NOT NULL, -- HH:MM
        reason TEXT NOT NULL DEFAULT '',
        status TEXT NOT NULL DEFAULT 'scheduled' CHECK (status IN ('scheduled', 'completed', 'cancelled')),
        created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
        updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
        FOREIGN KEY (user_id) REFERENCES users (id)
    );

    CREATE TABLE IF NOT EXISTS doctors (
        id TEXT PRIMARY KEY,
        name TEXT NOT NULL,
        specialization TEXT NOT NULL,
        experience_years INTEGER NOT NULL,
        consultation_fee REAL NOT NULL,
        available_days_json TEXT NOT NULL,
        available_time_slots_json TEXT NOT NULL,
        hospital TEXT NOT NULL,
        image_url TEXT,
        rating REAL NOT NULL DEFAULT 4.5,
        patients_count INTEGER NOT NULL DEFAULT 0
    );

    CREATE TABLE IF NOT EXISTS hospitals (
        id TEXT PRIMARY KEY,
        name TEXT NOT NULL,
        address TEXT NOT NULL,
        city TEXT NOT NULL,
        phone TEXT NOT NULL,
        email TEXT,
        specializations_json TEXT NOT NULL,
        facilities_json TEXT NOT NULL,
        rating REAL NOT NULL DEFAULT 4.0,
        image_url TEXT,
        emergency_available BOOLEAN NOT NULL DEFAULT TRUE,
        bed_count INTEGER NOT NULL DEFAULT 100
    );

    CREATE INDEX IF NOT EXISTS idx_messages_chat ON messages (chat_id, seq);
    CREATE INDEX IF NOT EXISTS idx_appointments_slot ON appointments (doctor_id, appointment_date, appointment_time);
    `
	_, err := s.db.Exec(schema)
	return err
}

// User methods

func (s *SQLiteStore) CreateUser(email, name, passwordHash string, phone *string) (*User, error) {
	id := uuid.NewString()
	now := time.Now().UTC()
	_, err := s.db.Exec(
		"INSERT INTO users (id, email, name, phone, password_hash, created_at) VALUES (?, ?, ?, ?, ?, ?)",
		id, email, name, phone, passwordHash, now,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert user: %w", err)
	}
	return s.GetUserByID(id)
}

func (s *SQLiteStore) GetUserByEmail(email string) (*User, error) {
	return s.scanUser(s.db.QueryRow(
		"SELECT id, email, name, phone, password_hash, created_at FROM users WHERE email = ?", email))
}

func (s *SQLiteStore) GetUserByID(id string) (*User, error) {
	return s.scanUser(s.db.QueryRow(
		"SELECT id, email, name, phone, password_hash, created_at FROM users WHERE id = ?", id))
}

func (s *SQLiteStore) scanUser(row *sql.Row) (*User, error) {
	var user User
	var phone sql.NullString
	err := row.Scan(&user.ID, &user.Email, &user.Name, &phone, &user.PasswordHash, &user.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil // User not found
		}
		return nil, fmt.Errorf("failed to query user: %w", err)
	}
	if phone.Valid {
		user.Phone = &phone.String
	}
	return &user, nil
}

func (s *SQLiteStore) UpdateUserProfile(userID string, name, email, phone *string) error {
	sets := []string{}
	args := []interface{}{}
	if name != nil {
		sets = append(sets, "name = ?")
		args = append(args, *name)
	}
	if email != nil {
		sets = append(sets, "email = ?")
		args = append(args, *email)
	}
	if phone != nil {
		sets = append(sets, "phone = ?")
		args = append(args, *phone)
	}
	if len(sets) == 0 {
		return fmt.Errorf("no update data provided")
	}
	args = append(args, userID)
	res, err := s.db.Exec("UPDATE users SET "+strings.Join(sets, ", ")+" WHERE id = ?", args...)
	if err != nil {
		return fmt.Errorf("failed to update user profile: %w", err)
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return fmt.Errorf("user not found, profile not updated")
	}
	return nil
}

func (s *SQLiteStore) UpdateUserPassword(userID, passwordHash string) error {
	res, err := s.db.Exec("UPDATE users SET password_hash = ? WHERE id = ?", passwordHash, userID)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return fmt.Errorf("user not found, password not updated")
	}
	return nil
}

// Chat methods

func (s *SQLiteStore) CreateChat(userID, title string) (*Chat, error) {
	chatID := uuid.NewString()
	now := time.Now().UTC()
	_, err := s.db.Exec(
		"INSERT INTO chats (id, user_id, title, created_at, updated_at) VALUES (?, ?, ?, ?, ?)",
		chatID, userID, title, now, now,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert chat: %w", err)
	}
	return &Chat{ID: chatID, UserID: userID, Title: title, CreatedAt: now, UpdatedAt: now}, nil
}

func (s *SQLiteStore) GetChatByID(chatID, userID string) (*Chat, error) {
	var chat Chat
	err := s.db.QueryRow(
		"SELECT id, user_id, title, created_at, updated_at FROM chats WHERE id = ? AND user_id = ?",
		chatID, userID,
	).Scan(&chat.ID, &chat.UserID, &chat.Title, &chat.CreatedAt, &chat.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil // Not found (or not owned)
		}
		return nil, fmt.Errorf("failed to get chat: %w", err)
	}
	return &chat, nil
}

func (s *SQLiteStore) GetChatsByUserID(userID string) ([]Chat, error) {
	rows, err := s.db.Query(
		"SELECT id, user_id, title, created_at, updated_at FROM chats WHERE user_id = ? ORDER BY updated_at DESC",
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query chats: %w", err)
	}
	defer rows.Close()

	var chats []Chat
	for rows.Next() {
		var chat Chat
		if err := rows.Scan(&chat.ID, &chat.UserID, &chat.Title, &chat.CreatedAt, &chat.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan chat row: %w", err)
		}
		chats = append(chats, chat)
	}
	return chats, nil
}

func (s *SQLiteStore) UpdateChatTitle(chatID, title string) error {
	res, err := s.db.Exec("UPDATE chats SET title = ?, updated_at = ? WHERE id = ?", title, time.Now().UTC(), chatID)
	if err != nil {
		return fmt.Errorf("failed to update chat title: %w", err)
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return fmt.Errorf("chat not found, title not updated")
	}
	return nil
}

// DeleteChat removes a chat and its messages in one transaction, so a
// failure cannot strand orphaned messages.
func (s *SQLiteStore) DeleteChat(chatID, userID string) (bool, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec("DELETE FROM chats WHERE id = ? AND user_id = ?", chatID, userID)
	if err != nil {
		return false, fmt.Errorf("failed to delete chat: %w", err)
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return false, nil
	}
	if _, err := tx.Exec("DELETE FROM messages WHERE chat_id = ?", chatID); err != nil {
		return false, fmt.Errorf("failed to delete chat messages: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("failed to commit chat deletion: %w", err)
	}
	return true, nil
}

// AddMessage appends a message to a chat. The insert computes a per-chat
// sequence number, so two interleaved requests cannot lose a message the
// way a read-modify-write of the whole list could; the insert and the
// chat-timestamp touch commit together.
func (s *SQLiteStore) AddMessage(chatID, role, content string) (*Message, error) {
	msg := Message{
		ID:        uuid.NewString(),
		ChatID:    chatID,
		Role:      role,
		Content:   content,
		Timestamp: time.Now().UTC(),
	}
	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO messages (id, chat_id, role, content, timestamp, seq)
         VALUES (?, ?, ?, ?, ?, (SELECT COALESCE(MAX(seq), 0) + 1 FROM messages WHERE chat_id = ?))`,
		msg.ID, msg.ChatID, msg.Role, msg.Content, msg.Timestamp, chatID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert message: %w", err)
	}
	if _, err := tx.Exec("UPDATE chats SET updated_at = ? WHERE id = ?", msg.Timestamp, chatID); err != nil {
		return nil, fmt.Errorf("failed to touch chat: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit message: %w", err)
	}
	return &msg, nil
}

func (s *SQLiteStore) GetMessagesByChatID(chatID string) ([]Message, error) {
	rows, err := s.db.Query(
		"SELECT id, chat_id, role, content, timestamp FROM messages WHERE chat_id = ? ORDER BY seq ASC",
		chatID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query messages: %w", err)
	}
	defer rows.Close()
	return scanMessages(rows)
}

// GetRecentMessages returns the last n messages of a chat in chronological order.
func (s *SQLiteStore) GetRecentMessages(chatID string, n int) ([]Message, error) {
	rows, err := s.db.Query(
		`SELECT id, chat_id, role, content, timestamp FROM (
            SELECT id, chat_id, role, content, timestamp, seq
            FROM messages WHERE chat_id = ? ORDER BY seq DESC LIMIT ?
        ) ORDER BY seq ASC`,
		chatID, n,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent messages: %w", err)
	}
	defer rows.Close()
	return scanMessages(rows)
}

func (s *SQLiteStore) CountMessages(chatID string) (int, error) {
	var count int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM messages WHERE chat_id = ?", chatID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count messages: %w", err)
	}
	return count, nil
}

func scanMessages(rows *sql.Rows) ([]Message, error) {
	var messages []Message
	for rows.Next() {
		var msg Message
		if err := rows.Scan(&msg.ID, &msg.ChatID, &msg.Role, &msg.Content, &msg.Timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan message row: %w", err)
		}
		messages = append(messages, msg)
	}
	return messages, rows.Err()
}

// Appointment methods

func (s *SQLiteStore) CreateAppointment(a *Appointment) error {
	a.ID = uuid.NewString()
	now := time.Now().UTC()
	a.CreatedAt = now
	a.UpdatedAt = now
	if a.Status == "" {
		a.Status = StatusScheduled
	}
	_, err := s.db.Exec(
		`INSERT INTO appointments
         (id, user_id, doctor_id, doctor_name, specialization, hospital_name,
          appointment_date, appointment_time, reason, status, created_at, updated_at)
         VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.UserID, a.DoctorID, a.DoctorName, a.Specialization, a.HospitalName,
		a.AppointmentDate, a.AppointmentTime, a.Reason, a.Status, a.CreatedAt, a.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert appointment: %w", err)
	}
	return nil
}

// GetAppointmentByID returns the appointment regardless of owner; callers
// must check ownership themselves so "not found" and "not owned" stay
// distinguishable.
func (s *SQLiteStore) GetAppointmentByID(id string) (*Appointment, error) {
	var a Appointment
	err := s.db.QueryRow(
		`SELECT id, user_id, doctor_id, doctor_name, specialization, hospital_name,
                appointment_date, appointment_time, reason, status, created_at, updated_at
         FROM appointments WHERE id = ?`, id,
	).Scan(&a.ID, &a.UserID, &a.DoctorID, &a.DoctorName, &a.Specialization, &a.HospitalName,
		&a.AppointmentDate, &a.AppointmentTime, &a.Reason, &a.Status, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get appointment: %w", err)
	}
	return &a, nil
}

func (s *SQLiteStore) GetUserAppointments(userID string, statusFilter string) ([]Appointment, error) {
	query := `SELECT id, user_id, doctor_id, doctor_name, specialization, hospital_name,
                     appointment_date, appointment_time, reason, status, created_at, updated_at
              FROM appointments WHERE user_id = ?`
	args := []interface{}{userID}
	if statusFilter != "" {
		query += " AND status = ?"
		args = append(args, statusFilter)
	}
	query += " ORDER BY appointment_date DESC, appointment_time DESC"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query appointments: %w", err)
	}
	defer rows.Close()

	var appointments []Appointment
	for rows.Next() {
		var a Appointment
		if err := rows.Scan(&a.ID, &a.UserID, &a.DoctorID, &a.DoctorName, &a.Specialization, &a.HospitalName,
			&a.AppointmentDate, &a.AppointmentTime, &a.Reason, &a.Status, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan appointment row: %w", err)
		}
		appointments = append(appointments, a)
	}
	return appointments, rows.Err()
}

// HasAppointmentConflict reports whether an active (non-cancelled)
// appointment already holds the (doctor, date, time) slot.
func (s *SQLiteStore) HasAppointmentConflict(doctorID, date, timeSlot string) (bool, error) {
	var count int
	err := s.db.QueryRow(
		`SELECT COUNT(*) FROM appointments
         WHERE doctor_id = ? AND appointment_date = ? AND appointment_time = ? AND status != 'cancelled'`,
		doctorID, date, timeSlot,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check appointment conflict: %w", err)
	}
	return count > 0, nil
}

func (s *SQLiteStore) UpdateAppointment(id string, upd AppointmentUpdate) error {
	sets := []string{"updated_at = ?"}
	args := []interface{}{time.Now().UTC()}
	if upd.Status != nil {
		sets = append(sets, "status = ?")
		args = append(args, string(*upd.Status))
	}
	if upd.AppointmentDate != nil {
		sets = append(sets, "appointment_date = ?")
		args = append(args, *upd.AppointmentDate)
	}
	if upd.AppointmentTime != nil {
		sets = append(sets, "appointment_time = ?")
		args = append(args, *upd.AppointmentTime)
	}
	if upd.Reason != nil {
		sets = append(sets, "reason = ?")
		args = append(args, *upd.Reason)
	}
	args = append(args, id)
	res, err := s.db.Exec("UPDATE appointments SET "+strings.Join(sets, ", ")+" WHERE id = ?", args...)
	if err != nil {
		return fmt.Errorf("failed to update appointment: %w", err)
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return fmt.Errorf("appointment not found, not updated")
	}
	return nil
}

// Doctor directory methods

func (s *SQLiteStore) GetAllDoctors(specialization string) ([]Doctor, error) {
	query := `SELECT id, name, specialization, experience_years, consultation_fee,
                     available_days_json, available_time_slots_json, hospital, image_url, rating, patients_count
              FROM doctors`
	args := []interface{}{}
	if specialization != "" {
		query += " WHERE LOWER(specialization) = LOWER(?)"
		args = append(args, specialization)
	}
	query += " ORDER BY id ASC"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query doctors: %w", err)
	}
	defer rows.Close()

	var doctors []Doctor
	for rows.Next() {
		doc, err := scanDoctor(rows)
		if err != nil {
			return nil, err
		}
		doctors = append(doctors, *doc)
	}
	return doctors, rows.Err()
}

func (s *SQLiteStore) GetDoctorByID(id string) (*Doctor, error) {
	rows, err := s.db.Query(
		`SELECT id, name, specialization, experience_years, consultation_fee,
                available_days_json, available_time_slots_json, hospital, image_url, rating, patients_count
         FROM doctors WHERE id = ?`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query doctor: %w", err)
	}
	defer rows.Close()
	if !rows.Next() {
		return nil, rows.Err()
	}
	return scanDoctor(rows)
}

func (s *SQLiteStore) GetDoctorSpecializations() ([]string, error) {
	return s.queryStrings("SELECT DISTINCT specialization FROM doctors ORDER BY specialization ASC")
}

func scanDoctor(rows *sql.Rows) (*Doctor, error) {
	var doc Doctor
	var daysJSON, slotsJSON string
	var imageURL sql.NullString
	if err := rows.Scan(&doc.ID, &doc.Name, &doc.Specialization, &doc.ExperienceYears, &doc.ConsultationFee,
		&daysJSON, &slotsJSON, &doc.Hospital, &imageURL, &doc.Rating, &doc.PatientsCount); err != nil {
		return nil, fmt.Errorf("failed to scan doctor row: %w", err)
	}
	if imageURL.Valid {
		doc.ImageURL = &imageURL.String
	}
	if err := json.Unmarshal([]byte(daysJSON), &doc.AvailableDays); err != nil {
		return nil, fmt.Errorf("failed to unmarshal available days for %s: %w", doc.ID, err)
	}
	if err := json.Unmarshal([]byte(slotsJSON), &doc.AvailableTimeSlots); err != nil {
		return nil, fmt.Errorf("failed to unmarshal time slots for %s: %w", doc.ID, err)
	}
	return &doc, nil
}

// Hospital directory methods

func (s *SQLiteStore) GetAllHospitals(city, specialization string, emergencyOnly bool) ([]Hospital, error) {
	query := `SELECT id, name, address, city, phone, email, specializations_json, facilities_json,
                     rating, image_url, emergency_available, bed_count
              FROM hospitals`
	conds := []string{}
	args := []interface{}{}
	if city != "" {
		conds = append(conds, "LOWER(city) = LOWER(?)")
		args = append(args, city)
	}
	if emergencyOnly {
		conds = append(conds, "emergency_available = TRUE")
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY id ASC"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query hospitals: %w", err)
	}
	defer rows.Close()

	var hospitals []Hospital
	for rows.Next() {
		h, err := scanHospital(rows)
		if err != nil {
			return nil, err
		}
		// Specialization filter needs the decoded JSON list, so it is applied here.
		if specialization != "" && !containsFold(h.Specializations, specialization) {
			continue
		}
		hospitals = append(hospitals, *h)
	}
	return hospitals, rows.Err()
}

func (s *SQLiteStore) GetHospitalByID(id string) (*Hospital, error) {
	rows, err := s.db.Query(
		`SELECT id, name, address, city, phone, email, specializations_json, facilities_json,
                rating, image_url, emergency_available, bed_count
         FROM hospitals WHERE id = ?`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query hospital: %w", err)
	}
	defer rows.Close()
	if !rows.Next() {
		return nil, rows.Err()
	}
	return scanHospital(rows)
}

func (s *SQLiteStore) GetHospitalCities() ([]string, error) {
	return s.queryStrings("SELECT DISTINCT city FROM hospitals ORDER BY city ASC")
}

func (s *SQLiteStore) GetHospitalSpecializations() ([]string, error) {
	hospitals, err := s.GetAllHospitals("", "", false)
	if err != nil {
		return nil, err
	}
	seen := map[string]bool{}
	var specs []string
	for _, h := range hospitals {
		for _, sp := range h.Specializations {
			if !seen[sp] {
				seen[sp] = true
				specs = append(specs, sp)
			}
		}
	}
	return specs, nil
}

func scanHospital(rows *sql.Rows) (*Hospital, error) {
	var h Hospital
	var specsJSON, facilitiesJSON string
	var email, imageURL sql.NullString
	if err := rows.Scan(&h.ID, &h.Name, &h.Address, &h.City, &h.Phone, &email, &specsJSON, &facilitiesJSON,
		&h.Rating, &imageURL, &h.EmergencyAvailable, &h.BedCount); err != nil {
		return nil, fmt.Errorf("failed to scan hospital row: %w", err)
	}
	if email.Valid {
		h.Email = &email.String
	}
	if imageURL.Valid {
		h.ImageURL = &imageURL.String
	}
	if err := json.Unmarshal([]byte(specsJSON), &h.Specializations); err != nil {
		return nil, fmt.Errorf("failed to unmarshal specializations for %s: %w", h.ID, err)
	}
	if err := json.Unmarshal([]byte(facilitiesJSON), &h.Facilities); err != nil {
		return nil, fmt.Errorf("failed to unmarshal facilities for %s: %w", h.ID, err)
	}
	return &h, nil
}

func (s *SQLiteStore) queryStrings(query string) ([]string, error) {
	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query: %w", err)
	}
	defer rows.Close()

	var values []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		values = append(values, v)
	}
	return values, rows.Err()
}

func containsFold(list []string, target string) bool {
	for _, v := range list {
		if strings.EqualFold(v, target) {
			return true
		}
	}
	return false
}
