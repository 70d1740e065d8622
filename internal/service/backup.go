package service

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/drewham94/AMai-Code/internal/database"
)

// BackupData is the complete portable dump of the database. Feedback is
// carried as the raw JSON stored in the session row.
type BackupData struct {
	Version    string            `json:"version"`
	ExportedAt time.Time         `json:"exported_at"`
	Profiles   []ProfileBackup   `json:"profiles"`
	Sessions   []SessionBackup   `json:"sessions"`
	Passages   []PassageBackup   `json:"passages"`
	Slang      []SlangBackup     `json:"slang"`
	Flashcards []FlashcardBackup `json:"flashcards"`
	Focus      []FocusBackup     `json:"focus_sessions"`
}

// ProfileBackup is one user_profiles row
type ProfileBackup struct {
	Email                  string `json:"email"`
	Name                   string `json:"name"`
	TargetLanguage         string `json:"target_language"`
	TargetAccent           string `json:"target_accent"`
	SkillLevel             string `json:"skill_level"`
	PreferredFlavor        string `json:"preferred_flavor"`
	DailyGoal              int    `json:"daily_goal"`
	PreferredVoice         string `json:"preferred_voice"`
	AssistantLanguage      string `json:"assistant_language"`
	AssistantEnglishAccent string `json:"assistant_english_accent"`
	IsLiveAssistantEnabled bool   `json:"is_live_assistant_enabled"`
}

// SessionBackup is one practice_sessions row
type SessionBackup struct {
	ID                string    `json:"id"`
	UserEmail         string    `json:"user_email"`
	Date              time.Time `json:"date"`
	Language          string    `json:"language"`
	Accent            string    `json:"accent"`
	SkillLevel        string    `json:"skill_level"`
	Flavor            string    `json:"flavor"`
	Mode              string    `json:"mode"`
	Prompt            string    `json:"prompt"`
	Score             int       `json:"score"`
	AssistantResponse string    `json:"assistant_response"`
	Feedback          string    `json:"feedback"`
}

// PassageBackup is one saved_passages row
type PassageBackup struct {
	ID        string    `json:"id"`
	UserEmail string    `json:"user_email"`
	Text      string    `json:"text"`
	Date      time.Time `json:"date"`
	Language  string    `json:"language"`
}

// SlangBackup is one slang_terms row
type SlangBackup struct {
	ID          string    `json:"id"`
	UserEmail   string    `json:"user_email"`
	Term        string    `json:"term"`
	TermKey     string    `json:"term_key"`
	Meaning     string    `json:"meaning"`
	Example     string    `json:"example"`
	Region      string    `json:"region"`
	Language    string    `json:"language"`
	DateLearned time.Time `json:"date_learned"`
}

// FlashcardBackup is one flashcards row
type FlashcardBackup struct {
	ID                 string    `json:"id"`
	UserEmail          string    `json:"user_email"`
	Word               string    `json:"word"`
	WordKey            string    `json:"word_key"`
	DefinitionEn       string    `json:"definition_en"`
	DefinitionTarget   string    `json:"definition_target"`
	WordType           string    `json:"word_type"`
	PracticeCount      int       `json:"practice_count"`
	ConsecutiveCorrect int       `json:"consecutive_correct"`
	Frequency          int       `json:"frequency"`
	Language           string    `json:"language"`
	DateAdded          time.Time `json:"date_added"`
	IsCustom           bool      `json:"is_custom"`
}

// FocusBackup is one focus_sessions row
type FocusBackup struct {
	ID        string    `json:"id"`
	UserEmail string    `json:"user_email"`
	Date      time.Time `json:"date"`
	Minutes   int       `json:"minutes"`
}

// BackupService handles database backup and restore operations
type BackupService struct {
	db *database.DB
}

// NewBackupService creates a new backup service
func NewBackupService(db *database.DB) *BackupService {
	return &BackupService{db: db}
}

// Export creates a complete backup of the database to a file
func (s *BackupService) Export(outputPath string) error {
	log.Println("Starting database export...")

	backup := &BackupData{
		Version:    "1.0",
		ExportedAt: time.Now(),
	}

	if err := s.exportProfiles(backup); err != nil {
		return fmt.Errorf("failed to export profiles: %w", err)
	}
	if err := s.exportSessions(backup); err != nil {
		return fmt.Errorf("failed to export sessions: %w", err)
	}
	if err := s.exportPassages(backup); err != nil {
		return fmt.Errorf("failed to export passages: %w", err)
	}
	if err := s.exportSlang(backup); err != nil {
		return fmt.Errorf("failed to export slang: %w", err)
	}
	if err := s.exportFlashcards(backup); err != nil {
		return fmt.Errorf("failed to export flashcards: %w", err)
	}
	if err := s.exportFocus(backup); err != nil {
		return fmt.Errorf("failed to export focus sessions: %w", err)
	}

	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(backup); err != nil {
		return fmt.Errorf("failed to encode backup: %w", err)
	}

	log.Printf("Database exported successfully to %s", outputPath)
	log.Printf("Exported: %d profiles, %d sessions, %d passages, %d slang terms, %d flashcards, %d focus sessions",
		len(backup.Profiles), len(backup.Sessions), len(backup.Passages),
		len(backup.Slang), len(backup.Flashcards), len(backup.Focus))

	return nil
}

// Import restores a database from a backup file
func (s *BackupService) Import(inputPath string) error {
	log.Printf("Starting database import from %s...", inputPath)

	file, err := os.Open(inputPath)
	if err != nil {
		return fmt.Errorf("failed to open input file: %w", err)
	}
	defer file.Close()

	return s.ImportFromReader(file)
}

// ImportFromReader restores a database from a backup stream
func (s *BackupService) ImportFromReader(reader io.Reader) error {
	var backup BackupData
	decoder := json.NewDecoder(reader)
	if err := decoder.Decode(&backup); err != nil {
		return fmt.Errorf("failed to decode backup: %w", err)
	}

	log.Printf("Backup version: %s, exported at: %s", backup.Version, backup.ExportedAt)

	// Profiles first, everything else references them
	if err := s.importProfiles(backup.Profiles); err != nil {
		return fmt.Errorf("failed to import profiles: %w", err)
	}
	if err := s.importSessions(backup.Sessions); err != nil {
		return fmt.Errorf("failed to import sessions: %w", err)
	}
	if err := s.importPassages(backup.Passages); err != nil {
		return fmt.Errorf("failed to import passages: %w", err)
	}
	if err := s.importSlang(backup.Slang); err != nil {
		return fmt.Errorf("failed to import slang: %w", err)
	}
	if err := s.importFlashcards(backup.Flashcards); err != nil {
		return fmt.Errorf("failed to import flashcards: %w", err)
	}
	if err := s.importFocus(backup.Focus); err != nil {
		return fmt.Errorf("failed to import focus sessions: %w", err)
	}

	log.Println("Database import completed successfully")
	return nil
}

func (s *BackupService) exportProfiles(backup *BackupData) error {
	query := `SELECT email, name, target_language, target_accent, skill_level, preferred_flavor,
		daily_goal, preferred_voice, assistant_language, assistant_english_accent,
		is_live_assistant_enabled FROM user_profiles ORDER BY email`
	rows, err := s.db.Query(query)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var p ProfileBackup
		if err := rows.Scan(&p.Email, &p.Name, &p.TargetLanguage, &p.TargetAccent, &p.SkillLevel,
			&p.PreferredFlavor, &p.DailyGoal, &p.PreferredVoice, &p.AssistantLanguage,
			&p.AssistantEnglishAccent, &p.IsLiveAssistantEnabled); err != nil {
			return err
		}
		backup.Profiles = append(backup.Profiles, p)
	}
	return rows.Err()
}

func (s *BackupService) exportSessions(backup *BackupData) error {
	query := `SELECT id, user_email, date, language, accent, skill_level, flavor, mode,
		prompt, score, assistant_response, feedback FROM practice_sessions ORDER BY date`
	rows, err := s.db.Query(query)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var sb SessionBackup
		if err := rows.Scan(&sb.ID, &sb.UserEmail, &sb.Date, &sb.Language, &sb.Accent,
			&sb.SkillLevel, &sb.Flavor, &sb.Mode, &sb.Prompt, &sb.Score,
			&sb.AssistantResponse, &sb.Feedback); err != nil {
			return err
		}
		backup.Sessions = append(backup.Sessions, sb)
	}
	return rows.Err()
}

func (s *BackupService) exportPassages(backup *BackupData) error {
	query := "SELECT id, user_email, text, date, language FROM saved_passages ORDER BY date"
	rows, err := s.db.Query(query)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var p PassageBackup
		if err := rows.Scan(&p.ID, &p.UserEmail, &p.Text, &p.Date, &p.Language); err != nil {
			return err
		}
		backup.Passages = append(backup.Passages, p)
	}
	return rows.Err()
}

func (s *BackupService) exportSlang(backup *BackupData) error {
	query := `SELECT id, user_email, term, term_key, meaning, example, region, language,
		date_learned FROM slang_terms ORDER BY date_learned`
	rows, err := s.db.Query(query)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var t SlangBackup
		if err := rows.Scan(&t.ID, &t.UserEmail, &t.Term, &t.TermKey, &t.Meaning,
			&t.Example, &t.Region, &t.Language, &t.DateLearned); err != nil {
			return err
		}
		backup.Slang = append(backup.Slang, t)
	}
	return rows.Err()
}

func (s *BackupService) exportFlashcards(backup *BackupData) error {
	query := `SELECT id, user_email, word, word_key, definition_en, definition_target,
		word_type, practice_count, consecutive_correct, frequency, language, date_added,
		is_custom FROM flashcards ORDER BY date_added`
	rows, err := s.db.Query(query)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var c FlashcardBackup
		if err := rows.Scan(&c.ID, &c.UserEmail, &c.Word, &c.WordKey, &c.DefinitionEn,
			&c.DefinitionTarget, &c.WordType, &c.PracticeCount, &c.ConsecutiveCorrect,
			&c.Frequency, &c.Language, &c.DateAdded, &c.IsCustom); err != nil {
			return err
		}
		backup.Flashcards = append(backup.Flashcards, c)
	}
	return rows.Err()
}

func (s *BackupService) exportFocus(backup *BackupData) error {
	query := "SELECT id, user_email, date, minutes FROM focus_sessions ORDER BY date"
	rows, err := s.db.Query(query)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var f FocusBackup
		if err := rows.Scan(&f.ID, &f.UserEmail, &f.Date, &f.Minutes); err != nil {
			return err
		}
		backup.Focus = append(backup.Focus, f)
	}
	return rows.Err()
}

func (s *BackupService) importProfiles(profiles []ProfileBackup) error {
	log.Printf("Importing %d profiles...", len(profiles))
	for _, p := range profiles {
		query := `INSERT INTO user_profiles (email, name, target_language, target_accent,
			skill_level, preferred_flavor, daily_goal, preferred_voice, assistant_language,
			assistant_english_accent, is_live_assistant_enabled)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
		_, err := s.db.Exec(query, p.Email, p.Name, p.TargetLanguage, p.TargetAccent,
			p.SkillLevel, p.PreferredFlavor, p.DailyGoal, p.PreferredVoice,
			p.AssistantLanguage, p.AssistantEnglishAccent, p.IsLiveAssistantEnabled)
		if err != nil {
			return fmt.Errorf("failed to import profile %s: %w", p.Email, err)
		}
	}
	return nil
}

func (s *BackupService) importSessions(sessions []SessionBackup) error {
	log.Printf("Importing %d sessions...", len(sessions))
	for _, sb := range sessions {
		query := `INSERT INTO practice_sessions (id, user_email, date, language, accent,
			skill_level, flavor, mode, prompt, score, assistant_response, feedback)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
		_, err := s.db.Exec(query, sb.ID, sb.UserEmail, sb.Date, sb.Language, sb.Accent,
			sb.SkillLevel, sb.Flavor, sb.Mode, sb.Prompt, sb.Score,
			sb.AssistantResponse, sb.Feedback)
		if err != nil {
			return fmt.Errorf("failed to import session %s: %w", sb.ID, err)
		}
	}
	return nil
}

func (s *BackupService) importPassages(passages []PassageBackup) error {
	log.Printf("Importing %d passages...", len(passages))
	for _, p := range passages {
		query := "INSERT INTO saved_passages (id, user_email, text, date, language) VALUES (?, ?, ?, ?, ?)"
		_, err := s.db.Exec(query, p.ID, p.UserEmail, p.Text, p.Date, p.Language)
		if err != nil {
			return fmt.Errorf("failed to import passage %s: %w", p.ID, err)
		}
	}
	return nil
}

func (s *BackupService) importSlang(terms []SlangBackup) error {
	log.Printf("Importing %d slang terms...", len(terms))
	for _, t := range terms {
		query := `INSERT INTO slang_terms (id, user_email, term, term_key, meaning, example,
			region, language, date_learned) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
		_, err := s.db.Exec(query, t.ID, t.UserEmail, t.Term, t.TermKey, t.Meaning,
			t.Example, t.Region, t.Language, t.DateLearned)
		if err != nil {
			return fmt.Errorf("failed to import slang term %s: %w", t.ID, err)
		}
	}
	return nil
}

func (s *BackupService) importFlashcards(cards []FlashcardBackup) error {
	log.Printf("Importing %d flashcards...", len(cards))
	for _, c := range cards {
		query := `INSERT INTO flashcards (id, user_email, word, word_key, definition_en,
			definition_target, word_type, practice_count, consecutive_correct, frequency,
			language, date_added, is_custom) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
		_, err := s.db.Exec(query, c.ID, c.UserEmail, c.Word, c.WordKey, c.DefinitionEn,
			c.DefinitionTarget, c.WordType, c.PracticeCount, c.ConsecutiveCorrect,
			c.Frequency, c.Language, c.DateAdded, c.IsCustom)
		if err != nil {
			return fmt.Errorf("failed to import flashcard %s: %w", c.ID, err)
		}
	}
	return nil
}

func (s *BackupService) importFocus(sessions []FocusBackup) error {
	log.Printf("Importing %d focus sessions...", len(sessions))
	for _, f := range sessions {
		query := "INSERT INTO focus_sessions (id, user_email, date, minutes) VALUES (?, ?, ?, ?)"
		_, err := s.db.Exec(query, f.ID, f.UserEmail, f.Date, f.Minutes)
		if err != nil {
			return fmt.Errorf("failed to import focus session %s: %w", f.ID, err)
		}
	}
	return nil
}
