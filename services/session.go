package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/warikan-app/split-api/models"
	"github.com/warikan-app/split-api/utils"
)

// ErrNotFound is returned when a session id does not resolve to a live
// (non-expired) record.
var ErrNotFound = errors.New("session not found")

// Records live for 180 days from the last write.
const sessionTTL = 180 * 24 * time.Hour

// SessionStore is the key-value boundary the handlers talk to. Updates are
// shallow merges with last-write-wins semantics; there is no optimistic
// concurrency check.
type SessionStore interface {
	Create(ctx context.Context, names []string, title string) (string, error)
	Get(ctx context.Context, id string) (*models.Session, error)
	Update(ctx context.Context, id string, patch models.SessionPatch) error
	Delete(ctx context.Context, id string) error
	RemoveParticipant(ctx context.Context, id, participantID string) (*models.Session, error)
}

type SessionService struct {
	db *sql.DB
}

func NewSessionService(db *sql.DB) *SessionService {
	return &SessionService{db: db}
}

var _ SessionStore = (*SessionService)(nil)

// Create stores a fresh session with the given participant names and no
// payments, and returns its id.
func (s *SessionService) Create(ctx context.Context, names []string, title string) (string, error) {
	id, err := utils.NewSessionID()
	if err != nil {
		return "", err
	}

	session := models.Session{
		ID:           id,
		Title:        title,
		CreatedAt:    time.Now().UnixMilli(),
		Participants: make([]models.Participant, 0, len(names)),
		Payments:     []models.Payment{},
	}
	for _, name := range names {
		session.Participants = append(session.Participants, models.Participant{
			ID:   uuid.New().String(),
			Name: strings.TrimSpace(name),
		})
	}

	if err := s.put(ctx, &session, true); err != nil {
		return "", err
	}

	utils.LogSessionAction("created", id)
	return id, nil
}

// Get returns the stored session, or ErrNotFound for absent or expired ids.
func (s *SessionService) Get(ctx context.Context, id string) (*models.Session, error) {
	var raw []byte
	err := s.db.QueryRowContext(ctx, `
		SELECT data FROM split_sessions
		WHERE id = $1 AND expires_at > NOW()
	`, id).Scan(&raw)

	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch session: %w", err)
	}

	var session models.Session
	if err := json.Unmarshal(raw, &session); err != nil {
		return nil, fmt.Errorf("failed to decode session %s: %w", id, err)
	}
	return &session, nil
}

// Update shallow-merges the patch onto the stored record and refreshes the
// TTL. A missing session is a silent no-op, matching the store contract.
func (s *SessionService) Update(ctx context.Context, id string, patch models.SessionPatch) error {
	session, err := s.Get(ctx, id)
	if err == ErrNotFound {
		return nil
	}
	if err != nil {
		return err
	}

	patch.Apply(session)
	return s.put(ctx, session, false)
}

// Delete removes the record. Absence is not an error.
func (s *SessionService) Delete(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM split_sessions WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// RemoveParticipant deletes a participant and cascades to every payment that
// references it as payer or beneficiary, then persists and returns the
// updated session.
func (s *SessionService) RemoveParticipant(ctx context.Context, id, participantID string) (*models.Session, error) {
	session, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	session.RemoveParticipant(participantID)

	if err := s.put(ctx, session, false); err != nil {
		return nil, err
	}
	return session, nil
}

// DeleteExpired removes sessions past their TTL and returns how many went.
func (s *SessionService) DeleteExpired(ctx context.Context) (int64, error) {
	result, err := s.db.ExecContext(ctx, `DELETE FROM split_sessions WHERE expires_at <= NOW()`)
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired sessions: %w", err)
	}
	rows, _ := result.RowsAffected()
	return rows, nil
}

func (s *SessionService) put(ctx context.Context, session *models.Session, isNew bool) error {
	raw, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}

	expiresAt := time.Now().Add(sessionTTL)
	if isNew {
		_, err = s.db.ExecContext(ctx, `
			INSERT INTO split_sessions (id, data, expires_at)
			VALUES ($1, $2, $3)
		`, session.ID, raw, expiresAt)
	} else {
		_, err = s.db.ExecContext(ctx, `
			UPDATE split_sessions
			SET data = $2, updated_at = NOW(), expires_at = $3
			WHERE id = $1
		`, session.ID, raw, expiresAt)
	}
	if err != nil {
		return fmt.Errorf("failed to store session: %w", err)
	}
	return nil
}
