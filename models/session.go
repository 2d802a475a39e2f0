package models

// Participant is one member of a split session. Name may be blank; the
// display name falls back to a positional "Person N" at computation time.
type Participant struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Payment records a single expense: who paid, how much, and for whom.
// Amount is kept as the raw string the client sent; non-numeric values are
// treated as zero by the balance calculator, never rejected.
type Payment struct {
	ID          string `json:"id"`
	PayerID     string `json:"payerId"`
	Amount      string `json:"amount"`
	Description string `json:"description"`
	// Beneficiaries of the payment. Empty means "all current participants",
	// resolved at computation time rather than frozen at creation.
	ParticipantIDs []string `json:"participantIds"`
	// Unix timestamp in milliseconds.
	CreatedAt int64 `json:"createdAt,omitempty"`
}

// Session is the full stored record for one bill-splitting group.
type Session struct {
	ID    string `json:"id"`
	Title string `json:"title,omitempty"`
	// Unix timestamp in milliseconds.
	CreatedAt    int64         `json:"createdAt,omitempty"`
	Participants []Participant `json:"participants"`
	Payments     []Payment     `json:"payments"`
	// Composite settlement keys the user has ticked off.
	DoneSettlements []string `json:"doneSettlements,omitempty"`
	Cleared         bool     `json:"cleared,omitempty"`
}

// RemoveParticipant deletes the participant and cascades to every payment
// that references it as payer or beneficiary. There is no foreign-key check
// anywhere else; this cascade is what keeps payerId references valid.
func (s *Session) RemoveParticipant(participantID string) {
	participants := s.Participants[:0:0]
	for _, p := range s.Participants {
		if p.ID != participantID {
			participants = append(participants, p)
		}
	}
	s.Participants = participants

	payments := s.Payments[:0:0]
	for _, pay := range s.Payments {
		if pay.PayerID == participantID || containsID(pay.ParticipantIDs, participantID) {
			continue
		}
		payments = append(payments, pay)
	}
	s.Payments = payments
}

func containsID(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

// SessionPatch is a partial update: nil fields are left untouched, non-nil
// fields replace the stored value wholesale (shallow merge, last write wins).
type SessionPatch struct {
	Title           *string        `json:"title"`
	Participants    *[]Participant `json:"participants"`
	Payments        *[]Payment     `json:"payments"`
	DoneSettlements *[]string      `json:"doneSettlements"`
	Cleared         *bool          `json:"cleared"`
}

// IsZero reports whether the patch carries no fields at all.
func (p SessionPatch) IsZero() bool {
	return p.Title == nil && p.Participants == nil && p.Payments == nil &&
		p.DoneSettlements == nil && p.Cleared == nil
}

// Merge overlays other on top of p, field by field.
func (p SessionPatch) Merge(other SessionPatch) SessionPatch {
	if other.Title != nil {
		p.Title = other.Title
	}
	if other.Participants != nil {
		p.Participants = other.Participants
	}
	if other.Payments != nil {
		p.Payments = other.Payments
	}
	if other.DoneSettlements != nil {
		p.DoneSettlements = other.DoneSettlements
	}
	if other.Cleared != nil {
		p.Cleared = other.Cleared
	}
	return p
}

// Apply writes the patch's non-nil fields onto the session.
func (p SessionPatch) Apply(s *Session) {
	if p.Title != nil {
		s.Title = *p.Title
	}
	if p.Participants != nil {
		s.Participants = *p.Participants
	}
	if p.Payments != nil {
		s.Payments = *p.Payments
	}
	if p.DoneSettlements != nil {
		s.DoneSettlements = *p.DoneSettlements
	}
	if p.Cleared != nil {
		s.Cleared = *p.Cleared
	}
}

type CreateSessionRequest struct {
	Title        string `json:"title"`
	Participants []struct {
		Name string `json:"name"`
	} `json:"participants"`
}

type CreateSessionResponse struct {
	ID string `json:"id"`
}
