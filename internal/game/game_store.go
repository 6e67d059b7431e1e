// internal/game/game_store.go
package game

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jason-s-yu/bidquiz/internal/models"
)

// MemoryStore is a Store kept in process memory. A single mutex serializes every call, which
// makes UpdateGameState and Mutate atomic. Used for tests and when no database is configured.
type MemoryStore struct {
	mu        sync.Mutex
	teams     []models.Team // creation order
	questions []models.Question
	state     *models.GameState
	bids      []models.Bid // insertion order
	now       func() time.Time
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{now: time.Now}
}

func (s *MemoryStore) ListTeams(ctx context.Context) ([]models.Team, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.teams), nil
}

func (s *MemoryStore) GetTeam(ctx context.Context, id uuid.UUID) (*models.Team, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.teamIndex(id)
	if i < 0 {
		return nil, ErrRecordNotFound
	}
	t := s.teams[i]
	return &t, nil
}

func (s *MemoryStore) GetTeamByName(ctx context.Context, name string) (*models.Team, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range s.teams {
		if t.Name == name {
			return &t, nil
		}
	}
	return nil, ErrRecordNotFound
}

func (s *MemoryStore) CreateTeam(ctx context.Context, team *models.Team) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range s.teams {
		if t.Name == team.Name {
			return ErrDuplicateTeam
		}
	}
	if team.ID == uuid.Nil {
		team.ID = uuid.New()
	}
	s.teams = append(s.teams, *team)
	return nil
}

func (s *MemoryStore) UpdateTeam(ctx context.Context, id uuid.UUID, u TeamUpdate) (*models.Team, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.teamIndex(id)
	if i < 0 {
		return nil, ErrRecordNotFound
	}
	u.apply(&s.teams[i])
	t := s.teams[i]
	return &t, nil
}

func (s *MemoryStore) UpdateAllTeams(ctx context.Context, u TeamUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.teams {
		u.apply(&s.teams[i])
	}
	return nil
}

func (s *MemoryStore) ListQuestions(ctx context.Context) ([]models.Question, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	qs := slices.Clone(s.questions)
	slices.SortFunc(qs, func(a, b models.Question) int { return a.Seq - b.Seq })
	return qs, nil
}

func (s *MemoryStore) GetQuestion(ctx context.Context, id uuid.UUID) (*models.Question, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, q := range s.questions {
		if q.ID == id {
			return &q, nil
		}
	}
	return nil, ErrRecordNotFound
}

func (s *MemoryStore) CreateQuestion(ctx context.Context, q *models.Question) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if q.ID == uuid.Nil {
		q.ID = uuid.New()
	}
	s.questions = append(s.questions, *q)
	return nil
}

func (s *MemoryStore) GetGameState(ctx context.Context) (*models.GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := *s.ensureState()
	return &st, nil
}

func (s *MemoryStore) UpdateGameState(ctx context.Context, fn StateFunc) (*models.GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur := s.ensureState()
	u, err := fn(*cur)
	if err != nil {
		return nil, err
	}
	s.applyState(cur, u)
	st := *cur
	return &st, nil
}

func (s *MemoryStore) DeleteGameState(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = nil
	return nil
}

func (s *MemoryStore) InsertBid(ctx context.Context, bid *models.Bid) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.insertBid(bid)
	return nil
}

func (s *MemoryStore) ListBids(ctx context.Context, round int) ([]models.Bid, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Bid
	for _, b := range s.bids {
		if b.RoundNumber == round {
			out = append(out, b)
		}
	}
	SortBids(out)
	return out, nil
}

func (s *MemoryStore) DeleteBids(ctx context.Context, round int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bids = slices.DeleteFunc(s.bids, func(b models.Bid) bool { return b.RoundNumber == round })
	return nil
}

func (s *MemoryStore) DeleteAllBids(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bids = nil
	return nil
}

func (s *MemoryStore) Mutate(ctx context.Context, teamID uuid.UUID, fn LockedFunc) (*models.Team, *models.GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur := s.ensureState()

	var team *models.Team
	i := s.teamIndex(teamID)
	if i >= 0 {
		t := s.teams[i]
		team = &t
	}

	m, err := fn(*cur, team)
	if err != nil {
		return nil, nil, err
	}
	if team == nil {
		return nil, nil, ErrRecordNotFound
	}

	s.teams[i].Balance += m.BalanceDelta
	if m.Bid != nil {
		s.insertBid(m.Bid)
	}
	if !m.State.IsEmpty() {
		s.applyState(cur, m.State)
	}
	t, st := s.teams[i], *cur
	return &t, &st, nil
}

func (s *MemoryStore) teamIndex(id uuid.UUID) int {
	return slices.IndexFunc(s.teams, func(t models.Team) bool { return t.ID == id })
}

func (s *MemoryStore) ensureState() *models.GameState {
	if s.state == nil {
		st := models.NewGameState()
		st.Version = 1
		st.UpdatedAt = s.now()
		s.state = &st
	}
	return s.state
}

func (s *MemoryStore) applyState(cur *models.GameState, u models.GameStateUpdate) {
	u.Apply(cur)
	cur.Version++
	cur.UpdatedAt = s.now()
}

func (s *MemoryStore) insertBid(bid *models.Bid) {
	if bid.ID == uuid.Nil {
		bid.ID = uuid.New()
	}
	if bid.CreatedAt.IsZero() {
		bid.CreatedAt = s.now()
	}
	s.bids = append(s.bids, *bid)
}
