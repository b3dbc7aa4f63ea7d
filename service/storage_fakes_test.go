package service

import (
	"context"
	"sync"
	"time"

	"clubbot/pkg/logger"
	"clubbot/pkg/models"
	"clubbot/storage"

	"github.com/jackc/pgx/v5/pgxpool"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...logger.Field)    {}
func (nopLogger) Error(string, ...logger.Field)   {}
func (nopLogger) Warning(string, ...logger.Field) {}

type fakeStorage struct {
	users  *fakeUserRepo
	admins *fakeAdminRepo
	visits *fakeVisitRepo
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{
		users:  &fakeUserRepo{users: make(map[int64]*models.User)},
		admins: &fakeAdminRepo{admins: make(map[int64]*models.Admin)},
		visits: &fakeVisitRepo{requests: make(map[int64]*models.VisitRequest)},
	}
}

func (s *fakeStorage) User() storage.IUserStorage   { return s.users }
func (s *fakeStorage) Admin() storage.IAdminStorage { return s.admins }
func (s *fakeStorage) Visit() storage.IVisitStorage { return s.visits }
func (s *fakeStorage) Close()                       {}
func (s *fakeStorage) GetPool() *pgxpool.Pool       { return nil }

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[int64]*models.User

	getErr  error
	flagErr error
}

func (r *fakeUserRepo) GetOrCreate(_ context.Context, chatID int64, username string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[chatID]; ok {
		u.Username = username
		cp := *u
		return &cp, nil
	}
	u := &models.User{ChatID: chatID, Username: username, CreatedAt: time.Now()}
	r.users[chatID] = u
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) Get(_ context.Context, chatID int64) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.getErr != nil {
		return nil, r.getErr
	}
	u, ok := r.users[chatID]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) AcceptTerms(_ context.Context, chatID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[chatID]; ok {
		u.TermsAccepted = true
	}
	return nil
}

func (r *fakeUserRepo) AddGame(_ context.Context, chatID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[chatID]; ok {
		u.GamesPlayed++
		u.BonusPoints += 10
	}
	return nil
}

func (r *fakeUserRepo) AddBonus(_ context.Context, chatID int64, points int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[chatID]; ok {
		u.BonusPoints += points
	}
	return nil
}

func (r *fakeUserRepo) SetPendingFlag(_ context.Context, chatID int64, pending bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.flagErr != nil {
		return r.flagErr
	}
	if u, ok := r.users[chatID]; ok {
		u.HasPendingRequest = pending
	}
	return nil
}

func (r *fakeUserRepo) put(u *models.User) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[u.ChatID] = u
}

func (r *fakeUserRepo) get(chatID int64) models.User {
	r.mu.Lock()
	defer r.mu.Unlock()
	return *r.users[chatID]
}

type fakeAdminRepo struct {
	mu     sync.Mutex
	admins map[int64]*models.Admin
}

func (r *fakeAdminRepo) IsAdmin(_ context.Context, userID int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.admins[userID]
	return ok, nil
}

func (r *fakeAdminRepo) Get(_ context.Context, userID int64) (*models.Admin, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.admins[userID]
	if !ok {
		return nil, nil
	}
	cp := *a
	return &cp, nil
}

func (r *fakeAdminRepo) GetAll(_ context.Context) ([]*models.Admin, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.Admin
	for _, a := range r.admins {
		cp := *a
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeAdminRepo) Upsert(_ context.Context, admin *models.Admin) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *admin
	cp.AddedAt = time.Now()
	r.admins[admin.UserID] = &cp
	return nil
}

func (r *fakeAdminRepo) Delete(_ context.Context, userID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.admins, userID)
	return nil
}

type fakeVisitRepo struct {
	mu       sync.Mutex
	nextID   int64
	requests map[int64]*models.VisitRequest
}

func (r *fakeVisitRepo) Create(_ context.Context, chatID int64, username string) (*models.VisitRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	req := &models.VisitRequest{
		ID:          r.nextID,
		UserChatID:  chatID,
		Username:    username,
		Status:      models.VisitStatusPending,
		RequestedAt: time.Now(),
	}
	r.requests[req.ID] = req
	cp := *req
	return &cp, nil
}

func (r *fakeVisitRepo) GetByID(_ context.Context, id int64) (*models.VisitRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	req, ok := r.requests[id]
	if !ok {
		return nil, nil
	}
	cp := *req
	return &cp, nil
}

func (r *fakeVisitRepo) Resolve(_ context.Context, id int64, status string, adminID int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	req, ok := r.requests[id]
	if !ok || req.Status != models.VisitStatusPending {
		return false, nil
	}
	now := time.Now()
	req.Status = status
	req.ResolvedBy = &adminID
	req.ResolvedAt = &now
	return true, nil
}

func (r *fakeVisitRepo) pendingCount(chatID int64) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, req := range r.requests {
		if req.UserChatID == chatID && req.Status == models.VisitStatusPending {
			n++
		}
	}
	return n
}
