package service

import (
	"context"
	"errors"
	"sync"

	"clubbot/pkg/logger"
	"clubbot/pkg/models"
	"clubbot/storage"
)

var (
	ErrNotRegistered   = errors.New("user is not registered")
	ErrAlreadyPending  = errors.New("user already has a pending visit request")
	ErrRequestNotFound = errors.New("visit request not found")
	ErrAlreadyResolved = errors.New("visit request already resolved")
)

type VisitService interface {
	Create(ctx context.Context, chatID int64, username string) (*models.VisitRequest, error)
	Approve(ctx context.Context, requestID, adminID int64) (*models.VisitRequest, error)
	Reject(ctx context.Context, requestID, adminID int64) (*models.VisitRequest, error)
	Get(ctx context.Context, requestID int64) (*models.VisitRequest, error)
}

type visitService struct {
	visits storage.IVisitStorage
	users  storage.IUserStorage
	locks  chatLocks
	log    logger.ILogger
}

func NewVisitService(stg storage.IStorage, log logger.ILogger) VisitService {
	return &visitService{
		visits: stg.Visit(),
		users:  stg.User(),
		log:    log,
	}
}

// Create opens a visit request and raises the user's pending flag. The
// flag check and the insert run under the chat's lock, so a user can never
// hold two PENDING requests no matter how fast the taps come in.
func (s *visitService) Create(ctx context.Context, chatID int64, username string) (*models.VisitRequest, error) {
	unlock := s.locks.lock(chatID)
	defer unlock()

	user, err := s.users.Get(ctx, chatID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNotRegistered
	}
	if user.HasPendingRequest {
		return nil, ErrAlreadyPending
	}

	req, err := s.visits.Create(ctx, chatID, username)
	if err != nil {
		return nil, err
	}
	if err := s.users.SetPendingFlag(ctx, chatID, true); err != nil {
		return nil, err
	}

	s.log.Info("visit request created",
		logger.Int64("request_id", req.ID),
		logger.Int64("chat_id", chatID),
	)
	return req, nil
}

func (s *visitService) Approve(ctx context.Context, requestID, adminID int64) (*models.VisitRequest, error) {
	return s.resolve(ctx, requestID, adminID, models.VisitStatusApproved)
}

func (s *visitService) Reject(ctx context.Context, requestID, adminID int64) (*models.VisitRequest, error) {
	return s.resolve(ctx, requestID, adminID, models.VisitStatusRejected)
}

func (s *visitService) Get(ctx context.Context, requestID int64) (*models.VisitRequest, error) {
	req, err := s.visits.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if req == nil {
		return nil, ErrRequestNotFound
	}
	return req, nil
}

func (s *visitService) resolve(ctx context.Context, requestID, adminID int64, status string) (*models.VisitRequest, error) {
	req, err := s.visits.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if req == nil {
		return nil, ErrRequestNotFound
	}

	unlock := s.locks.lock(req.UserChatID)
	defer unlock()

	resolved, err := s.visits.Resolve(ctx, requestID, status, adminID)
	if err != nil {
		return nil, err
	}
	if !resolved {
		return nil, ErrAlreadyResolved
	}

	if status == models.VisitStatusApproved {
		if err := s.users.AddGame(ctx, req.UserChatID); err != nil {
			return nil, err
		}
	}
	if err := s.users.SetPendingFlag(ctx, req.UserChatID, false); err != nil {
		return nil, err
	}

	req.Status = status
	req.ResolvedBy = &adminID

	s.log.Info("visit request resolved",
		logger.Int64("request_id", requestID),
		logger.Int64("admin_id", adminID),
		logger.String("status", status),
	)
	return req, nil
}

// chatLocks hands out one mutex per chat id so request creation and
// resolution for the same user serialize without a global lock.
type chatLocks struct {
	mu    sync.Mutex
	locks map[int64]*sync.Mutex
}

func (c *chatLocks) lock(chatID int64) func() {
	c.mu.Lock()
	if c.locks == nil {
		c.locks = make(map[int64]*sync.Mutex)
	}
	l, ok := c.locks[chatID]
	if !ok {
		l = &sync.Mutex{}
		c.locks[chatID] = l
	}
	c.mu.Unlock()

	l.Lock()
	return l.Unlock
}
