package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"clubbot/pkg/models"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func registeredUser(chatID int64, username string) *models.User {
	return &models.User{
		ChatID:        chatID,
		Username:      username,
		TermsAccepted: true,
		CreatedAt:     time.Now(),
	}
}

func TestVisitCreateOpensRequestAndRaisesFlag(t *testing.T) {
	stg := newFakeStorage()
	stg.users.put(registeredUser(100, "player"))
	svc := NewVisitService(stg, nopLogger{})

	req, err := svc.Create(context.Background(), 100, "player")
	if err != nil {
		t.Fatalf("expected request to be created, got error: %v", err)
	}

	want := &models.VisitRequest{
		ID:         1,
		UserChatID: 100,
		Username:   "player",
		Status:     models.VisitStatusPending,
	}
	if diff := cmp.Diff(want, req, cmpopts.IgnoreFields(models.VisitRequest{}, "RequestedAt")); diff != "" {
		t.Fatalf("unexpected request (-want +got):\n%s", diff)
	}

	if !stg.users.get(100).HasPendingRequest {
		t.Fatalf("expected pending flag to be raised")
	}
}

func TestVisitCreateRejectsSecondRequest(t *testing.T) {
	stg := newFakeStorage()
	stg.users.put(registeredUser(100, "player"))
	svc := NewVisitService(stg, nopLogger{})

	if _, err := svc.Create(context.Background(), 100, "player"); err != nil {
		t.Fatalf("first request failed: %v", err)
	}
	if _, err := svc.Create(context.Background(), 100, "player"); err != ErrAlreadyPending {
		t.Fatalf("expected ErrAlreadyPending, got %v", err)
	}
	if got := stg.visits.pendingCount(100); got != 1 {
		t.Fatalf("expected exactly one pending request, got %d", got)
	}
}

func TestVisitCreateForUnknownUser(t *testing.T) {
	stg := newFakeStorage()
	svc := NewVisitService(stg, nopLogger{})

	if _, err := svc.Create(context.Background(), 42, "ghost"); err != ErrNotRegistered {
		t.Fatalf("expected ErrNotRegistered, got %v", err)
	}
}

func TestVisitCreateDoesNotTreatLookupFailureAsAbsence(t *testing.T) {
	stg := newFakeStorage()
	stg.users.put(registeredUser(100, "player"))
	stg.users.getErr = context.DeadlineExceeded
	svc := NewVisitService(stg, nopLogger{})

	_, err := svc.Create(context.Background(), 100, "player")
	if err != context.DeadlineExceeded {
		t.Fatalf("expected the store error to surface, got %v", err)
	}
	if got := stg.visits.pendingCount(100); got != 0 {
		t.Fatalf("expected no request after failed lookup, got %d", got)
	}
}

func TestVisitApproveCreditsGameAndClearsFlag(t *testing.T) {
	stg := newFakeStorage()
	stg.users.put(registeredUser(100, "player"))
	svc := NewVisitService(stg, nopLogger{})

	req, err := svc.Create(context.Background(), 100, "player")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	resolved, err := svc.Approve(context.Background(), req.ID, 1)
	if err != nil {
		t.Fatalf("approve failed: %v", err)
	}
	if resolved.Status != models.VisitStatusApproved {
		t.Fatalf("expected status APPROVED, got %s", resolved.Status)
	}

	user := stg.users.get(100)
	if user.GamesPlayed != 1 {
		t.Fatalf("expected 1 game played, got %d", user.GamesPlayed)
	}
	if user.BonusPoints != 10 {
		t.Fatalf("expected 10 bonus points, got %d", user.BonusPoints)
	}
	if user.HasPendingRequest {
		t.Fatalf("expected pending flag to be cleared")
	}
}

func TestVisitRejectClearsFlagWithoutCredit(t *testing.T) {
	stg := newFakeStorage()
	stg.users.put(registeredUser(100, "player"))
	svc := NewVisitService(stg, nopLogger{})

	req, err := svc.Create(context.Background(), 100, "player")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	resolved, err := svc.Reject(context.Background(), req.ID, 1)
	if err != nil {
		t.Fatalf("reject failed: %v", err)
	}
	if resolved.Status != models.VisitStatusRejected {
		t.Fatalf("expected status REJECTED, got %s", resolved.Status)
	}

	user := stg.users.get(100)
	if user.GamesPlayed != 0 || user.BonusPoints != 0 {
		t.Fatalf("expected no credit on rejection, got games=%d points=%d", user.GamesPlayed, user.BonusPoints)
	}
	if user.HasPendingRequest {
		t.Fatalf("expected pending flag to be cleared")
	}
}

// Resolution is deliberately single-shot: re-approving a terminal request
// must not credit the user a second time.
func TestVisitDoubleApproveDoesNotDoubleCredit(t *testing.T) {
	stg := newFakeStorage()
	stg.users.put(registeredUser(100, "player"))
	svc := NewVisitService(stg, nopLogger{})

	req, err := svc.Create(context.Background(), 100, "player")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if _, err := svc.Approve(context.Background(), req.ID, 1); err != nil {
		t.Fatalf("first approve failed: %v", err)
	}
	if _, err := svc.Approve(context.Background(), req.ID, 2); err != ErrAlreadyResolved {
		t.Fatalf("expected ErrAlreadyResolved, got %v", err)
	}

	user := stg.users.get(100)
	if user.GamesPlayed != 1 || user.BonusPoints != 10 {
		t.Fatalf("double credit detected: games=%d points=%d", user.GamesPlayed, user.BonusPoints)
	}
}

func TestVisitResolveUnknownRequest(t *testing.T) {
	stg := newFakeStorage()
	svc := NewVisitService(stg, nopLogger{})

	if _, err := svc.Approve(context.Background(), 999, 1); err != ErrRequestNotFound {
		t.Fatalf("expected ErrRequestNotFound, got %v", err)
	}
}

func TestVisitResolutionAllowsNewRequest(t *testing.T) {
	stg := newFakeStorage()
	stg.users.put(registeredUser(100, "player"))
	svc := NewVisitService(stg, nopLogger{})

	req, err := svc.Create(context.Background(), 100, "player")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if _, err := svc.Reject(context.Background(), req.ID, 1); err != nil {
		t.Fatalf("reject failed: %v", err)
	}
	if _, err := svc.Create(context.Background(), 100, "player"); err != nil {
		t.Fatalf("expected a fresh request after resolution, got %v", err)
	}
}

func TestVisitConcurrentCreatesKeepSinglePending(t *testing.T) {
	stg := newFakeStorage()
	stg.users.put(registeredUser(100, "player"))
	svc := NewVisitService(stg, nopLogger{})

	var wg sync.WaitGroup
	var mu sync.Mutex
	created := 0

	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := svc.Create(context.Background(), 100, "player"); err == nil {
				mu.Lock()
				created++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if created != 1 {
		t.Fatalf("expected exactly one successful create, got %d", created)
	}
	if got := stg.visits.pendingCount(100); got != 1 {
		t.Fatalf("expected one pending request, got %d", got)
	}
}

func TestVisitConcurrentResolvesCreditOnce(t *testing.T) {
	stg := newFakeStorage()
	stg.users.put(registeredUser(100, "player"))
	svc := NewVisitService(stg, nopLogger{})

	req, err := svc.Create(context.Background(), 100, "player")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		adminID := int64(i + 1)
		wg.Add(1)
		go func() {
			defer wg.Done()
			svc.Approve(context.Background(), req.ID, adminID)
		}()
	}
	wg.Wait()

	user := stg.users.get(100)
	if user.GamesPlayed != 1 || user.BonusPoints != 10 {
		t.Fatalf("expected a single credit, got games=%d points=%d", user.GamesPlayed, user.BonusPoints)
	}
}
