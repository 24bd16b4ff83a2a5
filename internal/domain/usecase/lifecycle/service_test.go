package lifecycle

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/auctionly/auction-processor/internal/domain/entity"
	errs "github.com/auctionly/auction-processor/internal/domain/error"
	identityport "github.com/auctionly/auction-processor/internal/domain/port/identity"
	"github.com/auctionly/auction-processor/internal/domain/port/persistence"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---- test doubles ----

type nopLogger struct{}

func (nopLogger) Debug(string, map[string]any) {}
func (nopLogger) Info(string, map[string]any)  {}
func (nopLogger) Warn(string, map[string]any)  {}
func (nopLogger) Error(string, map[string]any) {}
func (nopLogger) Flush() error                 { return nil }

type stubTimeProvider struct {
	now time.Time
}

func (s *stubTimeProvider) Now() time.Time { return s.now }

type fakeVerifier struct {
	tokens map[string]string // token -> uid
}

func (v *fakeVerifier) VerifyToken(_ context.Context, token string) (*identityport.Identity, error) {
	uid, ok := v.tokens[token]
	if !ok {
		return nil, errs.ErrUnauthenticated
	}
	return &identityport.Identity{UID: uid}, nil
}

// memStore is shared mutable state behind the fake repositories
type memStore struct {
	mu       sync.Mutex
	auctions map[string]*entity.Auction
	users    map[string]*entity.User

	// statsErr, when set, fails IncrementStats for the given user id
	statsErr map[string]error
}

func newMemStore() *memStore {
	return &memStore{
		auctions: make(map[string]*entity.Auction),
		users:    make(map[string]*entity.User),
		statsErr: make(map[string]error),
	}
}

func copyAuction(a *entity.Auction) *entity.Auction {
	c := *a
	return &c
}

func copyUser(u *entity.User) *entity.User {
	c := *u
	return &c
}

// memUoW serializes transactions with a mutex and restores a snapshot on
// rollback, mimicking the isolation the real unit of work gets from the
// database.
type memUoW struct {
	store *memStore
	txMu  sync.Mutex

	snapAuctions map[string]*entity.Auction
	snapUsers    map[string]*entity.User
}

type uowCtxKey string

const inTxKey uowCtxKey = "in-tx"

func newMemUoW(store *memStore) *memUoW {
	return &memUoW{store: store}
}

func (u *memUoW) Begin(ctx context.Context) (context.Context, error) {
	u.txMu.Lock()

	u.store.mu.Lock()
	u.snapAuctions = make(map[string]*entity.Auction, len(u.store.auctions))
	for id, a := range u.store.auctions {
		u.snapAuctions[id] = copyAuction(a)
	}
	u.snapUsers = make(map[string]*entity.User, len(u.store.users))
	for id, usr := range u.store.users {
		u.snapUsers[id] = copyUser(usr)
	}
	u.store.mu.Unlock()

	return context.WithValue(ctx, inTxKey, true), nil
}

func (u *memUoW) Commit(ctx context.Context) error {
	if ctx.Value(inTxKey) == nil {
		return fmt.Errorf("no transaction found in context")
	}
	u.txMu.Unlock()
	return nil
}

func (u *memUoW) Rollback(ctx context.Context) error {
	if ctx.Value(inTxKey) == nil {
		return fmt.Errorf("no transaction found in context")
	}
	u.store.mu.Lock()
	u.store.auctions = u.snapAuctions
	u.store.users = u.snapUsers
	u.store.mu.Unlock()
	u.txMu.Unlock()
	return nil
}

func (u *memUoW) GetAuctionRepository(_ context.Context) persistence.AuctionRepository {
	return &memAuctionRepo{store: u.store}
}

func (u *memUoW) GetUserRepository(_ context.Context) persistence.UserRepository {
	return &memUserRepo{store: u.store}
}

func (u *memUoW) GetTransactionRepository(_ context.Context) persistence.TransactionRepository {
	return nil
}

type memAuctionRepo struct {
	store *memStore
}

func (r *memAuctionRepo) GetByID(_ context.Context, id string) (*entity.Auction, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	a, ok := r.store.auctions[id]
	if !ok {
		return nil, errs.ErrAuctionNotFound
	}
	return copyAuction(a), nil
}

func (r *memAuctionRepo) GetByIDForUpdate(ctx context.Context, id string) (*entity.Auction, error) {
	return r.GetByID(ctx, id)
}

func (r *memAuctionRepo) Update(_ context.Context, auction *entity.Auction) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.auctions[auction.ID]; !ok {
		return errs.ErrAuctionNotFound
	}
	r.store.auctions[auction.ID] = copyAuction(auction)
	return nil
}

func (r *memAuctionRepo) ListExpired(_ context.Context, now time.Time, limit int) ([]*entity.Auction, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []*entity.Auction
	for _, a := range r.store.auctions {
		if a.IsExpired(now) && len(out) < limit {
			out = append(out, copyAuction(a))
		}
	}
	return out, nil
}

func (r *memAuctionRepo) ListDueToStart(_ context.Context, now time.Time, limit int) ([]*entity.Auction, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []*entity.Auction
	for _, a := range r.store.auctions {
		if a.IsDueToStart(now) && len(out) < limit {
			out = append(out, copyAuction(a))
		}
	}
	return out, nil
}

type memUserRepo struct {
	store *memStore
}

func (r *memUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	u, ok := r.store.users[id]
	if !ok {
		return nil, errs.ErrUserNotFound
	}
	return copyUser(u), nil
}

func (r *memUserRepo) Create(_ context.Context, user *entity.User) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.users[user.ID] = copyUser(user)
	return nil
}

func (r *memUserRepo) IncrementStats(_ context.Context, userID string, delta entity.StatsDelta) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if err, ok := r.store.statsErr[userID]; ok {
		return err
	}
	u, ok := r.store.users[userID]
	if !ok {
		return errs.ErrUserNotFound
	}
	u.Stats.AuctionsWon += delta.AuctionsWon
	u.Stats.AuctionsSold += delta.AuctionsSold
	u.Stats.TotalSpent += delta.TotalSpent
	u.Stats.TotalEarned += delta.TotalEarned
	return nil
}

// ---- fixtures ----

func testNow() time.Time {
	return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
}

func seedUser(store *memStore, id string) {
	store.users[id] = &entity.User{ID: id}
}

func seedActiveAuction(store *memStore, id, sellerID string, bidderID *string, currentBid float64, endTime time.Time) {
	a := &entity.Auction{
		ID:         id,
		SellerID:   sellerID,
		Title:      "Item " + id,
		CurrentBid: currentBid,
		Status:     entity.StatusActive,
		StartTime:  endTime.Add(-24 * time.Hour),
		EndTime:    endTime,
	}
	if bidderID != nil {
		a.HighestBidderID = bidderID
		name := "bidder " + *bidderID
		a.HighestBidderName = &name
	}
	store.auctions[id] = a
}

func newTestService(store *memStore) *Service {
	verifier := &fakeVerifier{tokens: map[string]string{
		"seller-token": "seller-1",
		"buyer-token":  "buyer-1",
	}}
	return NewService(newMemUoW(store), verifier, &stubTimeProvider{now: testNow()}, nopLogger{})
}

// ---- tests ----

func TestSweepFinalizesExpiredAuctions(t *testing.T) {
	store := newMemStore()
	seedUser(store, "seller-1")
	seedUser(store, "buyer-1")
	bidder := "buyer-1"
	seedActiveAuction(store, "a1", "seller-1", &bidder, 200, testNow().Add(-time.Minute))
	seedActiveAuction(store, "a2", "seller-1", nil, 0, testNow().Add(-time.Minute))
	seedActiveAuction(store, "a3", "seller-1", &bidder, 300, testNow().Add(time.Hour))

	svc := newTestService(store)
	result, err := svc.Sweep(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, result.Finalized)

	// Won auction carries winner and final price
	a1 := store.auctions["a1"]
	assert.Equal(t, entity.StatusEnded, a1.Status)
	require.NotNil(t, a1.WinnerID)
	assert.Equal(t, "buyer-1", *a1.WinnerID)
	require.NotNil(t, a1.FinalPrice)
	assert.Equal(t, 200.0, *a1.FinalPrice)

	// No-bid auction ends with no winner
	a2 := store.auctions["a2"]
	assert.Equal(t, entity.StatusEnded, a2.Status)
	assert.Nil(t, a2.WinnerID)

	// Unexpired auction untouched
	assert.Equal(t, entity.StatusActive, store.auctions["a3"].Status)

	// Stats land exactly once
	assert.Equal(t, int64(1), store.users["buyer-1"].Stats.AuctionsWon)
	assert.Equal(t, 200.0, store.users["buyer-1"].Stats.TotalSpent)
	assert.Equal(t, int64(1), store.users["seller-1"].Stats.AuctionsSold)
	assert.Equal(t, 200.0, store.users["seller-1"].Stats.TotalEarned)
}

func TestSweepIsIdempotent(t *testing.T) {
	store := newMemStore()
	seedUser(store, "seller-1")
	seedUser(store, "buyer-1")
	bidder := "buyer-1"
	seedActiveAuction(store, "a1", "seller-1", &bidder, 150, testNow().Add(-time.Minute))

	svc := newTestService(store)

	first, err := svc.Sweep(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, first.Finalized)

	second, err := svc.Sweep(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, second.Finalized)

	assert.Equal(t, int64(1), store.users["buyer-1"].Stats.AuctionsWon)
	assert.Equal(t, 150.0, store.users["buyer-1"].Stats.TotalSpent)
}

func TestConcurrentSweepsApplyEffectsOnce(t *testing.T) {
	store := newMemStore()
	seedUser(store, "seller-1")
	seedUser(store, "buyer-1")
	bidder := "buyer-1"
	for i := 0; i < 10; i++ {
		seedActiveAuction(store, fmt.Sprintf("a%d", i), "seller-1", &bidder, 100, testNow().Add(-time.Minute))
	}

	svc := newTestService(store)

	var wg sync.WaitGroup
	results := make([]*SweepResult, 4)
	errors := make([]error, 4)
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errors[i] = svc.Sweep(context.Background())
		}(i)
	}
	wg.Wait()

	total := 0
	for i, r := range results {
		require.NoError(t, errors[i])
		total += r.Finalized
	}
	assert.Equal(t, 10, total, "each auction finalized by exactly one sweep")

	assert.Equal(t, int64(10), store.users["buyer-1"].Stats.AuctionsWon)
	assert.Equal(t, 1000.0, store.users["buyer-1"].Stats.TotalSpent)
	assert.Equal(t, int64(10), store.users["seller-1"].Stats.AuctionsSold)
}

func TestSweepActivatesDueAuctions(t *testing.T) {
	store := newMemStore()
	store.auctions["s1"] = &entity.Auction{
		ID:        "s1",
		SellerID:  "seller-1",
		Status:    entity.StatusScheduled,
		StartTime: testNow().Add(-time.Minute),
		EndTime:   testNow().Add(time.Hour),
	}
	store.auctions["s2"] = &entity.Auction{
		ID:        "s2",
		SellerID:  "seller-1",
		Status:    entity.StatusScheduled,
		StartTime: testNow().Add(time.Hour),
		EndTime:   testNow().Add(2 * time.Hour),
	}

	svc := newTestService(store)
	result, err := svc.Sweep(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, result.Activated)
	assert.Equal(t, entity.StatusActive, store.auctions["s1"].Status)
	assert.Equal(t, entity.StatusScheduled, store.auctions["s2"].Status)
}

func TestSweepIsolatesPerItemFailures(t *testing.T) {
	store := newMemStore()
	seedUser(store, "seller-1")
	seedUser(store, "buyer-1")
	bidder := "buyer-1"
	failing := "missing-user"
	seedActiveAuction(store, "bad", "seller-1", &failing, 100, testNow().Add(-time.Minute))
	seedActiveAuction(store, "good", "seller-1", &bidder, 100, testNow().Add(-time.Minute))

	svc := newTestService(store)
	result, err := svc.Sweep(context.Background())
	require.NoError(t, err)

	// The failing item rolls back completely, the rest of the batch lands
	assert.Equal(t, 1, result.Finalized)
	assert.Equal(t, entity.StatusActive, store.auctions["bad"].Status)
	assert.Equal(t, entity.StatusEnded, store.auctions["good"].Status)
	assert.Equal(t, int64(1), store.users["buyer-1"].Stats.AuctionsWon)
}

func TestSweepRollsBackStatusOnStatsFailure(t *testing.T) {
	store := newMemStore()
	seedUser(store, "seller-1")
	seedUser(store, "buyer-1")
	bidder := "buyer-1"
	seedActiveAuction(store, "a1", "seller-1", &bidder, 100, testNow().Add(-time.Minute))
	store.statsErr["seller-1"] = errs.ErrDatabaseConnection

	svc := newTestService(store)
	result, err := svc.Sweep(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, result.Finalized)

	// Neither the status flip nor the winner increment survives
	assert.Equal(t, entity.StatusActive, store.auctions["a1"].Status)
	assert.Equal(t, int64(0), store.users["buyer-1"].Stats.AuctionsWon)
}

func TestEndEarly(t *testing.T) {
	t.Run("Seller ends an active auction", func(t *testing.T) {
		store := newMemStore()
		seedUser(store, "seller-1")
		seedUser(store, "buyer-1")
		bidder := "buyer-1"
		seedActiveAuction(store, "a1", "seller-1", &bidder, 175, testNow().Add(time.Hour))

		svc := newTestService(store)
		require.NoError(t, svc.EndEarly(context.Background(), "a1", "seller-token"))

		a1 := store.auctions["a1"]
		assert.Equal(t, entity.StatusEnded, a1.Status)
		require.NotNil(t, a1.WinnerID)
		assert.Equal(t, "buyer-1", *a1.WinnerID)
		assert.Equal(t, int64(1), store.users["buyer-1"].Stats.AuctionsWon)
		assert.Equal(t, 175.0, store.users["buyer-1"].Stats.TotalSpent)
	})

	t.Run("Non-seller is rejected and nothing changes", func(t *testing.T) {
		store := newMemStore()
		seedUser(store, "seller-1")
		seedUser(store, "buyer-1")
		bidder := "buyer-1"
		seedActiveAuction(store, "a1", "seller-1", &bidder, 175, testNow().Add(time.Hour))

		svc := newTestService(store)
		err := svc.EndEarly(context.Background(), "a1", "buyer-token")
		assert.ErrorIs(t, err, errs.ErrForbidden)

		assert.Equal(t, entity.StatusActive, store.auctions["a1"].Status)
		assert.Equal(t, int64(0), store.users["buyer-1"].Stats.AuctionsWon)
	})

	t.Run("Non-active auction is rejected as forbidden", func(t *testing.T) {
		store := newMemStore()
		seedUser(store, "seller-1")
		seedActiveAuction(store, "a1", "seller-1", nil, 0, testNow().Add(time.Hour))
		store.auctions["a1"].Status = entity.StatusEnded

		svc := newTestService(store)
		err := svc.EndEarly(context.Background(), "a1", "seller-token")
		assert.ErrorIs(t, err, errs.ErrForbidden)
	})

	t.Run("Unknown auction", func(t *testing.T) {
		store := newMemStore()
		svc := newTestService(store)
		err := svc.EndEarly(context.Background(), "missing", "seller-token")
		assert.ErrorIs(t, err, errs.ErrAuctionNotFound)
	})

	t.Run("Bad token", func(t *testing.T) {
		store := newMemStore()
		svc := newTestService(store)
		err := svc.EndEarly(context.Background(), "a1", "garbage")
		assert.ErrorIs(t, err, errs.ErrUnauthenticated)
	})

	t.Run("Concurrent end requests succeed at most once", func(t *testing.T) {
		store := newMemStore()
		seedUser(store, "seller-1")
		seedUser(store, "buyer-1")
		bidder := "buyer-1"
		seedActiveAuction(store, "a1", "seller-1", &bidder, 175, testNow().Add(time.Hour))

		svc := newTestService(store)

		var wg sync.WaitGroup
		outcomes := make([]error, 8)
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				outcomes[i] = svc.EndEarly(context.Background(), "a1", "seller-token")
			}(i)
		}
		wg.Wait()

		succeeded := 0
		for _, err := range outcomes {
			if err == nil {
				succeeded++
			} else {
				assert.ErrorIs(t, err, errs.ErrForbidden)
			}
		}
		assert.Equal(t, 1, succeeded)
		assert.Equal(t, int64(1), store.users["buyer-1"].Stats.AuctionsWon)
	})
}

func TestSweepAfterEndEarlySkipsQuietly(t *testing.T) {
	store := newMemStore()
	seedUser(store, "seller-1")
	seedUser(store, "buyer-1")
	bidder := "buyer-1"
	// Already expired, but the seller ends it first
	seedActiveAuction(store, "a1", "seller-1", &bidder, 90, testNow().Add(-time.Minute))

	svc := newTestService(store)
	require.NoError(t, svc.EndEarly(context.Background(), "a1", "seller-token"))

	result, err := svc.Sweep(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, result.Finalized)
	assert.Equal(t, int64(1), store.users["buyer-1"].Stats.AuctionsWon)
}
