package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/pawbook/pawbook/internal/delivery/dto"
	"github.com/pawbook/pawbook/internal/domain/entity"
	"github.com/pawbook/pawbook/internal/repository"
	"github.com/pawbook/pawbook/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newSignupUsecaseForTest(t *testing.T, db *gorm.DB) SignupUsecase {
	t.Helper()
	return NewSignupUsecase(
		db,
		testLogger(),
		repository.NewSessionRepository(),
		repository.NewSessionSignupRepository(),
		repository.NewWaitlistEntryRepository(),
		repository.NewDogRepository(),
		newTestLockService(t),
		service.NewAuditService(testLogger(), repository.NewAuditLogRepository()),
	)
}

// signupFixture creates a trainer, a session and n owners each with one dog.
type signupFixture struct {
	trainer *entity.User
	session *entity.Session
	owners  []*entity.User
	dogs    []*entity.Dog
}

func newSignupFixture(t *testing.T, db *gorm.DB, capacity int, waitlistEnabled bool, n int) *signupFixture {
	t.Helper()
	f := &signupFixture{
		trainer: createTestUser(t, db, entity.RoleIDTrainer, "trainer@test.local"),
	}
	f.session = createTestSession(t, db, f.trainer.ID, capacity, waitlistEnabled)
	for i := 0; i < n; i++ {
		owner := createTestUser(t, db, entity.RoleIDOwner, "owner"+string(rune('a'+i))+"@test.local")
		f.owners = append(f.owners, owner)
		f.dogs = append(f.dogs, createTestDog(t, db, owner.ID, "Dog"+string(rune('A'+i))))
	}
	return f
}

func TestSignupCapacityOverflowToWaitlist(t *testing.T) {
	db := setupTestDB(t)
	uc := newSignupUsecaseForTest(t, db)
	ctx := context.Background()
	f := newSignupFixture(t, db, 2, true, 3)

	for i := 0; i < 2; i++ {
		result, err := uc.Signup(ctx, f.owners[i].ID, f.session.ID, &dto.CreateSignupRequest{DogID: f.dogs[i].ID})
		require.NoError(t, err)
		assert.False(t, result.Waitlisted)
		require.NotNil(t, result.Signup)
		assert.Equal(t, "pending", result.Signup.Status)
	}

	// Third dog overflows to the waitlist instead of failing.
	result, err := uc.Signup(ctx, f.owners[2].ID, f.session.ID, &dto.CreateSignupRequest{DogID: f.dogs[2].ID})
	require.NoError(t, err)
	assert.True(t, result.Waitlisted)
	require.NotNil(t, result.WaitlistEntry)
	assert.Nil(t, result.Signup)
}

func TestSignupFullWithoutWaitlist(t *testing.T) {
	db := setupTestDB(t)
	uc := newSignupUsecaseForTest(t, db)
	ctx := context.Background()
	f := newSignupFixture(t, db, 1, false, 2)

	_, err := uc.Signup(ctx, f.owners[0].ID, f.session.ID, &dto.CreateSignupRequest{DogID: f.dogs[0].ID})
	require.NoError(t, err)

	_, err = uc.Signup(ctx, f.owners[1].ID, f.session.ID, &dto.CreateSignupRequest{DogID: f.dogs[1].ID})
	assert.ErrorIs(t, err, ErrSessionFull)
}

func TestSignupOneMembershipPerDog(t *testing.T) {
	db := setupTestDB(t)
	uc := newSignupUsecaseForTest(t, db)
	ctx := context.Background()
	f := newSignupFixture(t, db, 1, true, 2)

	_, err := uc.Signup(ctx, f.owners[0].ID, f.session.ID, &dto.CreateSignupRequest{DogID: f.dogs[0].ID})
	require.NoError(t, err)

	_, err = uc.Signup(ctx, f.owners[0].ID, f.session.ID, &dto.CreateSignupRequest{DogID: f.dogs[0].ID})
	assert.ErrorIs(t, err, ErrAlreadySignedUp)

	// Second dog lands on the waitlist; signing up again is also refused.
	result, err := uc.Signup(ctx, f.owners[1].ID, f.session.ID, &dto.CreateSignupRequest{DogID: f.dogs[1].ID})
	require.NoError(t, err)
	require.True(t, result.Waitlisted)

	_, err = uc.Signup(ctx, f.owners[1].ID, f.session.ID, &dto.CreateSignupRequest{DogID: f.dogs[1].ID})
	assert.ErrorIs(t, err, ErrAlreadyWaitlisted)
}

func TestSignupClosedSession(t *testing.T) {
	db := setupTestDB(t)
	uc := newSignupUsecaseForTest(t, db)
	ctx := context.Background()

	trainer := createTestUser(t, db, entity.RoleIDTrainer, "trainer@test.local")
	owner := createTestUser(t, db, entity.RoleIDOwner, "owner@test.local")
	dog := createTestDog(t, db, owner.ID, "Rex")

	// A session that already started accepts no new members.
	date := today().AddDate(0, 0, -1)
	past := &entity.Session{
		TrainerID: trainer.ID,
		Title:     "Yesterday's class",
		Date:      date,
		StartAt:   date.Add(10 * time.Hour),
		EndAt:     date.Add(11 * time.Hour),
		Capacity:  5,
		Status:    entity.SessionStatusScheduled,
	}
	require.NoError(t, db.Create(past).Error)

	_, err := uc.Signup(ctx, owner.ID, past.ID, &dto.CreateSignupRequest{DogID: dog.ID})
	assert.ErrorIs(t, err, ErrSessionClosed)
}

func TestApproveSignupRechecksCapacity(t *testing.T) {
	db := setupTestDB(t)
	uc := newSignupUsecaseForTest(t, db)
	ctx := context.Background()
	f := newSignupFixture(t, db, 1, false, 2)

	result, err := uc.Signup(ctx, f.owners[0].ID, f.session.ID, &dto.CreateSignupRequest{DogID: f.dogs[0].ID})
	require.NoError(t, err)

	// A second pending signup, as left behind by a later capacity reduction.
	extra := &entity.SessionSignup{
		SessionID: f.session.ID,
		DogID:     f.dogs[1].ID,
		Status:    entity.SignupStatusPending,
	}
	require.NoError(t, db.Create(extra).Error)

	approved, err := uc.ApproveSignup(ctx, f.trainer.ID, f.session.ID, result.Signup.ID)
	require.NoError(t, err)
	assert.Equal(t, "approved", approved.Status)

	// Only approved seats count at decision time: the session holds one.
	_, err = uc.ApproveSignup(ctx, f.trainer.ID, f.session.ID, extra.ID)
	assert.ErrorIs(t, err, ErrSessionFull)

	_, err = uc.ApproveSignup(ctx, f.trainer.ID, f.session.ID, result.Signup.ID)
	assert.ErrorIs(t, err, ErrSessionFull)
}

func TestApproveSignupAuthorization(t *testing.T) {
	db := setupTestDB(t)
	uc := newSignupUsecaseForTest(t, db)
	ctx := context.Background()
	f := newSignupFixture(t, db, 2, false, 1)
	stranger := createTestUser(t, db, entity.RoleIDTrainer, "stranger@test.local")

	result, err := uc.Signup(ctx, f.owners[0].ID, f.session.ID, &dto.CreateSignupRequest{DogID: f.dogs[0].ID})
	require.NoError(t, err)

	_, err = uc.ApproveSignup(ctx, stranger.ID, f.session.ID, result.Signup.ID)
	assert.ErrorIs(t, err, ErrNotSessionTrainer)

	_, err = uc.ApproveSignup(ctx, f.trainer.ID, f.session.ID, uuid.New())
	assert.ErrorIs(t, err, ErrSignupNotFound)
}

func TestRejectSignup(t *testing.T) {
	db := setupTestDB(t)
	uc := newSignupUsecaseForTest(t, db)
	ctx := context.Background()
	f := newSignupFixture(t, db, 2, false, 1)

	result, err := uc.Signup(ctx, f.owners[0].ID, f.session.ID, &dto.CreateSignupRequest{DogID: f.dogs[0].ID})
	require.NoError(t, err)

	require.NoError(t, uc.RejectSignup(ctx, f.trainer.ID, f.session.ID, result.Signup.ID, &dto.RejectSignupRequest{Reason: "not a fit"}))

	err = uc.RejectSignup(ctx, f.trainer.ID, f.session.ID, result.Signup.ID, &dto.RejectSignupRequest{})
	assert.ErrorIs(t, err, ErrSignupNotPending)

	// A rejected signup still blocks re-signup for the same dog.
	_, err = uc.Signup(ctx, f.owners[0].ID, f.session.ID, &dto.CreateSignupRequest{DogID: f.dogs[0].ID})
	assert.ErrorIs(t, err, ErrAlreadySignedUp)
}

func TestCancelApprovedSignupPromotesWaitlistHead(t *testing.T) {
	db := setupTestDB(t)
	uc := newSignupUsecaseForTest(t, db)
	ctx := context.Background()
	f := newSignupFixture(t, db, 1, true, 3)

	result, err := uc.Signup(ctx, f.owners[0].ID, f.session.ID, &dto.CreateSignupRequest{DogID: f.dogs[0].ID})
	require.NoError(t, err)

	// Dogs B and C overflow to the waitlist in order.
	for i := 1; i < 3; i++ {
		overflow, err := uc.Signup(ctx, f.owners[i].ID, f.session.ID, &dto.CreateSignupRequest{DogID: f.dogs[i].ID})
		require.NoError(t, err)
		require.True(t, overflow.Waitlisted)
	}

	_, err = uc.ApproveSignup(ctx, f.trainer.ID, f.session.ID, result.Signup.ID)
	require.NoError(t, err)

	require.NoError(t, uc.CancelSignup(ctx, f.owners[0].ID, f.session.ID, f.dogs[0].ID))

	// The freed seat went to dog B as a pending signup, atomically with the
	// cancellation.
	var promoted entity.SessionSignup
	require.NoError(t, db.Where("session_id = ? AND dog_id = ?", f.session.ID, f.dogs[1].ID).First(&promoted).Error)
	assert.Equal(t, entity.SignupStatusPending, promoted.Status)

	var remaining []entity.WaitlistEntry
	require.NoError(t, db.Where("session_id = ?", f.session.ID).Find(&remaining).Error)
	require.Len(t, remaining, 1)
	assert.Equal(t, f.dogs[2].ID, remaining[0].DogID)

	var promoteAudit int64
	require.NoError(t, db.Model(&entity.AuditLog{}).Where("action = ?", entity.AuditActionWaitlistPromote).Count(&promoteAudit).Error)
	assert.EqualValues(t, 1, promoteAudit)
}

func TestCancelPendingSignupDoesNotPromote(t *testing.T) {
	db := setupTestDB(t)
	uc := newSignupUsecaseForTest(t, db)
	ctx := context.Background()
	f := newSignupFixture(t, db, 1, true, 2)

	_, err := uc.Signup(ctx, f.owners[0].ID, f.session.ID, &dto.CreateSignupRequest{DogID: f.dogs[0].ID})
	require.NoError(t, err)

	overflow, err := uc.Signup(ctx, f.owners[1].ID, f.session.ID, &dto.CreateSignupRequest{DogID: f.dogs[1].ID})
	require.NoError(t, err)
	require.True(t, overflow.Waitlisted)

	// Cancelling a seat that was never confirmed leaves the waitlist alone.
	require.NoError(t, uc.CancelSignup(ctx, f.owners[0].ID, f.session.ID, f.dogs[0].ID))

	var remaining int64
	require.NoError(t, db.Model(&entity.WaitlistEntry{}).Where("session_id = ?", f.session.ID).Count(&remaining).Error)
	assert.EqualValues(t, 1, remaining)

	// Cancelling again fails; the membership is already released.
	err = uc.CancelSignup(ctx, f.owners[0].ID, f.session.ID, f.dogs[0].ID)
	assert.ErrorIs(t, err, ErrSignupNotFound)

	// The dog may sign up again after cancelling.
	_, err = uc.Signup(ctx, f.owners[0].ID, f.session.ID, &dto.CreateSignupRequest{DogID: f.dogs[0].ID})
	assert.NoError(t, err)
}

func TestTrainerMayCancelSignup(t *testing.T) {
	db := setupTestDB(t)
	uc := newSignupUsecaseForTest(t, db)
	ctx := context.Background()
	f := newSignupFixture(t, db, 2, false, 2)

	_, err := uc.Signup(ctx, f.owners[0].ID, f.session.ID, &dto.CreateSignupRequest{DogID: f.dogs[0].ID})
	require.NoError(t, err)

	// Another owner cannot release somebody else's seat.
	err = uc.CancelSignup(ctx, f.owners[1].ID, f.session.ID, f.dogs[0].ID)
	assert.ErrorIs(t, err, ErrDogNotOwned)

	assert.NoError(t, uc.CancelSignup(ctx, f.trainer.ID, f.session.ID, f.dogs[0].ID))
}

func TestWaitlistPositions(t *testing.T) {
	db := setupTestDB(t)
	uc := newSignupUsecaseForTest(t, db)
	ctx := context.Background()
	f := newSignupFixture(t, db, 5, true, 3)

	// Joining explicitly is allowed even while the session has room.
	for i := 0; i < 3; i++ {
		_, err := uc.JoinWaitlist(ctx, f.owners[i].ID, f.session.ID, &dto.JoinWaitlistRequest{DogID: f.dogs[i].ID})
		require.NoError(t, err)
	}

	for i := 0; i < 3; i++ {
		pos, err := uc.GetWaitlistPosition(ctx, f.owners[i].ID, f.session.ID, f.dogs[i].ID)
		require.NoError(t, err)
		assert.EqualValues(t, i+1, pos.Position)
	}

	// The head leaving shifts everyone up.
	require.NoError(t, uc.LeaveWaitlist(ctx, f.owners[0].ID, f.session.ID, f.dogs[0].ID))

	pos, err := uc.GetWaitlistPosition(ctx, f.owners[1].ID, f.session.ID, f.dogs[1].ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, pos.Position)

	err = uc.LeaveWaitlist(ctx, f.owners[0].ID, f.session.ID, f.dogs[0].ID)
	assert.ErrorIs(t, err, ErrNotOnWaitlist)
}

func TestJoinWaitlistDisabled(t *testing.T) {
	db := setupTestDB(t)
	uc := newSignupUsecaseForTest(t, db)
	ctx := context.Background()
	f := newSignupFixture(t, db, 5, false, 1)

	_, err := uc.JoinWaitlist(ctx, f.owners[0].ID, f.session.ID, &dto.JoinWaitlistRequest{DogID: f.dogs[0].ID})
	assert.ErrorIs(t, err, ErrWaitlistDisabled)
}
