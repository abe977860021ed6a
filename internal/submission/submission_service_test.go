package submission_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Gpober/pdsLogix-sub001/internal/compensation"
	"github.com/Gpober/pdsLogix-sub001/internal/location"
	"github.com/Gpober/pdsLogix-sub001/internal/messaging/kafka"
	"github.com/Gpober/pdsLogix-sub001/internal/payment"
	"github.com/Gpober/pdsLogix-sub001/internal/period"
	"github.com/Gpober/pdsLogix-sub001/internal/submission"
	submissionerrors "github.com/Gpober/pdsLogix-sub001/internal/submission/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type fakeSubmissionRepository struct {
	withTxFn                 func(tx *gorm.DB) submission.Repository
	createFn                 func(ctx context.Context, sub *submission.Submission) error
	updateFn                 func(ctx context.Context, sub *submission.Submission) error
	updateIfStatusFn         func(ctx context.Context, sub *submission.Submission, priorStatus string) error
	findActiveByKeyFn        func(ctx context.Context, locationID string, payDate time.Time, group period.PayrollGroup) (*submission.Submission, error)
	findByIDFn               func(ctx context.Context, id string) (*submission.Submission, error)
	findAllByLocationFn      func(ctx context.Context, locationID string, status string) ([]submission.Submission, error)
	findAllByStatusFn        func(ctx context.Context, status string) ([]submission.Submission, error)
	replaceEntriesFn         func(ctx context.Context, submissionID string, entries []submission.Entry) error
	updateEntriesStatusFn    func(ctx context.Context, submissionID string, status string) error
	activePayeesFn           func(ctx context.Context, locationID string, group period.PayrollGroup) ([]submission.PayeeProfile, error)
	payeesByIDsFn            func(ctx context.Context, ids []uuid.UUID) ([]submission.PayeeProfile, error)
	appendAuditFn            func(ctx context.Context, audit *submission.ApprovalAudit) error
	findAuditsBySubmissionFn func(ctx context.Context, submissionID string) ([]submission.ApprovalAudit, error)
}

func (f *fakeSubmissionRepository) WithTx(tx *gorm.DB) submission.Repository {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f
}

func (f *fakeSubmissionRepository) Create(ctx context.Context, sub *submission.Submission) error {
	if f.createFn != nil {
		return f.createFn(ctx, sub)
	}
	return nil
}

func (f *fakeSubmissionRepository) Update(ctx context.Context, sub *submission.Submission) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, sub)
	}
	return nil
}

func (f *fakeSubmissionRepository) UpdateIfStatus(ctx context.Context, sub *submission.Submission, priorStatus string) error {
	if f.updateIfStatusFn != nil {
		return f.updateIfStatusFn(ctx, sub, priorStatus)
	}
	return nil
}

func (f *fakeSubmissionRepository) FindActiveByKey(ctx context.Context, locationID string, payDate time.Time, group period.PayrollGroup) (*submission.Submission, error) {
	if f.findActiveByKeyFn != nil {
		return f.findActiveByKeyFn(ctx, locationID, payDate, group)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeSubmissionRepository) FindByID(ctx context.Context, id string) (*submission.Submission, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeSubmissionRepository) FindAllByLocation(ctx context.Context, locationID string, status string) ([]submission.Submission, error) {
	if f.findAllByLocationFn != nil {
		return f.findAllByLocationFn(ctx, locationID, status)
	}
	return nil, nil
}

func (f *fakeSubmissionRepository) FindAllByStatus(ctx context.Context, status string) ([]submission.Submission, error) {
	if f.findAllByStatusFn != nil {
		return f.findAllByStatusFn(ctx, status)
	}
	return nil, nil
}

func (f *fakeSubmissionRepository) ReplaceEntries(ctx context.Context, submissionID string, entries []submission.Entry) error {
	if f.replaceEntriesFn != nil {
		return f.replaceEntriesFn(ctx, submissionID, entries)
	}
	return nil
}

func (f *fakeSubmissionRepository) UpdateEntriesStatus(ctx context.Context, submissionID string, status string) error {
	if f.updateEntriesStatusFn != nil {
		return f.updateEntriesStatusFn(ctx, submissionID, status)
	}
	return nil
}

func (f *fakeSubmissionRepository) ActivePayees(ctx context.Context, locationID string, group period.PayrollGroup) ([]submission.PayeeProfile, error) {
	if f.activePayeesFn != nil {
		return f.activePayeesFn(ctx, locationID, group)
	}
	return nil, nil
}

func (f *fakeSubmissionRepository) PayeesByIDs(ctx context.Context, ids []uuid.UUID) ([]submission.PayeeProfile, error) {
	if f.payeesByIDsFn != nil {
		return f.payeesByIDsFn(ctx, ids)
	}
	return nil, nil
}

func (f *fakeSubmissionRepository) AppendAudit(ctx context.Context, audit *submission.ApprovalAudit) error {
	if f.appendAuditFn != nil {
		return f.appendAuditFn(ctx, audit)
	}
	return nil
}

func (f *fakeSubmissionRepository) FindAuditsBySubmission(ctx context.Context, submissionID string) ([]submission.ApprovalAudit, error) {
	if f.findAuditsBySubmissionFn != nil {
		return f.findAuditsBySubmissionFn(ctx, submissionID)
	}
	return nil, nil
}

type fakePaymentRepository struct {
	withTxFn              func(tx *gorm.DB) payment.Repository
	createBatchFn         func(ctx context.Context, payments []payment.Payment) error
	existsForSubmissionFn func(ctx context.Context, submissionID string) (bool, error)
	findByLocationFn      func(ctx context.Context, locationID string, from, to *time.Time) ([]payment.Payment, error)
}

func (f *fakePaymentRepository) WithTx(tx *gorm.DB) payment.Repository {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f
}

func (f *fakePaymentRepository) CreateBatch(ctx context.Context, payments []payment.Payment) error {
	if f.createBatchFn != nil {
		return f.createBatchFn(ctx, payments)
	}
	return nil
}

func (f *fakePaymentRepository) ExistsForSubmission(ctx context.Context, submissionID string) (bool, error) {
	if f.existsForSubmissionFn != nil {
		return f.existsForSubmissionFn(ctx, submissionID)
	}
	return false, nil
}

func (f *fakePaymentRepository) FindByLocation(ctx context.Context, locationID string, from, to *time.Time) ([]payment.Payment, error) {
	if f.findByLocationFn != nil {
		return f.findByLocationFn(ctx, locationID, from, to)
	}
	return nil, nil
}

type fakeLocationRepository struct {
	findByIDFn func(ctx context.Context, id string) (*location.Location, error)
}

func (f *fakeLocationRepository) FindByID(ctx context.Context, id string) (*location.Location, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return &location.Location{Name: "Downtown"}, nil
}

type fakeOutboxRepository struct {
	withTxFn      func(tx *gorm.DB) kafka.OutboxRepository
	createFn      func(ctx context.Context, event kafka.OutboxEvent) error
	listPendingFn func(ctx context.Context, limit int) ([]kafka.OutboxEvent, error)
	markSentFn    func(ctx context.Context, id string) error
	markFailedFn  func(ctx context.Context, id string, reason string) error
}

func (f *fakeOutboxRepository) WithTx(tx *gorm.DB) kafka.OutboxRepository {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f
}

func (f *fakeOutboxRepository) Create(ctx context.Context, event kafka.OutboxEvent) error {
	if f.createFn != nil {
		return f.createFn(ctx, event)
	}
	return nil
}

func (f *fakeOutboxRepository) ListPending(ctx context.Context, limit int) ([]kafka.OutboxEvent, error) {
	if f.listPendingFn != nil {
		return f.listPendingFn(ctx, limit)
	}
	return nil, nil
}

func (f *fakeOutboxRepository) MarkSent(ctx context.Context, id string) error {
	if f.markSentFn != nil {
		return f.markSentFn(ctx, id)
	}
	return nil
}

func (f *fakeOutboxRepository) MarkFailed(ctx context.Context, id string, reason string) error {
	if f.markFailedFn != nil {
		return f.markFailedFn(ctx, id, reason)
	}
	return nil
}

type submissionServiceDeps struct {
	sqlMock   sqlmock.Sqlmock
	service   submission.Service
	poster    *submission.Poster
	repo      *fakeSubmissionRepository
	payments  *fakePaymentRepository
	locations *fakeLocationRepository
	outbox    *fakeOutboxRepository
}

func setupSubmissionServiceTest(t *testing.T) *submissionServiceDeps {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{
		DisableAutomaticPing:   true,
		SkipDefaultTransaction: true,
		Logger:                 gormlogger.Discard,
	})
	assert.NoError(t, err)

	repo := &fakeSubmissionRepository{}
	payments := &fakePaymentRepository{}
	locations := &fakeLocationRepository{}
	outbox := &fakeOutboxRepository{}

	poster := submission.NewPoster(gormDB, repo, payments, locations, outbox)
	svc := submission.NewService(gormDB, repo, poster)

	return &submissionServiceDeps{
		sqlMock:   sqlMock,
		service:   svc,
		poster:    poster,
		repo:      repo,
		payments:  payments,
		locations: locations,
		outbox:    outbox,
	}
}

func expectTx(t *testing.T, mock sqlmock.Sqlmock, commit bool) {
	t.Helper()
	mock.ExpectBegin()
	if commit {
		mock.ExpectCommit()
	} else {
		mock.ExpectRollback()
	}
}

func hourlyPayee(locationID uuid.UUID, fullName string, rate int64) submission.PayeeProfile {
	return submission.PayeeProfile{
		ID:               uuid.New(),
		LocationID:       locationID,
		FullName:         fullName,
		PayrollGroup:     period.GroupA,
		CompensationType: compensation.TypeHourly,
		HourlyRate:       decimal.NewFromInt(rate),
	}
}

func draftEntry(employeeID string, hours int64) submission.EntryInput {
	return submission.EntryInput{
		EmployeeID: employeeID,
		Hours:      decimal.NewFromInt(hours),
	}
}

// 2025-01-03 is a Group A pay date.
const groupAPayDate = "2025-01-03"

func TestSubmissionService_SaveDraft(t *testing.T) {
	ctx := context.Background()
	locationID := uuid.New()
	actorID := uuid.New().String()

	t.Run("creates a new draft", func(t *testing.T) {
		deps := setupSubmissionServiceTest(t)
		payee := hourlyPayee(locationID, "Dana Whitfield", 20)

		deps.repo.activePayeesFn = func(ctx context.Context, lid string, group period.PayrollGroup) ([]submission.PayeeProfile, error) {
			assert.Equal(t, locationID.String(), lid)
			assert.Equal(t, period.GroupA, group)
			return []submission.PayeeProfile{payee}, nil
		}

		var created *submission.Submission
		deps.repo.createFn = func(ctx context.Context, sub *submission.Submission) error {
			created = sub
			return nil
		}
		var replaced []submission.Entry
		deps.repo.replaceEntriesFn = func(ctx context.Context, submissionID string, entries []submission.Entry) error {
			replaced = entries
			return nil
		}

		expectTx(t, deps.sqlMock, true)

		resp, err := deps.service.SaveDraft(ctx, locationID.String(), actorID, submission.SaveDraftRequest{
			PayDate: groupAPayDate,
			Entries: []submission.EntryInput{draftEntry(payee.ID.String(), 40)},
		})

		assert.NoError(t, err)
		assert.True(t, resp.Saved)
		assert.NotEmpty(t, resp.SubmissionID)

		assert.NotNil(t, created)
		assert.Equal(t, submission.StatusDraft, created.Status)
		assert.Equal(t, "800.00", created.TotalAmount.StringFixed(2))
		assert.Equal(t, 1, created.EmployeeCount)
		assert.Equal(t, "2024-12-25", created.PeriodEnd.Format(period.DateLayout))
		assert.Equal(t, "2024-12-12", created.PeriodStart.Format(period.DateLayout))

		assert.Len(t, replaced, 1)
		assert.Equal(t, submission.StatusDraft, replaced[0].Status)
		assert.Equal(t, "800.00", replaced[0].Amount.StringFixed(2))
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("does not persist when no row has data", func(t *testing.T) {
		deps := setupSubmissionServiceTest(t)
		payee := hourlyPayee(locationID, "Dana Whitfield", 20)

		deps.repo.activePayeesFn = func(ctx context.Context, lid string, group period.PayrollGroup) ([]submission.PayeeProfile, error) {
			return []submission.PayeeProfile{payee}, nil
		}
		deps.repo.createFn = func(ctx context.Context, sub *submission.Submission) error {
			t.Fatal("create should not be called for an empty draft")
			return nil
		}

		// 81 hours is over the cap, so the row contributes no data.
		resp, err := deps.service.SaveDraft(ctx, locationID.String(), actorID, submission.SaveDraftRequest{
			PayDate: groupAPayDate,
			Entries: []submission.EntryInput{draftEntry(payee.ID.String(), 81)},
		})

		assert.NoError(t, err)
		assert.False(t, resp.Saved)
		assert.Empty(t, resp.SubmissionID)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("reuses a rejected submission and clears the rejection", func(t *testing.T) {
		deps := setupSubmissionServiceTest(t)
		payee := hourlyPayee(locationID, "Dana Whitfield", 20)
		rejectedBy := uuid.New()
		rejectedAt := time.Now().UTC()
		note := "missing hours for two employees"
		existing := &submission.Submission{
			ID:            uuid.New(),
			LocationID:    locationID,
			Status:        submission.StatusRejected,
			RejectedBy:    &rejectedBy,
			RejectedAt:    &rejectedAt,
			RejectionNote: &note,
		}

		deps.repo.activePayeesFn = func(ctx context.Context, lid string, group period.PayrollGroup) ([]submission.PayeeProfile, error) {
			return []submission.PayeeProfile{payee}, nil
		}
		deps.repo.findActiveByKeyFn = func(ctx context.Context, lid string, payDate time.Time, group period.PayrollGroup) (*submission.Submission, error) {
			return existing, nil
		}
		var updated *submission.Submission
		deps.repo.updateFn = func(ctx context.Context, sub *submission.Submission) error {
			updated = sub
			return nil
		}

		expectTx(t, deps.sqlMock, true)

		resp, err := deps.service.SaveDraft(ctx, locationID.String(), actorID, submission.SaveDraftRequest{
			PayDate: groupAPayDate,
			Entries: []submission.EntryInput{draftEntry(payee.ID.String(), 40)},
		})

		assert.NoError(t, err)
		assert.True(t, resp.Saved)
		assert.Equal(t, existing.ID.String(), resp.SubmissionID)

		assert.NotNil(t, updated)
		assert.Equal(t, submission.StatusDraft, updated.Status)
		assert.Nil(t, updated.RejectedBy)
		assert.Nil(t, updated.RejectedAt)
		assert.Nil(t, updated.RejectionNote)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("refuses while a submission is pending review", func(t *testing.T) {
		deps := setupSubmissionServiceTest(t)
		payee := hourlyPayee(locationID, "Dana Whitfield", 20)

		deps.repo.activePayeesFn = func(ctx context.Context, lid string, group period.PayrollGroup) ([]submission.PayeeProfile, error) {
			return []submission.PayeeProfile{payee}, nil
		}
		deps.repo.findActiveByKeyFn = func(ctx context.Context, lid string, payDate time.Time, group period.PayrollGroup) (*submission.Submission, error) {
			return &submission.Submission{ID: uuid.New(), Status: submission.StatusPending}, nil
		}

		expectTx(t, deps.sqlMock, false)

		_, err := deps.service.SaveDraft(ctx, locationID.String(), actorID, submission.SaveDraftRequest{
			PayDate: groupAPayDate,
			Entries: []submission.EntryInput{draftEntry(payee.ID.String(), 40)},
		})

		assert.ErrorIs(t, err, submissionerrors.ErrAlreadyPending)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("loses the insert race and reuses the winner", func(t *testing.T) {
		deps := setupSubmissionServiceTest(t)
		payee := hourlyPayee(locationID, "Dana Whitfield", 20)
		winner := &submission.Submission{ID: uuid.New(), LocationID: locationID, Status: submission.StatusDraft}

		deps.repo.activePayeesFn = func(ctx context.Context, lid string, group period.PayrollGroup) ([]submission.PayeeProfile, error) {
			return []submission.PayeeProfile{payee}, nil
		}
		lookups := 0
		deps.repo.findActiveByKeyFn = func(ctx context.Context, lid string, payDate time.Time, group period.PayrollGroup) (*submission.Submission, error) {
			lookups++
			if lookups == 1 {
				return nil, gorm.ErrRecordNotFound
			}
			return winner, nil
		}
		deps.repo.createFn = func(ctx context.Context, sub *submission.Submission) error {
			return &pgconn.PgError{Code: "23505"}
		}
		var updated *submission.Submission
		deps.repo.updateFn = func(ctx context.Context, sub *submission.Submission) error {
			updated = sub
			return nil
		}

		expectTx(t, deps.sqlMock, true)

		resp, err := deps.service.SaveDraft(ctx, locationID.String(), actorID, submission.SaveDraftRequest{
			PayDate: groupAPayDate,
			Entries: []submission.EntryInput{draftEntry(payee.ID.String(), 40)},
		})

		assert.NoError(t, err)
		assert.Equal(t, winner.ID.String(), resp.SubmissionID)
		assert.NotNil(t, updated)
		assert.Equal(t, winner.ID, updated.ID)
		assert.Equal(t, 2, lookups)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("rejects a row for an unknown employee", func(t *testing.T) {
		deps := setupSubmissionServiceTest(t)

		deps.repo.activePayeesFn = func(ctx context.Context, lid string, group period.PayrollGroup) ([]submission.PayeeProfile, error) {
			return nil, nil
		}

		_, err := deps.service.SaveDraft(ctx, locationID.String(), actorID, submission.SaveDraftRequest{
			PayDate: groupAPayDate,
			Entries: []submission.EntryInput{draftEntry(uuid.New().String(), 40)},
		})

		assert.ErrorIs(t, err, submissionerrors.ErrUnknownEmployee)
	})

	t.Run("rejects a stale client payroll group", func(t *testing.T) {
		deps := setupSubmissionServiceTest(t)

		_, err := deps.service.SaveDraft(ctx, locationID.String(), actorID, submission.SaveDraftRequest{
			PayDate:      groupAPayDate,
			PayrollGroup: "B",
		})

		assert.ErrorIs(t, err, submissionerrors.ErrPayrollGroupMismatch)
	})

	t.Run("rejects an unparseable pay date", func(t *testing.T) {
		deps := setupSubmissionServiceTest(t)

		_, err := deps.service.SaveDraft(ctx, locationID.String(), actorID, submission.SaveDraftRequest{
			PayDate: "01/03/2025",
		})

		assert.ErrorIs(t, err, submissionerrors.ErrInvalidPayDate)
	})
}

func TestSubmissionService_Submit(t *testing.T) {
	ctx := context.Background()
	locationID := uuid.New()
	actorID := uuid.New().String()

	t.Run("moves the draft to pending", func(t *testing.T) {
		deps := setupSubmissionServiceTest(t)
		payee := hourlyPayee(locationID, "Dana Whitfield", 20)

		deps.repo.activePayeesFn = func(ctx context.Context, lid string, group period.PayrollGroup) ([]submission.PayeeProfile, error) {
			return []submission.PayeeProfile{payee}, nil
		}
		var updated *submission.Submission
		deps.repo.updateFn = func(ctx context.Context, sub *submission.Submission) error {
			updated = sub
			return nil
		}
		var replaced []submission.Entry
		deps.repo.replaceEntriesFn = func(ctx context.Context, submissionID string, entries []submission.Entry) error {
			replaced = entries
			return nil
		}

		expectTx(t, deps.sqlMock, true)

		resp, err := deps.service.Submit(ctx, locationID.String(), actorID, submission.SubmitRequest{
			PayDate: groupAPayDate,
			Entries: []submission.EntryInput{draftEntry(payee.ID.String(), 40)},
		})

		assert.NoError(t, err)
		assert.Equal(t, submission.StatusPending, resp.Status)
		assert.Equal(t, "800.00", resp.TotalAmount)
		assert.NotNil(t, resp.SubmittedBy)
		assert.Equal(t, actorID, *resp.SubmittedBy)
		assert.NotNil(t, resp.SubmittedAt)

		assert.NotNil(t, updated)
		assert.Equal(t, submission.StatusPending, updated.Status)
		assert.Len(t, replaced, 1)
		assert.Equal(t, submission.StatusPending, replaced[0].Status)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("excludes over-cap rows and fails when nothing remains", func(t *testing.T) {
		deps := setupSubmissionServiceTest(t)
		payee := hourlyPayee(locationID, "Dana Whitfield", 20)

		deps.repo.activePayeesFn = func(ctx context.Context, lid string, group period.PayrollGroup) ([]submission.PayeeProfile, error) {
			return []submission.PayeeProfile{payee}, nil
		}

		_, err := deps.service.Submit(ctx, locationID.String(), actorID, submission.SubmitRequest{
			PayDate: groupAPayDate,
			Entries: []submission.EntryInput{draftEntry(payee.ID.String(), 81)},
		})

		assert.ErrorIs(t, err, submissionerrors.ErrNoEntriesWithData)
	})

	t.Run("refuses while a submission is pending review", func(t *testing.T) {
		deps := setupSubmissionServiceTest(t)
		payee := hourlyPayee(locationID, "Dana Whitfield", 20)

		deps.repo.activePayeesFn = func(ctx context.Context, lid string, group period.PayrollGroup) ([]submission.PayeeProfile, error) {
			return []submission.PayeeProfile{payee}, nil
		}
		deps.repo.findActiveByKeyFn = func(ctx context.Context, lid string, payDate time.Time, group period.PayrollGroup) (*submission.Submission, error) {
			return &submission.Submission{ID: uuid.New(), Status: submission.StatusPending}, nil
		}

		expectTx(t, deps.sqlMock, false)

		_, err := deps.service.Submit(ctx, locationID.String(), actorID, submission.SubmitRequest{
			PayDate: groupAPayDate,
			Entries: []submission.EntryInput{draftEntry(payee.ID.String(), 40)},
		})

		assert.ErrorIs(t, err, submissionerrors.ErrAlreadyPending)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}

func TestSubmissionService_Reject(t *testing.T) {
	ctx := context.Background()
	actorID := uuid.New().String()

	t.Run("rejects a pending submission with an audit trail", func(t *testing.T) {
		deps := setupSubmissionServiceTest(t)
		sub := &submission.Submission{
			ID:           uuid.New(),
			LocationID:   uuid.New(),
			Status:       submission.StatusPending,
			PayrollGroup: period.GroupA,
		}

		deps.repo.findByIDFn = func(ctx context.Context, id string) (*submission.Submission, error) {
			return sub, nil
		}
		var entriesStatus string
		deps.repo.updateEntriesStatusFn = func(ctx context.Context, submissionID string, status string) error {
			entriesStatus = status
			return nil
		}
		var audit *submission.ApprovalAudit
		deps.repo.appendAuditFn = func(ctx context.Context, a *submission.ApprovalAudit) error {
			audit = a
			return nil
		}

		expectTx(t, deps.sqlMock, true)

		resp, err := deps.service.Reject(ctx, actorID, sub.ID.String(), "hours look wrong for week two")

		assert.NoError(t, err)
		assert.Equal(t, submission.StatusRejected, resp.Status)
		assert.NotNil(t, resp.RejectionNote)
		assert.Equal(t, "hours look wrong for week two", *resp.RejectionNote)
		assert.Equal(t, submission.StatusRejected, entriesStatus)

		assert.NotNil(t, audit)
		assert.Equal(t, submission.StatusRejected, audit.Action)
		assert.Equal(t, submission.StatusPending, audit.PriorStatus)
		assert.NotNil(t, audit.Note)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("requires a note", func(t *testing.T) {
		deps := setupSubmissionServiceTest(t)

		_, err := deps.service.Reject(ctx, actorID, uuid.New().String(), "")

		assert.ErrorIs(t, err, submissionerrors.ErrRejectionNoteRequired)
	})

	t.Run("an approval that commits first wins over the rejection", func(t *testing.T) {
		deps := setupSubmissionServiceTest(t)
		sub := &submission.Submission{
			ID:           uuid.New(),
			LocationID:   uuid.New(),
			Status:       submission.StatusPending,
			PayrollGroup: period.GroupA,
		}

		deps.repo.findByIDFn = func(ctx context.Context, id string) (*submission.Submission, error) {
			return sub, nil
		}
		// The row read as PENDING was approved by a concurrent reviewer
		// before the rejection's conditional write ran.
		deps.repo.updateIfStatusFn = func(ctx context.Context, s *submission.Submission, prior string) error {
			assert.Equal(t, submission.StatusPending, prior)
			return gorm.ErrRecordNotFound
		}
		deps.repo.appendAuditFn = func(ctx context.Context, a *submission.ApprovalAudit) error {
			t.Fatal("a lost rejection must not append an audit record")
			return nil
		}

		expectTx(t, deps.sqlMock, false)

		_, err := deps.service.Reject(ctx, actorID, sub.ID.String(), "hours look wrong for week two")

		assert.ErrorIs(t, err, submissionerrors.ErrNotPending)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("refuses a submission that is not pending", func(t *testing.T) {
		deps := setupSubmissionServiceTest(t)
		sub := &submission.Submission{ID: uuid.New(), Status: submission.StatusDraft}

		deps.repo.findByIDFn = func(ctx context.Context, id string) (*submission.Submission, error) {
			return sub, nil
		}

		expectTx(t, deps.sqlMock, false)

		_, err := deps.service.Reject(ctx, actorID, sub.ID.String(), "note")

		assert.ErrorIs(t, err, submissionerrors.ErrNotPending)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}

func TestSubmissionService_Queries(t *testing.T) {
	ctx := context.Background()

	t.Run("get by id maps not found", func(t *testing.T) {
		deps := setupSubmissionServiceTest(t)
		deps.repo.findByIDFn = func(ctx context.Context, id string) (*submission.Submission, error) {
			return nil, gorm.ErrRecordNotFound
		}

		_, err := deps.service.GetByID(ctx, uuid.New().String())

		assert.ErrorIs(t, err, submissionerrors.ErrSubmissionNotFound)
	})

	t.Run("get all validates the location id", func(t *testing.T) {
		deps := setupSubmissionServiceTest(t)

		_, err := deps.service.GetAll(ctx, "not-a-uuid", "")

		assert.ErrorIs(t, err, submissionerrors.ErrInvalidLocationID)
	})

	t.Run("audit history maps rows oldest first", func(t *testing.T) {
		deps := setupSubmissionServiceTest(t)
		subID := uuid.New()
		note := "hours look wrong"
		deps.repo.findAuditsBySubmissionFn = func(ctx context.Context, submissionID string) ([]submission.ApprovalAudit, error) {
			assert.Equal(t, subID.String(), submissionID)
			return []submission.ApprovalAudit{
				{ID: uuid.New(), SubmissionID: subID, Action: submission.StatusRejected, ActorID: uuid.New(), PriorStatus: submission.StatusPending, Note: &note},
				{ID: uuid.New(), SubmissionID: subID, Action: submission.StatusApproved, ActorID: uuid.New(), PriorStatus: submission.StatusPending},
			}, nil
		}

		audits, err := deps.service.GetAudits(ctx, subID.String())

		assert.NoError(t, err)
		assert.Len(t, audits, 2)
		assert.Equal(t, submission.StatusRejected, audits[0].Action)
		assert.Equal(t, &note, audits[0].Note)
		assert.Equal(t, submission.StatusApproved, audits[1].Action)
	})

	t.Run("audit history validates the submission id", func(t *testing.T) {
		deps := setupSubmissionServiceTest(t)

		_, err := deps.service.GetAudits(ctx, "not-a-uuid")

		assert.ErrorIs(t, err, submissionerrors.ErrInvalidSubmissionID)
	})

	t.Run("pending queue surfaces repository errors", func(t *testing.T) {
		deps := setupSubmissionServiceTest(t)
		boom := errors.New("db offline")
		deps.repo.findAllByStatusFn = func(ctx context.Context, status string) ([]submission.Submission, error) {
			assert.Equal(t, submission.StatusPending, status)
			return nil, boom
		}

		_, err := deps.service.GetPendingQueue(ctx)

		assert.ErrorIs(t, err, boom)
	})
}
