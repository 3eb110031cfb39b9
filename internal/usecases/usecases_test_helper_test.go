package usecases_test

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"bankflow.backend/internal/config"
	domainRepos "bankflow.backend/internal/domain/repositories"
	infraRepos "bankflow.backend/internal/infrastructure/repositories"
	"bankflow.backend/internal/usecases"
	"bankflow.backend/pkg/logger"
)

func TestMain(m *testing.M) {
	logger.Init("production")
	os.Exit(m.Run())
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", t.Name(), time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err, "open sqlite")
	return db
}

func mustExec(t *testing.T, db *gorm.DB, q string, args ...interface{}) {
	t.Helper()
	require.NoError(t, db.Exec(q, args...).Error, "exec failed: query=%s", q)
}

func createCoreTables(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE users (
		id TEXT PRIMARY KEY,
		first_name TEXT NOT NULL,
		last_name TEXT NOT NULL,
		email TEXT UNIQUE,
		phone TEXT,
		password_hash TEXT NOT NULL,
		role TEXT NOT NULL,
		is_active BOOLEAN NOT NULL,
		email_verified BOOLEAN NOT NULL,
		created_at DATETIME,
		updated_at DATETIME,
		deleted_at DATETIME
	);`)
	mustExec(t, db, `CREATE TABLE accounts (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		balance NUMERIC NOT NULL DEFAULT 0,
		currency TEXT NOT NULL,
		status TEXT NOT NULL,
		created_at DATETIME,
		updated_at DATETIME,
		deleted_at DATETIME
	);`)
	mustExec(t, db, `CREATE TABLE beneficiaries (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		name TEXT NOT NULL,
		bank_name TEXT NOT NULL,
		iban TEXT NOT NULL,
		email TEXT,
		is_verified BOOLEAN NOT NULL,
		created_at DATETIME,
		updated_at DATETIME,
		deleted_at DATETIME
	);`)
	mustExec(t, db, `CREATE TABLE transactions (
		id TEXT PRIMARY KEY,
		sender_account_id TEXT NOT NULL,
		type TEXT NOT NULL,
		amount NUMERIC NOT NULL,
		status TEXT NOT NULL,
		reference TEXT NOT NULL,
		created_at DATETIME,
		updated_at DATETIME
	);`)
	mustExec(t, db, `CREATE TABLE transfers (
		id TEXT PRIMARY KEY,
		sender_account_id TEXT NOT NULL,
		beneficiary_id TEXT NOT NULL,
		amount NUMERIC NOT NULL,
		status TEXT NOT NULL,
		reference TEXT NOT NULL,
		created_at DATETIME,
		updated_at DATETIME
	);`)
	mustExec(t, db, `CREATE TABLE otps (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		code TEXT NOT NULL,
		purpose TEXT NOT NULL,
		expires_at DATETIME NOT NULL,
		is_used BOOLEAN NOT NULL,
		used_at DATETIME,
		attempts INTEGER NOT NULL,
		max_attempts INTEGER NOT NULL,
		created_at DATETIME
	);`)
	mustExec(t, db, `CREATE TABLE notifications (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		type TEXT NOT NULL,
		title TEXT NOT NULL,
		content TEXT NOT NULL,
		sent_at DATETIME,
		created_at DATETIME
	);`)
}

type sentMail struct {
	To      string
	Subject string
	Body    string
}

// fakeMailer records outgoing mail instead of dialing SMTP
type fakeMailer struct {
	mu      sync.Mutex
	failing bool
	sent    []sentMail
}

func (m *fakeMailer) Send(to, subject, body string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failing {
		return errors.New("smtp unreachable")
	}
	m.sent = append(m.sent, sentMail{To: to, Subject: subject, Body: body})
	return nil
}

func (m *fakeMailer) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sent)
}

func (m *fakeMailer) last(t *testing.T) sentMail {
	t.Helper()
	m.mu.Lock()
	defer m.mu.Unlock()
	require.NotEmpty(t, m.sent, "no mail recorded")
	return m.sent[len(m.sent)-1]
}

var codePattern = regexp.MustCompile(`\b\d{6}\b`)

func extractCode(t *testing.T, body string) string {
	t.Helper()
	code := codePattern.FindString(body)
	require.NotEmpty(t, code, "no 6-digit code in mail body: %s", body)
	return code
}

func testOTPConfig() config.OTPConfig {
	return config.OTPConfig{
		Digits:      6,
		Validity:    10 * time.Minute,
		MaxAttempts: 3,
		PendingTTL:  30 * time.Minute,
		ResendFloor: time.Minute,
	}
}

func testBankConfig() config.BankConfig {
	return config.BankConfig{Currency: "TND", Name: "BankFlow Tunisia"}
}

// testEnv wires the usecases against real sqlite-backed repositories
type testEnv struct {
	db               *gorm.DB
	mailer           *fakeMailer
	userRepo         *infraRepos.UserRepository
	accountRepo      *infraRepos.AccountRepository
	beneficiaryRepo  *infraRepos.BeneficiaryRepository
	transactionRepo  *infraRepos.TransactionRepository
	transferRepo     *infraRepos.TransferRepository
	otpRepo          *infraRepos.OTPRepository
	notificationRepo *infraRepos.NotificationRepository
	uow              domainRepos.UnitOfWork
	notifier         *usecases.NotificationUsecase
	otp              *usecases.OTPUsecase
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := newTestDB(t)
	createCoreTables(t, db)

	env := &testEnv{
		db:               db,
		mailer:           &fakeMailer{},
		userRepo:         infraRepos.NewUserRepository(db),
		accountRepo:      infraRepos.NewAccountRepository(db),
		beneficiaryRepo:  infraRepos.NewBeneficiaryRepository(db),
		transactionRepo:  infraRepos.NewTransactionRepository(db),
		transferRepo:     infraRepos.NewTransferRepository(db),
		otpRepo:          infraRepos.NewOTPRepository(db),
		notificationRepo: infraRepos.NewNotificationRepository(db),
		uow:              infraRepos.NewUnitOfWork(db),
	}
	env.notifier = usecases.NewNotificationUsecase(env.notificationRepo, env.userRepo, env.mailer, testBankConfig())
	env.otp = usecases.NewOTPUsecase(env.otpRepo, env.notifier, testOTPConfig())
	return env
}
