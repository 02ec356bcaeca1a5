package services

import (
	"context"
	"path/filepath"
	"sync"
	"testing"

	"hr_payroll/database"
	"hr_payroll/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// newTestDB opens a private in-memory database with the full schema.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Open("sqlite", "file:"+uuid.NewString()+"?mode=memory&cache=shared", "silent")
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

// newFileTestDB opens a database file so that locking behaves like the
// default on-disk store.
func newFileTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Open("sqlite", filepath.Join(t.TempDir(), "hr.db"), "silent")
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func seedAdmin(t *testing.T, db *gorm.DB, name string) models.Admin {
	t.Helper()
	admin := models.Admin{Name: name, Email: uuid.NewString() + "@example.com", Verified: true}
	require.NoError(t, db.Create(&admin).Error)
	return admin
}

// seedEmployee creates an employee and, when rate is non-empty, a daily salary.
func seedEmployee(t *testing.T, db *gorm.DB, id, adminID uint, name, rate string) models.Employee {
	t.Helper()
	employee := models.Employee{
		ID:      id,
		Name:    name,
		Email:   uuid.NewString() + "@example.com",
		Status:  models.EmployeeStatusActive,
		AdminID: adminID,
	}
	require.NoError(t, db.Create(&employee).Error)

	if rate != "" {
		salary := models.Salary{
			EmployeeID:  employee.ID,
			PaymentType: models.PaymentTypeDaily,
			Amount:      decimal.RequireFromString(rate),
		}
		require.NoError(t, db.Create(&salary).Error)
	}
	return employee
}

func seedAttendance(t *testing.T, db *gorm.DB, employeeID uint, date, status string) {
	t.Helper()
	record := models.Attendance{EmployeeID: employeeID, Date: date, Status: status, Color: "#000000"}
	require.NoError(t, db.Create(&record).Error)
}

type fakeIdentity struct {
	mu        sync.Mutex
	users     map[string]*IdentityUser
	createErr error
	linkErr   error
	lookupErr error
}

func newFakeIdentity() *fakeIdentity {
	return &fakeIdentity{users: map[string]*IdentityUser{}}
}

func (f *fakeIdentity) CreateUser(_ context.Context, email, _ string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return "", f.createErr
	}
	uid := "uid-" + email
	f.users[email] = &IdentityUser{UID: uid, Email: email}
	return uid, nil
}

func (f *fakeIdentity) GetUserByEmail(_ context.Context, email string) (*IdentityUser, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.lookupErr != nil {
		return nil, f.lookupErr
	}
	user, ok := f.users[email]
	if !ok {
		return nil, ErrIdentityUserNotFound
	}
	copied := *user
	return &copied, nil
}

func (f *fakeIdentity) VerificationLink(_ context.Context, email string) (string, error) {
	if f.linkErr != nil {
		return "", f.linkErr
	}
	return "https://id.example.com/verify?email=" + email, nil
}

func (f *fakeIdentity) verify(email string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.users[email].Verified = true
}

type sentMail struct {
	To, Subject, Body string
}

type fakeMailer struct {
	mu   sync.Mutex
	sent []sentMail
	err  error
}

func (f *fakeMailer) Send(_ context.Context, to, subject, body string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, sentMail{To: to, Subject: subject, Body: body})
	return nil
}

// blockingMailer holds Send until release is closed.
type blockingMailer struct {
	entered chan struct{}
	release chan struct{}
}

func newBlockingMailer() *blockingMailer {
	return &blockingMailer{entered: make(chan struct{}), release: make(chan struct{})}
}

func (b *blockingMailer) Send(ctx context.Context, _, _, _ string) error {
	close(b.entered)
	select {
	case <-b.release:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
