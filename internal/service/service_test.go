package service

import (
	"context"
	"io"
	"sync"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/glebarez/sqlite"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Skotchmaster/photo_share/internal/cache"
	"github.com/Skotchmaster/photo_share/internal/models"
	"github.com/Skotchmaster/photo_share/internal/repo"
	"github.com/Skotchmaster/photo_share/internal/tokens"
)

type fakeMailer struct {
	mu            sync.Mutex
	confirmations []string
	resets        map[string]string
}

func newFakeMailer() *fakeMailer {
	return &fakeMailer{resets: make(map[string]string)}
}

func (m *fakeMailer) SendConfirmation(_ context.Context, email, _, _, _ string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.confirmations = append(m.confirmations, email)
	return nil
}

func (m *fakeMailer) SendPasswordReset(_ context.Context, email, _, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.resets[email] = token
	return nil
}

func (m *fakeMailer) confirmationCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.confirmations)
}

type fakeProducer struct {
	mu     sync.Mutex
	events []map[string]any
}

func (p *fakeProducer) PublishEvent(_ context.Context, _, _ string, event any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if m, ok := event.(map[string]any); ok {
		p.events = append(p.events, m)
	}
	return nil
}

func (p *fakeProducer) eventTypes() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	types := make([]string, 0, len(p.events))
	for _, e := range p.events {
		if t, ok := e["type"].(string); ok {
			types = append(types, t)
		}
	}
	return types
}

type fakeUploader struct {
	mu        sync.Mutex
	publicIDs []string
	url       string
	err       error
}

func (u *fakeUploader) Upload(_ context.Context, _ io.Reader, publicID string) (string, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.err != nil {
		return "", u.err
	}
	u.publicIDs = append(u.publicIDs, publicID)
	return u.url, nil
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Photo{},
		&models.Tag{},
		&models.Comment{},
		&models.PhotoRating{},
	))
	return db
}

type authEnv struct {
	svc      *AuthService
	repo     *repo.GormRepo
	redis    *miniredis.Miniredis
	mailer   *fakeMailer
	producer *fakeProducer
}

func newAuthEnv(t *testing.T) *authEnv {
	t.Helper()

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	r := &repo.GormRepo{DB: newTestDB(t)}
	mailer := newFakeMailer()
	producer := &fakeProducer{}

	svc := &AuthService{
		Repo:     r,
		Cache:    &cache.UserCache{RDB: rdb},
		Codec:    &tokens.Codec{Secret: []byte("test-jwt-secret")},
		Mailer:   mailer,
		Producer: producer,
		BaseURL:  "http://localhost:8080",
	}

	return &authEnv{svc: svc, repo: r, redis: mr, mailer: mailer, producer: producer}
}

// createConfirmedUser seeds an account that can log in right away.
func (env *authEnv) createConfirmedUser(t *testing.T, email, username, password string) *models.User {
	t.Helper()

	user, err := env.svc.Signup(context.Background(), email, username, password)
	require.NoError(t, err)
	require.NoError(t, env.repo.ConfirmEmail(context.Background(), user))
	return user
}
