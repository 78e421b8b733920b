package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/SaaiSiddarth/Content-Scratch-Pad/internal/auth"
	"github.com/SaaiSiddarth/Content-Scratch-Pad/internal/database/dbtest"
	"github.com/SaaiSiddarth/Content-Scratch-Pad/internal/models"
	"github.com/SaaiSiddarth/Content-Scratch-Pad/internal/websocket"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// stepClock returns increasing timestamps one second apart.
func stepClock(start time.Time) func() time.Time {
	var mu sync.Mutex
	current := start
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		current = current.Add(time.Second)
		return current
	}
}

type recordingNotifier struct {
	mu       sync.Mutex
	messages map[string][]websocket.Message
}

func (n *recordingNotifier) NotifyOwner(ownerID string, msg websocket.Message) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.messages == nil {
		n.messages = make(map[string][]websocket.Message)
	}
	n.messages[ownerID] = append(n.messages[ownerID], msg)
}

func (n *recordingNotifier) actions(ownerID string) []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	var out []string
	for _, m := range n.messages[ownerID] {
		out = append(out, m.Action)
	}
	return out
}

func newAuthService(t *testing.T, db *sqlx.DB) *AuthService {
	t.Helper()
	tokens, err := auth.NewTokenService("test-secret", time.Hour)
	require.NoError(t, err)
	return NewAuthService(NewUserStore(db), auth.NewPasswordHasher(bcrypt.MinCost), tokens)
}

func seedUser(t *testing.T, db *sqlx.DB, email string) models.User {
	t.Helper()
	user := models.User{
		ID:           uuid.New().String(),
		Name:         "user " + email,
		Email:        email,
		PasswordHash: "x",
		CreatedAt:    time.Now().UTC(),
	}
	require.NoError(t, NewUserStore(db).Create(context.Background(), user))
	return user
}

func newIdeaTestEnv(t *testing.T) (*IdeaService, *recordingNotifier, *sqlx.DB) {
	t.Helper()
	db := dbtest.New(t)
	notifier := &recordingNotifier{}
	svc := NewIdeaService(db, notifier)
	svc.now = stepClock(time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC))
	return svc, notifier, db
}
