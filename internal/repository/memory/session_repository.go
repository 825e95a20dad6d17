package memory

import (
	"sync"
	"time"

	"soukbot-be/pkg/dialogue"

	gocache "github.com/patrickmn/go-cache"
)

// SessionRepository keeps active shopping sessions in memory, keyed by
// user id. Sessions expire with the conversation TTL so abandoned flows
// clean themselves up.
//
// It also owns the per-user turn locks: no two turns for the same user
// may interleave, while different users run fully concurrently.
type SessionRepository struct {
	cache *gocache.Cache
	locks sync.Map // userID -> *sync.Mutex
}

func NewSessionRepository(ttl time.Duration) *SessionRepository {
	c := gocache.New(ttl, 10*time.Minute)
	return &SessionRepository{
		cache: c,
	}
}

func (r *SessionRepository) Save(session *dialogue.Session) {
	r.cache.Set(session.UserID, session, gocache.DefaultExpiration)
}

func (r *SessionRepository) Get(userID string) (*dialogue.Session, bool) {
	if x, found := r.cache.Get(userID); found {
		return x.(*dialogue.Session), true
	}
	return nil, false
}

func (r *SessionRepository) Delete(userID string) {
	r.cache.Delete(userID)
}

// LockUser serializes turns for one user. The returned function
// releases the lock.
func (r *SessionRepository) LockUser(userID string) func() {
	mu, _ := r.locks.LoadOrStore(userID, &sync.Mutex{})
	lock := mu.(*sync.Mutex)
	lock.Lock()
	return lock.Unlock
}
