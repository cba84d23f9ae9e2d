package handlers

import (
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"

	"serenity/services"
)

const (
	sessionCookie = "serenity_sid"
	sessionHeader = "X-Session-ID"
	maxSessions   = 10000
	sessionTTL    = 12 * time.Hour
)

// sessionState 匿名会话在内存中的状态
type sessionState struct {
	chat   *services.ChatSession
	stress *services.StressDetector
}

// sessionStore 按会话ID保存内存状态，超过容量或长期不活跃的会话被丢弃
type sessionStore struct {
	mu       sync.Mutex
	lru      *expirable.LRU[string, *sessionState]
	newState func(id string) *sessionState
}

func newSessionStore(size int, ttl time.Duration, newState func(id string) *sessionState) *sessionStore {
	return &sessionStore{
		lru:      expirable.NewLRU[string, *sessionState](size, nil, ttl),
		newState: newState,
	}
}

// get 获取或创建会话状态，每次访问重新计算过期时间
func (s *sessionStore) get(id string) *sessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.lru.Get(id)
	if !ok {
		st = s.newState(id)
	}
	s.lru.Add(id, st)
	return st
}

func (s *sessionStore) remove(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lru.Remove(id)
}

func (s *sessionStore) size() int {
	return s.lru.Len()
}

// sessionID 从Cookie或请求头读取匿名会话ID，没有或无效时生成新ID并写入Cookie
func sessionID(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(sessionCookie); err == nil {
		if _, err := uuid.Parse(c.Value); err == nil {
			return c.Value
		}
	}
	if v := r.Header.Get(sessionHeader); v != "" {
		if _, err := uuid.Parse(v); err == nil {
			return v
		}
	}

	id := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    id,
		Path:     "/",
		MaxAge:   int((365 * 24 * time.Hour).Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	w.Header().Set(sessionHeader, id)
	return id
}
