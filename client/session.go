package client

import (
	"encoding/json"
	"log"
	"sync"

	"edugpt/backend/models"
)

// Session state keys, cleared together on sign-out.
const (
	KeyToken     = "edugpt_token"
	KeyUser      = "edugpt_user"
	KeyUserEmail = "edugpt_user_email"
	KeyUserRole  = "edugpt_user_role"
)

// View is the page the session controller routes to based on stored state.
type View string

const (
	ViewLogin     View = "login"
	ViewDashboard View = "dashboard"
)

// SessionStore is the client-side key/value store holding the credential
// and the cached user record.
type SessionStore interface {
	Get(key string) (string, bool)
	Set(key, value string)
	Delete(key string)
}

// MemoryStore is an in-process SessionStore.
type MemoryStore struct {
	mu     sync.Mutex
	values map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]string)}
}

func (m *MemoryStore) Get(key string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	return v, ok
}

func (m *MemoryStore) Set(key, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
}

func (m *MemoryStore) Delete(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
}

// SessionController owns the signed-in state: it drives sign-in/sign-up,
// persists the returned credential and user record, and decides which view
// to show. The backend sync after a successful sign-in is fire-and-forget.
type SessionController struct {
	API    *Client
	Store  SessionStore
	Logger *log.Logger

	syncWG sync.WaitGroup
}

func NewSessionController(api *Client, store SessionStore, logger *log.Logger) *SessionController {
	return &SessionController{API: api, Store: store, Logger: logger}
}

func (sc *SessionController) SignUp(input RegisterInput) (*models.User, error) {
	result, err := sc.API.Register(input)
	if err != nil {
		return nil, err
	}
	sc.saveSession(result)
	sc.syncInBackground(result)
	return &result.User, nil
}

func (sc *SessionController) SignIn(email, password string) (*models.User, error) {
	result, err := sc.API.Login(email, password)
	if err != nil {
		return nil, err
	}
	sc.saveSession(result)
	sc.syncInBackground(result)
	return &result.User, nil
}

// SignOut clears every session key together.
func (sc *SessionController) SignOut() {
	sc.Store.Delete(KeyToken)
	sc.Store.Delete(KeyUser)
	sc.Store.Delete(KeyUserEmail)
	sc.Store.Delete(KeyUserRole)
}

// CurrentView routes on presence of the stored credential and user record.
func (sc *SessionController) CurrentView() View {
	_, hasToken := sc.Store.Get(KeyToken)
	_, hasUser := sc.Store.Get(KeyUser)
	if hasToken && hasUser {
		return ViewDashboard
	}
	return ViewLogin
}

func (sc *SessionController) Token() string {
	token, _ := sc.Store.Get(KeyToken)
	return token
}

// CurrentUser returns the cached user record, if a session exists.
func (sc *SessionController) CurrentUser() (*models.User, bool) {
	raw, ok := sc.Store.Get(KeyUser)
	if !ok {
		return nil, false
	}
	var user models.User
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		return nil, false
	}
	return &user, true
}

// WaitSync blocks until pending background syncs finish; used by callers
// that need a quiescent state, such as tests.
func (sc *SessionController) WaitSync() {
	sc.syncWG.Wait()
}

func (sc *SessionController) saveSession(result *AuthResult) {
	raw, err := json.Marshal(result.User)
	if err != nil {
		sc.Logger.Printf("session: failed to serialize user record: %v", err)
		raw = []byte("{}")
	}
	sc.Store.Set(KeyToken, result.Token)
	sc.Store.Set(KeyUser, string(raw))
	sc.Store.Set(KeyUserEmail, result.User.Email)
	sc.Store.Set(KeyUserRole, result.User.Role)
}

// syncInBackground pushes the profile to the backend without blocking the
// sign-in flow; failure is logged and never propagated.
func (sc *SessionController) syncInBackground(result *AuthResult) {
	sc.syncWG.Add(1)
	go func() {
		defer sc.syncWG.Done()
		err := sc.API.SyncUser(result.Token, result.User.Email, result.User.DisplayName, result.User.Role)
		if err != nil {
			sc.Logger.Printf("session: backend sync failed (non-blocking): %v", err)
		}
	}()
}
