package stubserver

import (
	"sync"

	"golang.org/x/crypto/bcrypt"

	"github.com/rekaindo/rekatrack/internal/core/domain"
)

// account is a seeded login identity.
type account struct {
	User         domain.User
	PasswordHash []byte
}

// memStore holds all stub state behind one mutex. Handlers take the lock
// for the whole request so multi-document updates stay atomic, matching
// the all-or-nothing completion semantics the client relies on.
type memStore struct {
	mu            sync.Mutex
	accounts      map[string]*account
	docs          map[int]*domain.TravelDocument
	confirmations map[int]*domain.DeliveryConfirmation
	samples       map[int][]domain.LocationSample
}

func newMemStore() *memStore {
	return &memStore{
		accounts:      make(map[string]*account),
		docs:          make(map[int]*domain.TravelDocument),
		confirmations: make(map[int]*domain.DeliveryConfirmation),
		samples:       make(map[int][]domain.LocationSample),
	}
}

// SeedAccount registers a login. The password is stored as a bcrypt hash.
func (m *memStore) SeedAccount(user domain.User, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.accounts[user.Email] = &account{User: user, PasswordHash: hash}
	return nil
}

// SeedDocuments loads travel documents into the stub.
func (m *memStore) SeedDocuments(docs ...domain.TravelDocument) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range docs {
		d := docs[i]
		m.docs[d.ID] = &d
	}
}

// Samples returns the location samples recorded for a document.
func (m *memStore) Samples(documentID int) []domain.LocationSample {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.LocationSample, len(m.samples[documentID]))
	copy(out, m.samples[documentID])
	return out
}

// Document returns a copy of the stored document, if present.
func (m *memStore) Document(id int) (domain.TravelDocument, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.docs[id]
	if !ok {
		return domain.TravelDocument{}, false
	}
	return *d, true
}

func (m *memStore) authenticate(email, password string) (*account, bool) {
	m.mu.Lock()
	acc, ok := m.accounts[email]
	m.mu.Unlock()
	if !ok {
		return nil, false
	}
	if bcrypt.CompareHashAndPassword(acc.PasswordHash, []byte(password)) != nil {
		return nil, false
	}
	return acc, true
}
