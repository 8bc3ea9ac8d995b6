// Package store provides durable local key-value storage for the session.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"

	"github.com/rekaindo/rekatrack/internal/core/domain"
)

// Stored keys. Token, user, role and division live under separate keys but
// are always written and cleared inside one transaction so a partial clear
// cannot be observed.
var (
	keyToken    = []byte("session/token")
	keyUser     = []byte("session/user")
	keyRole     = []byte("session/role")
	keyDivision = []byte("session/division")
)

// BadgerStore is a ports.SessionStore backed by an embedded badger database.
type BadgerStore struct {
	db *badger.DB
}

// Open opens (or creates) the store under dir.
func Open(dir string) (*BadgerStore, error) {
	opts := badger.DefaultOptions(dir).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("session store: open: %w", err)
	}
	return &BadgerStore{db: db}, nil
}

// Close releases the underlying database.
func (s *BadgerStore) Close() error {
	return s.db.Close()
}

// Get returns the stored session. A missing token means logged out.
func (s *BadgerStore) Get(_ context.Context) (domain.Session, bool, error) {
	var session domain.Session
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(keyToken)
		if err != nil {
			return err
		}
		token, err := item.ValueCopy(nil)
		if err != nil {
			return err
		}
		session.Token = string(token)

		if item, err := txn.Get(keyUser); err == nil {
			raw, err := item.ValueCopy(nil)
			if err != nil {
				return err
			}
			if err := json.Unmarshal(raw, &session.User); err != nil {
				return fmt.Errorf("decode cached user: %w", err)
			}
		}
		return nil
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return domain.Session{}, false, nil
	}
	if err != nil {
		return domain.Session{}, false, fmt.Errorf("session store: get: %w", err)
	}
	return session, session.Valid(), nil
}

// Set stores the token together with the cached user, role name and division
// name in a single transaction.
func (s *BadgerStore) Set(_ context.Context, session domain.Session) error {
	user, err := json.Marshal(session.User)
	if err != nil {
		return fmt.Errorf("session store: encode user: %w", err)
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		if err := txn.Set(keyToken, []byte(session.Token)); err != nil {
			return err
		}
		if err := txn.Set(keyUser, user); err != nil {
			return err
		}
		if err := txn.Set(keyRole, []byte(session.User.Role.Name)); err != nil {
			return err
		}
		return txn.Set(keyDivision, []byte(session.User.Role.Division.Name))
	})
	if err != nil {
		return fmt.Errorf("session store: set: %w", err)
	}
	return nil
}

// Clear removes token, user, role and division atomically. Clearing an empty
// store is a no-op.
func (s *BadgerStore) Clear(_ context.Context) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		for _, key := range [][]byte{keyToken, keyUser, keyRole, keyDivision} {
			if err := txn.Delete(key); err != nil && !errors.Is(err, badger.ErrKeyNotFound) {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("session store: clear: %w", err)
	}
	return nil
}

// ClearToken removes only the credential, for the gateway's 401 handling.
func (s *BadgerStore) ClearToken(_ context.Context) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		if err := txn.Delete(keyToken); err != nil && !errors.Is(err, badger.ErrKeyNotFound) {
			return err
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("session store: clear token: %w", err)
	}
	return nil
}
