package refdata

import (
	"context"
	"encoding/json"
	"time"

	domainRefdata "github.com/saharabot/sahara/domains/refdata"
	"github.com/saharabot/sahara/infrastructure/valkey"
	"github.com/sirupsen/logrus"
)

// CachedStore is a read-through Valkey cache in front of another store.
// Reference data changes rarely, so short TTLs keep the webhook path off the
// database on busy days. Every cache failure degrades to the inner store.
type CachedStore struct {
	inner  domainRefdata.IRefDataStore
	client *valkey.Client
	ttl    time.Duration
}

func NewCachedStore(inner domainRefdata.IRefDataStore, client *valkey.Client, ttl time.Duration) *CachedStore {
	return &CachedStore{inner: inner, client: client, ttl: ttl}
}

func cachedList[T any](ctx context.Context, s *CachedStore, key string, fetch func(context.Context) ([]T, error)) ([]T, error) {
	if data, err := s.client.GetBytes(ctx, key); err == nil && data != nil {
		var cached []T
		if err := json.Unmarshal(data, &cached); err == nil {
			return cached, nil
		}
		logrus.WithField("key", key).Warn("[CACHE] discarding undecodable cache entry")
	} else if err != nil {
		logrus.WithError(err).WithField("key", key).Debug("[CACHE] read failed, falling through to store")
	}

	items, err := fetch(ctx)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(items); err == nil {
		if err := s.client.SetBytes(ctx, key, data, s.ttl); err != nil {
			logrus.WithError(err).WithField("key", key).Debug("[CACHE] write failed")
		}
	}
	return items, nil
}

func (s *CachedStore) ListServicesByCategory(ctx context.Context, category domainRefdata.ServiceCategory) ([]domainRefdata.Service, error) {
	key := s.client.Key("refdata", "services", string(category))
	return cachedList(ctx, s, key, func(ctx context.Context) ([]domainRefdata.Service, error) {
		return s.inner.ListServicesByCategory(ctx, category)
	})
}

func (s *CachedStore) ListContacts(ctx context.Context) ([]domainRefdata.Contact, error) {
	key := s.client.Key("refdata", "contacts", "all")
	return cachedList(ctx, s, key, s.inner.ListContacts)
}

func (s *CachedStore) ListContactsByType(ctx context.Context, contactType domainRefdata.ContactType) ([]domainRefdata.Contact, error) {
	key := s.client.Key("refdata", "contacts", string(contactType))
	return cachedList(ctx, s, key, func(ctx context.Context) ([]domainRefdata.Contact, error) {
		return s.inner.ListContactsByType(ctx, contactType)
	})
}

func (s *CachedStore) ListRegistrationSteps(ctx context.Context) ([]domainRefdata.RegistrationStep, error) {
	key := s.client.Key("refdata", "steps")
	return cachedList(ctx, s, key, s.inner.ListRegistrationSteps)
}

func (s *CachedStore) ListRequiredDocuments(ctx context.Context) ([]domainRefdata.RequiredDocument, error) {
	key := s.client.Key("refdata", "documents")
	return cachedList(ctx, s, key, s.inner.ListRequiredDocuments)
}
