package usecase

import (
	"context"
	"errors"

	domainChatbot "github.com/saharabot/sahara/domains/chatbot"
	domainRefdata "github.com/saharabot/sahara/domains/refdata"
)

var errStoreDown = errors.New("reference store unavailable")

// fakeStore is an in-memory IRefDataStore with switchable failure modes.
type fakeStore struct {
	services  []domainRefdata.Service
	contacts  []domainRefdata.Contact
	steps     []domainRefdata.RegistrationStep
	documents []domainRefdata.RequiredDocument

	failAll  bool
	panicAll bool
}

func (f *fakeStore) check() error {
	if f.panicAll {
		panic("fake store exploded")
	}
	if f.failAll {
		return errStoreDown
	}
	return nil
}

func (f *fakeStore) ListServicesByCategory(_ context.Context, category domainRefdata.ServiceCategory) ([]domainRefdata.Service, error) {
	if err := f.check(); err != nil {
		return nil, err
	}
	out := make([]domainRefdata.Service, 0)
	for _, s := range f.services {
		if s.Category == category {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeStore) ListContacts(_ context.Context) ([]domainRefdata.Contact, error) {
	if err := f.check(); err != nil {
		return nil, err
	}
	return append([]domainRefdata.Contact{}, f.contacts...), nil
}

func (f *fakeStore) ListContactsByType(_ context.Context, contactType domainRefdata.ContactType) ([]domainRefdata.Contact, error) {
	if err := f.check(); err != nil {
		return nil, err
	}
	out := make([]domainRefdata.Contact, 0)
	for _, c := range f.contacts {
		if c.Type == contactType {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeStore) ListRegistrationSteps(_ context.Context) ([]domainRefdata.RegistrationStep, error) {
	if err := f.check(); err != nil {
		return nil, err
	}
	return append([]domainRefdata.RegistrationStep{}, f.steps...), nil
}

func (f *fakeStore) ListRequiredDocuments(_ context.Context) ([]domainRefdata.RequiredDocument, error) {
	if err := f.check(); err != nil {
		return nil, err
	}
	return append([]domainRefdata.RequiredDocument{}, f.documents...), nil
}

// fakeDetector is a scripted IIntentDetector that counts invocations.
type fakeDetector struct {
	result domainChatbot.DetectResult
	err    error
	calls  int
}

func (f *fakeDetector) DetectIntent(_ context.Context, _, _ string) (domainChatbot.DetectResult, error) {
	f.calls++
	if f.err != nil {
		return domainChatbot.DetectResult{}, f.err
	}
	return f.result, nil
}
