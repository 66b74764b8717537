package loan

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"lagerstyring-client/config"
	"lagerstyring-client/internal/api"
	"lagerstyring-client/internal/model"
	"lagerstyring-client/internal/store"
)

// memStore is an in-memory store.Store for submitter tests.
type memStore struct {
	data map[string]string
}

func newMemStore() *memStore {
	return &memStore{data: make(map[string]string)}
}

func (m *memStore) Get(_ context.Context, key string) (string, bool, error) {
	value, found := m.data[key]
	return value, found, nil
}

func (m *memStore) Set(_ context.Context, key, value string) error {
	m.data[key] = value
	return nil
}

func (m *memStore) Delete(_ context.Context, key string) error {
	delete(m.data, key)
	return nil
}

func newSubmitterFixture(t *testing.T, handler http.HandlerFunc) (*Submitter, *memStore) {
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg := config.Default()
	cfg.API.BaseURL = server.URL
	inv := api.NewInventory(api.NewClient(&cfg.API, zap.NewNop()))

	s := newMemStore()
	s.data[store.KeyBorrowItem] = `{"device":{"id":1}}`
	return NewSubmitter(inv, s, zap.NewNop()), s
}

func TestSubmitter_ClearsPendingItemOnAck(t *testing.T) {
	submitter, s := newSubmitterFixture(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id": 1001, "device_id": 1}`))
	})

	ack, err := submitter.Submit(context.Background(), model.Activity{DeviceID: 1})

	require.NoError(t, err)
	assert.Equal(t, int64(1001), ack.ID)
	_, found := s.data[store.KeyBorrowItem]
	assert.False(t, found, "pending item should be cleared after acknowledgment")
}

func TestSubmitter_RejectionCarriesStatusAndBody(t *testing.T) {
	submitter, s := newSubmitterFixture(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"device already on loan"}`, http.StatusInternalServerError)
	})

	_, err := submitter.Submit(context.Background(), model.Activity{DeviceID: 1})

	var submitErr *SubmitError
	require.ErrorAs(t, err, &submitErr)
	assert.Equal(t, http.StatusInternalServerError, submitErr.Status)
	assert.Contains(t, submitErr.RawBody, "device already on loan")
	_, found := s.data[store.KeyBorrowItem]
	assert.True(t, found, "pending item must survive a rejected submission")
}

func TestSubmitter_MalformedAckCarriesRawBody(t *testing.T) {
	submitter, s := newSubmitterFixture(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("oops - not json at all"))
	})

	_, err := submitter.Submit(context.Background(), model.Activity{DeviceID: 1})

	var submitErr *SubmitError
	require.ErrorAs(t, err, &submitErr)
	assert.Zero(t, submitErr.Status)
	assert.Equal(t, "oops - not json at all", submitErr.RawBody)
	_, found := s.data[store.KeyBorrowItem]
	assert.True(t, found, "pending item must survive an unreadable acknowledgment")
}
