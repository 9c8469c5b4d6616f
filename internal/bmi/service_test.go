// Copyright (c) 2026 Bodylog. All rights reserved.
// Author: nam.phamquoc.dev@gmail.com

package bmi

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeStore is an in-memory Store assigning sequential identifiers.
type fakeStore struct {
	mu      sync.Mutex
	records []*Record
}

func (store *fakeStore) Insert(_ context.Context, record *Record) error {
	store.mu.Lock()
	defer store.mu.Unlock()
	record.ID = int64(len(store.records) + 1)
	record.CreatedAt = time.Now().UTC()
	store.records = append(store.records, record)
	return nil
}

func (store *fakeStore) ListAll(_ context.Context) ([]*Record, error) {
	store.mu.Lock()
	defer store.mu.Unlock()
	return append([]*Record(nil), store.records...), nil
}

func (store *fakeStore) FindByName(_ context.Context, name string) ([]*Record, error) {
	store.mu.Lock()
	defer store.mu.Unlock()
	matched := make([]*Record, 0)
	for _, record := range store.records {
		if record.Name == name {
			matched = append(matched, record)
		}
	}
	return matched, nil
}

func TestCompute(t *testing.T) {
	tests := []struct {
		name   string
		height float64
		weight float64
		want   float64
	}{
		{name: "typical adult", height: 1.75, weight: 70, want: 22.86},
		{name: "exact value", height: 2.0, weight: 80, want: 20.0},
		{name: "rounds to two decimals", height: 1.6, weight: 60, want: 23.44},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			assert.InDelta(t, testCase.want, Compute(testCase.height, testCase.weight), 0.0001)
		})
	}
}

func TestService_Save(t *testing.T) {
	store := &fakeStore{}
	service := NewService(store)

	record, rejection, err := service.Save(context.Background(), "  alice  ", 1.75, 70)
	require.NoError(t, err)
	require.Empty(t, rejection)
	require.NotNil(t, record)

	assert.Equal(t, int64(1), record.ID)
	assert.Equal(t, "alice", record.Name, "name must be stored trimmed")
	assert.InDelta(t, 22.86, record.BMI, 0.0001)
}

func TestService_Save_Rejections(t *testing.T) {
	tests := []struct {
		name      string
		subject   string
		height    float64
		weight    float64
		rejection string
	}{
		{name: "zero height", subject: "alice", height: 0, weight: 70, rejection: MsgNonPositiveInputs},
		{name: "negative weight", subject: "alice", height: 1.75, weight: -1, rejection: MsgNonPositiveInputs},
		{name: "blank name", subject: "   ", height: 1.75, weight: 70, rejection: MsgEmptyName},
		{name: "positivity checked before name", subject: "", height: 0, weight: 0, rejection: MsgNonPositiveInputs},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			store := &fakeStore{}
			service := NewService(store)

			record, rejection, err := service.Save(context.Background(), testCase.subject, testCase.height, testCase.weight)
			require.NoError(t, err)
			assert.Nil(t, record)
			assert.Equal(t, testCase.rejection, rejection)
			assert.Empty(t, store.records, "rejected measurement must not write")
		})
	}
}

func TestService_List_FiltersByName(t *testing.T) {
	store := &fakeStore{}
	service := NewService(store)

	for _, subject := range []string{"alice", "bob", "alice"} {
		_, rejection, err := service.Save(context.Background(), subject, 1.75, 70)
		require.NoError(t, err)
		require.Empty(t, rejection)
	}

	all, err := service.List(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	filtered, err := service.List(context.Background(), "alice")
	require.NoError(t, err)
	require.Len(t, filtered, 2)
	for _, record := range filtered {
		assert.Equal(t, "alice", record.Name)
	}
}

func TestSaveLegacyEndpoint(t *testing.T) {
	store := &fakeStore{}
	handler := NewHandler(NewService(store))

	body, err := json.Marshal(SaveRequest{Name: "alice", Height: 1.75, Weight: 70})
	require.NoError(t, err)

	request := httptest.NewRequest(http.MethodPost, "/save_bmi", bytes.NewReader(body))
	recorder := httptest.NewRecorder()
	handler.SaveLegacy(recorder, request)

	require.Equal(t, http.StatusOK, recorder.Code)

	var response struct {
		Record *Record `json:"record"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
	require.NotNil(t, response.Record)
	assert.Equal(t, int64(1), response.Record.ID)
	assert.InDelta(t, 22.86, response.Record.BMI, 0.0001)
}

func TestSaveLegacyEndpoint_Rejection(t *testing.T) {
	store := &fakeStore{}
	handler := NewHandler(NewService(store))

	body, err := json.Marshal(SaveRequest{Name: "alice", Height: -1, Weight: 70})
	require.NoError(t, err)

	request := httptest.NewRequest(http.MethodPost, "/save_bmi", bytes.NewReader(body))
	recorder := httptest.NewRecorder()
	handler.SaveLegacy(recorder, request)

	require.Equal(t, http.StatusOK, recorder.Code)

	var response map[string]string
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
	assert.Equal(t, MsgNonPositiveInputs, response["error"])
}
