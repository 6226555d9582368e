package appscript

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rema-viva-landing/pkg/models"
)

func samplePayload() models.LeadPayload {
	return models.LeadPayload{
		Name:    "Ana Paula",
		Email:   "ana@example.com",
		Phone:   "(11) 98765-4321",
		Kind:    models.KindPaid,
		Product: "Kit Completo - 3 lições",
		Price:   "R$ 49,90",
	}
}

func TestAppendLeadPostsJSON(t *testing.T) {
	t.Parallel()

	var got models.LeadPayload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"result":"success","message":"Dados salvos na planilha"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second, nil)
	require.NoError(t, c.AppendLead(context.Background(), samplePayload()))
	assert.Equal(t, samplePayload(), got)
}

func TestAppendLeadRemoteError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"result":"error","error":"SyntaxError"}`))
	}))
	defer srv.Close()

	err := NewClient(srv.URL, time.Second, nil).AppendLead(context.Background(), samplePayload())
	assert.ErrorIs(t, err, ErrRemote)
}

func TestAppendLeadAcceptsNonJSONBody(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>ok</html>`))
	}))
	defer srv.Close()

	assert.NoError(t, NewClient(srv.URL, time.Second, nil).AppendLead(context.Background(), samplePayload()))
}

func TestAppendLeadTextPostsJSONBody(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "text/plain;charset=utf-8", r.Header.Get("Content-Type"))
		var row map[string]string
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&row))
		assert.Equal(t, "Ana Paula", row["nome"])
		assert.Equal(t, "pago", row["tipo"])
		assert.Equal(t, "R$ 49,90", row["valor"])
		_, _ = w.Write([]byte(`{"result":"success"}`))
	}))
	defer srv.Close()

	assert.NoError(t, NewClient(srv.URL, time.Second, nil).AppendLeadText(context.Background(), samplePayload()))
}

func TestSendFallsBackToText(t *testing.T) {
	t.Parallel()

	var jsonCalls, textCalls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Content-Type") == "application/json" {
			atomic.AddInt32(&jsonCalls, 1)
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		atomic.AddInt32(&textCalls, 1)
	}))
	defer srv.Close()

	err := Send(context.Background(), NewClient(srv.URL, time.Second, nil), samplePayload())
	require.NoError(t, err)
	assert.EqualValues(t, 1, atomic.LoadInt32(&jsonCalls))
	assert.EqualValues(t, 1, atomic.LoadInt32(&textCalls))
}

type stubClient struct {
	jsonErr, textErr error
	textCalls        int
}

func (s *stubClient) AppendLead(context.Context, models.LeadPayload) error { return s.jsonErr }
func (s *stubClient) AppendLeadText(context.Context, models.LeadPayload) error {
	s.textCalls++
	return s.textErr
}

func TestSendDoesNotRetryRemoteRefusal(t *testing.T) {
	t.Parallel()

	stub := &stubClient{jsonErr: ErrRemote}
	assert.ErrorIs(t, Send(context.Background(), stub, samplePayload()), ErrRemote)
	assert.Zero(t, stub.textCalls)

	stub = &stubClient{jsonErr: errors.New("dial"), textErr: errors.New("dial again")}
	err := Send(context.Background(), stub, samplePayload())
	assert.Error(t, err)
	assert.Equal(t, 1, stub.textCalls)
}
