package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/dmitrijs2005/receiptkeeper/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorded struct {
	method      string
	path        string
	rawQuery    string
	header      http.Header
	body        []byte
	contentType string
}

// newTestServer replies with status/contentType/body and records the last request.
func newTestServer(t *testing.T, status int, contentType, body string) (*httptest.Server, *recorded, *atomic.Int32) {
	t.Helper()
	rec := &recorded{}
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		b, _ := io.ReadAll(r.Body)
		rec.method = r.Method
		rec.path = r.URL.Path
		rec.rawQuery = r.URL.RawQuery
		rec.header = r.Header.Clone()
		rec.body = b
		rec.contentType = r.Header.Get("Content-Type")
		if contentType != "" {
			w.Header().Set("Content-Type", contentType)
		}
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv, rec, &hits
}

func staticURL(u string) BaseURLFunc { return func() string { return u } }

func TestRequest_MissingBaseURL_FailsBeforeNetwork(t *testing.T) {
	srv, _, hits := newTestServer(t, http.StatusOK, common.ContentTypeJSON, `{}`)
	_ = srv

	for _, base := range []BaseURLFunc{nil, staticURL(""), staticURL("   ")} {
		gw := NewGateway(base)
		_, err := gw.Request(context.Background(), "/transactions/", RequestOptions{}, "tok1")
		require.ErrorIs(t, err, ErrConfiguration)
	}
	assert.Zero(t, hits.Load())
}

func TestRequest_BaseURLReadAtCallTime(t *testing.T) {
	srv, _, hits := newTestServer(t, http.StatusOK, common.ContentTypeJSON, `{}`)

	base := ""
	gw := NewGateway(func() string { return base })

	_, err := gw.Request(context.Background(), "/x/", RequestOptions{}, "")
	require.ErrorIs(t, err, ErrConfiguration)

	base = srv.URL + "/"
	_, err = gw.Request(context.Background(), "/x/", RequestOptions{}, "")
	require.NoError(t, err)
	assert.Equal(t, int32(1), hits.Load())
}

func TestRequest_ListTransactionsScenario(t *testing.T) {
	body := `[{"id":1,"date":"2024-01-01T10:00","total_amount":"12.50","description":"milk"}]`
	srv, rec, _ := newTestServer(t, http.StatusOK, "application/json", body)

	gw := NewGateway(staticURL(srv.URL))
	got, err := gw.Request(context.Background(), "/transactions/", RequestOptions{Method: http.MethodGet}, "tok1")
	require.NoError(t, err)

	assert.JSONEq(t, body, string(got))
	assert.Equal(t, "Token tok1", rec.header.Get("Authorization"))
	assert.Equal(t, http.MethodGet, rec.method)
	assert.Equal(t, "/transactions/", rec.path)
	assert.NotEmpty(t, rec.header.Get(common.RequestIDHeaderName))
}

func TestRequest_NoTokenNoAuthorizationHeader(t *testing.T) {
	srv, rec, _ := newTestServer(t, http.StatusOK, common.ContentTypeJSON, `{"key":"k"}`)

	gw := NewGateway(staticURL(srv.URL))
	_, err := gw.Request(context.Background(), "/auth/login", RequestOptions{Method: http.MethodPost, Body: map[string]string{"email": "a"}}, "")
	require.NoError(t, err)
	assert.Empty(t, rec.header.Get("Authorization"))
}

func TestRequest_NonSuccessStatus_HTTPError(t *testing.T) {
	for _, status := range []int{http.StatusBadRequest, http.StatusUnauthorized, http.StatusNotFound, http.StatusInternalServerError} {
		srv, _, _ := newTestServer(t, status, common.ContentTypeJSON, `{"detail":"nope"}`)
		gw := NewGateway(staticURL(srv.URL))

		_, err := gw.Request(context.Background(), "/transactions/", RequestOptions{Method: http.MethodGet}, "tok1")
		require.Error(t, err)

		var he *HTTPError
		require.ErrorAs(t, err, &he)
		assert.Equal(t, status, he.Status)
		assert.Equal(t, fmt.Sprintf("HTTP %d", status), err.Error())
	}
}

func TestHTTPError_Is(t *testing.T) {
	assert.ErrorIs(t, &HTTPError{Status: 401}, ErrUnauthorized)
	assert.ErrorIs(t, &HTTPError{Status: 403}, ErrUnauthorized)
	assert.ErrorIs(t, &HTTPError{Status: 404}, ErrNotFound)
	assert.NotErrorIs(t, &HTTPError{Status: 500}, ErrUnauthorized)
	assert.NotErrorIs(t, errors.New("plain"), ErrNotFound)
}

func TestRequest_DeleteAnd204ReturnNil(t *testing.T) {
	tests := []struct {
		name   string
		method string
		status int
		ctype  string
		body   string
	}{
		{name: "delete 204 empty", method: http.MethodDelete, status: http.StatusNoContent},
		{name: "delete 200 with json body", method: http.MethodDelete, status: http.StatusOK, ctype: common.ContentTypeJSON, body: `{"deleted":true}`},
		{name: "delete 200 with garbage json", method: http.MethodDelete, status: http.StatusOK, ctype: common.ContentTypeJSON, body: `{{{`},
		{name: "put 204", method: http.MethodPut, status: http.StatusNoContent, ctype: common.ContentTypeJSON},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, rec, _ := newTestServer(t, tt.status, tt.ctype, tt.body)
			gw := NewGateway(staticURL(srv.URL))

			got, err := gw.Request(context.Background(), "/products/1/", RequestOptions{Method: tt.method}, "tok1")
			require.NoError(t, err)
			assert.Nil(t, got)
			assert.Equal(t, tt.method, rec.method)
		})
	}
}

func TestRequest_NonJSONContentTypeReturnsNil(t *testing.T) {
	for _, ct := range []string{"", "text/html; charset=utf-8", "text/plain", "application/octet-stream"} {
		srv, _, _ := newTestServer(t, http.StatusOK, ct, `<html>not json</html>`)
		gw := NewGateway(staticURL(srv.URL))

		got, err := gw.Request(context.Background(), "/", RequestOptions{}, "")
		require.NoError(t, err, ct)
		assert.Nil(t, got, ct)
	}
}

func TestRequest_JSONContentTypeVariants(t *testing.T) {
	for _, ct := range []string{"application/json; charset=utf-8", "application/problem+json", "Application/JSON"} {
		srv, _, _ := newTestServer(t, http.StatusOK, ct, `{"ok":true}`)
		gw := NewGateway(staticURL(srv.URL))

		got, err := gw.Request(context.Background(), "/", RequestOptions{}, "")
		require.NoError(t, err, ct)
		assert.JSONEq(t, `{"ok":true}`, string(got), ct)
	}
}

func TestRequest_MalformedJSON_ParseError(t *testing.T) {
	srv, _, _ := newTestServer(t, http.StatusOK, common.ContentTypeJSON, `{"id": 1,`)
	gw := NewGateway(staticURL(srv.URL))

	_, err := gw.Request(context.Background(), "/auth/user/", RequestOptions{}, "tok1")
	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "json", pe.Shape)
}

func TestRequest_StructuredBodyIsJSON(t *testing.T) {
	srv, rec, _ := newTestServer(t, http.StatusCreated, common.ContentTypeJSON, `{"id":5}`)
	gw := NewGateway(staticURL(srv.URL))

	payload := map[string]any{"name": "bread", "price": "4.20", "transaction": 1}
	_, err := gw.Request(context.Background(), "/products/", RequestOptions{Method: http.MethodPost, Body: payload}, "tok1")
	require.NoError(t, err)

	assert.Equal(t, common.ContentTypeJSON, rec.contentType)
	assert.JSONEq(t, `{"name":"bread","price":"4.20","transaction":1}`, string(rec.body))
}

func TestRequest_MultipartBodyNeverJSON(t *testing.T) {
	srv, rec, _ := newTestServer(t, http.StatusOK, common.ContentTypeJSON, `{}`)
	gw := NewGateway(staticURL(srv.URL))

	form := NewForm().AddField("note", "x").AddFile("image", "receipt.jpg", strings.NewReader("JPEGDATA"))
	hdr := http.Header{}
	hdr.Set("Content-Type", common.ContentTypeJSON)
	hdr.Set("Accept-Language", "pl")

	_, err := gw.Request(context.Background(), "/receipts/scan/", RequestOptions{Method: http.MethodPost, Body: form, Header: hdr}, "tok1")
	require.NoError(t, err)

	assert.NotContains(t, rec.contentType, "json")
	assert.True(t, strings.HasPrefix(rec.contentType, "multipart/form-data; boundary="), rec.contentType)
	assert.Contains(t, string(rec.body), `name="image"; filename="receipt.jpg"`)
	assert.Contains(t, string(rec.body), "JPEGDATA")
	assert.Equal(t, "pl", rec.header.Get("Accept-Language"))
}

func TestRequest_NilBodyHasNoContentType(t *testing.T) {
	srv, rec, _ := newTestServer(t, http.StatusOK, common.ContentTypeJSON, `{}`)
	gw := NewGateway(staticURL(srv.URL))

	_, err := gw.Request(context.Background(), "/transactions/", RequestOptions{}, "tok1")
	require.NoError(t, err)
	assert.Empty(t, rec.contentType)
	assert.Empty(t, rec.body)
	assert.Equal(t, http.MethodGet, rec.method)
}

func TestRequest_NilFormHasNoBody(t *testing.T) {
	srv, rec, _ := newTestServer(t, http.StatusOK, common.ContentTypeJSON, `{}`)
	gw := NewGateway(staticURL(srv.URL))

	var form *Form
	_, err := gw.Request(context.Background(), "/receipts/scan/", RequestOptions{Method: http.MethodPost, Body: form}, "tok1")
	require.NoError(t, err)
	assert.Empty(t, rec.contentType)
	assert.Empty(t, rec.body)
}

func TestRequest_CallerCannotOverrideAuthorization(t *testing.T) {
	srv, rec, _ := newTestServer(t, http.StatusOK, common.ContentTypeJSON, `{}`)
	gw := NewGateway(staticURL(srv.URL))

	hdr := http.Header{}
	hdr.Set("Authorization", "Bearer other")
	_, err := gw.Request(context.Background(), "/", RequestOptions{Header: hdr}, "tok1")
	require.NoError(t, err)
	assert.Equal(t, []string{"Token tok1"}, rec.header.Values("Authorization"))
}

func TestRequest_UnmarshalableBody(t *testing.T) {
	srv, _, hits := newTestServer(t, http.StatusOK, common.ContentTypeJSON, `{}`)
	gw := NewGateway(staticURL(srv.URL))

	_, err := gw.Request(context.Background(), "/", RequestOptions{Method: http.MethodPost, Body: make(chan int)}, "")
	require.ErrorContains(t, err, "failed to marshal body")
	assert.Zero(t, hits.Load())
}

func TestRequest_Canceled(t *testing.T) {
	block := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-block:
		case <-r.Context().Done():
		}
	}))
	t.Cleanup(srv.Close)
	t.Cleanup(func() { close(block) })

	gw := NewGateway(staticURL(srv.URL))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := gw.Request(ctx, "/transactions/", RequestOptions{}, "tok1")
	require.ErrorIs(t, err, context.Canceled)
	assert.NotErrorIs(t, err, ErrUnavailable)
}

func TestRequest_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	gw := NewGateway(staticURL(url))
	_, err := gw.Request(context.Background(), "/transactions/", RequestOptions{}, "")
	require.ErrorIs(t, err, ErrUnavailable)
}
