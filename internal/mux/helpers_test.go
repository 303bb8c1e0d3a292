package mux

import (
	"bytes"
	"colorclash-server/internal/jwt"
	"colorclash-server/pkg/account"
	"colorclash-server/pkg/playable/clash"
	"colorclash-server/pkg/room"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

var cbg = context.Background()

type testServer struct {
	*httptest.Server
	mux      *Mux
	accounts *account.Store
	pitBoss  *room.PitBoss
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	jwt.SetSecret([]byte("mux-test-secret"), time.Hour)

	accounts, err := account.OpenSQLite(filepath.Join(t.TempDir(), "accounts.db"))
	if err != nil {
		t.Fatal(err)
	}

	pitBoss := room.NewPitBoss(nil, accounts, room.Settings{})
	pitBoss.StartShift()

	m := NewMux("v1.2.3", accounts, pitBoss, clash.DefaultOptions())
	m.recaptcha = noRecaptcha{}
	m.config.accountCreateDelay = time.Second * -1

	ts := &testServer{
		Server:   httptest.NewServer(m),
		mux:      m,
		accounts: accounts,
		pitBoss:  pitBoss,
	}

	t.Cleanup(func() {
		ts.Close()
		pitBoss.EndShift()
		_ = accounts.Close()
	})

	return ts
}

// newAccount registers an account and returns it with a signed token
func (ts *testServer) newAccount(t *testing.T) (*account.Account, string) {
	t.Helper()

	acct, err := ts.accounts.Create(cbg, "p_"+uuid.New().String()[0:8], "password", "")
	if err != nil {
		t.Fatal(err)
	}

	j, err := jwt.Sign(acct.ID)
	if err != nil {
		t.Fatal(err)
	}

	return acct, j
}

func assertDo(t *testing.T, req *http.Request, respObj interface{}, statusCode int, signedJWT ...string) *http.Response {
	t.Helper()

	if len(signedJWT) > 0 {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", signedJWT[0]))
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Error(err)
		return nil
	}
	defer resp.Body.Close()

	if statusCode != resp.StatusCode {
		b, _ := io.ReadAll(resp.Body)
		t.Log(string(b))
		assert.Equal(t, statusCode, resp.StatusCode)
		return nil
	}

	if respObj != nil {
		if err := json.NewDecoder(resp.Body).Decode(respObj); err != nil {
			t.Error(err)
			return nil
		}
	}

	return resp
}

func assertGetWithResp(t *testing.T, ts *httptest.Server, path string, respObj interface{}, statusCode int, signedJWT ...string) *http.Response {
	t.Helper()

	req, err := http.NewRequest(http.MethodGet, ts.URL+path, nil)
	if err != nil {
		t.Error(err)
		return nil
	}

	return assertDo(t, req, respObj, statusCode, signedJWT...)
}

func assertGet(t *testing.T, ts *httptest.Server, path string, respObj interface{}, statusCode int, signedJWT ...string) {
	t.Helper()
	assertGetWithResp(t, ts, path, respObj, statusCode, signedJWT...)
}

func assertPost(t *testing.T, ts *httptest.Server, path string, payload interface{}, respObj interface{}, statusCode int, signedJWT ...string) *http.Response {
	t.Helper()

	var body io.Reader
	switch val := payload.(type) {
	case string:
		body = strings.NewReader(val)
	default:
		b, err := json.Marshal(val)
		if err != nil {
			t.Error(err)
			return nil
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequest(http.MethodPost, ts.URL+path, body)
	if err != nil {
		t.Error(err)
		return nil
	}
	req.Header.Set("Content-Type", "application/json")

	return assertDo(t, req, respObj, statusCode, signedJWT...)
}
