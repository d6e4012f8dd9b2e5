package session

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVisitorIDMintedOnFirstContact(t *testing.T) {
	m := NewManager("test-secret")
	e := echo.New()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	id, err := m.VisitorID(c)
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	cookies := rec.Result().Cookies()
	require.NotEmpty(t, cookies)
	assert.Equal(t, "faide_session", cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)
}

func TestVisitorIDStableAcrossRequests(t *testing.T) {
	m := NewManager("test-secret")
	e := echo.New()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	first, err := m.VisitorID(e.NewContext(req, rec))
	require.NoError(t, err)

	// Replay the session cookie like a returning browser
	req2 := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, cookie := range rec.Result().Cookies() {
		req2.AddCookie(cookie)
	}
	second, err := m.VisitorID(e.NewContext(req2, httptest.NewRecorder()))
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestVisitorIDDistinctPerBrowser(t *testing.T) {
	m := NewManager("test-secret")
	e := echo.New()

	a, err := m.VisitorID(e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder()))
	require.NoError(t, err)
	b, err := m.VisitorID(e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder()))
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}

func TestVisitorIDRecoversFromBadCookie(t *testing.T) {
	m := NewManager("test-secret")
	e := echo.New()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "faide_session", Value: "signed-with-an-old-secret"})
	rec := httptest.NewRecorder()

	id, err := m.VisitorID(e.NewContext(req, rec))
	require.NoError(t, err)
	assert.NotEmpty(t, id)
}
