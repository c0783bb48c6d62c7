package cookie_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/taskdeck/internal/cookie"
)

const testSecret = "test-secret-key-32-characters!!!"
const testSecret2 = "another-secret-key-32-chars!!!!!"

func requestWithCookies(w *httptest.ResponseRecorder) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, sc := range w.Result().Cookies() {
		r.AddCookie(sc)
	}
	return r
}

func TestManager_BasicOperations(t *testing.T) {
	t.Run("set and get cookie", func(t *testing.T) {
		m, err := cookie.New([]string{testSecret})
		require.NoError(t, err)

		w := httptest.NewRecorder()
		require.NoError(t, m.Set(w, "test", "value123"))

		value, err := m.Get(requestWithCookies(w), "test")
		require.NoError(t, err)
		assert.Equal(t, "value123", value)
	})

	t.Run("cookie not found", func(t *testing.T) {
		m, err := cookie.New([]string{testSecret})
		require.NoError(t, err)

		r := httptest.NewRequest(http.MethodGet, "/", nil)
		_, err = m.Get(r, "missing")
		assert.ErrorIs(t, err, cookie.ErrCookieNotFound)
	})

	t.Run("delete expires cookie", func(t *testing.T) {
		m, err := cookie.New([]string{testSecret})
		require.NoError(t, err)

		w := httptest.NewRecorder()
		m.Delete(w, "session")

		cookies := w.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Equal(t, "session", cookies[0].Name)
		assert.Empty(t, cookies[0].Value)
		assert.Negative(t, cookies[0].MaxAge)
	})

	t.Run("secure defaults applied", func(t *testing.T) {
		m, err := cookie.New([]string{testSecret})
		require.NoError(t, err)

		w := httptest.NewRecorder()
		require.NoError(t, m.Set(w, "test", "v"))

		cookies := w.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.True(t, cookies[0].HttpOnly)
		assert.Equal(t, http.SameSiteLaxMode, cookies[0].SameSite)
		assert.Equal(t, "/", cookies[0].Path)
	})

	t.Run("oversized cookie rejected", func(t *testing.T) {
		m, err := cookie.New([]string{testSecret})
		require.NoError(t, err)

		w := httptest.NewRecorder()
		err = m.Set(w, "big", strings.Repeat("x", cookie.MaxCookieSize))
		assert.ErrorIs(t, err, cookie.ErrCookieTooLarge)
	})
}

func TestManager_SignedCookies(t *testing.T) {
	t.Run("set signed and get signed round-trip", func(t *testing.T) {
		m, err := cookie.New([]string{testSecret})
		require.NoError(t, err)

		w := httptest.NewRecorder()
		require.NoError(t, m.SetSigned(w, "session", "token-abc"))

		value, err := m.GetSigned(requestWithCookies(w), "session")
		require.NoError(t, err)
		assert.Equal(t, "token-abc", value)
	})

	t.Run("tampered value rejected", func(t *testing.T) {
		m, err := cookie.New([]string{testSecret})
		require.NoError(t, err)

		w := httptest.NewRecorder()
		require.NoError(t, m.SetSigned(w, "session", "token-abc"))

		r := httptest.NewRequest(http.MethodGet, "/", nil)
		for _, sc := range w.Result().Cookies() {
			parts := strings.SplitN(sc.Value, "|", 2)
			require.Len(t, parts, 2)
			// Swap the payload for a forged token, keep the signature.
			sc.Value = "Zm9yZ2Vk" + "|" + parts[1]
			r.AddCookie(sc)
		}

		_, err = m.GetSigned(r, "session")
		assert.ErrorIs(t, err, cookie.ErrInvalidSignature)
	})

	t.Run("malformed value rejected", func(t *testing.T) {
		m, err := cookie.New([]string{testSecret})
		require.NoError(t, err)

		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.AddCookie(&http.Cookie{Name: "session", Value: "no-separator"})

		_, err = m.GetSigned(r, "session")
		assert.ErrorIs(t, err, cookie.ErrInvalidFormat)
	})

	t.Run("rotated secret still verifies old signature", func(t *testing.T) {
		old, err := cookie.New([]string{testSecret})
		require.NoError(t, err)

		w := httptest.NewRecorder()
		require.NoError(t, old.SetSigned(w, "session", "token-abc"))

		// New secret first, old secret kept for verification.
		rotated, err := cookie.New([]string{testSecret2, testSecret})
		require.NoError(t, err)

		value, err := rotated.GetSigned(requestWithCookies(w), "session")
		require.NoError(t, err)
		assert.Equal(t, "token-abc", value)
	})
}

func TestNew_Validation(t *testing.T) {
	t.Run("no secrets", func(t *testing.T) {
		_, err := cookie.New(nil)
		assert.ErrorIs(t, err, cookie.ErrNoSecret)
	})

	t.Run("empty secrets filtered", func(t *testing.T) {
		_, err := cookie.New([]string{"", ""})
		assert.ErrorIs(t, err, cookie.ErrNoSecret)
	})

	t.Run("short secret rejected", func(t *testing.T) {
		_, err := cookie.New([]string{"short"})
		assert.ErrorIs(t, err, cookie.ErrSecretTooShort)
	})
}

func TestNewFromConfig(t *testing.T) {
	t.Run("parses comma separated secrets", func(t *testing.T) {
		m, err := cookie.NewFromConfig(cookie.Config{
			Secrets:  testSecret + ", " + testSecret2,
			Path:     "/",
			HttpOnly: true,
		})
		require.NoError(t, err)

		w := httptest.NewRecorder()
		require.NoError(t, m.SetSigned(w, "session", "v"))

		value, err := m.GetSigned(requestWithCookies(w), "session")
		require.NoError(t, err)
		assert.Equal(t, "v", value)
	})

	t.Run("empty secrets rejected", func(t *testing.T) {
		_, err := cookie.NewFromConfig(cookie.Config{Secrets: " , "})
		assert.ErrorIs(t, err, cookie.ErrNoSecret)
	})
}
