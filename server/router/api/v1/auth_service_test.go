package v1

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperr "github.com/repgenie/repgenie/internal/errors"
)

func signUpBody(t *testing.T, s *APIV1Service, email, password string) string {
	t.Helper()
	token, answer := solveCaptcha(t, s)
	body, _ := json.Marshal(map[string]string{
		"email": email, "password": password,
		"captcha_token": token, "captcha_answer": answer,
	})
	return string(body)
}

func TestSignUpAndSignIn(t *testing.T) {
	s := newTestService(t, &stubProvider{})
	e := echo.New()

	c, rec := newJSONContext(e, "POST", "/auth/signup", signUpBody(t, s, "a@b.com", "Sup3rSecret"))
	var user userResponse
	invoke(t, s.SignUp, rec, c, &user)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "a@b.com", user.Email)
	assert.NotZero(t, user.ID)

	// Login with the same credentials.
	token, answer := solveCaptcha(t, s)
	body, _ := json.Marshal(map[string]string{
		"email": "a@b.com", "password": "Sup3rSecret",
		"captcha_token": token, "captcha_answer": answer,
	})
	c, rec = newJSONContext(e, "POST", "/auth/login", string(body))
	var loggedIn userResponse
	invoke(t, s.SignIn, rec, c, &loggedIn)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, user.ID, loggedIn.ID)
}

func TestSignUpDuplicateEmail(t *testing.T) {
	s := newTestService(t, &stubProvider{})
	e := echo.New()
	signUpUser(t, s, "a@b.com", "Sup3rSecret")

	// A different password does not make the duplicate acceptable.
	c, rec := newJSONContext(e, "POST", "/auth/signup", signUpBody(t, s, "a@b.com", "0therPassword"))
	var body errorBody
	invoke(t, s.SignUp, rec, c, &body)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, apperr.ErrCodeDuplicateEmail, body.Code)
}

func TestSignUpWeakPassword(t *testing.T) {
	s := newTestService(t, &stubProvider{})
	e := echo.New()

	c, rec := newJSONContext(e, "POST", "/auth/signup", signUpBody(t, s, "a@b.com", "short"))
	var body errorBody
	invoke(t, s.SignUp, rec, c, &body)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, apperr.ErrCodeWeakPassword, body.Code)
}

func TestSignUpMissingCaptcha(t *testing.T) {
	s := newTestService(t, &stubProvider{})
	e := echo.New()

	c, rec := newJSONContext(e, "POST", "/auth/signup",
		`{"email":"a@b.com","password":"Sup3rSecret"}`)
	var body errorBody
	invoke(t, s.SignUp, rec, c, &body)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, apperr.ErrCodeCaptchaRequired, body.Code)
}

func TestSignUpWrongCaptchaAnswer(t *testing.T) {
	s := newTestService(t, &stubProvider{})
	e := echo.New()

	token, _ := solveCaptcha(t, s)
	body, _ := json.Marshal(map[string]string{
		"email": "a@b.com", "password": "Sup3rSecret",
		"captcha_token": token, "captcha_answer": "999999",
	})
	c, rec := newJSONContext(e, "POST", "/auth/signup", string(body))
	var resp errorBody
	invoke(t, s.SignUp, rec, c, &resp)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, apperr.ErrCodeCaptchaFailed, resp.Code)
}

func TestSignInFailuresAreIndistinguishable(t *testing.T) {
	s := newTestService(t, &stubProvider{})
	e := echo.New()
	signUpUser(t, s, "a@b.com", "Sup3rSecret")

	login := func(email, password string) (int, errorBody) {
		token, answer := solveCaptcha(t, s)
		body, _ := json.Marshal(map[string]string{
			"email": email, "password": password,
			"captcha_token": token, "captcha_answer": answer,
		})
		c, rec := newJSONContext(e, "POST", "/auth/login", string(body))
		var resp errorBody
		invoke(t, s.SignIn, rec, c, &resp)
		return rec.Code, resp
	}

	wrongPassCode, wrongPassBody := login("a@b.com", "WrongPass1")
	unknownCode, unknownBody := login("ghost@example.com", "Sup3rSecret")

	assert.Equal(t, http.StatusUnauthorized, wrongPassCode)
	assert.Equal(t, http.StatusUnauthorized, unknownCode)
	// Identical code and message so registered emails never leak.
	assert.Equal(t, wrongPassBody, unknownBody)
}
