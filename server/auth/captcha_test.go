package auth

import (
	"regexp"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperr "github.com/repgenie/repgenie/internal/errors"
)

var questionRE = regexp.MustCompile(`What is (\d+) ([+-]) (\d+)\?`)

func solve(t *testing.T, question string) string {
	t.Helper()
	m := questionRE.FindStringSubmatch(question)
	require.NotNil(t, m, "unexpected question format: %s", question)
	a, _ := strconv.Atoi(m[1])
	b, _ := strconv.Atoi(m[3])
	if m[2] == "+" {
		return strconv.Itoa(a + b)
	}
	return strconv.Itoa(a - b)
}

func TestCaptchaRoundTrip(t *testing.T) {
	c := NewCaptcha("test-secret")
	ch, err := c.NewChallenge()
	require.NoError(t, err)
	require.NotEmpty(t, ch.Token)

	assert.NoError(t, c.Verify(ch.Token, solve(t, ch.Question)))
}

func TestCaptchaWrongAnswer(t *testing.T) {
	c := NewCaptcha("test-secret")
	ch, err := c.NewChallenge()
	require.NoError(t, err)

	err = c.Verify(ch.Token, "999999")
	require.Error(t, err)
	assert.True(t, apperr.IsCode(err, apperr.ErrCodeCaptchaFailed))
}

func TestCaptchaMissingInputs(t *testing.T) {
	c := NewCaptcha("test-secret")
	ch, err := c.NewChallenge()
	require.NoError(t, err)

	err = c.Verify("", "3")
	assert.True(t, apperr.IsCode(err, apperr.ErrCodeCaptchaRequired))

	err = c.Verify(ch.Token, "  ")
	assert.True(t, apperr.IsCode(err, apperr.ErrCodeCaptchaRequired))
}

func TestCaptchaTamperedToken(t *testing.T) {
	c := NewCaptcha("test-secret")
	other := NewCaptcha("other-secret")
	ch, err := other.NewChallenge()
	require.NoError(t, err)

	err = c.Verify(ch.Token, solve(t, ch.Question))
	require.Error(t, err)
	assert.True(t, apperr.IsCode(err, apperr.ErrCodeCaptchaFailed))
}
