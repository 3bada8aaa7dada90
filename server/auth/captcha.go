package auth

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	apperr "github.com/repgenie/repgenie/internal/errors"
)

// CaptchaTTL bounds how long a challenge stays answerable.
const CaptchaTTL = 5 * time.Minute

// Captcha issues and verifies stateless arithmetic challenges. The
// expected answer travels inside a signed token, so no server-side
// challenge state is kept.
type Captcha struct {
	secret []byte
}

// NewCaptcha creates a captcha signer with the given secret.
func NewCaptcha(secret string) *Captcha {
	return &Captcha{secret: []byte(secret)}
}

type captchaClaims struct {
	Answer string `json:"answer"`
	jwt.RegisteredClaims
}

// Challenge holds a freshly issued captcha.
type Challenge struct {
	Token    string `json:"captcha_token"`
	Question string `json:"question"`
}

// NewChallenge generates a small arithmetic question and a token that
// encodes its answer.
func (c *Captcha) NewChallenge() (*Challenge, error) {
	a, err := randInt(10, 50)
	if err != nil {
		return nil, err
	}
	b, err := randInt(1, 10)
	if err != nil {
		return nil, err
	}
	op, err := randInt(0, 2)
	if err != nil {
		return nil, err
	}

	var question string
	var answer int64
	if op == 0 {
		question = fmt.Sprintf("What is %d + %d?", a, b)
		answer = a + b
	} else {
		question = fmt.Sprintf("What is %d - %d?", a, b)
		answer = a - b
	}

	now := time.Now()
	claims := captchaClaims{
		Answer: strconv.FormatInt(answer, 10),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "repgenie",
			Subject:   "captcha",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(CaptchaTTL)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
	if err != nil {
		return nil, err
	}
	return &Challenge{Token: token, Question: question}, nil
}

// Verify checks the answer against the token. Missing inputs yield a
// CAPTCHA_REQUIRED error; an expired token, a tampered token or a wrong
// answer all yield CAPTCHA_FAILED.
func (c *Captcha) Verify(token, answer string) error {
	if token == "" || strings.TrimSpace(answer) == "" {
		return apperr.CaptchaRequired()
	}
	claims := &captchaClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return c.secret, nil
	})
	if err != nil || !parsed.Valid {
		return apperr.CaptchaFailed()
	}
	if strings.TrimSpace(answer) != claims.Answer {
		return apperr.CaptchaFailed()
	}
	return nil
}

func randInt(min, max int64) (int64, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(max-min+1))
	if err != nil {
		return 0, err
	}
	return min + n.Int64(), nil
}
