// Package otp derives short time-stepped consent codes (RFC 6238 TOTP) from a
// shared base32 secret. Everything here is a pure function of (secret, time).
package otp

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
)

var ErrBadConfig = errors.New("otp: invalid generator config")

// Current returns the code for the time bucket floor(now/step).
func Current(secret string, digits int, step time.Duration, now time.Time) (string, error) {
	opts, err := options(digits, step)
	if err != nil {
		return "", err
	}
	code, err := totp.GenerateCodeCustom(secret, now, opts)
	if err != nil {
		return "", fmt.Errorf("otp: generate: %w", err)
	}
	return code, nil
}

// Verify reports whether candidate is exactly the code of the bucket
// containing now. There is no skew window: the previous and next buckets
// never match, and surrounding whitespace is not forgiven.
func Verify(secret string, digits int, step time.Duration, candidate string, now time.Time) bool {
	opts, err := options(digits, step)
	if err != nil {
		return false
	}
	// totp.ValidateCustom trims its input
	if candidate != strings.TrimSpace(candidate) {
		return false
	}
	ok, err := totp.ValidateCustom(candidate, secret, now, opts)
	return err == nil && ok
}

func options(digits int, step time.Duration) (totp.ValidateOpts, error) {
	if digits < 1 || digits > 10 || step < time.Second {
		return totp.ValidateOpts{}, ErrBadConfig
	}
	return totp.ValidateOpts{
		Period:    uint(step / time.Second),
		Skew:      0,
		Digits:    otp.Digits(digits),
		Algorithm: otp.AlgorithmSHA1,
	}, nil
}

// Generator binds the shared secret, code length and step once so callers
// don't carry them around.
type Generator struct {
	secret string
	digits int
	step   time.Duration
}

func NewGenerator(secret string, digits int, step time.Duration) (*Generator, error) {
	if secret == "" {
		return nil, fmt.Errorf("%w: empty secret", ErrBadConfig)
	}
	g := &Generator{secret: secret, digits: digits, step: step}
	// fail fast on a secret that isn't valid base32
	if _, err := g.Current(time.Unix(0, 0)); err != nil {
		return nil, err
	}
	return g, nil
}

func (g *Generator) Current(now time.Time) (string, error) {
	return Current(g.secret, g.digits, g.step, now)
}

func (g *Generator) Verify(candidate string, now time.Time) bool {
	return Verify(g.secret, g.digits, g.step, candidate, now)
}

// Step is the bucket index of now.
func (g *Generator) Step(now time.Time) int64 {
	secs := int64(g.step / time.Second)
	u := now.Unix()
	s := u / secs
	if u < 0 && u%secs != 0 {
		s--
	}
	return s
}

func (g *Generator) Interval() time.Duration { return g.step }
