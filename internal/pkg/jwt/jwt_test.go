package jwt

import (
	"encoding/base64"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var issuedAt = time.Unix(1700000000, 0)

func TestCodec_IssueVerify_RoundTrip(t *testing.T) {
	codec := NewCodec("test-secret")
	ttl := 24 * time.Hour

	token, err := codec.Issue("a@x.com", issuedAt, ttl)
	require.NoError(t, err)

	tests := []struct {
		name    string
		at      time.Time
		wantErr error
	}{
		{"at issue", issuedAt, nil},
		{"midway", issuedAt.Add(12 * time.Hour), nil},
		{"exactly at expiry", issuedAt.Add(ttl), nil},
		{"one second past expiry", issuedAt.Add(ttl + time.Second), ErrTokenExpired},
		{"long after expiry", issuedAt.Add(30 * 24 * time.Hour), ErrTokenExpired},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			claims, err := codec.Verify(token, tc.at)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				assert.Nil(t, claims)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "a@x.com", claims.Subject)
			assert.Equal(t, issuedAt.Unix(), claims.IssuedAt.Unix())
			assert.Equal(t, issuedAt.Add(ttl).Unix(), claims.ExpiresAt.Unix())
		})
	}
}

func TestCodec_SubSecondIssueInstant(t *testing.T) {
	codec := NewCodec("test-secret")
	now := time.Unix(1700000000, 9e8)

	tests := []struct {
		name    string
		ttl     time.Duration
		at      time.Time
		wantErr error
	}{
		{"just before expiry", time.Minute, now.Add(time.Minute - 100*time.Millisecond), nil},
		{"exactly at expiry", time.Minute, now.Add(time.Minute), nil},
		{"a second past expiry", time.Minute, now.Add(time.Minute + time.Second), ErrTokenExpired},
		{"fractional ttl at expiry", 1500 * time.Millisecond, now.Add(1500 * time.Millisecond), nil},
		{"fractional ttl, later second", 1500 * time.Millisecond, now.Add(3 * time.Second), ErrTokenExpired},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			token, err := codec.Issue("a@x.com", now, tc.ttl)
			require.NoError(t, err)

			_, err = codec.Verify(token, tc.at)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestCodec_Issue_IsDeterministic(t *testing.T) {
	codec := NewCodec("test-secret")

	first, err := codec.Issue("a@x.com", issuedAt, time.Hour)
	require.NoError(t, err)
	second, err := codec.Issue("a@x.com", issuedAt, time.Hour)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestCodec_Issue_RejectsBadInput(t *testing.T) {
	codec := NewCodec("test-secret")

	_, err := codec.Issue("a@x.com", issuedAt, 0)
	assert.ErrorIs(t, err, ErrInvalidTTL)

	_, err = codec.Issue("a@x.com", issuedAt, -time.Minute)
	assert.ErrorIs(t, err, ErrInvalidTTL)

	_, err = codec.Issue("", issuedAt, time.Minute)
	assert.ErrorIs(t, err, ErrEmptySubject)
}

func TestCodec_Verify_RejectsTamperedPayload(t *testing.T) {
	codec := NewCodec("test-secret")
	token, err := codec.Issue("a@x.com", issuedAt, time.Hour)
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)

	raw, err := base64.RawURLEncoding.DecodeString(parts[1])
	require.NoError(t, err)

	var payload map[string]any
	require.NoError(t, json.Unmarshal(raw, &payload))

	mutations := map[string]func(map[string]any){
		"subject": func(p map[string]any) { p["sub"] = "mallory@x.com" },
		"expiry":  func(p map[string]any) { p["exp"] = issuedAt.Add(365 * 24 * time.Hour).Unix() },
	}

	for name, mutate := range mutations {
		t.Run(name, func(t *testing.T) {
			forged := map[string]any{}
			for k, v := range payload {
				forged[k] = v
			}
			mutate(forged)

			body, err := json.Marshal(forged)
			require.NoError(t, err)

			tampered := parts[0] + "." + base64.RawURLEncoding.EncodeToString(body) + "." + parts[2]
			_, err = codec.Verify(tampered, issuedAt)
			assert.ErrorIs(t, err, ErrTokenInvalid)
		})
	}
}

func TestCodec_Verify_RejectsForeignSignature(t *testing.T) {
	token, err := NewCodec("other-secret").Issue("a@x.com", issuedAt, time.Hour)
	require.NoError(t, err)

	_, err = NewCodec("test-secret").Verify(token, issuedAt)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestCodec_Verify_RejectsMalformed(t *testing.T) {
	codec := NewCodec("test-secret")

	for _, raw := range []string{"", "null", "abc", "a.b.c", "Bearer x.y.z"} {
		_, err := codec.Verify(raw, issuedAt)
		assert.ErrorIs(t, err, ErrTokenInvalid, "input %q", raw)
	}
}

func TestCodec_Subject(t *testing.T) {
	codec := NewCodec("test-secret")
	token, err := codec.Issue("a@x.com", issuedAt, time.Minute)
	require.NoError(t, err)

	subject, err := codec.Subject(token, issuedAt.Add(30*time.Second))
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", subject)

	_, err = codec.Subject(token, issuedAt.Add(2*time.Minute))
	assert.ErrorIs(t, err, ErrTokenExpired)
}
