package logger

import (
	"strings"
	"testing"
)

func TestSanitizeKVsRedactsSecrets(t *testing.T) {
	out := sanitizeKVs([]interface{}{
		"admin_token", "abc",
		"phone", "+1 555 0100",
		"product_id", 10,
	})
	if len(out) != 6 {
		t.Fatalf("len: want=6 got=%d", len(out))
	}
	if out[1] != "[REDACTED]" {
		t.Fatalf("token not redacted: %v", out[1])
	}
	if out[3] != "[REDACTED]" {
		t.Fatalf("phone not redacted: %v", out[3])
	}
	if out[5] != 10 {
		t.Fatalf("product_id should pass through, got %v", out[5])
	}
}

func TestSanitizeKVsHashesEmail(t *testing.T) {
	out := sanitizeKVs([]interface{}{"email", "jane@example.com"})
	got, ok := out[1].(string)
	if !ok || !strings.HasPrefix(got, "hash:") {
		t.Fatalf("email should be hashed, got %v", out[1])
	}
	again := sanitizeKVs([]interface{}{"email", "jane@example.com"})
	if again[1] != got {
		t.Fatalf("hash not stable: %v vs %v", again[1], got)
	}
}

func TestSanitizeKVsOddLength(t *testing.T) {
	out := sanitizeKVs([]interface{}{"collection_id", 5, "dangling"})
	if len(out) != 3 || out[2] != "dangling" {
		t.Fatalf("unexpected output: %v", out)
	}
}

func TestNewModes(t *testing.T) {
	for _, mode := range []string{"development", "production", "test"} {
		l, err := New(mode)
		if err != nil {
			t.Fatalf("New(%q): %v", mode, err)
		}
		l.With("mode", mode).Info("logger ready")
		l.Sync()
	}
}

func TestPolicyFor(t *testing.T) {
	cases := map[string]fieldPolicy{
		"authorization":       redactField,
		"staff_token":         redactField,
		"customer_email":      hashField,
		"last_name":           hashField,
		"collection_id":       keepField,
		"products_count":      keepField,
		"admin_jwt_secret":    redactField,
		"customer_birth_date": redactField,
	}
	for key, want := range cases {
		if got := policyFor(key); got != want {
			t.Fatalf("policyFor(%q): want=%d got=%d", key, want, got)
		}
	}
}

func TestSanitizeNestedMapAndJWT(t *testing.T) {
	jwtish := "eyJhbGciOiJIUzI1NiJ9.eyJzdWIiOiJhbGljZSJ9.sig"
	out := sanitizeKVs([]interface{}{
		"details", map[string]interface{}{"password": "x", "ids": []int{1, 2}},
		"header", jwtish,
	})
	details := out[1].(map[string]interface{})
	if details["password"] != "[REDACTED]" {
		t.Fatalf("nested password not redacted: %v", details)
	}
	if out[3] != "[REDACTED]" {
		t.Fatalf("jwt-looking value not redacted: %v", out[3])
	}
}
