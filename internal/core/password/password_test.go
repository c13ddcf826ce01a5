package password

import "testing"

func TestHashAndVerify(t *testing.T) {
	h, err := Hash("testpassword")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	if h == "testpassword" {
		t.Fatalf("hash must not equal plaintext")
	}
	if !Verify("testpassword", h) {
		t.Fatalf("expected matching password to verify")
	}
	if Verify("otherpassword", h) {
		t.Fatalf("expected non-matching password to fail")
	}
}

func TestHash_SaltedPerCall(t *testing.T) {
	h1, err := Hash("same-input")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	h2, err := Hash("same-input")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	if h1 == h2 {
		t.Fatalf("two hashes of the same input must differ (embedded salt)")
	}
	if !Verify("same-input", h1) || !Verify("same-input", h2) {
		t.Fatalf("both hashes must verify against the original input")
	}
}

func TestVerify_MalformedHash(t *testing.T) {
	for _, bad := range []string{"", "not-a-bcrypt-hash", "$2a$xx$garbage"} {
		if Verify("anything", bad) {
			t.Fatalf("malformed hash %q must not verify", bad)
		}
	}
}
