package crypto

import "testing"

func TestHashPassword_SaltedAndVerifiable(t *testing.T) {
	t.Parallel()

	const pw = "correct horse battery staple"

	h1, err := HashPassword(pw)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	h2, err := HashPassword(pw)
	if err != nil {
		t.Fatalf("HashPassword(2): %v", err)
	}
	if h1 == "" || h2 == "" {
		t.Fatalf("empty hash")
	}
	// bcrypt embeds a random salt, so two hashes of the same password differ.
	if h1 == h2 {
		t.Fatalf("hashes equal — salt missing?")
	}

	if !VerifyPassword(h1, pw) {
		t.Fatalf("VerifyPassword: expected true for correct password")
	}
	if !VerifyPassword(h2, pw) {
		t.Fatalf("VerifyPassword: expected true for second hash")
	}
}

func TestVerifyPassword_Rejects(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("hunter2hunter2")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}

	if VerifyPassword(hash, "wrong") {
		t.Fatalf("expected false for wrong password")
	}
	if VerifyPassword(hash, "") {
		t.Fatalf("expected false for empty password")
	}
	if VerifyPassword("not-a-bcrypt-hash", "hunter2hunter2") {
		t.Fatalf("expected false for malformed hash")
	}
}
