package auth

import "testing"

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("hunter2")
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	if hash == "hunter2" {
		t.Fatal("HashPassword() returned the password")
	}

	if !CheckPassword(hash, "hunter2") {
		t.Error("CheckPassword() rejected the right password")
	}
	if CheckPassword(hash, "hunter3") {
		t.Error("CheckPassword() accepted a wrong password")
	}
	if CheckPassword("not-a-hash", "hunter2") {
		t.Error("CheckPassword() accepted a malformed hash")
	}

	if _, err := HashPassword(""); err == nil {
		t.Error("HashPassword() should reject an empty password")
	}
}
