package utils

import "testing"

func TestPasswordHashRoundtrip(t *testing.T) {
	hashed, err := HashPassword("correct horse battery staple")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if hashed == "correct horse battery staple" {
		t.Fatal("hash equals plaintext")
	}
	if err := CheckPassword(hashed, "correct horse battery staple"); err != nil {
		t.Fatalf("CheckPassword with correct password: %v", err)
	}
	if err := CheckPassword(hashed, "wrong password"); err == nil {
		t.Fatal("CheckPassword accepted wrong password")
	}
}
