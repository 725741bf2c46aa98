package password

import "testing"

func TestHashAndVerify(t *testing.T) {
	hash, err := Hash("correct horse battery staple")
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	if hash == "correct horse battery staple" {
		t.Fatal("hash equals plaintext")
	}

	if !Verify(hash, "correct horse battery staple") {
		t.Error("correct password rejected")
	}
	if Verify(hash, "wrong password") {
		t.Error("wrong password accepted")
	}
	if Verify("not a bcrypt hash", "anything") {
		t.Error("garbage hash accepted")
	}
}

func TestHashesAreSalted(t *testing.T) {
	first, err := Hash("same input")
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	second, err := Hash("same input")
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	if first == second {
		t.Error("two hashes of the same input are identical")
	}
}
