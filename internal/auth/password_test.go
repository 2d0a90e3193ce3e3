// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package auth

import (
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	if !strings.HasPrefix(hash, "$argon2id$") {
		t.Fatalf("HashPassword = %q, want argon2id hash", hash)
	}
	if NeedsRehash(hash) {
		t.Error("fresh hash should not need a rehash")
	}
}

func TestCheckPassword_Argon2(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}

	valid, err := CheckPassword("s3cret-pass", hash)
	if err != nil || !valid {
		t.Fatalf("correct password rejected: valid=%v err=%v", valid, err)
	}

	valid, err = CheckPassword("wrongpassword", hash)
	if err != nil {
		t.Fatalf("CheckPassword error: %v", err)
	}
	if valid {
		t.Fatal("wrong password was accepted")
	}
}

func TestCheckPassword_OlderArgon2Params(t *testing.T) {
	// Hash of "changeme" created with m=65536,t=1,p=4.
	dbHash := "$argon2id$v=19$m=65536,t=1,p=4$mucMvOaS6lZ2LWNS1OEFKw$UYEWv8cvCOO6l2zGeqv3JPVe1nyy0x9GXBfYEuDM544"

	valid, err := CheckPassword("changeme", dbHash)
	if err != nil {
		t.Fatalf("CheckPassword error: %v", err)
	}
	if !valid {
		t.Fatal("hash rejected correct password")
	}
	if !NeedsRehash(dbHash) {
		t.Error("hash with old parameters should need a rehash")
	}
}

func TestCheckPassword_LegacyBcrypt(t *testing.T) {
	generated, err := bcrypt.GenerateFromPassword([]byte("legacy-pass"), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}
	// PHP's password_hash writes $2y$.
	phpHash := "$2y$" + string(generated)[4:]

	if !IsBcryptHash(phpHash) {
		t.Fatal("IsBcryptHash($2y$...) = false")
	}

	valid, err := CheckPassword("legacy-pass", phpHash)
	if err != nil || !valid {
		t.Fatalf("legacy hash rejected: valid=%v err=%v", valid, err)
	}

	valid, err = CheckPassword("other", phpHash)
	if err != nil {
		t.Fatalf("CheckPassword error: %v", err)
	}
	if valid {
		t.Fatal("legacy hash accepted wrong password")
	}

	if !NeedsRehash(phpHash) {
		t.Error("bcrypt hashes should always need a rehash")
	}
}

func TestCheckPassword_Malformed(t *testing.T) {
	if _, err := CheckPassword("x", "not-a-hash"); err == nil {
		t.Error("expected error for malformed hash")
	}
}
