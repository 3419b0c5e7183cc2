package app

import (
	"testing"
	"time"
)

func TestTokenManager_AccessGenerateAndParse(t *testing.T) {
	cfg := TokenConfig{
		SecretKey: "user-secret",
		Expiry:    1 * time.Hour,
		Issuer:    "test-issuer",
	}
	tm := NewTokenManager(cfg)

	uid := int64(1001)
	username := "testuser"

	// 1. 测试生成和解析
	token, err := tm.GenerateAccess(uid, username)
	if err != nil {
		t.Fatalf("GenerateAccess failed: %v", err)
	}

	parsedUser, err := tm.ParseAccess(token)
	if err != nil {
		t.Fatalf("ParseAccess failed: %v", err)
	}

	// 验证字段
	if parsedUser.UID != uid {
		t.Errorf("Expected UID %d, got %d", uid, parsedUser.UID)
	}
	if parsedUser.Username != username {
		t.Errorf("Expected Username %s, got %s", username, parsedUser.Username)
	}
	if parsedUser.Issuer != cfg.Issuer {
		t.Errorf("Expected Issuer %s, got %s", cfg.Issuer, parsedUser.Issuer)
	}

	// 验证 ExpiresAt (由于只存了秒级 Unix 戳，允许 1 秒内的误差)
	expectedExp := time.Now().Add(cfg.Expiry)
	if parsedUser.ExpiresAt.Unix() < expectedExp.Unix()-1 || parsedUser.ExpiresAt.Unix() > expectedExp.Unix()+1 {
		t.Errorf("Expected ExpiresAt around %v, got %v", expectedExp, parsedUser.ExpiresAt)
	}

	// 2. 测试过期
	shortExpiryCfg := cfg
	shortExpiryCfg.Expiry = -1 * time.Second
	tmExpired := NewTokenManager(shortExpiryCfg)

	expiredToken, err := tmExpired.GenerateAccess(uid, username)
	if err != nil {
		t.Fatalf("GenerateAccess (expired) failed: %v", err)
	}

	_, err = tm.ParseAccess(expiredToken)
	if err == nil {
		t.Error("Expected error for expired token, but got nil")
	}

	// 3. 测试错误的密钥
	wrongKeyCfg := cfg
	wrongKeyCfg.SecretKey = "wrong-user-secret"
	tmWrongKey := NewTokenManager(wrongKeyCfg)

	wrongToken, _ := tmWrongKey.GenerateAccess(uid, username)
	_, err = tm.ParseAccess(wrongToken)
	if err == nil {
		t.Error("Expected error for token generated with different secret key, but got nil")
	}

	// 4. 测试篡改后的 Token
	tamperedToken := token + "xyz"
	_, err = tm.ParseAccess(tamperedToken)
	if err == nil {
		t.Error("Expected error for tampered user token, but got nil")
	}
}

func TestTokenManager_RefreshGenerateAndParse(t *testing.T) {
	cfg := TokenConfig{
		SecretKey:        "user-secret",
		RefreshSecretKey: "refresh-secret",
		Expiry:           1 * time.Hour,
		RefreshExpiry:    7 * 24 * time.Hour,
		Issuer:           "test-issuer",
	}
	tm := NewTokenManager(cfg)

	uid := int64(2002)

	token, err := tm.GenerateRefresh(uid)
	if err != nil {
		t.Fatalf("GenerateRefresh failed: %v", err)
	}

	parsed, err := tm.ParseRefresh(token)
	if err != nil {
		t.Fatalf("ParseRefresh failed: %v", err)
	}
	if parsed.UID != uid {
		t.Errorf("Expected UID %d, got %d", uid, parsed.UID)
	}

	// 刷新 Token 不能被当成访问 Token 使用，反之亦然
	if _, err = tm.ParseAccess(token); err == nil {
		t.Error("Expected error when parsing refresh token as access token, but got nil")
	}
	accessToken, err := tm.GenerateAccess(uid, "testuser")
	if err != nil {
		t.Fatalf("GenerateAccess failed: %v", err)
	}
	if _, err = tm.ParseRefresh(accessToken); err == nil {
		t.Error("Expected error when parsing access token as refresh token, but got nil")
	}
}
