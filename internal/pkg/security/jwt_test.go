package security

import (
	"strings"
	"testing"
)

func TestGenerateAndValidateToken(t *testing.T) {
	token, err := GenerateToken(42, "ADMIN")
	if err != nil {
		t.Fatalf("GenerateToken 失败: %v", err)
	}

	claims, err := ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken 失败: %v", err)
	}
	if claims.UserID != 42 {
		t.Errorf("UserID = %d, want 42", claims.UserID)
	}
	if claims.Role != "ADMIN" {
		t.Errorf("Role = %q, want ADMIN", claims.Role)
	}
}

func TestValidateToken_Tampered(t *testing.T) {
	token, err := GenerateToken(1, "USER")
	if err != nil {
		t.Fatalf("GenerateToken 失败: %v", err)
	}

	parts := strings.Split(token, ".")
	tampered := parts[0] + "." + parts[1] + ".AAAA"

	if _, err = ValidateToken(tampered); err == nil {
		t.Error("篡改后的 token 校验应当失败")
	}
}

func TestExtractSignature(t *testing.T) {
	token, _ := GenerateToken(1, "USER")
	sig, err := ExtractSignature(token)
	if err != nil {
		t.Fatalf("ExtractSignature 失败: %v", err)
	}
	if sig == "" {
		t.Error("签名不应为空")
	}

	if _, err = ExtractSignature("abc"); err == nil {
		t.Error("非法格式应当返回错误")
	}
}
