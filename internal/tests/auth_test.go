package tests

import (
	"context"
	"errors"
	"testing"
	"time"

	"rentfleet/internal/config"
	"rentfleet/internal/domain"
	"rentfleet/internal/service"
)

// ──────────────────────────────────────────────
// AUTH
// ──────────────────────────────────────────────

func testAuthConfig() config.AuthConfig {
	return config.AuthConfig{
		JWTSecret: "test-secret",
		TokenTTL:  time.Hour,
	}
}

func validSignUp() service.SignUpRequest {
	return service.SignUpRequest{
		Name:     "Asha Rao",
		Email:    "asha@example.com",
		Password: "s3cret-pass",
		Phone:    "+91-98765-43210",
		Role:     "customer",
	}
}

func TestAuth_SignUp_Succeeds(t *testing.T) {
	t.Parallel()

	userRepo := NewMockUserRepository()
	svc := service.NewAuthService(userRepo, testAuthConfig())

	user, err := svc.SignUp(context.Background(), validSignUp())
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if user.ID == "" {
		t.Error("expected user ID to be set")
	}
	if user.Password != "" {
		t.Error("expected password to be stripped from the returned user")
	}
	if user.Role != domain.RoleCustomer {
		t.Errorf("expected role customer, got %s", user.Role)
	}

	// The stored user carries a hash, never the plaintext.
	stored := userRepo.GetUser(user.ID)
	if stored == nil {
		t.Fatal("expected user to be stored")
	}
	if stored.Password == "" || stored.Password == "s3cret-pass" {
		t.Error("expected stored password to be a hash")
	}
}

func TestAuth_SignUp_StoredHashSurvivesSanitizing(t *testing.T) {
	t.Parallel()

	userRepo := NewMockUserRepository()
	svc := service.NewAuthService(userRepo, testAuthConfig())

	user, err := svc.SignUp(context.Background(), validSignUp())
	if err != nil {
		t.Fatalf("sign-up failed: %v", err)
	}

	// The returned user is detached: mutating it must not reach the record.
	user.Password = "overwritten"
	user.Name = "overwritten"

	stored := userRepo.GetUser(user.ID)
	if stored.Password == "" || stored.Password == "overwritten" {
		t.Errorf("expected stored record to keep its hash, got %q", stored.Password)
	}
	if stored.Name != "Asha Rao" {
		t.Errorf("expected stored name unchanged, got %q", stored.Name)
	}

	// The hash must still verify credentials.
	if _, err := svc.SignIn(context.Background(), "asha@example.com", "s3cret-pass"); err != nil {
		t.Errorf("expected sign-in after sign-up to succeed, got: %v", err)
	}
}

func TestAuth_SignUp_MissingFields_Rejected(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name   string
		mutate func(*service.SignUpRequest)
	}{
		{name: "missing name", mutate: func(r *service.SignUpRequest) { r.Name = "" }},
		{name: "missing email", mutate: func(r *service.SignUpRequest) { r.Email = "" }},
		{name: "missing password", mutate: func(r *service.SignUpRequest) { r.Password = "" }},
		{name: "missing phone", mutate: func(r *service.SignUpRequest) { r.Phone = "" }},
		{name: "missing role", mutate: func(r *service.SignUpRequest) { r.Role = "" }},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			svc := service.NewAuthService(NewMockUserRepository(), testAuthConfig())

			req := validSignUp()
			tc.mutate(&req)

			_, err := svc.SignUp(context.Background(), req)
			if !errors.Is(err, service.ErrMissingUserFields) {
				t.Errorf("expected ErrMissingUserFields, got: %v", err)
			}
		})
	}
}

func TestAuth_SignUp_InvalidRole_Rejected(t *testing.T) {
	t.Parallel()

	svc := service.NewAuthService(NewMockUserRepository(), testAuthConfig())

	req := validSignUp()
	req.Role = "superuser"

	_, err := svc.SignUp(context.Background(), req)
	if !errors.Is(err, service.ErrInvalidUserRole) {
		t.Errorf("expected ErrInvalidUserRole, got: %v", err)
	}
}

func TestAuth_SignUp_DuplicateEmail_Rejected(t *testing.T) {
	t.Parallel()

	userRepo := NewMockUserRepository()
	svc := service.NewAuthService(userRepo, testAuthConfig())

	if _, err := svc.SignUp(context.Background(), validSignUp()); err != nil {
		t.Fatalf("first sign-up failed: %v", err)
	}

	// Same email, different casing.
	req := validSignUp()
	req.Email = "Asha@Example.com"

	_, err := svc.SignUp(context.Background(), req)
	if !errors.Is(err, service.ErrEmailTaken) {
		t.Errorf("expected ErrEmailTaken, got: %v", err)
	}
}

func TestAuth_SignInRoundTrip(t *testing.T) {
	t.Parallel()

	cfg := testAuthConfig()
	userRepo := NewMockUserRepository()
	svc := service.NewAuthService(userRepo, cfg)

	user, err := svc.SignUp(context.Background(), validSignUp())
	if err != nil {
		t.Fatalf("sign-up failed: %v", err)
	}

	result, err := svc.SignIn(context.Background(), "asha@example.com", "s3cret-pass")
	if err != nil {
		t.Fatalf("sign-in failed: %v", err)
	}

	if result.Token == "" {
		t.Fatal("expected a token")
	}
	if result.User.Password != "" {
		t.Error("expected password to be stripped from the signed-in user")
	}

	claims, err := service.VerifyToken(cfg, result.Token)
	if err != nil {
		t.Fatalf("token verification failed: %v", err)
	}
	if claims.Subject != user.ID {
		t.Errorf("expected subject %s, got %s", user.ID, claims.Subject)
	}
	if claims.Role != "customer" {
		t.Errorf("expected role customer, got %s", claims.Role)
	}
}

func TestAuth_SignIn_EmailIsCaseInsensitive(t *testing.T) {
	t.Parallel()

	svc := service.NewAuthService(NewMockUserRepository(), testAuthConfig())

	if _, err := svc.SignUp(context.Background(), validSignUp()); err != nil {
		t.Fatalf("sign-up failed: %v", err)
	}

	if _, err := svc.SignIn(context.Background(), "ASHA@example.COM", "s3cret-pass"); err != nil {
		t.Errorf("expected sign-in with different casing to succeed, got: %v", err)
	}
}

func TestAuth_SignIn_BadCredentials(t *testing.T) {
	t.Parallel()

	svc := service.NewAuthService(NewMockUserRepository(), testAuthConfig())

	if _, err := svc.SignUp(context.Background(), validSignUp()); err != nil {
		t.Fatalf("sign-up failed: %v", err)
	}

	// Wrong password and unknown email yield the same error.
	_, err := svc.SignIn(context.Background(), "asha@example.com", "wrong-pass")
	if !errors.Is(err, service.ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials for wrong password, got: %v", err)
	}

	_, err = svc.SignIn(context.Background(), "nobody@example.com", "s3cret-pass")
	if !errors.Is(err, service.ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials for unknown email, got: %v", err)
	}
}

func TestAuth_VerifyToken_RejectsTamperedToken(t *testing.T) {
	t.Parallel()

	cfg := testAuthConfig()
	svc := service.NewAuthService(NewMockUserRepository(), cfg)

	if _, err := svc.SignUp(context.Background(), validSignUp()); err != nil {
		t.Fatalf("sign-up failed: %v", err)
	}
	result, err := svc.SignIn(context.Background(), "asha@example.com", "s3cret-pass")
	if err != nil {
		t.Fatalf("sign-in failed: %v", err)
	}

	// Wrong secret.
	wrongCfg := config.AuthConfig{JWTSecret: "other-secret", TokenTTL: time.Hour}
	if _, err := service.VerifyToken(wrongCfg, result.Token); err == nil {
		t.Error("expected verification to fail with a different secret")
	}

	// Mangled payload.
	if _, err := service.VerifyToken(cfg, result.Token+"x"); err == nil {
		t.Error("expected verification to fail for a tampered token")
	}
}

func TestAuth_VerifyToken_RejectsExpiredToken(t *testing.T) {
	t.Parallel()

	cfg := config.AuthConfig{JWTSecret: "test-secret", TokenTTL: -time.Minute}
	svc := service.NewAuthService(NewMockUserRepository(), cfg)

	if _, err := svc.SignUp(context.Background(), validSignUp()); err != nil {
		t.Fatalf("sign-up failed: %v", err)
	}
	result, err := svc.SignIn(context.Background(), "asha@example.com", "s3cret-pass")
	if err != nil {
		t.Fatalf("sign-in failed: %v", err)
	}

	if _, err := service.VerifyToken(cfg, result.Token); err == nil {
		t.Error("expected verification to fail for an expired token")
	}
}
