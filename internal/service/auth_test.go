package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"clinic/config"
	"clinic/internal/domain"
)

func newTestAuthService(users *fakeUserRepo) *AuthServiceImpl {
	return NewAuthService(nil, users, config.JWTConfig{SigningKey: "test-key"}, zap.NewNop())
}

func validRegisterRequest() domain.RegisterRequest {
	return domain.RegisterRequest{
		FirstName: "Иван",
		LastName:  "Петров",
		Email:     "ivan@example.com",
		Phone:     "+79161234567",
		Password:  "secret123",
	}
}

func TestRegister_CreatesPatient(t *testing.T) {
	users := newFakeUserRepo()
	svc := newTestAuthService(users)

	id, err := svc.Register(context.Background(), validRegisterRequest())
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	user, err := users.GetByID(context.Background(), id)
	if err != nil {
		t.Fatalf("created user not found: %v", err)
	}
	if user.Role != domain.UserRolePatient {
		t.Errorf("registered role = %s, want patient", user.Role)
	}
}

func TestRegister_RejectsShortName(t *testing.T) {
	svc := newTestAuthService(newFakeUserRepo())

	// Однобуквенное имя короткое и в кириллице, где буква занимает два байта.
	for _, name := range []string{"А", "J", ""} {
		req := validRegisterRequest()
		req.FirstName = name
		if _, err := svc.Register(context.Background(), req); err == nil {
			t.Errorf("Register() with first name %q expected an error", name)
		}
	}

	req := validRegisterRequest()
	req.MiddleName = "Б"
	if _, err := svc.Register(context.Background(), req); err == nil {
		t.Error("Register() with a one-letter middle name expected an error")
	}
}

func TestRegister_EmailTaken(t *testing.T) {
	users := newFakeUserRepo(&domain.User{ID: 1, Email: "ivan@example.com"})
	svc := newTestAuthService(users)

	_, err := svc.Register(context.Background(), validRegisterRequest())
	if !errors.Is(err, domain.ErrEmailTaken) {
		t.Errorf("Register() with a taken email: error = %v, want ErrEmailTaken", err)
	}
}
