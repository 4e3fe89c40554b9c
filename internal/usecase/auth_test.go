package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dkozlov/livetodo/internal/domain"
	"github.com/dkozlov/livetodo/internal/token"
	"github.com/dkozlov/livetodo/internal/usecase"
	"golang.org/x/crypto/bcrypt"
)

// ---- fakes ----

type fakeUserRepo struct {
	create      func(ctx context.Context, user *domain.User) error
	findByEmail func(ctx context.Context, email string) (*domain.User, error)
}

func (r *fakeUserRepo) Create(ctx context.Context, user *domain.User) error {
	return r.create(ctx, user)
}

func (r *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findByEmail(ctx, email)
}

type fakeTokenService struct {
	issue  func(user domain.User) (string, error)
	verify func(raw string) (*token.Claims, error)
}

func (s *fakeTokenService) Issue(user domain.User) (string, error) {
	return s.issue(user)
}

func (s *fakeTokenService) Verify(raw string) (*token.Claims, error) {
	return s.verify(raw)
}

func staticToken(signed string) *fakeTokenService {
	return &fakeTokenService{
		issue: func(_ domain.User) (string, error) { return signed, nil },
	}
}

// ---- Register ----

func TestRegister_StoresBcryptHash_NotPlaintext(t *testing.T) {
	var stored *domain.User
	repo := &fakeUserRepo{
		create: func(_ context.Context, user *domain.User) error {
			stored = user
			return nil
		},
	}

	uc := usecase.NewAuthUsecase(repo, staticToken("jwt"))
	res, err := uc.Register(context.Background(), "Alice", "alice@example.com", "pw1-secret")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if stored == nil {
		t.Fatal("user was not stored")
	}
	if stored.PasswordHash == "pw1-secret" {
		t.Fatal("password stored in plaintext")
	}
	if bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("pw1-secret")) != nil {
		t.Error("stored hash does not match the password")
	}
	if stored.ID == "" {
		t.Error("user ID was not assigned")
	}
	if res.Token != "jwt" {
		t.Errorf("token = %q, want %q", res.Token, "jwt")
	}
}

func TestRegister_DuplicateEmail_ReturnsErrUserExists(t *testing.T) {
	repo := &fakeUserRepo{
		create: func(_ context.Context, _ *domain.User) error {
			return domain.ErrUserExists
		},
	}

	uc := usecase.NewAuthUsecase(repo, staticToken("jwt"))
	_, err := uc.Register(context.Background(), "Alice", "alice@example.com", "pw")
	if !errors.Is(err, domain.ErrUserExists) {
		t.Errorf("want ErrUserExists, got %v", err)
	}
}

func TestRegister_TokenError_Propagates(t *testing.T) {
	issueErr := errors.New("signing broken")
	repo := &fakeUserRepo{
		create: func(_ context.Context, _ *domain.User) error { return nil },
	}
	tokens := &fakeTokenService{
		issue: func(_ domain.User) (string, error) { return "", issueErr },
	}

	uc := usecase.NewAuthUsecase(repo, tokens)
	_, err := uc.Register(context.Background(), "Alice", "alice@example.com", "pw")
	if !errors.Is(err, issueErr) {
		t.Errorf("want wrapped issueErr, got %v", err)
	}
}

// ---- Login ----

func loginRepo(t *testing.T, password string) *fakeUserRepo {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	user := &domain.User{
		ID:           "user-1",
		Name:         "Alice",
		Email:        "alice@example.com",
		PasswordHash: string(hash),
	}
	return &fakeUserRepo{
		findByEmail: func(_ context.Context, email string) (*domain.User, error) {
			if email != user.Email {
				return nil, domain.ErrUserNotFound
			}
			return user, nil
		},
	}
}

func TestLogin_Success_ReturnsTokenAndUser(t *testing.T) {
	uc := usecase.NewAuthUsecase(loginRepo(t, "pw1"), staticToken("jwt"))

	res, err := uc.Login(context.Background(), "alice@example.com", "pw1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Token != "jwt" {
		t.Errorf("token = %q, want %q", res.Token, "jwt")
	}
	if res.User.Email != "alice@example.com" {
		t.Errorf("email = %q, want alice@example.com", res.User.Email)
	}
}

func TestLogin_WrongPassword_ReturnsErrInvalidCredentials(t *testing.T) {
	uc := usecase.NewAuthUsecase(loginRepo(t, "pw1"), staticToken("jwt"))

	_, err := uc.Login(context.Background(), "alice@example.com", "wrong")
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Errorf("want ErrInvalidCredentials, got %v", err)
	}
}

func TestLogin_UnknownEmail_ReturnsErrUserNotFound(t *testing.T) {
	uc := usecase.NewAuthUsecase(loginRepo(t, "pw1"), staticToken("jwt"))

	_, err := uc.Login(context.Background(), "nobody@example.com", "pw1")
	if !errors.Is(err, domain.ErrUserNotFound) {
		t.Errorf("want ErrUserNotFound, got %v", err)
	}
}

// ---- end to end with the real token service ----

func TestRegisterThenLogin_TokenCarriesRegisteredEmail(t *testing.T) {
	users := make(map[string]*domain.User)
	repo := &fakeUserRepo{
		create: func(_ context.Context, user *domain.User) error {
			if _, ok := users[user.Email]; ok {
				return domain.ErrUserExists
			}
			users[user.Email] = user
			return nil
		},
		findByEmail: func(_ context.Context, email string) (*domain.User, error) {
			u, ok := users[email]
			if !ok {
				return nil, domain.ErrUserNotFound
			}
			return u, nil
		},
	}
	svc := token.NewStaticSecrets([]byte("auth-usecase-test-secret-32-char!"), time.Hour)
	uc := usecase.NewAuthUsecase(repo, svc)

	if _, err := uc.Register(context.Background(), "Alice", "alice@example.com", "pw1"); err != nil {
		t.Fatalf("register: %v", err)
	}

	res, err := uc.Login(context.Background(), "alice@example.com", "pw1")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	claims, err := svc.Verify(res.Token)
	if err != nil {
		t.Fatalf("verify issued token: %v", err)
	}
	if claims.Email != "alice@example.com" {
		t.Errorf("claims email = %q, want alice@example.com", claims.Email)
	}
}
