package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/donaldgifford/devlog/internal/store"
	storeMocks "github.com/donaldgifford/devlog/internal/store/mocks"
	domain "github.com/donaldgifford/devlog/pkg/types"
)

func newTestService(t *testing.T) (*Service, *storeMocks.MockStore) {
	t.Helper()

	ms := storeMocks.NewMockStore(t)
	svc := NewService(ms, 8)
	svc.cost = bcrypt.MinCost
	return svc, ms
}

func hashFor(t *testing.T, password string) string {
	t.Helper()

	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(h)
}

func TestNewService_DefaultMinimum(t *testing.T) {
	t.Parallel()

	svc := NewService(storeMocks.NewMockStore(t), 0)
	assert.Equal(t, DefaultMinPasswordLength, svc.MinPasswordLength())
}

func TestSignUp(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		email     string
		password  string
		setupMock func(*storeMocks.MockStore)
		wantErr   error
		wantEmail string
	}{
		{
			name:     "creates user with normalized email and bcrypt hash",
			email:    "  Ada@Example.COM ",
			password: "correct horse",
			setupMock: func(m *storeMocks.MockStore) {
				m.EXPECT().
					CreateUser(mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
						return u.Email == "ada@example.com" &&
							bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("correct horse")) == nil
					})).
					Run(func(_ context.Context, u *domain.User) { u.ID = "u-1" }).
					Return(nil).
					Once()
			},
			wantEmail: "ada@example.com",
		},
		{
			name:     "rejects malformed email",
			email:    "not-an-email",
			password: "long enough",
			wantErr:  ErrInvalidEmail,
		},
		{
			name:     "rejects display-name form",
			email:    "Ada <ada@example.com>",
			password: "long enough",
			wantErr:  ErrInvalidEmail,
		},
		{
			name:     "rejects empty email",
			email:    "   ",
			password: "long enough",
			wantErr:  ErrInvalidEmail,
		},
		{
			name:     "rejects short password",
			email:    "ada@example.com",
			password: "short",
			wantErr:  ErrWeakPassword,
		},
		{
			name:     "counts runes not bytes",
			email:    "ada@example.com",
			password: "ñññññññ",
			wantErr:  ErrWeakPassword,
		},
		{
			name:     "maps duplicate to ErrEmailTaken",
			email:    "ada@example.com",
			password: "long enough",
			setupMock: func(m *storeMocks.MockStore) {
				m.EXPECT().
					CreateUser(mock.Anything, mock.Anything).
					Return(store.ErrAlreadyExists).
					Once()
			},
			wantErr: ErrEmailTaken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			svc, ms := newTestService(t)
			if tt.setupMock != nil {
				tt.setupMock(ms)
			}

			u, err := svc.SignUp(context.Background(), tt.email, tt.password)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, u)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, "u-1", u.ID)
			assert.Equal(t, tt.wantEmail, u.Email)
		})
	}
}

func TestSignUp_StoreError(t *testing.T) {
	t.Parallel()

	svc, ms := newTestService(t)
	ms.EXPECT().
		CreateUser(mock.Anything, mock.Anything).
		Return(errors.New("connection refused")).
		Once()

	_, err := svc.SignUp(context.Background(), "ada@example.com", "long enough")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "creating user")
	assert.NotErrorIs(t, err, ErrEmailTaken)
}

func TestLogin(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		email     string
		password  string
		setupMock func(*testing.T, *storeMocks.MockStore)
		wantErr   error
		wantErrS  string
	}{
		{
			name:     "valid credentials",
			email:    "ADA@example.com",
			password: "correct horse",
			setupMock: func(t *testing.T, m *storeMocks.MockStore) {
				m.EXPECT().
					GetUserByEmail(mock.Anything, "ada@example.com").
					Return(&domain.User{ID: "u-1", Email: "ada@example.com", PasswordHash: hashFor(t, "correct horse")}, nil).
					Once()
			},
		},
		{
			name:     "wrong password",
			email:    "ada@example.com",
			password: "battery staple",
			setupMock: func(t *testing.T, m *storeMocks.MockStore) {
				m.EXPECT().
					GetUserByEmail(mock.Anything, "ada@example.com").
					Return(&domain.User{ID: "u-1", PasswordHash: hashFor(t, "correct horse")}, nil).
					Once()
			},
			wantErr: ErrInvalidCredentials,
		},
		{
			name:     "unknown email",
			email:    "nobody@example.com",
			password: "whatever1",
			setupMock: func(_ *testing.T, m *storeMocks.MockStore) {
				m.EXPECT().
					GetUserByEmail(mock.Anything, "nobody@example.com").
					Return(nil, store.ErrNotFound).
					Once()
			},
			wantErr: ErrInvalidCredentials,
		},
		{
			name:     "malformed email never reaches the store",
			email:    "nope",
			password: "whatever1",
			wantErr:  ErrInvalidCredentials,
		},
		{
			name:     "store failure is wrapped",
			email:    "ada@example.com",
			password: "whatever1",
			setupMock: func(_ *testing.T, m *storeMocks.MockStore) {
				m.EXPECT().
					GetUserByEmail(mock.Anything, "ada@example.com").
					Return(nil, errors.New("timeout")).
					Once()
			},
			wantErrS: "looking up user: timeout",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			svc, ms := newTestService(t)
			if tt.setupMock != nil {
				tt.setupMock(t, ms)
			}

			u, err := svc.Login(context.Background(), tt.email, tt.password)
			switch {
			case tt.wantErr != nil:
				require.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, u)
			case tt.wantErrS != "":
				require.EqualError(t, err, tt.wantErrS)
			default:
				require.NoError(t, err)
				assert.Equal(t, "u-1", u.ID)
			}
		})
	}
}
