package session

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/diyabansal-1605/full-stack-project/internal/domain"
	"github.com/diyabansal-1605/full-stack-project/internal/storage"
)

func mintToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("any-secret"))
	require.NoError(t, err)
	return tok
}

func newFileStore(t *testing.T) storage.CredentialStore {
	return storage.NewFileStore(filepath.Join(t.TempDir(), "store.json"))
}

type failingStore struct {
	storage.CredentialStore
	setErr error
	getErr error
}

func (f failingStore) Set(ctx context.Context, key, value string) error {
	if f.setErr != nil {
		return f.setErr
	}
	return f.CredentialStore.Set(ctx, key, value)
}

func (f failingStore) Get(ctx context.Context, key string) (string, error) {
	if f.getErr != nil {
		return "", f.getErr
	}
	return f.CredentialStore.Get(ctx, key)
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name   string
		claims jwt.MapClaims
		wantID string
	}{
		{name: "id claim", claims: jwt.MapClaims{"id": "u1", "name": "Asha"}, wantID: "u1"},
		{name: "mongo id claim", claims: jwt.MapClaims{"_id": "u2"}, wantID: "u2"},
		{name: "userId claim", claims: jwt.MapClaims{"userId": "u3"}, wantID: "u3"},
		{name: "numeric id", claims: jwt.MapClaims{"id": float64(42)}, wantID: "42"},
		{name: "subject fallback", claims: jwt.MapClaims{"sub": "u5"}, wantID: "u5"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := Decode(mintToken(t, tt.claims))
			require.NoError(t, err)
			assert.Equal(t, tt.wantID, id.ID)
		})
	}
}

func TestDecode_IgnoresSignatureAndExpiry(t *testing.T) {
	tok := mintToken(t, jwt.MapClaims{"id": "u1", "email": "a@b.in", "phoneNumber": "9876543210", "exp": float64(1)})
	id, err := Decode(tok)
	require.NoError(t, err)
	assert.Equal(t, domain.Identity{ID: "u1", Email: "a@b.in", PhoneNumber: "9876543210"}, id)
}

func TestDecode_Garbage(t *testing.T) {
	_, err := Decode("not-a-token")
	assert.ErrorIs(t, err, ErrUndecodable)
}

func TestLogin_PersistsAndPublishes(t *testing.T) {
	ctx := context.Background()
	creds := newFileStore(t)
	s := NewStore(creds)

	var got []domain.Session
	s.Subscribe(func(sess domain.Session) { got = append(got, sess) })

	tok := mintToken(t, jwt.MapClaims{"id": "u1", "name": "Asha"})
	require.NoError(t, s.Login(ctx, tok))

	stored, err := creds.Get(ctx, CredentialKey)
	require.NoError(t, err)
	assert.Equal(t, tok, stored)

	require.Len(t, got, 1)
	assert.True(t, got[0].Authenticated())
	assert.Equal(t, "Asha", got[0].Identity.Name)
	assert.Equal(t, tok, s.Token())
}

func TestLogin_UndecodableKeepsCredentialAndSession(t *testing.T) {
	ctx := context.Background()
	creds := newFileStore(t)
	s := NewStore(creds)

	published := 0
	s.Subscribe(func(domain.Session) { published++ })

	err := s.Login(ctx, "garbage")
	assert.ErrorIs(t, err, ErrUndecodable)
	assert.Equal(t, 0, published)
	assert.True(t, s.Current().Empty())

	stored, err := creds.Get(ctx, CredentialKey)
	require.NoError(t, err)
	assert.Equal(t, "garbage", stored)
}

func TestLogin_PersistFailurePublishesNothing(t *testing.T) {
	s := NewStore(failingStore{CredentialStore: newFileStore(t), setErr: errors.New("disk full")})
	published := 0
	s.Subscribe(func(domain.Session) { published++ })

	err := s.Login(context.Background(), mintToken(t, jwt.MapClaims{"id": "u1"}))
	assert.Error(t, err)
	assert.Equal(t, 0, published)
}

func TestRestore(t *testing.T) {
	ctx := context.Background()

	t.Run("valid credential", func(t *testing.T) {
		creds := newFileStore(t)
		tok := mintToken(t, jwt.MapClaims{"id": "u1"})
		require.NoError(t, creds.Set(ctx, CredentialKey, tok))

		s := NewStore(creds)
		s.Restore(ctx)
		s.Restore(ctx)
		assert.Equal(t, "u1", s.Current().Identity.ID)
	})

	t.Run("invalid credential is removed", func(t *testing.T) {
		creds := newFileStore(t)
		require.NoError(t, creds.Set(ctx, CredentialKey, "broken"))

		s := NewStore(creds)
		s.Restore(ctx)
		assert.True(t, s.Current().Empty())
		_, err := creds.Get(ctx, CredentialKey)
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("nothing persisted", func(t *testing.T) {
		s := NewStore(newFileStore(t))
		s.Restore(ctx)
		assert.True(t, s.Current().Empty())
	})

	t.Run("storage failure degrades to empty", func(t *testing.T) {
		s := NewStore(failingStore{CredentialStore: newFileStore(t), getErr: errors.New("unreachable")})
		s.Restore(ctx)
		assert.True(t, s.Current().Empty())
	})
}

func TestRestore_CorruptFileThenLogin(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "store.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	s := NewStore(storage.NewFileStore(path))
	s.Restore(ctx)
	assert.True(t, s.Current().Empty())

	tok := mintToken(t, jwt.MapClaims{"id": "u1", "name": "Asha"})
	require.NoError(t, s.Login(ctx, tok))
	assert.True(t, s.Current().Authenticated())

	restored := NewStore(storage.NewFileStore(path))
	restored.Restore(ctx)
	assert.Equal(t, "u1", restored.Current().Identity.ID)
}

func TestLogout_ThenRestoreIsEmpty(t *testing.T) {
	ctx := context.Background()
	creds := newFileStore(t)
	s := NewStore(creds)
	require.NoError(t, s.Login(ctx, mintToken(t, jwt.MapClaims{"id": "u1"})))

	require.NoError(t, s.Logout(ctx))
	assert.True(t, s.Current().Empty())

	restored := NewStore(creds)
	restored.Restore(ctx)
	assert.True(t, restored.Current().Empty())
}

func TestUpdateIdentity_PublishesNewValue(t *testing.T) {
	ctx := context.Background()
	s := NewStore(newFileStore(t))
	tok := mintToken(t, jwt.MapClaims{"id": "u1", "name": "Old"})
	require.NoError(t, s.Login(ctx, tok))
	before := s.Current()

	var got domain.Session
	s.Subscribe(func(sess domain.Session) { got = sess })

	require.True(t, s.UpdateIdentity(domain.Identity{ID: "u1", Name: "New"}))
	assert.Equal(t, "New", got.Identity.Name)
	assert.Equal(t, tok, got.Credential)
	assert.Equal(t, "Old", before.Identity.Name)
}

func TestUpdateIdentity_WithoutSession(t *testing.T) {
	s := NewStore(newFileStore(t))
	assert.False(t, s.UpdateIdentity(domain.Identity{Name: "x"}))
}

func TestSubscribe_OrderAndCancel(t *testing.T) {
	ctx := context.Background()
	s := NewStore(newFileStore(t))

	var order []string
	s.Subscribe(func(domain.Session) { order = append(order, "first") })
	cancel := s.Subscribe(func(domain.Session) { order = append(order, "second") })
	s.Subscribe(func(domain.Session) { order = append(order, "third") })

	require.NoError(t, s.Logout(ctx))
	assert.Equal(t, []string{"first", "second", "third"}, order)

	cancel()
	order = nil
	require.NoError(t, s.Logout(ctx))
	assert.Equal(t, []string{"first", "third"}, order)
}
