package saved

import (
	"context"
	stderrors "errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcbanners/banners/pkg/backend"
	"github.com/mcbanners/banners/pkg/errors"
)

func TestNewMnemonic(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		code, err := NewMnemonic()
		require.NoError(t, err)
		assert.Len(t, code, MnemonicLength)
		for _, r := range code {
			assert.True(t, strings.ContainsRune(MnemonicAlphabet, r), "unexpected rune %q", r)
		}
		seen[code] = true
	}
	assert.Greater(t, len(seen), 95)
}

func TestSaveAndLookup(t *testing.T) {
	ctx := context.Background()
	svc := NewService(NewMemoryStore())
	svc.now = func() time.Time { return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC) }

	settings := map[string]string{backend.KeyAuthorID: "42", "background": "ocean"}
	b, err := svc.Save(ctx, backend.SpigotAuthor, "user-1", settings)
	require.NoError(t, err)

	_, err = uuid.Parse(b.ID)
	assert.NoError(t, err, "id should be a uuid")
	assert.Equal(t, backend.SpigotAuthor, b.Type)
	assert.Equal(t, "user-1", b.Owner)

	settings["background"] = "mutated"

	got, err := svc.Lookup(ctx, b.Mnemonic)
	require.NoError(t, err)
	assert.Equal(t, "ocean", got.Settings["background"])
	assert.Equal(t, "42", got.Settings[backend.KeyAuthorID])
	assert.True(t, got.CreatedAt.Equal(svc.now()))
}

func TestLookupMissing(t *testing.T) {
	svc := NewService(NewMemoryStore())
	_, err := svc.Lookup(context.Background(), "nope")
	assert.Equal(t, errors.ErrCodeNotFound, errors.GetCode(err))
	assert.True(t, stderrors.Is(err, ErrNotFound))
}

func TestSaveRetriesOnCollision(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	svc := NewService(store)

	codes := []string{"taken", "taken", "fresh"}
	svc.mnemonic = func() (string, error) {
		c := codes[0]
		codes = codes[1:]
		return c, nil
	}

	first, err := svc.Save(ctx, backend.OreAuthor, "", nil)
	require.NoError(t, err)
	assert.Equal(t, "taken", first.Mnemonic)

	second, err := svc.Save(ctx, backend.OreAuthor, "", nil)
	require.NoError(t, err)
	assert.Equal(t, "fresh", second.Mnemonic)
	assert.Len(t, store.List(), 2)
}

func TestSaveGivesUp(t *testing.T) {
	ctx := context.Background()
	svc := NewService(NewMemoryStore())
	svc.mnemonic = func() (string, error) { return "same", nil }

	_, err := svc.Save(ctx, backend.OreAuthor, "", nil)
	require.NoError(t, err)
	_, err = svc.Save(ctx, backend.OreAuthor, "", nil)
	assert.Error(t, err)
}

func TestSaveRejectsUnknownType(t *testing.T) {
	svc := NewService(NewMemoryStore())
	_, err := svc.Save(context.Background(), backend.BannerType("BOGUS"), "", nil)
	assert.Equal(t, errors.ErrCodeInvalidType, errors.GetCode(err))
}
