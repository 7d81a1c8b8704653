package filestore

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bissquit/hotel-desk/internal/domain"
	"github.com/bissquit/hotel-desk/internal/identity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepository(t *testing.T) (*Repository, string) {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "data")
	return NewRepository(Config{
		Dir:          dir,
		AdminFile:    "admins.txt",
		StaffFile:    "staff.txt",
		CustomerFile: "users.txt",
	}), dir
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(b)
}

func TestLoad_MissingFileIsEmpty(t *testing.T) {
	repo, _ := newTestRepository(t)

	snapshot, err := repo.Load(context.Background(), domain.RoleStaff)

	require.NoError(t, err)
	assert.Equal(t, 0, snapshot.Len())
}

func TestAppend_CreatesDirectoryAndWritesLines(t *testing.T) {
	repo, dir := newTestRepository(t)
	ctx := context.Background()

	require.NoError(t, repo.Append(ctx, domain.Account{Username: "alice", Password: "pw1", Role: domain.RoleStaff, Position: domain.PositionChef}))
	require.NoError(t, repo.Append(ctx, domain.Account{Username: "bob", Password: "pw2", Role: domain.RoleStaff, Position: domain.PositionWaiter}))
	require.NoError(t, repo.Append(ctx, domain.Account{Username: "carol", Password: "pw3", Role: domain.RoleCustomer}))

	assert.Equal(t, "alice,pw1,chef\nbob,pw2,waiter\n", readFile(t, filepath.Join(dir, "staff.txt")))
	assert.Equal(t, "carol,pw3\n", readFile(t, filepath.Join(dir, "users.txt")))

	snapshot, err := repo.Load(ctx, domain.RoleStaff)
	require.NoError(t, err)
	alice, ok := snapshot.Get("alice")
	require.True(t, ok)
	assert.Equal(t, domain.PositionChef, alice.Position)
}

func TestLoad_LenientParse(t *testing.T) {
	repo, dir := newTestRepository(t)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	content := "admin,admin123\n\nbroken\nroot,toor\nadmin,changed\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "admins.txt"), []byte(content), 0o644))

	snapshot, err := repo.Load(context.Background(), domain.RoleAdmin)

	require.NoError(t, err)
	assert.Equal(t, 2, snapshot.Len())
	assert.Len(t, snapshot.Report.Skipped, 1)
	admin, _ := snapshot.Get("admin")
	assert.Equal(t, "changed", admin.Password)
}

func TestLoad_LongLineDoesNotBreakStore(t *testing.T) {
	repo, dir := newTestRepository(t)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	content := "carol,pw\nmallory," + strings.Repeat("x", 70000) + "\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "users.txt"), []byte(content), 0o644))
	ctx := context.Background()

	snapshot, err := repo.Load(ctx, domain.RoleCustomer)
	require.NoError(t, err)
	carol, ok := snapshot.Get("carol")
	require.True(t, ok)
	assert.Equal(t, "pw", carol.Password)

	require.NoError(t, repo.Append(ctx, domain.Account{Username: "dave", Password: "pw4", Role: domain.RoleCustomer}))
	snapshot, err = repo.Load(ctx, domain.RoleCustomer)
	require.NoError(t, err)
	assert.Equal(t, 3, snapshot.Len())
}

func TestRewrite_KeepsUnknownPositionLines(t *testing.T) {
	repo, dir := newTestRepository(t)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	path := filepath.Join(dir, "staff.txt")
	require.NoError(t, os.WriteFile(path, []byte("alice,pw1,chef\nbob,pw2,Chef\n"), 0o644))
	ctx := context.Background()

	snapshot, err := repo.Load(ctx, domain.RoleStaff)
	require.NoError(t, err)
	assert.Len(t, snapshot.Report.Warnings, 1)
	require.NoError(t, repo.Rewrite(ctx, domain.RoleStaff, snapshot))

	assert.Equal(t, "alice,pw1,chef\nbob,pw2,Chef\n", readFile(t, path))
}

func TestRewrite_ReplacesContentsInOrder(t *testing.T) {
	repo, dir := newTestRepository(t)
	ctx := context.Background()
	for _, name := range []string{"a", "b", "c"} {
		require.NoError(t, repo.Append(ctx, domain.Account{Username: name, Password: "p", Role: domain.RoleCustomer}))
	}

	snapshot, err := repo.Load(ctx, domain.RoleCustomer)
	require.NoError(t, err)
	snapshot.Delete("b")
	require.NoError(t, repo.Rewrite(ctx, domain.RoleCustomer, snapshot))

	assert.Equal(t, "a,p\nc,p\n", readFile(t, filepath.Join(dir, "users.txt")))
}

func TestRewrite_RejectsForeignRole(t *testing.T) {
	repo, dir := newTestRepository(t)
	ctx := context.Background()
	require.NoError(t, repo.Append(ctx, domain.Account{Username: "keep", Password: "p", Role: domain.RoleCustomer}))

	snapshot := identity.NewSnapshot(domain.RoleCustomer)
	snapshot.Put(domain.Account{Username: "x", Password: "p", Role: domain.RoleAdmin})

	err := repo.Rewrite(ctx, domain.RoleCustomer, snapshot)

	assert.Error(t, err)
	assert.Equal(t, "keep,p\n", readFile(t, filepath.Join(dir, "users.txt")), "store must not be truncated")
}

func TestExists(t *testing.T) {
	repo, _ := newTestRepository(t)
	ctx := context.Background()

	exists, err := repo.Exists(ctx, domain.RoleAdmin)
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, repo.Append(ctx, domain.Account{Username: "admin", Password: "admin123", Role: domain.RoleAdmin}))

	exists, err = repo.Exists(ctx, domain.RoleAdmin)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestStorageErrors(t *testing.T) {
	// A regular file where the data directory should be.
	base := t.TempDir()
	blocker := filepath.Join(base, "data")
	require.NoError(t, os.WriteFile(blocker, []byte("not a dir"), 0o644))

	repo := NewRepository(Config{Dir: blocker, AdminFile: "a", StaffFile: "s", CustomerFile: "u"})
	ctx := context.Background()

	err := repo.Append(ctx, domain.Account{Username: "u", Password: "p", Role: domain.RoleCustomer})
	assert.ErrorIs(t, err, identity.ErrStorage)

	var storageErr *identity.StorageError
	require.True(t, errors.As(err, &storageErr))
	assert.Equal(t, "append", storageErr.Op)
	assert.Equal(t, domain.RoleCustomer, storageErr.Role)

	err = repo.Rewrite(ctx, domain.RoleCustomer, identity.NewSnapshot(domain.RoleCustomer))
	assert.ErrorIs(t, err, identity.ErrStorage)

	_, err = repo.Load(ctx, domain.RoleCustomer)
	assert.ErrorIs(t, err, identity.ErrStorage)
}

func TestCancelledContext(t *testing.T) {
	repo, _ := newTestRepository(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := repo.Load(ctx, domain.RoleAdmin)
	assert.ErrorIs(t, err, context.Canceled)

	err = repo.Append(ctx, domain.Account{Username: "u", Password: "p", Role: domain.RoleCustomer})
	assert.ErrorIs(t, err, context.Canceled)
}
