// Package filestore provides the flat-file implementation of identity.Repository.
package filestore

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/bissquit/hotel-desk/internal/domain"
	"github.com/bissquit/hotel-desk/internal/identity"
	"github.com/bissquit/hotel-desk/internal/pkg/ctxlog"
	"github.com/bissquit/hotel-desk/internal/pkg/metrics"
)

// Config contains store file locations. File names are relative to Dir.
type Config struct {
	Dir          string
	AdminFile    string
	StaffFile    string
	CustomerFile string
}

// Repository implements identity.Repository with one text file per role.
// It holds no state between calls: every Load re-reads the file.
type Repository struct {
	config Config
}

// NewRepository creates a new file-backed repository.
func NewRepository(config Config) *Repository {
	return &Repository{config: config}
}

// Path returns the backing file for role.
func (r *Repository) Path(role domain.Role) string {
	var name string
	switch role {
	case domain.RoleAdmin:
		name = r.config.AdminFile
	case domain.RoleStaff:
		name = r.config.StaffFile
	case domain.RoleCustomer:
		name = r.config.CustomerFile
	}
	return filepath.Join(r.config.Dir, name)
}

// Load reads and decodes the store for role.
func (r *Repository) Load(ctx context.Context, role domain.Role) (snapshot *identity.Snapshot, err error) {
	start := time.Now()
	defer func() { metrics.RecordStoreOperation(string(role), "load", err, time.Since(start)) }()

	if err := r.checkRole(ctx, role); err != nil {
		return nil, err
	}

	path := r.Path(role)
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return identity.NewSnapshot(role), nil
	}
	if err != nil {
		return nil, r.storageError("load", role, err)
	}
	defer f.Close()

	snapshot, err = identity.DecodeStore(role, f)
	if err != nil {
		return nil, r.storageError("load", role, err)
	}

	logger := ctxlog.FromContext(ctx)
	for _, skipped := range snapshot.Report.Skipped {
		logger.Warn("skipped malformed store line",
			"role", role,
			"path", path,
			"line", skipped.Line,
			"reason", skipped.Reason,
		)
	}
	for _, warning := range snapshot.Report.Warnings {
		logger.Warn("kept store line with unexpected value",
			"role", role,
			"path", path,
			"line", warning.Line,
			"reason", warning.Reason,
		)
	}
	metrics.RecordStoreLoad(string(role), snapshot.Len(), len(snapshot.Report.Skipped))

	return snapshot, nil
}

// Append writes one encoded account to the end of its role's file,
// creating the data directory first.
func (r *Repository) Append(ctx context.Context, account domain.Account) (err error) {
	start := time.Now()
	defer func() { metrics.RecordStoreOperation(string(account.Role), "append", err, time.Since(start)) }()

	if err := r.checkRole(ctx, account.Role); err != nil {
		return err
	}

	if err := os.MkdirAll(r.config.Dir, 0o755); err != nil {
		return r.storageError("append", account.Role, err)
	}

	f, err := os.OpenFile(r.Path(account.Role), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return r.storageError("append", account.Role, err)
	}

	// Single write call per record.
	_, writeErr := f.WriteString(identity.EncodeLine(account) + "\n")
	closeErr := f.Close()
	if err := errors.Join(writeErr, closeErr); err != nil {
		return r.storageError("append", account.Role, err)
	}

	return nil
}

// Rewrite truncates the role's file and writes every account of snapshot.
// A failure midway leaves the file truncated or partially written.
func (r *Repository) Rewrite(ctx context.Context, role domain.Role, snapshot *identity.Snapshot) (err error) {
	start := time.Now()
	defer func() { metrics.RecordStoreOperation(string(role), "rewrite", err, time.Since(start)) }()

	if err := r.checkRole(ctx, role); err != nil {
		return err
	}

	accounts := snapshot.Accounts()
	for _, account := range accounts {
		if account.Role != role {
			return fmt.Errorf("rewrite %s store: account %q has role %s", role, account.Username, account.Role)
		}
	}

	if err := os.MkdirAll(r.config.Dir, 0o755); err != nil {
		return r.storageError("rewrite", role, err)
	}

	f, err := os.OpenFile(r.Path(role), os.O_TRUNC|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return r.storageError("rewrite", role, err)
	}

	w := bufio.NewWriter(f)
	var writeErr error
	for _, line := range snapshot.Lines() {
		if _, writeErr = w.WriteString(line + "\n"); writeErr != nil {
			break
		}
	}
	if writeErr == nil {
		writeErr = w.Flush()
	}
	closeErr := f.Close()
	if err := errors.Join(writeErr, closeErr); err != nil {
		return r.storageError("rewrite", role, err)
	}

	ctxlog.FromContext(ctx).Debug("store rewritten", "role", role, "accounts", len(accounts))

	return nil
}

// Exists reports whether the role's file is present.
func (r *Repository) Exists(ctx context.Context, role domain.Role) (bool, error) {
	if err := r.checkRole(ctx, role); err != nil {
		return false, err
	}

	_, err := os.Stat(r.Path(role))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, r.storageError("stat", role, err)
}

func (r *Repository) checkRole(ctx context.Context, role domain.Role) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !role.IsValid() {
		return fmt.Errorf("unknown role %q", role)
	}
	return nil
}

func (r *Repository) storageError(op string, role domain.Role, err error) error {
	return &identity.StorageError{
		Op:   op,
		Role: role,
		Path: r.Path(role),
		Err:  err,
	}
}
