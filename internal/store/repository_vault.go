package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/MKhiriev/go-pass-vault/internal/logger"
	"github.com/MKhiriev/go-pass-vault/models"
	"github.com/google/uuid"
)

// vaultRepository is the SQL implementation of [VaultRepository] over the
// "vault_entries" table. Single-entry statements always filter by id AND
// user_id so foreign entries are never read or written.
type vaultRepository struct {
	*DB
	logger *logger.Logger
}

// NewVaultRepository constructs a [VaultRepository] backed by db.
func NewVaultRepository(db *DB, logger *logger.Logger) VaultRepository {
	logger.Debug().Msg("creating vault repository")
	return &vaultRepository{
		DB:     db,
		logger: logger,
	}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(row rowScanner) (models.VaultEntry, error) {
	var entry models.VaultEntry
	err := row.Scan(
		&entry.ID,
		&entry.UserID,
		&entry.SiteName,
		&entry.SiteURL,
		&entry.Username,
		&entry.EncryptedPassword,
		&entry.EncryptionIV,
		&entry.Notes,
		&entry.CreatedAt,
		&entry.UpdatedAt,
	)
	return entry, err
}

// Insert stores entry as given. ID, owner and timestamps are assigned by
// the caller.
func (v *vaultRepository) Insert(ctx context.Context, entry models.VaultEntry) (models.VaultEntry, error) {
	log := logger.FromContext(ctx)

	query, args, err := v.queries.insertEntry(entry)
	if err != nil {
		log.Err(err).Str("func", "*vaultRepository.Insert").Msg("failed to build query")
		return models.VaultEntry{}, wrap(ErrBuildingSQLQuery, err)
	}

	if _, err = v.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).
			Str("func", "*vaultRepository.Insert").
			Str("entry_id", entry.ID.String()).
			Msg("failed to insert vault entry")
		return models.VaultEntry{}, v.wrapError(ErrExecutingStatement, err)
	}

	return entry, nil
}

// GetByIDAndOwner returns [ErrEntryNotFound] both when id does not exist
// and when it belongs to another owner.
func (v *vaultRepository) GetByIDAndOwner(ctx context.Context, id, owner uuid.UUID) (models.VaultEntry, error) {
	log := logger.FromContext(ctx)

	query, args, err := v.queries.selectEntry(id, owner, false)
	if err != nil {
		log.Err(err).Str("func", "*vaultRepository.GetByIDAndOwner").Msg("failed to build query")
		return models.VaultEntry{}, wrap(ErrBuildingSQLQuery, err)
	}

	entry, err := scanEntry(v.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return models.VaultEntry{}, ErrEntryNotFound
	}
	if err != nil {
		log.Err(err).
			Str("func", "*vaultRepository.GetByIDAndOwner").
			Str("entry_id", id.String()).
			Msg("failed to scan vault entry")
		return models.VaultEntry{}, v.wrapError(ErrScanningRow, err)
	}

	return entry, nil
}

// ListByOwner returns every entry of owner, oldest first.
func (v *vaultRepository) ListByOwner(ctx context.Context, owner uuid.UUID) ([]models.VaultEntry, error) {
	log := logger.FromContext(ctx)

	query, args, err := v.queries.selectEntriesByOwner(owner)
	if err != nil {
		log.Err(err).Str("func", "*vaultRepository.ListByOwner").Msg("failed to build query")
		return nil, wrap(ErrBuildingSQLQuery, err)
	}

	rows, err := v.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "*vaultRepository.ListByOwner").
			Str("user_id", owner.String()).
			Msg("failed to execute query for listing vault entries")
		return nil, v.wrapError(ErrExecutingQuery, err)
	}
	defer rows.Close()

	entries := make([]models.VaultEntry, 0, 16)
	for rows.Next() {
		entry, scanErr := scanEntry(rows)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", "*vaultRepository.ListByOwner").
				Int("row", len(entries)).
				Msg("failed to scan vault entry row")
			return nil, v.wrapError(ErrScanningRows, scanErr)
		}
		entries = append(entries, entry)
	}

	if err = rows.Err(); err != nil {
		log.Err(err).Str("func", "*vaultRepository.ListByOwner").Msg("error iterating over vault entry rows")
		return nil, v.wrapError(ErrScanningRows, err)
	}

	return entries, nil
}

// Update runs SELECT ... FOR UPDATE, mutate, UPDATE ... RETURNING and COMMIT
// in one transaction. Only the columns mutate changed are written.
func (v *vaultRepository) Update(ctx context.Context, id, owner uuid.UUID, mutate func(*models.VaultEntry) error) (models.VaultEntry, error) {
	log := logger.FromContext(ctx)

	tx, err := v.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Str("func", "*vaultRepository.Update").Msg("failed to begin transaction")
		return models.VaultEntry{}, v.wrapError(ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	query, args, err := v.queries.selectEntry(id, owner, true)
	if err != nil {
		log.Err(err).Str("func", "*vaultRepository.Update").Msg("failed to build select query")
		return models.VaultEntry{}, wrap(ErrBuildingSQLQuery, err)
	}

	current, err := scanEntry(tx.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return models.VaultEntry{}, ErrEntryNotFound
	}
	if err != nil {
		log.Err(err).
			Str("func", "*vaultRepository.Update").
			Str("entry_id", id.String()).
			Msg("failed to lock vault entry")
		return models.VaultEntry{}, v.wrapError(ErrScanningRow, err)
	}

	updated := current
	if err = mutate(&updated); err != nil {
		return models.VaultEntry{}, err
	}

	// identity columns are not writable
	updated.ID = current.ID
	updated.UserID = current.UserID
	updated.CreatedAt = current.CreatedAt

	query, args, err = v.queries.updateEntry(id, owner, changedColumns(current, updated))
	if err != nil {
		log.Err(err).Str("func", "*vaultRepository.Update").Msg("failed to build update query")
		return models.VaultEntry{}, wrap(ErrBuildingSQLQuery, err)
	}

	stored, err := scanEntry(tx.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return models.VaultEntry{}, ErrEntryNotFound
	}
	if err != nil {
		log.Err(err).
			Str("func", "*vaultRepository.Update").
			Str("entry_id", id.String()).
			Msg("failed to update vault entry")
		return models.VaultEntry{}, v.wrapError(ErrExecutingStatement, err)
	}

	if err = tx.Commit(); err != nil {
		log.Err(err).Str("func", "*vaultRepository.Update").Msg("failed to commit transaction")
		return models.VaultEntry{}, v.wrapError(ErrCommitingTransaction, err)
	}

	return stored, nil
}

// Delete removes the entry. Zero affected rows yields [ErrEntryNotFound].
func (v *vaultRepository) Delete(ctx context.Context, id, owner uuid.UUID) error {
	log := logger.FromContext(ctx)

	query, args, err := v.queries.deleteEntry(id, owner)
	if err != nil {
		log.Err(err).Str("func", "*vaultRepository.Delete").Msg("failed to build query")
		return wrap(ErrBuildingSQLQuery, err)
	}

	result, err := v.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "*vaultRepository.Delete").
			Str("entry_id", id.String()).
			Msg("failed to delete vault entry")
		return v.wrapError(ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return v.wrapError(ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrEntryNotFound
	}

	return nil
}
