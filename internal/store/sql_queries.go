package store

import (
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/MKhiriev/go-pass-vault/migrations"
	"github.com/MKhiriev/go-pass-vault/models"
)

var (
	userColumns = []string{
		"id",
		"username",
		"email",
		"password_hash",
		"created_at",
		"updated_at",
	}

	vaultColumns = []string{
		"id",
		"user_id",
		"site_name",
		"site_url",
		"username",
		"encrypted_password",
		"encryption_iv",
		"notes",
		"created_at",
		"updated_at",
	}
)

// queryBuilder renders every statement with the placeholder format of one
// dialect: $n for PostgreSQL, ? for SQLite.
type queryBuilder struct {
	sb sq.StatementBuilderType

	// lockRows enables SELECT ... FOR UPDATE, which SQLite does not parse.
	lockRows bool
}

func newQueryBuilder(dialect string) queryBuilder {
	if dialect == migrations.DialectPostgres {
		return queryBuilder{
			sb:       sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
			lockRows: true,
		}
	}
	return queryBuilder{sb: sq.StatementBuilder.PlaceholderFormat(sq.Question)}
}

func (q queryBuilder) insertUser(user models.User) (string, []any, error) {
	return q.sb.
		Insert(user.TableName()).
		Columns(userColumns...).
		Values(user.UserID, user.Username, user.Email, user.PasswordHash, user.CreatedAt, user.UpdatedAt).
		ToSql()
}

func (q queryBuilder) selectUserBy(column string, value any) (string, []any, error) {
	return q.sb.
		Select(userColumns...).
		From(models.User{}.TableName()).
		Where(sq.Eq{column: value}).
		ToSql()
}

func (q queryBuilder) insertEntry(entry models.VaultEntry) (string, []any, error) {
	return q.sb.
		Insert(entry.TableName()).
		Columns(vaultColumns...).
		Values(
			entry.ID,
			entry.UserID,
			entry.SiteName,
			entry.SiteURL,
			entry.Username,
			entry.EncryptedPassword,
			entry.EncryptionIV,
			entry.Notes,
			entry.CreatedAt,
			entry.UpdatedAt,
		).
		ToSql()
}

// selectEntry addresses one entry by id AND owner in a single predicate.
// Ids are bound as strings in predicates: uuid.UUID is a byte array, which
// sq.Eq would expand into an IN list.
func (q queryBuilder) selectEntry(id, owner uuid.UUID, forUpdate bool) (string, []any, error) {
	builder := q.sb.
		Select(vaultColumns...).
		From(models.VaultEntry{}.TableName()).
		Where(sq.Eq{"id": id.String(), "user_id": owner.String()})

	if forUpdate && q.lockRows {
		builder = builder.Suffix("FOR UPDATE")
	}

	return builder.ToSql()
}

func (q queryBuilder) selectEntriesByOwner(owner uuid.UUID) (string, []any, error) {
	return q.sb.
		Select(vaultColumns...).
		From(models.VaultEntry{}.TableName()).
		Where(sq.Eq{"user_id": owner.String()}).
		OrderBy("created_at ASC", "id ASC").
		ToSql()
}

// updateEntry sets only the columns present in changes.
func (q queryBuilder) updateEntry(id, owner uuid.UUID, changes map[string]any) (string, []any, error) {
	return q.sb.
		Update(models.VaultEntry{}.TableName()).
		SetMap(changes).
		Where(sq.Eq{"id": id.String(), "user_id": owner.String()}).
		Suffix("RETURNING " + strings.Join(vaultColumns, ", ")).
		ToSql()
}

func (q queryBuilder) deleteEntry(id, owner uuid.UUID) (string, []any, error) {
	return q.sb.
		Delete(models.VaultEntry{}.TableName()).
		Where(sq.Eq{"id": id.String(), "user_id": owner.String()}).
		ToSql()
}

// changedColumns diffs two versions of an entry and returns the columns to
// write. updated_at is always included.
func changedColumns(before, after models.VaultEntry) map[string]any {
	changes := map[string]any{"updated_at": after.UpdatedAt}

	if before.SiteName != after.SiteName {
		changes["site_name"] = after.SiteName
	}
	if !equalOptional(before.SiteURL, after.SiteURL) {
		changes["site_url"] = after.SiteURL
	}
	if before.Username != after.Username {
		changes["username"] = after.Username
	}
	if !equalOptional(before.Notes, after.Notes) {
		changes["notes"] = after.Notes
	}
	if before.EncryptedPassword != after.EncryptedPassword || before.EncryptionIV != after.EncryptionIV {
		changes["encrypted_password"] = after.EncryptedPassword
		changes["encryption_iv"] = after.EncryptionIV
	}

	return changes
}

func equalOptional(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
