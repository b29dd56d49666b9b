package sqlite

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/uptrack/uptrack/internal/tracker/domain"
	"github.com/uptrack/uptrack/internal/tracker/store"
)

type usersRepo struct {
	q querier
}

const userColumns = `id, name, email, password_hash, role, status, upload_count, last_login_at, joined_at, updated_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanUser(row scanner) (domain.User, error) {
	var (
		u         domain.User
		role      string
		status    string
		lastLogin sql.NullTime
	)
	err := row.Scan(
		&u.ID, &u.Name, &u.Email, &u.PasswordHash,
		&role, &status, &u.UploadCount,
		&lastLogin, &u.JoinedAt, &u.UpdatedAt,
	)
	if err != nil {
		return domain.User{}, err
	}
	u.Role = domain.Role(role)
	u.Status = domain.Status(status)
	u.LastLoginAt = mapNullTimePtr(lastLogin)
	return u, nil
}

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) error {
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO users (`+userColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		u.ID, u.Name, u.Email, u.PasswordHash,
		string(u.Role), string(u.Status), u.UploadCount,
		mapOptionalTime(u.LastLoginAt), u.JoinedAt, u.UpdatedAt,
	)
	return mapConstraint(err)
}

func (r *usersRepo) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	row := r.q.QueryRowContext(ctx, `
		SELECT `+userColumns+` FROM users WHERE id = ?`, id)
	u, err := scanUser(row)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	return u, nil
}

func (r *usersRepo) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	row := r.q.QueryRowContext(ctx, `
		SELECT `+userColumns+` FROM users WHERE email = ?`, email)
	u, err := scanUser(row)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	return u, nil
}

func (r *usersRepo) ListUsers(ctx context.Context) ([]domain.User, error) {
	rows, err := r.q.QueryContext(ctx, `
		SELECT `+userColumns+` FROM users ORDER BY joined_at, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *usersRepo) UpdateUser(ctx context.Context, id string, patch store.UserPatch) error {
	sets := []string{"updated_at = ?"}
	args := []any{time.Now().UTC()}

	if patch.Name != nil {
		sets = append(sets, "name = ?")
		args = append(args, *patch.Name)
	}
	if patch.Role != nil {
		sets = append(sets, "role = ?")
		args = append(args, string(*patch.Role))
	}
	if patch.Status != nil {
		sets = append(sets, "status = ?")
		args = append(args, string(*patch.Status))
	}
	args = append(args, id)

	res, err := r.q.ExecContext(ctx,
		`UPDATE users SET `+strings.Join(sets, ", ")+` WHERE id = ?`, args...)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *usersRepo) UpdateLastLogin(ctx context.Context, id string, at time.Time) error {
	res, err := r.q.ExecContext(ctx, `
		UPDATE users SET last_login_at = ?, updated_at = ? WHERE id = ?`,
		at, time.Now().UTC(), id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *usersRepo) AdjustUploadCount(ctx context.Context, id string, delta int64) (bool, error) {
	now := time.Now().UTC()

	res, err := r.q.ExecContext(ctx, `
		UPDATE users SET upload_count = upload_count + ?, updated_at = ? WHERE id = ?`,
		delta, now, id)
	if err != nil {
		// The CHECK (upload_count >= 0) constraint rejects underflows, which
		// is how we detect a counter that has drifted from the records. Clamp
		// to zero rather than leave it wrong.
		if strings.Contains(err.Error(), "CHECK constraint failed") {
			res, err = r.q.ExecContext(ctx, `
				UPDATE users SET upload_count = 0, updated_at = ? WHERE id = ?`,
				now, id)
			if err != nil {
				return false, err
			}
			return true, requireRow(res)
		}
		return false, err
	}
	return false, requireRow(res)
}

func (r *usersRepo) DeleteUser(ctx context.Context, id string) error {
	res, err := r.q.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *usersRepo) CountUsersByStatus(ctx context.Context) (map[domain.Status]int64, error) {
	rows, err := r.q.QueryContext(ctx, `
		SELECT status, COUNT(*) FROM users GROUP BY status`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[domain.Status]int64)
	for rows.Next() {
		var (
			status string
			count  int64
		)
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		counts[domain.Status(status)] = count
	}
	return counts, rows.Err()
}

// requireRow maps a zero-row write to ErrNotFound.
func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}
