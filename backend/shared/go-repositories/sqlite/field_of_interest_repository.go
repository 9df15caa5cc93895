package sqlite

import (
	"context"
	"database/sql"
	"time"

	repositories "github.com/poofware/mono-repo/backend/shared/go-repositories"
	"github.com/poofware/mono-repo/backend/shared/go-models"
)

const (
	selectFieldOfInterest = `
        SELECT field_of_interest_id, created_at, created_by, updated_at, updated_by, row_version
        FROM fields_of_interest
    `
	existsFieldOfInterest = `SELECT EXISTS (SELECT 1 FROM fields_of_interest WHERE field_of_interest_id=?)`
)

type fieldOfInterestRepo struct {
	db *sql.DB
}

func NewFieldOfInterestRepository(db *sql.DB) repositories.FieldOfInterestRepository {
	return &fieldOfInterestRepo{db: db}
}

func (r *fieldOfInterestRepo) Create(ctx context.Context, f *models.FieldOfInterest) error {
	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
            INSERT INTO fields_of_interest (
                field_of_interest_id, created_at, created_by, updated_by, row_version
            ) VALUES (?,?,?,'',?)
        `, f.ID, f.CreatedAt.UTC(), f.CreatedBy, models.InitialRowVersion)
		if err != nil {
			return err
		}
		for _, d := range f.Descriptions {
			if d.Text == "" {
				continue
			}
			if err := upsertFieldOfInterestDescription(ctx, tx, f.ID, d.LanguageID, d.Text); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return mapSQLiteError(err)
	}
	f.SetRowVersion(models.InitialRowVersion)
	return nil
}

func (r *fieldOfInterestRepo) GetByID(ctx context.Context, id string) (*models.FieldOfInterest, error) {
	f, err := scanFieldOfInterest(r.db.QueryRowContext(ctx, selectFieldOfInterest+" WHERE field_of_interest_id=?", id))
	if err != nil || f == nil {
		return f, err
	}

	rows, err := r.db.QueryContext(ctx, `
        SELECT language_id, description
        FROM field_of_interest_descriptions
        WHERE field_of_interest_id=?
        ORDER BY language_id
    `, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var d models.Description
		if err := rows.Scan(&d.LanguageID, &d.Text); err != nil {
			return nil, err
		}
		f.Descriptions = append(f.Descriptions, d)
	}
	return f, rows.Err()
}

func (r *fieldOfInterestRepo) Exists(ctx context.Context, id string) (bool, error) {
	return queryExists(ctx, r.db, existsFieldOfInterest, id)
}

func (r *fieldOfInterestRepo) List(ctx context.Context) ([]*models.FieldOfInterest, error) {
	rows, err := r.db.QueryContext(ctx, selectFieldOfInterest+" ORDER BY field_of_interest_id")
	if err != nil {
		return nil, err
	}
	var out []*models.FieldOfInterest
	byID := map[string]*models.FieldOfInterest{}
	for rows.Next() {
		f, err := scanFieldOfInterest(rows)
		if err != nil {
			rows.Close()
			return nil, err
		}
		out = append(out, f)
		byID[f.ID] = f
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	descRows, err := r.db.QueryContext(ctx, `
        SELECT field_of_interest_id, language_id, description
        FROM field_of_interest_descriptions
        ORDER BY field_of_interest_id, language_id
    `)
	if err != nil {
		return nil, err
	}
	defer descRows.Close()
	for descRows.Next() {
		var id string
		var d models.Description
		if err := descRows.Scan(&id, &d.LanguageID, &d.Text); err != nil {
			return nil, err
		}
		if f, ok := byID[id]; ok {
			f.Descriptions = append(f.Descriptions, d)
		}
	}
	return out, descRows.Err()
}

func (r *fieldOfInterestRepo) CheckVersion(ctx context.Context, id string, expected int64) (*models.FieldOfInterest, error) {
	return repositories.CheckVersion(ctx, id, expected, r.GetByID)
}

func (r *fieldOfInterestRepo) UpdateIfVersion(
	ctx context.Context,
	c models.FieldOfInterestChange,
	expected int64,
) (int64, error) {
	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `
            UPDATE fields_of_interest SET
                updated_at=?, updated_by=?, row_version=row_version+1
            WHERE field_of_interest_id=? AND row_version=?
        `, c.UpdatedAt.UTC(), c.UpdatedBy, c.ID, expected)
		if err != nil {
			return err
		}
		if n, err := res.RowsAffected(); err != nil {
			return err
		} else if n == 0 {
			return resolveMiss(ctx, tx, c.ID)
		}

		if c.Description == "" {
			_, err = tx.ExecContext(ctx, `
                DELETE FROM field_of_interest_descriptions
                WHERE field_of_interest_id=? AND language_id=?
            `, c.ID, c.LanguageID)
			return err
		}
		return upsertFieldOfInterestDescription(ctx, tx, c.ID, c.LanguageID, c.Description)
	})
	if err != nil {
		return 0, err
	}
	return expected + 1, nil
}

func (r *fieldOfInterestRepo) DeleteIfVersion(ctx context.Context, id string, expected int64) error {
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx,
			`DELETE FROM field_of_interest_descriptions WHERE field_of_interest_id=?`, id,
		); err != nil {
			return err
		}
		res, err := tx.ExecContext(ctx,
			`DELETE FROM fields_of_interest WHERE field_of_interest_id=? AND row_version=?`,
			id, expected,
		)
		if err != nil {
			return err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if n == 0 {
			return resolveMiss(ctx, tx, id)
		}
		return nil
	})
}

func resolveMiss(ctx context.Context, tx *sql.Tx, id string) error {
	return repositories.ResolveVersionMiss(ctx, id, func(ctx context.Context, id string) (bool, error) {
		return queryExists(ctx, tx, existsFieldOfInterest, id)
	})
}

func upsertFieldOfInterestDescription(ctx context.Context, q queryer, id, lang, text string) error {
	_, err := q.ExecContext(ctx, `
        INSERT INTO field_of_interest_descriptions (field_of_interest_id, language_id, description)
        VALUES (?,?,?)
        ON CONFLICT (field_of_interest_id, language_id)
        DO UPDATE SET description = excluded.description
    `, id, lang, text)
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanFieldOfInterest(row rowScanner) (*models.FieldOfInterest, error) {
	var f models.FieldOfInterest
	var updatedAt sql.NullTime
	err := row.Scan(
		&f.ID,
		&f.CreatedAt,
		&f.CreatedBy,
		&updatedAt,
		&f.UpdatedBy,
		&f.RowVersion,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	f.CreatedAt = f.CreatedAt.In(time.UTC)
	if updatedAt.Valid {
		t := updatedAt.Time.In(time.UTC)
		f.UpdatedAt = &t
	}
	return &f, nil
}
