package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgtype"
	"github.com/jackc/pgx/v4"

	"github.com/poofware/mono-repo/backend/shared/go-models"
)

/* ------------------------------------------------------------------
   Public interface
------------------------------------------------------------------ */

type FieldOfInterestRepository interface {
	// Create inserts the row with row_version 1 together with its non-empty
	// descriptions. A duplicate id yields utils.ErrRecordExists.
	Create(ctx context.Context, f *models.FieldOfInterest) error

	// GetByID returns (nil, nil) when the id is unknown.
	GetByID(ctx context.Context, id string) (*models.FieldOfInterest, error)
	Exists(ctx context.Context, id string) (bool, error)
	List(ctx context.Context) ([]*models.FieldOfInterest, error)

	CheckVersion(ctx context.Context, id string, expected int64) (*models.FieldOfInterest, error)

	// UpdateIfVersion applies the change only when the stored row_version
	// equals expected and returns the new row_version. A stale version gives
	// utils.ErrRowVersionConflict, a missing row utils.ErrRecordNotFound.
	UpdateIfVersion(ctx context.Context, c models.FieldOfInterestChange, expected int64) (int64, error)

	// DeleteIfVersion removes the row and all its descriptions under the
	// same version contract as UpdateIfVersion.
	DeleteIfVersion(ctx context.Context, id string, expected int64) error
}

/* ------------------------------------------------------------------
   Implementation
------------------------------------------------------------------ */

type fieldOfInterestRepo struct {
	*BaseVersionedRepo[*models.FieldOfInterest]
	db DB
}

func NewFieldOfInterestRepository(db DB) FieldOfInterestRepository {
	r := &fieldOfInterestRepo{db: db}
	r.BaseVersionedRepo = NewBaseRepo(
		db,
		baseSelectFieldOfInterest()+" WHERE field_of_interest_id=$1",
		`SELECT EXISTS (SELECT 1 FROM fields_of_interest WHERE field_of_interest_id=$1)`,
		scanFieldOfInterest,
	)
	return r
}

func (r *fieldOfInterestRepo) GetByID(ctx context.Context, id string) (*models.FieldOfInterest, error) {
	f, err := r.BaseVersionedRepo.GetByID(ctx, id)
	if err != nil || f == nil {
		return f, err
	}
	if f.Descriptions, err = r.descriptions(ctx, id); err != nil {
		return nil, err
	}
	return f, nil
}

func (r *fieldOfInterestRepo) CheckVersion(ctx context.Context, id string, expected int64) (*models.FieldOfInterest, error) {
	return CheckVersion(ctx, id, expected, r.GetByID)
}

func (r *fieldOfInterestRepo) Create(ctx context.Context, f *models.FieldOfInterest) error {
	err := withTx(ctx, r.db, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `
            INSERT INTO fields_of_interest (
                field_of_interest_id, created_at, created_by, updated_by, row_version
            ) VALUES ($1,$2,$3,'',$4)
        `,
			f.ID,
			f.CreatedAt,
			f.CreatedBy,
			models.InitialRowVersion,
		)
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
		return mapPgError(err)
	}
	f.SetRowVersion(models.InitialRowVersion)
	return nil
}

func (r *fieldOfInterestRepo) List(ctx context.Context) ([]*models.FieldOfInterest, error) {
	rows, err := r.db.Query(ctx, baseSelectFieldOfInterest()+" ORDER BY field_of_interest_id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.FieldOfInterest
	byID := map[string]*models.FieldOfInterest{}
	for rows.Next() {
		f, err := scanFieldOfInterest(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, f)
		byID[f.ID] = f
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	rows.Close()

	descRows, err := r.db.Query(ctx, `
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

func (r *fieldOfInterestRepo) UpdateIfVersion(
	ctx context.Context,
	c models.FieldOfInterestChange,
	expected int64,
) (int64, error) {
	var newVersion int64
	err := withTx(ctx, r.db, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx, `
            UPDATE fields_of_interest SET
                updated_at=$1, updated_by=$2, row_version=row_version+1
            WHERE field_of_interest_id=$3 AND row_version=$4
            RETURNING row_version
        `, c.UpdatedAt, c.UpdatedBy, c.ID, expected).Scan(&newVersion)
		if err == pgx.ErrNoRows {
			return r.resolveMiss(ctx, tx, c.ID)
		}
		if err != nil {
			return err
		}

		if c.Description == "" {
			_, err = tx.Exec(ctx, `
                DELETE FROM field_of_interest_descriptions
                WHERE field_of_interest_id=$1 AND language_id=$2
            `, c.ID, c.LanguageID)
			return err
		}
		return upsertFieldOfInterestDescription(ctx, tx, c.ID, c.LanguageID, c.Description)
	})
	if err != nil {
		return 0, err
	}
	return newVersion, nil
}

func (r *fieldOfInterestRepo) DeleteIfVersion(ctx context.Context, id string, expected int64) error {
	return withTx(ctx, r.db, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx,
			`DELETE FROM field_of_interest_descriptions WHERE field_of_interest_id=$1`, id,
		); err != nil {
			return err
		}
		tag, err := tx.Exec(ctx,
			`DELETE FROM fields_of_interest WHERE field_of_interest_id=$1 AND row_version=$2`,
			id, expected,
		)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			// rolls back the description delete as well
			return r.resolveMiss(ctx, tx, id)
		}
		return nil
	})
}

func upsertFieldOfInterestDescription(ctx context.Context, q DB, id, lang, text string) error {
	_, err := q.Exec(ctx, `
        INSERT INTO field_of_interest_descriptions (field_of_interest_id, language_id, description)
        VALUES ($1,$2,$3)
        ON CONFLICT (field_of_interest_id, language_id)
        DO UPDATE SET description = EXCLUDED.description
    `, id, lang, text)
	return err
}

func (r *fieldOfInterestRepo) descriptions(ctx context.Context, id string) ([]models.Description, error) {
	rows, err := r.db.Query(ctx, `
        SELECT language_id, description
        FROM field_of_interest_descriptions
        WHERE field_of_interest_id=$1
        ORDER BY language_id
    `, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Description
	for rows.Next() {
		var d models.Description
		if err := rows.Scan(&d.LanguageID, &d.Text); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func baseSelectFieldOfInterest() string {
	return `
        SELECT
            field_of_interest_id, created_at, created_by,
            updated_at, updated_by, row_version
        FROM fields_of_interest
    `
}

func scanFieldOfInterest(row pgx.Row) (*models.FieldOfInterest, error) {
	var f models.FieldOfInterest
	var updatedAt pgtype.Timestamptz
	err := row.Scan(
		&f.ID,
		&f.CreatedAt,
		&f.CreatedBy,
		&updatedAt,
		&f.UpdatedBy,
		&f.RowVersion,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	if updatedAt.Status == pgtype.Present {
		t := updatedAt.Time.In(time.UTC)
		f.UpdatedAt = &t
	}
	f.CreatedAt = f.CreatedAt.In(time.UTC)
	return &f, nil
}
