package repositories

import (
	"context"

	"github.com/jackc/pgx/v4"

	"github.com/poofware/mono-repo/backend/shared/go-models"
	"github.com/poofware/mono-repo/backend/shared/go-utils"
)

type CountryRepository interface {
	// Create inserts the country with its non-empty descriptions.
	// A duplicate id yields utils.ErrRecordExists.
	Create(ctx context.Context, c *models.Country) error

	// GetByID returns (nil, nil) when the id is unknown.
	GetByID(ctx context.Context, id string) (*models.Country, error)
	Exists(ctx context.Context, id string) (bool, error)

	// List returns all countries ordered by id.
	List(ctx context.Context) ([]*models.Country, error)

	// SetDescription upserts the text for one language; empty text removes it.
	SetDescription(ctx context.Context, id, languageID, text string) error

	// Delete removes the country and its descriptions, or returns
	// utils.ErrRecordNotFound.
	Delete(ctx context.Context, id string) error
}

type countryRepo struct {
	db DB
}

func NewCountryRepository(db DB) CountryRepository {
	return &countryRepo{db: db}
}

func (r *countryRepo) Create(ctx context.Context, c *models.Country) error {
	err := withTx(ctx, r.db, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `INSERT INTO countries (country_id) VALUES ($1)`, c.ID); err != nil {
			return err
		}
		for _, d := range c.Descriptions {
			if d.Text == "" {
				continue
			}
			if err := upsertCountryDescription(ctx, tx, c.ID, d.LanguageID, d.Text); err != nil {
				return err
			}
		}
		return nil
	})
	return mapPgError(err)
}

func (r *countryRepo) GetByID(ctx context.Context, id string) (*models.Country, error) {
	ok, err := r.Exists(ctx, id)
	if err != nil || !ok {
		return nil, err
	}

	rows, err := r.db.Query(ctx, `
        SELECT language_id, description
        FROM country_descriptions
        WHERE country_id=$1
        ORDER BY language_id
    `, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	c := &models.Country{ID: id}
	for rows.Next() {
		var d models.Description
		if err := rows.Scan(&d.LanguageID, &d.Text); err != nil {
			return nil, err
		}
		c.Descriptions = append(c.Descriptions, d)
	}
	return c, rows.Err()
}

func (r *countryRepo) Exists(ctx context.Context, id string) (bool, error) {
	return queryExists(ctx, r.db, `SELECT EXISTS (SELECT 1 FROM countries WHERE country_id=$1)`, id)
}

func (r *countryRepo) List(ctx context.Context) ([]*models.Country, error) {
	rows, err := r.db.Query(ctx, `
        SELECT c.country_id, d.language_id, d.description
        FROM countries c
        LEFT JOIN country_descriptions d ON d.country_id = c.country_id
        ORDER BY c.country_id, d.language_id
    `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.Country
	var cur *models.Country
	for rows.Next() {
		var id string
		var lang, text *string
		if err := rows.Scan(&id, &lang, &text); err != nil {
			return nil, err
		}
		if cur == nil || cur.ID != id {
			cur = &models.Country{ID: id}
			out = append(out, cur)
		}
		if lang != nil {
			cur.Descriptions = append(cur.Descriptions, models.Description{
				LanguageID: *lang,
				Text:       utils.Val(text),
			})
		}
	}
	return out, rows.Err()
}

func (r *countryRepo) SetDescription(ctx context.Context, id, languageID, text string) error {
	return withTx(ctx, r.db, func(tx pgx.Tx) error {
		ok, err := queryExists(ctx, tx, `SELECT EXISTS (SELECT 1 FROM countries WHERE country_id=$1)`, id)
		if err != nil {
			return err
		}
		if !ok {
			return utils.ErrRecordNotFound
		}
		if text == "" {
			_, err = tx.Exec(ctx,
				`DELETE FROM country_descriptions WHERE country_id=$1 AND language_id=$2`,
				id, languageID,
			)
			return err
		}
		return upsertCountryDescription(ctx, tx, id, languageID, text)
	})
}

func (r *countryRepo) Delete(ctx context.Context, id string) error {
	return withTx(ctx, r.db, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM country_descriptions WHERE country_id=$1`, id); err != nil {
			return err
		}
		tag, err := tx.Exec(ctx, `DELETE FROM countries WHERE country_id=$1`, id)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return utils.ErrRecordNotFound
		}
		return nil
	})
}

func upsertCountryDescription(ctx context.Context, q DB, id, lang, text string) error {
	_, err := q.Exec(ctx, `
        INSERT INTO country_descriptions (country_id, language_id, description)
        VALUES ($1,$2,$3)
        ON CONFLICT (country_id, language_id)
        DO UPDATE SET description = EXCLUDED.description
    `, id, lang, text)
	return err
}
