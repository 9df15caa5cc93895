package sqlite

import (
	"context"
	"database/sql"

	repositories "github.com/poofware/mono-repo/backend/shared/go-repositories"
	"github.com/poofware/mono-repo/backend/shared/go-models"
	"github.com/poofware/mono-repo/backend/shared/go-utils"
)

const existsCountry = `SELECT EXISTS (SELECT 1 FROM countries WHERE country_id=?)`

type countryRepo struct {
	db *sql.DB
}

func NewCountryRepository(db *sql.DB) repositories.CountryRepository {
	return &countryRepo{db: db}
}

func (r *countryRepo) Create(ctx context.Context, c *models.Country) error {
	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `INSERT INTO countries (country_id) VALUES (?)`, c.ID); err != nil {
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
	return mapSQLiteError(err)
}

func (r *countryRepo) GetByID(ctx context.Context, id string) (*models.Country, error) {
	ok, err := r.Exists(ctx, id)
	if err != nil || !ok {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, `
        SELECT language_id, description
        FROM country_descriptions
        WHERE country_id=?
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
	return queryExists(ctx, r.db, existsCountry, id)
}

func (r *countryRepo) List(ctx context.Context) ([]*models.Country, error) {
	rows, err := r.db.QueryContext(ctx, `
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
		var lang, text sql.NullString
		if err := rows.Scan(&id, &lang, &text); err != nil {
			return nil, err
		}
		if cur == nil || cur.ID != id {
			cur = &models.Country{ID: id}
			out = append(out, cur)
		}
		if lang.Valid {
			cur.Descriptions = append(cur.Descriptions, models.Description{
				LanguageID: lang.String,
				Text:       text.String,
			})
		}
	}
	return out, rows.Err()
}

func (r *countryRepo) SetDescription(ctx context.Context, id, languageID, text string) error {
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		ok, err := queryExists(ctx, tx, existsCountry, id)
		if err != nil {
			return err
		}
		if !ok {
			return utils.ErrRecordNotFound
		}
		if text == "" {
			_, err = tx.ExecContext(ctx,
				`DELETE FROM country_descriptions WHERE country_id=? AND language_id=?`,
				id, languageID,
			)
			return err
		}
		return upsertCountryDescription(ctx, tx, id, languageID, text)
	})
}

func (r *countryRepo) Delete(ctx context.Context, id string) error {
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM country_descriptions WHERE country_id=?`, id); err != nil {
			return err
		}
		res, err := tx.ExecContext(ctx, `DELETE FROM countries WHERE country_id=?`, id)
		if err != nil {
			return err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if n == 0 {
			return utils.ErrRecordNotFound
		}
		return nil
	})
}

func upsertCountryDescription(ctx context.Context, q queryer, id, lang, text string) error {
	_, err := q.ExecContext(ctx, `
        INSERT INTO country_descriptions (country_id, language_id, description)
        VALUES (?,?,?)
        ON CONFLICT (country_id, language_id)
        DO UPDATE SET description = excluded.description
    `, id, lang, text)
	return err
}
