package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/samber/oops"

	"github.com/baharkarakas/ong-backend/internal/models"
	"github.com/baharkarakas/ong-backend/internal/repository"
)

type resourcesRepo struct{ db DB }

func NewResources(db DB) repository.Resources {
	return &resourcesRepo{db: db}
}

const resourceSelect = `
SELECT r.id, r.name, r.description, r.created_year, r.created_at, r.updated_at,
       u.id, u.username, u.email, u.created_at
  FROM resources r
  JOIN users u ON u.id = r.owner_id`

func (r *resourcesRepo) Create(ctx context.Context, res models.Resource) (models.Resource, error) {
	if res.ID == "" {
		res.ID = uuid.NewString()
	}
	_, err := r.db.Exec(ctx,
		`INSERT INTO resources(id, name, description, created_year, owner_id) VALUES($1,$2,$3,$4,$5)`,
		res.ID, res.Name, res.Description, res.CreatedYear, res.Owner.ID,
	)
	if err != nil {
		if foreignKeyViolation(err) {
			return models.Resource{}, oops.Code("RESOURCE_OWNER_MISSING").
				With("owner_id", res.Owner.ID).
				Wrap(repository.ErrNotFound)
		}
		return models.Resource{}, oops.Code("RESOURCE_CREATE_FAILED").
			With("owner_id", res.Owner.ID).
			Wrap(err)
	}
	return r.GetByID(ctx, res.ID)
}

func (r *resourcesRepo) GetByID(ctx context.Context, id string) (models.Resource, error) {
	if _, err := uuid.Parse(id); err != nil {
		return models.Resource{}, repository.ErrNotFound
	}
	res, err := scanResource(r.db.QueryRow(ctx, resourceSelect+` WHERE r.id=$1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return models.Resource{}, repository.ErrNotFound
	}
	if err != nil {
		return models.Resource{}, oops.Code("RESOURCE_GET_FAILED").With("id", id).Wrap(err)
	}
	return res, nil
}

func (r *resourcesRepo) List(ctx context.Context) ([]models.Resource, error) {
	rows, err := r.db.Query(ctx, resourceSelect+` ORDER BY r.created_at, r.id`)
	if err != nil {
		return nil, oops.Code("RESOURCE_LIST_FAILED").Wrap(err)
	}
	defer rows.Close()

	out := []models.Resource{}
	for rows.Next() {
		res, err := scanResource(rows)
		if err != nil {
			return nil, oops.Code("RESOURCE_LIST_FAILED").With("operation", "scan").Wrap(err)
		}
		out = append(out, res)
	}
	if err := rows.Err(); err != nil {
		return nil, oops.Code("RESOURCE_LIST_FAILED").Wrap(err)
	}
	return out, nil
}

// Update never touches owner_id. Nil patch fields bind as NULL and keep the stored value.
func (r *resourcesRepo) Update(ctx context.Context, id string, patch models.ResourcePatch) (models.Resource, error) {
	if _, err := uuid.Parse(id); err != nil {
		return models.Resource{}, repository.ErrNotFound
	}
	tag, err := r.db.Exec(ctx,
		`UPDATE resources
		    SET name=COALESCE($2, name),
		        description=COALESCE($3, description),
		        created_year=COALESCE($4, created_year),
		        updated_at=now()
		  WHERE id=$1`,
		id, patch.Name, patch.Description, patch.CreatedYear,
	)
	if err != nil {
		return models.Resource{}, oops.Code("RESOURCE_UPDATE_FAILED").With("id", id).Wrap(err)
	}
	if tag.RowsAffected() == 0 {
		return models.Resource{}, repository.ErrNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *resourcesRepo) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return repository.ErrNotFound
	}
	tag, err := r.db.Exec(ctx, `DELETE FROM resources WHERE id=$1`, id)
	if err != nil {
		return oops.Code("RESOURCE_DELETE_FAILED").With("id", id).Wrap(err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *resourcesRepo) OwnedIDs(ctx context.Context) (map[string][]string, error) {
	rows, err := r.db.Query(ctx, `SELECT owner_id, id FROM resources ORDER BY created_at, id`)
	if err != nil {
		return nil, oops.Code("RESOURCE_OWNED_IDS_FAILED").Wrap(err)
	}
	defer rows.Close()

	out := map[string][]string{}
	for rows.Next() {
		var owner, id string
		if err := rows.Scan(&owner, &id); err != nil {
			return nil, oops.Code("RESOURCE_OWNED_IDS_FAILED").With("operation", "scan").Wrap(err)
		}
		out[owner] = append(out[owner], id)
	}
	if err := rows.Err(); err != nil {
		return nil, oops.Code("RESOURCE_OWNED_IDS_FAILED").Wrap(err)
	}
	return out, nil
}

func scanResource(row pgx.Row) (models.Resource, error) {
	var res models.Resource
	err := row.Scan(
		&res.ID, &res.Name, &res.Description, &res.CreatedYear, &res.CreatedAt, &res.UpdatedAt,
		&res.Owner.ID, &res.Owner.Username, &res.Owner.Email, &res.Owner.CreatedAt,
	)
	return res, err
}
