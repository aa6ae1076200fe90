package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"devfolio-backend/internal/domains/skill/model"
)

type postgresSkillRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresSkillRepository(pool *pgxpool.Pool) SkillRepository {
	return &postgresSkillRepository{pool: pool}
}

func (r *postgresSkillRepository) List(ctx context.Context, search, category string) ([]*model.Skill, error) {
	query := `
		SELECT id, name, slug, category
		FROM skills
		WHERE ($1 = '' OR name ILIKE '%' || $1 || '%')
		  AND ($2 = '' OR category = $2)
		ORDER BY name ASC
	`

	rows, err := r.pool.Query(ctx, query, search, category)
	if err != nil {
		return nil, fmt.Errorf("failed to list skills: %w", err)
	}
	defer rows.Close()

	var skills []*model.Skill
	for rows.Next() {
		skill := &model.Skill{}
		if err := rows.Scan(&skill.ID, &skill.Name, &skill.Slug, &skill.Category); err != nil {
			return nil, fmt.Errorf("failed to scan skill: %w", err)
		}
		skills = append(skills, skill)
	}

	return skills, rows.Err()
}

func (r *postgresSkillRepository) FindByIDs(ctx context.Context, ids []int) ([]*model.Skill, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query := `
		SELECT id, name, slug, category
		FROM skills
		WHERE id = ANY($1)
		ORDER BY name ASC
	`

	rows, err := r.pool.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to find skills by ids: %w", err)
	}
	defer rows.Close()

	var skills []*model.Skill
	for rows.Next() {
		skill := &model.Skill{}
		if err := rows.Scan(&skill.ID, &skill.Name, &skill.Slug, &skill.Category); err != nil {
			return nil, fmt.Errorf("failed to scan skill: %w", err)
		}
		skills = append(skills, skill)
	}

	return skills, rows.Err()
}
