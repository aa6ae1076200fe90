package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"devfolio-backend/internal/domains/saveddev/model"
	usermodel "devfolio-backend/internal/domains/user/model"
)

type postgresSavedDevRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresSavedDevRepository(pool *pgxpool.Pool) SavedDevRepository {
	return &postgresSavedDevRepository{pool: pool}
}

func (r *postgresSavedDevRepository) Create(ctx context.Context, saved *model.SavedDeveloper) error {
	query := `
		INSERT INTO saved_developers (id, recruiter_id, developer_id, created_at)
		VALUES ($1, $2, $3, NOW())
		RETURNING created_at
	`

	err := r.pool.QueryRow(ctx, query,
		saved.ID, saved.RecruiterID, saved.DeveloperID,
	).Scan(&saved.CreatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return model.NewAlreadySaved()
		}
		return fmt.Errorf("failed to save developer: %w", err)
	}

	return nil
}

func (r *postgresSavedDevRepository) Delete(ctx context.Context, recruiterID, developerID uuid.UUID) (bool, error) {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM saved_developers WHERE recruiter_id = $1 AND developer_id = $2`,
		recruiterID, developerID,
	)
	if err != nil {
		return false, fmt.Errorf("failed to unsave developer: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *postgresSavedDevRepository) FindAllByRecruiter(ctx context.Context, recruiterID uuid.UUID) ([]*model.SavedDeveloper, error) {
	query := `
		SELECT
			sd.id, sd.recruiter_id, sd.developer_id, sd.created_at,
			u.id, u.email, u.username, u.full_name, u.role,
			u.bio, u.avatar_url, u.location, u.website_url, u.github_url, u.linkedin_url, u.twitter_url,
			u.company_name, u.company_url, u.industry,
			u.work_email, u.is_work_email_verified, u.is_email_verified,
			u.created_at, u.updated_at
		FROM saved_developers sd
		JOIN users u ON u.id = sd.developer_id
		WHERE sd.recruiter_id = $1
		ORDER BY sd.created_at DESC
	`

	rows, err := r.pool.Query(ctx, query, recruiterID)
	if err != nil {
		return nil, fmt.Errorf("failed to list saved developers: %w", err)
	}
	defer rows.Close()

	var saved []*model.SavedDeveloper
	for rows.Next() {
		s := &model.SavedDeveloper{}
		developer := &usermodel.ProfileResponse{}
		err := rows.Scan(
			&s.ID, &s.RecruiterID, &s.DeveloperID, &s.CreatedAt,
			&developer.ID, &developer.Email, &developer.Username, &developer.FullName, &developer.Role,
			&developer.Bio, &developer.AvatarURL, &developer.Location, &developer.WebsiteURL,
			&developer.GithubURL, &developer.LinkedinURL, &developer.TwitterURL,
			&developer.CompanyName, &developer.CompanyURL, &developer.Industry,
			&developer.WorkEmail, &developer.IsWorkEmailVerified, &developer.IsEmailVerified,
			&developer.CreatedAt, &developer.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan saved developer: %w", err)
		}
		s.Developer = developer
		saved = append(saved, s)
	}

	return saved, rows.Err()
}

func (r *postgresSavedDevRepository) Exists(ctx context.Context, recruiterID, developerID uuid.UUID) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM saved_developers WHERE recruiter_id = $1 AND developer_id = $2)`,
		recruiterID, developerID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check saved status: %w", err)
	}
	return exists, nil
}
