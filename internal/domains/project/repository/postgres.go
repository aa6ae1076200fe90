package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"devfolio-backend/internal/domains/project/model"
	skillmodel "devfolio-backend/internal/domains/skill/model"
	usermodel "devfolio-backend/internal/domains/user/model"
	"devfolio-backend/pkg/database"
)

const projectColumns = `
	id, user_id, title, slug, description,
	goals, development_process, challenges, outcomes,
	project_url, repo_url, thumbnail_url,
	status, published_at, created_at, updated_at`

type postgresProjectRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresProjectRepository(pool *pgxpool.Pool) ProjectRepository {
	return &postgresProjectRepository{pool: pool}
}

func scanProject(row pgx.Row) (*model.Project, error) {
	p := &model.Project{}
	err := row.Scan(
		&p.ID, &p.UserID, &p.Title, &p.Slug, &p.Description,
		&p.Goals, &p.DevelopmentProcess, &p.Challenges, &p.Outcomes,
		&p.ProjectURL, &p.RepoURL, &p.ThumbnailURL,
		&p.Status, &p.PublishedAt, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *postgresProjectRepository) Create(ctx context.Context, project *model.Project, techStackIDs []int) error {
	err := database.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		query := `
			INSERT INTO projects (
				id, user_id, title, slug, description,
				goals, development_process, challenges, outcomes,
				project_url, repo_url, thumbnail_url,
				status, created_at, updated_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, NOW(), NOW())
			RETURNING created_at, updated_at
		`

		err := tx.QueryRow(ctx, query,
			project.ID, project.UserID, project.Title, project.Slug, project.Description,
			project.Goals, project.DevelopmentProcess, project.Challenges, project.Outcomes,
			project.ProjectURL, project.RepoURL, project.ThumbnailURL,
			project.Status,
		).Scan(&project.CreatedAt, &project.UpdatedAt)
		if err != nil {
			return err
		}

		for _, skillID := range techStackIDs {
			if _, err := tx.Exec(ctx,
				`INSERT INTO project_skills (project_id, skill_id) VALUES ($1, $2)`,
				project.ID, skillID,
			); err != nil {
				return fmt.Errorf("failed to insert tech stack row: %w", err)
			}
		}

		return nil
	})

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" && strings.Contains(pgErr.ConstraintName, "slug") {
			return ErrDuplicateSlug
		}
		return fmt.Errorf("failed to create project: %w", err)
	}

	return nil
}

func (r *postgresProjectRepository) ExistsByUserAndSlug(ctx context.Context, userID uuid.UUID, slug string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM projects WHERE user_id = $1 AND slug = $2)`,
		userID, slug,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check slug existence: %w", err)
	}
	return exists, nil
}

func (r *postgresProjectRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE id = $1`

	project, err := scanProject(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}

	if err := r.loadAssociations(ctx, []*model.Project{project}); err != nil {
		return nil, err
	}
	if err := r.loadOwner(ctx, project); err != nil {
		return nil, err
	}

	return project, nil
}

func (r *postgresProjectRepository) FindAllByOwner(ctx context.Context, userID uuid.UUID, status string) ([]*model.Project, error) {
	query := `
		SELECT ` + projectColumns + `
		FROM projects
		WHERE user_id = $1 AND ($2 = '' OR status = $2)
		ORDER BY created_at DESC
	`

	rows, err := r.pool.Query(ctx, query, userID, status)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()

	var projects []*model.Project
	for rows.Next() {
		project, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		projects = append(projects, project)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := r.loadAssociations(ctx, projects); err != nil {
		return nil, err
	}

	return projects, nil
}

func (r *postgresProjectRepository) FindPublicBySlug(ctx context.Context, username, slug string) (*model.Project, error) {
	query := `
		SELECT
			p.id, p.user_id, p.title, p.slug, p.description,
			p.goals, p.development_process, p.challenges, p.outcomes,
			p.project_url, p.repo_url, p.thumbnail_url,
			p.status, p.published_at, p.created_at, p.updated_at
		FROM projects p
		JOIN users u ON u.id = p.user_id
		WHERE u.username = $1 AND p.slug = $2 AND p.status = 'published'
	`

	project, err := scanProject(r.pool.QueryRow(ctx, query, username, slug))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find public project: %w", err)
	}

	if err := r.loadAssociations(ctx, []*model.Project{project}); err != nil {
		return nil, err
	}
	if err := r.loadOwner(ctx, project); err != nil {
		return nil, err
	}

	return project, nil
}

func (r *postgresProjectRepository) Update(ctx context.Context, project *model.Project) error {
	query := `
		UPDATE projects SET
			title = $2, description = $3,
			goals = $4, development_process = $5, challenges = $6, outcomes = $7,
			project_url = $8, repo_url = $9, thumbnail_url = $10,
			status = $11, published_at = $12,
			updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`

	err := r.pool.QueryRow(ctx, query,
		project.ID, project.Title, project.Description,
		project.Goals, project.DevelopmentProcess, project.Challenges, project.Outcomes,
		project.ProjectURL, project.RepoURL, project.ThumbnailURL,
		project.Status, project.PublishedAt,
	).Scan(&project.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.NewProjectNotFound()
		}
		return fmt.Errorf("failed to update project: %w", err)
	}

	return nil
}

func (r *postgresProjectRepository) ReplaceTechStack(ctx context.Context, projectID uuid.UUID, skillIDs []int) error {
	return database.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx,
			`DELETE FROM project_skills WHERE project_id = $1`, projectID,
		); err != nil {
			return fmt.Errorf("failed to clear tech stack: %w", err)
		}

		for _, skillID := range skillIDs {
			if _, err := tx.Exec(ctx,
				`INSERT INTO project_skills (project_id, skill_id) VALUES ($1, $2)`,
				projectID, skillID,
			); err != nil {
				return fmt.Errorf("failed to insert tech stack row: %w", err)
			}
		}

		return nil
	})
}

func (r *postgresProjectRepository) Remove(ctx context.Context, id uuid.UUID) error {
	return database.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx,
			`DELETE FROM project_images WHERE project_id = $1`, id,
		); err != nil {
			return fmt.Errorf("failed to delete project images: %w", err)
		}

		if _, err := tx.Exec(ctx,
			`DELETE FROM project_skills WHERE project_id = $1`, id,
		); err != nil {
			return fmt.Errorf("failed to delete tech stack rows: %w", err)
		}

		if _, err := tx.Exec(ctx,
			`DELETE FROM projects WHERE id = $1`, id,
		); err != nil {
			return fmt.Errorf("failed to delete project: %w", err)
		}

		return nil
	})
}

func (r *postgresProjectRepository) AddImage(ctx context.Context, image *model.ProjectImage) error {
	query := `
		INSERT INTO project_images (id, project_id, image_url, caption, sort_order, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		RETURNING created_at
	`

	err := r.pool.QueryRow(ctx, query,
		image.ID, image.ProjectID, image.ImageURL, image.Caption, image.SortOrder,
	).Scan(&image.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to add image: %w", err)
	}

	return nil
}

func (r *postgresProjectRepository) FindImage(ctx context.Context, projectID, imageID uuid.UUID) (*model.ProjectImage, error) {
	query := `
		SELECT id, project_id, image_url, caption, sort_order, created_at
		FROM project_images
		WHERE id = $1 AND project_id = $2
	`

	image := &model.ProjectImage{}
	err := r.pool.QueryRow(ctx, query, imageID, projectID).Scan(
		&image.ID, &image.ProjectID, &image.ImageURL, &image.Caption, &image.SortOrder, &image.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find image: %w", err)
	}

	return image, nil
}

func (r *postgresProjectRepository) RemoveImage(ctx context.Context, imageID uuid.UUID) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM project_images WHERE id = $1`, imageID); err != nil {
		return fmt.Errorf("failed to remove image: %w", err)
	}
	return nil
}

// loadAssociations batch-loads images and tech stacks for the given projects.
func (r *postgresProjectRepository) loadAssociations(ctx context.Context, projects []*model.Project) error {
	if len(projects) == 0 {
		return nil
	}

	ids := make([]uuid.UUID, 0, len(projects))
	byID := make(map[uuid.UUID]*model.Project, len(projects))
	for _, p := range projects {
		ids = append(ids, p.ID)
		byID[p.ID] = p
		p.Images = []*model.ProjectImage{}
		p.TechStack = []*skillmodel.Skill{}
	}

	imageRows, err := r.pool.Query(ctx, `
		SELECT id, project_id, image_url, caption, sort_order, created_at
		FROM project_images
		WHERE project_id = ANY($1)
		ORDER BY sort_order, created_at
	`, ids)
	if err != nil {
		return fmt.Errorf("failed to load images: %w", err)
	}
	defer imageRows.Close()

	for imageRows.Next() {
		image := &model.ProjectImage{}
		if err := imageRows.Scan(
			&image.ID, &image.ProjectID, &image.ImageURL, &image.Caption, &image.SortOrder, &image.CreatedAt,
		); err != nil {
			return fmt.Errorf("failed to scan image: %w", err)
		}
		if p, ok := byID[image.ProjectID]; ok {
			p.Images = append(p.Images, image)
		}
	}
	if err := imageRows.Err(); err != nil {
		return err
	}

	skillRows, err := r.pool.Query(ctx, `
		SELECT ps.project_id, s.id, s.name, s.slug, s.category
		FROM project_skills ps
		JOIN skills s ON s.id = ps.skill_id
		WHERE ps.project_id = ANY($1)
		ORDER BY s.name
	`, ids)
	if err != nil {
		return fmt.Errorf("failed to load tech stack: %w", err)
	}
	defer skillRows.Close()

	for skillRows.Next() {
		var projectID uuid.UUID
		skill := &skillmodel.Skill{}
		if err := skillRows.Scan(&projectID, &skill.ID, &skill.Name, &skill.Slug, &skill.Category); err != nil {
			return fmt.Errorf("failed to scan skill: %w", err)
		}
		if p, ok := byID[projectID]; ok {
			p.TechStack = append(p.TechStack, skill)
		}
	}

	return skillRows.Err()
}

// loadOwner attaches the owner's sanitized profile.
func (r *postgresProjectRepository) loadOwner(ctx context.Context, project *model.Project) error {
	query := `
		SELECT id, email, username, full_name, role,
			bio, avatar_url, location, website_url, github_url, linkedin_url, twitter_url,
			company_name, company_url, industry,
			work_email, is_work_email_verified, is_email_verified,
			created_at, updated_at
		FROM users WHERE id = $1
	`

	owner := &usermodel.ProfileResponse{}
	err := r.pool.QueryRow(ctx, query, project.UserID).Scan(
		&owner.ID, &owner.Email, &owner.Username, &owner.FullName, &owner.Role,
		&owner.Bio, &owner.AvatarURL, &owner.Location, &owner.WebsiteURL,
		&owner.GithubURL, &owner.LinkedinURL, &owner.TwitterURL,
		&owner.CompanyName, &owner.CompanyURL, &owner.Industry,
		&owner.WorkEmail, &owner.IsWorkEmailVerified, &owner.IsEmailVerified,
		&owner.CreatedAt, &owner.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil
		}
		return fmt.Errorf("failed to load project owner: %w", err)
	}

	project.Owner = owner
	return nil
}
