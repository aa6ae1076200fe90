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

	"devfolio-backend/internal/domains/user/model"
)

const userColumns = `
	id, email, username, full_name, role, password_hash,
	bio, avatar_url, location, website_url, github_url, linkedin_url, twitter_url,
	company_name, company_url, industry,
	work_email, is_work_email_verified, is_email_verified,
	email_verification_code, email_verification_expiry,
	work_email_verification_code, work_email_verification_expiry,
	created_at, updated_at`

type postgresUserRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresUserRepository(pool *pgxpool.Pool) UserRepository {
	return &postgresUserRepository{pool: pool}
}

func scanUser(row pgx.Row) (*model.User, error) {
	user := &model.User{}
	err := row.Scan(
		&user.ID, &user.Email, &user.Username, &user.FullName, &user.Role, &user.PasswordHash,
		&user.Bio, &user.AvatarURL, &user.Location, &user.WebsiteURL, &user.GithubURL,
		&user.LinkedinURL, &user.TwitterURL,
		&user.CompanyName, &user.CompanyURL, &user.Industry,
		&user.WorkEmail, &user.IsWorkEmailVerified, &user.IsEmailVerified,
		&user.EmailVerificationCode, &user.EmailVerificationExpiry,
		&user.WorkEmailVerificationCode, &user.WorkEmailVerificationExp,
		&user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (r *postgresUserRepository) Create(ctx context.Context, user *model.User) error {
	query := `
		INSERT INTO users (
			id, email, username, full_name, role, password_hash,
			company_name, email_verification_code, email_verification_expiry,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW())
		RETURNING created_at, updated_at
	`

	err := r.pool.QueryRow(ctx, query,
		user.ID, user.Email, user.Username, user.FullName, user.Role, user.PasswordHash,
		user.CompanyName, user.EmailVerificationCode, user.EmailVerificationExpiry,
	).Scan(&user.CreatedAt, &user.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			if strings.Contains(pgErr.ConstraintName, "username") {
				return model.NewUsernameTaken()
			}
			return model.NewEmailTaken()
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

func (r *postgresUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	user, err := scanUser(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find user by id: %w", err)
	}
	return user, nil
}

func (r *postgresUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`

	user, err := scanUser(r.pool.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find user by email: %w", err)
	}
	return user, nil
}

func (r *postgresUserRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE username = $1`

	user, err := scanUser(r.pool.QueryRow(ctx, query, username))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find user by username: %w", err)
	}
	return user, nil
}

func (r *postgresUserRepository) Update(ctx context.Context, user *model.User) error {
	query := `
		UPDATE users SET
			full_name = $2, bio = $3, avatar_url = $4, location = $5,
			website_url = $6, github_url = $7, linkedin_url = $8, twitter_url = $9,
			company_name = $10, company_url = $11, industry = $12,
			work_email = $13, is_work_email_verified = $14, is_email_verified = $15,
			email_verification_code = $16, email_verification_expiry = $17,
			work_email_verification_code = $18, work_email_verification_expiry = $19,
			updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`

	err := r.pool.QueryRow(ctx, query,
		user.ID, user.FullName, user.Bio, user.AvatarURL, user.Location,
		user.WebsiteURL, user.GithubURL, user.LinkedinURL, user.TwitterURL,
		user.CompanyName, user.CompanyURL, user.Industry,
		user.WorkEmail, user.IsWorkEmailVerified, user.IsEmailVerified,
		user.EmailVerificationCode, user.EmailVerificationExpiry,
		user.WorkEmailVerificationCode, user.WorkEmailVerificationExp,
	).Scan(&user.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.NewUserNotFound()
		}
		return fmt.Errorf("failed to update user: %w", err)
	}

	return nil
}

func (r *postgresUserRepository) ListDevelopers(ctx context.Context, search string) ([]*DeveloperRow, error) {
	query := `
		SELECT
			u.id, u.email, u.username, u.full_name, u.role, u.password_hash,
			u.bio, u.avatar_url, u.location, u.website_url, u.github_url, u.linkedin_url, u.twitter_url,
			u.company_name, u.company_url, u.industry,
			u.work_email, u.is_work_email_verified, u.is_email_verified,
			u.email_verification_code, u.email_verification_expiry,
			u.work_email_verification_code, u.work_email_verification_expiry,
			u.created_at, u.updated_at,
			COUNT(p.id) FILTER (WHERE p.status = 'published') AS project_count
		FROM users u
		LEFT JOIN projects p ON p.user_id = u.id
		WHERE u.role = 'developer'
		  AND u.is_email_verified = TRUE
		  AND ($1 = '' OR u.full_name ILIKE '%' || $1 || '%'
		       OR u.username ILIKE '%' || $1 || '%'
		       OR u.bio ILIKE '%' || $1 || '%')
		GROUP BY u.id
		ORDER BY u.created_at DESC
	`

	rows, err := r.pool.Query(ctx, query, search)
	if err != nil {
		return nil, fmt.Errorf("failed to list developers: %w", err)
	}
	defer rows.Close()

	var developers []*DeveloperRow
	for rows.Next() {
		user := &model.User{}
		var count int
		err := rows.Scan(
			&user.ID, &user.Email, &user.Username, &user.FullName, &user.Role, &user.PasswordHash,
			&user.Bio, &user.AvatarURL, &user.Location, &user.WebsiteURL, &user.GithubURL,
			&user.LinkedinURL, &user.TwitterURL,
			&user.CompanyName, &user.CompanyURL, &user.Industry,
			&user.WorkEmail, &user.IsWorkEmailVerified, &user.IsEmailVerified,
			&user.EmailVerificationCode, &user.EmailVerificationExpiry,
			&user.WorkEmailVerificationCode, &user.WorkEmailVerificationExp,
			&user.CreatedAt, &user.UpdatedAt,
			&count,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan developer: %w", err)
		}
		developers = append(developers, &DeveloperRow{User: user, ProjectCount: count})
	}

	return developers, rows.Err()
}
