package postgres

import (
	"context"
	"errors"
	"fmt"
	"interview-experience-backend/internal/domain"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const submissionColumns = `id, user_id, name, country, company, questions, created_at, updated_at`

type submissionRepo struct {
	db *pgxpool.Pool
}

func NewSubmissionRepository(db *pgxpool.Pool) domain.SubmissionRepository {
	return &submissionRepo{db: db}
}

func (r *submissionRepo) Create(ctx context.Context, s *domain.Submission) error {
	query := `INSERT INTO submissions (` + submissionColumns + `)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.db.Exec(ctx, query,
		s.ID, s.UserID, s.Name, s.Country, s.Company, s.Questions, s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("create submission: %w", err)
	}
	return nil
}

// FindAll lists submissions of all users with the author's email joined in.
func (r *submissionRepo) FindAll(ctx context.Context, company string) ([]domain.Submission, error) {
	query := `
		SELECT
			s.id, s.user_id, s.name, s.country, s.company, s.questions, s.created_at, s.updated_at,
			COALESCE(u.email, '') AS user_email
		FROM submissions s
		LEFT JOIN users u ON u.id = s.user_id`
	var args []any
	if company != "" {
		query += ` WHERE s.company ILIKE $1`
		args = append(args, "%"+escapeLike(company)+"%")
	}
	query += ` ORDER BY s.created_at DESC`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list submissions: %w", err)
	}
	defer rows.Close()

	submissions := []domain.Submission{}
	for rows.Next() {
		var s domain.Submission
		if err := rows.Scan(
			&s.ID, &s.UserID, &s.Name, &s.Country, &s.Company, &s.Questions, &s.CreatedAt, &s.UpdatedAt,
			&s.UserEmail,
		); err != nil {
			return nil, fmt.Errorf("scan submission: %w", err)
		}
		submissions = append(submissions, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list submissions: %w", err)
	}
	return submissions, nil
}

func (r *submissionRepo) FindOneOwned(ctx context.Context, id, userID string) (*domain.Submission, error) {
	query := `SELECT ` + submissionColumns + ` FROM submissions WHERE id = $1 AND user_id = $2`
	return scanOwned(r.db.QueryRow(ctx, query, id, userID), "get submission")
}

func (r *submissionRepo) UpdateOwned(ctx context.Context, id, userID string, fields domain.SubmissionFields, updatedAt time.Time) (*domain.Submission, error) {
	query := `UPDATE submissions
              SET name = $3, country = $4, company = $5, questions = $6, updated_at = $7
              WHERE id = $1 AND user_id = $2
              RETURNING ` + submissionColumns
	row := r.db.QueryRow(ctx, query, id, userID, fields.Name, fields.Country, fields.Company, fields.Questions, updatedAt)
	return scanOwned(row, "update submission")
}

func (r *submissionRepo) DeleteOwned(ctx context.Context, id, userID string) (*domain.Submission, error) {
	query := `DELETE FROM submissions WHERE id = $1 AND user_id = $2 RETURNING ` + submissionColumns
	return scanOwned(r.db.QueryRow(ctx, query, id, userID), "delete submission")
}

func scanOwned(row pgx.Row, op string) (*domain.Submission, error) {
	var s domain.Submission
	err := row.Scan(&s.ID, &s.UserID, &s.Name, &s.Country, &s.Company, &s.Questions, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &s, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes user input match literally inside an ILIKE pattern.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
