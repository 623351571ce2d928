package database

import (
	"database/sql"

	"sanisidro-college/app/models"
)

func GetSubjects(db *sql.DB) ([]*models.Subject, error) {
	rows, err := db.Query(
		`SELECT id, code, title, units, is_active, created_at, updated_at
		 FROM subjects WHERE is_active = true ORDER BY code`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var subjects []*models.Subject
	for rows.Next() {
		subject := &models.Subject{}
		if err := rows.Scan(
			&subject.ID, &subject.Code, &subject.Title, &subject.Units,
			&subject.IsActive, &subject.CreatedAt, &subject.UpdatedAt,
		); err != nil {
			return nil, err
		}
		subjects = append(subjects, subject)
	}
	return subjects, rows.Err()
}

func GetSubjectByCode(db *sql.DB, code string) (*models.Subject, error) {
	subject := &models.Subject{}
	err := db.QueryRow(
		`SELECT id, code, title, units, is_active, created_at, updated_at
		 FROM subjects WHERE code = $1 AND is_active = true`, code,
	).Scan(
		&subject.ID, &subject.Code, &subject.Title, &subject.Units,
		&subject.IsActive, &subject.CreatedAt, &subject.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return subject, nil
}

func CreateSubject(db *sql.DB, subject *models.Subject) (*models.Subject, error) {
	err := db.QueryRow(
		`INSERT INTO subjects (code, title, units, is_active, created_at, updated_at)
		 VALUES ($1, $2, $3, true, NOW(), NOW())
		 RETURNING id, is_active, created_at, updated_at`,
		subject.Code, subject.Title, subject.Units,
	).Scan(&subject.ID, &subject.IsActive, &subject.CreatedAt, &subject.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return subject, nil
}

func UpdateSubject(db *sql.DB, id string, subject *models.Subject) error {
	res, err := db.Exec(
		`UPDATE subjects SET code = $1, title = $2, units = $3, updated_at = NOW()
		 WHERE id = $4 AND is_active = true`,
		subject.Code, subject.Title, subject.Units, id,
	)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func DeleteSubject(db *sql.DB, id string) error {
	res, err := db.Exec(
		`UPDATE subjects SET is_active = false, deleted_at = NOW(), updated_at = NOW()
		 WHERE id = $1 AND is_active = true`, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
