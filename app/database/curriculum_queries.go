package database

import (
	"database/sql"
	"fmt"

	"sanisidro-college/app/models"
)

// GetCurriculumSubjects lists the subjects offered to a course+year cohort,
// optionally narrowed to one semester.
func GetCurriculumSubjects(db *sql.DB, courseCode string, yearLevel int, semester string) ([]*models.CurriculumSubject, error) {
	query := `SELECT id, course_code, year_level, semester, subject_code, subject_title, units,
					 created_at, updated_at
			  FROM curriculum_subjects WHERE 1=1`
	args := []interface{}{}
	idx := 1

	if courseCode != "" {
		query += fmt.Sprintf(" AND course_code = $%d", idx)
		args = append(args, courseCode)
		idx++
	}
	if yearLevel > 0 {
		query += fmt.Sprintf(" AND year_level = $%d", idx)
		args = append(args, yearLevel)
		idx++
	}
	if semester != "" {
		query += fmt.Sprintf(" AND semester = $%d", idx)
		args = append(args, semester)
		idx++
	}
	query += " ORDER BY course_code, year_level, semester, subject_code"

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var subjects []*models.CurriculumSubject
	for rows.Next() {
		subject := &models.CurriculumSubject{}
		if err := rows.Scan(
			&subject.ID, &subject.CourseCode, &subject.YearLevel, &subject.Semester,
			&subject.SubjectCode, &subject.SubjectTitle, &subject.Units,
			&subject.CreatedAt, &subject.UpdatedAt,
		); err != nil {
			return nil, err
		}
		subjects = append(subjects, subject)
	}
	return subjects, rows.Err()
}

// CreateCurriculumSubject adds a subject to a cohort's curriculum; replaces
// title/units if the pairing already exists.
func CreateCurriculumSubject(db *sql.DB, subject *models.CurriculumSubject) (*models.CurriculumSubject, error) {
	err := db.QueryRow(
		`INSERT INTO curriculum_subjects
		 (course_code, year_level, semester, subject_code, subject_title, units, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		 ON CONFLICT (course_code, year_level, semester, subject_code) DO UPDATE
		 SET subject_title = EXCLUDED.subject_title, units = EXCLUDED.units, updated_at = NOW()
		 RETURNING id, created_at, updated_at`,
		subject.CourseCode, subject.YearLevel, subject.Semester,
		subject.SubjectCode, subject.SubjectTitle, subject.Units,
	).Scan(&subject.ID, &subject.CreatedAt, &subject.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return subject, nil
}

// DeleteCurriculumSubject removes a subject from a cohort's curriculum.
func DeleteCurriculumSubject(db *sql.DB, id string) error {
	res, err := db.Exec(`DELETE FROM curriculum_subjects WHERE id = $1`, id)
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
