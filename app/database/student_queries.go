package database

import (
	"database/sql"
	"fmt"

	"sanisidro-college/app/models"
)

// StudentFilters represents filtering options for students
type StudentFilters struct {
	Search     string
	CourseCode string
	YearLevel  int
	Limit      int
	Offset     int
}

const studentColumns = `id, student_no, first_name, last_name, email, course_code, year_level,
	section_block, is_active, created_at, updated_at`

func scanStudent(row rowScanner) (*models.Student, error) {
	student := &models.Student{}
	err := row.Scan(
		&student.ID, &student.StudentNo, &student.FirstName, &student.LastName,
		&student.Email, &student.CourseCode, &student.YearLevel,
		&student.SectionBlock, &student.IsActive, &student.CreatedAt, &student.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return student, nil
}

// GetStudents returns active students matching the filters plus the unfiltered
// total for pagination.
func GetStudents(db *sql.DB, filters StudentFilters) ([]*models.Student, int, error) {
	where := ` WHERE is_active = true`
	args := []interface{}{}
	idx := 1

	if filters.Search != "" {
		where += fmt.Sprintf(` AND (student_no ILIKE $%d OR first_name ILIKE $%d OR last_name ILIKE $%d OR email ILIKE $%d)`,
			idx, idx, idx, idx)
		args = append(args, "%"+filters.Search+"%")
		idx++
	}
	if filters.CourseCode != "" {
		where += fmt.Sprintf(" AND course_code = $%d", idx)
		args = append(args, filters.CourseCode)
		idx++
	}
	if filters.YearLevel > 0 {
		where += fmt.Sprintf(" AND year_level = $%d", idx)
		args = append(args, filters.YearLevel)
		idx++
	}

	var total int
	if err := db.QueryRow(`SELECT COUNT(*) FROM students`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + studentColumns + ` FROM students` + where + ` ORDER BY student_no`
	if filters.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", idx, idx+1)
		args = append(args, filters.Limit, filters.Offset)
	}

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var students []*models.Student
	for rows.Next() {
		student, err := scanStudent(rows)
		if err != nil {
			return nil, 0, err
		}
		students = append(students, student)
	}
	return students, total, rows.Err()
}

func GetStudentByID(db *sql.DB, id string) (*models.Student, error) {
	query := `SELECT ` + studentColumns + ` FROM students WHERE id = $1 AND is_active = true`
	return scanStudent(db.QueryRow(query, id))
}

func CreateStudent(db *sql.DB, student *models.Student) (*models.Student, error) {
	err := db.QueryRow(
		`INSERT INTO students
		 (student_no, first_name, last_name, email, course_code, year_level, section_block,
		  is_active, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, true, NOW(), NOW())
		 RETURNING id, is_active, created_at, updated_at`,
		student.StudentNo, student.FirstName, student.LastName, student.Email,
		student.CourseCode, student.YearLevel, student.SectionBlock,
	).Scan(&student.ID, &student.IsActive, &student.CreatedAt, &student.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return student, nil
}

func UpdateStudent(db *sql.DB, id string, student *models.Student) error {
	res, err := db.Exec(
		`UPDATE students
		 SET student_no = $1, first_name = $2, last_name = $3, email = $4,
			 course_code = $5, year_level = $6, section_block = $7, updated_at = NOW()
		 WHERE id = $8 AND is_active = true`,
		student.StudentNo, student.FirstName, student.LastName, student.Email,
		student.CourseCode, student.YearLevel, student.SectionBlock, id,
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

func DeleteStudent(db *sql.DB, id string) error {
	res, err := db.Exec(
		`UPDATE students SET is_active = false, deleted_at = NOW(), updated_at = NOW()
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
