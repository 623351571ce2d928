package database

import (
	"database/sql"

	"github.com/lib/pq"

	"sanisidro-college/app/models"
)

// GetCourseSections returns the section-block lists, optionally narrowed to a
// course and year.
func GetCourseSections(db *sql.DB, courseCode string, yearLevel int) ([]*models.CourseSection, error) {
	query := `SELECT id, course_code, year_level, section_blocks, created_at, updated_at
			  FROM course_sections WHERE 1=1`
	args := []interface{}{}
	if courseCode != "" {
		args = append(args, courseCode)
		query += ` AND course_code = $1`
	}
	if yearLevel > 0 {
		args = append(args, yearLevel)
		if len(args) == 1 {
			query += ` AND year_level = $1`
		} else {
			query += ` AND year_level = $2`
		}
	}
	query += ` ORDER BY course_code, year_level`

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sections []*models.CourseSection
	for rows.Next() {
		section := &models.CourseSection{}
		if err := rows.Scan(
			&section.ID, &section.CourseCode, &section.YearLevel,
			pq.Array(&section.SectionBlocks), &section.CreatedAt, &section.UpdatedAt,
		); err != nil {
			return nil, err
		}
		sections = append(sections, section)
	}
	return sections, rows.Err()
}

// AddSectionBlock appends a block name to a course+year's list with a single
// atomic array update, creating the row if needed. Concurrent admin edits
// compose instead of clobbering each other.
func AddSectionBlock(db *sql.DB, courseCode string, yearLevel int, block string) (*models.CourseSection, error) {
	section := &models.CourseSection{}
	err := db.QueryRow(
		`INSERT INTO course_sections (course_code, year_level, section_blocks, created_at, updated_at)
		 VALUES ($1, $2, ARRAY[$3]::text[], NOW(), NOW())
		 ON CONFLICT (course_code, year_level) DO UPDATE
		 SET section_blocks = (
				 CASE WHEN $3 = ANY(course_sections.section_blocks)
					  THEN course_sections.section_blocks
					  ELSE array_append(course_sections.section_blocks, $3)
				 END),
			 updated_at = NOW()
		 RETURNING id, course_code, year_level, section_blocks, created_at, updated_at`,
		courseCode, yearLevel, block,
	).Scan(
		&section.ID, &section.CourseCode, &section.YearLevel,
		pq.Array(&section.SectionBlocks), &section.CreatedAt, &section.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return section, nil
}

// RemoveSectionBlock removes a block name with a single atomic array update.
func RemoveSectionBlock(db *sql.DB, courseCode string, yearLevel int, block string) (*models.CourseSection, error) {
	section := &models.CourseSection{}
	err := db.QueryRow(
		`UPDATE course_sections
		 SET section_blocks = array_remove(section_blocks, $3), updated_at = NOW()
		 WHERE course_code = $1 AND year_level = $2
		 RETURNING id, course_code, year_level, section_blocks, created_at, updated_at`,
		courseCode, yearLevel, block,
	).Scan(
		&section.ID, &section.CourseCode, &section.YearLevel,
		pq.Array(&section.SectionBlocks), &section.CreatedAt, &section.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return section, nil
}
