package services

import (
	"database/sql"
	"log"
	"time"

	"sanisidro-college/app/database"
)

// Pending enrollments untouched for this long are flipped to expired.
const staleEnrollmentAge = 14 * 24 * time.Hour

// StartScheduler starts the background task scheduler
func StartScheduler(db *sql.DB) {
	go func() {
		log.Println("Scheduler started...")
		ticker := time.NewTicker(1 * time.Minute)
		defer ticker.Stop()

		for range ticker.C {
			now := time.Now()

			// Trigger at 1:30 AM, outside office hours
			if now.Hour() == 1 && now.Minute() == 30 {
				log.Println("Triggering scheduled tasks [01:30]...")

				if err := ExpireStalePendingEnrollments(db); err != nil {
					log.Printf("Error expiring stale enrollments: %v", err)
				}

				if count, err := database.DeleteExpiredSessions(db); err != nil {
					log.Printf("Error deleting expired sessions: %v", err)
				} else if count > 0 {
					log.Printf("Deleted %d expired sessions", count)
				}
			}
		}
	}()
}

// ExpireStalePendingEnrollments flips pending enrollments past the stale
// cutoff so the registrar's queue doesn't accumulate abandoned submissions.
func ExpireStalePendingEnrollments(db *sql.DB) error {
	count, err := database.ExpireStaleEnrollments(db, staleEnrollmentAge)
	if err != nil {
		return err
	}
	if count > 0 {
		log.Printf("Expired %d stale pending enrollments", count)
	}
	return nil
}
