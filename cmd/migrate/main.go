package main

import (
	"database/sql"
	"log"
	"os"

	"sanisidro-college/app/config"
	"sanisidro-college/app/database"
)

// Applies the built-in migrations, then any SQL files passed as arguments.
// Useful for one-off schema patches that have not been folded into
// RunMigrations yet.
func main() {
	log.Println("Running migrations...")

	config.InitDB()
	db := config.GetDB()
	defer db.Close()

	if err := database.RunMigrations(db); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	for _, path := range os.Args[1:] {
		executeSQLFile(db, path)
	}

	log.Println("Migrations completed successfully!")
}

func executeSQLFile(db *sql.DB, filePath string) {
	content, err := os.ReadFile(filePath)
	if err != nil {
		log.Printf("Skipping %s: %v", filePath, err)
		return
	}

	log.Printf("Executing %s...", filePath)
	if _, err := db.Exec(string(content)); err != nil {
		log.Printf("Error executing %s: %v", filePath, err)
	} else {
		log.Printf("Successfully executed %s", filePath)
	}
}
