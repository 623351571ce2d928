package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"sanisidro-college/app/config"
	"sanisidro-college/app/database"
	"sanisidro-college/app/routes/auth"
)

// Creates a staff account from the command line. Intended for bootstrapping
// the first admin and for adding registrar/scheduler accounts without going
// through the API.
func main() {
	email := flag.String("email", "", "account email (required)")
	password := flag.String("password", "", "initial password (required)")
	firstName := flag.String("first", "", "first name")
	lastName := flag.String("last", "", "last name")
	roles := flag.String("roles", "admin", "comma-separated roles (admin,registrar,scheduler,teacher)")
	flag.Parse()

	if *email == "" || *password == "" {
		flag.Usage()
		os.Exit(2)
	}

	config.InitDB()
	db := config.GetDB()
	defer db.Close()

	hashed, err := auth.HashPassword(*password)
	if err != nil {
		fmt.Printf("Error hashing password: %v\n", err)
		os.Exit(1)
	}

	roleNames := []string{}
	for _, r := range strings.Split(*roles, ",") {
		if r = strings.TrimSpace(r); r != "" {
			roleNames = append(roleNames, r)
		}
	}

	userID, err := database.CreateUser(db, *email, hashed, *firstName, *lastName, roleNames)
	if err != nil {
		fmt.Printf("Error creating user: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("User created successfully: %s (%s) roles=%s\n", *email, userID, strings.Join(roleNames, ","))
}
