// Command create-admin provisions an admin account interactively.
package main

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"strings"

	_ "github.com/joho/godotenv/autoload"

	"skillsync-backend/internal/database"
)

func main() {
	fmt.Println("Generating admin account")

	reader := bufio.NewReader(os.Stdin)

	fmt.Print("Enter email: ")
	email, _ := reader.ReadString('\n')
	email = strings.TrimSpace(email)
	if email == "" {
		fmt.Println("Email must not be empty.")
		os.Exit(1)
	}

	fmt.Print("Enter password: ")
	password1, _ := reader.ReadString('\n')
	password1 = strings.TrimSpace(password1)

	fmt.Print("Confirm password: ")
	password2, _ := reader.ReadString('\n')
	password2 = strings.TrimSpace(password2)

	if password1 != password2 {
		fmt.Println("Passwords do not match.")
		os.Exit(1)
	}
	if len(password1) < 8 {
		fmt.Println("Password must be at least 8 characters.")
		os.Exit(1)
	}

	db, err := database.GetMainDB()
	if err != nil {
		log.Fatalf("Database failed to initialize: %v", err)
	}

	if err := database.EnsureAdmin(db.DB, email, password1); err != nil {
		log.Fatalf("Failed to create admin: %v", err)
	}

	fmt.Printf("Admin account %s is ready.\n", email)
}
