// Command api runs the SkillSync HTTP server.
package main

import (
	"log"

	"skillsync-backend/internal/server"
)

// @title SkillSync API
// @version 1.0
// @description Backend API for the SkillSync job board.
// @BasePath /api/v1
func main() {
	srv := server.NewServer()

	log.Printf("Listening on %s", srv.Addr)
	if err := srv.ListenAndServe(); err != nil {
		log.Fatalf("cannot start server: %s", err)
	}
}
