package server

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	// Load env file into environments.
	_ "github.com/joho/godotenv/autoload"

	"skillsync-backend/internal/controller/file"
	"skillsync-backend/internal/database"
	"skillsync-backend/internal/mailer"
)

// MyServer contain port which server are running on and shared dependencies
type MyServer struct {
	port int

	DB     *database.DBinstanceStruct
	Mailer *mailer.Mailer
	Files  *file.Store
}

// NewServer construct new Server instance
func NewServer() *http.Server {
	port, _ := strconv.Atoi(os.Getenv("PORT"))
	if port == 0 {
		port = 8080
	}

	db, err := database.GetMainDB()
	if err != nil {
		log.Fatalf("Database failed to initialize: %s", err)
	}

	var storageClient file.StorageClient
	if bucket := os.Getenv("GCS_BUCKET_NAME"); bucket != "" {
		client, err := file.NewCloudStorageClient(bucket)
		if err != nil {
			log.Fatalf("Cloud storage failed to initialize: %s", err)
		}
		storageClient = client
	} else {
		log.Println("GCS_BUCKET_NAME not set, storing uploads in the database")
	}

	s := &MyServer{
		port:   port,
		DB:     db,
		Mailer: mailer.NewFromEnv(),
		Files:  file.NewStore(db, storageClient),
	}

	// Declare Server config
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.port),
		Handler:      s.RegisterRoutes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	return server
}
