package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/nmurthy/posecam/internal/app"
	"github.com/nmurthy/posecam/internal/backend"
	"github.com/nmurthy/posecam/internal/server"
	"github.com/nmurthy/posecam/internal/store"
	"github.com/nmurthy/posecam/internal/tray"
)

func main() {
	fmt.Println("Posecam - Webcam Pose Estimation")

	// Initialize the store
	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Fatalf("Failed to get home directory: %v", err)
	}

	dbDir := filepath.Join(homeDir, ".posecam")
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		log.Fatalf("Failed to create data directory: %v", err)
	}

	dbPath := filepath.Join(dbDir, "posecam.db")
	st, err := store.New(dbPath)
	if err != nil {
		log.Fatalf("Failed to initialize store: %v", err)
	}
	defer st.Close()

	application := app.New(app.Config{
		Store: st,
	})

	// Accelerated delegates are opt-in: registering one that the device
	// lacks makes every selection of it fail instead of falling back.
	if os.Getenv("POSECAM_ENABLE_GPU") != "" {
		application.RegisterBackend(backend.NewDelegateFactory("gpu"))
	}
	if os.Getenv("POSECAM_ENABLE_NPU") != "" {
		application.RegisterBackend(backend.NewDelegateFactory("npu"))
	}

	if err := application.LoadPersistedConfig(); err != nil {
		log.Printf("Failed to load persisted config: %v", err)
	}

	if err := application.Start(); err != nil {
		log.Fatalf("Failed to start pipeline: %v", err)
	}
	defer application.Stop()
	application.SetEnabled(true)

	// Find web directory
	webDir := findWebDir()
	if webDir != "" {
		fmt.Printf("Serving static files from: %s\n", webDir)
	}

	srv := server.New(server.Config{
		StaticDir: webDir,
		Store:     st,
		App:       application,
	})

	addr := ":8080"
	go func() {
		fmt.Printf("Starting server on %s\n", addr)
		if err := srv.ListenAndServe(addr); err != nil {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	tr := tray.New()
	application.OnWarning(func(msg string) {
		tr.ShowNotice(msg)
	})
	tr.OnToggle(func(enabled bool) {
		application.SetEnabled(enabled)
	})
	tr.OnBackend(func(spec string) {
		if err := application.SetBackendAndFlags(context.Background(), nil, spec); err != nil {
			log.Printf("Backend switch failed: %v", err)
			return
		}
		tr.SetBackend(application.ConfigSnapshot().Backend)
	})
	tr.OnPanel(func() {
		log.Printf("Option panel available at http://localhost%s", addr)
	})
	tr.OnQuit(func() {
		application.Stop()
	})

	// Blocks until quit is selected from the tray menu.
	tr.Run()
}

// findWebDir searches for the web directory in common locations.
// It checks: "web", "../web", "../../web", and ~/.posecam/web.
// Returns the first existing directory or empty string if none found.
func findWebDir() string {
	// Check relative paths from current working directory
	relativePaths := []string{"web", "../web", "../../web"}
	for _, p := range relativePaths {
		if info, err := os.Stat(p); err == nil && info.IsDir() {
			absPath, err := filepath.Abs(p)
			if err == nil {
				return absPath
			}
			return p
		}
	}

	// Check home directory
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	homeWebDir := filepath.Join(homeDir, ".posecam", "web")
	if info, err := os.Stat(homeWebDir); err == nil && info.IsDir() {
		return homeWebDir
	}

	return ""
}
