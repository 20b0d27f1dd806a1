package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/term"

	"financas/internal/config"
	"financas/internal/models"
	"financas/internal/services/assistant"
	"financas/internal/services/ledger"
	"financas/internal/services/storage"
	"financas/internal/version"

	assistanthandlers "financas/internal/handlers/assistant"
	"financas/internal/handlers/dashboard"
	"financas/internal/handlers/goals"

	apphttp "financas/internal/http"
)

var (
	store     *storage.Store
	mutations *ledger.Service
	session   *assistant.Session
)

func main() {
	encrypt := flag.Bool("encrypt", false, "Encrypt the data directory and exit")
	decrypt := flag.Bool("decrypt", false, "Decrypt the data directory and exit")
	flag.Parse()

	cfg := config.Load()
	log.Printf("Starting Finanças %s on %s", version.Get(), cfg.ListenAddr)
	log.Printf("Data directory: %s", cfg.DataDirectory)

	var err error
	store, err = storage.New(cfg.DataDirectory)
	if err != nil {
		log.Fatalf("Could not open data directory: %v", err)
	}

	if *encrypt || *decrypt {
		runMigration(store, *encrypt)
		return
	}

	if store.IsEncrypted() {
		if err := unlock(store); err != nil {
			log.Fatalf("Could not unlock data directory: %v", err)
		}
		log.Printf("Data directory unlocked")
	}

	if err := SetupDependencies(cfg); err != nil {
		log.Fatalf("Could not set up dependencies: %v", err)
	}

	r := SetupRouter()

	log.Printf("Server starting on %s", cfg.ListenAddr)
	log.Fatal(http.ListenAndServe(cfg.ListenAddr, r))
}

// SetupDependencies wires the services and handler packages. The store
// must already be open (and unlocked when encrypted).
func SetupDependencies(cfg *config.Config) error {
	mutations = ledger.NewService(store)

	session = assistant.NewSession(func() (*assistant.Data, error) {
		return &assistant.Data{
			Transactions: models.NewTransactionSet(store.LoadTransactions()),
			Dreams:       store.LoadDreams(),
			Journey:      store.LoadJourney(),
			Retirement:   store.LoadRetirement(),
		}, nil
	})
	session.SetDelay(cfg.AssistantReplyDelay)

	dashboard.Initialize(store, mutations)
	goals.Initialize(store, mutations)
	assistanthandlers.Initialize(session)

	return nil
}

// SetupRouter builds the chi router with all routes and middleware
func SetupRouter() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))

	dashboard.RegisterRoutes(r)
	goals.RegisterRoutes(r)
	assistanthandlers.RegisterRoutes(r)

	r.Get("/api/health", handleHealth)

	return r
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	apphttp.JSONResponse(w, http.StatusOK, map[string]interface{}{
		"status":  "ok",
		"version": version.Get(),
	})
}

// unlock obtains the password from the environment or an interactive
// prompt and unlocks the store
func unlock(store *storage.Store) error {
	if password := os.Getenv("FINANCAS_PASSWORD"); password != "" {
		return store.Unlock(password)
	}

	for attempts := 0; attempts < 3; attempts++ {
		password, err := promptPassword("Data directory is encrypted. Password: ")
		if err != nil {
			return err
		}
		if err := store.Unlock(password); err != nil {
			fmt.Fprintf(os.Stderr, "Wrong password, try again.\n")
			continue
		}
		return nil
	}
	return fmt.Errorf("too many failed attempts")
}

func promptPassword(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)
	password, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	return string(password), nil
}

// runMigration enables or disables encryption of the data directory
func runMigration(store *storage.Store, enable bool) {
	if enable && store.IsEncrypted() {
		log.Fatal("Data directory is already encrypted")
	}
	if !enable && !store.IsEncrypted() {
		log.Fatal("Data directory is not encrypted")
	}

	password, err := promptPassword("Password: ")
	if err != nil {
		log.Fatalf("Could not read password: %v", err)
	}

	if enable {
		confirm, err := promptPassword("Confirm password: ")
		if err != nil {
			log.Fatalf("Could not read password: %v", err)
		}
		if confirm != password {
			log.Fatal("Passwords do not match")
		}
		if err := store.EnableEncryption(password); err != nil {
			log.Fatalf("Encryption failed: %v", err)
		}
		log.Printf("Data directory encrypted")
		return
	}

	if err := store.DisableEncryption(password); err != nil {
		log.Fatalf("Decryption failed: %v", err)
	}
	log.Printf("Data directory decrypted")
}
