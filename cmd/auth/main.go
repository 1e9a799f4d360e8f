// snapvault-auth is the authentication service of the SnapVault photo
// sharing backend. All configuration comes from the environment; see
// internal/auth/app.LoadConfig for the variables it reads.
package main

import (
	"log"

	"github.com/snapvault/snapvault/internal/auth/app"
)

func main() {
	application, err := app.New(app.LoadConfig())
	if err != nil {
		log.Fatalf("snapvault-auth: init: %v", err)
	}

	if err := application.Run(); err != nil {
		log.Fatalf("snapvault-auth: %v", err)
	}
}
