package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/vismithaN/advertisement/internal/shared/auth"
	"github.com/vismithaN/advertisement/internal/shared/config"
)

func main() {
	subject := flag.String("subject", "ops-dashboard", "Token subject")
	role := flag.String("role", "OPS", "Role (OPS|ADMIN)")
	flag.Parse()

	cfg := config.Load()
	jwtService := auth.NewJWTService(cfg.JWT)

	token, err := jwtService.GenerateToken(*subject, *role)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error generating JWT token: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("\n✅ JWT Token generated successfully!\n\n")
	fmt.Printf("Subject:   %s\n", *subject)
	fmt.Printf("Role:      %s\n", *role)
	fmt.Printf("\nToken:\n%s\n", token)
	fmt.Printf("\n📋 Copy this for API requests:\n")
	fmt.Printf("Authorization: Bearer %s\n", token)
	fmt.Printf("\n💡 Example curl:\n")
	fmt.Printf("curl http://localhost:3002/api/v1/riders/1 \\\n")
	fmt.Printf("  -H 'Authorization: Bearer %s'\n\n", token)
}
