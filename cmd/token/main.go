// token emite un JWT firmado con JWT_SECRET para llamar a la API desde scripts o pruebas manuales.
//
// Uso: go run ./cmd/token -user planner@vti -role planner [-company VTI] [-ttl 8h]
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/hongquyngo/vti-gap-analysis/pkg/config"
	"github.com/hongquyngo/vti-gap-analysis/pkg/jwt"
)

func main() {
	user := flag.String("user", "", "user_id del token (obligatorio)")
	company := flag.String("company", "", "company_id del token")
	role := flag.String("role", "viewer", "admin | planner | viewer")
	ttl := flag.Duration("ttl", 0, "vigencia; 0 = JWT_EXPIRATION_MINUTES")
	flag.Parse()

	if *user == "" {
		fmt.Fprintln(os.Stderr, "falta -user")
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	if *ttl == 0 {
		*ttl = time.Duration(cfg.JWT.Expiration) * time.Minute
	}

	tok, err := jwt.Generate(cfg.JWT.Secret, jwt.Identity{
		UserID:    *user,
		CompanyID: *company,
		Role:      *role,
	}, cfg.JWT.Issuer, *ttl)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Generar token: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(tok)
}
