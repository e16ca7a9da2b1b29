// Command tokengen mints an API bearer token signed with the configured JWT secret.
//
//	JWT_SECRET=... go run ./cmd/tokengen -subject clinic-frontend
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/jengzang/heart-risk-backend-go/internal/auth"
	"github.com/jengzang/heart-risk-backend-go/internal/config"
	"github.com/jengzang/heart-risk-backend-go/pkg/logger"
)

func main() {
	subject := flag.String("subject", "", "token subject, recorded with each prediction")
	scope := flag.String("scope", "", "optional scope claim")
	ttl := flag.Duration("ttl", 0, "token lifetime, defaults to JWT_TTL_MINUTES")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	logger.Init(cfg.AppName, "WARN")

	if *subject == "" {
		flag.Usage()
		os.Exit(2)
	}
	lifetime := cfg.JWTTTL()
	if *ttl > 0 {
		lifetime = *ttl
	}

	svc, err := auth.NewJWTService(cfg.JWTSecret, lifetime)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize token service")
	}
	token, err := svc.GenerateToken(*subject, *scope)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to sign token")
	}

	fmt.Println(token)
	fmt.Fprintf(os.Stderr, "expires %s\n", time.Now().Add(lifetime).Format(time.RFC3339))
}
