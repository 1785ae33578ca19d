package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/yungbote/storefront-backend/internal/http/schema"
	"github.com/yungbote/storefront-backend/internal/platform/authjwt"
	"github.com/yungbote/storefront-backend/internal/platform/envutil"
	"github.com/yungbote/storefront-backend/internal/platform/logger"
)

func main() {
	var username string
	var ttl time.Duration
	flag.StringVar(&username, "user", "", "staff username to embed as the token subject")
	flag.DurationVar(&ttl, "ttl", 0, "token lifetime (defaults to ADMIN_TOKEN_TTL)")
	flag.Parse()

	log, err := logger.New("production")
	if err != nil {
		fmt.Printf("init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	secret := envutil.String("ADMIN_JWT_SECRET", "", log)
	if ttl <= 0 {
		ttl = envutil.Duration("ADMIN_TOKEN_TTL", 12*time.Hour, log)
	}
	if err := mint(os.Stdout, secret, username, ttl); err != nil {
		log.Error("mint staff token", "error", err)
		os.Exit(1)
	}
}

func mint(out io.Writer, secret, username string, ttl time.Duration) error {
	signer, err := authjwt.NewSigner(secret, ttl)
	if err != nil {
		return err
	}
	token, exp, err := signer.Sign(username)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(schema.AdminTokenResponse{Token: token, ExpiresAt: exp.UTC()})
}
