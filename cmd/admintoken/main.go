// Command admintoken mints a bearer token for the admin API.
package main

import (
	"fmt"
	"os"

	"doctor-directory/config"
	"doctor-directory/pkg/jwt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
)

func main() {
	configPath := pflag.String("config", ".env", "path to the .env configuration file")
	subject := pflag.String("subject", "", "operator name recorded in audit logs")
	ttl := pflag.Duration("ttl", 0, "token lifetime (defaults to ADMIN_TOKEN_EXPIRY)")
	pflag.Parse()

	if *subject == "" {
		fmt.Fprintln(os.Stderr, "--subject is required")
		pflag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	token, err := jwt.NewJWTService(cfg.AdminAuth).GenerateAdminToken(*subject, *ttl)
	if err != nil {
		logrus.Fatalf("Failed to generate token: %v", err)
	}

	fmt.Println(token)
}
