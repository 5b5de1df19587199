package main

import (
	"doctor-directory/cmd/bootstrap"

	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
)

func main() {
	configPath := pflag.String("config", ".env", "path to the .env configuration file")
	migrate := pflag.Bool("migrate", false, "apply database migrations before serving")
	pflag.Parse()

	app, err := bootstrap.New(bootstrap.Options{
		ConfigPath: *configPath,
		Migrate:    *migrate,
	})
	if err != nil {
		logrus.Fatalf("Failed to initialize application: %v", err)
	}

	app.Run()
}
