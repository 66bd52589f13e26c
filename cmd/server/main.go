package main

import (
	"log"

	_ "workhub/docs"
	"workhub/internal/config"
	"workhub/internal/server"
)

// @title           Workhub API
// @version         1.0
// @description     Multi-tenant workspace platform with policy-based access control.

// @host      localhost:8080
// @BasePath  /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @schemes http
func main() {
	cfg := config.Load()

	s, err := server.Init(cfg)
	if err != nil {
		log.Fatalf("❌ Server initialization failed: %v", err)
	}

	s.Run()
}
