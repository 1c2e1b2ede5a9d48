package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"inventario-backend/internal/auth"
	"inventario-backend/internal/config"
)

// Bot ve yönetici istemcileri için JWT üretir:
//
//	go run ./cmd/token -client whatsapp-bot -role bot -ttl 720h
func main() {
	client := flag.String("client", "whatsapp-bot", "token'ı kullanacak istemcinin adı")
	role := flag.String("role", string(auth.RoleBot), "bot veya admin")
	ttl := flag.Duration("ttl", 0, "geçerlilik süresi; 0 süresiz")
	flag.Parse()

	cfg := config.Load()
	if !cfg.AuthEnabled() {
		log.Fatal("JWT_SECRET tanımlı değil")
	}
	if len(cfg.JWTSecret) < 32 {
		log.Fatal("JWT_SECRET en az 32 karakter olmalı")
	}

	r, ok := auth.ParseRole(*role)
	if !ok {
		log.Fatalf("Bilinmeyen rol: %q", *role)
	}

	token, err := auth.GenerateToken(cfg.JWTSecret, *client, r, *ttl)
	if err != nil {
		log.Fatalf("Token üretilemedi: %v", err)
	}

	fmt.Fprintln(os.Stdout, token)
	if *ttl > 0 {
		fmt.Fprintf(os.Stderr, "son geçerlilik: %s\n", time.Now().Add(*ttl).Format(time.RFC3339))
	}
}
