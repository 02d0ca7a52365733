// seed_store genera el script SQL para dar de alta una integración (tienda, POS) con su API key.
// El secreto se imprime una sola vez; en la base solo queda su hash bcrypt.
//
// Uso: go run ./cmd/seed_store -name "Tienda online" [-branch <branch_id>] [-out store.sql]
package main

import (
	"crypto/rand"
	"encoding/hex"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	name := flag.String("name", "", "nombre de la integración (obligatorio)")
	branch := flag.String("branch", "", "sucursal de la integración; vacío = sin sucursal")
	out := flag.String("out", "", "archivo SQL de salida; vacío = stdout")
	flag.Parse()

	if strings.TrimSpace(*name) == "" {
		fmt.Fprintln(os.Stderr, "-name es obligatorio")
		os.Exit(2)
	}

	secretBytes := make([]byte, 24)
	if _, err := rand.Read(secretBytes); err != nil {
		fmt.Fprintf(os.Stderr, "Generar secreto: %v\n", err)
		os.Exit(1)
	}
	secret := hex.EncodeToString(secretBytes)
	hash, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Hash bcrypt: %v\n", err)
		os.Exit(1)
	}
	storeID := uuid.New().String()

	branchSQL := "NULL"
	if *branch != "" {
		branchSQL = quote(*branch)
	}
	sql := fmt.Sprintf(
		"INSERT INTO stores (id, name, branch_id, api_key_hash, active) VALUES (%s, %s, %s, %s, true);\n",
		quote(storeID), quote(*name), branchSQL, quote(string(hash)),
	)

	if *out == "" {
		fmt.Print(sql)
	} else if err := os.WriteFile(*out, []byte(sql), 0o600); err != nil {
		fmt.Fprintf(os.Stderr, "Escribir %s: %v\n", *out, err)
		os.Exit(1)
	} else {
		fmt.Fprintf(os.Stderr, "Escrito: %s\n", *out)
	}
	fmt.Fprintf(os.Stderr, "X-API-Key: %s.%s\n", storeID, secret)
}

// quote escapa un literal SQL con comillas simples.
func quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
