// Команда makesuperuser создает суперпользователя по номеру телефона
// и паролю, запрошенным из стандартного ввода.
package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/ravshanbekov/auth-gateway/internal/config"
	"github.com/ravshanbekov/auth-gateway/internal/lib/password"
	"github.com/ravshanbekov/auth-gateway/internal/models"
	"github.com/ravshanbekov/auth-gateway/internal/storage"
)

func waitForDB(db *storage.Storage) error {
	for range 10 {
		err := storage.CheckDatabaseReady(db)
		if err == nil {
			return nil
		}
		time.Sleep(3 * time.Second)
	}
	return fmt.Errorf("database not ready after retries")
}

func main() {
	cfg := config.MustLoad()

	db, err := storage.New(cfg.StorageConnectionString)
	if err != nil {
		log.Fatalf("failed to init storage: %v", err)
	}
	defer func() {
		_ = db.DB.Close()
	}()

	// Миграции применяет основное приложение, ждем готовую схему.
	if err := waitForDB(db); err != nil {
		log.Fatalf("database is not ready: %v", err)
	}

	reader := bufio.NewReader(os.Stdin)

	fmt.Print("Enter a phone number: ")
	phoneNumber, err := reader.ReadString('\n')
	if err != nil {
		log.Fatalf("failed to read phone number: %v", err)
	}
	phoneNumber = strings.TrimSpace(phoneNumber)
	if phoneNumber == "" {
		log.Fatal("phone number must not be empty")
	}

	fmt.Print("Enter a password: ")
	rawPassword, err := reader.ReadString('\n')
	if err != nil {
		log.Fatalf("failed to read password: %v", err)
	}
	rawPassword = strings.TrimSpace(rawPassword)
	if len(rawPassword) < 6 {
		log.Fatal("password must be at least 6 characters")
	}

	hash, err := password.Hash(rawPassword)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	user := models.User{
		PhoneNumber:  &phoneNumber,
		Role:         models.RoleSuperuser,
		PasswordHash: hash,
	}
	id, err := db.CreateUser(context.Background(), user)
	if err != nil {
		log.Fatalf("failed to create superuser: %v", err)
	}

	log.Printf("superuser created with id %d", id)
}
