package database

import (
	"log"

	"gestor-backend/internal/config"
	"gestor-backend/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Init(cfg *config.Config) {
	var err error

	DB, err = gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{})
	if err != nil {
		log.Fatalf("Não foi possível conectar ao banco: %v", err)
	}

	err = DB.AutoMigrate(
		&models.User{},
		&models.Client{},
		&models.Month{},
		&models.Payment{},
		&models.Expense{},
		&models.Notification{},
		&models.AuditLog{},
	)
	if err != nil {
		log.Fatalf("Erro no AutoMigrate: %v", err)
	}

	// AutoMigrate nem sempre cria a FK com cascade quando a tabela já existe
	if DB.Migrator().HasTable(&models.Payment{}) {
		DB.Exec("ALTER TABLE payments DROP CONSTRAINT IF EXISTS fk_clients_payments")
		if fkErr := DB.Exec(`
			ALTER TABLE payments
			ADD CONSTRAINT fk_clients_payments
			FOREIGN KEY (client_id) REFERENCES clients(id) ON DELETE CASCADE
		`).Error; fkErr != nil {
			log.Printf("Erro ao recriar constraint de payments (pode já existir): %v", fkErr)
		}
	}

	if DB.Migrator().HasTable(&models.Notification{}) {
		DB.Exec("ALTER TABLE notifications DROP CONSTRAINT IF EXISTS fk_clients_notifications")
		if fkErr := DB.Exec(`
			ALTER TABLE notifications
			ADD CONSTRAINT fk_clients_notifications
			FOREIGN KEY (client_id) REFERENCES clients(id) ON DELETE CASCADE
		`).Error; fkErr != nil {
			log.Printf("Erro ao recriar constraint de notifications (pode já existir): %v", fkErr)
		}
	}

	log.Println("Conexão com o banco ok. Migration concluída.")
}
