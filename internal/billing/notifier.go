package billing

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"gestor-backend/internal/database"
	"gestor-backend/internal/models"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Limite do fan-out de consultas por aluno
const maxConcurrentLookups = 8

// Notifier roda a verificação de vencimentos na subida do servidor e
// depois a cada intervalo (30 minutos por padrão). Cada aluno em
// dueSoon/overdue gera uma Notification; o índice único por
// (aluno, vencimento do ciclo) garante que o mesmo ciclo não é
// notificado duas vezes entre execuções.
type Notifier struct {
	Interval time.Duration
}

func NewNotifier(interval time.Duration) *Notifier {
	return &Notifier{Interval: interval}
}

// Run bloqueia até o contexto ser cancelado
func (n *Notifier) Run(ctx context.Context) {
	log.Printf("Worker de cobrança iniciado (intervalo %s)", n.Interval)

	if err := n.CheckAll(ctx); err != nil {
		log.Printf("Verificação inicial de vencimentos falhou: %v", err)
	}

	ticker := time.NewTicker(n.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("Worker de cobrança encerrado")
			return
		case <-ticker.C:
			if err := n.CheckAll(ctx); err != nil {
				log.Printf("Verificação de vencimentos falhou: %v", err)
			}
		}
	}
}

// CheckAll avalia todos os alunos e grava as notificações pendentes
func (n *Notifier) CheckAll(ctx context.Context) error {
	var clients []models.Client
	if err := database.DB.WithContext(ctx).Find(&clients).Error; err != nil {
		return fmt.Errorf("não foi possível carregar os alunos: %w", err)
	}

	now := time.Now()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentLookups)

	for _, client := range clients {
		client := client
		g.Go(func() error {
			st, err := EvaluateClient(gctx, client.ID, now)
			if err != nil {
				return err
			}

			if st.State != StateDueSoon && st.State != StateOverdue {
				return nil
			}

			return recordNotification(gctx, client, st)
		})
	}

	return g.Wait()
}

// EvaluateClient busca o último pagamento do aluno e classifica o status
func EvaluateClient(ctx context.Context, clientID uint, now time.Time) (DueStatus, error) {
	var last models.Payment
	err := database.DB.WithContext(ctx).
		Where("client_id = ?", clientID).
		Order("date DESC").
		First(&last).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return DueStatus{State: StateNoRecord}, nil
	}
	if err != nil {
		return DueStatus{}, fmt.Errorf("não foi possível buscar o último pagamento do aluno %d: %w", clientID, err)
	}

	return Status(last.Date, now), nil
}

func recordNotification(ctx context.Context, client models.Client, st DueStatus) error {
	var message string
	if st.State == StateDueSoon {
		message = fmt.Sprintf("Pagamento de %s vence em %d dia(s).", client.Name, st.DaysRemaining)
	} else {
		message = fmt.Sprintf("Pagamento de %s está atrasado!", client.Name)
	}

	notif := models.Notification{
		ClientID: client.ID,
		CycleDue: st.DueDate,
		State:    models.NotificationState(st.State),
		Message:  message,
	}

	// Ciclo já notificado vira no-op
	err := database.DB.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&notif).Error
	if err != nil {
		return fmt.Errorf("não foi possível gravar a notificação do aluno %d: %w", client.ID, err)
	}

	return nil
}

// EvaluateAll devolve o status de todos os alunos, com uma consulta por
// aluno em paralelo (fan-out limitado, fan-in pelo errgroup)
func EvaluateAll(ctx context.Context, clients []models.Client, now time.Time) (map[uint]DueStatus, error) {
	results := make(map[uint]DueStatus, len(clients))
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentLookups)

	for _, client := range clients {
		client := client
		g.Go(func() error {
			st, err := EvaluateClient(gctx, client.ID, now)
			if err != nil {
				return err
			}
			mu.Lock()
			results[client.ID] = st
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}
