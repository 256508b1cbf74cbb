package services

import (
	"log"
	"time"

	"github.com/brunodev185/pedidos-cine/hub"
	"github.com/brunodev185/pedidos-cine/models"
	"gorm.io/gorm"
)

// EventMonitor consome o outbox: busca eventos não processados em
// ordem, entrega ao Dispatcher e marca processed. Evento que falha
// fica para o próximo tick (at-least-once).
type EventMonitor struct {
	DB         *gorm.DB
	Dispatcher *Dispatcher
	StopChan   chan struct{}
	Interval   time.Duration
}

func NewEventMonitor(db *gorm.DB, dispatcher *Dispatcher) *EventMonitor {
	return &EventMonitor{
		DB:         db,
		Dispatcher: dispatcher,
		StopChan:   make(chan struct{}),
		Interval:   1 * time.Second,
	}
}

func (em *EventMonitor) Start() {
	go func() {
		ticker := time.NewTicker(em.Interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				em.ProcessPending()
			case <-em.StopChan:
				return
			}
		}
	}()
}

func (em *EventMonitor) Stop() {
	close(em.StopChan)
}

// ProcessPending -> um ciclo de consumo (exportado para os testes e
// para flush manual).
func (em *EventMonitor) ProcessPending() {
	var events []models.RequestEvent

	if err := em.DB.Where("processed = ?", false).
		Order("id ASC").
		Limit(100).
		Find(&events).Error; err != nil {
		log.Printf("Error fetching request events: %v", err)
		return
	}
	if len(events) == 0 {
		return
	}

	affected := make(map[string]bool)
	for _, ev := range events {
		if err := em.Dispatcher.HandleEvent(ev); err != nil {
			// Fica não processado e volta no próximo ciclo
			log.Printf("Error dispatching event %d (%s): %v", ev.ID, ev.EventType, err)
			continue
		}
		if err := em.DB.Model(&models.RequestEvent{}).
			Where("id = ?", ev.ID).
			Update("processed", true).Error; err != nil {
			log.Printf("Error marking event %d as processed: %v", ev.ID, err)
			continue
		}
		affected[ev.UserID] = true
	}

	if len(affected) > 0 {
		em.pushSnapshots(affected)
	}
}

// pushSnapshots reenvia as visões filtradas por usuário e a tabela
// completa do painel admin, no contrato de snapshot inteiro.
func (em *EventMonitor) pushSnapshots(userIDs map[string]bool) {
	var requests []models.ContentRequest
	if err := em.DB.Order("requested_at DESC").Find(&requests).Error; err == nil {
		hub.BroadcastRequestsSnapshot(requests)
	}

	for userID := range userIDs {
		var mirror []models.UserRequest
		if err := em.DB.Where("user_id = ?", userID).
			Order("requested_at DESC").
			Find(&mirror).Error; err == nil {
			hub.SendUserRequestsSnapshot(userID, mirror)
		}

		var notifs []models.Notification
		if err := em.DB.Where("user_id = ?", userID).
			Order("created_at DESC").
			Find(&notifs).Error; err == nil {
			hub.SendNotificationsSnapshot(userID, notifs)
		}
	}
}
