package services

import (
	"fmt"
	"time"

	"github.com/brunodev185/pedidos-cine/models"
	"github.com/brunodev185/pedidos-cine/utils"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RequestService é a máquina de estados dos pedidos de conteúdo.
// Cada transição roda em uma transação: mutação do pedido + sync do
// mirror (user_requests) + evento de outbox. A entrega de notificação
// fica fora da transação, a cargo do EventMonitor/Dispatcher.
type RequestService struct {
	DB *gorm.DB
}

func NewRequestService(db *gorm.DB) *RequestService {
	return &RequestService{DB: db}
}

type SubmitInput struct {
	Title    string
	Type     string
	Logo     string
	Notes    string
	Username string
}

// Submit -> cria o pedido com status Pendente. Pedidos anônimos
// (sem username) não geram mirror nem notificação.
func (rs *RequestService) Submit(in SubmitInput) (*models.ContentRequest, error) {
	now := time.Now()
	req := models.ContentRequest{
		ID:          uuid.New().String(),
		Title:       in.Title,
		Type:        in.Type,
		Status:      models.StatusPendente,
		RequestedAt: now,
	}
	if in.Logo != "" {
		req.Logo = &in.Logo
	}
	if in.Notes != "" {
		req.Notes = &in.Notes
	}
	if in.Username != "" {
		req.Username = &in.Username
	}

	err := rs.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&req).Error; err != nil {
			return err
		}
		if in.Username == "" {
			return nil
		}
		mirror := models.UserRequest{
			ID:           uuid.New().String(),
			UserID:       in.Username,
			RequestID:    req.ID,
			RequestTitle: req.Title,
			Status:       models.StatusPendente,
			RequestedAt:  now,
		}
		if err := tx.Create(&mirror).Error; err != nil {
			return err
		}
		return rs.appendEvent(tx, models.RequestEvent{
			EventType:    models.EventRequestSubmitted,
			RequestID:    req.ID,
			UserID:       in.Username,
			RequestTitle: req.Title,
			Status:       models.StatusPendente,
		})
	})
	if err != nil {
		return nil, err
	}
	return &req, nil
}

// MarkAdded -> Pendente/Comunicado => Adicionado, com categoria
// obrigatória e observação opcional.
func (rs *RequestService) MarkAdded(id, category, observation string) (*models.ContentRequest, error) {
	if category == "" {
		return nil, fmt.Errorf("categoria é obrigatória")
	}

	req, err := rs.find(id)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	updates := map[string]interface{}{
		"status":            models.StatusAdicionado,
		"added_to_category": category,
		"updated_at":        now,
	}
	if observation != "" {
		updates["added_observation"] = observation
	}

	err = rs.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(req).Updates(updates).Error; err != nil {
			return err
		}
		if err := rs.syncMirror(tx, req.ID, updates); err != nil {
			return err
		}
		if req.Username == nil {
			return nil
		}
		return rs.appendEvent(tx, models.RequestEvent{
			EventType:    models.EventRequestAdded,
			RequestID:    req.ID,
			UserID:       *req.Username,
			RequestTitle: req.Title,
			Category:     category,
			Status:       models.StatusAdicionado,
		})
	})
	if err != nil {
		return nil, err
	}
	return rs.find(id)
}

// MarkCommunicated -> registra um comunicado sobre o pedido.
func (rs *RequestService) MarkCommunicated(id, message string) (*models.ContentRequest, error) {
	if message == "" {
		return nil, fmt.Errorf("mensagem é obrigatória")
	}

	req, err := rs.find(id)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	updates := map[string]interface{}{
		"status":               models.StatusComunicado,
		"communicated_message": message,
		"communicated_at":      now,
		"updated_at":           now,
	}

	err = rs.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(req).Updates(updates).Error; err != nil {
			return err
		}
		if err := rs.syncMirror(tx, req.ID, updates); err != nil {
			return err
		}
		if req.Username == nil {
			return nil
		}
		return rs.appendEvent(tx, models.RequestEvent{
			EventType:    models.EventRequestCommunicated,
			RequestID:    req.ID,
			UserID:       *req.Username,
			RequestTitle: req.Title,
			Message:      message,
			Status:       models.StatusComunicado,
		})
	})
	if err != nil {
		return nil, err
	}
	return rs.find(id)
}

// ResetToPending -> volta para Pendente e limpa a categoria.
// Observação e comunicado anteriores ficam como histórico.
func (rs *RequestService) ResetToPending(id string) (*models.ContentRequest, error) {
	req, err := rs.find(id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{
		"status":            models.StatusPendente,
		"added_to_category": nil,
		"updated_at":        time.Now(),
	}

	err = rs.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(req).Updates(updates).Error; err != nil {
			return err
		}
		if err := rs.syncMirror(tx, req.ID, updates); err != nil {
			return err
		}
		if req.Username == nil {
			return nil
		}
		return rs.appendEvent(tx, models.RequestEvent{
			EventType:    models.EventRequestPending,
			RequestID:    req.ID,
			UserID:       *req.Username,
			RequestTitle: req.Title,
			Status:       models.StatusPendente,
		})
	})
	if err != nil {
		return nil, err
	}
	return rs.find(id)
}

// UpdateObservation -> edita a observação sem mudar status e sem
// gerar notificação.
func (rs *RequestService) UpdateObservation(id, observation string) (*models.ContentRequest, error) {
	req, err := rs.find(id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{
		"added_observation": observation,
		"updated_at":        time.Now(),
	}

	err = rs.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(req).Updates(updates).Error; err != nil {
			return err
		}
		return rs.syncMirror(tx, req.ID, updates)
	})
	if err != nil {
		return nil, err
	}
	return rs.find(id)
}

// Delete -> remove o pedido e todas as linhas do mirror; o dono
// recebe um comunicado de exclusão.
func (rs *RequestService) Delete(id string) error {
	req, err := rs.find(id)
	if err != nil {
		return err
	}

	return rs.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.ContentRequest{}, "id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Delete(&models.UserRequest{}, "request_id = ?", id).Error; err != nil {
			return err
		}
		if req.Username == nil {
			return nil
		}
		return rs.appendEvent(tx, models.RequestEvent{
			EventType:    models.EventRequestDeleted,
			RequestID:    req.ID,
			UserID:       *req.Username,
			RequestTitle: req.Title,
		})
	})
}

// DeleteUserRequest -> exclusão pelo próprio dono: remove o mirror e
// o pedido de origem, sem notificação.
func (rs *RequestService) DeleteUserRequest(userID, requestID string) error {
	var mirror models.UserRequest
	if err := rs.DB.Where("request_id = ? AND user_id = ?", requestID, userID).
		First(&mirror).Error; err != nil {
		return err
	}

	return rs.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.UserRequest{}, "request_id = ?", requestID).Error; err != nil {
			return err
		}
		// O pedido de origem pode já ter sido removido pelo admin
		return tx.Delete(&models.ContentRequest{}, "id = ?", requestID).Error
	})
}

func (rs *RequestService) find(id string) (*models.ContentRequest, error) {
	var req models.ContentRequest
	if err := rs.DB.First(&req, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &req, nil
}

// syncMirror aplica as mesmas mudanças na linha do mirror. Linha
// ausente (pedido anônimo) é aviso, não erro.
func (rs *RequestService) syncMirror(tx *gorm.DB, requestID string, updates map[string]interface{}) error {
	res := tx.Model(&models.UserRequest{}).
		Where("request_id = ?", requestID).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 && utils.InfoLogger != nil {
		utils.InfoLogger.Printf("Nenhuma linha em user_requests para request %s", requestID)
	}
	return nil
}

func (rs *RequestService) appendEvent(tx *gorm.DB, ev models.RequestEvent) error {
	ev.CreatedAt = time.Now()
	return tx.Create(&ev).Error
}
