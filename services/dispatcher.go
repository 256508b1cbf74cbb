package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/brunodev185/pedidos-cine/hub"
	"github.com/brunodev185/pedidos-cine/models"
	"github.com/brunodev185/pedidos-cine/utils"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// UserDirectory devolve os ids de todos os usuários conhecidos,
// usado no broadcast de new_content.
type UserDirectory interface {
	ListUserIDs() ([]string, error)
}

// TokenProvider obtém um token novo quando o armazenado expirou.
type TokenProvider interface {
	RefreshToken(userID string) (string, error)
}

// PushSender é o canal de push (gateway FCM).
type PushSender interface {
	Send(token string, notif PushNotification) error
}

// Dispatcher traduz eventos do outbox em notificações: persiste o
// registro, empurra pelo hub e tenta push com retry de token. Falha
// de push nunca falha o evento; só o INSERT da notificação conta.
type Dispatcher struct {
	DB     *gorm.DB
	Push   PushSender
	Tokens TokenProvider
	Users  UserDirectory
}

func NewDispatcher(db *gorm.DB, push PushSender, tokens TokenProvider, users UserDirectory) *Dispatcher {
	return &Dispatcher{DB: db, Push: push, Tokens: tokens, Users: users}
}

// HandleEvent -> monta e entrega as notificações de um evento.
func (d *Dispatcher) HandleEvent(ev models.RequestEvent) error {
	switch ev.EventType {
	case models.EventRequestSubmitted, models.EventRequestPending:
		return d.dispatch(d.statusNotification(ev))

	case models.EventRequestAdded:
		if err := d.dispatch(d.addedNotification(ev)); err != nil {
			return err
		}
		d.broadcastNewContent(ev.UserID)
		return nil

	case models.EventRequestCommunicated:
		return d.dispatch(models.Notification{
			UserID: ev.UserID,
			Title:  "Comunicado sobre seu pedido",
			Body:   fmt.Sprintf("Recebemos uma comunicação sobre seu pedido %q: %s", ev.RequestTitle, ev.Message),
			Type:   models.NotifTypeCommunication,
			Data:   models.CommunicationData(ev.RequestID, ev.RequestTitle, ev.Message),
		})

	case models.EventRequestDeleted:
		return d.dispatch(models.Notification{
			UserID: ev.UserID,
			Title:  "Pedido Excluído",
			Body:   "Esse conteúdo já foi solicitado ou duplicado, refaça o pedido ou solicite outro!!!",
			Type:   models.NotifTypeCommunication,
			Data:   models.CommunicationData(ev.RequestID, ev.RequestTitle, "Pedido excluído por duplicação ou já solicitado"),
		})
	}

	return fmt.Errorf("tipo de evento desconhecido: %s", ev.EventType)
}

func (d *Dispatcher) statusNotification(ev models.RequestEvent) models.Notification {
	var title, body string
	switch ev.Status {
	case models.StatusPendente:
		title = "Pedido em Análise"
		body = fmt.Sprintf("Seu pedido %q está sendo analisado.", ev.RequestTitle)
	case models.StatusAdicionado:
		title = "Pedido Adicionado"
		body = fmt.Sprintf("Seu pedido %q foi adicionado com sucesso!", ev.RequestTitle)
	case models.StatusComunicado:
		title = "Comunicado sobre Pedido"
		body = fmt.Sprintf("Há uma comunicação sobre seu pedido %q.", ev.RequestTitle)
	}
	return models.Notification{
		UserID: ev.UserID,
		Title:  title,
		Body:   body,
		Type:   models.NotifTypeRequestStatus,
		Data:   models.RequestStatusData(ev.RequestID, ev.RequestTitle, ev.Status),
	}
}

func (d *Dispatcher) addedNotification(ev models.RequestEvent) models.Notification {
	body := fmt.Sprintf("Seu pedido %q foi adicionado. Confira agora!", ev.RequestTitle)
	if ev.Category != "" {
		body = fmt.Sprintf("Seu pedido %q foi adicionado na categoria %s. Confira agora!", ev.RequestTitle, ev.Category)
	}
	return models.Notification{
		UserID: ev.UserID,
		Title:  "Pedido Adicionado!",
		Body:   body,
		Type:   models.NotifTypeRequestAdded,
		Data:   models.RequestAddedData(ev.RequestID, ev.RequestTitle),
	}
}

// broadcastNewContent -> aviso genérico para todos os outros usuários.
// Fanout linear; falha de um destinatário não interrompe os demais.
func (d *Dispatcher) broadcastNewContent(ownerID string) {
	if d.Users == nil {
		return
	}
	userIDs, err := d.Users.ListUserIDs()
	if err != nil {
		utils.ErrorLogger.Printf("Erro ao listar usuários para broadcast: %v", err)
		return
	}
	for _, id := range userIDs {
		if id == ownerID {
			continue
		}
		if err := d.dispatch(models.Notification{
			UserID: id,
			Title:  "Novos Conteúdos Adicionados",
			Body:   "Novos pedidos foram adicionados. Confira as novidades!",
			Type:   models.NotifTypeNewContent,
			Data:   models.NewContentData(),
		}); err != nil {
			utils.ErrorLogger.Printf("Erro no broadcast new_content para %s: %v", id, err)
		}
	}
}

// dispatch persiste a notificação e dispara os dois canais de entrega.
func (d *Dispatcher) dispatch(n models.Notification) error {
	n.ID = uuid.New().String()
	n.CreatedAt = time.Now()

	if err := d.DB.Create(&n).Error; err != nil {
		return err
	}

	// Canal local: hub websocket, melhor esforço
	hub.SendNotification(n.UserID, n)

	// Canal push: melhor esforço, nunca propaga erro
	d.sendPush(n)

	return nil
}

func (d *Dispatcher) sendPush(n models.Notification) {
	if d.Push == nil {
		return
	}

	token := d.lookupToken(n.UserID)
	if token == "" {
		return
	}

	payload := pushPayload(n)
	err := d.Push.Send(token, payload)
	if err == nil {
		return
	}

	if !errors.Is(err, ErrInvalidToken) || d.Tokens == nil {
		utils.ErrorLogger.Printf("Erro ao enviar push para %s: %v", n.UserID, err)
		return
	}

	// Token expirado: obter um novo, persistir e tentar uma única vez
	newToken, refreshErr := d.Tokens.RefreshToken(n.UserID)
	if refreshErr != nil || newToken == "" {
		utils.ErrorLogger.Printf("Erro ao renovar token FCM de %s: %v", n.UserID, refreshErr)
		return
	}
	d.saveToken(n.UserID, newToken)

	if retryErr := d.Push.Send(newToken, payload); retryErr != nil {
		utils.ErrorLogger.Printf("Push falhou mesmo com token novo para %s: %v", n.UserID, retryErr)
	}
}

// lookupToken busca o token do próprio usuário. Sem registro não há
// push; o slot default é armazenamento pré-login, não canal de entrega.
func (d *Dispatcher) lookupToken(userID string) string {
	var rec models.FCMToken
	if err := d.DB.First(&rec, "user_id = ?", userID).Error; err != nil {
		return ""
	}
	return rec.Token
}

// saveToken sobrescreve o registro do usuário (last write wins).
func (d *Dispatcher) saveToken(userID, token string) {
	rec := models.FCMToken{
		UserID:      userID,
		Token:       token,
		LastUpdated: time.Now(),
	}
	if err := d.DB.Clauses(clause.OnConflict{UpdateAll: true}).Create(&rec).Error; err != nil {
		utils.ErrorLogger.Printf("Erro ao salvar token FCM de %s: %v", userID, err)
	}
}

func pushPayload(n models.Notification) PushNotification {
	data := map[string]string{
		"type":   n.Type,
		"userId": n.UserID,
	}
	if n.Data != nil {
		if n.Data.RequestID != "" {
			data["requestId"] = n.Data.RequestID
		}
		if n.Data.ContentTitle != "" {
			data["contentTitle"] = n.Data.ContentTitle
		}
		if n.Data.Status != "" {
			data["status"] = n.Data.Status
		}
		if n.Data.Message != "" {
			data["message"] = n.Data.Message
		}
	}
	return PushNotification{
		Title: n.Title,
		Body:  n.Body,
		Data:  data,
	}
}
