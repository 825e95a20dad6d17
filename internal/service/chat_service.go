package service

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"soukbot-be/internal/config"
	"soukbot-be/internal/constant"
	"soukbot-be/internal/dto"
	"soukbot-be/internal/entity"
	"soukbot-be/internal/pkg/logger"
	"soukbot-be/internal/repository/memory"
	"soukbot-be/internal/repository/specification"
	"soukbot-be/internal/repository/unitofwork"
	"soukbot-be/pkg/cache"
	"soukbot-be/pkg/classifier"
	"soukbot-be/pkg/commerce"
	"soukbot-be/pkg/dialogue"
	"soukbot-be/pkg/monitoring"
	"soukbot-be/pkg/vision"

	"github.com/google/uuid"
)

// IChatService is the conversational core exposed to the HTTP layer.
type IChatService interface {
	StartConversation(ctx context.Context, userId string) (*dto.StartConversationResponse, error)
	SendMessage(ctx context.Context, userId, content string) (*dto.SendMessageResponse, error)
	HandleImageUpload(ctx context.Context, userId string, image []byte) (*dto.ImageUploadResponse, error)
	EndConversation(ctx context.Context, conversationId uuid.UUID) (*dto.EndConversationResponse, error)
	GetConversationHistory(ctx context.Context, conversationId uuid.UUID, limit, offset int) (*dto.ConversationHistoryResponse, error)
	GetActiveConversations(ctx context.Context) ([]*dto.ActiveConversationDTO, error)
}

// conversationMeta is the cached per-conversation counter snapshot.
type conversationMeta struct {
	MessageCount int       `json:"message_count"`
	StartedAt    time.Time `json:"started_at"`
}

var greetingPattern = regexp.MustCompile(`^(bonjour|salut|bonsoir|hello|coucou)\b|nouvelle recherche`)

var phonePattern = regexp.MustCompile(`^\+?[\d\s()-]{7,}$`)

type chatService struct {
	uowFactory      unitofwork.RepositoryFactory
	sessions        *memory.SessionRepository
	machine         *dialogue.Machine
	validator       *classifier.Validator
	searcher        *commerce.Searcher
	imageClassifier vision.Classifier
	cache           cache.Manager
	sink            monitoring.Sink
	searchCfg       config.SearchConfig
	logger          logger.ILogger
}

func NewChatService(
	uowFactory unitofwork.RepositoryFactory,
	sessions *memory.SessionRepository,
	validator *classifier.Validator,
	searcher *commerce.Searcher,
	imageClassifier vision.Classifier,
	cacheManager cache.Manager,
	sink monitoring.Sink,
	searchCfg config.SearchConfig,
	logger logger.ILogger,
) IChatService {
	return &chatService{
		uowFactory:      uowFactory,
		sessions:        sessions,
		machine:         dialogue.NewMachine(),
		validator:       validator,
		searcher:        searcher,
		imageClassifier: imageClassifier,
		cache:           cacheManager,
		sink:            sink,
		searchCfg:       searchCfg,
		logger:          logger,
	}
}

func (s *chatService) StartConversation(ctx context.Context, userId string) (*dto.StartConversationResponse, error) {
	unlock := s.sessions.LockUser(userId)
	defer unlock()

	conv, err := s.findOrCreateConversation(ctx, userId)
	if err != nil {
		return nil, err
	}

	sess := dialogue.NewSession(userId, constant.DefaultCountry)
	tr := s.machine.Welcome(sess)
	s.sessions.Save(sess)

	if err := s.appendMessage(ctx, conv, constant.MessageSenderBot, tr.Reply); err != nil {
		return nil, err
	}

	s.cacheConversationMeta(ctx, conv)
	s.sink.RecordConversationStart(userId)

	return &dto.StartConversationResponse{
		ConversationId: conv.Id,
		InitialMessage: tr.Reply,
		QuickReplies:   tr.QuickReplies,
	}, nil
}

func (s *chatService) SendMessage(ctx context.Context, userId, content string) (*dto.SendMessageResponse, error) {
	unlock := s.sessions.LockUser(userId)
	defer unlock()

	conv, err := s.findOrCreateConversation(ctx, userId)
	if err != nil {
		return nil, err
	}

	sess, found := s.sessions.Get(userId)
	if !found {
		sess = dialogue.NewSession(userId, constant.DefaultCountry)
	}

	if err := s.appendMessage(ctx, conv, constant.MessageSenderUser, content); err != nil {
		return nil, err
	}

	response := s.routeMessage(ctx, conv, sess, content)
	s.sessions.Save(sess)

	if err := s.appendMessage(ctx, conv, constant.MessageSenderBot, response.Reply); err != nil {
		return nil, err
	}
	s.bumpMessageCount(ctx, conv, 2)

	response.ConversationId = conv.Id
	return response, nil
}

// routeMessage dispatches one user turn. Mid-flow messages go to the
// state machine; at the welcome step a product mention starts the
// shopping flow, a greeting restarts it, and anything else goes through
// the context classifier to the knowledge base.
func (s *chatService) routeMessage(ctx context.Context, conv *entity.Conversation, sess *dialogue.Session, content string) *dto.SendMessageResponse {
	if sess.Step != dialogue.StepWelcome {
		return s.advanceFlow(ctx, sess, content)
	}

	lower := strings.ToLower(strings.TrimSpace(content))
	if greetingPattern.MatchString(lower) {
		tr := s.machine.Welcome(sess)
		return &dto.SendMessageResponse{Reply: tr.Reply, QuickReplies: tr.QuickReplies}
	}

	if _, ok := dialogue.ExtractProductType(content); ok {
		s.machine.Welcome(sess)
		return s.advanceFlow(ctx, sess, content)
	}

	return s.answerQuestion(ctx, conv, content)
}

func (s *chatService) advanceFlow(ctx context.Context, sess *dialogue.Session, content string) *dto.SendMessageResponse {
	tr := s.machine.Advance(sess, content)
	if !tr.RunSearch {
		return &dto.SendMessageResponse{Reply: tr.Reply, QuickReplies: tr.QuickReplies}
	}
	return s.runPartnerSearch(ctx, sess)
}

func (s *chatService) runPartnerSearch(ctx context.Context, sess *dialogue.Session) *dto.SendMessageResponse {
	criteria := commerce.Criteria{
		ProductType: sess.ProductType,
		BudgetMin:   sess.BudgetMin,
		BudgetMax:   sess.BudgetMax,
		Country:     sess.Country,
	}
	if sess.Location.Kind == dialogue.ScopeCity {
		criteria.City = sess.Location.City
	}

	result := s.searcher.Search(ctx, criteria)

	// The flow restarts after every completed search.
	sess.ResetStep()

	if !result.Success {
		return &dto.SendMessageResponse{
			Reply:        constant.SearchErrorReply,
			QuickReplies: []string{constant.NewSearchQuickReply},
		}
	}

	if result.Count == 0 {
		suggestions := commerce.GenerateSuggestions(criteria, 0)
		return &dto.SendMessageResponse{
			Reply:        commerce.BuildNoResultsReply(criteria, suggestions),
			QuickReplies: []string{constant.NewSearchQuickReply},
			Suggestions:  suggestions,
		}
	}

	partners := result.Partners
	if len(partners) > s.searchCfg.MaxPartners {
		partners = partners[:s.searchCfg.MaxPartners]
	}
	displays := commerce.FormatPartnersForDisplay(partners)

	return &dto.SendMessageResponse{
		Reply:        commerce.BuildResultsReply(criteria, displays),
		QuickReplies: constant.ResultsQuickReplies,
		Partners:     displays,
		Suggestions:  commerce.GenerateSuggestions(criteria, result.Count),
	}
}

// answerQuestion handles free-form questions outside the shopping flow.
func (s *chatService) answerQuestion(ctx context.Context, conv *entity.Conversation, content string) *dto.SendMessageResponse {
	cacheKey := fmt.Sprintf("message:%s:%s", conv.Id, content)
	var cachedReply string
	if found, err := s.cache.Get(ctx, cache.NamespaceKnowledge, cacheKey, &cachedReply); err == nil && found {
		s.sink.RecordKnowledgeSearch(0, 1, true)
		return &dto.SendMessageResponse{Reply: cachedReply}
	}

	validateCtx, cancel := context.WithTimeout(ctx, s.searchCfg.ValidationTimeout)
	defer cancel()

	verdict, err := s.validator.Validate(validateCtx, content)
	if err != nil {
		s.logger.Error("chat", "context validation failed", map[string]interface{}{
			"query": content,
			"error": err.Error(),
		})
		s.sink.RecordError("context_validation", "chat_service")
		return &dto.SendMessageResponse{
			Reply:        constant.InternalErrorReply,
			QuickReplies: []string{constant.NewSearchQuickReply},
		}
	}

	validation := &dto.ContextValidationDTO{
		IsInContext: verdict.IsInContext,
		Confidence:  verdict.Confidence,
	}

	if verdict.IsDefinitelyOutOfContext {
		s.logger.Warn("chat", "out-of-context question", map[string]interface{}{
			"query":      content,
			"confidence": verdict.Confidence,
		})
		s.sink.RecordOutOfContextQuery(content)
		return &dto.SendMessageResponse{
			Reply:             verdict.Response,
			IsOutOfContext:    true,
			ContextValidation: validation,
		}
	}

	searchStart := time.Now()
	reply := s.buildKnowledgeReply(verdict.Knowledge)
	s.sink.RecordKnowledgeSearch(time.Since(searchStart).Seconds(), len(verdict.Knowledge), false)

	if err := s.cache.Set(ctx, cache.NamespaceKnowledge, cacheKey, reply); err != nil {
		s.logger.Warn("chat", "failed to cache knowledge reply", map[string]interface{}{
			"key":   cacheKey,
			"error": err.Error(),
		})
	}

	return &dto.SendMessageResponse{Reply: reply, ContextValidation: validation}
}

// buildKnowledgeReply renders the top knowledge hit, with special
// formatting for email and phone contact entries.
func (s *chatService) buildKnowledgeReply(results []classifier.KnowledgeResult) string {
	if len(results) == 0 {
		return constant.NoKnowledgeReply
	}

	best := results[0]
	var reply string
	switch {
	case strings.HasPrefix(best.Content, "mailto:"):
		email := strings.TrimPrefix(best.Content, "mailto:")
		reply = fmt.Sprintf("**%s**\n\nVous pouvez nous contacter par email à l'adresse suivante: %s\n\nNotre équipe se fera un plaisir de vous répondre dans les plus brefs délais.", best.Title, email)
	case phonePattern.MatchString(best.Content):
		reply = fmt.Sprintf("**%s**\n\nVous pouvez nous joindre par téléphone au %s\n\nNos conseillers sont disponibles pour répondre à vos questions.", best.Title, best.Content)
	default:
		reply = fmt.Sprintf("**%s**  \n\n%s", best.Title, best.Content)
	}

	if len(results) > 1 {
		reply += "\n\n**Autres informations pertinentes :**"
		extra := results[1:]
		if len(extra) > 2 {
			extra = extra[:2]
		}
		for _, r := range extra {
			reply += fmt.Sprintf("\n- %s", r.Title)
		}
	}
	return reply
}

func (s *chatService) HandleImageUpload(ctx context.Context, userId string, image []byte) (*dto.ImageUploadResponse, error) {
	unlock := s.sessions.LockUser(userId)
	defer unlock()

	conv, err := s.findOrCreateConversation(ctx, userId)
	if err != nil {
		return nil, err
	}

	sess, found := s.sessions.Get(userId)
	if !found {
		sess = dialogue.NewSession(userId, constant.DefaultCountry)
	}

	classification, err := s.imageClassifier.Classify(ctx, image)
	if err != nil {
		s.sink.RecordError("image_classification", "chat_service")
		s.logger.Error("chat", "image classification failed", map[string]interface{}{
			"user_id": userId,
			"error":   err.Error(),
		})
		return &dto.ImageUploadResponse{
			ConversationId: conv.Id,
			Reply:          "😔 Je n'ai pas pu analyser votre image. Pouvez-vous me décrire le produit que vous recherchez ?",
		}, nil
	}

	if err := s.appendMessage(ctx, conv, constant.MessageSenderUser, "[Image]"); err != nil {
		return nil, err
	}

	// A detected product overrides whatever the flow was collecting:
	// the session jumps to the budget step with the new product type.
	response := s.machine.SetProductType(sess, classification.ProductType)
	s.sessions.Save(sess)

	reply := fmt.Sprintf("📸 J'ai détecté : %s (confiance %d%%)\n\n%s",
		classification.ProductType, int(classification.Confidence*100), response.Reply)

	if err := s.appendMessage(ctx, conv, constant.MessageSenderBot, reply); err != nil {
		return nil, err
	}
	s.bumpMessageCount(ctx, conv, 2)

	return &dto.ImageUploadResponse{
		ConversationId: conv.Id,
		Reply:          reply,
		ProductType:    classification.ProductType,
		Confidence:     classification.Confidence,
	}, nil
}

func (s *chatService) EndConversation(ctx context.Context, conversationId uuid.UUID) (*dto.EndConversationResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	repo := uow.ConversationRepository()

	conv, err := repo.FindOne(ctx, specification.ByID{ID: conversationId})
	if err != nil {
		return nil, err
	}
	if conv == nil {
		return nil, fmt.Errorf("conversation not found")
	}

	now := time.Now()
	conv.Status = constant.ConversationStatusClosed
	conv.EndedAt = &now
	if err := repo.Update(ctx, conv); err != nil {
		return nil, err
	}

	s.sessions.Delete(conv.UserId)
	_ = s.cache.Delete(ctx, cache.NamespaceConversation, conv.Id.String())
	s.sink.RecordConversationEnd(conv.Id.String())

	return &dto.EndConversationResponse{
		ConversationId: conv.Id,
		Status:         conv.Status,
	}, nil
}

func (s *chatService) GetConversationHistory(ctx context.Context, conversationId uuid.UUID, limit, offset int) (*dto.ConversationHistoryResponse, error) {
	historyKey := fmt.Sprintf("history:%s:%d:%d", conversationId, limit, offset)
	var cached dto.ConversationHistoryResponse
	if found, err := s.cache.Get(ctx, cache.NamespaceConversation, historyKey, &cached); err == nil && found {
		s.sink.RecordCacheHit(cache.NamespaceConversation)
		return &cached, nil
	}
	s.sink.RecordCacheMiss(cache.NamespaceConversation)

	uow := s.uowFactory.NewUnitOfWork(ctx)
	conv, err := uow.ConversationRepository().FindOne(ctx, specification.ByID{ID: conversationId})
	if err != nil {
		return nil, err
	}
	if conv == nil {
		return nil, fmt.Errorf("conversation not found")
	}

	specs := []specification.Specification{
		specification.FilterBy{Field: "conversation_id", Value: conversationId},
		specification.OrderBy{Field: "created_at"},
	}
	if limit > 0 {
		specs = append(specs, specification.Pagination{Limit: limit, Offset: offset})
	}
	messages, err := uow.MessageRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	history := &dto.ConversationHistoryResponse{
		ConversationId: conv.Id,
		UserId:         conv.UserId,
		Status:         conv.Status,
		StartedAt:      conv.StartedAt,
		Messages:       make([]dto.MessageDTO, len(messages)),
	}
	for i, m := range messages {
		history.Messages[i] = dto.MessageDTO{
			Id:        m.Id,
			Sender:    m.Sender,
			Content:   m.Content,
			CreatedAt: m.CreatedAt,
		}
	}

	// Short TTL: history grows with every turn, so day-long entries would
	// serve stale transcripts.
	if err := s.cache.SetWithTTL(ctx, cache.NamespaceConversation, historyKey, history, time.Minute); err != nil {
		s.logger.Warn("chat", "failed to cache history", map[string]interface{}{
			"conversation_id": conversationId.String(),
			"error":           err.Error(),
		})
	}
	return history, nil
}

func (s *chatService) GetActiveConversations(ctx context.Context) ([]*dto.ActiveConversationDTO, error) {
	var cached []*dto.ActiveConversationDTO
	if found, err := s.cache.Get(ctx, cache.NamespaceConversation, "active", &cached); err == nil && found {
		s.sink.RecordCacheHit(cache.NamespaceConversation)
		return cached, nil
	}
	s.sink.RecordCacheMiss(cache.NamespaceConversation)

	uow := s.uowFactory.NewUnitOfWork(ctx)
	conversations, err := uow.ConversationRepository().FindAll(ctx,
		specification.ByStatus{Status: constant.ConversationStatusActive},
		specification.OrderBy{Field: "started_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	active := make([]*dto.ActiveConversationDTO, len(conversations))
	for i, c := range conversations {
		active[i] = &dto.ActiveConversationDTO{
			ConversationId: c.Id,
			UserId:         c.UserId,
			MessageCount:   c.MessageCount,
			StartedAt:      c.StartedAt,
		}
	}
	_ = s.cache.SetWithTTL(ctx, cache.NamespaceConversation, "active", active, time.Minute)
	return active, nil
}

func (s *chatService) findOrCreateConversation(ctx context.Context, userId string) (*entity.Conversation, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	repo := uow.ConversationRepository()

	conv, err := repo.FindOne(ctx,
		specification.ByUserId{UserId: userId},
		specification.ByStatus{Status: constant.ConversationStatusActive},
	)
	if err != nil {
		return nil, err
	}
	if conv != nil {
		return conv, nil
	}

	conv = &entity.Conversation{
		UserId:    userId,
		Status:    constant.ConversationStatusActive,
		StartedAt: time.Now(),
	}
	if err := repo.Create(ctx, conv); err != nil {
		return nil, err
	}
	return conv, nil
}

func (s *chatService) appendMessage(ctx context.Context, conv *entity.Conversation, sender, content string) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.MessageRepository().Create(ctx, &entity.Message{
		ConversationId: conv.Id,
		Sender:         sender,
		Content:        content,
	})
}

func (s *chatService) bumpMessageCount(ctx context.Context, conv *entity.Conversation, delta int) {
	conv.MessageCount += delta
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.ConversationRepository().Update(ctx, conv); err != nil {
		s.logger.Warn("chat", "failed to update conversation counters", map[string]interface{}{
			"conversation_id": conv.Id.String(),
			"error":           err.Error(),
		})
	}
	s.cacheConversationMeta(ctx, conv)
}

func (s *chatService) cacheConversationMeta(ctx context.Context, conv *entity.Conversation) {
	meta := conversationMeta{
		MessageCount: conv.MessageCount,
		StartedAt:    conv.StartedAt,
	}
	if err := s.cache.Set(ctx, cache.NamespaceConversation, conv.Id.String(), meta); err != nil {
		s.logger.Warn("chat", "failed to cache conversation meta", map[string]interface{}{
			"conversation_id": conv.Id.String(),
			"error":           err.Error(),
		})
	}
}
