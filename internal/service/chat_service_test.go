package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"soukbot-be/internal/config"
	"soukbot-be/internal/constant"
	"soukbot-be/internal/entity"
	"soukbot-be/internal/pkg/logger"
	"soukbot-be/internal/repository/contract"
	"soukbot-be/internal/repository/memory"
	"soukbot-be/internal/repository/specification"
	"soukbot-be/internal/repository/unitofwork"
	"soukbot-be/pkg/cache"
	"soukbot-be/pkg/classifier"
	"soukbot-be/pkg/commerce"
	"soukbot-be/pkg/monitoring"
	"soukbot-be/pkg/semantic"
	"soukbot-be/pkg/vision"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---- in-memory persistence fakes ----

type fakeConversationRepo struct {
	mu            sync.Mutex
	conversations map[uuid.UUID]*entity.Conversation
}

func newFakeConversationRepo() *fakeConversationRepo {
	return &fakeConversationRepo{conversations: map[uuid.UUID]*entity.Conversation{}}
}

func (r *fakeConversationRepo) Create(_ context.Context, c *entity.Conversation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c.Id = uuid.New()
	clone := *c
	r.conversations[c.Id] = &clone
	return nil
}

func (r *fakeConversationRepo) Update(_ context.Context, c *entity.Conversation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *c
	r.conversations[c.Id] = &clone
	return nil
}

func (r *fakeConversationRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.conversations, id)
	return nil
}

func (r *fakeConversationRepo) matches(c *entity.Conversation, specs []specification.Specification) bool {
	for _, s := range specs {
		switch sp := s.(type) {
		case specification.ByID:
			if c.Id != sp.ID {
				return false
			}
		case specification.ByUserId:
			if c.UserId != sp.UserId {
				return false
			}
		case specification.ByStatus:
			if c.Status != sp.Status {
				return false
			}
		}
	}
	return true
}

func (r *fakeConversationRepo) FindOne(_ context.Context, specs ...specification.Specification) (*entity.Conversation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.conversations {
		if r.matches(c, specs) {
			clone := *c
			return &clone, nil
		}
	}
	return nil, nil
}

func (r *fakeConversationRepo) FindAll(_ context.Context, specs ...specification.Specification) ([]*entity.Conversation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Conversation
	for _, c := range r.conversations {
		if r.matches(c, specs) {
			clone := *c
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *fakeConversationRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	all, _ := r.FindAll(ctx, specs...)
	return int64(len(all)), nil
}

type fakeMessageRepo struct {
	mu       sync.Mutex
	messages []*entity.Message
}

func (r *fakeMessageRepo) Create(_ context.Context, m *entity.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	m.Id = uuid.New()
	m.CreatedAt = time.Now()
	clone := *m
	r.messages = append(r.messages, &clone)
	return nil
}

func (r *fakeMessageRepo) DeleteByConversationId(_ context.Context, conversationId uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	kept := r.messages[:0]
	for _, m := range r.messages {
		if m.ConversationId != conversationId {
			kept = append(kept, m)
		}
	}
	r.messages = kept
	return nil
}

func (r *fakeMessageRepo) FindAll(_ context.Context, specs ...specification.Specification) ([]*entity.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Message
	for _, m := range r.messages {
		match := true
		for _, s := range specs {
			if f, ok := s.(specification.FilterBy); ok && f.Field == "conversation_id" {
				if m.ConversationId != f.Value.(uuid.UUID) {
					match = false
				}
			}
		}
		if match {
			clone := *m
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *fakeMessageRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	all, _ := r.FindAll(ctx, specs...)
	return int64(len(all)), nil
}

type fakeUnitOfWork struct {
	conversations *fakeConversationRepo
	messages      *fakeMessageRepo
}

func (u *fakeUnitOfWork) Begin(context.Context) error { return nil }
func (u *fakeUnitOfWork) Commit() error               { return nil }
func (u *fakeUnitOfWork) Rollback() error             { return nil }

func (u *fakeUnitOfWork) ConversationRepository() contract.ConversationRepository { return u.conversations }
func (u *fakeUnitOfWork) MessageRepository() contract.MessageRepository           { return u.messages }
func (u *fakeUnitOfWork) PartnerRepository() contract.PartnerRepository           { return nil }
func (u *fakeUnitOfWork) KnowledgeRepository() contract.KnowledgeRepository       { return nil }
func (u *fakeUnitOfWork) LearningRecordRepository() contract.LearningRecordRepository {
	return nil
}
func (u *fakeUnitOfWork) CorpusEntryRepository() contract.CorpusEntryRepository { return nil }

type fakeFactory struct {
	uow *fakeUnitOfWork
}

func (f *fakeFactory) NewUnitOfWork(context.Context) unitofwork.UnitOfWork { return f.uow }

var _ unitofwork.RepositoryFactory = (*fakeFactory)(nil)

// ---- collaborator fakes ----

type countingKnowledgeStore struct {
	mu      sync.Mutex
	calls   int
	results []classifier.KnowledgeResult
}

func (s *countingKnowledgeStore) Search(context.Context, string) ([]classifier.KnowledgeResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	return s.results, nil
}

func (s *countingKnowledgeStore) GetByCategory(context.Context, string) ([]classifier.KnowledgeResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	return s.results, nil
}

func (s *countingKnowledgeStore) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

type fixedPartnerStore struct {
	partners []commerce.Partner
	err      error
}

func (s *fixedPartnerStore) SearchPartners(context.Context, commerce.Criteria) ([]commerce.Partner, error) {
	return s.partners, s.err
}

type fixedVision struct {
	label string
}

func (f *fixedVision) Name() string { return "fixed" }
func (f *fixedVision) Classify(context.Context, []byte) (vision.Classification, error) {
	return vision.Classification{ProductType: f.label, Confidence: 0.9, Method: "fixed"}, nil
}

// ---- harness ----

type chatHarness struct {
	service   IChatService
	knowledge *countingKnowledgeStore
	cache     cache.Manager
	convs     *fakeConversationRepo
	msgs      *fakeMessageRepo
}

func newChatHarness(t *testing.T, partners []commerce.Partner) *chatHarness {
	t.Helper()

	nop := logger.NewNopLogger()
	convs := newFakeConversationRepo()
	msgs := &fakeMessageRepo{}
	factory := &fakeFactory{uow: &fakeUnitOfWork{conversations: convs, messages: msgs}}

	cacheManager := cache.NewMemoryManager([]cache.Namespace{
		{Name: cache.NamespaceConversation, TTL: time.Hour, MaxEntries: 100},
		{Name: cache.NamespaceKnowledge, TTL: time.Hour, MaxEntries: 100},
		{Name: cache.NamespacePartnerSearch, TTL: time.Hour, MaxEntries: 100},
	})

	knowledge := &countingKnowledgeStore{results: []classifier.KnowledgeResult{
		{Title: "Horaires d'ouverture", Content: "Du lundi au vendredi de 9h à 18h.", Category: "Horaires"},
	}}

	scorer := semantic.NewLexicalScorer(semantic.DefaultInScopeCorpus, semantic.DefaultIrrelevantCorpus, 0.5)
	validator := classifier.NewValidator(scorer, knowledge, classifier.NopRecorder{}, classifier.Options{
		ConfidenceThreshold: 30,
		IrrelevantThreshold: 0.4,
	}, nop)

	searcher := commerce.NewSearcher(&fixedPartnerStore{partners: partners}, cacheManager, monitoring.NopSink{}, time.Second, nop)

	svc := NewChatService(
		factory,
		memory.NewSessionRepository(time.Hour),
		validator,
		searcher,
		&fixedVision{label: "vêtements"},
		cacheManager,
		monitoring.NopSink{},
		config.SearchConfig{
			KnowledgeTimeout:  time.Second,
			PartnerTimeout:    time.Second,
			ValidationTimeout: time.Second,
			MaxKnowledge:      5,
			MaxPartners:       5,
		},
		nop,
	)

	return &chatHarness{service: svc, knowledge: knowledge, cache: cacheManager, convs: convs, msgs: msgs}
}

// ---- scenarios ----

func TestChatService_FullShoppingFlow(t *testing.T) {
	h := newChatHarness(t, []commerce.Partner{
		{ID: uuid.NewString(), Name: "RAZANA", City: "Casablanca", Country: "Maroc", PriceRangeMin: 199, PriceRangeMax: 728},
		{ID: uuid.NewString(), Name: "Arwa Shop", City: "Casablanca", Country: "Maroc", PriceRangeMin: 169, PriceRangeMax: 319},
	})
	ctx := context.Background()

	start, err := h.service.StartConversation(ctx, "user-1")
	require.NoError(t, err)
	assert.Contains(t, start.InitialMessage, constant.ProductTypeQuestion)

	res, err := h.service.SendMessage(ctx, "user-1", "je cherche des vêtements")
	require.NoError(t, err)
	assert.Contains(t, res.Reply, constant.BudgetQuestion)

	res, err = h.service.SendMessage(ctx, "user-1", "entre 50 et 200 euros")
	require.NoError(t, err)
	assert.Contains(t, res.Reply, constant.LocationQuestion)

	res, err = h.service.SendMessage(ctx, "user-1", "Casablanca")
	require.NoError(t, err)
	assert.Contains(t, res.Reply, "2 partenaire")
	require.Len(t, res.Partners, 2)
	assert.Equal(t, "RAZANA", res.Partners[0].Name)
	assert.Equal(t, constant.ResultsQuickReplies, res.QuickReplies)
}

func TestChatService_UnrecognizedBudgetKeepsStep(t *testing.T) {
	h := newChatHarness(t, nil)
	ctx := context.Background()

	_, err := h.service.StartConversation(ctx, "user-2")
	require.NoError(t, err)

	_, err = h.service.SendMessage(ctx, "user-2", "électronique")
	require.NoError(t, err)

	res, err := h.service.SendMessage(ctx, "user-2", "aucune idée franchement")
	require.NoError(t, err)
	assert.Contains(t, res.Reply, constant.BudgetQuestion)

	// The slot is still open; a valid answer moves on.
	res, err = h.service.SendMessage(ctx, "user-2", "maximum 300")
	require.NoError(t, err)
	assert.Contains(t, res.Reply, constant.LocationQuestion)
}

func TestChatService_NoResultsSuggestsAndResets(t *testing.T) {
	h := newChatHarness(t, nil)
	ctx := context.Background()

	_, err := h.service.StartConversation(ctx, "user-3")
	require.NoError(t, err)
	_, err = h.service.SendMessage(ctx, "user-3", "vêtements")
	require.NoError(t, err)
	_, err = h.service.SendMessage(ctx, "user-3", "entre 50 et 200")
	require.NoError(t, err)

	res, err := h.service.SendMessage(ctx, "user-3", "Oujda")
	require.NoError(t, err)
	assert.Contains(t, res.Reply, "Aucun partenaire")
	assert.NotEmpty(t, res.Suggestions)

	// Flow restarted: a product mention starts a fresh search.
	res, err = h.service.SendMessage(ctx, "user-3", "smartphones")
	require.NoError(t, err)
	assert.Contains(t, res.Reply, constant.BudgetQuestion)
}

func TestChatService_OutOfContextQuestionRejectedAndNotCached(t *testing.T) {
	h := newChatHarness(t, nil)
	ctx := context.Background()

	_, err := h.service.StartConversation(ctx, "user-4")
	require.NoError(t, err)

	res, err := h.service.SendMessage(ctx, "user-4", "Quelle est la capitale de la France ?")
	require.NoError(t, err)
	assert.True(t, res.IsOutOfContext)
	assert.Contains(t, res.Reply, "sort du cadre de mes compétences")
	require.NotNil(t, res.ContextValidation)
	assert.False(t, res.ContextValidation.IsInContext)

	// Rejections never land in the response cache.
	key := fmt.Sprintf("message:%s:%s", res.ConversationId, "Quelle est la capitale de la France ?")
	var cached string
	found, err := h.cache.Get(ctx, cache.NamespaceKnowledge, key, &cached)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestChatService_RepeatedQuestionServedFromCache(t *testing.T) {
	h := newChatHarness(t, nil)
	ctx := context.Background()

	_, err := h.service.StartConversation(ctx, "user-5")
	require.NoError(t, err)

	first, err := h.service.SendMessage(ctx, "user-5", "quels sont vos horaires d'ouverture")
	require.NoError(t, err)
	assert.Contains(t, first.Reply, "Horaires d'ouverture")
	callsAfterFirst := h.knowledge.callCount()
	assert.Greater(t, callsAfterFirst, 0)

	second, err := h.service.SendMessage(ctx, "user-5", "quels sont vos horaires d'ouverture")
	require.NoError(t, err)
	assert.Equal(t, first.Reply, second.Reply)
	assert.Equal(t, callsAfterFirst, h.knowledge.callCount())
}

func TestChatService_ImageUploadFeedsFlow(t *testing.T) {
	h := newChatHarness(t, nil)
	ctx := context.Background()

	_, err := h.service.StartConversation(ctx, "user-6")
	require.NoError(t, err)

	res, err := h.service.HandleImageUpload(ctx, "user-6", []byte("a red dress photo"))
	require.NoError(t, err)
	assert.Equal(t, "vêtements", res.ProductType)
	assert.True(t, strings.HasPrefix(res.Reply, "📸 J'ai détecté"))
	assert.Contains(t, res.Reply, constant.BudgetQuestion)
}

func TestChatService_ImageUploadMidFlowJumpsToBudget(t *testing.T) {
	h := newChatHarness(t, nil)
	ctx := context.Background()

	_, err := h.service.StartConversation(ctx, "user-10")
	require.NoError(t, err)
	_, err = h.service.SendMessage(ctx, "user-10", "électronique")
	require.NoError(t, err)
	_, err = h.service.SendMessage(ctx, "user-10", "entre 50 et 200")
	require.NoError(t, err)

	// Session now waits for a city. The detected label must not be
	// parsed as one: the upload restarts slot filling at the budget step.
	res, err := h.service.HandleImageUpload(ctx, "user-10", []byte("a red dress photo"))
	require.NoError(t, err)
	assert.Equal(t, "vêtements", res.ProductType)
	assert.Contains(t, res.Reply, constant.BudgetQuestion)
	assert.NotContains(t, res.Reply, "Aucun partenaire")

	// The next message answers the budget question, not the city one.
	next, err := h.service.SendMessage(ctx, "user-10", "entre 100 et 300")
	require.NoError(t, err)
	assert.Contains(t, next.Reply, constant.LocationQuestion)
}

func TestChatService_EndConversationClosesAndClearsState(t *testing.T) {
	h := newChatHarness(t, nil)
	ctx := context.Background()

	start, err := h.service.StartConversation(ctx, "user-7")
	require.NoError(t, err)

	ended, err := h.service.EndConversation(ctx, start.ConversationId)
	require.NoError(t, err)
	assert.Equal(t, constant.ConversationStatusClosed, ended.Status)

	// A new message opens a new conversation.
	res, err := h.service.SendMessage(ctx, "user-7", "bonjour")
	require.NoError(t, err)
	assert.NotEqual(t, start.ConversationId, res.ConversationId)
}

func TestChatService_HistoryReturnsMessagesInOrder(t *testing.T) {
	h := newChatHarness(t, nil)
	ctx := context.Background()

	start, err := h.service.StartConversation(ctx, "user-8")
	require.NoError(t, err)
	_, err = h.service.SendMessage(ctx, "user-8", "vêtements")
	require.NoError(t, err)

	history, err := h.service.GetConversationHistory(ctx, start.ConversationId, 0, 0)
	require.NoError(t, err)
	require.Len(t, history.Messages, 3) // welcome + user turn + bot turn
	assert.Equal(t, constant.MessageSenderBot, history.Messages[0].Sender)
	assert.Equal(t, "vêtements", history.Messages[1].Content)
}

func TestChatService_HistoryUnknownConversation(t *testing.T) {
	h := newChatHarness(t, nil)

	_, err := h.service.GetConversationHistory(context.Background(), uuid.New(), 0, 0)
	require.Error(t, err)
	assert.Equal(t, "conversation not found", err.Error())
}
