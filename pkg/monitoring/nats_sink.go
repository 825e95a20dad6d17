package monitoring

import (
	"context"
	"time"

	"soukbot-be/internal/pkg/logger"
	"soukbot-be/pkg/events"
	"soukbot-be/pkg/nats"
)

const publishTimeout = 2 * time.Second

// Metric event codes published to the stream.
const (
	EventConversationStart = "CONVERSATION_START"
	EventConversationEnd   = "CONVERSATION_END"
	EventError             = "ERROR"
	EventCacheHit          = "CACHE_HIT"
	EventCacheMiss         = "CACHE_MISS"
	EventOutOfContext      = "OUT_OF_CONTEXT_QUERY"
	EventKnowledgeSearch   = "KNOWLEDGE_SEARCH"
)

// NatsSink ships counters to JetStream. Every record call returns
// immediately; publishing happens on a goroutine with its own timeout
// and failures only get logged.
type NatsSink struct {
	publisher *nats.Publisher
	logger    logger.ILogger
}

func NewNatsSink(publisher *nats.Publisher, logger logger.ILogger) *NatsSink {
	return &NatsSink{publisher: publisher, logger: logger}
}

func (s *NatsSink) emit(eventType string, data map[string]interface{}) {
	event := events.BaseEvent{
		Type:       eventType,
		Data:       data,
		OccurredAt: time.Now(),
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
		defer cancel()
		if err := s.publisher.Publish(ctx, event); err != nil {
			s.logger.Warn("monitoring", "metric publish failed", map[string]interface{}{
				"event_type": eventType,
				"error":      err.Error(),
			})
		}
	}()
}

func (s *NatsSink) RecordConversationStart(userID string) {
	s.emit(EventConversationStart, map[string]interface{}{"user_id": userID})
}

func (s *NatsSink) RecordConversationEnd(conversationID string) {
	s.emit(EventConversationEnd, map[string]interface{}{"conversation_id": conversationID})
}

func (s *NatsSink) RecordError(category, component string) {
	s.emit(EventError, map[string]interface{}{"category": category, "component": component})
}

func (s *NatsSink) RecordCacheHit(namespace string) {
	s.emit(EventCacheHit, map[string]interface{}{"namespace": namespace})
}

func (s *NatsSink) RecordCacheMiss(namespace string) {
	s.emit(EventCacheMiss, map[string]interface{}{"namespace": namespace})
}

func (s *NatsSink) RecordOutOfContextQuery(query string) {
	s.emit(EventOutOfContext, map[string]interface{}{"query": query})
}

func (s *NatsSink) RecordKnowledgeSearch(durationSeconds float64, resultCount int, fromCache bool) {
	s.emit(EventKnowledgeSearch, map[string]interface{}{
		"duration_seconds": durationSeconds,
		"result_count":     resultCount,
		"from_cache":       fromCache,
	})
}
