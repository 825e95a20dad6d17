package monitoring

// Sink receives fire-and-forget counters from the conversation flow.
// Implementations must never block the caller and must swallow their
// own failures; a broken sink cannot break a turn.
type Sink interface {
	RecordConversationStart(userID string)
	RecordConversationEnd(conversationID string)
	RecordError(category, component string)
	RecordCacheHit(namespace string)
	RecordCacheMiss(namespace string)
	RecordOutOfContextQuery(query string)
	RecordKnowledgeSearch(durationSeconds float64, resultCount int, fromCache bool)
}

// NopSink drops every metric.
type NopSink struct{}

func (NopSink) RecordConversationStart(string)          {}
func (NopSink) RecordConversationEnd(string)            {}
func (NopSink) RecordError(string, string)              {}
func (NopSink) RecordCacheHit(string)                   {}
func (NopSink) RecordCacheMiss(string)                  {}
func (NopSink) RecordOutOfContextQuery(string)          {}
func (NopSink) RecordKnowledgeSearch(float64, int, bool) {}
