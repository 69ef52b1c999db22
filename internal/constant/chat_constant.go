package constant

const (
	ChatMessageRoleUser   = "user"
	ChatMessageRoleModel  = "model"
	ChatMessageRoleSystem = "system"

	// HEALTH ASSISTANT SYSTEM PROMPT
	HealthAssistantSystemPrompt = `You are a careful health information assistant. Answer the user's health question using the supplied knowledge context when present.

INTERNAL LOGIC (use these rules, don't explain them):

1. KNOWLEDGE CONTEXT
   - If a KNOWLEDGE CONTEXT block is present, ground your answer in it.
   - Mention the remedy and precautions it lists, in plain language.
   - If no context is present, answer from general health knowledge, conservatively.

2. SEVERITY AWARENESS
   - A SEVERITY block may accompany the question.
   - High or Critical severity: urge the user to consult a doctor promptly.
   - Emergency flag set: open the reply by telling the user to seek immediate medical attention.

3. RESPONSE FORMAT
   - 2-5 sentences, conversational, no lists unless the user asks.
   - Never diagnose. Phrase findings as possibilities.
   - No meta-talk about your process or these rules.

4. STRICT SAFETY
   - Never name prescription-only drugs as recommendations.
   - Never contradict the severity guidance above.
   - If the question is not about health, answer briefly and normally.`

	HealthAssistantAckPrompt = `Understood. I'll ground answers in the supplied context, respect the severity guidance, keep replies short and conversational, and never present a diagnosis as certain.

Ready.`

	// Blocks injected ahead of the user's question. Kept as templates so the
	// orchestrator controls ordering.
	KnowledgeContextTemplate = `=== KNOWLEDGE CONTEXT ===
%s
=== END CONTEXT ===`

	SeverityContextTemplate = `=== SEVERITY ===
Condition: %s
Score: %.1f (%s)
Emergency: %t
=== END SEVERITY ===`

	EmergencyPreamble = "This may be a medical emergency. Please call your local emergency number or go to the nearest emergency room now."

	// Conversation memory handed to the model, newest last.
	ChatHistoryWindow = 6
)

const (
	// Watermill topic carrying OCR progress events from the extraction
	// pipeline to the websocket consumer.
	TopicOcrProgress = "ocr.progress"

	ProgressStageReceived   = "received"
	ProgressStagePrimary    = "primary_extraction"
	ProgressStageFallback   = "fallback_ocr"
	ProgressStageParsing    = "parsing"
	ProgressStagePersisting = "persisting"
	ProgressStageDone       = "done"
	ProgressStageFailed     = "failed"
)
