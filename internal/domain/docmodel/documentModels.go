package docmodel

import "time"

type Format string

var (
	PDF        Format = "PDF"
	WordLegacy Format = "DOC"
	WordXML    Format = "DOCX"
	PlainText  Format = "TXT"
	JPEG       Format = "JPEG"
	PNG        Format = "PNG"
)

// Document describes one uploaded file. The bytes themselves live in the
// spool file and are gone once extraction finishes, only this record
// survives on the session.
type Document struct {
	Id         string    `json:"id"`
	Name       string    `json:"name"`
	MediaType  string    `json:"media_type"`
	Format     Format    `json:"format"`
	SizeBytes  int64     `json:"size_bytes"`
	SpoolPath  string    `json:"-"`
	IngestedAt time.Time `json:"ingested_at"`
}

type SummaryRecord struct {
	Short    string   `json:"short"`
	Detailed string   `json:"detailed"`
	Bullets  []string `json:"bullets"`
	Insights []string `json:"insights"`
	Keywords []string `json:"keywords"`
}

type Role string

var (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// ChatTurn is append-only; the stored order is replayed verbatim to the
// chat service as history.
type ChatTurn struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

type SessionState string

var (
	StateIdle             SessionState = "idle"
	StateReady            SessionState = "ready"
	StateAwaitingResponse SessionState = "awaiting_response" //derived while a chat call is in flight, never persisted
)

// Session is the one aggregate the pipeline mutates. Document, extracted
// text, summary and conversation are replaced together or not at all.
type Session struct {
	Id           string         `json:"id"`
	State        SessionState   `json:"state"`
	Document     *Document      `json:"document,omitempty"`
	Extracted    string         `json:"extracted_text,omitempty"`
	Summary      *SummaryRecord `json:"summary,omitempty"`
	Conversation []ChatTurn     `json:"conversation"`
}

func NewSession(id string) Session {
	return Session{
		Id:           id,
		State:        StateIdle,
		Conversation: []ChatTurn{},
	}
}

// InstallDocument swaps the whole aggregate in one step and seeds the
// conversation with the assistant greeting.
func (s *Session) InstallDocument(doc Document, extracted string, summary SummaryRecord, greeting string) {
	s.Document = &doc
	s.Extracted = extracted
	s.Summary = &summary
	s.Conversation = []ChatTurn{{Role: RoleAssistant, Content: greeting}}
	s.State = StateReady
}

// Reset returns the session to the state of a freshly created one.
func (s *Session) Reset() {
	s.Document = nil
	s.Extracted = ""
	s.Summary = nil
	s.Conversation = []ChatTurn{}
	s.State = StateIdle
}

func (s *Session) AppendTurn(role Role, content string) {
	s.Conversation = append(s.Conversation, ChatTurn{Role: role, Content: content})
}
